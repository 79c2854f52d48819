// Package web holds the JSON request/response helpers shared by all
// handlers: body decoding with validation and the single spot where
// internal errors are translated to HTTP responses.
package web

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/carhive-dev/carhive/internal/errors"
	"github.com/carhive-dev/carhive/internal/logger"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type messageResponse struct {
	Message string `json:"message"`
}

type validationResponse struct {
	Message string              `json:"message"`
	Errors  []errors.FieldError `json:"errors"`
}

func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error("failed to encode response", "error", err)
	}
}

func WriteMessage(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, messageResponse{Message: message})
}

// WriteError translates an error into the matching HTTP response.
// Unknown errors become a generic 500; their detail stays in the server
// log and never reaches the client.
func WriteError(w http.ResponseWriter, err error) {
	switch e := err.(type) {
	case *errors.ValidationError:
		WriteJSON(w, http.StatusBadRequest, validationResponse{Message: "Invalid request", Errors: e.Fields})
	case *errors.ErrorWithStatusCode:
		WriteMessage(w, e.StatusCode, e.Message)
	default:
		logger.Log.Error("unexpected error", "error", err)
		WriteMessage(w, http.StatusInternalServerError, "An unexpected error occurred")
	}
}

// DecodeValidate decodes a JSON body into dst and checks its validate
// tags, reporting each failed field and rule.
func DecodeValidate(r io.Reader, dst any) error {
	if err := json.NewDecoder(r).Decode(dst); err != nil {
		logger.Log.Debug("invalid json body", "error", err)
		return &errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: http.StatusBadRequest}
	}
	return Validate(dst)
}

// Validate checks validate tags on an already-decoded value.
func Validate(dst any) error {
	if err := validate.Struct(dst); err != nil {
		verrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		fields := make([]errors.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, errors.FieldError{
				Field: strings.ToLower(fe.Field()),
				Rule:  fe.Tag(),
			})
		}
		return &errors.ValidationError{Fields: fields}
	}
	return nil
}
