package handler

import (
	"net/http"

	"github.com/carhive-dev/carhive/internal/api"
	"github.com/carhive-dev/carhive/internal/domain"
	"github.com/carhive-dev/carhive/internal/web"
)

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var body api.SignupRequest
	if err := web.DecodeValidate(r.Body, &body); err != nil {
		web.WriteError(w, err)
		return
	}

	token, err := h.auth.Signup(domain.Credentials{Email: body.Email, Password: body.Password})
	if err != nil {
		web.WriteError(w, err)
		return
	}

	web.WriteJSON(w, http.StatusCreated, api.TokenResponse{
		Message: "User created successfully",
		Token:   token,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var body api.LoginRequest
	if err := web.DecodeValidate(r.Body, &body); err != nil {
		web.WriteError(w, err)
		return
	}

	token, err := h.auth.Login(domain.Credentials{Email: body.Email, Password: body.Password})
	if err != nil {
		web.WriteError(w, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, api.TokenResponse{
		Message: "User logged in successfully",
		Token:   token,
	})
}
