package handler

import (
	"net/http"
	"strings"

	"github.com/carhive-dev/carhive/internal/api"
	"github.com/carhive-dev/carhive/internal/errors"
	"github.com/carhive-dev/carhive/internal/media"
	"github.com/carhive-dev/carhive/internal/web"
)

// parseCarForm parses a multipart create/update request: the "json"
// form field carries the listing fields, "images" file parts carry new
// uploads. Uploaded files are validated and pushed to the media store
// before the listing is touched; imageURLs is nil when nothing was
// uploaded so the caller can keep existing images on update.
func (h *Handler) parseCarForm(r *http.Request) (body api.CarRequest, imageURLs []string, err error) {
	r.Body = http.MaxBytesReader(nil, r.Body, h.cfg.Public.MaxUploadSize)
	if err = r.ParseMultipartForm(1 << 20); err != nil {
		err = &errors.ErrorWithStatusCode{Message: "Invalid multipart form", StatusCode: http.StatusBadRequest}
		return
	}

	jsonPayload := r.FormValue("json")
	if jsonPayload == "" {
		err = &errors.ErrorWithStatusCode{Message: "Car ID, title, description, and tags are required.", StatusCode: http.StatusBadRequest}
		return
	}
	if err = web.DecodeValidate(strings.NewReader(jsonPayload), &body); err != nil {
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		return
	}

	pending, cleanup, err := media.ValidateImages(files, h.cfg.Public.AllowedMimes, h.cfg.Public.MaxImages)
	if err != nil {
		return
	}
	defer cleanup()

	imageURLs, err = h.media.UploadAll(r.Context(), pending)
	return
}
