package handler

import (
	"net/http"

	"github.com/carhive-dev/carhive/internal/web"
)

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	web.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
