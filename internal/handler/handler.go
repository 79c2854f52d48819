package handler

import (
	"github.com/carhive-dev/carhive/internal/config"
	"github.com/carhive-dev/carhive/internal/media"
	"github.com/carhive-dev/carhive/internal/service"
)

type Handler struct {
	auth  service.AuthService
	cars  service.CarService
	media media.Store
	cfg   *config.Config
}

func New(auth service.AuthService, cars service.CarService, mediaStore media.Store, cfg *config.Config) *Handler {
	return &Handler{auth, cars, mediaStore, cfg}
}
