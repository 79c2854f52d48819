package setup

import (
	"github.com/carhive-dev/carhive/internal/config"
	"github.com/carhive-dev/carhive/internal/handler"
	"github.com/carhive-dev/carhive/internal/jwt"
	"github.com/carhive-dev/carhive/internal/media"
	"github.com/carhive-dev/carhive/internal/middleware"
	"github.com/carhive-dev/carhive/internal/service"
	"github.com/carhive-dev/carhive/internal/storage/pg"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config         *config.Config
	Storage        *pg.Storage
	Handler        *handler.Handler
	Jwt            jwt.JwtService
	AuthMiddleware *middleware.Auth
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	mediaStore, err := media.NewS3Store(cfg)
	if err != nil {
		return nil, err
	}

	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	auth := service.NewAuth(storage, jwtService)
	cars := service.NewCar(storage)

	h := handler.New(auth, cars, mediaStore, cfg)

	return &Dependencies{
		Config:         cfg,
		Storage:        storage,
		Handler:        h,
		Jwt:            jwtService,
		AuthMiddleware: middleware.NewAuth(jwtService),
	}, nil
}
