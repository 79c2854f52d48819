package api

import "github.com/carhive-dev/carhive/internal/domain"

// CarRequest is the json part of the multipart create/update form.
// Images travel as separate file parts.
type CarRequest struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	Tags        []string `json:"tags" validate:"required"`
}

type CarResponse struct {
	Message string     `json:"message"`
	Car     domain.Car `json:"car"`
}

type CarListResponse []domain.Car

type CarWithOwnerListResponse []domain.CarWithOwner
