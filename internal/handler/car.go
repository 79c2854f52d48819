package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carhive-dev/carhive/internal/api"
	"github.com/carhive-dev/carhive/internal/domain"
	"github.com/carhive-dev/carhive/internal/middleware"
	"github.com/carhive-dev/carhive/internal/web"
)

func (h *Handler) AddCar(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		web.WriteMessage(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	body, imageURLs, err := h.parseCarForm(r)
	if err != nil {
		web.WriteError(w, err)
		return
	}
	if imageURLs == nil {
		imageURLs = []string{}
	}

	car, err := h.cars.Create(user.Id, domain.CarDraft{
		Title:       body.Title,
		Description: body.Description,
		Tags:        body.Tags,
		Images:      imageURLs,
	})
	if err != nil {
		web.WriteError(w, err)
		return
	}

	web.WriteJSON(w, http.StatusCreated, car)
}

func (h *Handler) GetCars(w http.ResponseWriter, r *http.Request) {
	cars, err := h.cars.All()
	if err != nil {
		web.WriteError(w, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, api.CarWithOwnerListResponse(cars))
}

func (h *Handler) GetMyCars(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		web.WriteMessage(w, http.StatusUnauthorized, "Not authorized")
		return
	}

	cars, err := h.cars.Mine(user.Id)
	if err != nil {
		web.WriteError(w, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, api.CarListResponse(cars))
}

func (h *Handler) SearchCars(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")
	if keyword == "" {
		web.WriteMessage(w, http.StatusBadRequest, "A search keyword is required.")
		return
	}

	cars, err := h.cars.Search(keyword)
	if err != nil {
		web.WriteError(w, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, api.CarListResponse(cars))
}

func (h *Handler) UpdateCar(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		web.WriteMessage(w, http.StatusUnauthorized, "Not authorized")
		return
	}
	carId := chi.URLParam(r, "carId")

	body, imageURLs, err := h.parseCarForm(r)
	if err != nil {
		web.WriteError(w, err)
		return
	}

	// Images uploaded with the form replace the stored ones; otherwise
	// the listing keeps its current images.
	car, err := h.cars.Update(carId, user.Id, domain.CarDraft{
		Title:       body.Title,
		Description: body.Description,
		Tags:        body.Tags,
		Images:      imageURLs,
	}, imageURLs != nil)
	if err != nil {
		web.WriteError(w, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, api.CarResponse{
		Message: "Car updated successfully.",
		Car:     car,
	})
}

func (h *Handler) DeleteCar(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFromContext(r)
	if user == nil {
		web.WriteMessage(w, http.StatusUnauthorized, "Not authorized")
		return
	}
	carId := chi.URLParam(r, "carId")

	car, err := h.cars.Delete(carId, user.Id)
	if err != nil {
		web.WriteError(w, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, api.CarResponse{
		Message: "Car deleted successfully.",
		Car:     car,
	})
}
