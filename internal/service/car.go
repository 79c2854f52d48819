package service

import (
	"fmt"

	"github.com/carhive-dev/carhive/internal/domain"
	"github.com/carhive-dev/carhive/internal/errors"
)

// to mock service in tests
type CarService interface {
	Create(ownerId domain.UserId, draft domain.CarDraft) (domain.Car, error)
	All() ([]domain.CarWithOwner, error)
	Mine(ownerId domain.UserId) ([]domain.Car, error)
	Search(keyword string) ([]domain.Car, error)
	Update(id domain.CarId, callerId domain.UserId, draft domain.CarDraft, replaceImages bool) (domain.Car, error)
	Delete(id domain.CarId, callerId domain.UserId) (domain.Car, error)
}

type Car struct {
	storage CarStorage
}

type CarStorage interface {
	SaveCar(ownerId domain.UserId, draft domain.CarDraft) (domain.Car, error)
	Car(id domain.CarId) (domain.Car, error)
	Cars() ([]domain.CarWithOwner, error)
	CarsByOwner(ownerId domain.UserId) ([]domain.Car, error)
	SearchCars(keyword string) ([]domain.Car, error)
	UpdateCar(id domain.CarId, draft domain.CarDraft) (domain.Car, error)
	DeleteCar(id domain.CarId) (domain.Car, error)
}

func NewCar(storage CarStorage) *Car {
	return &Car{storage}
}

func (c *Car) Create(ownerId domain.UserId, draft domain.CarDraft) (domain.Car, error) {
	return c.storage.SaveCar(ownerId, draft)
}

func (c *Car) All() ([]domain.CarWithOwner, error) {
	return c.storage.Cars()
}

func (c *Car) Mine(ownerId domain.UserId) ([]domain.Car, error) {
	return c.storage.CarsByOwner(ownerId)
}

func (c *Car) Search(keyword string) ([]domain.Car, error) {
	return c.storage.SearchCars(keyword)
}

// Update overwrites a listing's mutable fields after the ownership
// check. When replaceImages is false the stored image URLs are kept,
// matching the behavior of an update request without new uploads.
func (c *Car) Update(id domain.CarId, callerId domain.UserId, draft domain.CarDraft, replaceImages bool) (domain.Car, error) {
	car, err := c.storage.Car(id)
	if err != nil {
		return domain.Car{}, err
	}
	if err := authorize(car, callerId, "update"); err != nil {
		return domain.Car{}, err
	}

	if !replaceImages {
		draft.Images = car.Images
	}

	return c.storage.UpdateCar(id, draft)
}

func (c *Car) Delete(id domain.CarId, callerId domain.UserId) (domain.Car, error) {
	car, err := c.storage.Car(id)
	if err != nil {
		return domain.Car{}, err
	}
	if err := authorize(car, callerId, "delete"); err != nil {
		return domain.Car{}, err
	}

	return c.storage.DeleteCar(id)
}

// authorize is the single ownership guard for mutating operations: the
// caller must be the account that created the listing.
func authorize(car domain.Car, callerId domain.UserId, action string) error {
	if car.OwnerId != callerId {
		return errors.Forbidden(fmt.Sprintf("You do not have permission to %s this car.", action))
	}
	return nil
}
