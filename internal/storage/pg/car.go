package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/carhive-dev/carhive/internal/domain"
	internal_errors "github.com/carhive-dev/carhive/internal/errors"
)

// =========================================================================
// Public Methods (satisfy the service.CarStorage interface)
// =========================================================================

// SaveCar inserts a new listing owned by ownerId and returns it.
func (s *Storage) SaveCar(ownerId domain.UserId, draft domain.CarDraft) (domain.Car, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var car domain.Car
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		car, err = s.saveCar(tx, ownerId, draft)
		return err
	})
	return car, err
}

// Car fetches a single listing by id.
func (s *Storage) Car(id domain.CarId) (domain.Car, error) {
	return s.car(s.db, id)
}

// Cars returns every listing with its owner's email, title ascending.
func (s *Storage) Cars() ([]domain.CarWithOwner, error) {
	rows, err := s.db.Query(`
        SELECT c.id, c.title, c.description, c.tags, c.images, c.user_id, c.created_at, u.email
        FROM cars c JOIN users u ON u.id = c.user_id
        ORDER BY c.title ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cars: %w", err)
	}
	defer rows.Close()

	cars := []domain.CarWithOwner{}
	for rows.Next() {
		var car domain.CarWithOwner
		if err := rows.Scan(&car.Id, &car.Title, &car.Description, pq.Array(&car.Tags),
			pq.Array(&car.Images), &car.OwnerId, &car.CreatedAt, &car.OwnerEmail); err != nil {
			return nil, fmt.Errorf("failed to scan car row: %w", err)
		}
		cars = append(cars, car)
	}
	return cars, rows.Err()
}

// CarsByOwner returns the listings owned by ownerId, title ascending.
func (s *Storage) CarsByOwner(ownerId domain.UserId) ([]domain.Car, error) {
	return s.queryCars(`
        SELECT id, title, description, tags, images, user_id, created_at
        FROM cars WHERE user_id = $1
        ORDER BY title ASC`, ownerId)
}

// SearchCars matches keyword case-insensitively against title and
// description, or exactly against a tag, title ascending.
func (s *Storage) SearchCars(keyword string) ([]domain.Car, error) {
	pattern := "%" + keyword + "%"
	return s.queryCars(`
        SELECT id, title, description, tags, images, user_id, created_at
        FROM cars
        WHERE title ILIKE $1 OR description ILIKE $1 OR $2 = ANY(tags)
        ORDER BY title ASC`, pattern, keyword)
}

// UpdateCar overwrites the mutable fields of a listing. Ownership is
// checked at the service layer; the owner column is never touched here.
func (s *Storage) UpdateCar(id domain.CarId, draft domain.CarDraft) (domain.Car, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var car domain.Car
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		car, err = s.updateCar(tx, id, draft)
		return err
	})
	return car, err
}

// DeleteCar removes a listing and returns the deleted row.
func (s *Storage) DeleteCar(id domain.CarId) (domain.Car, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var car domain.Car
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		var err error
		car, err = s.deleteCar(tx, id)
		return err
	})
	return car, err
}

// =========================================================================
// Internal Methods (Core Database Logic)
// =========================================================================

func (s *Storage) saveCar(q Querier, ownerId domain.UserId, draft domain.CarDraft) (domain.Car, error) {
	id := uuid.NewString()
	row := q.QueryRow(`
        INSERT INTO cars(id, title, description, tags, images, user_id)
        VALUES($1, $2, $3, $4, $5, $6)
        RETURNING id, title, description, tags, images, user_id, created_at`,
		id, draft.Title, draft.Description, pq.Array(draft.Tags), pq.Array(draft.Images), ownerId)

	car, err := scanCar(row)
	if err != nil {
		return domain.Car{}, fmt.Errorf("failed to insert car: %w", err)
	}
	return car, nil
}

func (s *Storage) car(q Querier, id domain.CarId) (domain.Car, error) {
	row := q.QueryRow(`
        SELECT id, title, description, tags, images, user_id, created_at
        FROM cars WHERE id = $1`, id)

	car, err := scanCar(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Car{}, internal_errors.NotFound("Car not found.")
		}
		return domain.Car{}, fmt.Errorf("failed to query car: %w", err)
	}
	return car, nil
}

func (s *Storage) updateCar(q Querier, id domain.CarId, draft domain.CarDraft) (domain.Car, error) {
	row := q.QueryRow(`
        UPDATE cars SET title = $1, description = $2, tags = $3, images = $4
        WHERE id = $5
        RETURNING id, title, description, tags, images, user_id, created_at`,
		draft.Title, draft.Description, pq.Array(draft.Tags), pq.Array(draft.Images), id)

	car, err := scanCar(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Car{}, internal_errors.NotFound("Car not found.")
		}
		return domain.Car{}, fmt.Errorf("failed to update car: %w", err)
	}
	return car, nil
}

func (s *Storage) deleteCar(q Querier, id domain.CarId) (domain.Car, error) {
	row := q.QueryRow(`
        DELETE FROM cars WHERE id = $1
        RETURNING id, title, description, tags, images, user_id, created_at`, id)

	car, err := scanCar(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Car{}, internal_errors.NotFound("Car not found.")
		}
		return domain.Car{}, fmt.Errorf("failed to delete car: %w", err)
	}
	return car, nil
}

func (s *Storage) queryCars(query string, args ...any) ([]domain.Car, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query cars: %w", err)
	}
	defer rows.Close()

	cars := []domain.Car{}
	for rows.Next() {
		var car domain.Car
		if err := rows.Scan(&car.Id, &car.Title, &car.Description, pq.Array(&car.Tags),
			pq.Array(&car.Images), &car.OwnerId, &car.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan car row: %w", err)
		}
		cars = append(cars, car)
	}
	return cars, rows.Err()
}

func scanCar(row *sql.Row) (domain.Car, error) {
	var car domain.Car
	err := row.Scan(&car.Id, &car.Title, &car.Description, pq.Array(&car.Tags),
		pq.Array(&car.Images), &car.OwnerId, &car.CreatedAt)
	return car, err
}
