// Package controller implements the business logic (service layer) of the
// dog registry, orchestrating repository operations inside transactions
// and sending lifecycle events.
package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gartstein/dogs/internal/dogs/db"
	e "github.com/gartstein/dogs/internal/dogs/errors"
	"github.com/gartstein/dogs/internal/dogs/events"
	"github.com/gartstein/dogs/internal/dogs/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EventProducer interface {
	Produce(eventType events.EventType, dog *models.Dog)
}

// DogService manages dog records via repository operations and event
// production.
type DogService struct {
	repo      db.Store
	suppliers *SupplierResolver
	producer  EventProducer
	logger    *zap.Logger
}

// NewDogService constructs a DogService with a repository, an event
// producer, and a logger.
func NewDogService(repo db.Store, producer EventProducer, logger *zap.Logger) *DogService {
	return &DogService{
		repo:      repo,
		suppliers: NewSupplierResolver(repo, logger),
		producer:  producer,
		logger:    logger.Named("dog_service"),
	}
}

// ListDogs returns a page of dogs that are not soft-deleted, narrowed by filter.
func (s *DogService) ListDogs(ctx context.Context, filter models.DogFilter, page models.PageRequest) (*models.Page[models.Dog], error) {
	if page.Page < 0 || page.Size <= 0 {
		return nil, fmt.Errorf("%w: invalid page request", e.ErrInvalidInput)
	}
	result, err := s.repo.ListDogs(ctx, filter, page)
	if err != nil {
		return nil, fmt.Errorf("failed to list dogs: %w", err)
	}
	return result, nil
}

// GetDog retrieves a dog by ID. Soft-deleted dogs are returned as well.
func (s *DogService) GetDog(ctx context.Context, id uuid.UUID) (*models.Dog, error) {
	dog, err := s.repo.GetDog(ctx, id)
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get dog: %w", err)
	}
	return dog, nil
}

// CreateDog validates the dog, resolves its supplier by name and inserts
// both in one transaction.
func (s *DogService) CreateDog(ctx context.Context, dog *models.Dog) (*models.Dog, error) {
	if err := validateDog(dog); err != nil {
		return nil, err
	}

	dog.ID = uuid.New()
	dog.Deleted = false
	dog.KennellingCharacteristics = models.UniqueStrings(dog.KennellingCharacteristics)

	err := s.repo.WithTransaction(ctx, func(tx db.Store) error {
		supplier, err := s.suppliers.resolve(ctx, tx, dog.Supplier.Name)
		if err != nil {
			return err
		}
		dog.Supplier = *supplier
		return tx.CreateDog(ctx, dog)
	})
	if err != nil {
		if errors.Is(err, e.ErrInvalidInput) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create dog: %w", err)
	}

	go func() {
		s.producer.Produce(events.DogCreated, dog)
	}()
	return dog, nil
}

// UpdateDog overwrites the fields present in update and returns the stored
// result. The supplier cannot change and the deleted flag is left as is.
func (s *DogService) UpdateDog(ctx context.Context, update *models.DogUpdate) (*models.Dog, error) {
	if update.ID == uuid.Nil {
		return nil, fmt.Errorf("%w: invalid dog ID", e.ErrInvalidInput)
	}
	if err := validateUpdate(update); err != nil {
		return nil, err
	}

	var updated *models.Dog
	err := s.repo.WithTransaction(ctx, func(tx db.Store) error {
		dog, err := tx.GetDog(ctx, update.ID)
		if err != nil {
			return err
		}
		dog.Apply(update)
		if err := tx.UpdateDog(ctx, dog); err != nil {
			return err
		}
		updated, err = tx.GetDog(ctx, update.ID)
		return err
	})
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update dog: %w", err)
	}

	go func() {
		s.producer.Produce(events.DogUpdated, updated)
	}()
	return updated, nil
}

// DeleteDog marks a dog as deleted and fires a deletion event.
func (s *DogService) DeleteDog(ctx context.Context, id uuid.UUID) error {
	var dog *models.Dog
	err := s.repo.WithTransaction(ctx, func(tx db.Store) error {
		var err error
		dog, err = tx.GetDog(ctx, id)
		if err != nil {
			return err
		}
		return tx.SoftDeleteDog(ctx, id)
	})
	if err != nil {
		if errors.Is(err, e.ErrNotFound) {
			return err
		}
		return fmt.Errorf("failed to delete dog: %w", err)
	}
	dog.Deleted = true

	go func() {
		s.producer.Produce(events.DogDeleted, dog)
	}()
	return nil
}

func validateDog(dog *models.Dog) error {
	switch {
	case strings.TrimSpace(dog.Name) == "":
		return fmt.Errorf("%w: name is required", e.ErrInvalidInput)
	case strings.TrimSpace(dog.Breed) == "":
		return fmt.Errorf("%w: breed is required", e.ErrInvalidInput)
	case strings.TrimSpace(dog.Supplier.Name) == "":
		return fmt.Errorf("%w: supplier is required", e.ErrInvalidInput)
	case !dog.CurrentStatus.Valid():
		return fmt.Errorf("%w: invalid current status %q", e.ErrInvalidInput, dog.CurrentStatus)
	case dog.Gender != nil && !dog.Gender.Valid():
		return fmt.Errorf("%w: invalid gender %q", e.ErrInvalidInput, *dog.Gender)
	case dog.LeavingReason != nil && !dog.LeavingReason.Valid():
		return fmt.Errorf("%w: invalid leaving reason %q", e.ErrInvalidInput, *dog.LeavingReason)
	}
	return nil
}

func validateUpdate(u *models.DogUpdate) error {
	switch {
	case u.Name != nil && strings.TrimSpace(*u.Name) == "":
		return fmt.Errorf("%w: name must not be blank", e.ErrInvalidInput)
	case u.Breed != nil && strings.TrimSpace(*u.Breed) == "":
		return fmt.Errorf("%w: breed must not be blank", e.ErrInvalidInput)
	case u.CurrentStatus != nil && !u.CurrentStatus.Valid():
		return fmt.Errorf("%w: invalid current status %q", e.ErrInvalidInput, *u.CurrentStatus)
	case u.Gender != nil && !u.Gender.Valid():
		return fmt.Errorf("%w: invalid gender %q", e.ErrInvalidInput, *u.Gender)
	case u.LeavingReason != nil && !u.LeavingReason.Valid():
		return fmt.Errorf("%w: invalid leaving reason %q", e.ErrInvalidInput, *u.LeavingReason)
	}
	return nil
}
