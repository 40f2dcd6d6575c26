package controller

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gartstein/dogs/internal/dogs/db"
	e "github.com/gartstein/dogs/internal/dogs/errors"
	"github.com/gartstein/dogs/internal/dogs/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SupplierResolver finds suppliers by name, creating them on first use.
type SupplierResolver struct {
	repo   db.Store
	logger *zap.Logger
}

func NewSupplierResolver(repo db.Store, logger *zap.Logger) *SupplierResolver {
	return &SupplierResolver{
		repo:   repo,
		logger: logger.Named("supplier_resolver"),
	}
}

// ResolveSupplier returns the supplier called name, creating it in its own
// transaction when it does not exist yet. Resolving the same name twice
// returns the same supplier.
func (r *SupplierResolver) ResolveSupplier(ctx context.Context, name string) (*models.Supplier, error) {
	var supplier *models.Supplier
	err := r.repo.WithTransaction(ctx, func(tx db.Store) error {
		var err error
		supplier, err = r.resolve(ctx, tx, name)
		return err
	})
	if err != nil {
		return nil, err
	}
	return supplier, nil
}

// resolve runs find-or-create against tx, so callers that already hold a
// transaction can resolve within it.
func (r *SupplierResolver) resolve(ctx context.Context, tx db.Store, name string) (*models.Supplier, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: supplier name is required", e.ErrInvalidInput)
	}

	supplier, err := tx.FindSupplierByName(ctx, name)
	if err == nil {
		return supplier, nil
	}
	if !errors.Is(err, e.ErrNotFound) {
		return nil, fmt.Errorf("failed to find supplier: %w", err)
	}

	supplier = &models.Supplier{ID: uuid.New(), Name: name}
	if err := tx.CreateSupplier(ctx, supplier); err != nil {
		return nil, fmt.Errorf("failed to create supplier: %w", err)
	}
	r.logger.Info("Created supplier",
		zap.String("supplier_id", supplier.ID.String()),
		zap.String("name", name),
	)
	return supplier, nil
}
