package controller

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/gartstein/dogs/internal/dogs/db"
	e "github.com/gartstein/dogs/internal/dogs/errors"
	"github.com/gartstein/dogs/internal/dogs/events"
	"github.com/gartstein/dogs/internal/dogs/models"
	"github.com/gartstein/dogs/internal/pkg/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

// MockRepository implements db.Store for testing. WithTransaction runs the
// callback against the mock itself.
type MockRepository struct {
	findSupplierByName func(context.Context, string) (*models.Supplier, error)
	createSupplier     func(context.Context, *models.Supplier) error
	createDog          func(context.Context, *models.Dog) error
	getDog             func(context.Context, uuid.UUID) (*models.Dog, error)
	listDogs           func(context.Context, models.DogFilter, models.PageRequest) (*models.Page[models.Dog], error)
	updateDog          func(context.Context, *models.Dog) error
	softDeleteDog      func(context.Context, uuid.UUID) error
}

func (m *MockRepository) FindSupplierByName(ctx context.Context, name string) (*models.Supplier, error) {
	return m.findSupplierByName(ctx, name)
}

func (m *MockRepository) CreateSupplier(ctx context.Context, s *models.Supplier) error {
	return m.createSupplier(ctx, s)
}

func (m *MockRepository) CreateDog(ctx context.Context, d *models.Dog) error {
	return m.createDog(ctx, d)
}

func (m *MockRepository) GetDog(ctx context.Context, id uuid.UUID) (*models.Dog, error) {
	return m.getDog(ctx, id)
}

func (m *MockRepository) ListDogs(ctx context.Context, f models.DogFilter, p models.PageRequest) (*models.Page[models.Dog], error) {
	return m.listDogs(ctx, f, p)
}

func (m *MockRepository) UpdateDog(ctx context.Context, d *models.Dog) error {
	return m.updateDog(ctx, d)
}

func (m *MockRepository) SoftDeleteDog(ctx context.Context, id uuid.UUID) error {
	return m.softDeleteDog(ctx, id)
}

func (m *MockRepository) WithTransaction(_ context.Context, fn func(db.Store) error) error {
	return fn(m)
}

type producedEvent struct {
	EventType events.EventType
	Dog       *models.Dog
}

// MockProducer is a test double for the Kafka producer.
type MockProducer struct {
	mu             sync.Mutex
	producedEvents []producedEvent
	wg             *sync.WaitGroup
}

// Produce records the event and signals the wait group.
func (m *MockProducer) Produce(eventType events.EventType, dog *models.Dog) {
	m.mu.Lock()
	m.producedEvents = append(m.producedEvents, producedEvent{eventType, dog})
	m.mu.Unlock()
	if m.wg != nil {
		m.wg.Done()
	}
}

func validDog() *models.Dog {
	return &models.Dog{
		Name:                      "Rocky",
		Breed:                     "Labrador",
		Supplier:                  models.Supplier{Name: "SupplierA"},
		CurrentStatus:             models.InService,
		KennellingCharacteristics: []string{"calm", "calm"},
	}
}

func TestDogService_CreateDog(t *testing.T) {
	existing := &models.Supplier{ID: uuid.New(), Name: "SupplierA"}

	tests := []struct {
		name          string
		input         *models.Dog
		mockSetup     func(*MockRepository)
		expectError   bool
		expectedError error
		wantSupplier  *uuid.UUID
	}{
		{
			name:  "existing supplier is reused",
			input: validDog(),
			mockSetup: func(mr *MockRepository) {
				mr.findSupplierByName = func(_ context.Context, _ string) (*models.Supplier, error) {
					return existing, nil
				}
				mr.createDog = func(_ context.Context, _ *models.Dog) error { return nil }
			},
			wantSupplier: &existing.ID,
		},
		{
			name:  "new supplier is created",
			input: validDog(),
			mockSetup: func(mr *MockRepository) {
				mr.findSupplierByName = func(_ context.Context, _ string) (*models.Supplier, error) {
					return nil, e.ErrNotFound
				}
				mr.createSupplier = func(_ context.Context, s *models.Supplier) error {
					if s.ID == uuid.Nil {
						return errors.New("supplier id not set")
					}
					return nil
				}
				mr.createDog = func(_ context.Context, _ *models.Dog) error { return nil }
			},
		},
		{
			name: "missing name",
			input: func() *models.Dog {
				d := validDog()
				d.Name = " "
				return d
			}(),
			mockSetup:     func(_ *MockRepository) {},
			expectError:   true,
			expectedError: e.ErrInvalidInput,
		},
		{
			name: "missing supplier",
			input: func() *models.Dog {
				d := validDog()
				d.Supplier.Name = ""
				return d
			}(),
			mockSetup:     func(_ *MockRepository) {},
			expectError:   true,
			expectedError: e.ErrInvalidInput,
		},
		{
			name: "invalid status",
			input: func() *models.Dog {
				d := validDog()
				d.CurrentStatus = "SLEEPING"
				return d
			}(),
			mockSetup:     func(_ *MockRepository) {},
			expectError:   true,
			expectedError: e.ErrInvalidInput,
		},
		{
			name: "invalid gender",
			input: func() *models.Dog {
				d := validDog()
				d.Gender = utils.Ptr(models.Gender("OTHER"))
				return d
			}(),
			mockSetup:     func(_ *MockRepository) {},
			expectError:   true,
			expectedError: e.ErrInvalidInput,
		},
		{
			name:  "duplicate badge",
			input: validDog(),
			mockSetup: func(mr *MockRepository) {
				mr.findSupplierByName = func(_ context.Context, _ string) (*models.Supplier, error) {
					return existing, nil
				}
				mr.createDog = func(_ context.Context, _ *models.Dog) error {
					return e.ErrConstraintViolation
				}
			},
			expectError:   true,
			expectedError: e.ErrConstraintViolation,
		},
		{
			name:  "supplier lookup failure",
			input: validDog(),
			mockSetup: func(mr *MockRepository) {
				mr.findSupplierByName = func(_ context.Context, _ string) (*models.Supplier, error) {
					return nil, errors.New("database error")
				}
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &MockRepository{}
			mockProducer := &MockProducer{wg: new(sync.WaitGroup)}
			tt.mockSetup(mockRepo)
			service := NewDogService(mockRepo, mockProducer, zaptest.NewLogger(t))

			if !tt.expectError {
				mockProducer.wg.Add(1)
			}

			result, err := service.CreateDog(context.Background(), tt.input)

			if tt.expectError {
				require.Error(t, err)
				if tt.expectedError != nil {
					assert.ErrorIs(t, err, tt.expectedError)
				}
				assert.Empty(t, mockProducer.producedEvents)
				return
			}

			mockProducer.wg.Wait()
			require.NoError(t, err)
			assert.NotEqual(t, uuid.Nil, result.ID)
			assert.NotEqual(t, uuid.Nil, result.Supplier.ID)
			assert.Equal(t, "SupplierA", result.Supplier.Name)
			assert.Equal(t, []string{"calm"}, result.KennellingCharacteristics)
			if tt.wantSupplier != nil {
				assert.Equal(t, *tt.wantSupplier, result.Supplier.ID)
			}
			require.Len(t, mockProducer.producedEvents, 1)
			assert.Equal(t, events.DogCreated, mockProducer.producedEvents[0].EventType)
		})
	}
}

func TestDogService_GetDog(t *testing.T) {
	testID := uuid.New()

	tests := []struct {
		name          string
		input         uuid.UUID
		mockSetup     func(*MockRepository)
		expectedError error
	}{
		{
			name:  "successful get",
			input: testID,
			mockSetup: func(mr *MockRepository) {
				mr.getDog = func(_ context.Context, id uuid.UUID) (*models.Dog, error) {
					return &models.Dog{ID: id, Deleted: true}, nil
				}
			},
		},
		{
			name:  "not found",
			input: uuid.New(),
			mockSetup: func(mr *MockRepository) {
				mr.getDog = func(_ context.Context, _ uuid.UUID) (*models.Dog, error) {
					return nil, e.ErrNotFound
				}
			},
			expectedError: e.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &MockRepository{}
			tt.mockSetup(mockRepo)

			service := NewDogService(mockRepo, &MockProducer{}, zaptest.NewLogger(t))
			result, err := service.GetDog(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.input, result.ID)
		})
	}
}

func TestDogService_ListDogs(t *testing.T) {
	mockRepo := &MockRepository{}
	var gotFilter models.DogFilter
	mockRepo.listDogs = func(_ context.Context, f models.DogFilter, p models.PageRequest) (*models.Page[models.Dog], error) {
		gotFilter = f
		return models.NewPage([]models.Dog{{Name: "Rocky"}}, p, 1), nil
	}
	service := NewDogService(mockRepo, &MockProducer{}, zaptest.NewLogger(t))

	filter := models.DogFilter{Field: models.FilterBreed, Value: "Lab"}
	page, err := service.ListDogs(context.Background(), filter, models.PageRequest{Size: 20})
	require.NoError(t, err)
	assert.Equal(t, filter, gotFilter)
	assert.Len(t, page.Content, 1)

	_, err = service.ListDogs(context.Background(), filter, models.PageRequest{Page: -1, Size: 20})
	assert.ErrorIs(t, err, e.ErrInvalidInput)

	_, err = service.ListDogs(context.Background(), filter, models.PageRequest{Size: 0})
	assert.ErrorIs(t, err, e.ErrInvalidInput)
}

func TestDogService_UpdateDog(t *testing.T) {
	testID := uuid.New()
	supplier := models.Supplier{ID: uuid.New(), Name: "SupplierA"}

	tests := []struct {
		name          string
		input         *models.DogUpdate
		mockSetup     func(*MockRepository)
		expectedError error
	}{
		{
			name:  "successful update",
			input: &models.DogUpdate{ID: testID, Name: utils.Ptr("Max")},
			mockSetup: func(mr *MockRepository) {
				stored := &models.Dog{ID: testID, Name: "Rocky", Breed: "Labrador", Supplier: supplier, CurrentStatus: models.InService}
				mr.getDog = func(_ context.Context, _ uuid.UUID) (*models.Dog, error) {
					copied := *stored
					return &copied, nil
				}
				mr.updateDog = func(_ context.Context, d *models.Dog) error {
					stored = d
					return nil
				}
			},
		},
		{
			name:          "invalid ID",
			input:         &models.DogUpdate{ID: uuid.Nil},
			mockSetup:     func(_ *MockRepository) {},
			expectedError: e.ErrInvalidInput,
		},
		{
			name:          "invalid leaving reason",
			input:         &models.DogUpdate{ID: testID, LeavingReason: utils.Ptr(models.LeavingReason("BORED"))},
			mockSetup:     func(_ *MockRepository) {},
			expectedError: e.ErrInvalidInput,
		},
		{
			name:  "not found",
			input: &models.DogUpdate{ID: testID, Name: utils.Ptr("Max")},
			mockSetup: func(mr *MockRepository) {
				mr.getDog = func(_ context.Context, _ uuid.UUID) (*models.Dog, error) {
					return nil, e.ErrNotFound
				}
			},
			expectedError: e.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &MockRepository{}
			mockProducer := &MockProducer{wg: new(sync.WaitGroup)}
			tt.mockSetup(mockRepo)
			service := NewDogService(mockRepo, mockProducer, zaptest.NewLogger(t))

			if tt.expectedError == nil {
				mockProducer.wg.Add(1)
			}

			result, err := service.UpdateDog(context.Background(), tt.input)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				return
			}
			mockProducer.wg.Wait()
			require.NoError(t, err)
			assert.Equal(t, "Max", result.Name)
			assert.Equal(t, "Labrador", result.Breed)
			assert.Equal(t, supplier, result.Supplier)
			require.Len(t, mockProducer.producedEvents, 1)
			assert.Equal(t, events.DogUpdated, mockProducer.producedEvents[0].EventType)
		})
	}
}

func TestDogService_DeleteDog(t *testing.T) {
	testID := uuid.New()

	tests := []struct {
		name          string
		mockSetup     func(*MockRepository)
		expectedError error
	}{
		{
			name: "successful deletion",
			mockSetup: func(mr *MockRepository) {
				mr.getDog = func(_ context.Context, _ uuid.UUID) (*models.Dog, error) {
					return &models.Dog{ID: testID}, nil
				}
				mr.softDeleteDog = func(_ context.Context, _ uuid.UUID) error { return nil }
			},
		},
		{
			name: "not found",
			mockSetup: func(mr *MockRepository) {
				mr.getDog = func(_ context.Context, _ uuid.UUID) (*models.Dog, error) {
					return nil, e.ErrNotFound
				}
			},
			expectedError: e.ErrNotFound,
		},
		{
			name: "repository error",
			mockSetup: func(mr *MockRepository) {
				mr.getDog = func(_ context.Context, _ uuid.UUID) (*models.Dog, error) {
					return &models.Dog{ID: testID}, nil
				}
				mr.softDeleteDog = func(_ context.Context, _ uuid.UUID) error {
					return errors.New("database error")
				}
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &MockRepository{}
			mockProducer := &MockProducer{wg: new(sync.WaitGroup)}
			tt.mockSetup(mockRepo)
			service := NewDogService(mockRepo, mockProducer, zaptest.NewLogger(t))

			if tt.expectedError == nil {
				mockProducer.wg.Add(1)
			}

			err := service.DeleteDog(context.Background(), testID)

			if tt.expectedError != nil {
				require.Error(t, err)
				if errors.Is(tt.expectedError, e.ErrNotFound) {
					assert.ErrorIs(t, err, e.ErrNotFound)
				}
				assert.Empty(t, mockProducer.producedEvents)
				return
			}
			mockProducer.wg.Wait()
			require.NoError(t, err)
			require.Len(t, mockProducer.producedEvents, 1)
			assert.Equal(t, events.DogDeleted, mockProducer.producedEvents[0].EventType)
			assert.True(t, mockProducer.producedEvents[0].Dog.Deleted)
		})
	}
}
