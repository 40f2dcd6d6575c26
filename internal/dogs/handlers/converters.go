package handlers

import (
	"errors"
	"net/http"
	"sort"
	"time"

	e "github.com/gartstein/dogs/internal/dogs/errors"
	"github.com/gartstein/dogs/internal/dogs/models"
	"github.com/gartstein/dogs/internal/pkg/utils"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const notFoundMessage = "Dog not found"

// CreateDogRequest is the body of POST /api/dogs/dogs.
type CreateDogRequest struct {
	Name                      string   `json:"name" validate:"required,notblank" example:"Rocky"`
	Breed                     string   `json:"breed" validate:"required,notblank" example:"Labrador"`
	Supplier                  string   `json:"supplier" validate:"required,notblank" example:"SupplierA"`
	CurrentStatus             string   `json:"currentStatus" validate:"required,oneof=IN_TRAINING IN_SERVICE RETIRED LEFT" example:"IN_SERVICE"`
	BadgeID                   *string  `json:"badgeId" validate:"omitnil,max=64" example:"B-123"`
	Gender                    *string  `json:"gender" validate:"omitnil,oneof=MALE FEMALE" example:"MALE"`
	BirthDate                 *string  `json:"birthDate" validate:"omitnil,datetime=2006-01-02" example:"2020-01-02"`
	DateAcquired              *string  `json:"dateAcquired" validate:"omitnil,datetime=2006-01-02" example:"2021-03-04"`
	LeavingDate               *string  `json:"leavingDate" validate:"omitnil,datetime=2006-01-02"`
	LeavingReason             *string  `json:"leavingReason" validate:"omitnil,oneof=TRANSFERRED RETIRED_PUT_DOWN KIA REJECTED RETIRED_REHOMED DIED"`
	KennellingCharacteristics []string `json:"kennellingCharacteristics" validate:"dive,notblank"`
}

// UpdateDogRequest is the body of PUT /api/dogs/dogs/{id}. Absent or null
// fields are left unchanged. There is no supplier field.
type UpdateDogRequest struct {
	Name                      *string  `json:"name" validate:"omitnil,notblank" example:"Max"`
	Breed                     *string  `json:"breed" validate:"omitnil,notblank"`
	BadgeID                   *string  `json:"badgeId" validate:"omitnil,max=64"`
	Gender                    *string  `json:"gender" validate:"omitnil,oneof=MALE FEMALE"`
	BirthDate                 *string  `json:"birthDate" validate:"omitnil,datetime=2006-01-02"`
	DateAcquired              *string  `json:"dateAcquired" validate:"omitnil,datetime=2006-01-02"`
	CurrentStatus             *string  `json:"currentStatus" validate:"omitnil,oneof=IN_TRAINING IN_SERVICE RETIRED LEFT"`
	LeavingDate               *string  `json:"leavingDate" validate:"omitnil,datetime=2006-01-02"`
	LeavingReason             *string  `json:"leavingReason" validate:"omitnil,oneof=TRANSFERRED RETIRED_PUT_DOWN KIA REJECTED RETIRED_REHOMED DIED"`
	KennellingCharacteristics []string `json:"kennellingCharacteristics" validate:"omitnil,dive,notblank"`
}

// DogResponse is the public view of a dog.
type DogResponse struct {
	ID                        string   `json:"id" example:"5b0c1f4e-8a43-4f4e-9d4b-2f1c3f0a9e11"`
	Name                      string   `json:"name" example:"Rocky"`
	Breed                     string   `json:"breed" example:"Labrador"`
	Supplier                  string   `json:"supplier" example:"SupplierA"`
	BadgeID                   *string  `json:"badgeId"`
	Gender                    *string  `json:"gender"`
	BirthDate                 *string  `json:"birthDate"`
	DateAcquired              *string  `json:"dateAcquired"`
	LeavingDate               *string  `json:"leavingDate"`
	LeavingReason             *string  `json:"leavingReason"`
	CurrentStatus             string   `json:"currentStatus" example:"IN_SERVICE"`
	KennellingCharacteristics []string `json:"kennellingCharacteristics"`
}

// DogPageResponse is one page of a dog listing.
type DogPageResponse struct {
	Content       []DogResponse `json:"content"`
	Page          int           `json:"page"`
	Size          int           `json:"size"`
	TotalElements int64         `json:"totalElements"`
	TotalPages    int           `json:"totalPages"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type ValidationErrorResponse struct {
	Errors []FieldError `json:"errors"`
}

// requestToModel converts a validated create request into a Dog.
func requestToModel(req *CreateDogRequest) *models.Dog {
	return &models.Dog{
		Name:                      req.Name,
		Breed:                     req.Breed,
		Supplier:                  models.Supplier{Name: req.Supplier},
		BadgeID:                   req.BadgeID,
		CurrentStatus:             models.CurrentStatus(req.CurrentStatus),
		Gender:                    enumPtr[models.Gender](req.Gender),
		BirthDate:                 parseDate(req.BirthDate),
		DateAcquired:              parseDate(req.DateAcquired),
		LeavingDate:               parseDate(req.LeavingDate),
		LeavingReason:             enumPtr[models.LeavingReason](req.LeavingReason),
		KennellingCharacteristics: models.UniqueStrings(req.KennellingCharacteristics),
	}
}

// requestToUpdate converts a validated update request into a DogUpdate.
func requestToUpdate(req *UpdateDogRequest, id uuid.UUID) *models.DogUpdate {
	return &models.DogUpdate{
		ID:                        id,
		Name:                      req.Name,
		Breed:                     req.Breed,
		BadgeID:                   req.BadgeID,
		Gender:                    enumPtr[models.Gender](req.Gender),
		BirthDate:                 parseDate(req.BirthDate),
		DateAcquired:              parseDate(req.DateAcquired),
		CurrentStatus:             enumPtr[models.CurrentStatus](req.CurrentStatus),
		LeavingDate:               parseDate(req.LeavingDate),
		LeavingReason:             enumPtr[models.LeavingReason](req.LeavingReason),
		KennellingCharacteristics: req.KennellingCharacteristics,
	}
}

// modelToResponse converts a Dog into its public view. Characteristics are
// sorted so responses are stable.
func modelToResponse(dog *models.Dog) DogResponse {
	characteristics := append([]string{}, dog.KennellingCharacteristics...)
	sort.Strings(characteristics)

	return DogResponse{
		ID:                        dog.ID.String(),
		Name:                      dog.Name,
		Breed:                     dog.Breed,
		Supplier:                  dog.Supplier.Name,
		BadgeID:                   dog.BadgeID,
		Gender:                    enumString(dog.Gender),
		BirthDate:                 formatDate(dog.BirthDate),
		DateAcquired:              formatDate(dog.DateAcquired),
		LeavingDate:               formatDate(dog.LeavingDate),
		LeavingReason:             enumString(dog.LeavingReason),
		CurrentStatus:             string(dog.CurrentStatus),
		KennellingCharacteristics: characteristics,
	}
}

func pageToResponse(p *models.Page[models.Dog]) DogPageResponse {
	content := models.MapPage(p, func(d models.Dog) DogResponse { return modelToResponse(&d) })
	return DogPageResponse{
		Content:       content.Content,
		Page:          content.Page,
		Size:          content.Size,
		TotalElements: content.TotalElements,
		TotalPages:    content.TotalPages,
	}
}

// parseDate expects a value already checked by the datetime rule.
func parseDate(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil
	}
	return utils.Ptr(t)
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	return utils.Ptr(t.Format(dateLayout))
}

func enumPtr[T ~string](s *string) *T {
	if s == nil {
		return nil
	}
	return utils.Ptr(T(*s))
}

func enumString[T ~string](v *T) *string {
	if v == nil {
		return nil
	}
	return utils.Ptr(string(*v))
}

// mapServiceError maps domain or repository errors to HTTP responses.
func (h *DogHandler) mapServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, e.ErrNotFound):
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: notFoundMessage})
	case errors.Is(err, e.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Errors: []FieldError{{Field: "request", Message: err.Error()}},
		})
	default:
		h.logger.Error("Internal server error", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
