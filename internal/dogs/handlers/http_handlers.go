package handlers

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gartstein/dogs/internal/dogs/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

// DogController defines the business logic interface that the HTTP
// handlers invoke.
type DogController interface {
	ListDogs(ctx context.Context, filter models.DogFilter, page models.PageRequest) (*models.Page[models.Dog], error)
	GetDog(ctx context.Context, id uuid.UUID) (*models.Dog, error)
	CreateDog(ctx context.Context, dog *models.Dog) (*models.Dog, error)
	UpdateDog(ctx context.Context, update *models.DogUpdate) (*models.Dog, error)
	DeleteDog(ctx context.Context, id uuid.UUID) error
}

// PageLimits bounds the size query parameter.
type PageLimits struct {
	DefaultSize int
	MaxSize     int
}

// DogHandler serves the dog endpoints, mapping requests to a DogController.
type DogHandler struct {
	service  DogController
	logger   *zap.Logger
	validate *validator.Validate
	limits   PageLimits
}

// NewDogHandler constructs a DogHandler with the given service, logger and
// page size limits.
func NewDogHandler(service DogController, logger *zap.Logger, limits PageLimits) *DogHandler {
	return &DogHandler{
		service:  service,
		logger:   logger.Named("http_handler"),
		validate: newValidator(),
		limits:   limits,
	}
}

// RegisterRoutes mounts the dog endpoints on r.
func (h *DogHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/dogs/dogs", func(r chi.Router) {
		r.Get("/", h.ListDogs)
		r.Post("/", h.CreateDog)
		r.Get("/{id}", h.GetDog)
		r.Put("/{id}", h.UpdateDog)
		r.Delete("/{id}", h.DeleteDog)
	})
}

// ListDogs godoc
//
//	@Summary		List dogs
//	@Description	Lists dogs that are not deleted. At most one filter applies: name, then breed, then supplier. Matching is a case-insensitive substring.
//	@Tags			dogs
//	@Produce		json
//	@Param			name		query		string	false	"Name contains"
//	@Param			breed		query		string	false	"Breed contains"
//	@Param			supplier	query		string	false	"Supplier name contains"
//	@Param			page		query		int		false	"0-based page number"
//	@Param			size		query		int		false	"Page size"
//	@Param			sort		query		[]string	false	"field[,asc|desc]"	collectionFormat(multi)
//	@Success		200			{object}	DogPageResponse
//	@Failure		400			{object}	ValidationErrorResponse
//	@Router			/api/dogs/dogs [get]
func (h *DogHandler) ListDogs(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	page, errs := h.pageRequest(query)
	if len(errs) > 0 {
		writeJSON(w, http.StatusBadRequest, ValidationErrorResponse{Errors: errs})
		return
	}

	params := make(map[string]string, len(query))
	for key := range query {
		params[key] = query.Get(key)
	}

	result, err := h.service.ListDogs(r.Context(), models.NewDogFilter(params), page)
	if err != nil {
		h.mapServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, pageToResponse(result))
}

// GetDog godoc
//
//	@Summary	Get a dog
//	@Description	Returns the dog with the given id, including soft-deleted dogs.
//	@Tags		dogs
//	@Produce	json
//	@Param		id	path		string	true	"Dog ID"	format(uuid)
//	@Success	200	{object}	DogResponse
//	@Failure	400	{object}	ErrorResponse
//	@Failure	404	{object}	ErrorResponse
//	@Router		/api/dogs/dogs/{id} [get]
func (h *DogHandler) GetDog(w http.ResponseWriter, r *http.Request) {
	id, ok := h.dogID(w, r)
	if !ok {
		return
	}

	dog, err := h.service.GetDog(r.Context(), id)
	if err != nil {
		h.mapServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, modelToResponse(dog))
}

// CreateDog godoc
//
//	@Summary		Create a dog
//	@Description	Creates a dog. The supplier is looked up by name and created when missing.
//	@Tags			dogs
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			dog	body		CreateDogRequest	true	"Dog"
//	@Success		201	{object}	DogResponse
//	@Failure		400	{object}	ValidationErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Router			/api/dogs/dogs [post]
func (h *DogHandler) CreateDog(w http.ResponseWriter, r *http.Request) {
	var req CreateDogRequest
	if !h.decode(w, r, &req) {
		return
	}

	created, err := h.service.CreateDog(r.Context(), requestToModel(&req))
	if err != nil {
		h.mapServiceError(w, err)
		return
	}
	h.logger.Info("Dog created",
		zap.String("dog_id", created.ID.String()),
		zap.String("supplier_id", created.Supplier.ID.String()),
	)
	writeJSON(w, http.StatusCreated, modelToResponse(created))
}

// UpdateDog godoc
//
//	@Summary		Update a dog
//	@Description	Overwrites only the fields present in the body. The supplier cannot be changed.
//	@Tags			dogs
//	@Accept			json
//	@Produce		json
//	@Security		BearerAuth
//	@Param			id	path		string				true	"Dog ID"	format(uuid)
//	@Param			dog	body		UpdateDogRequest	true	"Fields to change"
//	@Success		200	{object}	DogResponse
//	@Failure		400	{object}	ValidationErrorResponse
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/dogs/dogs/{id} [put]
func (h *DogHandler) UpdateDog(w http.ResponseWriter, r *http.Request) {
	id, ok := h.dogID(w, r)
	if !ok {
		return
	}

	var req UpdateDogRequest
	if !h.decode(w, r, &req) {
		return
	}

	updated, err := h.service.UpdateDog(r.Context(), requestToUpdate(&req, id))
	if err != nil {
		h.mapServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, modelToResponse(updated))
}

// DeleteDog godoc
//
//	@Summary		Delete a dog
//	@Description	Marks the dog as deleted. It stays readable by id.
//	@Tags			dogs
//	@Security		BearerAuth
//	@Param			id	path	string	true	"Dog ID"	format(uuid)
//	@Success		204
//	@Failure		401	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/dogs/dogs/{id} [delete]
func (h *DogHandler) DeleteDog(w http.ResponseWriter, r *http.Request) {
	id, ok := h.dogID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteDog(r.Context(), id); err != nil {
		h.mapServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *DogHandler) dogID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid dog id"})
		return uuid.Nil, false
	}
	return id, true
}

// decode reads a JSON body into dst and validates it, writing the 400
// response itself when either step fails.
func (h *DogHandler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(dst); err != nil {
		h.logger.Debug("Rejected request body", zap.Error(err))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		if errs := fieldErrors(err); errs != nil {
			writeJSON(w, http.StatusBadRequest, ValidationErrorResponse{Errors: errs})
			return false
		}
		h.mapServiceError(w, err)
		return false
	}
	return true
}

// pageRequest reads page, size and sort. Sizes above the maximum are capped.
func (h *DogHandler) pageRequest(query url.Values) (models.PageRequest, []FieldError) {
	req := models.PageRequest{Size: h.limits.DefaultSize}
	var errs []FieldError

	if v := query.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			errs = append(errs, FieldError{Field: "page", Message: "must be a non-negative integer"})
		}
		req.Page = n
	}
	if v := query.Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			errs = append(errs, FieldError{Field: "size", Message: "must be a positive integer"})
		}
		req.Size = n
	}
	if req.Size > h.limits.MaxSize {
		req.Size = h.limits.MaxSize
	}
	if req.Size > 0 && req.Page > math.MaxInt/req.Size {
		errs = append(errs, FieldError{Field: "page", Message: "is too large"})
	}

	for _, s := range query["sort"] {
		parts := strings.Split(s, ",")
		field := strings.TrimSpace(parts[0])
		if field == "" {
			continue
		}
		order := models.SortOrder{Field: field}
		if len(parts) > 1 {
			order.Desc = strings.EqualFold(strings.TrimSpace(parts[1]), "desc")
		}
		req.Sort = append(req.Sort, order)
	}
	return req, errs
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
