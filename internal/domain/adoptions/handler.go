package adoptions

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"animal-sos/internal/domain/users"
	"animal-sos/internal/middleware"
	"animal-sos/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/adoptions", func(ar chi.Router) {
		ar.Get("/", listAdoptionsHandler(svc))
		ar.Get("/{adoptionID}", getAdoptionHandler(svc))
		ar.Post("/", createAdoptionHandler(svc))
		ar.Patch("/{adoptionID}", updateAdoptionHandler(svc))
	})
}

type createAdoptionRequest struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Breed       *string `json:"breed"`
	Age         string  `json:"age"`
	Gender      string  `json:"gender"`
	Description string  `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	Status      Status  `json:"status"`
}

type updateAdoptionRequest struct {
	Name        *string `json:"name"`
	Type        *string `json:"type"`
	Breed       *string `json:"breed"`
	Age         *string `json:"age"`
	Gender      *string `json:"gender"`
	Description *string `json:"description"`
	ImageURL    *string `json:"imageUrl"`
	Status      *Status `json:"status"`
}

type adoptionResponse struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Breed       *string   `json:"breed"`
	Age         string    `json:"age"`
	Gender      string    `json:"gender"`
	Description string    `json:"description"`
	ImageURL    *string   `json:"imageUrl"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// @Summary Listar adopciones
// @Tags adoptions
// @Produce json
// @Param type query string false "Tipo de animal (dog, cat...)"
// @Param status query string false "available, pending, adopted"
// @Success 200 {array} adoptionResponse
// @Failure 400 {object} httpjson.ErrorResponse
// @Router /adoptions [get]
func listAdoptionsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		items, err := svc.List(r.Context(), q.Get("type"), Status(strings.TrimSpace(q.Get("status"))))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		out := make([]adoptionResponse, 0, len(items))
		for _, a := range items {
			out = append(out, toAdoptionResponse(a))
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}

// @Summary Obtener adopción
// @Tags adoptions
// @Produce json
// @Param adoptionID path int true "ID de la adopción"
// @Success 200 {object} adoptionResponse
// @Failure 404 {object} httpjson.ErrorResponse
// @Router /adoptions/{adoptionID} [get]
func getAdoptionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpjson.PathID(r, "adoptionID")
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		a, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toAdoptionResponse(a))
	}
}

// @Summary Publicar adopción
// @Description ONG o admin.
// @Tags adoptions
// @Accept json
// @Produce json
// @Param payload body createAdoptionRequest true "Datos del animal"
// @Success 201 {object} adoptionResponse
// @Failure 400 {object} httpjson.ErrorResponse
// @Failure 401 {object} httpjson.ErrorResponse
// @Failure 403 {object} httpjson.ErrorResponse
// @Router /adoptions [post]
func createAdoptionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireShelter(w, r) {
			return
		}

		var req createAdoptionRequest
		if err := httpjson.Decode(w, r, &req, false); err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		a, err := svc.Create(r.Context(), Insert(req))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpjson.Write(w, http.StatusCreated, toAdoptionResponse(a))
	}
}

// @Summary Actualizar adopción
// @Description ONG o admin.
// @Tags adoptions
// @Accept json
// @Produce json
// @Param adoptionID path int true "ID de la adopción"
// @Param payload body updateAdoptionRequest true "Campos a modificar"
// @Success 200 {object} adoptionResponse
// @Failure 400 {object} httpjson.ErrorResponse
// @Failure 401 {object} httpjson.ErrorResponse
// @Failure 403 {object} httpjson.ErrorResponse
// @Failure 404 {object} httpjson.ErrorResponse
// @Router /adoptions/{adoptionID} [patch]
func updateAdoptionHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireShelter(w, r) {
			return
		}

		id, err := httpjson.PathID(r, "adoptionID")
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		var req updateAdoptionRequest
		if err := httpjson.Decode(w, r, &req, true); err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		a, err := svc.Update(r.Context(), id, Patch(req))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toAdoptionResponse(a))
	}
}

// requireShelter: ONG o admin.
func requireShelter(w http.ResponseWriter, r *http.Request) bool {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return false
	}
	if !middleware.HasRole(claims, string(users.RoleNGO), string(users.RoleAdmin)) {
		httpjson.Error(w, http.StatusForbidden, "forbidden")
		return false
	}
	return true
}

func toAdoptionResponse(a Adoption) adoptionResponse {
	return adoptionResponse{
		ID:          a.ID,
		Name:        a.Name,
		Type:        a.Type,
		Breed:       a.Breed,
		Age:         a.Age,
		Gender:      a.Gender,
		Description: a.Description,
		ImageURL:    a.ImageURL,
		Status:      a.Status,
		CreatedAt:   a.CreatedAt,
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpjson.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		httpjson.Error(w, http.StatusNotFound, err.Error())
	default:
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
	}
}
