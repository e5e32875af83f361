package vets

import (
	"errors"
	"net/http"

	"animal-sos/internal/domain/users"
	"animal-sos/internal/middleware"
	"animal-sos/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/vets", func(vr chi.Router) {
		vr.Get("/", listVetsHandler(svc))
		vr.Get("/{vetID}", getVetHandler(svc))
		vr.Post("/", createVetHandler(svc))
		vr.Patch("/{vetID}", updateVetHandler(svc))
	})
}

type vetRequest struct {
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Phone     string  `json:"phone"`
	Email     *string `json:"email"`
	Latitude  *string `json:"latitude"`
	Longitude *string `json:"longitude"`
	Rating    *int    `json:"rating"`
	IsOpen    *bool   `json:"isOpen"`
}

type updateVetRequest struct {
	Name      *string `json:"name"`
	Address   *string `json:"address"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	Latitude  *string `json:"latitude"`
	Longitude *string `json:"longitude"`
	Rating    *int    `json:"rating"`
	IsOpen    *bool   `json:"isOpen"`
}

type vetResponse struct {
	ID        int     `json:"id"`
	Name      string  `json:"name"`
	Address   string  `json:"address"`
	Phone     string  `json:"phone"`
	Email     *string `json:"email"`
	Latitude  *string `json:"latitude"`
	Longitude *string `json:"longitude"`
	Rating    *int    `json:"rating"`
	IsOpen    *bool   `json:"isOpen"`
}

// @Summary Listar veterinarias
// @Tags vets
// @Produce json
// @Success 200 {array} vetResponse
// @Router /vets [get]
func listVetsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpjson.Error(w, http.StatusInternalServerError, "internal error")
			return
		}
		out := make([]vetResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toVetResponse(v))
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}

// @Summary Obtener veterinaria
// @Tags vets
// @Produce json
// @Param vetID path int true "ID de la veterinaria"
// @Success 200 {object} vetResponse
// @Failure 404 {object} httpjson.ErrorResponse
// @Router /vets/{vetID} [get]
func getVetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpjson.PathID(r, "vetID")
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		v, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toVetResponse(v))
	}
}

// @Summary Alta de veterinaria
// @Description Solo admin.
// @Tags vets
// @Accept json
// @Produce json
// @Param payload body vetRequest true "Datos de la veterinaria"
// @Success 201 {object} vetResponse
// @Failure 400 {object} httpjson.ErrorResponse
// @Failure 401 {object} httpjson.ErrorResponse
// @Failure 403 {object} httpjson.ErrorResponse
// @Router /vets [post]
func createVetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}

		var req vetRequest
		if err := httpjson.Decode(w, r, &req, false); err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		v, err := svc.Create(r.Context(), Insert(req))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpjson.Write(w, http.StatusCreated, toVetResponse(v))
	}
}

// @Summary Actualizar veterinaria
// @Description Solo admin.
// @Tags vets
// @Accept json
// @Produce json
// @Param vetID path int true "ID de la veterinaria"
// @Param payload body updateVetRequest true "Campos a modificar"
// @Success 200 {object} vetResponse
// @Failure 400 {object} httpjson.ErrorResponse
// @Failure 401 {object} httpjson.ErrorResponse
// @Failure 403 {object} httpjson.ErrorResponse
// @Failure 404 {object} httpjson.ErrorResponse
// @Router /vets/{vetID} [patch]
func updateVetHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireAdmin(w, r) {
			return
		}

		id, err := httpjson.PathID(r, "vetID")
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		var req updateVetRequest
		if err := httpjson.Decode(w, r, &req, true); err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		v, err := svc.Update(r.Context(), id, Patch(req))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toVetResponse(v))
	}
}

func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	claims, ok := middleware.GetClaims(r.Context())
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
		return false
	}
	if !middleware.HasRole(claims, string(users.RoleAdmin)) {
		httpjson.Error(w, http.StatusForbidden, "forbidden")
		return false
	}
	return true
}

func toVetResponse(v Vet) vetResponse {
	return vetResponse{
		ID:        v.ID,
		Name:      v.Name,
		Address:   v.Address,
		Phone:     v.Phone,
		Email:     v.Email,
		Latitude:  v.Latitude,
		Longitude: v.Longitude,
		Rating:    v.Rating,
		IsOpen:    v.IsOpen,
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
