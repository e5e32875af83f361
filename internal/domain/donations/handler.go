package donations

import (
	"errors"
	"net/http"
	"time"

	"animal-sos/internal/domain/users"
	"animal-sos/internal/middleware"
	"animal-sos/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/donations", func(dr chi.Router) {
		dr.Get("/", listDonationsHandler(svc))
		dr.Get("/{donationID}", getDonationHandler(svc))
		dr.Post("/", createDonationHandler(svc))
		dr.Patch("/{donationID}", updateDonationHandler(svc))
		dr.Post("/{donationID}/contribute", contributeHandler(svc))
	})
}

type createDonationRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	GoalAmount  int     `json:"goalAmount"`
	ImageURL    *string `json:"imageUrl"`
}

type updateDonationRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	GoalAmount  *int    `json:"goalAmount"`
	ImageURL    *string `json:"imageUrl"`
}

type contributeRequest struct {
	Amount int `json:"amount"`
}

type donationResponse struct {
	ID           int       `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	GoalAmount   int       `json:"goalAmount"`
	RaisedAmount int       `json:"raisedAmount"`
	ImageURL     *string   `json:"imageUrl"`
	CreatedAt    time.Time `json:"createdAt"`
}

// @Summary Listar campañas
// @Tags donations
// @Produce json
// @Success 200 {array} donationResponse
// @Router /donations [get]
func listDonationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			httpjson.Error(w, http.StatusInternalServerError, "internal error")
			return
		}
		out := make([]donationResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toDonationResponse(d))
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}

// @Summary Obtener campaña
// @Tags donations
// @Produce json
// @Param donationID path int true "ID de la campaña"
// @Success 200 {object} donationResponse
// @Failure 404 {object} httpjson.ErrorResponse
// @Router /donations/{donationID} [get]
func getDonationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpjson.PathID(r, "donationID")
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		d, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toDonationResponse(d))
	}
}

// @Summary Crear campaña
// @Description ONG o admin. raisedAmount arranca en 0.
// @Tags donations
// @Accept json
// @Produce json
// @Param payload body createDonationRequest true "Datos de la campaña"
// @Success 201 {object} donationResponse
// @Failure 400 {object} httpjson.ErrorResponse
// @Failure 401 {object} httpjson.ErrorResponse
// @Failure 403 {object} httpjson.ErrorResponse
// @Router /donations [post]
func createDonationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireOrganizer(w, r) {
			return
		}

		var req createDonationRequest
		if err := httpjson.Decode(w, r, &req, false); err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		d, err := svc.Create(r.Context(), CreateInput(req))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpjson.Write(w, http.StatusCreated, toDonationResponse(d))
	}
}

// @Summary Actualizar campaña
// @Description ONG o admin. raisedAmount no es editable.
// @Tags donations
// @Accept json
// @Produce json
// @Param donationID path int true "ID de la campaña"
// @Param payload body updateDonationRequest true "Campos a modificar"
// @Success 200 {object} donationResponse
// @Failure 400 {object} httpjson.ErrorResponse
// @Failure 401 {object} httpjson.ErrorResponse
// @Failure 403 {object} httpjson.ErrorResponse
// @Failure 404 {object} httpjson.ErrorResponse
// @Router /donations/{donationID} [patch]
func updateDonationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !requireOrganizer(w, r) {
			return
		}

		id, err := httpjson.PathID(r, "donationID")
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		var req updateDonationRequest
		if err := httpjson.Decode(w, r, &req, true); err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		d, err := svc.Update(r.Context(), id, Patch(req))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toDonationResponse(d))
	}
}

// @Summary Contribuir a una campaña
// @Description Cualquier usuario autenticado. El pago está simulado.
// @Tags donations
// @Accept json
// @Produce json
// @Param donationID path int true "ID de la campaña"
// @Param payload body contributeRequest true "Monto (> 0)"
// @Success 200 {object} donationResponse
// @Failure 400 {object} httpjson.ErrorResponse
// @Failure 401 {object} httpjson.ErrorResponse
// @Failure 404 {object} httpjson.ErrorResponse
// @Router /donations/{donationID}/contribute [post]
func contributeHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		id, err := httpjson.PathID(r, "donationID")
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		var req contributeRequest
		if err := httpjson.Decode(w, r, &req, false); err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		d, err := svc.Contribute(r.Context(), id, req.Amount)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toDonationResponse(d))
	}
}

func requireOrganizer(w http.ResponseWriter, r *http.Request) bool {
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

func toDonationResponse(d Donation) donationResponse {
	return donationResponse{
		ID:           d.ID,
		Title:        d.Title,
		Description:  d.Description,
		GoalAmount:   d.GoalAmount,
		RaisedAmount: d.RaisedAmount,
		ImageURL:     d.ImageURL,
		CreatedAt:    d.CreatedAt,
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidAmount):
		httpjson.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		httpjson.Error(w, http.StatusNotFound, err.Error())
	default:
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
	}
}
