package reports

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
	r.Route("/reports", func(rr chi.Router) {
		rr.Get("/", listReportsHandler(svc))
		rr.Post("/", createReportHandler(svc))
		rr.Get("/{reportID}", getReportHandler(svc))
		rr.Patch("/{reportID}", updateReportHandler(svc))

		// Respuesta de ONG/admin: solo cambia el estado.
		rr.Patch("/{reportID}/status", updateStatusHandler(svc))
	})
}

type createReportRequest struct {
	AnimalType  string  `json:"animalType"`
	Description string  `json:"description"`
	Location    string  `json:"location"`
	Latitude    *string `json:"latitude"`
	Longitude   *string `json:"longitude"`
	Urgency     Urgency `json:"urgency"`
	ImageURL    *string `json:"imageUrl"`
}

type updateReportRequest struct {
	AnimalType  *string  `json:"animalType"`
	Description *string  `json:"description"`
	Location    *string  `json:"location"`
	Latitude    *string  `json:"latitude"`
	Longitude   *string  `json:"longitude"`
	Status      *Status  `json:"status"`
	Urgency     *Urgency `json:"urgency"`
	ImageURL    *string  `json:"imageUrl"`
}

type updateStatusRequest struct {
	Status Status `json:"status"`
}

type reportResponse struct {
	ID          int       `json:"id"`
	UserID      int       `json:"userId"`
	AnimalType  string    `json:"animalType"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Latitude    *string   `json:"latitude"`
	Longitude   *string   `json:"longitude"`
	Status      Status    `json:"status"`
	Urgency     Urgency   `json:"urgency"`
	ImageURL    *string   `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// @Summary Listar reportes
// @Description Del más reciente al más antiguo. status tiene prioridad sobre userId.
// @Tags reports
// @Produce json
// @Param status query string false "pending, assigned, in_progress, rescued, closed"
// @Param userId query int false "Reportes de un usuario"
// @Param limit query int false "Máximo de reportes"
// @Success 200 {array} reportResponse
// @Failure 400 {object} httpjson.ErrorResponse
// @Router /reports [get]
func listReportsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _, err := httpjson.QueryInt(r, "userId")
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "userId must be an integer")
			return
		}
		limit, _, err := httpjson.QueryInt(r, "limit")
		if err != nil || limit < 0 {
			httpjson.Error(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}

		items, err := svc.List(r.Context(), ListFilter{
			Status: Status(strings.TrimSpace(r.URL.Query().Get("status"))),
			UserID: userID,
			Limit:  limit,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		out := make([]reportResponse, 0, len(items))
		for _, it := range items {
			out = append(out, toReportResponse(it))
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}

// @Summary Crear reporte
// @Description El reporte queda a nombre del usuario de la sesión, en estado pending.
// @Tags reports
// @Accept json
// @Produce json
// @Param payload body createReportRequest true "Datos del reporte"
// @Success 201 {object} reportResponse
// @Failure 400 {object} httpjson.ErrorResponse
// @Failure 401 {object} httpjson.ErrorResponse
// @Router /reports [post]
func createReportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req createReportRequest
		if err := httpjson.Decode(w, r, &req, false); err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		rep, err := svc.Create(r.Context(), claims.UserID, CreateInput{
			AnimalType:  req.AnimalType,
			Description: req.Description,
			Location:    req.Location,
			Latitude:    req.Latitude,
			Longitude:   req.Longitude,
			Urgency:     req.Urgency,
			ImageURL:    req.ImageURL,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpjson.Write(w, http.StatusCreated, toReportResponse(rep))
	}
}

// @Summary Obtener reporte
// @Tags reports
// @Produce json
// @Param reportID path int true "ID del reporte"
// @Success 200 {object} reportResponse
// @Failure 404 {object} httpjson.ErrorResponse
// @Router /reports/{reportID} [get]
func getReportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpjson.PathID(r, "reportID")
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		rep, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toReportResponse(rep))
	}
}

// updateReportHandler: autor del reporte, ONG o admin.
//
// @Summary Actualizar reporte
// @Tags reports
// @Accept json
// @Produce json
// @Param reportID path int true "ID del reporte"
// @Param payload body updateReportRequest true "Campos a modificar"
// @Success 200 {object} reportResponse
// @Failure 400 {object} httpjson.ErrorResponse
// @Failure 401 {object} httpjson.ErrorResponse
// @Failure 403 {object} httpjson.ErrorResponse
// @Failure 404 {object} httpjson.ErrorResponse
// @Failure 409 {object} httpjson.ErrorResponse
// @Router /reports/{reportID} [patch]
func updateReportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		id, err := httpjson.PathID(r, "reportID")
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		if !isResponder(claims.Role) {
			current, err := svc.GetByID(r.Context(), id)
			if err != nil {
				writeServiceError(w, err)
				return
			}
			if current.UserID != claims.UserID {
				httpjson.Error(w, http.StatusForbidden, "forbidden")
				return
			}
		}

		var req updateReportRequest
		if err := httpjson.Decode(w, r, &req, true); err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		// el estado solo lo cambia quien responde (ver /status)
		if req.Status != nil && !isResponder(claims.Role) {
			httpjson.Error(w, http.StatusForbidden, "forbidden")
			return
		}

		rep, err := svc.Update(r.Context(), id, Patch{
			AnimalType:  req.AnimalType,
			Description: req.Description,
			Location:    req.Location,
			Latitude:    req.Latitude,
			Longitude:   req.Longitude,
			Status:      req.Status,
			Urgency:     req.Urgency,
			ImageURL:    req.ImageURL,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toReportResponse(rep))
	}
}

// @Summary Responder a un reporte
// @Description Cambia el estado (solo ONG o admin). Transiciones válidas: pending→assigned|in_progress|closed, assigned→in_progress|closed, in_progress→rescued|closed, rescued→closed.
// @Tags reports
// @Accept json
// @Produce json
// @Param reportID path int true "ID del reporte"
// @Param payload body updateStatusRequest true "Nuevo estado"
// @Success 200 {object} reportResponse
// @Failure 400 {object} httpjson.ErrorResponse
// @Failure 401 {object} httpjson.ErrorResponse
// @Failure 403 {object} httpjson.ErrorResponse
// @Failure 404 {object} httpjson.ErrorResponse
// @Failure 409 {object} httpjson.ErrorResponse
// @Router /reports/{reportID}/status [patch]
func updateStatusHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if !isResponder(claims.Role) {
			httpjson.Error(w, http.StatusForbidden, "forbidden")
			return
		}

		id, err := httpjson.PathID(r, "reportID")
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		var req updateStatusRequest
		if err := httpjson.Decode(w, r, &req, true); err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		rep, err := svc.UpdateStatus(r.Context(), id, req.Status)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toReportResponse(rep))
	}
}

func isResponder(role string) bool {
	return role == string(users.RoleNGO) || role == string(users.RoleAdmin)
}

func toReportResponse(r Report) reportResponse {
	return reportResponse{
		ID:          r.ID,
		UserID:      r.UserID,
		AnimalType:  r.AnimalType,
		Description: r.Description,
		Location:    r.Location,
		Latitude:    r.Latitude,
		Longitude:   r.Longitude,
		Status:      r.Status,
		Urgency:     r.Urgency,
		ImageURL:    r.ImageURL,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpjson.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		httpjson.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrInvalidTransition):
		httpjson.Error(w, http.StatusConflict, err.Error())
	default:
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
	}
}
