package users

import (
	"errors"
	"net/http"
	"time"

	"animal-sos/internal/middleware"
	"animal-sos/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/users", func(ur chi.Router) {
		ur.Get("/", listUsersHandler(svc))
		ur.Get("/{userID}", getUserHandler(svc))
		ur.Patch("/{userID}", updateUserHandler(svc))
	})
}

// Response es la forma pública de un usuario. Nunca incluye el password.
type Response struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      Role      `json:"role"`
	Phone     *string   `json:"phone"`
	Address   *string   `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
}

func ToResponse(u User) Response {
	return Response{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Phone:     u.Phone,
		Address:   u.Address,
		CreatedAt: u.CreatedAt,
	}
}

type updateUserRequest struct {
	Email   *string `json:"email"`
	Name    *string `json:"name"`
	Role    *Role   `json:"role"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
}

// @Summary Listar usuarios
// @Description Solo admin.
// @Tags users
// @Produce json
// @Success 200 {array} Response
// @Failure 401 {object} httpjson.ErrorResponse
// @Failure 403 {object} httpjson.ErrorResponse
// @Router /users [get]
func listUsersHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if !middleware.HasRole(claims, string(RoleAdmin)) {
			httpjson.Error(w, http.StatusForbidden, "forbidden")
			return
		}

		items, err := svc.List(r.Context())
		if err != nil {
			httpjson.Error(w, http.StatusInternalServerError, "internal error")
			return
		}

		out := make([]Response, 0, len(items))
		for _, u := range items {
			out = append(out, ToResponse(u))
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}

// @Summary Obtener usuario
// @Tags users
// @Produce json
// @Param userID path int true "ID del usuario"
// @Success 200 {object} Response
// @Failure 401 {object} httpjson.ErrorResponse
// @Failure 404 {object} httpjson.ErrorResponse
// @Router /users/{userID} [get]
func getUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := middleware.GetClaims(r.Context()); !ok {
			httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		id, err := httpjson.PathID(r, "userID")
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		u, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpjson.Write(w, http.StatusOK, ToResponse(u))
	}
}

// updateUserHandler: el propio usuario o admin. Cambiar el rol es solo para admin.
//
// @Summary Actualizar usuario
// @Tags users
// @Accept json
// @Produce json
// @Param userID path int true "ID del usuario"
// @Param payload body updateUserRequest true "Campos a modificar"
// @Success 200 {object} Response
// @Failure 400 {object} httpjson.ErrorResponse
// @Failure 401 {object} httpjson.ErrorResponse
// @Failure 403 {object} httpjson.ErrorResponse
// @Failure 404 {object} httpjson.ErrorResponse
// @Failure 409 {object} httpjson.ErrorResponse
// @Router /users/{userID} [patch]
func updateUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		id, err := httpjson.PathID(r, "userID")
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		isAdmin := middleware.HasRole(claims, string(RoleAdmin))
		if claims.UserID != id && !isAdmin {
			httpjson.Error(w, http.StatusForbidden, "forbidden")
			return
		}

		var req updateUserRequest
		if err := httpjson.Decode(w, r, &req, true); err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid json")
			return
		}
		if req.Role != nil && !isAdmin {
			httpjson.Error(w, http.StatusForbidden, "only admin can change roles")
			return
		}

		u, err := svc.Update(r.Context(), id, Patch{
			Email:   req.Email,
			Name:    req.Name,
			Role:    req.Role,
			Phone:   req.Phone,
			Address: req.Address,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpjson.Write(w, http.StatusOK, ToResponse(u))
	}
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		httpjson.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, ErrNotFound):
		httpjson.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, ErrConflict):
		httpjson.Error(w, http.StatusConflict, err.Error())
	default:
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
	}
}
