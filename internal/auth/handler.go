package auth

import (
	"errors"
	"net/http"
	"time"

	"animal-sos/internal/domain/users"
	"animal-sos/internal/middleware"
	"animal-sos/internal/platform/httpjson"

	"github.com/go-chi/chi/v5"
)

type CookieOptions struct {
	Name   string
	Secure bool
	TTL    time.Duration
}

func RegisterRoutes(r chi.Router, svc *Service, cookie CookieOptions) {
	if cookie.Name == "" {
		cookie.Name = DefaultCookieName
	}
	r.Post("/register", registerHandler(svc, cookie))
	r.Post("/login", loginHandler(svc, cookie))
	r.Post("/logout", logoutHandler(svc, cookie))
	r.Get("/user", currentUserHandler(svc))
}

type registerRequest struct {
	Username string     `json:"username"`
	Password string     `json:"password"`
	Email    string     `json:"email"`
	Name     string     `json:"name"`
	Role     users.Role `json:"role,omitempty"`
	Phone    *string    `json:"phone,omitempty"`
	Address  *string    `json:"address,omitempty"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func setSessionCookie(w http.ResponseWriter, c CookieOptions, sid string) {
	ck := &http.Cookie{
		Name:     c.Name,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if c.TTL > 0 {
		ck.MaxAge = int(c.TTL / time.Second)
	}
	http.SetCookie(w, ck)
}

func clearSessionCookie(w http.ResponseWriter, c CookieOptions) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   c.Secure,
		MaxAge:   -1,
	})
}

// @Summary Registrar usuario
// @Description Crea la cuenta (rol user u ngo) y abre la sesión.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body registerRequest true "Datos de la cuenta"
// @Success 201 {object} users.Response
// @Failure 400 {object} httpjson.ErrorResponse
// @Failure 409 {object} httpjson.ErrorResponse
// @Router /register [post]
func registerHandler(svc *Service, cookie CookieOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := httpjson.Decode(w, r, &req, false); err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		u, sid, err := svc.Register(r.Context(), RegisterInput{
			Username: req.Username,
			Password: req.Password,
			Email:    req.Email,
			Name:     req.Name,
			Role:     req.Role,
			Phone:    req.Phone,
			Address:  req.Address,
		})
		if err != nil {
			writeAuthError(w, err)
			return
		}

		setSessionCookie(w, cookie, sid)
		httpjson.Write(w, http.StatusCreated, users.ToResponse(u))
	}
}

// @Summary Iniciar sesión
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body loginRequest true "Credenciales"
// @Success 200 {object} users.Response
// @Failure 400 {object} httpjson.ErrorResponse
// @Failure 401 {object} httpjson.ErrorResponse
// @Router /login [post]
func loginHandler(svc *Service, cookie CookieOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := httpjson.Decode(w, r, &req, false); err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		u, sid, err := svc.Login(r.Context(), req.Username, req.Password)
		if err != nil {
			writeAuthError(w, err)
			return
		}

		setSessionCookie(w, cookie, sid)
		httpjson.Write(w, http.StatusOK, users.ToResponse(u))
	}
}

// @Summary Cerrar sesión
// @Tags auth
// @Success 200 {object} httpjson.ErrorResponse
// @Router /logout [post]
func logoutHandler(svc *Service, cookie CookieOptions) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie(cookie.Name); err == nil {
			if err := svc.Logout(r.Context(), c.Value); err != nil {
				httpjson.Error(w, http.StatusInternalServerError, "internal error")
				return
			}
		}
		clearSessionCookie(w, cookie)
		httpjson.Write(w, http.StatusOK, httpjson.ErrorResponse{Message: "logged out"})
	}
}

// @Summary Usuario actual
// @Tags auth
// @Produce json
// @Success 200 {object} users.Response
// @Failure 401 {object} httpjson.ErrorResponse
// @Router /user [get]
func currentUserHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		u, err := svc.CurrentUser(r.Context(), claims.UserID)
		if errors.Is(err, users.ErrNotFound) {
			httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		if err != nil {
			httpjson.Error(w, http.StatusInternalServerError, "internal error")
			return
		}
		httpjson.Write(w, http.StatusOK, users.ToResponse(u))
	}
}

func writeAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		httpjson.Error(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, ErrWeakPassword), errors.Is(err, ErrInvalidRole), errors.Is(err, users.ErrInvalidInput):
		httpjson.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, users.ErrConflict):
		httpjson.Error(w, http.StatusConflict, err.Error())
	default:
		httpjson.Error(w, http.StatusInternalServerError, "internal error")
	}
}
