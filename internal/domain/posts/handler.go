package posts

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
	r.Route("/posts", func(pr chi.Router) {
		pr.Get("/", listPostsHandler(svc))
		pr.Get("/{postID}", getPostHandler(svc))
		pr.Post("/", createPostHandler(svc))
		pr.Patch("/{postID}", updatePostHandler(svc))
	})
}

type createPostRequest struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	ImageURL *string `json:"imageUrl"`
}

type updatePostRequest struct {
	Title    *string `json:"title"`
	Content  *string `json:"content"`
	ImageURL *string `json:"imageUrl"`
}

type postResponse struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	ImageURL  *string   `json:"imageUrl"`
	CreatedAt time.Time `json:"createdAt"`
}

// @Summary Listar posts
// @Tags posts
// @Produce json
// @Param userId query int false "Posts de un usuario"
// @Success 200 {array} postResponse
// @Failure 400 {object} httpjson.ErrorResponse
// @Router /posts [get]
func listPostsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, _, err := httpjson.QueryInt(r, "userId")
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, "userId must be an integer")
			return
		}

		items, err := svc.List(r.Context(), userID)
		if err != nil {
			httpjson.Error(w, http.StatusInternalServerError, "internal error")
			return
		}
		out := make([]postResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPostResponse(p))
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}

// @Summary Obtener post
// @Tags posts
// @Produce json
// @Param postID path int true "ID del post"
// @Success 200 {object} postResponse
// @Failure 404 {object} httpjson.ErrorResponse
// @Router /posts/{postID} [get]
func getPostHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := httpjson.PathID(r, "postID")
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		p, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toPostResponse(p))
	}
}

// @Summary Publicar en el foro
// @Tags posts
// @Accept json
// @Produce json
// @Param payload body createPostRequest true "Contenido"
// @Success 201 {object} postResponse
// @Failure 400 {object} httpjson.ErrorResponse
// @Failure 401 {object} httpjson.ErrorResponse
// @Router /posts [post]
func createPostHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		var req createPostRequest
		if err := httpjson.Decode(w, r, &req, false); err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		p, err := svc.Create(r.Context(), claims.UserID, req.Title, req.Content, req.ImageURL)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpjson.Write(w, http.StatusCreated, toPostResponse(p))
	}
}

// @Summary Editar post
// @Description Autor o admin.
// @Tags posts
// @Accept json
// @Produce json
// @Param postID path int true "ID del post"
// @Param payload body updatePostRequest true "Campos a modificar"
// @Success 200 {object} postResponse
// @Failure 400 {object} httpjson.ErrorResponse
// @Failure 401 {object} httpjson.ErrorResponse
// @Failure 403 {object} httpjson.ErrorResponse
// @Failure 404 {object} httpjson.ErrorResponse
// @Router /posts/{postID} [patch]
func updatePostHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpjson.Error(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		id, err := httpjson.PathID(r, "postID")
		if err != nil {
			httpjson.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		current, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if current.UserID != claims.UserID && !middleware.HasRole(claims, string(users.RoleAdmin)) {
			httpjson.Error(w, http.StatusForbidden, "forbidden")
			return
		}

		var req updatePostRequest
		if err := httpjson.Decode(w, r, &req, true); err != nil {
			httpjson.Error(w, http.StatusBadRequest, "invalid json")
			return
		}

		p, err := svc.Update(r.Context(), id, Patch(req))
		if err != nil {
			writeServiceError(w, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toPostResponse(p))
	}
}

func toPostResponse(p Post) postResponse {
	return postResponse{
		ID:        p.ID,
		UserID:    p.UserID,
		Title:     p.Title,
		Content:   p.Content,
		ImageURL:  p.ImageURL,
		CreatedAt: p.CreatedAt,
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
