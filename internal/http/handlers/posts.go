package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hongminglow/postboard/internal/auth"
	"github.com/hongminglow/postboard/internal/http/respond"
	"github.com/hongminglow/postboard/internal/models"
	"github.com/hongminglow/postboard/internal/models/dto"
	"github.com/hongminglow/postboard/internal/storage"
	"github.com/hongminglow/postboard/internal/validation"
)

// DestroyedMessage is returned after a post is deleted.
const DestroyedMessage = "Post successfully destroyed!"

// PostHandler serves the post resource. Reads are public; writes go through
// the guard middleware passed to Register.
type PostHandler struct {
	store  storage.PostStore
	logger *slog.Logger
}

// NewPostHandler constructs the handler.
func NewPostHandler(store storage.PostStore, logger *slog.Logger) *PostHandler {
	return &PostHandler{store: store, logger: logger}
}

// Register attaches post routes to r, wrapping mutating routes in guard.
func (h *PostHandler) Register(r chi.Router, guard func(http.Handler) http.Handler) {
	r.Get("/posts", h.handleList)
	r.Get("/posts/{id}", h.handleGet)
	r.Group(func(r chi.Router) {
		r.Use(guard)
		r.Post("/posts", h.handleCreate)
		r.Patch("/posts/{id}", h.handleUpdate)
		r.Delete("/posts/{id}", h.handleDelete)
	})
}

func (h *PostHandler) handleList(w http.ResponseWriter, r *http.Request) {
	posts, err := h.store.ListPosts(r.Context())
	if err != nil {
		h.fail(w, r, "list posts", err)
		return
	}
	respond.JSON(w, http.StatusOK, posts)
}

func (h *PostHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		respond.Error(w, http.StatusNotFound, "post not found")
		return
	}
	post, err := h.store.GetPost(r.Context(), id)
	if err != nil {
		h.fail(w, r, "get post", err)
		return
	}
	respond.JSON(w, http.StatusOK, post)
}

func (h *PostHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFrom(r.Context())
	if !ok {
		h.logger.Error("principal missing from authenticated request", "path", r.URL.Path)
		respond.Error(w, http.StatusUnauthorized, "authentication required")
		return
	}
	fields, ok := h.decodeFields(w, r)
	if !ok {
		return
	}
	post, err := h.store.CreatePost(r.Context(), principal.UserID, fields)
	if err != nil {
		h.fail(w, r, "create post", err)
		return
	}
	respond.JSON(w, http.StatusOK, post)
}

func (h *PostHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		respond.Error(w, http.StatusNotFound, "post not found")
		return
	}
	fields, ok := h.decodeFields(w, r)
	if !ok {
		return
	}
	post, err := h.store.UpdatePost(r.Context(), id, fields)
	if err != nil {
		h.fail(w, r, "update post", err)
		return
	}
	respond.JSON(w, http.StatusOK, post)
}

func (h *PostHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := postID(r)
	if !ok {
		respond.Error(w, http.StatusNotFound, "post not found")
		return
	}
	if err := h.store.DeletePost(r.Context(), id); err != nil {
		h.fail(w, r, "delete post", err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.DeleteResponse{Message: DestroyedMessage})
}

// maxFormMemory bounds the in-memory part of a multipart post body.
const maxFormMemory = 1 << 20

// decodeFields reads and validates a post payload, writing a 400 on failure.
// JSON, urlencoded and multipart bodies are accepted. An empty body is
// treated as an empty payload.
func (h *PostHandler) decodeFields(w http.ResponseWriter, r *http.Request) (models.PostFields, bool) {
	payload, err := decodePayload(r)
	if err != nil {
		h.logger.Debug("decode post payload", "error", err, "path", r.URL.Path)
		respond.Error(w, http.StatusBadRequest, "invalid payload")
		return models.PostFields{}, false
	}
	fields, err := validation.Post(payload)
	if err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			respond.Invalid(w, verr.Fields)
		} else {
			h.fail(w, r, "validate post", err)
		}
		return models.PostFields{}, false
	}
	return fields, true
}

func decodePayload(r *http.Request) (dto.PostPayload, error) {
	var payload dto.PostPayload
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return payload, err
		}
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			return payload, err
		}
	default:
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil && !errors.Is(err, io.EOF) {
			return payload, err
		}
		return payload, nil
	}
	payload.Title = formValue(r.PostForm, "title")
	payload.Body = formValue(r.PostForm, "body")
	payload.Image = formValue(r.PostForm, "image")
	return payload, nil
}

// formValue returns nil when key is absent so that a missing field and a
// blank one stay distinguishable, as they are in JSON.
func formValue(form url.Values, key string) *string {
	values, ok := form[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

func (h *PostHandler) fail(w http.ResponseWriter, r *http.Request, action string, err error) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		respond.Error(w, http.StatusNotFound, "post not found")
	case errors.Is(err, storage.ErrOwnerNotFound):
		h.logger.Warn("token subject has no user record", "error", err, "path", r.URL.Path)
		respond.Error(w, http.StatusUnauthorized, "invalid token")
	default:
		h.logger.Error(action+" failed", "error", err, "path", r.URL.Path)
		respond.Error(w, http.StatusInternalServerError, "failed to "+action)
	}
}

func postID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
