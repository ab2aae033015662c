package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/postboard/internal/auth"
	"github.com/hongminglow/postboard/internal/middleware"
	"github.com/hongminglow/postboard/internal/models"
	"github.com/hongminglow/postboard/internal/storage/memory"
)

const testSecret = "random"

type fixture struct {
	store  *memory.Store
	tokens *auth.TokenManager
	router http.Handler
	user   models.User
	token  string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New()
	tokens := auth.NewTokenManager(testSecret, 24*time.Hour)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		NewAuthHandler(store, tokens, logger).Register(r)
		NewPostHandler(store, logger).Register(r, middleware.RequireAuth(tokens, logger))
	})

	user, err := store.CreateUser(t.Context(), models.User{Name: "Peter", Email: "peter@email.com", PasswordHash: "x"})
	require.NoError(t, err)
	token, err := tokens.Generate(user.ID)
	require.NoError(t, err)

	return &fixture{store: store, tokens: tokens, router: r, user: user, token: token}
}

func (f *fixture) createPost(t *testing.T, title string) models.Post {
	t.Helper()
	p, err := f.store.CreatePost(t.Context(), f.user.ID, models.PostFields{
		Title: title,
		Body:  "Vhs pbr&b vice humblebrag banjo ugh pop-up selvage.",
		Image: "https://i.picsum.photos/id/302/200/300.jpg",
	})
	require.NoError(t, err)
	return p
}

// do sends a request through the router. A nil body sends no body; a string
// body is sent verbatim; url.Values are form encoded; anything else is JSON
// encoded.
func (f *fixture) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	contentType := "application/json"
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	case url.Values:
		reader = strings.NewReader(b.Encode())
		contentType = "application/x-www-form-urlencoded"
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	return f.send(t, method, path, token, contentType, reader)
}

// doMultipart sends fields as a multipart/form-data body.
func (f *fixture) doMultipart(t *testing.T, method, path, token string, fields map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())
	return f.send(t, method, path, token, mw.FormDataContentType(), &buf)
}

func (f *fixture) send(t *testing.T, method, path, token, contentType string, body io.Reader) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&out))
	return out
}
