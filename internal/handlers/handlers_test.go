package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mroshb/filmorate/internal/models"
	"github.com/mroshb/filmorate/internal/repositories"
	"github.com/mroshb/filmorate/internal/services"
	"github.com/mroshb/filmorate/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter() *gin.Engine {
	catalog := repositories.NewDefaultCatalogRepository()
	users := repositories.NewMemoryUserRepository()
	films := repositories.NewMemoryFilmRepository(catalog)

	h := NewHandlerManager(
		services.NewUserService(users, films, nil),
		services.NewFilmService(films, users, catalog, nil, 10),
		services.NewCatalogService(catalog),
	)
	r := gin.New()
	h.RegisterRoutes(r)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func createUser(t *testing.T, r *gin.Engine, login string) models.User {
	t.Helper()
	body := `{"email":"` + login + `@example.com","login":"` + login + `","name":"","birthday":"1990-01-01"}`
	w := do(t, r, http.MethodPost, "/users", body)
	if w.Code != http.StatusOK {
		t.Fatalf("POST /users status = %d, body %s", w.Code, w.Body.String())
	}
	var user models.User
	decode(t, w, &user)
	return user
}

func createFilm(t *testing.T, r *gin.Engine, name string) models.Film {
	t.Helper()
	body := `{"name":"` + name + `","description":"d","releaseDate":"2001-12-19","duration":178,"mpa":{"id":3},"genres":[{"id":6},{"id":2}]}`
	w := do(t, r, http.MethodPost, "/films", body)
	if w.Code != http.StatusOK {
		t.Fatalf("POST /films status = %d, body %s", w.Code, w.Body.String())
	}
	var film models.Film
	decode(t, w, &film)
	return film
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{errors.ErrCodeNotFound, http.StatusNotFound},
		{errors.ErrCodeValidation, http.StatusBadRequest},
		{errors.ErrCodeInvalidArgument, http.StatusBadRequest},
		{errors.ErrCodeRateLimitExceeded, http.StatusTooManyRequests},
		{errors.ErrCodeInternalError, http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.code); got != tt.want {
			t.Errorf("statusFor(%q) = %d, want %d", tt.code, got, tt.want)
		}
	}
}

func TestUserRoutes(t *testing.T) {
	r := newRouter()
	ann := createUser(t, r, "ann")
	bob := createUser(t, r, "bob")
	cat := createUser(t, r, "cat")

	if ann.ID != 1 || ann.Name != "ann" {
		t.Errorf("created user = %+v, want id 1 named after login", ann)
	}

	for _, path := range []string{"/users/1/friends/2", "/users/1/friends/3"} {
		if w := do(t, r, http.MethodPut, path, ""); w.Code != http.StatusOK {
			t.Errorf("PUT %s status = %d, want 200", path, w.Code)
		}
	}

	var common []models.User
	w := do(t, r, http.MethodGet, "/users/2/friends/common/3", "")
	decode(t, w, &common)
	if len(common) != 1 || common[0].ID != ann.ID {
		t.Errorf("common friends = %+v, want [%d]", common, ann.ID)
	}

	var friends []models.User
	decode(t, do(t, r, http.MethodGet, "/users/3/friends", ""), &friends)
	if len(friends) != 1 || friends[0].ID != ann.ID {
		t.Errorf("friends of %d = %+v, want [%d]", cat.ID, friends, ann.ID)
	}

	if w := do(t, r, http.MethodDelete, "/users/2/friends/1", ""); w.Code != http.StatusOK {
		t.Errorf("DELETE friend status = %d, want 200", w.Code)
	}
	decode(t, do(t, r, http.MethodGet, "/users/2/friends", ""), &friends)
	if len(friends) != 0 {
		t.Errorf("friends of %d after remove = %+v, want empty", bob.ID, friends)
	}

	update := `{"id":2,"email":"bob@example.org","login":"bob","name":"Bob","birthday":"1991-02-03"}`
	var updated models.User
	w = do(t, r, http.MethodPut, "/users", update)
	decode(t, w, &updated)
	if w.Code != http.StatusOK || updated.Email != "bob@example.org" {
		t.Errorf("PUT /users = %d %+v", w.Code, updated)
	}
}

func TestUserRoutes_Errors(t *testing.T) {
	r := newRouter()
	createUser(t, r, "ann")

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"unknown user", http.MethodGet, "/users/9", "", http.StatusNotFound},
		{"malformed id", http.MethodGet, "/users/abc", "", http.StatusBadRequest},
		{"zero id", http.MethodGet, "/users/0", "", http.StatusBadRequest},
		{"unknown friend", http.MethodPut, "/users/1/friends/9", "", http.StatusNotFound},
		{"self friend", http.MethodPut, "/users/1/friends/1", "", http.StatusBadRequest},
		{"bad json", http.MethodPost, "/users", "{", http.StatusBadRequest},
		{"bad login", http.MethodPost, "/users", `{"email":"a@b.c","login":"a b","birthday":"1990-01-01"}`, http.StatusBadRequest},
		{"future birthday", http.MethodPost, "/users", `{"email":"a@b.c","login":"ab","birthday":"2999-01-01"}`, http.StatusBadRequest},
		{"update unknown", http.MethodPut, "/users", `{"id":9,"email":"a@b.c","login":"ab","birthday":"1990-01-01"}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, r, tt.method, tt.path, tt.body)
			if w.Code != tt.want {
				t.Fatalf("%s %s status = %d, want %d (body %s)", tt.method, tt.path, w.Code, tt.want, w.Body.String())
			}
			var body map[string]string
			decode(t, w, &body)
			if body["error"] == "" {
				t.Errorf("error body = %v, want error message", body)
			}
		})
	}

	var body map[string]string
	decode(t, do(t, r, http.MethodGet, "/users/9", ""), &body)
	if want := "user with id 9 not found"; body["error"] != want {
		t.Errorf("error = %q, want %q", body["error"], want)
	}
}

func TestFilmRoutes(t *testing.T) {
	r := newRouter()
	createUser(t, r, "ann")
	createUser(t, r, "bob")
	first := createFilm(t, r, "Fellowship")
	second := createFilm(t, r, "Two Towers")

	if first.Mpa == nil || first.Mpa.Name != "PG-13" {
		t.Errorf("created film mpa = %+v, want PG-13", first.Mpa)
	}
	if len(first.Genres) != 2 || first.Genres[0].Name != "Action" {
		t.Errorf("created film genres = %+v, want Action, Drama", first.Genres)
	}

	for _, path := range []string{"/films/2/like/1", "/films/2/like/2", "/films/1/like/1", "/films/2/like/2"} {
		if w := do(t, r, http.MethodPut, path, ""); w.Code != http.StatusOK {
			t.Errorf("PUT %s status = %d, want 200", path, w.Code)
		}
	}

	var likes struct {
		Likes int64 `json:"likes"`
	}
	decode(t, do(t, r, http.MethodGet, "/films/2/likes", ""), &likes)
	if likes.Likes != 2 {
		t.Errorf("likes of film 2 = %d, want 2", likes.Likes)
	}

	var popular []models.Film
	decode(t, do(t, r, http.MethodGet, "/films/popular", ""), &popular)
	if len(popular) != 2 || popular[0].ID != second.ID || popular[1].ID != first.ID {
		t.Errorf("popular = %+v, want [%d %d]", popular, second.ID, first.ID)
	}
	decode(t, do(t, r, http.MethodGet, "/films/popular?count=1", ""), &popular)
	if len(popular) != 1 || popular[0].ID != second.ID {
		t.Errorf("popular?count=1 = %+v, want [%d]", popular, second.ID)
	}

	if w := do(t, r, http.MethodDelete, "/films/2/like/1", ""); w.Code != http.StatusOK {
		t.Errorf("DELETE like status = %d, want 200", w.Code)
	}
	if w := do(t, r, http.MethodDelete, "/films/1", ""); w.Code != http.StatusOK {
		t.Errorf("DELETE film status = %d, want 200", w.Code)
	}
	if w := do(t, r, http.MethodGet, "/films/1", ""); w.Code != http.StatusNotFound {
		t.Errorf("GET deleted film status = %d, want 404", w.Code)
	}
}

func TestFilmRoutes_Errors(t *testing.T) {
	r := newRouter()
	createUser(t, r, "ann")
	createFilm(t, r, "Fellowship")

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		want   int
	}{
		{"popular zero", http.MethodGet, "/films/popular?count=0", "", http.StatusBadRequest},
		{"popular negative", http.MethodGet, "/films/popular?count=-3", "", http.StatusBadRequest},
		{"popular not a number", http.MethodGet, "/films/popular?count=ten", "", http.StatusBadRequest},
		{"like unknown film", http.MethodPut, "/films/9/like/1", "", http.StatusNotFound},
		{"like unknown user", http.MethodPut, "/films/1/like/9", "", http.StatusNotFound},
		{"likes of unknown film", http.MethodGet, "/films/9/likes", "", http.StatusNotFound},
		{"early release", http.MethodPost, "/films", `{"name":"x","releaseDate":"1895-12-28","duration":1}`, http.StatusBadRequest},
		{"long description", http.MethodPost, "/films", `{"name":"x","description":"` + strings.Repeat("a", 201) + `","releaseDate":"2000-01-01","duration":1}`, http.StatusBadRequest},
		{"unknown genre", http.MethodPost, "/films", `{"name":"x","releaseDate":"2000-01-01","duration":1,"genres":[{"id":99}]}`, http.StatusBadRequest},
		{"bad date", http.MethodPost, "/films", `{"name":"x","releaseDate":"01/01/2000","duration":1}`, http.StatusBadRequest},
		{"update unknown", http.MethodPut, "/films", `{"id":9,"name":"x","releaseDate":"2000-01-01","duration":1}`, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if w := do(t, r, tt.method, tt.path, tt.body); w.Code != tt.want {
				t.Errorf("%s %s status = %d, want %d (body %s)", tt.method, tt.path, w.Code, tt.want, w.Body.String())
			}
		})
	}
}

func TestCatalogRoutes(t *testing.T) {
	r := newRouter()

	var genres []models.Genre
	decode(t, do(t, r, http.MethodGet, "/genres", ""), &genres)
	if len(genres) != 6 {
		t.Errorf("GET /genres returned %d genres, want 6", len(genres))
	}

	var rating models.Mpa
	decode(t, do(t, r, http.MethodGet, "/mpa/5", ""), &rating)
	if rating.Name != "NC-17" {
		t.Errorf("GET /mpa/5 = %+v, want NC-17", rating)
	}

	if w := do(t, r, http.MethodGet, "/genres/42", ""); w.Code != http.StatusNotFound {
		t.Errorf("GET /genres/42 status = %d, want 404", w.Code)
	}
	if w := do(t, r, http.MethodGet, "/health", ""); w.Code != http.StatusOK {
		t.Errorf("GET /health status = %d, want 200", w.Code)
	}
}
