package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/boxboard/apiserver/config"
	"github.com/boxboard/apiserver/internal/services"
	"github.com/boxboard/apiserver/internal/store"
	"github.com/boxboard/apiserver/types"
)

const testSecret = "test-secret"

type memUserRepo struct {
	users  map[int]types.User
	nextID int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[int]types.User{}, nextID: 1}
}

func (m *memUserRepo) GetByID(_ context.Context, id int) (types.User, error) {
	user, ok := m.users[id]
	if !ok {
		return types.User{}, store.ErrNotFound
	}
	return user, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (types.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return types.User{}, store.ErrNotFound
}

func (m *memUserRepo) List(_ context.Context) ([]types.User, error) {
	out := make([]types.User, 0, len(m.users))
	for _, user := range m.users {
		out = append(out, user)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memUserRepo) Create(_ context.Context, user types.User) (types.User, error) {
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return types.User{}, store.ErrConflict
		}
	}
	user.ID = m.nextID
	m.nextID++
	m.users[user.ID] = user
	return user, nil
}

func (m *memUserRepo) Update(_ context.Context, user types.User) (types.User, error) {
	if _, ok := m.users[user.ID]; !ok {
		return types.User{}, store.ErrNotFound
	}
	m.users[user.ID] = user
	return user, nil
}

func (m *memUserRepo) Delete(_ context.Context, id int) error {
	if _, ok := m.users[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

type memAuditRepo struct {
	entries []types.AuditLogEntry
}

func (m *memAuditRepo) Append(_ context.Context, entry types.AuditLogEntry) (types.AuditLogEntry, error) {
	entry.ID = len(m.entries) + 1
	m.entries = append(m.entries, entry)
	return entry, nil
}

func (m *memAuditRepo) List(_ context.Context, limit int) ([]types.AuditLogEntry, error) {
	out := make([]types.AuditLogEntry, len(m.entries))
	copy(out, m.entries)
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type memItemRepo struct {
	items  map[int]types.Item
	nextID int
}

func newMemItemRepo() *memItemRepo {
	return &memItemRepo{items: map[int]types.Item{}, nextID: 1}
}

func (m *memItemRepo) Get(_ context.Context, id int) (types.Item, error) {
	item, ok := m.items[id]
	if !ok {
		return types.Item{}, store.ErrNotFound
	}
	return item, nil
}

func (m *memItemRepo) List(_ context.Context, filter types.ItemFilter) ([]types.Item, error) {
	out := make([]types.Item, 0, len(m.items))
	for _, item := range m.items {
		if filter.LocationID != 0 && (item.LocationID == nil || *item.LocationID != filter.LocationID) {
			continue
		}
		if filter.ContainerID != 0 && (item.ContainerID == nil || *item.ContainerID != filter.ContainerID) {
			continue
		}
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		if filter.Kind != "" && item.Kind != filter.Kind {
			continue
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memItemRepo) Create(_ context.Context, item types.Item) (types.Item, error) {
	item.ID = m.nextID
	m.nextID++
	m.items[item.ID] = item
	return item, nil
}

func (m *memItemRepo) Update(_ context.Context, item types.Item) (types.Item, error) {
	if _, ok := m.items[item.ID]; !ok {
		return types.Item{}, store.ErrNotFound
	}
	m.items[item.ID] = item
	return item, nil
}

func (m *memItemRepo) SetPhoto(_ context.Context, id int, key, mime string) error {
	item, ok := m.items[id]
	if !ok {
		return store.ErrNotFound
	}
	item.PhotoKey = key
	item.PhotoMime = mime
	m.items[id] = item
	return nil
}

func (m *memItemRepo) Delete(_ context.Context, id int) error {
	if _, ok := m.items[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

type memLocationRepo struct {
	locations map[int]types.Location
	nextID    int
}

func newMemLocationRepo() *memLocationRepo {
	return &memLocationRepo{locations: map[int]types.Location{}, nextID: 1}
}

func (m *memLocationRepo) Get(_ context.Context, id int) (types.Location, error) {
	location, ok := m.locations[id]
	if !ok {
		return types.Location{}, store.ErrNotFound
	}
	return location, nil
}

func (m *memLocationRepo) List(_ context.Context) ([]types.Location, error) {
	out := make([]types.Location, 0, len(m.locations))
	for _, location := range m.locations {
		out = append(out, location)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memLocationRepo) Create(_ context.Context, location types.Location) (types.Location, error) {
	location.ID = m.nextID
	m.nextID++
	m.locations[location.ID] = location
	return location, nil
}

func (m *memLocationRepo) Update(_ context.Context, location types.Location) (types.Location, error) {
	if _, ok := m.locations[location.ID]; !ok {
		return types.Location{}, store.ErrNotFound
	}
	m.locations[location.ID] = location
	return location, nil
}

func (m *memLocationRepo) Delete(_ context.Context, id int) error {
	if _, ok := m.locations[id]; !ok {
		return store.ErrNotFound
	}
	delete(m.locations, id)
	return nil
}

// testEnv wires a minimal router over in-memory repositories, mirroring
// the production route layout.
type testEnv struct {
	router *chi.Mux
	users  *services.UserService
	audit  *memAuditRepo
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	auditRepo := &memAuditRepo{}
	auditService := services.NewAuditService(auditRepo)
	userService := services.NewUserService(newMemUserRepo(), auditService)
	locationService := services.NewLocationService(newMemLocationRepo(), auditService)
	itemService := services.NewItemService(newMemItemRepo(), auditService)

	authHandler := NewAuthHandler(userService, config.AuthConfig{
		JWTSecret: testSecret,
		TokenTTL:  time.Hour,
	})

	router := chi.NewRouter()
	router.Get("/health", Health)
	router.Post("/login", authHandler.Login)
	router.Group(func(r chi.Router) {
		r.Use(authHandler.RequireAuth)
		r.Get("/me", authHandler.Me)
		r.Put("/me", authHandler.UpdateMe)
		r.Post("/me/change-password", authHandler.ChangePassword)
		r.Route("/utenti", func(r chi.Router) {
			UserRouter(r, userService)
		})
		r.Route("/locations", func(r chi.Router) {
			LocationRouter(r, locationService)
		})
		r.Route("/oggetti", func(r chi.Router) {
			ItemRouter(r, itemService, nil)
		})
		r.Route("/log-operazioni", func(r chi.Router) {
			AuditLogRouter(r, auditService)
		})
	})

	return &testEnv{router: router, users: userService, audit: auditRepo}
}

// seedUser inserts a user with a working password and returns it.
func (e *testEnv) seedUser(t *testing.T, name, email, role, password string) types.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	user, err := e.users.Create(context.Background(), types.User{
		Name:         name,
		Email:        email,
		Role:         role,
		PasswordHash: string(hashed),
	}, 0)
	require.NoError(t, err)
	return user
}

// formRequest builds a form-encoded POST request.
func formRequest(path, form string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// login posts credentials and returns the bearer token.
func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()

	form := "username=" + email + "&password=" + password
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var parsed LoginResponse
	require.NoError(t, decodeBody(rec, &parsed))
	require.NotEmpty(t, parsed.AccessToken)
	return parsed.AccessToken
}

func (e *testEnv) do(method, path, token, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}
