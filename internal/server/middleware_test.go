package server

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"orderdesk/internal/auth"
)

type mockDirectory struct {
	IsAdminFunc      func(ctx context.Context, email string) (bool, error)
	IsClientFunc     func(ctx context.Context, email string) (bool, error)
	CountClientsFunc func(ctx context.Context) (int, error)
}

func (m *mockDirectory) IsAdmin(ctx context.Context, email string) (bool, error) {
	return m.IsAdminFunc(ctx, email)
}

func (m *mockDirectory) IsClient(ctx context.Context, email string) (bool, error) {
	return m.IsClientFunc(ctx, email)
}

func (m *mockDirectory) CountClients(ctx context.Context) (int, error) {
	return m.CountClientsFunc(ctx)
}

func runIdentity(t *testing.T, dir *mockDirectory, email string) (*httptest.ResponseRecorder, *auth.Actor, bool) {
	t.Helper()

	var actor auth.Actor
	var ok bool
	handler := Identity(dir, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok = auth.ActorFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	if email != "" {
		req.Header.Set("X-User-Email", email)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, &actor, ok
}

func TestIdentity_AdminActor(t *testing.T) {
	dir := &mockDirectory{
		IsAdminFunc: func(ctx context.Context, email string) (bool, error) { return true, nil },
	}

	rec, actor, ok := runIdentity(t, dir, "  Admin@Example.com ")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, ok)
	assert.True(t, actor.IsAdmin)
	assert.Equal(t, "admin@example.com", actor.Email)
}

func TestIdentity_KnownClientActor(t *testing.T) {
	dir := &mockDirectory{
		IsAdminFunc:  func(ctx context.Context, email string) (bool, error) { return false, nil },
		IsClientFunc: func(ctx context.Context, email string) (bool, error) { return true, nil },
	}

	rec, actor, ok := runIdentity(t, dir, "client@example.com")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, ok)
	assert.False(t, actor.IsAdmin)
	assert.Equal(t, "client@example.com", actor.Email)
}

func TestIdentity_UnknownEmailStaysAnonymous(t *testing.T) {
	dir := &mockDirectory{
		IsAdminFunc:  func(ctx context.Context, email string) (bool, error) { return false, nil },
		IsClientFunc: func(ctx context.Context, email string) (bool, error) { return false, nil },
	}

	rec, _, ok := runIdentity(t, dir, "nobody@example.com")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, ok, "an email the directory does not know must not become an actor")
}

func TestIdentity_MissingHeaderStaysAnonymous(t *testing.T) {
	rec, _, ok := runIdentity(t, &mockDirectory{}, "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, ok)
}

func TestIdentity_LookupFailure(t *testing.T) {
	dir := &mockDirectory{
		IsAdminFunc: func(ctx context.Context, email string) (bool, error) {
			return false, errors.New("driver: bad connection")
		},
	}

	rec, _, _ := runIdentity(t, dir, "client@example.com")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
