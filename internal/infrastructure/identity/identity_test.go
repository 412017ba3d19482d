package identity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Sparepart-api/internal/domain"
	"github.com/jhoicas/Sparepart-api/internal/infrastructure/memory"
)

func newLocal() *Local {
	return NewLocal(memory.NewStore().Credentials(), LocalConfig{Secret: "test-secret", ExpMinutes: 5, Issuer: "test"})
}

func TestLocal_SignUpSignInVerifyRefresh(t *testing.T) {
	l := newLocal()
	ctx := context.Background()
	email := gofakeit.Email()

	ident, err := l.SignUp(ctx, email, "rahasia123")
	require.NoError(t, err)

	_, err = l.SignUp(ctx, strings.ToUpper(email), "rahasia123")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, session, err := l.SignIn(ctx, email, "rahasia123")
	require.NoError(t, err)
	assert.Equal(t, ident.ID, got.ID)

	verified, err := l.VerifyToken(ctx, session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, ident.ID, verified.ID)

	_, err = l.VerifyToken(ctx, session.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	again, next, err := l.RefreshSession(ctx, session.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, ident.ID, again.ID)
	assert.NotEmpty(t, next.AccessToken)

	users, err := l.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestLocal_SignInRejectsBadPassword(t *testing.T) {
	l := newLocal()
	ctx := context.Background()
	_, err := l.SignUp(ctx, "admin@bengkel.id", "rahasia123")
	require.NoError(t, err)

	_, _, err = l.SignIn(ctx, "admin@bengkel.id", "salah")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, _, err = l.SignIn(ctx, "nobody@bengkel.id", "rahasia123")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func gotrueServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/v1/user", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer good" || r.Header.Get("apikey") != "anon" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"code":401,"msg":"invalid JWT"}`))
			return
		}
		_, _ = w.Write([]byte(`{"id":"u-1","email":"owner@bengkel.id"}`))
	})
	mux.HandleFunc("/auth/v1/token", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		switch r.URL.Query().Get("grant_type") {
		case "password":
			if body["password"] != "rahasia123" {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid login credentials"}`))
				return
			}
		case "refresh_token":
			if body["refresh_token"] != "r-1" {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(`{"msg":"Invalid Refresh Token"}`))
				return
			}
		}
		_, _ = w.Write([]byte(`{"access_token":"a-1","refresh_token":"r-2","user":{"id":"u-1","email":"owner@bengkel.id"}}`))
	})
	mux.HandleFunc("/auth/v1/signup", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":"u-2","email":"admin@bengkel.id"}`))
	})
	mux.HandleFunc("/auth/v1/admin/users", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer service" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		_, _ = w.Write([]byte(`{"users":[{"id":"u-1","email":"owner@bengkel.id"}]}`))
	})
	mux.HandleFunc("/auth/v1/boom", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestGoTrue_Flow(t *testing.T) {
	srv := gotrueServer(t)
	g := NewGoTrue(GoTrueConfig{URL: srv.URL + "/", AnonKey: "anon", ServiceRoleKey: "service"})
	ctx := context.Background()

	ident, err := g.VerifyToken(ctx, "good")
	require.NoError(t, err)
	assert.Equal(t, "u-1", ident.ID)

	_, err = g.VerifyToken(ctx, "bad")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, session, err := g.SignIn(ctx, "owner@bengkel.id", "rahasia123")
	require.NoError(t, err)
	assert.Equal(t, "a-1", session.AccessToken)

	_, _, err = g.SignIn(ctx, "owner@bengkel.id", "x")
	require.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Contains(t, err.Error(), "Invalid login credentials")

	_, session, err = g.RefreshSession(ctx, "r-1")
	require.NoError(t, err)
	assert.Equal(t, "r-2", session.RefreshToken)

	created, err := g.SignUp(ctx, "admin@bengkel.id", "rahasia123")
	require.NoError(t, err)
	assert.Equal(t, "u-2", created.ID)

	users, err := g.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "owner@bengkel.id", users[0].Email)
}

func TestGoTrue_ServerErrorsAreUnavailable(t *testing.T) {
	srv := gotrueServer(t)
	g := NewGoTrue(GoTrueConfig{URL: srv.URL, AnonKey: "anon"})

	err := g.do(context.Background(), http.MethodGet, "/boom", nil, "", nil)
	assert.ErrorIs(t, err, domain.ErrUnavailable)

	_, err = g.ListUsers(context.Background())
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestGoTrue_TruncatedBodyIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "100")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id"`))
	}))
	t.Cleanup(srv.Close)
	g := NewGoTrue(GoTrueConfig{URL: srv.URL, AnonKey: "anon"})

	_, err := g.VerifyToken(context.Background(), "tok")
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}
