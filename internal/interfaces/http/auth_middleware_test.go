package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Sparepart-api/internal/domain/entity"
	"github.com/jhoicas/Sparepart-api/internal/domain/repository"
	"github.com/jhoicas/Sparepart-api/internal/infrastructure/identity"
	"github.com/jhoicas/Sparepart-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/Sparepart-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testPassword  = "rahasia123"
)

// countingProfiles cuenta las lecturas de perfil para verificar el cache por petición.
type countingProfiles struct {
	repository.UserProfileRepository
	calls int
}

func (c *countingProfiles) GetByID(ctx context.Context, id string) (*entity.UserProfile, error) {
	c.calls++
	return c.UserProfileRepository.GetByID(ctx, id)
}

type gateFixture struct {
	idp      *identity.Local
	store    *memory.Store
	profiles *countingProfiles
}

func newGateFixture(t *testing.T) *gateFixture {
	t.Helper()
	s := memory.NewStore()
	return &gateFixture{
		idp:      identity.NewLocal(s.Credentials(), identity.LocalConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: "test"}),
		store:    s,
		profiles: &countingProfiles{UserProfileRepository: s.Profiles()},
	}
}

// userWithRole registra un usuario y, si role no es vacío, su perfil activo. Devuelve el header Authorization.
func (f *gateFixture) userWithRole(t *testing.T, email, role string) string {
	t.Helper()
	ctx := context.Background()
	ident, err := f.idp.SignUp(ctx, email, testPassword)
	require.NoError(t, err)
	if role != "" {
		require.NoError(t, f.store.Profiles().Create(ctx, &entity.UserProfile{
			ID: ident.ID, Name: email, Role: role, Status: entity.StatusActive,
		}))
	}
	_, session, err := f.idp.SignIn(ctx, email, testPassword)
	require.NoError(t, err)
	return "Bearer " + session.AccessToken
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware contra el proveedor local
//   - RequireRole dos veces seguidas (el perfil debe leerse una sola vez)
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func (f *gateFixture) buildTestApp(allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(f.idp),
		apphttp.RequireRole(f.profiles, allowedRoles...),
		apphttp.RequireRole(f.profiles, allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{
				"ok":   true,
				"role": apphttp.GetProfile(c).Role,
			})
		},
	)
	return app
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaEscritura(t *testing.T) {
	f := newGateFixture(t)
	app := f.buildTestApp(entity.RoleOwner, entity.RoleAdmin)
	resp := doRequest(t, app, f.userWithRole(t, "admin@bengkel.id", entity.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "admin", body["role"])
	assert.Equal(t, 1, f.profiles.calls, "el perfil se lee una vez por petición")
}

func TestRequireRole_AdminBloqueadoEnRutaOwner(t *testing.T) {
	f := newGateFixture(t)
	app := f.buildTestApp(entity.RoleOwner)
	resp := doRequest(t, app, f.userWithRole(t, "admin@bengkel.id", entity.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRole_SinPerfil_Retorna403(t *testing.T) {
	f := newGateFixture(t)
	app := f.buildTestApp(entity.RoleOwner, entity.RoleAdmin)
	resp := doRequest(t, app, f.userWithRole(t, "tanpa-profil@bengkel.id", ""))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequireRole_SinAuthHeader_Retorna401(t *testing.T) {
	f := newGateFixture(t)
	resp := doRequest(t, f.buildTestApp(entity.RoleOwner), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestRequireRole_TokenInvalido_Retorna401(t *testing.T) {
	f := newGateFixture(t)
	app := f.buildTestApp(entity.RoleOwner)

	for _, header := range []string{"Bearer token.invalido.aqui", "Basic abc", "Bearer "} {
		resp := doRequest(t, app, header)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, header)
		resp.Body.Close()
	}
	assert.Zero(t, f.profiles.calls)
}

func TestAuthMiddleware_ExtraeIdentidad(t *testing.T) {
	f := newGateFixture(t)
	header := f.userWithRole(t, "owner@bengkel.id", entity.RoleOwner)

	app := fiber.New()
	app.Get("/me", apphttp.AuthMiddleware(f.idp), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": apphttp.GetUserID(c), "email": apphttp.GetEmail(c)})
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", header)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.NotEmpty(t, body["user_id"])
	assert.Equal(t, "owner@bengkel.id", body["email"])
}

func TestAuthMiddleware_ProveedorCaido_NoEsTokenInvalido(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)
	idp := identity.NewGoTrue(identity.GoTrueConfig{URL: srv.URL, AnonKey: "anon"})

	app := fiber.New()
	app.Get("/protected", apphttp.AuthMiddleware(idp), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp := doRequest(t, app, "Bearer cualquier-token")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "UNAVAILABLE")
	assert.NotContains(t, string(body), "INVALID_TOKEN")
}

func TestAuthMiddleware_TokenRechazadoPorProveedor_Retorna401(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"msg":"invalid JWT"}`))
	}))
	t.Cleanup(srv.Close)
	idp := identity.NewGoTrue(identity.GoTrueConfig{URL: srv.URL, AnonKey: "anon"})

	app := fiber.New()
	app.Get("/protected", apphttp.AuthMiddleware(idp), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp := doRequest(t, app, "Bearer caducado")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
