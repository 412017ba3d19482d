package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/jhoicas/Sparepart-api/internal/application/ports"
	"github.com/jhoicas/Sparepart-api/internal/domain"
	"github.com/jhoicas/Sparepart-api/internal/domain/entity"
)

var _ ports.IdentityProvider = (*GoTrue)(nil)

const adminPageSize = 1000

// GoTrueConfig datos del proyecto Supabase.
type GoTrueConfig struct {
	URL            string // https://<ref>.supabase.co
	AnonKey        string
	ServiceRoleKey string
	Timeout        time.Duration
}

// GoTrue cliente REST de Supabase Auth (/auth/v1).
type GoTrue struct {
	baseURL    string
	anonKey    string
	serviceKey string
	http       *http.Client
}

// NewGoTrue construye el cliente.
func NewGoTrue(cfg GoTrueConfig) *GoTrue {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &GoTrue{
		baseURL:    strings.TrimRight(cfg.URL, "/") + "/auth/v1",
		anonKey:    cfg.AnonKey,
		serviceKey: cfg.ServiceRoleKey,
		http:       &http.Client{Timeout: timeout},
	}
}

type gotrueUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type gotrueSession struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token"`
	User         *gotrueUser `json:"user"`
}

// gotrueError cubre los dos formatos de error de GoTrue.
type gotrueError struct {
	Msg              string `json:"msg"`
	Message          string `json:"message"`
	ErrorDescription string `json:"error_description"`
	Error            string `json:"error"`
}

func (e gotrueError) text() string {
	return lo.CoalesceOrEmpty(e.Msg, e.Message, e.ErrorDescription, e.Error)
}

func (g *GoTrue) VerifyToken(ctx context.Context, accessToken string) (*entity.Identity, error) {
	var u gotrueUser
	if err := g.do(ctx, http.MethodGet, "/user", nil, accessToken, &u); err != nil {
		return nil, err
	}
	if u.ID == "" {
		return nil, fmt.Errorf("%w: token tidak valid", domain.ErrUnauthorized)
	}
	return &entity.Identity{ID: u.ID, Email: u.Email}, nil
}

func (g *GoTrue) SignIn(ctx context.Context, email, password string) (*entity.Identity, *entity.Session, error) {
	return g.token(ctx, "password", map[string]string{"email": email, "password": password})
}

func (g *GoTrue) RefreshSession(ctx context.Context, refreshToken string) (*entity.Identity, *entity.Session, error) {
	return g.token(ctx, "refresh_token", map[string]string{"refresh_token": refreshToken})
}

func (g *GoTrue) SignUp(ctx context.Context, email, password string) (*entity.Identity, error) {
	// Con confirmación de email activa GoTrue devuelve el usuario en la raíz;
	// sin ella devuelve una sesión con el usuario anidado.
	var raw struct {
		gotrueUser
		User *gotrueUser `json:"user"`
	}
	err := g.do(ctx, http.MethodPost, "/signup", map[string]string{"email": email, "password": password}, "", &raw)
	if err != nil {
		return nil, asInvalidInput(err)
	}
	u := raw.gotrueUser
	if raw.User != nil {
		u = *raw.User
	}
	if u.ID == "" {
		return nil, fmt.Errorf("%w: signup tanpa user", domain.ErrUnavailable)
	}
	return &entity.Identity{ID: u.ID, Email: u.Email}, nil
}

// ListUsers recorre /admin/users página a página con la service role key.
func (g *GoTrue) ListUsers(ctx context.Context) ([]*entity.Identity, error) {
	if g.serviceKey == "" {
		return nil, fmt.Errorf("%w: SUPABASE_SERVICE_ROLE_KEY tidak diatur", domain.ErrUnavailable)
	}
	var out []*entity.Identity
	for page := 1; ; page++ {
		var resp struct {
			Users []gotrueUser `json:"users"`
		}
		path := "/admin/users?" + url.Values{
			"page":     {strconv.Itoa(page)},
			"per_page": {strconv.Itoa(adminPageSize)},
		}.Encode()
		if err := g.do(ctx, http.MethodGet, path, nil, g.serviceKey, &resp); err != nil {
			return nil, err
		}
		for _, u := range resp.Users {
			out = append(out, &entity.Identity{ID: u.ID, Email: u.Email})
		}
		if len(resp.Users) < adminPageSize {
			return out, nil
		}
	}
}

func (g *GoTrue) token(ctx context.Context, grant string, body map[string]string) (*entity.Identity, *entity.Session, error) {
	var s gotrueSession
	if err := g.do(ctx, http.MethodPost, "/token?grant_type="+grant, body, "", &s); err != nil {
		return nil, nil, err
	}
	if s.User == nil || s.AccessToken == "" {
		return nil, nil, fmt.Errorf("%w: sesi kosong", domain.ErrUnauthorized)
	}
	return &entity.Identity{ID: s.User.ID, Email: s.User.Email},
		&entity.Session{AccessToken: s.AccessToken, RefreshToken: s.RefreshToken}, nil
}

// do ejecuta la petición. bearer vacío usa la anon key.
// 400/401/403/422 se traducen a ErrUnauthorized; 5xx y red a ErrUnavailable.
func (g *GoTrue) do(ctx context.Context, method, path string, body any, bearer string, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", g.anonKey)
	req.Header.Set("Authorization", "Bearer "+lo.CoalesceOrEmpty(bearer, g.anonKey))
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: gotrue: %v", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: gotrue: %v", domain.ErrUnavailable, err)
	}
	if resp.StatusCode >= 500 {
		return fmt.Errorf("%w: gotrue %d", domain.ErrUnavailable, resp.StatusCode)
	}
	if resp.StatusCode >= 300 {
		var ge gotrueError
		_ = json.Unmarshal(data, &ge)
		msg := lo.CoalesceOrEmpty(ge.text(), http.StatusText(resp.StatusCode))
		return fmt.Errorf("%w: %s", domain.ErrUnauthorized, msg)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("gotrue: respuesta inválida: %w", err)
	}
	return nil
}

// asInvalidInput convierte el rechazo de signup en error de validación (400).
func asInvalidInput(err error) error {
	msg := err.Error()
	prefix := domain.ErrUnauthorized.Error() + ": "
	if !strings.HasPrefix(msg, prefix) {
		return err
	}
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, strings.TrimPrefix(msg, prefix))
}
