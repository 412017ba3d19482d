package http

import (
	"errors"
	"slices"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Sparepart-api/internal/application/dto"
	"github.com/jhoicas/Sparepart-api/internal/application/ports"
	"github.com/jhoicas/Sparepart-api/internal/domain"
	"github.com/jhoicas/Sparepart-api/internal/domain/entity"
	"github.com/jhoicas/Sparepart-api/internal/domain/repository"
)

// Locals keys de la petición autenticada.
const (
	LocalUserID  = "user_id"
	LocalEmail   = "email"
	LocalProfile = "profile"
)

// AuthMiddleware valida el Bearer token contra el proveedor de identidad y deja el usuario en c.Locals.
func AuthMiddleware(idp ports.IdentityProvider) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Error: "Token tidak ditemukan"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Error: "format: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Error: "Token tidak ditemukan"})
		}
		ident, err := idp.VerifyToken(c.UserContext(), tokenString)
		if errors.Is(err, domain.ErrUnauthorized) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Error: "Token tidak valid"})
		}
		if err != nil {
			return respondError(c, err)
		}
		c.Locals(LocalUserID, ident.ID)
		c.Locals(LocalEmail, ident.Email)
		return c.Next()
	}
}

// RequireRole carga el perfil del usuario (una vez por petición) y exige uno de los roles.
// Debe usarse DESPUÉS de AuthMiddleware.
//
//   - 401 si no hay usuario en el contexto.
//   - 403 si el perfil no existe o su rol no está permitido.
func RequireRole(profiles repository.UserProfileRepository, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Error: "Unauthorized"})
		}
		profile := GetProfile(c)
		if profile == nil {
			p, err := profiles.GetByID(c.UserContext(), userID)
			if err != nil {
				return respondError(c, err)
			}
			if p == nil {
				return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Error: "Profil tidak ditemukan"})
			}
			c.Locals(LocalProfile, p)
			profile = p
		}
		if !slices.Contains(roles, profile.Role) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Error: "Akses ditolak"})
		}
		return c.Next()
	}
}

// GetUserID devuelve el id del usuario autenticado ("" si no hay).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetEmail email del usuario autenticado.
func GetEmail(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalEmail).(string)
	return s
}

// GetProfile perfil cargado por RequireRole (nil si aún no se cargó).
func GetProfile(c *fiber.Ctx) *entity.UserProfile {
	p, _ := c.Locals(LocalProfile).(*entity.UserProfile)
	return p
}
