package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/estoque-api/internal/application/dto"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
)

// UserLoader resuelve el usuario dueño de la sesión. (nil, nil) si ya no existe.
type UserLoader interface {
	CurrentUser(ctx context.Context, userID string) (*entity.User, error)
}

// RequireRole devuelve un middleware Fiber que exige que el usuario de la sesión tenga un rol de allowed.
// Debe usarse DESPUÉS de AuthMiddleware (necesita LocalUserID). El rol se lee del registro
// del usuario, no del token: un usuario degradado o eliminado pierde el acceso de inmediato.
//
// Comportamiento:
//   - 401 Unauthorized → no hay identidad o el usuario ya no existe.
//   - 403 Forbidden    → el rol no está permitido.
func RequireRole(users UserLoader, allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := GetUserID(c)
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "autenticación requerida",
			})
		}
		user, err := users.CurrentUser(c.UserContext(), userID)
		if err != nil {
			return writeError(c, err, "usuario no encontrado")
		}
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNKNOWN_USER",
				Message: "el usuario de la sesión ya no existe",
			})
		}
		c.Locals(LocalRole, user.Role)
		for _, r := range allowed {
			if r == user.Role {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code:    "FORBIDDEN",
			Message: "se requiere rol " + strings.Join(allowed, " o "),
		})
	}
}
