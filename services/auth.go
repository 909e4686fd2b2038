package services

import (
	"os"
	"strings"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"

	"github.com/salon-lingo/admin_api/shared"
)

// AuthService gates editor access. Authentication itself belongs to the auth
// collaborator; this service only verifies its tokens and loads the profile
// row to decide roles.
type AuthService struct {
	context.DefaultService

	sqlSvc *PostgresService
	jwtSvc *JWTService

	allowedEmails map[string]bool
}

const AUTH_SVC = "auth_svc"

func (svc AuthService) Id() string {
	return AUTH_SVC
}

func (svc *AuthService) Configure(ctx *context.Context) error {
	svc.allowedEmails = map[string]bool{}
	for _, email := range strings.Split(os.Getenv("AI_SETTINGS_ALLOWED_EMAILS"), ",") {
		email = strings.TrimSpace(strings.ToLower(email))
		if email != "" {
			svc.allowedEmails[email] = true
		}
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *AuthService) Start() error {
	svc.sqlSvc = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.jwtSvc = svc.Service(JWT_SVC).(*JWTService)
	return nil
}

// RequiredAuth verifies the bearer token and loads the editor profile into
// request locals. Unauthenticated requests get a 401 so the dashboard can
// redirect to its login route.
func (svc *AuthService) RequiredAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		token, err := svc.jwtSvc.ExtractTokenFromHeader(authHeader)
		if err != nil {
			return shared.ResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", err.Error())
		}

		claims, err := svc.jwtSvc.VerifyJWTToken(token)
		if err != nil {
			return shared.ResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "Invalid JWT token")
		}

		profile, err := svc.sqlSvc.GetProfile(claims.UserID)
		if err != nil || !profile.IsActive {
			return shared.ResponseJSON(c, fiber.StatusUnauthorized, "Unauthorized", "Unknown or disabled account")
		}

		c.Locals(shared.UserID, profile.ID)
		c.Locals(shared.UserRole, profile.Role)
		c.Locals(shared.UserEmail, profile.Email)
		return c.Next()
	}
}

// RequireSuperAdmin additionally restricts a route to super admins or
// explicitly allow-listed accounts (the AI settings pages).
func (svc *AuthService) RequireSuperAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(shared.UserRole).(string)
		email, _ := c.Locals(shared.UserEmail).(string)

		if role == shared.RoleSuperAdmin || svc.allowedEmails[strings.ToLower(email)] {
			return c.Next()
		}

		return shared.ResponseForbidden(c)
	}
}
