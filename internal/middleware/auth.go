package middleware // middleware provides shared request processing for handlers

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/product-catalog/internal/model"
	"github.com/iliyamo/product-catalog/internal/utils"
)

// Context keys set by Authenticate on success.
const (
	CtxUser   = "user"    // *model.User
	CtxUserID = "user_id" // uuid.UUID
	CtxRole   = "role"    // string
)

// Auth failure reasons. Externally every one of them is a plain 401, but
// the distinction is kept for logs: a token whose subject no longer
// resolves to a user is a stale credential, not a forgery.
const (
	reasonNoHeader     = "no_header"
	reasonNoToken      = "no_token"
	reasonInvalidToken = "invalid_token"
	reasonUserNotFound = "user_not_found"
)

// UserResolver is the read contract the gate needs to turn a verified
// subject id into a user record.
type UserResolver interface {
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// Authenticate returns an Echo middleware implementing the request-level
// authentication step: header presence, bearer extraction, token
// verification and identity resolution, in that order. Any sub-step
// failure terminates the request with 401. On success the resolved user
// is attached to the context for downstream handlers and role checks.
func Authenticate(secret string, users UserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if auth == "" {
				return unauthorized(c, reasonNoHeader, "missing authorization header")
			}
			if !strings.HasPrefix(auth, "Bearer ") {
				return unauthorized(c, reasonNoToken, "missing bearer token")
			}
			raw := strings.TrimPrefix(auth, "Bearer ")
			if strings.TrimSpace(raw) == "" {
				return unauthorized(c, reasonNoToken, "missing bearer token")
			}

			subject, _, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return unauthorized(c, reasonInvalidToken, "invalid token")
			}

			// The token verified but the account may have been deleted
			// since it was issued; fail closed.
			user, err := users.GetByID(c.Request().Context(), subject)
			if err != nil {
				return unauthorized(c, reasonUserNotFound, "user not found")
			}

			c.Set(CtxUser, user)
			c.Set(CtxUserID, user.ID)
			c.Set(CtxRole, user.Role)
			return next(c)
		}
	}
}

// unauthorized logs the internal reason and writes the uniform 401
// envelope. The wire message stays coarse on purpose.
func unauthorized(c echo.Context, reason, msg string) error {
	log.Printf("auth: unauthorized reason=%s method=%s path=%s", reason, c.Request().Method, c.Path())
	return c.JSON(http.StatusUnauthorized, echo.Map{
		"status":  "error",
		"message": "unauthorized: " + msg,
	})
}

// CurrentUser pulls the authenticated user out of the context. The bool
// is false when Authenticate did not run on this route.
func CurrentUser(c echo.Context) (*model.User, bool) {
	u, ok := c.Get(CtxUser).(*model.User)
	return u, ok
}
