package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/product-catalog/internal/config"
	"github.com/iliyamo/product-catalog/internal/middleware"
	"github.com/iliyamo/product-catalog/internal/model"
	"github.com/iliyamo/product-catalog/internal/repository"
	"github.com/iliyamo/product-catalog/internal/utils"
	"github.com/iliyamo/product-catalog/internal/validate"
)

// UserStore is the persistence contract the auth endpoints need.
type UserStore interface {
	Create(ctx context.Context, firstName, lastName, email, password string, cost int) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// AuthHandler bundles dependencies for the auth endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewAuthHandler(cfg config.Config, users UserStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users}
}

// SignUp handles POST /auth/sign-up. The created user is returned without
// its password hash; the model's json tag guarantees the hash can never
// leak through this response.
func (h *AuthHandler) SignUp(c echo.Context) error {
	var in validate.SignUpInput
	if err := c.Bind(&in); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if errs := in.Validate(); len(errs) > 0 {
		return validationFailed(c, errs)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	user, err := h.Users.Create(ctx, *in.FirstName, *in.LastName, *in.Email, *in.Password, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return fail(c, http.StatusConflict, "email already exists")
		}
		return fail(c, http.StatusInternalServerError, "could not create user")
	}
	return success(c, http.StatusCreated, "user created successfully", echo.Map{"user": user})
}

// SignIn handles POST /auth/sign-in. Unknown email and wrong password both
// yield the same 401 so the response never reveals which part was wrong.
func (h *AuthHandler) SignIn(c echo.Context) error {
	var in validate.SignInInput
	if err := c.Bind(&in); err != nil {
		return fail(c, http.StatusBadRequest, "invalid request body")
	}
	if errs := in.Validate(); len(errs) > 0 {
		return validationFailed(c, errs)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, *in.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return fail(c, http.StatusUnauthorized, "invalid credentials")
		}
		return fail(c, http.StatusInternalServerError, "query failed")
	}
	if !utils.VerifyPassword(user.PasswordHash, *in.Password) {
		return fail(c, http.StatusUnauthorized, "invalid credentials")
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, user.ID, user.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return fail(c, http.StatusInternalServerError, "could not issue token")
	}
	return success(c, http.StatusOK, "sign-in successful", echo.Map{
		"token":     access.Token,
		"expiresAt": access.Exp,
	})
}

// Me handles GET /auth/me behind the access gate; it returns the user the
// middleware resolved.
func (h *AuthHandler) Me(c echo.Context) error {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}
	return success(c, http.StatusOK, "user fetched successfully", echo.Map{"user": user})
}
