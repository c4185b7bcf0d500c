package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // Echo web framework handles routing
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/product-catalog/internal/config"
	"github.com/iliyamo/product-catalog/internal/handler"    // handlers implement the business logic
	"github.com/iliyamo/product-catalog/internal/middleware" // middleware for JWT authentication, role checks and caching
	"github.com/iliyamo/product-catalog/internal/model"
)

// Deps bundles everything route registration needs: the handlers, the
// JWT secret for the auth middleware, the user resolver it loads
// identities through, and the optional Redis client for read caching.
type Deps struct {
	Auth      *handler.AuthHandler
	Category  *handler.CategoryHandler
	Product   *handler.ProductHandler
	Image     *handler.ImageHandler
	Variant   *handler.VariantHandler
	JWTSecret string
	Users     middleware.UserResolver
	CacheCfg  config.CacheConfig
	Redis     *redis.Client
}

// Register wires every route of the service onto the provided Echo
// instance. Public reads are cached when Redis is available; mutations
// require a valid access token, and product mutations additionally
// require the admin role.
func Register(e *echo.Echo, d Deps) {
	// Health check for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	// Authentication middleware shared by every protected route.
	authn := middleware.Authenticate(d.JWTSecret, d.Users)
	// Read caching applies only to public GET endpoints.
	cached := middleware.Cache(d.CacheCfg, d.Redis)

	registerAuth(e, d.Auth, authn)
	registerCategories(e, d.Category, authn, cached)
	registerProducts(e, d.Product, authn, cached)
	registerImages(e, d.Image, authn, cached)
	registerVariants(e, d.Variant, authn, cached)
}

// registerAuth registers sign-up and sign-in, which do not require a
// session, plus /auth/me which returns the authenticated user.
func registerAuth(e *echo.Echo, a *handler.AuthHandler, authn echo.MiddlewareFunc) {
	g := e.Group("/auth")
	g.POST("/sign-up", a.SignUp)
	g.POST("/sign-in", a.SignIn)
	g.GET("/me", a.Me, authn)
}

// registerCategories registers the category CRUD. Reads are public and
// cacheable; writes require a signed-in user of any role.
func registerCategories(e *echo.Echo, h *handler.CategoryHandler, authn, cached echo.MiddlewareFunc) {
	g := e.Group("/categories")
	g.GET("", h.List, cached)
	g.GET("/:id", h.Get, cached)
	g.POST("", h.Create, authn)
	g.PUT("/:id", h.Update, authn)
	g.DELETE("/:id", h.Delete, authn)
}

// registerProducts registers the product CRUD. Unlike the other
// entities, product mutations are restricted to administrators.
func registerProducts(e *echo.Echo, h *handler.ProductHandler, authn, cached echo.MiddlewareFunc) {
	admin := middleware.RequireRole(model.RoleAdmin)
	g := e.Group("/products")
	g.GET("", h.List, cached)
	g.GET("/:id", h.Get, cached)
	g.POST("", h.Create, authn, admin)
	g.PUT("/:id", h.Update, authn, admin)
	g.DELETE("/:id", h.Delete, authn, admin)
}

// registerImages registers the product-image CRUD.
func registerImages(e *echo.Echo, h *handler.ImageHandler, authn, cached echo.MiddlewareFunc) {
	g := e.Group("/product-images")
	g.GET("", h.List, cached)
	g.GET("/:id", h.Get, cached)
	g.POST("", h.Create, authn)
	g.PUT("/:id", h.Update, authn)
	g.DELETE("/:id", h.Delete, authn)
}

// registerVariants registers the product-variant CRUD.
func registerVariants(e *echo.Echo, h *handler.VariantHandler, authn, cached echo.MiddlewareFunc) {
	g := e.Group("/product-variants")
	g.GET("", h.List, cached)
	g.GET("/:id", h.Get, cached)
	g.POST("", h.Create, authn)
	g.PUT("/:id", h.Update, authn)
	g.DELETE("/:id", h.Delete, authn)
}
