package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/dojo-api/internal/middleware"
	"github.com/noah-isme/dojo-api/internal/models"
	"github.com/noah-isme/dojo-api/internal/service"
	"github.com/noah-isme/dojo-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/dojo-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/dojo-api/pkg/middleware/requestid"
)

// TokenValidator decodes bearer tokens for the auth guard.
type TokenValidator interface {
	ValidateToken(tokenString string) (*models.JWTClaims, error)
}

// UserLookup loads the caller's record for role guards.
type UserLookup interface {
	Get(ctx context.Context, email string) (*models.User, error)
}

// RouterConfig carries the process level settings and guard dependencies.
type RouterConfig struct {
	EnableDocs     bool
	AllowedOrigins []string
	Logger         *zap.Logger
	Metrics        *service.MetricsService
	Tokens         TokenValidator
	Users          UserLookup
}

// Handlers groups every HTTP handler served by the API.
type Handlers struct {
	Auth        *AuthHandler
	Users       *UserHandler
	Classes     *ClassHandler
	Selections  *SelectionHandler
	Enrollments *EnrollmentHandler
	Payments    *PaymentHandler
	System      *MetricsHandler
}

// NewRouter builds the gin engine with the shared middleware stack and every route.
func NewRouter(cfg RouterConfig, h Handlers) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(log, "/health", "/ready", "/metrics"))
	r.Use(corsmiddleware.New(cfg.AllowedOrigins))
	r.Use(middleware.Metrics(cfg.Metrics))

	auth := middleware.Authenticate(cfg.Tokens)
	authed := middleware.Chain(auth)
	ownEmail := middleware.Chain(auth, middleware.SameEmailQuery("email"))
	admin := middleware.Chain(auth, middleware.RequireRole(cfg.Users, models.RoleAdmin))
	instructor := middleware.Chain(auth, middleware.RequireRole(cfg.Users, models.RoleInstructor))

	r.GET("/", h.System.Root)
	r.GET("/health", h.System.Health)
	r.GET("/ready", h.System.Ready)
	r.GET("/metrics", h.System.Prometheus)
	if cfg.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	r.POST("/jwt", h.Auth.Token)

	r.GET("/users", h.Users.ListInstructors)
	r.POST("/users", h.Users.Register)
	r.GET("/users/admin/:email", authed, h.Users.IsAdmin)
	r.GET("/users/instructor/:email", authed, h.Users.IsInstructor)
	r.GET("/all-users", admin, h.Users.ListAll)
	r.PUT("/all-users", admin, h.Users.SetRole)

	r.GET("/home-classes", h.Classes.ListHome)
	r.GET("/approved-classes", h.Classes.ListApproved)
	r.GET("/all-classes", admin, h.Classes.ListAll)
	r.PATCH("/classes/:id/status", admin, h.Classes.UpdateStatus)
	r.POST("/classes", instructor, h.Classes.Create)
	r.GET("/my-classes", instructor, h.Classes.ListMine)

	r.GET("/selected-classes", ownEmail, h.Selections.List)
	r.POST("/selected-classes", h.Selections.Create)
	r.DELETE("/selected-classes/:id", h.Selections.Delete)

	r.GET("/enrolled-classes", ownEmail, h.Enrollments.List)
	r.POST("/payments", authed, h.Enrollments.Complete)

	r.POST("/create-payment-intents", authed, h.Payments.CreateIntent)
	r.GET("/payment-history", ownEmail, h.Payments.History)
	r.GET("/payment-history/export", ownEmail, h.Payments.Export)

	return r
}
