package server

import (
	"net/http"

	"rbac-dashboard/internal/config"
	"rbac-dashboard/internal/handlers"
	"rbac-dashboard/internal/middleware"
	"rbac-dashboard/internal/models"
	"rbac-dashboard/internal/store"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

func NewRouter(cfg *config.Config, db *gorm.DB, logger zerolog.Logger) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(middleware.Recovery(logger))

	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	r.Use(sessions.Sessions("rbac_session", sessionStore))

	r.Use(middleware.InjectIdentity())

	userStore := store.NewUserStore(db)
	roleStore := store.NewRoleStore(db)
	productStore := store.NewProductStore(db)
	verifier := store.NewCredentialVerifier(userStore, logger)

	authH := handlers.NewAuthHandler(userStore, verifier, logger)
	roleH := handlers.NewRoleHandler(roleStore)
	permH := handlers.NewPermissionHandler(roleStore)
	userH := handlers.NewUserHandler(userStore)
	productH := handlers.NewProductHandler(productStore)
	profileH := handlers.NewProfileHandler(userStore, logger)
	auditH := handlers.NewAuditHandler(db)

	// AUTH
	r.POST("/api/register", authH.Register)
	r.POST("/api/login", authH.Login)

	auth := r.Group("/api")
	auth.Use(middleware.RequireAuth())

	auth.POST("/logout", authH.Logout)

	// PROFILE
	auth.GET("/user/profile", profileH.Get)
	auth.PUT("/user/profile", profileH.Update)

	// PRODUCTS — any authenticated user
	auth.GET("/products", productH.List)
	auth.POST("/products", productH.Create)
	auth.PUT("/products/:id", productH.Update)
	auth.DELETE("/products/:id", productH.Delete)

	// ROLES — managers may look, only admins mutate
	auth.GET("/roles",
		middleware.RequireRole(models.RoleAdmin, models.RoleManager),
		roleH.List,
	)
	auth.POST("/roles",
		middleware.RequireRole(models.RoleAdmin),
		roleH.Create,
	)
	auth.PUT("/roles/:id",
		middleware.RequireRole(models.RoleAdmin),
		roleH.Update,
	)
	auth.DELETE("/roles/:id",
		middleware.RequireRole(models.RoleAdmin),
		roleH.Delete,
	)

	// PERMISSIONS
	auth.GET("/permissions",
		middleware.RequireRole(models.RoleAdmin, models.RoleManager),
		permH.List,
	)
	auth.POST("/permissions",
		middleware.RequireRole(models.RoleAdmin),
		permH.Create,
	)
	auth.DELETE("/permissions/:name",
		middleware.RequireRole(models.RoleAdmin),
		permH.Delete,
	)

	// USERS
	auth.GET("/users",
		middleware.RequireRole(models.RoleAdmin, models.RoleManager),
		userH.List,
	)
	auth.POST("/users",
		middleware.RequireRole(models.RoleAdmin),
		userH.Create,
	)
	auth.PUT("/users/:id",
		middleware.RequireRole(models.RoleAdmin),
		userH.Update,
	)
	auth.DELETE("/users/:id",
		middleware.RequireRole(models.RoleAdmin),
		userH.Delete,
	)

	// AUDIT
	auth.GET("/audit",
		middleware.RequireRole(models.RoleAdmin, models.RoleViewer),
		auditH.List,
	)

	// HEALTHCHECK
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}
