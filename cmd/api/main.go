package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"varanbook/internal/config"
	"varanbook/internal/database"
	"varanbook/internal/middleware"
	"varanbook/internal/modules/auth"
	"varanbook/internal/modules/files"
	"varanbook/internal/modules/profile"
	"varanbook/internal/modules/shortlist"
	"varanbook/internal/modules/tenant"
	"varanbook/internal/modules/user"
	jwtsvc "varanbook/internal/pkg/jwt"
	"varanbook/internal/pkg/password"
	"varanbook/internal/repository"
	"varanbook/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal(err)
	}
	if database.IsPostgres(db) {
		if err := database.SetupRowIsolation(db); err != nil {
			log.Fatal(err)
		}
	}

	userRepo := repository.NewUserRepository(db)
	tenantRepo := repository.NewTenantRepository(db)
	sessionRepo := repository.NewRefreshTokenRepository(db)
	resetRepo := repository.NewPasswordResetRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	shortlistRepo := repository.NewShortlistRepository(db)

	tokens := jwtsvc.New(cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL)
	hasher := password.NewHasher(cfg.BcryptCost)
	mailer := services.NewLogEmailSender(cfg.SMTPFrom)
	queue := services.NewLogNotificationQueue()
	storage := services.NewLocalObjectStorage(cfg.FrontendURL)

	authHandler := auth.NewHandler(auth.NewService(
		userRepo, tenantRepo, sessionRepo, resetRepo,
		tokens, hasher, mailer, cfg.ResetTTL,
	))
	tenantHandler := tenant.NewHandler(tenant.NewService(tenantRepo))
	userHandler := user.NewHandler(user.NewService(userRepo, tenantRepo, sessionRepo, hasher))
	profileHandler := profile.NewHandler(profile.NewService(profileRepo))
	shortlistHandler := shortlist.NewHandler(shortlist.NewService(shortlistRepo, profileRepo, queue))
	filesHandler := files.NewHandler(storage)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())
	r.Use(middleware.ResolveTenant(cfg.TenantHeader, tenantRepo))
	r.Use(middleware.Audit(db))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		userHandler.RegisterPublicRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.Auth(tokens, userRepo, tenantRepo))
		{
			authHandler.RegisterProtectedRoutes(protected)
			userHandler.RegisterProtectedRoutes(protected)
			tenantHandler.RegisterRoutes(protected)
			profileHandler.RegisterRoutes(protected)
			shortlistHandler.RegisterRoutes(protected)
			filesHandler.RegisterRoutes(protected)
		}
	}

	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal(err)
	}
}
