package router

import (
	"log"
	"time"

	"synergyblood/config"
	"synergyblood/internal/handler"
	"synergyblood/internal/middleware"
	"synergyblood/internal/repository"
	"synergyblood/internal/service"
	"synergyblood/internal/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func Setup(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	// Skip gin.Logger() to reduce log noise; use gin.Default() if you need request logging
	r.Use(middleware.RateLimit(middleware.NewInMemoryRateLimiter(100, 60*time.Second)))

	// Repositories
	userRepo := repository.NewUserRepository(db)
	medicalRepo := repository.NewMedicalRepository(db)
	locRepo := repository.NewLocationRepository(db)
	hospitalRepo := repository.NewHospitalRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	requestHub := ws.NewRequestHub()

	// Services
	authSvc := service.NewAuthService(cfg, userRepo)
	fcmSvc := service.NewFCMService(cfg.Firebase.ServiceAccountPath)
	if fcmSvc != nil {
		log.Printf("[FCM] Push notifications enabled")
	} else if cfg.Firebase.ServiceAccountPath != "" {
		log.Printf("[FCM] Push notifications disabled: failed to init (check service account file)")
	} else {
		log.Printf("[FCM] Push notifications disabled: set FIREBASE_SERVICE_ACCOUNT_PATH to enable")
	}
	requestSvc := service.NewRequestService(requestRepo)
	feedSvc := service.NewFeedService(requestSvc, requestRepo, locRepo, medicalRepo, requestHub, cfg.Location.RadiusKm, cfg.Location.MaxPositionAge)
	notifSvc := service.NewNotificationService(notificationRepo, userRepo, medicalRepo, fcmSvc, cfg.Location.RadiusKm)

	// Handlers
	authHandler := handler.NewAuthHandler(authSvc)
	googleOAuthHandler := handler.NewGoogleOAuthHandler(cfg, authSvc)
	meHandler := handler.NewMeHandler(userRepo)
	medicalHandler := handler.NewMedicalHandler(medicalRepo)
	locationHandler := handler.NewLocationHandler(locRepo)
	requestHandler := handler.NewRequestHandler(requestSvc, feedSvc, notifSvc, medicalRepo, requestRepo, requestHub, cfg.Location.RadiusKm)
	hospitalHandler := handler.NewHospitalHandler(hospitalRepo, feedSvc, cfg.Location.RadiusKm)
	notificationHandler := handler.NewNotificationHandler(notificationRepo)

	authMw := middleware.AuthRequired(&cfg.JWT)

	api := r.Group("/api/v1")
	{
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/logout", authMw, authHandler.Logout)
			authGroup.PATCH("/change-password", authMw, authHandler.ChangePassword)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.GET("/google", googleOAuthHandler.Redirect)
			authGroup.GET("/google/callback", googleOAuthHandler.Callback)
			authGroup.POST("/google/token", googleOAuthHandler.Token)
		}

		me := api.Group("/me")
		me.Use(authMw)
		{
			me.GET("/profile", meHandler.GetProfile)
			me.GET("/medical-info", medicalHandler.Get)
			me.PUT("/medical-info", medicalHandler.Save)
			me.PATCH("/location", locationHandler.UpdateLocation)
			me.GET("/location", locationHandler.GetMyLocation)
			me.POST("/fcm-token", meHandler.RegisterFCMToken)
			me.GET("/notifications", notificationHandler.List)
			me.PATCH("/notifications/:id/read", notificationHandler.MarkRead)
		}

		requests := api.Group("/requests")
		requests.Use(authMw)
		{
			requests.POST("", requestHandler.Create)
			requests.GET("/feed", requestHandler.Feed)
			requests.GET("/mine", requestHandler.Mine)
			requests.POST("/:id/dismiss", requestHandler.Dismiss)
		}

		api.GET("/hospitals/nearby", authMw, hospitalHandler.Nearby)
	}

	r.GET("/ws/requests", ws.UpgradeRequestWS(&cfg.JWT, requestHub))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}
