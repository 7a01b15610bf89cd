package server

import (
	"context"
	"net/http"
	"time"

	"fitgate/internal/auth"
	"fitgate/internal/checkin"
	"fitgate/internal/config"
	"fitgate/internal/email"
	"fitgate/internal/gym"
	"fitgate/internal/member"
	"fitgate/internal/notification"
	"fitgate/internal/payment"
	"fitgate/internal/portal"
	"fitgate/internal/qrcode"
	"fitgate/internal/scan"
	"fitgate/internal/stats"
	"fitgate/internal/user"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router *gin.Engine
	db     *sqlx.DB
	config *config.Config
	email  *email.Service
	http   *http.Server
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service, notifier *notification.Notifier, expiry *notification.ExpiryScanner) *Server {
	router := gin.Default()
	router.Use(corsMiddleware())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())

	gymRepo := gym.NewRepository(db)
	gymService := gym.NewService(gymRepo)
	userRepo := user.NewRepository(db)
	memberRepo := member.NewRepository(db)
	qrRepo := qrcode.NewRepository(db)
	scanRepo := scan.NewRepository(db)
	checkinRepo := checkin.NewRepository(db)
	notifRepo := notification.NewRepository(db)
	paymentRepo := payment.NewRepository(db)
	portalRepo := portal.NewRepository(db)

	checkinService := checkin.NewService(checkinRepo, memberRepo, qrRepo, gymRepo, userRepo, notifier, emailService)
	statsService := stats.NewService(memberRepo, checkinRepo, scanRepo, paymentRepo, notifRepo, expiry)

	userHandler := user.NewHandler(db, cfg.JWTSecret)
	gymHandler := gym.NewHandler(gymService)
	memberHandler := member.NewHandler(memberRepo, gymService, gymRepo, cfg.JWTSecret)
	qrHandler := qrcode.NewHandler(qrRepo, gymService, cfg.PublicBaseURL)
	scanHandler := scan.NewHandler(scanRepo, qrRepo, gymRepo, cfg.PublicBaseURL)
	checkinHandler := checkin.NewHandler(checkinService, checkinRepo, gymService)
	notifHandler := notification.NewHandler(notifRepo, gymService)
	paymentHandler := payment.NewHandler(paymentRepo, gymService)
	portalHandler := portal.NewHandler(portalRepo, checkinRepo)
	statsHandler := stats.NewHandler(statsService, gymService)

	// The scan endpoint is the only unauthenticated write path, so it
	// carries its own rate limit.
	router.GET("/s/:code", RateLimitMiddleware(10, 20), scanHandler.HandleScan)

	public := router.Group("/auth")
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.Refresh)
	}

	router.POST("/portal/sign-in", RateLimitMiddleware(5, 10), memberHandler.PortalSignIn)

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)

	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)
	}

	memberOnly := router.Group("/portal")
	memberOnly.Use(authMiddleware, auth.RequireRole(auth.RoleMember))
	{
		memberOnly.POST("/check-in", checkinHandler.Record)
		memberOnly.GET("/check-ins", portalHandler.History)
		memberOnly.GET("/workout-focus", portalHandler.GetWorkoutFocus)
		memberOnly.PUT("/workout-focus", portalHandler.SaveWorkoutFocus)
		memberOnly.GET("/reviews", portalHandler.ListReviews)
		memberOnly.POST("/reviews", portalHandler.CreateReview)
		memberOnly.GET("/referrals", portalHandler.ListReferrals)
		memberOnly.POST("/referrals", portalHandler.CreateReferral)
	}

	owner := router.Group("/owner")
	owner.Use(authMiddleware, auth.RequireRole(auth.RoleOwner))
	{
		owner.POST("/gyms", gymHandler.CreateGym)
		owner.GET("/gyms", gymHandler.ListGyms)
		owner.GET("/gyms/:gymID", gymHandler.GetGym)
		owner.PUT("/gyms/:gymID", gymHandler.UpdateGym)

		owner.POST("/gyms/:gymID/members", memberHandler.CreateMember)
		owner.GET("/gyms/:gymID/members", memberHandler.ListMembers)
		owner.PUT("/gyms/:gymID/members/:memberID", memberHandler.UpdateMember)

		owner.POST("/gyms/:gymID/qr-codes", qrHandler.CreateQRCode)
		owner.GET("/gyms/:gymID/qr-codes", qrHandler.ListQRCodes)
		owner.POST("/gyms/:gymID/qr-codes/:qrID/deactivate", qrHandler.DeactivateQRCode)
		owner.GET("/gyms/:gymID/qr-codes/:qrID/image", qrHandler.QRCodeImage)

		owner.GET("/gyms/:gymID/check-ins", checkinHandler.ListByGym)

		owner.GET("/gyms/:gymID/notifications", notifHandler.List)
		owner.GET("/gyms/:gymID/notifications/unread-count", notifHandler.UnreadCount)
		owner.POST("/gyms/:gymID/notifications/:notificationID/read", notifHandler.MarkRead)
		owner.POST("/gyms/:gymID/notifications/read-all", notifHandler.MarkAllRead)

		owner.POST("/gyms/:gymID/payments", paymentHandler.RecordPayment)
		owner.GET("/gyms/:gymID/payments", paymentHandler.ListPayments)

		owner.GET("/gyms/:gymID/dashboard", statsHandler.Dashboard)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	router.GET("/test-email", TestEmail(emailService))

	return &Server{
		router: router,
		db:     db,
		config: cfg,
		email:  emailService,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:              ":" + port,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

// Router exposes the gin engine for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "X-Scan-ID, X-QR-Code")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
