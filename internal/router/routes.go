package router

import (
	"github.com/changhyeonkim/together-culture/go-api-server/internal/analytics"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/auth"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/chat"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/config"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/connection"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/contentmodule"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/document"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/event"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/member"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/meta"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/cache"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/metrics"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/middleware"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/storage"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/token"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Dependencies are the infrastructure handles built in main
type Dependencies struct {
	Config       *config.Config
	DB           *gorm.DB
	DBCheck      meta.Checker
	CacheCheck   meta.Checker // nil without redis
	TokenStore   cache.TokenStore
	LoginLimiter cache.LoginLimiter
	Store        storage.Store
	Metrics      *metrics.Metrics
}

// Setup configures all application-specific routes using dependency injection
func Setup(router *gin.Engine, deps Dependencies) {
	cfg := deps.Config
	db := deps.DB

	// Meta handler (health check, prometheus scrape)
	metaHandler := meta.NewHandler(cfg, deps.DBCheck, deps.CacheCheck)
	router.GET("/health", metaHandler.Health)
	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))

	// repository
	memberRepository := member.NewMemberRepository()
	userRepository := member.NewUserRepository()
	benefitRepository := member.NewBenefitRepository()
	eventRepository := event.NewEventRepository()
	attendanceRepository := event.NewAttendanceRepository()
	moduleRepository := contentmodule.NewModuleRepository()
	bookingRepository := contentmodule.NewBookingRepository()
	progressRepository := contentmodule.NewProgressRepository()
	connectionRepository := connection.NewConnectionRepository()
	conversationRepository := chat.NewConversationRepository()
	participantRepository := chat.NewParticipantRepository()
	messageRepository := chat.NewMessageRepository()
	documentRepository := document.NewDocumentRepository()

	// shared services
	tokenManager := token.NewJWTManager(cfg)

	// service
	memberService := member.NewMemberService(db, memberRepository, userRepository, benefitRepository)
	authService := auth.NewAuthService(db, memberService, memberRepository, userRepository, tokenManager, deps.TokenStore, deps.LoginLimiter)
	eventService := event.NewEventService(db, eventRepository, attendanceRepository)
	moduleService := contentmodule.NewModuleService(db, moduleRepository, bookingRepository, progressRepository)
	connectionService := connection.NewConnectionService(db, connectionRepository)
	chatService := chat.NewChatService(db, conversationRepository, participantRepository, messageRepository)
	documentService := document.NewDocumentService(db, documentRepository, deps.Store)
	analyticsService := analytics.NewAnalyticsService(db, analytics.NewAnalyticsRepository())

	// handler
	authHandler := auth.NewAuthHandler(authService)
	memberHandler := member.NewMemberHandler(memberService)
	eventHandler := event.NewEventHandler(eventService)
	moduleHandler := contentmodule.NewModuleHandler(moduleService)
	connectionHandler := connection.NewConnectionHandler(connectionService)
	chatHandler := chat.NewChatHandler(chatService)
	documentHandler := document.NewDocumentHandler(documentService, cfg.Storage.MaxUploadBytes)
	analyticsHandler := analytics.NewAnalyticsHandler(analyticsService)

	jwt := middleware.JWT(tokenManager)
	adminOnly := middleware.RequireAdmin()

	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/register", authHandler.Register)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/refresh-token", authHandler.RefreshToken)
		authGroup.POST("/logout", authHandler.Logout)
	}

	members := router.Group("/api/members", jwt)
	{
		members.GET("/profile", memberHandler.GetProfile)
		members.PUT("/profile", memberHandler.UpdateProfile)
		members.GET("/dashboard", memberHandler.Dashboard)
		members.GET("/benefits", memberHandler.GetBenefits)
		members.POST("/benefits/:benefitId/use", memberHandler.UseBenefit)
		members.GET("/interests", memberHandler.GetInterests)
		members.POST("/express-interest", memberHandler.ExpressInterest)
		members.GET("/suggestions", memberHandler.GetSuggestions)

		admin := members.Group("", adminOnly)
		admin.GET("", memberHandler.List)
		admin.POST("", memberHandler.Create)
		admin.GET("/search", memberHandler.Search)
		admin.GET("/:id", memberHandler.GetByID)
		admin.PUT("/:id", memberHandler.Update)
		admin.DELETE("/:id", memberHandler.Delete)
		admin.PUT("/:id/type", memberHandler.ChangeMembershipType)
		admin.PUT("/:id/status", memberHandler.ChangeStatus)
		admin.POST("/:id/benefits", memberHandler.GrantBenefit)
	}

	events := router.Group("/api/events", jwt)
	{
		events.GET("", eventHandler.List)
		events.GET("/search", eventHandler.Search)
		events.GET("/me", eventHandler.MyRegistrations)
		events.GET("/:id", eventHandler.Get)
		events.POST("/:id/attend", eventHandler.Attend)
		events.DELETE("/:id/attend", eventHandler.CancelAttendance)

		admin := events.Group("", adminOnly)
		admin.POST("", eventHandler.Create)
		admin.PUT("/:id", eventHandler.Update)
		admin.DELETE("/:id", eventHandler.Delete)
		admin.POST("/:id/cancel", eventHandler.Cancel)
		admin.GET("/:id/attendees", eventHandler.Attendees)
		admin.PUT("/:id/attendees/:memberId/attended", eventHandler.MarkAttended)
	}

	modules := router.Group("/api/modules", jwt)
	{
		modules.GET("", moduleHandler.List)
		modules.GET("/:id", moduleHandler.Get)
		modules.POST("/:id/book", moduleHandler.Book)
		modules.DELETE("/:id/book", moduleHandler.Unbook)
		modules.PUT("/:id/progress", moduleHandler.UpdateProgress)

		admin := modules.Group("", adminOnly)
		admin.POST("", moduleHandler.Create)
		admin.PUT("/:id", moduleHandler.Update)
	}

	connections := router.Group("/api/connections", jwt)
	{
		connections.GET("", connectionHandler.List)
		connections.GET("/needs", connectionHandler.Needs)
		connections.GET("/offers", connectionHandler.Offers)
		connections.GET("/:id", connectionHandler.Get)
		connections.POST("", connectionHandler.Create)
		connections.PUT("/:id", connectionHandler.Update)
		connections.DELETE("/:id", connectionHandler.Delete)
	}

	chatGroup := router.Group("/api/chat", jwt)
	{
		chatGroup.GET("/conversations", chatHandler.Conversations)
		chatGroup.POST("/conversations", chatHandler.CreateConversation)
		chatGroup.GET("/conversations/:id", chatHandler.Conversation)
		chatGroup.GET("/conversations/:id/messages", chatHandler.Messages)
		chatGroup.POST("/messages", chatHandler.Send)
	}

	documents := router.Group(DocumentsPrefix, jwt)
	{
		documents.GET("", documentHandler.List)
		documents.GET("/:id", documentHandler.Get)
		documents.GET("/:id/download", documentHandler.Download)
		documents.POST("", documentHandler.Upload)
		documents.DELETE("/:id", documentHandler.Delete)
	}

	analyticsGroup := router.Group("/api/analytics", jwt, adminOnly)
	{
		analyticsGroup.GET("/funnel", analyticsHandler.Funnel)
		analyticsGroup.GET("/trends", analyticsHandler.Trends)
		analyticsGroup.GET("/interests", analyticsHandler.InterestShifts)
		analyticsGroup.GET("/engagement", analyticsHandler.Engagement)
	}

	// Admin aliases kept for the admin console
	adminGroup := router.Group("/api/admin", jwt, adminOnly)
	{
		adminGroup.POST("/members", memberHandler.Create)
		adminGroup.PUT("/members/:id/type", memberHandler.ChangeMembershipType)
		adminGroup.GET("/members/search", memberHandler.Search)
		adminGroup.GET("/events/search", eventHandler.Search)
	}
}

// DocumentsPrefix is exempt from the request timeout because uploads and downloads stream
const DocumentsPrefix = "/api/documents"
