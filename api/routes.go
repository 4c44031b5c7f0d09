package api

import (
	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"

	"github.com/customeros/mailbroker/api/middleware"
	"github.com/customeros/mailbroker/api/rest/handlers"
	"github.com/customeros/mailbroker/internal/tracing"
	"github.com/customeros/mailbroker/services"
)

const appSource = "mailbroker"

// RegisterRoutes sets up all API endpoints
func RegisterRoutes(r *gin.Engine, s *services.Services, apikey string) {
	if s == nil {
		panic("Services cannot be nil")
	}

	r.Use(gin.Recovery())
	r.Use(tracing.RecoveryWithJaeger(opentracing.GlobalTracer()))
	r.Use(middleware.RequestIdMiddleware())

	r.GET("/health", handlers.HealthCheck)

	apiKeyMiddleware := middleware.APIKeyMiddleware(middleware.APIKeyConfig{
		HeaderName:  middleware.APIKeyHeader,
		ValidAPIKey: apikey,
	})

	api := r.Group("/v1")
	api.Use(apiKeyMiddleware)
	api.Use(middleware.CustomContextMiddleware(appSource))
	api.Use(middleware.TracingMiddleware())
	{
		inboxes := api.Group("/inboxes")
		{
			inboxes.GET("", handlers.ListInboxes(s.MailboxAPI))
			inboxes.POST("", handlers.CreateInbox(s.MailboxAPI))
			inboxes.GET("/:inboxId", handlers.GetInbox(s.MailboxAPI))
			inboxes.DELETE("/:inboxId", handlers.DeleteInbox(s.MailboxAPI))

			inboxes.GET("/:inboxId/threads", handlers.ListThreads(s.MailboxAPI))
			inboxes.GET("/:inboxId/threads/:threadId", handlers.GetThread(s.MailboxAPI))

			inboxes.POST("/:inboxId/messages", handlers.SendMessage(s.MailboxAPI))
			inboxes.POST("/:inboxId/messages/:messageId/reply", handlers.ReplyToMessage(s.MailboxAPI))
			inboxes.PATCH("/:inboxId/messages/:messageId", handlers.UpdateMessage(s.MailboxAPI))
		}

		threads := api.Group("/threads")
		{
			threads.GET("/:threadId/attachments/:attachmentId/text", handlers.ExtractAttachmentText(s.AttachmentService))
		}
	}
}
