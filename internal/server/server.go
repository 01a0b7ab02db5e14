package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jobdesk/notifier/internal/services"
)

// Server exposes the notification and messaging surface over HTTP. Identity
// arrives pre-validated from the gateway; see identityMiddleware.
type Server struct {
	engine     *gin.Engine
	httpServer *http.Server
}

type Services struct {
	Alerts    *services.AlertService
	Notifier  *services.Notifier
	Messenger *services.Messenger
	Fanout    *services.Fanout
	Publisher EventPublisher
}

func New(port int, svc Services) *Server {

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		engine: engine,
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}

	notifications := &notificationHandler{notifier: svc.Notifier}
	messages := &messageHandler{messenger: svc.Messenger}
	alerts := &alertHandler{alerts: svc.Alerts}
	triggers := &eventHandler{publisher: svc.Publisher}

	api := engine.Group("/api", identityMiddleware())
	{
		api.GET("/notifications", notifications.list)
		api.GET("/notifications/unread-count", notifications.unreadCount)
		api.POST("/notifications/:id/read", notifications.markRead)
		api.POST("/notifications/read-all", notifications.markAllRead)
		api.DELETE("/notifications/read", notifications.deleteRead)
		api.DELETE("/notifications/:id", notifications.delete)

		api.POST("/messages", messages.send)
		api.GET("/messages/unread-count", messages.unreadCount)
		api.POST("/messages/:id/read", messages.markRead)
		api.DELETE("/messages/:id", messages.delete)
		api.GET("/conversations", messages.listConversations)
		api.GET("/conversations/:userID/messages", messages.listMessages)
		api.POST("/conversations/:userID/read", messages.markConversationRead)

		api.GET("/alerts", alerts.list)
		api.POST("/alerts", alerts.create)
		api.PUT("/alerts/:id", alerts.update)
		api.POST("/alerts/:id/activate", alerts.setActive)
		api.DELETE("/alerts/:id", alerts.delete)
	}

	// trigger hooks for the surrounding job-board services; handlers publish
	// to the bus and return before fan-out runs
	internal := engine.Group("/internal")
	{
		internal.POST("/events/job-posted", triggers.jobPosted)
		internal.POST("/events/application-status", triggers.applicationStatusChanged)
	}

	return s
}

func (s *Server) Run() error {
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
