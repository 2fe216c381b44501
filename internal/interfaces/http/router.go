package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"caseflow/internal/interfaces/http/handlers"
	"caseflow/internal/interfaces/http/middleware"
	"caseflow/internal/shared/logger"
)

// Router wires the HTTP surface: middleware chain plus the assignment,
// queue, and escalation route groups.
type Router struct {
	engine            *gin.Engine
	assignmentHandler *handlers.AssignmentHandler
	queueHandler      *handlers.QueueHandler
	escalationHandler *handlers.EscalationHandler
	authMiddleware    *middleware.AuthMiddleware
	logger            logger.Interface
}

func NewRouter(
	assignmentHandler *handlers.AssignmentHandler,
	queueHandler *handlers.QueueHandler,
	escalationHandler *handlers.EscalationHandler,
	authMiddleware *middleware.AuthMiddleware,
	log logger.Interface,
) *Router {
	return &Router{
		engine:            gin.New(),
		assignmentHandler: assignmentHandler,
		queueHandler:      queueHandler,
		escalationHandler: escalationHandler,
		authMiddleware:    authMiddleware,
		logger:            log,
	}
}

func (r *Router) SetupRoutes() {
	r.engine.Use(middleware.Recovery())
	r.engine.Use(middleware.Logger(r.logger))

	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.engine.Group("/api/v1")
	api.Use(r.authMiddleware.RequireAuth())

	assignments := api.Group("/assignments")
	{
		assignments.POST("", r.assignmentHandler.AutoAssign)
		assignments.POST("/override", r.assignmentHandler.ManualOverride)
		assignments.GET("", r.assignmentHandler.List)
		assignments.GET("/mine", r.assignmentHandler.MyAssignments)
		assignments.GET("/:id", r.assignmentHandler.Get)
		assignments.POST("/:id/complete", r.assignmentHandler.Complete)
		assignments.POST("/:id/reassign", r.assignmentHandler.Reassign)
	}

	queue := api.Group("/queue")
	{
		queue.GET("", r.queueHandler.List)
		queue.GET("/position/:work_item_id", r.queueHandler.Position)
		queue.DELETE("/:id", r.queueHandler.Remove)
	}

	escalations := api.Group("/escalations")
	{
		escalations.GET("/report", r.escalationHandler.Report)
		escalations.POST("/:id/acknowledge", r.escalationHandler.Acknowledge)
		escalations.POST("/:id/resolve", r.escalationHandler.Resolve)
	}
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
