package api

import (
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/emberesports/crewdesk/internal/metrics"
)

// NewRouter builds the API engine with request logging, panic recovery and HTTP metrics
func NewRouter(zapLogger *zap.Logger, events *EventHandler, slots *SlotHandler, schedule *ScheduleHandler) *gin.Engine {
	router := gin.New()
	router.Use(metrics.GinMiddleware)

	router.Use(ginzap.GinzapWithConfig(zapLogger, &ginzap.Config{
		TimeFormat: time.RFC3339,
		UTC:        true,
		Skipper: func(c *gin.Context) bool {
			return c.Request.URL.Path == "/metrics" && c.Request.Method == "GET"
		},
	}))

	router.Use(ginzap.RecoveryWithZap(zapLogger, true))

	initEventRoutes(router, events)
	initSlotRoutes(router, slots)
	initScheduleRoutes(router, schedule)

	return router
}

func initEventRoutes(router *gin.Engine, h *EventHandler) {
	router.GET("/events", h.ListEvents)
	router.GET("/events/:id", h.GetEvent)
	router.GET("/events/:id/suggestions", h.Suggestions)
	router.POST("/events/:id/signups", h.AddSignup)
	router.DELETE("/events/:id/signups", h.RemoveSignup)
	router.POST("/events/:id/assignments", h.Assign)
	router.DELETE("/events/:id/assignments", h.Unassign)
	router.POST("/events/:id/priority", h.SetPriority)
}

func initSlotRoutes(router *gin.Engine, h *SlotHandler) {
	router.GET("/slots", h.ListSlots)
	router.POST("/slots/signups", h.SignupForSlot)
	router.GET("/workload", h.Workload)
}

func initScheduleRoutes(router *gin.Engine, h *ScheduleHandler) {
	router.GET("/schedule/selectable", h.Selectable)
	router.GET("/schedule/text", h.Text)
	router.POST("/events/:id/schedule/toggle", h.Toggle)
}

// NewMetricsRouter serves /metrics on its own listener
func NewMetricsRouter() *gin.Engine {
	router := gin.New()
	router.GET("/metrics", metrics.Handler())
	return router
}
