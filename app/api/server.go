package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// NewServer builds the HTTP surface. It exposes the same operations as the
// MCP tools, as plain-text GET endpoints.
func NewServer(handler *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %d %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.StatusCode,
				param.Latency,
			)
		},
	}))
	r.Use(gin.Recovery())

	r.GET("/health", handler.GetHealth)

	events := r.Group("/events")
	{
		events.GET("/upcoming", handler.GetUpcoming)
		events.GET("/search", handler.GetSearch)
		events.GET("/date/:date", handler.GetByDate)
		events.GET("/range", handler.GetByDateRange)
		events.GET("/category/:category", handler.GetByCategory)
		events.GET("/details", handler.GetDetails)
		events.GET("/time-of-day", handler.GetByTimeOfDay)
		events.GET("/this-week", handler.GetThisWeek)
		events.GET("/next-week", handler.GetNextWeek)
		events.GET("/weekend", handler.GetWeekend)
	}

	r.GET("/categories", handler.GetCategories)
	r.POST("/refresh", handler.PostRefresh)

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Campus Events",
			"version": handler.version,
			"endpoints": map[string]string{
				"health":      "/health",
				"upcoming":    "/events/upcoming?days=7",
				"search":      "/events/search?query=<q>",
				"by_date":     "/events/date/<YYYY-MM-DD>",
				"range":       "/events/range?start_date=<d>&end_date=<d>",
				"category":    "/events/category/<name>",
				"categories":  "/categories",
				"details":     "/events/details?query=<name>",
				"time_of_day": "/events/time-of-day?date=<d>&time_range=<morning|afternoon|evening|2pm-5pm>",
				"this_week":   "/events/this-week",
				"next_week":   "/events/next-week",
				"weekend":     "/events/weekend",
				"refresh":     "/refresh (POST)",
			},
		})
	})

	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})

	return r
}
