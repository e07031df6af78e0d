package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusbeat/events-mcp/app/feed"
)

type Handler struct {
	service *Service
	cache   *feed.Cache
	version string
}

func NewHandler(service *Service, cache *feed.Cache, version string) *Handler {
	return &Handler{
		service: service,
		cache:   cache,
		version: version,
	}
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := gin.H{
		"status":    "ok",
		"version":   h.version,
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	}

	if age, entries, ok := h.cache.Status(); ok {
		health["snapshot_age_seconds"] = int(age.Seconds())
		health["entries"] = entries
	} else {
		health["snapshot_age_seconds"] = nil
		health["entries"] = 0
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) GetUpcoming(c *gin.Context) {
	days := 7
	if raw := c.Query("days"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			days = n
		}
	}
	text, err := h.service.Upcoming(c.Request.Context(), days)
	h.respond(c, text, err)
}

func (h *Handler) GetSearch(c *gin.Context) {
	text, err := h.service.Search(c.Request.Context(), c.Query("query"))
	h.respond(c, text, err)
}

func (h *Handler) GetByDate(c *gin.Context) {
	text, err := h.service.ByDate(c.Request.Context(), c.Param("date"))
	h.respond(c, text, err)
}

func (h *Handler) GetByDateRange(c *gin.Context) {
	text, err := h.service.ByDateRange(c.Request.Context(),
		c.Query("start_date"), c.Query("end_date"))
	h.respond(c, text, err)
}

func (h *Handler) GetByCategory(c *gin.Context) {
	text, err := h.service.ByCategory(c.Request.Context(), c.Param("category"))
	h.respond(c, text, err)
}

func (h *Handler) GetCategories(c *gin.Context) {
	text, err := h.service.Categories(c.Request.Context())
	h.respond(c, text, err)
}

func (h *Handler) GetDetails(c *gin.Context) {
	text, err := h.service.Details(c.Request.Context(), c.Query("query"))
	h.respond(c, text, err)
}

func (h *Handler) GetByTimeOfDay(c *gin.Context) {
	text, err := h.service.ByTimeOfDay(c.Request.Context(),
		c.Query("date"), c.Query("time_range"))
	h.respond(c, text, err)
}

func (h *Handler) GetThisWeek(c *gin.Context) {
	text, err := h.service.ThisWeek(c.Request.Context())
	h.respond(c, text, err)
}

func (h *Handler) GetNextWeek(c *gin.Context) {
	text, err := h.service.NextWeek(c.Request.Context())
	h.respond(c, text, err)
}

func (h *Handler) GetWeekend(c *gin.Context) {
	text, err := h.service.Weekend(c.Request.Context())
	h.respond(c, text, err)
}

func (h *Handler) PostRefresh(c *gin.Context) {
	h.cache.Invalidate()
	if _, err := h.cache.Get(c.Request.Context()); err != nil {
		c.String(http.StatusBadGateway, "Error refreshing events feed: %v", err)
		return
	}
	c.String(http.StatusOK, "Feed refreshed.")
}

// respond writes the rendered text. A non-nil error marks a feed fetch
// failure with no fallback; everything else is a normal 200 text answer.
func (h *Handler) respond(c *gin.Context, text string, err error) {
	if err != nil {
		c.String(http.StatusBadGateway, text)
		return
	}
	c.String(http.StatusOK, text)
}
