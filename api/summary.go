package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/safestreets-inc/routesafety-api/store"
)

// dataSummary serves the overview-dashboard statistics. Computed fresh
// from the current snapshot on every request; no accumulator is shared
// across requests.
func (s *Server) dataSummary(c *gin.Context) {
	c.JSON(http.StatusOK, store.Summarize(s.store.All()))
}

// accidentTrends serves the trend-chart statistics.
func (s *Server) accidentTrends(c *gin.Context) {
	c.JSON(http.StatusOK, store.Trends(s.store.All()))
}
