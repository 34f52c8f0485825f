package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	orderingdomain "github.com/sajithvengateri-svg/chefos/internal/ordering/domain"
)

func (s *Server) AggregateOrders(c *gin.Context) {
	var req orderingdomain.AggregateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
	}

	resp, err := s.orderingSvc.Aggregate(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) OrdersBySupplier(c *gin.Context) {
	var req orderingdomain.AggregateRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			AbortWithError(c, invalidRequestError())
			return
		}
	}

	resp, err := s.orderingSvc.BySupplier(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ShortfallSnapshots(c *gin.Context) {
	since := time.Time{}
	if raw := strings.TrimSpace(c.Query("since")); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			AbortWithError(c, newValidationError("since", "invalid_since", "invalid since date"))
			return
		}
		since = parsed
	}

	resp, err := s.orderingSvc.Snapshots(c.Request.Context(), since)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
