package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	yielddomain "github.com/sajithvengateri-svg/chefos/internal/yield/domain"
)

func (s *Server) RecordYieldTest(c *gin.Context) {
	var req yielddomain.RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.yieldSvc.Record(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListYieldTests(c *gin.Context) {
	filter, err := yieldFilterFromQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.yieldSvc.List(c.Request.Context(), filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetYieldTest(c *gin.Context) {
	resp, err := s.yieldSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) YieldTrend(c *gin.Context) {
	filter, err := yieldFilterFromQuery(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	resp, err := s.yieldSvc.AnalyzeTrend(c.Request.Context(), filter)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func yieldFilterFromQuery(c *gin.Context) (yielddomain.ListFilter, error) {
	filter := yielddomain.ListFilter{
		ItemName: strings.TrimSpace(c.Query("item")),
		Preparer: strings.TrimSpace(c.Query("preparer")),
	}
	if raw := strings.TrimSpace(c.Query("limit")); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return filter, newValidationError("limit", "invalid_limit", "invalid limit")
		}
		filter.Limit = limit
	}
	return filter, nil
}
