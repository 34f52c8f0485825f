package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sajithvengateri-svg/chefos/internal/margin"
)

func (s *Server) MaxCost(c *gin.Context) {
	var req margin.MaxCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": s.marginSvc.MaxCost(req)})
}

func (s *Server) SetPrice(c *gin.Context) {
	var req margin.SetPriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": s.marginSvc.SetPrice(req)})
}

func (s *Server) CheckPercent(c *gin.Context) {
	var req margin.CheckPercentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": s.marginSvc.CheckPercent(req)})
}
