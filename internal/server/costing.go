package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	costingdomain "github.com/sajithvengateri-svg/chefos/internal/costing/domain"
	ingredientdomain "github.com/sajithvengateri-svg/chefos/internal/ingredient/domain"
)

type priceChangeRequest struct {
	IngredientID string  `json:"ingredient_id"`
	NewPrice     float64 `json:"new_price"`
	Source       string  `json:"source"`
}

func costingPriceChange(ingredientID string, newPrice float64, source ingredientdomain.PriceSource) costingdomain.PriceChangeRequest {
	return costingdomain.PriceChangeRequest{
		IngredientID: strings.TrimSpace(ingredientID),
		NewPrice:     newPrice,
		Source:       source,
	}
}

func (s *Server) ApplyPriceChange(c *gin.Context) {
	var req priceChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	source := ingredientdomain.PriceSource(strings.TrimSpace(req.Source))
	if source == "" {
		source = ingredientdomain.SourceInvoice
	}

	resp, err := s.costingSvc.ApplyPriceChange(c.Request.Context(), costingPriceChange(req.IngredientID, req.NewPrice, source))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) PreviewPriceChange(c *gin.Context) {
	var req priceChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.costingSvc.PreviewPriceChange(c.Request.Context(), costingPriceChange(req.IngredientID, req.NewPrice, ingredientdomain.SourceManual))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ImpactsForIngredient(c *gin.Context) {
	resp, err := s.costingSvc.ImpactsForIngredient(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
