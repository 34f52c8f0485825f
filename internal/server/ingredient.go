package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	ingredientdomain "github.com/sajithvengateri-svg/chefos/internal/ingredient/domain"
)

func (s *Server) CreateIngredient(c *gin.Context) {
	var req ingredientdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.ingredientSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListIngredients(c *gin.Context) {
	resp, err := s.ingredientSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetIngredient(c *gin.Context) {
	resp, err := s.ingredientSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) UpdateIngredient(c *gin.Context) {
	var req ingredientdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.ingredientSvc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DeleteIngredient(c *gin.Context) {
	if err := s.ingredientSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"deleted": true}})
}

type updatePriceRequest struct {
	NewPrice float64 `json:"new_price"`
	Source   string  `json:"source"`
}

// UpdateIngredientPrice changes a price through the propagation engine so
// every affected recipe cost is recomputed in the same call.
func (s *Server) UpdateIngredientPrice(c *gin.Context) {
	var req updatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	source := ingredientdomain.PriceSource(strings.TrimSpace(req.Source))
	if source == "" {
		source = ingredientdomain.SourceManual
	}

	resp, err := s.costingSvc.ApplyPriceChange(c.Request.Context(), costingPriceChange(c.Param("id"), req.NewPrice, source))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) IngredientPriceHistory(c *gin.Context) {
	resp, err := s.ingredientSvc.PriceHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type setStockRequest struct {
	Quantity float64 `json:"quantity"`
}

func (s *Server) SetIngredientStock(c *gin.Context) {
	var req setStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.ingredientSvc.SetStock(c.Request.Context(), c.Param("id"), req.Quantity)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": resp})
}
