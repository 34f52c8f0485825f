package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	costingdomain "github.com/sajithvengateri-svg/chefos/internal/costing/domain"
	ingredientdomain "github.com/sajithvengateri-svg/chefos/internal/ingredient/domain"
	orderingdomain "github.com/sajithvengateri-svg/chefos/internal/ordering/domain"
	productiondomain "github.com/sajithvengateri-svg/chefos/internal/production/domain"
	recipedomain "github.com/sajithvengateri-svg/chefos/internal/recipe/domain"
	scalingdomain "github.com/sajithvengateri-svg/chefos/internal/scaling/domain"
	yielddomain "github.com/sajithvengateri-svg/chefos/internal/yield/domain"
	"gorm.io/gorm"
)

type ValidationError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

type ValidationErrors struct {
	Errors []ValidationError `json:"errors"`
}

func (v ValidationErrors) Error() string {
	return "validation error"
}

type errorPayload struct {
	Type    string            `json:"type"`
	Message string            `json:"message"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

type errorResponse struct {
	Error errorPayload `json:"error"`
}

var (
	ErrNotFound       = errors.New("not_found")
	ErrInvalidRequest = errors.New("invalid_request")
	ErrInternal       = errors.New("internal_error")
)

func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.Header("Content-Type", "application/json")
		c.AbortWithStatusJSON(status, errorResponse{Error: payload})
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func invalidRequestError() error {
	return newValidationError("request", "invalid_request", "invalid request")
}

func newValidationError(field, code, message string) error {
	return &ValidationErrors{
		Errors: []ValidationError{
			{
				Field:   field,
				Code:    code,
				Message: message,
			},
		},
	}
}

func mapError(err error) (int, errorPayload) {
	if vErr := asValidationErrors(err); vErr != nil {
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors:  vErr.Errors,
		}
	}

	switch {
	case isValidationError(err):
		return http.StatusBadRequest, errorPayload{
			Type:    "validation_error",
			Message: "validation error",
			Errors: []ValidationError{
				{
					Field:   "request",
					Code:    err.Error(),
					Message: err.Error(),
				},
			},
		}
	case errors.Is(err, ingredientdomain.ErrDuplicateName):
		return http.StatusConflict, errorPayload{
			Type:    "conflict",
			Message: "conflict",
		}
	case isNotFoundError(err):
		return http.StatusNotFound, errorPayload{
			Type:    "not_found",
			Message: "not found",
		}
	default:
		return http.StatusInternalServerError, errorPayload{
			Type:    "internal_error",
			Message: "internal server error",
		}
	}
}

func asValidationErrors(err error) *ValidationErrors {
	var vErr *ValidationErrors
	if errors.As(err, &vErr) && vErr != nil {
		return vErr
	}
	return nil
}

var validationErrors = []error{
	ErrInvalidRequest,
	ingredientdomain.ErrInvalidID,
	ingredientdomain.ErrInvalidName,
	ingredientdomain.ErrInvalidUnit,
	ingredientdomain.ErrInvalidPrice,
	ingredientdomain.ErrInvalidSource,
	ingredientdomain.ErrInvalidStock,
	recipedomain.ErrInvalidID,
	recipedomain.ErrInvalidName,
	recipedomain.ErrInvalidServings,
	recipedomain.ErrInvalidSellPrice,
	recipedomain.ErrInvalidTargetPct,
	recipedomain.ErrInvalidYieldWeight,
	recipedomain.ErrInvalidLine,
	recipedomain.ErrInvalidWaste,
	recipedomain.ErrInvalidCookingLoss,
	costingdomain.ErrInvalidIngredient,
	costingdomain.ErrInvalidPrice,
	scalingdomain.ErrInvalidID,
	scalingdomain.ErrInvalidMode,
	scalingdomain.ErrInvalidTarget,
	scalingdomain.ErrZeroBase,
	scalingdomain.ErrExcessiveWaste,
	yielddomain.ErrInvalidID,
	yielddomain.ErrInvalidItem,
	yielddomain.ErrInvalidWeight,
	yielddomain.ErrInvalidUnit,
	yielddomain.ErrInvalidPortions,
	yielddomain.ErrInvalidTarget,
	productiondomain.ErrInvalidID,
	productiondomain.ErrInvalidRecipe,
	productiondomain.ErrInvalidScale,
	productiondomain.ErrInvalidStatus,
	productiondomain.ErrInvalidDate,
	orderingdomain.ErrInvalidTaskID,
	orderingdomain.ErrNoTasks,
}

var notFoundErrors = []error{
	ErrNotFound,
	ingredientdomain.ErrNotFound,
	recipedomain.ErrNotFound,
	scalingdomain.ErrNotFound,
	yielddomain.ErrNotFound,
	productiondomain.ErrNotFound,
	costingdomain.ErrIngredientMissing,
	gorm.ErrRecordNotFound,
}

func isValidationError(err error) bool {
	for _, target := range validationErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func isNotFoundError(err error) bool {
	for _, target := range notFoundErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
