package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sajithvengateri-svg/chefos/internal/config"
	costingdomain "github.com/sajithvengateri-svg/chefos/internal/costing/domain"
	ingredientdomain "github.com/sajithvengateri-svg/chefos/internal/ingredient/domain"
	"github.com/sajithvengateri-svg/chefos/internal/margin"
	orderingdomain "github.com/sajithvengateri-svg/chefos/internal/ordering/domain"
	productiondomain "github.com/sajithvengateri-svg/chefos/internal/production/domain"
	recipedomain "github.com/sajithvengateri-svg/chefos/internal/recipe/domain"
	scalingdomain "github.com/sajithvengateri-svg/chefos/internal/scaling/domain"
	yielddomain "github.com/sajithvengateri-svg/chefos/internal/yield/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log.Named("http")))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine *gin.Engine

	ingredientSvc ingredientdomain.Service
	recipeSvc     recipedomain.Service
	costingSvc    costingdomain.Service
	marginSvc     *margin.Service
	scalingSvc    scalingdomain.Service
	yieldSvc      yielddomain.Service
	productionSvc productiondomain.Service
	orderingSvc   orderingdomain.Service
}

type ServerParams struct {
	fx.In

	Gin           *gin.Engine
	IngredientSvc ingredientdomain.Service
	RecipeSvc     recipedomain.Service
	CostingSvc    costingdomain.Service
	MarginSvc     *margin.Service
	ScalingSvc    scalingdomain.Service
	YieldSvc      yielddomain.Service
	ProductionSvc productiondomain.Service
	OrderingSvc   orderingdomain.Service
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine: p.Gin,

		ingredientSvc: p.IngredientSvc,
		recipeSvc:     p.RecipeSvc,
		costingSvc:    p.CostingSvc,
		marginSvc:     p.MarginSvc,
		scalingSvc:    p.ScalingSvc,
		yieldSvc:      p.YieldSvc,
		productionSvc: p.ProductionSvc,
		orderingSvc:   p.OrderingSvc,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	v1 := s.engine.Group("/v1")

	ingredients := v1.Group("/ingredients")
	ingredients.POST("", s.CreateIngredient)
	ingredients.GET("", s.ListIngredients)
	ingredients.GET("/:id", s.GetIngredient)
	ingredients.PATCH("/:id", s.UpdateIngredient)
	ingredients.DELETE("/:id", s.DeleteIngredient)
	ingredients.POST("/:id/price", s.UpdateIngredientPrice)
	ingredients.GET("/:id/price-history", s.IngredientPriceHistory)
	ingredients.PUT("/:id/stock", s.SetIngredientStock)
	ingredients.GET("/:id/impacts", s.ImpactsForIngredient)

	recipes := v1.Group("/recipes")
	recipes.POST("", s.CreateRecipe)
	recipes.GET("", s.ListRecipes)
	recipes.GET("/:id", s.GetRecipe)
	recipes.PATCH("/:id", s.UpdateRecipe)
	recipes.DELETE("/:id", s.DeleteRecipe)
	recipes.POST("/:id/scale", s.ScaleRecipe)

	costing := v1.Group("/costing")
	costing.POST("/price-changes", s.ApplyPriceChange)
	costing.POST("/price-changes/preview", s.PreviewPriceChange)

	calculator := v1.Group("/calculator")
	calculator.POST("/max-cost", s.MaxCost)
	calculator.POST("/set-price", s.SetPrice)
	calculator.POST("/check-percent", s.CheckPercent)

	yields := v1.Group("/yield-tests")
	yields.POST("", s.RecordYieldTest)
	yields.GET("", s.ListYieldTests)
	yields.GET("/:id", s.GetYieldTest)
	yields.GET("/trend", s.YieldTrend)

	tasks := v1.Group("/prep-tasks")
	tasks.POST("", s.CreatePrepTask)
	tasks.GET("", s.ListPrepTasks)
	tasks.GET("/:id", s.GetPrepTask)
	tasks.PATCH("/:id", s.UpdatePrepTask)
	tasks.DELETE("/:id", s.DeletePrepTask)

	orders := v1.Group("/orders")
	orders.POST("/aggregate", s.AggregateOrders)
	orders.POST("/by-supplier", s.OrdersBySupplier)
	orders.GET("/snapshots", s.ShortfallSnapshots)
}
