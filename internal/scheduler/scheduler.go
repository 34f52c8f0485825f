package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sajithvengateri-svg/chefos/internal/clock"
	orderingdomain "github.com/sajithvengateri-svg/chefos/internal/ordering/domain"
	recipedomain "github.com/sajithvengateri-svg/chefos/internal/recipe/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var ErrInvalidConfig = errors.New("scheduler requires ordering and recipe services")

const jobTimeout = 5 * time.Minute

type Params struct {
	fx.In

	Log         *zap.Logger
	Clock       clock.Clock
	OrderingSvc orderingdomain.Service
	RecipeSvc   recipedomain.Service
}

// Scheduler runs the nightly purchasing snapshot and flags recipes whose
// food cost has drifted over target since the last price changes.
type Scheduler struct {
	log         *zap.Logger
	clock       clock.Clock
	orderingSvc orderingdomain.Service
	recipeSvc   recipedomain.Service
	cron        *cron.Cron
}

func New(p Params) (*Scheduler, error) {
	if p.Log == nil || p.Clock == nil || p.OrderingSvc == nil || p.RecipeSvc == nil {
		return nil, ErrInvalidConfig
	}
	return &Scheduler{
		log:         p.Log.Named("scheduler"),
		clock:       p.Clock,
		orderingSvc: p.OrderingSvc,
		recipeSvc:   p.RecipeSvc,
	}, nil
}

// Start registers the nightly job and begins the cron loop.
func (s *Scheduler) Start(spec string) error {
	c := cron.New()
	_, err := c.AddFunc(spec, s.RunNightly)
	if err != nil {
		return err
	}
	s.cron = c
	c.Start()
	s.log.Info("scheduler started", zap.String("cron", spec))
	return nil
}

func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	s.log.Info("scheduler stopped")
}

// RunNightly executes both jobs once. Exposed so tests and operators can
// trigger a run without waiting for the cron tick.
func (s *Scheduler) RunNightly() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	s.snapshotShortfalls(ctx)
	s.flagOverBudgetRecipes(ctx)
}

func (s *Scheduler) snapshotShortfalls(ctx context.Context) {
	start := s.clock.Now()
	count, err := s.orderingSvc.SnapshotShortfalls(ctx)
	if err != nil {
		if errors.Is(err, orderingdomain.ErrNoTasks) {
			s.log.Info("shortfall snapshot skipped, no open prep tasks")
			return
		}
		s.log.Error("shortfall snapshot failed", zap.Error(err))
		return
	}
	s.log.Info("shortfall snapshot complete",
		zap.Int("ingredients", count),
		zap.Duration("took", s.clock.Now().Sub(start)),
	)
}

func (s *Scheduler) flagOverBudgetRecipes(ctx context.Context) {
	recipes, err := s.recipeSvc.List(ctx)
	if err != nil {
		s.log.Error("over-budget scan failed", zap.Error(err))
		return
	}

	over := 0
	for _, r := range recipes {
		if !r.Costing.IsOverBudget {
			continue
		}
		over++
		s.log.Warn("recipe over food cost target",
			zap.String("recipe_id", r.ID.String()),
			zap.String("recipe", r.Name),
			zap.Float64("actual_food_cost_percent", r.Costing.ActualFoodCostPercent),
			zap.Float64("target_food_cost_percent", r.TargetFoodCostPercent),
		)
	}
	s.log.Info("over-budget scan complete",
		zap.Int("recipes", len(recipes)),
		zap.Int("over_budget", over),
	)
}
