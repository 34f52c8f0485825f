package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/sajithvengateri-svg/chefos/internal/clock"
	"github.com/sajithvengateri-svg/chefos/internal/config"
	ingredientdomain "github.com/sajithvengateri-svg/chefos/internal/ingredient/domain"
	orderingdomain "github.com/sajithvengateri-svg/chefos/internal/ordering/domain"
	productiondomain "github.com/sajithvengateri-svg/chefos/internal/production/domain"
	recipedomain "github.com/sajithvengateri-svg/chefos/internal/recipe/domain"
	"github.com/sajithvengateri-svg/chefos/pkg/db/option"
	"github.com/sajithvengateri-svg/chefos/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	log     *zap.Logger
	genID   *snowflake.Node
	clock   clock.Clock
	costing *config.CostingConfigHolder

	tasks       repository.Repository[productiondomain.PrepTask]
	lines       repository.Repository[recipedomain.RecipeIngredientLine]
	ingredients repository.Repository[ingredientdomain.Ingredient]
	snapshots   repository.Repository[orderingdomain.ShortfallSnapshot]
}

type ServiceParam struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Clock   clock.Clock
	Costing *config.CostingConfigHolder
}

func NewService(p ServiceParam) orderingdomain.Service {
	return &Service{
		log:     p.Log.Named("ordering.service"),
		genID:   p.GenID,
		clock:   p.Clock,
		costing: p.Costing,

		tasks:       repository.ProvideStore[productiondomain.PrepTask](p.DB),
		lines:       repository.ProvideStore[recipedomain.RecipeIngredientLine](p.DB),
		ingredients: repository.ProvideStore[ingredientdomain.Ingredient](p.DB),
		snapshots:   repository.ProvideStore[orderingdomain.ShortfallSnapshot](p.DB),
	}
}

func (s *Service) Aggregate(ctx context.Context, req orderingdomain.AggregateRequest) (*orderingdomain.DemandSummary, error) {
	demands, views, err := s.loadDemand(ctx, req.TaskIDs)
	if err != nil {
		return nil, err
	}

	cfg := s.costing.Get()
	summary := orderingdomain.AggregateDemand(demands, views, orderingdomain.UrgencyThresholds{
		CriticalRatio: cfg.CriticalShortfallRatio,
		NeededRatio:   cfg.NeededShortfallRatio,
	})
	return &summary, nil
}

func (s *Service) BySupplier(ctx context.Context, req orderingdomain.AggregateRequest) ([]orderingdomain.SupplierOrder, error) {
	summary, err := s.Aggregate(ctx, req)
	if err != nil {
		return nil, err
	}
	return orderingdomain.GroupBySupplier(*summary), nil
}

func (s *Service) SnapshotShortfalls(ctx context.Context) (int, error) {
	summary, err := s.Aggregate(ctx, orderingdomain.AggregateRequest{})
	if err != nil {
		return 0, err
	}

	now := s.clock.Now()
	rows := make([]*orderingdomain.ShortfallSnapshot, 0, len(summary.Ingredients))
	for _, item := range summary.Ingredients {
		if item.ShortfallQuantity <= 0 {
			continue
		}
		rows = append(rows, &orderingdomain.ShortfallSnapshot{
			ID:                s.genID.Generate(),
			IngredientID:      item.IngredientID,
			IngredientName:    item.Name,
			Unit:              item.Unit,
			RequiredQuantity:  item.RequiredQuantity,
			StockOnHand:       item.StockOnHand,
			ShortfallQuantity: item.ShortfallQuantity,
			Urgency:           item.Urgency,
			EstimatedCost:     item.EstimatedCost,
			Supplier:          item.Supplier,
			SnapshotDate:      now,
			CreatedAt:         now,
		})
	}
	if len(rows) == 0 {
		return 0, nil
	}
	if err := s.snapshots.BatchCreate(ctx, rows); err != nil {
		return 0, err
	}

	s.log.Info("shortfall snapshot written",
		zap.Int("ingredients", len(rows)),
		zap.Float64("total_estimated_cost", summary.TotalCost),
	)
	return len(rows), nil
}

func (s *Service) Snapshots(ctx context.Context, since time.Time) ([]orderingdomain.ShortfallSnapshot, error) {
	rows, err := s.snapshots.Find(ctx, &orderingdomain.ShortfallSnapshot{},
		option.Where("snapshot_date >= ?", since),
		option.OrderBy("snapshot_date DESC, ingredient_name ASC"),
	)
	if err != nil {
		return nil, err
	}
	out := make([]orderingdomain.ShortfallSnapshot, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	return out, nil
}

func (s *Service) loadDemand(ctx context.Context, taskIDs []string) ([]orderingdomain.TaskDemand, map[snowflake.ID]orderingdomain.IngredientView, error) {
	var tasks []*productiondomain.PrepTask
	var err error
	if len(taskIDs) > 0 {
		ids := make([]snowflake.ID, 0, len(taskIDs))
		for _, raw := range taskIDs {
			id, perr := snowflake.ParseString(strings.TrimSpace(raw))
			if perr != nil {
				return nil, nil, orderingdomain.ErrInvalidTaskID
			}
			ids = append(ids, id)
		}
		tasks, err = s.tasks.Find(ctx, &productiondomain.PrepTask{}, option.Where("id IN ?", ids))
	} else {
		tasks, err = s.tasks.Find(ctx, &productiondomain.PrepTask{},
			option.Where("status IN ?", []productiondomain.TaskStatus{
				productiondomain.StatusPlanned,
				productiondomain.StatusInProgress,
			}),
		)
	}
	if err != nil {
		return nil, nil, err
	}
	if len(tasks) == 0 {
		return nil, nil, orderingdomain.ErrNoTasks
	}

	recipeIDs := make([]snowflake.ID, 0, len(tasks))
	seen := map[snowflake.ID]bool{}
	for _, task := range tasks {
		if !seen[task.RecipeID] {
			seen[task.RecipeID] = true
			recipeIDs = append(recipeIDs, task.RecipeID)
		}
	}
	lines, err := s.lines.Find(ctx, &recipedomain.RecipeIngredientLine{},
		option.Where("recipe_id IN ?", recipeIDs),
		option.OrderBy("recipe_id ASC, position ASC"),
	)
	if err != nil {
		return nil, nil, err
	}
	byRecipe := map[snowflake.ID][]recipedomain.RecipeIngredientLine{}
	for _, line := range lines {
		byRecipe[line.RecipeID] = append(byRecipe[line.RecipeID], *line)
	}

	demands := make([]orderingdomain.TaskDemand, 0, len(tasks))
	for _, task := range tasks {
		demands = append(demands, orderingdomain.TaskDemand{
			TaskID:      task.ID,
			RecipeID:    task.RecipeID,
			ScaleFactor: task.ScaleFactor,
			Lines:       byRecipe[task.RecipeID],
		})
	}

	rows, err := s.ingredients.Find(ctx, &ingredientdomain.Ingredient{})
	if err != nil {
		return nil, nil, err
	}
	views := make(map[snowflake.ID]orderingdomain.IngredientView, len(rows))
	for _, row := range rows {
		views[row.ID] = orderingdomain.IngredientView{
			ID:           row.ID,
			Name:         row.Name,
			Unit:         row.Unit,
			CurrentPrice: row.CurrentPrice,
			StockOnHand:  row.StockOnHand,
			Supplier:     row.Supplier,
		}
	}
	return demands, views, nil
}
