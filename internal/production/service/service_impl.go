package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/sajithvengateri-svg/chefos/internal/clock"
	productiondomain "github.com/sajithvengateri-svg/chefos/internal/production/domain"
	recipedomain "github.com/sajithvengateri-svg/chefos/internal/recipe/domain"
	"github.com/sajithvengateri-svg/chefos/pkg/db/option"
	"github.com/sajithvengateri-svg/chefos/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock

	tasks   repository.Repository[productiondomain.PrepTask]
	recipes repository.Repository[recipedomain.Recipe]
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
}

func NewService(p ServiceParam) productiondomain.Service {
	return &Service{
		log:   p.Log.Named("production.service"),
		genID: p.GenID,
		clock: p.Clock,

		tasks:   repository.ProvideStore[productiondomain.PrepTask](p.DB),
		recipes: repository.ProvideStore[recipedomain.Recipe](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req productiondomain.CreateRequest) (*productiondomain.Response, error) {
	recipeID, err := snowflake.ParseString(strings.TrimSpace(req.RecipeID))
	if err != nil {
		return nil, productiondomain.ErrInvalidRecipe
	}
	recipe, err := s.recipes.FindOne(ctx, &recipedomain.Recipe{ID: recipeID})
	if err != nil {
		return nil, err
	}
	if recipe == nil {
		return nil, productiondomain.ErrInvalidRecipe
	}
	if req.ScaleFactor <= 0 {
		return nil, productiondomain.ErrInvalidScale
	}
	if req.ScheduledDate.IsZero() {
		return nil, productiondomain.ErrInvalidDate
	}

	now := s.clock.Now()
	row := &productiondomain.PrepTask{
		ID:            s.genID.Generate(),
		RecipeID:      recipe.ID,
		ScaleFactor:   req.ScaleFactor,
		ScheduledDate: req.ScheduledDate.UTC(),
		Status:        productiondomain.StatusPlanned,
		Notes:         strings.TrimSpace(req.Notes),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.tasks.Create(ctx, row); err != nil {
		return nil, err
	}
	return s.toResponse(row, recipe.Name), nil
}

func (s *Service) List(ctx context.Context, filter productiondomain.ListFilter) ([]productiondomain.Response, error) {
	cond := &productiondomain.PrepTask{}
	opts := []option.QueryOption{option.OrderBy("scheduled_date ASC, id ASC")}
	if filter.Status != "" {
		if !filter.Status.Valid() {
			return nil, productiondomain.ErrInvalidStatus
		}
		cond.Status = filter.Status
	}
	if filter.ScheduledFor != nil {
		d := filter.ScheduledFor.UTC()
		day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
		opts = append(opts, option.Where("scheduled_date >= ? AND scheduled_date < ?", day, day.AddDate(0, 0, 1)))
	}

	rows, err := s.tasks.Find(ctx, cond, opts...)
	if err != nil {
		return nil, err
	}

	names, err := s.recipeNames(ctx, rows)
	if err != nil {
		return nil, err
	}
	out := make([]productiondomain.Response, 0, len(rows))
	for _, row := range rows {
		out = append(out, *s.toResponse(row, names[row.RecipeID]))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*productiondomain.Response, error) {
	row, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	recipe, err := s.recipes.FindOne(ctx, &recipedomain.Recipe{ID: row.RecipeID})
	if err != nil {
		return nil, err
	}
	name := ""
	if recipe != nil {
		name = recipe.Name
	}
	return s.toResponse(row, name), nil
}

func (s *Service) Update(ctx context.Context, id string, req productiondomain.UpdateRequest) (*productiondomain.Response, error) {
	row, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{"updated_at": s.clock.Now()}
	if req.ScaleFactor != nil {
		if *req.ScaleFactor <= 0 {
			return nil, productiondomain.ErrInvalidScale
		}
		updates["scale_factor"] = *req.ScaleFactor
	}
	if req.ScheduledDate != nil {
		if req.ScheduledDate.IsZero() {
			return nil, productiondomain.ErrInvalidDate
		}
		updates["scheduled_date"] = req.ScheduledDate.UTC()
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, productiondomain.ErrInvalidStatus
		}
		updates["status"] = *req.Status
	}
	if req.Notes != nil {
		updates["notes"] = strings.TrimSpace(*req.Notes)
	}

	if err := s.tasks.Update(ctx, row.ID.String(), updates); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	row, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	return s.tasks.Delete(ctx, row.ID.String())
}

func (s *Service) find(ctx context.Context, id string) (*productiondomain.PrepTask, error) {
	taskID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, productiondomain.ErrInvalidID
	}
	row, err := s.tasks.FindOne(ctx, &productiondomain.PrepTask{ID: taskID})
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, productiondomain.ErrNotFound
	}
	return row, nil
}

func (s *Service) recipeNames(ctx context.Context, rows []*productiondomain.PrepTask) (map[snowflake.ID]string, error) {
	names := map[snowflake.ID]string{}
	if len(rows) == 0 {
		return names, nil
	}
	ids := make([]snowflake.ID, 0, len(rows))
	seen := map[snowflake.ID]bool{}
	for _, row := range rows {
		if !seen[row.RecipeID] {
			seen[row.RecipeID] = true
			ids = append(ids, row.RecipeID)
		}
	}
	recipes, err := s.recipes.Find(ctx, &recipedomain.Recipe{}, option.Where("id IN ?", ids))
	if err != nil {
		return nil, err
	}
	for _, recipe := range recipes {
		names[recipe.ID] = recipe.Name
	}
	return names, nil
}

func (s *Service) toResponse(row *productiondomain.PrepTask, recipeName string) *productiondomain.Response {
	return &productiondomain.Response{
		ID:            row.ID,
		RecipeID:      row.RecipeID,
		RecipeName:    recipeName,
		ScaleFactor:   row.ScaleFactor,
		ScheduledDate: row.ScheduledDate,
		Status:        row.Status,
		Notes:         row.Notes,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}
