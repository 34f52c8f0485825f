package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/sajithvengateri-svg/chefos/internal/clock"
	ingredientdomain "github.com/sajithvengateri-svg/chefos/internal/ingredient/domain"
	"github.com/sajithvengateri-svg/chefos/internal/measurement"
	"github.com/sajithvengateri-svg/chefos/pkg/db"
	"github.com/sajithvengateri-svg/chefos/pkg/db/option"
	"github.com/sajithvengateri-svg/chefos/pkg/repository"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock

	repo   repository.Repository[ingredientdomain.Ingredient]
	events repository.Repository[ingredientdomain.PriceUpdateEvent]
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
}

func NewService(p ServiceParam) ingredientdomain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("ingredient.service"),
		genID: p.GenID,
		clock: p.Clock,

		repo:   repository.ProvideStore[ingredientdomain.Ingredient](p.DB),
		events: repository.ProvideStore[ingredientdomain.PriceUpdateEvent](p.DB),
	}
}

func (s *Service) Create(ctx context.Context, req ingredientdomain.CreateRequest) (*ingredientdomain.Response, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ingredientdomain.ErrInvalidName
	}
	unit := strings.ToLower(strings.TrimSpace(req.Unit))
	if !measurement.Known(unit) {
		return nil, ingredientdomain.ErrInvalidUnit
	}
	if req.CurrentPrice < 0 {
		return nil, ingredientdomain.ErrInvalidPrice
	}
	if req.StockOnHand < 0 {
		return nil, ingredientdomain.ErrInvalidStock
	}

	now := s.clock.Now()
	row := &ingredientdomain.Ingredient{
		ID:           s.genID.Generate(),
		Name:         name,
		Unit:         unit,
		CurrentPrice: req.CurrentPrice,
		LastUpdated:  now,
		Supplier:     strings.TrimSpace(req.Supplier),
		StockOnHand:  req.StockOnHand,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return nil, ingredientdomain.ErrDuplicateName
		}
		return nil, err
	}
	return toResponse(row), nil
}

func (s *Service) List(ctx context.Context) ([]ingredientdomain.Response, error) {
	rows, err := s.repo.Find(ctx, &ingredientdomain.Ingredient{}, option.OrderBy("name ASC"))
	if err != nil {
		return nil, err
	}
	out := make([]ingredientdomain.Response, 0, len(rows))
	for _, row := range rows {
		out = append(out, *toResponse(row))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, id string) (*ingredientdomain.Response, error) {
	row, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(row), nil
}

func (s *Service) Update(ctx context.Context, id string, req ingredientdomain.UpdateRequest) (*ingredientdomain.Response, error) {
	row, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{"updated_at": s.clock.Now()}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, ingredientdomain.ErrInvalidName
		}
		updates["name"] = name
	}
	if req.Supplier != nil {
		updates["supplier"] = strings.TrimSpace(*req.Supplier)
	}

	if err := s.repo.Update(ctx, row.ID.String(), updates); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	row, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, row.ID.String())
}

func (s *Service) UpdatePrice(ctx context.Context, id string, req ingredientdomain.UpdatePriceRequest) (*ingredientdomain.PriceEventResponse, error) {
	if req.NewPrice < 0 {
		return nil, ingredientdomain.ErrInvalidPrice
	}
	if req.Source != ingredientdomain.SourceInvoice && req.Source != ingredientdomain.SourceManual {
		return nil, ingredientdomain.ErrInvalidSource
	}

	ingredientID, err := parseID(id)
	if err != nil {
		return nil, ingredientdomain.ErrInvalidID
	}

	now := s.clock.Now()
	var event *ingredientdomain.PriceUpdateEvent

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := s.repo.WithTrx(tx).FindOne(ctx, &ingredientdomain.Ingredient{ID: ingredientID})
		if err != nil {
			return err
		}
		if row == nil {
			return ingredientdomain.ErrNotFound
		}

		if err := tx.Exec(
			`UPDATE ingredients
			 SET previous_price = current_price,
			     current_price = ?,
			     last_updated = ?,
			     updated_at = ?
			 WHERE id = ?`,
			req.NewPrice, now, now, row.ID,
		).Error; err != nil {
			return err
		}

		event = &ingredientdomain.PriceUpdateEvent{
			ID:           s.genID.Generate(),
			IngredientID: row.ID,
			OldPrice:     row.CurrentPrice,
			NewPrice:     req.NewPrice,
			Source:       req.Source,
			CreatedAt:    now,
		}
		return s.events.WithTrx(tx).Create(ctx, event)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("ingredient price updated",
		zap.String("ingredient_id", event.IngredientID.String()),
		zap.Float64("old_price", event.OldPrice),
		zap.Float64("new_price", event.NewPrice),
		zap.String("source", string(event.Source)),
	)
	return toEventResponse(event), nil
}

func (s *Service) PriceHistory(ctx context.Context, id string) ([]ingredientdomain.PriceEventResponse, error) {
	row, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	events, err := s.events.Find(ctx,
		&ingredientdomain.PriceUpdateEvent{IngredientID: row.ID},
		option.OrderBy("created_at ASC, id ASC"),
	)
	if err != nil {
		return nil, err
	}

	out := make([]ingredientdomain.PriceEventResponse, 0, len(events))
	for _, ev := range events {
		out = append(out, *toEventResponse(ev))
	}
	return out, nil
}

func (s *Service) SetStock(ctx context.Context, id string, quantity float64) (*ingredientdomain.Response, error) {
	if quantity < 0 {
		return nil, ingredientdomain.ErrInvalidStock
	}
	row, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	updates := map[string]any{
		"stock_on_hand": quantity,
		"updated_at":    s.clock.Now(),
	}
	if err := s.repo.Update(ctx, row.ID.String(), updates); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *Service) find(ctx context.Context, id string) (*ingredientdomain.Ingredient, error) {
	ingredientID, err := parseID(id)
	if err != nil {
		return nil, ingredientdomain.ErrInvalidID
	}
	row, err := s.repo.FindOne(ctx, &ingredientdomain.Ingredient{ID: ingredientID})
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, ingredientdomain.ErrNotFound
	}
	return row, nil
}

func toResponse(row *ingredientdomain.Ingredient) *ingredientdomain.Response {
	return &ingredientdomain.Response{
		ID:            row.ID,
		Name:          row.Name,
		Unit:          row.Unit,
		CurrentPrice:  row.CurrentPrice,
		PreviousPrice: row.PreviousPrice,
		LastUpdated:   row.LastUpdated,
		Supplier:      row.Supplier,
		StockOnHand:   row.StockOnHand,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

func toEventResponse(ev *ingredientdomain.PriceUpdateEvent) *ingredientdomain.PriceEventResponse {
	return &ingredientdomain.PriceEventResponse{
		ID:           ev.ID,
		IngredientID: ev.IngredientID,
		OldPrice:     ev.OldPrice,
		NewPrice:     ev.NewPrice,
		Source:       ev.Source,
		CreatedAt:    ev.CreatedAt,
	}
}

func parseID(value string) (snowflake.ID, error) {
	return snowflake.ParseString(strings.TrimSpace(value))
}
