package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/sajithvengateri-svg/chefos/internal/clock"
	ingredientdomain "github.com/sajithvengateri-svg/chefos/internal/ingredient/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupLedger(t *testing.T) (ingredientdomain.Service, *clock.FakeClock) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&ingredientdomain.Ingredient{},
		&ingredientdomain.PriceUpdateEvent{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	fake := clock.NewFakeClock(time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC))

	return NewService(ServiceParam{
		DB: db, Log: zap.NewNop(), GenID: node, Clock: fake,
	}), fake
}

func TestUpdatePriceMovesCurrentToPrevious(t *testing.T) {
	svc, fake := setupLedger(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, ingredientdomain.CreateRequest{
		Name: "Butter", Unit: "kg", CurrentPrice: 10,
	})
	require.NoError(t, err)

	fake.Advance(24 * time.Hour)
	event, err := svc.UpdatePrice(ctx, created.ID.String(), ingredientdomain.UpdatePriceRequest{
		NewPrice: 11.5,
		Source:   ingredientdomain.SourceInvoice,
	})
	require.NoError(t, err)
	assert.InDelta(t, 10.0, event.OldPrice, 0.001)
	assert.InDelta(t, 11.5, event.NewPrice, 0.001)

	after, err := svc.Get(ctx, created.ID.String())
	require.NoError(t, err)
	assert.InDelta(t, 11.5, after.CurrentPrice, 0.001)
	assert.InDelta(t, 10.0, after.PreviousPrice, 0.001)
	assert.True(t, after.LastUpdated.After(created.LastUpdated))
}

func TestPriceHistoryIsAppendOnlyAndOrdered(t *testing.T) {
	svc, fake := setupLedger(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, ingredientdomain.CreateRequest{
		Name: "Cream", Unit: "l", CurrentPrice: 4,
	})
	require.NoError(t, err)

	for _, price := range []float64{4.5, 4.2, 5.0} {
		fake.Advance(time.Hour)
		_, err := svc.UpdatePrice(ctx, created.ID.String(), ingredientdomain.UpdatePriceRequest{
			NewPrice: price,
			Source:   ingredientdomain.SourceManual,
		})
		require.NoError(t, err)
	}

	history, err := svc.PriceHistory(ctx, created.ID.String())
	require.NoError(t, err)
	require.Len(t, history, 3)

	assert.InDelta(t, 4.0, history[0].OldPrice, 0.001)
	assert.InDelta(t, 4.5, history[0].NewPrice, 0.001)
	assert.InDelta(t, 4.2, history[1].NewPrice, 0.001)
	assert.InDelta(t, 5.0, history[2].NewPrice, 0.001)
	for i := 1; i < len(history); i++ {
		assert.False(t, history[i].CreatedAt.Before(history[i-1].CreatedAt))
	}
}

func TestLedgerValidation(t *testing.T) {
	svc, _ := setupLedger(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, ingredientdomain.CreateRequest{Name: "", Unit: "kg"})
	assert.ErrorIs(t, err, ingredientdomain.ErrInvalidName)

	_, err = svc.Create(ctx, ingredientdomain.CreateRequest{Name: "Salt", Unit: "handful"})
	assert.ErrorIs(t, err, ingredientdomain.ErrInvalidUnit)

	_, err = svc.Create(ctx, ingredientdomain.CreateRequest{Name: "Salt", Unit: "kg", CurrentPrice: -1})
	assert.ErrorIs(t, err, ingredientdomain.ErrInvalidPrice)

	created, err := svc.Create(ctx, ingredientdomain.CreateRequest{Name: "Salt", Unit: "kg", CurrentPrice: 1})
	require.NoError(t, err)

	_, err = svc.Create(ctx, ingredientdomain.CreateRequest{Name: "Salt", Unit: "kg", CurrentPrice: 2})
	assert.ErrorIs(t, err, ingredientdomain.ErrDuplicateName)

	_, err = svc.UpdatePrice(ctx, created.ID.String(), ingredientdomain.UpdatePriceRequest{
		NewPrice: 2, Source: "guess",
	})
	assert.ErrorIs(t, err, ingredientdomain.ErrInvalidSource)

	_, err = svc.UpdatePrice(ctx, "987654321", ingredientdomain.UpdatePriceRequest{
		NewPrice: 2, Source: ingredientdomain.SourceManual,
	})
	assert.ErrorIs(t, err, ingredientdomain.ErrNotFound)

	_, err = svc.Get(ctx, "not-an-id")
	assert.ErrorIs(t, err, ingredientdomain.ErrInvalidID)
}

func TestSetStock(t *testing.T) {
	svc, _ := setupLedger(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, ingredientdomain.CreateRequest{Name: "Flour", Unit: "kg", CurrentPrice: 2})
	require.NoError(t, err)

	updated, err := svc.SetStock(ctx, created.ID.String(), 14.5)
	require.NoError(t, err)
	assert.InDelta(t, 14.5, updated.StockOnHand, 0.001)

	_, err = svc.SetStock(ctx, created.ID.String(), -1)
	assert.ErrorIs(t, err, ingredientdomain.ErrInvalidStock)
}
