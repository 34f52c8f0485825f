package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/sajithvengateri-svg/chefos/internal/clock"
	productiondomain "github.com/sajithvengateri-svg/chefos/internal/production/domain"
	recipedomain "github.com/sajithvengateri-svg/chefos/internal/recipe/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupTasks(t *testing.T) (productiondomain.Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&productiondomain.PrepTask{},
		&recipedomain.Recipe{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := NewService(ServiceParam{
		DB:    db,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: clock.NewFakeClock(time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)),
	})
	return svc, db, node
}

func seedRecipe(t *testing.T, db *gorm.DB, node *snowflake.Node, name string) snowflake.ID {
	t.Helper()
	recipe := &recipedomain.Recipe{ID: node.Generate(), Name: name, Servings: 4}
	require.NoError(t, db.Create(recipe).Error)
	return recipe.ID
}

func TestCreatePrepTask(t *testing.T) {
	svc, db, node := setupTasks(t)
	ctx := context.Background()
	recipeID := seedRecipe(t, db, node, "Beef Bourguignon")

	resp, err := svc.Create(ctx, productiondomain.CreateRequest{
		RecipeID:      recipeID.String(),
		ScaleFactor:   2.5,
		ScheduledDate: time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
		Notes:         "banquet",
	})
	require.NoError(t, err)
	assert.Equal(t, "Beef Bourguignon", resp.RecipeName)
	assert.Equal(t, productiondomain.StatusPlanned, resp.Status)
	assert.InDelta(t, 2.5, resp.ScaleFactor, 0.001)
}

func TestCreatePrepTaskValidation(t *testing.T) {
	svc, db, node := setupTasks(t)
	ctx := context.Background()
	recipeID := seedRecipe(t, db, node, "Beef Bourguignon")

	_, err := svc.Create(ctx, productiondomain.CreateRequest{
		RecipeID: "999888777", ScaleFactor: 1, ScheduledDate: time.Now(),
	})
	assert.ErrorIs(t, err, productiondomain.ErrInvalidRecipe)

	_, err = svc.Create(ctx, productiondomain.CreateRequest{
		RecipeID: recipeID.String(), ScaleFactor: 0, ScheduledDate: time.Now(),
	})
	assert.ErrorIs(t, err, productiondomain.ErrInvalidScale)

	_, err = svc.Create(ctx, productiondomain.CreateRequest{
		RecipeID: recipeID.String(), ScaleFactor: 1,
	})
	assert.ErrorIs(t, err, productiondomain.ErrInvalidDate)
}

func TestUpdatePrepTaskStatus(t *testing.T) {
	svc, db, node := setupTasks(t)
	ctx := context.Background()
	recipeID := seedRecipe(t, db, node, "Beef Bourguignon")

	created, err := svc.Create(ctx, productiondomain.CreateRequest{
		RecipeID:      recipeID.String(),
		ScaleFactor:   1,
		ScheduledDate: time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	done := productiondomain.StatusCompleted
	updated, err := svc.Update(ctx, created.ID.String(), productiondomain.UpdateRequest{Status: &done})
	require.NoError(t, err)
	assert.Equal(t, productiondomain.StatusCompleted, updated.Status)

	bad := productiondomain.TaskStatus("paused")
	_, err = svc.Update(ctx, created.ID.String(), productiondomain.UpdateRequest{Status: &bad})
	assert.ErrorIs(t, err, productiondomain.ErrInvalidStatus)
}

func TestListFiltersByStatusAndDate(t *testing.T) {
	svc, db, node := setupTasks(t)
	ctx := context.Background()
	recipeID := seedRecipe(t, db, node, "Beef Bourguignon")

	for day := 12; day <= 13; day++ {
		_, err := svc.Create(ctx, productiondomain.CreateRequest{
			RecipeID:      recipeID.String(),
			ScaleFactor:   1,
			ScheduledDate: time.Date(2025, 3, day, 9, 0, 0, 0, time.UTC),
		})
		require.NoError(t, err)
	}

	day := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	got, err := svc.List(ctx, productiondomain.ListFilter{ScheduledFor: &day})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 12, got[0].ScheduledDate.Day())

	got, err = svc.List(ctx, productiondomain.ListFilter{Status: productiondomain.StatusPlanned})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
