package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/sajithvengateri-svg/chefos/internal/clock"
	orderingdomain "github.com/sajithvengateri-svg/chefos/internal/ordering/domain"
	recipedomain "github.com/sajithvengateri-svg/chefos/internal/recipe/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type orderingStub struct {
	snapshotCalls int
	snapshotErr   error
}

func (o *orderingStub) Aggregate(ctx context.Context, req orderingdomain.AggregateRequest) (*orderingdomain.DemandSummary, error) {
	return &orderingdomain.DemandSummary{}, nil
}

func (o *orderingStub) BySupplier(ctx context.Context, req orderingdomain.AggregateRequest) ([]orderingdomain.SupplierOrder, error) {
	return nil, nil
}

func (o *orderingStub) SnapshotShortfalls(ctx context.Context) (int, error) {
	o.snapshotCalls++
	return 2, o.snapshotErr
}

func (o *orderingStub) Snapshots(ctx context.Context, since time.Time) ([]orderingdomain.ShortfallSnapshot, error) {
	return nil, nil
}

type recipeStub struct {
	listCalls int
	responses []recipedomain.Response
}

func (r *recipeStub) Create(ctx context.Context, req recipedomain.CreateRequest) (*recipedomain.Response, error) {
	return nil, nil
}

func (r *recipeStub) List(ctx context.Context) ([]recipedomain.Response, error) {
	r.listCalls++
	return r.responses, nil
}

func (r *recipeStub) Get(ctx context.Context, id string) (*recipedomain.Response, error) {
	return nil, nil
}

func (r *recipeStub) Update(ctx context.Context, id string, req recipedomain.UpdateRequest) (*recipedomain.Response, error) {
	return nil, nil
}

func (r *recipeStub) Delete(ctx context.Context, id string) error {
	return nil
}

func TestRunNightlyInvokesBothJobs(t *testing.T) {
	ordering := &orderingStub{}
	recipes := &recipeStub{responses: []recipedomain.Response{
		{Name: "Duck Confit", Costing: recipedomain.CostBreakdown{IsOverBudget: true}},
		{Name: "House Salad"},
	}}

	sched, err := New(Params{
		Log:         zap.NewNop(),
		Clock:       clock.NewFakeClock(time.Date(2025, 3, 10, 2, 0, 0, 0, time.UTC)),
		OrderingSvc: ordering,
		RecipeSvc:   recipes,
	})
	require.NoError(t, err)

	sched.RunNightly()
	assert.Equal(t, 1, ordering.snapshotCalls)
	assert.Equal(t, 1, recipes.listCalls)
}

func TestNewRequiresServices(t *testing.T) {
	_, err := New(Params{Log: zap.NewNop()})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestStartRejectsBadCronSpec(t *testing.T) {
	sched, err := New(Params{
		Log:         zap.NewNop(),
		Clock:       clock.NewFakeClock(time.Now()),
		OrderingSvc: &orderingStub{},
		RecipeSvc:   &recipeStub{},
	})
	require.NoError(t, err)
	assert.Error(t, sched.Start("not a cron spec"))
}
