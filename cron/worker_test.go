package cron

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"carelink/database/seed"
	"carelink/models"
	"carelink/services/billing"
	"carelink/services/directory"
	"carelink/services/store"
)

func newDirectory() *directory.Service {
	st := store.New(store.Reduce(store.NewState(0), store.Hydrate{Collections: seed.Collections()}))
	return directory.NewService(st, nil, nil, nil, nil)
}

func TestTierChangeTaskCarriesUpgradeAction(t *testing.T) {
	c := billing.Completion{SessionID: "cs_1", ProviderID: "prov-clearvoice", Plan: billing.PlanPremium}
	task, err := NewTierChangeTask(c)
	require.NoError(t, err)
	assert.Equal(t, TypeTierChange, task.Type())

	action, err := store.DecodeAction(task.Payload())
	require.NoError(t, err)
	assert.Equal(t, store.UpgradeTier{ProviderID: "prov-clearvoice", Tier: models.TierPremium}, action)
}

func TestTierChangeTaskRejectsLeadPlan(t *testing.T) {
	_, err := NewTierChangeTask(billing.Completion{SessionID: "cs_1", ProviderID: "prov-clearvoice", Plan: billing.PlanLead})
	assert.ErrorIs(t, err, ErrNoTierChange)
}

func TestHandleTierChangeUpgrades(t *testing.T) {
	dir := newDirectory()
	task, err := NewTierChangeTask(billing.Completion{SessionID: "cs_1", ProviderID: "prov-clearvoice", Plan: billing.PlanPro})
	require.NoError(t, err)

	require.NoError(t, HandleTierChange(dir, zap.NewNop())(context.Background(), task))
	p, _ := dir.State().Provider("prov-clearvoice")
	assert.Equal(t, models.TierPro, p.Tier)
}

func TestHandleTierChangeSkipsRetryForUnknownProvider(t *testing.T) {
	task, err := NewTierChangeTask(billing.Completion{SessionID: "cs_1", ProviderID: "prov-gone", Plan: billing.PlanPro})
	require.NoError(t, err)

	err = HandleTierChange(newDirectory(), zap.NewNop())(context.Background(), task)
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.ErrorIs(t, err, directory.ErrNotFound)
}

func TestHandleTierChangeBadPayload(t *testing.T) {
	task := asynq.NewTask(TypeTierChange, []byte("{"))
	err := HandleTierChange(newDirectory(), zap.NewNop())(context.Background(), task)
	assert.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleTierChangeRejectsOtherActions(t *testing.T) {
	payload, err := store.EncodeAction(store.IncrementViews{ProviderID: "prov-clearvoice"})
	require.NoError(t, err)

	dir := newDirectory()
	before := dir.State()
	err = HandleTierChange(dir, zap.NewNop())(context.Background(), asynq.NewTask(TypeTierChange, payload))
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.ErrorIs(t, err, store.ErrUnknownAction)
	assert.Equal(t, before, dir.State())
}

type fakeEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: "task-1", Type: task.Type()}, nil
}

func TestQueueFulfil(t *testing.T) {
	enq := &fakeEnqueuer{}
	q := Queue{Client: enq, Logger: zap.NewNop()}
	require.NoError(t, q.Fulfil(context.Background(), billing.Completion{SessionID: "cs_1", ProviderID: "p", Plan: billing.PlanPro}))
	assert.Len(t, enq.tasks, 1)

	require.NoError(t, q.Fulfil(context.Background(), billing.Completion{SessionID: "cs_lead", ProviderID: "p", Plan: billing.PlanLead}))
	assert.Len(t, enq.tasks, 1)

	enq.err = asynq.ErrTaskIDConflict
	assert.NoError(t, q.Fulfil(context.Background(), billing.Completion{SessionID: "cs_1", ProviderID: "p", Plan: billing.PlanPro}))

	enq.err = errors.New("redis down")
	assert.Error(t, q.Fulfil(context.Background(), billing.Completion{SessionID: "cs_2", ProviderID: "p", Plan: billing.PlanPro}))
}
