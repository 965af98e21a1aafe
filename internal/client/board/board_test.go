package board

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/jobtrack/internal/client/models"
	"github.com/dmitrijs2005/jobtrack/internal/logging"
)

type nopLogger struct{}

func (nopLogger) Debug(context.Context, string, ...any) {}
func (nopLogger) Info(context.Context, string, ...any)  {}
func (nopLogger) Warn(context.Context, string, ...any)  {}
func (nopLogger) Error(context.Context, string, ...any) {}
func (l nopLogger) With(...any) logging.Logger          { return l }

type fakeJobService struct {
	jobs       []models.JobApplication
	listErr    error
	listCalls  int
	updateErr  error
	updates    []models.JobUpdate
	updatedIDs []string
}

func (f *fakeJobService) ListJobs(ctx context.Context) ([]models.JobApplication, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.JobApplication(nil), f.jobs...), nil
}

func (f *fakeJobService) UpdateJob(ctx context.Context, id string, update models.JobUpdate) (*models.JobApplication, error) {
	f.updatedIDs = append(f.updatedIDs, id)
	f.updates = append(f.updates, update)
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	for i := range f.jobs {
		if f.jobs[i].ID == id {
			if update.Status != nil {
				f.jobs[i].Status = *update.Status
			}
			job := f.jobs[i]
			return &job, nil
		}
	}
	return nil, errors.New("no such job")
}

func job(id, company string, status models.JobStatus) models.JobApplication {
	return models.JobApplication{ID: id, CompanyName: company, Position: "Engineer", Status: status}
}

func sampleJobs() []models.JobApplication {
	return []models.JobApplication{
		job("1", "Acme", models.StatusApplied),
		job("2", "Globex", models.StatusApplied),
		job("3", "Initech", models.StatusInterview),
		job("4", "Umbrella", models.StatusRejected),
	}
}

func loaded(t *testing.T, svc *fakeJobService) *Controller {
	t.Helper()
	c := New(svc, nopLogger{})
	require.NoError(t, c.Load(context.Background()))
	return c
}

func ids(jobs []models.JobApplication) []string {
	out := make([]string, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, j.ID)
	}
	return out
}

func TestLoad_PartitionsEveryJobExactlyOnce(t *testing.T) {
	svc := &fakeJobService{jobs: sampleJobs()}
	c := loaded(t, svc)

	cols := c.Columns()
	require.Len(t, cols, 4)
	assert.Equal(t, models.StatusApplied, cols[0].Status)
	assert.Equal(t, []string{"1", "2"}, ids(cols[0].Jobs))
	assert.Equal(t, []string{"3"}, ids(cols[1].Jobs))
	assert.Empty(t, cols[2].Jobs)
	assert.Equal(t, []string{"4"}, ids(cols[3].Jobs))

	total := 0
	for _, n := range c.Counts() {
		total += n
	}
	assert.Equal(t, len(svc.jobs), total)
}

func TestLoad_BadStatusFallsBackToApplied(t *testing.T) {
	svc := &fakeJobService{jobs: []models.JobApplication{job("1", "Acme", "???")}}
	c := loaded(t, svc)

	cols := c.Columns()
	assert.Equal(t, []string{"1"}, ids(cols[0].Jobs))
}

func TestLoad_Error(t *testing.T) {
	svc := &fakeJobService{listErr: errors.New("boom")}
	c := New(svc, nopLogger{})
	require.Error(t, c.Load(context.Background()))

	for _, col := range c.Columns() {
		assert.Empty(t, col.Jobs)
	}
}

func TestReorder(t *testing.T) {
	svc := &fakeJobService{jobs: []models.JobApplication{
		job("1", "Acme", models.StatusApplied),
		job("2", "Globex", models.StatusApplied),
		job("3", "Initech", models.StatusApplied),
	}}
	c := loaded(t, svc)

	require.NoError(t, c.Reorder(models.StatusApplied, 0, 2))
	assert.Equal(t, []string{"2", "3", "1"}, ids(c.Columns()[0].Jobs))

	// past-the-end insertion clamps to the last slot
	require.NoError(t, c.Reorder(models.StatusApplied, 0, 99))
	assert.Equal(t, []string{"3", "1", "2"}, ids(c.Columns()[0].Jobs))

	require.ErrorIs(t, c.Reorder(models.StatusApplied, -1, 0), ErrIndexRange)
	require.ErrorIs(t, c.Reorder(models.StatusApplied, 3, 0), ErrIndexRange)
	require.ErrorIs(t, c.Reorder(models.StatusApplied, 0, -1), ErrIndexRange)
	require.ErrorIs(t, c.Reorder("bogus", 0, 0), ErrUnknownColumn)

	assert.Zero(t, len(svc.updates), "reorder must not touch the backend")
}

func TestReorder_LostOnRefresh(t *testing.T) {
	svc := &fakeJobService{jobs: []models.JobApplication{
		job("1", "Acme", models.StatusApplied),
		job("2", "Globex", models.StatusApplied),
	}}
	c := loaded(t, svc)

	require.NoError(t, c.Reorder(models.StatusApplied, 0, 1))
	assert.Equal(t, []string{"2", "1"}, ids(c.Columns()[0].Jobs))

	require.NoError(t, c.Load(context.Background()))
	assert.Equal(t, []string{"1", "2"}, ids(c.Columns()[0].Jobs))
}

func TestMove_IssuesSingleStatusUpdate(t *testing.T) {
	svc := &fakeJobService{jobs: sampleJobs()}
	c := loaded(t, svc)

	require.NoError(t, c.Move(context.Background(), models.StatusApplied, 1, models.StatusOffer, 0))

	require.Len(t, svc.updates, 1)
	assert.Equal(t, []string{"2"}, svc.updatedIDs)
	update := svc.updates[0]
	require.NotNil(t, update.Status)
	assert.Equal(t, models.StatusOffer, *update.Status)
	assert.Nil(t, update.CompanyName)
	assert.Nil(t, update.Position)
	assert.Nil(t, update.AppliedDate)

	cols := c.Columns()
	assert.Equal(t, []string{"1"}, ids(cols[0].Jobs))
	assert.Equal(t, []string{"2"}, ids(cols[2].Jobs))
	assert.Equal(t, models.StatusOffer, cols[2].Jobs[0].Status)
}

func TestMove_InsertionIndexClampsToEnd(t *testing.T) {
	svc := &fakeJobService{jobs: sampleJobs()}
	c := loaded(t, svc)

	require.NoError(t, c.Move(context.Background(), models.StatusApplied, 0, models.StatusInterview, 42))
	assert.Equal(t, []string{"3", "1"}, ids(c.Columns()[1].Jobs))
}

func TestMove_IntoEmptyColumn(t *testing.T) {
	svc := &fakeJobService{jobs: sampleJobs()}
	c := loaded(t, svc)

	require.NoError(t, c.Move(context.Background(), models.StatusRejected, 0, models.StatusOffer, 0))
	assert.Empty(t, c.Columns()[3].Jobs)
	assert.Equal(t, []string{"4"}, ids(c.Columns()[2].Jobs))
}

func TestMove_SameColumnDegradesToReorder(t *testing.T) {
	svc := &fakeJobService{jobs: sampleJobs()}
	c := loaded(t, svc)

	require.NoError(t, c.Move(context.Background(), models.StatusApplied, 0, models.StatusApplied, 1))
	assert.Equal(t, []string{"2", "1"}, ids(c.Columns()[0].Jobs))
	assert.Zero(t, len(svc.updates), "same-column move must not touch the backend")
}

func TestMove_FailureRefreshesFromBackend(t *testing.T) {
	svc := &fakeJobService{jobs: sampleJobs(), updateErr: errors.New("boom")}
	c := loaded(t, svc)
	callsBefore := svc.listCalls

	err := c.Move(context.Background(), models.StatusApplied, 0, models.StatusOffer, 0)
	require.EqualError(t, err, "boom")
	assert.Equal(t, callsBefore+1, svc.listCalls, "failed move must trigger a refresh")

	// board matches the authoritative list again, optimistic splice gone
	cols := c.Columns()
	assert.Equal(t, []string{"1", "2"}, ids(cols[0].Jobs))
	assert.Empty(t, cols[2].Jobs)
}

func TestMove_IndexValidation(t *testing.T) {
	svc := &fakeJobService{jobs: sampleJobs()}
	c := loaded(t, svc)

	require.ErrorIs(t, c.Move(context.Background(), models.StatusApplied, 5, models.StatusOffer, 0), ErrIndexRange)
	require.ErrorIs(t, c.Move(context.Background(), models.StatusApplied, 0, models.StatusOffer, -1), ErrIndexRange)
	require.ErrorIs(t, c.Move(context.Background(), "bogus", 0, models.StatusOffer, 0), ErrUnknownColumn)
	require.ErrorIs(t, c.Move(context.Background(), models.StatusApplied, 0, "bogus", 0), ErrUnknownColumn)
	assert.Zero(t, len(svc.updates))
}
