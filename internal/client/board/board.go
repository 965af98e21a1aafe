// Package board presents job applications partitioned into the four
// fixed pipeline columns and mediates reorder/move operations. Column
// membership mirrors the status field and is reconciled with the
// backend; ordering within a column is client-local and lost on the
// next refresh.
package board

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/jobtrack/internal/client/models"
	"github.com/dmitrijs2005/jobtrack/internal/logging"
)

var (
	ErrUnknownColumn = errors.New("unknown column")
	ErrIndexRange    = errors.New("index out of range")
)

// JobService is the slice of the API adapter the board needs: the
// authoritative list and the status reconciliation call.
type JobService interface {
	ListJobs(ctx context.Context) ([]models.JobApplication, error)
	UpdateJob(ctx context.Context, id string, update models.JobUpdate) (*models.JobApplication, error)
}

// Column is one status bucket in fixed board order.
type Column struct {
	Status models.JobStatus
	Jobs   []models.JobApplication
}

// Controller owns the in-memory column state. It is a derived,
// re-partitioned view of the data fetched through the adapter.
type Controller struct {
	api JobService
	log logging.Logger

	mu      sync.Mutex
	columns map[models.JobStatus][]models.JobApplication
}

func New(svc JobService, log logging.Logger) *Controller {
	return &Controller{
		api:     svc,
		log:     log,
		columns: emptyColumns(),
	}
}

func emptyColumns() map[models.JobStatus][]models.JobApplication {
	cols := make(map[models.JobStatus][]models.JobApplication, len(models.Statuses))
	for _, s := range models.Statuses {
		cols[s] = nil
	}
	return cols
}

// Load fetches the job list and re-partitions it wholesale. Every job
// lands in exactly one column by its status.
func (c *Controller) Load(ctx context.Context) error {
	jobs, err := c.api.ListJobs(ctx)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.columns = partition(jobs)
	c.mu.Unlock()
	return nil
}

func partition(jobs []models.JobApplication) map[models.JobStatus][]models.JobApplication {
	cols := emptyColumns()
	for _, job := range jobs {
		status := job.Status
		if !status.Valid() {
			// the backend guarantees the enum; tolerate a bad record
			// rather than dropping it from the board
			status = models.StatusApplied
		}
		cols[status] = append(cols[status], job)
	}
	return cols
}

// Columns returns a snapshot of the board in fixed column order.
func (c *Controller) Columns() []Column {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Column, 0, len(models.Statuses))
	for _, s := range models.Statuses {
		out = append(out, Column{Status: s, Jobs: append([]models.JobApplication(nil), c.columns[s]...)})
	}
	return out
}

// Counts returns the number of jobs per column.
func (c *Controller) Counts() map[models.JobStatus]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	counts := make(map[models.JobStatus]int, len(models.Statuses))
	for _, s := range models.Statuses {
		counts[s] = len(c.columns[s])
	}
	return counts
}

// Reorder moves the item at position from to position to within one
// column. Local only: this ordering is never persisted and the next
// refresh restores server order. An insertion index beyond the column
// clamps to the end.
func (c *Controller) Reorder(col models.JobStatus, from, to int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	jobs, ok := c.columns[col]
	if !ok {
		return ErrUnknownColumn
	}
	if from < 0 || from >= len(jobs) {
		return fmt.Errorf("%w: %d", ErrIndexRange, from)
	}
	if to < 0 {
		return fmt.Errorf("%w: %d", ErrIndexRange, to)
	}
	if to >= len(jobs) {
		to = len(jobs) - 1
	}
	if from == to {
		return nil
	}

	job := jobs[from]
	jobs = append(jobs[:from], jobs[from+1:]...)
	jobs = append(jobs[:to], append([]models.JobApplication{job}, jobs[to:]...)...)
	c.columns[col] = jobs
	return nil
}

// Move transfers the item at src[from] to dst[to]. The local mutation
// is applied synchronously so the board reflects intent immediately;
// the reconciling status update is issued after. If that update fails,
// the optimistic state is discarded by a full refresh rather than a
// manual rollback. A same-column move degrades to Reorder with no
// backend call.
func (c *Controller) Move(ctx context.Context, src models.JobStatus, from int, dst models.JobStatus, to int) error {
	if src == dst {
		return c.Reorder(src, from, to)
	}

	c.mu.Lock()
	srcJobs, ok := c.columns[src]
	if !ok {
		c.mu.Unlock()
		return ErrUnknownColumn
	}
	dstJobs, ok := c.columns[dst]
	if !ok {
		c.mu.Unlock()
		return ErrUnknownColumn
	}
	if from < 0 || from >= len(srcJobs) {
		c.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrIndexRange, from)
	}
	if to < 0 {
		c.mu.Unlock()
		return fmt.Errorf("%w: %d", ErrIndexRange, to)
	}
	if to > len(dstJobs) {
		to = len(dstJobs)
	}

	job := srcJobs[from]
	job.Status = dst
	c.columns[src] = append(srcJobs[:from], srcJobs[from+1:]...)
	c.columns[dst] = append(dstJobs[:to], append([]models.JobApplication{job}, dstJobs[to:]...)...)
	c.mu.Unlock()

	status := dst
	_, err := c.api.UpdateJob(ctx, job.ID, models.JobUpdate{Status: &status})
	if err != nil {
		c.log.Warn(ctx, "status update failed, refreshing board", "id", job.ID, "error", err)
		if refreshErr := c.Load(ctx); refreshErr != nil {
			c.log.Error(ctx, "board refresh failed", "error", refreshErr)
		}
		return err
	}
	return nil
}
