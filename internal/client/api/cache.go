package api

import (
	"sync"

	"github.com/dmitrijs2005/jobtrack/internal/client/models"
)

// jobCache is the denormalized local copy of the job list, patched
// after mutations so the dashboard stays consistent without a refetch.
// Writes are best-effort and never affect the primary operation's
// outcome.
type jobCache struct {
	mu   sync.Mutex
	jobs []models.JobApplication
}

func (c *jobCache) replace(jobs []models.JobApplication) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.jobs = append([]models.JobApplication(nil), jobs...)
}

func (c *jobCache) prepend(job models.JobApplication) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.jobs = append([]models.JobApplication{job}, c.jobs...)
}

// patch overwrites the cached entry matching job.ID field-by-field.
// A zero CreatedAt on the incoming job keeps the cached timestamp,
// since update responses do not reliably include it.
func (c *jobCache) patch(job models.JobApplication) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.jobs {
		if c.jobs[i].ID != job.ID {
			continue
		}
		if job.CreatedAt.IsZero() {
			job.CreatedAt = c.jobs[i].CreatedAt
		}
		c.jobs[i] = job
		return true
	}
	return false
}

func (c *jobCache) remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.jobs {
		if c.jobs[i].ID == id {
			c.jobs = append(c.jobs[:i], c.jobs[i+1:]...)
			return true
		}
	}
	return false
}

func (c *jobCache) get(id string) (models.JobApplication, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, j := range c.jobs {
		if j.ID == id {
			return j, true
		}
	}
	return models.JobApplication{}, false
}

func (c *jobCache) snapshot() []models.JobApplication {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]models.JobApplication(nil), c.jobs...)
}
