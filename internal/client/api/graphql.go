package api

import (
	"context"
	"time"

	"github.com/machinebox/graphql"

	"github.com/dmitrijs2005/jobtrack/internal/client/models"
)

// GraphQL documents. Field names on the wire are camelCase; the
// translation to the local snake_case shapes happens in toJob/toNote.
const (
	queryJobs = `query GetJobs {
  jobs { id companyName position status appliedOn createdAt }
}`

	queryJobByID = `query GetJobById($id: String!) {
  job(id: $id) { id companyName position status appliedOn createdAt }
}`

	mutationCreateJob = `mutation CreateJob($jobData: JobInput!) {
  createJob(jobData: $jobData) {
    success
    message
    job { id companyName position status appliedOn createdAt }
  }
}`

	mutationUpdateJob = `mutation UpdateJob($id: String!, $jobData: JobUpdateInput!) {
  updateJob(id: $id, jobData: $jobData) {
    success
    message
    job { id companyName position status appliedOn }
  }
}`

	mutationDeleteJob = `mutation DeleteJob($id: String!) {
  deleteJob(id: $id) { success message }
}`

	queryJobNotes = `query GetJobNotes($jobId: String!) {
  jobNotes(jobId: $jobId) { id content reminderTime createdAt }
}`

	mutationCreateNote = `mutation CreateNote($noteData: NoteInput!) {
  createNote(noteData: $noteData) {
    success
    message
    note { id content reminderTime createdAt }
  }
}`

	mutationDeleteNote = `mutation DeleteNote($id: String!) {
  deleteNote(id: $id) { success message }
}`
)

type gqlJob struct {
	ID          string `json:"id"`
	CompanyName string `json:"companyName"`
	Position    string `json:"position"`
	Status      string `json:"status"`
	AppliedOn   string `json:"appliedOn"`
	CreatedAt   string `json:"createdAt"`
}

type gqlNote struct {
	ID           string `json:"id"`
	Content      string `json:"content"`
	ReminderTime string `json:"reminderTime"`
	CreatedAt    string `json:"createdAt"`
}

type gqlMutationResult struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Job     *gqlJob `json:"job"`
}

type gqlNoteMutationResult struct {
	Success bool     `json:"success"`
	Message string   `json:"message"`
	Note    *gqlNote `json:"note"`
}

func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func toJob(j gqlJob) models.JobApplication {
	applied, _ := models.ParseDate(j.AppliedOn)
	return models.JobApplication{
		ID:          j.ID,
		CompanyName: j.CompanyName,
		Position:    j.Position,
		Status:      models.JobStatus(j.Status),
		AppliedDate: applied,
		CreatedAt:   parseTimestamp(j.CreatedAt),
	}
}

func toNote(jobID string, n gqlNote) models.Note {
	note := models.Note{
		ID:        n.ID,
		JobID:     jobID,
		Content:   n.Content,
		CreatedAt: parseTimestamp(n.CreatedAt),
	}
	if n.ReminderTime != "" {
		if t := parseTimestamp(n.ReminderTime); !t.IsZero() {
			note.ReminderTime = &t
		}
	}
	return note
}

func (c *HTTPClient) run(ctx context.Context, query string, vars map[string]any, out any) error {
	req := graphql.NewRequest(query)
	for k, v := range vars {
		req.Var(k, v)
	}
	if err := c.gql.Run(ctx, req, out); err != nil {
		return c.mapGraphQLError(err)
	}
	return nil
}

// ListJobs fetches all jobs for the current session. The call always
// goes to the network; the read-cache is only a denormalized view that
// is replaced by the fresh result.
func (c *HTTPClient) ListJobs(ctx context.Context) ([]models.JobApplication, error) {
	var resp struct {
		Jobs []gqlJob `json:"jobs"`
	}
	if err := c.run(ctx, queryJobs, nil, &resp); err != nil {
		return nil, err
	}
	jobs := make([]models.JobApplication, 0, len(resp.Jobs))
	for _, j := range resp.Jobs {
		jobs = append(jobs, toJob(j))
	}
	c.cache.replace(jobs)
	return jobs, nil
}

// GetJob fetches a single job by id.
func (c *HTTPClient) GetJob(ctx context.Context, id string) (*models.JobApplication, error) {
	var resp struct {
		Job *gqlJob `json:"job"`
	}
	if err := c.run(ctx, queryJobByID, map[string]any{"id": id}, &resp); err != nil {
		return nil, err
	}
	if resp.Job == nil || resp.Job.ID == "" {
		return nil, ErrNotFound
	}
	job := toJob(*resp.Job)
	return &job, nil
}

// CreateJob submits a new job application. The applied date is sent as
// a plain YYYY-MM-DD string; on success the new record is prepended to
// the read-cache.
func (c *HTTPClient) CreateJob(ctx context.Context, input models.JobInput) (*models.JobApplication, error) {
	if err := input.Validate(); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	jobData := map[string]any{
		"companyName": input.CompanyName,
		"position":    input.Position,
		"status":      string(input.Status),
		"appliedOn":   input.AppliedDate.String(),
	}
	var resp struct {
		CreateJob gqlMutationResult `json:"createJob"`
	}
	if err := c.run(ctx, mutationCreateJob, map[string]any{"jobData": jobData}, &resp); err != nil {
		return nil, err
	}
	if !resp.CreateJob.Success || resp.CreateJob.Job == nil {
		return nil, &DomainError{Message: messageOr(resp.CreateJob.Message, "Failed to create job")}
	}
	job := toJob(*resp.CreateJob.Job)
	c.cache.prepend(job)
	return &job, nil
}

// UpdateJob sends a partial update: only the fields set on update are
// serialized, omitted fields are left untouched server-side. The
// response's job does not reliably include the creation timestamp, so
// the cache entry is patched field-by-field instead of replaced.
// The backend offers no optimistic-concurrency token; concurrent edits
// of the same job resolve last-write-wins.
func (c *HTTPClient) UpdateJob(ctx context.Context, id string, update models.JobUpdate) (*models.JobApplication, error) {
	jobData := map[string]any{}
	if update.CompanyName != nil {
		jobData["companyName"] = *update.CompanyName
	}
	if update.Position != nil {
		jobData["position"] = *update.Position
	}
	if update.Status != nil {
		jobData["status"] = string(*update.Status)
	}
	if update.AppliedDate != nil {
		jobData["appliedOn"] = update.AppliedDate.String()
	}

	var resp struct {
		UpdateJob gqlMutationResult `json:"updateJob"`
	}
	vars := map[string]any{"id": id, "jobData": jobData}
	if err := c.run(ctx, mutationUpdateJob, vars, &resp); err != nil {
		return nil, err
	}
	if !resp.UpdateJob.Success || resp.UpdateJob.Job == nil {
		return nil, &DomainError{Message: messageOr(resp.UpdateJob.Message, "Failed to update job")}
	}

	job := toJob(*resp.UpdateJob.Job)
	patched := c.cache.patch(job)
	if !patched {
		c.log.Warn(ctx, "job missing from read-cache after update", "id", id)
	}
	if cached, ok := c.cache.get(id); ok {
		return &cached, nil
	}
	return &job, nil
}

// DeleteJob removes a job. Any notes attached to it become unreachable
// server-side; the client does not attempt orphan cleanup.
func (c *HTTPClient) DeleteJob(ctx context.Context, id string) error {
	var resp struct {
		DeleteJob gqlMutationResult `json:"deleteJob"`
	}
	if err := c.run(ctx, mutationDeleteJob, map[string]any{"id": id}, &resp); err != nil {
		return err
	}
	if !resp.DeleteJob.Success {
		return &DomainError{Message: messageOr(resp.DeleteJob.Message, "Failed to delete job")}
	}
	if !c.cache.remove(id) {
		c.log.Warn(ctx, "job missing from read-cache after delete", "id", id)
	}
	return nil
}

// CachedJobs returns the last read-cache snapshot.
func (c *HTTPClient) CachedJobs() []models.JobApplication {
	return c.cache.snapshot()
}

// ListNotes fetches the notes of a job, always fresh.
func (c *HTTPClient) ListNotes(ctx context.Context, jobID string) ([]models.Note, error) {
	var resp struct {
		JobNotes []gqlNote `json:"jobNotes"`
	}
	if err := c.run(ctx, queryJobNotes, map[string]any{"jobId": jobID}, &resp); err != nil {
		return nil, err
	}
	notes := make([]models.Note, 0, len(resp.JobNotes))
	for _, n := range resp.JobNotes {
		notes = append(notes, toNote(jobID, n))
	}
	return notes, nil
}

// CreateNote attaches a note to a job.
func (c *HTTPClient) CreateNote(ctx context.Context, jobID string, input models.NoteInput) (*models.Note, error) {
	if err := input.Validate(); err != nil {
		return nil, &ValidationError{Message: err.Error()}
	}
	noteData := map[string]any{
		"jobId":   jobID,
		"content": input.Content,
	}
	if input.ReminderTime != nil {
		noteData["reminderTime"] = input.ReminderTime.Format(time.RFC3339)
	} else {
		noteData["reminderTime"] = nil
	}
	var resp struct {
		CreateNote gqlNoteMutationResult `json:"createNote"`
	}
	if err := c.run(ctx, mutationCreateNote, map[string]any{"noteData": noteData}, &resp); err != nil {
		return nil, err
	}
	if !resp.CreateNote.Success || resp.CreateNote.Note == nil {
		return nil, &DomainError{Message: messageOr(resp.CreateNote.Message, "Failed to create note")}
	}
	note := toNote(jobID, *resp.CreateNote.Note)
	return &note, nil
}

// DeleteNote removes a note from a job.
func (c *HTTPClient) DeleteNote(ctx context.Context, jobID, noteID string) error {
	var resp struct {
		DeleteNote gqlNoteMutationResult `json:"deleteNote"`
	}
	if err := c.run(ctx, mutationDeleteNote, map[string]any{"id": noteID}, &resp); err != nil {
		return err
	}
	if !resp.DeleteNote.Success {
		return &DomainError{Message: messageOr(resp.DeleteNote.Message, "Failed to delete note")}
	}
	return nil
}

func messageOr(msg, fallback string) string {
	if msg != "" {
		return msg
	}
	return fallback
}
