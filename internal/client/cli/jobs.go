package cli

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/jobtrack/internal/client/api"
	"github.com/dmitrijs2005/jobtrack/internal/client/models"
)

// listFilters mirrors the dashboard controls: free-text search over
// company and position, a status filter, and sorting by applied date
// or company name.
type listFilters struct {
	status    models.JobStatus
	search    string
	sortBy    string
	sortOrder string
}

func defaultFilters() listFilters {
	return listFilters{sortBy: "applied_date", sortOrder: "desc"}
}

func parseListArgs(args []string) (listFilters, error) {
	f := defaultFilters()
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return f, fmt.Errorf("expected key=value, got %q", arg)
		}
		switch key {
		case "status":
			status, err := models.ParseStatus(value)
			if err != nil {
				return f, fmt.Errorf("status %q: %w", value, err)
			}
			f.status = status
		case "search":
			f.search = value
		case "sort":
			if value != "applied_date" && value != "company_name" {
				return f, fmt.Errorf("sort must be applied_date or company_name")
			}
			f.sortBy = value
		case "order":
			if value != "asc" && value != "desc" {
				return f, fmt.Errorf("order must be asc or desc")
			}
			f.sortOrder = value
		default:
			return f, fmt.Errorf("unknown filter %q", key)
		}
	}
	return f, nil
}

// applyFilters narrows and orders jobs per f. Pure; does not mutate the
// input slice.
func applyFilters(jobs []models.JobApplication, f listFilters) []models.JobApplication {
	filtered := make([]models.JobApplication, 0, len(jobs))
	search := strings.ToLower(f.search)
	for _, job := range jobs {
		if search != "" &&
			!strings.Contains(strings.ToLower(job.CompanyName), search) &&
			!strings.Contains(strings.ToLower(job.Position), search) {
			continue
		}
		if f.status != "" && job.Status != f.status {
			continue
		}
		filtered = append(filtered, job)
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		var less bool
		if f.sortBy == "company_name" {
			less = strings.ToLower(filtered[i].CompanyName) < strings.ToLower(filtered[j].CompanyName)
		} else {
			less = filtered[i].AppliedDate.Before(filtered[j].AppliedDate.Time)
		}
		if f.sortOrder == "desc" {
			return !less && !equalKey(filtered[i], filtered[j], f.sortBy)
		}
		return less
	})
	return filtered
}

func equalKey(a, b models.JobApplication, sortBy string) bool {
	if sortBy == "company_name" {
		return strings.EqualFold(a.CompanyName, b.CompanyName)
	}
	return a.AppliedDate.Equal(b.AppliedDate.Time)
}

// List fetches and renders the jobs table. On fetch failure any
// previously cached data is shown under the error banner instead of
// blanking the view.
func (a *App) List(ctx context.Context, args []string) error {
	filters, err := parseListArgs(args)
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}

	a.busy()
	jobs, err := a.api.ListJobs(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Failed to fetch jobs: %s\n", err)
		jobs = a.api.CachedJobs()
		if len(jobs) == 0 {
			return err
		}
		fmt.Fprintln(a.out, "Showing previously loaded data:")
	}

	a.renderJobs(applyFilters(jobs, filters))
	return nil
}

func (a *App) renderJobs(jobs []models.JobApplication) {
	if len(jobs) == 0 {
		fmt.Fprintln(a.out, "No jobs found.")
		return
	}
	w := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCOMPANY\tPOSITION\tSTATUS\tAPPLIED")
	for _, job := range jobs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			job.ID, job.CompanyName, job.Position, job.Status, job.AppliedDate)
	}
	_ = w.Flush()
}

// Show renders a single job with its notes. A missing job is an
// explicit not-found state, not an error banner.
func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: show <job-id>")
		return nil
	}
	id := args[0]

	a.busy()
	job, err := a.api.GetJob(ctx, id)
	if err != nil {
		if errors.Is(err, api.ErrNotFound) {
			fmt.Fprintf(a.out, "Job %s not found.\n", id)
			return nil
		}
		fmt.Fprintf(a.out, "Failed to fetch job: %s\n", err)
		return err
	}

	fmt.Fprintf(a.out, "Company:  %s\n", job.CompanyName)
	fmt.Fprintf(a.out, "Position: %s\n", job.Position)
	fmt.Fprintf(a.out, "Status:   %s\n", job.Status)
	fmt.Fprintf(a.out, "Applied:  %s\n", job.AppliedDate)
	if !job.CreatedAt.IsZero() {
		fmt.Fprintf(a.out, "Created:  %s\n", job.CreatedAt.Format("2006-01-02 15:04"))
	}

	notes, err := a.api.ListNotes(ctx, id)
	if err != nil {
		fmt.Fprintf(a.out, "Failed to fetch notes: %s\n", err)
		return err
	}
	if len(notes) == 0 {
		fmt.Fprintln(a.out, "No notes.")
		return nil
	}
	fmt.Fprintln(a.out, "Notes:")
	for _, note := range notes {
		line := fmt.Sprintf("  [%s] %s", note.ID, note.Content)
		if note.ReminderTime != nil {
			line += fmt.Sprintf(" (reminder %s)", note.ReminderTime.Format("2006-01-02 15:04"))
		}
		fmt.Fprintln(a.out, line)
	}
	return nil
}

func (a *App) promptJobInput() (models.JobInput, error) {
	var input models.JobInput

	company, err := GetSimpleText(a.reader, "Company name", a.out)
	if err != nil {
		return input, err
	}
	position, err := GetSimpleText(a.reader, "Position", a.out)
	if err != nil {
		return input, err
	}
	statusText, err := GetSimpleText(a.reader, "Status (applied/interview/offer/rejected)", a.out)
	if err != nil {
		return input, err
	}
	if statusText == "" {
		statusText = string(models.StatusApplied)
	}
	status, err := models.ParseStatus(statusText)
	if err != nil {
		return input, err
	}
	dateText, err := GetSimpleText(a.reader, "Applied date (YYYY-MM-DD)", a.out)
	if err != nil {
		return input, err
	}
	date, err := models.ParseDate(dateText)
	if err != nil {
		return input, err
	}

	input.CompanyName = company
	input.Position = position
	input.Status = status
	input.AppliedDate = date
	return input, nil
}

func (a *App) Add(ctx context.Context) error {
	input, err := a.promptJobInput()
	if err != nil {
		fmt.Fprintln(a.out, err)
		return err
	}

	a.busy()
	job, err := a.api.CreateJob(ctx, input)
	if err != nil {
		fmt.Fprintf(a.out, "Failed to create job: %s\n", err)
		return err
	}
	fmt.Fprintf(a.out, "Created job %s.\n", job.ID)
	return nil
}

// Edit prompts field by field; blank input keeps a field unchanged and
// leaves it out of the payload entirely.
func (a *App) Edit(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: edit <job-id>")
		return nil
	}
	id := args[0]

	var update models.JobUpdate

	company, err := GetSimpleText(a.reader, "Company name (blank to keep)", a.out)
	if err != nil {
		return err
	}
	if company != "" {
		update.CompanyName = &company
	}
	position, err := GetSimpleText(a.reader, "Position (blank to keep)", a.out)
	if err != nil {
		return err
	}
	if position != "" {
		update.Position = &position
	}
	statusText, err := GetSimpleText(a.reader, "Status (blank to keep)", a.out)
	if err != nil {
		return err
	}
	if statusText != "" {
		status, err := models.ParseStatus(statusText)
		if err != nil {
			fmt.Fprintln(a.out, err)
			return err
		}
		update.Status = &status
	}
	dateText, err := GetSimpleText(a.reader, "Applied date (blank to keep)", a.out)
	if err != nil {
		return err
	}
	if dateText != "" {
		date, err := models.ParseDate(dateText)
		if err != nil {
			fmt.Fprintln(a.out, err)
			return err
		}
		update.AppliedDate = &date
	}

	if update.Empty() {
		fmt.Fprintln(a.out, "Nothing to update.")
		return nil
	}

	a.busy()
	if _, err := a.api.UpdateJob(ctx, id, update); err != nil {
		fmt.Fprintf(a.out, "Failed to update job: %s\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Updated.")
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: delete <job-id>")
		return nil
	}
	id := args[0]

	if !Confirm(a.reader, fmt.Sprintf("Delete job %s?", id), a.out) {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	a.busy()
	if err := a.api.DeleteJob(ctx, id); err != nil {
		fmt.Fprintf(a.out, "Failed to delete job: %s\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Deleted.")
	return nil
}
