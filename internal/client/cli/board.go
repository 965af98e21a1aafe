package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/jobtrack/internal/client/models"
)

// Board refreshes and renders the kanban view: four fixed columns with
// counts, empty columns shown with a placeholder.
func (a *App) Board(ctx context.Context) error {
	a.busy()
	if err := a.board.Load(ctx); err != nil {
		fmt.Fprintf(a.out, "Failed to fetch jobs: %s\n", err)
		return err
	}
	a.renderBoard()
	return nil
}

func (a *App) renderBoard() {
	for _, col := range a.board.Columns() {
		fmt.Fprintf(a.out, "== %s (%d) ==\n", col.Status, len(col.Jobs))
		if len(col.Jobs) == 0 {
			fmt.Fprintln(a.out, "  (no jobs in this status)")
			continue
		}
		for i, job := range col.Jobs {
			fmt.Fprintf(a.out, "  %d. [%s] %s — %s (%s)\n",
				i, job.ID, job.CompanyName, job.Position, job.AppliedDate)
		}
	}
}

// MoveJob is the drag-and-drop analog: "move <job-id> <status> [index]"
// moves a card to another column optimistically and reconciles the
// status change with the backend.
func (a *App) MoveJob(ctx context.Context, args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(a.out, "Usage: move <job-id> <status> [index]")
		return nil
	}
	id := args[0]
	dst, err := models.ParseStatus(args[1])
	if err != nil {
		fmt.Fprintf(a.out, "Unknown status %q.\n", args[1])
		return err
	}
	to := 0
	if len(args) > 2 {
		to, err = strconv.Atoi(args[2])
		if err != nil || to < 0 {
			fmt.Fprintf(a.out, "Bad index %q.\n", args[2])
			return fmt.Errorf("bad index %q", args[2])
		}
	}

	src, from, found := a.findOnBoard(id)
	if !found {
		// the board may be stale; pull fresh data and retry once
		if err := a.board.Load(ctx); err != nil {
			fmt.Fprintf(a.out, "Failed to fetch jobs: %s\n", err)
			return err
		}
		if src, from, found = a.findOnBoard(id); !found {
			fmt.Fprintf(a.out, "Job %s not found.\n", id)
			return nil
		}
	}

	if err := a.board.Move(ctx, src, from, dst, to); err != nil {
		fmt.Fprintf(a.out, "Move failed: %s\n", err)
		a.renderBoard()
		return err
	}
	a.renderBoard()
	return nil
}

func (a *App) findOnBoard(id string) (models.JobStatus, int, bool) {
	for _, col := range a.board.Columns() {
		for i, job := range col.Jobs {
			if job.ID == id {
				return col.Status, i, true
			}
		}
	}
	return "", 0, false
}
