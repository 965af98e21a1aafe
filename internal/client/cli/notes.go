package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/jobtrack/internal/client/models"
)

// AddNote attaches a note to a job: "note <job-id>".
func (a *App) AddNote(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: note <job-id>")
		return nil
	}
	jobID := args[0]

	content, err := GetMultiline(a.reader, "Note content", a.out)
	if err != nil {
		return err
	}
	reminderText, err := GetSimpleText(a.reader, "Reminder (YYYY-MM-DD HH:MM, blank for none)", a.out)
	if err != nil {
		return err
	}

	input := models.NoteInput{Content: content}
	if reminderText != "" {
		reminder, err := time.Parse("2006-01-02 15:04", reminderText)
		if err != nil {
			fmt.Fprintln(a.out, "Bad reminder time, expected YYYY-MM-DD HH:MM.")
			return err
		}
		input.ReminderTime = &reminder
	}

	a.busy()
	note, err := a.api.CreateNote(ctx, jobID, input)
	if err != nil {
		fmt.Fprintf(a.out, "Failed to create note: %s\n", err)
		return err
	}
	fmt.Fprintf(a.out, "Added note %s.\n", note.ID)
	return nil
}

// DeleteNote removes a note after confirmation: "delnote <job-id> <note-id>".
func (a *App) DeleteNote(ctx context.Context, args []string) error {
	if len(args) < 2 {
		fmt.Fprintln(a.out, "Usage: delnote <job-id> <note-id>")
		return nil
	}
	jobID, noteID := args[0], args[1]

	if !Confirm(a.reader, fmt.Sprintf("Delete note %s?", noteID), a.out) {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	a.busy()
	if err := a.api.DeleteNote(ctx, jobID, noteID); err != nil {
		fmt.Fprintf(a.out, "Failed to delete note: %s\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Deleted.")
	return nil
}
