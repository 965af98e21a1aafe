package models

import (
	"errors"
	"strings"
	"time"
)

// Note is a free-text annotation attached to a job application.
// Notes are created and deleted, never edited.
type Note struct {
	ID           string     `json:"id"`
	JobID        string     `json:"job_id"`
	Content      string     `json:"content"`
	ReminderTime *time.Time `json:"reminder_time,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// NoteInput carries the fields required to create a note.
type NoteInput struct {
	Content      string     `json:"content"`
	ReminderTime *time.Time `json:"reminder_time,omitempty"`
}

var ErrContentRequired = errors.New("note content is required")

func (in NoteInput) Validate() error {
	if strings.TrimSpace(in.Content) == "" {
		return ErrContentRequired
	}
	return nil
}
