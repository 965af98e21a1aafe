package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/jobtrack/internal/client/api"
	"github.com/dmitrijs2005/jobtrack/internal/client/models"
)

type noteAPIStub struct {
	api.Client
	createdJobID string
	createdInput models.NoteInput
	deletedJobID string
	deletedNote  string
}

func (s *noteAPIStub) CreateNote(ctx context.Context, jobID string, input models.NoteInput) (*models.Note, error) {
	s.createdJobID = jobID
	s.createdInput = input
	return &models.Note{ID: "n1", JobID: jobID, Content: input.Content}, nil
}

func (s *noteAPIStub) DeleteNote(ctx context.Context, jobID, noteID string) error {
	s.deletedJobID = jobID
	s.deletedNote = noteID
	return nil
}

func newNoteApp(stub *noteAPIStub, input string) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	a := &App{
		api:    stub,
		reader: bufio.NewReader(strings.NewReader(input)),
		out:    &out,
	}
	return a, &out
}

func TestAddNote(t *testing.T) {
	stub := &noteAPIStub{}
	a, out := newNoteApp(stub, "Spoke with the recruiter\nSalary range open\n\n2024-02-01 09:00\n")

	require.NoError(t, a.AddNote(context.Background(), []string{"42"}))

	assert.Equal(t, "42", stub.createdJobID)
	assert.Equal(t, "Spoke with the recruiter\nSalary range open", stub.createdInput.Content)
	require.NotNil(t, stub.createdInput.ReminderTime)
	assert.Equal(t, time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC), *stub.createdInput.ReminderTime)
	assert.Contains(t, out.String(), "Added note n1.")
}

func TestAddNote_NoReminder(t *testing.T) {
	stub := &noteAPIStub{}
	a, _ := newNoteApp(stub, "Quick note\n\n\n")

	require.NoError(t, a.AddNote(context.Background(), []string{"42"}))
	assert.Nil(t, stub.createdInput.ReminderTime)
}

func TestAddNote_BadReminder(t *testing.T) {
	stub := &noteAPIStub{}
	a, out := newNoteApp(stub, "Quick note\n\ntomorrow\n")

	require.Error(t, a.AddNote(context.Background(), []string{"42"}))
	assert.Contains(t, out.String(), "Bad reminder time")
	assert.Empty(t, stub.createdJobID)
}

func TestAddNote_Usage(t *testing.T) {
	a, out := newNoteApp(&noteAPIStub{}, "")
	require.NoError(t, a.AddNote(context.Background(), nil))
	assert.Contains(t, out.String(), "Usage: note <job-id>")
}

func TestDeleteNote(t *testing.T) {
	stub := &noteAPIStub{}
	a, out := newNoteApp(stub, "y\n")

	require.NoError(t, a.DeleteNote(context.Background(), []string{"42", "n1"}))
	assert.Equal(t, "42", stub.deletedJobID)
	assert.Equal(t, "n1", stub.deletedNote)
	assert.Contains(t, out.String(), "Deleted.")
}

func TestDeleteNote_Declined(t *testing.T) {
	stub := &noteAPIStub{}
	a, out := newNoteApp(stub, "n\n")

	require.NoError(t, a.DeleteNote(context.Background(), []string{"42", "n1"}))
	assert.Empty(t, stub.deletedNote)
	assert.Contains(t, out.String(), "Cancelled.")
}
