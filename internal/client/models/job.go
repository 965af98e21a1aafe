// Package models defines the job-application domain types shared by the
// adapter, board and view layers.
package models

import (
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// JobStatus classifies a job application's pipeline stage.
type JobStatus string

const (
	StatusApplied   JobStatus = "applied"
	StatusInterview JobStatus = "interview"
	StatusOffer     JobStatus = "offer"
	StatusRejected  JobStatus = "rejected"
)

// Statuses lists the pipeline stages in board column order.
var Statuses = []JobStatus{StatusApplied, StatusInterview, StatusOffer, StatusRejected}

var ErrInvalidStatus = errors.New("invalid job status")

// ParseStatus normalizes s and returns the matching JobStatus,
// or ErrInvalidStatus if s is not one of the four stages.
func ParseStatus(s string) (JobStatus, error) {
	st := JobStatus(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Statuses {
		if st == known {
			return st, nil
		}
	}
	return "", ErrInvalidStatus
}

func (s JobStatus) Valid() bool {
	_, err := ParseStatus(string(s))
	return err == nil
}

// DateOnly is a calendar date without a time-of-day component. It
// marshals as "2006-01-02" and accepts full RFC3339 timestamps on
// input, discarding the time part.
type DateOnly struct {
	time.Time
}

const dateOnlyLayout = "2006-01-02"

func NewDate(year int, month time.Month, day int) DateOnly {
	return DateOnly{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate accepts "2006-01-02" or an RFC3339 timestamp.
func ParseDate(s string) (DateOnly, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(dateOnlyLayout, s); err == nil {
		return DateOnly{t}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return DateOnly{}, err
	}
	return DateOnly{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}, nil
}

func (d DateOnly) String() string {
	return d.Format(dateOnlyLayout)
}

func (d DateOnly) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(dateOnlyLayout))
}

func (d *DateOnly) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*d = DateOnly{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// JobApplication is the client-side projection of a tracked
// application. The canonical copy lives on the backend; ID and
// CreatedAt are server-assigned.
type JobApplication struct {
	ID          string    `json:"id"`
	CompanyName string    `json:"company_name"`
	Position    string    `json:"position"`
	Status      JobStatus `json:"status"`
	AppliedDate DateOnly  `json:"applied_date"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
}

// JobInput carries the fields required to create a job application.
type JobInput struct {
	CompanyName string    `json:"company_name"`
	Position    string    `json:"position"`
	Status      JobStatus `json:"status"`
	AppliedDate DateOnly  `json:"applied_date"`
}

var (
	ErrCompanyNameRequired = errors.New("company name is required")
	ErrPositionRequired    = errors.New("position is required")
	ErrAppliedDateRequired = errors.New("applied date is required")
)

// Validate checks the client-side invariants before submission.
func (in JobInput) Validate() error {
	if strings.TrimSpace(in.CompanyName) == "" {
		return ErrCompanyNameRequired
	}
	if strings.TrimSpace(in.Position) == "" {
		return ErrPositionRequired
	}
	if !in.Status.Valid() {
		return ErrInvalidStatus
	}
	if in.AppliedDate.IsZero() {
		return ErrAppliedDateRequired
	}
	return nil
}

// JobUpdate describes a partial update. Nil fields are omitted from the
// outgoing payload and left untouched server-side.
type JobUpdate struct {
	CompanyName *string
	Position    *string
	Status      *JobStatus
	AppliedDate *DateOnly
}

// Empty reports whether the update carries no fields at all.
func (u JobUpdate) Empty() bool {
	return u.CompanyName == nil && u.Position == nil && u.Status == nil && u.AppliedDate == nil
}
