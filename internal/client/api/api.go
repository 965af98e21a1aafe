// Package api is the single choke point between the UI and the two
// backend protocols: REST for authentication and GraphQL for job and
// note data. It normalizes wire field names to the local snake_case
// shapes in models and maintains a best-effort read-cache of the job
// list that is patched after every successful mutation.
package api

import (
	"context"

	"github.com/dmitrijs2005/jobtrack/internal/client/models"
)

// OTPModule selects which verification flow an OTP code applies to.
type OTPModule string

const (
	ModuleRegister       OTPModule = "register"
	ModuleLogin          OTPModule = "login"
	ModuleForgetPassword OTPModule = "forgetpassword"
	ModuleResetPassword  OTPModule = "resetpassword"
)

// AuthResult is the outcome of a login or register call. The backend
// never completes either without OTP verification, so OTPRequired is
// always true on success.
type AuthResult struct {
	OTPRequired       bool
	Message           string
	AttemptsRemaining int
}

// VerifyResult is the outcome of a successful OTP verification.
type VerifyResult struct {
	Token   string
	Profile models.UserProfile
	Message string
}

// OTPStatus reports the state of an OTP issuance (resend / forgot).
type OTPStatus struct {
	Message           string
	AttemptsRemaining int
}

// Client defines every backend operation the application performs.
type Client interface {
	Close() error

	// Auth (REST).
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Register(ctx context.Context, email, password, firstName, lastName string) (*AuthResult, error)
	VerifyOTP(ctx context.Context, email, code string, module OTPModule) (*VerifyResult, error)
	ResendOTP(ctx context.Context, email string, module OTPModule) (*OTPStatus, error)
	ForgotPassword(ctx context.Context, email string) (*OTPStatus, error)
	ResetPassword(ctx context.Context, email, code, newPassword string) (string, error)

	// Jobs (GraphQL). ListJobs always goes to the network and refreshes
	// the read-cache; CachedJobs returns the last known snapshot.
	ListJobs(ctx context.Context) ([]models.JobApplication, error)
	GetJob(ctx context.Context, id string) (*models.JobApplication, error)
	CreateJob(ctx context.Context, input models.JobInput) (*models.JobApplication, error)
	UpdateJob(ctx context.Context, id string, update models.JobUpdate) (*models.JobApplication, error)
	DeleteJob(ctx context.Context, id string) error
	CachedJobs() []models.JobApplication

	// Notes (GraphQL, no cache involvement).
	ListNotes(ctx context.Context, jobID string) ([]models.Note, error)
	CreateNote(ctx context.Context, jobID string, input models.NoteInput) (*models.Note, error)
	DeleteNote(ctx context.Context, jobID, noteID string) error
}
