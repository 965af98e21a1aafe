package api

import (
	"context"

	"github.com/dmitrijs2005/jobtrack/internal/client/models"
)

// restError is the backend's error envelope. FastAPI-style backends put
// the message under "detail"; some endpoints use "message".
type restError struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

func (e restError) messageOr(fallback string) string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Message != "" {
		return e.Message
	}
	return fallback
}

// restAuthResponse covers the success bodies of all six auth endpoints.
type restAuthResponse struct {
	Message           string              `json:"message"`
	AttemptsRemaining int                 `json:"attempts_remaining"`
	AccessToken       string              `json:"access_token"`
	User              *models.UserProfile `json:"user"`
}

func (c *HTTPClient) postAuth(ctx context.Context, path string, body any, fallback string) (*restAuthResponse, error) {
	var ok restAuthResponse
	var fail restError

	resp, err := c.rest.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&ok).
		SetError(&fail).
		Post(path)
	if err != nil {
		return nil, c.mapTransportError(err)
	}
	if resp.IsError() {
		return nil, &ValidationError{Message: fail.messageOr(fallback)}
	}
	return &ok, nil
}

// Login submits credentials. The backend never completes a login
// without OTP verification, so a successful call always reports
// OTPRequired.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	body := map[string]string{"email": email, "password": password}
	resp, err := c.postAuth(ctx, "/auth/login", body, "Login failed")
	if err != nil {
		return nil, err
	}
	msg := resp.Message
	if msg == "" {
		msg = "Please verify your OTP to continue"
	}
	return &AuthResult{OTPRequired: true, Message: msg, AttemptsRemaining: resp.AttemptsRemaining}, nil
}

// Register creates an account. Same OTP-required contract as Login.
func (c *HTTPClient) Register(ctx context.Context, email, password, firstName, lastName string) (*AuthResult, error) {
	body := map[string]string{
		"email":      email,
		"password":   password,
		"first_name": firstName,
		"last_name":  lastName,
	}
	resp, err := c.postAuth(ctx, "/auth/register", body, "Registration failed")
	if err != nil {
		return nil, err
	}
	msg := resp.Message
	if msg == "" {
		msg = "Please verify your OTP to continue"
	}
	return &AuthResult{OTPRequired: true, Message: msg, AttemptsRemaining: resp.AttemptsRemaining}, nil
}

// VerifyOTP checks the code against the given flow. A 2xx response
// without an access token is a domain failure, not a success.
func (c *HTTPClient) VerifyOTP(ctx context.Context, email, code string, module OTPModule) (*VerifyResult, error) {
	body := map[string]string{"email": email, "code": code, "module": string(module)}
	resp, err := c.postAuth(ctx, "/auth/verify-otp", body, "OTP verification failed")
	if err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		msg := resp.Message
		if msg == "" {
			msg = "OTP verification failed"
		}
		return nil, &DomainError{Message: msg}
	}
	result := &VerifyResult{Token: resp.AccessToken, Message: resp.Message}
	if resp.User != nil {
		result.Profile = *resp.User
	}
	return result, nil
}

// ResendOTP requests a fresh code for the given flow.
func (c *HTTPClient) ResendOTP(ctx context.Context, email string, module OTPModule) (*OTPStatus, error) {
	body := map[string]string{"email": email, "module": string(module)}
	resp, err := c.postAuth(ctx, "/auth/resend-otp", body, "Failed to resend OTP")
	if err != nil {
		return nil, err
	}
	if resp.Message == "" {
		return nil, &DomainError{Message: "Failed to resend OTP"}
	}
	return &OTPStatus{Message: resp.Message, AttemptsRemaining: resp.AttemptsRemaining}, nil
}

// ForgotPassword starts the password-reset flow for the given email.
func (c *HTTPClient) ForgotPassword(ctx context.Context, email string) (*OTPStatus, error) {
	body := map[string]string{"email": email}
	resp, err := c.postAuth(ctx, "/auth/forget-password", body, "Failed to send reset OTP")
	if err != nil {
		return nil, err
	}
	if resp.Message == "" {
		return nil, &DomainError{Message: "Failed to send reset OTP"}
	}
	return &OTPStatus{Message: resp.Message, AttemptsRemaining: resp.AttemptsRemaining}, nil
}

// ResetPassword completes the reset flow. The caller is responsible for
// invalidating any existing session on success.
func (c *HTTPClient) ResetPassword(ctx context.Context, email, code, newPassword string) (string, error) {
	body := map[string]string{"email": email, "code": code, "new_password": newPassword}
	resp, err := c.postAuth(ctx, "/auth/reset-password", body, "Failed to reset password")
	if err != nil {
		return "", err
	}
	if resp.Message == "" {
		return "", &DomainError{Message: "Failed to reset password"}
	}
	return resp.Message, nil
}
