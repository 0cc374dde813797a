// internal/session/service.go
package session

import (
	"context"
	"fmt"

	"github.com/your-org/coursemarket-client/internal/api"
	"github.com/your-org/coursemarket-client/internal/pkg/notify"
)

// Service performs sign-in, sign-up and sign-out against the marketplace API
// and keeps the session store in step with the results.
type Service struct {
	client   *api.Client
	store    *Store
	notifier notify.Notifier
}

// NewService creates a new session service
func NewService(client *api.Client, store *Store, notifier notify.Notifier) *Service {
	return &Service{
		client:   client,
		store:    store,
		notifier: notifier,
	}
}

// SignInRequest represents sign in request
type SignInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUpRequest represents sign up request
type SignUpRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// authResponse is the payload of the sign-in and sign-up endpoints.
type authResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

// SignIn authenticates the user and stores the issued session.
func (s *Service) SignIn(ctx context.Context, email, password string) (*User, error) {
	if email == "" || password == "" {
		s.notifier.Error("Email and password are required")
		return nil, fmt.Errorf("session: email and password are required")
	}

	var resp authResponse
	err := s.client.Do(ctx, "POST", "/users/signin", nil, &SignInRequest{
		Email:    email,
		Password: password,
	}, &resp)
	if err != nil {
		s.notifier.Error("Sign in failed")
		return nil, fmt.Errorf("session: sign in: %w", err)
	}

	if err := s.store.SetSession(ctx, resp.Token, resp.User); err != nil {
		return nil, err
	}

	s.notifier.Success("Signed in")
	return resp.User, nil
}

// SignUp registers a new account and stores the issued session.
func (s *Service) SignUp(ctx context.Context, req *SignUpRequest) (*User, error) {
	if req.Email == "" || req.Password == "" {
		s.notifier.Error("Email and password are required")
		return nil, fmt.Errorf("session: email and password are required")
	}

	var resp authResponse
	if err := s.client.Do(ctx, "POST", "/users/add", nil, req, &resp); err != nil {
		s.notifier.Error("Sign up failed")
		return nil, fmt.Errorf("session: sign up: %w", err)
	}

	if err := s.store.SetSession(ctx, resp.Token, resp.User); err != nil {
		return nil, err
	}

	s.notifier.Success("Account created")
	return resp.User, nil
}

// SignOut clears the session. The server holds no session state, so this
// is a purely local operation.
func (s *Service) SignOut(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return err
	}
	s.notifier.Info("Signed out")
	return nil
}
