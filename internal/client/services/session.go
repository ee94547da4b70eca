package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/mediacatalog/internal/client/models"
	"github.com/dmitrijs2005/mediacatalog/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/mediacatalog/internal/client/validate"
	"github.com/dmitrijs2005/mediacatalog/internal/logging"
)

// AuthenticatedKey is the metadata key of the persisted flag.
const AuthenticatedKey = "authenticated"

var authenticatedValue = []byte("true")

// Messages shown when an auth request never got a usable server answer.
const (
	MsgSignInTransport = "Login failed, server error"
	MsgSignUpTransport = "Sign-up failed, server error"
)

// Errors returned before any request is sent.
var (
	ErrAuthInFlight         = errors.New("authentication request already in flight")
	ErrAlreadyAuthenticated = errors.New("already authenticated")
)

// SessionStatus is the state of the session machine. AUTHENTICATING only
// lasts while a request is outstanding.
type SessionStatus string

const (
	StatusAnonymous      SessionStatus = "anonymous"
	StatusAuthenticating SessionStatus = "authenticating"
	StatusAuthenticated  SessionStatus = "authenticated"
)

// OutcomeKind tells a server rejection from a transport failure so each
// can be shown with its own text.
type OutcomeKind string

const (
	OutcomeSuccess        OutcomeKind = "success"
	OutcomeRejected       OutcomeKind = "rejected"
	OutcomeTransportError OutcomeKind = "transport_error"
)

// Outcome is the result of one sign-in or sign-up attempt that reached the
// network. Message is ready to show to the user.
type Outcome struct {
	Kind    OutcomeKind
	Message string
}

// OK reports whether the server accepted the request.
func (o Outcome) OK() bool {
	return o.Kind == OutcomeSuccess
}

// AuthClient is the part of the API the session needs.
type AuthClient interface {
	SignIn(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error)
	SignUp(ctx context.Context, reg models.Registration) (*models.AuthResponse, error)
}

// Session is the client-local record of whether the user is treated as
// authenticated. The persisted flag is a UI gate, not proof of a server
// session.
type Session struct {
	client AuthClient
	store  metadata.Repository
	logger logging.Logger

	mu     sync.Mutex
	status SessionStatus
}

// NewSession seeds the status from the persisted flag: AUTHENTICATED only if
// the stored value is exactly "true".
func NewSession(ctx context.Context, c AuthClient, store metadata.Repository, logger logging.Logger) (*Session, error) {
	v, err := store.Get(ctx, AuthenticatedKey)
	if err != nil {
		return nil, fmt.Errorf("read persisted session: %w", err)
	}

	status := StatusAnonymous
	if string(v) == string(authenticatedValue) {
		status = StatusAuthenticated
	}

	return &Session{
		client: c,
		store:  store,
		logger: logger.With("module", "session"),
		status: status,
	}, nil
}

// Status returns the current state.
func (s *Session) Status() SessionStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// IsAuthenticated is the routing gate for catalog screens.
func (s *Session) IsAuthenticated() bool {
	return s.Status() == StatusAuthenticated
}

// Busy reports whether an auth request is outstanding; submit affordances
// should be disabled while it is true.
func (s *Session) Busy() bool {
	return s.Status() == StatusAuthenticating
}

// SignIn validates creds, then sends exactly one request. A non-nil error
// means nothing was sent: the form is invalid (validate.Errors), another
// request is in flight, or the session is already authenticated.
func (s *Session) SignIn(ctx context.Context, creds models.Credentials) (Outcome, error) {
	if err := validate.SignIn(creds); err != nil {
		return Outcome{}, err
	}
	if err := s.begin(); err != nil {
		return Outcome{}, err
	}

	resp, err := s.client.SignIn(ctx, creds)
	if err != nil {
		s.logger.Warn(ctx, "sign-in request failed", "error", err)
		s.finish(StatusAnonymous)
		return Outcome{Kind: OutcomeTransportError, Message: MsgSignInTransport}, nil
	}
	if !resp.Success {
		s.finish(StatusAnonymous)
		return Outcome{Kind: OutcomeRejected, Message: resp.Message}, nil
	}

	// the flag is written before the status flips so a reload right after
	// a successful sign-in starts authenticated
	if err := s.store.Set(ctx, AuthenticatedKey, authenticatedValue); err != nil {
		s.logger.Error(ctx, "persist authenticated flag", "error", err)
	}
	s.finish(StatusAuthenticated)
	s.logger.Info(ctx, "signed in")

	return Outcome{Kind: OutcomeSuccess, Message: resp.Message}, nil
}

// SignUp creates an account. Success never authenticates the session; the
// caller is expected to continue with SignIn.
func (s *Session) SignUp(ctx context.Context, reg models.Registration) (Outcome, error) {
	if err := validate.SignUp(reg); err != nil {
		return Outcome{}, err
	}
	if err := s.begin(); err != nil {
		return Outcome{}, err
	}
	defer s.finish(StatusAnonymous)

	resp, err := s.client.SignUp(ctx, reg)
	if err != nil {
		s.logger.Warn(ctx, "sign-up request failed", "error", err)
		return Outcome{Kind: OutcomeTransportError, Message: MsgSignUpTransport}, nil
	}
	if !resp.Success {
		return Outcome{Kind: OutcomeRejected, Message: resp.Message}, nil
	}

	s.logger.Info(ctx, "account created")
	return Outcome{Kind: OutcomeSuccess, Message: resp.Message}, nil
}

// SignOut forgets the local session. There is no server endpoint; the
// cookie, if any, simply stops being relevant to the gate.
func (s *Session) SignOut(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == StatusAuthenticating {
		return ErrAuthInFlight
	}
	if err := s.store.Delete(ctx, AuthenticatedKey); err != nil {
		return fmt.Errorf("clear persisted session: %w", err)
	}
	s.status = StatusAnonymous
	return nil
}

func (s *Session) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.status {
	case StatusAuthenticating:
		return ErrAuthInFlight
	case StatusAuthenticated:
		return ErrAlreadyAuthenticated
	}
	s.status = StatusAuthenticating
	return nil
}

func (s *Session) finish(status SessionStatus) {
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
}
