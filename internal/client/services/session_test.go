package services

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/mediacatalog/internal/client/client"
	"github.com/dmitrijs2005/mediacatalog/internal/client/models"
	"github.com/dmitrijs2005/mediacatalog/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/mediacatalog/internal/client/validate"
	"github.com/dmitrijs2005/mediacatalog/internal/logging"
)

// ---- helpers ----

var (
	goodCreds = models.Credentials{Email: "user@example.com", Password: "secret1"}
	goodReg   = models.Registration{Email: "user@example.com", Password: "secret1", RepeatPassword: "secret1"}
)

func openDB(t *testing.T, path string) *sql.DB {
	t.Helper()
	db, err := client.InitDatabase(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestSession(t *testing.T, c AuthClient, repo metadata.Repository) *Session {
	t.Helper()
	s, err := NewSession(context.Background(), c, repo, logging.Discard())
	require.NoError(t, err)
	return s
}

// ---- fakes ----

type fakeAuthClient struct {
	signInCalls atomic.Int32
	signUpCalls atomic.Int32

	signInResp *models.AuthResponse
	signInErr  error
	signUpResp *models.AuthResponse
	signUpErr  error

	// when set, SignIn reports on started and waits for release
	started chan struct{}
	release chan struct{}

	lastReg models.Registration
}

func (f *fakeAuthClient) SignIn(ctx context.Context, creds models.Credentials) (*models.AuthResponse, error) {
	f.signInCalls.Add(1)
	if f.started != nil {
		f.started <- struct{}{}
		<-f.release
	}
	return f.signInResp, f.signInErr
}

func (f *fakeAuthClient) SignUp(ctx context.Context, reg models.Registration) (*models.AuthResponse, error) {
	f.signUpCalls.Add(1)
	f.lastReg = reg
	return f.signUpResp, f.signUpErr
}

type memRepo struct {
	mu     sync.Mutex
	data   map[string][]byte
	getErr error
	setErr error
	delErr error
}

func (m *memRepo) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.data[key], nil
}

func (m *memRepo) Set(ctx context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	if m.data == nil {
		m.data = map[string][]byte{}
	}
	m.data[key] = value
	return nil
}

func (m *memRepo) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.delErr != nil {
		return m.delErr
	}
	delete(m.data, key)
	return nil
}

// ---- TESTS ----

func TestNewSession_SeedsFromPersistedFlag(t *testing.T) {
	tests := []struct {
		name  string
		value []byte
		want  SessionStatus
	}{
		{"missing", nil, StatusAnonymous},
		{"true", []byte("true"), StatusAuthenticated},
		{"false", []byte("false"), StatusAnonymous},
		{"garbage", []byte("TRUE "), StatusAnonymous},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &memRepo{}
			if tt.value != nil {
				repo.data = map[string][]byte{AuthenticatedKey: tt.value}
			}
			s := newTestSession(t, &fakeAuthClient{}, repo)
			assert.Equal(t, tt.want, s.Status())
		})
	}
}

func TestNewSession_RepoError(t *testing.T) {
	boom := errors.New("disk gone")
	_, err := NewSession(context.Background(), &fakeAuthClient{}, &memRepo{getErr: boom}, logging.Discard())
	require.ErrorIs(t, err, boom)
}

func TestSignIn_SuccessPersistsAcrossRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	fc := &fakeAuthClient{signInResp: &models.AuthResponse{Success: true, Message: "Welcome"}}

	s := newTestSession(t, fc, metadata.NewSQLiteRepository(openDB(t, path)))
	require.Equal(t, StatusAnonymous, s.Status())

	out, err := s.SignIn(context.Background(), goodCreds)
	require.NoError(t, err)
	assert.Equal(t, Outcome{Kind: OutcomeSuccess, Message: "Welcome"}, out)
	assert.True(t, out.OK())
	assert.True(t, s.IsAuthenticated())

	// a second process over the same file starts authenticated
	reopened := newTestSession(t, &fakeAuthClient{}, metadata.NewSQLiteRepository(openDB(t, path)))
	assert.Equal(t, StatusAuthenticated, reopened.Status())
}

func TestSignIn_Rejected(t *testing.T) {
	repo := &memRepo{}
	fc := &fakeAuthClient{signInResp: &models.AuthResponse{Success: false, Message: "Wrong password"}}
	s := newTestSession(t, fc, repo)

	out, err := s.SignIn(context.Background(), goodCreds)
	require.NoError(t, err)
	assert.Equal(t, Outcome{Kind: OutcomeRejected, Message: "Wrong password"}, out)
	assert.Equal(t, StatusAnonymous, s.Status())
	assert.Empty(t, repo.data)
}

func TestSignIn_TransportError(t *testing.T) {
	repo := &memRepo{}
	fc := &fakeAuthClient{signInErr: client.ErrUnavailable}
	s := newTestSession(t, fc, repo)

	out, err := s.SignIn(context.Background(), goodCreds)
	require.NoError(t, err)
	assert.Equal(t, OutcomeTransportError, out.Kind)
	assert.Equal(t, MsgSignInTransport, out.Message)
	assert.Equal(t, StatusAnonymous, s.Status())
	assert.Empty(t, repo.data)
	assert.EqualValues(t, 1, fc.signInCalls.Load())
}

func TestSignIn_InvalidFormNeverReachesNetwork(t *testing.T) {
	fc := &fakeAuthClient{}
	s := newTestSession(t, fc, &memRepo{})

	_, err := s.SignIn(context.Background(), models.Credentials{Email: "nope", Password: ""})
	require.ErrorIs(t, err, validate.ErrInvalid)

	var fe validate.Errors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, validate.MsgInvalidEmail, fe[validate.FieldEmail])
	assert.Equal(t, validate.MsgRequired, fe[validate.FieldPassword])

	assert.Zero(t, fc.signInCalls.Load())
	assert.Equal(t, StatusAnonymous, s.Status())
}

func TestSignIn_SingleInFlight(t *testing.T) {
	fc := &fakeAuthClient{
		signInResp: &models.AuthResponse{Success: true},
		started:    make(chan struct{}),
		release:    make(chan struct{}),
	}
	s := newTestSession(t, fc, &memRepo{})

	done := make(chan error, 1)
	go func() {
		_, err := s.SignIn(context.Background(), goodCreds)
		done <- err
	}()

	<-fc.started
	assert.True(t, s.Busy())

	_, err := s.SignIn(context.Background(), goodCreds)
	require.ErrorIs(t, err, ErrAuthInFlight)
	_, err = s.SignUp(context.Background(), goodReg)
	require.ErrorIs(t, err, ErrAuthInFlight)
	assert.EqualValues(t, 1, fc.signInCalls.Load())
	assert.Zero(t, fc.signUpCalls.Load())

	close(fc.release)
	require.NoError(t, <-done)
	assert.True(t, s.IsAuthenticated())
	assert.EqualValues(t, 1, fc.signInCalls.Load())
}

func TestSignIn_AlreadyAuthenticated(t *testing.T) {
	fc := &fakeAuthClient{}
	repo := &memRepo{data: map[string][]byte{AuthenticatedKey: []byte("true")}}
	s := newTestSession(t, fc, repo)

	_, err := s.SignIn(context.Background(), goodCreds)
	require.ErrorIs(t, err, ErrAlreadyAuthenticated)
	assert.Zero(t, fc.signInCalls.Load())
}

func TestSignIn_PersistFailureStillAuthenticates(t *testing.T) {
	fc := &fakeAuthClient{signInResp: &models.AuthResponse{Success: true}}
	s := newTestSession(t, fc, &memRepo{setErr: errors.New("read-only")})

	out, err := s.SignIn(context.Background(), goodCreds)
	require.NoError(t, err)
	assert.True(t, out.OK())
	assert.True(t, s.IsAuthenticated())
}

func TestSignUp_SuccessStaysAnonymous(t *testing.T) {
	repo := &memRepo{}
	fc := &fakeAuthClient{signUpResp: &models.AuthResponse{Success: true, Message: "Account created"}}
	s := newTestSession(t, fc, repo)

	out, err := s.SignUp(context.Background(), goodReg)
	require.NoError(t, err)
	assert.Equal(t, Outcome{Kind: OutcomeSuccess, Message: "Account created"}, out)
	assert.Equal(t, StatusAnonymous, s.Status())
	assert.Empty(t, repo.data)
	assert.Equal(t, goodReg, fc.lastReg)
}

func TestSignUp_Outcomes(t *testing.T) {
	tests := []struct {
		name string
		resp *models.AuthResponse
		err  error
		want Outcome
	}{
		{
			name: "rejected",
			resp: &models.AuthResponse{Success: false, Message: "User exists"},
			want: Outcome{Kind: OutcomeRejected, Message: "User exists"},
		},
		{
			name: "transport",
			err:  client.ErrMalformedResponse,
			want: Outcome{Kind: OutcomeTransportError, Message: MsgSignUpTransport},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fc := &fakeAuthClient{signUpResp: tt.resp, signUpErr: tt.err}
			s := newTestSession(t, fc, &memRepo{})

			out, err := s.SignUp(context.Background(), goodReg)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
			assert.Equal(t, StatusAnonymous, s.Status())
		})
	}
}

func TestSignUp_MismatchIsLocal(t *testing.T) {
	fc := &fakeAuthClient{}
	s := newTestSession(t, fc, &memRepo{})

	reg := goodReg
	reg.RepeatPassword = "secret2"
	_, err := s.SignUp(context.Background(), reg)

	var fe validate.Errors
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, validate.MsgMismatch, fe[validate.FieldRepeatPassword])
	assert.Zero(t, fc.signUpCalls.Load())
}

func TestSignOut(t *testing.T) {
	repo := &memRepo{data: map[string][]byte{AuthenticatedKey: []byte("true")}}
	s := newTestSession(t, &fakeAuthClient{}, repo)
	require.True(t, s.IsAuthenticated())

	require.NoError(t, s.SignOut(context.Background()))
	assert.Equal(t, StatusAnonymous, s.Status())
	assert.NotContains(t, repo.data, AuthenticatedKey)

	again := newTestSession(t, &fakeAuthClient{}, repo)
	assert.Equal(t, StatusAnonymous, again.Status())
}

func TestSignOut_RepoError(t *testing.T) {
	boom := errors.New("locked")
	repo := &memRepo{data: map[string][]byte{AuthenticatedKey: []byte("true")}, delErr: boom}
	s := newTestSession(t, &fakeAuthClient{}, repo)

	require.ErrorIs(t, s.SignOut(context.Background()), boom)
	assert.True(t, s.IsAuthenticated())
}
