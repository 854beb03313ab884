package session

import (
	"bytes"
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "greenjobs/internal/errors"
	"greenjobs/internal/model"
	"greenjobs/internal/tokenstore"
)

// MockAuthenticator is a mock implementation of Authenticator.
type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Login(ctx context.Context, creds model.LoginData) (*model.AuthResponse, error) {
	args := m.Called(ctx, creds)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuthResponse), args.Error(1)
}

func (m *MockAuthenticator) Register(ctx context.Context, data model.RegisterData) (*model.AuthResponse, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuthResponse), args.Error(1)
}

func (m *MockAuthenticator) LoginWithGoogle(ctx context.Context, role model.Role) (*model.AuthResponse, error) {
	args := m.Called(ctx, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuthResponse), args.Error(1)
}

func (m *MockAuthenticator) CurrentUser(ctx context.Context) (*model.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockAuthenticator) UpdateProfile(ctx context.Context, upd model.ProfileUpdate) (*model.User, error) {
	args := m.Called(ctx, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// failingStore fails every write.
type failingStore struct{ tokenstore.MemoryStore }

func (f *failingStore) Save(ctx context.Context, token string) error { return errors.New("disk full") }
func (f *failingStore) Clear(ctx context.Context) error            { return errors.New("disk full") }

func employee() *model.User {
	return &model.User{
		ID: "user1", Name: "Alex Doe", Email: "alex.doe@example.com",
		Details: model.EmployeeDetails{Profile: model.EmployeeProfile{Summary: "ecologist", Skills: []string{"GIS"}}},
	}
}

func employer() *model.User {
	return &model.User{ID: "user2", Name: "Jane Smith", Email: "jane@example.com", Details: model.EmployerDetails{CompanyID: "comp1"}}
}

func authResp(token string, u *model.User) *model.AuthResponse {
	return &model.AuthResponse{AccessToken: token, TokenType: "bearer", User: *u}
}

func unauthorized() error {
	return &apperrors.RequestError{StatusCode: http.StatusUnauthorized, Message: "Could not validate credentials"}
}

func newInitialized(t *testing.T, auth Authenticator, store tokenstore.Store, opts ...Option) *Manager {
	t.Helper()
	m := NewManager(NewState(), auth, store, opts...)
	m.Initialize(context.Background())
	return m
}

func TestNewState_IsLoadingAndUninitialized(t *testing.T) {
	s := NewState()
	assert.True(t, s.Loading())
	assert.Equal(t, PhaseUninitialized, s.Phase())
	assert.Empty(t, s.Token())
	assert.Nil(t, s.User())
}

func TestState_UserCopiesAreDetached(t *testing.T) {
	s := NewState()
	source := employee()
	s.setAuthenticated("tok", source)

	source.Details.(model.EmployeeDetails).Profile.Skills[0] = "changed at source"

	got, ok := s.User().Profile()
	require.True(t, ok)
	assert.Equal(t, []string{"GIS"}, got.Skills)

	got.Skills[0] = "changed by caller"
	snapProfile, _ := s.Snapshot().User.Profile()
	snapProfile.Skills[0] = "changed via snapshot"

	again, _ := s.User().Profile()
	assert.Equal(t, []string{"GIS"}, again.Skills)
}

func TestManager_LoginReturnsDetachedUser(t *testing.T) {
	auth := new(MockAuthenticator)
	auth.On("Login", mock.Anything, mock.Anything).Return(authResp("tok", employee()), nil)
	m := newInitialized(t, auth, nil)

	user, err := m.Login(context.Background(), model.LoginData{Email: "alex.doe@example.com", Password: "pw"})
	require.NoError(t, err)
	p, _ := user.Profile()
	p.Skills[0] = "changed by caller"

	cached, _ := m.State().User().Profile()
	assert.Equal(t, []string{"GIS"}, cached.Skills)
}

func TestManager_Initialize(t *testing.T) {
	tests := []struct {
		name       string
		stored     string
		setupMock  func(*MockAuthenticator)
		wantPhase  Phase
		wantUserID string
		wantStored string
	}{
		{
			name:      "no stored token",
			stored:    "",
			setupMock: func(m *MockAuthenticator) {},
			wantPhase: PhaseAnonymous,
		},
		{
			name:   "stored token accepted",
			stored: "good",
			setupMock: func(m *MockAuthenticator) {
				m.On("CurrentUser", mock.Anything).Return(employee(), nil).Once()
			},
			wantPhase:  PhaseAuthenticated,
			wantUserID: "user1",
			wantStored: "good",
		},
		{
			name:   "stored token rejected",
			stored: "expired",
			setupMock: func(m *MockAuthenticator) {
				m.On("CurrentUser", mock.Anything).Return(nil, unauthorized()).Once()
			},
			wantPhase:  PhaseAnonymous,
			wantStored: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			auth := new(MockAuthenticator)
			tt.setupMock(auth)
			store := tokenstore.NewMemoryStore(tt.stored)

			m := newInitialized(t, auth, store)
			snap := m.State().Snapshot()

			assert.False(t, snap.Loading)
			assert.Equal(t, tt.wantPhase, snap.Phase)
			if tt.wantUserID == "" {
				assert.Nil(t, snap.User)
				assert.Empty(t, snap.Token)
			} else {
				require.NotNil(t, snap.User)
				assert.Equal(t, tt.wantUserID, snap.User.ID)
				assert.Equal(t, tt.stored, snap.Token)
			}
			stored, _ := store.Load(context.Background())
			assert.Equal(t, tt.wantStored, stored)
			auth.AssertExpectations(t)
		})
	}
}

func TestManager_Initialize_RunsOnce(t *testing.T) {
	auth := new(MockAuthenticator)
	auth.On("CurrentUser", mock.Anything).Return(employee(), nil).Once()
	m := NewManager(NewState(), auth, tokenstore.NewMemoryStore("tok"))

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Initialize(context.Background())
		}()
	}
	wg.Wait()
	m.Initialize(context.Background())

	auth.AssertNumberOfCalls(t, "CurrentUser", 1)
	assert.Equal(t, PhaseAuthenticated, m.State().Phase())
}

func TestManager_LoginThenLogoutRestoresState(t *testing.T) {
	auth := new(MockAuthenticator)
	creds := model.LoginData{Email: "alex.doe@example.com", Password: "password123"}
	auth.On("Login", mock.Anything, creds).Return(authResp("tok-1", employee()), nil)
	store := tokenstore.NewMemoryStore("")
	m := newInitialized(t, auth, store)

	before := m.State().Snapshot()

	u, err := m.Login(context.Background(), creds)
	require.NoError(t, err)
	assert.Equal(t, "user1", u.ID)
	assert.Equal(t, "tok-1", m.State().Token())
	assert.Equal(t, PhaseAuthenticated, m.State().Phase())
	stored, _ := store.Load(context.Background())
	assert.Equal(t, "tok-1", stored)

	m.Logout(context.Background())

	assert.Equal(t, before, m.State().Snapshot())
	stored, _ = store.Load(context.Background())
	assert.Empty(t, stored)
}

func TestManager_LoginFailureLeavesSessionUnchanged(t *testing.T) {
	auth := new(MockAuthenticator)
	loginErr := &apperrors.RequestError{StatusCode: http.StatusUnauthorized, Message: "Invalid credentials"}
	auth.On("Login", mock.Anything, mock.Anything).Return(nil, loginErr)
	m := newInitialized(t, auth, tokenstore.NewMemoryStore(""))
	before := m.State().Snapshot()

	u, err := m.Login(context.Background(), model.LoginData{Email: "x@y.z", Password: "bad"})
	assert.Nil(t, u)
	assert.Same(t, loginErr, err)
	assert.Equal(t, "Invalid credentials", err.Error())
	assert.Equal(t, before, m.State().Snapshot())
}

func TestManager_PersistFailureStillSignsIn(t *testing.T) {
	auth := new(MockAuthenticator)
	auth.On("LoginWithGoogle", mock.Anything, model.RoleEmployer).Return(authResp("tok-g", employer()), nil)
	var buf bytes.Buffer
	m := newInitialized(t, auth, &failingStore{}, WithLogger(log.New(&buf, "", 0)))

	u, err := m.LoginWithGoogle(context.Background(), model.RoleEmployer)
	require.NoError(t, err)
	id, ok := u.CompanyID()
	assert.True(t, ok)
	assert.Equal(t, "comp1", id)
	assert.Contains(t, buf.String(), "[Session] persist token")
	assert.NotContains(t, buf.String(), "tok-g")

	m.Logout(context.Background())
	assert.Empty(t, m.State().Token())
}

func TestManager_LoginWithGoogle_UnknownRole(t *testing.T) {
	auth := new(MockAuthenticator)
	m := newInitialized(t, auth, nil)
	_, err := m.LoginWithGoogle(context.Background(), model.Role("guest"))
	assert.Error(t, err)
	auth.AssertNotCalled(t, "LoginWithGoogle", mock.Anything, mock.Anything)
}

func TestManager_Register(t *testing.T) {
	auth := new(MockAuthenticator)
	data := model.RegisterData{Name: "Jane", Email: "jane@example.com", Password: "pw", Role: model.RoleEmployer, Company: &model.CompanyCreate{Name: "Acme"}}
	auth.On("Register", mock.Anything, data).Return(authResp("tok-r", employer()), nil)
	m := newInitialized(t, auth, nil)

	u, err := m.Register(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, model.RoleEmployer, u.Role())
	assert.Equal(t, "tok-r", m.State().Token())
}

func TestManager_RefreshUser(t *testing.T) {
	t.Run("no token is a no-op", func(t *testing.T) {
		auth := new(MockAuthenticator)
		m := newInitialized(t, auth, nil)
		assert.NoError(t, m.RefreshUser(context.Background()))
		auth.AssertNotCalled(t, "CurrentUser", mock.Anything)
	})

	t.Run("success replaces the user", func(t *testing.T) {
		auth := new(MockAuthenticator)
		auth.On("Login", mock.Anything, mock.Anything).Return(authResp("tok", employee()), nil)
		renamed := employee()
		renamed.Name = "Alex D."
		auth.On("CurrentUser", mock.Anything).Return(renamed, nil)
		m := newInitialized(t, auth, nil)
		_, err := m.Login(context.Background(), model.LoginData{})
		require.NoError(t, err)

		require.NoError(t, m.RefreshUser(context.Background()))
		assert.Equal(t, "Alex D.", m.State().User().Name)
		assert.False(t, m.State().Loading())
	})

	policies := []struct {
		name        string
		policy      RefreshPolicy
		err         error
		wantSession bool
	}{
		{"keep policy keeps session on 401", RefreshKeepSession, unauthorized(), true},
		{"clear policy signs out on 401", RefreshClearOnUnauthorized, unauthorized(), false},
		{"clear policy keeps session on 500", RefreshClearOnUnauthorized, &apperrors.RequestError{StatusCode: 500, Message: "boom"}, true},
		{"clear policy keeps session on transport error", RefreshClearOnUnauthorized, apperrors.NewTransportError(context.DeadlineExceeded), true},
	}
	for _, tt := range policies {
		t.Run(tt.name, func(t *testing.T) {
			auth := new(MockAuthenticator)
			auth.On("Login", mock.Anything, mock.Anything).Return(authResp("tok", employee()), nil)
			auth.On("CurrentUser", mock.Anything).Return(nil, tt.err)
			store := tokenstore.NewMemoryStore("")
			m := newInitialized(t, auth, store, WithRefreshPolicy(tt.policy))
			_, err := m.Login(context.Background(), model.LoginData{})
			require.NoError(t, err)

			err = m.RefreshUser(context.Background())
			assert.Equal(t, tt.err, err)
			assert.False(t, m.State().Loading())

			stored, _ := store.Load(context.Background())
			if tt.wantSession {
				assert.Equal(t, PhaseAuthenticated, m.State().Phase())
				assert.Equal(t, "tok", stored)
			} else {
				assert.Equal(t, PhaseAnonymous, m.State().Phase())
				assert.Empty(t, stored)
			}
		})
	}
}

func TestManager_UpdateProfile(t *testing.T) {
	summary := "restoration ecologist"
	upd := model.ProfileUpdate{Summary: &summary}

	t.Run("requires a session", func(t *testing.T) {
		m := newInitialized(t, new(MockAuthenticator), nil)
		_, err := m.UpdateProfile(context.Background(), upd)
		assert.True(t, errors.Is(err, ErrNotAuthenticated))
	})

	t.Run("employees only", func(t *testing.T) {
		auth := new(MockAuthenticator)
		auth.On("Login", mock.Anything, mock.Anything).Return(authResp("tok", employer()), nil)
		m := newInitialized(t, auth, nil)
		_, err := m.Login(context.Background(), model.LoginData{})
		require.NoError(t, err)

		_, err = m.UpdateProfile(context.Background(), upd)
		assert.True(t, errors.Is(err, apperrors.ErrEmployeesOnly))
		auth.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything)
	})

	t.Run("update then refetch", func(t *testing.T) {
		auth := new(MockAuthenticator)
		auth.On("Login", mock.Anything, mock.Anything).Return(authResp("tok", employee()), nil)
		updated := employee()
		updated.Details = model.EmployeeDetails{Profile: model.EmployeeProfile{Summary: summary}}
		auth.On("UpdateProfile", mock.Anything, upd).Return(updated, nil).Once()
		confirmed := employee()
		confirmed.Details = model.EmployeeDetails{Profile: model.EmployeeProfile{Summary: summary, Skills: []string{"GIS"}}}
		auth.On("CurrentUser", mock.Anything).Return(confirmed, nil).Once()
		m := newInitialized(t, auth, nil)
		_, err := m.Login(context.Background(), model.LoginData{})
		require.NoError(t, err)

		u, err := m.UpdateProfile(context.Background(), upd)
		require.NoError(t, err)
		p, _ := u.Profile()
		assert.Equal(t, summary, p.Summary)
		assert.Equal(t, []string{"GIS"}, p.Skills)
		stateProfile, _ := m.State().User().Profile()
		assert.Equal(t, p, stateProfile)
		auth.AssertExpectations(t)
	})

	t.Run("refetch failure keeps the update response", func(t *testing.T) {
		auth := new(MockAuthenticator)
		auth.On("Login", mock.Anything, mock.Anything).Return(authResp("tok", employee()), nil)
		updated := employee()
		updated.Details = model.EmployeeDetails{Profile: model.EmployeeProfile{Summary: summary}}
		auth.On("UpdateProfile", mock.Anything, upd).Return(updated, nil)
		auth.On("CurrentUser", mock.Anything).Return(nil, apperrors.NewTransportError(context.DeadlineExceeded))
		m := newInitialized(t, auth, nil)
		_, err := m.Login(context.Background(), model.LoginData{})
		require.NoError(t, err)

		u, err := m.UpdateProfile(context.Background(), upd)
		assert.Error(t, err)
		require.NotNil(t, u)
		p, _ := m.State().User().Profile()
		assert.Equal(t, summary, p.Summary)
	})
}

func TestManager_LogoutWaitsForInFlightLogin(t *testing.T) {
	auth := new(MockAuthenticator)
	release := make(chan struct{})
	started := make(chan struct{})
	auth.On("Login", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			close(started)
			<-release
		}).
		Return(authResp("slow", employee()), nil)
	m := newInitialized(t, auth, nil)

	loginDone := make(chan struct{})
	go func() {
		defer close(loginDone)
		_, _ = m.Login(context.Background(), model.LoginData{})
	}()
	<-started
	assert.True(t, m.State().Loading())

	logoutDone := make(chan struct{})
	go func() {
		defer close(logoutDone)
		m.Logout(context.Background())
	}()

	select {
	case <-logoutDone:
		t.Fatal("logout finished while login was in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(release)
	<-loginDone
	<-logoutDone

	assert.Equal(t, PhaseAnonymous, m.State().Phase())
	assert.False(t, m.State().Loading())
}
