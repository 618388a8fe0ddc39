package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/nephrolog/nephrolog-sync/internal/apperrors"
	"github.com/nephrolog/nephrolog-sync/internal/mocks"
	"github.com/nephrolog/nephrolog-sync/internal/models"
	"github.com/nephrolog/nephrolog-sync/internal/repository"
	"github.com/nephrolog/nephrolog-sync/internal/service"
	"github.com/nephrolog/nephrolog-sync/internal/testhelpers"
	"github.com/nephrolog/nephrolog-sync/internal/types"
)

type authFixture struct {
	db       *gorm.DB
	accounts *repository.AccountRepository
	profiles *repository.ProfileRepository
	goals    *repository.GoalRepository
	origin   *mocks.MockOrigin
	svc      *service.AuthService
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()
	db := testhelpers.NewTestDB(t)
	f := &authFixture{
		db:       db,
		accounts: repository.NewAccountRepository(db),
		profiles: repository.NewProfileRepository(db),
		goals:    repository.NewGoalRepository(db),
		origin:   &mocks.MockOrigin{},
	}
	f.svc = service.NewAuthService(
		f.accounts,
		f.profiles,
		f.goals,
		repository.NewFoodRepository(db),
		repository.NewRecommendationRepository(db),
		repository.NewQuantitySampleRepository(db),
		f.origin,
	)
	return f
}

func (f *authFixture) seedAccount(t *testing.T, email, password, userID string) *models.Account {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	saved, err := f.accounts.Insert(context.Background(), []*models.Account{{
		CacheMeta:    models.CacheMeta{UserID: userID},
		Email:        email,
		PasswordHash: string(hash),
	}})
	require.NoError(t, err)
	return saved[0]
}

func TestAuthenticateLocalFirst(t *testing.T) {
	f := newAuthFixture(t)
	f.seedAccount(t, "a@x.com", "p1", "user-1")

	session, err := f.svc.Authenticate(context.Background(), "a@x.com", "p1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", session.UserID)
	assert.Zero(t, f.origin.LoginCalls, "a local match must not invoke the origin")
}

func TestAuthenticateWrongPassword(t *testing.T) {
	f := newAuthFixture(t)
	f.seedAccount(t, "a@x.com", "p1", "user-1")
	f.origin.LoginFn = func(ctx context.Context, email, password string) (*service.LoginResult, error) {
		return nil, &apperrors.OriginError{Op: "login", Status: http.StatusUnauthorized, Message: "bad credentials"}
	}

	_, err := f.svc.Authenticate(context.Background(), "a@x.com", "wrong")
	require.Error(t, err)
	var mismatch *apperrors.AuthMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, apperrors.FieldPassword, mismatch.Field)
	assert.Equal(t, 1, f.origin.LoginCalls, "a local miss must attempt the origin")
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	f := newAuthFixture(t)
	f.origin.LoginFn = func(ctx context.Context, email, password string) (*service.LoginResult, error) {
		return nil, &apperrors.OriginError{Op: "login", Status: http.StatusUnauthorized, Message: "no such account"}
	}

	_, err := f.svc.Authenticate(context.Background(), "nobody@x.com", "p1")
	var mismatch *apperrors.AuthMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, apperrors.FieldEmail, mismatch.Field)
}

func TestAuthenticateUnreachableOriginIsNotAMismatch(t *testing.T) {
	f := newAuthFixture(t)
	f.seedAccount(t, "a@x.com", "p1", "user-1")
	f.origin.LoginFn = func(ctx context.Context, email, password string) (*service.LoginResult, error) {
		return nil, &apperrors.OriginError{Op: "login", Err: errors.New("dial tcp: network is unreachable")}
	}

	_, err := f.svc.Authenticate(context.Background(), "a@x.com", "wrong")
	var originErr *apperrors.OriginError
	require.ErrorAs(t, err, &originErr, "a transport failure must surface as an origin error")
	var mismatch *apperrors.AuthMismatchError
	assert.False(t, errors.As(err, &mismatch), "an offline device must not be told its password is wrong")
}

func TestAuthenticateServerFaultIsNotAMismatch(t *testing.T) {
	f := newAuthFixture(t)
	f.origin.LoginFn = func(ctx context.Context, email, password string) (*service.LoginResult, error) {
		return nil, &apperrors.OriginError{Op: "login", Status: http.StatusInternalServerError, Message: "internal error"}
	}

	_, err := f.svc.Authenticate(context.Background(), "a@x.com", "p1")
	var originErr *apperrors.OriginError
	require.ErrorAs(t, err, &originErr)
	assert.Equal(t, http.StatusInternalServerError, originErr.Status)
}

func TestAuthenticateEmptyCredentials(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.svc.Authenticate(context.Background(), "", "p1")
	var validation *apperrors.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, apperrors.FieldEmail, validation.Field)

	_, err = f.svc.Authenticate(context.Background(), "a@x.com", "")
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, apperrors.FieldPassword, validation.Field)
	assert.Zero(t, f.origin.LoginCalls)
}

func TestAuthenticateRemoteSuccessCachesAccountAndProfile(t *testing.T) {
	f := newAuthFixture(t)
	f.origin.LoginFn = func(ctx context.Context, email, password string) (*service.LoginResult, error) {
		return &service.LoginResult{
			Token: "tok-1",
			Account: &models.Account{
				CacheMeta: models.CacheMeta{ID: "acc-1", UserID: "user-9"},
				Email:     email,
			},
			Profile: &models.Profile{Name: "Remote User"},
		}, nil
	}

	session, err := f.svc.Authenticate(context.Background(), "r@x.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "user-9", session.UserID)
	assert.Equal(t, "tok-1", session.Token)

	// The account is cached with a hash of the proven password.
	cached, err := f.accounts.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.NotEqual(t, "secret", cached[0].PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(cached[0].PasswordHash), []byte("secret")))

	// And the next authentication is served locally.
	_, err = f.svc.Authenticate(context.Background(), "r@x.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, 1, f.origin.LoginCalls)

	profile, err := f.profiles.GetForUser(context.Background(), types.UserContext{UserID: "user-9"})
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "Remote User", profile.Name)
}

func TestRegisterWritesThrough(t *testing.T) {
	f := newAuthFixture(t)
	f.origin.RegisterFn = func(ctx context.Context, email, password string, profile *models.Profile) (*service.LoginResult, error) {
		return &service.LoginResult{
			Token: "tok-2",
			Account: &models.Account{
				CacheMeta: models.CacheMeta{ID: "acc-2", UserID: "user-2"},
				Email:     email,
			},
			Profile: profile,
		}, nil
	}

	session, err := f.svc.Register(context.Background(), "new@x.com", "pw", &models.Profile{Name: "New User"})
	require.NoError(t, err)
	assert.Equal(t, 1, f.origin.RegisterCalls)
	assert.Equal(t, "user-2", session.UserID)

	cached, err := f.accounts.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, cached, 1)
	assert.Equal(t, "acc-2", cached[0].ID)

	profile, err := f.profiles.GetForUser(context.Background(), types.UserContext{UserID: "user-2"})
	require.NoError(t, err)
	require.NotNil(t, profile)
}

func TestLogoutClearsLocalScope(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	uc := types.UserContext{UserID: "user-1"}

	_, err := f.goals.Insert(ctx, []*models.Goal{{CacheMeta: models.CacheMeta{UserID: "user-1"}, Title: "g"}})
	require.NoError(t, err)
	_, err = f.profiles.Insert(ctx, []*models.Profile{{CacheMeta: models.CacheMeta{UserID: "user-1"}}})
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx, uc))

	goals, err := f.goals.GetAllForUser(ctx, uc)
	require.NoError(t, err)
	assert.Empty(t, goals)
	profile, err := f.profiles.GetForUser(ctx, uc)
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestLogoutNotifiesOriginInBackground(t *testing.T) {
	f := newAuthFixture(t)
	done := make(chan struct{})
	f.origin.LogoutFn = func(ctx context.Context, token string) error {
		defer close(done)
		return nil
	}

	uc := types.UserContext{UserID: "user-1", Token: "tok"}
	require.NoError(t, f.svc.Logout(context.Background(), uc))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("origin logout was never attempted")
	}
}
