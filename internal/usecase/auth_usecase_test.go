package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resqnet/internal/domain/entity"
	"resqnet/internal/domain/repository"
	"resqnet/pkg/errors"
)

const testOTP = "123456"

func newTestAuth(t *testing.T, opts ...Option) (*AuthUseCase, repository.EntityStore) {
	t.Helper()
	store := seededStore(t)
	cfg := AuthConfig{JWTSecret: "test-secret", TokenTTL: time.Hour, OTPCode: testOTP}
	return NewAuthUseCase(store, cfg, nil, append(testOptions("s-"), opts...)...), store
}

func TestAuthUseCase_CitizenChallenge(t *testing.T) {
	uc, _ := newTestAuth(t)
	ctx := context.Background()

	err := uc.StartCitizenChallenge(ctx, "98765")
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = uc.VerifyCitizen(ctx, "9876543210", testOTP)
	assert.True(t, errors.Is(err, "BAD_REQUEST"), "no challenge opened yet")

	require.NoError(t, uc.StartCitizenChallenge(ctx, "9876543210"))

	_, err = uc.VerifyCitizen(ctx, "9876543210", "000000")
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))

	res, err := uc.VerifyCitizen(ctx, "9876543210", testOTP)
	require.NoError(t, err)
	assert.Equal(t, "1", res.User.ID)
	assert.Equal(t, "/v1/dashboard/citizen", res.RedirectTo)

	session, err := uc.Authenticate(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCitizen, session.Role)
	assert.Equal(t, "1", session.UserID)

	_, err = uc.VerifyCitizen(ctx, "9876543210", testOTP)
	assert.True(t, errors.Is(err, "BAD_REQUEST"), "challenge is single use")
}

func TestAuthUseCase_ChallengeExpires(t *testing.T) {
	now := fixedNow
	uc, _ := newTestAuth(t, WithClock(func() time.Time { return now }))
	ctx := context.Background()

	require.NoError(t, uc.StartCitizenChallenge(ctx, "9876543210"))
	now = now.Add(challengeTTL + time.Second)

	_, err := uc.VerifyCitizen(ctx, "9876543210", testOTP)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestAuthUseCase_LoginExistingUser(t *testing.T) {
	rec := newFakeRecorder()
	uc, store := newTestAuth(t, WithRecorder(rec))
	ctx := context.Background()
	_, revBefore, err := repository.Get[entity.User](ctx, store, repository.UsersKey)
	require.NoError(t, err)

	res, err := uc.Login(ctx, "sarah@ngo.org", entity.RoleNGO)
	require.NoError(t, err)
	assert.Equal(t, "3", res.User.ID)
	assert.Equal(t, "/v1/dashboard/ngo-coordinator", res.RedirectTo)

	_, revAfter, err := repository.Get[entity.User](ctx, store, repository.UsersKey)
	require.NoError(t, err)
	assert.Equal(t, revBefore, revAfter, "existing users are not rewritten")
	assert.Equal(t, 1, rec.logins["NGO Coordinator:ok"])
}

func TestAuthUseCase_LoginCreatesThenReuses(t *testing.T) {
	uc, store := newTestAuth(t)
	ctx := context.Background()

	first, err := uc.Login(ctx, "nina@vol.com", entity.RoleVolunteer)
	require.NoError(t, err)
	assert.Equal(t, "nina", first.User.Name)

	second, err := uc.Login(ctx, "nina@vol.com", entity.RoleVolunteer)
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, second.User.ID)

	users, _, err := repository.Get[entity.User](ctx, store, repository.UsersKey)
	require.NoError(t, err)
	assert.Len(t, users, 8)

	other, err := uc.Login(ctx, "nina@vol.com", entity.RoleNGO)
	require.NoError(t, err)
	assert.NotEqual(t, first.User.ID, other.User.ID, "same email under another role is another account")
}

func TestAuthUseCase_LoginValidation(t *testing.T) {
	uc, _ := newTestAuth(t)
	ctx := context.Background()

	_, err := uc.Login(ctx, "not-an-email", entity.RoleVolunteer)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = uc.Login(ctx, "citizen@resqnet.com", entity.RoleCitizen)
	assert.True(t, errors.Is(err, "BAD_REQUEST"))

	_, err = uc.Login(ctx, "x@y.z", entity.Role("Admin"))
	assert.True(t, errors.Is(err, "BAD_REQUEST"))
}

func TestAuthUseCase_LoginRateLimited(t *testing.T) {
	store := seededStore(t)
	uc := NewAuthUseCase(store, AuthConfig{JWTSecret: "s", OTPCode: testOTP}, fakeLimiter{allow: false})

	_, err := uc.Login(context.Background(), "sarah@ngo.org", entity.RoleNGO)

	assert.True(t, errors.Is(err, "TOO_MANY_REQUESTS"))
}

func TestAuthUseCase_LogoutAndExpiry(t *testing.T) {
	now := fixedNow
	uc, _ := newTestAuth(t, WithClock(func() time.Time { return now }))
	ctx := context.Background()

	res, err := uc.Login(ctx, "mike@gov.in", entity.RoleGovernment)
	require.NoError(t, err)
	session, err := uc.Authenticate(ctx, res.Token)
	require.NoError(t, err)

	require.NoError(t, uc.Logout(ctx, session.ID))
	_, err = uc.Authenticate(ctx, res.Token)
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))

	res, err = uc.Login(ctx, "mike@gov.in", entity.RoleGovernment)
	require.NoError(t, err)
	now = now.Add(2 * time.Hour)
	_, err = uc.Authenticate(ctx, res.Token)
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
}

func TestAuthUseCase_ExpiredSessionsArePruned(t *testing.T) {
	now := fixedNow
	uc, _ := newTestAuth(t, WithClock(func() time.Time { return now }))
	ctx := context.Background()

	_, err := uc.Login(ctx, "mike@gov.in", entity.RoleGovernment)
	require.NoError(t, err)
	_, err = uc.Login(ctx, "sarah@ngo.org", entity.RoleNGO)
	require.NoError(t, err)
	require.NoError(t, uc.StartCitizenChallenge(ctx, "9876543210"))
	assert.Equal(t, 2, uc.ActiveSessions())

	// neither token is presented again; the next login sweeps both
	now = now.Add(2 * time.Hour)
	fresh, err := uc.Login(ctx, "rc@ngo.org", entity.RoleNGO)
	require.NoError(t, err)
	assert.Equal(t, 1, uc.ActiveSessions())

	_, err = uc.VerifyCitizen(ctx, "9876543210", testOTP)
	assert.True(t, errors.Is(err, "BAD_REQUEST"), "challenge swept with the sessions")

	now = now.Add(2 * time.Hour)
	assert.Equal(t, 1, uc.Cleanup())
	assert.Zero(t, uc.ActiveSessions())

	_, err = uc.Authenticate(ctx, fresh.Token)
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
}

func TestAuthUseCase_AuthenticateRejectsForeignToken(t *testing.T) {
	uc, _ := newTestAuth(t)
	other := NewAuthUseCase(seededStore(t), AuthConfig{JWTSecret: "other-secret", OTPCode: testOTP}, nil, testOptions("o-")...)

	res, err := other.Login(context.Background(), "sarah@ngo.org", entity.RoleNGO)
	require.NoError(t, err)

	_, err = uc.Authenticate(context.Background(), res.Token)
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))

	_, err = uc.Authenticate(context.Background(), "garbage")
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
}

func TestAuthUseCase_CurrentUser(t *testing.T) {
	uc, _ := newTestAuth(t)

	u, err := uc.CurrentUser(context.Background(), &Session{UserID: "4", Role: entity.RoleGovernment})
	require.NoError(t, err)
	assert.Equal(t, "Gov Mike", u.Name)

	_, err = uc.CurrentUser(context.Background(), nil)
	assert.True(t, errors.Is(err, "UNAUTHORIZED"))
}

func TestAuthorize(t *testing.T) {
	ngo := &Session{UserID: "3", Role: entity.RoleNGO}

	assert.NoError(t, Authorize(ngo))
	assert.NoError(t, Authorize(ngo, entity.RoleNGO, entity.RoleGovernment))
	assert.True(t, errors.Is(Authorize(ngo, entity.RoleVolunteer), "FORBIDDEN"))
	assert.True(t, errors.Is(Authorize(nil, entity.RoleNGO), "UNAUTHORIZED"))
}

func TestDashboardAllowed(t *testing.T) {
	vol := &Session{UserID: "2", Role: entity.RoleVolunteer}

	assert.True(t, DashboardAllowed(vol, "volunteer"))
	assert.False(t, DashboardAllowed(vol, "government-official"))
	assert.False(t, DashboardAllowed(nil, "citizen"))
	assert.Equal(t, "/v1/dashboard/government-official", DashboardPath(entity.RoleGovernment))
}
