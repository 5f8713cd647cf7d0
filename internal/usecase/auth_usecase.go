package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"resqnet/internal/domain/entity"
	"resqnet/internal/domain/repository"
	"resqnet/internal/domain/workflow"
	"resqnet/pkg/errors"
	"resqnet/pkg/logger"
)

const (
	ActionLogin = "login"

	challengeTTL = 5 * time.Minute
	LoginPath    = "/v1/auth/login"
)

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// Session is an authenticated login. Anonymous callers have no Session.
type Session struct {
	ID        string      `json:"id"`
	UserID    string      `json:"userId"`
	Role      entity.Role `json:"role"`
	ExpiresAt time.Time   `json:"expiresAt"`
}

// Claims are carried in the session token.
type Claims struct {
	Role entity.Role `json:"role"`
	jwt.RegisteredClaims
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
	OTPCode   string
}

type AuthUseCase struct {
	base
	secret      []byte
	tokenTTL    time.Duration
	otpCode     string
	rateLimiter Limiter

	mu         sync.Mutex
	challenges map[string]time.Time // phone -> expiry
	sessions   map[string]Session
}

func NewAuthUseCase(store repository.EntityStore, cfg AuthConfig, rateLimiter Limiter, opts ...Option) *AuthUseCase {
	if rateLimiter == nil {
		rateLimiter = unlimited{}
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	return &AuthUseCase{
		base:        newBase(store, opts),
		secret:      []byte(cfg.JWTSecret),
		tokenTTL:    cfg.TokenTTL,
		otpCode:     cfg.OTPCode,
		rateLimiter: rateLimiter,
		challenges:  make(map[string]time.Time),
		sessions:    make(map[string]Session),
	}
}

type AuthResult struct {
	User       *entity.User `json:"user"`
	Token      string       `json:"token"`
	ExpiresAt  time.Time    `json:"expiresAt"`
	RedirectTo string       `json:"redirectTo"`
}

func (uc *AuthUseCase) throttle(identifier string) error {
	allowed, wait := uc.rateLimiter.Allow(identifier, ActionLogin)
	if !allowed {
		return errors.TooManyRequests(fmt.Sprintf("Too many login attempts. Try again in %.0f seconds", wait.Seconds()))
	}
	return nil
}

// StartCitizenChallenge opens a one-time-code challenge for a 10 digit phone number.
// No message is actually sent; the code is the configured fixed value.
func (uc *AuthUseCase) StartCitizenChallenge(ctx context.Context, phone string) error {
	if err := uc.throttle(phone); err != nil {
		return err
	}
	if !phonePattern.MatchString(phone) {
		return errors.BadRequest("Please enter a valid 10-digit mobile number", nil)
	}

	uc.mu.Lock()
	uc.challenges[phone] = uc.now().Add(challengeTTL)
	uc.mu.Unlock()

	logger.Info("Citizen login challenge opened for %s******", phone[:4])
	return nil
}

// VerifyCitizen completes a phone challenge and signs in as the seeded citizen.
func (uc *AuthUseCase) VerifyCitizen(ctx context.Context, phone, code string) (result *AuthResult, err error) {
	defer func() { uc.recorder.ObserveLogin(string(entity.RoleCitizen), err) }()

	if err := uc.throttle(phone); err != nil {
		return nil, err
	}

	uc.mu.Lock()
	expiry, ok := uc.challenges[phone]
	if ok && uc.now().After(expiry) {
		delete(uc.challenges, phone)
		ok = false
	}
	uc.mu.Unlock()
	if !ok {
		return nil, errors.BadRequest("Request a verification code first", nil)
	}
	if code != uc.otpCode {
		return nil, errors.Unauthorized("Invalid OTP", nil)
	}

	uc.mu.Lock()
	delete(uc.challenges, phone)
	uc.mu.Unlock()

	users, err := load[entity.User](ctx, &uc.base, repository.UsersKey)
	if err != nil {
		return nil, err
	}
	var citizen *entity.User
	for i := range users {
		if users[i].Role == entity.RoleCitizen && strings.Contains(users[i].Email, "citizen") {
			citizen = &users[i]
			break
		}
	}
	if citizen == nil {
		return nil, errors.Unauthorized("User record not found for this role.", nil)
	}

	return uc.issue(citizen)
}

// Login signs in a non-citizen role by email. An unknown (email, role) pair
// creates the account on the spot.
func (uc *AuthUseCase) Login(ctx context.Context, email string, role entity.Role) (result *AuthResult, err error) {
	defer func() { uc.recorder.ObserveLogin(string(role), err) }()

	if !role.Valid() {
		return nil, errors.BadRequest("Unknown role", nil)
	}
	if role == entity.RoleCitizen {
		return nil, errors.BadRequest("Citizens sign in with their mobile number", nil)
	}
	email = strings.TrimSpace(email)
	if !strings.Contains(email, "@") {
		return nil, errors.BadRequest("Please enter a valid email address", nil)
	}
	if err := uc.throttle(email); err != nil {
		return nil, err
	}

	users, err := load[entity.User](ctx, &uc.base, repository.UsersKey)
	if err != nil {
		return nil, err
	}
	if u, ok := workflow.FindByEmailAndRole(users, email, role); ok {
		return uc.issue(&u)
	}

	newID := uc.newID()
	user, err := mutate(ctx, &uc.base, "login", repository.UsersKey,
		func(current []entity.User) ([]entity.User, entity.User, error) {
			if u, ok := workflow.FindByEmailAndRole(current, email, role); ok {
				return current, u, nil
			}
			u := entity.User{
				ID:    newID,
				Name:  strings.SplitN(email, "@", 2)[0],
				Email: email,
				Role:  role,
			}
			logger.Info("Creating %s account for %s", role, email)
			return workflow.RegisterUser(current, u), u, nil
		})
	if err != nil {
		return nil, err
	}

	return uc.issue(&user)
}

func (uc *AuthUseCase) issue(user *entity.User) (*AuthResult, error) {
	now := uc.now()
	session := Session{
		ID:        uc.newID(),
		UserID:    user.ID,
		Role:      user.Role,
		ExpiresAt: now.Add(uc.tokenTTL),
	}

	claims := Claims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        session.ID,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(uc.secret)
	if err != nil {
		return nil, errors.Internal("Failed to sign session token", err)
	}

	uc.mu.Lock()
	uc.pruneLocked(now)
	uc.sessions[session.ID] = session
	uc.mu.Unlock()

	return &AuthResult{
		User:       user,
		Token:      token,
		ExpiresAt:  session.ExpiresAt,
		RedirectTo: DashboardPath(user.Role),
	}, nil
}

// Authenticate resolves a token to a live session.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*Session, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithoutClaimsValidation())

	var claims Claims
	if _, err := parser.ParseWithClaims(token, &claims, func(*jwt.Token) (interface{}, error) {
		return uc.secret, nil
	}); err != nil {
		return nil, errors.Unauthorized("Invalid token", err)
	}

	now := uc.now()
	if !claims.VerifyExpiresAt(now, true) {
		uc.revoke(claims.ID)
		return nil, errors.Unauthorized("Session expired", nil)
	}

	uc.mu.Lock()
	session, ok := uc.sessions[claims.ID]
	uc.mu.Unlock()
	if !ok {
		return nil, errors.Unauthorized("Session has ended", nil)
	}
	return &session, nil
}

// Logout ends the session; the caller is Anonymous afterwards.
func (uc *AuthUseCase) Logout(ctx context.Context, sessionID string) error {
	uc.revoke(sessionID)
	return nil
}

// pruneLocked drops expired sessions and challenges. uc.mu must be held.
func (uc *AuthUseCase) pruneLocked(now time.Time) int {
	removed := 0
	for id, session := range uc.sessions {
		if !now.Before(session.ExpiresAt) {
			delete(uc.sessions, id)
			removed++
		}
	}
	for phone, expiry := range uc.challenges {
		if now.After(expiry) {
			delete(uc.challenges, phone)
		}
	}
	return removed
}

// Cleanup removes sessions whose token has expired without being presented again.
func (uc *AuthUseCase) Cleanup() int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.pruneLocked(uc.now())
}

// StartCleanupRoutine runs Cleanup on every tick until ctx is cancelled.
func (uc *AuthUseCase) StartCleanupRoutine(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := uc.Cleanup(); n > 0 {
					logger.Debug("Pruned %d expired sessions", n)
				}
			case <-ctx.Done():
				return
			}
		}
	}()
}

// ActiveSessions reports how many sessions are held in memory.
func (uc *AuthUseCase) ActiveSessions() int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return len(uc.sessions)
}

func (uc *AuthUseCase) revoke(sessionID string) {
	uc.mu.Lock()
	delete(uc.sessions, sessionID)
	uc.mu.Unlock()
}

// CurrentUser loads the user record behind a session.
func (uc *AuthUseCase) CurrentUser(ctx context.Context, session *Session) (*entity.User, error) {
	if session == nil {
		return nil, errors.Unauthorized("Authentication required", nil)
	}
	users, err := load[entity.User](ctx, &uc.base, repository.UsersKey)
	if err != nil {
		return nil, err
	}
	u, ok := workflow.FindUser(users, session.UserID)
	if !ok {
		return nil, errors.Unauthorized("User record not found for this role.", nil)
	}
	return &u, nil
}

// Authorize checks a session's role against the roles allowed for an operation.
func Authorize(session *Session, allowed ...entity.Role) error {
	if session == nil {
		return errors.Unauthorized("Authentication required", nil)
	}
	if len(allowed) == 0 {
		return nil
	}
	for _, r := range allowed {
		if session.Role == r {
			return nil
		}
	}
	return errors.Forbidden("Your role cannot perform this action", nil)
}

// DashboardAllowed reports whether the session may open the dashboard for slug.
func DashboardAllowed(session *Session, slug string) bool {
	return session != nil && session.Role.Slug() == slug
}

func DashboardPath(role entity.Role) string {
	return "/v1/dashboard/" + role.Slug()
}
