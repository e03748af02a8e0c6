package auth

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sejacapricho/printshop-backend/pkg/auth/session"
	"github.com/sejacapricho/printshop-backend/pkg/config"
	"github.com/sejacapricho/printshop-backend/pkg/db/models"
	pkgerrors "github.com/sejacapricho/printshop-backend/pkg/errors"
	"github.com/sejacapricho/printshop-backend/pkg/security"
)

type stubUserRepo struct {
	byUsername map[string]models.User
	createErr  error
}

func (s *stubUserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	if s.byUsername == nil {
		s.byUsername = map[string]models.User{}
	}
	s.byUsername[user.Username] = *user
	return user, nil
}

func (s *stubUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	user, ok := s.byUsername[username]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &user, nil
}

type stubSessions struct {
	generated map[string]string
	revoked   []string
	rotateErr error
}

func (s *stubSessions) Generate(ctx context.Context, accessID string) (string, error) {
	if s.generated == nil {
		s.generated = map[string]string{}
	}
	token := "refresh-" + accessID
	s.generated[accessID] = token
	return token, nil
}

func (s *stubSessions) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	if s.rotateErr != nil {
		return "", "", s.rotateErr
	}
	stored, ok := s.generated[oldAccessID]
	if !ok || stored != provided {
		return "", "", session.ErrInvalidRefreshToken
	}
	delete(s.generated, oldAccessID)
	newID := session.NewAccessID()
	token, _ := s.Generate(ctx, newID)
	return newID, token, nil
}

func (s *stubSessions) Revoke(ctx context.Context, accessID string) error {
	s.revoked = append(s.revoked, accessID)
	delete(s.generated, accessID)
	return nil
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    32768,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:                 "test-secret",
		Issuer:                 "printshop-test",
		ExpirationMinutes:      15,
		RefreshTokenTTLMinutes: 60,
	}
}

func newTestService(t *testing.T, repo *stubUserRepo, sessions *stubSessions) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:       repo,
		SessionManager: sessions,
		JWTConfig:      testJWTConfig(),
		PasswordConfig: testPasswordConfig(),
	})
	require.NoError(t, err)
	return svc
}

func seedUser(t *testing.T, repo *stubUserRepo, username, password string, active bool) models.User {
	t.Helper()
	hash, err := security.HashPassword(password, testPasswordConfig())
	require.NoError(t, err)
	user := models.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		IsActive:     active,
	}
	if repo.byUsername == nil {
		repo.byUsername = map[string]models.User{}
	}
	repo.byUsername[username] = user
	return user
}

func TestLoginSuccess(t *testing.T) {
	repo := &stubUserRepo{}
	sessions := &stubSessions{}
	seedUser(t, repo, "atendente", "senha-secreta", true)
	svc := newTestService(t, repo, sessions)

	resp, err := svc.Login(context.Background(), LoginRequest{Username: "atendente", Password: "senha-secreta"})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "atendente", resp.User.Username)
	assert.Len(t, sessions.generated, 1)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := &stubUserRepo{}
	seedUser(t, repo, "atendente", "senha-secreta", true)
	svc := newTestService(t, repo, &stubSessions{})

	_, err := svc.Login(context.Background(), LoginRequest{Username: "atendente", Password: "errada"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}

func TestLoginUnknownUserSameError(t *testing.T) {
	svc := newTestService(t, &stubUserRepo{}, &stubSessions{})

	_, err := svc.Login(context.Background(), LoginRequest{Username: "ghost", Password: "whatever"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
	assert.Equal(t, invalidCredentialsMessage, pkgerrors.As(err).Message())
}

func TestLoginInactiveUserRejected(t *testing.T) {
	repo := &stubUserRepo{}
	seedUser(t, repo, "atendente", "senha-secreta", false)
	svc := newTestService(t, repo, &stubSessions{})

	_, err := svc.Login(context.Background(), LoginRequest{Username: "atendente", Password: "senha-secreta"})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}

func TestRefreshRotatesSession(t *testing.T) {
	repo := &stubUserRepo{}
	sessions := &stubSessions{}
	seedUser(t, repo, "atendente", "senha-secreta", true)
	svc := newTestService(t, repo, sessions)

	login, err := svc.Login(context.Background(), LoginRequest{Username: "atendente", Password: "senha-secreta"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	// The old pair is dead after rotation.
	_, err = svc.Refresh(context.Background(), RefreshRequest{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeUnauthorized, pkgerrors.As(err).Code())
}

func TestRegisterHashesPassword(t *testing.T) {
	repo := &stubUserRepo{}
	svc := newTestService(t, repo, &stubSessions{})

	profile, err := svc.Register(context.Background(), RegisterRequest{
		Username: "nova",
		Email:    "Nova@Example.com",
		Password: "senha-muito-longa",
	})
	require.NoError(t, err)
	assert.Equal(t, "nova@example.com", profile.Email)

	stored := repo.byUsername["nova"]
	assert.NotEqual(t, "senha-muito-longa", stored.PasswordHash)
	ok, err := security.VerifyPassword("senha-muito-longa", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}
