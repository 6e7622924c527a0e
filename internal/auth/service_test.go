package auth_test

import (
	"context"
	"testing"
	"time"

	"home-budget/internal/auth"
	"home-budget/internal/database"
	"home-budget/internal/models"
	"home-budget/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type AuthServiceSuite struct {
	suite.Suite
	users  *repository.UserRepository
	tokens *auth.TokenIssuer
	svc    *auth.Service
	user   *models.User
}

func (s *AuthServiceSuite) SetupTest() {
	db, err := database.InitMemory()
	require.NoError(s.T(), err)
	require.NoError(s.T(), database.AutoMigrate(db))

	s.users = repository.NewUserRepository(db)
	s.tokens = auth.NewTokenIssuer("test-secret", "home-budget", time.Hour)
	s.svc = auth.NewService(s.users, s.tokens)

	hash, err := auth.HashPassword("correct-horse", 4)
	require.NoError(s.T(), err)
	s.user = &models.User{
		Username:            "testuser",
		Email:               "test@example.com",
		PasswordHash:        hash,
		IsActive:            true,
		StartingBalanceCent: models.DefaultStartingBalanceCent,
	}
	require.NoError(s.T(), s.users.Create(context.Background(), s.user))
}

func (s *AuthServiceSuite) TestAuthenticate_Success() {
	user, ok := s.svc.Authenticate(context.Background(), "test@example.com", "correct-horse")
	require.True(s.T(), ok)
	assert.Equal(s.T(), s.user.ID, user.ID)
}

func (s *AuthServiceSuite) TestAuthenticate_WrongPassword() {
	user, ok := s.svc.Authenticate(context.Background(), "test@example.com", "battery-staple")
	assert.False(s.T(), ok)
	assert.Nil(s.T(), user)
}

// The email is stored lowercased, so login must accept whatever casing the
// caller typed.
func (s *AuthServiceSuite) TestAuthenticate_MixedCaseEmail() {
	user, ok := s.svc.Authenticate(context.Background(), " Test@Example.COM ", "correct-horse")
	require.True(s.T(), ok)
	assert.Equal(s.T(), s.user.ID, user.ID)
}

func (s *AuthServiceSuite) TestAuthenticate_UnknownEmail() {
	user, ok := s.svc.Authenticate(context.Background(), "nobody@example.com", "correct-horse")
	assert.False(s.T(), ok)
	assert.Nil(s.T(), user)
}

func (s *AuthServiceSuite) TestResolveCurrentUser_Success() {
	token, err := s.tokens.Issue(s.user.Email)
	require.NoError(s.T(), err)

	user, err := s.svc.ResolveCurrentUser(context.Background(), token)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), s.user.ID, user.ID)
}

// Malformed, expired and orphaned tokens must be indistinguishable to the
// caller: all three resolve to the same error.
func (s *AuthServiceSuite) TestResolveCurrentUser_FailuresLookAlike() {
	ctx := context.Background()

	// malformed
	_, err := s.svc.ResolveCurrentUser(ctx, "not.a.token")
	assert.ErrorIs(s.T(), err, auth.ErrUnauthorized)

	// expired
	expired, issueErr := s.tokens.IssueWithTTL(s.user.Email, time.Nanosecond)
	require.NoError(s.T(), issueErr)
	time.Sleep(10 * time.Millisecond)
	_, err = s.svc.ResolveCurrentUser(ctx, expired)
	assert.ErrorIs(s.T(), err, auth.ErrUnauthorized)

	// valid token, but the user is gone
	orphaned, issueErr := s.tokens.Issue(s.user.Email)
	require.NoError(s.T(), issueErr)
	deleted, delErr := s.users.Delete(ctx, s.user.ID)
	require.NoError(s.T(), delErr)
	require.True(s.T(), deleted)
	_, err = s.svc.ResolveCurrentUser(ctx, orphaned)
	assert.ErrorIs(s.T(), err, auth.ErrUnauthorized)
}

func (s *AuthServiceSuite) TestRequireActive() {
	user, err := s.svc.RequireActive(s.user)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), s.user, user)

	_, err = s.svc.RequireActive(nil)
	assert.ErrorIs(s.T(), err, auth.ErrUnauthorized)
}

func TestAuthServiceSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceSuite))
}
