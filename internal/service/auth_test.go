package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platefeed/backend/internal/testhelpers"
	"github.com/platefeed/backend/internal/types"
)

func TestRegisterAndLogin(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewAuthService(db, "test-secret")
	ctx := context.Background()

	req := types.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	}
	token, user, err := svc.Register(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)

	loginToken, err := svc.Login(ctx, "alice@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.NotEmpty(t, loginToken)

	_, err = svc.Login(ctx, "alice@example.com", "wrong")
	assert.ErrorIs(t, err, types.ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, types.ErrInvalidCredentials)
}

func TestRegisterDuplicate(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewAuthService(db, "test-secret")
	ctx := context.Background()

	req := types.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cret-pass",
	}
	_, _, err := svc.Register(ctx, req)
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, types.ErrAlreadyExists)

	// Same email under a different username still collides.
	req.Username = "alice2"
	_, _, err = svc.Register(ctx, req)
	assert.ErrorIs(t, err, types.ErrAlreadyExists)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewAuthService(db, "test-secret")

	_, err := svc.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, types.ErrInvalidToken)

	other := NewAuthService(db, "other-secret")
	token, _, err := other.Register(context.Background(), types.RegisterRequest{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, types.ErrInvalidToken)
}

func TestGetUser(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewAuthService(db, "test-secret")
	user := testhelpers.CreateUser(t, db, "alice")

	got, err := svc.GetUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Username, got.Username)

	_, err = svc.GetUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, types.ErrUserNotFound)
}
