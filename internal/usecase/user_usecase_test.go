package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resqnet/internal/domain/entity"
	"resqnet/internal/domain/repository"
	"resqnet/internal/domain/workflow"
	"resqnet/pkg/errors"
)

func TestUserUseCase_GetAndList(t *testing.T) {
	ctx := context.Background()
	uc := NewUserUseCase(seededStore(t), testOptions("u-")...)

	u, err := uc.GetByID(ctx, "4")
	require.NoError(t, err)
	assert.Equal(t, entity.RoleGovernment, u.Role)

	_, err = uc.GetByID(ctx, "99")
	assert.True(t, errors.Is(err, "NOT_FOUND"))

	all, err := uc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 7)

	ngos, err := uc.List(ctx, entity.RoleNGO)
	require.NoError(t, err)
	assert.Equal(t, []string{"3", "7"}, ids(ngos, userID))
}

func TestUserUseCase_SetPresence(t *testing.T) {
	ctx := context.Background()
	store := seededStore(t)
	uc := NewUserUseCase(store, testOptions("u-")...)

	u, err := uc.SetPresence(ctx, "5", true)
	require.NoError(t, err)
	assert.True(t, u.IsOnline)

	users, _, err := repository.Get[entity.User](ctx, store, repository.UsersKey)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "5", "6"}, ids(workflow.OnlineVolunteers(users), userID))

	_, err = uc.SetPresence(ctx, "99", true)
	assert.True(t, errors.Is(err, "NOT_FOUND"))
}
