package usecase

import (
	"context"

	"resqnet/internal/domain/entity"
	"resqnet/internal/domain/repository"
	"resqnet/internal/domain/workflow"
	"resqnet/pkg/errors"
)

type UserUseCase struct {
	base
}

func NewUserUseCase(store repository.EntityStore, opts ...Option) *UserUseCase {
	return &UserUseCase{base: newBase(store, opts)}
}

func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*entity.User, error) {
	users, err := load[entity.User](ctx, &uc.base, repository.UsersKey)
	if err != nil {
		return nil, err
	}
	u, ok := workflow.FindUser(users, id)
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return &u, nil
}

// List returns all users, or only those with the given role (the contact list).
func (uc *UserUseCase) List(ctx context.Context, role entity.Role) ([]entity.User, error) {
	users, err := load[entity.User](ctx, &uc.base, repository.UsersKey)
	if err != nil {
		return nil, err
	}
	if role == "" {
		return users, nil
	}
	return workflow.UsersByRole(users, role), nil
}

// SetPresence toggles a volunteer's availability.
func (uc *UserUseCase) SetPresence(ctx context.Context, userID string, online bool) (*entity.User, error) {
	u, err := mutate(ctx, &uc.base, "set_presence", repository.UsersKey,
		func(current []entity.User) ([]entity.User, entity.User, error) {
			next, err := workflow.SetPresence(current, userID, online)
			if err != nil {
				return nil, entity.User{}, err
			}
			u, _ := workflow.FindUser(next, userID)
			return next, u, nil
		})
	if err != nil {
		return nil, err
	}
	return &u, nil
}
