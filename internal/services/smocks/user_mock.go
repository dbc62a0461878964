package smocks

import (
	"context"

	"github.com/fsdevblog/smartlink/internal/models"

	"github.com/stretchr/testify/mock"
)

type UserMock struct {
	mock.Mock
}

func (u *UserMock) Register(_ context.Context, email, password string) (*models.User, error) {
	args := u.Called(email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).(*models.User), args.Error(1) //nolint:wrapcheck,errcheck
}

func (u *UserMock) Login(_ context.Context, email, password string) (*models.User, error) {
	args := u.Called(email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).(*models.User), args.Error(1) //nolint:wrapcheck,errcheck
}
