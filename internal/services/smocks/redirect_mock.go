package smocks

import (
	"context"

	"github.com/fsdevblog/smartlink/internal/clientinfo"

	"github.com/stretchr/testify/mock"
)

type RedirectMock struct {
	mock.Mock
}

func (r *RedirectMock) HandleRedirect(_ context.Context, shortCode string, client clientinfo.ClientInfo) (string, error) {
	args := r.Called(shortCode, client)
	return args.String(0), args.Error(1) //nolint:wrapcheck,errcheck
}
