package smocks

import (
	"context"
	"net/url"

	"github.com/fsdevblog/smartlink/internal/models"

	"github.com/stretchr/testify/mock"
)

type LinkMock struct {
	mock.Mock
}

func (l *LinkMock) Create(_ context.Context, rawURL string, baseURL *url.URL, userID *uint) (*models.Mapping, string, error) {
	args := l.Called(rawURL, baseURL, userID)
	if args.Get(0) == nil {
		return nil, "", args.Error(2) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).(*models.Mapping), args.String(1), args.Error(2) //nolint:wrapcheck,errcheck
}

func (l *LinkMock) GetByShortCode(_ context.Context, shortCode string) (*models.Mapping, error) {
	args := l.Called(shortCode)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).(*models.Mapping), args.Error(1) //nolint:wrapcheck,errcheck
}

func (l *LinkMock) GetAllByUser(_ context.Context, userID uint) ([]models.Mapping, error) {
	args := l.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).([]models.Mapping), args.Error(1) //nolint:wrapcheck,errcheck
}

func (l *LinkMock) Delete(_ context.Context, shortCode string, userID uint) error {
	args := l.Called(shortCode, userID)
	return args.Error(0) //nolint:wrapcheck,errcheck
}
