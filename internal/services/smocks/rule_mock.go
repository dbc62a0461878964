package smocks

import (
	"context"

	"github.com/fsdevblog/smartlink/internal/models"
	"github.com/fsdevblog/smartlink/internal/services"

	"github.com/stretchr/testify/mock"
)

type RuleMock struct {
	mock.Mock
}

func (r *RuleMock) Create(_ context.Context, userID uint, params services.CreateRuleParams) (*models.Rule, error) {
	args := r.Called(userID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).(*models.Rule), args.Error(1) //nolint:wrapcheck,errcheck
}

func (r *RuleMock) List(_ context.Context, userID, mappingID uint) ([]models.Rule, error) {
	args := r.Called(userID, mappingID)
	if args.Get(0) == nil {
		return nil, args.Error(1) //nolint:wrapcheck,errcheck
	}
	return args.Get(0).([]models.Rule), args.Error(1) //nolint:wrapcheck,errcheck
}

func (r *RuleMock) Delete(_ context.Context, userID, ruleID uint) error {
	args := r.Called(userID, ruleID)
	return args.Error(0) //nolint:wrapcheck,errcheck
}
