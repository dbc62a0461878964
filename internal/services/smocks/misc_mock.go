package smocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type PingMock struct {
	mock.Mock
}

func (p *PingMock) CheckConnection(_ context.Context) error {
	args := p.Called()
	return args.Error(0) //nolint:wrapcheck,errcheck
}

type CacheStatsMock struct {
	mock.Mock
}

func (c *CacheStatsMock) Stats(_ context.Context) map[string]any {
	args := c.Called()
	return args.Get(0).(map[string]any) //nolint:errcheck
}
