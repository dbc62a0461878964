package services

import (
	"context"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// PingService проверяет доступность базы данных.
type PingService struct {
	db *gorm.DB
}

func NewPingService(db *gorm.DB) *PingService {
	return &PingService{db: db}
}

// CheckConnection пингует соединение с базой.
func (p *PingService) CheckConnection(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return errors.Wrap(err, "getting sql db handle")
	}
	if pingErr := sqlDB.PingContext(ctx); pingErr != nil {
		return errors.Wrap(pingErr, "pinging database")
	}
	return nil
}
