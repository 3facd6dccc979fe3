package subscription_service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"push-fanout-service/models"
)

// Store fetches the full subscription list from the backing store.
// The cache treats the store as read-only.
type Store interface {
	FetchAll(ctx context.Context) ([]models.SubscriptionRow, error)
}

// SQLStore reads subscriptions from the relational store, joining the
// notifications table with the owning account for name and room list.
type SQLStore struct {
	db *gorm.DB
}

// NewSQLStore creates a store backed by the given gorm handle.
func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) FetchAll(ctx context.Context) ([]models.SubscriptionRow, error) {
	var rows []models.SubscriptionRow

	err := s.db.WithContext(ctx).
		Table("notifications").
		Select("notifications.device_token, notifications.userid, notifications.regex, accounts.name, accounts.rooms").
		Joins("INNER JOIN accounts ON accounts.id = notifications.userid").
		Where("notifications.state = ?", models.STATE_EXIST).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("fetch subscriptions: %w", err)
	}

	return rows, nil
}
