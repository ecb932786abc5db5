package services

import (
	"context"

	"github.com/aviary-chat/accounts/connect"
	"github.com/aviary-chat/accounts/models"
)

// Settings is a struct that exposes the user settings collaborator surface
// consumed when a settings link is validated
type Settings struct {
	Conn *connect.Connector
}

// Exists is a function that checks wether a settings record with the given
// index is present
func (s *Settings) Exists(ctx context.Context, index models.Uint64) (bool, error) {
	var count int64
	err := s.Conn.DB.WithContext(ctx).
		Model(&models.UserSettings{}).
		Where(map[string]interface{}{"index": index}).
		Count(&count).Error
	if err != nil {
		return false, storeErr(err)
	}

	return count > 0, nil
}

// IndexIsUnique is a function that checks wether no account currently holds
// the given settings index
func (s *Settings) IndexIsUnique(ctx context.Context, index models.Uint64) (bool, error) {
	var count int64
	err := s.Conn.DB.WithContext(ctx).
		Model(&models.Account{}).
		Where("settings_index = ?", index).
		Count(&count).Error
	if err != nil {
		return false, storeErr(err)
	}

	return count == 0, nil
}
