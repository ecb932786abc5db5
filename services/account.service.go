// Package services contains the storage services of the account store
package services

import (
	"context"
	errs "errors"

	"github.com/aviary-chat/accounts/connect"
	"github.com/aviary-chat/accounts/errors"
	"github.com/aviary-chat/accounts/models"
	"github.com/aviary-chat/accounts/schemas"
	"github.com/aviary-chat/accounts/validate"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var check errors.CheckDBError

// Account is a struct that contains the account store operations
type Account struct {
	Conn *connect.Connector
}

// Create is a function that validates and persists a new account record.
// The write and the settings link checks share one transaction, so a failed
// create leaves nothing behind and two creates racing on the same id or the
// same settings index resolve to one winner.
func (s *Account) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	applyDefaults(account)
	if err := validate.Struct(account); err != nil {
		return nil, err
	}

	err := s.Conn.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if account.SettingsIndex != nil {
			if err := checkSettingsLink(tx, account.ID, *account.SettingsIndex); err != nil {
				return err
			}
		}

		return tx.Create(account).Error
	})
	if err != nil {
		return nil, storeErr(err)
	}

	return account, nil
}

// GetByID is a function that fetches the account with the given id
func (s *Account) GetByID(ctx context.Context, id models.Uint64) (*models.Account, error) {
	var account models.Account
	err := s.Conn.DB.WithContext(ctx).First(&account, "id = ?", id).Error
	if err != nil {
		return nil, storeErr(err)
	}

	return &account, nil
}

// Update is a function that applies a partial set of field assignments to
// the account with the given id. Only the supplied columns are written and
// re-validated; the id itself is immutable.
func (s *Account) Update(ctx context.Context, id models.Uint64, patch *schemas.AccountPatch) (*models.Account, error) {
	var account models.Account
	err := s.Conn.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&account, "id = ?", id).Error; err != nil {
			return err
		}

		columns, err := patch.Apply(&account)
		if err != nil {
			return err
		}
		if len(columns) == 0 {
			return nil
		}

		if err := validate.Struct(&account); err != nil {
			return err
		}

		if patch.TouchesSettingsLink() {
			if err := checkSettingsLink(tx, id, *patch.SettingsIndex); err != nil {
				return err
			}
		}

		return tx.Model(&models.Account{ID: id}).Select(columns).Updates(&account).Error
	})
	if err != nil {
		return nil, storeErr(err)
	}

	return &account, nil
}

// SetSettingsLink is a function that links the account to the settings
// record with the given index, or unlinks it when the index is nil. The
// link is the one relational invariant of the model, so it gets its own
// entry point
func (s *Account) SetSettingsLink(ctx context.Context, id models.Uint64, index *models.Uint64) (*models.Account, error) {
	var account models.Account
	err := s.Conn.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&account, "id = ?", id).Error; err != nil {
			return err
		}

		var value interface{}
		if index != nil {
			if err := checkSettingsLink(tx, id, *index); err != nil {
				return err
			}
			value = *index
		}

		account.SettingsIndex = index
		return tx.Model(&models.Account{ID: id}).Update("settings_index", value).Error
	})
	if err != nil {
		return nil, storeErr(err)
	}

	return &account, nil
}

// checkSettingsLink enforces the two halves of the settings link invariant
// inside the callers transaction: the settings record must exist and no
// other account may already hold the index.
func checkSettingsLink(tx *gorm.DB, selfID, index models.Uint64) error {
	var count int64
	err := tx.Model(&models.UserSettings{}).
		Where(map[string]interface{}{"index": index}).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count == 0 {
		return errors.ErrReference
	}

	err = tx.Model(&models.Account{}).
		Where("settings_index = ? AND id <> ?", index, selfID).
		Count(&count).Error
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.ErrConflict
	}

	return nil
}

// applyDefaults fills the columns the schema declares defaults for. The
// data and extended_settings documents carry no default; an absent value is
// caught by validation instead.
func applyDefaults(account *models.Account) {
	if len(account.RelevantEvents) == 0 {
		account.RelevantEvents = datatypes.JSON("[]")
	}
}

// storeErr maps a raw database error onto the store error taxonomy
func storeErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errs.Is(err, errors.ErrValidation),
		errs.Is(err, errors.ErrConflict),
		errs.Is(err, errors.ErrReference),
		errs.Is(err, errors.ErrNotFound),
		errs.Is(err, errors.ErrStoreUnavailable):
		return err
	case check.DuplicateKey(err):
		return errors.ErrConflict
	case check.NotFound(err):
		return errors.ErrNotFound
	case check.Unavailable(err):
		return errors.ErrStoreUnavailable
	default:
		return err
	}
}
