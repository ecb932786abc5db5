// Package models contains the relational database models
package models

import "gorm.io/datatypes"

// UserSettings is the settings record an account may link to through its
// settings_index column. The settings document itself is owned by the
// settings service; only the index key matters to the account store.
type UserSettings struct {
	Index    Uint64         `gorm:"column:index;primaryKey;autoIncrement:false" json:"index"`
	Settings datatypes.JSON `json:"settings"`
}
