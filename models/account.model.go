package models

import (
	"time"

	"gorm.io/datatypes"
)

// Account represents a platform account in the relational database.
//
// The 64 bit unsigned columns (id, flags, rights, settings_index) use the
// Uint64 column type so the full unsigned range survives the driver; the Go
// field types carry the width and sign constraints on the application side.
// The flag columns are opaque bit sets owned by an external enumeration; the
// store never interprets or rejects individual bits.
type Account struct {
	ID            Uint64  `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Username      string  `gorm:"type:varchar(255);not null;index:idx_accounts_tag" json:"username" validate:"required,max=255"`
	Discriminator string  `gorm:"type:varchar(255);not null;index:idx_accounts_tag" json:"discriminator" validate:"required,max=255"`
	Avatar        *string `gorm:"type:varchar(255)" json:"avatar" validate:"omitempty,max=255"`
	Banner        *string `gorm:"type:varchar(255)" json:"banner" validate:"omitempty,max=255"`
	AccentColor   *int32  `json:"accent_color"`
	ThemeColors   *string `gorm:"type:text" json:"theme_colors"`
	Pronouns      *string `gorm:"type:varchar(255)" json:"pronouns" validate:"omitempty,max=255"`
	Phone         *string `gorm:"type:varchar(255)" json:"phone" validate:"omitempty,max=255"`

	Desktop         bool `gorm:"not null;default:false" json:"desktop"`
	Mobile          bool `gorm:"not null;default:false" json:"mobile"`
	Bot             bool `gorm:"not null;default:false" json:"bot"`
	System          bool `gorm:"not null;default:false" json:"system"`
	NSFWAllowed     bool `gorm:"column:nsfw_allowed;not null;default:false" json:"nsfw_allowed"`
	MFAEnabled      bool `gorm:"column:mfa_enabled;not null;default:false" json:"mfa_enabled"`
	WebauthnEnabled bool `gorm:"not null;default:false" json:"webauthn_enabled"`
	Verified        bool `gorm:"not null;default:false" json:"verified"`
	Disabled        bool `gorm:"not null;default:false" json:"disabled"`
	Deleted         bool `gorm:"not null;default:false" json:"deleted"`
	Premium         bool `gorm:"not null" json:"premium"`

	PremiumType uint16 `gorm:"not null" json:"premium_type"`
	Bio         string `gorm:"type:varchar(255);not null;default:''" json:"bio" validate:"max=255"`

	TOTPSecret     *string `gorm:"column:totp_secret;type:varchar(255)" json:"totp_secret" validate:"omitempty,max=255"`
	TOTPLastTicket *string `gorm:"column:totp_last_ticket;type:varchar(255)" json:"totp_last_ticket" validate:"omitempty,max=255"`

	CreatedAt    time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	PremiumSince *time.Time `json:"premium_since"`
	Email        *string    `gorm:"type:varchar(255)" json:"email" validate:"omitempty,max=255"`

	Flags             Uint64 `gorm:"not null" json:"flags"`
	PublicFlags       uint32 `gorm:"not null" json:"public_flags"`
	PurchasedFlags    int32  `gorm:"not null" json:"purchased_flags"`
	PremiumUsageFlags int32  `gorm:"not null" json:"premium_usage_flags"`
	Rights            Uint64 `gorm:"not null" json:"rights"`

	Data             datatypes.JSON `gorm:"not null" json:"data" validate:"required"`
	Fingerprints     string         `gorm:"type:text;not null" json:"fingerprints"`
	ExtendedSettings datatypes.JSON `gorm:"not null" json:"extended_settings" validate:"required"`
	RelevantEvents   datatypes.JSON `gorm:"not null" json:"relevant_events"`

	SettingsIndex *Uint64 `gorm:"uniqueIndex" json:"settings_index"`
}
