// Package schemas contains the request and response shapes of the service
package schemas

import (
	"time"

	"github.com/aviary-chat/accounts/models"
	"gorm.io/datatypes"
)

// Res is a general purpose response schema
type Res struct {
	Status string `json:"status"`
}

// RegisterAccount is the payload accepted when a new account is registered.
// The numeric field widths match the column widths, so a negative or
// overflowing value is rejected while the payload is decoded.
type RegisterAccount struct {
	ID            *models.Uint64 `json:"id"`
	Username      string         `json:"username" validate:"required,max=255"`
	Discriminator string         `json:"discriminator" validate:"required,max=255"`
	Avatar        *string        `json:"avatar" validate:"omitempty,max=255"`
	Banner        *string        `json:"banner" validate:"omitempty,max=255"`
	AccentColor   *int32         `json:"accent_color"`
	ThemeColors   *string        `json:"theme_colors"`
	Pronouns      *string        `json:"pronouns" validate:"omitempty,max=255"`
	Phone         *string        `json:"phone" validate:"omitempty,max=255"`

	Desktop         bool  `json:"desktop"`
	Mobile          bool  `json:"mobile"`
	Bot             bool  `json:"bot"`
	System          bool  `json:"system"`
	NSFWAllowed     bool  `json:"nsfw_allowed"`
	MFAEnabled      bool  `json:"mfa_enabled"`
	WebauthnEnabled bool  `json:"webauthn_enabled"`
	Verified        bool  `json:"verified"`
	Disabled        bool  `json:"disabled"`
	Premium         *bool `json:"premium" validate:"required"`

	PremiumType  uint16     `json:"premium_type"`
	Bio          string     `json:"bio" validate:"max=255"`
	CreatedAt    *time.Time `json:"created_at"`
	PremiumSince *time.Time `json:"premium_since"`
	Email        *string    `json:"email" validate:"omitempty,max=255"`

	Flags             models.Uint64 `json:"flags"`
	PublicFlags       uint32        `json:"public_flags"`
	PurchasedFlags    int32         `json:"purchased_flags"`
	PremiumUsageFlags int32         `json:"premium_usage_flags"`
	Rights            models.Uint64 `json:"rights"`

	Data             datatypes.JSON `json:"data" validate:"required"`
	Fingerprints     string         `json:"fingerprints"`
	ExtendedSettings datatypes.JSON `json:"extended_settings" validate:"required"`
	RelevantEvents   datatypes.JSON `json:"relevant_events"`

	SettingsIndex *models.Uint64 `json:"settings_index"`
}

// Model is a function that builds the account model from the registration payload
func (p *RegisterAccount) Model() *models.Account {
	account := models.Account{
		Username:          p.Username,
		Discriminator:     p.Discriminator,
		Avatar:            p.Avatar,
		Banner:            p.Banner,
		AccentColor:       p.AccentColor,
		ThemeColors:       p.ThemeColors,
		Pronouns:          p.Pronouns,
		Phone:             p.Phone,
		Desktop:           p.Desktop,
		Mobile:            p.Mobile,
		Bot:               p.Bot,
		System:            p.System,
		NSFWAllowed:       p.NSFWAllowed,
		MFAEnabled:        p.MFAEnabled,
		WebauthnEnabled:   p.WebauthnEnabled,
		Verified:          p.Verified,
		Disabled:          p.Disabled,
		PremiumType:       p.PremiumType,
		Bio:               p.Bio,
		PremiumSince:      p.PremiumSince,
		Email:             p.Email,
		Flags:             p.Flags,
		PublicFlags:       p.PublicFlags,
		PurchasedFlags:    p.PurchasedFlags,
		PremiumUsageFlags: p.PremiumUsageFlags,
		Rights:            p.Rights,
		Data:              p.Data,
		Fingerprints:      p.Fingerprints,
		ExtendedSettings:  p.ExtendedSettings,
		RelevantEvents:    p.RelevantEvents,
		SettingsIndex:     p.SettingsIndex,
	}

	if p.ID != nil {
		account.ID = *p.ID
	}
	if p.Premium != nil {
		account.Premium = *p.Premium
	}
	if p.CreatedAt != nil {
		account.CreatedAt = *p.CreatedAt
	}

	return &account
}

// Account is a schema that contains the client facing account details
type Account struct {
	ID            models.Uint64  `json:"id"`
	Username      string         `json:"username"`
	Discriminator string         `json:"discriminator"`
	Avatar        *string        `json:"avatar"`
	Banner        *string        `json:"banner"`
	AccentColor   *int32         `json:"accent_color"`
	ThemeColors   *string        `json:"theme_colors"`
	Pronouns      *string        `json:"pronouns"`
	Bio           string         `json:"bio"`
	Bot           bool           `json:"bot"`
	System        bool           `json:"system"`
	MFAEnabled    bool           `json:"mfa_enabled"`
	Verified      bool           `json:"verified"`
	Disabled      bool           `json:"disabled"`
	Deleted       bool           `json:"deleted"`
	Premium       bool           `json:"premium"`
	PremiumType   uint16         `json:"premium_type"`
	PremiumSince  *time.Time     `json:"premium_since"`
	Email         *string        `json:"email"`
	Phone         *string        `json:"phone"`
	CreatedAt     time.Time      `json:"created_at"`
	PublicFlags   uint32         `json:"public_flags"`
	Flags         models.Uint64  `json:"flags"`
	SettingsIndex *models.Uint64 `json:"settings_index"`
}

// FilterAccount is a function that is used to filter the account model to a
// client facing format, leaving out the server side columns
func FilterAccount(account models.Account) Account {
	return Account{
		ID:            account.ID,
		Username:      account.Username,
		Discriminator: account.Discriminator,
		Avatar:        account.Avatar,
		Banner:        account.Banner,
		AccentColor:   account.AccentColor,
		ThemeColors:   account.ThemeColors,
		Pronouns:      account.Pronouns,
		Bio:           account.Bio,
		Bot:           account.Bot,
		System:        account.System,
		MFAEnabled:    account.MFAEnabled,
		Verified:      account.Verified,
		Disabled:      account.Disabled,
		Deleted:       account.Deleted,
		Premium:       account.Premium,
		PremiumType:   account.PremiumType,
		PremiumSince:  account.PremiumSince,
		Email:         account.Email,
		Phone:         account.Phone,
		CreatedAt:     account.CreatedAt,
		PublicFlags:   account.PublicFlags,
		Flags:         account.Flags,
		SettingsIndex: account.SettingsIndex,
	}
}
