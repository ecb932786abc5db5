package schemas

import (
	"time"

	"github.com/aviary-chat/accounts/errors"
	"github.com/aviary-chat/accounts/models"
	"gorm.io/datatypes"
)

// AccountPatch is a partial set of field assignments for an existing
// account. A nil field is left untouched. The account id is immutable;
// carrying a different id in the patch is a validation error, while the
// current id is tolerated so clients may echo the record back.
type AccountPatch struct {
	ID            *models.Uint64 `json:"id"`
	Username      *string        `json:"username" validate:"omitempty,min=1,max=255"`
	Discriminator *string        `json:"discriminator" validate:"omitempty,min=1,max=255"`
	Avatar        *string        `json:"avatar" validate:"omitempty,max=255"`
	Banner        *string        `json:"banner" validate:"omitempty,max=255"`
	AccentColor   *int32         `json:"accent_color"`
	ThemeColors   *string        `json:"theme_colors"`
	Pronouns      *string        `json:"pronouns" validate:"omitempty,max=255"`
	Phone         *string        `json:"phone" validate:"omitempty,max=255"`

	Desktop         *bool `json:"desktop"`
	Mobile          *bool `json:"mobile"`
	Bot             *bool `json:"bot"`
	System          *bool `json:"system"`
	NSFWAllowed     *bool `json:"nsfw_allowed"`
	MFAEnabled      *bool `json:"mfa_enabled"`
	WebauthnEnabled *bool `json:"webauthn_enabled"`
	Verified        *bool `json:"verified"`
	Disabled        *bool `json:"disabled"`
	Deleted         *bool `json:"deleted"`
	Premium         *bool `json:"premium"`

	PremiumType *uint16 `json:"premium_type"`
	Bio         *string `json:"bio" validate:"omitempty,max=255"`

	TOTPSecret     *string `json:"totp_secret" validate:"omitempty,max=255"`
	TOTPLastTicket *string `json:"totp_last_ticket" validate:"omitempty,max=255"`

	PremiumSince *time.Time `json:"premium_since"`
	Email        *string    `json:"email" validate:"omitempty,max=255"`

	Flags             *models.Uint64 `json:"flags"`
	PublicFlags       *uint32        `json:"public_flags"`
	PurchasedFlags    *int32         `json:"purchased_flags"`
	PremiumUsageFlags *int32         `json:"premium_usage_flags"`
	Rights            *models.Uint64 `json:"rights"`

	Data             datatypes.JSON `json:"data"`
	Fingerprints     *string        `json:"fingerprints"`
	ExtendedSettings datatypes.JSON `json:"extended_settings"`
	RelevantEvents   datatypes.JSON `json:"relevant_events"`

	SettingsIndex *models.Uint64 `json:"settings_index"`
}

// Apply is a function that writes the supplied assignments onto the account
// and reports the touched column names. The caller must reject an id change
// before persisting; Apply only reports it.
func (p *AccountPatch) Apply(account *models.Account) ([]string, error) {
	if p.ID != nil && *p.ID != account.ID {
		return nil, errors.NewValidation("id", "is immutable")
	}

	columns := make([]string, 0)
	touch := func(column string) {
		columns = append(columns, column)
	}

	if p.Username != nil {
		account.Username = *p.Username
		touch("username")
	}
	if p.Discriminator != nil {
		account.Discriminator = *p.Discriminator
		touch("discriminator")
	}
	if p.Avatar != nil {
		account.Avatar = p.Avatar
		touch("avatar")
	}
	if p.Banner != nil {
		account.Banner = p.Banner
		touch("banner")
	}
	if p.AccentColor != nil {
		account.AccentColor = p.AccentColor
		touch("accent_color")
	}
	if p.ThemeColors != nil {
		account.ThemeColors = p.ThemeColors
		touch("theme_colors")
	}
	if p.Pronouns != nil {
		account.Pronouns = p.Pronouns
		touch("pronouns")
	}
	if p.Phone != nil {
		account.Phone = p.Phone
		touch("phone")
	}
	if p.Desktop != nil {
		account.Desktop = *p.Desktop
		touch("desktop")
	}
	if p.Mobile != nil {
		account.Mobile = *p.Mobile
		touch("mobile")
	}
	if p.Bot != nil {
		account.Bot = *p.Bot
		touch("bot")
	}
	if p.System != nil {
		account.System = *p.System
		touch("system")
	}
	if p.NSFWAllowed != nil {
		account.NSFWAllowed = *p.NSFWAllowed
		touch("nsfw_allowed")
	}
	if p.MFAEnabled != nil {
		account.MFAEnabled = *p.MFAEnabled
		touch("mfa_enabled")
	}
	if p.WebauthnEnabled != nil {
		account.WebauthnEnabled = *p.WebauthnEnabled
		touch("webauthn_enabled")
	}
	if p.Verified != nil {
		account.Verified = *p.Verified
		touch("verified")
	}
	if p.Disabled != nil {
		account.Disabled = *p.Disabled
		touch("disabled")
	}
	if p.Deleted != nil {
		account.Deleted = *p.Deleted
		touch("deleted")
	}
	if p.Premium != nil {
		account.Premium = *p.Premium
		touch("premium")
	}
	if p.PremiumType != nil {
		account.PremiumType = *p.PremiumType
		touch("premium_type")
	}
	if p.Bio != nil {
		account.Bio = *p.Bio
		touch("bio")
	}
	if p.TOTPSecret != nil {
		account.TOTPSecret = p.TOTPSecret
		touch("totp_secret")
	}
	if p.TOTPLastTicket != nil {
		account.TOTPLastTicket = p.TOTPLastTicket
		touch("totp_last_ticket")
	}
	if p.PremiumSince != nil {
		account.PremiumSince = p.PremiumSince
		touch("premium_since")
	}
	if p.Email != nil {
		account.Email = p.Email
		touch("email")
	}
	if p.Flags != nil {
		account.Flags = *p.Flags
		touch("flags")
	}
	if p.PublicFlags != nil {
		account.PublicFlags = *p.PublicFlags
		touch("public_flags")
	}
	if p.PurchasedFlags != nil {
		account.PurchasedFlags = *p.PurchasedFlags
		touch("purchased_flags")
	}
	if p.PremiumUsageFlags != nil {
		account.PremiumUsageFlags = *p.PremiumUsageFlags
		touch("premium_usage_flags")
	}
	if p.Rights != nil {
		account.Rights = *p.Rights
		touch("rights")
	}
	if p.Data != nil {
		account.Data = p.Data
		touch("data")
	}
	if p.Fingerprints != nil {
		account.Fingerprints = *p.Fingerprints
		touch("fingerprints")
	}
	if p.ExtendedSettings != nil {
		account.ExtendedSettings = p.ExtendedSettings
		touch("extended_settings")
	}
	if p.RelevantEvents != nil {
		account.RelevantEvents = p.RelevantEvents
		touch("relevant_events")
	}
	if p.SettingsIndex != nil {
		account.SettingsIndex = p.SettingsIndex
		touch("settings_index")
	}

	return columns, nil
}

// TouchesSettingsLink reports wether the patch reassigns the settings link
func (p *AccountPatch) TouchesSettingsLink() bool {
	return p.SettingsIndex != nil
}
