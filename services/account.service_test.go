package services

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/aviary-chat/accounts/connect"
	"github.com/aviary-chat/accounts/errors"
	"github.com/aviary-chat/accounts/models"
	"github.com/aviary-chat/accounts/schemas"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/suite"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// AccountServiceSuite exercises the account store against an in memory
// sqlite database, one fresh database per test
type AccountServiceSuite struct {
	suite.Suite
	conn     *connect.Connector
	accounts Account
	settings Settings
}

func (s *AccountServiceSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	s.Require().NoError(err)

	// an in memory sqlite database lives and dies with its connection
	sqlDB, err := db.DB()
	s.Require().NoError(err)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetMaxOpenConns(1)

	s.Require().NoError(db.AutoMigrate(&models.Account{}, &models.UserSettings{}))

	s.conn = &connect.Connector{DB: db}
	s.accounts = Account{Conn: s.conn}
	s.settings = Settings{Conn: s.conn}
}

func (s *AccountServiceSuite) seedSettings(index models.Uint64) {
	s.Require().NoError(s.conn.DB.Create(&models.UserSettings{
		Index:    index,
		Settings: datatypes.JSON(`{}`),
	}).Error)
}

func newAccount(id models.Uint64) *models.Account {
	return &models.Account{
		ID:               id,
		Username:         "wumpus",
		Discriminator:    "0001",
		Data:             datatypes.JSON(`{}`),
		ExtendedSettings: datatypes.JSON(`{}`),
	}
}

func (s *AccountServiceSuite) TestCreateAndGetRoundTrip() {
	avatar := "a94b01c3"
	candidate := newAccount(1)
	candidate.Avatar = &avatar
	candidate.Flags = 1 << 33
	candidate.PremiumType = 2
	candidate.Data = datatypes.JSON(`{"hash":"x"}`)

	created, err := s.accounts.Create(context.Background(), candidate)
	s.Require().NoError(err)
	s.Equal(models.Uint64(1), created.ID)

	fetched, err := s.accounts.GetByID(context.Background(), 1)
	s.Require().NoError(err)
	s.Equal("wumpus", fetched.Username)
	s.Equal("0001", fetched.Discriminator)
	s.Require().NotNil(fetched.Avatar)
	s.Equal(avatar, *fetched.Avatar)
	s.Equal(models.Uint64(1<<33), fetched.Flags)
	s.Equal(uint16(2), fetched.PremiumType)
	s.JSONEq(`{"hash":"x"}`, string(fetched.Data))
	s.False(fetched.CreatedAt.IsZero())
}

func (s *AccountServiceSuite) TestCreateAppliesDefaults() {
	_, err := s.accounts.Create(context.Background(), newAccount(1))
	s.Require().NoError(err)

	fetched, err := s.accounts.GetByID(context.Background(), 1)
	s.Require().NoError(err)
	s.Equal("", fetched.Bio)
	s.Equal("", fetched.Fingerprints)
	s.JSONEq(`[]`, string(fetched.RelevantEvents))
	s.False(fetched.Desktop)
	s.False(fetched.Mobile)
	s.False(fetched.Bot)
	s.False(fetched.System)
	s.False(fetched.NSFWAllowed)
	s.False(fetched.Premium)
	s.Nil(fetched.SettingsIndex)
}

func (s *AccountServiceSuite) TestCreateRequiresDataDocument() {
	candidate := newAccount(1)
	candidate.Data = nil

	_, err := s.accounts.Create(context.Background(), candidate)
	s.ErrorIs(err, errors.ErrValidation)

	var v *errors.Validation
	s.Require().ErrorAs(err, &v)
	s.Equal("data", v.Field)
}

func (s *AccountServiceSuite) TestCreateRequiresExtendedSettingsDocument() {
	candidate := newAccount(1)
	candidate.ExtendedSettings = nil

	_, err := s.accounts.Create(context.Background(), candidate)

	var v *errors.Validation
	s.Require().ErrorAs(err, &v)
	s.Equal("extended_settings", v.Field)
}

func (s *AccountServiceSuite) TestCreateZeroIDAllowed() {
	_, err := s.accounts.Create(context.Background(), newAccount(0))
	s.Require().NoError(err)

	fetched, err := s.accounts.GetByID(context.Background(), 0)
	s.Require().NoError(err)
	s.Equal(models.Uint64(0), fetched.ID)
}

func (s *AccountServiceSuite) TestCreateMaxIDRoundTrip() {
	_, err := s.accounts.Create(context.Background(), newAccount(math.MaxUint64))
	s.Require().NoError(err)

	fetched, err := s.accounts.GetByID(context.Background(), math.MaxUint64)
	s.Require().NoError(err)
	s.Equal(models.Uint64(math.MaxUint64), fetched.ID)
	s.Equal("wumpus", fetched.Username)
}

func (s *AccountServiceSuite) TestHighBitColumnsRoundTrip() {
	candidate := newAccount(1 << 63)
	candidate.Flags = 1<<63 | 1
	candidate.Rights = math.MaxUint64

	_, err := s.accounts.Create(context.Background(), candidate)
	s.Require().NoError(err)

	fetched, err := s.accounts.GetByID(context.Background(), 1<<63)
	s.Require().NoError(err)
	s.Equal(models.Uint64(1<<63|1), fetched.Flags)
	s.Equal(models.Uint64(math.MaxUint64), fetched.Rights)
}

func (s *AccountServiceSuite) TestCreateDuplicateIDConflict() {
	_, err := s.accounts.Create(context.Background(), newAccount(1))
	s.Require().NoError(err)

	second := newAccount(1)
	second.Username = "impostor"
	_, err = s.accounts.Create(context.Background(), second)
	s.ErrorIs(err, errors.ErrConflict)

	// the first record must be untouched
	fetched, err := s.accounts.GetByID(context.Background(), 1)
	s.Require().NoError(err)
	s.Equal("wumpus", fetched.Username)
}

func (s *AccountServiceSuite) TestCreateDuplicateSettingsIndexConflict() {
	s.seedSettings(7)

	index := models.Uint64(7)
	first := newAccount(1)
	first.SettingsIndex = &index
	_, err := s.accounts.Create(context.Background(), first)
	s.Require().NoError(err)

	second := newAccount(2)
	second.SettingsIndex = &index
	_, err = s.accounts.Create(context.Background(), second)
	s.ErrorIs(err, errors.ErrConflict)

	_, err = s.accounts.GetByID(context.Background(), 2)
	s.ErrorIs(err, errors.ErrNotFound)
}

func (s *AccountServiceSuite) TestCreateUnknownSettingsIndex() {
	index := models.Uint64(404)
	candidate := newAccount(1)
	candidate.SettingsIndex = &index

	_, err := s.accounts.Create(context.Background(), candidate)
	s.ErrorIs(err, errors.ErrReference)

	_, err = s.accounts.GetByID(context.Background(), 1)
	s.ErrorIs(err, errors.ErrNotFound)
}

func (s *AccountServiceSuite) TestCreateNamesInvalidField() {
	candidate := newAccount(1)
	candidate.Username = strings.Repeat("a", 256)

	_, err := s.accounts.Create(context.Background(), candidate)
	s.ErrorIs(err, errors.ErrValidation)

	var v *errors.Validation
	s.Require().ErrorAs(err, &v)
	s.Equal("username", v.Field)
}

func (s *AccountServiceSuite) TestCreateMissingRequiredField() {
	candidate := newAccount(1)
	candidate.Discriminator = ""

	_, err := s.accounts.Create(context.Background(), candidate)

	var v *errors.Validation
	s.Require().ErrorAs(err, &v)
	s.Equal("discriminator", v.Field)
}

func (s *AccountServiceSuite) TestGetByIDMissing() {
	_, err := s.accounts.GetByID(context.Background(), 99)
	s.ErrorIs(err, errors.ErrNotFound)
}

func (s *AccountServiceSuite) TestUpdatePartial() {
	_, err := s.accounts.Create(context.Background(), newAccount(1))
	s.Require().NoError(err)

	bio := "chat enjoyer"
	flags := models.Uint64(1 << 40)
	updated, err := s.accounts.Update(context.Background(), 1, &schemas.AccountPatch{
		Bio:   &bio,
		Flags: &flags,
	})
	s.Require().NoError(err)
	s.Equal(bio, updated.Bio)
	s.Equal(flags, updated.Flags)

	// untouched fields keep their values
	fetched, err := s.accounts.GetByID(context.Background(), 1)
	s.Require().NoError(err)
	s.Equal("wumpus", fetched.Username)
	s.Equal(bio, fetched.Bio)
	s.Equal(flags, fetched.Flags)
}

func (s *AccountServiceSuite) TestUpdateHighBitFlags() {
	_, err := s.accounts.Create(context.Background(), newAccount(1))
	s.Require().NoError(err)

	flags := models.Uint64(math.MaxUint64)
	rights := models.Uint64(1 << 63)
	updated, err := s.accounts.Update(context.Background(), 1, &schemas.AccountPatch{
		Flags:  &flags,
		Rights: &rights,
	})
	s.Require().NoError(err)
	s.Equal(flags, updated.Flags)
	s.Equal(rights, updated.Rights)

	fetched, err := s.accounts.GetByID(context.Background(), 1)
	s.Require().NoError(err)
	s.Equal(flags, fetched.Flags)
	s.Equal(rights, fetched.Rights)
}

func (s *AccountServiceSuite) TestUpdateRejectsIDChange() {
	_, err := s.accounts.Create(context.Background(), newAccount(1))
	s.Require().NoError(err)

	other := models.Uint64(2)
	_, err = s.accounts.Update(context.Background(), 1, &schemas.AccountPatch{ID: &other})

	var v *errors.Validation
	s.Require().ErrorAs(err, &v)
	s.Equal("id", v.Field)

	// echoing the current id back is not a change
	same := models.Uint64(1)
	bio := "unchanged id"
	_, err = s.accounts.Update(context.Background(), 1, &schemas.AccountPatch{ID: &same, Bio: &bio})
	s.NoError(err)
}

func (s *AccountServiceSuite) TestUpdateMissingAccount() {
	bio := "nobody"
	_, err := s.accounts.Update(context.Background(), 42, &schemas.AccountPatch{Bio: &bio})
	s.ErrorIs(err, errors.ErrNotFound)
}

func (s *AccountServiceSuite) TestUpdateValidatesChangedField() {
	_, err := s.accounts.Create(context.Background(), newAccount(1))
	s.Require().NoError(err)

	long := strings.Repeat("b", 256)
	_, err = s.accounts.Update(context.Background(), 1, &schemas.AccountPatch{Bio: &long})

	var v *errors.Validation
	s.Require().ErrorAs(err, &v)
	s.Equal("bio", v.Field)
}

func (s *AccountServiceSuite) TestUpdateSettingsIndexChecksLink() {
	_, err := s.accounts.Create(context.Background(), newAccount(1))
	s.Require().NoError(err)

	index := models.Uint64(404)
	_, err = s.accounts.Update(context.Background(), 1, &schemas.AccountPatch{SettingsIndex: &index})
	s.ErrorIs(err, errors.ErrReference)

	s.seedSettings(7)
	index = 7
	updated, err := s.accounts.Update(context.Background(), 1, &schemas.AccountPatch{SettingsIndex: &index})
	s.Require().NoError(err)
	s.Require().NotNil(updated.SettingsIndex)
	s.Equal(models.Uint64(7), *updated.SettingsIndex)
}

func (s *AccountServiceSuite) TestSettingsLinkLifecycle() {
	s.seedSettings(7)
	s.seedSettings(9)

	_, err := s.accounts.Create(context.Background(), newAccount(1))
	s.Require().NoError(err)

	index := models.Uint64(7)
	linked, err := s.accounts.SetSettingsLink(context.Background(), 1, &index)
	s.Require().NoError(err)
	s.Require().NotNil(linked.SettingsIndex)
	s.Equal(models.Uint64(7), *linked.SettingsIndex)

	unlinked, err := s.accounts.SetSettingsLink(context.Background(), 1, nil)
	s.Require().NoError(err)
	s.Nil(unlinked.SettingsIndex)

	index = 9
	relinked, err := s.accounts.SetSettingsLink(context.Background(), 1, &index)
	s.Require().NoError(err)
	s.Require().NotNil(relinked.SettingsIndex)
	s.Equal(models.Uint64(9), *relinked.SettingsIndex)
}

func (s *AccountServiceSuite) TestSettingsLinkHighIndex() {
	s.seedSettings(math.MaxUint64)

	_, err := s.accounts.Create(context.Background(), newAccount(1))
	s.Require().NoError(err)

	index := models.Uint64(math.MaxUint64)
	linked, err := s.accounts.SetSettingsLink(context.Background(), 1, &index)
	s.Require().NoError(err)
	s.Require().NotNil(linked.SettingsIndex)
	s.Equal(models.Uint64(math.MaxUint64), *linked.SettingsIndex)

	fetched, err := s.accounts.GetByID(context.Background(), 1)
	s.Require().NoError(err)
	s.Require().NotNil(fetched.SettingsIndex)
	s.Equal(models.Uint64(math.MaxUint64), *fetched.SettingsIndex)
}

func (s *AccountServiceSuite) TestSettingsLinkCollision() {
	s.seedSettings(7)

	_, err := s.accounts.Create(context.Background(), newAccount(1))
	s.Require().NoError(err)
	_, err = s.accounts.Create(context.Background(), newAccount(2))
	s.Require().NoError(err)

	index := models.Uint64(7)
	_, err = s.accounts.SetSettingsLink(context.Background(), 1, &index)
	s.Require().NoError(err)

	_, err = s.accounts.SetSettingsLink(context.Background(), 2, &index)
	s.ErrorIs(err, errors.ErrConflict)
}

func (s *AccountServiceSuite) TestSettingsLinkUnknownIndex() {
	_, err := s.accounts.Create(context.Background(), newAccount(1))
	s.Require().NoError(err)

	index := models.Uint64(404)
	_, err = s.accounts.SetSettingsLink(context.Background(), 1, &index)
	s.ErrorIs(err, errors.ErrReference)
}

func (s *AccountServiceSuite) TestSettingsLinkMissingAccount() {
	s.seedSettings(7)

	index := models.Uint64(7)
	_, err := s.accounts.SetSettingsLink(context.Background(), 42, &index)
	s.ErrorIs(err, errors.ErrNotFound)
}

func (s *AccountServiceSuite) TestSoftDelete() {
	_, err := s.accounts.Create(context.Background(), newAccount(1))
	s.Require().NoError(err)

	deleted := true
	_, err = s.accounts.Update(context.Background(), 1, &schemas.AccountPatch{Deleted: &deleted})
	s.Require().NoError(err)

	// deletion is logical, the record stays readable
	fetched, err := s.accounts.GetByID(context.Background(), 1)
	s.Require().NoError(err)
	s.True(fetched.Deleted)
}

func (s *AccountServiceSuite) TestCanceledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.accounts.Create(ctx, newAccount(1))
	s.ErrorIs(err, errors.ErrStoreUnavailable)
}

func (s *AccountServiceSuite) TestSettingsCollaborator() {
	s.seedSettings(7)

	exists, err := s.settings.Exists(context.Background(), 7)
	s.Require().NoError(err)
	s.True(exists)

	exists, err = s.settings.Exists(context.Background(), 404)
	s.Require().NoError(err)
	s.False(exists)

	unique, err := s.settings.IndexIsUnique(context.Background(), 7)
	s.Require().NoError(err)
	s.True(unique)

	account := newAccount(1)
	index := models.Uint64(7)
	account.SettingsIndex = &index
	_, err = s.accounts.Create(context.Background(), account)
	s.Require().NoError(err)

	unique, err = s.settings.IndexIsUnique(context.Background(), 7)
	s.Require().NoError(err)
	s.False(unique)
}

func TestAccountServiceSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceSuite))
}
