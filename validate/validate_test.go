package validate

import (
	"strings"
	"testing"

	"github.com/aviary-chat/accounts/errors"
	"github.com/aviary-chat/accounts/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestStructReportsColumnName(t *testing.T) {
	phone := strings.Repeat("9", 256)
	account := models.Account{
		ID:            1,
		Username:      "wumpus",
		Discriminator: "0001",
		Phone:         &phone,
	}

	err := Struct(&account)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrValidation)

	var v *errors.Validation
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "phone", v.Field)
}

func TestStructAcceptsValidAccount(t *testing.T) {
	account := models.Account{
		ID:               1,
		Username:         strings.Repeat("a", 255),
		Discriminator:    "0001",
		Data:             datatypes.JSON(`{}`),
		ExtendedSettings: datatypes.JSON(`{}`),
	}

	assert.NoError(t, Struct(&account))
}

func TestStructRequiresDataDocument(t *testing.T) {
	account := models.Account{
		ID:               1,
		Username:         "wumpus",
		Discriminator:    "0001",
		ExtendedSettings: datatypes.JSON(`{}`),
	}

	err := Struct(&account)

	var v *errors.Validation
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "data", v.Field)
}

func TestStructRequiresUsername(t *testing.T) {
	account := models.Account{
		ID:            1,
		Discriminator: "0001",
	}

	err := Struct(&account)

	var v *errors.Validation
	require.ErrorAs(t, err, &v)
	assert.Equal(t, "username", v.Field)
}
