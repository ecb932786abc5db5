// Package controllers contains the http controllers of the account store
package controllers

import (
	"context"
	"strconv"
	"time"

	"github.com/VinukaThejana/go-utils/logger"
	"github.com/aviary-chat/accounts/config"
	"github.com/aviary-chat/accounts/connect"
	"github.com/aviary-chat/accounts/errors"
	"github.com/aviary-chat/accounts/models"
	"github.com/aviary-chat/accounts/schemas"
	"github.com/aviary-chat/accounts/services"
	"github.com/aviary-chat/accounts/validate"
	"github.com/bwmarrin/snowflake"
	"github.com/gofiber/fiber/v2"
)

const storeTimeout = 5 * time.Second

// Account is a struct that contains account controllers
type Account struct {
	Conn *connect.Connector
	Env  *config.Env
	Node *snowflake.Node
}

// Register is a function that is used to register a new account
func (a *Account) Register(c *fiber.Ctx) error {
	var payload schemas.RegisterAccount
	if err := c.BodyParser(&payload); err != nil {
		if v := errors.FromDecode(err); v != nil {
			return errors.UnprocessableField(c, v)
		}

		logger.Error(err)
		return errors.BadRequest(c)
	}

	if err := validate.Struct(&payload); err != nil {
		return errors.Respond(c, err)
	}

	account := payload.Model()
	if payload.ID == nil {
		account.ID = models.Uint64(a.Node.Generate().Int64())
	}

	accountS := services.Account{
		Conn: a.Conn,
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), storeTimeout)
	defer cancel()

	created, err := accountS.Create(ctx, account)
	if err != nil {
		logger.Error(err)
		return errors.Respond(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"status":  errors.Okay,
		"account": schemas.FilterAccount(*created),
	})
}

// Get is a function that is used to fetch an account by its id
func (a *Account) Get(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return errors.Respond(c, err)
	}

	accountS := services.Account{
		Conn: a.Conn,
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), storeTimeout)
	defer cancel()

	account, err := accountS.GetByID(ctx, id)
	if err != nil {
		return errors.Respond(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  errors.Okay,
		"account": schemas.FilterAccount(*account),
	})
}

// Edit is a function that is used to apply a partial update to an account
func (a *Account) Edit(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return errors.Respond(c, err)
	}

	var patch schemas.AccountPatch
	if err := c.BodyParser(&patch); err != nil {
		if v := errors.FromDecode(err); v != nil {
			return errors.UnprocessableField(c, v)
		}

		logger.Error(err)
		return errors.BadRequest(c)
	}

	if err := validate.Struct(&patch); err != nil {
		return errors.Respond(c, err)
	}

	accountS := services.Account{
		Conn: a.Conn,
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), storeTimeout)
	defer cancel()

	account, err := accountS.Update(ctx, id, &patch)
	if err != nil {
		logger.Error(err)
		return errors.Respond(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  errors.Okay,
		"account": schemas.FilterAccount(*account),
	})
}

// LinkSettings is a function that is used to link an account to a settings record
func (a *Account) LinkSettings(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return errors.Respond(c, err)
	}

	var payload struct {
		SettingsIndex *models.Uint64 `json:"settings_index" validate:"required"`
	}
	if err := c.BodyParser(&payload); err != nil {
		if v := errors.FromDecode(err); v != nil {
			return errors.UnprocessableField(c, v)
		}

		logger.Error(err)
		return errors.BadRequest(c)
	}

	if err := validate.Struct(&payload); err != nil {
		return errors.Respond(c, err)
	}

	accountS := services.Account{
		Conn: a.Conn,
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), storeTimeout)
	defer cancel()

	account, err := accountS.SetSettingsLink(ctx, id, payload.SettingsIndex)
	if err != nil {
		logger.Error(err)
		return errors.Respond(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  errors.Okay,
		"account": schemas.FilterAccount(*account),
	})
}

// UnlinkSettings is a function that is used to unlink an account from its settings record
func (a *Account) UnlinkSettings(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return errors.Respond(c, err)
	}

	accountS := services.Account{
		Conn: a.Conn,
	}

	ctx, cancel := context.WithTimeout(c.UserContext(), storeTimeout)
	defer cancel()

	account, err := accountS.SetSettingsLink(ctx, id, nil)
	if err != nil {
		logger.Error(err)
		return errors.Respond(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":  errors.Okay,
		"account": schemas.FilterAccount(*account),
	})
}

func parseID(c *fiber.Ctx) (models.Uint64, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil {
		return 0, errors.NewValidation("id", "must be an unsigned 64 bit integer")
	}

	return models.Uint64(id), nil
}
