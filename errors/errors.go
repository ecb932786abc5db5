// Package errors contians storage errors, http errors and other custom errors
package errors

import (
	"context"
	"encoding/json"
	errs "errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

//revive:disable

var (
	ErrInternalServerError = fmt.Errorf("internal_server_error")
	ErrBadRequest          = fmt.Errorf("bad_request")
	ErrValidation          = fmt.Errorf("validation_failed")
	ErrConflict            = fmt.Errorf("conflict")
	ErrReference           = fmt.Errorf("unknown_settings_index")
	ErrNotFound            = fmt.Errorf("account_not_found")
	ErrStoreUnavailable    = fmt.Errorf("store_unavailable")
	Okay                   = "okay"
)

//revive:enable

// Validation reports the field that violated its declared range, width or
// required-ness rule.
type Validation struct {
	Field  string
	Reason string
}

func (e *Validation) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrValidation.Error(), e.Field, e.Reason)
}

// Unwrap makes the error match ErrValidation with errors.Is
func (e *Validation) Unwrap() error {
	return ErrValidation
}

// NewValidation is a function that creates a validation error for the given field
func NewValidation(field, reason string) *Validation {
	return &Validation{Field: field, Reason: reason}
}

// FromDecode is a function that converts a JSON decoding failure into a
// validation error naming the offending field; a negative or overflowing
// number aimed at an unsigned column surfaces here
func FromDecode(err error) *Validation {
	var typeErr *json.UnmarshalTypeError
	if errs.As(err, &typeErr) && typeErr.Field != "" {
		return NewValidation(typeErr.Field, fmt.Sprintf("cannot be decoded as %s", typeErr.Type.String()))
	}
	return nil
}

type res struct {
	Status string `json:"status"`
}

func InternalServerErr(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(res{
		Status: ErrInternalServerError.Error(),
	})
}

func BadRequest(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(res{
		Status: ErrBadRequest.Error(),
	})
}

func NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(res{
		Status: ErrNotFound.Error(),
	})
}

func Conflict(c *fiber.Ctx) error {
	return c.Status(fiber.StatusConflict).JSON(res{
		Status: ErrConflict.Error(),
	})
}

func UnknownSettingsIndex(c *fiber.Ctx) error {
	return c.Status(fiber.StatusConflict).JSON(res{
		Status: ErrReference.Error(),
	})
}

func StoreUnavailable(c *fiber.Ctx) error {
	return c.Status(fiber.StatusServiceUnavailable).JSON(res{
		Status: ErrStoreUnavailable.Error(),
	})
}

// UnprocessableField reports the offending field along with the status
func UnprocessableField(c *fiber.Ctx, v *Validation) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"status": ErrValidation.Error(),
		"field":  v.Field,
		"reason": v.Reason,
	})
}

func Done(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(res{
		Status: Okay,
	})
}

// Respond is a function that maps a store error to the matching http response
func Respond(c *fiber.Ctx, err error) error {
	var v *Validation
	switch {
	case errs.As(err, &v):
		return UnprocessableField(c, v)
	case errs.Is(err, ErrValidation):
		return BadRequest(c)
	case errs.Is(err, ErrNotFound):
		return NotFound(c)
	case errs.Is(err, ErrConflict):
		return Conflict(c)
	case errs.Is(err, ErrReference):
		return UnknownSettingsIndex(c)
	case errs.Is(err, ErrStoreUnavailable):
		return StoreUnavailable(c)
	default:
		return InternalServerErr(c)
	}
}

// CheckDBError is a struc that is used to identify the database errors
type CheckDBError struct{}

// DuplicateKey is a function that is used to find wether the the returned database error
// is due to a duplicate key entry (A unique key constraint)
func (CheckDBError) DuplicateKey(err error) bool {
	var pgErr *pgconn.PgError
	if errs.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return true
		}
	}

	if errs.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	// sqlite driver used in tests
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// NotFound is a function that is used to find wether the returned database error
// is due to a missing record
func (CheckDBError) NotFound(err error) bool {
	return errs.Is(err, gorm.ErrRecordNotFound)
}

// Unavailable is a function that is used to find wether the returned database error
// is due to the caller supplied timeout running out before the storage responded
func (CheckDBError) Unavailable(err error) bool {
	return errs.Is(err, context.DeadlineExceeded) || errs.Is(err, context.Canceled)
}
