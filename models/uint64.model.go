package models

import (
	"database/sql/driver"
	"fmt"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Uint64 is an unsigned 64 bit column value. database/sql rejects plain
// uint64 parameters once the high bit is set, so the value travels to and
// from the database as a decimal string instead.
type Uint64 uint64

// Value implements driver.Valuer
func (u Uint64) Value() (driver.Value, error) {
	return strconv.FormatUint(uint64(u), 10), nil
}

// Scan implements sql.Scanner
func (u *Uint64) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*u = 0
		return nil
	case int64:
		if v < 0 {
			return fmt.Errorf("cannot scan negative value %d into an unsigned 64 bit column", v)
		}
		*u = Uint64(v)
		return nil
	case uint64:
		*u = Uint64(v)
		return nil
	case []byte:
		return u.parse(string(v))
	case string:
		return u.parse(v)
	default:
		return fmt.Errorf("cannot scan %T into an unsigned 64 bit column", src)
	}
}

func (u *Uint64) parse(s string) error {
	parsed, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("cannot scan %q into an unsigned 64 bit column: %w", s, err)
	}

	*u = Uint64(parsed)
	return nil
}

// GormDataType implements schema.GormDataTypeInterface
func (Uint64) GormDataType() string {
	return "uint64"
}

// GormDBDataType implements migrator.GormDBDataTypeInterface. Postgres holds
// the full unsigned range in numeric(20,0); everything else gets a text
// column so the decimal encoding is stored verbatim instead of being coerced
// to a lossy float.
func (Uint64) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "numeric(20,0)"
	}

	return "text"
}
