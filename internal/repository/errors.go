// Package repository holds the GORM-backed stores for every persisted aggregate.
package repository

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicate      = errors.New("duplicate record")
	ErrUnknownAmenity = errors.New("unknown amenity")
	ErrUnknownAgent   = errors.New("unknown agent")
)

// translate maps GORM sentinel errors onto the package's own.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	}
	return err
}

// translateRef is translate for writes with a single outside reference: a
// violated foreign key means the referenced row is gone, reported as missing.
func translateRef(err, missing error) error {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return missing
	}
	return translate(err)
}
