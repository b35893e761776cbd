package repo

import (
	"errors"

	"gorm.io/gorm"
)

var (
	ErrNotFound   = errors.New("record not found")
	ErrUserExists = errors.New("user already exists")
	ErrBookExists = errors.New("book already exists")
)

// GormRepo is the persistence layer for users and books. Email and
// ISBN uniqueness is enforced by the database constraints; the
// FirstOrCreate calls only make the common case cheap.
type GormRepo struct {
	DB *gorm.DB
}
