package database

import (
	"errors"

	"gorm.io/gorm"
)

// ErrInvalidLimit is returned by Recent when limit is out of range.
var ErrInvalidLimit = errors.New("limit must be between 1 and 100")

// MaxRecent caps how many uploads Recent returns.
const MaxRecent = 100

// Repository provides access to the upload history.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a Repository backed by the given database.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// SaveUpload inserts an upload record and fills in its ID and CreatedAt.
func (r *Repository) SaveUpload(u *Upload) error {
	return r.db.Create(u).Error
}

// Recent returns up to limit uploads, newest first.
func (r *Repository) Recent(limit int) ([]Upload, error) {
	if limit < 1 || limit > MaxRecent {
		return nil, ErrInvalidLimit
	}
	var uploads []Upload
	if err := r.db.Order("id desc").Limit(limit).Find(&uploads).Error; err != nil {
		return nil, err
	}
	return uploads, nil
}

// FindByID returns an upload by ID, or nil if not found.
func (r *Repository) FindByID(id uint) (*Upload, error) {
	var u Upload
	if err := r.db.First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}
