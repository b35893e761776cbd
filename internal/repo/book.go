package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/bookworm/book-inventory/internal/models"
)

func (r *GormRepo) ListBooks(ctx context.Context) ([]models.Book, error) {
	var books []models.Book
	if err := r.DB.WithContext(ctx).Order("created_at DESC").Find(&books).Error; err != nil {
		return nil, err
	}
	return books, nil
}

func (r *GormRepo) FindBookByID(ctx context.Context, id string) (*models.Book, error) {
	var book models.Book
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&book).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

func (r *GormRepo) FindBookByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	var book models.Book
	if err := r.DB.WithContext(ctx).Where("isbn = ?", isbn).First(&book).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &book, nil
}

func (r *GormRepo) CreateBook(ctx context.Context, b *models.Book) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	tx := r.DB.WithContext(ctx).Where("isbn = ?", b.ISBN).FirstOrCreate(b)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrDuplicatedKey) {
			return ErrBookExists
		}
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrBookExists
	}
	return nil
}

func (r *GormRepo) UpdateBook(ctx context.Context, b *models.Book) error {
	var existing models.Book
	if err := r.DB.WithContext(ctx).Where("id = ?", b.ID).First(&existing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return r.DB.WithContext(ctx).Save(b).Error
}

func (r *GormRepo) DeleteBook(ctx context.Context, id string) error {
	tx := r.DB.WithContext(ctx).Delete(&models.Book{}, "id = ?", id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
