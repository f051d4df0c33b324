package database

import (
	"biblioteca/pkg/models"

	"gorm.io/gorm"
)

// BookFilter narrows SearchBooks. Zero-value fields are ignored.
type BookFilter struct {
	AuthorName string
	Year       *int
}

func GetBook(tx *gorm.DB, id uint) (*models.Book, error) {
	var book models.Book
	if err := tx.First(&book, id).Error; err != nil {
		return nil, ClassifyError(err)
	}
	return &book, nil
}

func ListBooks(tx *gorm.DB) ([]models.Book, error) {
	books := []models.Book{}
	if err := tx.Order("id").Find(&books).Error; err != nil {
		return nil, ClassifyError(err)
	}
	return books, nil
}

func CreateBook(tx *gorm.DB, book *models.Book) error {
	return ClassifyError(tx.Create(book).Error)
}

// SaveBook writes every column of book, including a nil date_published.
func SaveBook(tx *gorm.DB, book *models.Book) error {
	return ClassifyError(tx.Save(book).Error)
}

func DeleteBook(tx *gorm.DB, book *models.Book) error {
	return ClassifyError(tx.Delete(book).Error)
}

// SearchBooks matches the author's name case-insensitively as a substring and
// the publication year as a half-open date range.
func SearchBooks(tx *gorm.DB, filter BookFilter) ([]models.Book, error) {
	query := tx.Model(&models.Book{})

	if filter.AuthorName != "" {
		query = query.
			Joins("JOIN authors ON authors.id = books.author_id").
			Where("LOWER(authors.full_name) LIKE LOWER(?)", "%"+filter.AuthorName+"%")
	}
	if filter.Year != nil {
		from, to := models.YearRange(*filter.Year)
		query = query.Where("books.date_published >= ? AND books.date_published < ?", from.String(), to.String())
	}

	books := []models.Book{}
	if err := query.Order("books.id").Find(&books).Error; err != nil {
		return nil, ClassifyError(err)
	}
	return books, nil
}
