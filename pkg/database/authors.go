package database

import (
	"biblioteca/pkg/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// The functions below take the handle of the caller's transaction and return
// errors already passed through ClassifyError.

func GetAuthor(tx *gorm.DB, id uint) (*models.Author, error) {
	var author models.Author
	if err := tx.First(&author, id).Error; err != nil {
		return nil, ClassifyError(err)
	}
	return &author, nil
}

func ListAuthors(tx *gorm.DB) ([]models.Author, error) {
	authors := []models.Author{}
	if err := tx.Order("id").Find(&authors).Error; err != nil {
		return nil, ClassifyError(err)
	}
	return authors, nil
}

func AuthorExists(tx *gorm.DB, id uint) (bool, error) {
	var count int64
	if err := tx.Model(&models.Author{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, ClassifyError(err)
	}
	return count > 0, nil
}

func CreateAuthor(tx *gorm.DB, author *models.Author) error {
	return ClassifyError(tx.Omit(clause.Associations).Create(author).Error)
}

func RenameAuthor(tx *gorm.DB, author *models.Author, fullName string) error {
	if err := tx.Model(author).Update("full_name", fullName).Error; err != nil {
		return ClassifyError(err)
	}
	author.FullName = fullName
	return nil
}

// DeleteAuthor removes the author together with all of its books.
func DeleteAuthor(tx *gorm.DB, author *models.Author) error {
	return ClassifyError(tx.Select(clause.Associations).Delete(author).Error)
}
