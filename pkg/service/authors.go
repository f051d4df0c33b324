package service

import (
	"context"
	"errors"

	"biblioteca/pkg/database"
	"biblioteca/pkg/models"
	"biblioteca/pkg/schemas"

	"gorm.io/gorm"
)

const msgAuthorNotFound = "Author not found"

type AuthorService struct {
	db *gorm.DB
}

func NewAuthorService(db *gorm.DB) *AuthorService {
	return &AuthorService{db: db}
}

func (s *AuthorService) Create(ctx context.Context, req schemas.AuthorRequest) (*models.Author, error) {
	author := &models.Author{FullName: req.FullName}
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		return database.CreateAuthor(tx, author)
	})
	switch {
	case err == nil:
		return author, nil
	case errors.Is(err, database.ErrDuplicateKey):
		return nil, conflict("Author already exists", err)
	default:
		return nil, internal("Error creating author", err)
	}
}

func (s *AuthorService) List(ctx context.Context) ([]models.Author, error) {
	authors, err := database.WithTransactionResult(ctx, s.db, database.ListAuthors)
	if err != nil {
		return nil, internal("Error fetching authors", err)
	}
	return authors, nil
}

func (s *AuthorService) Get(ctx context.Context, id uint) (*models.Author, error) {
	author, err := database.WithTransactionResult(ctx, s.db, func(tx *gorm.DB) (*models.Author, error) {
		return database.GetAuthor(tx, id)
	})
	switch {
	case err == nil:
		return author, nil
	case errors.Is(err, database.ErrNotFound):
		return nil, notFound(msgAuthorNotFound)
	default:
		return nil, internal("Error fetching author", err)
	}
}

// Update renames the author. Renaming to the current name is allowed; taking
// another author's name is a conflict.
func (s *AuthorService) Update(ctx context.Context, id uint, req schemas.AuthorRequest) (*models.Author, error) {
	var author *models.Author
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		var err error
		if author, err = database.GetAuthor(tx, id); err != nil {
			return err
		}
		return database.RenameAuthor(tx, author, req.FullName)
	})
	switch {
	case err == nil:
		return author, nil
	case errors.Is(err, database.ErrNotFound):
		return nil, notFound(msgAuthorNotFound)
	case errors.Is(err, database.ErrDuplicateKey):
		return nil, conflict("Author already exists", err)
	default:
		return nil, internal("Error updating author", err)
	}
}

// Delete removes the author and every book that references it.
func (s *AuthorService) Delete(ctx context.Context, id uint) error {
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		author, err := database.GetAuthor(tx, id)
		if err != nil {
			return err
		}
		return database.DeleteAuthor(tx, author)
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, database.ErrNotFound):
		return notFound(msgAuthorNotFound)
	default:
		return internal("Error deleting author", err)
	}
}
