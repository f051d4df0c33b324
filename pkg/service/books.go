package service

import (
	"context"
	"errors"

	"biblioteca/pkg/database"
	"biblioteca/pkg/models"
	"biblioteca/pkg/schemas"

	"gorm.io/gorm"
)

const (
	msgBookNotFound = "Book not found"
	msgNoBooksFound = "No books found with the given criteria"
)

// errAuthorMissing marks a failed author lookup inside a book transaction.
var errAuthorMissing = errors.New("author missing")

type BookService struct {
	db *gorm.DB
	// emptySearchIsNotFound turns an empty search result into a NotFound error.
	emptySearchIsNotFound bool
}

func NewBookService(db *gorm.DB, emptySearchIsNotFound bool) *BookService {
	return &BookService{db: db, emptySearchIsNotFound: emptySearchIsNotFound}
}

// Create checks the author before writing, so a missing author wins over a
// duplicate ISBN.
func (s *BookService) Create(ctx context.Context, req schemas.BookRequest) (*models.Book, error) {
	book := &models.Book{}
	req.Apply(book)

	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		if err := requireAuthor(tx, req.AuthorID); err != nil {
			return err
		}
		return database.CreateBook(tx, book)
	})
	if err != nil {
		return nil, bookWriteError(err, req.ISBN, "Error creating book")
	}
	return book, nil
}

func (s *BookService) List(ctx context.Context) ([]models.Book, error) {
	books, err := database.WithTransactionResult(ctx, s.db, database.ListBooks)
	if err != nil {
		return nil, internal("Error fetching books", err)
	}
	return books, nil
}

func (s *BookService) Get(ctx context.Context, id uint) (*models.Book, error) {
	book, err := database.WithTransactionResult(ctx, s.db, func(tx *gorm.DB) (*models.Book, error) {
		return database.GetBook(tx, id)
	})
	switch {
	case err == nil:
		return book, nil
	case errors.Is(err, database.ErrNotFound):
		return nil, notFound(msgBookNotFound)
	default:
		return nil, internal("Error fetching book", err)
	}
}

// Update replaces every client-owned field of the book. The book is looked up
// before the author.
func (s *BookService) Update(ctx context.Context, id uint, req schemas.BookRequest) (*models.Book, error) {
	var book *models.Book
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		var err error
		if book, err = database.GetBook(tx, id); err != nil {
			return err
		}
		if err := requireAuthor(tx, req.AuthorID); err != nil {
			return err
		}
		req.Apply(book)
		return database.SaveBook(tx, book)
	})
	if err != nil {
		return nil, bookWriteError(err, req.ISBN, "Error updating book")
	}
	return book, nil
}

func (s *BookService) Delete(ctx context.Context, id uint) error {
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		book, err := database.GetBook(tx, id)
		if err != nil {
			return err
		}
		return database.DeleteBook(tx, book)
	})
	switch {
	case err == nil:
		return nil
	case errors.Is(err, database.ErrNotFound):
		return notFound(msgBookNotFound)
	default:
		return internal("Error deleting book", err)
	}
}

// Search filters books by author name and publication year. An empty name and
// a nil or zero year are ignored.
func (s *BookService) Search(ctx context.Context, authorName string, year *int) ([]models.Book, error) {
	if year != nil && *year == 0 {
		year = nil
	}
	filter := database.BookFilter{AuthorName: authorName, Year: year}
	books, err := database.WithTransactionResult(ctx, s.db, func(tx *gorm.DB) ([]models.Book, error) {
		return database.SearchBooks(tx, filter)
	})
	if err != nil {
		return nil, internal("Error searching books", err)
	}
	if len(books) == 0 && s.emptySearchIsNotFound {
		return nil, notFound(msgNoBooksFound)
	}
	return books, nil
}

func requireAuthor(tx *gorm.DB, id uint) error {
	ok, err := database.AuthorExists(tx, id)
	if err != nil {
		return err
	}
	if !ok {
		return errAuthorMissing
	}
	return nil
}

func bookWriteError(err error, isbn, fallback string) error {
	switch {
	case errors.Is(err, errAuthorMissing), errors.Is(err, database.ErrForeignKey):
		return notFound(msgAuthorNotFound)
	case errors.Is(err, database.ErrNotFound):
		return notFound(msgBookNotFound)
	case errors.Is(err, database.ErrDuplicateKey):
		return conflict("Book already exists with ISBN: "+isbn, err)
	default:
		return internal(fallback, err)
	}
}
