package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"biblioteca/pkg/models"
	"biblioteca/pkg/schemas"
	"biblioteca/pkg/testdb"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupServices(t *testing.T, emptySearchIsNotFound bool) (*AuthorService, *BookService, *gorm.DB) {
	t.Helper()
	db := testdb.New(t)
	return NewAuthorService(db), NewBookService(db, emptySearchIsNotFound), db
}

func date(y int, m time.Month, d int) *models.Date {
	v := models.NewDate(y, m, d)
	return &v
}

func assertKind(t *testing.T, err error, kind Kind, msg string) {
	t.Helper()
	require.Error(t, err)
	var se *Error
	require.True(t, errors.As(err, &se), "expected *service.Error, got %T", err)
	assert.Equal(t, kind, se.Kind)
	assert.Equal(t, msg, se.Message)
}

func TestAuthorService(t *testing.T) {
	authors, _, _ := setupServices(t, true)
	ctx := context.Background()

	created, err := authors.Create(ctx, schemas.AuthorRequest{FullName: "George Orwell"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.False(t, created.DateCreated.IsZero())
	assert.Equal(t, "George Orwell", created.FullName)

	t.Run("duplicate name is a conflict", func(t *testing.T) {
		_, err := authors.Create(ctx, schemas.AuthorRequest{FullName: "George Orwell"})
		assertKind(t, err, KindConflict, "Author already exists")
		assert.True(t, IsConflict(err))
	})

	t.Run("get", func(t *testing.T) {
		got, err := authors.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.FullName, got.FullName)

		_, err = authors.Get(ctx, created.ID+1000)
		assertKind(t, err, KindNotFound, "Author not found")
	})

	t.Run("list", func(t *testing.T) {
		_, err := authors.Create(ctx, schemas.AuthorRequest{FullName: "Aldous Huxley"})
		require.NoError(t, err)

		all, err := authors.List(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "George Orwell", all[0].FullName)
		assert.Equal(t, "Aldous Huxley", all[1].FullName)
	})

	t.Run("update", func(t *testing.T) {
		updated, err := authors.Update(ctx, created.ID, schemas.AuthorRequest{FullName: "Eric Arthur Blair"})
		require.NoError(t, err)
		assert.Equal(t, "Eric Arthur Blair", updated.FullName)
		assert.Equal(t, created.ID, updated.ID)

		// Keeping the current name is not a conflict.
		_, err = authors.Update(ctx, created.ID, schemas.AuthorRequest{FullName: "Eric Arthur Blair"})
		require.NoError(t, err)

		_, err = authors.Update(ctx, created.ID, schemas.AuthorRequest{FullName: "Aldous Huxley"})
		assertKind(t, err, KindConflict, "Author already exists")

		_, err = authors.Update(ctx, created.ID+1000, schemas.AuthorRequest{FullName: "Nobody"})
		assertKind(t, err, KindNotFound, "Author not found")
	})

	t.Run("delete missing", func(t *testing.T) {
		err := authors.Delete(ctx, created.ID+1000)
		assertKind(t, err, KindNotFound, "Author not found")
		assert.True(t, IsNotFound(err))
	})
}

func TestDeleteAuthorRemovesBooks(t *testing.T) {
	authors, books, _ := setupServices(t, true)
	ctx := context.Background()

	author, err := authors.Create(ctx, schemas.AuthorRequest{FullName: "George Orwell"})
	require.NoError(t, err)
	b1, err := books.Create(ctx, schemas.BookRequest{Title: "1984", AuthorID: author.ID, ISBN: "978-0451524935"})
	require.NoError(t, err)
	b2, err := books.Create(ctx, schemas.BookRequest{Title: "Animal Farm", AuthorID: author.ID, ISBN: "978-0451526342"})
	require.NoError(t, err)

	require.NoError(t, authors.Delete(ctx, author.ID))

	for _, id := range []uint{b1.ID, b2.ID} {
		_, err := books.Get(ctx, id)
		assertKind(t, err, KindNotFound, "Book not found")
	}
	_, err = authors.Get(ctx, author.ID)
	assert.True(t, IsNotFound(err))
}

func TestBookService(t *testing.T) {
	authors, books, _ := setupServices(t, true)
	ctx := context.Background()

	orwell, err := authors.Create(ctx, schemas.AuthorRequest{FullName: "George Orwell"})
	require.NoError(t, err)
	huxley, err := authors.Create(ctx, schemas.AuthorRequest{FullName: "Aldous Huxley"})
	require.NoError(t, err)

	book, err := books.Create(ctx, schemas.BookRequest{
		Title: "1984", AuthorID: orwell.ID, ISBN: "978-0451524935", DatePublished: date(1949, time.June, 8),
	})
	require.NoError(t, err)
	assert.NotZero(t, book.ID)
	assert.False(t, book.DateCreated.IsZero())

	t.Run("missing author wins over duplicate isbn", func(t *testing.T) {
		for _, isbn := range []string{"fresh-isbn", "978-0451524935"} {
			_, err := books.Create(ctx, schemas.BookRequest{Title: "Ghost", AuthorID: 9999, ISBN: isbn})
			assertKind(t, err, KindNotFound, "Author not found")
		}
	})

	t.Run("duplicate isbn is a conflict", func(t *testing.T) {
		_, err := books.Create(ctx, schemas.BookRequest{Title: "Copy", AuthorID: huxley.ID, ISBN: "978-0451524935"})
		assertKind(t, err, KindConflict, "Book already exists with ISBN: 978-0451524935")
	})

	t.Run("get and list", func(t *testing.T) {
		got, err := books.Get(ctx, book.ID)
		require.NoError(t, err)
		require.NotNil(t, got.DatePublished)
		assert.Equal(t, "1949-06-08", got.DatePublished.String())

		_, err = books.Get(ctx, book.ID+1000)
		assertKind(t, err, KindNotFound, "Book not found")

		all, err := books.List(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("update with own isbn and author", func(t *testing.T) {
		updated, err := books.Update(ctx, book.ID, schemas.BookRequest{
			Title: "Nineteen Eighty-Four", AuthorID: orwell.ID, ISBN: "978-0451524935", DatePublished: date(1949, time.June, 8),
		})
		require.NoError(t, err)
		assert.Equal(t, "Nineteen Eighty-Four", updated.Title)
		assert.Equal(t, book.DateCreated.Unix(), updated.DateCreated.Unix())
	})

	t.Run("update is a full replacement", func(t *testing.T) {
		updated, err := books.Update(ctx, book.ID, schemas.BookRequest{
			Title: "1984", AuthorID: huxley.ID, ISBN: "978-0451524935",
		})
		require.NoError(t, err)
		assert.Equal(t, huxley.ID, updated.AuthorID)
		assert.Nil(t, updated.DatePublished)

		got, err := books.Get(ctx, book.ID)
		require.NoError(t, err)
		assert.Nil(t, got.DatePublished)
		assert.Equal(t, huxley.ID, got.AuthorID)
	})

	t.Run("update checks the book before the author", func(t *testing.T) {
		_, err := books.Update(ctx, book.ID+1000, schemas.BookRequest{Title: "x", AuthorID: 9999, ISBN: "x"})
		assertKind(t, err, KindNotFound, "Book not found")

		_, err = books.Update(ctx, book.ID, schemas.BookRequest{Title: "x", AuthorID: 9999, ISBN: "x"})
		assertKind(t, err, KindNotFound, "Author not found")
	})

	t.Run("update to another book's isbn", func(t *testing.T) {
		other, err := books.Create(ctx, schemas.BookRequest{Title: "Brave New World", AuthorID: huxley.ID, ISBN: "978-0060850524"})
		require.NoError(t, err)

		_, err = books.Update(ctx, other.ID, schemas.BookRequest{Title: "Brave New World", AuthorID: huxley.ID, ISBN: "978-0451524935"})
		assertKind(t, err, KindConflict, "Book already exists with ISBN: 978-0451524935")
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, books.Delete(ctx, book.ID))

		err := books.Delete(ctx, book.ID)
		assertKind(t, err, KindNotFound, "Book not found")
	})
}

func TestBookSearch(t *testing.T) {
	authors, books, _ := setupServices(t, true)
	ctx := context.Background()

	asimov, err := authors.Create(ctx, schemas.AuthorRequest{FullName: "Isaac Asimov"})
	require.NoError(t, err)
	_, err = books.Create(ctx, schemas.BookRequest{
		Title: "I, Robot", AuthorID: asimov.ID, ISBN: "978-0553382563", DatePublished: date(1950, time.December, 2),
	})
	require.NoError(t, err)

	year := func(y int) *int { return &y }

	t.Run("partial name", func(t *testing.T) {
		found, err := books.Search(ctx, "Asimov", nil)
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, "I, Robot", found[0].Title)
	})

	t.Run("year", func(t *testing.T) {
		found, err := books.Search(ctx, "", year(1950))
		require.NoError(t, err)
		assert.Len(t, found, 1)
	})

	t.Run("no filters returns everything", func(t *testing.T) {
		found, err := books.Search(ctx, "", nil)
		require.NoError(t, err)
		assert.Len(t, found, 1)
	})

	t.Run("zero year is no filter", func(t *testing.T) {
		found, err := books.Search(ctx, "", year(0))
		require.NoError(t, err)
		assert.Len(t, found, 1)

		found, err = books.Search(ctx, "asimov", year(0))
		require.NoError(t, err)
		assert.Len(t, found, 1)
	})

	t.Run("no match is not found", func(t *testing.T) {
		_, err := books.Search(ctx, "Tolkien", nil)
		assertKind(t, err, KindNotFound, "No books found with the given criteria")

		_, err = books.Search(ctx, "Asimov", year(1951))
		assertKind(t, err, KindNotFound, "No books found with the given criteria")
	})

	t.Run("empty list when policy is off", func(t *testing.T) {
		lenient := NewBookService(books.db, false)

		found, err := lenient.Search(ctx, "Tolkien", nil)
		require.NoError(t, err)
		assert.Empty(t, found)
	})
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
	assert.Equal(t, KindNotFound, KindOf(notFound("x")))
	assert.False(t, IsNotFound(nil))
	assert.False(t, IsConflict(nil))

	err := internal("Error creating author", errors.New("disk full"))
	assert.Equal(t, "Error creating author: disk full", err.Error())
	assert.Equal(t, "conflict", KindConflict.String())
}
