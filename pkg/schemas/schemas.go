// Package schemas holds the request and response bodies of the HTTP API,
// kept separate from the persistence models.
package schemas

import (
	"errors"
	"strings"
	"time"

	"biblioteca/pkg/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	MaxNameLength  = 255
	MaxTitleLength = 255
)

var errBlank = errors.New("must not be blank")

func notBlank(value interface{}) error {
	s, _ := value.(string)
	if strings.TrimSpace(s) == "" {
		return errBlank
	}
	return nil
}

type AuthorRequest struct {
	FullName string `json:"full_name" binding:"required"`
}

func (r AuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FullName,
			validation.Required.Error("full_name is required"),
			validation.By(notBlank),
			validation.RuneLength(1, MaxNameLength),
		),
	)
}

type AuthorResponse struct {
	ID          uint      `json:"id"`
	FullName    string    `json:"full_name"`
	DateCreated time.Time `json:"date_created"`
}

func NewAuthorResponse(a models.Author) AuthorResponse {
	return AuthorResponse{
		ID:          a.ID,
		FullName:    a.FullName,
		DateCreated: a.DateCreated,
	}
}

func NewAuthorResponses(authors []models.Author) []AuthorResponse {
	out := make([]AuthorResponse, 0, len(authors))
	for _, a := range authors {
		out = append(out, NewAuthorResponse(a))
	}
	return out
}

// BookRequest is used for both create and full-replacement update.
type BookRequest struct {
	Title         string       `json:"title" binding:"required"`
	AuthorID      uint         `json:"author_id" binding:"required"`
	ISBN          string       `json:"ISBN" binding:"required"`
	DatePublished *models.Date `json:"date_published"`
}

func (r BookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.By(notBlank),
			validation.RuneLength(1, MaxTitleLength),
		),
		validation.Field(&r.AuthorID,
			validation.Required.Error("author_id is required"),
			validation.Min(uint(1)),
		),
		validation.Field(&r.ISBN,
			validation.Required.Error("ISBN is required"),
			validation.By(notBlank),
		),
	)
}

// Apply copies the request onto book, overwriting every client-owned field.
func (r BookRequest) Apply(book *models.Book) {
	book.Title = r.Title
	book.AuthorID = r.AuthorID
	book.ISBN = r.ISBN
	book.DatePublished = r.DatePublished
}

type BookResponse struct {
	ID            uint         `json:"id"`
	DateCreated   time.Time    `json:"date_created"`
	Title         string       `json:"title"`
	AuthorID      uint         `json:"author_id"`
	ISBN          string       `json:"ISBN"`
	DatePublished *models.Date `json:"date_published"`
}

func NewBookResponse(b models.Book) BookResponse {
	return BookResponse{
		ID:            b.ID,
		DateCreated:   b.DateCreated,
		Title:         b.Title,
		AuthorID:      b.AuthorID,
		ISBN:          b.ISBN,
		DatePublished: b.DatePublished,
	}
}

func NewBookResponses(books []models.Book) []BookResponse {
	out := make([]BookResponse, 0, len(books))
	for _, b := range books {
		out = append(out, NewBookResponse(b))
	}
	return out
}

// BookSearchQuery holds the optional filters of the search endpoint.
type BookSearchQuery struct {
	AuthorName *string `form:"author_name"`
	Year       *int    `form:"year"`
}

// ErrorResponse is the body of every non-2xx answer.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
