package handlers

import (
	"net/http"

	"biblioteca/pkg/schemas"
	"biblioteca/pkg/service"

	"github.com/gin-gonic/gin"
)

type BookHandler struct {
	books *service.BookService
}

func NewBookHandler(books *service.BookService) *BookHandler {
	return &BookHandler{books: books}
}

func (h *BookHandler) Create(c *gin.Context) {
	var req schemas.BookRequest
	if !bindJSON(c, &req) {
		return
	}

	book, err := h.books.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, schemas.NewBookResponse(*book))
}

func (h *BookHandler) List(c *gin.Context) {
	books, err := h.books.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schemas.NewBookResponses(books))
}

func (h *BookHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}

	book, err := h.books.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schemas.NewBookResponse(*book))
}

func (h *BookHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}
	var req schemas.BookRequest
	if !bindJSON(c, &req) {
		return
	}

	book, err := h.books.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schemas.NewBookResponse(*book))
}

func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "book_id")
	if !ok {
		return
	}

	if err := h.books.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BookHandler) Search(c *gin.Context) {
	var q schemas.BookSearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBadRequest(c, "invalid search query: "+err.Error())
		return
	}

	var name string
	if q.AuthorName != nil {
		name = *q.AuthorName
	}

	books, err := h.books.Search(c.Request.Context(), name, q.Year)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schemas.NewBookResponses(books))
}
