package handlers

import (
	"net/http"

	"biblioteca/pkg/schemas"
	"biblioteca/pkg/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Options struct {
	EmptySearchIsNotFound bool
}

// NewRouter builds the HTTP API on top of db. Every resource path answers
// with and without a trailing slash.
func NewRouter(db *gorm.DB, opts Options) *gin.Engine {
	router := gin.New()
	router.RedirectTrailingSlash = false
	router.Use(RequestID(), Logger(), Recovery())

	authors := NewAuthorHandler(service.NewAuthorService(db))
	books := NewBookHandler(service.NewBookService(db, opts.EmptySearchIsNotFound))
	health := NewHealthHandler(db)

	handle(router, http.MethodPost, "/authors", authors.Create)
	handle(router, http.MethodGet, "/authors", authors.List)
	handle(router, http.MethodGet, "/authors/:author_id", authors.Get)
	handle(router, http.MethodPut, "/authors/:author_id", authors.Update)
	handle(router, http.MethodDelete, "/authors/:author_id", authors.Delete)

	handle(router, http.MethodPost, "/books", books.Create)
	handle(router, http.MethodGet, "/books", books.List)
	handle(router, http.MethodGet, "/books/search", books.Search)
	handle(router, http.MethodGet, "/books/:book_id", books.Get)
	handle(router, http.MethodPut, "/books/:book_id", books.Update)
	handle(router, http.MethodDelete, "/books/:book_id", books.Delete)

	router.GET("/manage/health", health.Check)

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, schemas.ErrorResponse{Detail: "Not Found"})
	})

	return router
}

func handle(router gin.IRoutes, method, path string, h gin.HandlerFunc) {
	router.Handle(method, path, h)
	router.Handle(method, path+"/", h)
}
