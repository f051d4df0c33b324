package handlers

import (
	"net/http"

	"biblioteca/pkg/schemas"
	"biblioteca/pkg/service"

	"github.com/gin-gonic/gin"
)

type AuthorHandler struct {
	authors *service.AuthorService
}

func NewAuthorHandler(authors *service.AuthorService) *AuthorHandler {
	return &AuthorHandler{authors: authors}
}

func (h *AuthorHandler) Create(c *gin.Context) {
	var req schemas.AuthorRequest
	if !bindJSON(c, &req) {
		return
	}

	author, err := h.authors.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, schemas.NewAuthorResponse(*author))
}

func (h *AuthorHandler) List(c *gin.Context) {
	authors, err := h.authors.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schemas.NewAuthorResponses(authors))
}

func (h *AuthorHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "author_id")
	if !ok {
		return
	}

	author, err := h.authors.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schemas.NewAuthorResponse(*author))
}

func (h *AuthorHandler) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "author_id")
	if !ok {
		return
	}
	var req schemas.AuthorRequest
	if !bindJSON(c, &req) {
		return
	}

	author, err := h.authors.Update(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, schemas.NewAuthorResponse(*author))
}

func (h *AuthorHandler) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "author_id")
	if !ok {
		return
	}

	if err := h.authors.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
