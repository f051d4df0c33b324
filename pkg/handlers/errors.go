package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"biblioteca/pkg/schemas"
	"biblioteca/pkg/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// StatusFor maps a service error kind to its HTTP status. Conflicts answer
// 400 to stay compatible with existing clients.
func StatusFor(kind service.Kind) int {
	switch kind {
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindConflict:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	var se *service.Error
	if !errors.As(err, &se) {
		se = &service.Error{Kind: service.KindInternal, Message: "Internal server error", Err: err}
	}

	detail := se.Message
	if se.Kind == service.KindInternal {
		log.Error().Err(se.Err).
			Str("request_id", c.GetString(requestIDKey)).
			Str("path", c.Request.URL.Path).
			Msg(se.Message)
		detail = se.Error()
	}

	c.JSON(StatusFor(se.Kind), schemas.ErrorResponse{Detail: detail})
}

func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, schemas.ErrorResponse{Detail: message})
}

type validatable interface {
	Validate() error
}

// bindJSON decodes and validates the body into req. It writes the 400
// response itself and reports whether the handler should continue.
func bindJSON(c *gin.Context, req validatable) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		respondBadRequest(c, err.Error())
		return false
	}
	if err := req.Validate(); err != nil {
		respondBadRequest(c, err.Error())
		return false
	}
	return true
}

// parseIDParam reads a positive integer id from the path.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		respondBadRequest(c, "invalid "+name+": must be a positive integer")
		return 0, false
	}
	return uint(id), true
}
