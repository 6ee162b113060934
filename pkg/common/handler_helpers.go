package common

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/richxcame/ridematch/pkg/validation"
)

// BindQuery binds query parameters into req and runs its validate tags.
// On failure it writes a 400 response and returns false.
func BindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		AppErrorResponse(c, NewBadRequestError("invalid query parameters", err))
		return false
	}
	return validate(c, req)
}

// BindJSON binds the request body into req and runs its validate tags.
// On failure it writes a 400 response and returns false.
func BindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		AppErrorResponse(c, NewBadRequestError("invalid request body", err))
		return false
	}
	return validate(c, req)
}

func validate(c *gin.Context, req interface{}) bool {
	if err := validation.ValidateStruct(req); err != nil {
		AppErrorResponse(c, NewValidationError(err.Error()))
		return false
	}
	return true
}

// ParseUUIDQuery reads an optional UUID query parameter. An absent value
// yields nil. A malformed one writes a 400 response and returns false.
func ParseUUIDQuery(c *gin.Context, name string) (*uuid.UUID, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		AppErrorResponse(c, NewBadRequestError(fmt.Sprintf("invalid %s", name), err))
		return nil, false
	}
	return &id, true
}
