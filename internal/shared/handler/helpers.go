package handler

import (
	"errors"
	"net/http"
	"strconv"

	sharedError "github.com/changhyeonkim/together-culture/go-api-server/internal/shared/error"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/validator"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// BindJSON parses and validates JSON request body
// Returns true if binding succeeded, false if failed (response already sent)
//
// Usage:
//
//	var req RegisterRequest
//	if !handler.BindJSON(c, &req) {
//	    return
//	}
func BindJSON(c *gin.Context, obj any) bool {
	return bind(c, c.ShouldBindJSON(obj))
}

// BindQuery is BindJSON for query-string parameters (form tags)
func BindQuery(c *gin.Context, obj any) bool {
	return bind(c, c.ShouldBindQuery(obj))
}

// BindForm binds multipart form fields and files
func BindForm(c *gin.Context, obj any) bool {
	return bind(c, c.ShouldBindWith(obj, binding.FormMultipart))
}

func bind(c *gin.Context, err error) bool {
	if err == nil {
		return true
	}

	// Add error to context for middleware logging
	c.Error(err)

	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr):
		c.JSON(sharedError.PayloadTooLarge.Status, sharedError.Wrap(sharedError.PayloadTooLarge))
	default:
		if resp, ok := validator.ToErrorResponse(err); ok {
			c.JSON(http.StatusBadRequest, sharedError.Wrap(*resp))
		} else {
			// JSON parsing error or other binding errors
			c.JSON(sharedError.InvalidRequest.Status, sharedError.Wrap(sharedError.InvalidRequest))
		}
	}
	return false
}

// ParseID reads a positive uint32 path parameter. On failure a 400 is sent.
func ParseID(c *gin.Context, name string) (uint32, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		RespondError(c, err, sharedError.InvalidRequest.WithMessage("Invalid "+name+"."))
		return 0, false
	}
	return uint32(id), true
}

// RespondError sends an error response with logging
//
// Usage:
//
//	if err := service.DoSomething(); err != nil {
//	    handler.RespondError(c, err, sharedError.InternalServerError)
//	    return
//	}
func RespondError(c *gin.Context, err error, errResp sharedError.ErrorResponse) {
	// Add error to context for middleware logging
	if err != nil {
		c.Error(err)
	}

	c.AbortWithStatusJSON(errResp.Status, sharedError.Wrap(errResp))
}

// RespondServiceError maps a registered domain error to its response, anything else to 500
func RespondServiceError(c *gin.Context, err error) {
	if resp, ok := sharedError.ResolveDomainError(err); ok {
		RespondError(c, err, resp)
		return
	}
	RespondError(c, err, sharedError.InternalServerError)
}
