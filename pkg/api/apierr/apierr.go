package apierr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/emberesports/crewdesk/pkg/core/staffing"
)

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// NotApplied is only set for store failures: true when the change is known not to have been saved
	NotApplied *bool `json:"notApplied,omitempty"`
}

type ErrResponse struct {
	Error APIError `json:"error"`
}

// Map translates staffing errors into responses. Business-rule errors carry their
// own message since it names the event, role and person involved.
// ok is false when the error has no specific mapping.
func Map(err error) (int, APIError, bool) {
	switch {
	case errors.Is(err, staffing.ErrRoleFull):
		return http.StatusConflict, withMessage(RoleFull, err), true
	case errors.Is(err, staffing.ErrDuplicateAssignment):
		return http.StatusConflict, withMessage(DuplicateAssignment, err), true
	case errors.Is(err, staffing.ErrLockedSignup):
		return http.StatusConflict, withMessage(SignupLocked, err), true
	case errors.Is(err, staffing.ErrNotFound):
		return http.StatusNotFound, withMessage(NotFound, err), true
	case errors.Is(err, staffing.ErrStoreWrite):
		apiErr := StoreWriteFailed
		notApplied := false
		var writeErr *staffing.StoreWriteError
		if errors.As(err, &writeErr) {
			notApplied = writeErr.NotApplied
		}
		apiErr.NotApplied = &notApplied
		return http.StatusServiceUnavailable, apiErr, true
	default:
		return http.StatusInternalServerError, InternalServerError, false
	}
}

func Handle(c *gin.Context, err error) bool {
	if status, apiErr, ok := Map(err); ok {
		WriteApiErrJSON(c, status, apiErr)
		return true
	}

	return false
}

func WriteApiErrJSON(c *gin.Context, status int, apiErr APIError) {
	c.JSON(status, ErrResponse{
		Error: apiErr,
	})
}

// Invalid is a 400 response naming what was wrong with the request
func Invalid(message string) APIError {
	apiErr := BadRequest
	apiErr.Message = message
	return apiErr
}

func withMessage(apiErr APIError, err error) APIError {
	apiErr.Message = err.Error()
	return apiErr
}
