package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"auction-site/internal/biddingerrors"
	"auction-site/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Context keys set by the auth middleware
const (
	ContextUserID   = "auth_user_id"
	ContextUsername = "auth_username"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		wrappedErr = fmt.Errorf("invalid request payload: %s", describeValidation(verrs))
	}
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

func describeValidation(verrs validator.ValidationErrors) string {
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			parts = append(parts, field+" is required")
		case "max":
			parts = append(parts, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		case "email", "url":
			parts = append(parts, fmt.Sprintf("%s must be a valid %s", field, fe.Tag()))
		default:
			parts = append(parts, fmt.Sprintf("%s failed %s", field, fe.Tag()))
		}
	}
	return strings.Join(parts, "; ")
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, biddingerrors.ErrListingNotFound):
		return http.StatusNotFound, "listing not found"
	case errors.Is(err, biddingerrors.ErrCategoryNotFound):
		return http.StatusNotFound, "category not found"
	case errors.Is(err, biddingerrors.ErrUserNotFound):
		return http.StatusNotFound, "user not found"
	case errors.Is(err, biddingerrors.ErrInvalidAmount):
		return http.StatusBadRequest, "please enter a valid amount"
	case errors.Is(err, biddingerrors.ErrInvalidInput):
		return http.StatusBadRequest, "invalid input"
	case errors.Is(err, biddingerrors.ErrPasswordMismatch):
		return http.StatusBadRequest, "passwords must match"
	case errors.Is(err, biddingerrors.ErrUnauthenticated):
		return http.StatusUnauthorized, "login required"
	case errors.Is(err, biddingerrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, "invalid username and/or password"
	case errors.Is(err, biddingerrors.ErrNotListingOwner):
		return http.StatusForbidden, "only the lister can close this auction"
	case errors.Is(err, biddingerrors.ErrBidTooLow):
		return http.StatusConflict, "bid must be greater than the current bid"
	case errors.Is(err, biddingerrors.ErrDuplicateUsername):
		return http.StatusConflict, "username already taken"
	case errors.Is(err, biddingerrors.ErrListingClosed):
		return http.StatusConflict, "this auction is closed"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// RespondError writes the mapped error response. A rejected bid also carries
// the current bid so the caller can show it.
func RespondError(c *gin.Context, handlerName string, err error, fields map[string]any) {
	status, message := MapErrorToHTTP(err)

	var tooLow *biddingerrors.BidTooLowError
	if errors.As(err, &tooLow) {
		utils.JSONErrorWithData(c, status, fmt.Errorf("%s: %w", message, err), message,
			BidTooLowResponse{CurrentBid: tooLow.Current.StringFixed(2)})
	} else {
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
	}

	if fields == nil {
		fields = map[string]any{}
	}
	fields["handler"] = handlerName
	fields["status"] = status
	fields["error"] = err.Error()
	if status >= http.StatusInternalServerError {
		utils.Error(handlerName+": request failed", fields)
		return
	}
	utils.Warn(handlerName+": request rejected", fields)
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}

// SetCurrentUser stores the authenticated user on the request context
func SetCurrentUser(c *gin.Context, userID uint, username string) {
	c.Set(ContextUserID, userID)
	c.Set(ContextUsername, username)
}

// CurrentUserID returns the authenticated user id, or 0 for anonymous requests
func CurrentUserID(c *gin.Context) uint {
	if v, ok := c.Get(ContextUserID); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// CurrentUsername returns the authenticated username, or "" for anonymous requests
func CurrentUsername(c *gin.Context) string {
	return c.GetString(ContextUsername)
}

// RequireUser returns the authenticated user id or writes a 401 and returns false
func RequireUser(c *gin.Context, handlerName string) (uint, bool) {
	id := CurrentUserID(c)
	if id == 0 {
		RespondError(c, handlerName, biddingerrors.ErrUnauthenticated, nil)
		c.Abort()
		return 0, false
	}
	return id, true
}

// ParseIDParam reads a positive numeric path parameter
func ParseIDParam(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w - %s must be a positive integer", biddingerrors.ErrInvalidInput, name)
	}
	return uint(id), nil
}
