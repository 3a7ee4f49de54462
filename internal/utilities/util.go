// Package utilities contain utility code that use across the package
package utilities

import (
	"JobBoard-backend/internal/model"
	"errors"
	"reflect"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body of requests that return no resource
type MessageResponse struct {
	Message string `json:"message"`
}

// Errors returned by ExtractUser
var (
	ErrNoUserInContext = errors.New("User information not provided")
	ErrUserContextType = errors.New("Failed to assert type")
)

// ExtractUser returns the user stored in c by the authentication middleware.
// Unlike CheckRole it never aborts c.
func ExtractUser(c *gin.Context) (model.User, error) {
	v, exists := c.Get("user")
	if !exists || v == nil {
		return model.User{}, ErrNoUserInContext
	}
	if user, ok := v.(model.User); ok {
		return user, nil
	}
	return model.User{}, ErrUserContextType
}

// MergeNonEmpty copies each exported non-zero field of src onto the same-named field of dst.
// Both arguments must be pointers to structs.
func MergeNonEmpty(dst, src interface{}) {
	target := reflect.ValueOf(dst).Elem()
	patch := reflect.ValueOf(src).Elem()
	patchType := patch.Type()

	for i := 0; i < patch.NumField(); i++ {
		field := patchType.Field(i)
		value := patch.Field(i)
		if !field.IsExported() || value.IsZero() {
			continue
		}
		if out := target.FieldByName(field.Name); out.IsValid() && out.CanSet() {
			out.Set(value)
		}
	}
}
