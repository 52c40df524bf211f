package helpers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

type contextKey string

const (
	ContextKeyUserID contextKey = "userID"
)

// UserIDFromContext returns the authenticated user's id, or zero when
// the request carries no identity.
func UserIDFromContext(ctx context.Context) uint {
	userID, ok := ctx.Value(ContextKeyUserID).(uint)
	if !ok {
		return 0
	}
	return userID
}

func WithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, ContextKeyUserID, userID)
}

// PathID reads a numeric {name} path variable from the request.
func PathID(r *http.Request, name string) (uint, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

var validate = validator.New()

// ValidateStruct runs the shared validator over a request payload and
// flattens field errors into a message map for the response body.
func ValidateStruct(payload interface{}) map[string]string {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	fieldErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"payload": err.Error()}
	}

	messages := make(map[string]string, len(fieldErrors))
	for _, fe := range fieldErrors {
		messages[fe.Field()] = "failed validation on rule: " + fe.Tag()
	}
	return messages
}
