package httpx

import (
	"errors"
	"net/http"

	"github.com/bluething/boostpo/internal/shared"
)

// RespondError translates typed domain failures into HTTP status codes.
// Services never touch HTTP concerns; this is the only place the mapping
// lives.
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, shared.ErrNotFound):
		Error(w, r, http.StatusNotFound, "Resource not found", err.Error())
	case errors.Is(err, shared.ErrDuplicate):
		Error(w, r, http.StatusConflict, "Duplicate resource", err.Error())
	case errors.Is(err, shared.ErrValidation):
		Error(w, r, http.StatusBadRequest, "Validation failed", err.Error())
	default:
		Error(w, r, http.StatusInternalServerError, "Internal server error", "An unexpected error occurred")
	}
}
