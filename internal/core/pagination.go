// AngelaMos | 2026
// pagination.go

package core

import (
	"net/http"
	"strconv"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ValidatePage enforces the shared list contract: offset >= 0 and
// 1 <= limit <= MaxLimit.
func ValidatePage(offset, limit int) error {
	if offset < 0 {
		return ValidationError("offset", "must not be negative")
	}
	if limit < 1 || limit > MaxLimit {
		return ValidationError("limit", "must be between 1 and 100")
	}
	return nil
}

// PageFromQuery reads offset and limit from the query string, falling
// back to 0 and DefaultLimit. Bounds are left to ValidatePage.
func PageFromQuery(r *http.Request) (offset, limit int, err error) {
	offset, err = queryInt(r, "offset", 0)
	if err != nil {
		return 0, 0, err
	}

	limit, err = queryInt(r, "limit", DefaultLimit)
	if err != nil {
		return 0, 0, err
	}

	return offset, limit, nil
}

func queryInt(r *http.Request, key string, defaultVal int) (int, error) {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal, nil
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return 0, ValidationError(key, "must be an integer")
	}

	return parsed, nil
}
