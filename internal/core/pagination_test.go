// AngelaMos | 2026
// pagination_test.go

package core

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePage(t *testing.T) {
	tests := []struct {
		offset, limit int
		field         string
	}{
		{0, 1, ""},
		{0, MaxLimit, ""},
		{500, 20, ""},
		{-1, 20, "offset"},
		{0, 0, "limit"},
		{0, MaxLimit + 1, "limit"},
	}

	for _, tt := range tests {
		err := ValidatePage(tt.offset, tt.limit)
		if tt.field == "" {
			assert.NoError(t, err, "offset=%d limit=%d", tt.offset, tt.limit)
			continue
		}

		require.ErrorIs(t, err, ErrValidation)
		de, _ := AsDomainError(err)
		assert.Equal(t, tt.field, de.Field)
	}
}

func TestPageFromQuery(t *testing.T) {
	tests := []struct {
		query  string
		offset int
		limit  int
		err    bool
	}{
		{"", 0, DefaultLimit, false},
		{"?offset=40&limit=10", 40, 10, false},
		{"?limit=500", 0, 500, false},
		{"?offset=x", 0, 0, true},
		{"?limit=1.5", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/items"+tt.query, nil)

			offset, limit, err := PageFromQuery(r)
			if tt.err {
				assert.True(t, IsValidation(err))
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.offset, offset)
			assert.Equal(t, tt.limit, limit)
		})
	}
}
