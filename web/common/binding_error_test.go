package common

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatBindingError(t *testing.T) {
	type payload struct {
		Kind  string  `json:"kind" binding:"required,oneof=meal rest"`
		Score float64 `json:"score" binding:"gte=0,lte=100"`
	}

	tests := []struct {
		name     string
		body     string
		expected string
	}{
		{"empty body", "", "Request body is empty"},
		{"wrong type", `{"kind":"meal","score":"high"}`, "Field 'score' should be of type float64"},
		{"missing required", `{"score":50}`, "Field 'kind' is required"},
		{"not in allowed set", `{"kind":"lunch"}`, "Field 'kind' must be one of: meal rest"},
		{"above upper bound", `{"kind":"rest","score":101}`, "Field 'score' must be 100 or less"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p payload
			err := binding.JSON.BindBody([]byte(tt.body), &p)
			require.Error(t, err)
			assert.Equal(t, tt.expected, FormatBindingError(err))
		})
	}

	t.Run("malformed json", func(t *testing.T) {
		var p payload
		err := binding.JSON.BindBody([]byte(`{"kind":}`), &p)
		require.Error(t, err)
		assert.Contains(t, FormatBindingError(err), "Malformed JSON at byte offset")
	})

	t.Run("nil error", func(t *testing.T) {
		assert.Empty(t, FormatBindingError(nil))
	})
}
