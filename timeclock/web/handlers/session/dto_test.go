package session

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClockInLocationBinding(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"equator at prime meridian", `{"location":{"latitude":0,"longitude":0}}`, false},
		{"missing latitude", `{"location":{"longitude":12.5}}`, true},
		{"latitude out of range", `{"location":{"latitude":90.5,"longitude":0}}`, true},
		{"longitude out of range", `{"location":{"latitude":0,"longitude":-180.1}}`, true},
		{"no location at all", `{}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var dto ClockInDTO
			err := binding.JSON.BindBody([]byte(tt.body), &dto)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLocationToModelKeepsZeroCoordinates(t *testing.T) {
	now := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

	var dto ClockInDTO
	require.NoError(t, binding.JSON.BindBody(
		[]byte(`{"location":{"latitude":0,"longitude":0,"accuracy":4.2}}`), &dto))

	loc := dto.Location.toModel(now)
	require.NotNil(t, loc)
	assert.Equal(t, 0.0, loc.Latitude)
	assert.Equal(t, 0.0, loc.Longitude)
	assert.Equal(t, 4.2, loc.Accuracy)
	assert.Equal(t, now, loc.CapturedAt)
}
