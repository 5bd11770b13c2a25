package v1

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionClockIn(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, basePath+"/clock-in", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.EqualValues(t, 12, body["jobId"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]interface{}{
				"id":       42,
				"workerId": 7,
				"status":   "active",
			},
		})
	}))
	defer server.Close()

	client := NewShiftGuardClient(server.URL, "test-token")

	jobID := uint(12)
	entry, err := client.Sessions.ClockIn(&jobID, nil)
	require.NoError(t, err)
	assert.Equal(t, uint(42), entry.ID)
	assert.Equal(t, uint(7), entry.WorkerID)
	assert.Equal(t, "active", entry.Status)
}

func TestSessionClockInConflict(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": "worker already clocked in",
			"detail":  map[string]interface{}{"shiftEntryId": 42},
		})
	}))
	defer server.Close()

	client := NewShiftGuardClient(server.URL, "test-token")

	_, err := client.Sessions.ClockIn(nil, nil)
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, apiErr.StatusCode)
	assert.Equal(t, "worker already clocked in", apiErr.Message)
	assert.NotEmpty(t, apiErr.Detail)
}

func TestAlertSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, basePath+"/alerts/search", r.URL.Path)
		assert.Equal(t, "50", r.URL.Query().Get("limit"))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{"id": "a1", "alertType": "meal_break_missed", "severity": "violation"},
			},
			"pagination": map[string]interface{}{"total": 1},
		})
	}))
	defer server.Close()

	client := NewShiftGuardClient(server.URL, "")

	alerts, total, err := client.Alerts.Search(&AlertSearchParams{
		StartDate: "2026-03-01",
		EndDate:   "2026-03-31",
	}, 50, 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, alerts, 1)
	assert.Equal(t, "meal_break_missed", alerts[0].AlertType)
}

func TestAlertAcknowledge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, basePath+"/alerts/a1/acknowledge", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{"data": map[string]interface{}{}})
	}))
	defer server.Close()

	client := NewShiftGuardClient(server.URL, "")
	require.NoError(t, client.Alerts.Acknowledge("a1"))
}
