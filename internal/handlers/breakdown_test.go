package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renteloshaik/rentelo-breakdown-assist/internal/breakdown"
	"github.com/renteloshaik/rentelo-breakdown-assist/internal/middleware"
	"github.com/renteloshaik/rentelo-breakdown-assist/internal/models"
	"github.com/renteloshaik/rentelo-breakdown-assist/internal/notify"
	"github.com/renteloshaik/rentelo-breakdown-assist/internal/store"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	st := store.NewMemoryStore()
	clockAt := time.Date(2025, 3, 7, 9, 0, 0, 0, models.IST)
	svc := breakdown.NewService(st, notify.NoopNotifier{}).WithClock(func() time.Time {
		clockAt = clockAt.Add(time.Minute)
		return clockAt
	})
	handler := NewBreakdownHandler(svc)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", handler.Health)
	mux.HandleFunc("/api/breakdowns", handler.Collection)
	mux.HandleFunc("/api/breakdowns/", handler.Item)
	mux.HandleFunc("/api/breakdowns/export.csv", handler.ExportCSV)
	mux.HandleFunc("/api/breakdowns/export.xlsx", handler.ExportXLSX)

	srv := httptest.NewServer(middleware.Operator(mux))
	t.Cleanup(srv.Close)
	return srv
}

func doRequest(t *testing.T, method, url, operator string, payload interface{}) (*http.Response, []byte) {
	t.Helper()
	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req, err := http.NewRequest(method, url, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if operator != "" {
		req.Header.Set(middleware.OperatorHeader, operator)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	var buf bytes.Buffer
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	return resp, buf.Bytes()
}

func createPayload() map[string]interface{} {
	return map[string]interface{}{
		"booking_id":      "BK100",
		"customer_mobile": "9876543210",
		"pickup_location": "Indiranagar",
		"booking_days":    3,
		"issue":           "Engine not starting",
		"vehicle_number":  "ka01ab1234",
		"vehicle_model":   "Swift",
		"vehicle_type":    "Car",
		"priority":        "High",
		"followup_by":     "Ravi",
	}
}

func TestCreateBreakdown(t *testing.T) {
	srv := newTestServer(t)

	resp, body := doRequest(t, http.MethodPost, srv.URL+"/api/breakdowns", "Asha", createPayload())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var rec models.BreakdownRecord
	require.NoError(t, json.Unmarshal(body, &rec))
	assert.Regexp(t, `^BD-\d{12}-[A-Z]{2}$`, rec.ID)
	assert.Equal(t, models.StatusOpen, rec.Status)
	assert.Equal(t, "Asha", rec.AddedBy)
	assert.Equal(t, "KA01AB1234", rec.VehicleNumber)
}

func TestCreateBreakdown_ValidationErrorListsFields(t *testing.T) {
	srv := newTestServer(t)

	payload := createPayload()
	payload["booking_id"] = ""
	payload["customer_mobile"] = "nope"
	resp, body := doRequest(t, http.MethodPost, srv.URL+"/api/breakdowns", "Asha", payload)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var out struct {
		Error  string `json:"error"`
		Fields []struct {
			Field string `json:"field"`
		} `json:"fields"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, "validation failed", out.Error)
	assert.Len(t, out.Fields, 2)
}

func TestUpdateBreakdown_Workflow(t *testing.T) {
	srv := newTestServer(t)

	_, body := doRequest(t, http.MethodPost, srv.URL+"/api/breakdowns", "Asha", createPayload())
	var rec models.BreakdownRecord
	require.NoError(t, json.Unmarshal(body, &rec))
	itemURL := srv.URL + "/api/breakdowns/" + rec.ID

	resp, body := doRequest(t, http.MethodPatch, itemURL, "Asha", map[string]string{"status": "In Progress"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &rec))
	assert.Equal(t, models.StatusInProgress, rec.Status)

	resp, body = doRequest(t, http.MethodPatch, itemURL, "Asha", map[string]string{"status": "Resolved"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &rec))
	assert.Equal(t, "Asha", rec.ResolvedBy)
	assert.NotEmpty(t, rec.ResolvedAt)

	// Terminal state: reopening conflicts.
	resp, _ = doRequest(t, http.MethodPatch, itemURL, "Asha", map[string]string{"status": "Open"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestUpdateBreakdown_NotFound(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doRequest(t, http.MethodPatch, srv.URL+"/api/breakdowns/BD-000000000000-XX", "Asha",
		map[string]string{"status": "In Progress"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestListBreakdowns_Filters(t *testing.T) {
	srv := newTestServer(t)

	doRequest(t, http.MethodPost, srv.URL+"/api/breakdowns", "Asha", createPayload())

	scooty := createPayload()
	scooty["vehicle_type"] = "Scooty"
	scooty["priority"] = "Low"
	doRequest(t, http.MethodPost, srv.URL+"/api/breakdowns", "Asha", scooty)

	t.Run("no criteria returns all", func(t *testing.T) {
		resp, body := doRequest(t, http.MethodGet, srv.URL+"/api/breakdowns", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var got []models.BreakdownRecord
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Len(t, got, 2)
	})

	t.Run("vehicle type filter", func(t *testing.T) {
		resp, body := doRequest(t, http.MethodGet, srv.URL+"/api/breakdowns?vehicle_type=Scooty", "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var got []models.BreakdownRecord
		require.NoError(t, json.Unmarshal(body, &got))
		require.Len(t, got, 1)
		assert.Equal(t, models.VehicleTypeScooty, got[0].VehicleType)
	})

	t.Run("date range includes today", func(t *testing.T) {
		day := time.Date(2025, 3, 7, 0, 0, 0, 0, models.IST).Format("2006-01-02")
		url := fmt.Sprintf("%s/api/breakdowns?from=%s&to=%s", srv.URL, day, day)
		resp, body := doRequest(t, http.MethodGet, url, "", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		var got []models.BreakdownRecord
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Len(t, got, 2)
	})

	t.Run("bad date is rejected", func(t *testing.T) {
		resp, _ := doRequest(t, http.MethodGet, srv.URL+"/api/breakdowns?from=yesterday", "", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestGetBreakdown(t *testing.T) {
	srv := newTestServer(t)

	_, body := doRequest(t, http.MethodPost, srv.URL+"/api/breakdowns", "Asha", createPayload())
	var rec models.BreakdownRecord
	require.NoError(t, json.Unmarshal(body, &rec))

	resp, body := doRequest(t, http.MethodGet, srv.URL+"/api/breakdowns/"+rec.ID, "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var got models.BreakdownRecord
	require.NoError(t, json.Unmarshal(body, &got))
	assert.Equal(t, rec, got)
}

func TestExportCSV(t *testing.T) {
	srv := newTestServer(t)

	doRequest(t, http.MethodPost, srv.URL+"/api/breakdowns", "Asha", createPayload())

	resp, body := doRequest(t, http.MethodGet, srv.URL+"/api/breakdowns/export.csv", "", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/csv", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "breakdowns_filtered.csv")
	assert.Contains(t, string(body), "BK100")
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doRequest(t, http.MethodDelete, srv.URL+"/api/breakdowns", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
