package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/renteloshaik/rentelo-breakdown-assist/internal/breakdown"
	"github.com/renteloshaik/rentelo-breakdown-assist/internal/export"
	"github.com/renteloshaik/rentelo-breakdown-assist/internal/middleware"
	"github.com/renteloshaik/rentelo-breakdown-assist/internal/models"
	"github.com/renteloshaik/rentelo-breakdown-assist/internal/store"
)

// dateLayout is the query-parameter form of the date-range filter. A date-only
// "to" bound is extended to the end of that day so the range stays inclusive.
const dateLayout = "2006-01-02"

// BreakdownHandler handles breakdown record requests
type BreakdownHandler struct {
	service *breakdown.Service
}

// NewBreakdownHandler creates a new breakdown handler
func NewBreakdownHandler(service *breakdown.Service) *BreakdownHandler {
	return &BreakdownHandler{service: service}
}

// Collection dispatches /api/breakdowns: POST creates, GET lists.
func (h *BreakdownHandler) Collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.create(w, r)
	case http.MethodGet:
		h.list(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// Item dispatches /api/breakdowns/{id}: GET fetches, PATCH updates.
func (h *BreakdownHandler) Item(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/breakdowns/")
	if id == "" || strings.Contains(id, "/") {
		http.Error(w, "Breakdown ID required", http.StatusBadRequest)
		return
	}
	switch r.Method {
	case http.MethodGet:
		rec, err := h.service.GetBreakdown(r.Context(), id)
		if err != nil {
			h.writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, rec)
	case http.MethodPatch:
		h.update(w, r, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *BreakdownHandler) create(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var input breakdown.RecordInput
	if err := json.Unmarshal(body, &input); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	actor := middleware.OperatorFromContext(r.Context())
	rec, err := h.service.CreateBreakdown(r.Context(), input, actor)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *BreakdownHandler) update(w http.ResponseWriter, r *http.Request, id string) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var patch breakdown.RecordPatch
	if err := json.Unmarshal(body, &patch); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	actor := middleware.OperatorFromContext(r.Context())
	rec, err := h.service.UpdateBreakdown(r.Context(), id, patch, actor)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *BreakdownHandler) list(w http.ResponseWriter, r *http.Request) {
	criteria, err := parseCriteria(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	records, err := h.service.ListBreakdowns(r.Context(), criteria)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, records)
}

// ExportCSV streams the filtered records as a CSV download.
func (h *BreakdownHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	records, ok := h.exportRecords(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="breakdowns_filtered.csv"`)
	if err := export.WriteCSV(w, records); err != nil {
		http.Error(w, "Failed to export CSV", http.StatusInternalServerError)
	}
}

// ExportXLSX streams the filtered records as a workbook download.
func (h *BreakdownHandler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	records, ok := h.exportRecords(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="breakdowns_filtered.xlsx"`)
	if err := export.WriteXLSX(w, records); err != nil {
		http.Error(w, "Failed to export workbook", http.StatusInternalServerError)
	}
}

func (h *BreakdownHandler) exportRecords(w http.ResponseWriter, r *http.Request) ([]models.BreakdownRecord, bool) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return nil, false
	}
	criteria, err := parseCriteria(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}
	records, err := h.service.ListBreakdowns(r.Context(), criteria)
	if err != nil {
		h.writeServiceError(w, err)
		return nil, false
	}
	return records, true
}

// Health reports liveness.
func (h *BreakdownHandler) Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func parseCriteria(r *http.Request) (breakdown.Criteria, error) {
	q := r.URL.Query()
	criteria := breakdown.Criteria{
		VehicleType: models.VehicleType(q.Get("vehicle_type")),
		Status:      models.Status(q.Get("status")),
		Priority:    models.Priority(q.Get("priority")),
		FollowupBy:  q.Get("followup_by"),
	}
	if v := q.Get("from"); v != "" {
		t, err := time.ParseInLocation(dateLayout, v, models.IST)
		if err != nil {
			return breakdown.Criteria{}, fmt.Errorf("invalid from date %q, want YYYY-MM-DD", v)
		}
		criteria.From = &t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.ParseInLocation(dateLayout, v, models.IST)
		if err != nil {
			return breakdown.Criteria{}, fmt.Errorf("invalid to date %q, want YYYY-MM-DD", v)
		}
		end := t.AddDate(0, 0, 1).Add(-time.Second)
		criteria.To = &end
	}
	return criteria, nil
}

func (h *BreakdownHandler) writeServiceError(w http.ResponseWriter, err error) {
	var verr *breakdown.ValidationError
	var terr *breakdown.InvalidTransitionError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"error":  "validation failed",
			"fields": verr.Fields,
		})
	case errors.As(err, &terr):
		http.Error(w, terr.Error(), http.StatusConflict)
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, "Breakdown not found", http.StatusNotFound)
	case errors.Is(err, store.ErrStoreUnavailable):
		http.Error(w, "Breakdown store unavailable, please retry", http.StatusServiceUnavailable)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
