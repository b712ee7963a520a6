package rest

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"time"
)

type HealthStatus string

const (
	HealthHealthy   HealthStatus = "healthy"
	HealthUnhealthy HealthStatus = "unhealthy"
)

type HealthResponse struct {
	Status     HealthStatus          `json:"status"`
	CheckedAt  time.Time             `json:"checked_at"`
	Components map[string]CheckEntry `json:"components"`
}

type CheckEntry struct {
	Status     HealthStatus   `json:"status"`
	Message    string         `json:"message,omitempty"`
	Details    map[string]any `json:"details,omitempty"`
	CheckedAt  time.Time      `json:"checked_at"`
	DurationMs int64          `json:"duration_ms"`
}

// SnapshotClock reports when the dashboard snapshot last loaded cleanly.
type SnapshotClock interface {
	LastRefresh() time.Time
}

type HealthHandler struct {
	db       *sql.DB
	snapshot SnapshotClock
	maxAge   time.Duration
}

// NewHealthHandler checks the database and, when snapshot is non-nil, that the
// dashboard snapshot is no older than maxAge.
func NewHealthHandler(db *sql.DB, snapshot SnapshotClock, maxAge time.Duration) *HealthHandler {
	return &HealthHandler{db: db, snapshot: snapshot, maxAge: maxAge}
}

func (h *HealthHandler) pingHandler(w http.ResponseWriter, r *http.Request) {
	writeHealthJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

func (h *HealthHandler) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	components := map[string]CheckEntry{"postgres": h.checkDatabase(ctx)}
	if h.snapshot != nil {
		components["workspace"] = h.checkSnapshot()
	}

	resp := HealthResponse{
		Status:     HealthHealthy,
		CheckedAt:  time.Now(),
		Components: components,
	}
	statusCode := http.StatusOK
	for _, c := range components {
		if c.Status == HealthUnhealthy {
			resp.Status = HealthUnhealthy
			statusCode = http.StatusServiceUnavailable
		}
	}
	writeHealthJSON(w, statusCode, resp)
}

func (h *HealthHandler) checkDatabase(ctx context.Context) CheckEntry {
	start := time.Now()
	err := h.db.PingContext(ctx)

	entry := CheckEntry{
		Status:     HealthHealthy,
		CheckedAt:  time.Now(),
		DurationMs: time.Since(start).Milliseconds(),
	}
	if err != nil {
		entry.Status = HealthUnhealthy
		entry.Message = err.Error()
	}
	return entry
}

func (h *HealthHandler) checkSnapshot() CheckEntry {
	entry := CheckEntry{Status: HealthHealthy, CheckedAt: time.Now()}

	last := h.snapshot.LastRefresh()
	if last.IsZero() {
		entry.Status = HealthUnhealthy
		entry.Message = "snapshot not loaded yet"
		return entry
	}

	age := time.Since(last)
	entry.Details = map[string]any{"age_seconds": int64(age.Seconds())}
	if h.maxAge > 0 && age > h.maxAge {
		entry.Status = HealthUnhealthy
		entry.Message = "snapshot is stale"
	}
	return entry
}

func writeHealthJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
