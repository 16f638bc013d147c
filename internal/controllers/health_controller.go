package controllers

import (
	"fmt"
	json "github.com/goccy/go-json"
	"net/http"
	"sightd/internal/services"
	"time"
)

// SnapshotInfo reports when the document was last backed up.
type SnapshotInfo interface {
	LastSnapshot() time.Time
}

type HealthController struct {
	service   services.SightServiceInterface
	backups   SnapshotInfo
	startTime time.Time
}

type healthResponse struct {
	Status        string  `json:"status"`
	Uptime        string  `json:"uptime"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	SightsTotal   int     `json:"sights_total"`
	SightsVisible int     `json:"sights_visible"`
	LastBackup    string  `json:"last_backup,omitempty"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
	}
	status := http.StatusOK

	total, visible, err := hc.service.Counts()
	if err != nil {
		resp.Status = "degraded"
		status = http.StatusServiceUnavailable
	}
	resp.SightsTotal = total
	resp.SightsVisible = visible

	if last := hc.backups.LastSnapshot(); !last.IsZero() {
		resp.LastBackup = last.UTC().Format(time.RFC3339)
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(service services.SightServiceInterface, backups SnapshotInfo) *HealthController {
	return &HealthController{
		service:   service,
		backups:   backups,
		startTime: time.Now(),
	}
}
