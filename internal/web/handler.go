package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/hotcorners/hotcorners/internal/config"
	"github.com/hotcorners/hotcorners/internal/database"
	"github.com/hotcorners/hotcorners/internal/engine"
	"github.com/hotcorners/hotcorners/internal/models"
	"github.com/hotcorners/hotcorners/internal/reporter"
	"github.com/hotcorners/hotcorners/pkg/apps"
	"github.com/hotcorners/hotcorners/pkg/corner"
	"github.com/hotcorners/hotcorners/pkg/utils"
)

// liveInterval is how often the live websocket feed pushes a status frame.
const liveInterval = 200 * time.Millisecond

type Handler struct {
	config   *config.Config
	engine   *engine.Engine
	repo     *database.Repository
	reporter *reporter.Reporter
	logger   *zap.Logger
	upgrader websocket.Upgrader

	// applications is swappable so tests do not scan the real system.
	applications func() ([]apps.Application, error)
}

func NewHandler(cfg *config.Config, eng *engine.Engine, repo *database.Repository, logger *zap.Logger) *Handler {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	return &Handler{
		config:   cfg,
		engine:   eng,
		repo:     repo,
		reporter: reporter.New(repo),
		logger:   logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		applications: apps.List,
	}
}

func (h *Handler) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/api/status", h.handleStatus)
	mux.HandleFunc("/api/corners", h.handleCorners)
	mux.HandleFunc("/api/corners/", h.handleCorner)
	mux.HandleFunc("/api/history", h.handleHistory)
	mux.HandleFunc("/api/report", h.handleReport)
	mux.HandleFunc("/api/summary", h.handleSummary)
	mux.HandleFunc("/api/applications", h.handleApplications)
	mux.HandleFunc("/api/monitoring/start", h.handleMonitoringStart)
	mux.HandleFunc("/api/monitoring/stop", h.handleMonitoringStop)
	mux.HandleFunc("/api/monitoring/restart", h.handleMonitoringRestart)
	mux.HandleFunc("/api/errors", h.handleErrors)
	mux.HandleFunc("/api/live", h.handleLive)

	mux.HandleFunc("/health", h.handleHealth)

	mux.HandleFunc("/", h.handleIndex)
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	status := h.engine.Status()

	if r.Header.Get("HX-Request") == "true" {
		h.respondStatusHTML(w, status)
		return
	}

	response := map[string]interface{}{
		"monitoring":    status,
		"poll_interval": h.config.Engine.PollInterval.String(),
		"tolerance":     h.config.Engine.Tolerance,
		"cooldown":      h.config.Engine.Cooldown.String(),
		"database_path": h.config.Database.Path,
	}

	if latest, err := h.repo.GetLatestTrigger(); err == nil && latest != nil {
		response["latest_trigger"] = latest
	}

	h.respondJSON(w, response)
}

func (h *Handler) handleCorners(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if r.Header.Get("HX-Request") == "true" {
			h.respondCornersHTML(w, h.engine.Bindings())
			return
		}
		h.respondJSON(w, bindingsPayload(h.engine.Bindings()))

	case http.MethodPut:
		var updates map[string]corner.Action
		if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
			http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
			return
		}
		h.applyBindingUpdates(w, updates)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleCorner(w http.ResponseWriter, r *http.Request) {
	name := strings.TrimPrefix(r.URL.Path, "/api/corners/")
	if _, err := corner.Parse(name); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodPut:
		var action corner.Action
		if err := json.NewDecoder(r.Body).Decode(&action); err != nil {
			http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
			return
		}
		h.applyBindingUpdates(w, map[string]corner.Action{name: action})

	case http.MethodDelete:
		h.applyBindingUpdates(w, map[string]corner.Action{name: {}})

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// applyBindingUpdates persists the changed corners and hands the new
// bindings to the running engine.
func (h *Handler) applyBindingUpdates(w http.ResponseWriter, updates map[string]corner.Action) {
	bindings := h.engine.Bindings()
	for name, action := range updates {
		c, err := corner.Parse(name)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		bindings[c] = action
	}

	if err := h.repo.SaveBindings(bindings); err != nil {
		http.Error(w, fmt.Sprintf("Failed to save bindings: %v", err), http.StatusInternalServerError)
		return
	}
	h.engine.SetBindings(bindings)

	h.respondJSON(w, bindingsPayload(h.engine.Bindings()))
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	periodType := query.Get("period") // day, week, month

	var (
		events []*models.TriggerEvent
		err    error
	)

	if periodType != "" {
		period, perr := getPeriod(periodType)
		if perr != nil {
			http.Error(w, perr.Error(), http.StatusBadRequest)
			return
		}
		events, err = h.repo.GetTriggersSince(period.Start)
	} else {
		limit := 100
		if limitStr := query.Get("limit"); limitStr != "" {
			if l, lerr := strconv.Atoi(limitStr); lerr == nil && l > 0 {
				limit = l
			}
		}
		events, err = h.repo.GetRecentTriggers(limit)
	}
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to fetch history: %v", err), http.StatusInternalServerError)
		return
	}

	h.respondJSON(w, events)
}

func (h *Handler) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	periodType := r.URL.Query().Get("period")
	if periodType == "" {
		periodType = "day"
	}

	report, err := h.reporter.GenerateReport(periodType)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to generate report: %v", err), http.StatusInternalServerError)
		return
	}

	h.respondJSON(w, report)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	periodType := r.URL.Query().Get("period")
	if periodType == "" {
		periodType = "day"
	}

	period, err := getPeriod(periodType)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	summaries, err := h.repo.GetCornerSummarySince(period.Start)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to get summary: %v", err), http.StatusInternalServerError)
		return
	}

	totalTriggers := 0
	for i := range summaries {
		totalTriggers += summaries[i].TriggerCount
	}
	if totalTriggers > 0 {
		for i := range summaries {
			summaries[i].Percentage = (float64(summaries[i].TriggerCount) / float64(totalTriggers)) * 100.0
		}
	}

	if r.Header.Get("HX-Request") == "true" {
		h.respondSummaryHTML(w, summaries, totalTriggers)
		return
	}

	response := map[string]interface{}{
		"period":         period,
		"corners":        summaries,
		"total_triggers": totalTriggers,
	}

	h.respondJSON(w, response)
}

func (h *Handler) handleApplications(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	list, err := h.applications()
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to list applications: %v", err), http.StatusInternalServerError)
		return
	}
	if list == nil {
		list = []apps.Application{}
	}

	h.respondJSON(w, list)
}

func (h *Handler) handleMonitoringStart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := h.engine.Start(); err != nil {
		if errors.Is(err, engine.ErrPermissionDenied) {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to start monitoring: %v", err), http.StatusInternalServerError)
		return
	}

	h.respondJSON(w, h.engine.Status())
}

func (h *Handler) handleMonitoringStop(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.engine.Stop()
	h.respondJSON(w, h.engine.Status())
}

func (h *Handler) handleMonitoringRestart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := h.engine.Restart(); err != nil {
		if errors.Is(err, engine.ErrPermissionDenied) {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}
		http.Error(w, fmt.Sprintf("Failed to restart monitoring: %v", err), http.StatusInternalServerError)
		return
	}

	h.respondJSON(w, h.engine.Status())
}

func (h *Handler) handleErrors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	hours := 24
	if hoursStr := r.URL.Query().Get("hours"); hoursStr != "" {
		if n, err := strconv.Atoi(hoursStr); err == nil && n > 0 {
			hours = n
		}
	}

	logs, err := h.repo.GetErrorsSince(time.Now().Add(-time.Duration(hours) * time.Hour))
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to fetch errors: %v", err), http.StatusInternalServerError)
		return
	}

	h.respondJSON(w, logs)
}

// handleLive streams engine status frames over a websocket until the
// client goes away.
func (h *Handler) handleLive(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	// Reading drains control frames and notices the peer closing.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(liveInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteJSON(h.engine.Status()); err != nil {
				return
			}
		}
	}
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) respondStatusHTML(w http.ResponseWriter, status engine.Status) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	stateLabel := "Stopped"
	stateClass := "state-stopped"
	if status.Active {
		stateLabel = "Monitoring"
		stateClass = "state-active"
	}

	html := fmt.Sprintf(`<div class="status-line"><span class="state %s">%s</span>`, stateClass, stateLabel)
	if !status.PermissionGranted {
		html += `<span class="state state-warn">Permission missing</span>`
	}
	html += `</div>`

	if status.Active {
		html += fmt.Sprintf(`<div class="status-detail">Triggers this session: %d</div>`, status.TriggerCount)
		if status.LastCorner != "" {
			ago := utils.FormatRoundedUnit(time.Since(status.LastTriggerAt))
			html += fmt.Sprintf(`<div class="status-detail">Last corner: %s (%s ago)</div>`, status.LastCorner, ago)
		}
	}

	w.Write([]byte(html))
}

func (h *Handler) respondCornersHTML(w http.ResponseWriter, bindings corner.Bindings) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	cell := func(c corner.Corner) string {
		action := bindings[c]
		label := "unassigned"
		class := "corner empty"
		if action.IsAssigned() {
			label = action.Name
			if label == "" {
				label = action.Path
			}
			class = "corner bound"
		}
		return fmt.Sprintf(`<div class="%s %s" title="%s">%s</div>`, class, c.String(), action.Path, label)
	}

	html := `<div class="display-frame">`
	for _, c := range corner.Corners() {
		html += cell(c)
	}
	html += `</div>`

	w.Write([]byte(html))
}

func (h *Handler) respondSummaryHTML(w http.ResponseWriter, summaries []models.CornerSummary, totalTriggers int) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if len(summaries) == 0 {
		w.Write([]byte(`<div class="loading">No triggers yet</div>`))
		return
	}

	html := `<div class="listing">`
	for _, s := range summaries {
		percentStr := fmt.Sprintf("%.1f%%", s.Percentage)
		if s.Percentage < 10 {
			percentStr = "&nbsp;&nbsp;" + percentStr
		} else if s.Percentage < 100 {
			percentStr = "&nbsp;" + percentStr
		}

		html += fmt.Sprintf(`
		<div class="app-item" style="--bar-width: %.1f%%">
			<span class="app-name">%s &rarr; %s</span>
			<div>
				<span class="app-time">%d&times;</span>
				<span class="app-percentage">%s</span>
			</div>
		</div>`, s.Percentage, s.Corner, s.AppName, s.TriggerCount, percentStr)
	}
	html += `</div>`

	html += fmt.Sprintf(`<div class="total">Total: %d triggers</div>`, totalTriggers)

	w.Write([]byte(html))
}

// bindingsPayload keys bindings by corner name for the API.
func bindingsPayload(b corner.Bindings) map[string]corner.Action {
	payload := make(map[string]corner.Action, len(corner.Corners()))
	for _, c := range corner.Corners() {
		payload[c.String()] = b[c]
	}
	return payload
}

func getPeriod(periodType string) (*models.ReportPeriod, error) {
	now := time.Now()
	var start, end time.Time

	switch periodType {
	case "day", "today":
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		end = start.Add(24 * time.Hour)
	case "week":
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).AddDate(0, 0, -(weekday - 1))
		end = start.AddDate(0, 0, 7)
	case "month":
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 1, 0)
	default:
		return nil, fmt.Errorf("invalid period type: %s", periodType)
	}

	return &models.ReportPeriod{
		Start: start,
		End:   end,
		Type:  periodType,
	}, nil
}

func (h *Handler) respondJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, PUT, POST, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
