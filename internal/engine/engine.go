// Package engine implements the corner-detection and triggering loop: it
// polls the cursor position, hit-tests it against every display corner,
// debounces repeat hits and launches the application bound to the corner.
package engine

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hotcorners/hotcorners/internal/config"
	"github.com/hotcorners/hotcorners/internal/models"
	"github.com/hotcorners/hotcorners/pkg/corner"
	"github.com/hotcorners/hotcorners/pkg/screen"
)

// ErrPermissionDenied is returned by Start when the OS does not allow this
// process to observe the global cursor position.
var ErrPermissionDenied = errors.New("accessibility permission denied")

// Recorder persists trigger events and error logs. *database.Repository
// satisfies it; a nil Recorder disables persistence.
type Recorder interface {
	CreateTrigger(event *models.TriggerEvent) error
	CreateErrorLog(errorLog *models.ErrorLog) error
}

// Engine owns the monitoring lifecycle. All state is guarded by mu; the
// polling goroutine and callers such as the web handlers may touch it
// concurrently.
type Engine struct {
	cfg      *config.Config
	provider screen.Provider
	gate     screen.PermissionGate
	launcher screen.Launcher
	recorder Recorder
	logger   *zap.Logger

	mu                sync.RWMutex
	active            bool
	permissionGranted bool
	bindings          corner.Bindings
	memory            TriggerMemory
	sessionID         string
	startedAt         time.Time
	lastPosition      screen.Point
	lastChecked       time.Time
	lastCorner        corner.Corner
	hasLastCorner     bool
	triggerCount      int64

	stopCh chan struct{}
	doneCh chan struct{}

	now func() time.Time
}

// Status is a snapshot of the engine for the CLI and the dashboard.
type Status struct {
	Active            bool      `json:"active"`
	PermissionGranted bool      `json:"permission_granted"`
	SessionID         string    `json:"session_id,omitempty"`
	StartedAt         time.Time `json:"started_at,omitempty"`
	LastPosition      string    `json:"last_position,omitempty"`
	LastCorner        string    `json:"last_corner,omitempty"`
	LastTriggerAt     time.Time `json:"last_trigger_at,omitempty"`
	TriggerCount      int64     `json:"trigger_count"`
}

// New creates an engine with its collaborators injected. recorder may be
// nil when persistence is not wanted (tests, dry runs).
func New(cfg *config.Config, provider screen.Provider, gate screen.PermissionGate, launcher screen.Launcher, recorder Recorder, logger *zap.Logger) *Engine {
	if logger == nil {
		logger, _ = zap.NewProduction()
	}
	return &Engine{
		cfg:      cfg,
		provider: provider,
		gate:     gate,
		launcher: launcher,
		recorder: recorder,
		logger:   logger.Named("engine"),
		bindings: corner.NewBindings(),
		now:      time.Now,
	}
}

// Start begins monitoring. It is a no-op when already active. When the
// accessibility capability is missing the OS prompt is raised and
// ErrPermissionDenied is returned; polling does not begin.
func (e *Engine) Start() error {
	return e.start(true)
}

// Restart stops and starts monitoring. Used after configuration changes
// and after the system wakes from sleep, when the OS polling primitive can
// be stale. The permission check on the way back up is silent.
func (e *Engine) Restart() error {
	e.logger.Info("restarting corner monitoring")
	e.Stop()
	return e.start(false)
}

func (e *Engine) start(prompt bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active {
		e.logger.Debug("start requested but monitoring is already active")
		return nil
	}

	granted := e.gate.CheckPermission(prompt)
	e.permissionGranted = granted
	if !granted {
		e.logger.Warn("cannot start monitoring", zap.Error(ErrPermissionDenied))
		return ErrPermissionDenied
	}

	e.active = true
	e.sessionID = uuid.NewString()
	e.startedAt = e.now()
	e.stopCh = make(chan struct{})
	e.doneCh = make(chan struct{})

	e.logger.Info("starting corner monitoring",
		zap.String("session", e.sessionID),
		zap.Duration("interval", e.cfg.Engine.PollInterval),
		zap.Float64("tolerance", e.cfg.Engine.Tolerance),
		zap.Duration("cooldown", e.cfg.Engine.Cooldown),
	)

	go e.run(e.stopCh, e.doneCh)
	return nil
}

// Stop cancels the polling timer and waits for the loop to exit. Safe to
// call when already stopped, and safe to call twice.
func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.active {
		e.mu.Unlock()
		return
	}
	e.active = false
	close(e.stopCh)
	doneCh := e.doneCh
	e.mu.Unlock()

	<-doneCh
	e.logger.Info("corner monitoring stopped")
}

// run is the polling loop. The channels are passed in so a restart cannot
// race against the fields being reassigned.
func (e *Engine) run(stopCh, doneCh chan struct{}) {
	defer close(doneCh)

	// Check immediately so a cursor already parked in a corner is not
	// delayed by a full interval.
	e.checkOnce()

	ticker := time.NewTicker(e.cfg.Engine.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			e.checkOnce()
		}
	}
}

// checkOnce performs one poll cycle: query, detect, debounce, trigger.
func (e *Engine) checkOnce() {
	pos, err := e.provider.CursorPosition()
	if err != nil {
		e.logger.Debug("cursor query failed", zap.Error(err))
		return
	}

	displays, err := e.provider.Displays()
	if err != nil {
		e.logger.Debug("display query failed", zap.Error(err))
		return
	}

	now := e.now()

	e.mu.Lock()
	e.lastPosition = pos
	e.lastChecked = now
	tolerance := e.cfg.Engine.Tolerance
	cooldown := e.cfg.Engine.Cooldown
	e.mu.Unlock()

	hit, ok := corner.Detect(pos, displays, tolerance)
	if !ok {
		return
	}

	e.mu.Lock()
	if !e.memory.ShouldTrigger(hit.Corner, now, cooldown) {
		e.mu.Unlock()
		return
	}
	e.memory.Record(hit.Corner, now)
	e.lastCorner = hit.Corner
	e.hasLastCorner = true
	action := e.bindings[hit.Corner]
	if action.IsAssigned() {
		e.triggerCount++
	}
	e.mu.Unlock()

	if !action.IsAssigned() {
		e.logger.Debug("corner has no binding", zap.String("corner", hit.Corner.String()))
		return
	}

	e.logger.Info("corner triggered",
		zap.String("corner", hit.Corner.String()),
		zap.String("app", action.Name),
		zap.Int("display", hit.Display.ID),
	)

	// Fire and forget: the poll loop never waits on the OS launch call.
	go e.launch(hit, pos, action, now)
}

// launch invokes the OS launch capability and records the outcome. A
// failed launch is logged and stored but never retried or surfaced.
func (e *Engine) launch(hit corner.Hit, pos screen.Point, action corner.Action, at time.Time) {
	err := e.launcher.Launch(action.Path)

	event := &models.TriggerEvent{
		Timestamp: at,
		Corner:    hit.Corner.String(),
		DisplayID: hit.Display.ID,
		CursorX:   pos.X,
		CursorY:   pos.Y,
		AppName:   action.Name,
		AppPath:   action.Path,
		Launched:  err == nil,
	}
	if err != nil {
		event.LaunchErr = err.Error()
		e.logger.Warn("launch failed",
			zap.String("app", action.Path),
			zap.Error(err),
		)
		e.recordError("launcher", err)
	}
	e.recordTrigger(event)
}

func (e *Engine) recordTrigger(event *models.TriggerEvent) {
	if e.recorder == nil {
		return
	}
	if err := e.recorder.CreateTrigger(event); err != nil {
		e.logger.Warn("failed to record trigger", zap.Error(err))
	}
}

func (e *Engine) recordError(component string, cause error) {
	if e.recorder == nil {
		return
	}
	entry := &models.ErrorLog{
		Timestamp: e.now(),
		Component: component,
		ErrorMsg:  cause.Error(),
	}
	if err := e.recorder.CreateErrorLog(entry); err != nil {
		e.logger.Warn("failed to record error", zap.Error(err))
	}
}

// CheckPermission queries the permission gate and caches the result so the
// CLI and dashboard can observe it. prompt=true additionally raises the
// OS permission dialog when access is missing.
func (e *Engine) CheckPermission(prompt bool) bool {
	granted := e.gate.CheckPermission(prompt)

	e.mu.Lock()
	changed := granted != e.permissionGranted
	e.permissionGranted = granted
	e.mu.Unlock()

	if changed {
		e.logger.Info("accessibility permission changed", zap.Bool("granted", granted))
	}
	return granted
}

// Active reports whether the polling loop is running.
func (e *Engine) Active() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.active
}

// PermissionGranted returns the last observed permission flag.
func (e *Engine) PermissionGranted() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.permissionGranted
}

// Bindings returns a copy of the current corner mapping.
func (e *Engine) Bindings() corner.Bindings {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.bindings.Clone()
}

// SetBindings replaces the corner mapping. The map is normalized so all
// four corners stay present.
func (e *Engine) SetBindings(b corner.Bindings) {
	nb := b.Clone()
	nb.Normalize()

	e.mu.Lock()
	e.bindings = nb
	e.mu.Unlock()

	e.logger.Info("corner bindings updated", zap.Int("assigned", nb.Assigned()))
}

// Status returns a snapshot of the engine state.
func (e *Engine) Status() Status {
	e.mu.RLock()
	defer e.mu.RUnlock()

	st := Status{
		Active:            e.active,
		PermissionGranted: e.permissionGranted,
		TriggerCount:      e.triggerCount,
	}
	if e.active {
		st.SessionID = e.sessionID
		st.StartedAt = e.startedAt
	}
	if !e.lastChecked.IsZero() {
		st.LastPosition = fmt.Sprintf("(%.0f, %.0f)", e.lastPosition.X, e.lastPosition.Y)
	}
	if e.hasLastCorner {
		st.LastCorner = e.lastCorner.String()
		if _, at, ok := e.memory.Last(); ok {
			st.LastTriggerAt = at
		}
	}
	return st
}
