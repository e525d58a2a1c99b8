package engine

import (
	"time"

	"github.com/hotcorners/hotcorners/pkg/corner"
)

// TriggerMemory remembers the last corner that fired and when, which is
// all the state the cooldown needs. The zero value accepts the first
// trigger unconditionally.
type TriggerMemory struct {
	lastCorner corner.Corner
	lastAt     time.Time
	hasLast    bool
}

// ShouldTrigger reports whether a detection of c at now may fire. A
// different corner fires immediately; the same corner fires only once the
// cooldown has fully elapsed since the last accepted trigger.
func (m *TriggerMemory) ShouldTrigger(c corner.Corner, now time.Time, cooldown time.Duration) bool {
	if !m.hasLast || c != m.lastCorner {
		return true
	}
	return now.Sub(m.lastAt) > cooldown
}

// Record marks an accepted trigger. Suppressed detections must not be
// recorded, otherwise a cursor parked in a corner would keep pushing the
// cooldown window forward and never fire again.
func (m *TriggerMemory) Record(c corner.Corner, now time.Time) {
	m.lastCorner = c
	m.lastAt = now
	m.hasLast = true
}

// Last returns the last accepted corner and time, if any.
func (m *TriggerMemory) Last() (corner.Corner, time.Time, bool) {
	return m.lastCorner, m.lastAt, m.hasLast
}
