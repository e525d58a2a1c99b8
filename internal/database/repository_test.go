package database

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/hotcorners/hotcorners/internal/models"
	"github.com/hotcorners/hotcorners/pkg/corner"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	db, err := Connect(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Connect() returned error: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.Initialize(); err != nil {
		t.Fatalf("Initialize() returned error: %v", err)
	}

	return NewRepository(db)
}

func TestBindingsRoundTrip(t *testing.T) {
	repo := newTestRepository(t)

	saved := corner.NewBindings()
	saved[corner.TopLeft] = corner.Action{Name: "Terminal", Path: "/usr/bin/xterm", Icon: "utilities-terminal"}
	saved[corner.BottomRight] = corner.Action{Name: "Files", Path: "/usr/bin/nautilus"}

	if err := repo.SaveBindings(saved); err != nil {
		t.Fatalf("SaveBindings() returned error: %v", err)
	}

	loaded, err := repo.LoadBindings()
	if err != nil {
		t.Fatalf("LoadBindings() returned error: %v", err)
	}

	if len(loaded) != 4 {
		t.Fatalf("LoadBindings() returned %d corners, want 4", len(loaded))
	}
	for _, c := range corner.Corners() {
		if loaded[c] != saved[c] {
			t.Errorf("loaded[%v] = %+v, want %+v", c, loaded[c], saved[c])
		}
	}
}

func TestSaveBindingsOverwrites(t *testing.T) {
	repo := newTestRepository(t)

	first := corner.NewBindings()
	first[corner.TopLeft] = corner.Action{Name: "Terminal", Path: "/usr/bin/xterm"}
	if err := repo.SaveBindings(first); err != nil {
		t.Fatalf("SaveBindings() returned error: %v", err)
	}

	second := corner.NewBindings()
	second[corner.TopLeft] = corner.Action{Name: "Editor", Path: "/usr/bin/gedit"}
	if err := repo.SaveBindings(second); err != nil {
		t.Fatalf("SaveBindings() returned error: %v", err)
	}

	loaded, err := repo.LoadBindings()
	if err != nil {
		t.Fatalf("LoadBindings() returned error: %v", err)
	}
	if got := loaded[corner.TopLeft].Name; got != "Editor" {
		t.Errorf("loaded[TopLeft].Name = %q, want %q", got, "Editor")
	}

	// The upsert must not accumulate rows.
	var count int64
	repo.db.Model(&models.CornerBinding{}).Count(&count)
	if count != 4 {
		t.Errorf("binding row count = %d, want 4", count)
	}
}

func TestSaveBindingUnassigns(t *testing.T) {
	repo := newTestRepository(t)

	bound := corner.Action{Name: "Terminal", Path: "/usr/bin/xterm", Icon: "utilities-terminal"}
	if err := repo.SaveBinding(corner.TopLeft, bound); err != nil {
		t.Fatalf("SaveBinding() returned error: %v", err)
	}

	// Writing the zero action must clear every column of the existing row.
	if err := repo.SaveBinding(corner.TopLeft, corner.Action{}); err != nil {
		t.Fatalf("SaveBinding() returned error: %v", err)
	}

	loaded, err := repo.LoadBindings()
	if err != nil {
		t.Fatalf("LoadBindings() returned error: %v", err)
	}
	if loaded[corner.TopLeft].IsAssigned() {
		t.Errorf("loaded[TopLeft] = %+v, want unassigned", loaded[corner.TopLeft])
	}
}

func TestLoadBindingsEmptyDatabase(t *testing.T) {
	repo := newTestRepository(t)

	loaded, err := repo.LoadBindings()
	if err != nil {
		t.Fatalf("LoadBindings() returned error: %v", err)
	}

	if len(loaded) != 4 {
		t.Fatalf("LoadBindings() returned %d corners, want 4", len(loaded))
	}
	for _, c := range corner.Corners() {
		if loaded[c].IsAssigned() {
			t.Errorf("loaded[%v] should be unassigned on an empty database", c)
		}
	}
}

func TestSaveBinding(t *testing.T) {
	repo := newTestRepository(t)

	action := corner.Action{Name: "Browser", Path: "/usr/bin/firefox"}
	if err := repo.SaveBinding(corner.TopRight, action); err != nil {
		t.Fatalf("SaveBinding() returned error: %v", err)
	}

	loaded, err := repo.LoadBindings()
	if err != nil {
		t.Fatalf("LoadBindings() returned error: %v", err)
	}
	if loaded[corner.TopRight] != action {
		t.Errorf("loaded[TopRight] = %+v, want %+v", loaded[corner.TopRight], action)
	}
}

func TestTriggerHistory(t *testing.T) {
	repo := newTestRepository(t)

	base := time.Now().Add(-time.Hour)
	for i, c := range []string{"top-left", "top-left", "bottom-right"} {
		event := &models.TriggerEvent{
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Corner:    c,
			AppName:   "Terminal",
			AppPath:   "/usr/bin/xterm",
			Launched:  true,
		}
		if err := repo.CreateTrigger(event); err != nil {
			t.Fatalf("CreateTrigger() returned error: %v", err)
		}
	}

	events, err := repo.GetTriggersSince(base.Add(-time.Minute))
	if err != nil {
		t.Fatalf("GetTriggersSince() returned error: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("GetTriggersSince() returned %d events, want 3", len(events))
	}
	if !events[0].Timestamp.Before(events[2].Timestamp) {
		t.Error("GetTriggersSince() should order events oldest first")
	}

	recent, err := repo.GetRecentTriggers(2)
	if err != nil {
		t.Fatalf("GetRecentTriggers() returned error: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("GetRecentTriggers(2) returned %d events, want 2", len(recent))
	}
	if recent[0].Corner != "bottom-right" {
		t.Errorf("GetRecentTriggers() first corner = %q, want %q", recent[0].Corner, "bottom-right")
	}

	latest, err := repo.GetLatestTrigger()
	if err != nil {
		t.Fatalf("GetLatestTrigger() returned error: %v", err)
	}
	if latest == nil || latest.Corner != "bottom-right" {
		t.Errorf("GetLatestTrigger() = %+v, want bottom-right event", latest)
	}

	summary, err := repo.GetCornerSummarySince(base.Add(-time.Minute))
	if err != nil {
		t.Fatalf("GetCornerSummarySince() returned error: %v", err)
	}
	if len(summary) != 2 {
		t.Fatalf("GetCornerSummarySince() returned %d rows, want 2", len(summary))
	}
	if summary[0].Corner != "top-left" || summary[0].TriggerCount != 2 {
		t.Errorf("summary[0] = %+v, want top-left with 2 triggers", summary[0])
	}
}

func TestGetLatestTriggerEmpty(t *testing.T) {
	repo := newTestRepository(t)

	latest, err := repo.GetLatestTrigger()
	if err != nil {
		t.Fatalf("GetLatestTrigger() returned error: %v", err)
	}
	if latest != nil {
		t.Errorf("GetLatestTrigger() = %+v, want nil on empty database", latest)
	}
}

func TestClear(t *testing.T) {
	repo := newTestRepository(t)

	event := &models.TriggerEvent{
		Timestamp: time.Now(),
		Corner:    "top-left",
		AppName:   "Terminal",
		AppPath:   "/usr/bin/xterm",
	}
	if err := repo.CreateTrigger(event); err != nil {
		t.Fatalf("CreateTrigger() returned error: %v", err)
	}

	if err := repo.Clear(); err != nil {
		t.Fatalf("Clear() returned error: %v", err)
	}

	events, err := repo.GetTriggersSince(time.Time{})
	if err != nil {
		t.Fatalf("GetTriggersSince() returned error: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("Clear() left %d events, want 0", len(events))
	}
}

func TestDeleteOldTriggers(t *testing.T) {
	repo := newTestRepository(t)

	now := time.Now()
	for _, ts := range []time.Time{now.AddDate(0, 0, -40), now.AddDate(0, 0, -10), now} {
		event := &models.TriggerEvent{
			Timestamp: ts,
			Corner:    "top-left",
			AppName:   "Terminal",
			AppPath:   "/usr/bin/xterm",
		}
		if err := repo.CreateTrigger(event); err != nil {
			t.Fatalf("CreateTrigger() returned error: %v", err)
		}
	}

	deleted, err := repo.DeleteOldTriggers(now.AddDate(0, 0, -30))
	if err != nil {
		t.Fatalf("DeleteOldTriggers() returned error: %v", err)
	}
	if deleted != 1 {
		t.Errorf("DeleteOldTriggers() deleted %d rows, want 1", deleted)
	}

	events, err := repo.GetTriggersSince(time.Time{})
	if err != nil {
		t.Fatalf("GetTriggersSince() returned error: %v", err)
	}
	if len(events) != 2 {
		t.Errorf("%d events remain, want 2", len(events))
	}
}
