package database

import (
	"time"

	"github.com/hotcorners/hotcorners/internal/models"
	"github.com/hotcorners/hotcorners/pkg/corner"

	"github.com/pkg/errors"

	"gorm.io/gorm"
)

// Repository handles all database operations for corner bindings and
// trigger events
type Repository struct {
	db *DB
}

// NewRepository creates a new repository instance
func NewRepository(db *DB) *Repository {
	return &Repository{db: db}
}

// actionColumns spells the assignment out as a map. A struct here would
// make GORM skip zero values, and unassigning a corner writes exactly those.
func actionColumns(action corner.Action) map[string]interface{} {
	return map[string]interface{}{
		"app_name": action.Name,
		"app_path": action.Path,
		"app_icon": action.Icon,
	}
}

// SaveBinding upserts the binding row for a single corner
func (r *Repository) SaveBinding(c corner.Corner, action corner.Action) error {
	var row models.CornerBinding
	result := r.db.
		Where(models.CornerBinding{Corner: c.String()}).
		Assign(actionColumns(action)).
		FirstOrCreate(&row)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to save corner binding")
	}
	return nil
}

// SaveBindings persists the full corner mapping in one transaction
func (r *Repository) SaveBindings(bindings corner.Bindings) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		for _, c := range corner.Corners() {
			var row models.CornerBinding
			result := tx.
				Where(models.CornerBinding{Corner: c.String()}).
				Assign(actionColumns(bindings[c])).
				FirstOrCreate(&row)
			if result.Error != nil {
				return result.Error
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "failed to save corner bindings")
	}
	return nil
}

// LoadBindings reads the corner mapping from the database. Corners without
// a row come back unassigned, so the result always covers all four corners.
func (r *Repository) LoadBindings() (corner.Bindings, error) {
	var rows []models.CornerBinding
	result := r.db.Find(&rows)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to load corner bindings")
	}

	bindings := corner.NewBindings()
	for _, row := range rows {
		c, err := corner.Parse(row.Corner)
		if err != nil {
			continue // ignore rows written by a newer or corrupted schema
		}
		bindings[c] = corner.Action{Name: row.AppName, Path: row.AppPath, Icon: row.AppIcon}
	}
	return bindings, nil
}

// CreateTrigger inserts a new trigger event into the database
func (r *Repository) CreateTrigger(event *models.TriggerEvent) error {
	result := r.db.Create(event)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert trigger event")
	}
	return nil
}

// GetTriggersSince retrieves all trigger events since a given time
func (r *Repository) GetTriggersSince(since time.Time) ([]*models.TriggerEvent, error) {
	var events []*models.TriggerEvent
	result := r.db.Where("timestamp >= ?", since).Order("timestamp ASC").Find(&events)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query trigger events")
	}

	return events, nil
}

// GetRecentTriggers retrieves the most recent trigger events, newest first
func (r *Repository) GetRecentTriggers(limit int) ([]*models.TriggerEvent, error) {
	var events []*models.TriggerEvent
	result := r.db.Order("timestamp DESC").Limit(limit).Find(&events)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query recent triggers")
	}

	return events, nil
}

// GetCornerSummarySince returns per-corner trigger counts since a given time
func (r *Repository) GetCornerSummarySince(since time.Time) ([]models.CornerSummary, error) {
	var summaries []models.CornerSummary

	result := r.db.Model(&models.TriggerEvent{}).
		Select("corner, app_name, COUNT(*) as trigger_count, MAX(timestamp) as last_triggered").
		Where("timestamp >= ?", since).
		Group("corner, app_name").
		Order("trigger_count DESC").
		Scan(&summaries)

	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query corner summary")
	}

	return summaries, nil
}

// DeleteOldTriggers deletes trigger events older than a specified date
// (soft delete)
func (r *Repository) DeleteOldTriggers(before time.Time) (int64, error) {
	result := r.db.Where("timestamp < ?", before).Delete(&models.TriggerEvent{})
	if result.Error != nil {
		return 0, errors.Wrap(result.Error, "failed to delete old triggers")
	}
	return result.RowsAffected, nil
}

// GetLatestTrigger retrieves the most recent trigger event
func (r *Repository) GetLatestTrigger() (*models.TriggerEvent, error) {
	var event models.TriggerEvent
	result := r.db.Order("timestamp DESC").First(&event)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, errors.Wrap(result.Error, "failed to get latest trigger")
	}
	return &event, nil
}

// CreateErrorLog inserts a new error log into the database
func (r *Repository) CreateErrorLog(errorLog *models.ErrorLog) error {
	result := r.db.Create(errorLog)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to insert error log")
	}
	return nil
}

// GetErrorsSince retrieves error logs since a given time
func (r *Repository) GetErrorsSince(since time.Time) ([]*models.ErrorLog, error) {
	var logs []*models.ErrorLog
	result := r.db.Where("timestamp >= ?", since).Order("timestamp DESC").Find(&logs)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query error logs")
	}
	return logs, nil
}

// Clear removes all trigger events from the database
func (r *Repository) Clear() error {
	result := r.db.Exec("DELETE FROM trigger_events")
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to clear trigger events")
	}
	return nil
}
