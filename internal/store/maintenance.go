package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"milling-shop-backend/internal/model"
	"milling-shop-backend/internal/parse"
)

func (in ActivityInput) record() (model.MaintenanceRecord, error) {
	machine := strings.TrimSpace(in.Machine)
	activity := strings.TrimSpace(in.Activity)
	if machine == "" || activity == "" {
		return model.MaintenanceRecord{}, validationf("machine and activity are required")
	}
	if in.IntervalCount < 0 {
		return model.MaintenanceRecord{}, validationf("interval count cannot be negative")
	}
	// Without both a count and a unit the label is stored as given.
	count, unit := in.IntervalCount, string(parse.NormalizeUnit(in.IntervalUnit))
	if count == 0 || unit == "" {
		count, unit = 0, ""
	}
	return model.MaintenanceRecord{
		Machine:       machine,
		Activity:      activity,
		IntervalCount: count,
		IntervalUnit:  unit,
		ActivityText:  parse.FormatActivity(activity, count, unit),
		Description:   strings.TrimSpace(in.Description),
	}, nil
}

// RecordActivity stores a maintenance activity performed now.
func (s *gormStore) RecordActivity(ctx context.Context, in ActivityInput) (model.MaintenanceRecord, error) {
	rec, err := in.record()
	if err != nil {
		return model.MaintenanceRecord{}, err
	}
	rec.PerformedAt = s.now()
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return model.MaintenanceRecord{}, fmt.Errorf("failed to record maintenance on %q: %w", rec.Machine, err)
	}
	return rec, nil
}

// ListMaintenance returns every record, most recently performed first.
func (s *gormStore) ListMaintenance(ctx context.Context) ([]model.MaintenanceRecord, error) {
	var recs []model.MaintenanceRecord
	if err := s.db.WithContext(ctx).Order("performed_at DESC, id DESC").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("failed to list maintenance: %w", err)
	}
	return recs, nil
}

// EditMaintenance rewrites a record's machine, activity and recurrence.
// The performed date is kept.
func (s *gormStore) EditMaintenance(ctx context.Context, id int64, in ActivityInput) (model.MaintenanceRecord, error) {
	next, err := in.record()
	if err != nil {
		return model.MaintenanceRecord{}, err
	}

	var rec model.MaintenanceRecord
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rec, id).Error; err != nil {
			return lookupErr(err, "maintenance record", id)
		}
		next.ID = rec.ID
		next.PerformedAt = rec.PerformedAt
		rec = next
		if err := tx.Save(&rec).Error; err != nil {
			return fmt.Errorf("failed to update maintenance record %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return model.MaintenanceRecord{}, err
	}
	return rec, nil
}

// DeleteMaintenance removes a record. Discarding an upcoming activity is the
// same operation.
func (s *gormStore) DeleteMaintenance(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&model.MaintenanceRecord{}, id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete maintenance record %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound("maintenance record", id)
	}
	return nil
}

// MarkDone records the activity of an existing record again, performed now.
// The original record is kept.
func (s *gormStore) MarkDone(ctx context.Context, id int64) (model.MaintenanceRecord, error) {
	var done model.MaintenanceRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prev model.MaintenanceRecord
		if err := tx.First(&prev, id).Error; err != nil {
			return lookupErr(err, "maintenance record", id)
		}
		done = prev
		done.ID = 0
		done.PerformedAt = s.now()
		if err := tx.Create(&done).Error; err != nil {
			return fmt.Errorf("failed to record maintenance on %q: %w", prev.Machine, err)
		}
		return nil
	})
	if err != nil {
		return model.MaintenanceRecord{}, err
	}
	s.log.WithFields(logrus.Fields{"from_id": id, "id": done.ID, "machine": done.Machine}).Info("maintenance marked done")
	return done, nil
}
