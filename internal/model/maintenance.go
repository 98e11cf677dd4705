package model

import "time"

// MaintenanceRecord is one performed maintenance activity on a machine.
// IntervalCount and IntervalUnit hold the recurrence; ActivityText is the
// display label the records are grouped by.
type MaintenanceRecord struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	Machine       string    `gorm:"size:100;not null;index" json:"machine"`
	Activity      string    `gorm:"size:200;not null" json:"activity"`
	IntervalCount int       `json:"interval_count,omitempty"`
	IntervalUnit  string    `gorm:"size:20" json:"interval_unit,omitempty"`
	ActivityText  string    `gorm:"size:200;not null" json:"activity_text"`
	Description   string    `gorm:"size:200" json:"description"`
	PerformedAt   time.Time `gorm:"not null;index" json:"performed_at"`
}

// Setting is a configuration entry. Most values are comma-joined lists.
type Setting struct {
	ID    int64  `gorm:"primaryKey"`
	Key   string `gorm:"size:50;uniqueIndex;not null"`
	Value string `gorm:"type:text;not null"`
}
