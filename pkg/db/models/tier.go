package models

import "time"

// Tier is a named pricing bracket. A tier with a quantity range is a volume
// tier eligible for quantity matching; one without is only usable via direct
// account assignment. Priority orders volume tiers ascending when set.
type Tier struct {
	ID          string     `gorm:"column:id;primaryKey"`
	Name        string     `gorm:"column:name;not null"`
	MinQuantity *int       `gorm:"column:min_quantity"`
	MaxQuantity *int       `gorm:"column:max_quantity"`
	Priority    *int       `gorm:"column:priority"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
