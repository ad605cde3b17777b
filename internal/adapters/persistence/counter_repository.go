package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CounterModel represents the counters table
type CounterModel struct {
	Name      string    `gorm:"column:name;primaryKey"`
	Total     int64     `gorm:"column:total;not null;default:0"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (CounterModel) TableName() string {
	return "counters"
}

// ErrCounterNotFound is returned when a counter has never been incremented
var ErrCounterNotFound = errors.New("counter not found")

// GormCounterRepository stores named counters using GORM
type GormCounterRepository struct {
	db *gorm.DB
}

// NewGormCounterRepository creates a new GORM counter repository
func NewGormCounterRepository(db *gorm.DB) *GormCounterRepository {
	return &GormCounterRepository{db: db}
}

// Increment adds by to the named counter, creating it at zero first, and
// returns the new total
func (r *GormCounterRepository) Increment(ctx context.Context, name string, by int64) (int64, error) {
	var model CounterModel

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Upsert: create or add to the existing total
		result := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "name"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"total":      gorm.Expr("counters.total + ?", by),
				"updated_at": time.Now(),
			}),
		}).Create(&CounterModel{Name: name, Total: by, UpdatedAt: time.Now()})
		if result.Error != nil {
			return result.Error
		}

		return tx.Where("name = ?", name).First(&model).Error
	})
	if err != nil {
		return 0, fmt.Errorf("failed to increment counter %s: %w", name, err)
	}

	return model.Total, nil
}

// Get returns the current total of the named counter
func (r *GormCounterRepository) Get(ctx context.Context, name string) (int64, error) {
	var model CounterModel
	result := r.db.WithContext(ctx).Where("name = ?", name).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%w: %s", ErrCounterNotFound, name)
		}
		return 0, fmt.Errorf("failed to find counter: %w", result.Error)
	}

	return model.Total, nil
}
