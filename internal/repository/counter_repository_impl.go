package repository

import (
	domainRepo "clinic-api/internal/domain/repository"

	"gorm.io/gorm"
)

type counterRepository struct{}

func NewCounterRepository() domainRepo.CounterRepository {
	return &counterRepository{}
}

// Next increments and returns the named sequence in a single atomic
// statement, so concurrent callers never observe the same value.
func (r *counterRepository) Next(db *gorm.DB, name string) (int64, error) {
	var value int64
	err := db.Raw(
		`INSERT INTO counters (name, value) VALUES (?, 1)
		 ON CONFLICT (name) DO UPDATE SET value = counters.value + 1
		 RETURNING value`,
		name,
	).Scan(&value).Error
	if err != nil {
		return 0, err
	}
	return value, nil
}
