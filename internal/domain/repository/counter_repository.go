package repository

import "gorm.io/gorm"

// CounterRepository hands out monotonically increasing sequence
// numbers for human-readable codes (PAT-NNN, APT-NNN). Next must be
// atomic so concurrent creations never share a number.
type CounterRepository interface {
	Next(db *gorm.DB, name string) (int64, error)
}
