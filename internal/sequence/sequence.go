package sequence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/sejacapricho/printshop-backend/pkg/db/models"
)

// Next increments the named counter and returns the new value in one
// statement, so concurrent creations never observe the same number. Callers
// run it inside the same transaction that inserts the numbered row.
func Next(ctx context.Context, tx *gorm.DB, name string) (int64, error) {
	var value int64
	err := tx.WithContext(ctx).
		Raw("UPDATE sequence_counters SET value = value + 1, updated_at = CURRENT_TIMESTAMP WHERE name = ? RETURNING value", name).
		Scan(&value).Error
	if err != nil {
		return 0, fmt.Errorf("advance sequence %q: %w", name, err)
	}
	if value == 0 {
		return 0, fmt.Errorf("sequence %q is not seeded", name)
	}
	return value, nil
}

// Format renders a sequence value the way it appears on documents and
// screens: zero-padded to four digits, growing naturally past 9999.
func Format(value int64) string {
	return fmt.Sprintf("%04d", value)
}

// Seeded returns the counter names every installation must carry.
func Seeded() []string {
	return []string{models.SequenceOrders, models.SequenceBudgets}
}
