package models

// SequenceCounter backs race-safe human-readable numbering for budgets and
// orders. Incremented with a single UPDATE ... RETURNING inside the creation
// transaction; never read-then-written.
type SequenceCounter struct {
	Name  string `gorm:"column:name;primaryKey"`
	Value int64  `gorm:"column:value;not null;default:0"`
}

const (
	SequenceOrders  = "orders"
	SequenceBudgets = "budgets"
)
