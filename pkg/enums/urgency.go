package enums

// Urgency is the derived presentation classification of an order. It is
// never stored; display surfaces recompute it from lifecycle state.
type Urgency string

const (
	UrgencyDelivered Urgency = "delivered"
	UrgencyPaid      Urgency = "paid"
	UrgencyOverdue   Urgency = "overdue"
	UrgencyRecent    Urgency = "recent"
)

// String implements fmt.Stringer.
func (u Urgency) String() string {
	return string(u)
}

// Color returns the hex border color the UI paints for this classification.
func (u Urgency) Color() string {
	switch u {
	case UrgencyDelivered:
		return "#1F6FEB"
	case UrgencyPaid:
		return "#238636"
	case UrgencyOverdue:
		return "#DA3633"
	default:
		return "#FFD700"
	}
}
