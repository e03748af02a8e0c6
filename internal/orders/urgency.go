package orders

import (
	"time"

	"github.com/sejacapricho/printshop-backend/pkg/db/models"
	"github.com/sejacapricho/printshop-backend/pkg/enums"
)

// overdueAfter is how long an order may sit unpaid and undelivered before it
// is flagged.
const overdueAfter = 24 * time.Hour

// UrgencyFor classifies an order for display. Delivery wins over payment,
// payment over age: a delivered order is never shown as overdue even when it
// was never paid.
func UrgencyFor(order *models.Order, now time.Time) enums.Urgency {
	switch {
	case order.DeliveryStatus == enums.DeliveryStatusDelivered:
		return enums.UrgencyDelivered
	case order.PaymentStatus == enums.PaymentStatusPaid:
		return enums.UrgencyPaid
	case now.Sub(order.CreatedAt) > overdueAfter:
		return enums.UrgencyOverdue
	default:
		return enums.UrgencyRecent
	}
}
