package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sejacapricho/printshop-backend/pkg/db/models"
	"github.com/sejacapricho/printshop-backend/pkg/enums"
)

// Filters describe the inputs supported by the orders list.
type Filters struct {
	PaymentStatus  *enums.PaymentStatus
	DeliveryStatus *enums.DeliveryStatus
	CustomerID     *uuid.UUID
	DateFrom       *time.Time
	DateTo         *time.Time
	Query          string
}

// Summary is one order row in the list, annotated with its urgency.
type Summary struct {
	Order   models.Order  `json:"order"`
	Urgency enums.Urgency `json:"urgency"`
	Color   string        `json:"color"`
}

// List wraps the paginated orders plus the next page cursor.
type List struct {
	Orders     []models.Order `json:"-"`
	Summaries  []Summary      `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// StatusCounts aggregates the dashboard panel numbers.
type StatusCounts struct {
	Total          int64           `json:"total"`
	PendingPayment int64           `json:"pending_payment"`
	InProduction   int64           `json:"in_production"`
	Delivered      int64           `json:"delivered"`
	PaidRevenue    decimal.Decimal `json:"paid_revenue"`
}
