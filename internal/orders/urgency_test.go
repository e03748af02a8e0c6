package orders

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sejacapricho/printshop-backend/pkg/db/models"
	"github.com/sejacapricho/printshop-backend/pkg/enums"
)

func TestUrgencyPrecedence(t *testing.T) {
	now := time.Now()
	old := now.Add(-48 * time.Hour)

	cases := []struct {
		name  string
		order models.Order
		want  enums.Urgency
	}{
		{
			name: "delivered wins even when unpaid and old",
			order: models.Order{
				PaymentStatus:  enums.PaymentStatusPending,
				DeliveryStatus: enums.DeliveryStatusDelivered,
				CreatedAt:      old,
			},
			want: enums.UrgencyDelivered,
		},
		{
			name: "paid wins over overdue age",
			order: models.Order{
				PaymentStatus:  enums.PaymentStatusPaid,
				DeliveryStatus: enums.DeliveryStatusProduction,
				CreatedAt:      old,
			},
			want: enums.UrgencyPaid,
		},
		{
			name: "unpaid in production past a day is overdue",
			order: models.Order{
				PaymentStatus:  enums.PaymentStatusPending,
				DeliveryStatus: enums.DeliveryStatusProduction,
				CreatedAt:      now.Add(-25 * time.Hour),
			},
			want: enums.UrgencyOverdue,
		},
		{
			name: "fresh unpaid order is recent",
			order: models.Order{
				PaymentStatus:  enums.PaymentStatusPending,
				DeliveryStatus: enums.DeliveryStatusProduction,
				CreatedAt:      now.Add(-2 * time.Hour),
			},
			want: enums.UrgencyRecent,
		},
		{
			name: "exactly 24h is still recent",
			order: models.Order{
				PaymentStatus:  enums.PaymentStatusPending,
				DeliveryStatus: enums.DeliveryStatusProduction,
				CreatedAt:      now.Add(-24 * time.Hour),
			},
			want: enums.UrgencyRecent,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, UrgencyFor(&tc.order, now))
		})
	}
}

func TestUrgencyColors(t *testing.T) {
	assert.Equal(t, "#1F6FEB", enums.UrgencyDelivered.Color())
	assert.Equal(t, "#238636", enums.UrgencyPaid.Color())
	assert.Equal(t, "#DA3633", enums.UrgencyOverdue.Color())
	assert.Equal(t, "#FFD700", enums.UrgencyRecent.Color())
}
