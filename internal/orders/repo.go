package orders

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sejacapricho/printshop-backend/pkg/db/models"
	"github.com/sejacapricho/printshop-backend/pkg/enums"
	"github.com/sejacapricho/printshop-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) Update(ctx context.Context, order *models.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// FindByIDForUpdate locks the row so concurrent lifecycle transitions
// serialize instead of both reading the pre-transition state.
func (r *repository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) FindByNumber(ctx context.Context, number int64) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Where("number = ?", number).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) List(ctx context.Context, params pagination.Params, filters Filters) (*List, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}

	limit := pagination.NormalizeLimit(params.Limit)
	q := r.db.WithContext(ctx).Model(&models.Order{}).Preload("Customer")

	if filters.PaymentStatus != nil {
		q = q.Where("payment_status = ?", *filters.PaymentStatus)
	}
	if filters.DeliveryStatus != nil {
		q = q.Where("delivery_status = ?", *filters.DeliveryStatus)
	}
	if filters.CustomerID != nil {
		q = q.Where("customer_id = ?", *filters.CustomerID)
	}
	if filters.DateFrom != nil {
		q = q.Where("created_at >= ?", *filters.DateFrom)
	}
	if filters.DateTo != nil {
		q = q.Where("created_at <= ?", *filters.DateTo)
	}
	if trimmed := strings.TrimSpace(filters.Query); trimmed != "" {
		like := "%" + strings.ToLower(trimmed) + "%"
		q = q.Joins("LEFT JOIN customers ON customers.id = orders.customer_id").
			Where("lower(customers.name) LIKE ? OR CAST(orders.number AS TEXT) LIKE ?", like, like)
	}
	if cursor != nil {
		q = q.Where("(orders.created_at, orders.id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}

	var rows []models.Order
	err = q.Order("orders.created_at DESC, orders.id DESC").
		Limit(pagination.LimitWithBuffer(params.Limit)).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := &List{}
	if len(rows) > limit {
		last := rows[limit-1]
		out.NextCursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
		rows = rows[:limit]
	}
	out.Orders = rows
	return out, nil
}

func (r *repository) CountByStatus(ctx context.Context) (*StatusCounts, error) {
	counts := &StatusCounts{}
	base := r.db.WithContext(ctx).Model(&models.Order{})

	if err := base.Session(&gorm.Session{}).Count(&counts.Total).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).
		Where("payment_status = ?", enums.PaymentStatusPending).
		Count(&counts.PendingPayment).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).
		Where("delivery_status = ?", enums.DeliveryStatusProduction).
		Count(&counts.InProduction).Error; err != nil {
		return nil, err
	}
	if err := base.Session(&gorm.Session{}).
		Where("delivery_status = ?", enums.DeliveryStatusDelivered).
		Count(&counts.Delivered).Error; err != nil {
		return nil, err
	}

	err := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("payment_status = ?", enums.PaymentStatusPaid).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&counts.PaidRevenue).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}
