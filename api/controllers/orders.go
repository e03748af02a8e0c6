package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sejacapricho/printshop-backend/api/responses"
	"github.com/sejacapricho/printshop-backend/api/validators"
	"github.com/sejacapricho/printshop-backend/internal/documents"
	ordersvc "github.com/sejacapricho/printshop-backend/internal/orders"
	"github.com/sejacapricho/printshop-backend/pkg/enums"
	pkgerrors "github.com/sejacapricho/printshop-backend/pkg/errors"
	"github.com/sejacapricho/printshop-backend/pkg/logger"
)

type createOrderRequest struct {
	CustomerID       *uuid.UUID         `json:"customer_id,omitempty"`
	DeliveryType     string             `json:"delivery_type"`
	DeliveryDeadline string             `json:"delivery_deadline"`
	PaymentMethod    string             `json:"payment_method" validate:"required"`
	Notes            string             `json:"notes"`
	Lines            []quoteLineRequest `json:"lines" validate:"required,min=1,dive"`
}

type markPaidRequest struct {
	PaymentMethod *string `json:"payment_method,omitempty"`
}

const listDateLayout = "2006-01-02"

// CreateOrder prices the requested lines and opens the order in the
// pending/production state.
func CreateOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		userID, err := contextUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		method, err := enums.ParsePaymentMethod(strings.TrimSpace(payload.PaymentMethod))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
			return
		}

		order, err := svc.Create(r.Context(), ordersvc.CreateInput{
			CustomerID:       payload.CustomerID,
			UserID:           userID,
			DeliveryType:     payload.DeliveryType,
			DeliveryDeadline: payload.DeliveryDeadline,
			PaymentMethod:    method,
			Notes:            payload.Notes,
			Lines:            toLineInputs(payload.Lines),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// GetOrder returns one order by ID.
func GetOrder(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		id, err := parseIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

// ListOrders returns a cursor page of orders annotated with urgency colors.
func ListOrders(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters, err := parseOrderFilters(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// MarkOrderPaid records the payment on a pending order.
func MarkOrderPaid(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		id, err := parseIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := ordersvc.MarkPaidInput{OrderID: id}

		// The body is optional; an empty one keeps the original method.
		if r.ContentLength > 0 {
			var payload markPaidRequest
			if err := validators.DecodeJSONBody(r, &payload); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			if payload.PaymentMethod != nil {
				method, err := enums.ParsePaymentMethod(strings.TrimSpace(*payload.PaymentMethod))
				if err != nil {
					responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method"))
					return
				}
				input.Method = &method
			}
		}

		order, err := svc.MarkPaid(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

// MarkOrderDelivered closes the production phase of an order.
func MarkOrderDelivered(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		id, err := parseIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.MarkDelivered(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

// OrdersDashboard returns the status counters and paid revenue panel.
func OrdersDashboard(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order service unavailable"))
			return
		}

		counts, err := svc.Dashboard(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, counts)
	}
}

// OrderDocument renders the printable order sheet.
func OrderDocument(svc ordersvc.Service, renderer *documents.Renderer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil || renderer == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "document rendering unavailable"))
			return
		}

		id, err := parseIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		html, err := renderer.RenderOrder(order)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteHTML(w, html)
	}
}

func parseOrderFilters(r *http.Request) (ordersvc.Filters, error) {
	var filters ordersvc.Filters
	q := r.URL.Query()

	if raw := strings.TrimSpace(q.Get("payment_status")); raw != "" {
		status, err := enums.ParsePaymentStatus(raw)
		if err != nil {
			return ordersvc.Filters{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment status")
		}
		filters.PaymentStatus = &status
	}

	if raw := strings.TrimSpace(q.Get("delivery_status")); raw != "" {
		status, err := enums.ParseDeliveryStatus(raw)
		if err != nil {
			return ordersvc.Filters{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid delivery status")
		}
		filters.DeliveryStatus = &status
	}

	if raw := strings.TrimSpace(q.Get("customer_id")); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return ordersvc.Filters{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid customer id")
		}
		filters.CustomerID = &id
	}

	if raw := strings.TrimSpace(q.Get("date_from")); raw != "" {
		from, err := time.Parse(listDateLayout, raw)
		if err != nil {
			return ordersvc.Filters{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid date_from")
		}
		filters.DateFrom = &from
	}

	if raw := strings.TrimSpace(q.Get("date_to")); raw != "" {
		to, err := time.Parse(listDateLayout, raw)
		if err != nil {
			return ordersvc.Filters{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid date_to")
		}
		// Date-only upper bounds cover the whole day.
		end := to.Add(24*time.Hour - time.Nanosecond)
		filters.DateTo = &end
	}

	filters.Query = strings.TrimSpace(q.Get("q"))
	return filters, nil
}
