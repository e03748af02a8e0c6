package controllers

import (
	"net/http"
	"strings"

	"github.com/sejacapricho/printshop-backend/api/responses"
	"github.com/sejacapricho/printshop-backend/api/validators"
	budgetsvc "github.com/sejacapricho/printshop-backend/internal/budgets"
	"github.com/sejacapricho/printshop-backend/internal/documents"
	pkgerrors "github.com/sejacapricho/printshop-backend/pkg/errors"
	"github.com/sejacapricho/printshop-backend/pkg/logger"
)

type createBudgetRequest struct {
	ClientName         string             `json:"client_name" validate:"required"`
	Address            string             `json:"address"`
	DeliveryType       string             `json:"delivery_type"`
	SaleType           string             `json:"sale_type"`
	ProductionDeadline string             `json:"production_deadline"`
	Notes              string             `json:"notes"`
	Lines              []quoteLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// CreateBudget prices the requested lines and stores the budget with its
// sequential number.
func CreateBudget(svc budgetsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "budget service unavailable"))
			return
		}

		userID, err := contextUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createBudgetRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		budget, err := svc.Create(r.Context(), budgetsvc.CreateInput{
			ClientName:         payload.ClientName,
			Address:            payload.Address,
			DeliveryType:       payload.DeliveryType,
			SaleType:           payload.SaleType,
			ProductionDeadline: payload.ProductionDeadline,
			Notes:              payload.Notes,
			UserID:             userID,
			Lines:              toLineInputs(payload.Lines),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, budget)
	}
}

// GetBudget returns one budget by ID.
func GetBudget(svc budgetsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "budget service unavailable"))
			return
		}

		id, err := parseIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		budget, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, budget)
	}
}

// DeleteBudget removes a budget.
func DeleteBudget(svc budgetsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "budget service unavailable"))
			return
		}

		id, err := parseIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// ListBudgets returns a cursor page of budgets, optionally client-filtered.
func ListBudgets(svc budgetsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "budget service unavailable"))
			return
		}

		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		query := strings.TrimSpace(r.URL.Query().Get("q"))
		list, err := svc.List(r.Context(), params, query)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// BudgetDocument renders the printable budget sheet.
func BudgetDocument(svc budgetsvc.Service, renderer *documents.Renderer, logg *logger.Logger) http.HandlerFunc {
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

		budget, err := svc.Get(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		html, err := renderer.RenderBudget(budget)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteHTML(w, html)
	}
}
