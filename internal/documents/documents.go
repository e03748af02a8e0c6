package documents

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sejacapricho/printshop-backend/internal/sequence"
	"github.com/sejacapricho/printshop-backend/pkg/config"
	"github.com/sejacapricho/printshop-backend/pkg/db/models"
	pkgerrors "github.com/sejacapricho/printshop-backend/pkg/errors"
	"github.com/sejacapricho/printshop-backend/pkg/types"
)

const dateLayout = "02/01/2006"

// Renderer produces the printable HTML documents handed to customers.
// Rendering is deterministic: the same record always yields the same bytes.
type Renderer struct {
	shop      config.ShopConfig
	budgetTpl *template.Template
	orderTpl  *template.Template
}

// NewRenderer parses the document templates against the shop identity.
func NewRenderer(shop config.ShopConfig) (*Renderer, error) {
	funcs := template.FuncMap{
		"money":  moneyFunc(shop.Currency),
		"seqnum": sequence.Format,
	}
	budgetTpl, err := template.New("budget").Funcs(funcs).Parse(budgetTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse budget template: %w", err)
	}
	orderTpl, err := template.New("order").Funcs(funcs).Parse(orderTemplate)
	if err != nil {
		return nil, fmt.Errorf("parse order template: %w", err)
	}
	return &Renderer{shop: shop, budgetTpl: budgetTpl, orderTpl: orderTpl}, nil
}

type budgetView struct {
	Shop       config.ShopConfig
	Budget     *models.Budget
	Items      types.QuoteLines
	IssuedDate string
}

type orderView struct {
	Shop       config.ShopConfig
	Order      *models.Order
	Items      types.QuoteLines
	IssuedDate string
	Customer   string
}

// RenderBudget renders the customer-facing quote document.
func (r *Renderer) RenderBudget(budget *models.Budget) (string, error) {
	if budget == nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "budget is required")
	}
	var sb strings.Builder
	err := r.budgetTpl.Execute(&sb, budgetView{
		Shop:       r.shop,
		Budget:     budget,
		Items:      budget.Items,
		IssuedDate: budget.CreatedAt.Format(dateLayout),
	})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render budget document")
	}
	return sb.String(), nil
}

// RenderOrder renders the production/delivery document for an order.
func (r *Renderer) RenderOrder(order *models.Order) (string, error) {
	if order == nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "order is required")
	}
	customer := ""
	if order.Customer != nil {
		customer = order.Customer.Name
	}
	var sb strings.Builder
	err := r.orderTpl.Execute(&sb, orderView{
		Shop:       r.shop,
		Order:      order,
		Items:      order.Items,
		IssuedDate: order.CreatedAt.Format(dateLayout),
		Customer:   customer,
	})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render order document")
	}
	return sb.String(), nil
}

// moneyFunc formats decimals the Brazilian way: R$ 1.234,56.
func moneyFunc(currency string) func(decimal.Decimal) string {
	return func(value decimal.Decimal) string {
		fixed := value.StringFixed(2)
		neg := strings.HasPrefix(fixed, "-")
		fixed = strings.TrimPrefix(fixed, "-")

		parts := strings.SplitN(fixed, ".", 2)
		whole, frac := parts[0], parts[1]

		var grouped strings.Builder
		for i, digit := range whole {
			if i > 0 && (len(whole)-i)%3 == 0 {
				grouped.WriteByte('.')
			}
			grouped.WriteRune(digit)
		}

		sign := ""
		if neg {
			sign = "-"
		}
		return fmt.Sprintf("%s %s%s,%s", currency, sign, grouped.String(), frac)
	}
}
