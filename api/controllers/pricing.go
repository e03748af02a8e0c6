package controllers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/sejacapricho/printshop-backend/api/responses"
	"github.com/sejacapricho/printshop-backend/api/validators"
	"github.com/sejacapricho/printshop-backend/internal/pricing"
	pkgerrors "github.com/sejacapricho/printshop-backend/pkg/errors"
	"github.com/sejacapricho/printshop-backend/pkg/logger"
	"github.com/sejacapricho/printshop-backend/pkg/types"
)

type quoteRegionRequest struct {
	HeightCm decimal.Decimal `json:"height_cm"`
	WidthCm  decimal.Decimal `json:"width_cm"`
}

type quoteLineRequest struct {
	ProductName       string               `json:"product_name" validate:"required"`
	Regions           []quoteRegionRequest `json:"regions" validate:"required,min=1,dive"`
	Quantity          int                  `json:"quantity" validate:"required,min=1"`
	MarginPercent     *decimal.Decimal     `json:"margin_percent,omitempty"`
	UseDTF            *bool                `json:"use_dtf,omitempty"`
	IncludeFixedCosts bool                 `json:"include_fixed_costs"`
}

type quoteRequest struct {
	Lines []quoteLineRequest `json:"lines" validate:"required,min=1,dive"`
}

type quoteResponse struct {
	Lines types.QuoteLines `json:"lines"`
	Total decimal.Decimal  `json:"total"`
}

func (l quoteLineRequest) toLineInput() pricing.LineInput {
	regions := make([]pricing.Region, 0, len(l.Regions))
	for _, reg := range l.Regions {
		regions = append(regions, pricing.Region{HeightCm: reg.HeightCm, WidthCm: reg.WidthCm})
	}
	return pricing.LineInput{
		ProductName:       l.ProductName,
		Regions:           regions,
		Quantity:          l.Quantity,
		MarginPercent:     l.MarginPercent,
		UseDTF:            l.UseDTF,
		IncludeFixedCosts: l.IncludeFixedCosts,
	}
}

func toLineInputs(lines []quoteLineRequest) []pricing.LineInput {
	out := make([]pricing.LineInput, 0, len(lines))
	for _, line := range lines {
		out = append(out, line.toLineInput())
	}
	return out
}

// Quote prices a batch of lines without persisting anything.
func Quote(q *pricing.Quoter, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if q == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "pricing unavailable"))
			return
		}

		var payload quoteRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lines, total, err := q.Quote(r.Context(), toLineInputs(payload.Lines))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, quoteResponse{Lines: lines, Total: total})
	}
}
