package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/sejacapricho/printshop-backend/pkg/errors"
	"github.com/sejacapricho/printshop-backend/pkg/types"
)

// MaxRegions caps how many print regions a single job can carry
// (front, back, left sleeve, right sleeve).
const MaxRegions = 4

var (
	oneHundred = decimal.NewFromInt(100)
	one        = decimal.NewFromInt(1)
)

// Region is one rectangular print area in centimeters. A zero-sized region
// contributes zero area; it is not an error.
type Region struct {
	HeightCm decimal.Decimal
	WidthCm  decimal.Decimal
}

// Area returns the region's surface in cm².
func (r Region) Area() decimal.Decimal {
	return r.HeightCm.Mul(r.WidthCm)
}

// Config carries the shop-wide pricing knobs, resolved by the settings
// service and passed explicitly so the engine stays pure.
type Config struct {
	DTFPricePerLinearMeter decimal.Decimal
	RollWidthCm            decimal.Decimal
	RollHeightCm           decimal.Decimal
	EnergyCost             decimal.Decimal
	TransportCost          decimal.Decimal
	PackagingCost          decimal.Decimal
	DefaultMarginPercent   decimal.Decimal
}

// CostProfile is the slice of a catalog product the engine needs.
type CostProfile struct {
	Name          string
	BaseCost      decimal.Decimal
	EnergyCost    decimal.Decimal
	TransportCost decimal.Decimal
	PackagingCost decimal.Decimal
	UsesDTF       bool
}

// Input describes one print job to be priced.
type Input struct {
	Regions           []Region
	Quantity          int
	MarginPercent     decimal.Decimal
	UseDTF            bool
	IncludeFixedCosts bool
}

// ComputePrice turns a product, job dimensions and shop configuration into a
// quote line. It is pure: identical inputs yield identical outputs, and any
// validation failure aborts before a partial result exists.
//
// unitCost = baseCost + dtfCost + fixedCosts
// unitPrice = unitCost * (1 + margin/100)
// lineTotal = unitPrice * quantity
func ComputePrice(product CostProfile, in Input, cfg Config) (*types.QuoteLine, error) {
	if in.Quantity < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidQuantity, "quantity must be at least 1").
			WithDetails(map[string]any{"field": "quantity", "value": in.Quantity})
	}
	if len(in.Regions) > MaxRegions {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidDimension, fmt.Sprintf("at most %d print regions are supported", MaxRegions)).
			WithDetails(map[string]any{"field": "regions", "count": len(in.Regions)})
	}
	if in.MarginPercent.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "margin percent cannot be negative").
			WithDetails(map[string]any{"field": "margin_percent"})
	}

	totalArea := decimal.Zero
	for i, region := range in.Regions {
		if region.HeightCm.IsNegative() || region.WidthCm.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeInvalidDimension, "region height and width cannot be negative").
				WithDetails(map[string]any{"field": fmt.Sprintf("regions[%d]", i)})
		}
		totalArea = totalArea.Add(region.Area())
	}

	dtfCost := decimal.Zero
	if in.UseDTF && totalArea.IsPositive() {
		rollArea := cfg.RollWidthCm.Mul(cfg.RollHeightCm)
		if !rollArea.IsPositive() {
			return nil, pkgerrors.New(pkgerrors.CodeMissingRollGeometry, "roll width and height must be positive to price DTF").
				WithDetails(map[string]any{"roll_width_cm": cfg.RollWidthCm, "roll_height_cm": cfg.RollHeightCm})
		}
		pricePerCm2 := cfg.DTFPricePerLinearMeter.Div(rollArea)
		dtfCost = totalArea.Mul(pricePerCm2)
	}

	fixedCosts := decimal.Zero
	if in.IncludeFixedCosts {
		// Product overrides and shop-wide values are both added; the two
		// layers are cumulative, not alternatives.
		fixedCosts = product.EnergyCost.
			Add(product.TransportCost).
			Add(product.PackagingCost).
			Add(cfg.EnergyCost).
			Add(cfg.TransportCost).
			Add(cfg.PackagingCost)
	}

	unitCost := product.BaseCost.Add(dtfCost).Add(fixedCosts)
	unitPrice := unitCost.Mul(one.Add(in.MarginPercent.Div(oneHundred)))
	lineTotal := unitPrice.Mul(decimal.NewFromInt(int64(in.Quantity)))

	return &types.QuoteLine{
		ProductName:    product.Name,
		UnitPrice:      unitPrice,
		Quantity:       in.Quantity,
		LineTotal:      lineTotal,
		PrintedAreaCm2: totalArea,
		UsesDTF:        in.UseDTF,
	}, nil
}

// Aggregate sums line totals. An empty input yields zero. Budget and order
// totals are always recomputed through this; a stored total is never trusted
// over its lines.
func Aggregate(lines []types.QuoteLine) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.LineTotal)
	}
	return total
}
