package pricing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/sejacapricho/printshop-backend/pkg/types"
)

// ProductResolver turns a catalog name into the cost slice the engine prices.
type ProductResolver interface {
	CostProfileByName(ctx context.Context, name string) (CostProfile, error)
}

// ConfigSource supplies the shop-wide pricing configuration.
type ConfigSource interface {
	PricingConfig(ctx context.Context) (Config, error)
}

// LineInput is one requested line before pricing. Nil MarginPercent falls back
// to the configured default margin; nil UseDTF follows the product's flag.
type LineInput struct {
	ProductName       string
	Regions           []Region
	Quantity          int
	MarginPercent     *decimal.Decimal
	UseDTF            *bool
	IncludeFixedCosts bool
}

// Quoter prices a batch of line inputs against the live catalog and settings.
type Quoter struct {
	products ProductResolver
	config   ConfigSource
}

// NewQuoter builds a quoter over the catalog and settings services.
func NewQuoter(products ProductResolver, config ConfigSource) (*Quoter, error) {
	if products == nil {
		return nil, fmt.Errorf("product resolver required")
	}
	if config == nil {
		return nil, fmt.Errorf("config source required")
	}
	return &Quoter{products: products, config: config}, nil
}

// Quote prices every line and returns them with their aggregate total. Any
// failing line aborts the whole batch.
func (q *Quoter) Quote(ctx context.Context, lines []LineInput) (types.QuoteLines, decimal.Decimal, error) {
	cfg, err := q.config.PricingConfig(ctx)
	if err != nil {
		return nil, decimal.Zero, err
	}

	priced := make(types.QuoteLines, 0, len(lines))
	for _, line := range lines {
		profile, err := q.products.CostProfileByName(ctx, line.ProductName)
		if err != nil {
			return nil, decimal.Zero, err
		}

		margin := cfg.DefaultMarginPercent
		if line.MarginPercent != nil {
			margin = *line.MarginPercent
		}
		useDTF := profile.UsesDTF
		if line.UseDTF != nil {
			useDTF = *line.UseDTF
		}

		quoted, err := ComputePrice(profile, Input{
			Regions:           line.Regions,
			Quantity:          line.Quantity,
			MarginPercent:     margin,
			UseDTF:            useDTF,
			IncludeFixedCosts: line.IncludeFixedCosts,
		}, cfg)
		if err != nil {
			return nil, decimal.Zero, err
		}
		priced = append(priced, *quoted)
	}

	return priced, Aggregate(priced), nil
}
