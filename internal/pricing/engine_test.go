package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/sejacapricho/printshop-backend/pkg/errors"
	"github.com/sejacapricho/printshop-backend/pkg/types"
)

func dec(value string) decimal.Decimal {
	d, err := decimal.NewFromString(value)
	if err != nil {
		panic(err)
	}
	return d
}

func defaultConfig() Config {
	return Config{
		DTFPricePerLinearMeter: dec("80"),
		RollWidthCm:            dec("58"),
		RollHeightCm:           dec("100"),
		EnergyCost:             dec("1"),
		TransportCost:          dec("2"),
		PackagingCost:          dec("1"),
		DefaultMarginPercent:   dec("50"),
	}
}

func TestComputePriceBaseCostWithMargin(t *testing.T) {
	product := CostProfile{Name: "Camiseta Premium", BaseCost: dec("18.99")}
	line, err := ComputePrice(product, Input{
		Quantity:      3,
		MarginPercent: dec("50"),
	}, defaultConfig())
	require.NoError(t, err)

	assert.True(t, line.UnitPrice.Equal(dec("28.485")), "unit price %s", line.UnitPrice)
	assert.True(t, line.LineTotal.Equal(dec("85.455")), "line total %s", line.LineTotal)
	assert.Equal(t, 3, line.Quantity)
	assert.False(t, line.UsesDTF)
}

func TestComputePriceDTFByArea(t *testing.T) {
	product := CostProfile{Name: "Transfer", UsesDTF: true}
	line, err := ComputePrice(product, Input{
		Regions: []Region{
			{HeightCm: dec("20"), WidthCm: dec("15")},
			{HeightCm: dec("0"), WidthCm: dec("0")},
		},
		Quantity:      1,
		MarginPercent: decimal.Zero,
		UseDTF:        true,
	}, defaultConfig())
	require.NoError(t, err)

	assert.True(t, line.PrintedAreaCm2.Equal(dec("300")), "area %s", line.PrintedAreaCm2)

	// 300 cm² * (80 / 5800) ≈ 4.1379
	expected := dec("4.1379")
	assert.True(t, line.UnitPrice.Sub(expected).Abs().LessThan(dec("0.0001")),
		"unit price %s, want ≈ %s", line.UnitPrice, expected)
}

func TestComputePriceDTFDisabledIgnoresArea(t *testing.T) {
	product := CostProfile{Name: "Caneca", BaseCost: dec("10")}
	line, err := ComputePrice(product, Input{
		Regions:       []Region{{HeightCm: dec("30"), WidthCm: dec("40")}},
		Quantity:      2,
		MarginPercent: decimal.Zero,
		UseDTF:        false,
	}, defaultConfig())
	require.NoError(t, err)

	assert.True(t, line.UnitPrice.Equal(dec("10")), "unit price %s", line.UnitPrice)
	assert.True(t, line.PrintedAreaCm2.Equal(dec("1200")))
}

func TestComputePriceZeroAreaSkipsDTF(t *testing.T) {
	product := CostProfile{Name: "Transfer", BaseCost: dec("5"), UsesDTF: true}
	line, err := ComputePrice(product, Input{
		Regions:       []Region{{HeightCm: dec("0"), WidthCm: dec("25")}},
		Quantity:      1,
		MarginPercent: decimal.Zero,
		UseDTF:        true,
	}, defaultConfig())
	require.NoError(t, err)
	assert.True(t, line.UnitPrice.Equal(dec("5")))
}

func TestComputePriceFixedCostsAddBothLayers(t *testing.T) {
	product := CostProfile{
		Name:          "Camiseta",
		BaseCost:      dec("10"),
		EnergyCost:    dec("0.5"),
		TransportCost: dec("1.5"),
		PackagingCost: dec("0.5"),
	}
	line, err := ComputePrice(product, Input{
		Quantity:          1,
		MarginPercent:     decimal.Zero,
		IncludeFixedCosts: true,
	}, defaultConfig())
	require.NoError(t, err)

	// 10 + (0.5+1.5+0.5 product) + (1+2+1 shop-wide)
	assert.True(t, line.UnitPrice.Equal(dec("16.5")), "unit price %s", line.UnitPrice)
}

func TestComputePriceLineTotalIsExactProduct(t *testing.T) {
	product := CostProfile{Name: "Camiseta", BaseCost: dec("7.77")}
	line, err := ComputePrice(product, Input{
		Quantity:      7,
		MarginPercent: dec("33"),
	}, defaultConfig())
	require.NoError(t, err)

	assert.True(t, line.LineTotal.Equal(line.UnitPrice.Mul(decimal.NewFromInt(7))))
}

func TestComputePriceDeterministic(t *testing.T) {
	product := CostProfile{Name: "Transfer", BaseCost: dec("3.33"), UsesDTF: true}
	input := Input{
		Regions:           []Region{{HeightCm: dec("12.5"), WidthCm: dec("17.5")}},
		Quantity:          4,
		MarginPercent:     dec("42.5"),
		UseDTF:            true,
		IncludeFixedCosts: true,
	}

	first, err := ComputePrice(product, input, defaultConfig())
	require.NoError(t, err)
	second, err := ComputePrice(product, input, defaultConfig())
	require.NoError(t, err)

	assert.True(t, first.UnitPrice.Equal(second.UnitPrice))
	assert.True(t, first.LineTotal.Equal(second.LineTotal))
	assert.True(t, first.PrintedAreaCm2.Equal(second.PrintedAreaCm2))
}

func TestComputePriceRejectsNegativeDimension(t *testing.T) {
	_, err := ComputePrice(CostProfile{Name: "x"}, Input{
		Regions:  []Region{{HeightCm: dec("-1"), WidthCm: dec("10")}},
		Quantity: 1,
	}, defaultConfig())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeInvalidDimension, pkgerrors.As(err).Code())
}

func TestComputePriceRejectsTooManyRegions(t *testing.T) {
	regions := make([]Region, MaxRegions+1)
	_, err := ComputePrice(CostProfile{Name: "x"}, Input{Regions: regions, Quantity: 1}, defaultConfig())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeInvalidDimension, pkgerrors.As(err).Code())
}

func TestComputePriceRejectsZeroQuantity(t *testing.T) {
	_, err := ComputePrice(CostProfile{Name: "x"}, Input{Quantity: 0}, defaultConfig())
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeInvalidQuantity, pkgerrors.As(err).Code())
}

func TestComputePriceRejectsMissingRollGeometry(t *testing.T) {
	cfg := defaultConfig()
	cfg.RollWidthCm = decimal.Zero

	_, err := ComputePrice(CostProfile{Name: "x", UsesDTF: true}, Input{
		Regions:  []Region{{HeightCm: dec("10"), WidthCm: dec("10")}},
		Quantity: 1,
		UseDTF:   true,
	}, cfg)
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeMissingRollGeometry, pkgerrors.As(err).Code())
}

func TestAggregateEmptyIsZero(t *testing.T) {
	assert.True(t, Aggregate(nil).IsZero())
	assert.True(t, Aggregate([]types.QuoteLine{}).IsZero())
}

func TestAggregateOrderIndependent(t *testing.T) {
	lines := []types.QuoteLine{
		{LineTotal: dec("10.10")},
		{LineTotal: dec("0.01")},
		{LineTotal: dec("99.89")},
	}
	reversed := []types.QuoteLine{lines[2], lines[1], lines[0]}

	assert.True(t, Aggregate(lines).Equal(Aggregate(reversed)))
	assert.True(t, Aggregate(lines).Equal(dec("110")))
}
