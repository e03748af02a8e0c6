package pricing

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/sejacapricho/printshop-backend/pkg/errors"
)

type stubResolver struct {
	profiles map[string]CostProfile
}

func (s *stubResolver) CostProfileByName(ctx context.Context, name string) (CostProfile, error) {
	profile, ok := s.profiles[name]
	if !ok {
		return CostProfile{}, pkgerrors.New(pkgerrors.CodeProductNotFound, "product not found")
	}
	return profile, nil
}

type stubConfigSource struct {
	cfg Config
}

func (s *stubConfigSource) PricingConfig(ctx context.Context) (Config, error) {
	return s.cfg, nil
}

func TestQuoteAppliesDefaultMarginAndProductDTF(t *testing.T) {
	resolver := &stubResolver{profiles: map[string]CostProfile{
		"Camiseta": {Name: "Camiseta", BaseCost: dec("10"), UsesDTF: false},
	}}
	quoter, err := NewQuoter(resolver, &stubConfigSource{cfg: defaultConfig()})
	require.NoError(t, err)

	lines, total, err := quoter.Quote(context.Background(), []LineInput{
		{ProductName: "Camiseta", Quantity: 2},
	})
	require.NoError(t, err)
	require.Len(t, lines, 1)

	// 10 * 1.5 default margin
	assert.True(t, lines[0].UnitPrice.Equal(dec("15")), "unit price %s", lines[0].UnitPrice)
	assert.False(t, lines[0].UsesDTF)
	assert.True(t, total.Equal(dec("30")))
}

func TestQuoteOverridesMarginPerLine(t *testing.T) {
	resolver := &stubResolver{profiles: map[string]CostProfile{
		"Camiseta": {Name: "Camiseta", BaseCost: dec("10")},
	}}
	quoter, err := NewQuoter(resolver, &stubConfigSource{cfg: defaultConfig()})
	require.NoError(t, err)

	zero := decimal.Zero
	lines, total, err := quoter.Quote(context.Background(), []LineInput{
		{ProductName: "Camiseta", Quantity: 1, MarginPercent: &zero},
	})
	require.NoError(t, err)
	assert.True(t, lines[0].UnitPrice.Equal(dec("10")))
	assert.True(t, total.Equal(dec("10")))
}

func TestQuoteUnknownProductAbortsBatch(t *testing.T) {
	resolver := &stubResolver{profiles: map[string]CostProfile{
		"Camiseta": {Name: "Camiseta", BaseCost: dec("10")},
	}}
	quoter, err := NewQuoter(resolver, &stubConfigSource{cfg: defaultConfig()})
	require.NoError(t, err)

	_, _, err = quoter.Quote(context.Background(), []LineInput{
		{ProductName: "Camiseta", Quantity: 1},
		{ProductName: "Inexistente", Quantity: 1},
	})
	require.Error(t, err)
	assert.Equal(t, pkgerrors.CodeProductNotFound, pkgerrors.As(err).Code())
}
