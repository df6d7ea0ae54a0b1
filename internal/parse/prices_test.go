package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrices_BareDollarAmount(t *testing.T) {
	got := Prices([]string{"KitchenAid Stand Mixer $394.39"})
	require.Len(t, got, 1)
	assert.Equal(t, 394.39, got[0].Value)
	assert.Contains(t, got[0].RawText, "394.39")
}

func TestPrices_ThousandsSeparators(t *testing.T) {
	got := Prices([]string{"Total: $1,234.56"})
	require.Len(t, got, 1)
	assert.Equal(t, 1234.56, got[0].Value)
}

func TestPrices_LabeledTotalRanksFirst(t *testing.T) {
	got := Prices([]string{
		"KitchenAid Stand Mixer $12.99",
		"Total: $394.39",
	})
	require.Len(t, got, 2)
	assert.Equal(t, 394.39, got[0].Value)
	assert.Equal(t, 12.99, got[1].Value)
}

func TestPrices_SubtotalRanksAfterTotal(t *testing.T) {
	got := Prices([]string{
		"Subtotal: 90.00",
		"Total: 97.20",
	})
	require.Len(t, got, 2)
	assert.Equal(t, 97.20, got[0].Value)
	assert.Equal(t, 90.00, got[1].Value)
}

func TestPrices_TotalLabelDoesNotMatchInsideSubtotal(t *testing.T) {
	got := Prices([]string{"Subtotal: 90.00"})
	require.Len(t, got, 1)
	assert.Equal(t, 90.00, got[0].Value)
	assert.Contains(t, got[0].RawText, "Subtotal")
}

func TestPrices_RejectsThreeDecimalFigures(t *testing.T) {
	assert.Empty(t, Prices([]string{"$3.14159"}))
}

func TestPrices_RejectsZero(t *testing.T) {
	assert.Empty(t, Prices([]string{"Change $0.00"}))
}

func TestPrices_AmountWithoutDollarOrLabelIgnored(t *testing.T) {
	assert.Empty(t, Prices([]string{"weight 12.50 lbs"}))
}

func TestPrices_NoMatches(t *testing.T) {
	assert.Empty(t, Prices([]string{"THANK YOU"}))
	assert.Empty(t, Prices(nil))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "394.39", FormatAmount(394.39))
	assert.Equal(t, "5.00", FormatAmount(5))
	assert.Equal(t, "0.10", FormatAmount(0.1))
	assert.Equal(t, "1234.56", FormatAmount(1234.555)) // rounds to cents
}
