package parse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/homekeep-labs/homekeeper/internal/entity"
)

func TestSelect_EmptyInputsSelectNil(t *testing.T) {
	sel := Select(nil, nil, nil, nil)

	assert.Nil(t, sel.PurchaseDate)
	assert.Nil(t, sel.PurchasePrice)
	assert.Nil(t, sel.StoreName)
	assert.Nil(t, sel.ProductName)
	assert.Empty(t, sel.Dates)
	assert.Empty(t, sel.Prices)
}

func TestSelect_MostRecentDateWins(t *testing.T) {
	sel := Select([]entity.DateCandidate{
		{RawText: "01/02/2025", Value: day(2025, time.January, 2)},
		{RawText: "11/12/2025", Value: day(2025, time.November, 12)},
		{RawText: "06/01/2025", Value: day(2025, time.June, 1)},
	}, nil, nil, nil)

	require.NotNil(t, sel.PurchaseDate)
	assert.Equal(t, day(2025, time.November, 12), *sel.PurchaseDate)
}

func TestSelect_HighestPriceWins(t *testing.T) {
	sel := Select(nil, []entity.PriceCandidate{
		{RawText: "$12.99", Value: 12.99},
		{RawText: "$394.39", Value: 394.39},
		{RawText: "$8.50", Value: 8.50},
	}, nil, nil)

	require.NotNil(t, sel.PurchasePrice)
	assert.Equal(t, 394.39, *sel.PurchasePrice)
}

func TestSelect_FirstStoreAndProductWin(t *testing.T) {
	sel := Select(nil, nil,
		[]string{"HOME DEPOT", "Acme Corp"},
		[]string{"Stand Mixer", "Dyson Vacuum"},
	)

	require.NotNil(t, sel.StoreName)
	assert.Equal(t, "HOME DEPOT", *sel.StoreName)
	require.NotNil(t, sel.ProductName)
	assert.Equal(t, "Stand Mixer", *sel.ProductName)
}

func TestSelect_DedupesDatesByCalendarDay(t *testing.T) {
	sel := Select([]entity.DateCandidate{
		{RawText: "Date: 11/12/2025", Value: day(2025, time.November, 12)},
		{RawText: "11/12/2025", Value: day(2025, time.November, 12)},
	}, nil, nil, nil)

	require.Len(t, sel.Dates, 1)
	assert.Equal(t, "Date: 11/12/2025", sel.Dates[0].RawText) // first occurrence kept
}

func TestSelect_DedupesPricesByCents(t *testing.T) {
	sel := Select(nil, []entity.PriceCandidate{
		{RawText: "Total: $394.39", Value: 394.39},
		{RawText: "$394.39", Value: 394.39},
		{RawText: "$12.99", Value: 12.99},
	}, nil, nil)

	require.Len(t, sel.Prices, 2)
	assert.Equal(t, "Total: $394.39", sel.Prices[0].RawText)
	assert.Equal(t, 12.99, sel.Prices[1].Value)
}

func TestSelect_DedupesStrings(t *testing.T) {
	sel := Select(nil, nil, []string{"WALMART", "WALMART"}, nil)
	assert.Equal(t, []string{"WALMART"}, sel.Stores)
}
