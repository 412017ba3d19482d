package stock_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Sparepart-api/internal/domain"
	"github.com/jhoicas/Sparepart-api/internal/domain/stock"
)

func TestParseMovement(t *testing.T) {
	tests := []struct {
		in   string
		want stock.Movement
	}{
		{"receipt", stock.Receipt},
		{"inbound", stock.Receipt},
		{"Masuk", stock.Receipt},
		{"sale", stock.Sale},
		{"outbound", stock.Sale},
		{" keluar ", stock.Sale},
	}
	for _, tt := range tests {
		got, err := stock.ParseMovement(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := stock.ParseMovement("retur")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = stock.ParseMovement("")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApply_SaleFromFullStock(t *testing.T) {
	got, err := stock.Apply(stock.Levels{OnHand: 5, Sold: 0, Remaining: 5}, stock.Sale, 2)
	require.NoError(t, err)
	assert.Equal(t, stock.Levels{OnHand: 3, Sold: 2, Remaining: 3}, got)
}

func TestApply_Receipt(t *testing.T) {
	got, err := stock.Apply(stock.Levels{OnHand: 1, Sold: 4, Remaining: 1}, stock.Receipt, 10)
	require.NoError(t, err)
	assert.Equal(t, stock.Levels{OnHand: 11, Sold: 4, Remaining: 11}, got)
}

func TestApply_SaleClampsEachCounter(t *testing.T) {
	tests := []struct {
		name string
		in   stock.Levels
		qty  int64
		want stock.Levels
	}{
		{"ambos a cero", stock.Levels{OnHand: 2, Sold: 0, Remaining: 2}, 5, stock.Levels{OnHand: 0, Sold: 5, Remaining: 0}},
		{"solo sisa", stock.Levels{OnHand: 10, Sold: 7, Remaining: 3}, 4, stock.Levels{OnHand: 6, Sold: 11, Remaining: 0}},
		{"exacto", stock.Levels{OnHand: 3, Sold: 0, Remaining: 3}, 3, stock.Levels{OnHand: 0, Sold: 3, Remaining: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := stock.Apply(tt.in, stock.Sale, tt.qty)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got.OnHand, int64(0))
			assert.GreaterOrEqual(t, got.Remaining, int64(0))
		})
	}
}

func TestApply_InvalidQuantityLeavesLevels(t *testing.T) {
	in := stock.Levels{OnHand: 5, Sold: 1, Remaining: 4}
	for _, qty := range []int64{0, -3} {
		got, err := stock.Apply(in, stock.Receipt, qty)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Equal(t, in, got)
	}
}

func TestApply_UnknownMovement(t *testing.T) {
	_, err := stock.Apply(stock.Levels{}, stock.Movement("transfer"), 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
