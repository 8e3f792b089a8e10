package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	m, err := NewMoney(decimal.NewFromInt(100), RSD)
	require.NoError(t, err)
	assert.True(t, m.Amount().Equal(decimal.NewFromInt(100)))
	assert.Equal(t, RSD, m.Currency())

	_, err = NewMoney(decimal.NewFromInt(100), "")
	assert.Error(t, err)
}

func TestNewMoneyRSDFromString(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"15,50", "15.5", false},
		{"15.50", "15.5", false},
		{"0", "0", false},
		{" 1200 ", "1200", false},
		{"abc", "", true},
		{"", "", true},
		{"1,2,3", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			m, err := NewMoneyRSDFromString(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Amount().String())
		})
	}
}

func TestMoney_Arithmetic(t *testing.T) {
	a := NewMoneyRSDFromFloat(100.50)
	b := NewMoneyRSDFromFloat(50.25)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "150.75", sum.Amount().String())

	diff, err := a.Subtract(b)
	require.NoError(t, err)
	assert.Equal(t, "50.25", diff.Amount().String())

	product := b.MultiplyByInt(3)
	assert.Equal(t, "150.75", product.Amount().String())
}

func TestMoney_CurrencyMismatch(t *testing.T) {
	a := NewMoneyRSDFromFloat(100)
	b, err := NewMoney(decimal.NewFromInt(100), EUR)
	require.NoError(t, err)

	_, err = a.Add(b)
	assert.Error(t, err)
	_, err = a.Subtract(b)
	assert.Error(t, err)
}

func TestMoney_JSONRoundTrip(t *testing.T) {
	m := NewMoneyRSDFromFloat(899.99)
	data, err := json.Marshal(m)
	require.NoError(t, err)

	var got Money
	require.NoError(t, json.Unmarshal(data, &got))
	assert.True(t, m.Equals(got))
}

func TestMoney_Scan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("123.45"))
	assert.Equal(t, "123.45", m.Amount().String())
	assert.Equal(t, DefaultCurrency, m.Currency())

	require.NoError(t, m.Scan(nil))
	assert.True(t, m.IsZero())

	assert.Error(t, m.Scan(42))
}
