package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinorUnits(t *testing.T) {
	tests := []struct {
		code string
		want int32
	}{
		{"USD", 2},
		{"EUR", 2},
		{"INR", 2},
		{"JPY", 0},
		{"KRW", 0},
		{"CLP", 0},
		{"XXQ", 2},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, MinorUnits(tt.code))
		})
	}
}

func TestToMinorUnits(t *testing.T) {
	tests := []struct {
		amount  string
		code    string
		want    int64
		wantErr bool
	}{
		{amount: "100.50", code: "USD", want: 10050},
		{amount: "100", code: "USD", want: 10000},
		{amount: "1500", code: "JPY", want: 1500},
		{amount: "25000", code: "KRW", want: 25000},
		{amount: "1500.50", code: "JPY", wantErr: true},
		{amount: "0.001", code: "USD", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.amount+" "+tt.code, func(t *testing.T) {
			got, err := ToMinorUnits(decimal.RequireFromString(tt.amount), tt.code)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
