package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "whole amount", input: "12000", want: "12000.00"},
		{name: "two decimals", input: "12000.00", want: "12000.00"},
		{name: "one decimal", input: "9000.5", want: "9000.50"},
		{name: "smallest unit", input: "0.01", want: "0.01"},
		{name: "negative parses", input: "-3.50", want: "-3.50"},
		{name: "surrounding whitespace", input: " 100.25 ", want: "100.25"},
		{name: "three decimals rejected", input: "10.001", wantErr: true},
		{name: "not a number", input: "abc", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, err := ParseMoney(tc.input)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, m.String())
		})
	}
}

func TestMoneyArithmetic(t *testing.T) {
	charged := MustMoney("12000.00")
	paid := MustMoney("3000.00")

	balance := charged.Sub(paid)
	require.Equal(t, "9000.00", balance.String())

	require.True(t, charged.Sub(charged).IsZero())
	require.True(t, paid.Sub(charged).IsNegative())
	require.True(t, MustMoney("0.01").GreaterThan(ZeroMoney))

	// No precision loss on repeated small additions.
	sum := ZeroMoney
	for range 100 {
		sum = sum.Add(MustMoney("0.01"))
	}
	require.True(t, sum.Equal(MustMoney("1.00")))
}

func TestMoneyJSON(t *testing.T) {
	b, err := json.Marshal(map[string]Money{"balance": MustMoney("9000.00")})
	require.NoError(t, err)
	require.JSONEq(t, `{"balance":9000.00}`, string(b))

	var m Money
	require.NoError(t, json.Unmarshal([]byte(`6000`), &m))
	require.Equal(t, "6000.00", m.String())

	require.NoError(t, json.Unmarshal([]byte(`"250.75"`), &m))
	require.Equal(t, "250.75", m.String())

	require.Error(t, json.Unmarshal([]byte(`"1.005"`), &m))
}

func TestMoneyScan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan([]byte("12000.00")))
	require.Equal(t, "12000.00", m.String())

	require.NoError(t, m.Scan(nil))
	require.True(t, m.IsZero())

	v, err := MustMoney("42.10").Value()
	require.NoError(t, err)
	require.Equal(t, "42.10", v)
}

func TestNewBalance(t *testing.T) {
	b := NewBalance(MustMoney("12000.00"), MustMoney("3000.00"))
	require.Equal(t, "12000.00", b.TuitionTotal.String())
	require.Equal(t, "3000.00", b.Paid.String())
	require.Equal(t, "9000.00", b.Balance.String())
}
