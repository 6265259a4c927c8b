package bankcsv

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomvds/opsdesk/internal/finance"
)

func TestParser_Parse(t *testing.T) {
	input := strings.Join([]string{
		"Account;NL12BANK0123456789",
		"Date;Description;Amount",
		"15-01-2024;Invoice 2024-001 Acme Corp;1.250,00",
		"20-01-2024;Office rent January;-588,74",
		"03-02-2024;Invoice 2024-002 Acme Corp;980,50",
		";Closing balance;1.641,76",
	}, "\n")

	params, err := New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 2)

	assert.Equal(t, int64(125000), params[0].Amount)
	assert.Equal(t, "Invoice 2024-001 Acme Corp", params[0].Reference)
	assert.Equal(t, finance.PaymentStatusCompleted, params[0].Status)
	assert.Equal(t, "bank_transfer", params[0].Method)
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), params[0].Date)

	assert.Equal(t, int64(98050), params[1].Amount)
}

func TestParser_Parse_SkipsOutgoingAndZeroAmounts(t *testing.T) {
	input := strings.Join([]string{
		"Date;Description;Amount",
		"15-01-2024;Refund issued;-100,00",
		"16-01-2024;Correction;0,00",
		"17-01-2024;Invoice paid;50,00",
	}, "\n")

	params, err := New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 1)

	assert.Equal(t, int64(5000), params[0].Amount)
}

func TestParser_Parse_AcceptsISODates(t *testing.T) {
	input := strings.Join([]string{
		"Date;Description;Amount",
		"2024-03-05;Invoice paid;10,00",
	}, "\n")

	params, err := New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 1)

	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), params[0].Date)
}

func TestParser_Parse_MissingHeader(t *testing.T) {
	input := "15-01-2024;Invoice paid;10,00"

	_, err := New().Parse(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no statement header")
}

func TestParser_Parse_MissingDescription(t *testing.T) {
	input := strings.Join([]string{
		"Date;Description;Amount",
		"15-01-2024;;10,00",
	}, "\n")

	_, err := New().Parse(strings.NewReader(input))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing description")
}

func TestParser_Parse_Windows1252Input(t *testing.T) {
	input := "Date;Description;Amount\n15-01-2024;Caf\xe9 invoice;25,00"

	params, err := New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, params, 1)

	assert.Equal(t, "Café invoice", params[0].Reference)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{name: "PlainComma", input: "10,00", want: 1000},
		{name: "ThousandsSeparator", input: "1.234,56", want: 123456},
		{name: "Negative", input: "-588,74", want: -58874},
		{name: "NoDecimals", input: "42", want: 4200},
		{name: "SpaceSeparated", input: "1 234,56", want: 123456},
		{name: "Empty", input: "", wantErr: true},
		{name: "Garbage", input: "n/a", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAmount(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
