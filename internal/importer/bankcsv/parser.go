package bankcsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	enc "github.com/tomvds/opsdesk/internal/encoding"
	"github.com/tomvds/opsdesk/internal/finance"
)

// Parser reads European bank CSV statements (semicolon separated, comma
// decimals) and produces completed payments for the incoming amounts.
// Outgoing rows and footer lines are skipped; payments are only money
// received from a client.
type Parser struct{}

func New() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]finance.CreatePaymentParams, error) {
	utf8r, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	headerIdx, cols := findHeader(rows)
	if headerIdx < 0 {
		return nil, fmt.Errorf("no statement header found: expected date, description and amount columns")
	}

	return parseRows(cols, rows[headerIdx+1:], headerIdx+1)
}

// colIndex maps lowercased column names to their position in the row.
type colIndex map[string]int

// findHeader scans for the first row carrying the three required columns.
func findHeader(rows [][]string) (int, colIndex) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		_, hasDate := cols["date"]
		_, hasDesc := cols["description"]
		_, hasAmount := cols["amount"]

		if hasDate && hasDesc && hasAmount {
			return rowIdx, cols
		}
	}

	return -1, nil
}

func parseRows(cols colIndex, rows [][]string, headerRowNum int) ([]finance.CreatePaymentParams, error) {
	dateIdx := cols["date"]
	descIdx := cols["description"]
	amountIdx := cols["amount"]

	var params []finance.CreatePaymentParams

	for i, row := range rows {
		rowNum := headerRowNum + i + 2 // 1-based, skipping header

		date, ok := parseDate(row, dateIdx)
		if !ok {
			// Footer lines and balance rows carry no parseable date.
			continue
		}

		desc := cellValue(row, descIdx)
		if desc == "" {
			return nil, fmt.Errorf("row %d: missing description", rowNum)
		}

		cents, err := parseAmount(cellValue(row, amountIdx))
		if err != nil {
			continue
		}

		if cents <= 0 {
			// Outgoing or zero movement; not a client payment.
			continue
		}

		params = append(params, finance.CreatePaymentParams{
			Amount:    cents,
			Status:    finance.PaymentStatusCompleted,
			Method:    "bank_transfer",
			Reference: desc,
			Date:      date,
		})
	}

	return params, nil
}

// parseDate accepts the two date layouts the banks we deal with emit.
func parseDate(row []string, idx int) (time.Time, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range []string{"02-01-2006", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
