package bankcsv

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// parseAmount parses a European-formatted amount string into cents.
// Examples: "1.234,56" -> 123456, "-588,74" -> -58874, "10,00" -> 1000.
func parseAmount(s string) (int64, error) {
	clean := strings.ReplaceAll(s, " ", "")
	clean = strings.ReplaceAll(clean, "\u00a0", "")
	clean = strings.ReplaceAll(clean, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	if clean == "" {
		return 0, fmt.Errorf("empty amount")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return 0, fmt.Errorf("parsing amount %q: %w", s, err)
	}

	return d.Shift(2).IntPart(), nil
}
