package importer

import (
	"io"

	"github.com/tomvds/opsdesk/internal/finance"
)

// Format identifies a supported statement layout.
type Format string

const (
	FormatBankCSV Format = "bankcsv"
)

type Importer interface {
	Parse(r io.Reader) ([]finance.CreatePaymentParams, error)
}
