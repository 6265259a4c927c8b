package importer

import (
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/tomvds/opsdesk/internal/finance"
	"github.com/tomvds/opsdesk/internal/importer/bankcsv"
)

type Service struct {
	bankCSVImporter Importer
}

func NewService() *Service {
	return &Service{
		bankCSVImporter: bankcsv.New(),
	}
}

// Import parses a statement and stamps every resulting payment with the
// client it was received from.
func (s *Service) Import(format Format, clientID uuid.UUID, r io.Reader) ([]finance.CreatePaymentParams, error) {
	var imp Importer

	switch format {
	case FormatBankCSV:
		imp = s.bankCSVImporter
	default:
		return nil, fmt.Errorf("unknown statement format: %s", format)
	}

	params, err := imp.Parse(r)
	if err != nil {
		return nil, err
	}

	for i := range params {
		params[i].ClientID = clientID
	}

	return params, nil
}
