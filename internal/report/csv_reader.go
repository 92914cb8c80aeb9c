package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Veraticus/tally/internal/model"
)

// ErrInvalidCSV reports a CSV file that does not follow the export layout.
var ErrInvalidCSV = errors.New("invalid csv export")

// ReadCSV parses a file produced by WriteCSV. Rows come back without ids,
// in file order.
func ReadCSV(r io.Reader) ([]model.Transaction, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = len(CSVHeader)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read header: %w", ErrInvalidCSV, err)
	}
	if strings.Join(header, ",") != strings.Join(CSVHeader, ",") {
		return nil, fmt.Errorf("%w: unexpected header %q", ErrInvalidCSV, strings.Join(header, ","))
	}

	var txns []model.Transaction
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidCSV, line, err)
		}

		t, err := parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidCSV, line, err)
		}
		txns = append(txns, t)
	}

	return txns, nil
}

func parseRecord(record []string) (model.Transaction, error) {
	date, err := model.ParseDate(record[0])
	if err != nil {
		return model.Transaction{}, err
	}

	var isIncome bool
	switch record[2] {
	case model.TypeIncome:
		isIncome = true
	case model.TypeExpense:
	default:
		return model.Transaction{}, fmt.Errorf("unknown type %q", record[2])
	}

	amount, err := decimal.NewFromString(record[4])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("invalid amount %q: %w", record[4], err)
	}

	return model.Transaction{
		Date:     date,
		Title:    record[1],
		IsIncome: isIncome,
		Category: record[3],
		Amount:   amount,
		Note:     record[5],
	}, nil
}
