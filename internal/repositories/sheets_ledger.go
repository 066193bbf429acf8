package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const defaultSheetsRange = "A1"

// SheetsLedger appends lead rows to a Google Sheets spreadsheet.
type SheetsLedger struct {
	values        *sheets.SpreadsheetsValuesService
	spreadsheetID string
	writeRange    string
}

// SheetsCredentials picks inline service-account JSON over a key file.
func SheetsCredentials(inlineJSON, keyFile string) (option.ClientOption, error) {
	switch {
	case strings.TrimSpace(inlineJSON) != "":
		if !json.Valid([]byte(inlineJSON)) {
			return nil, errors.New("sheets: service account JSON is malformed")
		}
		return option.WithCredentialsJSON([]byte(inlineJSON)), nil
	case strings.TrimSpace(keyFile) != "":
		return option.WithCredentialsFile(keyFile), nil
	}
	return nil, errors.New("sheets: no service account credentials")
}

func NewSheetsLedger(ctx context.Context, spreadsheetID, writeRange string, opts ...option.ClientOption) (*SheetsLedger, error) {
	if strings.TrimSpace(spreadsheetID) == "" {
		return nil, errors.New("sheets: empty spreadsheet id")
	}
	if writeRange == "" {
		writeRange = defaultSheetsRange
	}
	opts = append([]option.ClientOption{option.WithScopes(sheets.SpreadsheetsScope)}, opts...)
	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: new service: %w", err)
	}
	return &SheetsLedger{
		values:        srv.Spreadsheets.Values,
		spreadsheetID: spreadsheetID,
		writeRange:    writeRange,
	}, nil
}

// Append adds one row after the last row of the table found at writeRange.
func (l *SheetsLedger) Append(ctx context.Context, row []any) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{textCells(row)}}
	_, err := l.values.Append(l.spreadsheetID, l.writeRange, vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets append: %w", err)
	}
	return nil
}

// textCells prefixes string cells that USER_ENTERED would parse as a formula
// with an apostrophe, so lead input is always stored as text.
func textCells(row []any) []any {
	out := make([]any, len(row))
	for i, v := range row {
		if s, ok := v.(string); ok && s != "" && strings.ContainsRune("=+-@", rune(s[0])) {
			v = "'" + s
		}
		out[i] = v
	}
	return out
}
