package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/Veraticus/tally/internal/common"
	"github.com/Veraticus/tally/internal/model"
	"github.com/Veraticus/tally/internal/report"
)

// Writer implements service.ReportWriter for Google Sheets.
type Writer struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewWriter creates a new Google Sheets report writer.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	// Create the Sheets service
	service, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Writer{
		config:  config,
		service: service,
		logger:  logger,
	}, nil
}

// Write replaces the report sheet's contents with txns.
func (w *Writer) Write(ctx context.Context, symbol string, txns []model.Transaction) error {
	w.logger.Info("starting sheets export", "transactions", len(txns))

	spreadsheetID, sheetID, err := w.getOrCreateSpreadsheet(ctx)
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	// Clear existing data
	if clearErr := w.clearSheet(ctx, spreadsheetID); clearErr != nil {
		return fmt.Errorf("failed to clear sheet: %w", clearErr)
	}

	layout := prepareReportData(txns)

	retryOpts := common.RetryOptions{
		MaxAttempts:  w.config.RetryAttempts,
		InitialDelay: w.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}

	err = common.WithRetry(ctx, func() error {
		return w.writeData(ctx, spreadsheetID, layout.values)
	}, retryOpts)
	if err != nil {
		return fmt.Errorf("failed to write data: %w", err)
	}

	// Apply formatting if enabled
	if w.config.EnableFormatting {
		err = common.WithRetry(ctx, func() error {
			return w.applyFormatting(ctx, spreadsheetID, formattingRequests(sheetID, symbol, layout))
		}, retryOpts)
		if err != nil {
			// The data is written; a plain sheet is still usable.
			w.logger.Warn("failed to apply formatting", "error", err)
		}
	}

	w.logger.Info("sheets export completed",
		"spreadsheet_id", spreadsheetID,
		"rows_written", len(layout.values))

	return nil
}

// createSheetsService creates a Google Sheets API service.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	switch config.Auth() {
	case AuthServiceAccount:
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}
		tokenSource = jwtConfig.TokenSource(ctx)
	case AuthOAuth2:
		client := oauthConfig(config.ClientID, config.ClientSecret, "")
		tokenSource = client.TokenSource(ctx, &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		})
	default:
		return nil, ErrNoAuth
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}

// getOrCreateSpreadsheet returns the spreadsheet id and the id of the report sheet in it.
func (w *Writer) getOrCreateSpreadsheet(ctx context.Context) (string, int64, error) {
	if w.config.SpreadsheetID != "" {
		existing, err := w.service.Spreadsheets.Get(w.config.SpreadsheetID).Context(ctx).Do()
		if err != nil {
			return "", 0, fmt.Errorf("unable to access spreadsheet %s: %w", w.config.SpreadsheetID, err)
		}

		for _, sheet := range existing.Sheets {
			if sheet.Properties != nil && sheet.Properties.Title == w.config.SheetTitle {
				return existing.SpreadsheetId, sheet.Properties.SheetId, nil
			}
		}

		sheetID, err := w.addSheet(ctx, existing.SpreadsheetId)
		return existing.SpreadsheetId, sheetID, err
	}

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:    w.config.SpreadsheetName,
			TimeZone: w.config.TimeZone,
		},
		Sheets: []*sheets.Sheet{
			{
				Properties: &sheets.SheetProperties{
					Title: w.config.SheetTitle,
				},
			},
		},
	}

	created, err := w.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", 0, fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	w.logger.Info("created new spreadsheet",
		"id", created.SpreadsheetId,
		"url", created.SpreadsheetUrl)

	var sheetID int64
	if len(created.Sheets) > 0 && created.Sheets[0].Properties != nil {
		sheetID = created.Sheets[0].Properties.SheetId
	}
	return created.SpreadsheetId, sheetID, nil
}

func (w *Writer) addSheet(ctx context.Context, spreadsheetID string) (int64, error) {
	resp, err := w.service.Spreadsheets.BatchUpdate(spreadsheetID, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: w.config.SheetTitle},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("unable to add sheet %q: %w", w.config.SheetTitle, err)
	}

	if len(resp.Replies) == 0 || resp.Replies[0].AddSheet == nil || resp.Replies[0].AddSheet.Properties == nil {
		return 0, fmt.Errorf("unable to add sheet %q: empty reply", w.config.SheetTitle)
	}
	return resp.Replies[0].AddSheet.Properties.SheetId, nil
}

// clearSheet clears all data from the report sheet.
func (w *Writer) clearSheet(ctx context.Context, spreadsheetID string) error {
	_, err := w.service.Spreadsheets.Values.Clear(spreadsheetID, w.sheetRange("A:Z"), &sheets.ClearValuesRequest{}).Context(ctx).Do()
	return err
}

// writeData writes the data to the spreadsheet.
func (w *Writer) writeData(ctx context.Context, spreadsheetID string, values [][]any) error {
	// Write in batches to avoid API limits
	for i := 0; i < len(values); i += w.config.BatchSize {
		end := i + w.config.BatchSize
		if end > len(values) {
			end = len(values)
		}

		batch := values[i:end]
		valueRange := &sheets.ValueRange{
			Values: batch,
		}

		_, err := w.service.Spreadsheets.Values.Update(spreadsheetID, w.sheetRange(fmt.Sprintf("A%d", i+1)), valueRange).
			ValueInputOption("USER_ENTERED").
			Context(ctx).
			Do()

		if err != nil {
			return fmt.Errorf("failed to write batch starting at row %d: %w", i+1, err)
		}

		w.logger.Debug("wrote batch", "start_row", i+1, "rows", len(batch))
	}

	return nil
}

func (w *Writer) applyFormatting(ctx context.Context, spreadsheetID string, requests []*sheets.Request) error {
	batchUpdate := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}

	_, err := w.service.Spreadsheets.BatchUpdate(spreadsheetID, batchUpdate).Context(ctx).Do()
	return err
}

func (w *Writer) sheetRange(cells string) string {
	return fmt.Sprintf("'%s'!%s", strings.ReplaceAll(w.config.SheetTitle, "'", "''"), cells)
}

// reportLayout is the sheet content plus the row positions formatting needs.
type reportLayout struct {
	values       [][]any
	summaryStart int // first summary amount row
	summaryEnd   int // exclusive
	detailsStart int // first transaction row
}

// Column positions in the transaction details block.
const (
	detailColumns     = 6
	detailAmountIndex = 4
)

// prepareReportData lays out the summary, category breakdown and details.
func prepareReportData(txns []model.Transaction) reportLayout {
	summary := report.Summarize(txns)
	categories := summary.Categories()

	values := make([][]any, 0, 16+len(categories)+len(txns))
	values = append(values,
		[]any{"Tally Report", dateRange(txns)},
		[]any{}, // Empty row
		[]any{"Summary"},
	)

	layout := reportLayout{summaryStart: len(values)}
	values = append(values,
		[]any{"Total Income", summary.TotalIncome.StringFixed(2)},
		[]any{"Total Expense", summary.TotalExpense.StringFixed(2)},
		[]any{"Net Balance", summary.Net.StringFixed(2)},
	)
	layout.summaryEnd = len(values)

	values = append(values,
		[]any{"Transactions", summary.Count},
		[]any{}, // Empty row
		[]any{"Category Breakdown"},
		[]any{"Category", "Count", "Income", "Expense"},
	)

	for _, category := range categories {
		ct := summary.ByCategory[category]
		values = append(values, []any{
			category,
			ct.Count,
			ct.Income.StringFixed(2),
			ct.Expense.StringFixed(2),
		})
	}

	header := make([]any, len(report.CSVHeader))
	for i, h := range report.CSVHeader {
		header[i] = h
	}
	values = append(values,
		[]any{}, // Empty row
		[]any{"Transaction Details"},
		header,
	)
	layout.detailsStart = len(values)

	for _, t := range txns {
		values = append(values, []any{
			t.Date.Format(model.DateLayout),
			t.Title,
			t.Type(),
			t.Category,
			t.Amount.StringFixed(2),
			t.Note,
		})
	}

	layout.values = values
	return layout
}

func dateRange(txns []model.Transaction) string {
	if len(txns) == 0 {
		return "No transactions"
	}

	first, last := txns[0].Date, txns[0].Date
	for _, t := range txns[1:] {
		if t.Date.Before(first) {
			first = t.Date
		}
		if t.Date.After(last) {
			last = t.Date
		}
	}
	return fmt.Sprintf("%s - %s", first.Format("Jan 2, 2006"), last.Format("Jan 2, 2006"))
}

// currencyPattern builds a sheets number format showing symbol before the amount.
func currencyPattern(symbol string) string {
	symbol = strings.TrimSpace(symbol)
	if symbol == "" {
		symbol = model.DefaultCurrencySymbol
	}
	return fmt.Sprintf(`"%s"#,##0.00`, strings.ReplaceAll(symbol, `"`, ""))
}

func formattingRequests(sheetID int64, symbol string, layout reportLayout) []*sheets.Request {
	total := int64(len(layout.values))
	currency := &sheets.CellData{
		UserEnteredFormat: &sheets.CellFormat{
			NumberFormat: &sheets.NumberFormat{
				Type:    "CURRENCY",
				Pattern: currencyPattern(symbol),
			},
		},
	}

	return []*sheets.Request{
		// Format title
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          sheetID,
					StartRowIndex:    0,
					EndRowIndex:      1,
					StartColumnIndex: 0,
					EndColumnIndex:   2,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						TextFormat: &sheets.TextFormat{
							Bold:     true,
							FontSize: 16,
						},
					},
				},
				Fields: "userEnteredFormat.textFormat",
			},
		},
		// Summary amounts
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          sheetID,
					StartRowIndex:    int64(layout.summaryStart),
					EndRowIndex:      int64(layout.summaryEnd),
					StartColumnIndex: 1,
					EndColumnIndex:   2,
				},
				Cell:   currency,
				Fields: "userEnteredFormat.numberFormat",
			},
		},
		// Transaction amounts
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          sheetID,
					StartRowIndex:    int64(layout.detailsStart),
					EndRowIndex:      total,
					StartColumnIndex: detailAmountIndex,
					EndColumnIndex:   detailAmountIndex + 1,
				},
				Cell:   currency,
				Fields: "userEnteredFormat.numberFormat",
			},
		},
		// Auto-resize columns
		{
			AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
				Dimensions: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "COLUMNS",
					StartIndex: 0,
					EndIndex:   detailColumns,
				},
			},
		},
	}
}
