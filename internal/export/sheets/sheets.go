// Package sheets appends materialized month summaries to a Google
// Spreadsheet. The export is an optional mirror of the report archive; the
// worker treats failures here as non-fatal.
package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"financas/internal/config"
	"financas/internal/report"
)

// exportHeader is written once, when the target sheet is still empty.
var exportHeader = []any{
	"Mês", "Receitas", "Despesas", "Saldo", "Taxa de poupança %",
	"Orçamento despesas", "Gasto em orçamentos",
}

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// NewClient builds a Sheets client from the configured OAuth client and
// token credentials (inline JSON preferred over file paths).
func NewClient(ctx context.Context, cfg *config.Config) (*Client, error) {
	if strings.TrimSpace(cfg.GoogleSpreadsheetID) == "" {
		return nil, errors.New("missing Google spreadsheet id")
	}
	if strings.TrimSpace(cfg.GoogleSheetName) == "" {
		return nil, errors.New("missing Google sheet name")
	}

	clientJSON, err := readCredential(cfg.GoogleOAuthClientJSON, cfg.GoogleOAuthClientFile)
	if err != nil {
		return nil, fmt.Errorf("oauth client credentials: %w", err)
	}
	oauthCfg, err := google.ConfigFromJSON(clientJSON, gsheet.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse oauth client config: %w", err)
	}

	tokenJSON, err := readCredential(cfg.GoogleOAuthTokenJSON, cfg.GoogleOAuthTokenFile)
	if err != nil {
		return nil, fmt.Errorf("oauth token: %w", err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(tokenJSON, &token); err != nil {
		return nil, fmt.Errorf("parse oauth token: %w", err)
	}

	svc, err := gsheet.NewService(ctx, goption.WithHTTPClient(oauthCfg.Client(ctx, &token)))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &Client{
		svc:           svc,
		spreadsheetID: cfg.GoogleSpreadsheetID,
		sheetName:     cfg.GoogleSheetName,
	}, nil
}

// ExportMonthReport writes one summary row for the report's month, updating
// the existing row when the month was exported before.
func (c *Client) ExportMonthReport(ctx context.Context, rep report.MonthReport) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	label := monthLabel(rep.Year, rep.Month)
	indexRange := fmt.Sprintf("%s!A:A", c.sheetName)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, indexRange).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read export index %s: %w", indexRange, err)
	}

	vr := &gsheet.ValueRange{Values: [][]any{summaryRow(rep)}}

	row := matchRow(resp.Values, label)
	if row > 0 {
		target := fmt.Sprintf("%s!A%d:G%d", c.sheetName, row, row)
		_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, target, vr).
			ValueInputOption("USER_ENTERED").Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("update export row %s: %w", target, err)
		}
		return nil
	}

	if len(resp.Values) == 0 {
		hdr := &gsheet.ValueRange{Values: [][]any{exportHeader}}
		headerRange := fmt.Sprintf("%s!A1:G1", c.sheetName)
		_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, headerRange, hdr).
			ValueInputOption("USER_ENTERED").Context(ctx).Do()
		if err != nil {
			return fmt.Errorf("write export header: %w", err)
		}
	}

	_, err = c.svc.Spreadsheets.Values.Append(c.spreadsheetID, indexRange, vr).
		ValueInputOption("USER_ENTERED").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("append export row for %s: %w", label, err)
	}
	return nil
}

// readCredential prefers inline JSON over a file path.
func readCredential(inline, file string) ([]byte, error) {
	if strings.TrimSpace(inline) != "" {
		return []byte(inline), nil
	}
	if strings.TrimSpace(file) != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read credential file: %w", err)
		}
		return data, nil
	}
	return nil, errors.New("no credential configured")
}

func monthLabel(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// matchRow returns the 1-based sheet row whose first cell equals label, or 0.
func matchRow(values [][]any, label string) int {
	for i, row := range values {
		if len(row) == 0 {
			continue
		}
		if strings.TrimSpace(fmt.Sprint(row[0])) == label {
			return i + 1
		}
	}
	return 0
}

func summaryRow(rep report.MonthReport) []any {
	s := rep.Summary
	b := rep.Budgets.Summary
	return []any{
		monthLabel(rep.Year, rep.Month),
		s.TotalIncome,
		s.TotalExpense,
		s.TotalBalance,
		s.SavingsRate,
		b.TotalBudgetedExpense,
		b.TotalSpentExpense,
	}
}
