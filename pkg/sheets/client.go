package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

const clearRange = "A1:Z10000"

// Client wraps the Sheets and Drive APIs for the one spreadsheet the
// bot maintains with the current link table.
type Client struct {
	sheets *sheets.Service
	drive  *drive.Service

	spreadsheetID  string
	spreadsheetURL string
}

func NewClient(credentialsPath string) (*Client, error) {
	ctx := context.Background()

	sheetsSrv, err := sheets.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	driveSrv, err := drive.NewService(ctx, option.WithCredentialsFile(credentialsPath))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &Client{sheets: sheetsSrv, drive: driveSrv}, nil
}

// EnsureSpreadsheet creates the spreadsheet on first use, shares it
// with the owner and makes it publicly readable. Subsequent calls
// return the existing URL.
func (c *Client) EnsureSpreadsheet(title, ownerEmail string) (string, error) {
	if c.spreadsheetID != "" {
		return c.spreadsheetURL, nil
	}

	resp, err := c.sheets.Spreadsheets.Create(&sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{Title: title},
	}).Do()
	if err != nil {
		return "", fmt.Errorf("failed to create spreadsheet: %w", err)
	}
	c.spreadsheetID = resp.SpreadsheetId
	c.spreadsheetURL = resp.SpreadsheetUrl

	if ownerEmail != "" {
		_, err = c.drive.Permissions.Create(c.spreadsheetID, &drive.Permission{
			Type:         "user",
			Role:         "writer",
			EmailAddress: ownerEmail,
		}).Do()
		if err != nil {
			return "", fmt.Errorf("failed to add owner permission: %w", err)
		}
	}

	_, err = c.drive.Permissions.Create(c.spreadsheetID, &drive.Permission{
		Type: "anyone",
		Role: "reader",
	}).Do()
	if err != nil {
		return "", fmt.Errorf("failed to make spreadsheet public: %w", err)
	}

	return c.spreadsheetURL, nil
}

// ReplaceAll clears the sheet and writes the given rows starting at A1.
func (c *Client) ReplaceAll(values [][]interface{}) error {
	if c.spreadsheetID == "" {
		return fmt.Errorf("spreadsheet not initialized")
	}

	_, err := c.sheets.Spreadsheets.Values.Clear(c.spreadsheetID, clearRange, &sheets.ClearValuesRequest{}).Do()
	if err != nil {
		return fmt.Errorf("failed to clear spreadsheet: %w", err)
	}

	valRange := &sheets.ValueRange{Values: values}
	_, err = c.sheets.Spreadsheets.Values.Update(c.spreadsheetID, "A1", valRange).ValueInputOption("RAW").Do()
	if err != nil {
		return fmt.Errorf("failed to update spreadsheet: %w", err)
	}
	return nil
}

func (c *Client) SetSpreadsheetID(id string) {
	c.spreadsheetID = id
	c.spreadsheetURL = fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s", id)
}
