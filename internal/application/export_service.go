package application

import (
	"fmt"
	"time"

	"mclink/internal/repository"
	"mclink/pkg/sheets"

	"github.com/xuri/excelize/v2"
)

const (
	exportSheetName  = "Links"
	exportSheetTitle = "Minecraft Link Records"
	exportTimeLayout = "2006-01-02 15:04"
)

// ExportService renders the link table for admins: an xlsx attachment
// for Discord and a synced Google Sheet.
type ExportService struct {
	links      repository.Link
	sheets     *sheets.Client
	ownerEmail string
	log        Logger
}

func NewExportService(links repository.Link, sheetsClient *sheets.Client, ownerEmail string, log Logger) *ExportService {
	return &ExportService{
		links:      links,
		sheets:     sheetsClient,
		ownerEmail: ownerEmail,
		log:        log,
	}
}

func (s *ExportService) GetExcelReport() ([]byte, error) {
	records := s.links.FindAll()

	f := excelize.NewFile()
	f.NewSheet(exportSheetName)
	f.DeleteSheet("Sheet1")

	headers := []string{"Minecraft UUID", "Minecraft Name", "Discord Name", "Discord ID", "Linked At"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(exportSheetName, cell, h)
	}

	row := 2
	for _, rec := range records {
		f.SetCellValue(exportSheetName, fmt.Sprintf("A%d", row), rec.MinecraftUUID)
		f.SetCellValue(exportSheetName, fmt.Sprintf("B%d", row), rec.MinecraftName)
		f.SetCellValue(exportSheetName, fmt.Sprintf("C%d", row), rec.DiscordName)
		f.SetCellValue(exportSheetName, fmt.Sprintf("D%d", row), rec.DiscordID)
		f.SetCellValue(exportSheetName, fmt.Sprintf("E%d", row), rec.LinkedAt.Format(exportTimeLayout))
		row++
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write excel report: %w", err)
	}
	return buf.Bytes(), nil
}

// SyncToGoogleSheet replaces the spreadsheet contents with the current
// link table and returns its URL.
func (s *ExportService) SyncToGoogleSheet() (string, error) {
	if s.sheets == nil {
		return "", fmt.Errorf("google sheets export is not configured")
	}

	url, err := s.sheets.EnsureSpreadsheet(exportSheetTitle, s.ownerEmail)
	if err != nil {
		return "", err
	}

	records := s.links.FindAll()
	data := make([][]interface{}, 0, len(records)+2)
	data = append(data, []interface{}{"Minecraft UUID", "Minecraft Name", "Discord Name", "Discord ID", "Linked At"})
	for _, rec := range records {
		data = append(data, []interface{}{
			rec.MinecraftUUID,
			rec.MinecraftName,
			rec.DiscordName,
			rec.DiscordID,
			rec.LinkedAt.Format(exportTimeLayout),
		})
	}
	data = append(data, []interface{}{fmt.Sprintf("Updated %s", time.Now().UTC().Format(exportTimeLayout))})

	if err := s.sheets.ReplaceAll(data); err != nil {
		return "", err
	}

	s.log.Info("synced %d link records to Google Sheet", len(records))
	return url, nil
}
