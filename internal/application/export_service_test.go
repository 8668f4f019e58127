package application

import (
	"bytes"
	"testing"
	"time"

	"mclink/internal/models"
	"mclink/internal/repository"

	"github.com/xuri/excelize/v2"
)

func TestGetExcelReport(t *testing.T) {
	clock := newTestClock()
	links := repository.NewMemoryLinkStore(clock.Now)
	links.Create(models.LinkRecord{
		MinecraftUUID: "u1", MinecraftName: "Steve",
		DiscordID: "c1", DiscordName: "steve#1",
		LinkedAt: clock.Now(),
	})
	links.Create(models.LinkRecord{
		MinecraftUUID: "u2", MinecraftName: "Alex",
		DiscordID: "c2", DiscordName: "alex#2",
		LinkedAt: clock.Now().Add(time.Minute),
	})

	svc := NewExportService(links, nil, "", nopLogger{})
	report, err := svc.GetExcelReport()
	if err != nil {
		t.Fatalf("report failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(report))
	if err != nil {
		t.Fatalf("report is not a readable xlsx: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Links")
	if err != nil {
		t.Fatalf("failed to read sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 records, got %d rows", len(rows))
	}
	if rows[0][0] != "Minecraft UUID" {
		t.Fatalf("unexpected header: %v", rows[0])
	}
	// Newest link first, matching the admin view.
	if rows[1][1] != "Alex" || rows[2][1] != "Steve" {
		t.Fatalf("unexpected row order: %v / %v", rows[1], rows[2])
	}
}

func TestSyncToGoogleSheetUnconfigured(t *testing.T) {
	links := repository.NewMemoryLinkStore(nil)
	svc := NewExportService(links, nil, "", nopLogger{})

	if _, err := svc.SyncToGoogleSheet(); err == nil {
		t.Fatal("expected an error when the sheets client is not configured")
	}
}
