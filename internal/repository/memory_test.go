package repository

import (
	"testing"
	"time"

	"mclink/internal/models"
)

var testBase = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testBase }

func TestMemoryLinkStoreRoundTrip(t *testing.T) {
	store := NewMemoryLinkStore(fixedNow)

	link := models.LinkRecord{
		MinecraftUUID: "u1",
		MinecraftName: "Steve",
		DiscordID:     "c1",
		DiscordName:   "steve#1",
		LinkedAt:      testBase,
	}
	if !store.Create(link) {
		t.Fatal("create failed")
	}

	got := store.FindByMinecraftUUID("u1")
	if got == nil {
		t.Fatal("link not found after create")
	}
	if got.MinecraftUUID != link.MinecraftUUID || got.MinecraftName != link.MinecraftName ||
		got.DiscordID != link.DiscordID || got.DiscordName != link.DiscordName ||
		!got.LinkedAt.Equal(link.LinkedAt) {
		t.Fatalf("stored link does not match: %+v", got)
	}
	if !store.IsLinked("u1") {
		t.Fatal("IsLinked should be true")
	}
	if store.IsLinked("u2") {
		t.Fatal("IsLinked should be false for unknown uuid")
	}
	if store.FindByMinecraftUUID("u2") != nil {
		t.Fatal("unknown uuid should return nil")
	}
}

func TestMemoryLinkStoreCreateIsUpsert(t *testing.T) {
	store := NewMemoryLinkStore(fixedNow)

	store.Create(models.LinkRecord{MinecraftUUID: "u1", DiscordID: "c1", LinkedAt: testBase})
	store.Create(models.LinkRecord{MinecraftUUID: "u1", DiscordID: "c2", LinkedAt: testBase.Add(time.Minute)})

	if got := len(store.FindAll()); got != 1 {
		t.Fatalf("expected single record after upsert, got %d", got)
	}
	if got := store.FindByMinecraftUUID("u1"); got.DiscordID != "c2" {
		t.Fatalf("upsert should keep the newer owner, got %s", got.DiscordID)
	}
}

func TestMemoryLinkStoreFindByDiscordIDOrder(t *testing.T) {
	store := NewMemoryLinkStore(fixedNow)

	store.Create(models.LinkRecord{MinecraftUUID: "u1", DiscordID: "c1", LinkedAt: testBase})
	store.Create(models.LinkRecord{MinecraftUUID: "u2", DiscordID: "c1", LinkedAt: testBase.Add(2 * time.Minute)})
	store.Create(models.LinkRecord{MinecraftUUID: "u3", DiscordID: "c1", LinkedAt: testBase.Add(time.Minute)})
	store.Create(models.LinkRecord{MinecraftUUID: "u4", DiscordID: "c2", LinkedAt: testBase})

	links := store.FindByDiscordID("c1")
	if len(links) != 3 {
		t.Fatalf("expected 3 links, got %d", len(links))
	}
	for i, want := range []string{"u2", "u3", "u1"} {
		if links[i].MinecraftUUID != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, links[i].MinecraftUUID)
		}
	}
	if store.CountByDiscordID("c1") != 3 {
		t.Fatalf("expected count 3, got %d", store.CountByDiscordID("c1"))
	}
	if store.CountByDiscordID("c3") != 0 {
		t.Fatal("unknown discord id should count 0")
	}
}

func TestMemoryLinkStoreDelete(t *testing.T) {
	store := NewMemoryLinkStore(fixedNow)

	store.Create(models.LinkRecord{MinecraftUUID: "u1", DiscordID: "c1", LinkedAt: testBase})
	store.Create(models.LinkRecord{MinecraftUUID: "u2", DiscordID: "c1", LinkedAt: testBase})

	if !store.Delete("u1") {
		t.Fatal("delete should succeed")
	}
	if store.Delete("u1") {
		t.Fatal("second delete should report nothing removed")
	}
	if got := store.DeleteByDiscordID("c1"); got != 1 {
		t.Fatalf("expected 1 remaining deletion, got %d", got)
	}
	if len(store.FindAll()) != 0 {
		t.Fatal("store should be empty")
	}
}

func TestMemoryLinkStoreUpdate(t *testing.T) {
	store := NewMemoryLinkStore(fixedNow)

	if store.Update(models.LinkRecord{MinecraftUUID: "u1"}) {
		t.Fatal("update of missing record should fail")
	}

	store.Create(models.LinkRecord{MinecraftUUID: "u1", MinecraftName: "Steve", DiscordID: "c1", LinkedAt: testBase})
	if !store.Update(models.LinkRecord{MinecraftUUID: "u1", MinecraftName: "Steve_", DiscordID: "c1"}) {
		t.Fatal("update failed")
	}

	got := store.FindByMinecraftUUID("u1")
	if got.MinecraftName != "Steve_" {
		t.Fatalf("name not updated: %s", got.MinecraftName)
	}
	if !got.LinkedAt.Equal(testBase) {
		t.Fatal("update must preserve the original link time")
	}
}

func TestMemoryCodeStoreValidity(t *testing.T) {
	store := NewMemoryCodeStore(fixedNow)

	store.Create(models.VerificationCode{
		Code: "1234", MinecraftUUID: "u1",
		CreatedAt: testBase.Add(-time.Minute), ExpiresAt: testBase.Add(time.Minute),
	})
	store.Create(models.VerificationCode{
		Code: "5678", MinecraftUUID: "u2",
		CreatedAt: testBase.Add(-time.Hour), ExpiresAt: testBase, // expires exactly now
	})
	store.Create(models.VerificationCode{
		Code: "9999", MinecraftUUID: "u3",
		CreatedAt: testBase.Add(-2 * time.Hour), ExpiresAt: testBase.Add(-time.Hour),
	})

	if store.FindValid("1234") == nil {
		t.Fatal("unexpired code should be found")
	}
	if store.FindValid("5678") != nil {
		t.Fatal("code expiring at the current instant is already invalid")
	}
	if store.FindValid("9999") != nil {
		t.Fatal("expired code should not be found")
	}
	if store.FindValid("0000") != nil {
		t.Fatal("unknown code should not be found")
	}

	// Exists ignores expiry: it answers "is this row physically stored".
	for _, code := range []string{"1234", "5678", "9999"} {
		if !store.Exists(code) {
			t.Fatalf("Exists(%s) should be true regardless of expiry", code)
		}
	}

	if got := store.CleanExpired(); got != 2 {
		t.Fatalf("expected 2 expired rows swept, got %d", got)
	}
	if !store.Exists("1234") || store.Exists("5678") || store.Exists("9999") {
		t.Fatal("sweep removed the wrong rows")
	}
}

func TestMemoryCodeStoreFindPendingNewest(t *testing.T) {
	store := NewMemoryCodeStore(fixedNow)

	store.Create(models.VerificationCode{
		Code: "1111", MinecraftUUID: "u1",
		CreatedAt: testBase.Add(-10 * time.Minute), ExpiresAt: testBase.Add(20 * time.Minute),
	})
	store.Create(models.VerificationCode{
		Code: "2222", MinecraftUUID: "u1",
		CreatedAt: testBase.Add(-5 * time.Minute), ExpiresAt: testBase.Add(25 * time.Minute),
	})
	store.Create(models.VerificationCode{
		Code: "3333", MinecraftUUID: "u2",
		CreatedAt: testBase, ExpiresAt: testBase.Add(30 * time.Minute),
	})

	pending := store.FindPending("u1")
	if pending == nil || pending.Code != "2222" {
		t.Fatalf("expected newest pending code 2222, got %+v", pending)
	}
	if store.FindPending("u9") != nil {
		t.Fatal("unknown uuid should have no pending code")
	}

	if got := store.DeleteByMinecraftUUID("u1"); got != 2 {
		t.Fatalf("expected 2 deletions for u1, got %d", got)
	}
	if store.FindPending("u1") != nil {
		t.Fatal("u1 should have no pending code after deletion")
	}
	if store.FindPending("u2") == nil {
		t.Fatal("u2's code must survive u1's deletion")
	}
}

func TestMemoryCodeStoreDelete(t *testing.T) {
	store := NewMemoryCodeStore(fixedNow)

	store.Create(models.VerificationCode{
		Code: "1234", MinecraftUUID: "u1",
		CreatedAt: testBase, ExpiresAt: testBase.Add(time.Hour),
	})

	if !store.Delete("1234") {
		t.Fatal("delete should succeed")
	}
	if store.Delete("1234") {
		t.Fatal("second delete should report nothing removed")
	}
}
