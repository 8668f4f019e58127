package models

import (
	"testing"
	"time"
)

func TestVerificationCodeExpiry(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	vc := NewVerificationCode("4821", "u1", "Steve", 30*time.Minute, issued)

	if !vc.CreatedAt.Equal(issued) {
		t.Fatalf("unexpected created at: %s", vc.CreatedAt)
	}
	if !vc.ExpiresAt.Equal(issued.Add(30 * time.Minute)) {
		t.Fatalf("unexpected expiry: %s", vc.ExpiresAt)
	}

	if vc.IsExpired(issued) {
		t.Fatal("code should be valid at issuance")
	}
	if vc.IsExpired(issued.Add(30*time.Minute - time.Nanosecond)) {
		t.Fatal("code should be valid just before expiry")
	}
	if !vc.IsExpired(issued.Add(30 * time.Minute)) {
		t.Fatal("code is expired at exactly the expiry instant")
	}
	if !vc.IsExpired(issued.Add(31 * time.Minute)) {
		t.Fatal("code should be expired after expiry")
	}
}

func TestVerificationCodeRemainingMinutes(t *testing.T) {
	issued := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	vc := NewVerificationCode("4821", "u1", "Steve", 30*time.Minute, issued)

	if got := vc.RemainingMinutes(issued); got != 30 {
		t.Fatalf("expected 30 minutes at issuance, got %d", got)
	}
	if got := vc.RemainingMinutes(issued.Add(29*time.Minute + 30*time.Second)); got != 0 {
		t.Fatalf("expected truncation to 0 minutes, got %d", got)
	}
	if got := vc.RemainingMinutes(issued.Add(time.Hour)); got != 0 {
		t.Fatalf("expected 0 after expiry, got %d", got)
	}
}
