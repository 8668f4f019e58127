package application

import (
	"testing"
	"time"
)

func newTestVerification(enabled bool, minAgeDays, minJoinMinutes int, now time.Time) *VerificationService {
	v := NewVerificationService(enabled, minAgeDays, minJoinMinutes)
	v.now = func() time.Time { return now }
	return v
}

func TestVerificationCheck(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		createdAt time.Time
		joinedAt  *time.Time
		want      *Shortfall
	}{
		{
			name:      "eligible",
			createdAt: now.AddDate(0, 0, -30),
			joinedAt:  timePtr(now.Add(-time.Hour)),
			want:      nil,
		},
		{
			name:      "account too young",
			createdAt: now.AddDate(0, 0, -2),
			joinedAt:  timePtr(now.Add(-time.Hour)),
			want:      &Shortfall{Kind: ShortfallAccountAge, Required: 7, Measured: 2},
		},
		{
			name:      "joined too recently",
			createdAt: now.AddDate(0, 0, -30),
			joinedAt:  timePtr(now.Add(-3 * time.Minute)),
			want:      &Shortfall{Kind: ShortfallServerTenure, Required: 10, Measured: 3},
		},
		{
			name:      "unknown join time skips tenure check",
			createdAt: now.AddDate(0, 0, -30),
			joinedAt:  nil,
			want:      nil,
		},
		{
			name:      "age checked before tenure",
			createdAt: now.AddDate(0, 0, -2),
			joinedAt:  timePtr(now.Add(-3 * time.Minute)),
			want:      &Shortfall{Kind: ShortfallAccountAge, Required: 7, Measured: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestVerification(true, 7, 10, now)
			got := v.Check(tt.createdAt, tt.joinedAt)
			if tt.want == nil {
				if got != nil {
					t.Fatalf("expected eligible, got shortfall %+v", got)
				}
				return
			}
			if got == nil {
				t.Fatal("expected a shortfall, got eligible")
			}
			if *got != *tt.want {
				t.Fatalf("expected shortfall %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestVerificationDisabledApprovesEveryone(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	v := newTestVerification(false, 7, 10, now)

	if got := v.Check(now, timePtr(now)); got != nil {
		t.Fatalf("disabled verification should approve, got %+v", got)
	}
}

func TestVerificationMeasures(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	v := newTestVerification(true, 7, 10, now)

	if got := v.AccountAgeDays(now.AddDate(0, 0, -9)); got != 9 {
		t.Fatalf("expected 9 days, got %d", got)
	}
	if got := v.ServerJoinMinutes(now.Add(-25 * time.Minute)); got != 25 {
		t.Fatalf("expected 25 minutes, got %d", got)
	}
}

func timePtr(t time.Time) *time.Time { return &t }
