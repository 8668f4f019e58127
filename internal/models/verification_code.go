package models

import "time"

// VerificationCode is a short-lived numeric token proving that whoever
// submits it on Discord controls the Minecraft account it was issued for.
type VerificationCode struct {
	Code          string    `json:"code"`
	MinecraftUUID string    `json:"minecraft_uuid"`
	MinecraftName string    `json:"minecraft_name"`
	CreatedAt     time.Time `json:"created_at"`
	ExpiresAt     time.Time `json:"expires_at"`
}

func NewVerificationCode(code, minecraftUUID, minecraftName string, ttl time.Duration, now time.Time) VerificationCode {
	return VerificationCode{
		Code:          code,
		MinecraftUUID: minecraftUUID,
		MinecraftName: minecraftName,
		CreatedAt:     now,
		ExpiresAt:     now.Add(ttl),
	}
}

// IsExpired reports whether the code is no longer redeemable. A code is
// valid strictly until its expiry instant; at or after it the code is
// expired, matching the `expires_at > NOW()` predicate used in SQL.
func (c *VerificationCode) IsExpired(now time.Time) bool {
	return !c.ExpiresAt.After(now)
}

func (c *VerificationCode) RemainingMinutes(now time.Time) int {
	if now.After(c.ExpiresAt) {
		return 0
	}
	return int(c.ExpiresAt.Sub(now).Minutes())
}
