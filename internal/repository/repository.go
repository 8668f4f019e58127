package repository

import (
	"database/sql"

	"mclink/internal/models"
)

// Logger is the subset of the application logger the stores need to
// report transport failures. Stores never return errors: a failed query
// surfaces as absence (nil/false/0) so callers stay in plain control
// flow, and the failure itself is logged here.
type Logger interface {
	Error(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Info(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

// Link stores the durable Minecraft↔Discord associations.
type Link interface {
	IsLinked(minecraftUUID string) bool
	FindByMinecraftUUID(minecraftUUID string) *models.LinkRecord
	// FindByDiscordID returns records most recently linked first.
	FindByDiscordID(discordID string) []models.LinkRecord
	CountByDiscordID(discordID string) int
	// Create inserts or, on an existing minecraft_uuid, overwrites the
	// Discord side and linked_at. Ownership policy lives in the
	// linking service, not here.
	Create(link models.LinkRecord) bool
	Update(link models.LinkRecord) bool
	Delete(minecraftUUID string) bool
	DeleteByDiscordID(discordID string) int
	FindAll() []models.LinkRecord
}

// Code stores pending verification codes.
type Code interface {
	Create(code models.VerificationCode) bool
	// FindValid returns the code only while it has not expired; rows
	// past expiry are treated as absent even if not yet swept.
	FindValid(code string) *models.VerificationCode
	FindPending(minecraftUUID string) *models.VerificationCode
	Delete(code string) bool
	DeleteByMinecraftUUID(minecraftUUID string) int
	CleanExpired() int
	// Exists ignores expiry: collision probing during issuance must
	// avoid physically present rows even when they are stale.
	Exists(code string) bool
}

type Repository struct {
	Link Link
	Code Code
	db   *sql.DB
}

func NewRepository(db *sql.DB, log Logger) *Repository {
	return &Repository{
		Link: NewLinkPostgres(db, log),
		Code: NewCodePostgres(db, log),
		db:   db,
	}
}
