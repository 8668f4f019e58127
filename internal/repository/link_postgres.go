package repository

import (
	"database/sql"

	"mclink/internal/models"
)

type LinkPostgres struct {
	db  *sql.DB
	log Logger
}

func NewLinkPostgres(db *sql.DB, log Logger) *LinkPostgres {
	return &LinkPostgres{db: db, log: log}
}

func (r *LinkPostgres) IsLinked(minecraftUUID string) bool {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM links WHERE minecraft_uuid = $1`, minecraftUUID).Scan(&count)
	if err != nil {
		r.log.Error("links: is-linked query failed: %v", err)
		return false
	}
	return count > 0
}

func (r *LinkPostgres) FindByMinecraftUUID(minecraftUUID string) *models.LinkRecord {
	var link models.LinkRecord
	err := r.db.QueryRow(`
		SELECT minecraft_uuid, minecraft_name, discord_id, discord_name, linked_at, updated_at
		FROM links
		WHERE minecraft_uuid = $1
	`, minecraftUUID).Scan(
		&link.MinecraftUUID, &link.MinecraftName, &link.DiscordID, &link.DiscordName,
		&link.LinkedAt, &link.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		r.log.Error("links: find by uuid failed: %v", err)
		return nil
	}
	return &link
}

func (r *LinkPostgres) FindByDiscordID(discordID string) []models.LinkRecord {
	rows, err := r.db.Query(`
		SELECT minecraft_uuid, minecraft_name, discord_id, discord_name, linked_at, updated_at
		FROM links
		WHERE discord_id = $1
		ORDER BY linked_at DESC
	`, discordID)
	if err != nil {
		r.log.Error("links: find by discord id failed: %v", err)
		return nil
	}
	defer rows.Close()

	var links []models.LinkRecord
	for rows.Next() {
		var link models.LinkRecord
		if err := rows.Scan(
			&link.MinecraftUUID, &link.MinecraftName, &link.DiscordID, &link.DiscordName,
			&link.LinkedAt, &link.UpdatedAt,
		); err != nil {
			r.log.Error("links: scan failed: %v", err)
			return nil
		}
		links = append(links, link)
	}
	return links
}

func (r *LinkPostgres) CountByDiscordID(discordID string) int {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM links WHERE discord_id = $1`, discordID).Scan(&count)
	if err != nil {
		r.log.Error("links: count by discord id failed: %v", err)
		return 0
	}
	return count
}

func (r *LinkPostgres) Create(link models.LinkRecord) bool {
	_, err := r.db.Exec(`
		INSERT INTO links (minecraft_uuid, minecraft_name, discord_id, discord_name, linked_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (minecraft_uuid) DO UPDATE SET
			minecraft_name = EXCLUDED.minecraft_name,
			discord_id = EXCLUDED.discord_id,
			discord_name = EXCLUDED.discord_name,
			linked_at = EXCLUDED.linked_at,
			updated_at = NOW()
	`, link.MinecraftUUID, link.MinecraftName, link.DiscordID, link.DiscordName, link.LinkedAt)
	if err != nil {
		r.log.Error("links: create failed: %v", err)
		return false
	}
	return true
}

func (r *LinkPostgres) Update(link models.LinkRecord) bool {
	result, err := r.db.Exec(`
		UPDATE links SET
			minecraft_name = $2,
			discord_id = $3,
			discord_name = $4,
			updated_at = NOW()
		WHERE minecraft_uuid = $1
	`, link.MinecraftUUID, link.MinecraftName, link.DiscordID, link.DiscordName)
	if err != nil {
		r.log.Error("links: update failed: %v", err)
		return false
	}
	rows, _ := result.RowsAffected()
	return rows > 0
}

func (r *LinkPostgres) Delete(minecraftUUID string) bool {
	result, err := r.db.Exec(`DELETE FROM links WHERE minecraft_uuid = $1`, minecraftUUID)
	if err != nil {
		r.log.Error("links: delete failed: %v", err)
		return false
	}
	rows, _ := result.RowsAffected()
	return rows > 0
}

func (r *LinkPostgres) DeleteByDiscordID(discordID string) int {
	result, err := r.db.Exec(`DELETE FROM links WHERE discord_id = $1`, discordID)
	if err != nil {
		r.log.Error("links: delete by discord id failed: %v", err)
		return 0
	}
	rows, _ := result.RowsAffected()
	return int(rows)
}

func (r *LinkPostgres) FindAll() []models.LinkRecord {
	rows, err := r.db.Query(`
		SELECT minecraft_uuid, minecraft_name, discord_id, discord_name, linked_at, updated_at
		FROM links
		ORDER BY linked_at DESC
	`)
	if err != nil {
		r.log.Error("links: find all failed: %v", err)
		return nil
	}
	defer rows.Close()

	var links []models.LinkRecord
	for rows.Next() {
		var link models.LinkRecord
		if err := rows.Scan(
			&link.MinecraftUUID, &link.MinecraftName, &link.DiscordID, &link.DiscordName,
			&link.LinkedAt, &link.UpdatedAt,
		); err != nil {
			r.log.Error("links: scan failed: %v", err)
			return nil
		}
		links = append(links, link)
	}
	return links
}
