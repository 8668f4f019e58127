package repository

import (
	"database/sql"

	"mclink/internal/models"
)

type CodePostgres struct {
	db  *sql.DB
	log Logger
}

func NewCodePostgres(db *sql.DB, log Logger) *CodePostgres {
	return &CodePostgres{db: db, log: log}
}

func (r *CodePostgres) Create(code models.VerificationCode) bool {
	_, err := r.db.Exec(`
		INSERT INTO verification_codes (code, minecraft_uuid, minecraft_name, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (code) DO UPDATE SET
			minecraft_uuid = EXCLUDED.minecraft_uuid,
			minecraft_name = EXCLUDED.minecraft_name,
			created_at = EXCLUDED.created_at,
			expires_at = EXCLUDED.expires_at
	`, code.Code, code.MinecraftUUID, code.MinecraftName, code.CreatedAt, code.ExpiresAt)
	if err != nil {
		r.log.Error("codes: create failed: %v", err)
		return false
	}
	return true
}

func (r *CodePostgres) FindValid(code string) *models.VerificationCode {
	var vc models.VerificationCode
	err := r.db.QueryRow(`
		SELECT code, minecraft_uuid, minecraft_name, created_at, expires_at
		FROM verification_codes
		WHERE code = $1 AND expires_at > NOW()
	`, code).Scan(&vc.Code, &vc.MinecraftUUID, &vc.MinecraftName, &vc.CreatedAt, &vc.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		r.log.Error("codes: find valid failed: %v", err)
		return nil
	}
	return &vc
}

func (r *CodePostgres) FindPending(minecraftUUID string) *models.VerificationCode {
	var vc models.VerificationCode
	err := r.db.QueryRow(`
		SELECT code, minecraft_uuid, minecraft_name, created_at, expires_at
		FROM verification_codes
		WHERE minecraft_uuid = $1 AND expires_at > NOW()
		ORDER BY created_at DESC
		LIMIT 1
	`, minecraftUUID).Scan(&vc.Code, &vc.MinecraftUUID, &vc.MinecraftName, &vc.CreatedAt, &vc.ExpiresAt)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		r.log.Error("codes: find pending failed: %v", err)
		return nil
	}
	return &vc
}

func (r *CodePostgres) Delete(code string) bool {
	result, err := r.db.Exec(`DELETE FROM verification_codes WHERE code = $1`, code)
	if err != nil {
		r.log.Error("codes: delete failed: %v", err)
		return false
	}
	rows, _ := result.RowsAffected()
	return rows > 0
}

func (r *CodePostgres) DeleteByMinecraftUUID(minecraftUUID string) int {
	result, err := r.db.Exec(`DELETE FROM verification_codes WHERE minecraft_uuid = $1`, minecraftUUID)
	if err != nil {
		r.log.Error("codes: delete by uuid failed: %v", err)
		return 0
	}
	rows, _ := result.RowsAffected()
	return int(rows)
}

func (r *CodePostgres) CleanExpired() int {
	result, err := r.db.Exec(`DELETE FROM verification_codes WHERE expires_at < NOW()`)
	if err != nil {
		r.log.Error("codes: clean expired failed: %v", err)
		return 0
	}
	rows, _ := result.RowsAffected()
	return int(rows)
}

func (r *CodePostgres) Exists(code string) bool {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM verification_codes WHERE code = $1`, code).Scan(&count)
	if err != nil {
		r.log.Error("codes: exists query failed: %v", err)
		return false
	}
	return count > 0
}
