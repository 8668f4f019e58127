package models

import "time"

// LinkRecord binds one Minecraft account to one Discord account.
// There is at most one record per Minecraft UUID; a Discord account
// may own several records, bounded by configuration.
type LinkRecord struct {
	MinecraftUUID string    `json:"minecraft_uuid"`
	MinecraftName string    `json:"minecraft_name"`
	DiscordID     string    `json:"discord_id"`
	DiscordName   string    `json:"discord_name"`
	LinkedAt      time.Time `json:"linked_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (l *LinkRecord) IsForMinecraft(uuid string) bool {
	return l.MinecraftUUID == uuid
}

func (l *LinkRecord) IsForDiscord(id string) bool {
	return l.DiscordID == id
}
