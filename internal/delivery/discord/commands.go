package discord

import "github.com/bwmarrin/discordgo"

var commands = []*discordgo.ApplicationCommand{
	{
		Name:        "setup-link",
		Description: "Post the account-linking panel in this channel (admins only)",
	},
	{
		Name:        "mccheck",
		Description: "Show the Minecraft accounts linked to a Discord user (admins only)",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "Discord user", Required: true},
		},
	},
	{
		Name:        "mcstatus",
		Description: "Show link status and pending code for a Minecraft UUID (admins only)",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "uuid", Description: "Minecraft UUID", Required: true},
		},
	},
	{
		Name:        "unlink-mc",
		Description: "Unlink a Minecraft account by UUID (admins only)",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionString, Name: "uuid", Description: "Minecraft UUID", Required: true},
		},
	},
	{
		Name:        "unlink-discord",
		Description: "Unlink every Minecraft account of a Discord user (admins only)",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionUser, Name: "user", Description: "Discord user", Required: true},
		},
	},
	{
		Name:        "export-links",
		Description: "Export all link records to an Excel file (admins only)",
	},
	{
		Name:        "sync-links",
		Description: "Sync all link records to the Google Sheet (admins only)",
	},
}
