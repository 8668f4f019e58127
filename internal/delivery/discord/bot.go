package discord

import (
	"context"
	"strings"

	"mclink/internal/application"
	"mclink/pkg/config"

	"github.com/bwmarrin/discordgo"
)

type Bot struct {
	session  *discordgo.Session
	services *application.Service
	logger   application.Logger

	adminIDs     map[string]struct{}
	guildID      string
	logChannelID string
	linkedRoleID string
}

func NewBot(cfg *config.Config, services *application.Service, logger application.Logger) *Bot {
	s, _ := discordgo.New("Bot " + cfg.DiscordToken)

	admins := make(map[string]struct{})
	for _, id := range cfg.AdminUserIDs {
		cleanID := strings.TrimSpace(id)
		if cleanID != "" {
			admins[cleanID] = struct{}{}
		}
	}

	return &Bot{
		session:      s,
		services:     services,
		logger:       logger,
		adminIDs:     admins,
		guildID:      cfg.GuildID,
		logChannelID: cfg.LogChannelID,
		linkedRoleID: cfg.LinkedRoleID,
	}
}

func (b *Bot) Init() error {
	b.session.AddHandler(b.onInteraction)
	return nil
}

func (b *Bot) Run(ctx context.Context) error {
	if err := b.session.Open(); err != nil {
		return err
	}

	b.logger.Info("Discord bot started, registering slash commands...")

	_, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, b.guildID, commands)
	if err != nil {
		b.logger.Error("failed to register commands: %v", err)
	} else {
		b.logger.Info("slash commands registered")
	}

	return nil
}

func (b *Bot) Stop() {
	b.session.Close()
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.onCommand(s, i.Interaction)
	case discordgo.InteractionMessageComponent:
		b.onComponent(s, i.Interaction)
	case discordgo.InteractionModalSubmit:
		b.onModalSubmit(s, i.Interaction)
	}
}

func (b *Bot) onCommand(s *discordgo.Session, i *discordgo.Interaction) {
	if i.Member == nil {
		b.respondMessage(s, i, msgGuildOnly, true)
		return
	}

	if !b.isAdmin(i.Member.User.ID) {
		b.respondMessage(s, i, msgNoPermission, true)
		return
	}

	switch i.ApplicationCommandData().Name {
	case "setup-link":
		b.handleSetupLink(s, i)
	case "mccheck":
		b.handleMcCheck(s, i)
	case "mcstatus":
		b.handleMcStatus(s, i)
	case "unlink-mc":
		b.handleUnlinkMc(s, i)
	case "unlink-discord":
		b.handleUnlinkDiscord(s, i)
	case "export-links":
		b.handleExportLinks(s, i)
	case "sync-links":
		b.handleSyncLinks(s, i)
	}
}

func (b *Bot) onComponent(s *discordgo.Session, i *discordgo.Interaction) {
	switch i.MessageComponentData().CustomID {
	case buttonLinkMinecraft:
		b.handleLinkButton(s, i)
	case buttonCheckAccounts:
		b.handleCheckAccounts(s, i)
	}
}

func (b *Bot) onModalSubmit(s *discordgo.Session, i *discordgo.Interaction) {
	if i.ModalSubmitData().CustomID != modalCodeInput {
		return
	}
	b.handleCodeSubmit(s, i)
}
