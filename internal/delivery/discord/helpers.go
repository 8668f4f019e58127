package discord

import (
	"fmt"
	"time"

	"mclink/internal/application"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) isAdmin(userID string) bool {
	_, ok := b.adminIDs[userID]
	return ok
}

func (b *Bot) respondMessage(s *discordgo.Session, i *discordgo.Interaction, msg string, ephemeral bool) {
	flags := discordgo.MessageFlags(0)
	if ephemeral {
		flags = discordgo.MessageFlagsEphemeral
	}
	s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: msg,
			Flags:   flags,
		},
	})
}

// checkVerification runs the account age and guild tenure policy for
// the submitting member. Returns nil when eligible.
func (b *Bot) checkVerification(userID string, member *discordgo.Member) *application.Shortfall {
	createdAt, err := discordgo.SnowflakeTimestamp(userID)
	if err != nil {
		b.logger.Warn("failed to parse snowflake for %s: %v", userID, err)
		return nil
	}

	var joinedAt *time.Time
	if member != nil && !member.JoinedAt.IsZero() {
		joinedAt = &member.JoinedAt
	}

	return b.services.Verification.Check(createdAt, joinedAt)
}

func formatShortfall(sf *application.Shortfall) string {
	switch sf.Kind {
	case application.ShortfallAccountAge:
		return fmt.Sprintf(msgAgeShortfall, sf.Required, sf.Measured)
	case application.ShortfallServerTenure:
		return fmt.Sprintf(msgTenureShortfall, sf.Required, sf.Measured)
	default:
		return msgGenericError
	}
}

// grantLinkedRole is best-effort: the link already committed, so a role
// failure is only logged.
func (b *Bot) grantLinkedRole(s *discordgo.Session, guildID, userID string) {
	if b.linkedRoleID == "" || guildID == "" {
		return
	}
	if err := s.GuildMemberRoleAdd(guildID, userID, b.linkedRoleID); err != nil {
		b.logger.Warn("failed to grant linked role to %s: %v", userID, err)
	}
}

// sendLinkLogEmbed posts the audit embed to the log channel. Failures
// never affect the completed link.
func (b *Bot) sendLinkLogEmbed(s *discordgo.Session, result application.RedeemResult) {
	if b.logChannelID == "" || result.Link == nil {
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: "✅ Account linked",
		Color: colorGreen,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Minecraft", Value: result.Link.MinecraftName, Inline: true},
			{Name: "Discord", Value: fmt.Sprintf("%s (%s)", result.Link.DiscordName, result.Link.DiscordID), Inline: true},
			{Name: "Total", Value: fmt.Sprintf("%d/%d", result.LinkedCount, b.services.Linking.MaxAccounts()), Inline: true},
		},
	}

	if _, err := s.ChannelMessageSendEmbed(b.logChannelID, embed); err != nil {
		b.logger.Warn("failed to send link log message: %v", err)
	}
}

func modalInputValue(i *discordgo.Interaction, customID string) string {
	for _, row := range i.ModalSubmitData().Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, comp := range actionsRow.Components {
			if input, ok := comp.(*discordgo.TextInput); ok && input.CustomID == customID {
				return input.Value
			}
		}
	}
	return ""
}

func truncateMessage(msg string) string {
	if len(msg) > maxMessageLength {
		return msg[:maxMessageTruncation] + "..."
	}
	return msg
}
