package discord

import (
	"bytes"
	"fmt"
	"strings"

	"mclink/internal/application"

	"github.com/bwmarrin/discordgo"
)

func (b *Bot) handleSetupLink(s *discordgo.Session, i *discordgo.Interaction) {
	embed := &discordgo.MessageEmbed{
		Title: "🔗 Link your Minecraft account",
		Description: fmt.Sprintf(
			"Join the Minecraft server to receive a 4-digit code, then press **Link Account** and enter it.\n\n"+
				"You can link up to **%d** accounts.",
			b.services.Linking.MaxAccounts()),
		Color: colorGreen,
	}

	linkButton := discordgo.Button{
		Label:    "Link Account",
		Style:    discordgo.PrimaryButton,
		CustomID: buttonLinkMinecraft,
		Emoji:    &discordgo.ComponentEmoji{Name: "🎮"},
	}
	checkButton := discordgo.Button{
		Label:    "My Accounts",
		Style:    discordgo.SecondaryButton,
		CustomID: buttonCheckAccounts,
		Emoji:    &discordgo.ComponentEmoji{Name: "🔍"},
	}

	s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{linkButton, checkButton}},
			},
		},
	})
}

func (b *Bot) handleLinkButton(s *discordgo.Session, i *discordgo.Interaction) {
	s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID: modalCodeInput,
			Title:    "Enter your linking code",
			Components: []discordgo.MessageComponent{
				discordgo.ActionsRow{Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    inputMinecraftCode,
						Label:       "4-digit code from the kick screen",
						Style:       discordgo.TextInputShort,
						Placeholder: "1234",
						Required:    true,
						MinLength:   4,
						MaxLength:   4,
					},
				}},
			},
		},
	})
}

func (b *Bot) handleCheckAccounts(s *discordgo.Session, i *discordgo.Interaction) {
	if i.Member == nil {
		b.respondMessage(s, i, msgGuildOnly, true)
		return
	}
	discordID := i.Member.User.ID

	accounts := b.services.Linking.GetLinkedAccounts(discordID)
	if len(accounts) == 0 {
		b.respondMessage(s, i, msgNoLinkedAccounts, true)
		return
	}

	embed := &discordgo.MessageEmbed{
		Title: "Your linked Minecraft accounts",
		Color: colorGreen,
	}
	for idx, link := range accounts {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("Account %d", idx+1),
			Value:  fmt.Sprintf("🎮 **%s**\nlinked <t:%d:R>", link.MinecraftName, link.LinkedAt.Unix()),
			Inline: true,
		})
	}
	embed.Footer = &discordgo.MessageEmbedFooter{
		Text: fmt.Sprintf("%d/%d accounts", len(accounts), b.services.Linking.MaxAccounts()),
	}

	s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
}

func (b *Bot) handleCodeSubmit(s *discordgo.Session, i *discordgo.Interaction) {
	if i.Member == nil {
		b.respondMessage(s, i, msgGuildOnly, true)
		return
	}
	user := i.Member.User

	code := strings.TrimSpace(modalInputValue(i, inputMinecraftCode))

	if shortfall := b.checkVerification(user.ID, i.Member); shortfall != nil {
		b.respondMessage(s, i, formatShortfall(shortfall), true)
		return
	}

	result := b.services.Linking.Redeem(code, user.ID, user.Username)

	switch result.Status {
	case application.RedeemSuccess:
		b.respondMessage(s, i, fmt.Sprintf(msgLinkSuccess,
			result.Link.MinecraftName, result.LinkedCount, b.services.Linking.MaxAccounts()), true)
		b.grantLinkedRole(s, i.GuildID, user.ID)
		b.sendLinkLogEmbed(s, result)
	case application.RejectMalformedCode:
		b.respondMessage(s, i, fmt.Sprintf(msgInvalidCode, 4), true)
	case application.RejectInvalidOrExpired:
		b.respondMessage(s, i, msgCodeExpired, true)
	case application.RejectAlreadyLinked:
		b.respondMessage(s, i, msgAlreadyLinked, true)
	case application.RejectAccountLimit:
		b.respondMessage(s, i, fmt.Sprintf(msgAccountLimit, b.services.Linking.MaxAccounts()), true)
	default:
		b.logger.Error("link failed for user %s: persistence failure", user.ID)
		b.respondMessage(s, i, msgGenericError, true)
	}
}

func (b *Bot) handleMcCheck(s *discordgo.Session, i *discordgo.Interaction) {
	user := i.ApplicationCommandData().Options[0].UserValue(s)
	if user == nil {
		b.respondMessage(s, i, "User not found.", true)
		return
	}

	accounts := b.services.Linking.GetLinkedAccounts(user.ID)
	if len(accounts) == 0 {
		b.respondMessage(s, i, fmt.Sprintf("**%s** has no linked Minecraft accounts.", user.Username), true)
		return
	}

	var sb strings.Builder
	for _, link := range accounts {
		sb.WriteString(fmt.Sprintf("🎮 **%s** (`%s`) — linked <t:%d:R>\n",
			link.MinecraftName, link.MinecraftUUID, link.LinkedAt.Unix()))
	}

	embed := &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("Linked accounts of %s", user.Username),
		Description: truncateMessage(sb.String()),
		Color:       colorBlue,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("%d/%d accounts", len(accounts), b.services.Linking.MaxAccounts()),
		},
	}

	s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
}

func (b *Bot) handleMcStatus(s *discordgo.Session, i *discordgo.Interaction) {
	uuid := i.ApplicationCommandData().Options[0].StringValue()

	link := b.services.Linking.GetLinkInfo(uuid)
	pending := b.services.Linking.GetPendingCode(uuid)

	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("Status for `%s`", uuid),
		Color: colorGray,
	}
	if link != nil {
		embed.Color = colorGreen
		embed.Fields = append(embed.Fields,
			&discordgo.MessageEmbedField{Name: "Minecraft", Value: link.MinecraftName, Inline: true},
			&discordgo.MessageEmbedField{Name: "Discord", Value: fmt.Sprintf("%s (%s)", link.DiscordName, link.DiscordID), Inline: true},
			&discordgo.MessageEmbedField{Name: "Linked", Value: fmt.Sprintf("<t:%d:R>", link.LinkedAt.Unix()), Inline: true},
		)
	} else {
		embed.Description = "Not linked."
	}
	if pending != nil {
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   "Pending code",
			Value:  fmt.Sprintf("`%s`, expires <t:%d:R>", pending.Code, pending.ExpiresAt.Unix()),
			Inline: false,
		})
	}

	s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Embeds: []*discordgo.MessageEmbed{embed},
			Flags:  discordgo.MessageFlagsEphemeral,
		},
	})
}

func (b *Bot) handleUnlinkMc(s *discordgo.Session, i *discordgo.Interaction) {
	uuid := i.ApplicationCommandData().Options[0].StringValue()

	if !b.services.Linking.Unlink(uuid) {
		b.respondMessage(s, i, fmt.Sprintf("No link found for `%s`.", uuid), true)
		return
	}
	b.respondMessage(s, i, fmt.Sprintf("Unlinked `%s`.", uuid), false)
}

func (b *Bot) handleUnlinkDiscord(s *discordgo.Session, i *discordgo.Interaction) {
	user := i.ApplicationCommandData().Options[0].UserValue(s)
	if user == nil {
		b.respondMessage(s, i, "User not found.", true)
		return
	}

	count := b.services.Linking.UnlinkAllForDiscord(user.ID)
	b.respondMessage(s, i, fmt.Sprintf("Removed %d link(s) for **%s**.", count, user.Username), false)
}

func (b *Bot) handleExportLinks(s *discordgo.Session, i *discordgo.Interaction) {
	s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})

	data, err := b.services.Export.GetExcelReport()
	if err != nil {
		b.logger.Error("export error: %v", err)
		content := "Export failed: " + err.Error()
		s.InteractionResponseEdit(i, &discordgo.WebhookEdit{Content: &content})
		return
	}

	content := "Here is the current link table."
	s.InteractionResponseEdit(i, &discordgo.WebhookEdit{
		Content: &content,
		Files: []*discordgo.File{
			{Name: "links.xlsx", Reader: bytes.NewReader(data)},
		},
	})
}

func (b *Bot) handleSyncLinks(s *discordgo.Session, i *discordgo.Interaction) {
	s.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
	})

	url, err := b.services.Export.SyncToGoogleSheet()
	if err != nil {
		content := "Sync failed: " + err.Error()
		s.InteractionResponseEdit(i, &discordgo.WebhookEdit{Content: &content})
		return
	}

	content := "Google Sheet updated!\n" + url
	s.InteractionResponseEdit(i, &discordgo.WebhookEdit{Content: &content})
}
