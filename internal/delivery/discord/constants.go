package discord

const (
	// Component custom IDs.
	buttonLinkMinecraft = "link_minecraft"
	buttonCheckAccounts = "check_accounts"
	modalCodeInput      = "code_input_modal"
	inputMinecraftCode  = "minecraft_code"

	// Embed colors.
	colorGreen = 0x2ECC71
	colorRed   = 0xE74C3C
	colorBlue  = 0x3498DB
	colorGray  = 0x95A5A6

	maxMessageLength     = 2000
	maxMessageTruncation = 1990
)

const (
	msgNoPermission     = "You don't have permission to do that."
	msgGuildOnly        = "This command can only be used in a server."
	msgInvalidCode      = "❌ The code must be exactly %d digits."
	msgCodeExpired      = "❌ That code is invalid or has expired. Rejoin the Minecraft server to get a fresh one."
	msgAlreadyLinked    = "❌ That Minecraft account is already linked."
	msgAccountLimit     = "❌ You've reached the limit of %d linked accounts."
	msgGenericError     = "❌ Something went wrong while linking. Please try again."
	msgLinkSuccess      = "✅ **%s** is now linked to your Discord account (%d/%d accounts)."
	msgAgeShortfall     = "❌ Your Discord account must be at least %d days old (currently %d days)."
	msgTenureShortfall  = "❌ You must be in this server for at least %d minutes (currently %d minutes)."
	msgNoLinkedAccounts = "You have no linked Minecraft accounts yet.\nJoin the Minecraft server to get a linking code."
)
