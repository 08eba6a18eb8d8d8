package messages

// Secret capture messages for API key handling.
const (
	SecretPromptTitle = "Tessellate API key"
	SecretPromptBody  = "Get a key at https://console.tessellate.dev — press Enter to skip."

	SecretSkipped          = "No API key entered. Edit the workspace .env before launching the agent."
	SecretSavedFmt         = "API key saved to %s and %s\n"
	SecretProfileHasExport = "shell profile already exports the key, leaving it untouched"

	SecretReadEnvFailedFmt     = "read env file %s: %w"
	SecretWriteEnvFailedFmt    = "write env file %s: %w"
	SecretReadProfileFailedFmt = "read shell profile %s: %w"
	SecretAppendProfileFailedFmt = "append to shell profile %s: %w"
	SecretPromptFailedFmt      = "read API key: %w"

	SecretProfileComment = "# Tessellate API key"
)
