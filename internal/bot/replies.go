package bot

import (
	"fmt"
	"strings"

	"github.com/filebeam/filebeam/internal/domain"
)

const (
	replyArchiveFailed  = "Could not store your file. Please try sending it again."
	replyAskPassword    = "Enter a password for your file.\n\nJust send the password as a message."
	replyEmptyPassword  = "Password cannot be empty. Please send it again."
	replyStaleChoice    = "This choice is no longer active. Send a file to start over."
	replyLinksReady     = "Links generated!"
	replyGenericFailure = "Something went wrong with your file. Please send it again."
	replyFallback       = "Please send a file (document, video, or audio), or use /start for help."
	replyAdminOnly      = "This command is restricted."
	replyDeleteUsage    = "Usage: /delete <file key>"
)

func welcomeText(botName string) string {
	return fmt.Sprintf("Welcome to %s!\n\n"+
		"Send me any file (document, video, or audio) and I'll convert it to:\n"+
		"  - a stream link\n"+
		"  - a download link\n"+
		"  - a Telegram link\n\n"+
		"You can optionally protect your file with a password.\n\n"+
		"Just send a file to get started.", botName)
}

func passwordChoiceKeyboard() [][]domain.Button {
	return [][]domain.Button{
		{
			{Label: "No password", Token: TokenChoiceNo},
			{Label: "Yes, set a password", Token: TokenChoiceYes},
		},
	}
}

func formatUploadReceived(record domain.FileRecord) string {
	return fmt.Sprintf("File received: %s\nSize: %s\nKey: %s\n\n"+
		"Do you want to protect this file with a password?",
		record.DisplayName, formatSize(record.SizeBytes), record.Key)
}

func formatLinksReply(record domain.FileRecord, bundle domain.LinkBundle) string {
	protected := "No"
	if record.PasswordProtected {
		protected = "Yes"
	}

	return fmt.Sprintf("File links for %s\n\n"+
		"Key: %s\n"+
		"Password protected: %s\n\n"+
		"Stream: %s\n"+
		"Download: %s\n"+
		"Telegram: %s",
		record.DisplayName, record.Key, protected,
		bundle.StreamLink, bundle.DownloadLink, bundle.PlatformLink)
}

func formatFileList(records []domain.FileRecord) string {
	if len(records) == 0 {
		return "You have no stored files yet. Send one to get started."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Your files (%d):\n", len(records))
	for _, record := range records {
		fmt.Fprintf(&b, "\n%s\nSize: %s\nKey: %s\n", record.DisplayName, formatSize(record.SizeBytes), record.Key)
	}

	return b.String()
}

func formatSize(sizeBytes int64) string {
	return fmt.Sprintf("%.2f MB", float64(sizeBytes)/(1024*1024))
}
