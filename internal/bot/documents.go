package bot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"secretary/internal/knowledge"
)

// maxDocumentBytes matches the Telegram bot API download limit.
const maxDocumentBytes = 20 << 20

var documentClient = &http.Client{Timeout: 60 * time.Second}

// handleDocument downloads an uploaded file, extracts its text and adds
// it to the knowledge base under the file name as source tag. The upload
// works from any section and does not change navigation state.
func (b *Bot) handleDocument(ctx context.Context, message *tgbotapi.Message) {
	doc := message.Document
	chatID := message.Chat.ID

	if b.api == nil {
		return // For testing
	}

	if doc.FileSize > maxDocumentBytes {
		msg := tgbotapi.NewMessage(chatID, "That file is too big for me, sorry. Please keep it under 20 MB.")
		b.sendMessage(msg)
		return
	}

	status, err := b.api.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("Saving %s to your second brain... ⏳", doc.FileName)))
	if err != nil {
		b.logger.Error("Failed to send status message", zap.Error(err))
		return
	}

	// Ingestion can take a while (download, chunk, embed); run it in the
	// background and edit the status message when it finishes, so the
	// update loop is not held up.
	go func() {
		defer func() {
			if r := recover(); r != nil {
				b.logger.Error("Recovered from panic in document ingestion", zap.Any("panic", r))
			}
		}()

		result := b.ingestDocument(ctx, doc)

		edit := tgbotapi.NewEditMessageText(chatID, status.MessageID, result)
		if _, err := b.api.Send(edit); err != nil {
			b.logger.Error("Failed to edit status message", zap.Error(err))
		}
	}()
}

// ingestDocument does the download/extract/ingest work and returns the
// user-facing outcome text. Failures are logged with detail; the user
// only sees a generic apology.
func (b *Bot) ingestDocument(ctx context.Context, doc *tgbotapi.Document) string {
	fileURL, err := b.api.GetFileDirectURL(doc.FileID)
	if err != nil {
		b.logger.Error("Failed to resolve file URL",
			zap.String("file_name", doc.FileName),
			zap.Error(err),
		)
		return "I couldn't fetch that file from Telegram. Please try again."
	}

	data, err := downloadFile(ctx, fileURL)
	if err != nil {
		b.logger.Error("Failed to download file",
			zap.String("file_name", doc.FileName),
			zap.Error(err),
		)
		return "I couldn't download that file. Please try again."
	}

	text, err := knowledge.ExtractDocumentText(data, doc.FileName)
	if err != nil {
		b.logger.Warn("Failed to extract document text",
			zap.String("file_name", doc.FileName),
			zap.Error(err),
		)
		return fmt.Sprintf("I can't read %s. I understand PDF, .txt and .md files.", doc.FileName)
	}

	if err := b.knowledge.IngestText(ctx, text, doc.FileName); err != nil {
		b.logger.Error("Failed to ingest document",
			zap.String("file_name", doc.FileName),
			zap.Error(err),
		)
		return "Something went wrong while saving that file. Please try again."
	}

	return fmt.Sprintf("Done! %s is in your second brain now. 🧠", doc.FileName)
}

func downloadFile(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := documentClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxDocumentBytes))
}
