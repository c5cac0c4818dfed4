package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"landmark-lens/api/internal/viewstate"
)

// maxDownload matches the Bot API getFile limit.
const maxDownload = 20 << 20

func (r *Router) acceptPhoto(ctx context.Context, msg *tgbotapi.Message) {
	ph := msg.Photo[len(msg.Photo)-1] // largest size
	r.acceptFile(ctx, msg.Chat.ID, ph.FileID, "photo.jpg", "image/jpeg")
}

func (r *Router) acceptDocument(ctx context.Context, msg *tgbotapi.Message) {
	d := msg.Document
	r.acceptFile(ctx, msg.Chat.ID, d.FileID, d.FileName, d.MimeType)
}

func (r *Router) acceptFile(ctx context.Context, chatID int64, fileID, name, contentType string) {
	s := r.session(chatID)
	f := viewstate.File{Name: name, ContentType: contentType, PreviewURI: fileID}

	// Rejected files never need the bytes.
	if _, err := viewstate.Accept(f); err == nil {
		data, err := r.fetch(ctx, fileID)
		if err != nil {
			r.logger().Error("telegram file download failed",
				zap.Int64("chat_id", chatID), zap.String("file_id", fileID), zap.Error(err))
			r.sendText(chatID, formatError(s.ctrl.Language(), s.ctrl.Text().Error.Landmark))
			return
		}
		f.Data = data
	}
	s.ctrl.SelectFile(ctx, f)
}

func (r *Router) fetch(ctx context.Context, fileID string) ([]byte, error) {
	url, err := r.Bot.GetFileDirectURL(fileID)
	if err != nil {
		return nil, err
	}
	return download(ctx, r.httpClient(), url)
}

func download(ctx context.Context, cl *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := cl.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(b))
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxDownload))
}

func (r *Router) httpClient() *http.Client {
	if r.HTTP != nil {
		return r.HTTP
	}
	return &http.Client{Timeout: 60 * time.Second}
}
