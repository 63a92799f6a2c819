package bot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Spok95/campus-bot/internal/dialog"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

/*** HELPERS ***/

// maxUploadBytes расписание больше мегабайта — явно не расписание.
const maxUploadBytes = 1 << 20

func (b *Bot) answerCallback(cb *tgbotapi.CallbackQuery, text string, alert bool) error {
	resp := tgbotapi.NewCallback(cb.ID, text)
	resp.ShowAlert = alert
	_, err := b.api.Request(resp)
	return err
}

func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send failed", "err", err)
	}
}

// sendText короткий ответ без клавиатуры.
func (b *Bot) sendText(chatID int64, text string) {
	b.send(tgbotapi.NewMessage(chatID, text))
}

// setState сохранить шаг диалога; ошибка только логируется.
func (b *Bot) setState(ctx context.Context, chatID int64, st dialog.State, payload dialog.Payload) {
	if err := b.states.Set(ctx, chatID, st, payload); err != nil {
		b.log.Error("dialog state save failed", "chat_id", chatID, "state", st, "err", err)
	}
}

func (b *Bot) resetState(ctx context.Context, chatID int64) {
	if err := b.states.Reset(ctx, chatID); err != nil {
		b.log.Error("dialog state reset failed", "chat_id", chatID, "err", err)
	}
}

// downloadTelegramFile скачивает файл по FileID через Telegram API.
func (b *Bot) downloadTelegramFile(ctx context.Context, fileID string) ([]byte, error) {
	url, err := b.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("get file url: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("telegram returned status %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxUploadBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if len(data) > maxUploadBytes {
		return nil, fmt.Errorf("file is larger than %d bytes", maxUploadBytes)
	}
	return data, nil
}

func (b *Bot) editText(chatID int64, messageID int, text string, kb *tgbotapi.InlineKeyboardMarkup) {
	if kb == nil {
		empty := tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}}
		kb = &empty
	}
	b.send(tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, *kb))
}

func (b *Bot) editTextAndClear(chatID int64, messageID int, text string) {
	b.editText(chatID, messageID, text, nil)
}

// sendDocument отправить xlsx из памяти.
func (b *Bot) sendDocument(chatID int64, name string, data []byte, caption string) {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{Name: name, Bytes: data})
	doc.Caption = caption
	b.send(doc)
}
