package bot

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/Spok95/campus-bot/internal/domain/timetable"
	"github.com/Spok95/campus-bot/internal/domain/users"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) showToday(ctx context.Context, chatID int64, u *users.User) {
	t, err := b.tracker.Today(ctx, u.ID)
	if err != nil {
		b.sendText(chatID, b.trackerErrorText(err))
		return
	}
	b.sendText(chatID, formatToday(t, b.tracker.Policy().Threshold))
}

func (b *Bot) showDayPicker(chatID int64, editMsgID *int) {
	const text = "Выберите день:"
	kb := dayKeyboard()
	if editMsgID != nil {
		b.editText(chatID, *editMsgID, text, &kb)
		return
	}
	m := tgbotapi.NewMessage(chatID, text)
	m.ReplyMarkup = kb
	b.send(m)
}

func (b *Bot) showDay(ctx context.Context, chatID int64, msgID int, u *users.User, day string) {
	days, err := b.tracker.Timetable(ctx, u.ID)
	if err != nil {
		b.sendText(chatID, b.trackerErrorText(err))
		return
	}
	day = timetable.CanonicalDay(day)
	var slots []timetable.Slot
	if d, ok := timetable.Find(days, day); ok {
		slots = timetable.Sorted(d)
	}
	kb := navKeyboard(true, false)
	b.editText(chatID, msgID, formatDay(day, slots), &kb)
}

// sendTimetableTemplate текущее расписание в xlsx; если его нет — пустой шаблон с заголовком.
func (b *Bot) sendTimetableTemplate(ctx context.Context, chatID int64, u *users.User) {
	days, err := b.tracker.Timetable(ctx, u.ID)
	if err != nil {
		b.sendText(chatID, b.trackerErrorText(err))
		return
	}
	data, err := timetable.TemplateExcel(days)
	if err != nil {
		b.log.Error("timetable template failed", "user_id", u.ID, "err", err)
		b.sendText(chatID, "Не удалось сформировать шаблон.")
		return
	}
	b.sendDocument(chatID, "timetable.xlsx", data, "Заполните и пришлите обратно файлом. Типы: lecture, lab, free, lunch.")
}

// handleDocument загрузка расписания. Принимается в любом состоянии диалога.
func (b *Bot) handleDocument(ctx context.Context, msg *tgbotapi.Message, u *users.User) {
	chatID := msg.Chat.ID
	doc := msg.Document

	var parse func([]byte) ([]timetable.Day, error)
	switch strings.ToLower(filepath.Ext(doc.FileName)) {
	case ".xlsx":
		parse = timetable.ParseExcel
	case ".json":
		parse = timetable.ParseJSON
	default:
		b.sendText(chatID, "Поддерживаются только .xlsx и .json.")
		return
	}
	if doc.FileSize > maxUploadBytes {
		b.sendText(chatID, "Файл слишком большой.")
		return
	}

	data, err := b.downloadTelegramFile(ctx, doc.FileID)
	if err != nil {
		b.log.Error("timetable download failed", "user_id", u.ID, "err", err)
		b.sendText(chatID, "Не удалось скачать файл, попробуйте ещё раз.")
		return
	}

	days, err := parse(data)
	switch {
	case errors.Is(err, timetable.ErrEmpty):
		b.sendText(chatID, "В файле нет ни одной пары. Ничего не изменено.")
		return
	case err != nil:
		b.log.Warn("timetable parse failed", "user_id", u.ID, "file", doc.FileName, "err", err)
		b.sendText(chatID, "Не удалось прочитать расписание. Сверьтесь с шаблоном: /template")
		return
	}

	report, err := b.tracker.ImportTimetable(ctx, u.ID, days)
	if err != nil {
		b.sendText(chatID, b.trackerErrorText(err))
		return
	}
	b.resetState(ctx, chatID)
	b.sendText(chatID, formatSyncReport(report, days))
}
