package bot

import (
	"context"
	"fmt"
	"time"

	"github.com/Spok95/campus-bot/internal/domain/attendance"
	"github.com/Spok95/campus-bot/internal/domain/users"
	"github.com/Spok95/campus-bot/internal/tracker"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// overviewKeyboard список предметов + обновить.
func overviewKeyboard(ov tracker.Overview) tgbotapi.InlineKeyboardMarkup {
	btns := make([]subjectButton, 0, len(ov.Subjects))
	for _, v := range ov.Subjects {
		btns = append(btns, subjectButton{
			id:    v.ID,
			label: fmt.Sprintf("%s %s · %d%%", statusBadge(v.Status), v.Name, v.Percentage),
		})
	}
	kb := subjectsKeyboard(btns)
	kb.InlineKeyboard = append(kb.InlineKeyboard, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🔄 Обновить", "att:list"),
	))
	return kb
}

// showAttendance экран «Посещаемость». editMsgID != nil — перерисовать существующее сообщение.
func (b *Bot) showAttendance(ctx context.Context, chatID int64, u *users.User, editMsgID *int) {
	ov, err := b.tracker.Overview(ctx, u.ID)
	if err != nil {
		b.sendText(chatID, b.trackerErrorText(err))
		return
	}
	text := formatOverview(ov, b.tracker.Policy().Threshold)
	kb := overviewKeyboard(ov)
	if editMsgID != nil {
		b.editText(chatID, *editMsgID, text, &kb)
		return
	}
	m := tgbotapi.NewMessage(chatID, text)
	m.ReplyMarkup = kb
	b.send(m)
}

func (b *Bot) showSubjectCard(ctx context.Context, chatID int64, u *users.User, subjectID string, editMsgID *int) {
	v, err := b.tracker.Subject(ctx, u.ID, subjectID)
	if err != nil {
		b.sendText(chatID, b.trackerErrorText(err))
		return
	}
	if editMsgID != nil {
		kb := subjectKeyboard(v.ID)
		b.editText(chatID, *editMsgID, formatSubject(v), &kb)
		return
	}
	b.sendSubjectCard(chatID, v)
}

func (b *Bot) sendSubjectCard(chatID int64, v tracker.SubjectView) {
	m := tgbotapi.NewMessage(chatID, formatSubject(v))
	m.ReplyMarkup = subjectKeyboard(v.ID)
	b.send(m)
}

// sendReport выгрузка посещаемости в xlsx.
func (b *Bot) sendReport(ctx context.Context, chatID int64, u *users.User) {
	ov, err := b.tracker.Overview(ctx, u.ID)
	if err != nil {
		b.sendText(chatID, b.trackerErrorText(err))
		return
	}
	if len(ov.Subjects) == 0 {
		b.sendText(chatID, "Отчёт пуст: предметов пока нет.")
		return
	}
	subjects := make([]attendance.Subject, 0, len(ov.Subjects))
	for _, v := range ov.Subjects {
		subjects = append(subjects, v.Subject)
	}
	data, err := attendance.ExportExcel(subjects, b.tracker.Policy())
	if err != nil {
		b.log.Error("attendance export failed", "user_id", u.ID, "err", err)
		b.sendText(chatID, "Не удалось сформировать отчёт.")
		return
	}
	name := fmt.Sprintf("attendance_%s.xlsx", time.Now().Format("2006-01-02"))
	b.sendDocument(chatID, name, data, formatSummary(ov.Summary, b.tracker.Policy().Threshold))
}
