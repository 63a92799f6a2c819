package bot

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/Spok95/campus-bot/internal/dialog"
	"github.com/Spok95/campus-bot/internal/domain/attendance"
	"github.com/Spok95/campus-bot/internal/domain/clubs"
	"github.com/Spok95/campus-bot/internal/domain/users"
	"github.com/Spok95/campus-bot/internal/tracker"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const helpText = `Что я умею:
/attendance — посещаемость по предметам
/today — следующая пара и окна на сегодня
/timetable — расписание по дням
/upload — загрузить расписание (.xlsx или .json)
/template — выгрузить расписание в Excel для правки
/add — добавить предмет вручную
/report — отчёт по посещаемости в Excel
/excuse [0-100] ситуация — отмазка, число — уровень хаоса
/email [тон] тема — черновик письма преподавателю
/clubs [название или категория] — клубы кампуса
/cancel — отменить текущее действие`

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, u *users.User) {
	chatID := msg.Chat.ID
	switch msg.Command() {
	case "start":
		m := tgbotapi.NewMessage(chatID, "Привет, "+u.DisplayName()+"! Я слежу, чтобы посещаемость не упала ниже порога.\n\n"+helpText)
		m.ReplyMarkup = mainReplyKeyboard()
		b.send(m)
		if u.Department == "" || u.Department == "General" {
			b.setState(ctx, chatID, dialog.StateAwaitDepartment, dialog.Payload{})
			m := tgbotapi.NewMessage(chatID, "С какого ты факультета? Напиши одной строкой.")
			m.ReplyMarkup = navKeyboard(false, true)
			b.send(m)
		}
	case "help":
		b.sendText(chatID, helpText)
	case "attendance":
		b.showAttendance(ctx, chatID, u, nil)
	case "today":
		b.showToday(ctx, chatID, u)
	case "timetable":
		b.showDayPicker(chatID, nil)
	case "add":
		b.setState(ctx, chatID, dialog.StateAwaitSubjectName, dialog.Payload{})
		m := tgbotapi.NewMessage(chatID, "Введите название предмета.")
		m.ReplyMarkup = navKeyboard(false, true)
		b.send(m)
	case "upload":
		b.setState(ctx, chatID, dialog.StateAwaitTimetable, dialog.Payload{})
		m := tgbotapi.NewMessage(chatID,
			"Пришлите расписание файлом .xlsx (колонки day, time, subject, type, room) или .json.\nШаблон можно получить командой /template.")
		m.ReplyMarkup = navKeyboard(false, true)
		b.send(m)
	case "template":
		b.sendTimetableTemplate(ctx, chatID, u)
	case "report":
		b.sendReport(ctx, chatID, u)
	case "excuse":
		b.sendText(chatID, excuseReply(msg.CommandArguments()))
	case "email":
		b.sendText(chatID, emailDraft(msg.CommandArguments(), u.DisplayName()))
	case "clubs":
		b.sendText(chatID, formatClubs(clubs.Search(clubs.Directory, clubFilter(msg.CommandArguments()))))
	case "cancel":
		b.resetState(ctx, chatID)
		b.sendText(chatID, "Действие отменено.")
	default:
		b.sendText(chatID, "Неизвестная команда. /help")
	}
}

func (b *Bot) handleStateMessage(ctx context.Context, msg *tgbotapi.Message, u *users.User) {
	chatID := msg.Chat.ID
	text := strings.TrimSpace(msg.Text)

	// кнопки нижней панели работают из любого состояния
	switch text {
	case btnAttendance:
		b.resetState(ctx, chatID)
		b.showAttendance(ctx, chatID, u, nil)
		return
	case btnToday:
		b.resetState(ctx, chatID)
		b.showToday(ctx, chatID, u)
		return
	case btnTimetable:
		b.resetState(ctx, chatID)
		b.showDayPicker(chatID, nil)
		return
	case btnReport:
		b.resetState(ctx, chatID)
		b.sendReport(ctx, chatID, u)
		return
	}

	st, err := b.states.Get(ctx, chatID)
	if err != nil {
		b.log.Error("dialog state load failed", "chat_id", chatID, "err", err)
		st = &dialog.Item{ChatID: chatID, State: dialog.StateIdle, Payload: dialog.Payload{}}
	}

	switch st.State {
	case dialog.StateAwaitDepartment:
		if text == "" {
			b.sendText(chatID, "Название факультета не может быть пустым.")
			return
		}
		if err := b.users.SetDepartment(ctx, u.ID, text); err != nil {
			b.log.Error("set department failed", "user_id", u.ID, "err", err)
			b.sendText(chatID, "Не удалось сохранить факультет.")
			return
		}
		b.resetState(ctx, chatID)
		b.sendText(chatID, "Записал: "+text)

	case dialog.StateAwaitSubjectName:
		sub, err := b.tracker.AddSubject(ctx, u.ID, text)
		if err != nil {
			b.sendText(chatID, b.trackerErrorText(err))
			return
		}
		b.resetState(ctx, chatID)
		b.showSubjectCard(ctx, chatID, u, sub.ID, nil)

	case dialog.StateEditAttended:
		n, ok := parseCount(text)
		if !ok {
			b.sendText(chatID, "Нужно целое неотрицательное число.")
			return
		}
		subjectID, _ := dialog.GetString(st.Payload, "subject")
		b.setState(ctx, chatID, dialog.StateEditTotal, dialog.Payload{"subject": subjectID, "attended": n})
		m := tgbotapi.NewMessage(chatID, "Сколько всего было пар?")
		m.ReplyMarkup = navKeyboard(false, true)
		b.send(m)

	case dialog.StateEditTotal:
		total, ok := parseCount(text)
		if !ok {
			b.sendText(chatID, "Нужно целое неотрицательное число.")
			return
		}
		subjectID, _ := dialog.GetString(st.Payload, "subject")
		attended, _ := dialog.GetInt(st.Payload, "attended")
		v, err := b.tracker.Edit(ctx, u.ID, subjectID, attended, total)
		if err != nil {
			b.sendText(chatID, b.trackerErrorText(err))
			return
		}
		b.resetState(ctx, chatID)
		if attended > total {
			b.sendText(chatID, "Посещённых пар не может быть больше, чем всего: записал "+strconv.Itoa(v.Attended)+".")
		}
		b.sendSubjectCard(chatID, v)

	case dialog.StateAwaitTimetable:
		b.sendText(chatID, "Жду файл .xlsx или .json с расписанием. /cancel — отменить.")

	default:
		b.sendText(chatID, seniorReply(text, b.tracker.Policy().Threshold))
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, u *users.User) {
	chatID := cb.Message.Chat.ID
	msgID := cb.Message.MessageID
	scope, action, arg := parseCallback(cb.Data)

	switch scope {
	case "att":
		switch action {
		case "s":
			_ = b.answerCallback(cb, "", false)
			b.showSubjectCard(ctx, chatID, u, arg, nil)
		case "p", "a":
			ev := attendance.EventPresent
			note := "Отмечено: был ✅"
			if action == "a" {
				ev = attendance.EventAbsent
				note = "Отмечено: пропуск ❌"
			}
			v, err := b.tracker.Mark(ctx, u.ID, arg, ev)
			if err != nil {
				_ = b.answerCallback(cb, b.trackerErrorText(err), true)
				return
			}
			_ = b.answerCallback(cb, note, false)
			kb := subjectKeyboard(v.ID)
			b.editText(chatID, msgID, formatSubject(v), &kb)
		case "e":
			_ = b.answerCallback(cb, "", false)
			b.setState(ctx, chatID, dialog.StateEditAttended, dialog.Payload{"subject": arg})
			m := tgbotapi.NewMessage(chatID, "Сколько пар посещено?")
			m.ReplyMarkup = navKeyboard(false, true)
			b.send(m)
		case "list":
			_ = b.answerCallback(cb, "", false)
			b.showAttendance(ctx, chatID, u, &msgID)
		default:
			_ = b.answerCallback(cb, "Неизвестное действие", false)
		}

	case "tt":
		_ = b.answerCallback(cb, "", false)
		if action == "day" {
			b.showDay(ctx, chatID, msgID, u, arg)
		}

	case "nav":
		_ = b.answerCallback(cb, "", false)
		switch action {
		case "back":
			b.showDayPicker(chatID, &msgID)
		case "cancel":
			b.resetState(ctx, chatID)
			b.editTextAndClear(chatID, msgID, "Действие отменено.")
		}

	default:
		_ = b.answerCallback(cb, "Неизвестное действие", false)
	}
}

// trackerErrorText текст ошибки для пользователя; неожиданные ошибки логируются.
func (b *Bot) trackerErrorText(err error) string {
	switch {
	case errors.Is(err, tracker.ErrSubjectNotFound):
		return "Предмет не найден. Обновите список: /attendance"
	case errors.Is(err, tracker.ErrInvalidName):
		return "Название не может быть пустым."
	case errors.Is(err, tracker.ErrDuplicateName):
		return "Такой предмет уже есть."
	case errors.Is(err, attendance.ErrVersionConflict):
		return "Данные изменились на другом устройстве. Попробуйте ещё раз."
	}
	b.log.Error("tracker failed", "err", err)
	return "Что-то пошло не так, попробуйте позже."
}

func parseCount(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
