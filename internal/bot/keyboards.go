package bot

import (
	"strings"

	"github.com/Spok95/campus-bot/internal/domain/timetable"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	btnAttendance = "📊 Посещаемость"
	btnToday      = "📅 Сегодня"
	btnTimetable  = "🗓 Расписание"
	btnReport     = "📄 Отчёт"
)

func navKeyboard(back bool, cancel bool) tgbotapi.InlineKeyboardMarkup {
	row := []tgbotapi.InlineKeyboardButton{}
	if back {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("⬅️ Назад", "nav:back"))
	}
	if cancel {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData("✖️ Отменить", "nav:cancel"))
	}
	return tgbotapi.NewInlineKeyboardMarkup(row)
}

// subjectKeyboard кнопки под карточкой предмета.
func subjectKeyboard(id string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Был", "att:p:"+id),
			tgbotapi.NewInlineKeyboardButtonData("❌ Пропустил", "att:a:"+id),
			tgbotapi.NewInlineKeyboardButtonData("✏️", "att:e:"+id),
		),
	)
}

// subjectsKeyboard по строке на предмет: открыть карточку.
func subjectsKeyboard(views []subjectButton) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(views))
	for _, v := range views {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(v.label, "att:s:"+v.id),
		))
	}
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

type subjectButton struct {
	id    string
	label string
}

func dayKeyboard() tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	row := []tgbotapi.InlineKeyboardButton{}
	for _, d := range timetable.Weekdays {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(d[:3], "tt:day:"+d))
		if len(row) == 3 {
			rows = append(rows, row)
			row = []tgbotapi.InlineKeyboardButton{}
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// mainReplyKeyboard нижняя панель студента.
func mainReplyKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.ReplyKeyboardMarkup{
		ResizeKeyboard: true,
		Keyboard: [][]tgbotapi.KeyboardButton{
			{tgbotapi.NewKeyboardButton(btnAttendance), tgbotapi.NewKeyboardButton(btnToday)},
			{tgbotapi.NewKeyboardButton(btnTimetable), tgbotapi.NewKeyboardButton(btnReport)},
		},
	}
}

// parseCallback разбирает "att:p:<id>" на ("att", "p", "<id>"). id может содержать ':'.
func parseCallback(data string) (scope, action, arg string) {
	parts := strings.SplitN(data, ":", 3)
	switch len(parts) {
	case 3:
		return parts[0], parts[1], parts[2]
	case 2:
		return parts[0], parts[1], ""
	default:
		return parts[0], "", ""
	}
}
