package bot

import (
	"fmt"
	"strings"

	"github.com/Spok95/campus-bot/internal/domain/attendance"
	"github.com/Spok95/campus-bot/internal/domain/clubs"
	"github.com/Spok95/campus-bot/internal/domain/timetable"
	"github.com/Spok95/campus-bot/internal/tracker"
)

// progressBar 10 клеток по проценту.
func progressBar(pct int) string {
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := (pct + 5) / 10
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

func statusBadge(s attendance.Status) string {
	if s == attendance.StatusCritical {
		return "🔴"
	}
	return "🟢"
}

// formatSubject карточка предмета с подсказкой: сколько пар надо посетить или сколько можно пропустить.
func formatSubject(v tracker.SubjectView) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s — %d%%\n", statusBadge(v.Status), v.Name, v.Percentage)
	fmt.Fprintf(&sb, "%s  %d/%d пар\n", progressBar(v.Percentage), v.Attended, v.Total)
	if v.Status == attendance.StatusCritical {
		fmt.Fprintf(&sb, "⚠️ Нужно посетить подряд: %d", v.SessionsNeeded)
	} else {
		fmt.Fprintf(&sb, "😎 Можно пропустить: %d", v.SafeSkips)
	}
	return sb.String()
}

// formatSummary шапка списка предметов. При панике — отдельный баннер.
func formatSummary(sum attendance.Summary, threshold int) string {
	var sb strings.Builder
	if sum.Panic {
		sb.WriteString("🚨 PANIC MODE: общая посещаемость ниже порога!\n")
	}
	fmt.Fprintf(&sb, "Общая посещаемость: %d%% (%d/%d)\nПорог: %d%%",
		sum.Percentage, sum.Attended, sum.Total, threshold)
	return sb.String()
}

func formatOverview(ov tracker.Overview, threshold int) string {
	var sb strings.Builder
	sb.WriteString(formatSummary(ov.Summary, threshold))
	if len(ov.Subjects) == 0 {
		sb.WriteString("\n\nПредметов пока нет. Загрузите расписание (/upload) или добавьте предмет (/add).")
		return sb.String()
	}
	for _, v := range ov.Subjects {
		sb.WriteString("\n\n")
		sb.WriteString(formatSubject(v))
	}
	return sb.String()
}

func formatSlot(s timetable.Slot) string {
	line := fmt.Sprintf("%s %s — %s", s.Kind.Emoji(), s.Time, s.Subject)
	if s.Room != "" {
		line += " (" + s.Room + ")"
	}
	return line
}

func formatDay(day string, slots []timetable.Slot) string {
	if len(slots) == 0 {
		return fmt.Sprintf("%s: пар нет", day)
	}
	lines := make([]string, 0, len(slots)+1)
	lines = append(lines, day+":")
	for _, s := range slots {
		lines = append(lines, formatSlot(s))
	}
	return strings.Join(lines, "\n")
}

func formatToday(t tracker.Today, threshold int) string {
	var sb strings.Builder
	switch {
	case t.Day == "Sunday":
		sb.WriteString("Сегодня воскресенье, пар нет.")
	case t.HasNext:
		fmt.Fprintf(&sb, "Следующая пара: %s @ %s", t.Next.Subject, t.Next.Time)
	case len(t.Slots) > 0:
		sb.WriteString("На сегодня пары закончились.")
	default:
		sb.WriteString("Расписания на сегодня нет.")
	}
	fmt.Fprintf(&sb, "\nОкон сегодня: %d\n\n", t.FreeSlots)
	sb.WriteString(formatSummary(t.Summary, threshold))
	if len(t.Slots) > 0 {
		sb.WriteString("\n\n")
		sb.WriteString(formatDay(t.Day, t.Slots))
	}
	return sb.String()
}

func formatSyncReport(r attendance.SyncReport, days []timetable.Day) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Расписание загружено: дней %d, пар %d.\n", len(days), timetable.SlotCount(days))
	if len(r.Added) == 0 {
		sb.WriteString("Новых предметов нет, история посещаемости сохранена.")
		return sb.String()
	}
	sb.WriteString("Добавлены предметы:")
	for _, s := range r.Added {
		sb.WriteString("\n• " + s.Name)
	}
	return sb.String()
}

// clubFilter аргумент /clubs: название категории фильтрует по ней, иначе ищем по имени.
func clubFilter(args string) clubs.Filter {
	args = strings.TrimSpace(args)
	for _, c := range clubs.Categories(clubs.Directory) {
		if strings.EqualFold(c, args) {
			return clubs.Filter{Category: c}
		}
	}
	return clubs.Filter{Query: args}
}

func formatClubs(list []clubs.Club) string {
	if len(list) == 0 {
		return "Клубов не найдено. Категории: " + strings.Join(clubs.Categories(clubs.Directory), ", ")
	}
	lines := make([]string, 0, len(list))
	for _, c := range list {
		status := "набор открыт"
		if c.Status == clubs.StatusFull {
			status = "мест нет"
		}
		lines = append(lines, fmt.Sprintf("%s %s (%s, %d чел., %s)\n%s",
			c.Icon, c.Name, c.Category, c.Members, status, c.Description))
	}
	return strings.Join(lines, "\n\n")
}
