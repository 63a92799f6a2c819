package timetable

import (
	"errors"
	"strings"
)

type SlotKind string

const (
	KindLecture SlotKind = "Lecture"
	KindLab     SlotKind = "Lab"
	KindFree    SlotKind = "Free"
	KindLunch   SlotKind = "Lunch"
)

// ErrEmpty возвращается парсерами, когда в файле нет ни одной пригодной пары.
var ErrEmpty = errors.New("timetable: no usable slots")

// Weekdays порядок дней, в котором расписание показывается пользователю.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

var allDays = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

type Slot struct {
	Time    string   `json:"time"`
	Subject string   `json:"subject"`
	Kind    SlotKind `json:"type"`
	Room    string   `json:"room,omitempty"`
}

type Day struct {
	Day   string `json:"day"`
	Slots []Slot `json:"slots"`
}

// ParseKind без учёта регистра: "lecture", "LAB" и т.п.
func ParseKind(s string) (SlotKind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lecture":
		return KindLecture, true
	case "lab":
		return KindLab, true
	case "free":
		return KindFree, true
	case "lunch":
		return KindLunch, true
	}
	return "", false
}

// CountsAsSubject только лекции и лабы попадают в учёт посещаемости.
func (k SlotKind) CountsAsSubject() bool {
	return k == KindLecture || k == KindLab
}

func (k SlotKind) Emoji() string {
	switch k {
	case KindLecture:
		return "📘"
	case KindLab:
		return "🧪"
	case KindLunch:
		return "🍛"
	default:
		return "💤"
	}
}

// CanonicalDay приводит "monday", "MON" к "Monday". Неизвестные строки возвращаются как есть.
func CanonicalDay(s string) string {
	s = strings.TrimSpace(s)
	low := strings.ToLower(s)
	for _, d := range allDays {
		dl := strings.ToLower(d)
		if low == dl || (len(low) >= 3 && strings.HasPrefix(dl, low)) {
			return d
		}
	}
	return s
}

// Find возвращает расписание дня по имени.
func Find(days []Day, day string) (Day, bool) {
	day = CanonicalDay(day)
	for _, d := range days {
		if CanonicalDay(d.Day) == day {
			return d, true
		}
	}
	return Day{}, false
}

// SlotCount считает все пары во всех днях.
func SlotCount(days []Day) int {
	n := 0
	for _, d := range days {
		n += len(d.Slots)
	}
	return n
}
