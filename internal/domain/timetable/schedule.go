package timetable

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// minutesOf переводит "09:30" в минуты от начала суток.
func minutesOf(hhmm string) (int, bool) {
	h, m, ok := strings.Cut(strings.TrimSpace(hhmm), ":")
	if !ok {
		return 0, false
	}
	hh, err := strconv.Atoi(h)
	if err != nil || hh < 0 || hh > 23 {
		return 0, false
	}
	mm, err := strconv.Atoi(m)
	if err != nil || mm < 0 || mm > 59 {
		return 0, false
	}
	return hh*60 + mm, true
}

// Sorted копия пар дня, отсортированная по времени начала.
// Нераспознанное время уходит в конец, между собой такие пары идут по строке.
func Sorted(d Day) []Slot {
	out := make([]Slot, len(d.Slots))
	copy(out, d.Slots)
	sort.SliceStable(out, func(i, j int) bool {
		mi, okI := minutesOf(out[i].Time)
		mj, okJ := minutesOf(out[j].Time)
		switch {
		case okI && okJ:
			return mi < mj
		case okI != okJ:
			return okI
		default:
			return out[i].Time < out[j].Time
		}
	})
	return out
}

// NextSlot ближайшая пара сегодня, начинающаяся строго позже now.
// Свободные окна тоже возвращаются: их показывает дашборд.
func NextSlot(days []Day, now time.Time) (Slot, bool) {
	if now.Weekday() == time.Sunday {
		return Slot{}, false
	}
	today, ok := Find(days, now.Weekday().String())
	if !ok {
		return Slot{}, false
	}
	cur := now.Hour()*60 + now.Minute()
	for _, s := range Sorted(today) {
		m, ok := minutesOf(s.Time)
		if !ok {
			continue
		}
		if m > cur {
			return s, true
		}
	}
	return Slot{}, false
}

// FreeSlots число окон (Free/Lunch) за день.
func FreeSlots(d Day) int {
	n := 0
	for _, s := range d.Slots {
		if s.Kind == KindFree || s.Kind == KindLunch {
			n++
		}
	}
	return n
}
