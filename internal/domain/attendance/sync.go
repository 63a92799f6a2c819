package attendance

import (
	"strings"

	"github.com/Spok95/campus-bot/internal/domain/timetable"
)

type SyncReport struct {
	Added   []Subject
	Matched map[string]string // метка из расписания -> id существующего предмета
}

// Changed были ли добавлены новые предметы.
func (r SyncReport) Changed() bool { return len(r.Added) > 0 }

// SubjectLabels уникальные названия лекций и лаб в порядке появления.
// Free/Lunch не учитываются, даже если их подпись совпадает с названием предмета.
func SubjectLabels(days []timetable.Day) []string {
	seen := map[string]bool{}
	var out []string
	for _, d := range days {
		for _, s := range d.Slots {
			if !s.Kind.CountsAsSubject() {
				continue
			}
			name := strings.TrimSpace(s.Subject)
			if name == "" {
				continue
			}
			key := strings.ToLower(name)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, name)
		}
	}
	return out
}

func (p Policy) matches(label, name string) bool {
	a, b := strings.ToLower(strings.TrimSpace(label)), strings.ToLower(strings.TrimSpace(name))
	if a == b {
		return true
	}
	if p.Match != MatchFuzzy || a == "" || b == "" {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// Sync сверяет список предметов с расписанием.
// Существующие предметы (и их счётчики) не трогаются и не удаляются; метка без пары
// становится новым предметом в конце списка. При нескольких кандидатах берётся первый
// по порядку списка, включая предметы, добавленные этим же вызовом.
// Если в расписании нет ни одной лекции/лабы, возвращается исходный срез как есть.
func (p Policy) Sync(ledger []Subject, days []timetable.Day) ([]Subject, SyncReport) {
	report := SyncReport{Matched: map[string]string{}}

	labels := SubjectLabels(days)
	if len(labels) == 0 {
		return ledger, report
	}

	merged := make([]Subject, len(ledger), len(ledger)+len(labels))
	copy(merged, ledger)

	for _, label := range labels {
		found := false
		for _, s := range merged {
			if p.matches(label, s.Name) {
				report.Matched[label] = s.ID
				found = true
				break
			}
		}
		if found {
			continue
		}
		ns := NewSubject(label)
		merged = append(merged, ns)
		report.Added = append(report.Added, ns)
	}

	if !report.Changed() {
		return ledger, report
	}
	return merged, report
}
