package attendance

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

// DefaultThreshold минимальный допустимый процент посещаемости.
const DefaultThreshold = 85

type Event string

const (
	EventPresent Event = "present"
	EventAbsent  Event = "absent"
)

type Status string

const (
	StatusStable   Status = "STABLE"
	StatusCritical Status = "CRITICAL"
)

// MatchMode как при синхронизации с расписанием сопоставляются названия предметов.
type MatchMode string

const (
	// MatchExact — равенство без учёта регистра.
	MatchExact MatchMode = "exact"
	// MatchFuzzy — равенство или вхождение одной строки в другую, без учёта регистра.
	MatchFuzzy MatchMode = "fuzzy"
)

var (
	ErrInvalidThreshold = errors.New("attendance: threshold must be within 1..99")
	ErrInvalidMatchMode = errors.New("attendance: unknown match mode")
)

type Subject struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Attended int    `json:"attended"`
	Total    int    `json:"total"`
}

// Ledger снимок всех предметов одного пользователя вместе с версией для оптимистичной блокировки.
type Ledger struct {
	Subjects []Subject
	Version  int64
}

// Find ищет предмет по id.
func (l Ledger) Find(id string) (int, bool) {
	for i := range l.Subjects {
		if l.Subjects[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

// Policy институциональные правила: порог и режим сопоставления.
type Policy struct {
	Threshold int
	Match     MatchMode
}

func DefaultPolicy() Policy {
	return Policy{Threshold: DefaultThreshold, Match: MatchFuzzy}
}

func (p Policy) Validate() error {
	if p.Threshold < 1 || p.Threshold > 99 {
		return ErrInvalidThreshold
	}
	switch p.Match {
	case MatchExact, MatchFuzzy:
	default:
		return ErrInvalidMatchMode
	}
	return nil
}

// ratio 0.85 при пороге 85.
func (p Policy) ratio() float64 { return float64(p.Threshold) / 100 }

// complement 0.15 при пороге 85. Считается отдельно, а не как 1-ratio: иначе 0.15000000000000002.
func (p Policy) complement() float64 { return float64(100-p.Threshold) / 100 }

// Projection производные значения для карточки предмета. Нигде не хранится.
type Projection struct {
	Percentage     int
	Status         Status
	SessionsNeeded int
	SafeSkips      int
}

// Summary общая («выживательная») статистика по всем предметам.
type Summary struct {
	Attended   int
	Total      int
	Percentage int
	Panic      bool
}

// newID генератор id новых предметов. Подменяется в тестах.
var newID = func() string { return uuid.NewString() }

// NewSubject предмет с нулевыми счётчиками для ручного добавления.
func NewSubject(name string) Subject {
	return Subject{ID: newID(), Name: strings.TrimSpace(name)}
}
