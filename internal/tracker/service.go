package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Spok95/campus-bot/internal/domain/attendance"
	"github.com/Spok95/campus-bot/internal/domain/timetable"
	"github.com/Spok95/campus-bot/internal/infra/metrics"
)

var (
	ErrSubjectNotFound = errors.New("subject not found")
	ErrInvalidName     = errors.New("subject name is empty")
	ErrDuplicateName   = errors.New("subject already exists")
)

// maxAttempts сколько раз перечитываем ledger при конфликте версий.
const maxAttempts = 3

type LedgerStore interface {
	Load(ctx context.Context, ownerID int64) (attendance.Ledger, error)
	Save(ctx context.Context, ownerID int64, l attendance.Ledger) (attendance.Ledger, error)
}

type TimetableStore interface {
	Load(ctx context.Context, ownerID int64) ([]timetable.Day, error)
	Save(ctx context.Context, ownerID int64, days []timetable.Day) error
}

// Service загружает снимок, прогоняет его через движок посещаемости и записывает обратно.
type Service struct {
	log        *slog.Logger
	ledgers    LedgerStore
	timetables TimetableStore
	policy     attendance.Policy
	now        func() time.Time
}

func New(log *slog.Logger, ledgers LedgerStore, timetables TimetableStore, policy attendance.Policy) *Service {
	return &Service{
		log:        log,
		ledgers:    ledgers,
		timetables: timetables,
		policy:     policy,
		now:        time.Now,
	}
}

func (s *Service) Policy() attendance.Policy { return s.policy }

// UseLocation день недели и «следующая пара» считаются в этой зоне.
func (s *Service) UseLocation(loc *time.Location) {
	s.now = func() time.Time { return time.Now().In(loc) }
}

type SubjectView struct {
	attendance.Subject
	attendance.Projection
}

type Overview struct {
	Subjects []SubjectView
	Summary  attendance.Summary
}

func (s *Service) view(sub attendance.Subject) SubjectView {
	return SubjectView{Subject: sub, Projection: s.policy.Project(sub)}
}

func (s *Service) Overview(ctx context.Context, ownerID int64) (Overview, error) {
	l, err := s.ledgers.Load(ctx, ownerID)
	if err != nil {
		return Overview{}, fmt.Errorf("load ledger: %w", err)
	}
	ov := Overview{
		Subjects: make([]SubjectView, 0, len(l.Subjects)),
		Summary:  s.policy.Summarize(l.Subjects),
	}
	for _, sub := range l.Subjects {
		ov.Subjects = append(ov.Subjects, s.view(sub))
	}
	metrics.PanicChecks.WithLabelValues(fmt.Sprint(ov.Summary.Panic)).Inc()
	return ov, nil
}

func (s *Service) Subject(ctx context.Context, ownerID int64, subjectID string) (SubjectView, error) {
	l, err := s.ledgers.Load(ctx, ownerID)
	if err != nil {
		return SubjectView{}, fmt.Errorf("load ledger: %w", err)
	}
	i, ok := l.Find(subjectID)
	if !ok {
		return SubjectView{}, ErrSubjectNotFound
	}
	return s.view(l.Subjects[i]), nil
}

// Mark отмечает присутствие или пропуск одной пары.
func (s *Service) Mark(ctx context.Context, ownerID int64, subjectID string, ev attendance.Event) (SubjectView, error) {
	if ev != attendance.EventPresent && ev != attendance.EventAbsent {
		return SubjectView{}, fmt.Errorf("unknown event %q", ev)
	}
	var out attendance.Subject
	_, err := s.update(ctx, ownerID, func(subjects []attendance.Subject) ([]attendance.Subject, bool, error) {
		next, sub, err := replace(subjects, subjectID, func(cur attendance.Subject) attendance.Subject {
			return attendance.Apply(cur, ev)
		})
		out = sub
		return next, err == nil, err
	})
	if err != nil {
		return SubjectView{}, err
	}
	metrics.AttendanceEvents.WithLabelValues(string(ev)).Inc()
	s.log.Debug("attendance marked", "owner", ownerID, "subject", subjectID, "event", ev,
		"attended", out.Attended, "total", out.Total)
	return s.view(out), nil
}

// Edit ручная правка счётчиков предмета.
func (s *Service) Edit(ctx context.Context, ownerID int64, subjectID string, attended, total int) (SubjectView, error) {
	var out attendance.Subject
	_, err := s.update(ctx, ownerID, func(subjects []attendance.Subject) ([]attendance.Subject, bool, error) {
		next, sub, err := replace(subjects, subjectID, func(cur attendance.Subject) attendance.Subject {
			return attendance.Edit(cur, attended, total)
		})
		out = sub
		return next, err == nil, err
	})
	if err != nil {
		return SubjectView{}, err
	}
	metrics.ManualEdits.Inc()
	s.log.Info("attendance edited", "owner", ownerID, "subject", subjectID,
		"attended", out.Attended, "total", out.Total)
	return s.view(out), nil
}

// AddSubject ручное добавление предмета с нулевыми счётчиками.
func (s *Service) AddSubject(ctx context.Context, ownerID int64, name string) (attendance.Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return attendance.Subject{}, ErrInvalidName
	}
	var out attendance.Subject
	_, err := s.update(ctx, ownerID, func(subjects []attendance.Subject) ([]attendance.Subject, bool, error) {
		for _, sub := range subjects {
			if strings.EqualFold(strings.TrimSpace(sub.Name), name) {
				return nil, false, ErrDuplicateName
			}
		}
		out = attendance.NewSubject(name)
		next := make([]attendance.Subject, 0, len(subjects)+1)
		next = append(next, subjects...)
		return append(next, out), true, nil
	})
	if err != nil {
		return attendance.Subject{}, err
	}
	metrics.SubjectsCreated.Inc()
	s.log.Info("subject added", "owner", ownerID, "subject", out.ID, "name", out.Name)
	return out, nil
}

// ImportTimetable досоздаёт предметы по расписанию и только потом сохраняет само расписание.
// Если ledger записать не удалось, старое расписание остаётся на месте.
// Расписание без пар не сохраняется и ledger не трогает.
func (s *Service) ImportTimetable(ctx context.Context, ownerID int64, days []timetable.Day) (attendance.SyncReport, error) {
	if timetable.SlotCount(days) == 0 {
		metrics.TimetableSyncs.WithLabelValues("empty").Inc()
		return attendance.SyncReport{Matched: map[string]string{}}, nil
	}

	var report attendance.SyncReport
	_, err := s.update(ctx, ownerID, func(subjects []attendance.Subject) ([]attendance.Subject, bool, error) {
		var next []attendance.Subject
		next, report = s.policy.Sync(subjects, days)
		return next, report.Changed(), nil
	})
	if err != nil {
		metrics.TimetableSyncs.WithLabelValues("failed").Inc()
		return attendance.SyncReport{}, err
	}
	// повторная загрузка того же файла идемпотентна, так что сбой здесь лечится ею
	if err := s.timetables.Save(ctx, ownerID, days); err != nil {
		metrics.TimetableSyncs.WithLabelValues("failed").Inc()
		return attendance.SyncReport{}, fmt.Errorf("save timetable: %w", err)
	}

	outcome := "unchanged"
	if report.Changed() {
		outcome = "changed"
		metrics.SubjectsCreated.Add(float64(len(report.Added)))
	}
	metrics.TimetableSyncs.WithLabelValues(outcome).Inc()
	s.log.Info("timetable synced", "owner", ownerID, "days", len(days),
		"added", len(report.Added), "matched", len(report.Matched))
	return report, nil
}

func (s *Service) Timetable(ctx context.Context, ownerID int64) ([]timetable.Day, error) {
	days, err := s.timetables.Load(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("load timetable: %w", err)
	}
	return days, nil
}

// Today сводка для главного экрана: ближайшая пара, окна и общий процент.
type Today struct {
	Day       string
	Slots     []timetable.Slot
	Next      timetable.Slot
	HasNext   bool
	FreeSlots int
	Summary   attendance.Summary
}

func (s *Service) Today(ctx context.Context, ownerID int64) (Today, error) {
	now := s.now()
	days, err := s.Timetable(ctx, ownerID)
	if err != nil {
		return Today{}, err
	}
	l, err := s.ledgers.Load(ctx, ownerID)
	if err != nil {
		return Today{}, fmt.Errorf("load ledger: %w", err)
	}

	t := Today{Day: now.Weekday().String(), Summary: s.policy.Summarize(l.Subjects)}
	if d, ok := timetable.Find(days, t.Day); ok {
		t.Slots = timetable.Sorted(d)
		t.FreeSlots = timetable.FreeSlots(d)
	}
	t.Next, t.HasNext = timetable.NextSlot(days, now)
	return t, nil
}

// update читает ledger, применяет fn и пишет результат. При конфликте версий повторяет всё заново.
// fn не должна менять переданный срез; changed=false означает, что писать нечего.
func (s *Service) update(
	ctx context.Context,
	ownerID int64,
	fn func([]attendance.Subject) ([]attendance.Subject, bool, error),
) (attendance.Ledger, error) {
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		l, err := s.ledgers.Load(ctx, ownerID)
		if err != nil {
			return l, fmt.Errorf("load ledger: %w", err)
		}
		next, changed, err := fn(l.Subjects)
		if err != nil {
			return l, err
		}
		if !changed {
			return l, nil
		}
		l.Subjects = next
		saved, err := s.ledgers.Save(ctx, ownerID, l)
		if errors.Is(err, attendance.ErrVersionConflict) {
			metrics.VersionConflicts.Inc()
			s.log.Warn("ledger version conflict, retrying", "owner", ownerID, "attempt", attempt)
			continue
		}
		if err != nil {
			return l, fmt.Errorf("save ledger: %w", err)
		}
		return saved, nil
	}
	return attendance.Ledger{}, fmt.Errorf("save ledger after %d attempts: %w", maxAttempts, attendance.ErrVersionConflict)
}

// replace копирует срез и заменяет в нём предмет с данным id.
func replace(
	subjects []attendance.Subject,
	id string,
	fn func(attendance.Subject) attendance.Subject,
) ([]attendance.Subject, attendance.Subject, error) {
	for i := range subjects {
		if subjects[i].ID != id {
			continue
		}
		next := make([]attendance.Subject, len(subjects))
		copy(next, subjects)
		next[i] = fn(subjects[i])
		return next, next[i], nil
	}
	return nil, attendance.Subject{}, ErrSubjectNotFound
}
