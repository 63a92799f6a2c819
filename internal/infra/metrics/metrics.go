package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AttendanceEvents отметки «был/не был» по типу события.
	AttendanceEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campus_attendance_events_total",
		Help: "Attendance marks applied, by event kind.",
	}, []string{"event"})

	ManualEdits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "campus_attendance_edits_total",
		Help: "Manual corrections of attended/total.",
	})

	// TimetableSyncs результаты синхронизации: changed | unchanged | empty | failed.
	TimetableSyncs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campus_timetable_syncs_total",
		Help: "Timetable to ledger synchronisations, by outcome.",
	}, []string{"outcome"})

	SubjectsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "campus_subjects_created_total",
		Help: "Subjects created by sync or manual add.",
	})

	VersionConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "campus_ledger_version_conflicts_total",
		Help: "Ledger saves rejected because another writer got there first.",
	})

	// PanicChecks сколько раз обзор показал общий процент ниже порога.
	PanicChecks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "campus_overview_checks_total",
		Help: "Ledger overviews rendered, by panic flag.",
	}, []string{"panic"})
)
