package attendance

import (
	"errors"
	"testing"
)

func sampleLedger() []Subject {
	return []Subject{
		{ID: "1", Name: "Engineering Math", Attended: 20, Total: 24},
		{ID: "2", Name: "Physics Cycle", Attended: 12, Total: 18},
		{ID: "3", Name: "Basic Electronics", Attended: 8, Total: 15},
		{ID: "4", Name: "C Programming", Attended: 22, Total: 22},
		{ID: "5", Name: "English", Attended: 5, Total: 10},
	}
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		attended, total, want int
	}{
		{0, 0, 100},
		{5, 10, 50},
		{20, 24, 83},
		{12, 18, 67},
		{1, 8, 13}, // 12.5 округляется вверх
		{1, 200, 1},
		{17, 20, 85},
		{22, 22, 100},
		{0, 3, 0},
	}
	for _, tt := range tests {
		if got := Percentage(tt.attended, tt.total); got != tt.want {
			t.Errorf("Percentage(%d, %d) = %d, want %d", tt.attended, tt.total, got, tt.want)
		}
	}
}

func TestPercentage_RangeForValidInputs(t *testing.T) {
	for total := 1; total <= 60; total++ {
		for attended := 0; attended <= total; attended++ {
			got := Percentage(attended, total)
			if got < 0 || got > 100 {
				t.Fatalf("Percentage(%d, %d) = %d out of range", attended, total, got)
			}
		}
	}
}

func TestClassify(t *testing.T) {
	p := DefaultPolicy()
	tests := []struct {
		pct  int
		want Status
	}{
		{100, StatusStable},
		{85, StatusStable},
		{84, StatusCritical},
		{0, StatusCritical},
	}
	for _, tt := range tests {
		if got := p.Classify(tt.pct); got != tt.want {
			t.Errorf("Classify(%d) = %s, want %s", tt.pct, got, tt.want)
		}
	}
	if got := p.Classify(Percentage(0, 0)); got != StatusStable {
		t.Errorf("empty subject must be STABLE, got %s", got)
	}
}

func TestApply(t *testing.T) {
	s := Subject{ID: "x", Name: "Math", Attended: 3, Total: 4}

	s = Apply(s, EventPresent)
	if s.Attended != 4 || s.Total != 5 {
		t.Fatalf("after present: %d/%d, want 4/5", s.Attended, s.Total)
	}
	s = Apply(s, EventAbsent)
	if s.Attended != 4 || s.Total != 6 {
		t.Fatalf("after absent: %d/%d, want 4/6", s.Attended, s.Total)
	}
	if s.ID != "x" || s.Name != "Math" {
		t.Errorf("identity changed: %+v", s)
	}
}

func TestApply_KeepsInvariant(t *testing.T) {
	events := []Event{EventPresent, EventAbsent, EventAbsent, EventPresent, EventPresent, EventAbsent}
	s := Subject{ID: "x"}
	for i, ev := range events {
		s = Apply(s, ev)
		if s.Attended > s.Total {
			t.Fatalf("step %d: attended %d > total %d", i, s.Attended, s.Total)
		}
		if s.Total != i+1 {
			t.Fatalf("step %d: total %d, want %d", i, s.Total, i+1)
		}
	}
}

func TestApply_NormalizesBrokenInput(t *testing.T) {
	s := Apply(Subject{Attended: 9, Total: 4}, EventAbsent)
	if s.Attended != 4 || s.Total != 5 {
		t.Errorf("got %d/%d, want 4/5", s.Attended, s.Total)
	}
	s = Apply(Subject{Attended: -2, Total: -1}, EventPresent)
	if s.Attended != 1 || s.Total != 1 {
		t.Errorf("got %d/%d, want 1/1", s.Attended, s.Total)
	}
}

func TestEdit(t *testing.T) {
	base := Subject{ID: "x", Name: "Physics", Attended: 10, Total: 12}
	tests := []struct {
		name                    string
		attended, total         int
		wantAttended, wantTotal int
	}{
		{name: "valid range is kept", attended: 7, total: 9, wantAttended: 7, wantTotal: 9},
		{name: "attended clamped to total", attended: 15, total: 9, wantAttended: 9, wantTotal: 9},
		{name: "zero total", attended: 3, total: 0, wantAttended: 0, wantTotal: 0},
		{name: "equal", attended: 5, total: 5, wantAttended: 5, wantTotal: 5},
		{name: "negative attended", attended: -3, total: 4, wantAttended: 0, wantTotal: 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Edit(base, tt.attended, tt.total)
			if got.Attended != tt.wantAttended || got.Total != tt.wantTotal {
				t.Errorf("Edit(%d, %d) = %d/%d, want %d/%d",
					tt.attended, tt.total, got.Attended, got.Total, tt.wantAttended, tt.wantTotal)
			}
			if got.ID != base.ID || got.Name != base.Name {
				t.Errorf("identity changed: %+v", got)
			}
		})
	}
}

func TestSummarize(t *testing.T) {
	p := DefaultPolicy()
	sum := p.Summarize(sampleLedger())
	if sum.Attended != 67 || sum.Total != 89 {
		t.Fatalf("totals = %d/%d, want 67/89", sum.Attended, sum.Total)
	}
	if sum.Percentage != 75 {
		t.Errorf("percentage = %d, want 75", sum.Percentage)
	}
	if !sum.Panic || !p.Panic(sampleLedger()) {
		t.Error("panic flag must be set below threshold")
	}
}

func TestSummarize_WeightedBySessions(t *testing.T) {
	// среднее по предметам дало бы 50%, по парам — 91%
	subjects := []Subject{
		{Attended: 100, Total: 100},
		{Attended: 0, Total: 10},
	}
	sum := DefaultPolicy().Summarize(subjects)
	if sum.Percentage != 91 {
		t.Errorf("percentage = %d, want 91", sum.Percentage)
	}
	if sum.Panic {
		t.Error("panic must be off at 91%")
	}
}

func TestSummarize_Empty(t *testing.T) {
	sum := DefaultPolicy().Summarize(nil)
	if sum.Percentage != 100 || sum.Panic {
		t.Errorf("empty ledger summary = %+v", sum)
	}
}

func TestSessionsNeeded(t *testing.T) {
	p := DefaultPolicy()
	tests := []struct {
		attended, total, want int
	}{
		{5, 10, 24},
		{20, 24, 3},
		{12, 18, 22},
		{8, 15, 32},
		{0, 3, 17},
		{22, 22, 0}, // STABLE
		{17, 20, 0}, // ровно порог
	}
	for _, tt := range tests {
		got := p.SessionsNeeded(Subject{Attended: tt.attended, Total: tt.total})
		if got != tt.want {
			t.Errorf("SessionsNeeded(%d/%d) = %d, want %d", tt.attended, tt.total, got, tt.want)
		}
	}
}

func TestSessionsNeeded_ReachesThreshold(t *testing.T) {
	p := DefaultPolicy()
	for total := 1; total <= 40; total++ {
		for attended := 0; attended <= total; attended++ {
			s := Subject{Attended: attended, Total: total}
			if p.Project(s).Status != StatusCritical {
				continue
			}
			n := p.SessionsNeeded(s)
			if n < 1 {
				t.Fatalf("%d/%d: need %d, want >= 1", attended, total, n)
			}
			if float64(attended+n)/float64(total+n) < 0.85-1e-9 {
				t.Fatalf("%d/%d: attending %d more does not reach 85%%", attended, total, n)
			}
		}
	}
}

func TestSafeSkips(t *testing.T) {
	p := DefaultPolicy()
	tests := []struct {
		attended, total, want int
	}{
		{22, 22, 3},
		{100, 100, 17},
		{30, 34, 1},
		{17, 20, 0},
		{0, 0, 0},
		{5, 10, 0}, // CRITICAL
	}
	for _, tt := range tests {
		got := p.SafeSkips(Subject{Attended: tt.attended, Total: tt.total})
		if got != tt.want {
			t.Errorf("SafeSkips(%d/%d) = %d, want %d", tt.attended, tt.total, got, tt.want)
		}
	}
}

func TestProject(t *testing.T) {
	p := DefaultPolicy()
	got := p.Project(Subject{Attended: 5, Total: 10})
	want := Projection{Percentage: 50, Status: StatusCritical, SessionsNeeded: 24}
	if got != want {
		t.Errorf("Project(5/10) = %+v, want %+v", got, want)
	}
	got = p.Project(Subject{Attended: 22, Total: 22})
	want = Projection{Percentage: 100, Status: StatusStable, SafeSkips: 3}
	if got != want {
		t.Errorf("Project(22/22) = %+v, want %+v", got, want)
	}
}

func TestPolicy_CustomThreshold(t *testing.T) {
	p := Policy{Threshold: 75, Match: MatchExact}
	if err := p.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 6/10 при 75%: ceil((7.5-6)/0.25) = 6
	if n := p.SessionsNeeded(Subject{Attended: 6, Total: 10}); n != 6 {
		t.Errorf("SessionsNeeded = %d, want 6", n)
	}
	// 10/10 при 75%: floor((10-7.5)/0.75) = 3
	if k := p.SafeSkips(Subject{Attended: 10, Total: 10}); k != 3 {
		t.Errorf("SafeSkips = %d, want 3", k)
	}
}

func TestPolicy_Validate(t *testing.T) {
	tests := []struct {
		name string
		p    Policy
		want error
	}{
		{name: "default", p: DefaultPolicy()},
		{name: "zero threshold", p: Policy{Threshold: 0, Match: MatchFuzzy}, want: ErrInvalidThreshold},
		{name: "hundred", p: Policy{Threshold: 100, Match: MatchFuzzy}, want: ErrInvalidThreshold},
		{name: "bad mode", p: Policy{Threshold: 85, Match: "regex"}, want: ErrInvalidMatchMode},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.p.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLedgerFind(t *testing.T) {
	l := Ledger{Subjects: sampleLedger()}
	if i, ok := l.Find("4"); !ok || l.Subjects[i].Name != "C Programming" {
		t.Errorf("Find(4) = %d, %v", i, ok)
	}
	if _, ok := l.Find("missing"); ok {
		t.Error("Find must miss unknown id")
	}
}
