package bot

import (
	"strings"
	"testing"

	"github.com/Spok95/campus-bot/internal/domain/attendance"
	"github.com/Spok95/campus-bot/internal/domain/clubs"
	"github.com/Spok95/campus-bot/internal/domain/timetable"
	"github.com/Spok95/campus-bot/internal/tracker"
)

func view(name string, attended, total int) tracker.SubjectView {
	sub := attendance.Subject{ID: "id-" + name, Name: name, Attended: attended, Total: total}
	return tracker.SubjectView{Subject: sub, Projection: attendance.DefaultPolicy().Project(sub)}
}

func TestProgressBar(t *testing.T) {
	cases := []struct {
		pct  int
		want string
	}{
		{0, "░░░░░░░░░░"},
		{83, "████████░░"},
		{100, "██████████"},
		{-5, "░░░░░░░░░░"},
		{250, "██████████"},
	}
	for _, c := range cases {
		if got := progressBar(c.pct); got != c.want {
			t.Errorf("progressBar(%d) = %q, want %q", c.pct, got, c.want)
		}
	}
}

func TestFormatSubject(t *testing.T) {
	crit := formatSubject(view("Mathematics", 20, 24))
	for _, want := range []string{"🔴", "Mathematics", "83%", "20/24", "Нужно посетить подряд: 3"} {
		if !strings.Contains(crit, want) {
			t.Errorf("critical card %q: missing %q", crit, want)
		}
	}

	ok := formatSubject(view("Digital Electronics", 22, 22))
	for _, want := range []string{"🟢", "100%", "Можно пропустить: 3"} {
		if !strings.Contains(ok, want) {
			t.Errorf("stable card %q: missing %q", ok, want)
		}
	}
}

func TestFormatSummary_PanicBanner(t *testing.T) {
	p := attendance.DefaultPolicy()
	panicking := p.Summarize([]attendance.Subject{{Attended: 67, Total: 89}})
	got := formatSummary(panicking, p.Threshold)
	if !strings.HasPrefix(got, "🚨 PANIC MODE") {
		t.Errorf("expected panic banner, got %q", got)
	}
	if !strings.Contains(got, "75% (67/89)") {
		t.Errorf("summary line missing: %q", got)
	}

	calm := p.Summarize([]attendance.Subject{{Attended: 9, Total: 10}})
	if got := formatSummary(calm, p.Threshold); strings.Contains(got, "PANIC") {
		t.Errorf("unexpected panic banner: %q", got)
	}
}

func TestFormatOverview_Empty(t *testing.T) {
	got := formatOverview(tracker.Overview{}, 85)
	if !strings.Contains(got, "/upload") {
		t.Errorf("empty overview should point to /upload: %q", got)
	}
}

func TestFormatToday(t *testing.T) {
	cases := []struct {
		name string
		in   tracker.Today
		want string
	}{
		{"sunday", tracker.Today{Day: "Sunday"}, "воскресенье"},
		{"next", tracker.Today{
			Day:     "Monday",
			Slots:   []timetable.Slot{{Time: "10:00", Subject: "Physics", Kind: timetable.KindLecture}},
			Next:    timetable.Slot{Time: "10:00", Subject: "Physics", Kind: timetable.KindLecture},
			HasNext: true,
		}, "Следующая пара: Physics @ 10:00"},
		{"done", tracker.Today{
			Day:   "Monday",
			Slots: []timetable.Slot{{Time: "10:00", Subject: "Physics", Kind: timetable.KindLecture}},
		}, "закончились"},
		{"no timetable", tracker.Today{Day: "Tuesday"}, "Расписания на сегодня нет"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := formatToday(c.in, 85); !strings.Contains(got, c.want) {
				t.Errorf("got %q, want substring %q", got, c.want)
			}
		})
	}
}

func TestFormatSyncReport(t *testing.T) {
	days := []timetable.Day{{Day: "Monday", Slots: []timetable.Slot{
		{Time: "09:00", Subject: "Labs", Kind: timetable.KindLab},
	}}}
	added := attendance.SyncReport{Added: []attendance.Subject{{ID: "x", Name: "Labs"}}}
	if got := formatSyncReport(added, days); !strings.Contains(got, "• Labs") {
		t.Errorf("added subject not listed: %q", got)
	}
	if got := formatSyncReport(attendance.SyncReport{}, days); !strings.Contains(got, "Новых предметов нет") {
		t.Errorf("unchanged report: %q", got)
	}
}

func TestParseCallback(t *testing.T) {
	cases := []struct {
		in                 string
		scope, action, arg string
	}{
		{"att:p:abc", "att", "p", "abc"},
		{"att:s:a:b", "att", "s", "a:b"},
		{"att:list", "att", "list", ""},
		{"tt:day:Monday", "tt", "day", "Monday"},
		{"garbage", "garbage", "", ""},
	}
	for _, c := range cases {
		s, a, arg := parseCallback(c.in)
		if s != c.scope || a != c.action || arg != c.arg {
			t.Errorf("parseCallback(%q) = (%q,%q,%q)", c.in, s, a, arg)
		}
	}
}

func TestParseCount(t *testing.T) {
	if n, ok := parseCount(" 12 "); !ok || n != 12 {
		t.Errorf("got %d %v", n, ok)
	}
	for _, bad := range []string{"-1", "abc", "", "1.5"} {
		if _, ok := parseCount(bad); ok {
			t.Errorf("parseCount(%q) should fail", bad)
		}
	}
}

func TestSeniorReply(t *testing.T) {
	if got := seniorReply("какая посещаемость нужна?", 85); !strings.Contains(got, "85%") {
		t.Errorf("threshold not mentioned: %q", got)
	}
	if got := seniorReply("где поесть? столовая", 85); !strings.Contains(got, "Гоби") {
		t.Errorf("canteen reply: %q", got)
	}
	if got := seniorReply("привет", 85); !strings.Contains(got, "/help") {
		t.Errorf("fallback reply: %q", got)
	}
}

func TestDayKeyboard(t *testing.T) {
	kb := dayKeyboard()
	if len(kb.InlineKeyboard) != 2 {
		t.Fatalf("want 2 rows for 6 weekdays, got %d", len(kb.InlineKeyboard))
	}
	first := kb.InlineKeyboard[0][0]
	if first.Text != "Mon" || first.CallbackData == nil || *first.CallbackData != "tt:day:Monday" {
		t.Errorf("first button: %+v", first)
	}
}

func TestExcuseReply(t *testing.T) {
	cases := []struct {
		name string
		args string
		want []string
	}{
		{"usage", "  ", []string{"/excuse"}},
		{"default level", "опоздал на лабу", []string{"«опоздал на лабу»", "BIOS"}},
		{"safe", "10 пропустил лекцию", []string{"«пропустил лекцию»", "семейные обстоятельства"}},
		{"extreme", "95 проспал экзамен", []string{"«проспал экзамен»", "инопланетяне"}},
		{"level clamped", "500 сорвал дедлайн", []string{"инопланетяне"}},
		{"only level", "80", []string{"/excuse"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := excuseReply(c.args)
			for _, w := range c.want {
				if !strings.Contains(got, w) {
					t.Errorf("excuseReply(%q) = %q, missing %q", c.args, got, w)
				}
			}
		})
	}
}

func TestEmailDraft(t *testing.T) {
	cases := []struct {
		name string
		args string
		want []string
	}{
		{"usage", "", []string{"/email"}},
		{"default tone", "перенос сдачи лабы", []string{"Обращаюсь к Вам по вопросу: перенос сдачи лабы.", "@ivan"}},
		{"english tone", "Urgent пересдача", []string{"Срочно. Пишу по вопросу: пересдача."}},
		{"russian alias", "извинение пропуск семинара", []string{"Прошу прощения", "пропуск семинара"}},
		{"tone only", "desperate", []string{"/email"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := emailDraft(c.args, "@ivan")
			for _, w := range c.want {
				if !strings.Contains(got, w) {
					t.Errorf("emailDraft(%q) = %q, missing %q", c.args, got, w)
				}
			}
		})
	}
}

func TestClubFilterAndFormat(t *testing.T) {
	if f := clubFilter("technical"); f.Category != "Technical" || f.Query != "" {
		t.Errorf("category filter = %+v", f)
	}
	if f := clubFilter(" decod "); f.Query != "decod" || f.Category != "" {
		t.Errorf("name filter = %+v", f)
	}

	got := formatClubs(clubs.Search(clubs.Directory, clubFilter("black")))
	if !strings.Contains(got, "Black Pearl") || !strings.Contains(got, "мест нет") {
		t.Errorf("formatClubs = %q", got)
	}
	if got := formatClubs(nil); !strings.Contains(got, "Категории: Theatre") {
		t.Errorf("empty result should list categories: %q", got)
	}
}
