package attendance

import "math"

// Percentage round(100*attended/total); при total == 0 — 100 (пар ещё не было).
func Percentage(attended, total int) int {
	if total <= 0 {
		return 100
	}
	return int(math.Round(float64(attended) / float64(total) * 100))
}

// Classify ниже порога — CRITICAL, ровно порог — уже STABLE.
func (p Policy) Classify(pct int) Status {
	if pct < p.Threshold {
		return StatusCritical
	}
	return StatusStable
}

// Normalize чинит счётчики, пришедшие снаружи: отрицательные в ноль, attended не больше total.
func Normalize(s Subject) Subject {
	if s.Total < 0 {
		s.Total = 0
	}
	if s.Attended < 0 {
		s.Attended = 0
	}
	if s.Attended > s.Total {
		s.Attended = s.Total
	}
	return s
}

// Apply отмечает одну пару: total+1, attended+1 только для присутствия.
func Apply(s Subject, ev Event) Subject {
	s = Normalize(s)
	s.Total++
	if ev == EventPresent {
		s.Attended++
	}
	return s
}

// Edit ручная правка: total ставится как есть, attended обрезается до total.
func Edit(s Subject, attended, total int) Subject {
	if total < 0 {
		total = 0
	}
	if attended < 0 {
		attended = 0
	}
	s.Total = total
	s.Attended = min(attended, total)
	return s
}

// Aggregate суммирует пары по всем предметам. Процент взвешен по числу пар, а не по предметам.
func Aggregate(subjects []Subject) (attended, total int) {
	for _, s := range subjects {
		s = Normalize(s)
		attended += s.Attended
		total += s.Total
	}
	return attended, total
}

func (p Policy) Summarize(subjects []Subject) Summary {
	a, t := Aggregate(subjects)
	pct := Percentage(a, t)
	return Summary{
		Attended:   a,
		Total:      t,
		Percentage: pct,
		Panic:      pct < p.Threshold,
	}
}

// Panic флаг для интерфейса: общий процент ниже порога.
func (p Policy) Panic(subjects []Subject) bool {
	return p.Summarize(subjects).Panic
}

// SessionsNeeded сколько пар подряд надо посетить, чтобы вернуться к порогу.
// Не меньше одной. Для STABLE-предмета — 0.
func (p Policy) SessionsNeeded(s Subject) int {
	s = Normalize(s)
	if p.Classify(Percentage(s.Attended, s.Total)) != StatusCritical {
		return 0
	}
	n := int(math.Ceil((p.ratio()*float64(s.Total) - float64(s.Attended)) / p.complement()))
	return max(1, n)
}

// SafeSkips сколько пар подряд можно пропустить, оставаясь не ниже порога.
// Для CRITICAL-предмета — 0.
func (p Policy) SafeSkips(s Subject) int {
	s = Normalize(s)
	if p.Classify(Percentage(s.Attended, s.Total)) != StatusStable {
		return 0
	}
	k := int(math.Floor((float64(s.Attended) - p.ratio()*float64(s.Total)) / p.ratio()))
	return max(0, k)
}

func (p Policy) Project(s Subject) Projection {
	s = Normalize(s)
	pct := Percentage(s.Attended, s.Total)
	return Projection{
		Percentage:     pct,
		Status:         p.Classify(pct),
		SessionsNeeded: p.SessionsNeeded(s),
		SafeSkips:      p.SafeSkips(s),
	}
}
