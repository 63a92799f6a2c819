package timetable

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

var excelHeader = []interface{}{"day", "time", "subject", "type", "room"}

// ParseJSON разбирает расписание в формате [{day, slots:[{time,subject,type,room}]}].
// Пары с неизвестным типом отбрасываются, дни без пар тоже.
func ParseJSON(data []byte) ([]Day, error) {
	var raw []struct {
		Day   string `json:"day"`
		Slots []struct {
			Time    string `json:"time"`
			Subject string `json:"subject"`
			Type    string `json:"type"`
			Room    string `json:"room"`
		} `json:"slots"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode timetable json: %w", err)
	}

	b := newBuilder()
	for _, d := range raw {
		for _, s := range d.Slots {
			b.add(d.Day, s.Time, s.Subject, s.Type, s.Room)
		}
	}
	return b.result()
}

// ParseExcel читает xlsx с колонками day | time | subject | type | room.
// Первая строка считается заголовком. Порядок дней — по первому появлению в файле.
func ParseExcel(data []byte) ([]Day, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) < 2 {
		return nil, ErrEmpty
	}

	b := newBuilder()
	for _, r := range rows[1:] {
		if len(r) < 4 {
			continue
		}
		room := ""
		if len(r) >= 5 {
			room = r[4]
		}
		b.add(r[0], r[1], r[2], r[3], room)
	}
	return b.result()
}

// TemplateExcel выгружает расписание в xlsx того же формата, что читает ParseExcel.
// Для пустого расписания получается файл с одним заголовком.
func TemplateExcel(days []Day) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetRow(sheet, "A1", &excelHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	row := 2
	for _, d := range days {
		for _, s := range d.Slots {
			line := []interface{}{d.Day, s.Time, s.Subject, string(s.Kind), s.Room}
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetSheetRow(sheet, cell, &line); err != nil {
				return nil, fmt.Errorf("write row %d: %w", row, err)
			}
			row++
		}
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

type builder struct {
	order []string
	byDay map[string][]Slot
}

func newBuilder() *builder {
	return &builder{byDay: map[string][]Slot{}}
}

func (b *builder) add(day, tm, subject, kind, room string) {
	day = CanonicalDay(day)
	if day == "" {
		return
	}
	k, ok := ParseKind(kind)
	if !ok {
		return
	}
	if _, seen := b.byDay[day]; !seen {
		b.order = append(b.order, day)
	}
	b.byDay[day] = append(b.byDay[day], Slot{
		Time:    strings.TrimSpace(tm),
		Subject: strings.TrimSpace(subject),
		Kind:    k,
		Room:    strings.TrimSpace(room),
	})
}

func (b *builder) result() ([]Day, error) {
	if len(b.order) == 0 {
		return nil, ErrEmpty
	}
	out := make([]Day, 0, len(b.order))
	for _, d := range b.order {
		out = append(out, Day{Day: d, Slots: b.byDay[d]})
	}
	return out, nil
}
