package attendance

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ExportExcel отчёт по посещаемости: строка на предмет и итоговая строка.
func ExportExcel(subjects []Subject, p Policy) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := []interface{}{
		"subject",
		"attended",
		"total",
		"percent",
		"status",
		"attend_next",
		"safe_skips",
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	row := 2
	for _, s := range subjects {
		s = Normalize(s)
		pr := p.Project(s)
		line := []interface{}{
			s.Name,
			s.Attended,
			s.Total,
			pr.Percentage,
			string(pr.Status),
			pr.SessionsNeeded,
			pr.SafeSkips,
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &line); err != nil {
			return nil, fmt.Errorf("write row %d: %w", row, err)
		}
		row++
	}

	sum := p.Summarize(subjects)
	status := StatusStable
	if sum.Panic {
		status = StatusCritical
	}
	total := []interface{}{"TOTAL", sum.Attended, sum.Total, sum.Percentage, string(status)}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheet, cell, &total); err != nil {
		return nil, fmt.Errorf("write total: %w", err)
	}

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}
