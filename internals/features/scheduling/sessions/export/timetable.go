// file: internals/features/scheduling/sessions/export/timetable.go
package export

import (
	"fmt"
	"io"
	"sort"

	"github.com/xuri/excelize/v2"

	roomModel "trainingcenter_backend/internals/features/scheduling/classrooms/model"
	m "trainingcenter_backend/internals/features/scheduling/sessions/model"
	"trainingcenter_backend/internals/helpers/dbtime"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var header = []string{"Date", "Day", "Start", "End", "Subject", "Group", "Type", "Mode", "Status", "Topics"}

// WriteTimetable renders sessions as a workbook: one sheet per classroom in
// catalog order, rows by date then start time. Every classroom gets a sheet
// even when it has no sessions.
func WriteTimetable(w io.Writer, sessions []m.SessionModel) error {
	byRoom := make(map[roomModel.Classroom][]m.SessionModel)
	for _, s := range sessions {
		byRoom[s.SessionRoom] = append(byRoom[s.SessionRoom], s)
	}

	f := excelize.NewFile()
	defer f.Close()

	first := true
	for _, info := range roomModel.All() {
		sheet := string(info.Code)
		if first {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return err
			}
			first = false
		} else if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
		if err := writeSheet(f, sheet, byRoom[info.Code]); err != nil {
			return fmt.Errorf("sheet %s: %w", sheet, err)
		}
	}
	return f.Write(w)
}

func writeSheet(f *excelize.File, sheet string, rows []m.SessionModel) error {
	sort.SliceStable(rows, func(i, j int) bool {
		di, dj := rows[i].Date(), rows[j].Date()
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return rows[i].SessionStart.Before(rows[j].SessionStart)
	})

	for i, h := range header {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for i, s := range rows {
		group := ""
		if s.SessionGroupID != nil {
			group = s.SessionGroupID.String()
		}
		topics := ""
		if s.SessionTopics != nil {
			topics = *s.SessionTopics
		}
		values := []any{
			s.Date().Format(dbtime.DateLayout),
			string(dbtime.DayOf(s.Date())),
			s.SessionStart.HHMM(),
			s.SessionEnd.HHMM(),
			s.SessionSubjectID.String(),
			group,
			string(s.SessionType),
			string(s.SessionMode),
			string(s.SessionStatus),
			topics,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}
	return nil
}
