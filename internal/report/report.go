// Package report renders the user demographics report and its CSV
// export. The aggregation is server-side; this package only orders and
// serializes it.
package report

import (
	"context"
	"encoding/csv"
	"io"
	"sort"
	"strconv"

	"github.com/yama-admin/video-console-go/internal/models"
)

// Column is a sortable numeric column of the report table.
type Column string

// Sortable columns.
const (
	ColumnTotal   Column = "total"
	ColumnMale    Column = "male"
	ColumnFemale  Column = "female"
	ColumnUnknown Column = "unknown"
)

// Row is one grade bucket with its counts.
type Row struct {
	Grade string
	models.GradeReport
}

// ReportAPI fetches the server-side aggregation.
type ReportAPI interface {
	UsersReport(ctx context.Context) (models.UsersReport, error)
}

// View is the loaded report with a stable row order.
type View struct {
	svc        ReportAPI
	rows       []Row
	totalUsers int
}

// NewView creates an unloaded view.
func NewView(svc ReportAPI) *View {
	return &View{svc: svc}
}

// Load fetches the report. Rows come out grade-alphabetical; Sort
// reorders them.
func (v *View) Load(ctx context.Context) error {
	r, err := v.svc.UsersReport(ctx)
	if err != nil {
		return err
	}

	rows := make([]Row, 0, len(r.Report))
	for grade, counts := range r.Report {
		rows = append(rows, Row{Grade: grade, GradeReport: counts})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Grade < rows[j].Grade })

	v.rows = rows
	v.totalUsers = r.TotalUsers
	return nil
}

// Rows returns the current row order.
func (v *View) Rows() []Row { return v.rows }

// TotalUsers returns the overall user count.
func (v *View) TotalUsers() int { return v.totalUsers }

// Sort orders the rows by a numeric column. Ties keep their relative
// order.
func (v *View) Sort(column Column, ascending bool) {
	value := func(r Row) int {
		switch column {
		case ColumnMale:
			return r.Male
		case ColumnFemale:
			return r.Female
		case ColumnUnknown:
			return r.Unknown
		default:
			return r.Total
		}
	}
	sort.SliceStable(v.rows, func(i, j int) bool {
		if ascending {
			return value(v.rows[i]) < value(v.rows[j])
		}
		return value(v.rows[i]) > value(v.rows[j])
	})
}

// WriteCSV writes the rows in their current order, header first.
func (v *View) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Grade", "Total", "Male", "Female", "Unknown"}); err != nil {
		return err
	}
	for _, r := range v.rows {
		record := []string{
			r.Grade,
			strconv.Itoa(r.Total),
			strconv.Itoa(r.Male),
			strconv.Itoa(r.Female),
			strconv.Itoa(r.Unknown),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
