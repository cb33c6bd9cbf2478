package report

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yama-admin/video-console-go/internal/models"
)

type mockReportAPI struct {
	report models.UsersReport
}

func (m *mockReportAPI) UsersReport(_ context.Context) (models.UsersReport, error) {
	return m.report, nil
}

func sampleReport() models.UsersReport {
	return models.UsersReport{
		TotalUsers: 30,
		Report: map[string]models.GradeReport{
			"kid":   {Total: 10, Male: 6, Female: 4, Unknown: 0},
			"adult": {Total: 15, Male: 5, Female: 8, Unknown: 2},
			"teen":  {Total: 5, Male: 2, Female: 2, Unknown: 1},
		},
	}
}

func TestViewLoadOrdersByGrade(t *testing.T) {
	view := NewView(&mockReportAPI{report: sampleReport()})
	require.NoError(t, view.Load(context.Background()))

	require.Len(t, view.Rows(), 3)
	assert.Equal(t, "adult", view.Rows()[0].Grade)
	assert.Equal(t, "kid", view.Rows()[1].Grade)
	assert.Equal(t, "teen", view.Rows()[2].Grade)
	assert.Equal(t, 30, view.TotalUsers())
}

func TestViewSort(t *testing.T) {
	view := NewView(&mockReportAPI{report: sampleReport()})
	require.NoError(t, view.Load(context.Background()))

	view.Sort(ColumnTotal, false)
	assert.Equal(t, "adult", view.Rows()[0].Grade)
	assert.Equal(t, "teen", view.Rows()[2].Grade)

	view.Sort(ColumnTotal, true)
	assert.Equal(t, "teen", view.Rows()[0].Grade)

	view.Sort(ColumnMale, false)
	assert.Equal(t, "kid", view.Rows()[0].Grade)
}

func TestWriteCSV(t *testing.T) {
	view := NewView(&mockReportAPI{report: models.UsersReport{
		TotalUsers: 10,
		Report: map[string]models.GradeReport{
			"kid": {Total: 10, Male: 6, Female: 4, Unknown: 0},
		},
	}})
	require.NoError(t, view.Load(context.Background()))

	var buf bytes.Buffer
	require.NoError(t, view.WriteCSV(&buf))

	assert.Equal(t, "Grade,Total,Male,Female,Unknown\nkid,10,6,4,0\n", buf.String())
}

func TestWriteCSVKeepsSortOrder(t *testing.T) {
	view := NewView(&mockReportAPI{report: sampleReport()})
	require.NoError(t, view.Load(context.Background()))
	view.Sort(ColumnTotal, false)

	var buf bytes.Buffer
	require.NoError(t, view.WriteCSV(&buf))

	assert.Equal(t,
		"Grade,Total,Male,Female,Unknown\n"+
			"adult,15,5,8,2\n"+
			"kid,10,6,4,0\n"+
			"teen,5,2,2,1\n",
		buf.String())
}
