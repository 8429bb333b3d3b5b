package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var noon = time.Date(2024, 12, 19, 12, 0, 0, 0, time.UTC)

func TestIsTaskOverdue(t *testing.T) {
	cases := []struct {
		name string
		task Task
		want bool
	}{
		{"due yesterday pending", Task{DueDate: "2024-12-18", Status: TaskPending}, true},
		{"due today pending", Task{DueDate: "2024-12-19", Status: TaskPending}, false},
		{"due tomorrow pending", Task{DueDate: "2024-12-20", Status: TaskPending}, false},
		{"due yesterday completed", Task{DueDate: "2024-12-18", Status: TaskCompleted}, false},
		{"malformed due date", Task{DueDate: "next tuesday", Status: TaskPending}, false},
		{"empty due date", Task{Status: TaskPending}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsTaskOverdue(tc.task, noon))
		})
	}
}

func TestEffectiveTaskStatus(t *testing.T) {
	overdue := Task{DueDate: "2024-12-01", Status: TaskPending}
	assert.Equal(t, TaskOverdue, EffectiveTaskStatus(overdue, noon))

	pending := Task{DueDate: "2024-12-25", Status: TaskPending}
	assert.Equal(t, TaskPending, EffectiveTaskStatus(pending, noon))

	done := Task{DueDate: "2024-12-01", Status: TaskCompleted}
	assert.Equal(t, TaskCompleted, EffectiveTaskStatus(done, noon))
}

func TestPipelineColumns(t *testing.T) {
	leads := []Lead{
		{ID: "1", Name: "A", Status: LeadNew, DealValue: 100},
		{ID: "2", Name: "B", Status: LeadNew, DealValue: 200},
		{ID: "3", Name: "C", Status: LeadClosed, DealValue: 500},
	}

	columns := PipelineColumns(leads)
	require.Len(t, columns, len(PipelineStages))

	for i, col := range columns {
		assert.Equal(t, PipelineStages[i], col.Stage)
	}

	assert.Len(t, columns[0].Leads, 2)
	assert.Equal(t, float64(300), columns[0].DealValue)
	assert.Empty(t, columns[1].Leads)

	// an empty collection still yields every column
	empty := PipelineColumns(nil)
	assert.Len(t, empty, len(PipelineStages))
}

func TestSplitAppointments(t *testing.T) {
	apts := []Appointment{
		{ID: "1", Title: "today late", Date: "2024-12-19", StartTime: "15:00"},
		{ID: "2", Title: "today early", Date: "2024-12-19", StartTime: "09:00"},
		{ID: "3", Title: "tomorrow", Date: "2024-12-20", StartTime: "10:00"},
		{ID: "4", Title: "last week", Date: "2024-12-12", StartTime: "10:00"},
		{ID: "5", Title: "broken", Date: "someday", StartTime: "10:00"},
	}

	today, upcoming, past := SplitAppointments(apts, noon)

	require.Len(t, today, 2)
	assert.Equal(t, "today early", today[0].Title)
	assert.Equal(t, "today late", today[1].Title)

	require.Len(t, upcoming, 1)
	assert.Equal(t, "tomorrow", upcoming[0].Title)

	require.Len(t, past, 2)
	// past runs newest first; the unparseable entry sorts behind real dates
	assert.Equal(t, "broken", past[0].Title)
	assert.Equal(t, "last week", past[1].Title)
}

func TestSummarize(t *testing.T) {
	leads := []Lead{
		{Status: LeadNew, Source: "Website", DealValue: 100},
		{Status: LeadQualified, Source: "Website", DealValue: 200},
		{Status: LeadClosed, Source: "Referral", DealValue: 400},
		{Status: LeadLost, Source: "Referral", DealValue: 800},
	}

	sum := Summarize(leads)
	assert.Equal(t, 4, sum.TotalLeads)
	assert.Equal(t, 1, sum.ClosedLeads)
	assert.Equal(t, 1, sum.LostLeads)
	assert.InDelta(t, 0.25, sum.ConversionRate, 0.0001)
	assert.Equal(t, float64(300), sum.PipelineValue)
	assert.Equal(t, float64(400), sum.ClosedValue)
	assert.Equal(t, 2, sum.BySource["Website"])
	assert.Equal(t, 1, sum.ByStage[LeadClosed])
}

func TestSummarizeEmpty(t *testing.T) {
	sum := Summarize(nil)
	assert.Zero(t, sum.TotalLeads)
	assert.Zero(t, sum.ConversionRate)
}

func TestTasksDueOn(t *testing.T) {
	tasks := []Task{
		{ID: "1", DueDate: "2024-12-19", Status: TaskPending},
		{ID: "2", DueDate: "2024-12-19", Status: TaskCompleted},
		{ID: "3", DueDate: "2024-12-20", Status: TaskPending},
		{ID: "4", DueDate: "garbage", Status: TaskPending},
	}

	due := TasksDueOn(tasks, noon)
	require.Len(t, due, 1)
	assert.Equal(t, "1", due[0].ID)
}
