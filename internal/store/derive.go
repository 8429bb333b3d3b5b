package store

import (
	"sort"
	"time"
)

// Derived projections over store collections. Everything here is a pure
// computation against a caller-supplied reference time; none of these
// values are ever written back to state.

const dayLayout = "2006-01-02"

// TaskDue parses a task's free-text due date. The bool is false for
// malformed input, which the store accepts and views must tolerate.
func TaskDue(t Task) (time.Time, bool) {
	due, err := time.Parse(dayLayout, t.DueDate)
	if err != nil {
		return time.Time{}, false
	}
	return due, true
}

// IsTaskOverdue reports whether a pending task's due date falls before
// the day containing now. Completed tasks are never overdue.
func IsTaskOverdue(t Task, now time.Time) bool {
	if t.Status == TaskCompleted {
		return false
	}
	due, ok := TaskDue(t)
	if !ok {
		return false
	}
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return due.Before(startOfDay)
}

// EffectiveTaskStatus is the display status: stored status, except that
// an overdue pending task reads as overdue.
func EffectiveTaskStatus(t Task, now time.Time) TaskStatus {
	if IsTaskOverdue(t, now) {
		return TaskOverdue
	}
	return t.Status
}

// PipelineColumn aggregates the leads parked in one stage.
type PipelineColumn struct {
	Stage     LeadStatus
	Leads     []Lead
	DealValue float64
}

// PipelineColumns buckets leads by stage in kanban column order.
func PipelineColumns(leads []Lead) []PipelineColumn {
	byStage := make(map[LeadStatus][]Lead, len(PipelineStages))
	for _, l := range leads {
		byStage[l.Status] = append(byStage[l.Status], l)
	}
	columns := make([]PipelineColumn, 0, len(PipelineStages))
	for _, stage := range PipelineStages {
		col := PipelineColumn{Stage: stage, Leads: byStage[stage]}
		for _, l := range col.Leads {
			col.DealValue += l.DealValue
		}
		columns = append(columns, col)
	}
	return columns
}

// SplitAppointments groups appointments relative to a reference time.
// Entries with unparseable dates land in past.
func SplitAppointments(apts []Appointment, now time.Time) (today, upcoming, past []Appointment) {
	loc := now.Location()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	endOfDay := startOfDay.Add(24 * time.Hour)

	for _, a := range apts {
		t, err := time.ParseInLocation(dayLayout, a.Date, loc)
		if err != nil {
			past = append(past, a)
			continue
		}
		switch {
		case !t.Before(startOfDay) && t.Before(endOfDay):
			today = append(today, a)
		case t.After(now):
			upcoming = append(upcoming, a)
		default:
			past = append(past, a)
		}
	}

	byStart := func(list []Appointment) func(i, j int) bool {
		return func(i, j int) bool {
			if list[i].Date != list[j].Date {
				return list[i].Date < list[j].Date
			}
			return list[i].StartTime < list[j].StartTime
		}
	}
	sort.Slice(today, byStart(today))
	sort.Slice(upcoming, byStart(upcoming))
	sort.Slice(past, func(i, j int) bool {
		if past[i].Date != past[j].Date {
			return past[i].Date > past[j].Date
		}
		return past[i].StartTime > past[j].StartTime
	})

	return today, upcoming, past
}

// AnalyticsSummary is a rollup over the lead collection for the
// analytics view.
type AnalyticsSummary struct {
	TotalLeads     int
	ClosedLeads    int
	LostLeads      int
	ConversionRate float64
	PipelineValue  float64
	ClosedValue    float64
	BySource       map[string]int
	ByStage        map[LeadStatus]int
}

// Summarize folds the lead collection into the analytics rollup.
// Pipeline value excludes closed and lost deals.
func Summarize(leads []Lead) AnalyticsSummary {
	sum := AnalyticsSummary{
		BySource: make(map[string]int),
		ByStage:  make(map[LeadStatus]int),
	}
	for _, l := range leads {
		sum.TotalLeads++
		sum.BySource[l.Source]++
		sum.ByStage[l.Status]++
		switch l.Status {
		case LeadClosed:
			sum.ClosedLeads++
			sum.ClosedValue += l.DealValue
		case LeadLost:
			sum.LostLeads++
		default:
			sum.PipelineValue += l.DealValue
		}
	}
	if sum.TotalLeads > 0 {
		sum.ConversionRate = float64(sum.ClosedLeads) / float64(sum.TotalLeads)
	}
	return sum
}

// TasksDueOn returns pending tasks due on the day containing now.
func TasksDueOn(tasks []Task, now time.Time) []Task {
	day := now.Format(dayLayout)
	var due []Task
	for _, t := range tasks {
		if t.Status != TaskCompleted && t.DueDate == day {
			due = append(due, t)
		}
	}
	return due
}
