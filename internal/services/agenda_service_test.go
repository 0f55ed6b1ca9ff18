// internal/services/agenda_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sisvmarcas/crm-backend/internal/models"
)

func TestWeekStartIsMonday(t *testing.T) {
	// 2026-08-28 is a Friday
	friday := time.Date(2026, 8, 28, 15, 30, 0, 0, time.UTC)
	start := WeekStart(friday)
	assert.Equal(t, time.Monday, start.Weekday())
	assert.Equal(t, "2026-08-24", start.Format("2006-01-02"))

	monday := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, monday, WeekStart(monday))

	sunday := time.Date(2026, 8, 30, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, "2026-08-24", WeekStart(sunday).Format("2006-01-02"))
}

func TestBuildWeekPlacesMeetingOnItsDay(t *testing.T) {
	weekStart := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	wednesday := time.Date(2026, 8, 26, 14, 0, 0, 0, time.UTC)

	lead := baseLead()
	lead.Status = models.StatusReuniaoAgendada
	lead.DataReuniao = &wednesday

	week := BuildWeek([]models.Lead{lead}, weekStart)

	assert.Len(t, week.Days, 7)
	assert.Equal(t, "2026-08-26", week.Days[2].Date)
	assert.Len(t, week.Days[2].Meetings, 1)
	for i, day := range week.Days {
		if i != 2 {
			assert.Empty(t, day.Meetings)
		}
	}
}

func TestBuildWeekExcludesLeadMovedOffMeetingColumn(t *testing.T) {
	weekStart := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	wednesday := time.Date(2026, 8, 26, 14, 0, 0, 0, time.UTC)

	// Meeting date kept but the lead no longer sits in the meeting column.
	lead := baseLead()
	lead.Status = models.StatusSemResposta
	lead.DataReuniao = &wednesday

	week := BuildWeek([]models.Lead{lead}, weekStart)
	for _, day := range week.Days {
		assert.Empty(t, day.Meetings)
	}
}

func TestBuildWeekExcludesMeetingsWithoutDate(t *testing.T) {
	weekStart := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)

	lead := baseLead()
	lead.Status = models.StatusReuniaoAgendada
	lead.DataReuniao = nil

	week := BuildWeek([]models.Lead{lead}, weekStart)
	for _, day := range week.Days {
		assert.Empty(t, day.Meetings)
	}
}

func TestBuildWeekExcludesOtherWeeks(t *testing.T) {
	weekStart := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	nextMonday := time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC)

	lead := baseLead()
	lead.Status = models.StatusReuniaoAgendada
	lead.DataReuniao = &nextMonday

	week := BuildWeek([]models.Lead{lead}, weekStart)
	for _, day := range week.Days {
		assert.Empty(t, day.Meetings)
	}
}

func TestBuildWeekSortsMeetingsWithinDay(t *testing.T) {
	weekStart := time.Date(2026, 8, 24, 0, 0, 0, 0, time.UTC)
	morning := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)
	afternoon := time.Date(2026, 8, 25, 16, 0, 0, 0, time.UTC)

	late := baseLead()
	late.Status = models.StatusReuniaoAgendada
	late.DataReuniao = &afternoon

	early := baseLead()
	early.Status = models.StatusReuniaoAgendada
	early.DataReuniao = &morning

	week := BuildWeek([]models.Lead{late, early}, weekStart)

	meetings := week.Days[1].Meetings
	assert.Len(t, meetings, 2)
	assert.Equal(t, morning, *meetings[0].DataReuniao)
	assert.Equal(t, afternoon, *meetings[1].DataReuniao)
}
