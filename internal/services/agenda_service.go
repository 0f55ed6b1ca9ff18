// internal/services/agenda_service.go
package services

import (
	"context"
	"sort"
	"time"

	"github.com/sisvmarcas/crm-backend/internal/models"
)

type AgendaDay struct {
	Date     string        `json:"date"` // YYYY-MM-DD
	Meetings []models.Lead `json:"meetings"`
}

type AgendaWeek struct {
	WeekStart string      `json:"week_start"`
	WeekEnd   string      `json:"week_end"`
	Days      []AgendaDay `json:"days"`
}

type AgendaService struct {
	leads *LeadService
}

func NewAgendaService(leads *LeadService) *AgendaService {
	return &AgendaService{leads: leads}
}

// WeekStart returns the Monday at midnight of the week containing t.
func WeekStart(t time.Time) time.Time {
	day := t
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	day = day.AddDate(0, 0, -offset)
	return time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
}

// BuildWeek groups scheduled meetings into the seven days starting at
// weekStart. Only leads sitting in the meeting column with a date set
// appear; a lead moved to another column drops off the agenda even if its
// meeting date is kept.
func BuildWeek(leads []models.Lead, weekStart time.Time) AgendaWeek {
	weekEnd := weekStart.AddDate(0, 0, 7)

	week := AgendaWeek{
		WeekStart: weekStart.Format("2006-01-02"),
		WeekEnd:   weekStart.AddDate(0, 0, 6).Format("2006-01-02"),
		Days:      make([]AgendaDay, 7),
	}

	byDay := make(map[string][]models.Lead)
	for _, lead := range leads {
		if lead.Status != models.StatusReuniaoAgendada || lead.DataReuniao == nil {
			continue
		}
		at := lead.DataReuniao.In(weekStart.Location())
		if at.Before(weekStart) || !at.Before(weekEnd) {
			continue
		}
		key := at.Format("2006-01-02")
		byDay[key] = append(byDay[key], lead)
	}

	for i := 0; i < 7; i++ {
		date := weekStart.AddDate(0, 0, i).Format("2006-01-02")
		meetings := byDay[date]
		sort.SliceStable(meetings, func(a, b int) bool {
			return meetings[a].DataReuniao.Before(*meetings[b].DataReuniao)
		})
		if meetings == nil {
			meetings = []models.Lead{}
		}
		week.Days[i] = AgendaDay{Date: date, Meetings: meetings}
	}

	return week
}

// WeekFor fetches the actor's visible leads and builds the agenda for the
// Monday-start week containing date.
func (s *AgendaService) WeekFor(ctx context.Context, actor Actor, date time.Time) (*AgendaWeek, error) {
	leads, err := s.leads.List(ctx, actor)
	if err != nil {
		return nil, err
	}

	week := BuildWeek(leads, WeekStart(date))
	return &week, nil
}
