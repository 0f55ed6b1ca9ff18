// internal/services/stats_service.go
package services

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/sisvmarcas/crm-backend/internal/models"
)

// DropdownAll is the owner-filter value that disables owner filtering.
const DropdownAll = "all"

type LeadFilter struct {
	Search   string
	Dropdown string
}

type RejectionBreakdownItem struct {
	Reason string  `json:"reason"`
	Count  int     `json:"count"`
	Pct    float64 `json:"pct"`
}

type LeadStats struct {
	Total      int `json:"total"`
	Won        int `json:"won"`
	Lost       int `json:"lost"`
	NoResponse int `json:"noResponse"`
	Scheduled  int `json:"scheduled"`
	Intake     int `json:"intake"`
	// InProgress is derived as the residual of the other buckets.
	InProgress int `json:"inProgress"`

	RejectionBreakdown []RejectionBreakdownItem `json:"rejectionBreakdown"`
}

type StatsService struct {
	leads *LeadService
}

func NewStatsService(leads *LeadService) *StatsService {
	return &StatsService{leads: leads}
}

// VisibleLeads applies the three board filters as an AND: case-insensitive
// text match on client or brand name, role-based ownership, and the owner
// dropdown. Empty search matches everything.
func VisibleLeads(leads []models.Lead, role models.Role, ownerID uuid.UUID, filter LeadFilter) []models.Lead {
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	out := make([]models.Lead, 0, len(leads))
	for _, lead := range leads {
		if search != "" {
			nome := strings.ToLower(lead.NomeCliente)
			marca := strings.ToLower(lead.NomeMarca)
			if !strings.Contains(nome, search) && !strings.Contains(marca, search) {
				continue
			}
		}

		if role != models.RoleAdmin {
			if lead.VendedorID != nil && *lead.VendedorID != ownerID {
				continue
			}
		}

		if filter.Dropdown != "" && filter.Dropdown != DropdownAll {
			if lead.VendedorID == nil || lead.VendedorID.String() != filter.Dropdown {
				continue
			}
		}

		out = append(out, lead)
	}
	return out
}

// Stats aggregates the funnel buckets over an already-filtered slice.
func Stats(leads []models.Lead) LeadStats {
	s := LeadStats{Total: len(leads)}

	lostReasons := make(map[string]int)
	for _, lead := range leads {
		switch lead.Status {
		case models.StatusContratoFechado:
			s.Won++
		case models.StatusRecusouProposta:
			s.Lost++
			lostReasons[lead.MotivoPerda]++
		case models.StatusSemResposta:
			s.NoResponse++
		case models.StatusReuniaoAgendada:
			s.Scheduled++
		case models.StatusEntrada:
			s.Intake++
		}
	}
	s.InProgress = s.Total - s.Won - s.Lost - s.NoResponse - s.Scheduled - s.Intake

	// Breakdown only counts the fixed reason list; anything stored outside
	// it is left out of the chart.
	s.RejectionBreakdown = make([]RejectionBreakdownItem, 0, len(models.RejectionReasons))
	for _, reason := range models.RejectionReasons {
		count := lostReasons[reason]
		pct := 0.0
		if s.Lost > 0 {
			pct = float64(count) / float64(s.Lost) * 100
		}
		s.RejectionBreakdown = append(s.RejectionBreakdown, RejectionBreakdownItem{
			Reason: reason,
			Count:  count,
			Pct:    pct,
		})
	}
	sort.SliceStable(s.RejectionBreakdown, func(i, j int) bool {
		return s.RejectionBreakdown[i].Count > s.RejectionBreakdown[j].Count
	})

	return s
}

// ComputeStats fetches the actor's visible leads, applies the request
// filters and aggregates the result.
func (s *StatsService) ComputeStats(ctx context.Context, actor Actor, filter LeadFilter) (*LeadStats, error) {
	leads, err := s.leads.List(ctx, actor)
	if err != nil {
		return nil, err
	}

	filtered := VisibleLeads(leads, actor.Role, actor.ID, filter)
	stats := Stats(filtered)
	return &stats, nil
}
