// internal/services/stats_service_test.go
package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/sisvmarcas/crm-backend/internal/models"
)

func leadWith(status models.LeadStatus, owner *uuid.UUID) models.Lead {
	lead := baseLead()
	lead.ID = uuid.New()
	lead.Status = status
	lead.VendedorID = owner
	return lead
}

func TestStatsFourLeadExample(t *testing.T) {
	leads := []models.Lead{
		leadWith(models.StatusEntrada, nil),
		leadWith(models.StatusReuniaoAgendada, nil),
		leadWith(models.StatusContratoFechado, nil),
		leadWith(models.StatusRecusouProposta, nil),
	}
	leads[3].MotivoPerda = "Preço / Investimento alto"

	s := Stats(leads)

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 1, s.Won)
	assert.Equal(t, 1, s.Lost)
	assert.Equal(t, 1, s.Scheduled)
	assert.Equal(t, 1, s.Intake)
	assert.Equal(t, 0, s.NoResponse)
	assert.Equal(t, 0, s.InProgress)

	assert.Equal(t, "Preço / Investimento alto", s.RejectionBreakdown[0].Reason)
	assert.Equal(t, 1, s.RejectionBreakdown[0].Count)
	assert.Equal(t, 100.0, s.RejectionBreakdown[0].Pct)
	for _, item := range s.RejectionBreakdown[1:] {
		assert.Equal(t, 0, item.Count)
		assert.Equal(t, 0.0, item.Pct)
	}
}

func TestStatsInProgressIsResidual(t *testing.T) {
	leads := []models.Lead{
		leadWith(models.StatusEmPesquisa, nil),
		leadWith(models.StatusViabilidadeAprovada, nil),
		leadWith(models.StatusViabilidadeReprovada, nil),
		leadWith(models.StatusAguardandoResposta, nil),
		leadWith(models.StatusNaoCompareceu, nil),
		leadWith(models.StatusContratoFechado, nil),
		leadWith(models.StatusEntrada, nil),
	}

	s := Stats(leads)

	assert.Equal(t, 7, s.Total)
	assert.Equal(t, 5, s.InProgress)
	assert.Equal(t, s.Total, s.Won+s.Lost+s.NoResponse+s.Scheduled+s.Intake+s.InProgress)
}

func TestStatsBreakdownZeroWhenNoLosses(t *testing.T) {
	leads := []models.Lead{
		leadWith(models.StatusEntrada, nil),
		leadWith(models.StatusContratoFechado, nil),
	}

	s := Stats(leads)

	assert.Equal(t, 0, s.Lost)
	for _, item := range s.RejectionBreakdown {
		assert.Equal(t, 0, item.Count)
		assert.Equal(t, 0.0, item.Pct)
	}
}

func TestStatsBreakdownExcludesUnknownReasons(t *testing.T) {
	lost := leadWith(models.StatusRecusouProposta, nil)
	lost.MotivoPerda = "Motivo que não existe na lista"

	s := Stats([]models.Lead{lost})

	assert.Equal(t, 1, s.Lost)
	for _, item := range s.RejectionBreakdown {
		assert.Equal(t, 0, item.Count)
	}
}

func TestStatsBreakdownSortedByCountDescending(t *testing.T) {
	mk := func(reason string) models.Lead {
		lead := leadWith(models.StatusRecusouProposta, nil)
		lead.MotivoPerda = reason
		return lead
	}
	leads := []models.Lead{
		mk("Sem verba no momento"),
		mk("Sem verba no momento"),
		mk("Já registrou com outro"),
	}

	s := Stats(leads)

	assert.Equal(t, "Sem verba no momento", s.RejectionBreakdown[0].Reason)
	assert.Equal(t, 2, s.RejectionBreakdown[0].Count)
	for i := 1; i < len(s.RejectionBreakdown); i++ {
		assert.GreaterOrEqual(t, s.RejectionBreakdown[i-1].Count, s.RejectionBreakdown[i].Count)
	}
}

func TestVisibleLeadsRoleGate(t *testing.T) {
	u1 := uuid.New()
	u2 := uuid.New()

	own := leadWith(models.StatusEntrada, &u1)
	theirs := leadWith(models.StatusEntrada, &u2)
	unowned := leadWith(models.StatusEntrada, nil)
	leads := []models.Lead{own, theirs, unowned}

	visible := VisibleLeads(leads, models.RoleVendedor, u1, LeadFilter{Dropdown: DropdownAll})
	assert.Len(t, visible, 2)
	for _, lead := range visible {
		assert.True(t, lead.VendedorID == nil || *lead.VendedorID == u1)
	}

	all := VisibleLeads(leads, models.RoleAdmin, u1, LeadFilter{Dropdown: DropdownAll})
	assert.Len(t, all, 3)
}

func TestVisibleLeadsRoleGateOverridesDropdown(t *testing.T) {
	u1 := uuid.New()
	u2 := uuid.New()

	leads := []models.Lead{
		leadWith(models.StatusEntrada, &u1),
		leadWith(models.StatusEntrada, &u2),
	}

	// Pointing the dropdown at another seller never leaks their leads.
	visible := VisibleLeads(leads, models.RoleVendedor, u1, LeadFilter{Dropdown: u2.String()})
	assert.Empty(t, visible)
}

func TestVisibleLeadsSearchMatchesNameOrBrand(t *testing.T) {
	byName := leadWith(models.StatusEntrada, nil)
	byName.NomeCliente = "Carlos Pereira"
	byName.NomeMarca = "Tech Norte"

	byBrand := leadWith(models.StatusEntrada, nil)
	byBrand.NomeCliente = "Juliana Lima"
	byBrand.NomeMarca = "Café Carioca"

	neither := leadWith(models.StatusEntrada, nil)
	neither.NomeCliente = "Roberto Dias"
	neither.NomeMarca = "Padaria Sul"

	leads := []models.Lead{byName, byBrand, neither}

	visible := VisibleLeads(leads, models.RoleAdmin, uuid.New(), LeadFilter{Search: "car", Dropdown: DropdownAll})
	assert.Len(t, visible, 2)

	everything := VisibleLeads(leads, models.RoleAdmin, uuid.New(), LeadFilter{Dropdown: DropdownAll})
	assert.Len(t, everything, 3)
}

func TestVisibleLeadsDropdownExactOwner(t *testing.T) {
	u1 := uuid.New()
	u2 := uuid.New()

	leads := []models.Lead{
		leadWith(models.StatusEntrada, &u1),
		leadWith(models.StatusEntrada, &u2),
		leadWith(models.StatusEntrada, nil),
	}

	visible := VisibleLeads(leads, models.RoleAdmin, u1, LeadFilter{Dropdown: u2.String()})
	assert.Len(t, visible, 1)
	assert.Equal(t, u2, *visible[0].VendedorID)
}
