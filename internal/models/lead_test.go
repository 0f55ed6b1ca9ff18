// internal/models/lead_test.go
package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeFillsDefaults(t *testing.T) {
	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	lead := &Lead{CreatedAt: created}

	Normalize(lead)

	assert.Equal(t, DefaultNomeCliente, lead.NomeCliente)
	assert.Equal(t, DefaultNomeMarca, lead.NomeMarca)
	assert.Equal(t, StatusEntrada, lead.Status)
	assert.Equal(t, created, lead.StatusUpdatedAt)
	assert.NotNil(t, lead.Historico)
	assert.Empty(t, lead.Historico)
}

func TestNormalizeKeepsPresentValues(t *testing.T) {
	created := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	moved := created.Add(48 * time.Hour)
	lead := &Lead{
		NomeCliente:     "Ana Souza",
		NomeMarca:       "Café Aurora",
		Status:          StatusEmPesquisa,
		CreatedAt:       created,
		StatusUpdatedAt: moved,
		Historico:       History{NewHistoryEntry(ActionLeadCaptured, CapturedNote, created)},
	}

	Normalize(lead)

	assert.Equal(t, "Ana Souza", lead.NomeCliente)
	assert.Equal(t, StatusEmPesquisa, lead.Status)
	assert.Equal(t, moved, lead.StatusUpdatedAt)
	assert.Len(t, lead.Historico, 1)
}

func TestNormalizeResetsUnknownStatus(t *testing.T) {
	lead := &Lead{Status: LeadStatus("qualquer_coisa")}
	Normalize(lead)
	assert.Equal(t, StatusEntrada, lead.Status)
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "ENTRADA", StatusEntrada.Label())
	assert.Equal(t, "EM PESQUISA", StatusEmPesquisa.Label())
	assert.Equal(t, "VIABILIDADE APROVADA", StatusViabilidadeAprovada.Label())
	assert.Equal(t, "RECUSOU PROPOSTA", StatusRecusouProposta.Label())
}

func TestStatusValid(t *testing.T) {
	for _, s := range AllStatuses {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, LeadStatus("fechado").Valid())
	assert.False(t, LeadStatus("").Valid())
}

func TestHistoryPrependKeepsNewestFirst(t *testing.T) {
	t0 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	first := NewHistoryEntry(ActionLeadCaptured, CapturedNote, t0)
	second := NewHistoryEntry(ActionStatusChange, "Movido de ENTRADA para EM PESQUISA", t0.Add(time.Hour))

	h := History{}.Prepend(first).Prepend(second)

	assert.Len(t, h, 2)
	assert.Equal(t, second, h[0])
	assert.Equal(t, first, h[1])
}

func TestRejectionIncomplete(t *testing.T) {
	lead := &Lead{Status: StatusRecusouProposta}
	assert.True(t, lead.RejectionIncomplete())

	lead.MotivoPerda = RejectionReasons[0]
	assert.False(t, lead.RejectionIncomplete())

	lead.Status = StatusContratoFechado
	lead.MotivoPerda = ""
	assert.False(t, lead.RejectionIncomplete())
}
