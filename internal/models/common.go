// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Enums
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleVendedor Role = "vendedor"
)

// LeadStatus is the closed set of funnel columns. The stored value is the
// snake form; Label renders it the way the board and the history notes do.
type LeadStatus string

const (
	StatusEntrada              LeadStatus = "entrada"
	StatusEmPesquisa           LeadStatus = "em_pesquisa"
	StatusViabilidadeAprovada  LeadStatus = "viabilidade_aprovada"
	StatusViabilidadeReprovada LeadStatus = "viabilidade_reprovada"
	StatusReuniaoAgendada      LeadStatus = "reuniao_agendada"
	StatusAguardandoResposta   LeadStatus = "aguardando_resposta"
	StatusNaoCompareceu        LeadStatus = "nao_compareceu"
	StatusContratoFechado      LeadStatus = "contrato_fechado"
	StatusRecusouProposta      LeadStatus = "recusou_proposta"
	StatusSemResposta          LeadStatus = "sem_resposta"
)

// AllStatuses lists the board columns in funnel order.
var AllStatuses = []LeadStatus{
	StatusEntrada,
	StatusEmPesquisa,
	StatusViabilidadeAprovada,
	StatusViabilidadeReprovada,
	StatusReuniaoAgendada,
	StatusAguardandoResposta,
	StatusNaoCompareceu,
	StatusContratoFechado,
	StatusRecusouProposta,
	StatusSemResposta,
}

func (s LeadStatus) Valid() bool {
	for _, known := range AllStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Label is the upper-cased form with underscores rendered as spaces,
// e.g. "em_pesquisa" -> "EM PESQUISA".
func (s LeadStatus) Label() string {
	return strings.ToUpper(strings.ReplaceAll(string(s), "_", " "))
}
