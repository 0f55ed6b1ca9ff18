// internal/models/lead.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Canonical history action labels. The board renders icons off these exact
// strings, so they are data, not display text.
const (
	ActionStatusChange = "Mudança de Status"
	ActionNoteAdded    = "Nota Adicionada"
	ActionLeadCaptured = "Lead Capturado"
)

// Note attached to the synthetic entry of a manually captured lead.
const CapturedNote = "Captura manual via sistema SISV CRM."

// Placeholders supplied when a stored row is missing required display fields.
const (
	DefaultNomeCliente = "Sem Nome"
	DefaultNomeMarca   = "Marca não informada"
)

// RejectionReasons is the fixed list driving the loss-breakdown chart.
// Reasons stored outside this list are excluded from the breakdown.
var RejectionReasons = []string{
	"Preço / Investimento alto",
	"Já registrou com outro",
	"Desistiu do negócio/marca",
	"Sem verba no momento",
	"Não viu valor no registro",
	"Achou o processo demorado",
	"Problemas de comunicação",
	"Outros",
}

type HistoryEntry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Note      string    `json:"note,omitempty"`
}

// History is the ordered audit trail of a lead, newest first. The application
// only ever prepends; it never truncates or reorders.
type History []HistoryEntry

func (h History) Value() (driver.Value, error) {
	if h == nil {
		return json.Marshal(History{})
	}
	return json.Marshal(h)
}

func (h *History) Scan(value interface{}) error {
	if value == nil {
		*h = History{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, h)
}

// Prepend returns a new history with entry at the front.
func (h History) Prepend(entry HistoryEntry) History {
	out := make(History, 0, len(h)+1)
	out = append(out, entry)
	return append(out, h...)
}

func NewHistoryEntry(action, note string, at time.Time) HistoryEntry {
	return HistoryEntry{
		ID:        uuid.NewString(),
		Timestamp: at,
		Action:    action,
		Note:      note,
	}
}

// Lead is one trademark-registration prospect. Column names follow the
// external snake-style contract; created_at is immutable and
// status_updated_at moves only when status changes.
type Lead struct {
	ID              uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	NomeCliente     string     `json:"nome_cliente" gorm:"size:255"`
	Whatsapp        string     `json:"whatsapp" gorm:"size:30;not null"`
	Email           string     `json:"email,omitempty" gorm:"size:255"`
	NomeMarca       string     `json:"nome_marca" gorm:"size:255"`
	Status          LeadStatus `json:"status" gorm:"type:varchar(30);default:'entrada';index"`
	CreatedAt       time.Time  `json:"created_at"`
	StatusUpdatedAt time.Time  `json:"status_updated_at"`
	VendedorID      *uuid.UUID `json:"vendedor_id" gorm:"type:uuid;index"`

	// Technical review
	RamoAtividade string `json:"ramo_atividade,omitempty" gorm:"size:255"`
	PossuiCnpj    *bool  `json:"possui_cnpj,omitempty"`
	ClasseNice    string `json:"classe_nice,omitempty" gorm:"size:50"`
	ResumoAnalise string `json:"resumo_analise,omitempty" gorm:"type:text"`
	LinkPesquisa  string `json:"link_pesquisa,omitempty" gorm:"type:text"`

	// Commercial
	DataReuniao *time.Time `json:"data_reuniao,omitempty"`
	MotivoPerda string     `json:"motivo_perda,omitempty" gorm:"size:100"`
	Observacoes string     `json:"observacoes,omitempty" gorm:"type:text"`

	Historico History `json:"historico" gorm:"type:jsonb"`
}

func (Lead) TableName() string {
	return "leads"
}

// Unassigned reports whether the lead sits in the intake pool.
func (l *Lead) Unassigned() bool {
	return l.VendedorID == nil
}

// RejectionIncomplete flags a declined proposal saved without a loss reason.
// The row is allowed to persist this way; only the UI blocks on it.
func (l *Lead) RejectionIncomplete() bool {
	return l.Status == StatusRecusouProposta && l.MotivoPerda == ""
}

// Normalize is the single place defaults for absent optional fields live.
// Every lead leaving storage passes through here before anything reads it.
func Normalize(l *Lead) {
	if l.NomeCliente == "" {
		l.NomeCliente = DefaultNomeCliente
	}
	if l.NomeMarca == "" {
		l.NomeMarca = DefaultNomeMarca
	}
	if !l.Status.Valid() {
		l.Status = StatusEntrada
	}
	if l.StatusUpdatedAt.IsZero() {
		l.StatusUpdatedAt = l.CreatedAt
	}
	if l.Historico == nil {
		l.Historico = History{}
	}
}
