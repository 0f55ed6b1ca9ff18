// internal/services/lead_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/sisvmarcas/crm-backend/internal/config"
	"github.com/sisvmarcas/crm-backend/internal/events"
	"github.com/sisvmarcas/crm-backend/internal/middleware"
	"github.com/sisvmarcas/crm-backend/internal/models"
	"github.com/sisvmarcas/crm-backend/internal/utils"
)

var (
	ErrLeadNotFound     = errors.New("lead not found")
	ErrPermissionDenied = errors.New("permission denied")
)

// Actor is the authenticated identity performing a lead operation.
type Actor struct {
	ID   uuid.UUID
	Role models.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

type LeadService struct {
	db  *gorm.DB
	cfg *config.Config
	hub *events.Hub
}

type CreateLeadRequest struct {
	NomeCliente string `json:"nome_cliente"`
	Whatsapp    string `json:"whatsapp" validate:"required,whatsapp"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	NomeMarca   string `json:"nome_marca"`
}

// LeadUpdateRequest carries every mutable field of a lead. The client edits
// the whole record and sends it back; the service diffs against the stored
// row to decide what history the edit produces.
type LeadUpdateRequest struct {
	NomeCliente   string            `json:"nome_cliente"`
	Whatsapp      string            `json:"whatsapp" validate:"required,whatsapp"`
	Email         string            `json:"email,omitempty" validate:"omitempty,email"`
	NomeMarca     string            `json:"nome_marca"`
	Status        models.LeadStatus `json:"status" validate:"required,lead_status"`
	VendedorID    *uuid.UUID        `json:"vendedor_id"`
	RamoAtividade string            `json:"ramo_atividade,omitempty"`
	PossuiCnpj    *bool             `json:"possui_cnpj,omitempty"`
	ClasseNice    string            `json:"classe_nice,omitempty"`
	ResumoAnalise string            `json:"resumo_analise,omitempty"`
	LinkPesquisa  string            `json:"link_pesquisa,omitempty"`
	DataReuniao   *time.Time        `json:"data_reuniao,omitempty"`
	MotivoPerda   string            `json:"motivo_perda,omitempty"`
	Observacoes   string            `json:"observacoes,omitempty"`
}

func NewLeadService(db *gorm.DB, cfg *config.Config, hub *events.Hub) *LeadService {
	return &LeadService{
		db:  db,
		cfg: cfg,
		hub: hub,
	}
}

// ApplyLifecycle merges an edit into the stored lead and derives the history
// it produces. Status change moves status_updated_at and records a transition
// entry; a new non-empty observation records a note entry. When both fire in
// one edit the note ends up at index 0 and the transition at index 1, because
// each entry is prepended in turn.
func ApplyLifecycle(current models.Lead, req LeadUpdateRequest, now time.Time) models.Lead {
	out := current
	out.NomeCliente = req.NomeCliente
	out.Whatsapp = req.Whatsapp
	out.Email = req.Email
	out.NomeMarca = req.NomeMarca
	out.Status = req.Status
	out.VendedorID = req.VendedorID
	out.RamoAtividade = req.RamoAtividade
	out.PossuiCnpj = req.PossuiCnpj
	out.ClasseNice = req.ClasseNice
	out.ResumoAnalise = req.ResumoAnalise
	out.LinkPesquisa = req.LinkPesquisa
	out.DataReuniao = req.DataReuniao
	out.MotivoPerda = req.MotivoPerda
	out.Observacoes = req.Observacoes

	if req.Status != current.Status {
		out.StatusUpdatedAt = now
		note := fmt.Sprintf("Movido de %s para %s", current.Status.Label(), req.Status.Label())
		out.Historico = out.Historico.Prepend(models.NewHistoryEntry(models.ActionStatusChange, note, now))
	}

	if req.Observacoes != current.Observacoes && req.Observacoes != "" {
		out.Historico = out.Historico.Prepend(models.NewHistoryEntry(models.ActionNoteAdded, req.Observacoes, now))
	}

	return out
}

// checkEditPermission enforces the write gate. Admins may edit anything.
// A non-admin may only touch own or unassigned leads, and the only owner
// change allowed is claiming an unassigned lead for themselves.
func checkEditPermission(actor Actor, current *models.Lead, proposedOwner *uuid.UUID) error {
	if actor.IsAdmin() {
		return nil
	}

	if current.VendedorID != nil && *current.VendedorID != actor.ID {
		return ErrPermissionDenied
	}

	ownerChanged := (current.VendedorID == nil) != (proposedOwner == nil) ||
		(current.VendedorID != nil && proposedOwner != nil && *current.VendedorID != *proposedOwner)
	if ownerChanged {
		claimingForSelf := current.VendedorID == nil && proposedOwner != nil && *proposedOwner == actor.ID
		if !claimingForSelf {
			return ErrPermissionDenied
		}
	}

	return nil
}

func (s *LeadService) CreateLead(ctx context.Context, req *CreateLeadRequest) (*models.Lead, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	now := time.Now()
	lead := &models.Lead{
		NomeCliente:     req.NomeCliente,
		Whatsapp:        req.Whatsapp,
		Email:           req.Email,
		NomeMarca:       req.NomeMarca,
		Status:          models.StatusEntrada,
		StatusUpdatedAt: now,
		Historico: models.History{
			models.NewHistoryEntry(models.ActionLeadCaptured, models.CapturedNote, now),
		},
	}

	if err := s.db.WithContext(ctx).Create(lead).Error; err != nil {
		middleware.RecordLeadWrite("create", "error")
		return nil, s.classifyWriteError(err)
	}

	middleware.RecordLeadWrite("create", "success")
	s.hub.Publish(events.ChangeEvent{Table: "leads", Action: events.ActionInsert, LeadID: lead.ID})

	models.Normalize(lead)
	return lead, nil
}

func (s *LeadService) ApplyEdit(ctx context.Context, actor Actor, leadID uuid.UUID, req *LeadUpdateRequest) (*models.Lead, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	current, err := s.loadLead(ctx, leadID)
	if err != nil {
		return nil, err
	}

	if err := checkEditPermission(actor, current, req.VendedorID); err != nil {
		return nil, err
	}

	updated := ApplyLifecycle(*current, *req, time.Now())

	if err := s.db.WithContext(ctx).Save(&updated).Error; err != nil {
		middleware.RecordLeadWrite("update", "error")
		return nil, s.classifyWriteError(err)
	}

	middleware.RecordLeadWrite("update", "success")
	if updated.Status != current.Status {
		middleware.RecordStatusTransition(string(current.Status), string(updated.Status))
	}
	s.hub.Publish(events.ChangeEvent{Table: "leads", Action: events.ActionUpdate, LeadID: updated.ID})

	models.Normalize(&updated)
	return &updated, nil
}

// DragStatus moves a lead between board columns. Dropping a card back onto
// its current column changes nothing and publishes nothing.
func (s *LeadService) DragStatus(ctx context.Context, actor Actor, leadID uuid.UUID, newStatus models.LeadStatus) (*models.Lead, error) {
	if !newStatus.Valid() {
		return nil, fmt.Errorf("invalid status: %s", newStatus)
	}

	current, err := s.loadLead(ctx, leadID)
	if err != nil {
		return nil, err
	}

	req, changed := dragRequest(current, newStatus)
	if !changed {
		models.Normalize(current)
		return current, nil
	}

	return s.ApplyEdit(ctx, actor, leadID, req)
}

// dragRequest builds the edit a column drop produces: the stored row with
// only the status swapped. Dropping onto the current column yields no edit.
func dragRequest(current *models.Lead, newStatus models.LeadStatus) (*LeadUpdateRequest, bool) {
	if current.Status == newStatus {
		return nil, false
	}
	req := editRequestFrom(current)
	req.Status = newStatus
	return req, true
}

// List returns every lead the actor may see, newest first. Non-admins see
// their own leads plus the unassigned intake pool.
func (s *LeadService) List(ctx context.Context, actor Actor) ([]models.Lead, error) {
	query := s.db.WithContext(ctx).Order("created_at DESC")
	if !actor.IsAdmin() {
		query = query.Where("vendedor_id = ? OR vendedor_id IS NULL", actor.ID)
	}

	var leads []models.Lead
	if err := query.Find(&leads).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	for i := range leads {
		models.Normalize(&leads[i])
	}
	return leads, nil
}

func (s *LeadService) GetByID(ctx context.Context, actor Actor, leadID uuid.UUID) (*models.Lead, error) {
	lead, err := s.loadLead(ctx, leadID)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() && lead.VendedorID != nil && *lead.VendedorID != actor.ID {
		return nil, ErrPermissionDenied
	}

	models.Normalize(lead)
	return lead, nil
}

func (s *LeadService) loadLead(ctx context.Context, leadID uuid.UUID) (*models.Lead, error) {
	var lead models.Lead
	if err := s.db.WithContext(ctx).First(&lead, "id = ?", leadID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &lead, nil
}

// classifyWriteError folds a raw PostgreSQL permission failure into the same
// taxonomy as the application-level gate. The gorm postgres driver surfaces
// SQLSTATE errors as pgconn.PgError; pq.Error covers connections opened
// through lib/pq.
func (s *LeadService) classifyWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "42501" {
		return ErrPermissionDenied
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "42501" {
		return ErrPermissionDenied
	}
	return fmt.Errorf("failed to save lead: %w", err)
}

func editRequestFrom(lead *models.Lead) *LeadUpdateRequest {
	return &LeadUpdateRequest{
		NomeCliente:   lead.NomeCliente,
		Whatsapp:      lead.Whatsapp,
		Email:         lead.Email,
		NomeMarca:     lead.NomeMarca,
		Status:        lead.Status,
		VendedorID:    lead.VendedorID,
		RamoAtividade: lead.RamoAtividade,
		PossuiCnpj:    lead.PossuiCnpj,
		ClasseNice:    lead.ClasseNice,
		ResumoAnalise: lead.ResumoAnalise,
		LinkPesquisa:  lead.LinkPesquisa,
		DataReuniao:   lead.DataReuniao,
		MotivoPerda:   lead.MotivoPerda,
		Observacoes:   lead.Observacoes,
	}
}
