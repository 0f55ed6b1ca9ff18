// internal/services/pitch_service.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sisvmarcas/crm-backend/internal/config"
	"github.com/sisvmarcas/crm-backend/internal/middleware"
	"github.com/sisvmarcas/crm-backend/internal/models"
)

const (
	contextApproved = "A marca dele foi aprovada e tem grandes chances de registro."
	contextRisky    = "A marca dele tem conflitos ou é de difícil registro, precisamos oferecer uma consultoria estratégica."
)

type PitchService struct {
	cfg    *config.Config
	client *http.Client
}

type PitchResponse struct {
	Pitch string `json:"pitch"`
	// Source is "ai" when the text came from the model, "fallback" otherwise.
	Source string `json:"source"`
}

type contentPart struct {
	Text string `json:"text"`
}

type content struct {
	Parts []contentPart `json:"parts"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateContentRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

func NewPitchService(cfg *config.Config) *PitchService {
	return &PitchService{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.AI.Timeout) * time.Second,
		},
	}
}

// GeneratePitch asks the model for a short WhatsApp approach text for the
// lead. Any upstream failure degrades to a canned message instead of an
// error; a pitch is never a hard dependency of the sales flow.
func (s *PitchService) GeneratePitch(ctx context.Context, lead *models.Lead) *PitchResponse {
	text, err := s.callModel(ctx, lead)
	if err != nil {
		logrus.WithError(err).Warn("Pitch generation unavailable, using fallback")
		middleware.RecordPitchGeneration("fallback")
		return &PitchResponse{Pitch: fallbackPitch(lead), Source: "fallback"}
	}

	middleware.RecordPitchGeneration("ai")
	return &PitchResponse{Pitch: text, Source: "ai"}
}

func (s *PitchService) callModel(ctx context.Context, lead *models.Lead) (string, error) {
	if s.cfg.AI.APIKey == "" {
		return "", fmt.Errorf("AI API key not configured")
	}

	viability := contextRisky
	if lead.Status == models.StatusViabilidadeAprovada {
		viability = contextApproved
	}

	prompt := fmt.Sprintf(
		"Especialista SISV Marcas.\nNome: %s\nMarca: %s\nStatus: %s\nContexto: %s\nCrie abordagem WhatsApp curta e persuasiva. Sem hashtags.",
		lead.NomeCliente, lead.NomeMarca, lead.Status, viability,
	)

	reqBody := generateContentRequest{
		Contents: []content{{Parts: []contentPart{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:     0.7,
			MaxOutputTokens: 250,
		},
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		s.cfg.AI.BaseURL, s.cfg.AI.Model, s.cfg.AI.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("model request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("model returned status %d: %s", resp.StatusCode, string(body))
	}

	var result generateContentResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("model returned no candidates")
	}

	text := strings.TrimSpace(result.Candidates[0].Content.Parts[0].Text)
	if text == "" {
		return "", fmt.Errorf("model returned empty text")
	}
	return text, nil
}

func fallbackPitch(lead *models.Lead) string {
	return fmt.Sprintf(
		"Olá %s, sou da SISV Marcas. Vi seu interesse no registro da marca %s. Vamos agendar uma breve reunião de viabilidade?",
		lead.NomeCliente, lead.NomeMarca,
	)
}
