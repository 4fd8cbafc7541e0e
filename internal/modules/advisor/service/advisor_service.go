package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"paymind/internal/modules/advisor/domain"
	"paymind/internal/modules/advisor/dto"
	advisorout "paymind/internal/modules/advisor/port/out"
)

type AdvisorService struct {
	store advisorout.ManifestStore
	host  advisorout.Host
}

func NewAdvisorService(store advisorout.ManifestStore, host advisorout.Host) *AdvisorService {
	return &AdvisorService{store: store, host: host}
}

func (s *AdvisorService) List(ctx context.Context) ([]dto.PluginInfo, error) {
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PluginInfo, 0, len(manifests))
	for _, m := range manifests {
		out = append(out, dto.PluginInfo{Name: m.Name, Version: m.Version, Enabled: m.Enabled, Binary: m.Binary})
	}
	return out, nil
}

func (s *AdvisorService) Doctor(ctx context.Context) ([]dto.DoctorResult, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]dto.DoctorResult, 0, len(manifests))
	for _, m := range manifests {
		result := dto.DoctorResult{Name: m.Name}
		if err := m.Validate(); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		result.BinaryReachable = fileExists(m.Binary)
		if !result.BinaryReachable {
			result.Error = fmt.Sprintf("binary does not exist: %s", m.Binary)
			results = append(results, result)
			continue
		}
		if err := checksumMatches(m.Binary, m.SHA256); err != nil {
			result.Error = err.Error()
			results = append(results, result)
			continue
		}
		result.ChecksumValid = true
		if m.Enabled && s.host != nil {
			if err := s.host.CheckLifecycle(ctx, m); err != nil {
				result.Error = err.Error()
			} else {
				result.LifecycleOK = true
			}
		}
		results = append(results, result)
	}
	return results, nil
}

// Advise asks every enabled advisor in manifest order. A failing advisor is recorded in Failures and skipped.
func (s *AdvisorService) Advise(ctx context.Context, input dto.AdviseInput) (dto.AdviseOutput, error) {
	out := dto.AdviseOutput{Items: []dto.AdviceItem{}, Failures: map[string]string{}}
	if s.store == nil || s.host == nil {
		return out, nil
	}
	manifests, err := s.loadValidated(ctx)
	if err != nil {
		return dto.AdviseOutput{}, err
	}
	req := toRequest(input)
	for _, m := range manifests {
		if !m.Enabled {
			continue
		}
		suggestions, err := s.adviseOne(ctx, m, req)
		if err != nil {
			out.Failures[m.Name] = err.Error()
			continue
		}
		for _, suggestion := range suggestions {
			out.Items = append(out.Items, dto.AdviceItem{
				Plugin:          m.Name,
				ID:              suggestion.ID,
				Title:           suggestion.Title,
				Description:     suggestion.Description,
				App:             suggestion.App,
				CurrentCost:     suggestion.CurrentCost,
				PotentialSaving: suggestion.PotentialSaving,
				Difficulty:      suggestion.Difficulty,
			})
		}
	}
	return out, nil
}

func (s *AdvisorService) adviseOne(ctx context.Context, m domain.Manifest, req domain.Request) ([]domain.Suggestion, error) {
	if err := checksumMatches(m.Binary, m.SHA256); err != nil {
		return nil, err
	}
	suggestions, err := s.host.Advise(ctx, m, req)
	if err != nil {
		return nil, err
	}
	for _, suggestion := range suggestions {
		if err := suggestion.Validate(); err != nil {
			return nil, fmt.Errorf("advisor %s: %w", m.Name, err)
		}
	}
	return suggestions, nil
}

func (s *AdvisorService) loadValidated(ctx context.Context) ([]domain.Manifest, error) {
	manifests, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	seenNames := map[string]struct{}{}
	for _, manifest := range manifests {
		if err := manifest.Validate(); err != nil {
			return nil, err
		}
		if _, ok := seenNames[manifest.Name]; ok {
			return nil, fmt.Errorf("duplicate advisor name: %s", manifest.Name)
		}
		seenNames[manifest.Name] = struct{}{}
	}
	return manifests, nil
}

func toRequest(input dto.AdviseInput) domain.Request {
	usage := make([]domain.AppHours, 0, len(input.WeeklyUsage))
	for _, app := range input.WeeklyUsage {
		usage = append(usage, domain.AppHours{App: app.App, Hours: app.Hours})
	}
	return domain.Request{
		UserID:        input.UserID,
		AsOf:          input.AsOf,
		WeeklyUsage:   usage,
		WeeklyHours:   input.WeeklyHours,
		WeeklyLoss:    input.WeeklyLoss,
		ReferenceRate: input.ReferenceRate,
	}
}

// checksumMatches passes when no checksum is pinned.
func checksumMatches(path string, expected string) error {
	payload, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read advisor binary: %w", err)
	}
	if strings.TrimSpace(expected) == "" {
		return nil
	}
	hash := sha256.Sum256(payload)
	actual := hex.EncodeToString(hash[:])
	if actual != expected {
		return fmt.Errorf("%w: %s", domain.ErrChecksumMismatch, filepath.Base(path))
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
