package service_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	advisorout "paymind/internal/modules/advisor/adapter/out"
	"paymind/internal/modules/advisor/domain"
	"paymind/internal/modules/advisor/dto"
	"paymind/internal/modules/advisor/service"
)

type fakeHost struct {
	suggestions map[string][]domain.Suggestion
	failures    map[string]error
	calls       []string
}

func (f *fakeHost) CheckLifecycle(_ context.Context, manifest domain.Manifest) error {
	return f.failures[manifest.Name]
}

func (f *fakeHost) GetMetadata(_ context.Context, manifest domain.Manifest) (domain.Metadata, error) {
	return domain.Metadata{Name: manifest.Name}, f.failures[manifest.Name]
}

func (f *fakeHost) Advise(_ context.Context, manifest domain.Manifest, req domain.Request) ([]domain.Suggestion, error) {
	f.calls = append(f.calls, manifest.Name)
	if err := f.failures[manifest.Name]; err != nil {
		return nil, err
	}
	return f.suggestions[manifest.Name], nil
}

func installAdvisor(t *testing.T, dir, name string, enabled bool, sha string) {
	t.Helper()
	pluginDir := filepath.Join(dir, name)
	if err := os.MkdirAll(pluginDir, 0o755); err != nil {
		t.Fatalf("mkdir plugin: %v", err)
	}
	if err := os.WriteFile(filepath.Join(pluginDir, "advisor"), []byte("binary-"+name), 0o755); err != nil {
		t.Fatalf("write binary: %v", err)
	}
	manifest := fmt.Sprintf("name: %s\nversion: 1.0.0\nbinary: ./advisor\nenabled: %t\n", name, enabled)
	if sha != "" {
		manifest += "sha256: " + sha + "\n"
	}
	if err := os.WriteFile(filepath.Join(pluginDir, "plugin.yaml"), []byte(manifest), 0o644); err != nil {
		t.Fatalf("write plugin.yaml: %v", err)
	}
}

func checksumOf(name string) string {
	sum := sha256.Sum256([]byte("binary-" + name))
	return hex.EncodeToString(sum[:])
}

func TestDoctorDetectsChecksumMismatch(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	installAdvisor(t, dir, "demo", true, strings.Repeat("0", 64))

	svc := service.NewAdvisorService(advisorout.NewDirManifestStore(dir), nil)
	results, err := svc.Doctor(context.Background())
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected one result, got %d", len(results))
	}
	if results[0].ChecksumValid || !results[0].BinaryReachable {
		t.Fatalf("expected reachable binary with checksum mismatch, got %+v", results[0])
	}
}

func TestDoctorReportsLifecycle(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	installAdvisor(t, dir, "good", true, checksumOf("good"))
	installAdvisor(t, dir, "broken", true, "")
	host := &fakeHost{failures: map[string]error{"broken": errors.New("handshake failed")}}

	results, err := service.NewAdvisorService(advisorout.NewDirManifestStore(dir), host).Doctor(context.Background())
	if err != nil {
		t.Fatalf("doctor: %v", err)
	}
	byName := map[string]dto.DoctorResult{}
	for _, r := range results {
		byName[r.Name] = r
	}
	if !byName["good"].LifecycleOK || byName["good"].Error != "" {
		t.Fatalf("expected healthy advisor, got %+v", byName["good"])
	}
	if byName["broken"].LifecycleOK || byName["broken"].Error != "handshake failed" {
		t.Fatalf("expected lifecycle failure, got %+v", byName["broken"])
	}
}

func TestAdviseSkipsFailingAndDisabledAdvisors(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	installAdvisor(t, dir, "alpha", true, "")
	installAdvisor(t, dir, "beta", true, "")
	installAdvisor(t, dir, "gamma", false, "")
	installAdvisor(t, dir, "delta", true, strings.Repeat("a", 64))
	host := &fakeHost{
		suggestions: map[string][]domain.Suggestion{
			"alpha": {{ID: "bedtime", Title: "Phone-free last hour", PotentialSaving: 787.5, Difficulty: "easy"}},
			"gamma": {{ID: "never", Title: "Never asked"}},
		},
		failures: map[string]error{"beta": domain.ErrPluginTimeout},
	}

	out, err := service.NewAdvisorService(advisorout.NewDirManifestStore(dir), host).Advise(context.Background(), dto.AdviseInput{UserID: "u1", WeeklyHours: 25})
	if err != nil {
		t.Fatalf("advise: %v", err)
	}
	if len(out.Items) != 1 || out.Items[0].Plugin != "alpha" || out.Items[0].ID != "bedtime" {
		t.Fatalf("unexpected items: %+v", out.Items)
	}
	if _, ok := out.Failures["beta"]; !ok {
		t.Fatalf("expected beta failure, got %+v", out.Failures)
	}
	if !strings.Contains(out.Failures["delta"], "checksum mismatch") {
		t.Fatalf("expected delta checksum failure, got %+v", out.Failures)
	}
	for _, name := range host.calls {
		if name == "gamma" || name == "delta" {
			t.Fatalf("advisor %s should not be called", name)
		}
	}
}

func TestAdviseRejectsInvalidSuggestion(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	installAdvisor(t, dir, "sloppy", true, "")
	host := &fakeHost{suggestions: map[string][]domain.Suggestion{
		"sloppy": {{ID: "x", Title: "Negative", PotentialSaving: -1}},
	}}

	out, err := service.NewAdvisorService(advisorout.NewDirManifestStore(dir), host).Advise(context.Background(), dto.AdviseInput{UserID: "u1"})
	if err != nil {
		t.Fatalf("advise: %v", err)
	}
	if len(out.Items) != 0 || out.Failures["sloppy"] == "" {
		t.Fatalf("expected sloppy advisor to be skipped, got %+v", out)
	}
}

func TestAdviseWithoutHostReturnsEmpty(t *testing.T) {
	t.Parallel()
	out, err := service.NewAdvisorService(advisorout.NewDirManifestStore(""), nil).Advise(context.Background(), dto.AdviseInput{})
	if err != nil {
		t.Fatalf("advise: %v", err)
	}
	if len(out.Items) != 0 || len(out.Failures) != 0 {
		t.Fatalf("expected empty output, got %+v", out)
	}
}

func TestListRejectsDuplicateNames(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	installAdvisor(t, dir, "one", true, "")
	if err := os.MkdirAll(filepath.Join(dir, "two"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "two", "plugin.yaml"), []byte("name: one\nbinary: /bin/true\nenabled: true\n"), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	if _, err := service.NewAdvisorService(advisorout.NewDirManifestStore(dir), nil).List(context.Background()); err == nil {
		t.Fatalf("expected duplicate name error")
	}
}
