package architecture_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

const modulesPrefix = "paymind/internal/modules/"

// sourceImports maps every non-test .go file under dir to its import paths.
func sourceImports(t *testing.T, dir string) map[string][]string {
	t.Helper()
	fset := token.NewFileSet()
	out := map[string][]string{}
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		node, parseErr := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if parseErr != nil {
			return parseErr
		}
		slash := filepath.ToSlash(path)
		for _, imp := range node.Imports {
			p, _ := strconv.Unquote(imp.Path.Value)
			out[slash] = append(out[slash], p)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", dir, err)
	}
	return out
}

func TestHexagonalLayerImports(t *testing.T) {
	t.Parallel()
	for path, imports := range sourceImports(t, filepath.Join("..", "modules")) {
		module := moduleName(path)
		layer := detectLayer(path)
		if module == "" || layer == "" {
			continue
		}
		for _, importPath := range imports {
			if !strings.HasPrefix(importPath, modulesPrefix) {
				continue
			}
			if violatesLayerRule(module, layer, importPath) {
				t.Errorf("forbidden import in %s (%s): %s", path, layer, importPath)
			}
		}
	}
}

// Domain packages hold the money arithmetic and must stay free of I/O and frameworks.
func TestDomainImportsStayPure(t *testing.T) {
	t.Parallel()
	allowedPlatform := map[string]bool{
		"paymind/internal/platform/calendar": true,
		"paymind/internal/platform/errors":   true,
		"paymind/internal/platform/money":    true,
	}
	for path, imports := range sourceImports(t, filepath.Join("..", "modules")) {
		if detectLayer(path) != "domain" {
			continue
		}
		for _, importPath := range imports {
			switch {
			case !strings.Contains(importPath, "."):
				if importPath == "database/sql" || importPath == "net/http" || importPath == "os" {
					t.Errorf("domain %s imports %s", path, importPath)
				}
			case allowedPlatform[importPath]:
			case strings.HasPrefix(importPath, modulesPrefix) && strings.HasSuffix(importPath, "/domain"):
			default:
				t.Errorf("domain %s imports %s", path, importPath)
			}
		}
	}
}

func TestPlatformDoesNotImportModules(t *testing.T) {
	t.Parallel()
	for path, imports := range sourceImports(t, filepath.Join("..", "platform")) {
		for _, importPath := range imports {
			if strings.HasPrefix(importPath, modulesPrefix) {
				t.Errorf("platform %s imports %s", path, importPath)
			}
		}
	}
}

// The HTTP and terminal front ends reach modules through port/in and dto only.
func TestFrontEndsUseInboundPorts(t *testing.T) {
	t.Parallel()
	for _, dir := range []string{"api", "ui"} {
		for path, imports := range sourceImports(t, filepath.Join("..", dir)) {
			for _, importPath := range imports {
				if strings.HasPrefix(importPath, modulesPrefix) && !isPortIn(importPath) && !isDTO(importPath) {
					t.Errorf("%s imports %s", path, importPath)
				}
			}
		}
	}
}

func moduleName(path string) string {
	parts := strings.Split(path, "/")
	for i := 0; i < len(parts)-1; i++ {
		if parts[i] == "modules" {
			return parts[i+1]
		}
	}
	return ""
}

func detectLayer(path string) string {
	for _, layer := range []string{"adapter/in", "adapter/out", "usecase", "service", "domain", "port/in", "port/out", "dto"} {
		if strings.Contains(path, "/"+layer+"/") {
			return layer
		}
	}
	return ""
}

func isPortIn(path string) bool {
	return strings.Contains(path, "/port/in/") || strings.HasSuffix(path, "/port/in")
}

func isDTO(path string) bool {
	return strings.Contains(path, "/dto/") || strings.HasSuffix(path, "/dto")
}

func violatesLayerRule(module, layer, importPath string) bool {
	if !strings.HasPrefix(importPath, modulesPrefix+module+"/") {
		if strings.Contains(importPath, "/service") || strings.Contains(importPath, "/adapter/") || strings.Contains(importPath, "/usecase") {
			return true
		}
		if isPortIn(importPath) || isDTO(importPath) {
			return false
		}
	}

	switch layer {
	case "adapter/in":
		return !isPortIn(importPath) && !isDTO(importPath)
	case "usecase":
		return strings.Contains(importPath, "/adapter/")
	case "service":
		return strings.Contains(importPath, "/adapter/") || strings.Contains(importPath, "/usecase")
	case "domain", "dto", "port/in":
		return !strings.HasSuffix(importPath, "/domain") && !isDTO(importPath)
	default:
		return false
	}
}

func TestViolatesLayerRule(t *testing.T) {
	t.Parallel()
	cases := []struct {
		module, layer, importPath string
		want                      bool
	}{
		{"tracking", "usecase", modulesPrefix + "wallet/dto", false},
		{"tracking", "usecase", modulesPrefix + "wallet/port/in", false},
		{"tracking", "usecase", modulesPrefix + "wallet/usecase", true},
		{"insights", "usecase", modulesPrefix + "tracking/domain", false},
		{"tracking", "adapter/in", modulesPrefix + "tracking/domain", true},
		{"tracking", "adapter/in", modulesPrefix + "tracking/port/in", false},
		{"wallet", "domain", modulesPrefix + "valuation/domain", false},
		{"wallet", "domain", modulesPrefix + "wallet/port/out", true},
		{"report", "service", modulesPrefix + "report/usecase", true},
	}
	for _, c := range cases {
		if got := violatesLayerRule(c.module, c.layer, c.importPath); got != c.want {
			t.Errorf("violatesLayerRule(%s, %s, %s) = %v, want %v", c.module, c.layer, c.importPath, got, c.want)
		}
	}
}
