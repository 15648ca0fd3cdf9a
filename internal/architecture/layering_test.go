package architecture_test

import (
	"bufio"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// goModulePath reads the module path so the rules follow a rename.
func goModulePath(t *testing.T) string {
	t.Helper()
	f, err := os.Open(filepath.Join("..", "..", "go.mod"))
	if err != nil {
		t.Fatalf("open go.mod: %v", err)
	}
	defer func() { _ = f.Close() }()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if rest, ok := strings.CutPrefix(strings.TrimSpace(scanner.Text()), "module "); ok {
			return strings.TrimSpace(rest)
		}
	}
	t.Fatalf("go.mod has no module line")
	return ""
}

// walkImports calls visit for every internal import of the non-test files
// under root.
func walkImports(t *testing.T, root, prefix string, visit func(file, importPath string)) {
	t.Helper()
	fset := token.NewFileSet()
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
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
		for _, imp := range node.Imports {
			importPath := strings.Trim(imp.Path.Value, `"`)
			if strings.HasPrefix(importPath, prefix) {
				visit(filepath.ToSlash(path), importPath)
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("walk %s: %v", root, err)
	}
}

func TestModulesImportOtherModulesThroughPorts(t *testing.T) {
	t.Parallel()
	prefix := goModulePath(t) + "/internal/modules/"
	walkImports(t, filepath.Join("..", "modules"), prefix, func(file, importPath string) {
		module, layer := moduleName(file), detectLayer(file)
		if module == "" || layer == "" {
			return
		}
		if violatesLayerRule(module, layer, importPath) {
			t.Errorf("forbidden import in %s (%s): %s", file, layer, importPath)
		}
	})
}

func TestPlatformStaysBelowModules(t *testing.T) {
	t.Parallel()
	base := goModulePath(t) + "/internal/"
	walkImports(t, filepath.Join("..", "platform"), base, func(file, importPath string) {
		if !strings.HasPrefix(importPath, base+"platform/") {
			t.Errorf("platform package %s imports %s", file, importPath)
		}
	})
}

func TestLayerRule(t *testing.T) {
	t.Parallel()
	cases := []struct {
		module, layer, importPath string
		forbidden                 bool
	}{
		{"analytics", "adapter/out", "retrolog/internal/modules/journal/port/in", false},
		{"analytics", "adapter/out", "retrolog/internal/modules/journal/dto", false},
		{"analytics", "adapter/out", "retrolog/internal/modules/journal/service", true},
		{"analytics", "service", "retrolog/internal/modules/analytics/adapter/out", true},
		{"analytics", "service", "retrolog/internal/modules/analytics/port/out", false},
		{"analytics", "adapter/in", "retrolog/internal/modules/analytics/domain", true},
		{"analytics", "domain", "retrolog/internal/modules/analytics/usecase", true},
		{"journal", "usecase", "retrolog/internal/modules/tags/usecase", true},
		{"journal", "usecase", "retrolog/internal/modules/tags/port/in", false},
	}
	for _, tc := range cases {
		if got := violatesLayerRule(tc.module, tc.layer, tc.importPath); got != tc.forbidden {
			t.Fatalf("%s/%s importing %s: forbidden=%v, want %v", tc.module, tc.layer, tc.importPath, got, tc.forbidden)
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

// violatesLayerRule: another module is reachable only through port/in and
// dto; inside a module, inner layers never import outer ones.
func violatesLayerRule(module, layer, importPath string) bool {
	if !strings.Contains(importPath, "/internal/modules/"+module+"/") {
		return !isPortIn(importPath) && !isDTO(importPath)
	}
	switch layer {
	case "adapter/in":
		return !isPortIn(importPath) && !isDTO(importPath)
	case "usecase":
		return strings.Contains(importPath, "/adapter/")
	case "service":
		return strings.Contains(importPath, "/adapter/") || strings.Contains(importPath, "/usecase/")
	case "domain":
		return strings.Contains(importPath, "/adapter/") || strings.Contains(importPath, "/usecase/") || strings.Contains(importPath, "/service/")
	default:
		return false
	}
}
