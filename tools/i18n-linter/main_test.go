package main

import (
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadKeys_FlatAndNested(t *testing.T) {
	m := map[string]interface{}{
		"orders":               map[string]interface{}{"title": "Pedidos"},
		"api.error.status_404": "Recurso no encontrado.",
	}
	keys := make(map[string]struct{})
	flattenYAML("", m, keys)
	for _, k := range []string{"orders.title", "api.error.status_404"} {
		if _, ok := keys[k]; !ok {
			t.Fatalf("expected %s in %v", k, keys)
		}
	}

	p := filepath.Join(t.TempDir(), "active.es.yaml")
	data, _ := yaml.Marshal(m)
	writeFile(t, p, string(data))
	got, err := loadKeysFromLocale(p)
	if err != nil {
		t.Fatalf("loadKeysFromLocale: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected two keys, got %v", got)
	}
}

func TestFindUsedKeys_CallsLiteralsAndPrefixes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "tui", "orders.go"), `package tui
func f(s string){
	_ = i18n.T("orders.title")
	_ = i18n.T("orders.filter." + s)
	_ = i18n.T("api.error.status_404")
	keys := []string{"list.filtering"}
	foo("Pedido guardado")
	bar("ok")
}`)
	// Test files and the tools tree are not scanned.
	writeFile(t, filepath.Join(dir, "tui", "orders_test.go"), `package tui
var _ = i18n.T("only.in.tests")`)
	writeFile(t, filepath.Join(dir, "tools", "x.go"), `package x
var _ = i18n.T("tool.key")`)

	used, calls, prefixes, err := findUsedKeys(dir)
	if err != nil {
		t.Fatalf("findUsedKeys: %v", err)
	}
	for _, k := range []string{"orders.title", "api.error.status_404", "list.filtering"} {
		if _, ok := used[k]; !ok {
			t.Fatalf("expected %s among used keys", k)
		}
	}
	if _, ok := calls["list.filtering"]; ok {
		t.Fatalf("literals are not calls")
	}
	for _, k := range []string{"only.in.tests", "tool.key"} {
		if _, ok := used[k]; ok {
			t.Fatalf("%s should not be scanned", k)
		}
	}
	if len(prefixes) != 1 || prefixes[0] != "orders.filter." {
		t.Fatalf("unexpected prefixes %v", prefixes)
	}

	untranslated, err := findUntranslatedStrings(dir, used, map[string]struct{}{"orders.title": {}})
	if err != nil {
		t.Fatalf("findUntranslatedStrings: %v", err)
	}
	if _, ok := untranslated["Pedido guardado"]; !ok {
		t.Fatalf("expected the literal to be flagged, got %v", untranslated)
	}
	if _, ok := untranslated["ok"]; ok {
		t.Fatalf("short literals are ignored")
	}
}

func TestLint_ReportsUndefinedMissingAndOrphaned(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "core", "a.go"), `package core
func f(s string){
	_ = i18n.T("orders.title")
	_ = i18n.T("orders.saved")
	_ = i18n.T("orders.filter." + s)
}`)
	locales := filepath.Join(dir, "internal", "i18n", "locales")
	writeFile(t, filepath.Join(locales, "active.es.yaml"), `"orders.title": "Pedidos"
"orders.filter.todos": "Todos"
"orders.unused": "Sin uso"
`)
	writeFile(t, filepath.Join(locales, "active.en.yaml"), `"orders.title": "Orders"
"orders.unused": "Unused"
`)

	r, err := lint(dir, locales)
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if len(r.Undefined) != 1 || r.Undefined[0] != "orders.saved" {
		t.Fatalf("unexpected undefined keys %v", r.Undefined)
	}
	if len(r.Orphaned) != 1 || r.Orphaned[0] != "orders.unused" {
		t.Fatalf("prefixed keys are used, only orders.unused is orphaned: %v", r.Orphaned)
	}
	if m := r.Missing["active.en.yaml"]; len(m) != 1 || m[0] != "orders.filter.todos" {
		t.Fatalf("unexpected missing keys %v", m)
	}
	if !r.Failed() {
		t.Fatalf("undefined and missing keys fail the run")
	}
}
