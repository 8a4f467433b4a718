// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

// i18n-linter checks the locale files against the Go sources. It reports
// keys used in code but missing from the primary (Spanish) locale, keys the
// other locales lack, orphaned keys and literals that look untranslated.
//
// Keys built at runtime, like i18n.T("orders.filter." + s), count as a
// prefix: every locale key below it is treated as used.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Location stores the file and line number of a found string.
type Location struct {
	Filepath string
	Line     int
}

const (
	localesDir    = "internal/i18n/locales"
	primaryLocale = "active.es.yaml"
	projectRoot   = "."
)

// skipDirs are never scanned for keys.
var skipDirs = map[string]bool{"tools": true, "_examples": true, ".git": true, "vendor": true}

var (
	keyCallRe    = regexp.MustCompile(`i18n\.T\("([^"]+)"`)
	keyLiteralRe = regexp.MustCompile(`"([a-z][a-z0-9_]*(?:\.[a-z0-9_]+)+)"`)
	keyShapeRe   = regexp.MustCompile(`^[a-z][a-z0-9_]*(\.[a-z0-9_]+)+\.?$`)
)

// Report is the outcome of one lint run.
type Report struct {
	Used         map[string]struct{}
	Prefixes     []string
	Primary      map[string]struct{}
	Undefined    []string
	Orphaned     []string
	Missing      map[string][]string
	Untranslated map[string][]Location
}

// Failed reports whether the run found errors. Orphaned keys and
// untranslated literals are only warnings.
func (r Report) Failed() bool {
	if len(r.Undefined) > 0 {
		return true
	}
	for _, keys := range r.Missing {
		if len(keys) > 0 {
			return true
		}
	}
	return false
}

func main() {
	fmt.Println("🔍 Running i18n linter...")
	r, err := lint(projectRoot, filepath.Join(projectRoot, localesDir))
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	printReport(r)
	if r.Failed() {
		fmt.Println("❌ Found issues that need to be addressed.")
		os.Exit(1)
	}
	if len(r.Orphaned) > 0 {
		fmt.Println("⚠️  Found orphaned keys. Please consider removing them.")
		return
	}
	fmt.Println("✅ All translation files are consistent!")
}

func lint(root, locales string) (Report, error) {
	used, calls, prefixes, err := findUsedKeys(root)
	if err != nil {
		return Report{}, fmt.Errorf("finding used keys: %w", err)
	}
	primary, err := loadKeysFromLocale(filepath.Join(locales, primaryLocale))
	if err != nil {
		return Report{}, fmt.Errorf("loading primary locale %s: %w", primaryLocale, err)
	}
	r := Report{Used: used, Prefixes: prefixes, Primary: primary, Missing: map[string][]string{}}

	for key := range calls {
		if _, ok := primary[key]; !ok {
			r.Undefined = append(r.Undefined, key)
		}
	}
	sort.Strings(r.Undefined)

	for key := range primary {
		if _, ok := used[key]; ok || hasPrefix(key, prefixes) {
			continue
		}
		r.Orphaned = append(r.Orphaned, key)
	}
	sort.Strings(r.Orphaned)

	files, err := filepath.Glob(filepath.Join(locales, "*.yaml"))
	if err != nil {
		return r, err
	}
	for _, file := range files {
		if filepath.Base(file) == primaryLocale {
			continue
		}
		other, err := loadKeysFromLocale(file)
		if err != nil {
			return r, fmt.Errorf("loading %s: %w", file, err)
		}
		var missing []string
		for key := range primary {
			if _, ok := other[key]; !ok {
				missing = append(missing, key)
			}
		}
		sort.Strings(missing)
		r.Missing[filepath.Base(file)] = missing
	}

	r.Untranslated, err = findUntranslatedStrings(root, used, primary)
	return r, err
}

func hasPrefix(key string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}

func printReport(r Report) {
	fmt.Printf("✅ Found %d unique translation keys used in source code.\n", len(r.Used))
	fmt.Printf("✅ Loaded %d keys from primary locale (%s).\n\n", len(r.Primary), primaryLocale)

	section := func(title string, items []string, label string) {
		fmt.Printf("--- %s ---\n", title)
		if len(items) == 0 {
			fmt.Println("  ✨ None found.")
		}
		for _, k := range items {
			fmt.Printf("  - %s: %s\n", label, k)
		}
		fmt.Println()
	}
	section("Keys used in code but not defined in "+primaryLocale, r.Undefined, "Undefined")
	section("Orphaned keys (in primary locale but not used in code)", r.Orphaned, "Orphaned")

	names := make([]string, 0, len(r.Missing))
	for name := range r.Missing {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		section("Missing keys in "+name, r.Missing[name], "Missing")
	}

	fmt.Println("--- Potentially untranslated strings ---")
	if len(r.Untranslated) == 0 {
		fmt.Println("  ✨ None found.")
	}
	literals := make([]string, 0, len(r.Untranslated))
	for l := range r.Untranslated {
		literals = append(literals, l)
	}
	sort.Strings(literals)
	for _, l := range literals {
		loc := r.Untranslated[l][0]
		fmt.Printf("  - Potential: %q (found in %s:%d)\n", l, loc.Filepath, loc.Line)
	}
	fmt.Println()
}

// walkGo calls fn for every non-test Go file below root.
func walkGo(root string, fn func(path string, content []byte) error) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != root && skipDirs[info.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		return fn(path, content)
	})
}

// findUsedKeys collects the keys passed to i18n.T (calls) plus string
// literals shaped like keys (tables of keys, key fields). A key ending in "."
// is a runtime prefix. Only calls are checked against the locale; literals
// may be config keys or file names.
func findUsedKeys(root string) (keys, calls map[string]struct{}, prefixes []string, err error) {
	keys = make(map[string]struct{})
	calls = make(map[string]struct{})
	prefixSet := make(map[string]struct{})
	err = walkGo(root, func(_ string, content []byte) error {
		for _, m := range keyCallRe.FindAllStringSubmatch(string(content), -1) {
			key := m[1]
			if !keyShapeRe.MatchString(key) {
				continue
			}
			if strings.HasSuffix(key, ".") {
				prefixSet[key] = struct{}{}
				continue
			}
			keys[key] = struct{}{}
			calls[key] = struct{}{}
		}
		for _, m := range keyLiteralRe.FindAllStringSubmatch(string(content), -1) {
			keys[m[1]] = struct{}{}
		}
		return nil
	})
	for p := range prefixSet {
		prefixes = append(prefixes, p)
	}
	sort.Strings(prefixes)
	return keys, calls, prefixes, err
}

// findUntranslatedStrings scans for hardcoded strings that might need translation.
func findUntranslatedStrings(root string, usedKeys, allKeys map[string]struct{}) (map[string][]Location, error) {
	untranslated := make(map[string][]Location)
	re := regexp.MustCompile(`([a-zA-Z0-9_]+\.)?([a-zA-Z0-9_]+)\("([^"]+)"`)
	// Calls whose literals are never shown to the user.
	ignored := map[string]struct{}{
		"Print": {}, "Println": {}, "Printf": {}, "Fatal": {}, "Fatalf": {}, "WriteString": {},
		"Debugf": {}, "Infof": {}, "Warnf": {}, "Errorf": {}, "New": {}, "Getenv": {}, "Setenv": {},
		"String": {}, "Bool": {}, "Int": {}, "GetString": {}, "GetBool": {}, "GetInt": {}, "Changed": {},
		"Join": {}, "Get": {}, "Set": {}, "Sprintf": {}, "HandleFunc": {},
	}
	reAllCaps := regexp.MustCompile(`^[A-Z_]+$`)
	reFormatString := regexp.MustCompile(`^[\s%.,:;()#\d\w-]*%[\s\w-]*$`)
	sqlKeywords := []string{"SELECT ", "INSERT ", "UPDATE ", "DELETE ", "CREATE ", "ALTER ", "DROP ", "PRAGMA ", "VACUUM", "ANALYZE", "OPTIMIZE "}

	err := walkGo(root, func(path string, content []byte) error {
		for i, line := range strings.Split(string(content), "\n") {
			for _, m := range re.FindAllStringSubmatch(line, -1) {
				funcName, literal := m[2], m[3]
				if _, skip := ignored[funcName]; skip {
					continue
				}
				if _, ok := allKeys[literal]; ok {
					continue
				}
				if _, ok := usedKeys[literal]; ok || keyShapeRe.MatchString(literal) {
					continue
				}
				if len(literal) < 4 || strings.HasPrefix(literal, "http") || strings.HasPrefix(literal, "/") {
					continue
				}
				upper := strings.ToUpper(literal)
				isSQL := false
				for _, kw := range sqlKeywords {
					if strings.HasPrefix(upper, kw) {
						isSQL = true
						break
					}
				}
				if isSQL || strings.HasPrefix(literal, "2006-") || reAllCaps.MatchString(literal) {
					continue
				}
				if reFormatString.MatchString(literal) && !strings.Contains(literal, " ") {
					continue
				}
				untranslated[literal] = append(untranslated[literal], Location{Filepath: path, Line: i + 1})
			}
		}
		return nil
	})
	return untranslated, err
}

// loadKeysFromLocale reads a YAML locale and returns its keys. Flat quoted
// keys and nested maps are both accepted.
func loadKeysFromLocale(path string) (map[string]struct{}, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data map[string]interface{}
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, err
	}
	keys := make(map[string]struct{})
	flattenYAML("", data, keys)
	return keys, nil
}

// flattenYAML converts a nested map into dot-separated keys.
func flattenYAML(prefix string, node interface{}, keys map[string]struct{}) {
	switch v := node.(type) {
	case map[string]interface{}:
		for k, val := range v {
			next := k
			if prefix != "" {
				next = prefix + "." + k
			}
			flattenYAML(next, val, keys)
		}
	case []interface{}:
		for i, val := range v {
			flattenYAML(fmt.Sprintf("%s[%d]", prefix, i), val, keys)
		}
	default:
		if prefix != "" {
			keys[prefix] = struct{}{}
		}
	}
}
