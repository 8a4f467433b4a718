// Copyright (c) 2026 ToeiRei
// Panadería Admin - bakery back-office console
// This source code is licensed under the MIT license found in the LICENSE file.

// package i18n provides the translated messages of the console. Spanish is
// the primary language; every user-facing string, including the error texts
// mapped from backend status codes, is looked up here.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// DefaultLang is used when no language is configured.
const DefaultLang = "es"

//go:embed locales/*.yaml
var localeFS embed.FS

var (
	mu        sync.RWMutex
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	current   string
)

func loadBundle() *i18n.Bundle {
	b := i18n.NewBundle(language.Spanish)
	b.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	files, _ := fs.ReadDir(localeFS, "locales")
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data, err := localeFS.ReadFile("locales/" + f.Name())
		if err != nil {
			continue
		}
		_, _ = b.ParseMessageFileBytes(data, f.Name())
	}
	return b
}

// Init loads the embedded locales and activates lang.
func Init(lang string) {
	if lang == "" {
		lang = DefaultLang
	}
	mu.Lock()
	defer mu.Unlock()
	if bundle == nil {
		bundle = loadBundle()
	}
	localizer = i18n.NewLocalizer(bundle, lang)
	current = lang
}

// SetLang switches the active language.
func SetLang(lang string) {
	Init(lang)
}

// GetLang returns the active language code.
func GetLang() string {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// GetAvailableLocales returns the embedded locales keyed by language code,
// with each locale's own display name as value.
func GetAvailableLocales() map[string]string {
	mu.Lock()
	if bundle == nil {
		bundle = loadBundle()
	}
	b := bundle
	mu.Unlock()

	out := make(map[string]string)
	files, _ := fs.ReadDir(localeFS, "locales")
	for _, f := range files {
		name := f.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".yaml") {
			continue
		}
		code := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".yaml")
		l := i18n.NewLocalizer(b, code)
		display, err := l.Localize(&i18n.LocalizeConfig{MessageID: "language.name"})
		if err != nil || display == "" {
			display = code
		}
		out[code] = display
	}
	return out
}

// T translates messageID. A single map argument is used as template data;
// any other arguments are applied to the message with fmt.Sprintf. Unknown
// IDs are returned unchanged.
func T(messageID string, args ...any) string {
	mu.RLock()
	l := localizer
	mu.RUnlock()
	if l == nil {
		Init(DefaultLang)
		mu.RLock()
		l = localizer
		mu.RUnlock()
	}

	cfg := &i18n.LocalizeConfig{MessageID: messageID}
	if len(args) == 1 {
		if data, ok := args[0].(map[string]any); ok {
			cfg.TemplateData = data
			args = nil
		}
	}
	msg, err := l.Localize(cfg)
	if err != nil {
		return messageID
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}
