package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/toeirei/panaderia/internal/i18n"
	"github.com/toeirei/panaderia/internal/logging"
	"github.com/toeirei/panaderia/util/mapst"
)

// languageChangedMsg signals that the UI must be rebuilt with new strings.
type languageChangedMsg struct{ err error }

// languageModel holds the state for the language selection menu.
type languageModel struct {
	app         *app
	choices     map[string]string // map of lang code to display name
	orderedKeys []string          // for stable iteration
	cursor      int
}

// newLanguageModel creates a new model for the language selection view.
func newLanguageModel(a *app) languageModel {
	choices := i18n.GetAvailableLocales()
	keys := mapst.SortedKeys(choices)

	m := languageModel{app: a, choices: choices, orderedKeys: keys}
	current := i18n.GetLang()
	for i, k := range keys {
		if k == current {
			m.cursor = i
		}
	}
	return m
}

func (m languageModel) Update(msg tea.Msg) (languageModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.String() {
	case "q", "esc":
		return m, func() tea.Msg { return backToMenuMsg{} }
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.orderedKeys)-1 {
			m.cursor++
		}
	case "enter":
		if len(m.orderedKeys) == 0 {
			return m, nil
		}
		lang := m.orderedKeys[m.cursor]
		i18n.SetLang(lang)
		save := m.app.opts.SaveLanguage
		return m, func() tea.Msg {
			if save == nil {
				return languageChangedMsg{}
			}
			err := save(lang)
			if err != nil {
				logging.Warnf("language: could not persist %q: %v", lang, err)
			}
			return languageChangedMsg{err: err}
		}
	}
	return m, nil
}

// View for languageModel.
func (m languageModel) View() string {
	title := mainTitleStyle.Render("🌐 " + i18n.T("menu.language"))

	listItems := []string{titleStyle.Render(i18n.T("language.select")), ""}
	for i, langCode := range m.orderedKeys {
		displayName := m.choices[langCode]
		if m.cursor == i {
			listItems = append(listItems, selectedItemStyle.Render("▸ "+displayName))
		} else {
			listItems = append(listItems, itemStyle.Render("  "+displayName))
		}
	}
	listPane := paneStyle.Width(60).Render(lipgloss.JoinVertical(lipgloss.Left, listItems...))
	helpLine := renderFooter(i18n.T("language.help"), "", 60)

	return lipgloss.JoinVertical(lipgloss.Left, title, "", listPane, "", helpLine)
}
