// Package tui is an interactive browser for the DDNS service sections.
package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/uciweb/ddnsadmin/pkg/uci"
	"github.com/uciweb/ddnsadmin/pkg/urlparse"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	detailStyle = lipgloss.NewStyle().Padding(1, 2)
)

type serviceItem struct {
	svc uci.Service
}

func (i serviceItem) Title() string { return i.svc.Name }

func (i serviceItem) Description() string {
	state := "disabled"
	if i.svc.Enabled() {
		state = "enabled"
	}
	host := strings.TrimSpace(i.svc.Section.Get("lookup_host"))
	if host == "" {
		return state
	}
	return state + " · " + host
}

func (i serviceItem) FilterValue() string { return i.svc.Name }

type model struct {
	list       list.Model
	detail     string
	showDetail bool
}

func newModel(services []uci.Service) model {
	items := make([]list.Item, 0, len(services))
	for _, svc := range services {
		items = append(items, serviceItem{svc: svc})
	}
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "DDNS services"
	return model{list: l}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetSize(msg.Width, msg.Height-1)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			if m.showDetail {
				m.showDetail = false
				return m, nil
			}
		case "enter":
			if item, ok := m.list.SelectedItem().(serviceItem); ok {
				m.detail = renderDetail(item.svc)
				m.showDetail = true
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m model) View() string {
	if m.showDetail {
		return detailStyle.Render(m.detail) + "\n" + labelStyle.Render("esc back · q quit")
	}
	return m.list.View()
}

func renderDetail(svc uci.Service) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(svc.Name))
	b.WriteByte('\n')
	b.WriteString(labelStyle.Render("file: "))
	b.WriteString(svc.Path)
	b.WriteByte('\n')
	b.WriteString(labelStyle.Render("enabled: "))
	b.WriteString(fmt.Sprintf("%v", svc.Enabled()))
	b.WriteString("\n\n")

	keys := make([]string, 0, len(svc.Section.Options))
	for k := range svc.Section.Options {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(labelStyle.Render(k + ": "))
		b.WriteString(svc.Section.Options[k])
		b.WriteByte('\n')
	}
	for k, vs := range svc.Section.Lists {
		for _, v := range vs {
			b.WriteString(labelStyle.Render(k + "[]: "))
			b.WriteString(v)
			b.WriteByte('\n')
		}
	}

	if raw := strings.TrimSpace(svc.Section.Get("update_url")); raw != "" {
		b.WriteByte('\n')
		b.WriteString(titleStyle.Render("update_url"))
		b.WriteByte('\n')
		u := urlparse.Decompose(raw)
		writeURLPart(&b, "scheme", u.Scheme)
		writeURLPart(&b, "user", u.User)
		writeURLPart(&b, "password", u.Password)
		writeURLPart(&b, "host", u.Host)
		writeURLPart(&b, "port", u.Port)
		b.WriteString(labelStyle.Render("path: "))
		b.WriteString(u.Path)
		b.WriteByte('\n')
		writeURLPart(&b, "query", u.Query)
		writeURLPart(&b, "fragment", u.Fragment)
	}
	return b.String()
}

func writeURLPart(b *strings.Builder, name string, v *string) {
	if v == nil {
		return
	}
	b.WriteString(labelStyle.Render(name + ": "))
	b.WriteString(*v)
	b.WriteByte('\n')
}

// Run loads the services dir and opens the browser.
func Run(servicesDir string) error {
	reg := uci.NewRegistry()
	if _, err := reg.ReloadFromDir(servicesDir); err != nil {
		return fmt.Errorf("load services dir %q: %w", servicesDir, err)
	}
	services := make([]uci.Service, 0)
	for _, name := range reg.ListServiceNames() {
		if svc, ok := reg.GetService(name); ok {
			services = append(services, svc)
		}
	}
	p := tea.NewProgram(newModel(services), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui run failed: %w", err)
	}
	return nil
}
