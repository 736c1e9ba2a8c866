package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbletea"

	"github.com/opslake/subregops/internal/domain/entity"
	"github.com/opslake/subregops/internal/domain/service"
	"github.com/opslake/subregops/internal/domain/valueobject"
)

type tuiView int

const (
	tuiViewDomains tuiView = iota
	tuiViewRecords
)

type zoneLoadedMsg struct {
	domain  string
	records []entity.DNSRecord
	err     error
}

type spinnerTickMsg struct{}

type tuiModel struct {
	app *App

	view          tuiView
	domains       []string
	domainCursor  int
	recordCursor  int
	currentDomain string
	records       []entity.DNSRecord

	// drift against zones.yaml, keyed by record identity
	drift   map[string]valueobject.ChangeType
	missing []entity.DNSRecord

	loading      bool
	spinnerIndex int
	errorMessage string
	width        int
	height       int
}

func newTUIModel(app *App) tuiModel {
	m := tuiModel{
		app:    app,
		view:   tuiViewDomains,
		width:  80,
		height: 24,
	}
	for _, z := range app.Config.Zones {
		m.domains = append(m.domains, z.Domain)
	}
	return m
}

func (m tuiModel) Init() tea.Cmd {
	return nil
}

func (m tuiModel) loadZone(domainName string) tea.Cmd {
	return func() tea.Msg {
		records, err := m.app.Registrar.GetDNSZone(context.Background(), domainName)
		return zoneLoadedMsg{domain: domainName, records: records, err: err}
	}
}

func spinnerTick() tea.Cmd {
	return tea.Tick(100*time.Millisecond, func(time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinnerTickMsg:
		if !m.loading {
			return m, nil
		}
		m.spinnerIndex = (m.spinnerIndex + 1) % len(SpinnerFrames)
		return m, spinnerTick()

	case zoneLoadedMsg:
		m.loading = false
		if msg.err != nil {
			m.errorMessage = msg.err.Error()
			return m, nil
		}
		m.errorMessage = ""
		m.currentDomain = msg.domain
		m.records = msg.records
		m.recordCursor = 0
		m.computeDrift()
		m.view = tuiViewRecords
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// computeDrift diffs the loaded zone against its declaration in zones.yaml so
// the record view can flag what plan/apply would change. Zones not declared in
// the config are shown without markers.
func (m *tuiModel) computeDrift() {
	m.drift = nil
	m.missing = nil

	zone, declared := m.app.Config.GetZoneMap()[m.currentDomain]
	if !declared {
		return
	}

	plan := valueobject.NewPlan()
	service.NewDiffer().DiffZone(plan, m.currentDomain, zone.FlattenRecords(), m.records)

	m.drift = make(map[string]valueobject.ChangeType)
	for _, ch := range plan.Changes() {
		switch ch.Type() {
		case valueobject.ChangeTypeCreate:
			if rec, ok := ch.NewState().(*entity.DNSRecord); ok {
				m.missing = append(m.missing, *rec)
			}
		case valueobject.ChangeTypeUpdate, valueobject.ChangeTypeDelete:
			if rec, ok := ch.OldState().(*entity.DNSRecord); ok {
				m.drift[rec.Key()] = ch.Type()
			}
		}
	}
}

func (m tuiModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "esc":
		if m.view == tuiViewRecords {
			m.view = tuiViewDomains
			m.errorMessage = ""
			return m, nil
		}
		return m, tea.Quit

	case "up", "k":
		if m.view == tuiViewDomains && m.domainCursor > 0 {
			m.domainCursor--
		} else if m.view == tuiViewRecords && m.recordCursor > 0 {
			m.recordCursor--
		}
		return m, nil

	case "down", "j":
		if m.view == tuiViewDomains && m.domainCursor < len(m.domains)-1 {
			m.domainCursor++
		} else if m.view == tuiViewRecords && m.recordCursor < len(m.records)-1 {
			m.recordCursor++
		}
		return m, nil

	case "enter":
		if m.view == tuiViewDomains && len(m.domains) > 0 && !m.loading {
			m.loading = true
			m.errorMessage = ""
			return m, tea.Batch(m.loadZone(m.domains[m.domainCursor]), spinnerTick())
		}
		return m, nil

	case "r":
		if m.loading {
			return m, nil
		}
		m.loading = true
		m.errorMessage = ""
		if m.view == tuiViewRecords {
			return m, tea.Batch(m.loadZone(m.currentDomain), spinnerTick())
		}
		if len(m.domains) > 0 {
			return m, tea.Batch(m.loadZone(m.domains[m.domainCursor]), spinnerTick())
		}
		m.loading = false
		return m, nil
	}
	return m, nil
}

func (m tuiModel) View() string {
	var sb strings.Builder

	sb.WriteString(TitleStyle.Render("subregops"))
	sb.WriteString("\n\n")

	if m.loading {
		sb.WriteString(LoadingStyle.Render(SpinnerFrames[m.spinnerIndex] + " loading zone..."))
		sb.WriteString("\n\n")
	}
	if m.errorMessage != "" {
		sb.WriteString(ErrorStyle.Render("error: " + m.errorMessage))
		sb.WriteString("\n\n")
	}

	switch m.view {
	case tuiViewDomains:
		m.renderDomains(&sb)
	case tuiViewRecords:
		m.renderRecords(&sb)
	}

	return BaseStyle.Render(sb.String())
}

func (m tuiModel) renderDomains(sb *strings.Builder) {
	sb.WriteString("Zones:\n")
	if len(m.domains) == 0 {
		sb.WriteString(HelpStyle.Render("  no zones declared in zones.yaml"))
		sb.WriteString("\n")
	}
	for i, d := range m.domains {
		line := "  " + d
		if i == m.domainCursor {
			line = SelectedStyle.Render("> " + d)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	sb.WriteString(HelpStyle.Render("↑/↓ navigate · enter open zone · q quit"))
}

func (m tuiModel) renderRecords(sb *strings.Builder) {
	sb.WriteString(SuccessStyle.Render(m.currentDomain))
	sb.WriteString(fmt.Sprintf("  (%d records)\n", len(m.records)))
	if len(m.records) == 0 {
		sb.WriteString(HelpStyle.Render("  empty zone"))
		sb.WriteString("\n")
	}
	for i := range m.records {
		r := &m.records[i]
		marker := " "
		switch m.drift[r.Key()] {
		case valueobject.ChangeTypeUpdate:
			marker = WarningStyle.Render("~")
		case valueobject.ChangeTypeDelete:
			marker = ErrorStyle.Render("-")
		}
		line := marker + " " + m.formatRecord(r)
		if i == m.recordCursor {
			line = SelectedStyle.Render("> " + m.formatRecord(r))
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	for i := range m.missing {
		sb.WriteString(SuccessStyle.Render("+"))
		sb.WriteString(" " + m.formatRecord(&m.missing[i]))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	if len(m.drift) > 0 || len(m.missing) > 0 {
		sb.WriteString(HelpStyle.Render("~ drifted · - undeclared · + missing from zone"))
		sb.WriteString("\n")
	}
	sb.WriteString(HelpStyle.Render("↑/↓ navigate · r refresh · esc back · q quit"))
}

func (m tuiModel) formatRecord(r *entity.DNSRecord) string {
	prio := ""
	if r.Type == entity.DNSRecordTypeMX || r.Type == entity.DNSRecordTypeSRV {
		prio = fmt.Sprintf(" %d", r.Prio)
	}
	return fmt.Sprintf("%s %-20s %s%s  (ttl %d)",
		RecordTypeStyle.Render(fmt.Sprintf("%-6s", r.Type)),
		r.Host(), r.Content, prio, r.TTL)
}

func runTUI() {
	app := mustLoadApp()
	program := tea.NewProgram(newTUIModel(app), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fatalf("Error running UI: %v", err)
	}
}
