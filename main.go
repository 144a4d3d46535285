package main

import (
	"fmt"
	"log"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

func main() {
	cfg, cfgErr := loadConfig()
	logFile, err := setupLogging(cfg)
	if err != nil {
		log.Fatal(err)
	}
	if logFile != nil {
		defer logFile.Close()
	}

	m := initialModel(cfg)
	if cfgErr != nil {
		Logger().Warn("config", "err", cfgErr)
		m.errorMessage = cfgErr.Error()
	}

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

type model struct {
	width          int
	height         int
	cfg            *Config
	editor         *Editor
	canvas         *Canvas
	help           bool
	helpScroll     int
	errorMessage   string
	successMessage string
}

func initialModel(cfg *Config) *model {
	return &model{
		cfg:    cfg,
		editor: NewEditor(cfg, NewSurface),
		canvas: NewCanvas(cfg.PixelsPerColumn, NewSurface),
	}
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.canvas.Resize(m.width, m.height-1)
		m.editor.SetViewport(m.canvas.FrameSize())
		return m, nil

	case tea.MouseMsg:
		if m.help {
			return m, nil
		}
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		if m.help {
			return m.handleHelpKey(msg.String()), nil
		}
		return m.handleKey(msg.String())
	}
	return m, nil
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	pos := m.canvas.ScreenToPixel(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.editor.HandleScroll(ScrollEvent{Pos: pos, Delta: 1})
			return
		case tea.MouseButtonWheelDown:
			m.editor.HandleScroll(ScrollEvent{Pos: pos, Delta: -1})
			return
		}
		m.clearMessages()
		m.editor.HandlePointer(PointerEvent{Pos: pos, Button: pointerButton(msg.Button), Action: PointerPress, Shift: msg.Shift})
	case tea.MouseActionRelease:
		m.editor.HandlePointer(PointerEvent{Pos: pos, Button: pointerButton(msg.Button), Action: PointerRelease, Shift: msg.Shift})
	case tea.MouseActionMotion:
		action := PointerMove
		if msg.Button != tea.MouseButtonNone {
			action = PointerDrag
		}
		m.editor.HandlePointer(PointerEvent{Pos: pos, Button: pointerButton(msg.Button), Action: action, Shift: msg.Shift})
	}
}

func pointerButton(b tea.MouseButton) PointerButton {
	switch b {
	case tea.MouseButtonLeft:
		return ButtonLeft
	case tea.MouseButtonMiddle:
		return ButtonMiddle
	case tea.MouseButtonRight:
		return ButtonRight
	default:
		return ButtonNone
	}
}

func (m *model) clearMessages() {
	m.errorMessage = ""
	m.successMessage = ""
}

func (m *model) handleKey(key string) (tea.Model, tea.Cmd) {
	m.clearMessages()
	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "?":
		m.help = true
		m.helpScroll = 0
		return m, nil
	case "ctrl+s":
		m.exportPNG()
		return m, nil
	}
	if msg, ok := m.editor.HandleKey(key); ok {
		m.successMessage = msg
	}
	return m, nil
}

func (m *model) exportPNG() {
	filename, err := m.cfg.GetExportPath(fmt.Sprintf("infinipix-%d.png", time.Now().Unix()))
	if err == nil {
		err = m.editor.ExportPNG(filename)
	}
	if err != nil {
		m.errorMessage = err.Error()
		return
	}
	m.successMessage = fmt.Sprintf("Exported %s", filename)
}

func (m *model) handleHelpKey(key string) tea.Model {
	switch key {
	case "esc", "q", "?":
		m.help = false
		m.helpScroll = 0
	case "j", "down":
		maxScroll := max(len(helpLines)-max(m.height-1, 1), 0)
		if m.helpScroll < maxScroll {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	default:
		m.help = false
		m.helpScroll = 0
	}
	return m
}

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Background(lipgloss.Color("236"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Background(lipgloss.Color("236"))
)

func (m *model) View() string {
	if m.help {
		return m.helpView()
	}
	if m.width < 1 || m.height < 1 {
		return ""
	}

	var result strings.Builder
	for _, line := range m.canvas.Render(m.editor) {
		result.WriteString(line)
		result.WriteString("\n")
	}
	result.WriteString(m.statusLine())
	return result.String()
}

func (m *model) statusLine() string {
	e := m.editor
	swatch := lipgloss.NewStyle().Background(lipgloss.Color(hexColor(e.Color))).Render("  ")

	status := fmt.Sprintf("Mode: %s | %s | Zoom: %.0f%% | Origin: (%.1f,%.1f)",
		e.Mode, hexColor(e.Color), e.Camera.Zoom*100, e.Camera.Origin.X, e.Camera.Origin.Y)
	if n := e.Selection.Len(); n > 0 {
		r, _ := e.Selection.Rect()
		status += fmt.Sprintf(" | Sel: %d cells %dx%d", n, r.Width(), r.Height())
	}
	if id := e.Groups.Selected(); id != 0 {
		if g, ok := e.Groups.Get(id); ok {
			status += fmt.Sprintf(" | %s", g.Name)
		}
	}
	status += fmt.Sprintf(" | Undo: %d/%d", e.History.Len(), e.History.Cap())

	style := statusStyle
	switch {
	case m.errorMessage != "":
		status += fmt.Sprintf(" | ERROR: %s", m.errorMessage)
		style = errorStyle
	case m.successMessage != "":
		status += fmt.Sprintf(" | %s", m.successMessage)
	default:
		status += " | ? for help | q to quit"
	}

	width := max(m.width-3, 1)
	return swatch + " " + style.Render(truncate.StringWithTail(status, uint(width), "…"))
}

var helpLines = []string{
	"infinipix Help",
	"==============",
	"",
	"Tools:",
	"------",
	"  b                Paint (right button erases)",
	"  e                Erase",
	"  h/Space          Pan (middle button pans in every tool)",
	"  v                Select",
	"",
	"Select Tool:",
	"------------",
	"  drag             Select the painted cells inside the rectangle",
	"  Shift+drag       Add to the selection",
	"  Shift+click      Add one painted cell",
	"  drag selection   Move the selected cells",
	"  Esc              Cancel the drag or move, or clear the selection",
	"",
	"Editing:",
	"--------",
	"  c                Copy selection",
	"  x                Cut selection",
	"  p                Paste at the pointer",
	"  Delete/Backspace Delete selection",
	"  u/Ctrl+z         Undo",
	"  U/Ctrl+y         Redo",
	"",
	"Groups:",
	"-------",
	"  g                Group the selection",
	"  Tab              Select the next group",
	"  G                Ungroup",
	"  Ctrl+d           Delete the selected group and its cells",
	"",
	"Colors:",
	"-------",
	"  1-8              Pick a color from the palette row",
	"  [ ]              Previous/next palette row",
	"  { }              Step through the extended palette",
	"",
	"View:",
	"-----",
	"  wheel            Zoom around the pointer",
	"  +/-              Zoom around the center",
	"  0                Reset zoom",
	"  ←/↓/↑/→          Pan (Shift for faster)",
	"  #                Toggle grid lines",
	"",
	"General:",
	"--------",
	"  Ctrl+s           Export PNG",
	"  ?                Toggle this help screen",
	"  q/Ctrl+c         Quit",
}

func (m *model) helpView() string {
	visibleHeight := max(m.height-1, 1)
	startLine := min(m.helpScroll, max(len(helpLines)-visibleHeight, 0))
	endLine := min(startLine+visibleHeight, len(helpLines))

	result := strings.Join(helpLines[startLine:endLine], "\n")
	statusLine := fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, Esc to close",
		startLine+1, endLine, len(helpLines))
	return result + "\n" + statusLine
}
