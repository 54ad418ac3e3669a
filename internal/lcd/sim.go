package lcd

import (
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/sys/unix"

	"github.com/sylvandb/radio/internal/keymap"
	"github.com/sylvandb/radio/internal/render"
)

// DefaultHold is how long a key press counts as a held button. Terminals
// report key presses, not releases.
const DefaultHold = 200 * time.Millisecond

var (
	simOff   = colorful.Color{R: 0.12, G: 0.12, B: 0.12}
	simDark  = colorful.Color{R: 0.2, G: 0.2, B: 0.25}
	simWhite = colorful.Color{R: 1, G: 1, B: 1}

	simFrame = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	simDim = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// SimOptions configures the terminal simulator.
type SimOptions struct {
	Rows int
	Cols int
	// Hold overrides DefaultHold.
	Hold time.Duration
}

// Sim shows the display in the terminal and takes the buttons from the
// keyboard.
type Sim struct {
	mu        sync.Mutex
	lines     []string
	rows      int
	cols      int
	backlight bool
	color     [3]bool
	held      [keymap.NumButtons]time.Time // release deadline per button
	hold      time.Duration
	resolver  *keymap.Resolver
	closed    bool

	now     func() time.Time
	quit    func()
	program *tea.Program
	done    chan struct{}
	log     *slog.Logger
}

// Verify Sim implements Device at compile time.
var _ Device = (*Sim)(nil)

// OpenSim starts the simulator on the terminal. Quitting it (q, ctrl+c)
// sends SIGTERM to the process so the usual shutdown runs.
func OpenSim(opts SimOptions, log *slog.Logger) (*Sim, error) {
	s := newSim(opts, log)
	s.program = tea.NewProgram(simModel{sim: s, keys: newSimKeys(s.resolver), help: help.New()}, tea.WithAltScreen())
	s.done = make(chan struct{})
	go func() {
		defer close(s.done)
		if _, err := s.program.Run(); err != nil {
			s.log.Error("simulator", "err", err)
		}
	}()
	return s, nil
}

func newSim(opts SimOptions, log *slog.Logger) *Sim {
	if log == nil {
		log = slog.Default()
	}
	if opts.Rows <= 0 {
		opts.Rows = 2
	}
	if opts.Cols <= 0 {
		opts.Cols = 16
	}
	if opts.Hold <= 0 {
		opts.Hold = DefaultHold
	}
	return &Sim{
		lines:     make([]string, opts.Rows),
		rows:      opts.Rows,
		cols:      opts.Cols,
		backlight: true,
		color:     [3]bool{true, true, true},
		hold:      opts.Hold,
		resolver:  keymap.NewResolver(keymap.Bindings),
		now:       time.Now,
		quit:      terminate,
		log:       log,
	}
}

func terminate() {
	if err := unix.Kill(os.Getpid(), unix.SIGTERM); err != nil {
		slog.Error("raise SIGTERM", "err", err)
	}
}

type simRefreshMsg struct{}

// refresh asks the program to redraw.
func (s *Sim) refresh() {
	if s.program != nil {
		s.program.Send(simRefreshMsg{})
	}
}

func (s *Sim) Write(lines []string) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	for r := range s.rows {
		line := ""
		if r < len(lines) {
			line = lines[r]
		}
		s.lines[r] = render.Fit(line, s.cols)
	}
	s.mu.Unlock()
	s.refresh()
	return nil
}

// Buttons reports the buttons pressed within the hold window.
func (s *Sim) Buttons() (keymap.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return keymap.State{}, ErrClosed
	}
	now := s.now()
	var st keymap.State
	for b, until := range s.held {
		st[b] = now.Before(until)
	}
	return st, nil
}

func (s *Sim) press(b keymap.Button) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.held[b] = s.now().Add(s.hold)
}

func (s *Sim) SetBacklight(on bool) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.backlight = on
	s.mu.Unlock()
	s.refresh()
	return nil
}

func (s *Sim) SetColor(r, g, b bool) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	s.color = [3]bool{r, g, b}
	s.mu.Unlock()
	s.refresh()
	return nil
}

func (s *Sim) Clear() error {
	return s.Write(nil)
}

// Close stops the program and gives the terminal back.
func (s *Sim) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	if s.program != nil {
		s.program.Quit()
		<-s.done
	}
	return nil
}

// background returns the screen colour: the RGB channels lightened for
// readability, dark grey with the backlight off.
func (s *Sim) background() colorful.Color {
	if !s.backlight {
		return simOff
	}
	if s.color == [3]bool{} {
		return simDark
	}
	c := colorful.Color{R: channel(s.color[0]), G: channel(s.color[1]), B: channel(s.color[2])}
	return c.BlendRgb(simWhite, 0.4)
}

func channel(on bool) float64 {
	if on {
		return 1
	}
	return 0
}

// view renders the display, the indicator and the held buttons.
func (s *Sim) view() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	bg := s.background()
	fg := lipgloss.Color("#000000")
	if !s.backlight || s.color == [3]bool{} {
		fg = lipgloss.Color("#808080")
	}
	screen := lipgloss.NewStyle().
		Background(lipgloss.Color(bg.Hex())).
		Foreground(fg)

	var b strings.Builder
	for i, line := range s.lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(screen.Render(render.Fit(line, s.cols)))
	}

	var leds []string
	for i, name := range []string{"R", "G", "B"} {
		st := simDim
		if s.color[i] {
			c := colorful.Color{R: channel(i == 0), G: channel(i == 1), B: channel(i == 2)}
			st = lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex()))
		}
		leds = append(leds, st.Render("● "+name))
	}

	now := s.now()
	var held []string
	for bt, until := range s.held {
		if now.Before(until) {
			held = append(held, keymap.Button(bt).String())
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		simFrame.Render(b.String()),
		strings.Join(leds, "  ")+"  "+simDim.Render(strings.Join(held, " ")),
	)
}

// simKeys are the simulator's key bindings, shown in the help line.
type simKeys struct {
	buttons []key.Binding
	quit    key.Binding
}

// newSimKeys lists the buttons in dispatch order with the keys r resolves
// to each of them.
func newSimKeys(r *keymap.Resolver) simKeys {
	k := simKeys{
		quit: key.NewBinding(key.WithKeys(keymap.QuitKeys...), key.WithHelp(keymap.QuitKeys[0], "quit")),
	}
	for b := range keymap.Button(keymap.NumButtons) {
		keys := r.KeysFor(b)
		kb, ok := keymap.ForButton(b)
		if !ok || len(keys) == 0 {
			continue
		}
		k.buttons = append(k.buttons, key.NewBinding(key.WithKeys(keys...), key.WithHelp(keys[0], kb.Description)))
	}
	return k
}

func (k simKeys) ShortHelp() []key.Binding {
	return append(slices.Clone(k.buttons), k.quit)
}

func (k simKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// simModel is the bubbletea model around a Sim.
type simModel struct {
	sim  *Sim
	keys simKeys
	help help.Model
}

func (m simModel) Init() tea.Cmd { return nil }

func (m simModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.quit) {
			m.sim.quit()
			return m, nil
		}
		if b, ok := m.sim.resolver.Resolve(msg.String()); ok {
			m.sim.press(b)
			// Redraw once the hold runs out so the held list clears.
			return m, tea.Tick(m.sim.hold, func(time.Time) tea.Msg { return simRefreshMsg{} })
		}
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m simModel) View() string {
	return m.sim.view() + "\n\n" + m.help.View(m.keys)
}
