package lcd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"

	"github.com/sylvandb/radio/internal/keymap"
)

// Matrix Orbital command set.
const (
	moPrefix        = 0xFE
	moClear         = 0x58
	moHome          = 0x48
	moBacklightOn   = 0x42
	moBacklightOff  = 0x46
	moColor         = 0xD0
	moCursor        = 0x47
	moAutoScrollOff = 0x52
	moAutoKeys      = 0x41
	moKeyMode       = 0x7E
	moKeyUpDown     = 0x01

	// Key up codes are the key down code plus keyRelease.
	keyRelease = 0x20
)

// PortAuto picks the first USB serial port.
const PortAuto = "auto"

// DefaultKeys maps the keypad's key down codes to buttons.
var DefaultKeys = map[string]string{
	"A": "Up",
	"B": "Down",
	"C": "Left",
	"D": "Right",
	"E": "Select",
}

// BackpackOptions configures a serial LCD backpack.
type BackpackOptions struct {
	Port string
	Baud int
	Rows int
	Cols int
	// Keys maps key down codes (a character or a number like "0x41") to
	// button names.
	Keys map[string]string
}

// Backpack drives a serial LCD backpack with a keypad. A reader goroutine
// tracks the keypad from its key down/up codes.
type Backpack struct {
	mu      sync.Mutex
	port    io.ReadWriteCloser
	keys    map[byte]keymap.Button
	state   keymap.State
	readErr error
	closed  bool
	done    chan struct{}
	rows    int
	cols    int
	log     *slog.Logger
}

// Verify Backpack implements Device at compile time.
var _ Device = (*Backpack)(nil)

// OpenBackpack opens the serial port and sets up the display and keypad.
func OpenBackpack(opts BackpackOptions, log *slog.Logger) (*Backpack, error) {
	name := opts.Port
	if name == "" || name == PortAuto {
		found, err := findPort()
		if err != nil {
			return nil, err
		}
		name = found
	}
	baud := opts.Baud
	if baud <= 0 {
		baud = 9600
	}

	port, err := serial.Open(name, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	b, err := newBackpack(port, opts, log)
	if err != nil {
		return nil, errors.Join(err, port.Close())
	}
	return b, nil
}

// findPort returns the first USB serial port.
func findPort() (string, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return "", fmt.Errorf("list serial ports: %w", err)
	}
	for _, p := range ports {
		if p.IsUSB {
			return p.Name, nil
		}
	}
	return "", errors.New("no USB serial port found")
}

func newBackpack(port io.ReadWriteCloser, opts BackpackOptions, log *slog.Logger) (*Backpack, error) {
	if log == nil {
		log = slog.Default()
	}
	keys, err := parseKeys(opts.Keys)
	if err != nil {
		return nil, err
	}
	b := &Backpack{
		port: port,
		keys: keys,
		done: make(chan struct{}),
		rows: opts.Rows,
		cols: opts.Cols,
		log:  log,
	}
	if b.rows <= 0 {
		b.rows = 2
	}
	if b.cols <= 0 {
		b.cols = 16
	}

	setup := [][]byte{
		{moPrefix, moAutoScrollOff},
		{moPrefix, moAutoKeys},
		{moPrefix, moKeyMode, moKeyUpDown},
		{moPrefix, moClear},
		{moPrefix, moBacklightOn, 0},
		{moPrefix, moColor, 0xFF, 0xFF, 0xFF},
	}
	for _, cmd := range setup {
		if _, err := port.Write(cmd); err != nil {
			return nil, fmt.Errorf("init backpack: %w", err)
		}
	}

	go b.read()
	return b, nil
}

// parseKeys turns the key table into codes. An empty table uses DefaultKeys.
func parseKeys(table map[string]string) (map[byte]keymap.Button, error) {
	if len(table) == 0 {
		table = DefaultKeys
	}
	keys := make(map[byte]keymap.Button, len(table))
	for code, name := range table {
		button, ok := keymap.ParseButton(name)
		if !ok {
			return nil, fmt.Errorf("key %q: unknown button %q", code, name)
		}
		c, err := parseKeyCode(code)
		if err != nil {
			return nil, err
		}
		if c >= 0x80-keyRelease {
			return nil, fmt.Errorf("key %q: code out of range", code)
		}
		keys[c] = button
	}
	return keys, nil
}

func parseKeyCode(s string) (byte, error) {
	if len(s) == 1 {
		return s[0], nil
	}
	n, err := strconv.ParseUint(s, 0, 8)
	if err != nil {
		return 0, fmt.Errorf("key %q: %w", s, err)
	}
	return byte(n), nil
}

// read follows the keypad until the port closes.
func (b *Backpack) read() {
	defer close(b.done)
	buf := make([]byte, 16)
	for {
		n, err := b.port.Read(buf)
		if n > 0 {
			b.mu.Lock()
			for _, c := range buf[:n] {
				b.keyCode(c)
			}
			b.mu.Unlock()
		}
		if err != nil {
			b.mu.Lock()
			if !b.closed {
				b.readErr = err
				b.log.Warn("keypad read", "err", err)
			}
			b.mu.Unlock()
			return
		}
	}
}

// keyCode applies one code from the keypad. Called with mu held.
func (b *Backpack) keyCode(c byte) {
	if button, ok := b.keys[c]; ok {
		b.state[button] = true
		return
	}
	if c >= keyRelease {
		if button, ok := b.keys[c-keyRelease]; ok {
			b.state[button] = false
			return
		}
	}
	b.log.Debug("unknown key code", "code", c)
}

func (b *Backpack) command(args ...byte) error {
	_, err := b.port.Write(append([]byte{moPrefix}, args...))
	return err
}

// Write moves the cursor to the start of each row and writes the line,
// padded or cut to the width.
func (b *Backpack) Write(lines []string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}

	for row, line := range lines {
		if row >= b.rows {
			break
		}
		if err := b.command(moCursor, 1, byte(row+1)); err != nil {
			return err
		}
		text := make([]byte, 0, b.cols)
		for _, r := range line {
			if len(text) == b.cols {
				break
			}
			if r < 0x20 || r > 0x7E {
				r = replacementCh
			}
			text = append(text, byte(r))
		}
		text = append(text, strings.Repeat(" ", b.cols-len(text))...)
		if _, err := b.port.Write(text); err != nil {
			return err
		}
	}
	return nil
}

// Buttons returns the keypad state. A failed reader reports its error.
func (b *Backpack) Buttons() (keymap.State, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return keymap.State{}, ErrClosed
	}
	if b.readErr != nil {
		return keymap.State{}, b.readErr
	}
	return b.state, nil
}

func (b *Backpack) SetBacklight(on bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	if on {
		return b.command(moBacklightOn, 0)
	}
	return b.command(moBacklightOff)
}

// SetColor tints the RGB backlight. All off shows white, since the same
// LEDs light the screen.
func (b *Backpack) SetColor(r, g, bl bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	c := lit([3]bool{r, g, bl})
	return b.command(moColor, level(c[0]), level(c[1]), level(c[2]))
}

func level(on bool) byte {
	if on {
		return 0xFF
	}
	return 0
}

func (b *Backpack) Clear() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return ErrClosed
	}
	if err := b.command(moClear); err != nil {
		return err
	}
	return b.command(moHome)
}

// Close switches the backlight off, closes the port and waits for the
// reader to stop.
func (b *Backpack) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	offErr := b.command(moBacklightOff)
	b.mu.Unlock()

	err := errors.Join(offErr, b.port.Close())
	<-b.done
	return err
}
