package lcd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/sylvandb/radio/internal/keymap"
	"github.com/sylvandb/radio/internal/onlyone"
)

// MCP23017 registers (IOCON.BANK = 0).
const (
	regIODIRA = 0x00
	regIODIRB = 0x01
	regIOCON  = 0x0A
	regGPPUA  = 0x0C
	regGPPUB  = 0x0D
	regGPIOA  = 0x12
	regGPIOB  = 0x13
	regOLATA  = 0x14
	regOLATB  = 0x15
)

// ioconSeqOp disables address auto-increment so a block write repeats
// the same register.
const ioconSeqOp = 0x20

// Expander pins of the Adafruit RGB LCD plate. Pins 0-7 are port A, 8-15
// port B.
const (
	pinSelect = 0
	pinRight  = 1
	pinDown   = 2
	pinUp     = 3
	pinLeft   = 4
	pinRed    = 6
	pinGreen  = 7
	pinBlue   = 8
	pinD7     = 9
	pinD6     = 10
	pinD5     = 11
	pinD4     = 12
	pinEN     = 13
	pinRW     = 14
	pinRS     = 15
)

var buttonPins = [keymap.NumButtons]uint{
	keymap.ButtonLeft:   pinLeft,
	keymap.ButtonUp:     pinUp,
	keymap.ButtonDown:   pinDown,
	keymap.ButtonRight:  pinRight,
	keymap.ButtonSelect: pinSelect,
}

// HD44780 commands.
const (
	cmdClear      = 0x01
	cmdSetDDRAM   = 0x80
	clearDelay    = 2 * time.Millisecond
	commandDelay  = 50 * time.Microsecond
	replacementCh = '?'
)

var initSequence = []byte{
	0x33, // 8-bit reset, twice
	0x32, // then 4-bit mode
	0x28, // 4-bit, 2 lines, 5x8 font
	0x0C, // display on, cursor off, blink off
	0x06, // left to right, no shift
	cmdClear,
}

var rowOffsets = []byte{0x00, 0x40, 0x14, 0x54}

// tx is one I2C transaction, satisfied by *i2c.Dev.
type tx interface {
	Tx(w, r []byte) error
}

// PlateOptions configures the RGB LCD plate.
type PlateOptions struct {
	Rows int
	Cols int
	// BacklightPin is a dedicated active-low backlight pin. Nil uses the RGB pins.
	BacklightPin *int
	// SwapGreenBlue is for boards with the two pins swapped.
	SwapGreenBlue bool
	// Sleep replaces time.Sleep in tests.
	Sleep func(time.Duration)
}

// Plate drives an HD44780 character LCD and five buttons behind an MCP23017
// port expander.
type Plate struct {
	mu     sync.Mutex
	dev    tx
	closer io.Closer
	unlock func() error
	opts   PlateOptions
	log    *slog.Logger

	latch     [2]byte // port A, port B output latches
	red       uint
	green     uint
	blue      uint
	color     [3]bool
	backlight bool
	closed    bool
}

// Verify Plate implements Device at compile time.
var _ Device = (*Plate)(nil)

// OpenPlate opens the plate on I2C bus busName at addr and holds the device
// lock for it until Close.
func OpenPlate(busName string, addr uint16, locker *onlyone.Locker, opts PlateOptions, log *slog.Logger) (*Plate, error) {
	name := onlyone.DeviceName(busName, addr)
	if err := locker.AcquireUnlessHeld(name); err != nil {
		return nil, fmt.Errorf("lock %s: %w", name, err)
	}
	unlock := func() error { return locker.Release(name) }

	if _, err := host.Init(); err != nil {
		return nil, errors.Join(fmt.Errorf("init host: %w", err), unlock())
	}
	bus, err := i2creg.Open(busName)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("open i2c bus %s: %w", busName, err), unlock())
	}

	p, err := newPlate(&i2c.Dev{Bus: bus, Addr: addr}, opts, log)
	if err != nil {
		return nil, errors.Join(err, bus.Close(), unlock())
	}
	p.closer = bus
	p.unlock = unlock
	return p, nil
}

func newPlate(dev tx, opts PlateOptions, log *slog.Logger) (*Plate, error) {
	if log == nil {
		log = slog.Default()
	}
	if opts.Rows <= 0 {
		opts.Rows = 2
	}
	if opts.Cols <= 0 {
		opts.Cols = 16
	}
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}

	p := &Plate{
		dev:   dev,
		opts:  opts,
		log:   log,
		red:   pinRed,
		green: pinGreen,
		blue:  pinBlue,
		color: [3]bool{true, true, true},
	}
	if opts.SwapGreenBlue {
		p.green, p.blue = pinBlue, pinGreen
	}
	if err := p.init(); err != nil {
		return nil, fmt.Errorf("init plate: %w", err)
	}
	return p, nil
}

func (p *Plate) init() error {
	// Port A: buttons in with pull-ups, the rest out. Port B: all out.
	var dirA byte = 0x3F
	if pin := p.opts.BacklightPin; pin != nil && *pin < 8 {
		dirA &^= 1 << uint(*pin)
	}
	writes := [][]byte{
		{regIOCON, ioconSeqOp},
		{regIODIRA, dirA},
		{regIODIRB, 0x00},
		{regGPPUA, 0x1F},
		{regGPPUB, 0x00},
	}
	for _, w := range writes {
		if err := p.dev.Tx(w, nil); err != nil {
			return err
		}
	}

	p.backlight = true
	p.setLights()
	if err := p.flushLatch(); err != nil {
		return err
	}

	for _, b := range initSequence {
		if err := p.command(b); err != nil {
			return err
		}
	}
	p.opts.Sleep(clearDelay)
	return nil
}

// setPin sets an output pin in the latch.
func (p *Plate) setPin(pin uint, high bool) {
	port, bit := pin/8, byte(1)<<(pin%8)
	if high {
		p.latch[port] |= bit
	} else {
		p.latch[port] &^= bit
	}
}

// setLights puts the colour and backlight into the latch. The LEDs are
// active low.
func (p *Plate) setLights() {
	if pin := p.opts.BacklightPin; pin != nil {
		p.setPin(uint(*pin), !p.backlight)
		p.setPin(p.red, !p.color[0])
		p.setPin(p.green, !p.color[1])
		p.setPin(p.blue, !p.color[2])
		return
	}
	c := lit(p.color)
	p.setPin(p.red, !(p.backlight && c[0]))
	p.setPin(p.green, !(p.backlight && c[1]))
	p.setPin(p.blue, !(p.backlight && c[2]))
}

// lit returns the colour shown by LEDs that double as the backlight: all
// off would leave the screen dark, so it shows white.
func lit(c [3]bool) [3]bool {
	if c == [3]bool{} {
		return [3]bool{true, true, true}
	}
	return c
}

func (p *Plate) flushLatch() error {
	if err := p.dev.Tx([]byte{regOLATA, p.latch[0]}, nil); err != nil {
		return err
	}
	return p.dev.Tx([]byte{regOLATB, p.latch[1]}, nil)
}

// nibbles encodes one byte as the port B writes that clock it into the
// controller in 4-bit mode: high nibble then low nibble, each with EN
// pulsed high then low.
func (p *Plate) nibbles(b byte, rs bool) []byte {
	base := p.latch[1] &^ (1<<(pinRS-8) | 1<<(pinRW-8) | 1<<(pinEN-8) |
		1<<(pinD4-8) | 1<<(pinD5-8) | 1<<(pinD6-8) | 1<<(pinD7-8))
	if rs {
		base |= 1 << (pinRS - 8)
	}
	out := make([]byte, 0, 4)
	for _, n := range [2]byte{b >> 4, b & 0x0F} {
		v := base
		for i, pin := range [4]uint{pinD4, pinD5, pinD6, pinD7} {
			if n&(1<<uint(i)) != 0 {
				v |= 1 << (pin - 8)
			}
		}
		out = append(out, v|1<<(pinEN-8), v)
	}
	return out
}

// send clocks data into the controller in a single block write to GPIOB.
func (p *Plate) send(data []byte, rs bool) error {
	w := make([]byte, 1, 1+4*len(data))
	w[0] = regGPIOB
	for _, b := range data {
		w = append(w, p.nibbles(b, rs)...)
	}
	return p.dev.Tx(w, nil)
}

func (p *Plate) command(b byte) error {
	if err := p.send([]byte{b}, false); err != nil {
		return err
	}
	p.opts.Sleep(commandDelay)
	return nil
}

// Write puts each line at the start of its row. Characters outside
// printable ASCII show as '?'.
func (p *Plate) Write(lines []string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}

	for row, line := range lines {
		if row >= p.opts.Rows || row >= len(rowOffsets) {
			break
		}
		if err := p.command(cmdSetDDRAM | rowOffsets[row]); err != nil {
			return err
		}
		data := make([]byte, 0, p.opts.Cols)
		for _, r := range line {
			if len(data) == p.opts.Cols {
				break
			}
			if r < 0x20 || r > 0x7E {
				r = replacementCh
			}
			data = append(data, byte(r))
		}
		if err := p.send(data, true); err != nil {
			return err
		}
	}
	return nil
}

// Buttons reads port A. The buttons pull their pins low.
func (p *Plate) Buttons() (keymap.State, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return keymap.State{}, ErrClosed
	}

	r := make([]byte, 1)
	if err := p.dev.Tx([]byte{regGPIOA}, r); err != nil {
		return keymap.State{}, err
	}
	var s keymap.State
	for b, pin := range buttonPins {
		s[b] = r[0]&(1<<pin) == 0
	}
	return s, nil
}

func (p *Plate) SetBacklight(on bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	p.backlight = on
	p.setLights()
	return p.flushLatch()
}

// SetColor sets the RGB backlight. Without a dedicated backlight pin the
// colour only shows while the backlight is on, and all off shows white.
func (p *Plate) SetColor(r, g, b bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	p.color = [3]bool{r, g, b}
	p.setLights()
	return p.flushLatch()
}

func (p *Plate) Clear() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return ErrClosed
	}
	if err := p.command(cmdClear); err != nil {
		return err
	}
	p.opts.Sleep(clearDelay)
	return nil
}

// Close turns the lights off, releases the bus and drops the device lock.
func (p *Plate) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true

	p.backlight = false
	p.color = [3]bool{}
	p.setLights()
	errs := []error{p.flushLatch()}
	if p.closer != nil {
		errs = append(errs, p.closer.Close())
	}
	if p.unlock != nil {
		errs = append(errs, p.unlock())
	}
	return errors.Join(errs...)
}
