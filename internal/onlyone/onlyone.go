// Package onlyone guards named resources with advisory PID lock files so that
// only one process uses them at a time.
package onlyone

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"golang.org/x/sys/unix"
)

// DefaultDir is the runtime directory holding lock files.
const DefaultDir = "/dev/shm"

const extension = ".pid"

// ErrBusy is returned when another holder has the lock.
var ErrBusy = errors.New("resource busy")

// Locker tracks the locks held by this process.
type Locker struct {
	dir  string
	mu   sync.Mutex
	held map[string]*os.File
}

// New returns a Locker keeping lock files in dir (DefaultDir when empty).
func New(dir string) *Locker {
	if dir == "" {
		dir = DefaultDir
	}
	return &Locker{dir: dir, held: make(map[string]*os.File)}
}

// Path returns the lock file for name.
func (l *Locker) Path(name string) string {
	return filepath.Join(l.dir, name+extension)
}

// Acquire takes the lock for name and records the process id in it. A lock
// held elsewhere, including by this Locker, fails with ErrBusy.
func (l *Locker) Acquire(name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.acquire(name)
}

// AcquireUnlessHeld is Acquire, except that a lock this Locker already holds
// counts as success.
func (l *Locker) AcquireUnlessHeld(name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[name] != nil {
		return nil
	}
	return l.acquire(name)
}

func (l *Locker) acquire(name string) error {
	path := l.Path(name)
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return fmt.Errorf("open lock %s: %w", path, err)
	}

	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		f.Close()
		if errors.Is(err, unix.EWOULDBLOCK) {
			return fmt.Errorf("lock %s: %w", path, ErrBusy)
		}
		return fmt.Errorf("lock %s: %w", path, err)
	}

	if err := writePID(f); err != nil {
		f.Close()
		return fmt.Errorf("write lock %s: %w", path, err)
	}

	l.held[name] = f
	return nil
}

func writePID(f *os.File) error {
	pid := strconv.Itoa(os.Getpid()) + "\n"
	if _, err := f.WriteAt([]byte(pid), 0); err != nil {
		return err
	}
	return f.Truncate(int64(len(pid)))
}

// Held reports whether this Locker holds the lock for name.
func (l *Locker) Held(name string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.held[name] != nil
}

// Release drops the lock for name and removes its file. Releasing a lock that
// is not held does nothing.
func (l *Locker) Release(name string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f := l.held[name]
	if f == nil {
		return nil
	}
	delete(l.held, name)

	err := os.Remove(f.Name())
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("release %s: %w", name, err)
	}
	return nil
}

// ReleaseAll drops every lock held.
func (l *Locker) ReleaseAll() error {
	l.mu.Lock()
	names := make([]string, 0, len(l.held))
	for name := range l.held {
		names = append(names, name)
	}
	l.mu.Unlock()

	var errs []error
	for _, name := range names {
		errs = append(errs, l.Release(name))
	}
	return errors.Join(errs...)
}

// DeviceName names the lock for an I2C device, e.g. "i2c-1-20".
func DeviceName(bus string, addr uint16) string {
	return fmt.Sprintf("i2c-%s-%x", bus, addr)
}
