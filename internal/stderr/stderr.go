//go:build linux

// Package stderr moves writes to file descriptor 2 into the log while the
// terminal simulator owns the screen, so stray output does not corrupt it.
package stderr

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

// Capture is an active redirection of fd 2.
type Capture struct {
	orig int
	r    *os.File
	w    *os.File
	done chan struct{}
}

// Start redirects fd 2 to a pipe and logs every non-empty line at warn
// level. The program can carry on without capture when it fails.
func Start(log *slog.Logger) (*Capture, error) {
	if log == nil {
		log = slog.Default()
	}
	fd := int(os.Stderr.Fd())

	r, w, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("pipe: %w", err)
	}
	orig, err := unix.Dup(fd)
	if err != nil {
		r.Close()
		w.Close()
		return nil, fmt.Errorf("dup stderr: %w", err)
	}
	if err := unix.Dup3(int(w.Fd()), fd, 0); err != nil {
		unix.Close(orig)
		r.Close()
		w.Close()
		return nil, fmt.Errorf("redirect stderr: %w", err)
	}

	c := &Capture{orig: orig, r: r, w: w, done: make(chan struct{})}
	go func() {
		defer close(c.done)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				log.Warn("stderr", "line", line)
			}
		}
	}()
	return c, nil
}

// Stop restores fd 2 and waits for the captured output to be logged.
func (c *Capture) Stop() {
	if c == nil {
		return
	}
	_ = unix.Dup3(c.orig, int(os.Stderr.Fd()), 0)
	_ = unix.Close(c.orig)
	c.w.Close()
	<-c.done
	c.r.Close()
}
