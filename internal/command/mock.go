package command

import (
	"context"
	"strings"
	"sync"
)

// Mock is a test double for Runner. Responses are keyed by the space-joined
// argv; unknown commands succeed with no output.
type Mock struct {
	mu        sync.Mutex
	responses map[string][]string
	errors    map[string]error
	calls     [][]string
}

// NewMock creates an empty mock runner.
func NewMock() *Mock {
	return &Mock{
		responses: make(map[string][]string),
		errors:    make(map[string]error),
	}
}

// Verify Mock implements Runner at compile time.
var _ Runner = (*Mock)(nil)

// Respond sets the output lines for argv.
func (m *Mock) Respond(lines []string, argv ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses[strings.Join(argv, " ")] = lines
}

// Fail makes argv return err.
func (m *Mock) Fail(err error, argv ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[strings.Join(argv, " ")] = err
}

func (m *Mock) Lines(ctx context.Context, argv ...string) []string {
	lines, err := m.Run(ctx, argv...)
	if err != nil {
		return nil
	}
	return lines
}

func (m *Mock) Run(_ context.Context, argv ...string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, append([]string(nil), argv...))
	key := strings.Join(argv, " ")
	if err, ok := m.errors[key]; ok {
		return nil, err
	}
	return m.responses[key], nil
}

// Calls returns every argv run so far, space-joined.
func (m *Mock) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	for i, c := range m.calls {
		out[i] = strings.Join(c, " ")
	}
	return out
}

// Reset forgets recorded calls.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
}
