package runner

import (
	"context"
	"sync"
	"time"
)

type MockRunner struct {
	mu           sync.Mutex
	Commands     []MockCommand
	Responses    map[string]MockResponse
	ResponseFunc func(name string, args ...string) ([]byte, error)
}

type MockCommand struct {
	Name    string
	Args    []string
	Timeout time.Duration
	Mode    Mode
}

type MockResponse struct {
	Output []byte
	Error  error
}

func NewMockRunner() *MockRunner {
	return &MockRunner{
		Commands:  []MockCommand{},
		Responses: make(map[string]MockResponse),
	}
}

func (m *MockRunner) Run(
	ctx context.Context,
	timeout time.Duration,
	mode Mode,
	name string,
	args ...string,
) ([]byte, error) {
	m.mu.Lock()
	m.Commands = append(m.Commands, MockCommand{
		Name:    name,
		Args:    append([]string(nil), args...),
		Timeout: timeout,
		Mode:    mode,
	})
	resp, ok := m.Responses[cmdKey(name, args...)]
	fn := m.ResponseFunc
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if ok {
		return resp.Output, resp.Error
	}
	if fn != nil {
		return fn(name, args...)
	}
	return []byte{}, nil
}

func (m *MockRunner) AddResponse(key string, output []byte, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses[key] = MockResponse{
		Output: output,
		Error:  err,
	}
}

func cmdKey(name string, args ...string) string {
	key := name
	for _, arg := range args {
		key += "|" + arg
	}
	return key
}

func (m *MockRunner) VerifyCommand(name string, args ...string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, cmd := range m.Commands {
		if cmd.Name == name && argsEqual(cmd.Args, args) {
			return true
		}
	}
	return false
}

func (m *MockRunner) VerifyRunCount(name string, count int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	runCount := 0
	for _, cmd := range m.Commands {
		if cmd.Name == name {
			runCount++
		}
	}
	return runCount == count
}

func argsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// MockGetprop primes a local `getprop key` answer.
func (m *MockRunner) MockGetprop(key, value string) {
	m.AddResponse("getprop|"+key, []byte(value+"\n"), nil)
}

// MockAdbGetprop primes `adb -s serial shell getprop key`.
func (m *MockRunner) MockAdbGetprop(serial, key, value string) {
	m.AddResponse("adb|-s|"+serial+"|shell|getprop|"+key, []byte(value+"\r\n"), nil)
}
