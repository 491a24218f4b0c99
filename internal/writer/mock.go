package writer

import (
	"context"
	"fmt"
	"sync"
)

// MockWriter is a scripted Writer for tests. It records every request and
// answers from a fixed response, or with an error when Err is set.
type MockWriter struct {
	mu       sync.Mutex
	Response string
	Err      error
	Requests []DocRequest
}

func (m *MockWriter) WriteDocstring(_ context.Context, req DocRequest) (string, error) {
	m.mu.Lock()
	m.Requests = append(m.Requests, req)
	m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	if m.Response != "" {
		return m.Response, nil
	}
	return fmt.Sprintf("Docstring for %s.", req.Name), nil
}

func (m *MockWriter) WriteModuleDoc(_ context.Context, moduleName, _, _ string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if m.Response != "" {
		return m.Response, nil
	}
	return fmt.Sprintf("Module docstring for %s.", moduleName), nil
}

func (m *MockWriter) WriteCommitMessage(_ context.Context, _, _ string) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	if m.Response != "" {
		return m.Response, nil
	}
	return "UPDATE: describe the change", nil
}
