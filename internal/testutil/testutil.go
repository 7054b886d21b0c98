// Package testutil provides testing utilities and helpers shared by package tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/GriffinCanCode/schedpanel/internal/jobs"
)

// MockSubmitter is a mock implementation of panel.Submitter for testing.
type MockSubmitter struct {
	mock.Mock
}

// Submit mocks the Submit method.
func (m *MockSubmitter) Submit(ctx context.Context, fields jobs.Fields) error {
	args := m.Called(ctx, fields)
	return args.Error(0)
}

// NewMockSubmitter creates a new mock submitter with default behaviors.
func NewMockSubmitter(t *testing.T) *MockSubmitter {
	t.Helper()
	m := new(MockSubmitter)

	// Default behavior: submission succeeds
	m.On("Submit", mock.Anything, mock.Anything).Return(nil).Maybe()

	return m
}

// SampleFields returns a fully populated form snapshot.
func SampleFields(t *testing.T) jobs.Fields {
	t.Helper()

	return jobs.Fields{
		URL:            "http://x",
		TargetTime:     "2025-01-01 00:00:00",
		ButtonKeywords: "ok,go",
		ChromePath:     "/usr/bin/chromedriver",
		UserDataDir:    "/tmp/d",
		ProfileName:    "p1",
	}
}

// WaitFor polls cond until it holds or timeout elapses.
func WaitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met within %s", timeout)
}
