package saga

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		to      Status
		allowed bool
	}{
		{name: "started to processing", from: StatusStarted, to: StatusProcessing, allowed: true},
		{name: "started to succeeded", from: StatusStarted, to: StatusSucceeded, allowed: true},
		{name: "started to compensating", from: StatusStarted, to: StatusCompensating, allowed: true},
		{name: "processing to succeeded", from: StatusProcessing, to: StatusSucceeded, allowed: true},
		{name: "processing to compensating", from: StatusProcessing, to: StatusCompensating, allowed: true},
		{name: "processing straight to compensated", from: StatusProcessing, to: StatusCompensated, allowed: true},
		{name: "processing to failed", from: StatusProcessing, to: StatusFailed, allowed: true},
		{name: "compensating to compensated", from: StatusCompensating, to: StatusCompensated, allowed: true},
		{name: "compensating to failed", from: StatusCompensating, to: StatusFailed, allowed: true},
		{name: "compensating cannot succeed", from: StatusCompensating, to: StatusSucceeded, allowed: false},
		{name: "succeeded is terminal", from: StatusSucceeded, to: StatusProcessing, allowed: false},
		{name: "compensated is terminal", from: StatusCompensated, to: StatusCompensating, allowed: false},
		{name: "failed is terminal", from: StatusFailed, to: StatusStarted, allowed: false},
		{name: "no skipping back to started", from: StatusProcessing, to: StatusStarted, allowed: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusSucceeded.IsTerminal())
	assert.True(t, StatusCompensated.IsTerminal())
	assert.True(t, StatusFailed.IsTerminal())

	assert.False(t, StatusStarted.IsTerminal())
	assert.False(t, StatusProcessing.IsTerminal())
	assert.False(t, StatusCompensating.IsTerminal())
}

func TestStatus_IsActive(t *testing.T) {
	for _, status := range []Status{StatusStarted, StatusProcessing, StatusCompensating} {
		assert.True(t, status.IsActive(), "status %s", status)
	}
	for _, status := range []Status{StatusSucceeded, StatusCompensated, StatusFailed} {
		assert.False(t, status.IsActive(), "status %s", status)
	}
}

func TestTerminalStatusesHaveNoTransitions(t *testing.T) {
	all := []Status{
		StatusStarted, StatusProcessing, StatusSucceeded,
		StatusCompensating, StatusCompensated, StatusFailed,
	}

	for _, from := range all {
		if !from.IsTerminal() {
			continue
		}
		for _, to := range all {
			assert.False(t, CanTransition(from, to), "%s -> %s must be rejected", from, to)
		}
	}
}
