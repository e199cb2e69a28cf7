package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNext_CoversEveryStatusStepPair(t *testing.T) {
	// Every combination must either resolve to a defined status or fail
	// with InvalidTransitionError; nothing is left implicit.
	legal := map[Status]map[Step]Status{
		StatusPending: {
			StepDeposit: StatusDeposited,
			StepCancel:  StatusCancelling,
		},
		StatusDeposited: {
			StepConfirm: StatusConfirmed,
			StepCancel:  StatusCancelling,
		},
		StatusConfirmed: {
			StepCheckIn: StatusCheckedIn,
			StepCancel:  StatusCancelling,
		},
		StatusCheckedIn: {
			StepSettle:   StatusPaid,
			StepCheckOut: StatusCheckedOut,
			StepCancel:   StatusCancelling,
		},
		StatusPaid: {
			StepCheckOut: StatusCheckedOut,
			StepCancel:   StatusCancelling,
		},
		StatusCheckedOut: {},
		StatusCancelling: {
			StepFinalizeCancel: StatusCancelled,
		},
		StatusCancelled: {},
	}

	require.ElementsMatch(t, Statuses(), keys(legal), "status enumeration out of sync")

	for _, from := range Statuses() {
		for _, step := range Steps() {
			to, err := Next(from, step)

			expected, ok := legal[from][step]
			if ok {
				require.NoError(t, err, "step %s from %s", step, from)
				assert.Equal(t, expected, to, "step %s from %s", step, from)
				continue
			}

			require.Error(t, err, "step %s from %s must be rejected", step, from)
			assert.ErrorIs(t, err, ErrInvalidStateTransition)

			var transitionErr *InvalidTransitionError
			require.ErrorAs(t, err, &transitionErr)
			assert.Equal(t, from, transitionErr.From)
			assert.Equal(t, step, transitionErr.Step)
		}
	}
}

func TestNext_TerminalStatusesHaveNoExits(t *testing.T) {
	for _, from := range Statuses() {
		if !from.IsTerminal() {
			continue
		}
		for _, step := range Steps() {
			_, err := Next(from, step)
			assert.Error(t, err, "terminal status %s must reject step %s", from, step)
		}
	}
}

func TestCompensationTarget(t *testing.T) {
	tests := []struct {
		name     string
		from     Status
		expected Status
		wantErr  bool
	}{
		{name: "deposit rolls back to pending", from: StatusDeposited, expected: StatusPending},
		{name: "check-in rolls back to confirmed", from: StatusCheckedIn, expected: StatusConfirmed},
		{name: "cancelling resolves to cancelled", from: StatusCancelling, expected: StatusCancelled},
		{name: "pending has nothing to roll back", from: StatusPending, wantErr: true},
		{name: "confirmed has no one-step undo", from: StatusConfirmed, wantErr: true},
		{name: "paid has no one-step undo", from: StatusPaid, wantErr: true},
		{name: "checked out is final", from: StatusCheckedOut, wantErr: true},
		{name: "cancelled is final", from: StatusCancelled, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			to, err := CompensationTarget(tt.from)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidStateTransition)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, to)
		})
	}
}

func TestCancellingOnlyExitsThroughFinalize(t *testing.T) {
	for _, step := range Steps() {
		to, err := Next(StatusCancelling, step)
		if step == StepFinalizeCancel {
			require.NoError(t, err)
			assert.Equal(t, StatusCancelled, to)
			continue
		}
		assert.Error(t, err, "step %s must not leave CANCELLING", step)
	}
}

func keys(m map[Status]map[Step]Status) []Status {
	out := make([]Status, 0, len(m))
	for status := range m {
		out = append(out, status)
	}
	return out
}
