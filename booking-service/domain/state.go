package domain

// Status represents the lifecycle status of a booking
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusDeposited  Status = "DEPOSITED"
	StatusConfirmed  Status = "CONFIRMED"
	StatusCheckedIn  Status = "CHECKED_IN"
	StatusPaid       Status = "PAID"
	StatusCheckedOut Status = "CHECKED_OUT"
	StatusCancelling Status = "CANCELLING"
	StatusCancelled  Status = "CANCELLED"
)

// Step names a saga step applied to a booking
type Step string

const (
	StepDeposit        Step = "deposit"
	StepConfirm        Step = "confirm"
	StepCheckIn        Step = "check_in"
	StepSettle         Step = "settle"
	StepCheckOut       Step = "check_out"
	StepCancel         Step = "cancel"
	StepFinalizeCancel Step = "finalize_cancel"
)

// transitions is the single source of truth for legal booking status moves.
// Every mutation goes through this table; there are no transition checks
// anywhere else.
var transitions = map[Step]map[Status]Status{
	StepDeposit: {
		StatusPending: StatusDeposited,
	},
	StepConfirm: {
		StatusDeposited: StatusConfirmed,
	},
	StepCheckIn: {
		StatusConfirmed: StatusCheckedIn,
	},
	StepSettle: {
		StatusCheckedIn: StatusPaid,
	},
	StepCheckOut: {
		StatusCheckedIn: StatusCheckedOut,
		StatusPaid:      StatusCheckedOut,
	},
	StepCancel: {
		StatusPending:   StatusCancelling,
		StatusDeposited: StatusCancelling,
		StatusConfirmed: StatusCancelling,
		StatusCheckedIn: StatusCancelling,
		StatusPaid:      StatusCancelling,
	},
	StepFinalizeCancel: {
		StatusCancelling: StatusCancelled,
	},
}

// compensations maps a status to the status it reverts to when the step that
// produced it is rejected downstream. Compensation is always exactly one
// step backward; there are no multi-hop undo chains.
var compensations = map[Status]Status{
	StatusDeposited:  StatusPending,
	StatusCheckedIn:  StatusConfirmed,
	StatusCancelling: StatusCancelled,
}

// Steps returns every defined saga step.
func Steps() []Step {
	return []Step{StepDeposit, StepConfirm, StepCheckIn, StepSettle, StepCheckOut, StepCancel, StepFinalizeCancel}
}

// Statuses returns every defined booking status.
func Statuses() []Status {
	return []Status{
		StatusPending, StatusDeposited, StatusConfirmed, StatusCheckedIn,
		StatusPaid, StatusCheckedOut, StatusCancelling, StatusCancelled,
	}
}

// Next returns the status a step leads to from the given status.
func Next(from Status, step Step) (Status, error) {
	to, ok := transitions[step][from]
	if !ok {
		return "", &InvalidTransitionError{From: from, Step: step}
	}
	return to, nil
}

// CompensationTarget returns the status a booking reverts to when the step
// that produced the given status fails downstream.
func CompensationTarget(from Status) (Status, error) {
	to, ok := compensations[from]
	if !ok {
		return "", &InvalidTransitionError{From: from, Step: "compensate"}
	}
	return to, nil
}

// IsTerminal reports whether a booking status permits no further steps.
func (s Status) IsTerminal() bool {
	return s == StatusCheckedOut || s == StatusCancelled
}

func (s Status) String() string {
	return string(s)
}
