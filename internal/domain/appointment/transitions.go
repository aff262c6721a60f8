package appointment

import "github.com/BruksfildServices01/vet-scheduler/internal/httperr"

type transition struct {
	from []Status
	to   Status
}

var transitions = map[Action]transition{
	ActionConfirm:        {from: []Status{StatusReserved}, to: StatusConfirmed},
	ActionCancel:         {from: []Status{StatusReserved, StatusConfirmed}, to: StatusCancelled},
	ActionCheckIn:        {from: []Status{StatusConfirmed}, to: StatusCheckedIn},
	ActionBeginTreatment: {from: []Status{StatusCheckedIn}, to: StatusInTreatment},
	ActionEndTreatment:   {from: []Status{StatusInTreatment}, to: StatusCompleted},
	ActionReschedule:     {from: []Status{StatusReserved, StatusConfirmed, StatusCheckedIn}, to: StatusRescheduled},
}

// Next returns the state reached by applying action to current.
func Next(action Action, current Status) (Status, error) {
	t, ok := transitions[action]
	if !ok {
		return current, httperr.InvalidTransition("invalid_state")
	}

	if current.IsTerminal() {
		return current, httperr.InvalidTransition("terminal_state")
	}

	for _, from := range t.from {
		if from == current {
			return t.to, nil
		}
	}

	if action == ActionEndTreatment && current == StatusCheckedIn {
		return current, httperr.InvalidTransition("treatment_not_started")
	}

	return current, httperr.InvalidTransition("invalid_state")
}

// CanTransition reports whether action is legal from current.
func CanTransition(action Action, current Status) bool {
	_, err := Next(action, current)
	return err == nil
}
