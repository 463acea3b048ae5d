package tournaments

import (
	"fmt"

	"github.com/campusarena/tournament-api/pkg/apierror"
	repo "github.com/campusarena/tournament-api/repos/tournaments"
)

// Action is a named status transition requested by a caller.
type Action string

const (
	ActionSubmit            Action = "submit"
	ActionApprove           Action = "approve"
	ActionReject            Action = "reject"
	ActionCloseRegistration Action = "close-registration"
	ActionStart             Action = "start"
	ActionComplete          Action = "complete"
	ActionCancel            Action = "cancel"
)

// transitions is the single source of truth for which status an action
// moves a tournament to. An action missing its current status is invalid.
// rejected, completed and cancelled are terminal.
var transitions = map[Action]map[repo.Status]repo.Status{
	ActionSubmit: {
		repo.StatusDraft: repo.StatusPendingApproval,
	},
	ActionApprove: {
		repo.StatusPendingApproval: repo.StatusRegistrationOpen,
	},
	ActionReject: {
		repo.StatusPendingApproval: repo.StatusRejected,
	},
	ActionCloseRegistration: {
		repo.StatusRegistrationOpen: repo.StatusRegistrationClosed,
	},
	ActionStart: {
		repo.StatusRegistrationClosed: repo.StatusOngoing,
	},
	ActionComplete: {
		repo.StatusOngoing: repo.StatusCompleted,
	},
	ActionCancel: {
		repo.StatusDraft:              repo.StatusCancelled,
		repo.StatusPendingApproval:    repo.StatusCancelled,
		repo.StatusRegistrationOpen:   repo.StatusCancelled,
		repo.StatusRegistrationClosed: repo.StatusCancelled,
		repo.StatusOngoing:            repo.StatusCancelled,
	},
}

// nextStatus resolves the target status for an action, failing without
// side effects when the current status does not allow it.
func nextStatus(current repo.Status, action Action) (repo.Status, error) {
	to, ok := transitions[action][current]
	if !ok {
		return "", apierror.InvalidStateTransition(
			fmt.Sprintf("cannot %s a tournament with status %s", action, current),
		)
	}
	return to, nil
}

// initialStatus is draft when faculty approval is required, otherwise the
// tournament opens for registration immediately.
func initialStatus(requiresFacultyApproval bool) repo.Status {
	if requiresFacultyApproval {
		return repo.StatusDraft
	}
	return repo.StatusRegistrationOpen
}

// mutable reports whether field updates and deletion are still allowed.
func mutable(status repo.Status) bool {
	return status == repo.StatusDraft || status == repo.StatusPendingApproval
}
