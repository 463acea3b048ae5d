package tournaments

import (
	"time"

	"cloud.google.com/go/firestore"

	repo "github.com/campusarena/tournament-api/repos/tournaments"
)

type CreateRequest struct {
	Name                    string     `json:"name" binding:"required"`
	Description             string     `json:"description"`
	Game                    string     `json:"game" binding:"required"`
	Type                    string     `json:"tournamentType" binding:"required"`
	RegistrationType        string     `json:"registrationType" binding:"required"`
	Department              string     `json:"department"`
	RequiresFacultyApproval bool       `json:"requiresFacultyApproval"`
	MaxTeams                int        `json:"maxTeams" binding:"required,gt=0"`
	TeamSize                int        `json:"teamSize"`
	RegistrationStart       *time.Time `json:"registrationStart"`
	RegistrationEnd         time.Time  `json:"registrationEnd" binding:"required"`
	StartDate               time.Time  `json:"startDate"`
}

// UpdateRequest carries optional fields; only the ones present become
// Firestore updates.
type UpdateRequest struct {
	Name              *string    `json:"name"`
	Description       *string    `json:"description"`
	Game              *string    `json:"game"`
	Department        *string    `json:"department"`
	MaxTeams          *int       `json:"maxTeams"`
	TeamSize          *int       `json:"teamSize"`
	RegistrationStart *time.Time `json:"registrationStart"`
	RegistrationEnd   *time.Time `json:"registrationEnd"`
	StartDate         *time.Time `json:"startDate"`
}

func createUpdates(req UpdateRequest) []firestore.Update {
	var updates []firestore.Update

	if req.Name != nil {
		updates = append(updates, firestore.Update{Path: "Name", Value: *req.Name})
	}
	if req.Description != nil {
		updates = append(updates, firestore.Update{Path: "Description", Value: *req.Description})
	}
	if req.Game != nil {
		updates = append(updates, firestore.Update{Path: "Game", Value: *req.Game})
	}
	if req.Department != nil {
		updates = append(updates, firestore.Update{Path: "Department", Value: *req.Department})
	}
	if req.MaxTeams != nil {
		updates = append(updates, firestore.Update{Path: "MaxTeams", Value: *req.MaxTeams})
	}
	if req.TeamSize != nil {
		updates = append(updates, firestore.Update{Path: "TeamSize", Value: *req.TeamSize})
	}
	if req.RegistrationStart != nil {
		updates = append(updates, firestore.Update{Path: "RegistrationStart", Value: *req.RegistrationStart})
	}
	if req.RegistrationEnd != nil {
		updates = append(updates, firestore.Update{Path: "RegistrationEnd", Value: *req.RegistrationEnd})
	}
	if req.StartDate != nil {
		updates = append(updates, firestore.Update{Path: "StartDate", Value: *req.StartDate})
	}

	return updates
}

func statusUpdate(to repo.Status) []firestore.Update {
	return []firestore.Update{
		{Path: "Status", Value: to},
	}
}

// approvalUpdates writes the status change and the approval record in one
// document update.
func approvalUpdates(to repo.Status, approverID string, at time.Time, reason string) []firestore.Update {
	return []firestore.Update{
		{Path: "Status", Value: to},
		{Path: "Approval.Approved", Value: to == repo.StatusRegistrationOpen},
		{Path: "Approval.ApprovedBy", Value: approverID},
		{Path: "Approval.ApprovedAt", Value: at},
		{Path: "Approval.RejectionReason", Value: reason},
	}
}

type RejectRequest struct {
	Reason string `json:"reason" binding:"required"`
}

type RegisterTeamRequest struct {
	TeamName string `json:"teamName" binding:"required"`
}
