package tournaments

import (
	"time"

	"github.com/campusarena/tournament-api/pkg/apierror"
	timehelper "github.com/campusarena/tournament-api/pkg/timeHelper"
)

// Status is the lifecycle state of a tournament. Transitions are governed
// by the transition table in the tournaments service.
type Status string

const (
	StatusDraft              Status = "draft"
	StatusPendingApproval    Status = "pending_approval"
	StatusRegistrationOpen   Status = "registration_open"
	StatusRegistrationClosed Status = "registration_closed"
	StatusOngoing            Status = "ongoing"
	StatusCompleted          Status = "completed"
	StatusCancelled          Status = "cancelled"
	StatusRejected           Status = "rejected"
)

const (
	TypeSingleElimination = "single-elimination"
	TypeDoubleElimination = "double-elimination"
	TypeRoundRobin        = "round-robin"
	TypeSwiss             = "swiss"
)

const (
	RegistrationTeam   = "team"
	RegistrationSolo   = "solo"
	RegistrationHybrid = "hybrid"
)

// Approval records who decided on a pending tournament and why, for
// rejections.
type Approval struct {
	Approved        bool      `firestore:"Approved" json:"approved"`
	ApprovedBy      string    `firestore:"ApprovedBy" json:"approvedBy,omitempty"`
	ApprovedAt      time.Time `firestore:"ApprovedAt" json:"approvedAt,omitempty"`
	RejectionReason string    `firestore:"RejectionReason" json:"rejectionReason,omitempty"`
}

// TeamRegistration is an entry in the tournament's embedded team list. It
// has no existence outside its owning tournament document.
type TeamRegistration struct {
	TeamName     string    `firestore:"TeamName" json:"teamName"`
	CaptainID    string    `firestore:"CaptainID" json:"captainId"`
	RegisteredAt time.Time `firestore:"RegisteredAt" json:"registeredAt"`
	Approved     bool      `firestore:"Approved" json:"approved"`
}

// SoloPlayer is an entry in the tournament's embedded solo-player list.
type SoloPlayer struct {
	UserID       string    `firestore:"UserID" json:"userId"`
	RegisteredAt time.Time `firestore:"RegisteredAt" json:"registeredAt"`
	Matched      bool      `firestore:"Matched" json:"matched"`
}

type Tournament struct {
	ID                      string             `firestore:"ID" json:"id"`
	Name                    string             `firestore:"Name" json:"name"`
	Description             string             `firestore:"Description" json:"description"`
	Game                    string             `firestore:"Game" json:"game"`
	Type                    string             `firestore:"Type" json:"tournamentType"`
	RegistrationType        string             `firestore:"RegistrationType" json:"registrationType"`
	Status                  Status             `firestore:"Status" json:"status"`
	Approval                Approval           `firestore:"Approval" json:"approvalStatus"`
	OrganizerID             string             `firestore:"OrganizerID" json:"organizerId"`
	Department              string             `firestore:"Department" json:"department,omitempty"`
	RequiresFacultyApproval bool               `firestore:"RequiresFacultyApproval" json:"requiresFacultyApproval"`
	MaxTeams                int                `firestore:"MaxTeams" json:"maxTeams"`
	TeamSize                int                `firestore:"TeamSize" json:"teamSize"`
	RegistrationStart       time.Time          `firestore:"RegistrationStart" json:"registrationStart,omitempty"`
	RegistrationEnd         time.Time          `firestore:"RegistrationEnd" json:"registrationEnd"`
	StartDate               time.Time          `firestore:"StartDate" json:"startDate"`
	RegisteredTeams         []TeamRegistration `firestore:"RegisteredTeams" json:"registeredTeams"`
	SoloPlayers             []SoloPlayer       `firestore:"SoloPlayers" json:"soloPlayers"`
	InviteCode              string             `firestore:"InviteCode" json:"inviteCode,omitempty"`
	CreatedAt               time.Time          `firestore:"CreatedAt" json:"createdAt"`
	UpdatedAt               time.Time          `firestore:"UpdatedAt" json:"updatedAt"`
}

// IsFull is computed on read, never stored.
func (t *Tournament) IsFull() bool {
	return len(t.RegisteredTeams) >= t.MaxTeams
}

// CanRegister reports whether registration actions are valid right now:
// status must be registration_open and now must fall inside the window.
func (t *Tournament) CanRegister(now time.Time) bool {
	if t.Status != StatusRegistrationOpen {
		return false
	}
	return timehelper.WithinWindow(now, t.RegistrationStart, t.RegistrationEnd)
}

// HasTeam reports whether a team with the given name or captain is already
// registered. Uniqueness is enforced here, in the owning aggregate.
func (t *Tournament) HasTeam(teamName, captainID string) bool {
	for _, reg := range t.RegisteredTeams {
		if reg.TeamName == teamName || reg.CaptainID == captainID {
			return true
		}
	}
	return false
}

// AddTeam validates a team registration against the aggregate and returns
// the new team list. Capacity, window and uniqueness are enforced here so
// no caller can append past them.
func (t *Tournament) AddTeam(reg TeamRegistration) ([]TeamRegistration, error) {
	if !t.CanRegister(reg.RegisteredAt) {
		return nil, apierror.RegistrationClosed()
	}
	if t.IsFull() {
		return nil, apierror.TournamentFull()
	}
	if t.HasTeam(reg.TeamName, reg.CaptainID) {
		return nil, apierror.Duplicate("team or captain already registered")
	}

	// Team-type tournaments require a separate approval step; solo and
	// hybrid registrations are approved on entry.
	reg.Approved = t.RegistrationType != RegistrationTeam

	return append(t.RegisteredTeams, reg), nil
}

// AddSoloPlayer validates a solo registration and returns the new player
// list, refusing team-only tournaments.
func (t *Tournament) AddSoloPlayer(player SoloPlayer) ([]SoloPlayer, error) {
	if t.RegistrationType == RegistrationTeam {
		return nil, apierror.SoloRegistrationNotAllowed()
	}
	if !t.CanRegister(player.RegisteredAt) {
		return nil, apierror.RegistrationClosed()
	}
	if t.HasSoloPlayer(player.UserID) {
		return nil, apierror.Duplicate("already registered as a solo player")
	}
	return append(t.SoloPlayers, player), nil
}

// HasSoloPlayer reports whether the user is already on the solo list.
func (t *Tournament) HasSoloPlayer(userID string) bool {
	for _, p := range t.SoloPlayers {
		if p.UserID == userID {
			return true
		}
	}
	return false
}
