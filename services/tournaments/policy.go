package tournaments

import (
	"github.com/campusarena/tournament-api/pkg/roles"
	"github.com/campusarena/tournament-api/pkg/token"
	repo "github.com/campusarena/tournament-api/repos/tournaments"
)

// canManage grants mutation rights to the owning organizer, the approver
// on record, and admins.
func canManage(claims *token.Claims, tournament *repo.Tournament) bool {
	if claims == nil {
		return false
	}
	if claims.UserID == tournament.OrganizerID {
		return true
	}
	if tournament.Approval.ApprovedBy != "" && claims.UserID == tournament.Approval.ApprovedBy {
		return true
	}
	return claims.Role == roles.Admin
}

// canApprove holds only for faculty reviewing a pending tournament.
func canApprove(claims *token.Claims, tournament *repo.Tournament) bool {
	if claims == nil {
		return false
	}
	return claims.Role == roles.Faculty && tournament.Status == repo.StatusPendingApproval
}
