package tournaments

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/campusarena/tournament-api/pkg/roles"
	"github.com/campusarena/tournament-api/pkg/token"
	repo "github.com/campusarena/tournament-api/repos/tournaments"
)

func TestCanManage(t *testing.T) {
	tournament := &repo.Tournament{
		OrganizerID: "org-1",
		Approval:    repo.Approval{ApprovedBy: "fac-1"},
	}

	assert.True(t, canManage(&token.Claims{UserID: "org-1", Role: roles.Organizer}, tournament), "owning organizer")
	assert.True(t, canManage(&token.Claims{UserID: "fac-1", Role: roles.Faculty}, tournament), "approver on record")
	assert.True(t, canManage(&token.Claims{UserID: "adm-1", Role: roles.Admin}, tournament), "admin")

	assert.False(t, canManage(&token.Claims{UserID: "org-2", Role: roles.Organizer}, tournament), "other organizer")
	assert.False(t, canManage(&token.Claims{UserID: "stu-1", Role: roles.Student}, tournament))
	assert.False(t, canManage(nil, tournament))
}

func TestCanManageNoApproverOnRecord(t *testing.T) {
	tournament := &repo.Tournament{OrganizerID: "org-1"}

	// An empty ApprovedBy must not match claims with an empty UserID.
	assert.False(t, canManage(&token.Claims{UserID: "", Role: roles.Student}, tournament))
}

func TestCanApprove(t *testing.T) {
	pending := &repo.Tournament{Status: repo.StatusPendingApproval}
	draft := &repo.Tournament{Status: repo.StatusDraft}
	open := &repo.Tournament{Status: repo.StatusRegistrationOpen}

	faculty := &token.Claims{UserID: "fac-1", Role: roles.Faculty}
	admin := &token.Claims{UserID: "adm-1", Role: roles.Admin}
	organizer := &token.Claims{UserID: "org-1", Role: roles.Organizer}

	assert.True(t, canApprove(faculty, pending))

	assert.False(t, canApprove(faculty, draft), "not yet submitted")
	assert.False(t, canApprove(faculty, open), "already decided")
	assert.False(t, canApprove(admin, pending), "approval is faculty-only")
	assert.False(t, canApprove(organizer, pending))
	assert.False(t, canApprove(nil, pending))
}
