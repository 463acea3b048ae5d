package tournaments

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusarena/tournament-api/pkg/apierror"
)

func TestIsFull(t *testing.T) {
	tournament := &Tournament{MaxTeams: 2}
	assert.False(t, tournament.IsFull())

	tournament.RegisteredTeams = []TeamRegistration{{TeamName: "Alpha"}}
	assert.False(t, tournament.IsFull())

	tournament.RegisteredTeams = append(tournament.RegisteredTeams, TeamRegistration{TeamName: "Beta"})
	assert.True(t, tournament.IsFull())
}

func TestCanRegister(t *testing.T) {
	now := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)
	open := &Tournament{
		Status:            StatusRegistrationOpen,
		RegistrationStart: now.Add(-48 * time.Hour),
		RegistrationEnd:   now.Add(48 * time.Hour),
	}
	assert.True(t, open.CanRegister(now))

	// Outside the window.
	assert.False(t, open.CanRegister(now.Add(100*time.Hour)))
	assert.False(t, open.CanRegister(now.Add(-100*time.Hour)))

	// Wrong status, inside the window.
	closed := &Tournament{
		Status:            StatusRegistrationClosed,
		RegistrationStart: open.RegistrationStart,
		RegistrationEnd:   open.RegistrationEnd,
	}
	assert.False(t, closed.CanRegister(now))

	// No start date set: only the end bounds the window.
	noStart := &Tournament{
		Status:          StatusRegistrationOpen,
		RegistrationEnd: now.Add(time.Hour),
	}
	assert.True(t, noStart.CanRegister(now))
	assert.False(t, noStart.CanRegister(now.Add(2*time.Hour)))
}

func TestHasTeam(t *testing.T) {
	tournament := &Tournament{
		RegisteredTeams: []TeamRegistration{
			{TeamName: "Alpha", CaptainID: "usr-1"},
		},
	}

	assert.True(t, tournament.HasTeam("Alpha", "usr-9"))
	assert.True(t, tournament.HasTeam("Beta", "usr-1"))
	assert.False(t, tournament.HasTeam("Beta", "usr-9"))
}

func openTournament(now time.Time) *Tournament {
	return &Tournament{
		Status:            StatusRegistrationOpen,
		RegistrationType:  RegistrationHybrid,
		MaxTeams:          2,
		RegistrationStart: now.Add(-24 * time.Hour),
		RegistrationEnd:   now.Add(24 * time.Hour),
	}
}

func errorCode(t *testing.T, err error) string {
	t.Helper()
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	return apiErr.Code
}

func TestAddTeam(t *testing.T) {
	now := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)

	tournament := openTournament(now)
	teams, err := tournament.AddTeam(TeamRegistration{TeamName: "Alpha", CaptainID: "usr-1", RegisteredAt: now})
	require.NoError(t, err)
	assert.Len(t, teams, 1)
	assert.True(t, teams[0].Approved, "hybrid registrations are approved on entry")

	// Team-type tournaments hold the registration for captain approval.
	teamOnly := openTournament(now)
	teamOnly.RegistrationType = RegistrationTeam
	teams, err = teamOnly.AddTeam(TeamRegistration{TeamName: "Alpha", CaptainID: "usr-1", RegisteredAt: now})
	require.NoError(t, err)
	assert.False(t, teams[0].Approved)

	// Outside the window.
	_, err = openTournament(now).AddTeam(TeamRegistration{TeamName: "Late", CaptainID: "usr-2", RegisteredAt: now.Add(48 * time.Hour)})
	assert.Equal(t, "RegistrationClosed", errorCode(t, err))

	// At capacity.
	full := openTournament(now)
	full.RegisteredTeams = []TeamRegistration{{TeamName: "Alpha"}, {TeamName: "Beta"}}
	_, err = full.AddTeam(TeamRegistration{TeamName: "Gamma", CaptainID: "usr-3", RegisteredAt: now})
	assert.Equal(t, "TournamentFull", errorCode(t, err))

	// Name or captain already on the list.
	taken := openTournament(now)
	taken.RegisteredTeams = []TeamRegistration{{TeamName: "Alpha", CaptainID: "usr-1"}}
	_, err = taken.AddTeam(TeamRegistration{TeamName: "Alpha", CaptainID: "usr-9", RegisteredAt: now})
	assert.Equal(t, "DuplicateKey", errorCode(t, err))
	_, err = taken.AddTeam(TeamRegistration{TeamName: "Beta", CaptainID: "usr-1", RegisteredAt: now})
	assert.Equal(t, "DuplicateKey", errorCode(t, err))
}

func TestAddSoloPlayer(t *testing.T) {
	now := time.Date(2026, 3, 5, 12, 0, 0, 0, time.UTC)

	tournament := openTournament(now)
	players, err := tournament.AddSoloPlayer(SoloPlayer{UserID: "usr-1", RegisteredAt: now})
	require.NoError(t, err)
	assert.Len(t, players, 1)

	// Team-only tournaments take no solo players, regardless of the window.
	teamOnly := openTournament(now)
	teamOnly.RegistrationType = RegistrationTeam
	_, err = teamOnly.AddSoloPlayer(SoloPlayer{UserID: "usr-1", RegisteredAt: now})
	assert.Equal(t, "SoloRegistrationNotAllowed", errorCode(t, err))

	// Outside the window.
	_, err = openTournament(now).AddSoloPlayer(SoloPlayer{UserID: "usr-1", RegisteredAt: now.Add(-48 * time.Hour)})
	assert.Equal(t, "RegistrationClosed", errorCode(t, err))

	// Already registered.
	taken := openTournament(now)
	taken.SoloPlayers = []SoloPlayer{{UserID: "usr-1"}}
	_, err = taken.AddSoloPlayer(SoloPlayer{UserID: "usr-1", RegisteredAt: now})
	assert.Equal(t, "DuplicateKey", errorCode(t, err))
}

func TestPaginate(t *testing.T) {
	var list []*Tournament
	for i := 0; i < 45; i++ {
		list = append(list, &Tournament{})
	}

	assert.Len(t, paginate(list, 1, 20), 20)
	assert.Len(t, paginate(list, 3, 20), 5)
	assert.Nil(t, paginate(list, 4, 20), "past the end")

	// Defaults kick in for nonsense values.
	assert.Len(t, paginate(list, 0, 0), 20)
}

func TestMatchesSearch(t *testing.T) {
	tournament := &Tournament{Name: "Spring Chess Open", Game: "Chess", Description: "Annual event"}

	assert.True(t, matchesSearch(tournament, ""))
	assert.True(t, matchesSearch(tournament, "chess"))
	assert.True(t, matchesSearch(tournament, "SPRING"))
	assert.True(t, matchesSearch(tournament, "annual"))
	assert.False(t, matchesSearch(tournament, "volleyball"))
}
