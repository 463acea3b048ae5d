package roles

// Primary roles. Every user has exactly one.
const (
	Student     = "student"
	TeamCaptain = "team_captain"
	Organizer   = "organizer"
	Faculty     = "faculty"
	Admin       = "admin"
)

// Secondary roles. Users carry zero or more of these. TeamCaptain doubles
// as a secondary role on the same constant, so a student can captain a
// team without changing primary role.
const (
	ScoreReporter = "score_reporter"
	CoOrganizer   = "co_organizer"
)

// Capability is a named permission derived from the role sets.
type Capability string

const (
	CreateTournaments  Capability = "create_tournaments"
	ApproveTournaments Capability = "approve_tournaments"
	AdministerUsers    Capability = "administer_users"
	ReportScores       Capability = "report_scores"
	CoOrganize         Capability = "co_organize"
)

var primaryGrants = map[Capability][]string{
	CreateTournaments:  {Organizer, Faculty, Admin},
	ApproveTournaments: {Faculty},
	AdministerUsers:    {Admin},
	ReportScores:       {Admin},
}

var secondaryGrants = map[Capability][]string{
	ReportScores: {ScoreReporter},
	CoOrganize:   {CoOrganizer},
}

// Has reports whether the given primary/secondary role combination grants
// the capability. All role checks in the codebase go through here so the
// role lists live in one place.
func Has(primary string, secondary []string, cap Capability) bool {
	for _, role := range primaryGrants[cap] {
		if role == primary {
			return true
		}
	}
	for _, granted := range secondaryGrants[cap] {
		for _, role := range secondary {
			if role == granted {
				return true
			}
		}
	}
	return false
}

// SelfAssignable reports whether users may pick the primary role for
// themselves at registration. Faculty and admin accounts are provisioned
// by administrators.
func SelfAssignable(primary string) bool {
	switch primary {
	case Student, TeamCaptain, Organizer:
		return true
	}
	return false
}
