package resend

// Decision describes an approval outcome to notify the organizer about.
type Decision struct {
	TournamentName string
	Approved       bool
	Reason         string
	InviteCode     string
}
