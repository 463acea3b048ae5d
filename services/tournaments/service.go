package tournaments

import (
	"context"
	"log"
	"time"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/samborkent/uuidv7"

	access "github.com/campusarena/tournament-api/pkg/accessCode"
	"github.com/campusarena/tournament-api/pkg/apierror"
	"github.com/campusarena/tournament-api/pkg/auth"
	resend "github.com/campusarena/tournament-api/repos/resend"
	repo "github.com/campusarena/tournament-api/repos/tournaments"
	users "github.com/campusarena/tournament-api/repos/users"
)

type TournamentsService struct {
	tournamentsRepo *repo.Service
	usersRepo       *users.Service
	resendService   *resend.Service
}

func NewTournamentsService(tournamentsRepo *repo.Service, usersRepo *users.Service, resendService *resend.Service) *TournamentsService {
	return &TournamentsService{
		tournamentsRepo: tournamentsRepo,
		usersRepo:       usersRepo,
		resendService:   resendService,
	}
}

func (s *TournamentsService) Create(c *gin.Context, req CreateRequest) (*repo.Tournament, error) {
	claims := auth.Claims(c)

	if details := validateCreate(req); len(details) > 0 {
		return nil, apierror.Validation("validation failed", details...)
	}

	now := time.Now()
	id := uuidv7.New().String()
	tournament := &repo.Tournament{
		ID:                      id,
		Name:                    req.Name,
		Description:             req.Description,
		Game:                    req.Game,
		Type:                    req.Type,
		RegistrationType:        req.RegistrationType,
		Status:                  initialStatus(req.RequiresFacultyApproval),
		OrganizerID:             claims.UserID,
		Department:              req.Department,
		RequiresFacultyApproval: req.RequiresFacultyApproval,
		MaxTeams:                req.MaxTeams,
		TeamSize:                req.TeamSize,
		RegistrationEnd:         req.RegistrationEnd,
		StartDate:               req.StartDate,
		InviteCode:              access.GenerateCode(id),
		CreatedAt:               now,
		UpdatedAt:               now,
	}
	if req.RegistrationStart != nil {
		tournament.RegistrationStart = *req.RegistrationStart
	}

	if err := s.tournamentsRepo.Create(c, tournament); err != nil {
		return nil, err
	}
	return tournament, nil
}

func (s *TournamentsService) List(c *gin.Context, filter repo.Filter) ([]*repo.Tournament, error) {
	return s.tournamentsRepo.List(c, filter)
}

func (s *TournamentsService) Get(c *gin.Context, id string) (*repo.Tournament, error) {
	return s.tournamentsRepo.Get(c, id)
}

func (s *TournamentsService) GetByInviteCode(c *gin.Context, code string) (*repo.Tournament, error) {
	if _, _, err := access.Decode(code); err != nil {
		return nil, apierror.NotFound("tournament not found")
	}
	return s.tournamentsRepo.GetByInviteCode(c, code)
}

// Update mutates fields of a tournament still in draft or pending
// approval.
func (s *TournamentsService) Update(c *gin.Context, id string, req UpdateRequest) (*repo.Tournament, error) {
	tournament, err := s.tournamentsRepo.Get(c, id)
	if err != nil {
		return nil, err
	}
	if !canManage(auth.Claims(c), tournament) {
		return nil, apierror.Forbidden("not allowed to manage this tournament")
	}
	if !mutable(tournament.Status) {
		return nil, apierror.InvalidStateTransition("tournament can only be updated in draft or pending_approval")
	}

	if err := s.tournamentsRepo.Update(c, id, createUpdates(req)); err != nil {
		return nil, err
	}
	return s.tournamentsRepo.Get(c, id)
}

func (s *TournamentsService) Delete(c *gin.Context, id string) error {
	tournament, err := s.tournamentsRepo.Get(c, id)
	if err != nil {
		return err
	}
	if !canManage(auth.Claims(c), tournament) {
		return apierror.Forbidden("not allowed to manage this tournament")
	}
	if !mutable(tournament.Status) {
		return apierror.InvalidStateTransition("tournament can only be deleted in draft or pending_approval")
	}
	return s.tournamentsRepo.Delete(c, id)
}

// Submit moves a draft into the faculty approval queue.
func (s *TournamentsService) Submit(c *gin.Context, id string) (*repo.Tournament, error) {
	return s.transition(c, id, ActionSubmit, true)
}

// Approve opens a pending tournament for registration and records the
// approver. The organizer gets a notification mail with the invite link.
func (s *TournamentsService) Approve(c *gin.Context, id string) (*repo.Tournament, error) {
	claims := auth.Claims(c)

	tournament, err := s.tournamentsRepo.Get(c, id)
	if err != nil {
		return nil, err
	}
	if claims == nil || !canApprove(claims, tournament) {
		if tournament.Status != repo.StatusPendingApproval {
			return nil, apierror.InvalidStateTransition("only pending_approval tournaments can be approved")
		}
		return nil, apierror.Forbidden("only faculty can approve tournaments")
	}

	to, err := nextStatus(tournament.Status, ActionApprove)
	if err != nil {
		return nil, err
	}

	err = s.tournamentsRepo.Update(c, id, approvalUpdates(to, claims.UserID, time.Now(), ""))
	if err != nil {
		return nil, err
	}

	s.notifyDecision(c, tournament, true, "")

	return s.tournamentsRepo.Get(c, id)
}

// Reject closes a pending tournament with a reviewer reason of at least
// ten characters.
func (s *TournamentsService) Reject(c *gin.Context, id, reason string) (*repo.Tournament, error) {
	if utf8.RuneCountInString(reason) < 10 {
		return nil, apierror.Validation("validation failed", apierror.FieldError{
			Field:   "reason",
			Message: "rejection reason must be at least 10 characters",
		})
	}

	claims := auth.Claims(c)

	tournament, err := s.tournamentsRepo.Get(c, id)
	if err != nil {
		return nil, err
	}
	if claims == nil || !canApprove(claims, tournament) {
		if tournament.Status != repo.StatusPendingApproval {
			return nil, apierror.InvalidStateTransition("only pending_approval tournaments can be rejected")
		}
		return nil, apierror.Forbidden("only faculty can reject tournaments")
	}

	to, err := nextStatus(tournament.Status, ActionReject)
	if err != nil {
		return nil, err
	}

	err = s.tournamentsRepo.Update(c, id, approvalUpdates(to, claims.UserID, time.Now(), reason))
	if err != nil {
		return nil, err
	}

	s.notifyDecision(c, tournament, false, reason)

	return s.tournamentsRepo.Get(c, id)
}

func (s *TournamentsService) CloseRegistration(c *gin.Context, id string) (*repo.Tournament, error) {
	return s.transition(c, id, ActionCloseRegistration, true)
}

func (s *TournamentsService) Start(c *gin.Context, id string) (*repo.Tournament, error) {
	return s.transition(c, id, ActionStart, true)
}

func (s *TournamentsService) Complete(c *gin.Context, id string) (*repo.Tournament, error) {
	return s.transition(c, id, ActionComplete, true)
}

func (s *TournamentsService) Cancel(c *gin.Context, id string) (*repo.Tournament, error) {
	return s.transition(c, id, ActionCancel, true)
}

// RegisterTeam appends a team registration for the authenticated captain.
func (s *TournamentsService) RegisterTeam(c *gin.Context, id string, req RegisterTeamRequest) error {
	claims := auth.Claims(c)
	return s.tournamentsRepo.RegisterTeam(c, id, repo.TeamRegistration{
		TeamName:     req.TeamName,
		CaptainID:    claims.UserID,
		RegisteredAt: time.Now(),
	})
}

// RegisterSolo puts the authenticated user on the solo-player list.
func (s *TournamentsService) RegisterSolo(c *gin.Context, id string) error {
	claims := auth.Claims(c)
	return s.tournamentsRepo.RegisterSolo(c, id, repo.SoloPlayer{
		UserID:       claims.UserID,
		RegisteredAt: time.Now(),
	})
}

// ApproveTeamRegistration approves a pending team entry on a team-type
// tournament.
func (s *TournamentsService) ApproveTeamRegistration(c *gin.Context, id, teamName string) error {
	tournament, err := s.tournamentsRepo.Get(c, id)
	if err != nil {
		return err
	}
	if !canManage(auth.Claims(c), tournament) {
		return apierror.Forbidden("not allowed to manage this tournament")
	}
	return s.tournamentsRepo.ApproveTeam(c, id, teamName)
}

func (s *TournamentsService) transition(c *gin.Context, id string, action Action, manage bool) (*repo.Tournament, error) {
	tournament, err := s.tournamentsRepo.Get(c, id)
	if err != nil {
		return nil, err
	}
	if manage && !canManage(auth.Claims(c), tournament) {
		return nil, apierror.Forbidden("not allowed to manage this tournament")
	}

	to, err := nextStatus(tournament.Status, action)
	if err != nil {
		return nil, err
	}

	err = s.tournamentsRepo.Update(c, id, statusUpdate(to))
	if err != nil {
		return nil, err
	}
	return s.tournamentsRepo.Get(c, id)
}

// notifyDecision mails the organizer in the background; delivery failures
// only get logged.
func (s *TournamentsService) notifyDecision(c *gin.Context, tournament *repo.Tournament, approved bool, reason string) {
	organizer, err := s.usersRepo.Get(c, tournament.OrganizerID)
	if err != nil {
		log.Printf("Failed to load organizer %s for notification: %v\n", tournament.OrganizerID, err)
		return
	}

	decision := resend.Decision{
		TournamentName: tournament.Name,
		Approved:       approved,
		Reason:         reason,
		InviteCode:     tournament.InviteCode,
	}
	go func() {
		if err := s.resendService.SendDecisionMail(context.Background(), organizer.Email, decision); err != nil {
			log.Printf("Failed to send decision mail: %v\n", err)
		}
	}()
}

func validateCreate(req CreateRequest) []apierror.FieldError {
	var details []apierror.FieldError

	switch req.Type {
	case repo.TypeSingleElimination, repo.TypeDoubleElimination, repo.TypeRoundRobin, repo.TypeSwiss:
	default:
		details = append(details, apierror.FieldError{Field: "tournamentType", Message: "unknown tournament type"})
	}

	switch req.RegistrationType {
	case repo.RegistrationTeam, repo.RegistrationSolo, repo.RegistrationHybrid:
	default:
		details = append(details, apierror.FieldError{Field: "registrationType", Message: "unknown registration type"})
	}

	if req.RegistrationStart != nil && req.RegistrationStart.After(req.RegistrationEnd) {
		details = append(details, apierror.FieldError{Field: "registrationStart", Message: "registration start must precede registration end"})
	}

	return details
}
