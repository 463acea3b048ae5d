package tournaments

import (
	"context"
	"log"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"golang.org/x/xerrors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/campusarena/tournament-api/pkg/apierror"
)

const collection = "Tournaments"

// Filter narrows List results. Zero values mean "no filter".
type Filter struct {
	Status     string
	Type       string
	Department string
	Search     string
	Page       int
	Limit      int
}

// Service persists tournaments in Firestore. Each tournament is one
// document; registered teams and solo players are embedded arrays owned by
// it.
type Service struct {
	Client *firestore.Client
}

func NewService(client *firestore.Client) *Service {
	return &Service{
		Client: client,
	}
}

func (s *Service) Create(ctx context.Context, tournament *Tournament) error {
	_, err := s.Client.Collection(collection).Doc(tournament.ID).Set(ctx, tournament)
	if err != nil {
		log.Printf("Failed to write tournament to Firestore: %v\n", err)
		return apierror.Internal(err)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (*Tournament, error) {
	doc, err := s.Client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, apierror.NotFound("tournament not found")
		}
		log.Printf("Failed to get tournament from Firestore: %v\n", err)
		return nil, apierror.Internal(err)
	}
	return docToTournament(doc)
}

// GetByInviteCode resolves a tournament through its invite code.
func (s *Service) GetByInviteCode(ctx context.Context, code string) (*Tournament, error) {
	iter := s.Client.Collection(collection).Where("InviteCode", "==", code).Limit(1).Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, apierror.NotFound("tournament not found")
		}
		log.Printf("Failed to query tournament by invite code: %v\n", err)
		return nil, apierror.Internal(err)
	}
	return docToTournament(doc)
}

// List returns tournaments matching the filter, newest first. Equality
// filters run in the store; the free-text search runs over the fetched
// page set since the document store has no substring queries.
func (s *Service) List(ctx context.Context, filter Filter) ([]*Tournament, error) {
	query := s.Client.Collection(collection).Query
	if filter.Status != "" {
		query = query.Where("Status", "==", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("Type", "==", filter.Type)
	}
	if filter.Department != "" {
		query = query.Where("Department", "==", filter.Department)
	}

	docs, err := query.Documents(ctx).GetAll()
	if err != nil {
		log.Printf("Failed to list tournaments from Firestore: %v\n", err)
		return nil, apierror.Internal(err)
	}

	var list []*Tournament
	for _, doc := range docs {
		tournament, err := docToTournament(doc)
		if err != nil {
			return nil, err
		}
		if !matchesSearch(tournament, filter.Search) {
			continue
		}
		list = append(list, tournament)
	}

	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})

	return paginate(list, filter.Page, filter.Limit), nil
}

func (s *Service) Update(ctx context.Context, id string, updates []firestore.Update) error {
	if len(updates) == 0 {
		return nil
	}
	updates = append(updates, firestore.Update{Path: "UpdatedAt", Value: time.Now()})
	_, err := s.Client.Collection(collection).Doc(id).Update(ctx, updates)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return apierror.NotFound("tournament not found")
		}
		log.Printf("Failed to update tournament in Firestore: %v\n", err)
		return apierror.Internal(err)
	}
	return nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	_, err := s.Client.Collection(collection).Doc(id).Delete(ctx)
	if err != nil {
		log.Printf("Failed to delete tournament from Firestore: %v\n", err)
		return apierror.Internal(err)
	}
	return nil
}

// RegisterTeam appends a team registration. The capacity check and the
// append run in one transaction so two concurrent registrations cannot
// both pass the isFull check and overshoot MaxTeams.
func (s *Service) RegisterTeam(ctx context.Context, id string, reg TeamRegistration) error {
	docRef := s.Client.Collection(collection).Doc(id)

	err := s.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return apierror.NotFound("tournament not found")
			}
			return err
		}
		tournament, err := docToTournament(doc)
		if err != nil {
			return err
		}

		teams, err := tournament.AddTeam(reg)
		if err != nil {
			return err
		}

		return tx.Update(docRef, []firestore.Update{
			{Path: "RegisteredTeams", Value: teams},
			{Path: "UpdatedAt", Value: reg.RegisteredAt},
		})
	})
	if err != nil {
		return apierror.From(err)
	}
	return nil
}

// RegisterSolo appends a solo player inside a transaction, refusing
// team-only tournaments.
func (s *Service) RegisterSolo(ctx context.Context, id string, player SoloPlayer) error {
	docRef := s.Client.Collection(collection).Doc(id)

	err := s.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return apierror.NotFound("tournament not found")
			}
			return err
		}
		tournament, err := docToTournament(doc)
		if err != nil {
			return err
		}

		players, err := tournament.AddSoloPlayer(player)
		if err != nil {
			return err
		}

		return tx.Update(docRef, []firestore.Update{
			{Path: "SoloPlayers", Value: players},
			{Path: "UpdatedAt", Value: player.RegisteredAt},
		})
	})
	if err != nil {
		return apierror.From(err)
	}
	return nil
}

// ApproveTeam marks a pending team registration as approved.
func (s *Service) ApproveTeam(ctx context.Context, id, teamName string) error {
	docRef := s.Client.Collection(collection).Doc(id)

	err := s.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return apierror.NotFound("tournament not found")
			}
			return err
		}
		tournament, err := docToTournament(doc)
		if err != nil {
			return err
		}

		found := false
		for i := range tournament.RegisteredTeams {
			if tournament.RegisteredTeams[i].TeamName == teamName {
				tournament.RegisteredTeams[i].Approved = true
				found = true
				break
			}
		}
		if !found {
			return apierror.NotFound("team registration not found")
		}

		return tx.Update(docRef, []firestore.Update{
			{Path: "RegisteredTeams", Value: tournament.RegisteredTeams},
			{Path: "UpdatedAt", Value: time.Now()},
		})
	})
	if err != nil {
		return apierror.From(err)
	}
	return nil
}

func docToTournament(doc *firestore.DocumentSnapshot) (*Tournament, error) {
	var tournament Tournament
	if err := doc.DataTo(&tournament); err != nil {
		// If this fails, we have an inconsistency error as we control both
		// the data written to Firestore and the shape of our struct.
		return nil, xerrors.Errorf(
			"consistency error. Converting %+v to internal tournament struct failed: %w",
			doc,
			err,
		)
	}
	return &tournament, nil
}

func matchesSearch(t *Tournament, search string) bool {
	if search == "" {
		return true
	}
	needle := strings.ToLower(search)
	return strings.Contains(strings.ToLower(t.Name), needle) ||
		strings.Contains(strings.ToLower(t.Game), needle) ||
		strings.Contains(strings.ToLower(t.Description), needle)
}

func paginate(list []*Tournament, page, limit int) []*Tournament {
	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}
	start := (page - 1) * limit
	if start >= len(list) {
		return nil
	}
	end := start + limit
	if end > len(list) {
		end = len(list)
	}
	return list[start:end]
}
