package users

import (
	"context"
	"log"
	"time"

	"cloud.google.com/go/firestore"
	"golang.org/x/xerrors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/campusarena/tournament-api/pkg/apierror"
)

const collection = "Users"

// Service persists user identities in Firestore.
type Service struct {
	Client *firestore.Client
}

func NewService(client *firestore.Client) *Service {
	return &Service{
		Client: client,
	}
}

// Create writes a new user after checking the unique email and college id.
// The check and the write are separate reads against the store, matching
// the single-writer-per-document model; a duplicate slipping through
// between them surfaces on login as two candidate documents, of which the
// oldest wins.
func (s *Service) Create(ctx context.Context, user *User) error {
	_, lookupErr := s.GetByEmail(ctx, user.Email)
	free, err := emailFree(lookupErr)
	if err != nil {
		return err
	}
	if !free {
		return apierror.Duplicate("email already registered")
	}
	if taken, err := s.collegeIDTaken(ctx, user.CollegeID); err != nil {
		return err
	} else if taken {
		return apierror.Duplicate("college id already registered")
	}

	_, err = s.Client.Collection(collection).Doc(user.ID).Set(ctx, user)
	if err != nil {
		log.Printf("Failed to write user to Firestore: %v\n", err)
		return apierror.Internal(err)
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id string) (*User, error) {
	doc, err := s.Client.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, apierror.NotFound("user not found")
		}
		log.Printf("Failed to get user from Firestore: %v\n", err)
		return nil, apierror.Internal(err)
	}
	return docToUser(doc)
}

func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	iter := s.Client.Collection(collection).
		Where("Email", "==", email).
		OrderBy("CreatedAt", firestore.Asc).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	doc, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return nil, apierror.NotFound("user not found")
		}
		log.Printf("Failed to query user by email: %v\n", err)
		return nil, apierror.Internal(err)
	}
	return docToUser(doc)
}

func (s *Service) List(ctx context.Context) ([]*User, error) {
	docs, err := s.Client.Collection(collection).Documents(ctx).GetAll()
	if err != nil {
		log.Printf("Failed to list users from Firestore: %v\n", err)
		return nil, apierror.Internal(err)
	}

	var list []*User
	for _, doc := range docs {
		user, err := docToUser(doc)
		if err != nil {
			return nil, err
		}
		list = append(list, user)
	}
	return list, nil
}

// RecordLogin updates the login bookkeeping fields.
func (s *Service) RecordLogin(ctx context.Context, id string) error {
	_, err := s.Client.Collection(collection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "LastLogin", Value: time.Now()},
		{Path: "LoginCount", Value: firestore.Increment(1)},
	})
	if err != nil {
		log.Printf("Failed to record login in Firestore: %v\n", err)
		return apierror.Internal(err)
	}
	return nil
}

func (s *Service) SetActive(ctx context.Context, id string, active bool) error {
	_, err := s.Client.Collection(collection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "IsActive", Value: active},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return apierror.NotFound("user not found")
		}
		log.Printf("Failed to update user in Firestore: %v\n", err)
		return apierror.Internal(err)
	}
	return nil
}

func (s *Service) Restrict(ctx context.Context, id string, until time.Time) error {
	_, err := s.Client.Collection(collection).Doc(id).Update(ctx, []firestore.Update{
		{Path: "RestrictedUntil", Value: until},
	})
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return apierror.NotFound("user not found")
		}
		log.Printf("Failed to update user in Firestore: %v\n", err)
		return apierror.Internal(err)
	}
	return nil
}

// AddWarning appends an admin note inside a transaction so concurrent
// warnings do not overwrite each other.
func (s *Service) AddWarning(ctx context.Context, id string, warning Warning) error {
	docRef := s.Client.Collection(collection).Doc(id)

	err := s.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return apierror.NotFound("user not found")
			}
			return err
		}
		user, err := docToUser(doc)
		if err != nil {
			return err
		}

		return tx.Update(docRef, []firestore.Update{
			{Path: "Warnings", Value: append(user.Warnings, warning)},
		})
	})
	if err != nil {
		return apierror.From(err)
	}
	return nil
}

// emailFree interprets a GetByEmail result for the uniqueness check: only
// the NotFound sentinel means the address is free. Any other lookup
// failure aborts the create instead of skipping the check.
func emailFree(lookupErr error) (bool, error) {
	if lookupErr == nil {
		return false, nil
	}
	if apierror.IsNotFound(lookupErr) {
		return true, nil
	}
	return false, lookupErr
}

func (s *Service) collegeIDTaken(ctx context.Context, collegeID string) (bool, error) {
	iter := s.Client.Collection(collection).Where("CollegeID", "==", collegeID).Limit(1).Documents(ctx)
	defer iter.Stop()

	_, err := iter.Next()
	if err != nil {
		if err == iterator.Done {
			return false, nil
		}
		log.Printf("Failed to query user by college id: %v\n", err)
		return false, apierror.Internal(err)
	}
	return true, nil
}

func docToUser(doc *firestore.DocumentSnapshot) (*User, error) {
	var user User
	if err := doc.DataTo(&user); err != nil {
		// If this fails, we have an inconsistency error as we control both
		// the data written to Firestore and the shape of our struct.
		return nil, xerrors.Errorf(
			"consistency error. Converting %+v to internal user struct failed: %w",
			doc,
			err,
		)
	}
	return &user, nil
}
