package auth

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samborkent/uuidv7"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusarena/tournament-api/pkg/apierror"
	pkgauth "github.com/campusarena/tournament-api/pkg/auth"
	"github.com/campusarena/tournament-api/pkg/roles"
	"github.com/campusarena/tournament-api/pkg/token"
	users "github.com/campusarena/tournament-api/repos/users"
)

// UserStore is the identity storage the auth flows need. Satisfied by
// *users.Service.
type UserStore interface {
	Create(ctx context.Context, user *users.User) error
	Get(ctx context.Context, id string) (*users.User, error)
	GetByEmail(ctx context.Context, email string) (*users.User, error)
	RecordLogin(ctx context.Context, id string) error
}

type AuthService struct {
	usersRepo UserStore
	tokens    *token.Service
}

func NewAuthService(usersRepo UserStore, tokens *token.Service) *AuthService {
	return &AuthService{
		usersRepo: usersRepo,
		tokens:    tokens,
	}
}

// Register creates an identity and issues its first token. Faculty and
// admin accounts are provisioned by administrators, not self-registered.
func (s *AuthService) Register(c *gin.Context, req RegisterRequest) (*users.User, string, error) {
	primaryRole := req.PrimaryRole
	if primaryRole == "" {
		primaryRole = roles.Student
	}
	if !roles.SelfAssignable(primaryRole) {
		return nil, "", apierror.Validation("validation failed", apierror.FieldError{
			Field:   "primaryRole",
			Message: "role cannot be self-assigned",
		})
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", apierror.Internal(err)
	}

	user := &users.User{
		ID:           uuidv7.New().String(),
		Email:        req.Email,
		CollegeID:    req.CollegeID,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Department:   req.Department,
		YearOfStudy:  req.YearOfStudy,
		PrimaryRole:  primaryRole,
		IsActive:     true,
		CreatedAt:    time.Now(),
	}

	if err := s.usersRepo.Create(c, user); err != nil {
		return nil, "", err
	}

	tok, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, tok, nil
}

// Login checks credentials against the stored hash and re-checks current
// account state, since outstanding tokens are never revoked.
func (s *AuthService) Login(c *gin.Context, req LoginRequest) (*users.User, string, error) {
	user, err := s.usersRepo.GetByEmail(c, req.Email)
	if err != nil {
		return nil, "", apierror.Unauthenticated("invalid credentials")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, "", apierror.Unauthenticated("invalid credentials")
	}
	if !user.IsActive {
		return nil, "", apierror.Forbidden("account is deactivated")
	}
	if user.Restricted(time.Now()) {
		return nil, "", apierror.Forbidden("account is restricted")
	}

	if err := s.usersRepo.RecordLogin(c, user.ID); err != nil {
		log.Printf("Failed to record login for %s: %v\n", user.ID, err)
	}

	tok, err := s.issueToken(user)
	if err != nil {
		return nil, "", err
	}
	return user, tok, nil
}

// Me returns the current identity, freshly loaded so deactivation since
// token issuance is visible.
func (s *AuthService) Me(c *gin.Context) (*users.User, error) {
	claims := pkgauth.Claims(c)
	if claims == nil {
		return nil, apierror.Unauthenticated("not authenticated")
	}

	user, err := s.usersRepo.Get(c, claims.UserID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, apierror.Forbidden("account is deactivated")
	}
	return user, nil
}

func (s *AuthService) issueToken(user *users.User) (string, error) {
	tok, err := s.tokens.Issue(token.Claims{
		UserID:         user.ID,
		Email:          user.Email,
		Role:           user.PrimaryRole,
		SecondaryRoles: user.SecondaryRoles,
		CollegeID:      user.CollegeID,
		FullName:       user.FullName,
		EmailVerified:  user.EmailVerified,
	})
	if err != nil {
		return "", apierror.Internal(err)
	}
	return tok, nil
}
