package admin

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/campusarena/tournament-api/pkg/apierror"
	pkgauth "github.com/campusarena/tournament-api/pkg/auth"
	users "github.com/campusarena/tournament-api/repos/users"
)

type AdminService struct {
	usersRepo *users.Service
}

func NewAdminService(usersRepo *users.Service) *AdminService {
	return &AdminService{
		usersRepo: usersRepo,
	}
}

func (s *AdminService) ListUsers(c *gin.Context) ([]*users.User, error) {
	return s.usersRepo.List(c)
}

// SetActive deactivates or reactivates an account. Users are never hard
// deleted.
func (s *AdminService) SetActive(c *gin.Context, id string, active bool) error {
	return s.usersRepo.SetActive(c, id, active)
}

// Restrict blocks logins until the given time.
func (s *AdminService) Restrict(c *gin.Context, id string, until time.Time) error {
	if !until.After(time.Now()) {
		return apierror.Validation("validation failed", apierror.FieldError{
			Field:   "until",
			Message: "restriction must end in the future",
		})
	}
	return s.usersRepo.Restrict(c, id, until)
}

// Warn appends an admin note to the user record.
func (s *AdminService) Warn(c *gin.Context, id, message string) error {
	claims := pkgauth.Claims(c)
	return s.usersRepo.AddWarning(c, id, users.Warning{
		Message:  message,
		IssuedBy: claims.UserID,
		IssuedAt: time.Now(),
	})
}
