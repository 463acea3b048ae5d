package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusarena/tournament-api/pkg/apierror"
	"github.com/campusarena/tournament-api/pkg/roles"
	"github.com/campusarena/tournament-api/pkg/token"
	users "github.com/campusarena/tournament-api/repos/users"
)

// fakeUserStore keeps users in memory so the credential and account-state
// checks can run without a Firestore client.
type fakeUserStore struct {
	byEmail map[string]*users.User
	created []*users.User
	logins  []string
}

func newFakeUserStore(existing ...*users.User) *fakeUserStore {
	store := &fakeUserStore{byEmail: map[string]*users.User{}}
	for _, user := range existing {
		store.byEmail[user.Email] = user
	}
	return store
}

func (f *fakeUserStore) Create(_ context.Context, user *users.User) error {
	if _, ok := f.byEmail[user.Email]; ok {
		return apierror.Duplicate("email already registered")
	}
	f.byEmail[user.Email] = user
	f.created = append(f.created, user)
	return nil
}

func (f *fakeUserStore) Get(_ context.Context, id string) (*users.User, error) {
	for _, user := range f.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, apierror.NotFound("user not found")
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*users.User, error) {
	if user, ok := f.byEmail[email]; ok {
		return user, nil
	}
	return nil, apierror.NotFound("user not found")
}

func (f *fakeUserStore) RecordLogin(_ context.Context, id string) error {
	f.logins = append(f.logins, id)
	return nil
}

func testContext(t *testing.T) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	return c
}

func storedUser(t *testing.T, password string) *users.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &users.User{
		ID:           "usr-1",
		Email:        "maria@college.edu",
		CollegeID:    "CS2021042",
		PasswordHash: string(hash),
		FullName:     "Maria Ortega",
		PrimaryRole:  roles.Student,
		IsActive:     true,
	}
}

func errorCode(t *testing.T, err error) string {
	t.Helper()
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	return apiErr.Code
}

func TestLoginIssuesTokenAndRecordsLogin(t *testing.T) {
	store := newFakeUserStore(storedUser(t, "hunter2secret"))
	tokens := token.NewService("test-secret")
	svc := NewAuthService(store, tokens)

	user, signed, err := svc.Login(testContext(t), LoginRequest{
		Email:    "maria@college.edu",
		Password: "hunter2secret",
	})
	require.NoError(t, err)

	claims, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, []string{"usr-1"}, store.logins)
}

func TestLoginWrongPassword(t *testing.T) {
	store := newFakeUserStore(storedUser(t, "hunter2secret"))
	svc := NewAuthService(store, token.NewService("test-secret"))

	_, _, err := svc.Login(testContext(t), LoginRequest{
		Email:    "maria@college.edu",
		Password: "not-the-password",
	})
	assert.Equal(t, "Unauthenticated", errorCode(t, err))
	assert.Empty(t, store.logins)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := NewAuthService(newFakeUserStore(), token.NewService("test-secret"))

	_, _, err := svc.Login(testContext(t), LoginRequest{
		Email:    "nobody@college.edu",
		Password: "hunter2secret",
	})
	assert.Equal(t, "Unauthenticated", errorCode(t, err))
}

func TestLoginDeactivatedAccount(t *testing.T) {
	user := storedUser(t, "hunter2secret")
	user.IsActive = false
	store := newFakeUserStore(user)
	svc := NewAuthService(store, token.NewService("test-secret"))

	// The password is right; the account state must still block the login.
	_, _, err := svc.Login(testContext(t), LoginRequest{
		Email:    "maria@college.edu",
		Password: "hunter2secret",
	})
	require.Error(t, err)
	assert.Equal(t, "Forbidden", errorCode(t, err))
	assert.Equal(t, http.StatusForbidden, apierror.From(err).Status)
	assert.Empty(t, store.logins)
}

func TestLoginRestrictedAccount(t *testing.T) {
	user := storedUser(t, "hunter2secret")
	user.RestrictedUntil = time.Now().Add(24 * time.Hour)
	svc := NewAuthService(newFakeUserStore(user), token.NewService("test-secret"))

	_, _, err := svc.Login(testContext(t), LoginRequest{
		Email:    "maria@college.edu",
		Password: "hunter2secret",
	})
	assert.Equal(t, "Forbidden", errorCode(t, err))
}

func TestRegisterRejectsPrivilegedRole(t *testing.T) {
	store := newFakeUserStore()
	svc := NewAuthService(store, token.NewService("test-secret"))

	_, _, err := svc.Register(testContext(t), RegisterRequest{
		Email:       "dean@college.edu",
		Password:    "hunter2secret",
		CollegeID:   "FAC100",
		FullName:    "Dean Vega",
		PrimaryRole: roles.Faculty,
	})
	assert.Equal(t, "ValidationFailed", errorCode(t, err))
	assert.Empty(t, store.created, "nothing may be written for a rejected role")
}

func TestRegisterDefaultsToStudent(t *testing.T) {
	store := newFakeUserStore()
	tokens := token.NewService("test-secret")
	svc := NewAuthService(store, tokens)

	user, signed, err := svc.Register(testContext(t), RegisterRequest{
		Email:     "maria@college.edu",
		Password:  "hunter2secret",
		CollegeID: "CS2021042",
		FullName:  "Maria Ortega",
	})
	require.NoError(t, err)
	assert.Equal(t, roles.Student, user.PrimaryRole)
	assert.True(t, user.IsActive)

	claims, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, roles.Student, claims.Role)
}

func TestIssueTokenCarriesIdentity(t *testing.T) {
	tokens := token.NewService("test-secret")
	svc := NewAuthService(nil, tokens)

	user := &users.User{
		ID:             "usr-1",
		Email:          "maria@college.edu",
		CollegeID:      "CS2021042",
		FullName:       "Maria Ortega",
		PrimaryRole:    roles.Organizer,
		SecondaryRoles: []string{roles.ScoreReporter},
		EmailVerified:  true,
	}

	signed, err := svc.issueToken(user)
	require.NoError(t, err)

	claims, err := tokens.Verify(signed)
	require.NoError(t, err)

	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, user.Email, claims.Email)
	assert.Equal(t, user.PrimaryRole, claims.Role)
	assert.Equal(t, user.SecondaryRoles, claims.SecondaryRoles)
	assert.Equal(t, user.CollegeID, claims.CollegeID)
	assert.Equal(t, user.FullName, claims.FullName)
	assert.True(t, claims.EmailVerified)
}
