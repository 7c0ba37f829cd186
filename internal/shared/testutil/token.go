package testutil

import (
	"testing"

	"github.com/changhyeonkim/together-culture/go-api-server/internal/model"
	"github.com/changhyeonkim/together-culture/go-api-server/internal/shared/token"
	"gorm.io/gorm"
)

// NewTokenManager returns a real JWT manager over the test config
func NewTokenManager() *token.JWTManager {
	return token.NewJWTManager(NewTestConfig())
}

// TestAccount is a persisted user + member pair with a ready access token
type TestAccount struct {
	User   *model.User
	Member *model.Member
	Token  string
}

// CreateAccount inserts a user and linked member and signs an access token for them.
// The password hash is a placeholder; use the auth API when a real login is needed.
func CreateAccount(t *testing.T, db *gorm.DB, tm token.Manager, email string, isAdmin bool) *TestAccount {
	t.Helper()

	user := model.NewUser(email, "not-a-real-hash", "Test", "User")
	user.IsAdmin = isAdmin
	MustCreate(t, db, user)

	member := model.NewMember(user.ID, user.FirstName, user.LastName)
	MustCreate(t, db, member)

	access, err := tm.GenerateAccessToken(token.Identity{
		UserID:   user.ID,
		MemberID: member.ID,
		Email:    user.Email,
		Name:     user.FullName(),
		IsAdmin:  isAdmin,
	})
	if err != nil {
		t.Fatalf("Failed to sign access token: %v", err)
	}

	return &TestAccount{User: user, Member: member, Token: access}
}
