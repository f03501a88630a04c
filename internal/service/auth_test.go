package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/library-catalog/internal/auth"
)

func newAuthService(users UserStore) (*AuthService, *auth.TokenManager) {
	tm := auth.NewTokenManager("test-secret", "library-catalog", "library-catalog", 7)
	return NewAuthService(users, tm, bcrypt.MinCost), tm
}

func validRegistration() RegisterInput {
	return RegisterInput{
		Username: "alice",
		Email:    "a@x.com",
		Password: "pw123456",
		FullName: "Alice Example",
	}
}

func TestRegisterSuccess(t *testing.T) {
	users, _ := newMemStore()
	svc, tm := newAuthService(users)

	res, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)
	require.NotNil(t, res)

	assert.Equal(t, "alice", res.Username)
	assert.Equal(t, "a@x.com", res.Email)
	require.NotNil(t, res.FullName)
	assert.Equal(t, "Alice Example", *res.FullName)
	assert.NotZero(t, res.ID)

	// The returned token must verify back to the new user's id.
	id, err := tm.Verify(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.ID, id.ID)

	// The stored record has a hash, never the raw password.
	stored := users.get(res.ID)
	require.NotNil(t, stored)
	assert.NotEqual(t, "pw123456", stored.PasswordHash)
	assert.True(t, auth.VerifyPassword(stored.PasswordHash, "pw123456"))
	assert.Nil(t, stored.LastLoginAt)
}

func TestRegisterDuplicateUsernameAnyCase(t *testing.T) {
	users, _ := newMemStore()
	svc, _ := newAuthService(users)

	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	in := validRegistration()
	in.Username = "ALICE"
	in.Email = "other@x.com"
	_, err = svc.Register(context.Background(), in)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, 1, users.userCount())
}

func TestRegisterDuplicateEmailAnyCase(t *testing.T) {
	users, _ := newMemStore()
	svc, _ := newAuthService(users)

	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	in := validRegistration()
	in.Username = "bob"
	in.Email = "A@X.COM"
	_, err = svc.Register(context.Background(), in)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Equal(t, 1, users.userCount())
}

func TestRegisterValidation(t *testing.T) {
	users, _ := newMemStore()
	svc, _ := newAuthService(users)

	cases := []struct {
		name  string
		mut   func(*RegisterInput)
		field string
	}{
		{"short username", func(in *RegisterInput) { in.Username = "ab" }, "username"},
		{"missing email", func(in *RegisterInput) { in.Email = "" }, "email"},
		{"malformed email", func(in *RegisterInput) { in.Email = "not-an-email" }, "email"},
		{"short password", func(in *RegisterInput) { in.Password = "pw" }, "password"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validRegistration()
			tc.mut(&in)
			_, err := svc.Register(context.Background(), in)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tc.field)
		})
	}
	assert.Equal(t, 0, users.userCount())
}

func TestLoginSuccessUpdatesLastLogin(t *testing.T) {
	users, _ := newMemStore()
	svc, tm := newAuthService(users)

	reg, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	for _, identifier := range []string{"alice", "a@x.com"} {
		res, err := svc.Login(context.Background(), identifier, "pw123456")
		require.NoError(t, err, "login with %q", identifier)

		id, err := tm.Verify(res.Token)
		require.NoError(t, err)
		assert.Equal(t, reg.ID, id.ID)
	}

	stored := users.get(reg.ID)
	require.NotNil(t, stored)
	assert.NotNil(t, stored.LastLoginAt)
}

func TestLoginFailuresIndistinguishable(t *testing.T) {
	users, _ := newMemStore()
	svc, _ := newAuthService(users)

	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	// Unknown identifier and wrong password yield the same error.
	_, unknownErr := svc.Login(context.Background(), "nobody", "pw123456")
	_, wrongPwErr := svc.Login(context.Background(), "alice", "wrong-password")

	assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPwErr, ErrInvalidCredentials)
	assert.Equal(t, unknownErr, wrongPwErr)
}

func TestLoginIdentifierIsCaseSensitive(t *testing.T) {
	users, _ := newMemStore()
	svc, _ := newAuthService(users)

	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	// Registration uniqueness ignores case, but the login lookup is an
	// exact match. A different-case identifier does not log in.
	_, err = svc.Login(context.Background(), "Alice", "pw123456")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), "A@X.COM", "pw123456")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterWithoutFullName(t *testing.T) {
	users, _ := newMemStore()
	svc, _ := newAuthService(users)

	in := validRegistration()
	in.FullName = "  "
	res, err := svc.Register(context.Background(), in)
	require.NoError(t, err)
	assert.Nil(t, res.FullName)
}
