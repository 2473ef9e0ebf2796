package auth

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type memoryUsers map[string]User

func (m memoryUsers) Create(_ context.Context, u User) error {
	if _, ok := m[u.Email]; ok {
		return ErrUserAlreadyExists
	}
	m[u.Email] = u
	return nil
}

func (m memoryUsers) GetByEmail(_ context.Context, email string) (User, error) {
	u, ok := m[strings.ToLower(email)]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

type stubTokens struct{}

func (stubTokens) Generate(_ context.Context, u User) (string, error) { return "token-" + u.ID.String(), nil }

type memoryRevoker map[string]time.Time

func (m memoryRevoker) Revoke(_ context.Context, id string, until time.Time) error {
	m[id] = until
	return nil
}

func (m memoryRevoker) IsRevoked(_ context.Context, id string) (bool, error) {
	_, ok := m[id]
	return ok, nil
}

func validRegistration() Registration {
	return Registration{Email: " Ada@Example.com ", Password: "s3cret-pass", FirstName: "Ada", LastName: "Lovelace", Gender: "Female"}
}

func TestRegisterHashesWithConfiguredCost(t *testing.T) {
	users := memoryUsers{}
	svc := NewAuthService(users, stubTokens{}, nil, bcrypt.MinCost)

	u, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", u.Email)
	assert.Equal(t, "female", u.Gender)
	stored := users["ada@example.com"]
	cost, err := bcrypt.Cost([]byte(stored.PasswordHash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
	assert.NotContains(t, stored.PasswordHash, "s3cret-pass")
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := NewAuthService(memoryUsers{}, stubTokens{}, nil, bcrypt.MinCost)
	_, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), validRegistration())
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestRegisterValidatesInput(t *testing.T) {
	svc := NewAuthService(memoryUsers{}, stubTokens{}, nil, bcrypt.MinCost)
	cases := map[string]func(*Registration){
		"bad email":      func(r *Registration) { r.Email = "nope" },
		"short password": func(r *Registration) { r.Password = "short" },
		"no last name":   func(r *Registration) { r.LastName = " " },
		"unknown gender": func(r *Registration) { r.Gender = "robot" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validRegistration()
			mutate(&in)
			_, err := svc.Register(context.Background(), in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestLogin(t *testing.T) {
	svc := NewAuthService(memoryUsers{}, stubTokens{}, nil, bcrypt.MinCost)
	u, err := svc.Register(context.Background(), validRegistration())
	require.NoError(t, err)

	res, err := svc.Login(context.Background(), "ADA@example.com", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, u.ID, res.User.ID)
	assert.Equal(t, "token-"+u.ID.String(), res.Token)

	_, err = svc.Login(context.Background(), "ada@example.com", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(context.Background(), "nobody@example.com", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutRevokesLiveTokens(t *testing.T) {
	revoked := memoryRevoker{}
	svc := NewAuthService(memoryUsers{}, stubTokens{}, revoked, bcrypt.MinCost)
	exp := time.Now().Add(time.Hour)

	require.NoError(t, svc.Logout(context.Background(), Session{TokenID: "abc", ExpiresAt: exp}))
	require.NoError(t, svc.Logout(context.Background(), Session{TokenID: "old", ExpiresAt: time.Now().Add(-time.Minute)}))

	assert.Equal(t, exp, revoked["abc"])
	assert.NotContains(t, revoked, "old")
}

func TestOutOfRangeCostFallsBack(t *testing.T) {
	svc := NewAuthService(memoryUsers{}, stubTokens{}, nil, 99).(*authService)
	assert.Equal(t, bcrypt.DefaultCost, svc.cost)
}
