package services

import (
	"testing"

	"membermgr_backend/internal/models"
	"membermgr_backend/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type stubAuthRepo struct {
	CreateUserFunc         func(executor repositories.SQLExecutor, user *models.User, hashedPassword string) (int64, error)
	FindUserByUsernameFunc func(username string) (*models.User, string, error)
	FindUserByIDFunc       func(userID int64) (*models.User, error)
}

func (s *stubAuthRepo) CreateUser(executor repositories.SQLExecutor, user *models.User, hashedPassword string) (int64, error) {
	if s.CreateUserFunc != nil {
		return s.CreateUserFunc(executor, user, hashedPassword)
	}
	return 1, nil
}

func (s *stubAuthRepo) FindUserByUsername(username string) (*models.User, string, error) {
	if s.FindUserByUsernameFunc != nil {
		return s.FindUserByUsernameFunc(username)
	}
	return nil, "", repositories.ErrNotFound
}

func (s *stubAuthRepo) FindUserByID(userID int64) (*models.User, error) {
	if s.FindUserByIDFunc != nil {
		return s.FindUserByIDFunc(userID)
	}
	return nil, repositories.ErrNotFound
}

func newAuthService(t *testing.T, repo *stubAuthRepo) AuthService {
	t.Helper()
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewAuthService(repo, db)
}

func TestRegisterUser_HashesPasswordAndDefaultsRole(t *testing.T) {
	var storedHash string
	repo := &stubAuthRepo{
		CreateUserFunc: func(executor repositories.SQLExecutor, user *models.User, hashedPassword string) (int64, error) {
			storedHash = hashedPassword
			return 3, nil
		},
	}
	svc := newAuthService(t, repo)

	user, err := svc.RegisterUser(models.RegistrationPayload{
		Username: "clerk", Password: "correct horse battery",
	})

	require.NoError(t, err)
	assert.Equal(t, int64(3), user.ID)
	assert.Equal(t, "Staff", user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "correct horse battery", storedHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(storedHash), []byte("correct horse battery")))
}

func TestRegisterUser_ShortPassword(t *testing.T) {
	svc := newAuthService(t, &stubAuthRepo{})

	_, err := svc.RegisterUser(models.RegistrationPayload{Username: "clerk", Password: "short"})
	assert.ErrorIs(t, err, ErrAuthValidation)
}

func TestRegisterUser_DuplicateUsername(t *testing.T) {
	repo := &stubAuthRepo{
		CreateUserFunc: func(executor repositories.SQLExecutor, user *models.User, hashedPassword string) (int64, error) {
			return 0, repositories.ErrDuplicateKey
		},
	}
	svc := newAuthService(t, repo)

	_, err := svc.RegisterUser(models.RegistrationPayload{Username: "clerk", Password: "long enough pw"})
	assert.ErrorIs(t, err, ErrUsernameExists)
}

func loginRepo(t *testing.T, password string, active bool) *stubAuthRepo {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &stubAuthRepo{
		FindUserByUsernameFunc: func(username string) (*models.User, string, error) {
			return &models.User{ID: 3, Username: username, Role: "Staff", IsActive: active}, string(hash), nil
		},
	}
}

func TestLogin_IssuesTokenPair(t *testing.T) {
	svc := newAuthService(t, loginRepo(t, "long enough pw", true))

	user, pair, err := svc.Login(models.Credentials{Username: "clerk", Password: "long enough pw"})

	require.NoError(t, err)
	assert.Equal(t, int64(3), user.ID)
	require.NotNil(t, pair)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc := newAuthService(t, loginRepo(t, "long enough pw", true))

	_, _, err := svc.Login(models.Credentials{Username: "clerk", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := newAuthService(t, &stubAuthRepo{})

	_, _, err := svc.Login(models.Credentials{Username: "ghost", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_InactiveUser(t *testing.T) {
	svc := newAuthService(t, loginRepo(t, "long enough pw", false))

	_, _, err := svc.Login(models.Credentials{Username: "clerk", Password: "long enough pw"})
	assert.ErrorIs(t, err, ErrUserInactive)
}

func TestRefreshToken_RoundTrip(t *testing.T) {
	repo := &stubAuthRepo{
		FindUserByIDFunc: func(userID int64) (*models.User, error) {
			return &models.User{ID: userID, Username: "clerk", Role: "Staff", IsActive: true}, nil
		},
	}
	svc := newAuthService(t, loginRepo(t, "long enough pw", true))
	_, pair, err := svc.Login(models.Credentials{Username: "clerk", Password: "long enough pw"})
	require.NoError(t, err)

	refreshed, err := newAuthService(t, repo).RefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
}

func TestRefreshToken_Garbage(t *testing.T) {
	svc := newAuthService(t, &stubAuthRepo{})

	_, err := svc.RefreshToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
