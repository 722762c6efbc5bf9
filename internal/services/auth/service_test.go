package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/goleak"
	"golang.org/x/crypto/bcrypt"

	"github.com/gamehub/gamehub-go/internal/dependencies/mocks"
	"github.com/gamehub/gamehub-go/internal/model"
	"github.com/gamehub/gamehub-go/internal/storage/memory"
	"github.com/gamehub/gamehub-go/internal/testutil"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type ServiceSuite struct {
	suite.Suite
	storage *testutil.CountingStorage
	clock   *mocks.MockClock
	ids     *mocks.MockIDs
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.storage = testutil.NewCountingStorage(memory.New())
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.ids = mocks.NewMockIDs()
	cfg := DefaultConfig()
	cfg.PasswordCost = bcrypt.MinCost
	s.service = New(s.storage, s.clock, s.ids, cfg, testutil.NopLogger())
	s.ctx = context.Background()
}

// Signup tests

func (s *ServiceSuite) TestSignupSucceeds() {
	s.ids.Queue("user-1")

	user, err := s.service.Signup(s.ctx, "alice", "alice@example.com", "password123")
	s.Require().NoError(err)

	s.Equal(model.UserID("user-1"), user.ID)
	s.Equal("alice", user.Username)
	s.Equal("alice@example.com", user.Email)
	s.True(s.clock.Now().Equal(user.CreatedAt))
}

func (s *ServiceSuite) TestSignupPersistsHashedPassword() {
	user, _ := s.service.Signup(s.ctx, "alice", "alice@example.com", "password123")

	stored, err := s.storage.GetUser(s.ctx, user.ID)
	s.Require().NoError(err)
	s.NotEmpty(stored.PasswordHash)
	s.NotEqual("password123", stored.PasswordHash) // Should be hashed
	s.NoError(bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")))
}

func (s *ServiceSuite) TestSignupSaltsHashes() {
	u1, _ := s.service.Signup(s.ctx, "alice", "alice@example.com", "same")
	u2, _ := s.service.Signup(s.ctx, "bob", "bob@example.com", "same")

	s.NotEqual(u1.PasswordHash, u2.PasswordHash)
}

func (s *ServiceSuite) TestSignupDefaultsUsernameFromEmail() {
	user, err := s.service.Signup(s.ctx, "", "carol@example.com", "password123")
	s.Require().NoError(err)
	s.Equal("carol", user.Username)
}

func (s *ServiceSuite) TestSignupFailsIfEmailExists() {
	_, _ = s.service.Signup(s.ctx, "alice", "alice@example.com", "password123")
	writes := s.storage.Calls("CreateUser")

	_, err := s.service.Signup(s.ctx, "alice2", "alice@example.com", "different")
	s.ErrorIs(err, ErrEmailExists)
	s.Equal(writes, s.storage.Calls("CreateUser"), "duplicate signup must not write")
}

func (s *ServiceSuite) TestSignupMapsStoreLevelDuplicate() {
	s.storage.FailNext("GetUserByEmail", model.ErrUserNotFound)
	s.storage.FailNext("CreateUser", model.ErrDuplicateEmail)

	_, err := s.service.Signup(s.ctx, "alice", "alice@example.com", "password123")
	s.ErrorIs(err, ErrEmailExists)
}

func (s *ServiceSuite) TestSignupPropagatesStorageFailure() {
	boom := errors.New("store unavailable")
	s.storage.FailNext("GetUserByEmail", boom)

	_, err := s.service.Signup(s.ctx, "alice", "alice@example.com", "password123")
	s.ErrorIs(err, boom)
}

// Login tests

func (s *ServiceSuite) TestLoginSucceeds() {
	signedUp, _ := s.service.Signup(s.ctx, "alice", "alice@example.com", "password123")

	user, err := s.service.Login(s.ctx, "alice@example.com", "password123")
	s.Require().NoError(err)
	s.Equal(signedUp.ID, user.ID)
}

func (s *ServiceSuite) TestLoginFailsWithWrongPassword() {
	_, _ = s.service.Signup(s.ctx, "alice", "alice@example.com", "password123")

	_, err := s.service.Login(s.ctx, "alice@example.com", "wrongpassword")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginFailsWithUnknownEmail() {
	_, err := s.service.Login(s.ctx, "nobody@example.com", "password123")
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *ServiceSuite) TestLoginFailuresAreIndistinguishable() {
	_, _ = s.service.Signup(s.ctx, "alice", "alice@example.com", "password123")

	_, wrongPassword := s.service.Login(s.ctx, "alice@example.com", "wrong")
	_, unknownEmail := s.service.Login(s.ctx, "nobody@example.com", "wrong")
	s.Equal(wrongPassword, unknownEmail)
}

func (s *ServiceSuite) TestLoginComparesHashForUnknownEmail() {
	_, _ = s.service.Signup(s.ctx, "alice", "alice@example.com", "password123")

	var hashes [][]byte
	compare := s.service.compareHash
	s.service.compareHash = func(hash, password []byte) error {
		hashes = append(hashes, hash)
		return compare(hash, password)
	}

	_, err := s.service.Login(s.ctx, "alice@example.com", "wrong")
	s.Require().ErrorIs(err, ErrInvalidCredentials)
	_, err = s.service.Login(s.ctx, "nobody@example.com", "wrong")
	s.Require().ErrorIs(err, ErrInvalidCredentials)
	_, err = s.service.Login(s.ctx, "nobody@example.com", "again")
	s.Require().ErrorIs(err, ErrInvalidCredentials)

	s.Require().Len(hashes, 3, "every failed login runs one comparison")

	cost, err := bcrypt.Cost(hashes[1])
	s.Require().NoError(err)
	s.Equal(bcrypt.MinCost, cost, "unknown emails compare at the configured cost")
	s.Equal(hashes[1], hashes[2], "the unknown-email hash is built once")
}

// Resolve tests

func (s *ServiceSuite) TestResolveKnownToken() {
	signedUp, _ := s.service.Signup(s.ctx, "alice", "alice@example.com", "password123")

	user, err := s.service.Resolve(s.ctx, string(signedUp.ID))
	s.Require().NoError(err)
	s.Require().NotNil(user)
	s.Equal(signedUp.ID, user.ID)
	s.Equal("alice@example.com", user.Email)
}

func (s *ServiceSuite) TestResolveIsIdempotent() {
	signedUp, _ := s.service.Signup(s.ctx, "alice", "alice@example.com", "password123")

	first, err := s.service.Resolve(s.ctx, string(signedUp.ID))
	s.Require().NoError(err)
	second, err := s.service.Resolve(s.ctx, string(signedUp.ID))
	s.Require().NoError(err)
	s.Equal(first, second)
}

func (s *ServiceSuite) TestResolveEmptyTokenSkipsStorage() {
	user, err := s.service.Resolve(s.ctx, "")
	s.NoError(err)
	s.Nil(user)
	s.Zero(s.storage.Calls("GetUser"))
}

func (s *ServiceSuite) TestResolveUnknownTokenIsNotAnError() {
	for _, token := range []string{"nonexistent", "not a uuid at all", "'; drop table users; --"} {
		user, err := s.service.Resolve(s.ctx, token)
		s.NoError(err)
		s.Nil(user)
	}
}

func (s *ServiceSuite) TestResolvePropagatesStorageFailure() {
	boom := errors.New("store unavailable")
	s.storage.FailNext("GetUser", boom)

	user, err := s.service.Resolve(s.ctx, "user-1")
	s.ErrorIs(err, boom)
	s.Nil(user)
}

func (s *ServiceSuite) TestSessionMaxAgeDefaultsToSevenDays() {
	svc := New(s.storage, s.clock, s.ids, Config{}, testutil.NopLogger())
	s.Equal(7*24*time.Hour, svc.SessionMaxAge())
}
