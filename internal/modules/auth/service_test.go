package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"varanbook/internal/database"
	"varanbook/internal/domain"
	jwtsvc "varanbook/internal/pkg/jwt"
	"varanbook/internal/pkg/password"
	"varanbook/internal/repository"
)

// Mock User Repository implementing the interface
type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *mockUserRepo) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

func (m *mockUserRepo) TouchLastLogin(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Mock Tenant Repository
type mockTenantRepo struct {
	mock.Mock
}

func (m *mockTenantRepo) GetActiveByID(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

// Mock Refresh Token Repository
type mockRefreshTokenRepo struct {
	mock.Mock
}

func (m *mockRefreshTokenRepo) Create(ctx context.Context, t *domain.RefreshToken) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockRefreshTokenRepo) GetByHash(ctx context.Context, hash string) (*domain.RefreshToken, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RefreshToken), args.Error(1)
}

func (m *mockRefreshTokenRepo) Revoke(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockRefreshTokenRepo) DB() *gorm.DB {
	return &gorm.DB{} // dummy, rotation is covered by the e2e suite
}

// Mock Password Reset Repository
type mockPasswordResetRepo struct {
	mock.Mock
}

func (m *mockPasswordResetRepo) Create(ctx context.Context, t *domain.PasswordResetToken) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *mockPasswordResetRepo) GetUnusedByHash(ctx context.Context, hash string) (*domain.PasswordResetToken, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PasswordResetToken), args.Error(1)
}

// Mock token service
type mockTokenService struct {
	mock.Mock
}

func (m *mockTokenService) Generate(userID uuid.UUID, tenantID *uuid.UUID, role string, kind jwtsvc.TokenKind) (string, error) {
	args := m.Called(userID, tenantID, role, kind)
	return args.String(0), args.Error(1)
}

func (m *mockTokenService) Verify(token string, kind jwtsvc.TokenKind) (*jwtsvc.Claims, error) {
	args := m.Called(token, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwtsvc.Claims), args.Error(1)
}

func (m *mockTokenService) AccessTTL() time.Duration  { return time.Hour }
func (m *mockTokenService) RefreshTTL() time.Duration { return 168 * time.Hour }

// Mock password hasher
type mockHasher struct {
	mock.Mock
}

func (m *mockHasher) Hash(plain string) (string, error) {
	args := m.Called(plain)
	return args.String(0), args.Error(1)
}

func (m *mockHasher) Verify(plain, digest string) bool {
	args := m.Called(plain, digest)
	return args.Bool(0)
}

// Mock email sender
type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) Send(to, subject string, params map[string]string) error {
	args := m.Called(to, subject, params)
	return args.Error(0)
}

type deps struct {
	users    *mockUserRepo
	tenants  *mockTenantRepo
	sessions *mockRefreshTokenRepo
	resets   *mockPasswordResetRepo
	tokens   *mockTokenService
	hasher   *mockHasher
	mailer   *mockMailer
}

func newService() (*Service, deps) {
	d := deps{
		users:    new(mockUserRepo),
		tenants:  new(mockTenantRepo),
		sessions: new(mockRefreshTokenRepo),
		resets:   new(mockPasswordResetRepo),
		tokens:   new(mockTokenService),
		hasher:   new(mockHasher),
		mailer:   new(mockMailer),
	}
	svc := NewService(d.users, d.tenants, d.sessions, d.resets, d.tokens, d.hasher, d.mailer, time.Hour)
	return svc, d
}

func TestService_Login_Success(t *testing.T) {
	svc, d := newService()

	tenantID := uuid.New()
	user := &domain.User{
		ID:           uuid.New(),
		TenantID:     &tenantID,
		Email:        "user@example.com",
		PasswordHash: "digest",
		Role:         domain.RoleMember,
		IsActive:     true,
	}

	d.users.On("GetByEmail", mock.Anything, "user@example.com").Return(user, nil)
	d.hasher.On("Verify", "Pass#1234", "digest").Return(true)
	d.tenants.On("GetActiveByID", mock.Anything, tenantID).Return(&domain.Tenant{ID: tenantID, IsActive: true}, nil)
	d.users.On("TouchLastLogin", mock.Anything, user.ID).Return(nil)
	d.tokens.On("Generate", user.ID, &tenantID, "member", jwtsvc.KindAccess).Return("access-token", nil)
	d.tokens.On("Generate", user.ID, &tenantID, "member", jwtsvc.KindRefresh).Return("refresh-token", nil)
	d.sessions.On("Create", mock.Anything, mock.Anything).Return(nil)

	tokens, err := svc.Login(context.Background(), LoginRequest{
		Email:    "user@example.com",
		Password: "Pass#1234",
	}, "test-agent")

	assert.NoError(t, err)
	assert.Equal(t, "access-token", tokens.AccessToken)
	assert.Equal(t, "refresh-token", tokens.RefreshToken)
	assert.Equal(t, "bearer", tokens.TokenType)
	assert.EqualValues(t, 3600, tokens.ExpiresIn)

	d.users.AssertExpectations(t)
	d.sessions.AssertExpectations(t)
}

func TestService_Login_WrongPassword(t *testing.T) {
	svc, d := newService()

	user := &domain.User{ID: uuid.New(), Email: "user@example.com", PasswordHash: "digest", IsActive: true}
	d.users.On("GetByEmail", mock.Anything, "user@example.com").Return(user, nil)
	d.hasher.On("Verify", "wrong", "digest").Return(false)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "user@example.com", Password: "wrong"}, "")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_UnknownEmail(t *testing.T) {
	svc, d := newService()

	d.users.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "nobody@example.com", Password: "whatever"}, "")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_Login_DeactivatedUser(t *testing.T) {
	svc, d := newService()

	user := &domain.User{ID: uuid.New(), Email: "off@example.com", PasswordHash: "digest", IsActive: false}
	d.users.On("GetByEmail", mock.Anything, "off@example.com").Return(user, nil)
	d.hasher.On("Verify", "Pass#1234", "digest").Return(true)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "off@example.com", Password: "Pass#1234"}, "")

	assert.ErrorIs(t, err, ErrAccountDeactivated)
}

func TestService_Login_DeactivatedTenant(t *testing.T) {
	svc, d := newService()

	tenantID := uuid.New()
	user := &domain.User{ID: uuid.New(), TenantID: &tenantID, Email: "user@example.com", PasswordHash: "digest", IsActive: true}
	d.users.On("GetByEmail", mock.Anything, "user@example.com").Return(user, nil)
	d.hasher.On("Verify", "Pass#1234", "digest").Return(true)
	d.tenants.On("GetActiveByID", mock.Anything, tenantID).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Login(context.Background(), LoginRequest{Email: "user@example.com", Password: "Pass#1234"}, "")

	assert.ErrorIs(t, err, ErrAccountDeactivated)
}

func TestService_Logout_UnknownTokenIsNoop(t *testing.T) {
	svc, d := newService()

	d.sessions.On("GetByHash", mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)

	err := svc.Logout(context.Background(), "some-raw-token")

	assert.NoError(t, err)
}

func TestService_Logout_RevokesSession(t *testing.T) {
	svc, d := newService()

	session := &domain.RefreshToken{ID: uuid.New(), UserID: uuid.New()}
	d.sessions.On("GetByHash", mock.Anything, hashToken("raw")).Return(session, nil)
	d.sessions.On("Revoke", mock.Anything, session.ID).Return(nil)

	err := svc.Logout(context.Background(), "raw")

	assert.NoError(t, err)
	d.sessions.AssertExpectations(t)
}

func TestService_ForgotPassword_UnknownEmailSilent(t *testing.T) {
	svc, d := newService()

	d.users.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

	err := svc.ForgotPassword(context.Background(), "ghost@example.com")

	assert.NoError(t, err)
	d.resets.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_ForgotPassword_MailFailureIgnored(t *testing.T) {
	svc, d := newService()

	user := &domain.User{ID: uuid.New(), Email: "user@example.com"}
	d.users.On("GetByEmail", mock.Anything, "user@example.com").Return(user, nil)
	d.resets.On("Create", mock.Anything, mock.Anything).Return(nil)
	d.mailer.On("Send", "user@example.com", resetEmailSubject, mock.Anything).Return(assert.AnError)

	err := svc.ForgotPassword(context.Background(), "user@example.com")

	assert.NoError(t, err)
	d.resets.AssertExpectations(t)
}

// newLedgerService builds a service over a real in-memory database for the
// flows whose writes run inside a transaction.
func newLedgerService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	svc := NewService(
		repository.NewUserRepository(db),
		repository.NewTenantRepository(db),
		repository.NewRefreshTokenRepository(db),
		repository.NewPasswordResetRepository(db),
		jwtsvc.New("ledger_test_secret_32_chars_long", time.Minute, time.Hour),
		password.NewHasher(4),
		new(mockMailer),
		time.Hour,
	)
	return svc, db
}

func seedUser(t *testing.T, db *gorm.DB, email, plain string) *domain.User {
	t.Helper()

	hash, err := password.NewHasher(4).Hash(plain)
	require.NoError(t, err)
	u := &domain.User{Email: email, PasswordHash: hash, Role: domain.RoleMember, IsActive: true}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestService_ResetPassword_Success(t *testing.T) {
	svc, db := newLedgerService(t)

	u := seedUser(t, db, "reset@example.com", "OldPass#123")
	require.NoError(t, db.Create(&domain.RefreshToken{
		UserID:    u.ID,
		TokenHash: hashToken("open-session"),
		ExpiresAt: time.Now().Add(time.Hour),
	}).Error)
	record := &domain.PasswordResetToken{
		UserID:    u.ID,
		TokenHash: hashToken("raw-reset"),
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, db.Create(record).Error)

	require.NoError(t, svc.ResetPassword(context.Background(), "raw-reset", "NewPass#123"))

	var stored domain.User
	require.NoError(t, db.First(&stored, "id = ?", u.ID).Error)
	assert.True(t, password.NewHasher(4).Verify("NewPass#123", stored.PasswordHash))

	var burned domain.PasswordResetToken
	require.NoError(t, db.First(&burned, "id = ?", record.ID).Error)
	assert.True(t, burned.IsUsed)
	assert.NotNil(t, burned.UsedAt)

	var session domain.RefreshToken
	require.NoError(t, db.First(&session, "user_id = ?", u.ID).Error)
	assert.True(t, session.IsRevoked)

	// The burned token never authorizes a second change.
	err := svc.ResetPassword(context.Background(), "raw-reset", "Another#123")
	assert.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestService_Login_TwiceInQuickSuccession(t *testing.T) {
	svc, db := newLedgerService(t)

	seedUser(t, db, "double@example.com", "Pass#1234")
	req := LoginRequest{Email: "double@example.com", Password: "Pass#1234"}

	first, err := svc.Login(context.Background(), req, "ua")
	require.NoError(t, err)
	second, err := svc.Login(context.Background(), req, "ua")
	require.NoError(t, err)

	assert.NotEqual(t, first.RefreshToken, second.RefreshToken)

	var sessions int64
	require.NoError(t, db.Model(&domain.RefreshToken{}).Count(&sessions).Error)
	assert.EqualValues(t, 2, sessions)
}

func TestService_Refresh_ReplayRejected(t *testing.T) {
	svc, db := newLedgerService(t)

	seedUser(t, db, "rotate@example.com", "Pass#1234")
	pair, err := svc.Login(context.Background(), LoginRequest{Email: "rotate@example.com", Password: "Pass#1234"}, "ua")
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), pair.RefreshToken, "ua")
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), pair.RefreshToken, "ua")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestService_ResetPassword_ExpiredToken(t *testing.T) {
	svc, d := newService()

	record := &domain.PasswordResetToken{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	d.resets.On("GetUnusedByHash", mock.Anything, mock.Anything).Return(record, nil)

	err := svc.ResetPassword(context.Background(), "raw-reset", "NewPass#123")

	assert.ErrorIs(t, err, ErrInvalidResetToken)
	d.users.AssertNotCalled(t, "UpdatePasswordHash", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_ResetPassword_UnknownToken(t *testing.T) {
	svc, d := newService()

	d.resets.On("GetUnusedByHash", mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)

	err := svc.ResetPassword(context.Background(), "bogus", "NewPass#123")

	assert.ErrorIs(t, err, ErrInvalidResetToken)
}

func TestService_ChangePassword_WrongCurrent(t *testing.T) {
	svc, d := newService()

	user := &domain.User{ID: uuid.New(), PasswordHash: "digest"}
	d.hasher.On("Verify", "wrong", "digest").Return(false)

	err := svc.ChangePassword(context.Background(), user, "wrong", "NewPass#123")

	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestService_ChangePassword_Success(t *testing.T) {
	svc, d := newService()

	user := &domain.User{ID: uuid.New(), PasswordHash: "digest"}
	d.hasher.On("Verify", "OldPass#123", "digest").Return(true)
	d.hasher.On("Hash", "NewPass#123").Return("new-digest", nil)
	d.users.On("UpdatePasswordHash", mock.Anything, user.ID, "new-digest").Return(nil)

	err := svc.ChangePassword(context.Background(), user, "OldPass#123", "NewPass#123")

	assert.NoError(t, err)
	d.users.AssertExpectations(t)
}
