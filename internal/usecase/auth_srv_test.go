package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"cinema-ticketing/internal/data/entity"
	"cinema-ticketing/internal/data/repository"
	"cinema-ticketing/internal/dto/request"
	"cinema-ticketing/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeUserRepo struct {
	repository.UserRepository
	mu    sync.Mutex
	users map[uuid.UUID]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uuid.UUID]*entity.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[id], nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) MarkEmailVerified(_ context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[id].EmailVerifiedAt = &at
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

type fakeSessionRepo struct {
	repository.SessionRepository
	mu       sync.Mutex
	sessions map[string]*entity.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: map[string]*entity.Session{}}
}

func (r *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.Token.String()] = session
	return nil
}

func (r *fakeSessionRepo) Revoke(_ context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	session, ok := r.sessions[token]
	if !ok || session.RevokedAt != nil {
		return utils.NotFound("session")
	}
	now := time.Now().UTC()
	session.RevokedAt = &now
	return nil
}

const testVerifySecret = "test-verify-secret"

type authFixture struct {
	users    *fakeUserRepo
	sessions *fakeSessionRepo
	service  AuthService
}

func newAuthFixture() *authFixture {
	f := &authFixture{users: newFakeUserRepo(), sessions: newFakeSessionRepo()}
	config := &utils.Config{
		App:  utils.AppConfig{BaseURL: "http://localhost:8080"},
		Auth: utils.AuthConfig{VerifySecret: testVerifySecret, VerifyLinkTTL: time.Hour},
	}
	f.service = NewAuthService(&repository.Repository{User: f.users, Session: f.sessions}, config, zap.NewNop())
	return f
}

func (f *authFixture) addUser(t *testing.T, email, password string, verified, active bool) *entity.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	require.NoError(t, err)

	user := &entity.User{Base: entity.NewBase(), Name: "Test User", Email: email, PasswordHash: hash, IsActive: active}
	if verified {
		now := time.Now().UTC()
		user.EmailVerifiedAt = &now
	}
	f.users.users[user.ID] = user
	return user
}

func TestRegister_CreatesUnverifiedUser(t *testing.T) {
	f := newAuthFixture()

	resp, err := f.service.Register(context.Background(), &request.RegisterRequest{
		Name:     "Grace Hopper",
		Email:    "Grace@Example.com",
		Password: "cobol-1959",
	})
	require.NoError(t, err)
	assert.True(t, resp.VerificationRequired)
	assert.Equal(t, "grace@example.com", resp.User.Email)

	_, err = f.service.Register(context.Background(), &request.RegisterRequest{
		Name:     "Impostor",
		Email:    "grace@example.com",
		Password: "password123",
	})
	assert.True(t, errors.Is(err, utils.ErrValidation))
}

func TestLogin(t *testing.T) {
	f := newAuthFixture()
	f.addUser(t, "ok@example.com", "correct-horse", true, true)
	f.addUser(t, "unverified@example.com", "correct-horse", false, true)
	f.addUser(t, "inactive@example.com", "correct-horse", true, false)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"valid credentials", "ok@example.com", "correct-horse", nil},
		{"wrong password", "ok@example.com", "battery-staple", utils.ErrUnauthorized},
		{"unknown email", "nobody@example.com", "correct-horse", utils.ErrUnauthorized},
		{"unverified email", "unverified@example.com", "correct-horse", utils.ErrForbidden},
		{"deactivated account", "inactive@example.com", "correct-horse", utils.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := f.service.Login(context.Background(), &request.LoginRequest{
				Email:    tt.email,
				Password: tt.password,
			}, ClientInfo{UserAgent: "test", IPAddress: "127.0.0.1"})

			if tt.wantErr != nil {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, resp.Token)
			assert.WithinDuration(t, time.Now().Add(24*time.Hour), resp.ExpiresAt, time.Minute)
		})
	}
}

func TestLogout_RevokesSessionOnce(t *testing.T) {
	f := newAuthFixture()
	f.addUser(t, "ok@example.com", "correct-horse", true, true)
	ctx := context.Background()

	resp, err := f.service.Login(ctx, &request.LoginRequest{Email: "ok@example.com", Password: "correct-horse"}, ClientInfo{})
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(ctx, resp.Token))
	assert.True(t, errors.Is(f.service.Logout(ctx, resp.Token), utils.ErrUnauthorized))
}

func TestVerifyEmail(t *testing.T) {
	f := newAuthFixture()
	user := f.addUser(t, "new@example.com", "correct-horse", false, true)
	ctx := context.Background()

	token, _, err := utils.NewVerificationToken(testVerifySecret, user.ID, time.Hour)
	require.NoError(t, err)

	_, err = f.service.VerifyEmail(ctx, user.ID.String(), utils.EmailHash("other@example.com"), token)
	assert.True(t, errors.Is(err, utils.ErrForbidden))
	assert.Nil(t, user.EmailVerifiedAt)

	resp, err := f.service.VerifyEmail(ctx, user.ID.String(), utils.EmailHash(user.Email), token)
	require.NoError(t, err)
	require.NotNil(t, resp.EmailVerifiedAt)
	verifiedAt := *user.EmailVerifiedAt

	// a second click keeps the original timestamp
	_, err = f.service.VerifyEmail(ctx, user.ID.String(), utils.EmailHash(user.Email), token)
	require.NoError(t, err)
	assert.Equal(t, verifiedAt, *user.EmailVerifiedAt)
}

func TestResendVerification(t *testing.T) {
	f := newAuthFixture()
	f.addUser(t, "pending@example.com", "correct-horse", false, true)
	f.addUser(t, "done@example.com", "correct-horse", true, true)
	ctx := context.Background()

	assert.NoError(t, f.service.ResendVerification(ctx, &request.ResendVerificationRequest{Email: "pending@example.com"}))
	assert.True(t, errors.Is(f.service.ResendVerification(ctx, &request.ResendVerificationRequest{Email: "done@example.com"}), utils.ErrValidation))
	assert.True(t, errors.Is(f.service.ResendVerification(ctx, &request.ResendVerificationRequest{Email: "ghost@example.com"}), utils.ErrNotFound))
}

func TestEnsureAdmin_CreatesVerifiedAdminOnce(t *testing.T) {
	f := newAuthFixture()
	ctx := context.Background()
	admin := utils.AdminConfig{Email: "Admin@Example.com", Password: "change-me-please"}

	require.NoError(t, f.service.EnsureAdmin(ctx, admin))
	require.NoError(t, f.service.EnsureAdmin(ctx, admin))

	require.Len(t, f.users.users, 1)
	for _, u := range f.users.users {
		assert.True(t, u.IsAdmin)
		assert.True(t, u.EmailVerified())
		assert.Equal(t, "admin@example.com", u.Email)
		assert.Equal(t, "Administrator", u.Name)
	}

	assert.NoError(t, f.service.EnsureAdmin(ctx, utils.AdminConfig{}))
}

func TestDeleteUser_RejectsSelfDeletion(t *testing.T) {
	users := newFakeUserRepo()
	svc := NewUserService(users, newFakeSessionRepo(), zap.NewNop())
	admin := &entity.User{Base: entity.NewBase(), Email: "admin@example.com", IsAdmin: true}
	other := &entity.User{Base: entity.NewBase(), Email: "other@example.com"}
	users.users[admin.ID] = admin
	users.users[other.ID] = other

	err := svc.DeleteUser(context.Background(), admin.ID, admin.ID.String())
	assert.True(t, errors.Is(err, utils.ErrValidation))
	assert.Len(t, users.users, 2)

	require.NoError(t, svc.DeleteUser(context.Background(), admin.ID, other.ID.String()))
	assert.Len(t, users.users, 1)
}
