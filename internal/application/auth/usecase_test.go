package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/JaipaNero/Inventory-Management-System/internal/application/auth"
	"github.com/JaipaNero/Inventory-Management-System/internal/application/dto"
	"github.com/JaipaNero/Inventory-Management-System/internal/domain"
	"github.com/JaipaNero/Inventory-Management-System/internal/domain/entity"
	"github.com/JaipaNero/Inventory-Management-System/internal/domain/repository"
	"github.com/JaipaNero/Inventory-Management-System/pkg/jwt"
)

// memUserRepo implementación mínima de UserRepository para estos tests.
type memUserRepo struct {
	users map[string]*entity.User
}

var _ repository.UserRepository = (*memUserRepo)(nil)

func newMemUserRepo(users ...*entity.User) *memUserRepo {
	r := &memUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		cp := *u
		r.users[u.ID] = &cp
	}
	return r
}

func (r *memUserRepo) Create(user *entity.User) error {
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *memUserRepo) GetByUsername(username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(user *entity.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	cp := *user
	r.users[user.ID] = &cp
	return nil
}

func (r *memUserRepo) List(limit, offset int) ([]*entity.User, error) { return nil, nil }
func (r *memUserRepo) Delete(id string) error                         { return nil }
func (r *memUserRepo) ListStores(userID string) ([]*entity.Store, error) {
	return nil, nil
}
func (r *memUserRepo) ReplaceStores(userID string, storeIDs []string) error { return nil }
func (r *memUserRepo) HasStoreAccess(userID, storeID string) (bool, error)  { return false, nil }

// memLimiter implementación en memoria de LoginLimiter.
type memLimiter struct {
	attempts map[string]int64
	locked   map[string]bool
}

var _ auth.LoginLimiter = (*memLimiter)(nil)

func newMemLimiter() *memLimiter {
	return &memLimiter{attempts: make(map[string]int64), locked: make(map[string]bool)}
}

func (l *memLimiter) IsLocked(_ context.Context, username string) (bool, error) {
	return l.locked[username], nil
}

func (l *memLimiter) RegisterFailure(_ context.Context, username string) (int64, error) {
	l.attempts[username]++
	return l.attempts[username], nil
}

func (l *memLimiter) Lock(_ context.Context, username string) error {
	l.locked[username] = true
	return nil
}

func (l *memLimiter) Clear(_ context.Context, username string) error {
	delete(l.attempts, username)
	return nil
}

type memAudit struct{ events []string }

func (a *memAudit) LogEvent(_ context.Context, eventType, _, _ string) {
	a.events = append(a.events, eventType)
}

const testSecret = "secreto-de-prueba-suficientemente-largo"

func testUser(t *testing.T, password string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	now := time.Now()
	return &entity.User{
		ID:                "user-1",
		Username:          "jperez",
		PasswordHash:      string(hash),
		Role:              entity.RolePartnerAdmin,
		PasswordChangedAt: now,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func newAuthForTest(t *testing.T, password string) (*auth.AuthUseCase, *memUserRepo, *memLimiter, *memAudit) {
	t.Helper()
	repo := newMemUserRepo(testUser(t, password))
	limiter := newMemLimiter()
	audit := &memAudit{}
	uc := auth.NewAuthUseCase(repo, limiter, audit,
		auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "inventory-api"},
		auth.Config{MaxLoginAttempts: 3, PasswordMaxDays: 90},
	)
	return uc, repo, limiter, audit
}

func TestLogin_Exitoso(t *testing.T) {
	uc, _, limiter, audit := newAuthForTest(t, "Segura#123")

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Username: "jperez", Password: "Segura#123"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "jperez", resp.User.Username)
	assert.Contains(t, audit.events, entity.EventLoginSuccess)

	// El token lleva la identidad y el rol del usuario.
	userID, role, err := jwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, entity.RolePartnerAdmin, role)
	assert.Empty(t, limiter.attempts["jperez"])
}

func TestLogin_ContrasenaIncorrecta(t *testing.T) {
	uc, _, limiter, audit := newAuthForTest(t, "Segura#123")

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "jperez", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, int64(1), limiter.attempts["jperez"])
	assert.Contains(t, audit.events, entity.EventLoginFailed)
}

func TestLogin_UsuarioDesconocidoMismoError(t *testing.T) {
	uc, _, _, _ := newAuthForTest(t, "Segura#123")

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: "loquesea"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_BloqueoTrasIntentosFallidos(t *testing.T) {
	uc, _, limiter, audit := newAuthForTest(t, "Segura#123")

	for i := 0; i < 2; i++ {
		_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "jperez", Password: "mala"})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	}
	// El tercer fallo alcanza el máximo y bloquea la cuenta.
	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "jperez", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrAccountLocked)
	assert.True(t, limiter.locked["jperez"])
	assert.Contains(t, audit.events, entity.EventAccountLocked)

	// Con la cuenta bloqueada, ni la contraseña correcta entra.
	_, err = uc.Login(context.Background(), dto.LoginRequest{Username: "jperez", Password: "Segura#123"})
	assert.ErrorIs(t, err, domain.ErrAccountLocked)
}

func TestLogin_IngresoExitosoLimpiaContador(t *testing.T) {
	uc, _, limiter, _ := newAuthForTest(t, "Segura#123")

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "jperez", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	require.Equal(t, int64(1), limiter.attempts["jperez"])

	_, err = uc.Login(context.Background(), dto.LoginRequest{Username: "jperez", Password: "Segura#123"})
	require.NoError(t, err)
	assert.Empty(t, limiter.attempts["jperez"])
}

func TestLogin_ContrasenaExpirada(t *testing.T) {
	repo := newMemUserRepo()
	user := testUser(t, "Segura#123")
	user.PasswordChangedAt = time.Now().AddDate(0, 0, -120)
	require.NoError(t, repo.Create(user))
	uc := auth.NewAuthUseCase(repo, newMemLimiter(), &memAudit{},
		auth.JWTConfig{Secret: testSecret, ExpMinutes: 60},
		auth.Config{MaxLoginAttempts: 3, PasswordMaxDays: 90},
	)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "jperez", Password: "Segura#123"})
	assert.ErrorIs(t, err, domain.ErrPasswordExpired)
}

func TestChangePassword(t *testing.T) {
	uc, repo, _, audit := newAuthForTest(t, "Segura#123")

	err := uc.ChangePassword(context.Background(), "user-1", dto.ChangePasswordRequest{
		CurrentPassword: "Segura#123",
		NewPassword:     "Nueva#Clave9",
	})
	require.NoError(t, err)
	assert.Contains(t, audit.events, entity.EventPasswordChanged)

	user, err := repo.GetByID("user-1")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("Nueva#Clave9")))
}

func TestChangePassword_ActualIncorrecta(t *testing.T) {
	uc, _, _, _ := newAuthForTest(t, "Segura#123")

	err := uc.ChangePassword(context.Background(), "user-1", dto.ChangePasswordRequest{
		CurrentPassword: "equivocada",
		NewPassword:     "Nueva#Clave9",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestChangePassword_NuevaDebil(t *testing.T) {
	uc, _, _, _ := newAuthForTest(t, "Segura#123")

	err := uc.ChangePassword(context.Background(), "user-1", dto.ChangePasswordRequest{
		CurrentPassword: "Segura#123",
		NewPassword:     "corta",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
