package auth

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/JaipaNero/Inventory-Management-System/internal/application/dto"
	"github.com/JaipaNero/Inventory-Management-System/internal/domain"
	"github.com/JaipaNero/Inventory-Management-System/internal/domain/entity"
	"github.com/JaipaNero/Inventory-Management-System/internal/domain/repository"
	"github.com/JaipaNero/Inventory-Management-System/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Config política de autenticación.
type Config struct {
	MaxLoginAttempts int // intentos fallidos antes de bloquear la cuenta
	PasswordMaxDays  int // edad máxima de la contraseña (0 = sin expiración)
}

// AuthUseCase casos de uso de autenticación: ingreso con bloqueo por intentos
// fallidos, cambio de contraseña y consulta del usuario autenticado.
type AuthUseCase struct {
	userRepo repository.UserRepository
	limiter  LoginLimiter
	audit    SecurityLogger
	jwtCfg   JWTConfig
	cfg      Config
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	limiter LoginLimiter,
	audit SecurityLogger,
	jwtCfg JWTConfig,
	cfg Config,
) *AuthUseCase {
	if cfg.MaxLoginAttempts <= 0 {
		cfg.MaxLoginAttempts = 5
	}
	return &AuthUseCase{userRepo: userRepo, limiter: limiter, audit: audit, jwtCfg: jwtCfg, cfg: cfg}
}

// Login verifica credenciales, aplica el bloqueo por intentos fallidos y
// genera el JWT. Una contraseña expirada devuelve ErrPasswordExpired; el
// caller debe dirigir al usuario al cambio de contraseña.
//
// Los fallos de credencial se responden siempre como ErrUnauthorized, sin
// distinguir usuario inexistente de contraseña incorrecta.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	locked, err := uc.limiter.IsLocked(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("consultar bloqueo: %w", err)
	}
	if locked {
		uc.audit.LogEvent(ctx, entity.EventLoginFailed,
			fmt.Sprintf("intento de ingreso sobre cuenta bloqueada: %s", in.Username), "")
		return nil, domain.ErrAccountLocked
	}

	user, err := uc.userRepo.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		uc.audit.LogEvent(ctx, entity.EventLoginFailed,
			fmt.Sprintf("ingreso fallido: usuario desconocido %s", in.Username), "")
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, uc.handleFailedAttempt(ctx, user)
	}

	if uc.passwordExpired(user) {
		return nil, domain.ErrPasswordExpired
	}

	if err := uc.limiter.Clear(ctx, in.Username); err != nil {
		// No abortamos el ingreso por un fallo del limitador.
		uc.audit.LogEvent(ctx, entity.EventLoginFailed,
			fmt.Sprintf("no se pudo limpiar el contador de intentos de %s: %v", in.Username, err), user.ID)
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.audit.LogEvent(ctx, entity.EventLoginSuccess,
		fmt.Sprintf("ingreso exitoso: %s", user.Username), user.ID)
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

func (uc *AuthUseCase) handleFailedAttempt(ctx context.Context, user *entity.User) error {
	attempts, err := uc.limiter.RegisterFailure(ctx, user.Username)
	if err != nil {
		return fmt.Errorf("registrar intento fallido: %w", err)
	}
	uc.audit.LogEvent(ctx, entity.EventLoginFailed,
		fmt.Sprintf("contraseña incorrecta para %s (intento %d)", user.Username, attempts), user.ID)
	if attempts >= int64(uc.cfg.MaxLoginAttempts) {
		if err := uc.limiter.Lock(ctx, user.Username); err != nil {
			return fmt.Errorf("bloquear cuenta: %w", err)
		}
		uc.audit.LogEvent(ctx, entity.EventAccountLocked,
			fmt.Sprintf("cuenta bloqueada por intentos fallidos: %s", user.Username), user.ID)
		return domain.ErrAccountLocked
	}
	return domain.ErrUnauthorized
}

func (uc *AuthUseCase) passwordExpired(user *entity.User) bool {
	if uc.cfg.PasswordMaxDays <= 0 {
		return false
	}
	if user.PasswordChangedAt.IsZero() {
		return true // sin registro de cambio, asumimos expirada
	}
	expiry := user.PasswordChangedAt.AddDate(0, 0, uc.cfg.PasswordMaxDays)
	return time.Now().After(expiry)
}

// ChangePassword cambia la contraseña del usuario autenticado tras verificar
// la actual y la complejidad de la nueva.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, userID string, in dto.ChangePasswordRequest) error {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.CurrentPassword)); err != nil {
		return domain.ErrUnauthorized
	}
	if err := ValidatePasswordComplexity(in.NewPassword); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	now := time.Now()
	user.PasswordHash = string(hash)
	user.PasswordChangedAt = now
	user.UpdatedAt = now
	if err := uc.userRepo.Update(user); err != nil {
		return err
	}
	uc.audit.LogEvent(ctx, entity.EventPasswordChanged,
		fmt.Sprintf("cambio de contraseña: %s", user.Username), user.ID)
	return nil
}

// Me devuelve el usuario autenticado.
func (uc *AuthUseCase) Me(userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
