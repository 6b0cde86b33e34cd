// Package redis implementa el limitador de intentos de ingreso sobre Redis.
// Los contadores y bloqueos llevan TTL: expiran solos sin proceso de limpieza.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/JaipaNero/Inventory-Management-System/internal/application/auth"
)

const (
	attemptKeyPrefix = "login_attempts:"
	lockKeyPrefix    = "login_lock:"
)

var _ auth.LoginLimiter = (*LoginLimiter)(nil)

// LoginLimiter lleva la cuenta de intentos fallidos y el bloqueo de cuentas.
type LoginLimiter struct {
	client        *redis.Client
	attemptWindow time.Duration
	lockDuration  time.Duration
}

// NewLoginLimiter construye el limitador. attemptWindow es la ventana del
// contador de fallos; lockDuration la duración del bloqueo de cuenta.
func NewLoginLimiter(client *redis.Client, attemptWindow, lockDuration time.Duration) *LoginLimiter {
	return &LoginLimiter{client: client, attemptWindow: attemptWindow, lockDuration: lockDuration}
}

// IsLocked indica si la cuenta está bloqueada actualmente.
func (l *LoginLimiter) IsLocked(ctx context.Context, username string) (bool, error) {
	n, err := l.client.Exists(ctx, lockKeyPrefix+username).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists: %w", err)
	}
	return n > 0, nil
}

// RegisterFailure incrementa el contador de fallos y devuelve el total vigente.
// El primer fallo fija el TTL de la ventana.
func (l *LoginLimiter) RegisterFailure(ctx context.Context, username string) (int64, error) {
	key := attemptKeyPrefix + username
	attempts, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis incr: %w", err)
	}
	if attempts == 1 {
		if err := l.client.Expire(ctx, key, l.attemptWindow).Err(); err != nil {
			return attempts, fmt.Errorf("redis expire: %w", err)
		}
	}
	return attempts, nil
}

// Lock bloquea la cuenta por la ventana configurada.
func (l *LoginLimiter) Lock(ctx context.Context, username string) error {
	if err := l.client.Set(ctx, lockKeyPrefix+username, 1, l.lockDuration).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Clear borra el contador de fallos (ingreso exitoso).
func (l *LoginLimiter) Clear(ctx context.Context, username string) error {
	if err := l.client.Del(ctx, attemptKeyPrefix+username).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// NewClient crea el cliente Redis y verifica la conexión.
func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}
