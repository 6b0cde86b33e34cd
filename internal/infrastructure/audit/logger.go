// Package audit implementa el registro de eventos de seguridad: persiste en
// la tabla security_logs y refleja cada evento en el log estructurado.
//
// Es best-effort: un fallo al persistir se loguea y se descarta; nunca aborta
// la operación de negocio que originó el evento.
package audit

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/JaipaNero/Inventory-Management-System/internal/application/auth"
	"github.com/JaipaNero/Inventory-Management-System/internal/application/ledger"
	"github.com/JaipaNero/Inventory-Management-System/internal/application/usecase"
	"github.com/JaipaNero/Inventory-Management-System/internal/domain/entity"
	"github.com/JaipaNero/Inventory-Management-System/internal/domain/repository"
	"github.com/JaipaNero/Inventory-Management-System/pkg/logger"
)

var (
	_ ledger.SecurityLogger  = (*SecurityEventLogger)(nil)
	_ auth.SecurityLogger    = (*SecurityEventLogger)(nil)
	_ usecase.SecurityLogger = (*SecurityEventLogger)(nil)
)

type ipContextKey struct{}

// WithIP anota la IP del cliente en el contexto; la capa HTTP la adjunta por
// request y el logger la recoge al persistir el evento.
func WithIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, ipContextKey{}, ip)
}

func ipFromContext(ctx context.Context) string {
	if ip, ok := ctx.Value(ipContextKey{}).(string); ok {
		return ip
	}
	return ""
}

// SecurityEventLogger implementación de los puertos SecurityLogger de la
// capa de aplicación.
type SecurityEventLogger struct {
	repo repository.SecurityLogRepository
	log  *logger.Logger
}

// NewSecurityEventLogger construye el logger de auditoría.
func NewSecurityEventLogger(repo repository.SecurityLogRepository, log *logger.Logger) *SecurityEventLogger {
	return &SecurityEventLogger{repo: repo, log: log}
}

// LogEvent persiste el evento y lo refleja en el log estructurado.
func (l *SecurityEventLogger) LogEvent(ctx context.Context, eventType, description, userID string) {
	entry := &entity.SecurityLog{
		ID:          uuid.New().String(),
		UserID:      userID,
		IPAddress:   ipFromContext(ctx),
		EventType:   eventType,
		Description: description,
		CreatedAt:   time.Now(),
	}
	if err := l.repo.Create(entry); err != nil {
		l.log.Error().Err(err).
			Str("event_type", eventType).
			Msg("no se pudo persistir el evento de seguridad")
	}
	l.log.Info().
		Str("event_type", eventType).
		Str("user_id", userID).
		Str("ip", entry.IPAddress).
		Msg(description)
}
