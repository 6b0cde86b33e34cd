package repository

import (
	"time"

	"github.com/JaipaNero/Inventory-Management-System/internal/domain/entity"
)

// SecurityLogFilter filtros para consultar el registro de auditoría.
type SecurityLogFilter struct {
	UserID    string
	EventType string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}

// SecurityLogRepository define el puerto de persistencia del registro de auditoría.
type SecurityLogRepository interface {
	Create(log *entity.SecurityLog) error
	List(filter SecurityLogFilter) ([]*entity.SecurityLog, error)
}
