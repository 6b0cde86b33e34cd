package postgres

import (
	"context"
	"fmt"

	"github.com/JaipaNero/Inventory-Management-System/internal/domain/entity"
	"github.com/JaipaNero/Inventory-Management-System/internal/domain/repository"
)

var _ repository.SecurityLogRepository = (*SecurityLogRepo)(nil)

// SecurityLogRepo implementación del registro de auditoría sobre PostgreSQL.
// Append-only: no hay Update ni Delete.
type SecurityLogRepo struct {
	q Querier
}

// NewSecurityLogRepository construye el adaptador del registro de auditoría.
func NewSecurityLogRepository(q Querier) *SecurityLogRepo {
	return &SecurityLogRepo{q: q}
}

// Create inserta una entrada de auditoría.
func (r *SecurityLogRepo) Create(log *entity.SecurityLog) error {
	query := `
		INSERT INTO security_logs (id, user_id, ip_address, event_type, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	userID := (*string)(nil)
	if log.UserID != "" {
		userID = &log.UserID
	}
	_, err := r.q.Exec(context.Background(), query,
		log.ID, userID, log.IPAddress, log.EventType, log.Description, log.CreatedAt)
	if err != nil {
		return fmt.Errorf("create security log: %w", err)
	}
	return nil
}

// List consulta el registro con filtros dinámicos, más recientes primero.
func (r *SecurityLogRepo) List(filter repository.SecurityLogFilter) ([]*entity.SecurityLog, error) {
	query := `
		SELECT id, COALESCE(user_id, ''), ip_address, event_type, description, created_at
		FROM security_logs WHERE 1=1`
	var args []any
	pos := 1
	if filter.UserID != "" {
		query += fmt.Sprintf(" AND user_id = $%d", pos)
		args = append(args, filter.UserID)
		pos++
	}
	if filter.EventType != "" {
		query += fmt.Sprintf(" AND event_type = $%d", pos)
		args = append(args, filter.EventType)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND created_at >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND created_at <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list security logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.SecurityLog
	for rows.Next() {
		var l entity.SecurityLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.IPAddress, &l.EventType, &l.Description, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan security log: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
