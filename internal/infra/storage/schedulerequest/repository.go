package schedulerequest

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

// requestColumns полный список колонок таблицы schedule_requests
var requestColumns = []string{
	"id",
	"staff_id",
	"salon_id",
	"start_date",
	"end_date",
	"start_time",
	"end_time",
	"type",
	"status",
	"reason",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с заявками на изменение графика
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория заявок
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новую заявку в статусе pending
func (r *Repository) Create(ctx context.Context, req *domain.ScheduleRequest) (*domain.ScheduleRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("schedule_requests").
		Columns(
			"staff_id",
			"salon_id",
			"start_date",
			"end_date",
			"start_time",
			"end_time",
			"type",
			"status",
			"reason",
		).
		Values(
			req.StaffID,
			req.SalonID,
			req.StartDate,
			req.EndDate,
			req.StartTime,
			req.EndTime,
			req.Type,
			req.Status,
			req.Reason,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&req.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	return req, nil
}

// GetByID получает заявку по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ScheduleRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(requestColumns...).
		From("schedule_requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	req, err := r.scanRequest(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan request: %v", ErrScanRow, err)
	}

	return req, nil
}

// GetApprovedForStaffOnDate получает одобренные заявки мастеров,
// затрагивающие указанную дату
// Единственный источник отпускных блоков для календаря занятости
func (r *Repository) GetApprovedForStaffOnDate(ctx context.Context, staffIDs []int64, date time.Time) ([]*domain.ScheduleRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(requestColumns...).
		From("schedule_requests").
		Where(squirrel.Eq{"staff_id": staffIDs}).
		Where(squirrel.Eq{"status": domain.RequestApproved}).
		Where(squirrel.LtOrEq{"start_date": date}).
		Where(squirrel.GtOrEq{"end_date": date}).
		OrderBy("staff_id ASC, start_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetApprovedForStaffOnDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetApprovedForStaffOnDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanRequests(rows)
}

// GetActiveByStaff получает pending и approved заявки мастера
// Используется для проверки инварианта непересечения отпусков
func (r *Repository) GetActiveByStaff(ctx context.Context, staffID int64) ([]*domain.ScheduleRequest, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(requestColumns...).
		From("schedule_requests").
		Where(squirrel.Eq{"staff_id": staffID}).
		Where(squirrel.Eq{"status": []string{
			string(domain.RequestPending),
			string(domain.RequestApproved),
		}}).
		OrderBy("start_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByStaff - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByStaff - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanRequests(rows)
}

// UpdateStatus обновляет статус заявки (approve/deny)
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.ScheduleRequestStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("schedule_requests").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRequestNotFound
	}

	return nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanRequest сканирует одну строку в domain.ScheduleRequest
func (r *Repository) scanRequest(row rowScanner) (*domain.ScheduleRequest, error) {
	var req domain.ScheduleRequest
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&req.ID,
		&req.StaffID,
		&req.SalonID,
		&req.StartDate,
		&req.EndDate,
		&req.StartTime,
		&req.EndTime,
		&req.Type,
		&req.Status,
		&req.Reason,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	req.CreatedAt = createdAt.Time
	req.UpdatedAt = updatedAt.Time

	return &req, nil
}

// scanRequests сканирует результаты запроса в слайс заявок
func (r *Repository) scanRequests(rows *sql.Rows) ([]*domain.ScheduleRequest, error) {
	requests := make([]*domain.ScheduleRequest, 0)

	for rows.Next() {
		req, err := r.scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanRequests - scan row: %v", ErrScanRow, err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanRequests - rows error: %v", ErrScanRow, err)
	}

	return requests, nil
}
