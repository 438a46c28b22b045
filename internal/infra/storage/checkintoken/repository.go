package checkintoken

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/psqlbuilder"
)

// tokenColumns полный список колонок таблицы checkin_tokens
var tokenColumns = []string{
	"id",
	"token",
	"appointment_id",
	"walkin_ref",
	"salon_id",
	"status",
	"issued_at",
	"expires_at",
	"checked_in_at",
}

// Repository репозиторий для работы с токенами регистрации прибытия
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория токенов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет выпущенный токен
// Уникальность кода среди активных токенов обеспечивается частичным
// уникальным индексом; коллизия возвращается как ErrDuplicateToken,
// генератор повторяет попытку с новым кодом
func (r *Repository) Create(ctx context.Context, token *domain.CheckInToken) (*domain.CheckInToken, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("checkin_tokens").
		Columns(
			"token",
			"appointment_id",
			"walkin_ref",
			"salon_id",
			"status",
			"issued_at",
			"expires_at",
		).
		Values(
			token.Token,
			token.AppointmentID,
			walkInRefValue(token.WalkInRef),
			token.SalonID,
			token.Status,
			token.IssuedAt,
			token.ExpiresAt,
		).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&token.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateToken
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return token, nil
}

// GetByToken получает токен по коду
// Внутри транзакции строка блокируется (FOR UPDATE) - это точка
// сериализации конкурирующих check-in по одному токену
func (r *Repository) GetByToken(ctx context.Context, code string) (*domain.CheckInToken, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(tokenColumns...).
		From("checkin_tokens").
		Where(squirrel.Eq{"token": code})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByToken - build select query: %v", ErrBuildQuery, err)
	}

	token, err := r.scanToken(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByToken - scan token: %v", ErrScanRow, err)
	}

	return token, nil
}

// UpdateStatus переводит токен в новый статус
// При check-in дополнительно фиксируется время прибытия
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.TokenStatus, checkedInAt *time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("checkin_tokens").
		Set("status", status).
		Where(squirrel.Eq{"id": id})

	if checkedInAt != nil {
		updateBuilder = updateBuilder.Set("checked_in_at", *checkedInAt)
	}

	query, args, err := updateBuilder.ToSql()
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
		return ErrTokenNotFound
	}

	return nil
}

// ExpireStale переводит просроченные issued токены в expired
// Возвращает количество обновленных токенов
func (r *Repository) ExpireStale(ctx context.Context, now time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("checkin_tokens").
		Set("status", domain.TokenExpired).
		Where(squirrel.Eq{"status": domain.TokenIssued}).
		Where(squirrel.LtOrEq{"expires_at": now}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: ExpireStale - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireStale - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: ExpireStale - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// DeleteDeadBefore удаляет expired/consumed токены, истекшие до cutoff
// Токены эфемерны - история прибытий живет на самой записи (checked_in_at)
func (r *Repository) DeleteDeadBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("checkin_tokens").
		Where(squirrel.Eq{"status": []string{
			string(domain.TokenExpired),
			string(domain.TokenConsumed),
		}}).
		Where(squirrel.Lt{"expires_at": cutoff}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: DeleteDeadBefore - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteDeadBefore - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteDeadBefore - get rows affected: %v", ErrExecQuery, err)
	}

	return rowsAffected, nil
}

// GetActiveByAppointment получает активный токен записи, если он есть
// Повторный issue для записи с живым токеном возвращает существующий
func (r *Repository) GetActiveByAppointment(ctx context.Context, appointmentID int64) (*domain.CheckInToken, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(tokenColumns...).
		From("checkin_tokens").
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		Where(squirrel.Eq{"status": domain.TokenIssued}).
		OrderBy("issued_at DESC").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByAppointment - build select query: %v", ErrBuildQuery, err)
	}

	token, err := r.scanToken(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByAppointment - scan token: %v", ErrScanRow, err)
	}

	return token, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanToken сканирует одну строку в domain.CheckInToken
func (r *Repository) scanToken(row rowScanner) (*domain.CheckInToken, error) {
	var token domain.CheckInToken
	var walkInRef uuid.NullUUID

	err := row.Scan(
		&token.ID,
		&token.Token,
		&token.AppointmentID,
		&walkInRef,
		&token.SalonID,
		&token.Status,
		&token.IssuedAt,
		&token.ExpiresAt,
		&token.CheckedInAt,
	)
	if err != nil {
		return nil, err
	}

	if walkInRef.Valid {
		ref := walkInRef.UUID
		token.WalkInRef = &ref
	}

	return &token, nil
}

// walkInRefValue конвертирует *uuid.UUID в nullable значение для вставки
func walkInRefValue(ref *uuid.UUID) uuid.NullUUID {
	if ref == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *ref, Valid: true}
}

// isUniqueViolation возвращает true для нарушения уникального индекса (SQLSTATE 23505)
func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "23505"
	}
	return false
}
