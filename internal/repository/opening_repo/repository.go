package opening_repo

import (
	"context"
	"time"

	"vaultory_backend/internal/model"
	"vaultory_backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table            = "case_openings"
	colID            = "id"
	colUserID        = "user_id"
	colCaseID        = "case_id"
	colItemID        = "item_id"
	colOpeningNumber = "opening_number"
	colStatus        = "status"
	colCreatedAt     = "created_at"
)

type repo struct {
	dbc *pgxpool.Pool
}

func NewOpeningRepository(dbc *pgxpool.Pool) repository.OpeningRepository {
	return &repo{
		dbc: dbc,
	}
}

// Create - создает запись открытия в статусе pending
func (r *repo) Create(ctx context.Context, opening *model.Opening) error {
	// Формируем запрос
	query := sq.Insert(table).
		Columns(colID, colUserID, colCaseID, colItemID, colOpeningNumber, colStatus).
		Values(opening.ID, opening.UserID, opening.CaseID, opening.ItemID,
			opening.OpeningNumber, model.OpeningStatusPending).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn(ctx).Exec(ctx, sqlStr, args...)
	return err
}

// GetByID - возвращает открытие по его uuid
func (r *repo) GetByID(ctx context.Context, id string) (*model.Opening, error) {
	// Формируем запрос
	query := sq.Select(colID, colUserID, colCaseID, colItemID, colOpeningNumber, colStatus, colCreatedAt).
		From(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var o model.Opening
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(
		&o.ID, &o.UserID, &o.CaseID, &o.ItemID, &o.OpeningNumber, &o.Status, &o.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &o, nil
}

// Finalize - переводит pending-открытие в конечный статус.
// WHERE по статусу гарантирует ровно одну финализацию на открытие:
// повторный вызов вернет false
func (r *repo) Finalize(ctx context.Context, id string, status string) (bool, error) {
	// Формируем запрос
	query := sq.Update(table).
		Set(colStatus, status).
		Where(sq.Eq{colID: id, colStatus: model.OpeningStatusPending}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return false, err
	}

	res, err := r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return false, err
	}

	return res.RowsAffected() > 0, nil
}

// ListStalePending - pending-открытия старше указанного момента.
// Используется фоновой задачей принудительного keep
func (r *repo) ListStalePending(ctx context.Context, olderThan time.Time) ([]model.Opening, error) {
	// Формируем запрос
	query := sq.Select(colID, colUserID, colCaseID, colItemID, colOpeningNumber, colStatus, colCreatedAt).
		From(table).
		Where(sq.Eq{colStatus: model.OpeningStatusPending}).
		Where(sq.Lt{colCreatedAt: olderThan}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.conn(ctx).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var openings []model.Opening
	for rows.Next() {
		var o model.Opening
		if err := rows.Scan(&o.ID, &o.UserID, &o.CaseID, &o.ItemID, &o.OpeningNumber, &o.Status, &o.CreatedAt); err != nil {
			return nil, err
		}
		openings = append(openings, o)
	}

	return openings, rows.Err()
}

// MaxOpeningNumber - максимальный выданный номер открытия, 0 если
// открытий еще не было. Используется для засева счетчика в Redis
func (r *repo) MaxOpeningNumber(ctx context.Context) (int64, error) {
	// Формируем запрос
	query := sq.Select("COALESCE(MAX(" + colOpeningNumber + "), 0)").
		From(table).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var maxNumber int64
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(&maxNumber)
	if err != nil {
		return 0, err
	}

	return maxNumber, nil
}

func (r *repo) conn(ctx context.Context) trmpgx.Tr {
	return trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)
}
