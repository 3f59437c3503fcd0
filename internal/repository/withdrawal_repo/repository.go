package withdrawal_repo

import (
	"context"

	"vaultory_backend/internal/model"
	"vaultory_backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table          = "withdrawal_requests"
	colID          = "id"
	colUserID      = "user_id"
	colInventoryID = "inventory_item_id"
	colContact     = "contact"
	colStatus      = "status"
	colCreatedAt   = "created_at"
	colUpdatedAt   = "updated_at"
	requestColumns = colID + ", " + colUserID + ", " + colInventoryID + ", " +
		colContact + ", " + colStatus + ", " + colCreatedAt + ", " + colUpdatedAt
)

type repo struct {
	dbc *pgxpool.Pool
}

func NewWithdrawalRepository(dbc *pgxpool.Pool) repository.WithdrawalRepository {
	return &repo{
		dbc: dbc,
	}
}

// Create - создает заявку на вывод в статусе new, возвращает ID
func (r *repo) Create(ctx context.Context, req *model.WithdrawalRequest) (int, error) {
	// Формируем запрос
	query := sq.Insert(table).
		Columns(colUserID, colInventoryID, colContact, colStatus).
		Values(req.UserID, req.InventoryItemID, req.Contact, model.WithdrawalStatusNew).
		Suffix("RETURNING " + colID).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var id int
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

// GetByID - заявка по ID
func (r *repo) GetByID(ctx context.Context, id int) (*model.WithdrawalRequest, error) {
	// Формируем запрос
	query := sq.Select(requestColumns).
		From(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var req model.WithdrawalRequest
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(
		&req.ID, &req.UserID, &req.InventoryItemID, &req.Contact,
		&req.Status, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return &req, nil
}

// ListByUser - заявки пользователя
func (r *repo) ListByUser(ctx context.Context, userID int) ([]model.WithdrawalRequest, error) {
	return r.list(ctx, sq.Eq{colUserID: userID})
}

// ListByStatus - заявки в указанном статусе (для админки)
func (r *repo) ListByStatus(ctx context.Context, status string) ([]model.WithdrawalRequest, error) {
	return r.list(ctx, sq.Eq{colStatus: status})
}

// UpdateStatus - переводит заявку в новый статус
func (r *repo) UpdateStatus(ctx context.Context, id int, status string) error {
	// Формируем запрос
	query := sq.Update(table).
		Set(colStatus, status).
		Set(colUpdatedAt, sq.Expr("now()")).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn(ctx).Exec(ctx, sqlStr, args...)
	return err
}

func (r *repo) list(ctx context.Context, where sq.Eq) ([]model.WithdrawalRequest, error) {
	// Формируем запрос
	query := sq.Select(requestColumns).
		From(table).
		Where(where).
		OrderBy(colCreatedAt + " DESC").
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

	var requests []model.WithdrawalRequest
	for rows.Next() {
		var req model.WithdrawalRequest
		if err := rows.Scan(&req.ID, &req.UserID, &req.InventoryItemID, &req.Contact,
			&req.Status, &req.CreatedAt, &req.UpdatedAt); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}

func (r *repo) conn(ctx context.Context) trmpgx.Tr {
	return trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)
}
