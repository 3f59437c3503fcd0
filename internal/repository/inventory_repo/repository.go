package inventory_repo

import (
	"context"

	"vaultory_backend/internal/model"
	"vaultory_backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table        = "inventory"
	colID        = "id"
	colUserID    = "user_id"
	colName      = "name"
	colRarity    = "rarity"
	colPrice     = "price"
	colImageURL  = "image_url"
	colSource    = "source"
	colWithdrawn = "withdrawn"
	colCreatedAt = "created_at"
)

type repo struct {
	dbc *pgxpool.Pool
}

func NewInventoryRepository(dbc *pgxpool.Pool) repository.InventoryRepository {
	return &repo{
		dbc: dbc,
	}
}

// Add - кладет предмет в инвентарь, возвращает ID записи
func (r *repo) Add(ctx context.Context, item *model.InventoryItem) (int, error) {
	// Формируем запрос
	query := sq.Insert(table).
		Columns(colUserID, colName, colRarity, colPrice, colImageURL, colSource).
		Values(item.UserID, item.Name, item.Rarity, item.Price, item.ImageURL, item.Source).
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

// ListByUser - инвентарь пользователя, от новых к старым
func (r *repo) ListByUser(ctx context.Context, userID int) ([]model.InventoryItem, error) {
	// Формируем запрос
	query := sq.Select(colID, colUserID, colName, colRarity, colPrice, colImageURL,
		colSource, colWithdrawn, colCreatedAt).
		From(table).
		Where(sq.Eq{colUserID: userID}).
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

	var items []model.InventoryItem
	for rows.Next() {
		var it model.InventoryItem
		if err := rows.Scan(&it.ID, &it.UserID, &it.Name, &it.Rarity, &it.Price,
			&it.ImageURL, &it.Source, &it.Withdrawn, &it.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	return items, rows.Err()
}

// GetByID - предмет инвентаря по ID
func (r *repo) GetByID(ctx context.Context, id int) (*model.InventoryItem, error) {
	// Формируем запрос
	query := sq.Select(colID, colUserID, colName, colRarity, colPrice, colImageURL,
		colSource, colWithdrawn, colCreatedAt).
		From(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var it model.InventoryItem
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(
		&it.ID, &it.UserID, &it.Name, &it.Rarity, &it.Price,
		&it.ImageURL, &it.Source, &it.Withdrawn, &it.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &it, nil
}

// Delete - удаляет предмет (при продаже)
func (r *repo) Delete(ctx context.Context, id int) error {
	// Формируем запрос
	query := sq.Delete(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn(ctx).Exec(ctx, sqlStr, args...)
	return err
}

// MarkWithdrawn - помечает предмет выведенным
func (r *repo) MarkWithdrawn(ctx context.Context, id int) error {
	// Формируем запрос
	query := sq.Update(table).
		Set(colWithdrawn, true).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn(ctx).Exec(ctx, sqlStr, args...)
	return err
}

func (r *repo) conn(ctx context.Context) trmpgx.Tr {
	return trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)
}
