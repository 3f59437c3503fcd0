package cart_repo

import (
	"context"

	"vaultory_backend/internal/model"
	"vaultory_backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table        = "cart_items"
	colUserID    = "user_id"
	colProductID = "product_id"
	colQuantity  = "quantity"
)

type repo struct {
	dbc *pgxpool.Pool
}

func NewCartRepository(dbc *pgxpool.Pool) repository.CartRepository {
	return &repo{
		dbc: dbc,
	}
}

// GetCart - позиции корзины вместе с данными товара
func (r *repo) GetCart(ctx context.Context, userID int) ([]model.CartLine, error) {
	// Формируем запрос
	query := sq.Select("c."+colProductID, "p.name", "p.price", "p.image_url", "c."+colQuantity).
		From(table + " c").
		Join("products p ON c." + colProductID + " = p.id").
		Where(sq.Eq{"c." + colUserID: userID}).
		OrderBy("c." + colProductID).
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

	var lines []model.CartLine
	for rows.Next() {
		var l model.CartLine
		if err := rows.Scan(&l.ProductID, &l.Name, &l.Price, &l.ImageURL, &l.Quantity); err != nil {
			return nil, err
		}
		lines = append(lines, l)
	}

	return lines, rows.Err()
}

// AddItem - добавляет товар в корзину. Если позиция уже есть,
// увеличивает количество
func (r *repo) AddItem(ctx context.Context, userID, productID, quantity int) error {
	// Формируем запрос
	query := sq.Insert(table).
		Columns(colUserID, colProductID, colQuantity).
		Values(userID, productID, quantity).
		Suffix("ON CONFLICT (" + colUserID + ", " + colProductID + ") DO UPDATE SET " +
			colQuantity + " = " + table + "." + colQuantity + " + EXCLUDED." + colQuantity).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn(ctx).Exec(ctx, sqlStr, args...)
	return err
}

// SetQuantity - устанавливает количество для позиции корзины
func (r *repo) SetQuantity(ctx context.Context, userID, productID, quantity int) error {
	// Формируем запрос
	query := sq.Update(table).
		Set(colQuantity, quantity).
		Where(sq.Eq{colUserID: userID, colProductID: productID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn(ctx).Exec(ctx, sqlStr, args...)
	return err
}

// RemoveItem - удаляет позицию из корзины
func (r *repo) RemoveItem(ctx context.Context, userID, productID int) error {
	// Формируем запрос
	query := sq.Delete(table).
		Where(sq.Eq{colUserID: userID, colProductID: productID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn(ctx).Exec(ctx, sqlStr, args...)
	return err
}

// Clear - очищает корзину пользователя
func (r *repo) Clear(ctx context.Context, userID int) error {
	// Формируем запрос
	query := sq.Delete(table).
		Where(sq.Eq{colUserID: userID}).
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
