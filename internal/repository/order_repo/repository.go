package order_repo

import (
	"context"

	"vaultory_backend/internal/model"
	"vaultory_backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	ordersTable  = "orders"
	colID        = "id"
	colUserID    = "user_id"
	colTotal     = "total"
	colCreatedAt = "created_at"

	itemsTable   = "order_items"
	colOrderID   = "order_id"
	colProductID = "product_id"
	colName      = "name"
	colPrice     = "price"
	colQuantity  = "quantity"
)

type repo struct {
	dbc *pgxpool.Pool
}

func NewOrderRepository(dbc *pgxpool.Pool) repository.OrderRepository {
	return &repo{
		dbc: dbc,
	}
}

// CreateOrder - создает заказ и его позиции.
// Вызывается внутри транзакции оформления заказа
func (r *repo) CreateOrder(ctx context.Context, order *model.Order, items []model.OrderItem) error {
	// Формируем запрос на заказ
	query := sq.Insert(ordersTable).
		Columns(colID, colUserID, colTotal).
		Values(order.ID, order.UserID, order.Total).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	if _, err = r.conn(ctx).Exec(ctx, sqlStr, args...); err != nil {
		return err
	}

	// Формируем запрос на позиции
	itemsQuery := sq.Insert(itemsTable).
		Columns(colOrderID, colProductID, colName, colPrice, colQuantity).
		PlaceholderFormat(sq.Dollar)

	for _, item := range items {
		itemsQuery = itemsQuery.Values(order.ID, item.ProductID, item.Name, item.Price, item.Quantity)
	}

	sqlStr, args, err = itemsQuery.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn(ctx).Exec(ctx, sqlStr, args...)
	return err
}

// ListByUser - заказы пользователя, от новых к старым
func (r *repo) ListByUser(ctx context.Context, userID int) ([]model.Order, error) {
	// Формируем запрос
	query := sq.Select(colID, colUserID, colTotal, colCreatedAt).
		From(ordersTable).
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

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Total, &o.CreatedAt); err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, rows.Err()
}

// ListItems - позиции заказа
func (r *repo) ListItems(ctx context.Context, orderID string) ([]model.OrderItem, error) {
	// Формируем запрос
	query := sq.Select(colOrderID, colProductID, colName, colPrice, colQuantity).
		From(itemsTable).
		Where(sq.Eq{colOrderID: orderID}).
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

	var items []model.OrderItem
	for rows.Next() {
		var it model.OrderItem
		if err := rows.Scan(&it.OrderID, &it.ProductID, &it.Name, &it.Price, &it.Quantity); err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	return items, rows.Err()
}

func (r *repo) conn(ctx context.Context) trmpgx.Tr {
	return trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)
}
