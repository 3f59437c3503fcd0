package user_repo

import (
	"context"
	"errors"

	"vaultory_backend/internal/model"
	"vaultory_backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	table           = "users"
	colID           = "id"
	colTelegramID   = "telegram_id"
	colUsername     = "username"
	colFirstName    = "first_name"
	colPhotoURL     = "photo_url"
	colBalance      = "balance"
	colIsAdmin      = "is_admin"
	colCasesOpened  = "cases_opened"
	colTotalSpent   = "total_spent"
	colCreatedAt    = "created_at"
	colLogin        = "login"
	colPasswordHash = "password_hash"
)

var userColumns = []string{
	colID, colTelegramID, colUsername, colFirstName, colPhotoURL,
	colBalance, colIsAdmin, colCasesOpened, colTotalSpent, colCreatedAt,
}

type repo struct {
	dbc *pgxpool.Pool
}

func NewUserRepository(dbc *pgxpool.Pool) repository.UserRepository {
	return &repo{
		dbc: dbc,
	}
}

// UpsertTelegramUser - создает пользователя по telegram_id или обновляет профиль.
// Возвращает актуальную модель после вставки/обновления
func (r *repo) UpsertTelegramUser(ctx context.Context, user *model.User) (*model.User, error) {
	// Формируем запрос
	query := sq.Insert(table).
		Columns(colTelegramID, colUsername, colFirstName, colPhotoURL, colBalance).
		Values(user.TelegramID, user.Username, user.FirstName, user.PhotoURL, 0).
		Suffix("ON CONFLICT (" + colTelegramID + ") DO UPDATE SET " +
			colUsername + " = EXCLUDED." + colUsername + ", " +
			colFirstName + " = EXCLUDED." + colFirstName + ", " +
			colPhotoURL + " = EXCLUDED." + colPhotoURL).
		Suffix("RETURNING " + joinColumns()).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	return r.scanUser(r.conn(ctx).QueryRow(ctx, sqlStr, args...))
}

// GetByID - возвращает модель пользователя по его ID
func (r *repo) GetByID(ctx context.Context, id int) (*model.User, error) {
	// Формируем запрос
	query := sq.Select(userColumns...).
		From(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	return r.scanUser(r.conn(ctx).QueryRow(ctx, sqlStr, args...))
}

// GetByLogin - возвращает пользователя-админа по логину (вместе с хэшем пароля)
func (r *repo) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	// Формируем запрос
	query := sq.Select(append(userColumns, colLogin, colPasswordHash)...).
		From(table).
		Where(sq.Eq{colLogin: login}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var user model.User
	var login_, passwordHash *string
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(
		&user.ID, &user.TelegramID, &user.Username, &user.FirstName, &user.PhotoURL,
		&user.Balance, &user.IsAdmin, &user.CasesOpened, &user.TotalSpent, &user.CreatedAt,
		&login_, &passwordHash,
	)
	if err != nil {
		return nil, err
	}

	if login_ != nil {
		user.Login = *login_
	}
	if passwordHash != nil {
		user.PasswordHash = *passwordHash
	}
	return &user, nil
}

// GetBalance - получение баланса пользователя по его ID
func (r *repo) GetBalance(ctx context.Context, id int) (int, error) {
	// Формируем запрос
	query := sq.Select(colBalance).
		From(table).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var balance int64
	err = r.conn(ctx).QueryRow(ctx, sqlStr, args...).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, err
		}
		return 0, err
	}

	return int(balance), nil
}

// UpdateBalance - обновляет баланс пользователя.
// Принимает ID пользователя и новую сумму баланса
func (r *repo) UpdateBalance(ctx context.Context, id int, amount int) error {
	// Формируем запрос
	query := sq.Update(table).
		Set(colBalance, int64(amount)).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn(ctx).Exec(ctx, sqlStr, args...)
	if err != nil {
		return err
	}

	return nil
}

// IncrementCasesOpened - увеличивает счетчик открытых кейсов пользователя на 1
func (r *repo) IncrementCasesOpened(ctx context.Context, id int) error {
	// Формируем запрос
	query := sq.Update(table).
		Set(colCasesOpened, sq.Expr(colCasesOpened+" + 1")).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn(ctx).Exec(ctx, sqlStr, args...)
	return err
}

// AddPurchaseStats - прибавляет сумму покупки к total_spent пользователя
func (r *repo) AddPurchaseStats(ctx context.Context, id int, amount int) error {
	// Формируем запрос
	query := sq.Update(table).
		Set(colTotalSpent, sq.Expr(colTotalSpent+" + ?", amount)).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.conn(ctx).Exec(ctx, sqlStr, args...)
	return err
}

// conn возвращает транзакцию из контекста, если она открыта через trm,
// иначе сам пул
func (r *repo) conn(ctx context.Context) trmpgx.Tr {
	return trmpgx.DefaultCtxGetter.DefaultTrOrDB(ctx, r.dbc)
}

func (r *repo) scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID, &user.TelegramID, &user.Username, &user.FirstName, &user.PhotoURL,
		&user.Balance, &user.IsAdmin, &user.CasesOpened, &user.TotalSpent, &user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func joinColumns() string {
	out := userColumns[0]
	for _, c := range userColumns[1:] {
		out += ", " + c
	}
	return out
}
