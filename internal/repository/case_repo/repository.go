package case_repo

import (
	"context"

	"vaultory_backend/internal/model"
	"vaultory_backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	casesTable  = "cases"
	colID       = "id"
	colGameID   = "game_id"
	colName     = "name"
	colPrice    = "price"
	colImageURL = "image_url"
	colActive   = "active"

	itemsTable  = "case_items"
	colCaseID   = "case_id"
	colRarity   = "rarity"
	colInterval = "periodic_interval"
)

type repo struct {
	dbc *pgxpool.Pool
}

func NewCaseRepository(dbc *pgxpool.Pool) repository.CaseRepository {
	return &repo{
		dbc: dbc,
	}
}

// GetCase - возвращает кейс по ID
func (r *repo) GetCase(ctx context.Context, id int) (*model.Case, error) {
	// Формируем запрос
	query := sq.Select(colID, colGameID, colName, colPrice, colImageURL, colActive).
		From(casesTable).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var c model.Case
	err = r.dbc.QueryRow(ctx, sqlStr, args...).Scan(
		&c.ID, &c.GameID, &c.Name, &c.Price, &c.ImageURL, &c.Active)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// ListCases - список кейсов, опционально только активные
func (r *repo) ListCases(ctx context.Context, onlyActive bool) ([]model.Case, error) {
	// Формируем запрос
	query := sq.Select(colID, colGameID, colName, colPrice, colImageURL, colActive).
		From(casesTable).
		OrderBy(colID).
		PlaceholderFormat(sq.Dollar)

	if onlyActive {
		query = query.Where(sq.Eq{colActive: true})
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.dbc.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cases []model.Case
	for rows.Next() {
		var c model.Case
		if err := rows.Scan(&c.ID, &c.GameID, &c.Name, &c.Price, &c.ImageURL, &c.Active); err != nil {
			return nil, err
		}
		cases = append(cases, c)
	}

	return cases, rows.Err()
}

// GetCaseItems - все предметы-кандидаты кейса вместе с периодическими интервалами
func (r *repo) GetCaseItems(ctx context.Context, caseID int) ([]model.CaseItem, error) {
	// Формируем запрос
	query := sq.Select(colID, colCaseID, colName, colRarity, colPrice, colImageURL, colInterval).
		From(itemsTable).
		Where(sq.Eq{colCaseID: caseID}).
		OrderBy(colID).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.dbc.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.CaseItem
	for rows.Next() {
		var it model.CaseItem
		if err := rows.Scan(&it.ID, &it.CaseID, &it.Name, &it.Rarity, &it.Price, &it.ImageURL, &it.PeriodicInterval); err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	return items, rows.Err()
}

// GetCaseItem - один предмет кейса по его ID
func (r *repo) GetCaseItem(ctx context.Context, id int) (*model.CaseItem, error) {
	// Формируем запрос
	query := sq.Select(colID, colCaseID, colName, colRarity, colPrice, colImageURL, colInterval).
		From(itemsTable).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var it model.CaseItem
	err = r.dbc.QueryRow(ctx, sqlStr, args...).Scan(
		&it.ID, &it.CaseID, &it.Name, &it.Rarity, &it.Price, &it.ImageURL, &it.PeriodicInterval)
	if err != nil {
		return nil, err
	}

	return &it, nil
}

// CreateCase - создает кейс, возвращает его ID
func (r *repo) CreateCase(ctx context.Context, c *model.Case) (int, error) {
	// Формируем запрос
	query := sq.Insert(casesTable).
		Columns(colGameID, colName, colPrice, colImageURL, colActive).
		Values(c.GameID, c.Name, c.Price, c.ImageURL, c.Active).
		Suffix("RETURNING " + colID).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var id int
	err = r.dbc.QueryRow(ctx, sqlStr, args...).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

// UpdateCase - обновляет кейс целиком по ID
func (r *repo) UpdateCase(ctx context.Context, c *model.Case) error {
	// Формируем запрос
	query := sq.Update(casesTable).
		Set(colGameID, c.GameID).
		Set(colName, c.Name).
		Set(colPrice, c.Price).
		Set(colImageURL, c.ImageURL).
		Set(colActive, c.Active).
		Where(sq.Eq{colID: c.ID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.dbc.Exec(ctx, sqlStr, args...)
	return err
}

// CreateCaseItem - добавляет предмет в кейс, возвращает его ID
func (r *repo) CreateCaseItem(ctx context.Context, item *model.CaseItem) (int, error) {
	// Интервал 0 трактуем как базовый уровень
	interval := item.PeriodicInterval
	if interval <= 0 {
		interval = 1
	}

	// Формируем запрос
	query := sq.Insert(itemsTable).
		Columns(colCaseID, colName, colRarity, colPrice, colImageURL, colInterval).
		Values(item.CaseID, item.Name, item.Rarity, item.Price, item.ImageURL, interval).
		Suffix("RETURNING " + colID).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var id int
	err = r.dbc.QueryRow(ctx, sqlStr, args...).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

// UpdateCaseItem - обновляет предмет кейса по ID
func (r *repo) UpdateCaseItem(ctx context.Context, item *model.CaseItem) error {
	interval := item.PeriodicInterval
	if interval <= 0 {
		interval = 1
	}

	// Формируем запрос
	query := sq.Update(itemsTable).
		Set(colName, item.Name).
		Set(colRarity, item.Rarity).
		Set(colPrice, item.Price).
		Set(colImageURL, item.ImageURL).
		Set(colInterval, interval).
		Where(sq.Eq{colID: item.ID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.dbc.Exec(ctx, sqlStr, args...)
	return err
}

// DeleteCaseItem - удаляет предмет кейса по ID
func (r *repo) DeleteCaseItem(ctx context.Context, id int) error {
	// Формируем запрос
	query := sq.Delete(itemsTable).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.dbc.Exec(ctx, sqlStr, args...)
	return err
}
