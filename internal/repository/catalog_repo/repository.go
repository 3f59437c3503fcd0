package catalog_repo

import (
	"context"

	"vaultory_backend/internal/model"
	"vaultory_backend/internal/repository"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	gamesTable      = "games"
	categoriesTable = "categories"
	productsTable   = "products"

	colID          = "id"
	colGameID      = "game_id"
	colCategoryID  = "category_id"
	colName        = "name"
	colSlug        = "slug"
	colDescription = "description"
	colPrice       = "price"
	colImageURL    = "image_url"
	colActive      = "active"
	colCreatedAt   = "created_at"
)

type repo struct {
	dbc *pgxpool.Pool
}

func NewCatalogRepository(dbc *pgxpool.Pool) repository.CatalogRepository {
	return &repo{
		dbc: dbc,
	}
}

// ListGames - список всех игр
func (r *repo) ListGames(ctx context.Context) ([]model.Game, error) {
	// Формируем запрос
	query := sq.Select(colID, colName, colSlug, colImageURL).
		From(gamesTable).
		OrderBy(colName).
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

	var games []model.Game
	for rows.Next() {
		var g model.Game
		if err := rows.Scan(&g.ID, &g.Name, &g.Slug, &g.ImageURL); err != nil {
			return nil, err
		}
		games = append(games, g)
	}

	return games, rows.Err()
}

// ListCategories - категории игры. gameID = 0 вернет все категории
func (r *repo) ListCategories(ctx context.Context, gameID int) ([]model.Category, error) {
	// Формируем запрос
	query := sq.Select(colID, colGameID, colName, colSlug).
		From(categoriesTable).
		OrderBy(colName).
		PlaceholderFormat(sq.Dollar)

	if gameID > 0 {
		query = query.Where(sq.Eq{colGameID: gameID})
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

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		if err := rows.Scan(&c.ID, &c.GameID, &c.Name, &c.Slug); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

// ListProducts - товары с учетом фильтров
func (r *repo) ListProducts(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	// Формируем запрос
	query := sq.Select(colID, colCategoryID, colGameID, colName, colDescription,
		colPrice, colImageURL, colActive, colCreatedAt).
		From(productsTable).
		OrderBy(colID).
		PlaceholderFormat(sq.Dollar)

	if filter.GameID > 0 {
		query = query.Where(sq.Eq{colGameID: filter.GameID})
	}
	if filter.CategoryID > 0 {
		query = query.Where(sq.Eq{colCategoryID: filter.CategoryID})
	}
	if filter.MaxPrice > 0 {
		query = query.Where(sq.LtOrEq{colPrice: filter.MaxPrice})
	}
	if filter.OnlyActive {
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

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.CategoryID, &p.GameID, &p.Name, &p.Description,
			&p.Price, &p.ImageURL, &p.Active, &p.CreatedAt); err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

// GetProduct - товар по ID
func (r *repo) GetProduct(ctx context.Context, id int) (*model.Product, error) {
	// Формируем запрос
	query := sq.Select(colID, colCategoryID, colGameID, colName, colDescription,
		colPrice, colImageURL, colActive, colCreatedAt).
		From(productsTable).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	var p model.Product
	err = r.dbc.QueryRow(ctx, sqlStr, args...).Scan(
		&p.ID, &p.CategoryID, &p.GameID, &p.Name, &p.Description,
		&p.Price, &p.ImageURL, &p.Active, &p.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &p, nil
}

// CreateGame - создает игру, возвращает ID
func (r *repo) CreateGame(ctx context.Context, g *model.Game) (int, error) {
	query := sq.Insert(gamesTable).
		Columns(colName, colSlug, colImageURL).
		Values(g.Name, g.Slug, g.ImageURL).
		Suffix("RETURNING " + colID).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var id int
	err = r.dbc.QueryRow(ctx, sqlStr, args...).Scan(&id)
	return id, err
}

// CreateCategory - создает категорию, возвращает ID
func (r *repo) CreateCategory(ctx context.Context, c *model.Category) (int, error) {
	query := sq.Insert(categoriesTable).
		Columns(colGameID, colName, colSlug).
		Values(c.GameID, c.Name, c.Slug).
		Suffix("RETURNING " + colID).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var id int
	err = r.dbc.QueryRow(ctx, sqlStr, args...).Scan(&id)
	return id, err
}

// CreateProduct - создает товар, возвращает ID
func (r *repo) CreateProduct(ctx context.Context, p *model.Product) (int, error) {
	query := sq.Insert(productsTable).
		Columns(colCategoryID, colGameID, colName, colDescription, colPrice, colImageURL, colActive).
		Values(p.CategoryID, p.GameID, p.Name, p.Description, p.Price, p.ImageURL, p.Active).
		Suffix("RETURNING " + colID).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, err
	}

	var id int
	err = r.dbc.QueryRow(ctx, sqlStr, args...).Scan(&id)
	return id, err
}

// UpdateProduct - обновляет товар по ID
func (r *repo) UpdateProduct(ctx context.Context, p *model.Product) error {
	query := sq.Update(productsTable).
		Set(colCategoryID, p.CategoryID).
		Set(colGameID, p.GameID).
		Set(colName, p.Name).
		Set(colDescription, p.Description).
		Set(colPrice, p.Price).
		Set(colImageURL, p.ImageURL).
		Set(colActive, p.Active).
		Where(sq.Eq{colID: p.ID}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.dbc.Exec(ctx, sqlStr, args...)
	return err
}

// DeleteProduct - удаляет товар по ID
func (r *repo) DeleteProduct(ctx context.Context, id int) error {
	query := sq.Delete(productsTable).
		Where(sq.Eq{colID: id}).
		PlaceholderFormat(sq.Dollar)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return err
	}

	_, err = r.dbc.Exec(ctx, sqlStr, args...)
	return err
}
