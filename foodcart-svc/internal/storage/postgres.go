package storage

import (
	"context"
	"database/sql"
	"fmt"

	"foodcart/foodcart-svc/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type PostgresRepository struct {
	DB *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

type productRow struct {
	ID            int             `db:"id"`
	Name          string          `db:"name"`
	Price         decimal.Decimal `db:"price"`
	SpecialStatus bool            `db:"special_status"`
	Description   string          `db:"description"`
	Image         string          `db:"image"`
	CategoryID    sql.NullInt64   `db:"category_id"`
	CategoryName  sql.NullString  `db:"category_name"`
}

func (r *PostgresRepository) ListAvailableProducts(ctx context.Context) ([]domain.Product, error) {
	var rows []productRow
	err := r.DB.SelectContext(ctx, &rows, `
		SELECT p.id, p.name, p.price, p.special_status, p.description, p.image,
		       c.id AS category_id, c.name AS category_name
		FROM products p
		LEFT JOIN product_categories c ON c.id = p.category_id
		WHERE EXISTS (
			SELECT 1 FROM restaurant_menu_items m
			WHERE m.product_id = p.id AND m.availability
		)
		ORDER BY p.id`)
	if err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		product := domain.Product{
			ID:            row.ID,
			Name:          row.Name,
			Price:         domain.NewMoney(row.Price),
			SpecialStatus: row.SpecialStatus,
			Description:   row.Description,
			Image:         row.Image,
		}
		if row.CategoryID.Valid {
			product.Category = &domain.Category{ID: int(row.CategoryID.Int64), Name: row.CategoryName.String}
		}
		products = append(products, product)
	}
	return products, nil
}

func (r *PostgresRepository) PricesByIDs(ctx context.Context, ids []int) (map[int]decimal.Decimal, error) {
	keys := make([]int64, 0, len(ids))
	for _, id := range ids {
		keys = append(keys, int64(id))
	}

	rows, err := r.DB.QueryxContext(ctx, `SELECT id, price FROM products WHERE id = ANY($1)`, pq.Array(keys))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prices := make(map[int]decimal.Decimal, len(ids))
	for rows.Next() {
		var id int
		var price decimal.Decimal
		if err := rows.Scan(&id, &price); err != nil {
			return nil, err
		}
		prices[id] = price
	}
	return prices, rows.Err()
}

func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order) (err error) {
	tx, err := r.DB.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	err = tx.QueryRowxContext(ctx, `
		INSERT INTO orders (firstname, lastname, phonenumber, address)
		VALUES ($1, $2, $3, $4)
		RETURNING id, registered_at`,
		order.FirstName, order.LastName, order.PhoneNumber, order.Address).
		Scan(&order.ID, &order.RegisteredAt)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, item := range order.Items {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, cost)
			VALUES ($1, $2, $3, $4)`,
			order.ID, item.ProductID, item.Quantity, item.Cost.Decimal); err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return tx.Commit()
}
