package storage

import (
	"context"
	"database/sql"
	"errors"

	"foodcart/restaurateur-svc/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type PostgresRepository struct {
	DB *sqlx.DB
}

func NewPostgresRepository(db *sqlx.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func int64s(ids []int) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		out = append(out, int64(id))
	}
	return out
}

func (r *PostgresRepository) ListRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	var restaurants []domain.Restaurant
	err := r.DB.SelectContext(ctx, &restaurants, `
		SELECT id, name, address, contact_phone
		FROM restaurants
		ORDER BY name, id`)
	return restaurants, err
}

func (r *PostgresRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := r.DB.SelectContext(ctx, &products, `
		SELECT p.id, p.name, p.price, p.image, COALESCE(c.name, '') AS category_name
		FROM products p
		LEFT JOIN product_categories c ON c.id = p.category_id
		ORDER BY p.id`)
	return products, err
}

func (r *PostgresRepository) ListMenuItems(ctx context.Context) ([]domain.MenuItem, error) {
	var items []domain.MenuItem
	err := r.DB.SelectContext(ctx, &items, `
		SELECT restaurant_id, product_id, availability
		FROM restaurant_menu_items`)
	return items, err
}

// ListOrdersByStatus returns orders with their total cost summed over
// their items.
func (r *PostgresRepository) ListOrdersByStatus(ctx context.Context, status string) ([]domain.Order, error) {
	var orders []domain.Order
	err := r.DB.SelectContext(ctx, &orders, `
		SELECT o.id, o.firstname, o.lastname, o.phonenumber, o.address, o.status,
		       o.payment_method, o.comments, COALESCE(SUM(oi.cost), 0) AS cost
		FROM orders o
		LEFT JOIN order_items oi ON oi.order_id = o.id
		WHERE o.status = $1
		GROUP BY o.id
		ORDER BY o.id`, status)
	return orders, err
}

func (r *PostgresRepository) ListOrderLines(ctx context.Context, orderIDs []int) ([]domain.OrderLine, error) {
	var lines []domain.OrderLine
	err := r.DB.SelectContext(ctx, &lines, `
		SELECT order_id, product_id, quantity
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY order_id, id`, pq.Array(int64s(orderIDs)))
	return lines, err
}

// ListOffers returns, for each given product, the restaurants that have it
// on sale.
func (r *PostgresRepository) ListOffers(ctx context.Context, productIDs []int) ([]domain.Offer, error) {
	var offers []domain.Offer
	err := r.DB.SelectContext(ctx, &offers, `
		SELECT m.product_id, r.id AS restaurant_id, r.name AS restaurant_name, r.address AS restaurant_address
		FROM restaurant_menu_items m
		JOIN restaurants r ON r.id = m.restaurant_id
		WHERE m.availability AND m.product_id = ANY($1)`, pq.Array(int64s(productIDs)))
	return offers, err
}

func (r *PostgresRepository) GetOrder(ctx context.Context, id int) (*domain.Order, error) {
	var order domain.Order
	err := r.DB.GetContext(ctx, &order, `
		SELECT o.id, o.firstname, o.lastname, o.phonenumber, o.address, o.status,
		       o.payment_method, o.comments, COALESCE(SUM(oi.cost), 0) AS cost
		FROM orders o
		LEFT JOIN order_items oi ON oi.order_id = o.id
		WHERE o.id = $1
		GROUP BY o.id`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *PostgresRepository) FindUserByUsername(ctx context.Context, username string) (*domain.StaffUser, error) {
	var user domain.StaffUser
	err := r.DB.GetContext(ctx, &user, `
		SELECT id, username, password_hash, is_staff, is_active
		FROM staff_users
		WHERE username = $1`, username)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *PostgresRepository) UpsertStaffUser(ctx context.Context, user *domain.StaffUser) error {
	return r.DB.QueryRowxContext(ctx, `
		INSERT INTO staff_users (username, password_hash, is_staff, is_active)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (username) DO UPDATE
		SET password_hash = EXCLUDED.password_hash, is_staff = EXCLUDED.is_staff, is_active = EXCLUDED.is_active
		RETURNING id`,
		user.Username, user.PasswordHash, user.IsStaff, user.IsActive).
		Scan(&user.ID)
}
