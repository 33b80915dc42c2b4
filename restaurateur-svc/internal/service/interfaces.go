package service

import (
	"context"

	"foodcart/geocoding"
	"foodcart/restaurateur-svc/internal/domain"
)

type ManagerRepository interface {
	ListRestaurants(ctx context.Context) ([]domain.Restaurant, error)
	ListProducts(ctx context.Context) ([]domain.Product, error)
	ListMenuItems(ctx context.Context) ([]domain.MenuItem, error)
	ListOrdersByStatus(ctx context.Context, status string) ([]domain.Order, error)
	ListOrderLines(ctx context.Context, orderIDs []int) ([]domain.OrderLine, error)
	ListOffers(ctx context.Context, productIDs []int) ([]domain.Offer, error)
	GetOrder(ctx context.Context, id int) (*domain.Order, error)
}

type UserRepository interface {
	FindUserByUsername(ctx context.Context, username string) (*domain.StaffUser, error)
	UpsertStaffUser(ctx context.Context, user *domain.StaffUser) error
}

type PlaceResolver interface {
	ResolveMany(ctx context.Context, addresses []string) map[string]*geocoding.Place
}

type ManagerServiceInterface interface {
	ProductsMatrix(ctx context.Context) (*domain.ProductsMatrix, error)
	Restaurants(ctx context.Context) ([]domain.Restaurant, error)
	PendingOrders(ctx context.Context) ([]domain.OrderView, error)
	OrderRouteQR(ctx context.Context, orderID int) ([]byte, error)
}

type AuthServiceInterface interface {
	Login(ctx context.Context, username, password string) (string, *domain.StaffUser, error)
	ParseToken(token string) (*Claims, error)
	EnsureStaffUser(ctx context.Context, username, password string) error
}

var (
	_ ManagerServiceInterface = (*ManagerService)(nil)
	_ AuthServiceInterface    = (*AuthService)(nil)
	_ PlaceResolver           = (*geocoding.Resolver)(nil)
)
