package service

import (
	"context"
	"errors"
	"fmt"

	"foodcart/restaurateur-svc/internal/domain"

	"go.uber.org/zap"
)

var ErrOrderNotFound = errors.New("order not found")

type ManagerService struct {
	repo   ManagerRepository
	places PlaceResolver
	qr     QRGenerator
	logger *zap.SugaredLogger
}

func NewManagerService(repo ManagerRepository, places PlaceResolver, qr QRGenerator, logger *zap.SugaredLogger) *ManagerService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &ManagerService{
		repo:   repo,
		places: places,
		qr:     qr,
		logger: logger,
	}
}

// ProductsMatrix lays every product against the restaurants ordered by
// name. A product without a menu item in some restaurant is shown as not
// available there.
func (s *ManagerService) ProductsMatrix(ctx context.Context) (*domain.ProductsMatrix, error) {
	restaurants, err := s.repo.ListRestaurants(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	items, err := s.repo.ListMenuItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}

	column := make(map[int]int, len(restaurants))
	for i, rest := range restaurants {
		column[rest.ID] = i
	}

	availability := make(map[int][]bool, len(products))
	for _, product := range products {
		availability[product.ID] = make([]bool, len(restaurants))
	}
	for _, item := range items {
		row, ok := availability[item.ProductID]
		if !ok {
			continue
		}
		if col, ok := column[item.RestaurantID]; ok {
			row[col] = item.Availability
		}
	}

	matrix := &domain.ProductsMatrix{Restaurants: restaurants}
	for _, product := range products {
		matrix.Rows = append(matrix.Rows, domain.ProductRow{
			Product:      product,
			Availability: availability[product.ID],
		})
	}
	return matrix, nil
}

func (s *ManagerService) Restaurants(ctx context.Context) ([]domain.Restaurant, error) {
	return s.repo.ListRestaurants(ctx)
}

// PendingOrders returns every unprocessed order with the restaurants able
// to cook all of it and their distance to the delivery address.
func (s *ManagerService) PendingOrders(ctx context.Context) ([]domain.OrderView, error) {
	orders, err := s.repo.ListOrdersByStatus(ctx, domain.StatusUnprocessed)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	if len(orders) == 0 {
		return []domain.OrderView{}, nil
	}

	orderIDs := make([]int, 0, len(orders))
	for _, order := range orders {
		orderIDs = append(orderIDs, order.ID)
	}
	lines, err := s.repo.ListOrderLines(ctx, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list order lines: %w", err)
	}

	linesByOrder := make(map[int][]domain.OrderLine, len(orders))
	seenProduct := make(map[int]bool)
	var productIDs []int
	for _, line := range lines {
		linesByOrder[line.OrderID] = append(linesByOrder[line.OrderID], line)
		if !seenProduct[line.ProductID] {
			seenProduct[line.ProductID] = true
			productIDs = append(productIDs, line.ProductID)
		}
	}

	var offers map[int][]domain.Offer
	if len(productIDs) > 0 {
		found, err := s.repo.ListOffers(ctx, productIDs)
		if err != nil {
			return nil, fmt.Errorf("failed to list offers: %w", err)
		}
		offers = groupOffers(found)
	}

	candidates := make(map[int][]domain.Candidate, len(orders))
	var addresses []string
	for _, order := range orders {
		matched := FulfillingRestaurants(linesByOrder[order.ID], offers)
		candidates[order.ID] = matched
		addresses = append(addresses, order.Address)
		for _, c := range matched {
			addresses = append(addresses, c.Address)
		}
	}

	places := s.places.ResolveMany(ctx, addresses)

	views := make([]domain.OrderView, 0, len(orders))
	for _, order := range orders {
		matched := candidates[order.ID]
		annotateDistances(matched, order.Address, places)
		views = append(views, domain.OrderView{
			ID:            order.ID,
			Status:        domain.StatusLabel(order.Status),
			PaymentMethod: domain.PaymentLabel(order.PaymentMethod),
			Cost:          order.Cost.StringFixed(2),
			FullName:      order.FirstName + " " + order.LastName,
			PhoneNumber:   order.PhoneNumber,
			Comments:      order.Comments,
			Address:       order.Address,
			Restaurants:   matched,
		})
	}
	return views, nil
}

// OrderRouteQR renders a QR code with a map link to the delivery address
// of the order.
func (s *ManagerService) OrderRouteQR(ctx context.Context, orderID int) ([]byte, error) {
	order, err := s.repo.GetOrder(ctx, orderID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.qr.Generate(order)
}
