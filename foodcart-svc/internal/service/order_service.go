package service

import (
	"context"
	"fmt"
	"time"

	"foodcart/foodcart-svc/internal/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const EventOrderRegistered = "order_registered"

// maxLineCost is the largest value order_items.cost (NUMERIC(8,2)) holds.
var maxLineCost = decimal.RequireFromString("999999.99")

type OrderService struct {
	orders      OrderRepository
	products    ProductRepository
	publisher   OrderPublisher
	phoneRegion string
	logger      *zap.SugaredLogger
}

func NewOrderService(orders OrderRepository, products ProductRepository, publisher OrderPublisher, phoneRegion string, logger *zap.SugaredLogger) *OrderService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	if phoneRegion == "" {
		phoneRegion = "RU"
	}
	return &OrderService{
		orders:      orders,
		products:    products,
		publisher:   publisher,
		phoneRegion: phoneRegion,
		logger:      logger,
	}
}

// Register validates the payload, prices every line at the current product
// price and stores the order with its items in one transaction.
func (s *OrderService) Register(ctx context.Context, payload OrderPayload) (*domain.OrderResponse, error) {
	errs := &ValidationError{}

	ids := checkLines(errs, payload.Products)
	firstName := checkText(errs, "firstname", payload.FirstName, 50)
	lastName := checkText(errs, "lastname", payload.LastName, 50)
	address := checkText(errs, "address", payload.Address, 100)

	phone := checkText(errs, "phonenumber", payload.PhoneNumber, 128)
	if phone != "" {
		normalized, err := NormalizePhone(phone, s.phoneRegion)
		if err != nil {
			errs.add("phonenumber", "The phone number entered is not valid.")
		}
		phone = normalized
	}

	if !errs.empty() {
		return nil, errs
	}

	prices, err := s.products.PricesByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load product prices: %w", err)
	}

	order := &domain.Order{
		FirstName:   firstName,
		LastName:    lastName,
		PhoneNumber: phone,
		Address:     address,
	}
	for i, line := range *payload.Products {
		price, ok := prices[*line.Product]
		if !ok {
			errs.add(fmt.Sprintf("products[%d].product", i), fmt.Sprintf("Invalid pk \"%d\" - object does not exist.", *line.Product))
			continue
		}
		cost := price.Mul(decimal.NewFromInt(int64(*line.Quantity)))
		if cost.GreaterThan(maxLineCost) {
			errs.add(fmt.Sprintf("products[%d].quantity", i), fmt.Sprintf("Ensure the line cost is no more than %s.", maxLineCost.StringFixed(2)))
			continue
		}
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: *line.Product,
			Quantity:  *line.Quantity,
			Cost:      domain.NewMoney(cost),
		})
	}
	if !errs.empty() {
		return nil, errs
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	s.logger.Infow("order registered", "order_id", order.ID, "items", len(order.Items))

	if s.publisher != nil {
		if err := s.publisher.PublishOrder(ctx, domain.KafkaMessage{
			Type:      EventOrderRegistered,
			OrderID:   order.ID,
			Address:   order.Address,
			Timestamp: time.Now(),
		}); err != nil {
			s.logger.Warnw("failed to publish order event", "order_id", order.ID, "error", err)
		}
	}

	return &domain.OrderResponse{
		ID:          order.ID,
		FirstName:   order.FirstName,
		LastName:    order.LastName,
		PhoneNumber: order.PhoneNumber,
		Address:     order.Address,
	}, nil
}
