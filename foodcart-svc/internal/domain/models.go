package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Banner struct {
	Title string `json:"title"`
	Src   string `json:"src"`
	Text  string `json:"text"`
}

type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Money is a decimal amount rendered as a string with two fraction digits.
type Money struct {
	decimal.Decimal
}

func NewMoney(d decimal.Decimal) Money {
	return Money{Decimal: d}
}

func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.StringFixed(2) + `"`), nil
}

type Product struct {
	ID            int       `json:"id"`
	Name          string    `json:"name"`
	Price         Money     `json:"price"`
	SpecialStatus bool      `json:"special_status"`
	Description   string    `json:"description"`
	Category      *Category `json:"category"`
	Image         string    `json:"image"`
}

type OrderItem struct {
	ProductID int
	Quantity  int
	Cost      Money
}

type Order struct {
	ID           int
	FirstName    string
	LastName     string
	PhoneNumber  string
	Address      string
	Items        []OrderItem
	RegisteredAt time.Time
}

// OrderResponse mirrors the accepted payload back with the new order id.
type OrderResponse struct {
	ID          int    `json:"id"`
	FirstName   string `json:"firstname"`
	LastName    string `json:"lastname"`
	PhoneNumber string `json:"phonenumber"`
	Address     string `json:"address"`
}

type KafkaMessage struct {
	Type      string    `json:"type"`
	OrderID   int       `json:"order_id"`
	Address   string    `json:"address"`
	Timestamp time.Time `json:"timestamp"`
}
