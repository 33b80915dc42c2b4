package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("not found")

const (
	StatusUnprocessed = "unprocessed"
	StatusProcessed   = "processed"
)

var statusLabels = map[string]string{
	StatusUnprocessed: "Необработанный",
	StatusProcessed:   "Обработанный",
}

func StatusLabel(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return status
}

var paymentLabels = map[string]string{
	"unspecified": "Не указан",
	"cash":        "Наличностью",
	"card":        "Электронно",
}

func PaymentLabel(method string) string {
	if label, ok := paymentLabels[method]; ok {
		return label
	}
	return method
}

type Restaurant struct {
	ID           int    `db:"id"`
	Name         string `db:"name"`
	Address      string `db:"address"`
	ContactPhone string `db:"contact_phone"`
}

type Product struct {
	ID           int             `db:"id"`
	Name         string          `db:"name"`
	Price        decimal.Decimal `db:"price"`
	Image        string          `db:"image"`
	CategoryName string          `db:"category_name"`
}

type MenuItem struct {
	RestaurantID int  `db:"restaurant_id"`
	ProductID    int  `db:"product_id"`
	Availability bool `db:"availability"`
}

// Offer is a restaurant that has a product on sale.
type Offer struct {
	ProductID         int    `db:"product_id"`
	RestaurantID      int    `db:"restaurant_id"`
	RestaurantName    string `db:"restaurant_name"`
	RestaurantAddress string `db:"restaurant_address"`
}

type Order struct {
	ID            int             `db:"id"`
	FirstName     string          `db:"firstname"`
	LastName      string          `db:"lastname"`
	PhoneNumber   string          `db:"phonenumber"`
	Address       string          `db:"address"`
	Status        string          `db:"status"`
	PaymentMethod string          `db:"payment_method"`
	Comments      string          `db:"comments"`
	Cost          decimal.Decimal `db:"cost"`
}

type OrderLine struct {
	OrderID   int `db:"order_id"`
	ProductID int `db:"product_id"`
	Quantity  int `db:"quantity"`
}

type StaffUser struct {
	ID           int    `db:"id"`
	Username     string `db:"username"`
	PasswordHash string `db:"password_hash"`
	IsStaff      bool   `db:"is_staff"`
	IsActive     bool   `db:"is_active"`
}

// ProductRow is one line of the availability matrix, with one flag per
// restaurant column.
type ProductRow struct {
	Product      Product
	Availability []bool
}

type ProductsMatrix struct {
	Restaurants []Restaurant
	Rows        []ProductRow
}

// Candidate is a restaurant able to cook a whole order.
type Candidate struct {
	RestaurantID int
	Name         string
	Address      string
	Distance     string
	DistanceKM   float64
	HasDistance  bool
}

type OrderView struct {
	ID            int
	Status        string
	PaymentMethod string
	Cost          string
	FullName      string
	PhoneNumber   string
	Comments      string
	Address       string
	Restaurants   []Candidate
}
