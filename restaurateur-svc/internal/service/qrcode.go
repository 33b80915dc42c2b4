package service

import (
	"net/url"

	"foodcart/restaurateur-svc/internal/domain"

	"github.com/skip2/go-qrcode"
)

type QRGenerator interface {
	Generate(order *domain.Order) ([]byte, error)
}

// DefaultQRGenerator encodes a map search link for the order address.
type DefaultQRGenerator struct {
	MapsURL string
}

func (g DefaultQRGenerator) Link(order *domain.Order) string {
	return g.MapsURL + "?text=" + url.QueryEscape(order.Address)
}

func (g DefaultQRGenerator) Generate(order *domain.Order) ([]byte, error) {
	return qrcode.Encode(g.Link(order), qrcode.Medium, 256)
}
