package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"foodcart/foodcart-svc/internal/service"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Handler struct {
	Catalog service.CatalogServiceInterface
	Orders  service.OrderServiceInterface
	Logger  *zap.SugaredLogger
}

func NewHandler(catalog service.CatalogServiceInterface, orders service.OrderServiceInterface, logger *zap.SugaredLogger) *Handler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Handler{
		Catalog: catalog,
		Orders:  orders,
		Logger:  logger,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/banners/", h.bannersList).Methods("GET")
	r.HandleFunc("/api/banners", h.bannersList).Methods("GET")
	r.HandleFunc("/api/products/", h.productsList).Methods("GET")
	r.HandleFunc("/api/products", h.productsList).Methods("GET")
	r.HandleFunc("/api/order/", h.registerOrder).Methods("POST")
	r.HandleFunc("/api/order", h.registerOrder).Methods("POST")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"service":   "foodcart-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) bannersList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Catalog.Banners())
}

func (h *Handler) productsList(w http.ResponseWriter, r *http.Request) {
	products, err := h.Catalog.AvailableProducts(r.Context())
	if err != nil {
		h.Logger.Errorw("failed to list products", "error", err)
		http.Error(w, "failed to list products", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

func (h *Handler) registerOrder(w http.ResponseWriter, r *http.Request) {
	var payload service.OrderPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid JSON format: "+err.Error(), http.StatusBadRequest)
		return
	}

	order, err := h.Orders.Register(r.Context(), payload)
	if err != nil {
		if errors.Is(err, service.ErrValidation) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.Logger.Errorw("failed to register order", "error", err)
		http.Error(w, "failed to register order", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	enc.Encode(body)
}
