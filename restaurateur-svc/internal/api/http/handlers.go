package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"foodcart/restaurateur-svc/internal/service"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Handler struct {
	Manager    service.ManagerServiceInterface
	Auth       service.AuthServiceInterface
	Logger     *zap.SugaredLogger
	SessionTTL time.Duration
	templates  templateSet
}

func NewHandler(manager service.ManagerServiceInterface, auth service.AuthServiceInterface, sessionTTL time.Duration, logger *zap.SugaredLogger) *Handler {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Handler{
		Manager:    manager,
		Auth:       auth,
		Logger:     logger,
		SessionTTL: sessionTTL,
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	m := r.PathPrefix("/manager").Subrouter()
	m.HandleFunc("/login/", h.loginForm).Methods("GET")
	m.HandleFunc("/login/", h.login).Methods("POST")
	m.HandleFunc("/logout/", h.logout).Methods("GET", "POST")

	m.Handle("/", h.mustStaff(h.index)).Methods("GET")
	m.Handle("/products/", h.mustStaff(h.viewProducts)).Methods("GET")
	m.Handle("/restaurants/", h.mustStaff(h.viewRestaurants)).Methods("GET")
	m.Handle("/orders/", h.mustStaff(h.viewOrders)).Methods("GET")
	m.Handle("/orders/{id:[0-9]+}/qrcode", h.mustStaff(h.orderQRCode)).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "healthy",
		"service":   "restaurateur-svc",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data map[string]interface{}) {
	if data == nil {
		data = map[string]interface{}{}
	}
	data["Username"] = usernameFrom(r.Context())
	if err := h.templates.render(w, status, page, data); err != nil {
		h.Logger.Errorw("failed to render page", "page", page, "error", err)
	}
}

func (h *Handler) loginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "login.html", map[string]interface{}{
		"Invalid":       false,
		"LoginUsername": "",
	})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	username := r.PostFormValue("username")

	token, user, err := h.Auth.Login(r.Context(), username, r.PostFormValue("password"))
	if errors.Is(err, service.ErrInvalidCredentials) {
		h.render(w, r, http.StatusOK, "login.html", map[string]interface{}{
			"Invalid":       true,
			"LoginUsername": username,
		})
		return
	}
	if err != nil {
		h.Logger.Errorw("login failed", "username", username, "error", err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	setSession(w, token, h.SessionTTL)
	h.Logger.Infow("user logged in", "username", user.Username, "staff", user.IsStaff)

	if !user.IsStaff {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/manager/", http.StatusFound)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	clearSession(w)
	http.Redirect(w, r, loginURL, http.StatusFound)
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/manager/products/", http.StatusFound)
}

func (h *Handler) viewProducts(w http.ResponseWriter, r *http.Request) {
	matrix, err := h.Manager.ProductsMatrix(r.Context())
	if err != nil {
		h.Logger.Errorw("failed to build products matrix", "error", err)
		http.Error(w, "failed to load products", http.StatusInternalServerError)
		return
	}
	h.render(w, r, http.StatusOK, "products_list.html", map[string]interface{}{
		"Restaurants": matrix.Restaurants,
		"Rows":        matrix.Rows,
	})
}

func (h *Handler) viewRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.Manager.Restaurants(r.Context())
	if err != nil {
		h.Logger.Errorw("failed to list restaurants", "error", err)
		http.Error(w, "failed to load restaurants", http.StatusInternalServerError)
		return
	}
	h.render(w, r, http.StatusOK, "restaurants_list.html", map[string]interface{}{
		"Restaurants": restaurants,
	})
}

func (h *Handler) viewOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Manager.PendingOrders(r.Context())
	if err != nil {
		h.Logger.Errorw("failed to list pending orders", "error", err)
		http.Error(w, "failed to load orders", http.StatusInternalServerError)
		return
	}
	h.render(w, r, http.StatusOK, "order_items.html", map[string]interface{}{
		"Orders": orders,
	})
}

func (h *Handler) orderQRCode(w http.ResponseWriter, r *http.Request) {
	orderID, _ := strconv.Atoi(mux.Vars(r)["id"])
	png, err := h.Manager.OrderRouteQR(r.Context(), orderID)
	if errors.Is(err, service.ErrOrderNotFound) {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	if err != nil {
		h.Logger.Errorw("failed to render order qr code", "order_id", orderID, "error", err)
		http.Error(w, "failed to render qr code", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}
