package gateway

import (
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Config struct {
	FoodcartSvcURL     string
	RestaurateurSvcURL string
	FrontendDir        string
	MediaDir           string
}

// foodcartRoutes are the public API paths served by foodcart-svc, with
// and without the trailing slash.
var foodcartRoutes = map[string]bool{
	"/api/banners":  true,
	"/api/products": true,
	"/api/order":    true,
}

type Gateway struct {
	config Config
	client HTTPClient
	logger *zap.SugaredLogger
}

func NewGateway(config Config, client HTTPClient, logger *zap.SugaredLogger) *Gateway {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Gateway{
		config: config,
		client: client,
		logger: logger,
	}
}

func (g *Gateway) HealthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]string{
		"status":  "healthy",
		"service": "api-gateway",
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (g *Gateway) ProxyRequest(w http.ResponseWriter, r *http.Request, targetURL string) {
	g.logger.Debugw("proxy", "method", r.Method, "path", r.URL.Path, "target", targetURL)

	url := targetURL + r.URL.Path
	if r.URL.RawQuery != "" {
		url += "?" + r.URL.RawQuery
	}

	req, err := http.NewRequestWithContext(r.Context(), r.Method, url, r.Body)
	if err != nil {
		g.logger.Errorw("failed to create upstream request", "url", url, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	for k, v := range r.Header {
		req.Header[k] = v
	}

	resp, err := g.client.Do(req)
	if err != nil {
		g.logger.Errorw("failed to proxy request", "target", targetURL, "path", r.URL.Path, "error", err)
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()

	for k, v := range resp.Header {
		w.Header()[k] = v
	}
	w.WriteHeader(resp.StatusCode)

	if _, err := io.Copy(w, resp.Body); err != nil {
		g.logger.Warnw("failed to copy upstream response", "path", r.URL.Path, "error", err)
	}
}

func (g *Gateway) RouteHandler(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path

	if strings.HasPrefix(path, "/manager/") || path == "/manager" {
		g.ProxyRequest(w, r, g.config.RestaurateurSvcURL)
		return
	}

	if foodcartRoutes[strings.TrimSuffix(path, "/")] {
		g.ProxyRequest(w, r, g.config.FoodcartSvcURL)
		return
	}

	if strings.HasPrefix(path, "/api/") {
		g.logger.Infow("unmatched api route", "method", r.Method, "path", path)
		http.Error(w, "API route not found", http.StatusNotFound)
		return
	}

	http.ServeFile(w, r, filepath.Join(g.config.FrontendDir, "index.html"))
}

func (g *Gateway) SetupRoutes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/health", g.HealthCheck).Methods("GET")
	r.PathPrefix("/api/").HandlerFunc(g.RouteHandler)
	r.PathPrefix("/manager").HandlerFunc(g.RouteHandler)
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir(g.config.FrontendDir))))
	r.PathPrefix("/media/").Handler(http.StripPrefix("/media/", http.FileServer(http.Dir(g.config.MediaDir))))
	r.PathPrefix("/").HandlerFunc(g.RouteHandler)
	return r
}
