package tests

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	httpapi "foodcart/restaurateur-svc/internal/api/http"
	"foodcart/restaurateur-svc/internal/domain"
	"foodcart/restaurateur-svc/internal/mocks"
	"foodcart/restaurateur-svc/internal/service"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const staffToken = "staff-token"

func setupTestRouter(manager *mocks.ManagerServiceInterface, auth *mocks.AuthServiceInterface) *mux.Router {
	handler := httpapi.NewHandler(manager, auth, time.Hour, nil)
	r := mux.NewRouter()
	handler.RegisterRoutes(r)
	return r
}

func staffRequest(method, target string, auth *mocks.AuthServiceInterface) *http.Request {
	auth.On("ParseToken", staffToken).
		Return(&service.Claims{UserID: 1, Username: "manager", IsStaff: true}, nil).Once()
	req := httptest.NewRequest(method, target, nil)
	req.AddCookie(&http.Cookie{Name: "manager_session", Value: staffToken})
	return req
}

func TestHandler_requiresStaffSession(t *testing.T) {
	tests := []struct {
		name         string
		cookie       string
		prepareMocks func(auth *mocks.AuthServiceInterface)
	}{
		{
			name:         "no cookie",
			prepareMocks: func(auth *mocks.AuthServiceInterface) {},
		},
		{
			name:   "invalid token",
			cookie: "garbage",
			prepareMocks: func(auth *mocks.AuthServiceInterface) {
				auth.On("ParseToken", "garbage").Return(nil, service.ErrInvalidToken).Once()
			},
		},
		{
			name:   "not a staff member",
			cookie: "customer",
			prepareMocks: func(auth *mocks.AuthServiceInterface) {
				auth.On("ParseToken", "customer").
					Return(&service.Claims{UserID: 2, Username: "customer"}, nil).Once()
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			manager := mocks.NewManagerServiceInterface(t)
			auth := mocks.NewAuthServiceInterface(t)
			testCase.prepareMocks(auth)
			router := setupTestRouter(manager, auth)

			req := httptest.NewRequest("GET", "/manager/orders/", nil)
			if testCase.cookie != "" {
				req.AddCookie(&http.Cookie{Name: "manager_session", Value: testCase.cookie})
			}
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, http.StatusFound, recorder.Code)
			assert.Equal(t, "/manager/login/", recorder.Header().Get("Location"))
		})
	}
}

func TestHandler_login(t *testing.T) {
	tests := []struct {
		name             string
		form             url.Values
		prepareMocks     func(auth *mocks.AuthServiceInterface)
		expectedCode     int
		expectedLocation string
		expectedBody     string
		expectCookie     bool
	}{
		{
			name: "staff user",
			form: url.Values{"username": {"manager"}, "password": {"secret"}},
			prepareMocks: func(auth *mocks.AuthServiceInterface) {
				auth.On("Login", mock.Anything, "manager", "secret").
					Return("jwt", &domain.StaffUser{ID: 1, Username: "manager", IsStaff: true}, nil).Once()
			},
			expectedCode:     http.StatusFound,
			expectedLocation: "/manager/",
			expectCookie:     true,
		},
		{
			name: "non staff user",
			form: url.Values{"username": {"client"}, "password": {"secret"}},
			prepareMocks: func(auth *mocks.AuthServiceInterface) {
				auth.On("Login", mock.Anything, "client", "secret").
					Return("jwt", &domain.StaffUser{ID: 2, Username: "client"}, nil).Once()
			},
			expectedCode:     http.StatusFound,
			expectedLocation: "/",
			expectCookie:     true,
		},
		{
			name: "invalid credentials",
			form: url.Values{"username": {"manager"}, "password": {"wrong"}},
			prepareMocks: func(auth *mocks.AuthServiceInterface) {
				auth.On("Login", mock.Anything, "manager", "wrong").
					Return("", nil, service.ErrInvalidCredentials).Once()
			},
			expectedCode: http.StatusOK,
			expectedBody: "Invalid username or password",
		},
		{
			name: "storage failure",
			form: url.Values{"username": {"manager"}, "password": {"secret"}},
			prepareMocks: func(auth *mocks.AuthServiceInterface) {
				auth.On("Login", mock.Anything, "manager", "secret").
					Return("", nil, errors.New("db down")).Once()
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			manager := mocks.NewManagerServiceInterface(t)
			auth := mocks.NewAuthServiceInterface(t)
			testCase.prepareMocks(auth)
			router := setupTestRouter(manager, auth)

			req := httptest.NewRequest("POST", "/manager/login/", strings.NewReader(testCase.form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, req)

			assert.Equal(t, testCase.expectedCode, recorder.Code)
			if testCase.expectedLocation != "" {
				assert.Equal(t, testCase.expectedLocation, recorder.Header().Get("Location"))
			}
			if testCase.expectedBody != "" {
				assert.Contains(t, recorder.Body.String(), testCase.expectedBody)
			}
			if testCase.expectCookie {
				assert.Contains(t, recorder.Header().Get("Set-Cookie"), "manager_session=jwt")
			}
		})
	}
}

func TestHandler_loginForm(t *testing.T) {
	router := setupTestRouter(mocks.NewManagerServiceInterface(t), mocks.NewAuthServiceInterface(t))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("GET", "/manager/login/", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, recorder.Body.String(), `name="password"`)
}

func TestHandler_logout(t *testing.T) {
	router := setupTestRouter(mocks.NewManagerServiceInterface(t), mocks.NewAuthServiceInterface(t))

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest("POST", "/manager/logout/", nil))

	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/manager/login/", recorder.Header().Get("Location"))
	assert.Contains(t, recorder.Header().Get("Set-Cookie"), "Max-Age=0")
}

func TestHandler_index(t *testing.T) {
	manager := mocks.NewManagerServiceInterface(t)
	auth := mocks.NewAuthServiceInterface(t)
	router := setupTestRouter(manager, auth)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, staffRequest("GET", "/manager/", auth))

	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/manager/products/", recorder.Header().Get("Location"))
}

func TestHandler_viewProducts(t *testing.T) {
	manager := mocks.NewManagerServiceInterface(t)
	auth := mocks.NewAuthServiceInterface(t)
	router := setupTestRouter(manager, auth)

	manager.On("ProductsMatrix", mock.Anything).Return(&domain.ProductsMatrix{
		Restaurants: []domain.Restaurant{{ID: 1, Name: "Star Burger Арбат"}},
		Rows: []domain.ProductRow{{
			Product:      domain.Product{ID: 1, Name: "Чизбургер", Price: decimal.NewFromInt(199), CategoryName: "Бургеры"},
			Availability: []bool{true},
		}},
	}, nil).Once()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, staffRequest("GET", "/manager/products/", auth))

	assert.Equal(t, http.StatusOK, recorder.Code)
	body := recorder.Body.String()
	assert.Contains(t, body, "Star Burger Арбат")
	assert.Contains(t, body, "Чизбургер")
	assert.Contains(t, body, "199.00")
	assert.Contains(t, body, "manager")
}

func TestHandler_viewRestaurants(t *testing.T) {
	manager := mocks.NewManagerServiceInterface(t)
	auth := mocks.NewAuthServiceInterface(t)
	router := setupTestRouter(manager, auth)

	manager.On("Restaurants", mock.Anything).Return([]domain.Restaurant{
		{ID: 1, Name: "Star Burger Арбат", Address: "Москва, Арбат 1", ContactPhone: "+74951234567"},
	}, nil).Once()

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, staffRequest("GET", "/manager/restaurants/", auth))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Москва, Арбат 1")
	assert.Contains(t, recorder.Body.String(), "+74951234567")
}

func TestHandler_viewOrders(t *testing.T) {
	tests := []struct {
		name         string
		prepareMocks func(manager *mocks.ManagerServiceInterface)
		expectedCode int
		expectedBody []string
	}{
		{
			name: "success",
			prepareMocks: func(manager *mocks.ManagerServiceInterface) {
				manager.On("PendingOrders", mock.Anything).Return([]domain.OrderView{
					{
						ID:            7,
						Status:        "Необработанный",
						PaymentMethod: "Наличностью",
						Cost:          "497.00",
						FullName:      "Иван Петров",
						Address:       "Москва, Тверская 1",
						Restaurants: []domain.Candidate{
							{RestaurantID: 1, Name: "Ближний", Distance: "0.125", HasDistance: true},
							{RestaurantID: 2, Name: "Дальний", Distance: service.InvalidAddress},
						},
					},
					{ID: 8, Status: "Необработанный", Cost: "0.00", FullName: "Анна Смирнова"},
				}, nil).Once()
			},
			expectedCode: http.StatusOK,
			expectedBody: []string{"Иван Петров", "497.00", "Ближний - 0.125 км", service.InvalidAddress, "/manager/orders/7/qrcode", "Нет ресторанов"},
		},
		{
			name: "service error",
			prepareMocks: func(manager *mocks.ManagerServiceInterface) {
				manager.On("PendingOrders", mock.Anything).Return(nil, errors.New("db down")).Once()
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			manager := mocks.NewManagerServiceInterface(t)
			auth := mocks.NewAuthServiceInterface(t)
			testCase.prepareMocks(manager)
			router := setupTestRouter(manager, auth)

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, staffRequest("GET", "/manager/orders/", auth))

			require.Equal(t, testCase.expectedCode, recorder.Code)
			for _, fragment := range testCase.expectedBody {
				assert.Contains(t, recorder.Body.String(), fragment)
			}
		})
	}
}

func TestHandler_orderQRCode(t *testing.T) {
	tests := []struct {
		name         string
		prepareMocks func(manager *mocks.ManagerServiceInterface)
		expectedCode int
		expectedType string
	}{
		{
			name: "success",
			prepareMocks: func(manager *mocks.ManagerServiceInterface) {
				manager.On("OrderRouteQR", mock.Anything, 7).Return([]byte("\x89PNG"), nil).Once()
			},
			expectedCode: http.StatusOK,
			expectedType: "image/png",
		},
		{
			name: "unknown order",
			prepareMocks: func(manager *mocks.ManagerServiceInterface) {
				manager.On("OrderRouteQR", mock.Anything, 7).Return(nil, service.ErrOrderNotFound).Once()
			},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			manager := mocks.NewManagerServiceInterface(t)
			auth := mocks.NewAuthServiceInterface(t)
			testCase.prepareMocks(manager)
			router := setupTestRouter(manager, auth)

			recorder := httptest.NewRecorder()
			router.ServeHTTP(recorder, staffRequest("GET", "/manager/orders/7/qrcode", auth))

			assert.Equal(t, testCase.expectedCode, recorder.Code)
			if testCase.expectedType != "" {
				assert.Equal(t, testCase.expectedType, recorder.Header().Get("Content-Type"))
			}
		})
	}
}
