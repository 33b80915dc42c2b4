package tests

import (
	"context"
	"errors"
	"testing"
	"time"

	"foodcart/geocoding"
	"foodcart/restaurateur-svc/internal/domain"
	"foodcart/restaurateur-svc/internal/mocks"
	"foodcart/restaurateur-svc/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func coords(address string, lat, lon float64) *geocoding.Place {
	return &geocoding.Place{Address: address, Lat: &lat, Lon: &lon}
}

func TestManagerService_ProductsMatrix(t *testing.T) {
	repo := mocks.NewManagerRepository(t)
	svc := service.NewManagerService(repo, nil, nil, nil)

	repo.On("ListRestaurants", mock.Anything).Return([]domain.Restaurant{
		{ID: 2, Name: "Star Burger Арбат"},
		{ID: 1, Name: "Star Burger Европейский"},
	}, nil).Once()
	repo.On("ListProducts", mock.Anything).Return([]domain.Product{
		{ID: 1, Name: "Чизбургер", Price: decimal.NewFromInt(199)},
		{ID: 2, Name: "Кола", Price: decimal.NewFromInt(99)},
	}, nil).Once()
	repo.On("ListMenuItems", mock.Anything).Return([]domain.MenuItem{
		{RestaurantID: 1, ProductID: 1, Availability: true},
		{RestaurantID: 2, ProductID: 1, Availability: false},
		{RestaurantID: 2, ProductID: 2, Availability: true},
		{RestaurantID: 9, ProductID: 2, Availability: true},
	}, nil).Once()

	matrix, err := svc.ProductsMatrix(context.Background())

	require.NoError(t, err)
	require.Len(t, matrix.Restaurants, 2)
	require.Len(t, matrix.Rows, 2)
	assert.Equal(t, "Чизбургер", matrix.Rows[0].Product.Name)
	assert.Equal(t, []bool{false, true}, matrix.Rows[0].Availability)
	assert.Equal(t, []bool{true, false}, matrix.Rows[1].Availability)
}

func TestManagerService_ProductsMatrix_RepositoryError(t *testing.T) {
	repo := mocks.NewManagerRepository(t)
	svc := service.NewManagerService(repo, nil, nil, nil)

	repo.On("ListRestaurants", mock.Anything).Return(nil, errors.New("db down")).Once()

	matrix, err := svc.ProductsMatrix(context.Background())

	assert.Error(t, err)
	assert.Nil(t, matrix)
}

func TestManagerService_PendingOrders(t *testing.T) {
	repo := mocks.NewManagerRepository(t)
	places := mocks.NewPlaceResolver(t)
	svc := service.NewManagerService(repo, places, nil, nil)

	repo.On("ListOrdersByStatus", mock.Anything, domain.StatusUnprocessed).Return([]domain.Order{
		{
			ID:            1,
			FirstName:     "Иван",
			LastName:      "Петров",
			PhoneNumber:   "+79001234567",
			Address:       "Москва, Тверская 1",
			Status:        domain.StatusUnprocessed,
			PaymentMethod: "cash",
			Cost:          decimal.RequireFromString("497"),
		},
		{
			ID:            2,
			FirstName:     "Анна",
			LastName:      "Смирнова",
			Address:       "Нигде",
			Status:        domain.StatusUnprocessed,
			PaymentMethod: "unspecified",
			Cost:          decimal.Zero,
		},
	}, nil).Once()
	repo.On("ListOrderLines", mock.Anything, []int{1, 2}).Return([]domain.OrderLine{
		{OrderID: 1, ProductID: 5, Quantity: 2},
		{OrderID: 1, ProductID: 6, Quantity: 1},
		{OrderID: 2, ProductID: 6, Quantity: 1},
	}, nil).Once()
	repo.On("ListOffers", mock.Anything, []int{5, 6}).Return([]domain.Offer{
		{ProductID: 5, RestaurantID: 10, RestaurantName: "Дальний", RestaurantAddress: "Москва, Лефортово"},
		{ProductID: 5, RestaurantID: 20, RestaurantName: "Ближний", RestaurantAddress: "Москва, Тверская 3"},
		{ProductID: 6, RestaurantID: 10, RestaurantName: "Дальний", RestaurantAddress: "Москва, Лефортово"},
		{ProductID: 6, RestaurantID: 20, RestaurantName: "Ближний", RestaurantAddress: "Москва, Тверская 3"},
	}, nil).Once()
	places.On("ResolveMany", mock.Anything, mock.Anything).Return(map[string]*geocoding.Place{
		"Москва, Тверская 1": coords("Москва, Тверская 1", 55.757, 37.613),
		"Москва, Тверская 3": coords("Москва, Тверская 3", 55.758, 37.611),
		"Москва, Лефортово":  coords("Москва, Лефортово", 55.752, 37.705),
		"Нигде":              {Address: "Нигде"},
	}).Once()

	orders, err := svc.PendingOrders(context.Background())

	require.NoError(t, err)
	require.Len(t, orders, 2)

	first := orders[0]
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, "Необработанный", first.Status)
	assert.Equal(t, "Наличностью", first.PaymentMethod)
	assert.Equal(t, "497.00", first.Cost)
	assert.Equal(t, "Иван Петров", first.FullName)
	require.Len(t, first.Restaurants, 2)
	assert.Equal(t, "Ближний", first.Restaurants[0].Name)
	assert.Equal(t, "Дальний", first.Restaurants[1].Name)
	assert.True(t, first.Restaurants[0].DistanceKM < first.Restaurants[1].DistanceKM)

	second := orders[1]
	assert.Equal(t, "Не указан", second.PaymentMethod)
	assert.Equal(t, "0.00", second.Cost)
	require.Len(t, second.Restaurants, 2)
	for _, candidate := range second.Restaurants {
		assert.Equal(t, service.InvalidAddress, candidate.Distance)
	}
}

func TestManagerService_PendingOrders_Empty(t *testing.T) {
	repo := mocks.NewManagerRepository(t)
	places := mocks.NewPlaceResolver(t)
	svc := service.NewManagerService(repo, places, nil, nil)

	repo.On("ListOrdersByStatus", mock.Anything, domain.StatusUnprocessed).Return(nil, nil).Once()

	orders, err := svc.PendingOrders(context.Background())

	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.NotNil(t, orders)
}

func TestManagerService_OrderRouteQR(t *testing.T) {
	tests := []struct {
		name         string
		prepareMocks func(repo *mocks.ManagerRepository, qr *mocks.QRGenerator)
		expectedErr  error
		expectedPNG  []byte
	}{
		{
			name: "success",
			prepareMocks: func(repo *mocks.ManagerRepository, qr *mocks.QRGenerator) {
				order := &domain.Order{ID: 3, Address: "Москва, Тверская 1"}
				repo.On("GetOrder", mock.Anything, 3).Return(order, nil).Once()
				qr.On("Generate", order).Return([]byte("png"), nil).Once()
			},
			expectedPNG: []byte("png"),
		},
		{
			name: "order not found",
			prepareMocks: func(repo *mocks.ManagerRepository, qr *mocks.QRGenerator) {
				repo.On("GetOrder", mock.Anything, 3).Return(nil, domain.ErrNotFound).Once()
			},
			expectedErr: service.ErrOrderNotFound,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			repo := mocks.NewManagerRepository(t)
			qr := mocks.NewQRGenerator(t)
			testCase.prepareMocks(repo, qr)
			svc := service.NewManagerService(repo, nil, qr, nil)

			png, err := svc.OrderRouteQR(context.Background(), 3)

			if testCase.expectedErr != nil {
				assert.ErrorIs(t, err, testCase.expectedErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expectedPNG, png)
		})
	}
}

func TestDefaultQRGenerator(t *testing.T) {
	gen := service.DefaultQRGenerator{MapsURL: "https://yandex.ru/maps/"}
	order := &domain.Order{Address: "Москва, Тверская 1"}

	assert.Equal(t, "https://yandex.ru/maps/?text=%D0%9C%D0%BE%D1%81%D0%BA%D0%B2%D0%B0%2C+%D0%A2%D0%B2%D0%B5%D1%80%D1%81%D0%BA%D0%B0%D1%8F+1", gen.Link(order))

	png, err := gen.Generate(order)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), png[:4])
}

func staffUser(t *testing.T, password string, staff, active bool) *domain.StaffUser {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.StaffUser{ID: 1, Username: "manager", PasswordHash: string(hash), IsStaff: staff, IsActive: active}
}

func TestAuthService_Login(t *testing.T) {
	tests := []struct {
		name         string
		username     string
		password     string
		prepareMocks func(users *mocks.UserRepository)
		expectedErr  error
		expectStaff  bool
	}{
		{
			name:     "staff user",
			username: "manager",
			password: "secret",
			prepareMocks: func(users *mocks.UserRepository) {
				users.On("FindUserByUsername", mock.Anything, "manager").Return(staffUser(t, "secret", true, true), nil).Once()
			},
			expectStaff: true,
		},
		{
			name:     "non staff user",
			username: "manager",
			password: "secret",
			prepareMocks: func(users *mocks.UserRepository) {
				users.On("FindUserByUsername", mock.Anything, "manager").Return(staffUser(t, "secret", false, true), nil).Once()
			},
		},
		{
			name:     "wrong password",
			username: "manager",
			password: "wrong",
			prepareMocks: func(users *mocks.UserRepository) {
				users.On("FindUserByUsername", mock.Anything, "manager").Return(staffUser(t, "secret", true, true), nil).Once()
			},
			expectedErr: service.ErrInvalidCredentials,
		},
		{
			name:     "inactive user",
			username: "manager",
			password: "secret",
			prepareMocks: func(users *mocks.UserRepository) {
				users.On("FindUserByUsername", mock.Anything, "manager").Return(staffUser(t, "secret", true, false), nil).Once()
			},
			expectedErr: service.ErrInvalidCredentials,
		},
		{
			name:     "unknown user",
			username: "ghost",
			password: "secret",
			prepareMocks: func(users *mocks.UserRepository) {
				users.On("FindUserByUsername", mock.Anything, "ghost").Return(nil, domain.ErrNotFound).Once()
			},
			expectedErr: service.ErrInvalidCredentials,
		},
		{
			name:         "blank input",
			username:     "  ",
			password:     "",
			prepareMocks: func(users *mocks.UserRepository) {},
			expectedErr:  service.ErrInvalidCredentials,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			users := mocks.NewUserRepository(t)
			testCase.prepareMocks(users)
			svc := service.NewAuthService(users, "test-secret", time.Hour)

			token, user, err := svc.Login(context.Background(), testCase.username, testCase.password)

			if testCase.expectedErr != nil {
				assert.ErrorIs(t, err, testCase.expectedErr)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expectStaff, user.IsStaff)

			claims, err := svc.ParseToken(token)
			require.NoError(t, err)
			assert.Equal(t, "manager", claims.Username)
			assert.Equal(t, testCase.expectStaff, claims.IsStaff)
		})
	}
}

func TestAuthService_ParseToken_Rejects(t *testing.T) {
	users := mocks.NewUserRepository(t)
	users.On("FindUserByUsername", mock.Anything, "manager").Return(staffUser(t, "secret", true, true), nil).Once()

	issuer := service.NewAuthService(users, "one-secret", time.Hour)
	token, _, err := issuer.Login(context.Background(), "manager", "secret")
	require.NoError(t, err)

	other := service.NewAuthService(nil, "another-secret", time.Hour)
	_, err = other.ParseToken(token)
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	_, err = issuer.ParseToken("not-a-token")
	assert.ErrorIs(t, err, service.ErrInvalidToken)

	expired := service.NewAuthService(users, "one-secret", -time.Minute)
	users.On("FindUserByUsername", mock.Anything, "manager").Return(staffUser(t, "secret", true, true), nil).Once()
	stale, _, err := expired.Login(context.Background(), "manager", "secret")
	require.NoError(t, err)
	_, err = issuer.ParseToken(stale)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestAuthService_EnsureStaffUser(t *testing.T) {
	users := mocks.NewUserRepository(t)
	svc := service.NewAuthService(users, "test-secret", time.Hour)

	users.On("UpsertStaffUser", mock.Anything, mock.MatchedBy(func(u *domain.StaffUser) bool {
		return u.Username == "manager" && u.IsStaff && u.IsActive &&
			bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret")) == nil
	})).Return(nil).Once()

	require.NoError(t, svc.EnsureStaffUser(context.Background(), "manager", "secret"))
	assert.Error(t, svc.EnsureStaffUser(context.Background(), "manager", ""))
}
