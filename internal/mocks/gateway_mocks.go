package mocks

import (
	"context"

	"github.com/tambesec/networkstore/domain"
)

// MockAuthGateway implements domain.AuthGateway with overridable behaviors.
type MockAuthGateway struct {
	SessionFunc       func(ctx context.Context) (*domain.SessionInfo, error)
	LoginFunc         func(ctx context.Context, email, password string) (*domain.User, error)
	RegisterFunc      func(ctx context.Context, req domain.RegisterRequest) (*domain.User, error)
	LogoutFunc        func(ctx context.Context) error
	UpdateProfileFunc func(ctx context.Context, req domain.ProfileUpdate) (*domain.User, error)

	LogoutCalls int
}

func (m *MockAuthGateway) Session(ctx context.Context) (*domain.SessionInfo, error) {
	if m.SessionFunc != nil {
		return m.SessionFunc(ctx)
	}
	return &domain.SessionInfo{Authenticated: false}, nil
}

func (m *MockAuthGateway) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, email, password)
	}
	return &domain.User{ID: 1, Email: email, Role: domain.RoleCustomer}, nil
}

func (m *MockAuthGateway) Register(ctx context.Context, req domain.RegisterRequest) (*domain.User, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, req)
	}
	return &domain.User{ID: 1, Email: req.Email, FullName: req.FullName, Role: domain.RoleCustomer}, nil
}

func (m *MockAuthGateway) Logout(ctx context.Context) error {
	m.LogoutCalls++
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx)
	}
	return nil
}

func (m *MockAuthGateway) UpdateProfile(ctx context.Context, req domain.ProfileUpdate) (*domain.User, error) {
	if m.UpdateProfileFunc != nil {
		return m.UpdateProfileFunc(ctx, req)
	}
	return &domain.User{ID: 1, FullName: req.FullName, Email: req.Email, Phone: req.Phone}, nil
}

// MockCartGateway implements domain.CartGateway.
type MockCartGateway struct {
	GetFunc        func(ctx context.Context) (*domain.Cart, error)
	AddItemFunc    func(ctx context.Context, productID int64, quantity int) error
	UpdateItemFunc func(ctx context.Context, itemID int64, quantity int) error
	RemoveItemFunc func(ctx context.Context, itemID int64) error
	ClearFunc      func(ctx context.Context) error

	GetCalls     int
	AddItemCalls int
}

func (m *MockCartGateway) Get(ctx context.Context) (*domain.Cart, error) {
	m.GetCalls++
	if m.GetFunc != nil {
		return m.GetFunc(ctx)
	}
	return &domain.Cart{ID: 1}, nil
}

func (m *MockCartGateway) AddItem(ctx context.Context, productID int64, quantity int) error {
	m.AddItemCalls++
	if m.AddItemFunc != nil {
		return m.AddItemFunc(ctx, productID, quantity)
	}
	return nil
}

func (m *MockCartGateway) UpdateItem(ctx context.Context, itemID int64, quantity int) error {
	if m.UpdateItemFunc != nil {
		return m.UpdateItemFunc(ctx, itemID, quantity)
	}
	return nil
}

func (m *MockCartGateway) RemoveItem(ctx context.Context, itemID int64) error {
	if m.RemoveItemFunc != nil {
		return m.RemoveItemFunc(ctx, itemID)
	}
	return nil
}

func (m *MockCartGateway) Clear(ctx context.Context) error {
	if m.ClearFunc != nil {
		return m.ClearFunc(ctx)
	}
	return nil
}

// MockAddressGateway implements domain.AddressGateway.
type MockAddressGateway struct {
	CreateFunc func(ctx context.Context, req domain.AddressRequest) (*domain.Address, error)
	ListFunc   func(ctx context.Context) ([]domain.Address, error)

	CreateCalls int
}

func (m *MockAddressGateway) Create(ctx context.Context, req domain.AddressRequest) (*domain.Address, error) {
	m.CreateCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	return &domain.Address{
		ID:            int64(m.CreateCalls),
		RecipientName: req.RecipientName,
		Phone:         req.Phone,
		AddressLine:   req.AddressLine,
		City:          req.City,
		AddressType:   req.AddressType,
	}, nil
}

func (m *MockAddressGateway) List(ctx context.Context) ([]domain.Address, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

// MockOrderGateway implements domain.OrderGateway.
type MockOrderGateway struct {
	CreateFunc func(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error)
	ListFunc   func(ctx context.Context, page, limit int) (*domain.OrderList, error)
	GetFunc    func(ctx context.Context, orderID int64) (*domain.Order, error)
	CancelFunc func(ctx context.Context, orderID int64) error

	CreateCalls int
	CancelCalls int
}

func (m *MockOrderGateway) Create(ctx context.Context, req domain.CreateOrderRequest) (*domain.Order, error) {
	m.CreateCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	return &domain.Order{
		ID:             1,
		OrderNumber:    "ORD-0001",
		StatusID:       domain.OrderStatusPending,
		PaymentMethod:  req.PaymentMethod,
		ShippingMethod: req.ShippingMethod,
	}, nil
}

func (m *MockOrderGateway) List(ctx context.Context, page, limit int) (*domain.OrderList, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, page, limit)
	}
	return &domain.OrderList{}, nil
}

func (m *MockOrderGateway) Get(ctx context.Context, orderID int64) (*domain.Order, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, orderID)
	}
	return &domain.Order{ID: orderID, StatusID: domain.OrderStatusPending}, nil
}

func (m *MockOrderGateway) Cancel(ctx context.Context, orderID int64) error {
	m.CancelCalls++
	if m.CancelFunc != nil {
		return m.CancelFunc(ctx, orderID)
	}
	return nil
}

// MockDiscountGateway implements domain.DiscountGateway.
type MockDiscountGateway struct {
	ValidateFunc func(ctx context.Context, code string, orderAmount int64) (*domain.DiscountValidation, error)

	ValidateCalls int
	LastCode      string
	LastAmount    int64
}

func (m *MockDiscountGateway) Validate(ctx context.Context, code string, orderAmount int64) (*domain.DiscountValidation, error) {
	m.ValidateCalls++
	m.LastCode = code
	m.LastAmount = orderAmount
	if m.ValidateFunc != nil {
		return m.ValidateFunc(ctx, code, orderAmount)
	}
	return &domain.DiscountValidation{Valid: false, Message: "code not found"}, nil
}

// MockCatalogGateway implements domain.CatalogGateway.
type MockCatalogGateway struct {
	ListProductsFunc   func(ctx context.Context, q domain.ProductQuery) (*domain.ProductList, error)
	GetProductFunc     func(ctx context.Context, productID int64) (*domain.Product, error)
	ListCategoriesFunc func(ctx context.Context) ([]domain.Category, error)

	LastQuery domain.ProductQuery
}

func (m *MockCatalogGateway) ListProducts(ctx context.Context, q domain.ProductQuery) (*domain.ProductList, error) {
	m.LastQuery = q
	if m.ListProductsFunc != nil {
		return m.ListProductsFunc(ctx, q)
	}
	return &domain.ProductList{}, nil
}

func (m *MockCatalogGateway) GetProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	if m.GetProductFunc != nil {
		return m.GetProductFunc(ctx, productID)
	}
	return &domain.Product{ID: productID}, nil
}

func (m *MockCatalogGateway) ListCategories(ctx context.Context) ([]domain.Category, error) {
	if m.ListCategoriesFunc != nil {
		return m.ListCategoriesFunc(ctx)
	}
	return nil, nil
}

// MockReviewGateway implements domain.ReviewGateway.
type MockReviewGateway struct {
	ListByProductFunc func(ctx context.Context, productID int64, page, limit int) (*domain.ReviewList, error)
	CreateFunc        func(ctx context.Context, req domain.ReviewRequest) (*domain.Review, error)

	CreateCalls int
}

func (m *MockReviewGateway) ListByProduct(ctx context.Context, productID int64, page, limit int) (*domain.ReviewList, error) {
	if m.ListByProductFunc != nil {
		return m.ListByProductFunc(ctx, productID, page, limit)
	}
	return &domain.ReviewList{}, nil
}

func (m *MockReviewGateway) Create(ctx context.Context, req domain.ReviewRequest) (*domain.Review, error) {
	m.CreateCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	return &domain.Review{ID: 1, ProductID: req.ProductID, Rating: req.Rating, Comment: req.Comment}, nil
}

var (
	_ domain.AuthGateway     = (*MockAuthGateway)(nil)
	_ domain.CartGateway     = (*MockCartGateway)(nil)
	_ domain.AddressGateway  = (*MockAddressGateway)(nil)
	_ domain.OrderGateway    = (*MockOrderGateway)(nil)
	_ domain.DiscountGateway = (*MockDiscountGateway)(nil)
	_ domain.CatalogGateway  = (*MockCatalogGateway)(nil)
	_ domain.ReviewGateway   = (*MockReviewGateway)(nil)
)
