package domain

import "context"

// AuthGateway defines the backend's authentication endpoints.
type AuthGateway interface {
	// Session introspects the current cookie session. It never fails with
	// an authentication error; guests get Authenticated=false.
	Session(ctx context.Context) (*SessionInfo, error)
	Login(ctx context.Context, email, password string) (*User, error)
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, req ProfileUpdate) (*User, error)
}

// CartGateway defines the server-side cart endpoints.
type CartGateway interface {
	Get(ctx context.Context) (*Cart, error)
	AddItem(ctx context.Context, productID int64, quantity int) error
	UpdateItem(ctx context.Context, itemID int64, quantity int) error
	RemoveItem(ctx context.Context, itemID int64) error
	Clear(ctx context.Context) error
}

// AddressGateway defines the saved-address endpoints.
type AddressGateway interface {
	Create(ctx context.Context, req AddressRequest) (*Address, error)
	List(ctx context.Context) ([]Address, error)
}

// OrderGateway defines the order endpoints.
type OrderGateway interface {
	Create(ctx context.Context, req CreateOrderRequest) (*Order, error)
	List(ctx context.Context, page, limit int) (*OrderList, error)
	Get(ctx context.Context, orderID int64) (*Order, error)
	Cancel(ctx context.Context, orderID int64) error
}

// DiscountGateway validates promotional codes against the backend.
type DiscountGateway interface {
	Validate(ctx context.Context, code string, orderAmount int64) (*DiscountValidation, error)
}

// CatalogGateway defines the product/category browse endpoints.
type CatalogGateway interface {
	ListProducts(ctx context.Context, q ProductQuery) (*ProductList, error)
	GetProduct(ctx context.Context, productID int64) (*Product, error)
	ListCategories(ctx context.Context) ([]Category, error)
}

// ReviewGateway defines the product-review endpoints.
type ReviewGateway interface {
	ListByProduct(ctx context.Context, productID int64, page, limit int) (*ReviewList, error)
	Create(ctx context.Context, req ReviewRequest) (*Review, error)
}

// RoleGate decides which backend roles may use this client.
type RoleGate interface {
	Allow(role string) (bool, error)
}

// Navigator abstracts the embedding application's navigation so the request
// pipeline can force a move to the sign-in page after a failed refresh.
type Navigator interface {
	CurrentPath() string
	Redirect(path string)
}

// LogoutGate is the request pipeline's logging-out switch. While set, failing
// requests are rejected immediately instead of queued behind a refresh.
type LogoutGate interface {
	SetLoggingOut(v bool)
	LoggingOut() bool
}

// SessionService manages the authenticated session lifecycle.
type SessionService interface {
	LoadSession(ctx context.Context) error
	Login(ctx context.Context, email, password string) (*User, error)
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Logout(ctx context.Context) error
	UpdateProfile(ctx context.Context, req ProfileUpdate) (*User, error)
	CurrentUser() *User
	State() SessionState
	IsAuthenticated() bool
	Subscribe(fn SessionSubscriber)
}

// CartService manages the client's copy of the server-side cart.
type CartService interface {
	Cart() *Cart
	Refresh(ctx context.Context) error
	AddItem(ctx context.Context, productID int64, quantity int) error
	UpdateQuantity(ctx context.Context, itemID int64, quantity int) error
	RemoveItem(ctx context.Context, itemID int64) error
	Clear(ctx context.Context) error
}

// CheckoutService orchestrates checkout form state and order submission.
type CheckoutService interface {
	Form() CheckoutForm
	UpdateForm(patch CheckoutFormPatch)
	FieldErrors() ValidationErrors
	ApplyDiscount(ctx context.Context, code string) (*DiscountInfo, error)
	RemoveDiscount()
	Discount() *DiscountInfo
	ShippingFee(subtotal int64) int64
	Total() int64
	SubmitOrder(ctx context.Context) (*Order, error)
}

// CatalogService exposes catalog browsing.
type CatalogService interface {
	ListProducts(ctx context.Context, q ProductQuery) (*ProductList, error)
	GetProduct(ctx context.Context, productID int64) (*Product, error)
	ListCategories(ctx context.Context) ([]Category, error)
}

// OrderService exposes the customer's order history.
type OrderService interface {
	List(ctx context.Context, page, limit int) (*OrderList, error)
	Get(ctx context.Context, orderID int64) (*Order, error)
	Cancel(ctx context.Context, orderID int64) error
}

// ReviewService exposes product reviews.
type ReviewService interface {
	ListByProduct(ctx context.Context, productID int64, page, limit int) (*ReviewList, error)
	Submit(ctx context.Context, req ReviewRequest) (*Review, error)
}
