package domain

import "time"

// User roles known to the backend. The storefront client only ever accepts
// roles listed in its role gate; RoleAdmin is never among them.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

// PaymentMethod identifies how an order is paid.
type PaymentMethod string

const (
	PaymentCOD          PaymentMethod = "cod"
	PaymentBankTransfer PaymentMethod = "bank_transfer"
	PaymentMomo         PaymentMethod = "momo"
	PaymentZaloPay      PaymentMethod = "zalopay"
	PaymentVNPay        PaymentMethod = "vnpay"
)

// ShippingMethod identifies the delivery speed tier.
type ShippingMethod string

const (
	ShippingStandard ShippingMethod = "standard"
	ShippingExpress  ShippingMethod = "express"
	ShippingSameDay  ShippingMethod = "same_day"
)

// AddressType classifies a saved address.
type AddressType string

const (
	AddressHome   AddressType = "home"
	AddressOffice AddressType = "office"
	AddressOther  AddressType = "other"
)

// Order status ids as stored in the backend's order_statuses table.
const (
	OrderStatusPending    = 1
	OrderStatusConfirmed  = 2
	OrderStatusProcessing = 3
	OrderStatusShipped    = 4
	OrderStatusDelivered  = 5
	OrderStatusCancelled  = 6
	OrderStatusReturned   = 7
)

// User represents the authenticated customer as reported by the backend.
type User struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	FullName       string    `json:"full_name"`
	Phone          string    `json:"phone,omitempty"`
	Role           string    `json:"role"`
	IsOAuthUser    bool      `json:"is_oauth_user"`
	HasPassword    bool      `json:"has_password"`
	OAuthProviders []string  `json:"oauth_providers,omitempty"`
	EmailVerified  bool      `json:"email_verified"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// SessionInfo is the session-introspection result. The endpoint backing it
// never answers with an authentication failure; a guest simply gets
// Authenticated=false.
type SessionInfo struct {
	Authenticated bool  `json:"authenticated"`
	User          *User `json:"user,omitempty"`
}

// SessionState tracks the session manager's lifecycle.
type SessionState int

const (
	SessionLoading SessionState = iota
	SessionAuthenticated
	SessionUnauthenticated
)

func (s SessionState) String() string {
	switch s {
	case SessionLoading:
		return "loading"
	case SessionAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// RegisterRequest carries the fields for account creation.
type RegisterRequest struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
}

// ProfileUpdate carries a partial profile change. Empty fields are omitted
// from the request body and left untouched by the backend.
type ProfileUpdate struct {
	FullName string `json:"full_name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
}

// ProductInfo is the slim product shape embedded in cart items.
type ProductInfo struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	Price         int64  `json:"price"`
	DiscountPrice int64  `json:"discount_price,omitempty"`
	MainImage     string `json:"main_image,omitempty"`
}

// Product is the full catalog entry.
type Product struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Slug          string  `json:"slug"`
	SKU           string  `json:"sku"`
	Description   string  `json:"description,omitempty"`
	Price         int64   `json:"price"`
	DiscountPrice int64   `json:"discount_price,omitempty"`
	Stock         int     `json:"stock"`
	CategoryID    int64   `json:"category_id"`
	MainImage     string  `json:"main_image,omitempty"`
	RatingAverage float64 `json:"rating_average,omitempty"`
	RatingCount   int     `json:"rating_count,omitempty"`
}

// Category is a catalog grouping (routers, switches, access points...).
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CartItem is one line of the server-side cart. Price is a snapshot taken
// when the item was added, independent of the current catalog price.
type CartItem struct {
	ID        int64        `json:"id"`
	ProductID int64        `json:"product_id"`
	Quantity  int          `json:"quantity"`
	Price     int64        `json:"price"`
	Product   *ProductInfo `json:"product,omitempty"`
}

// CartSummary holds the server-computed totals.
type CartSummary struct {
	Subtotal       int64 `json:"subtotal"`
	Tax            int64 `json:"tax"`
	DiscountAmount int64 `json:"discount_amount"`
	Total          int64 `json:"total"`
	ItemsCount     int   `json:"items_count"`
}

// Cart is the server-owned cart. The client holds a read-mostly copy that is
// refetched after every mutation.
type Cart struct {
	ID      int64       `json:"id"`
	Items   []CartItem  `json:"items"`
	Summary CartSummary `json:"summary"`
}

// Address is a saved shipping/billing address.
type Address struct {
	ID            int64       `json:"id"`
	RecipientName string      `json:"recipient_name"`
	Phone         string      `json:"phone"`
	AddressLine   string      `json:"address_line"`
	City          string      `json:"city"`
	District      string      `json:"district,omitempty"`
	Ward          string      `json:"ward,omitempty"`
	PostalCode    string      `json:"postal_code,omitempty"`
	AddressType   AddressType `json:"address_type"`
	IsDefault     bool        `json:"is_default,omitempty"`
}

// AddressRequest creates a new saved address.
type AddressRequest struct {
	RecipientName string      `json:"recipient_name"`
	Phone         string      `json:"phone"`
	AddressLine   string      `json:"address_line"`
	City          string      `json:"city"`
	District      string      `json:"district,omitempty"`
	Ward          string      `json:"ward,omitempty"`
	PostalCode    string      `json:"postal_code,omitempty"`
	AddressType   AddressType `json:"address_type"`
}

// OrderItem is one line of a placed order.
type OrderItem struct {
	ID              int64  `json:"id"`
	ProductID       int64  `json:"product_id"`
	ProductName     string `json:"product_name"`
	SKU             string `json:"sku,omitempty"`
	Quantity        int    `json:"quantity"`
	PriceAtPurchase int64  `json:"price_at_purchase"`
	Subtotal        int64  `json:"subtotal"`
}

// Order is a placed order as returned by the backend. PaymentURL is set for
// redirect-based payment methods; COD and bank transfer complete immediately.
type Order struct {
	ID             int64          `json:"id"`
	OrderNumber    string         `json:"order_number"`
	StatusID       int            `json:"status_id"`
	Items          []OrderItem    `json:"items,omitempty"`
	Subtotal       int64          `json:"subtotal"`
	ShippingFee    int64          `json:"shipping_fee"`
	DiscountAmount int64          `json:"discount_amount"`
	TotalAmount    int64          `json:"total_amount"`
	PaymentMethod  PaymentMethod  `json:"payment_method"`
	PaymentStatus  string         `json:"payment_status"`
	ShippingMethod ShippingMethod `json:"shipping_method"`
	CustomerPhone  string         `json:"customer_phone,omitempty"`
	CustomerNote   string         `json:"customer_note,omitempty"`
	DiscountCode   string         `json:"discount_code,omitempty"`
	PaymentURL     string         `json:"payment_url,omitempty"`
	CreatedAt      time.Time      `json:"created_at"`
}

// CanCancel reports whether the customer may still cancel the order.
func (o *Order) CanCancel() bool {
	return o.StatusID == OrderStatusPending || o.StatusID == OrderStatusConfirmed
}

// CreateOrderRequest is the order-creation payload. Both address ids must be
// resolved before submission.
type CreateOrderRequest struct {
	ShippingAddressID int64          `json:"shipping_address_id"`
	BillingAddressID  int64          `json:"billing_address_id"`
	PaymentMethod     PaymentMethod  `json:"payment_method"`
	ShippingMethod    ShippingMethod `json:"shipping_method"`
	CustomerPhone     string         `json:"customer_phone"`
	DiscountCode      string         `json:"discount_code,omitempty"`
	CustomerNote      string         `json:"customer_note,omitempty"`
}

// Pagination is the backend's list paging envelope.
type Pagination struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"total_pages"`
}

// ProductQuery filters a catalog listing.
type ProductQuery struct {
	Page       int
	Limit      int
	CategoryID int64
	Search     string
	MinPrice   int64
	MaxPrice   int64
	Sort       string
}

// ProductList is a paginated catalog page.
type ProductList struct {
	Products   []Product  `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// OrderList is a paginated order-history page.
type OrderList struct {
	Orders     []Order    `json:"orders"`
	Pagination Pagination `json:"pagination"`
}

// DiscountInfo is the server-computed result of a validated discount code.
type DiscountInfo struct {
	DiscountAmount int64  `json:"discount_amount"`
	FinalAmount    int64  `json:"final_amount"`
	DiscountType   string `json:"discount_type"`
	DiscountValue  int64  `json:"discount_value"`
}

// DiscountValidation is the backend's answer to a code-validation request.
type DiscountValidation struct {
	Valid    bool          `json:"valid"`
	Message  string        `json:"message,omitempty"`
	Discount *DiscountInfo `json:"discount,omitempty"`
}

// Review is a product review.
type Review struct {
	ID        int64     `json:"id"`
	ProductID int64     `json:"product_id"`
	UserID    int64     `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	Status    string    `json:"status,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ReviewRequest submits a new review.
type ReviewRequest struct {
	ProductID int64  `json:"product_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
}

// ReviewList is a paginated review page.
type ReviewList struct {
	Reviews    []Review   `json:"reviews"`
	Pagination Pagination `json:"pagination"`
}

// CheckoutForm is the in-memory checkout state, scoped to one checkout
// session. When UseExistingAddress is set, ShippingAddressID must be present
// before submission; otherwise the new-address required fields must be
// non-empty.
type CheckoutForm struct {
	UseExistingAddress bool
	ShippingAddressID  int64
	BillingAddressID   int64

	RecipientName string
	Phone         string
	Email         string
	AddressLine   string
	City          string
	District      string
	Ward          string
	PostalCode    string
	AddressType   AddressType

	UseDifferentShipping  bool
	ShippingRecipientName string
	ShippingPhone         string
	ShippingAddressLine   string
	ShippingCity          string
	ShippingDistrict      string
	ShippingWard          string
	ShippingPostalCode    string

	PaymentMethod  PaymentMethod
	ShippingMethod ShippingMethod
	CustomerNote   string
	DiscountCode   string
}

// DefaultCheckoutForm returns the initial form state.
func DefaultCheckoutForm() CheckoutForm {
	return CheckoutForm{
		AddressType:    AddressHome,
		PaymentMethod:  PaymentCOD,
		ShippingMethod: ShippingStandard,
	}
}

// CheckoutFormPatch is a partial form update. Nil fields are left unchanged;
// applying a field also clears its validation error.
type CheckoutFormPatch struct {
	UseExistingAddress *bool
	ShippingAddressID  *int64
	BillingAddressID   *int64

	RecipientName *string
	Phone         *string
	Email         *string
	AddressLine   *string
	City          *string
	District      *string
	Ward          *string
	PostalCode    *string
	AddressType   *AddressType

	UseDifferentShipping  *bool
	ShippingRecipientName *string
	ShippingPhone         *string
	ShippingAddressLine   *string
	ShippingCity          *string
	ShippingDistrict      *string
	ShippingWard          *string
	ShippingPostalCode    *string

	PaymentMethod  *PaymentMethod
	ShippingMethod *ShippingMethod
	CustomerNote   *string
	DiscountCode   *string
}
