package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/tambesec/networkstore/domain"
)

// FreeShippingThreshold is the cart subtotal at or above which the shipping
// fee is waived regardless of method.
const FreeShippingThreshold int64 = 500_000

var shippingFees = map[domain.ShippingMethod]int64{
	domain.ShippingStandard: 30_000,
	domain.ShippingExpress:  50_000,
	domain.ShippingSameDay:  80_000,
}

// ShippingFee computes the fee for a subtotal and method. Unknown methods
// fall back to the standard tier.
func ShippingFee(subtotal int64, method domain.ShippingMethod) int64 {
	if subtotal >= FreeShippingThreshold {
		return 0
	}
	if fee, ok := shippingFees[method]; ok {
		return fee
	}
	return shippingFees[domain.ShippingStandard]
}

// CheckoutManager implements domain.CheckoutService: it collects form state,
// validates a discount code, and assembles the order-creation request.
type CheckoutManager struct {
	orders    domain.OrderGateway
	addresses domain.AddressGateway
	discounts domain.DiscountGateway
	cart      domain.CartService

	mu          sync.Mutex
	form        domain.CheckoutForm
	fieldErrors domain.ValidationErrors
	discount    *domain.DiscountInfo
	submitting  bool
}

// NewCheckoutManager creates a checkout manager with the default form state.
func NewCheckoutManager(
	orders domain.OrderGateway,
	addresses domain.AddressGateway,
	discounts domain.DiscountGateway,
	cart domain.CartService,
) *CheckoutManager {
	return &CheckoutManager{
		orders:      orders,
		addresses:   addresses,
		discounts:   discounts,
		cart:        cart,
		form:        domain.DefaultCheckoutForm(),
		fieldErrors: domain.ValidationErrors{},
	}
}

// Form returns a snapshot of the checkout form.
func (m *CheckoutManager) Form() domain.CheckoutForm {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.form
}

// FieldErrors returns a copy of the current validation errors.
func (m *CheckoutManager) FieldErrors() domain.ValidationErrors {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := domain.ValidationErrors{}
	for k, v := range m.fieldErrors {
		out[k] = v
	}
	return out
}

// UpdateForm merges a partial update into the form. Touched fields have
// their validation errors cleared.
func (m *CheckoutManager) UpdateForm(patch domain.CheckoutFormPatch) {
	m.mu.Lock()
	defer m.mu.Unlock()

	apply := func(key string) { delete(m.fieldErrors, key) }

	if patch.UseExistingAddress != nil {
		m.form.UseExistingAddress = *patch.UseExistingAddress
		apply("general")
	}
	if patch.ShippingAddressID != nil {
		m.form.ShippingAddressID = *patch.ShippingAddressID
		apply("general")
	}
	if patch.BillingAddressID != nil {
		m.form.BillingAddressID = *patch.BillingAddressID
	}
	if patch.RecipientName != nil {
		m.form.RecipientName = *patch.RecipientName
		apply("recipientName")
	}
	if patch.Phone != nil {
		m.form.Phone = *patch.Phone
		apply("phone")
	}
	if patch.Email != nil {
		m.form.Email = *patch.Email
		apply("email")
	}
	if patch.AddressLine != nil {
		m.form.AddressLine = *patch.AddressLine
		apply("addressLine")
	}
	if patch.City != nil {
		m.form.City = *patch.City
		apply("city")
	}
	if patch.District != nil {
		m.form.District = *patch.District
	}
	if patch.Ward != nil {
		m.form.Ward = *patch.Ward
	}
	if patch.PostalCode != nil {
		m.form.PostalCode = *patch.PostalCode
	}
	if patch.AddressType != nil {
		m.form.AddressType = *patch.AddressType
	}
	if patch.UseDifferentShipping != nil {
		m.form.UseDifferentShipping = *patch.UseDifferentShipping
	}
	if patch.ShippingRecipientName != nil {
		m.form.ShippingRecipientName = *patch.ShippingRecipientName
	}
	if patch.ShippingPhone != nil {
		m.form.ShippingPhone = *patch.ShippingPhone
	}
	if patch.ShippingAddressLine != nil {
		m.form.ShippingAddressLine = *patch.ShippingAddressLine
	}
	if patch.ShippingCity != nil {
		m.form.ShippingCity = *patch.ShippingCity
	}
	if patch.ShippingDistrict != nil {
		m.form.ShippingDistrict = *patch.ShippingDistrict
	}
	if patch.ShippingWard != nil {
		m.form.ShippingWard = *patch.ShippingWard
	}
	if patch.ShippingPostalCode != nil {
		m.form.ShippingPostalCode = *patch.ShippingPostalCode
	}
	if patch.PaymentMethod != nil {
		m.form.PaymentMethod = *patch.PaymentMethod
	}
	if patch.ShippingMethod != nil {
		m.form.ShippingMethod = *patch.ShippingMethod
	}
	if patch.CustomerNote != nil {
		m.form.CustomerNote = *patch.CustomerNote
	}
	if patch.DiscountCode != nil {
		m.form.DiscountCode = *patch.DiscountCode
	}
}

// ApplyDiscount normalizes and validates a discount code against the
// backend with the current cart subtotal. Only one code is active at a
// time; an invalid code clears any stored code.
func (m *CheckoutManager) ApplyDiscount(ctx context.Context, code string) (*domain.DiscountInfo, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, fmt.Errorf("please enter a discount code: %w", domain.ErrDiscountInvalid)
	}

	var subtotal int64
	if cart := m.cart.Cart(); cart != nil {
		subtotal = cart.Summary.Subtotal
	}

	result, err := m.discounts.Validate(ctx, code, subtotal)
	if err != nil {
		m.clearDiscount()
		return nil, err
	}
	if !result.Valid || result.Discount == nil {
		m.clearDiscount()
		msg := result.Message
		if msg == "" {
			msg = "discount code is not valid"
		}
		return nil, fmt.Errorf("%s: %w", msg, domain.ErrDiscountInvalid)
	}

	m.mu.Lock()
	m.form.DiscountCode = code
	m.discount = result.Discount
	m.mu.Unlock()

	log.Printf("DISCOUNT_APPLIED: code=%s amount=%d", code, result.Discount.DiscountAmount)
	return result.Discount, nil
}

// RemoveDiscount clears the stored code and the displayed discount.
func (m *CheckoutManager) RemoveDiscount() {
	m.clearDiscount()
}

// Discount returns the currently applied discount, nil when none.
func (m *CheckoutManager) Discount() *domain.DiscountInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.discount
}

// ShippingFee computes the fee for the form's shipping method.
func (m *CheckoutManager) ShippingFee(subtotal int64) int64 {
	m.mu.Lock()
	method := m.form.ShippingMethod
	m.mu.Unlock()
	return ShippingFee(subtotal, method)
}

// Total computes subtotal + shipping fee + tax - discount from the cached
// cart summary and the current form state.
func (m *CheckoutManager) Total() int64 {
	var summary domain.CartSummary
	if cart := m.cart.Cart(); cart != nil {
		summary = cart.Summary
	}

	m.mu.Lock()
	method := m.form.ShippingMethod
	discountAmount := summary.DiscountAmount
	if m.discount != nil {
		discountAmount = m.discount.DiscountAmount
	}
	m.mu.Unlock()

	return summary.Subtotal + ShippingFee(summary.Subtotal, method) + summary.Tax - discountAmount
}

// SubmitOrder validates the form, resolves the address pair, and creates the
// order. Address creation is strictly ordered before order creation; if it
// fails, no order call is made. On success the form resets to defaults.
func (m *CheckoutManager) SubmitOrder(ctx context.Context) (*domain.Order, error) {
	m.mu.Lock()
	if m.submitting {
		m.mu.Unlock()
		return nil, domain.ErrSubmitInProgress
	}
	if errs := m.validateLocked(); len(errs) > 0 {
		m.fieldErrors = errs
		m.mu.Unlock()
		return nil, errs
	}
	m.submitting = true
	form := m.form
	m.mu.Unlock()
	defer func() {
		m.mu.Lock()
		m.submitting = false
		m.mu.Unlock()
	}()

	shippingID, billingID, err := m.resolveAddresses(ctx, form)
	if err != nil {
		return nil, err
	}

	order, err := m.orders.Create(ctx, domain.CreateOrderRequest{
		ShippingAddressID: shippingID,
		BillingAddressID:  billingID,
		PaymentMethod:     form.PaymentMethod,
		ShippingMethod:    form.ShippingMethod,
		CustomerPhone:     form.Phone,
		DiscountCode:      form.DiscountCode,
		CustomerNote:      form.CustomerNote,
	})
	if err != nil {
		// Form state stays untouched so the user can retry.
		return nil, err
	}

	m.mu.Lock()
	m.form = domain.DefaultCheckoutForm()
	m.fieldErrors = domain.ValidationErrors{}
	m.discount = nil
	m.mu.Unlock()

	log.Printf("ORDER_CREATED: order_number=%s total=%d payment_method=%s",
		order.OrderNumber, order.TotalAmount, order.PaymentMethod)
	return order, nil
}

// resolveAddresses returns the (shipping, billing) address id pair, creating
// addresses as needed.
func (m *CheckoutManager) resolveAddresses(ctx context.Context, form domain.CheckoutForm) (int64, int64, error) {
	if form.UseExistingAddress {
		shippingID := form.ShippingAddressID
		billingID := form.BillingAddressID
		if billingID == 0 {
			billingID = shippingID
		}
		return shippingID, billingID, nil
	}

	billing, err := m.addresses.Create(ctx, domain.AddressRequest{
		RecipientName: form.RecipientName,
		Phone:         form.Phone,
		AddressLine:   form.AddressLine,
		City:          form.City,
		District:      form.District,
		Ward:          form.Ward,
		PostalCode:    form.PostalCode,
		AddressType:   form.AddressType,
	})
	if err != nil {
		return 0, 0, fmt.Errorf("create billing address: %w", err)
	}

	if !form.UseDifferentShipping || form.ShippingAddressLine == "" {
		return billing.ID, billing.ID, nil
	}

	shipping, err := m.addresses.Create(ctx, domain.AddressRequest{
		RecipientName: fallback(form.ShippingRecipientName, form.RecipientName),
		Phone:         fallback(form.ShippingPhone, form.Phone),
		AddressLine:   form.ShippingAddressLine,
		City:          fallback(form.ShippingCity, form.City),
		District:      form.ShippingDistrict,
		Ward:          form.ShippingWard,
		PostalCode:    form.ShippingPostalCode,
		AddressType:   domain.AddressHome,
	})
	if err != nil {
		return 0, 0, fmt.Errorf("create shipping address: %w", err)
	}
	return shipping.ID, billing.ID, nil
}

// validateLocked runs the local presence checks. Business-rule validation
// (stock, address ownership, code validity) is the backend's job.
func (m *CheckoutManager) validateLocked() domain.ValidationErrors {
	errs := domain.ValidationErrors{}

	if m.form.UseExistingAddress {
		if m.form.ShippingAddressID == 0 {
			errs["general"] = "please select a shipping address"
		}
		return errs
	}

	if strings.TrimSpace(m.form.RecipientName) == "" {
		errs["recipientName"] = "please enter the recipient name"
	}
	if strings.TrimSpace(m.form.Phone) == "" {
		errs["phone"] = "please enter a phone number"
	}
	if strings.TrimSpace(m.form.Email) == "" {
		errs["email"] = "please enter an email address"
	}
	if strings.TrimSpace(m.form.AddressLine) == "" {
		errs["addressLine"] = "please enter an address"
	}
	if strings.TrimSpace(m.form.City) == "" {
		errs["city"] = "please enter a city or province"
	}
	return errs
}

func (m *CheckoutManager) clearDiscount() {
	m.mu.Lock()
	m.form.DiscountCode = ""
	m.discount = nil
	m.mu.Unlock()
}

func fallback(v, def string) string {
	if v != "" {
		return v
	}
	return def
}

var _ domain.CheckoutService = (*CheckoutManager)(nil)
