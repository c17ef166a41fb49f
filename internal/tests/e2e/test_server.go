package e2e

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/tambesec/networkstore/domain"
)

const jwtSecret = "e2e-test-secret"

// TestServer is an in-process stand-in for the storefront backend: cookie
// JWT sessions, a seeded catalog, per-user carts, addresses, and orders.
// Token generations make expiry deterministic without sleeping.
type TestServer struct {
	*httptest.Server

	mu        sync.Mutex
	users     map[string]*testUser
	nextUser  int64
	carts     map[int64]*testCart
	addresses map[int64][]domain.Address
	nextAddr  int64
	orders    map[int64][]*domain.Order
	nextOrder int64
	products  []domain.Product
	discounts map[string]int64

	accessGen  int64
	refreshGen int64

	refreshCalls int
}

type testUser struct {
	User     domain.User
	Password string
}

type testCart struct {
	Items  []domain.CartItem
	nextID int64
}

// NewTestServer starts the fake backend with a seeded customer, an admin,
// a small network-gear catalog, and one known discount code.
func NewTestServer() *TestServer {
	gin.SetMode(gin.TestMode)
	ts := &TestServer{
		users:     map[string]*testUser{},
		nextUser:  1,
		carts:     map[int64]*testCart{},
		addresses: map[int64][]domain.Address{},
		orders:    map[int64][]*domain.Order{},
		nextAddr:  1,
		nextOrder: 1,
		discounts: map[string]int64{"SAVE50": 50_000},
		products: []domain.Product{
			{ID: 1, Name: "CloudRouter X1", Slug: "cloudrouter-x1", SKU: "CR-X1", Price: 150_000, Stock: 20, CategoryID: 1},
			{ID: 2, Name: "SwitchPro 24", Slug: "switchpro-24", SKU: "SP-24", Price: 450_000, Stock: 5, CategoryID: 2},
			{ID: 3, Name: "MeshPoint Mini", Slug: "meshpoint-mini", SKU: "MP-M", Price: 90_000, Stock: 50, CategoryID: 3},
		},
	}
	ts.seedUser("lan@example.com", "password123", "Lan Pham", domain.RoleCustomer)
	ts.seedUser("root@example.com", "rootpass", "Site Admin", domain.RoleAdmin)

	ts.Server = httptest.NewServer(ts.router())
	return ts
}

func (ts *TestServer) seedUser(email, password, name, role string) {
	ts.users[email] = &testUser{
		User: domain.User{
			ID:        ts.nextUser,
			Email:     email,
			FullName:  name,
			Role:      role,
			CreatedAt: time.Now().UTC(),
		},
		Password: password,
	}
	ts.nextUser++
}

// ExpireAccessTokens invalidates every outstanding access token. Refresh
// tokens stay valid, so the next protected request must go through the
// refresh endpoint.
func (ts *TestServer) ExpireAccessTokens() {
	ts.mu.Lock()
	ts.accessGen++
	ts.mu.Unlock()
}

// RevokeSessions invalidates access and refresh tokens both, forcing the
// next refresh attempt to fail.
func (ts *TestServer) RevokeSessions() {
	ts.mu.Lock()
	ts.accessGen++
	ts.refreshGen++
	ts.mu.Unlock()
}

func (ts *TestServer) router() *gin.Engine {
	r := gin.New()
	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.POST("/login", ts.handleLogin)
	auth.POST("/register", ts.handleRegister)
	auth.POST("/refresh", ts.handleRefresh)
	auth.POST("/logout", ts.handleLogout)
	auth.GET("/session", ts.handleSession)
	auth.PATCH("/profile", ts.requireAuth, ts.handleProfile)

	v1.GET("/products", ts.handleListProducts)
	v1.GET("/products/:id", ts.handleGetProduct)
	v1.GET("/categories", ts.handleCategories)

	cart := v1.Group("/cart", ts.requireAuth)
	cart.GET("", ts.handleGetCart)
	cart.POST("/items", ts.handleAddItem)
	cart.PATCH("/items/:id", ts.handleUpdateItem)
	cart.DELETE("/items/:id", ts.handleRemoveItem)
	cart.DELETE("", ts.handleClearCart)

	v1.POST("/addresses", ts.requireAuth, ts.handleCreateAddress)
	v1.GET("/addresses", ts.requireAuth, ts.handleListAddresses)

	orders := v1.Group("/orders", ts.requireAuth)
	orders.POST("", ts.handleCreateOrder)
	orders.GET("", ts.handleListOrders)
	orders.GET("/:id", ts.handleGetOrder)
	orders.POST("/:id/cancel", ts.handleCancelOrder)

	v1.POST("/discounts/validate", ts.requireAuth, ts.handleValidateDiscount)

	return r
}

// --- tokens ---

func (ts *TestServer) issueCookies(c *gin.Context, userID int64) {
	ts.mu.Lock()
	accessGen, refreshGen := ts.accessGen, ts.refreshGen
	ts.mu.Unlock()

	access := ts.signToken(userID, "access", accessGen, 15*time.Minute)
	refresh := ts.signToken(userID, "refresh", refreshGen, 7*24*time.Hour)
	c.SetCookie("access_token", access, 900, "/", "", false, true)
	c.SetCookie("refresh_token", refresh, 604800, "/", "", false, true)
}

func (ts *TestServer) signToken(userID int64, typ string, gen int64, ttl time.Duration) string {
	claims := jwt.MapClaims{
		"sub": strconv.FormatInt(userID, 10),
		"typ": typ,
		"gen": gen,
		"exp": time.Now().Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, _ := token.SignedString([]byte(jwtSecret))
	return signed
}

func (ts *TestServer) parseToken(raw, wantType string) (int64, bool) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, false
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["typ"] != wantType {
		return 0, false
	}

	ts.mu.Lock()
	wantGen := ts.accessGen
	if wantType == "refresh" {
		wantGen = ts.refreshGen
	}
	ts.mu.Unlock()
	gen, ok := claims["gen"].(float64)
	if !ok || int64(gen) != wantGen {
		return 0, false
	}

	sub, _ := claims["sub"].(string)
	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, false
	}
	return userID, true
}

func (ts *TestServer) requireAuth(c *gin.Context) {
	raw, err := c.Cookie("access_token")
	if err != nil {
		unauthorized(c)
		return
	}
	userID, ok := ts.parseToken(raw, "access")
	if !ok {
		unauthorized(c)
		return
	}
	c.Set("userID", userID)
	c.Next()
}

func unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"message":    "Unauthorized",
		"statusCode": http.StatusUnauthorized,
	})
}

func currentUserID(c *gin.Context) int64 {
	return c.GetInt64("userID")
}

// --- auth handlers ---

func (ts *TestServer) handleLogin(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Bad Request", "statusCode": 400})
		return
	}

	ts.mu.Lock()
	u, ok := ts.users[req.Email]
	ts.mu.Unlock()
	if !ok || u.Password != req.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials", "statusCode": 401})
		return
	}

	ts.issueCookies(c, u.User.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "user": u.User})
}

func (ts *TestServer) handleRegister(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Bad Request", "statusCode": 400})
		return
	}

	ts.mu.Lock()
	if _, exists := ts.users[req.Email]; exists {
		ts.mu.Unlock()
		c.JSON(http.StatusConflict, gin.H{"message": "Email already registered", "statusCode": 409})
		return
	}
	ts.users[req.Email] = &testUser{
		User: domain.User{
			ID:        ts.nextUser,
			Email:     req.Email,
			FullName:  req.FullName,
			Phone:     req.Phone,
			Role:      domain.RoleCustomer,
			CreatedAt: time.Now().UTC(),
		},
		Password: req.Password,
	}
	u := ts.users[req.Email]
	ts.nextUser++
	ts.mu.Unlock()

	ts.issueCookies(c, u.User.ID)
	c.JSON(http.StatusCreated, gin.H{"message": "Registration successful", "user": u.User})
}

// RefreshCount reports how many times the refresh endpoint was hit.
func (ts *TestServer) RefreshCount() int {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	return ts.refreshCalls
}

func (ts *TestServer) handleRefresh(c *gin.Context) {
	ts.mu.Lock()
	ts.refreshCalls++
	ts.mu.Unlock()

	raw, err := c.Cookie("refresh_token")
	if err != nil {
		unauthorized(c)
		return
	}
	userID, ok := ts.parseToken(raw, "refresh")
	if !ok {
		unauthorized(c)
		return
	}
	ts.issueCookies(c, userID)
	c.JSON(http.StatusOK, gin.H{"message": "Token refreshed"})
}

func (ts *TestServer) handleLogout(c *gin.Context) {
	c.SetCookie("access_token", "", -1, "/", "", false, true)
	c.SetCookie("refresh_token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func (ts *TestServer) handleSession(c *gin.Context) {
	raw, err := c.Cookie("access_token")
	if err == nil {
		if userID, ok := ts.parseToken(raw, "access"); ok {
			if u := ts.userByID(userID); u != nil {
				c.JSON(http.StatusOK, gin.H{"data": gin.H{"authenticated": true, "user": u.User}})
				return
			}
		}
	}
	// Never a 401; guests are a normal answer.
	c.JSON(http.StatusOK, gin.H{"data": gin.H{"authenticated": false}})
}

func (ts *TestServer) handleProfile(c *gin.Context) {
	var req domain.ProfileUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Bad Request", "statusCode": 400})
		return
	}

	u := ts.userByID(currentUserID(c))
	if u == nil {
		unauthorized(c)
		return
	}
	ts.mu.Lock()
	if req.FullName != "" {
		u.User.FullName = req.FullName
	}
	if req.Phone != "" {
		u.User.Phone = req.Phone
	}
	u.User.UpdatedAt = time.Now().UTC()
	user := u.User
	ts.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"data": user})
}

func (ts *TestServer) userByID(id int64) *testUser {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	for _, u := range ts.users {
		if u.User.ID == id {
			return u
		}
	}
	return nil
}

// --- catalog handlers ---

func (ts *TestServer) handleListProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "12"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

	ts.mu.Lock()
	products := append([]domain.Product(nil), ts.products...)
	ts.mu.Unlock()

	if search := c.Query("search"); search != "" {
		filtered := products[:0]
		for _, p := range products {
			if containsFold(p.Name, search) {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	c.JSON(http.StatusOK, gin.H{
		"data": products,
		"pagination": domain.Pagination{
			Total: len(products), Page: page, Limit: limit, TotalPages: 1,
		},
	})
}

func (ts *TestServer) handleGetProduct(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	ts.mu.Lock()
	defer ts.mu.Unlock()
	for _, p := range ts.products {
		if p.ID == id {
			c.JSON(http.StatusOK, gin.H{"data": p})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "Product not found", "statusCode": 404})
}

func (ts *TestServer) handleCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": []domain.Category{
		{ID: 1, Name: "Routers", Slug: "routers"},
		{ID: 2, Name: "Switches", Slug: "switches"},
		{ID: 3, Name: "Access Points", Slug: "access-points"},
	}})
}

// --- cart handlers ---

func (ts *TestServer) cartFor(userID int64) *testCart {
	if ts.carts[userID] == nil {
		ts.carts[userID] = &testCart{nextID: 1}
	}
	return ts.carts[userID]
}

func (ts *TestServer) productByID(id int64) *domain.Product {
	for i := range ts.products {
		if ts.products[i].ID == id {
			return &ts.products[i]
		}
	}
	return nil
}

func (ts *TestServer) cartView(userID int64) domain.Cart {
	cart := ts.cartFor(userID)
	var subtotal int64
	var count int
	for _, it := range cart.Items {
		subtotal += it.Price * int64(it.Quantity)
		count += it.Quantity
	}
	return domain.Cart{
		ID:    userID,
		Items: append([]domain.CartItem(nil), cart.Items...),
		Summary: domain.CartSummary{
			Subtotal: subtotal, Total: subtotal, ItemsCount: count,
		},
	}
}

func (ts *TestServer) handleGetCart(c *gin.Context) {
	ts.mu.Lock()
	view := ts.cartView(currentUserID(c))
	ts.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"data": view})
}

func (ts *TestServer) handleAddItem(c *gin.Context) {
	var req struct {
		ProductID int64 `json:"product_id"`
		Quantity  int   `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Bad Request", "statusCode": 400})
		return
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()
	p := ts.productByID(req.ProductID)
	if p == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Product not found", "statusCode": 404})
		return
	}
	if req.Quantity > p.Stock {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Not enough stock", "statusCode": 400})
		return
	}
	cart := ts.cartFor(currentUserID(c))
	cart.Items = append(cart.Items, domain.CartItem{
		ID: cart.nextID, ProductID: p.ID, Quantity: req.Quantity, Price: p.Price,
		Product: &domain.ProductInfo{ID: p.ID, Name: p.Name, Slug: p.Slug, Price: p.Price},
	})
	cart.nextID++
	c.JSON(http.StatusCreated, gin.H{"message": "Item added"})
}

func (ts *TestServer) handleUpdateItem(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Bad Request", "statusCode": 400})
		return
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()
	cart := ts.cartFor(currentUserID(c))
	for i := range cart.Items {
		if cart.Items[i].ID == id {
			cart.Items[i].Quantity = req.Quantity
			c.JSON(http.StatusOK, gin.H{"message": "Item updated"})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "Item not found", "statusCode": 404})
}

func (ts *TestServer) handleRemoveItem(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	ts.mu.Lock()
	defer ts.mu.Unlock()
	cart := ts.cartFor(currentUserID(c))
	for i := range cart.Items {
		if cart.Items[i].ID == id {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"message": "Item removed"})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "Item not found", "statusCode": 404})
}

func (ts *TestServer) handleClearCart(c *gin.Context) {
	ts.mu.Lock()
	delete(ts.carts, currentUserID(c))
	ts.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}

// --- address handlers ---

func (ts *TestServer) handleCreateAddress(c *gin.Context) {
	var req domain.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Bad Request", "statusCode": 400})
		return
	}

	ts.mu.Lock()
	addr := domain.Address{
		ID:            ts.nextAddr,
		RecipientName: req.RecipientName,
		Phone:         req.Phone,
		AddressLine:   req.AddressLine,
		City:          req.City,
		District:      req.District,
		Ward:          req.Ward,
		PostalCode:    req.PostalCode,
		AddressType:   req.AddressType,
	}
	ts.nextAddr++
	userID := currentUserID(c)
	ts.addresses[userID] = append(ts.addresses[userID], addr)
	ts.mu.Unlock()

	c.JSON(http.StatusCreated, gin.H{"data": addr})
}

func (ts *TestServer) handleListAddresses(c *gin.Context) {
	ts.mu.Lock()
	list := append([]domain.Address(nil), ts.addresses[currentUserID(c)]...)
	ts.mu.Unlock()
	c.JSON(http.StatusOK, gin.H{"data": list})
}

// --- order handlers ---

func (ts *TestServer) handleCreateOrder(c *gin.Context) {
	var req domain.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Bad Request", "statusCode": 400})
		return
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()

	userID := currentUserID(c)
	view := ts.cartView(userID)
	if len(view.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Cart is empty", "statusCode": 400})
		return
	}

	var discount int64
	if req.DiscountCode != "" {
		amount, ok := ts.discounts[req.DiscountCode]
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid discount code", "statusCode": 400})
			return
		}
		discount = amount
	}

	fee := int64(30_000)
	switch req.ShippingMethod {
	case domain.ShippingExpress:
		fee = 50_000
	case domain.ShippingSameDay:
		fee = 80_000
	}
	if view.Summary.Subtotal >= 500_000 {
		fee = 0
	}

	items := make([]domain.OrderItem, 0, len(view.Items))
	for _, it := range view.Items {
		items = append(items, domain.OrderItem{
			ID: it.ID, ProductID: it.ProductID, Quantity: it.Quantity,
			PriceAtPurchase: it.Price, Subtotal: it.Price * int64(it.Quantity),
		})
	}

	order := &domain.Order{
		ID:             ts.nextOrder,
		OrderNumber:    fmt.Sprintf("ORD-%04d", ts.nextOrder),
		StatusID:       domain.OrderStatusPending,
		Items:          items,
		Subtotal:       view.Summary.Subtotal,
		ShippingFee:    fee,
		DiscountAmount: discount,
		TotalAmount:    view.Summary.Subtotal + fee - discount,
		PaymentMethod:  req.PaymentMethod,
		PaymentStatus:  "pending",
		ShippingMethod: req.ShippingMethod,
		CustomerPhone:  req.CustomerPhone,
		CustomerNote:   req.CustomerNote,
		DiscountCode:   req.DiscountCode,
		CreatedAt:      time.Now().UTC(),
	}
	ts.nextOrder++
	ts.orders[userID] = append(ts.orders[userID], order)
	delete(ts.carts, userID)

	c.JSON(http.StatusCreated, gin.H{"data": order})
}

func (ts *TestServer) handleListOrders(c *gin.Context) {
	ts.mu.Lock()
	list := ts.orders[currentUserID(c)]
	out := make([]domain.Order, 0, len(list))
	for _, o := range list {
		out = append(out, *o)
	}
	ts.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{"data": gin.H{
		"orders":     out,
		"pagination": domain.Pagination{Total: len(out), Page: 1, Limit: 10, TotalPages: 1},
	}})
}

func (ts *TestServer) findOrder(userID, orderID int64) *domain.Order {
	for _, o := range ts.orders[userID] {
		if o.ID == orderID {
			return o
		}
	}
	return nil
}

func (ts *TestServer) handleGetOrder(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if o := ts.findOrder(currentUserID(c), id); o != nil {
		c.JSON(http.StatusOK, gin.H{"data": *o})
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"message": "Order not found", "statusCode": 404})
}

func (ts *TestServer) handleCancelOrder(c *gin.Context) {
	id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
	ts.mu.Lock()
	defer ts.mu.Unlock()
	o := ts.findOrder(currentUserID(c), id)
	if o == nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Order not found", "statusCode": 404})
		return
	}
	if !o.CanCancel() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Order can no longer be cancelled", "statusCode": 400})
		return
	}
	o.StatusID = domain.OrderStatusCancelled
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled"})
}

// --- discount handler ---

func (ts *TestServer) handleValidateDiscount(c *gin.Context) {
	var req struct {
		Code        string `json:"code"`
		OrderAmount int64  `json:"order_amount"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Bad Request", "statusCode": 400})
		return
	}

	ts.mu.Lock()
	amount, ok := ts.discounts[req.Code]
	ts.mu.Unlock()
	if !ok {
		c.JSON(http.StatusOK, gin.H{"valid": false, "message": "Code not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"discount": domain.DiscountInfo{
			DiscountAmount: amount,
			FinalAmount:    req.OrderAmount - amount,
			DiscountType:   "fixed",
			DiscountValue:  amount,
		},
	})
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
