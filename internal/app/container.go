package app

import (
	"fmt"

	"github.com/tambesec/networkstore/domain"
	"github.com/tambesec/networkstore/internal/config"
	"github.com/tambesec/networkstore/internal/infrastructure/api"
	"github.com/tambesec/networkstore/internal/infrastructure/authz"
	"github.com/tambesec/networkstore/internal/services"
)

// Container wires the client stack in dependency order: transport, gateways,
// role gate, then the services the embedding application consumes.
type Container struct {
	Config *config.Config
	Client *api.Client

	AuthGW     domain.AuthGateway
	CartGW     domain.CartGateway
	AddressGW  domain.AddressGateway
	OrderGW    domain.OrderGateway
	DiscountGW domain.DiscountGateway
	CatalogGW  domain.CatalogGateway
	ReviewGW   domain.ReviewGateway

	RoleGate domain.RoleGate

	Session  domain.SessionService
	Cart     domain.CartService
	Checkout domain.CheckoutService
	Catalog  domain.CatalogService
	Orders   domain.OrderService
	Reviews  domain.ReviewService
}

// NewContainer builds the full dependency graph for one backend.
func NewContainer(cfg *config.Config, nav domain.Navigator) (*Container, error) {
	client, err := api.New(api.Options{
		BaseURL:        cfg.BaseURL,
		Prefix:         cfg.APIPrefix,
		Timeout:        cfg.Timeout,
		SignInPath:     cfg.SignInPath,
		PublicPaths:    cfg.PublicPaths,
		PublicPrefixes: cfg.PublicPrefixes,
		Navigator:      nav,
	})
	if err != nil {
		return nil, fmt.Errorf("app: api client: %w", err)
	}

	roleGate, err := authz.NewRoleGate(cfg.AllowedRoles)
	if err != nil {
		return nil, fmt.Errorf("app: role gate: %w", err)
	}

	c := &Container{
		Config:     cfg,
		Client:     client,
		AuthGW:     api.NewAuthAPI(client),
		CartGW:     api.NewCartAPI(client),
		AddressGW:  api.NewAddressAPI(client),
		OrderGW:    api.NewOrderAPI(client),
		DiscountGW: api.NewDiscountAPI(client),
		CatalogGW:  api.NewCatalogAPI(client),
		ReviewGW:   api.NewReviewAPI(client),
		RoleGate:   roleGate,
	}

	session := services.NewSessionManager(c.AuthGW, roleGate, client, nav, cfg.SignInPath)
	cart := services.NewCartManager(c.CartGW, session)

	c.Session = session
	c.Cart = cart
	c.Checkout = services.NewCheckoutManager(c.OrderGW, c.AddressGW, c.DiscountGW, cart)
	c.Catalog = services.NewCatalogBrowser(c.CatalogGW)
	c.Orders = services.NewOrderHistory(c.OrderGW, session)
	c.Reviews = services.NewReviewDesk(c.ReviewGW, session)

	return c, nil
}
