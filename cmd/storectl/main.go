package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/tambesec/networkstore/domain"
	"github.com/tambesec/networkstore/internal/app"
	"github.com/tambesec/networkstore/internal/config"
)

// consoleNavigator satisfies the navigation port for terminal use: redirects
// are just printed and remembered.
type consoleNavigator struct {
	mu   sync.Mutex
	path string
}

func (n *consoleNavigator) CurrentPath() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.path == "" {
		return "/"
	}
	return n.path
}

func (n *consoleNavigator) Redirect(path string) {
	n.mu.Lock()
	n.path = path
	n.mu.Unlock()
	log.Printf("NAVIGATE: path=%s", path)
}

var _ domain.Navigator = (*consoleNavigator)(nil)

func main() {
	email := flag.String("email", "", "account email")
	password := flag.String("password", "", "account password")
	productID := flag.Int64("product", 0, "product id to add to the cart")
	quantity := flag.Int("quantity", 1, "quantity to add")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("CONFIG_LOAD_FAILED: error=%v", err)
	}

	container, err := app.NewContainer(cfg, &consoleNavigator{})
	if err != nil {
		log.Fatalf("CONTAINER_BUILD_FAILED: error=%v", err)
	}

	ctx := context.Background()

	if err := container.Session.LoadSession(ctx); err != nil {
		log.Fatalf("SESSION_LOAD_FAILED: error=%v", err)
	}

	if *email != "" {
		if _, err := container.Session.Login(ctx, *email, *password); err != nil {
			log.Fatalf("LOGIN_FAILED: error=%v", err)
		}
	}

	products, err := container.Catalog.ListProducts(ctx, domain.ProductQuery{Limit: 5})
	if err != nil {
		log.Fatalf("CATALOG_FAILED: error=%v", err)
	}
	fmt.Printf("catalog: %d products (page %d/%d)\n",
		len(products.Products), products.Pagination.Page, products.Pagination.TotalPages)
	for _, p := range products.Products {
		fmt.Printf("  #%d %s — %d (stock %d)\n", p.ID, p.Name, p.Price, p.Stock)
	}

	if *productID != 0 {
		if err := container.Cart.AddItem(ctx, *productID, *quantity); err != nil {
			log.Fatalf("ADD_TO_CART_FAILED: error=%v", err)
		}
		if cart := container.Cart.Cart(); cart != nil {
			fmt.Printf("cart: %d items, subtotal %d, shipping %d, total %d\n",
				cart.Summary.ItemsCount, cart.Summary.Subtotal,
				container.Checkout.ShippingFee(cart.Summary.Subtotal),
				container.Checkout.Total())
		}
	}

	if user := container.Session.CurrentUser(); user != nil {
		fmt.Printf("signed in as %s <%s>\n", user.FullName, user.Email)
		if err := container.Session.Logout(ctx); err != nil {
			log.Printf("LOGOUT_FAILED: error=%v", err)
			os.Exit(1)
		}
	}
}
