// Package client is a storefront-side mirror of the BiteSpot API. It keeps
// in-memory caches of the caller's cart, wishlist and order history and
// reconciles them with the server: reads refresh the cache, mutations are
// applied optimistically and rolled back when the server call fails.
package client

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
)

type Product struct {
	ID       uint    `json:"ID"`
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	Rating   float64 `json:"rating"`
}

type CartLine struct {
	ID        uint    `json:"ID"`
	ProductID int     `json:"productId"`
	Quantity  int     `json:"quantity"`
	Product   Product `json:"product"`
}

type OrderItem struct {
	ID        uint    `json:"ID"`
	ProductID int     `json:"productId"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Product   Product `json:"product"`
}

type Order struct {
	ID         uint        `json:"ID"`
	TotalPrice float64     `json:"totalPrice"`
	Status     string      `json:"status"`
	Items      []OrderItem `json:"items"`
}

type wishlistEntry struct {
	ID          uint   `json:"ID"`
	ProductCode string `json:"productId"`
}

type apiMessage struct {
	Message string `json:"message"`
}

// Client mirrors one signed-in user's server state.
type Client struct {
	http  *resty.Client
	token string

	mu       sync.Mutex
	cart     []CartLine
	wishlist map[string]bool
	orders   []Order

	// serializes wishlist toggles per product code
	toggleMu map[string]*sync.Mutex
}

func New(baseURL string) *Client {
	return &Client{
		http:     resty.New().SetBaseURL(baseURL).SetTimeout(30 * time.Second),
		wishlist: make(map[string]bool),
		toggleMu: make(map[string]*sync.Mutex),
	}
}

func apiError(resp *resty.Response, fallback string) error {
	var body apiMessage
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.Message != "" {
		return fmt.Errorf("%s: %s", fallback, body.Message)
	}
	return fmt.Errorf("%s: status %d", fallback, resp.StatusCode())
}

func (c *Client) authHeader() string {
	return "Bearer " + c.token
}

type SignupData struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	Gender   string `json:"gender"`
	Dob      string `json:"dob"`
}

// Signup registers a new account.
func (c *Client) Signup(data SignupData) error {
	resp, err := c.http.R().
		SetHeader("Content-Type", "application/json").
		SetBody(data).
		Post("/auth/signup")
	if err != nil {
		return err
	}
	if resp.StatusCode() != 201 {
		return apiError(resp, "signup failed")
	}
	return nil
}

// Login authenticates and captures the bearer token. Local mirrors are
// reset; call RefreshCart/RefreshWishlist/RefreshOrders to hydrate them.
func (c *Client) Login(email, password string) error {
	var body struct {
		Token string `json:"token"`
	}
	resp, err := c.http.R().
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&body).
		Post("/auth/login")
	if err != nil {
		return err
	}
	if resp.StatusCode() != 200 || body.Token == "" {
		return apiError(resp, "login failed")
	}

	c.mu.Lock()
	c.token = body.Token
	c.cart = nil
	c.wishlist = make(map[string]bool)
	c.orders = nil
	c.mu.Unlock()
	return nil
}
