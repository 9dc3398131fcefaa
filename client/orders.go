package client

import "fmt"

// Orders returns a snapshot of the local order history mirror.
func (c *Client) Orders() []Order {
	c.mu.Lock()
	defer c.mu.Unlock()
	orders := make([]Order, len(c.orders))
	copy(orders, c.orders)
	return orders
}

// RefreshOrders refetches the caller's order history, newest first.
func (c *Client) RefreshOrders() error {
	var body struct {
		Orders []Order `json:"orders"`
	}
	resp, err := c.http.R().
		SetHeader("Authorization", c.authHeader()).
		SetResult(&body).
		Get("/orders")
	if err != nil {
		return err
	}
	if resp.StatusCode() != 200 {
		return apiError(resp, "failed to fetch orders")
	}

	c.mu.Lock()
	c.orders = body.Orders
	c.mu.Unlock()
	return nil
}

// PlaceOrder checks out the server-side cart. On success the local cart
// mirror is cleared and order history refreshed; on failure both mirrors are
// left as they were, matching the server (the failed placement has no side
// effects there either).
func (c *Client) PlaceOrder() (*Order, error) {
	var body struct {
		Order Order `json:"order"`
	}
	resp, err := c.http.R().
		SetHeader("Authorization", c.authHeader()).
		SetResult(&body).
		Post("/orders")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 201 {
		return nil, apiError(resp, "failed to place order")
	}

	c.mu.Lock()
	c.cart = nil
	c.mu.Unlock()

	// The order is placed either way; a stale history mirror is acceptable.
	_ = c.RefreshOrders()
	return &body.Order, nil
}

// UpdateOrderStatus advances an order along its lifecycle and refreshes the
// history mirror on success.
func (c *Client) UpdateOrderStatus(orderID uint, status string) error {
	resp, err := c.http.R().
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", c.authHeader()).
		SetBody(map[string]string{"status": status}).
		Put(fmt.Sprintf("/orders/%d", orderID))
	if err != nil {
		return err
	}
	if resp.StatusCode() != 200 {
		return apiError(resp, "failed to update order status")
	}
	return c.RefreshOrders()
}
