package client

import "fmt"

// Cart returns a snapshot of the local cart mirror.
func (c *Client) Cart() []CartLine {
	c.mu.Lock()
	defer c.mu.Unlock()
	lines := make([]CartLine, len(c.cart))
	copy(lines, c.cart)
	return lines
}

// RefreshCart replaces the local mirror with the server's cart.
func (c *Client) RefreshCart() error {
	var body struct {
		Cart []CartLine `json:"cart"`
	}
	resp, err := c.http.R().
		SetHeader("Authorization", c.authHeader()).
		SetResult(&body).
		Get("/cart")
	if err != nil {
		return err
	}
	if resp.StatusCode() != 200 {
		return apiError(resp, "failed to fetch cart")
	}

	c.mu.Lock()
	c.cart = body.Cart
	c.mu.Unlock()
	return nil
}

// AddToCart adds a product (server-confirmed, then refetched; repeated adds
// accumulate into one line server-side).
func (c *Client) AddToCart(productID int, quantity int) error {
	if quantity <= 0 {
		quantity = 1
	}
	resp, err := c.http.R().
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", c.authHeader()).
		SetBody(map[string]int{"product_id": productID, "quantity": quantity}).
		Post("/cart")
	if err != nil {
		return err
	}
	if resp.StatusCode() != 200 && resp.StatusCode() != 201 {
		return apiError(resp, "failed to add to cart")
	}
	return c.RefreshCart()
}

func (c *Client) findLine(productID int) (int, bool) {
	for i, line := range c.cart {
		if line.ProductID == productID {
			return i, true
		}
	}
	return 0, false
}

// UpdateQuantity optimistically sets a line's quantity and reverts the local
// change when the server rejects it.
func (c *Client) UpdateQuantity(productID int, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("quantity must be at least 1")
	}

	c.mu.Lock()
	idx, found := c.findLine(productID)
	if !found {
		c.mu.Unlock()
		return fmt.Errorf("product %d is not in the cart", productID)
	}
	lineID := c.cart[idx].ID
	previous := c.cart[idx].Quantity
	c.cart[idx].Quantity = quantity
	c.mu.Unlock()

	m := beginMutation(func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if i, ok := c.findLine(productID); ok {
			c.cart[i].Quantity = previous
		}
	})

	resp, err := c.http.R().
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", c.authHeader()).
		SetBody(map[string]int{"quantity": quantity}).
		Put(fmt.Sprintf("/cart/%d", lineID))
	if err != nil {
		m.rollback()
		return err
	}
	if resp.StatusCode() != 200 {
		m.rollback()
		return apiError(resp, "failed to update quantity")
	}
	m.commit()
	return nil
}

// RemoveFromCart optimistically drops a line and restores it when the server
// call fails.
func (c *Client) RemoveFromCart(productID int) error {
	c.mu.Lock()
	idx, found := c.findLine(productID)
	if !found {
		c.mu.Unlock()
		return nil
	}
	removed := c.cart[idx]
	c.cart = append(c.cart[:idx], c.cart[idx+1:]...)
	c.mu.Unlock()

	m := beginMutation(func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.cart = append(c.cart, removed)
	})

	resp, err := c.http.R().
		SetHeader("Authorization", c.authHeader()).
		Delete(fmt.Sprintf("/cart/%d", removed.ID))
	if err != nil {
		m.rollback()
		return err
	}
	if resp.StatusCode() != 200 {
		m.rollback()
		return apiError(resp, "failed to remove from cart")
	}
	m.commit()
	return nil
}

// ClearCart empties the server cart, then the local mirror.
func (c *Client) ClearCart() error {
	resp, err := c.http.R().
		SetHeader("Authorization", c.authHeader()).
		Delete("/cart/clear")
	if err != nil {
		return err
	}
	if resp.StatusCode() != 200 {
		return apiError(resp, "failed to clear cart")
	}

	c.mu.Lock()
	c.cart = nil
	c.mu.Unlock()
	return nil
}
