package client

import (
	"fmt"
	"sync"
)

// Wishlist returns the product codes currently in the local mirror.
func (c *Client) Wishlist() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	codes := make([]string, 0, len(c.wishlist))
	for code := range c.wishlist {
		codes = append(codes, code)
	}
	return codes
}

// InWishlist reports local membership for a product code.
func (c *Client) InWishlist(code string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.wishlist[code]
}

// RefreshWishlist replaces the local mirror with the server's wishlist.
func (c *Client) RefreshWishlist() error {
	entries, err := c.fetchWishlist()
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.wishlist = make(map[string]bool, len(entries))
	for _, entry := range entries {
		c.wishlist[entry.ProductCode] = true
	}
	c.mu.Unlock()
	return nil
}

func (c *Client) fetchWishlist() ([]wishlistEntry, error) {
	var body struct {
		Wishlist []wishlistEntry `json:"wishlist"`
	}
	resp, err := c.http.R().
		SetHeader("Authorization", c.authHeader()).
		SetResult(&body).
		Get("/wishlist")
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() != 200 {
		return nil, apiError(resp, "failed to fetch wishlist")
	}
	return body.Wishlist, nil
}

// toggleLock returns the per-product mutex so toggles on the same product
// never interleave.
func (c *Client) toggleLock(code string) *sync.Mutex {
	c.mu.Lock()
	defer c.mu.Unlock()
	lock, ok := c.toggleMu[code]
	if !ok {
		lock = &sync.Mutex{}
		c.toggleMu[code] = lock
	}
	return lock
}

// ToggleWishlist flips membership for a product code: the local mirror is
// flipped first and flipped back if the server call fails. A 409 on add
// means the entry already existed and counts as success.
func (c *Client) ToggleWishlist(code string) error {
	lock := c.toggleLock(code)
	lock.Lock()
	defer lock.Unlock()

	c.mu.Lock()
	present := c.wishlist[code]
	c.mu.Unlock()

	if present {
		return c.removeFromWishlist(code)
	}
	return c.addToWishlist(code)
}

func (c *Client) addToWishlist(code string) error {
	c.mu.Lock()
	c.wishlist[code] = true
	c.mu.Unlock()

	m := beginMutation(func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.wishlist, code)
	})

	resp, err := c.http.R().
		SetHeader("Content-Type", "application/json").
		SetHeader("Authorization", c.authHeader()).
		SetBody(map[string]string{"product_id": code}).
		Post("/wishlist")
	if err != nil {
		m.rollback()
		return err
	}
	// 409 means the server already has it; the optimistic add stands.
	if resp.StatusCode() != 201 && resp.StatusCode() != 409 {
		m.rollback()
		return apiError(resp, "failed to add to wishlist")
	}
	m.commit()
	return nil
}

func (c *Client) removeFromWishlist(code string) error {
	c.mu.Lock()
	delete(c.wishlist, code)
	c.mu.Unlock()

	m := beginMutation(func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.wishlist[code] = true
	})

	resp, err := c.http.R().
		SetHeader("Authorization", c.authHeader()).
		Delete(fmt.Sprintf("/wishlist/product/%s", code))
	if err != nil {
		m.rollback()
		return err
	}
	if resp.StatusCode() != 200 {
		m.rollback()
		return apiError(resp, "failed to remove from wishlist")
	}
	m.commit()
	return nil
}
