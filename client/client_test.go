package client

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWishlistServer keeps a set of product codes behind the wishlist
// endpoints, optionally failing writes.
type fakeWishlistServer struct {
	mu      sync.Mutex
	entries map[string]uint
	nextID  uint
	failAdd bool
	failDel bool
}

func newFakeWishlistServer() (*fakeWishlistServer, *httptest.Server) {
	f := &fakeWishlistServer{entries: map[string]uint{}, nextID: 1}
	mux := http.NewServeMux()

	mux.HandleFunc("GET /wishlist", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		list := []wishlistEntry{}
		for code, id := range f.entries {
			list = append(list, wishlistEntry{ID: id, ProductCode: code})
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"wishlist": list})
	})
	mux.HandleFunc("POST /wishlist", func(w http.ResponseWriter, r *http.Request) {
		if f.failAdd {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"message": "boom"})
			return
		}
		var body struct {
			ProductID string `json:"product_id"`
		}
		json.NewDecoder(r.Body).Decode(&body)

		f.mu.Lock()
		defer f.mu.Unlock()
		if _, ok := f.entries[body.ProductID]; ok {
			w.WriteHeader(http.StatusConflict)
			json.NewEncoder(w).Encode(map[string]string{"message": "Already in wishlist"})
			return
		}
		f.entries[body.ProductID] = f.nextID
		f.nextID++
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]string{"message": "added"})
	})
	mux.HandleFunc("DELETE /wishlist/product/{code}", func(w http.ResponseWriter, r *http.Request) {
		if f.failDel {
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(map[string]string{"message": "boom"})
			return
		}
		f.mu.Lock()
		delete(f.entries, r.PathValue("code"))
		f.mu.Unlock()
		json.NewEncoder(w).Encode(map[string]string{"message": "Removed from wishlist"})
	})

	return f, httptest.NewServer(mux)
}

func TestToggleWishlistRoundTrip(t *testing.T) {
	fake, server := newFakeWishlistServer()
	defer server.Close()
	c := New(server.URL)
	c.token = "test"

	require.NoError(t, c.ToggleWishlist("AP001"))
	assert.True(t, c.InWishlist("AP001"))
	assert.Contains(t, fake.entries, "AP001")

	// Toggling again returns both sides to the empty state.
	require.NoError(t, c.ToggleWishlist("AP001"))
	assert.False(t, c.InWishlist("AP001"))
	assert.NotContains(t, fake.entries, "AP001")
	assert.Empty(t, c.Wishlist())
}

func TestToggleWishlistRollsBackFailedAdd(t *testing.T) {
	fake, server := newFakeWishlistServer()
	defer server.Close()
	fake.failAdd = true
	c := New(server.URL)
	c.token = "test"

	err := c.ToggleWishlist("MC002")
	require.Error(t, err)
	// The optimistic flip was reverted.
	assert.False(t, c.InWishlist("MC002"))
}

func TestToggleWishlistRollsBackFailedRemove(t *testing.T) {
	fake, server := newFakeWishlistServer()
	defer server.Close()
	fake.entries["DS001"] = 7
	c := New(server.URL)
	c.token = "test"
	require.NoError(t, c.RefreshWishlist())
	require.True(t, c.InWishlist("DS001"))

	fake.failDel = true
	err := c.ToggleWishlist("DS001")
	require.Error(t, err)
	assert.True(t, c.InWishlist("DS001"))
}

func TestToggleWishlistTreatsConflictAsMember(t *testing.T) {
	fake, server := newFakeWishlistServer()
	defer server.Close()
	// Server already has the entry but the local mirror does not.
	fake.entries["SF001"] = 3
	c := New(server.URL)
	c.token = "test"

	require.NoError(t, c.ToggleWishlist("SF001"))
	assert.True(t, c.InWishlist("SF001"))
}

func TestUpdateQuantityRollsBackOnFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /cart/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"message": "You do not have access to this resource."})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	c := New(server.URL)
	c.token = "test"
	c.cart = []CartLine{{ID: 9, ProductID: 4, Quantity: 2}}

	err := c.UpdateQuantity(4, 5)
	require.Error(t, err)
	require.Len(t, c.Cart(), 1)
	assert.Equal(t, 2, c.Cart()[0].Quantity)
}

func TestRemoveFromCartRollsBackOnFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /cart/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"message": "boom"})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	c := New(server.URL)
	c.token = "test"
	c.cart = []CartLine{{ID: 9, ProductID: 4, Quantity: 2}}

	err := c.RemoveFromCart(4)
	require.Error(t, err)
	require.Len(t, c.Cart(), 1)
	assert.Equal(t, 4, c.Cart()[0].ProductID)
}

func TestPlaceOrderClearsCartMirror(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /orders", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"message": "Order placed successfully",
			"order":   Order{ID: 1, TotalPrice: 220.00, Status: "Pending"},
		})
	})
	mux.HandleFunc("GET /orders", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"orders": []Order{{ID: 1, TotalPrice: 220.00, Status: "Pending"}},
		})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	c := New(server.URL)
	c.token = "test"
	c.cart = []CartLine{{ID: 1, ProductID: 2, Quantity: 2}}

	order, err := c.PlaceOrder()
	require.NoError(t, err)
	assert.Equal(t, 220.00, order.TotalPrice)
	assert.Empty(t, c.Cart())
	require.Len(t, c.Orders(), 1)
	assert.Equal(t, uint(1), c.Orders()[0].ID)
}

func TestPlaceOrderFailureKeepsCartMirror(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /orders", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "Not enough stock for Pork Belly Bao"})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	c := New(server.URL)
	c.token = "test"
	c.cart = []CartLine{{ID: 1, ProductID: 2, Quantity: 9}}

	order, err := c.PlaceOrder()
	require.Error(t, err)
	assert.Nil(t, order)
	assert.Contains(t, err.Error(), "Pork Belly Bao")
	// The server kept the cart, so the mirror keeps it too.
	assert.Len(t, c.Cart(), 1)
}

func TestRefreshCartReplacesMirror(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /cart", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"cart": []CartLine{
				{ID: 1, ProductID: 2, Quantity: 3, Product: Product{Code: "AP001", Name: "Crispy Spring Rolls", Price: 50}},
			},
		})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	c := New(server.URL)
	c.token = "test"
	c.cart = []CartLine{{ID: 99, ProductID: 42, Quantity: 1}}

	require.NoError(t, c.RefreshCart())
	require.Len(t, c.Cart(), 1)
	assert.Equal(t, "AP001", c.Cart()[0].Product.Code)
	assert.Equal(t, 3, c.Cart()[0].Quantity)
}

func TestMutationGuardIsOneShot(t *testing.T) {
	calls := 0
	m := beginMutation(func() { calls++ })
	m.rollback()
	m.rollback()
	assert.Equal(t, 1, calls)
	assert.Equal(t, mutationRolledBack, m.state)

	m2 := beginMutation(func() { calls++ })
	m2.commit()
	m2.rollback() // committed mutations can no longer revert
	assert.Equal(t, 1, calls)
	assert.Equal(t, mutationCommitted, m2.state)
}
