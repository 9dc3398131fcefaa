package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	message := `Welcome to the BiteSpot API. Enjoy seamless interaction with this API.

The following are the endpoints for this API:

AUTH
- POST "/auth/signup" - Create user account
- POST "/auth/login" - Access user account

PRODUCT
- GET "/products" - Get all products
- GET "/products/{id}" - Get product by ID or code
- GET "/products/{id}/reviews" - Get product reviews
- POST "/products" - Create new product (admin)
- PUT "/products/{id}" - Update product (admin)
- DELETE "/products/{id}" - Delete product (admin)
- POST "/products/restore" - Restore default catalog (admin)

CART
- GET "/cart" - Get your cart
- POST "/cart" - Add product to cart
- PUT "/cart/{id}" - Update cart line quantity
- DELETE "/cart/{id}" - Remove cart line
- DELETE "/cart/clear" - Empty your cart

ORDER
- POST "/orders" - Place an order from your cart
- GET "/orders" - Your order history
- GET "/orders/{orderId}" - Get order by ID
- PUT "/orders/{orderId}" - Update order status

WISHLIST
- GET "/wishlist" - Get your wishlist
- POST "/wishlist" - Add product to wishlist
- DELETE "/wishlist/{id}" - Remove wishlist entry
- DELETE "/wishlist/product/{code}" - Remove entry by product code

REVIEW
- POST "/reviews" - Submit a product review`

	ctx.JSON(http.StatusOK, gin.H{
		"message": message,
	})
}
