package controllers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/bitespot/bitespot-api/initializers"
	"github.com/bitespot/bitespot-api/models"
	"github.com/bitespot/bitespot-api/services"
	"github.com/bitespot/bitespot-api/utils"
	"github.com/gin-gonic/gin"
)

// Send an order confirmation email. Failure is logged, never fatal.
func sendOrderConfirmationEmail(name, email string, order *models.Order) error {
	emailData := utils.EmailData{
		Name:     name,
		Message:  "Your order has been placed and is being prepared.",
		OrderRef: fmt.Sprintf("#%d", order.ID),
		Total:    fmt.Sprintf("%.2f", order.TotalPrice),
		LogoURL:  "https://www.bitespot.store/images/logo.jpg",
	}

	templatePath := filepath.Join("templates", "order_confirmation.html")
	return utils.SendEmail(email, "Your BiteSpot Order", emailData, templatePath)
}

// CreateOrder places an order from the caller's cart. The whole thing is
// atomic: on any failure the cart and stock are untouched.
func CreateOrder(ctx *gin.Context) {
	userID, name, email, ok := currentUser(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	order, err := services.PlaceOrder(initializers.DB, userID)
	if err != nil {
		var stockErr *services.InsufficientStockError
		switch {
		case errors.Is(err, services.ErrEmptyCart):
			sendErrorResponse(ctx, http.StatusBadRequest, "Cart is empty")
		case errors.As(err, &stockErr):
			sendErrorResponse(ctx, http.StatusBadRequest,
				fmt.Sprintf("Not enough stock for %s", stockErr.ProductName))
		default:
			log.Println("Order placement error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to place order")
		}
		return
	}

	if email != "" {
		if err := sendOrderConfirmationEmail(name, email, order); err != nil {
			log.Println("Error sending order confirmation email:", err)
		}
	}

	sendJSONResponse(ctx, http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// GetOrders returns the caller's orders, newest first, with items and
// product snapshots.
func GetOrders(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var orders []models.Order
	result := initializers.DB.
		Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders)
	if result.Error != nil {
		log.Println(result.Error)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Unable to fetch orders")
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"orders": orders})
}

// GetOrderById returns a single order, owner only.
func GetOrderById(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	orderID, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	var order models.Order
	result := initializers.DB.Preload("Items.Product").First(&order, orderID)
	if result.Error != nil {
		sendErrorResponse(ctx, http.StatusNotFound, msgNotFound)
		return
	}
	if order.UserID != userID {
		sendErrorResponse(ctx, http.StatusForbidden, msgNotOwner)
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{"order": order})
}

// UpdateOrderStatus moves an order along Pending -> Delivered -> Completed
// (or Pending -> Cancelled). Anything else is rejected.
func UpdateOrderStatus(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var orderStatusData struct {
		Status string `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&orderStatusData); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse request body")
		return
	}

	orderID, err := strconv.Atoi(ctx.Param("orderId"))
	if err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, "Failed to parse orderId")
		return
	}

	order, err := services.UpdateOrderStatus(initializers.DB, userID, orderID, orderStatusData.Status)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			sendErrorResponse(ctx, http.StatusNotFound, msgNotFound)
		case errors.Is(err, services.ErrNotOwner):
			sendErrorResponse(ctx, http.StatusForbidden, msgNotOwner)
		case errors.Is(err, services.ErrInvalidTransition):
			sendErrorResponse(ctx, http.StatusBadRequest, "Invalid order status transition")
		default:
			log.Println("Order status update error:", err)
			sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to update order status")
		}
		return
	}

	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"message": "Order status updated successfully.",
		"order":   order,
	})
}
