// Package router đăng ký các route thuộc domain orders (đơn hàng).
package router

import (
	"fmt"

	"la_patisserie/internal/api/middleware"
	orderhdl "la_patisserie/internal/api/orders/handler"
	apirouter "la_patisserie/internal/api/router"

	"github.com/gofiber/fiber/v3"
)

// Register đăng ký các route orders vào router v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	handler, err := orderhdl.NewOrderHandler()
	if err != nil {
		return fmt.Errorf("tạo OrderHandler: %w", err)
	}

	authOnly := []fiber.Handler{middleware.AuthMiddleware()}

	// Đặt đơn hàng mới (kèm ghi nhận tiến độ thưởng tháng)
	apirouter.RegisterRouteWithMiddleware(v1, "/orders", "POST", "/place", authOnly, handler.HandlePlaceOrder)

	// Danh sách đơn hàng của user hiện tại
	apirouter.RegisterRouteWithMiddleware(v1, "/orders", "GET", "/me", authOnly, handler.HandleGetMyOrders)

	return nil
}
