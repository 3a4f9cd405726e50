// Package router đăng ký các route thuộc domain catalog (sản phẩm).
package router

import (
	"fmt"

	cataloghdl "la_patisserie/internal/api/catalog/handler"
	"la_patisserie/internal/api/middleware"
	apirouter "la_patisserie/internal/api/router"

	"github.com/gofiber/fiber/v3"
)

// Register đăng ký các route catalog vào router v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	handler, err := cataloghdl.NewProductHandler()
	if err != nil {
		return fmt.Errorf("tạo ProductHandler: %w", err)
	}

	// CRUD sản phẩm: đọc yêu cầu đăng nhập, ghi/xóa yêu cầu admin
	r.RegisterCRUDRoutes(v1, "/products", handler, apirouter.ReadWriteConfig)

	// Danh mục quà thưởng tháng (user đăng nhập xem để chọn quà)
	authOnly := []fiber.Handler{middleware.AuthMiddleware()}
	apirouter.RegisterRouteWithMiddleware(v1, "/products", "GET", "/reward-catalog", authOnly, handler.HandleGetRewardCatalog)

	return nil
}
