// Package router đăng ký các route thuộc domain rewards (chương trình thưởng tháng).
package router

import (
	"fmt"

	"la_patisserie/internal/api/middleware"
	apirouter "la_patisserie/internal/api/router"
	rewardshdl "la_patisserie/internal/api/rewards/handler"

	"github.com/gofiber/fiber/v3"
)

// Register đăng ký các route rewards vào router v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	handler, err := rewardshdl.NewRewardHandler()
	if err != nil {
		return fmt.Errorf("tạo RewardHandler: %w", err)
	}

	authOnly := []fiber.Handler{middleware.AuthMiddleware()}
	adminOnly := []fiber.Handler{middleware.AuthMiddleware(), middleware.RequireAdmin()}

	// Trạng thái thưởng của user hiện tại (số ngày duy nhất, đủ điều kiện hay chưa)
	apirouter.RegisterRouteWithMiddleware(v1, "/rewards", "GET", "/status", authOnly, handler.HandleGetStatus)

	// Chọn sản phẩm miễn phí khi đã đủ điều kiện
	apirouter.RegisterRouteWithMiddleware(v1, "/rewards", "POST", "/select", authOnly, handler.HandleSelectProduct)

	// Lịch sử claim của user hiện tại
	apirouter.RegisterRouteWithMiddleware(v1, "/rewards", "GET", "/claims", authOnly, handler.HandleGetClaims)

	// Thống kê user theo trạng thái thưởng (admin)
	apirouter.RegisterRouteWithMiddleware(v1, "/rewards", "GET", "/summary", adminOnly, handler.HandleGetSummary)

	// Batch reset đầu tháng, idempotent nên chạy hàng ngày vẫn an toàn (admin)
	apirouter.RegisterRouteWithMiddleware(v1, "/rewards", "POST", "/reset-month", adminOnly, handler.HandleResetMonth)

	// Dọn lịch sử claim cũ theo chính sách retention (admin)
	apirouter.RegisterRouteWithMiddleware(v1, "/rewards", "POST", "/prune-claims", adminOnly, handler.HandlePruneClaims)

	return nil
}
