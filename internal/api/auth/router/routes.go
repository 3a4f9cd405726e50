// Package router đăng ký các route thuộc domain auth (đăng nhập, hồ sơ).
package router

import (
	"fmt"

	authhdl "la_patisserie/internal/api/auth/handler"
	"la_patisserie/internal/api/middleware"
	apirouter "la_patisserie/internal/api/router"

	"github.com/gofiber/fiber/v3"
)

// Register đăng ký các route auth vào router v1.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	handler, err := authhdl.NewUserHandler()
	if err != nil {
		return fmt.Errorf("tạo UserHandler: %w", err)
	}

	authOnly := []fiber.Handler{middleware.AuthMiddleware()}

	// Đăng nhập bằng Firebase ID token (public)
	apirouter.RegisterRouteWithMiddleware(v1, "/auth", "POST", "/login", nil, handler.HandleLogin)

	// Hồ sơ của user hiện tại
	apirouter.RegisterRouteWithMiddleware(v1, "/users", "GET", "/me", authOnly, handler.HandleGetMe)

	// Cập nhật hồ sơ của user hiện tại
	apirouter.RegisterRouteWithMiddleware(v1, "/users", "PUT", "/me", authOnly, handler.HandleUpdateMe)

	return nil
}
