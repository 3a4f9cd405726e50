// Package authhdl - Handler HTTP cho domain auth (đăng nhập, hồ sơ người dùng).
package authhdl

import (
	"fmt"

	basehdl "la_patisserie/internal/api/base/handler"
	authdto "la_patisserie/internal/api/auth/dto"
	authsvc "la_patisserie/internal/api/auth/service"
	"la_patisserie/internal/api/middleware"
	"la_patisserie/internal/common"
	"la_patisserie/internal/global"
	"la_patisserie/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// UserHandler xử lý API đăng nhập và hồ sơ người dùng.
type UserHandler struct {
	UserService *authsvc.UserService
}

// NewUserHandler tạo UserHandler mới.
func NewUserHandler() (*UserHandler, error) {
	svc, err := authsvc.NewUserService()
	if err != nil {
		return nil, fmt.Errorf("tạo UserService: %w", err)
	}
	return &UserHandler{UserService: svc}, nil
}

// HandleLogin xử lý POST /auth/login — đăng nhập bằng Firebase ID token.
// User chưa tồn tại sẽ được tạo mới từ thông tin Firebase
func (h *UserHandler) HandleLogin(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		var input authdto.FirebaseLoginInput
		if err := c.Bind().Body(&input); err != nil {
			basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		if err := global.Validate.Struct(&input); err != nil {
			basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err))
			return nil
		}

		user, err := h.UserService.LoginWithFirebase(c.Context(), &input)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		logger.LogAction("auth_login", c, map[string]interface{}{
			"user_id": user.ID.Hex(),
		})
		basehdl.HandleResponse(c, authsvc.ToUserResponse(user), nil)
		return nil
	})
}

// HandleGetMe xử lý GET /users/me — hồ sơ của user hiện tại.
func (h *UserHandler) HandleGetMe(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		user, err := middleware.UserFromContext(c)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		basehdl.HandleResponse(c, authsvc.ToUserResponse(user), nil)
		return nil
	})
}

// HandleUpdateMe xử lý PUT /users/me — cập nhật hồ sơ của user hiện tại.
func (h *UserHandler) HandleUpdateMe(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		user, err := middleware.UserFromContext(c)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		var input authdto.UserUpdateProfileInput
		if err := c.Bind().Body(&input); err != nil {
			basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		if err := global.Validate.Struct(&input); err != nil {
			basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err))
			return nil
		}

		updated, err := h.UserService.UpdateProfile(c.Context(), user.ID, &input)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}
		basehdl.HandleResponse(c, authsvc.ToUserResponse(updated), nil)
		return nil
	})
}
