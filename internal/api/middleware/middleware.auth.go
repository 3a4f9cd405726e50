package middleware

import (
	"strings"
	"sync"

	authmodels "la_patisserie/internal/api/auth/models"
	authsvc "la_patisserie/internal/api/auth/service"
	"la_patisserie/internal/common"
	"la_patisserie/internal/logger"
	"la_patisserie/internal/utility"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

var (
	userServiceInstance *authsvc.UserService
	userServiceOnce     sync.Once
)

// getUserService trả về UserService dùng chung cho middleware (singleton)
func getUserService() *authsvc.UserService {
	userServiceOnce.Do(func() {
		svc, err := authsvc.NewUserService()
		if err != nil {
			panic(err)
		}
		userServiceInstance = svc
	})
	return userServiceInstance
}

// AuthMiddleware xác thực Firebase ID token từ header Authorization (Bearer).
// Token hợp lệ: user được load theo firebaseUid và gắn vào context qua Locals:
//   - "userID": hex string của ObjectID
//   - "user":   *models.User
func AuthMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		token, err := utility.VerifyIDToken(c.Context(), parts[1])
		if err != nil {
			logger.GetAppLogger().WithError(err).Warn("AuthMiddleware: verify token thất bại")
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		user, err := getUserService().GetByFirebaseUID(c.Context(), token.UID)
		if err != nil {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"firebase_uid": token.UID,
			}).WithError(err).Warn("AuthMiddleware: không tìm thấy user")
			HandleErrorResponse(c, common.ErrUserNotFound)
			return nil
		}

		if user.IsBlock {
			HandleErrorResponse(c, common.NewError(common.ErrCodeAuthRole, "Tài khoản đã bị khóa", common.StatusForbidden, nil))
			return nil
		}

		c.Locals("userID", user.ID.Hex())
		c.Locals("user", user)
		return c.Next()
	}
}

// RequireAdmin chặn các route chỉ dành cho admin. Phải đặt sau AuthMiddleware
func RequireAdmin() fiber.Handler {
	return func(c fiber.Ctx) error {
		user, ok := c.Locals("user").(*authmodels.User)
		if !ok || user == nil {
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}
		if user.Role != authmodels.RoleAdmin {
			HandleErrorResponse(c, common.NewError(common.ErrCodeAuthRole, common.MsgForbidden, common.StatusForbidden, nil))
			return nil
		}
		return c.Next()
	}
}

// UserFromContext lấy user đã xác thực từ fiber context
func UserFromContext(c fiber.Ctx) (*authmodels.User, error) {
	user, ok := c.Locals("user").(*authmodels.User)
	if !ok || user == nil {
		return nil, common.ErrTokenMissing
	}
	return user, nil
}
