// Package rewardshdl - Handler HTTP cho domain rewards (thưởng tháng).
package rewardshdl

import (
	"fmt"

	basehdl "la_patisserie/internal/api/base/handler"
	"la_patisserie/internal/api/middleware"
	rewarddto "la_patisserie/internal/api/rewards/dto"
	rewardsvc "la_patisserie/internal/api/rewards/service"
	"la_patisserie/internal/common"
	"la_patisserie/internal/global"
	"la_patisserie/internal/logger"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RewardHandler xử lý API trạng thái thưởng, chọn sản phẩm và các thao tác admin.
type RewardHandler struct {
	RewardService *rewardsvc.RewardService
}

// NewRewardHandler tạo RewardHandler mới.
func NewRewardHandler() (*RewardHandler, error) {
	svc, err := rewardsvc.NewRewardService()
	if err != nil {
		return nil, fmt.Errorf("tạo RewardService: %w", err)
	}
	return &RewardHandler{RewardService: svc}, nil
}

// HandleGetStatus xử lý GET /rewards/status — trạng thái thưởng của user hiện tại.
// Không bao giờ trả lỗi cho client, load thất bại trả về mặc định chưa đủ điều kiện.
func (h *RewardHandler) HandleGetStatus(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		user, err := middleware.UserFromContext(c)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		status := h.RewardService.CheckEligibility(c.Context(), user.ID)
		basehdl.HandleResponse(c, status, nil)
		return nil
	})
}

// HandleSelectProduct xử lý POST /rewards/select — chọn sản phẩm miễn phí cho claim đang chờ.
func (h *RewardHandler) HandleSelectProduct(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		user, err := middleware.UserFromContext(c)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		var input rewarddto.SelectProductInput
		if err := c.Bind().Body(&input); err != nil {
			basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		if err := global.Validate.Struct(&input); err != nil {
			basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err))
			return nil
		}

		productID, err := primitive.ObjectIDFromHex(input.ProductID)
		if err != nil {
			basehdl.HandleResponse(c, nil, common.ErrInvalidInput)
			return nil
		}

		status, err := h.RewardService.SelectFreeProduct(c.Context(), user.ID, productID)
		if err == nil {
			logger.LogAction("reward_select_product", c, map[string]interface{}{
				"product_id": input.ProductID,
			})
		}
		basehdl.HandleResponse(c, status, err)
		return nil
	})
}

// HandleGetClaims xử lý GET /rewards/claims — lịch sử claim của user hiện tại.
// Query month ("YYYY-MM") lọc theo tháng, bỏ trống trả về toàn bộ lịch sử.
func (h *RewardHandler) HandleGetClaims(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		user, err := middleware.UserFromContext(c)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		var query rewarddto.ClaimHistoryQuery
		if err := c.Bind().Query(&query); err != nil {
			basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		if err := global.Validate.Struct(&query); err != nil {
			basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err))
			return nil
		}

		claims, err := h.RewardService.ClaimHistoryForUser(c.Context(), user.ID, query.Month)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		basehdl.HandleResponse(c, &rewarddto.ClaimHistoryResponse{
			UserID: user.ID.Hex(),
			Claims: claims,
		}, nil)
		return nil
	})
}

// HandleGetSummary xử lý GET /rewards/summary — thống kê user theo trạng thái thưởng (admin).
func (h *RewardHandler) HandleGetSummary(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		summary, err := h.RewardService.StatusSummary(c.Context())
		basehdl.HandleResponse(c, summary, err)
		return nil
	})
}

// HandleResetMonth xử lý POST /rewards/reset-month — batch reset đầu tháng (admin).
// Idempotent, gọi nhiều lần trong ngày không reset nhầm user giữa tháng.
func (h *RewardHandler) HandleResetMonth(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		result, err := h.RewardService.ResetAllUsersForNewMonth(c.Context())
		if err == nil {
			logger.LogAction("reward_reset_month", c, map[string]interface{}{
				"users_reset":   result.UsersReset,
				"users_cleaned": result.UsersCleaned,
			})
		}
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}

// HandlePruneClaims xử lý POST /rewards/prune-claims — job retention lịch sử claim (admin).
func (h *RewardHandler) HandlePruneClaims(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		pruned, err := h.RewardService.PruneClaimHistory(c.Context())
		if err == nil {
			logger.LogAction("reward_prune_claims", c, map[string]interface{}{
				"users_pruned": pruned,
			})
		}
		basehdl.HandleResponse(c, fiber.Map{"usersPruned": pruned}, err)
		return nil
	})
}
