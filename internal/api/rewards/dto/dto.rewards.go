// Package dto - DTO cho domain rewards (thưởng tháng).
package dto

import (
	rewardmodels "la_patisserie/internal/api/rewards/models"
)

// RewardProgress là kết quả ghi nhận ngày đặt hàng (RecordOrder)
type RewardProgress struct {
	UniqueDays    int  `json:"uniqueDays"`    // Số ngày đặt hàng khác nhau trong tháng hiện tại
	Eligible      bool `json:"eligible"`      // Đã đủ điều kiện nhận thưởng
	DaysRemaining int  `json:"daysRemaining"` // Số ngày còn thiếu, max(0, threshold - uniqueDays)
}

// RewardStatus là trạng thái thưởng đầy đủ trả về cho client (CheckEligibility)
type RewardStatus struct {
	Eligible          bool   `json:"eligible"`
	UniqueDaysCount   int    `json:"uniqueDaysCount"`
	DaysRemaining     int    `json:"daysRemaining"`
	Used              bool   `json:"used"`
	SelectedProductID string `json:"selectedProductId,omitempty"`
}

// SelectProductInput là input chọn sản phẩm miễn phí cho claim đang chờ
type SelectProductInput struct {
	ProductID string `json:"productId" validate:"required,object_id"`
}

// ResetResult là kết quả của batch reset đầu tháng
type ResetResult struct {
	UsersReset   int64 `json:"usersReset"`   // Số user được clear cờ eligible/used của tháng cũ
	UsersCleaned int64 `json:"usersCleaned"` // Số user được prune orderDays của tháng cũ
}

// RewardSummary là thống kê số user theo trạng thái thưởng (admin)
type RewardSummary struct {
	Eligible   int64 `json:"eligible"`
	Used       int64 `json:"used"`
	InProgress int64 `json:"inProgress"`
	NoOrders   int64 `json:"noOrders"`
	TotalUsers int64 `json:"totalUsers"`
}

// ClaimHistoryQuery là query filter cho lịch sử claim, month rỗng trả về tất cả
type ClaimHistoryQuery struct {
	Month string `query:"month" validate:"omitempty,month_key"`
}

// ClaimHistoryResponse trả về lịch sử claim của một user
type ClaimHistoryResponse struct {
	UserID string                     `json:"userId"`
	Claims []rewardmodels.RewardClaim `json:"claims"`
}
