// Package models - trạng thái thưởng tháng (RewardState) thuộc domain rewards.
// RewardState được embed trực tiếp trong document user (field "reward"), không có collection riêng.
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// EligibilityThreshold là số ngày đặt hàng khác nhau trong tháng cần đạt để nhận thưởng.
const EligibilityThreshold = 10

// OrderDay ghi nhận một ngày (theo lịch) mà user có ít nhất một đơn hàng.
// DayKey dạng "YYYY-MM-DD" là khóa dedupe, mỗi ngày chỉ có một entry
type OrderDay struct {
	DayKey string `json:"dayKey" bson:"dayKey"` // "YYYY-MM-DD"
	Date   int64  `json:"date" bson:"date"`     // Unix millisecond của thời điểm ghi nhận
	Month  int    `json:"month" bson:"month"`   // 1-12
	Year   int    `json:"year" bson:"year"`
}

// RewardClaim là một bản ghi claim trong lịch sử, append-only.
// Các entry chỉ bị xóa bởi job retention riêng, không bị xóa khi rollover tháng
type RewardClaim struct {
	ProductID      primitive.ObjectID `json:"productId" bson:"productId"`
	ProductName    string             `json:"productName" bson:"productName"`
	ClaimedAt      int64              `json:"claimedAt" bson:"claimedAt"` // Unix millisecond
	Month          string             `json:"month" bson:"month"`         // "YYYY-MM"
	OrderReference string             `json:"orderReference,omitempty" bson:"orderReference,omitempty"`
}

// RewardState là trạng thái thưởng của một user trong tháng hiện tại.
//
// Bất biến:
//   - orderDays chỉ chứa entry của tháng hiện tại (entry tháng khác bị prune mỗi lần ghi nhận)
//   - eligible = true kéo theo số ngày khác nhau >= EligibilityThreshold và used = false
//   - used = true kéo theo claimHistory có entry với month tương ứng
type RewardState struct {
	OrderDays         []OrderDay          `json:"orderDays" bson:"orderDays"`
	Eligible          bool                `json:"eligible" bson:"eligible"`
	Used              bool                `json:"used" bson:"used"`
	LastRewardMonth   string              `json:"lastRewardMonth,omitempty" bson:"lastRewardMonth,omitempty"` // "YYYY-MM", rỗng nếu chưa có
	SelectedProductID *primitive.ObjectID `json:"selectedProductId,omitempty" bson:"selectedProductId,omitempty"`
	ClaimHistory      []RewardClaim       `json:"claimHistory" bson:"claimHistory"`
}
