// Package rewardsvc - service thưởng tháng (rewards).
//
// Trạng thái thưởng nằm trong field "reward" của document user, mọi thao tác ghi
// là atomic update trên một document duy nhất. Các hàm thuần (monthKey, prune,
// normalize...) tách riêng để test không cần MongoDB.
package rewardsvc

import (
	"fmt"
	"time"

	authmodels "la_patisserie/internal/api/auth/models"
	basesvc "la_patisserie/internal/api/base/service"
	rewardmodels "la_patisserie/internal/api/rewards/models"
	"la_patisserie/internal/common"
	"la_patisserie/internal/global"
)

// RewardService là cấu trúc chứa các phương thức của engine thưởng tháng.
// Trường now được inject để test có thể giả lập thời gian (rollover tháng)
type RewardService struct {
	*basesvc.BaseServiceMongoImpl[authmodels.User]
	now func() time.Time
}

// NewRewardService tạo mới RewardService với đồng hồ hệ thống
func NewRewardService() (*RewardService, error) {
	return NewRewardServiceWithClock(time.Now)
}

// NewRewardServiceWithClock tạo mới RewardService với đồng hồ được inject
func NewRewardServiceWithClock(now func() time.Time) (*RewardService, error) {
	userCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Users)
	if !exist {
		return nil, fmt.Errorf("failed to get users collection: %v", common.ErrNotFound)
	}

	return &RewardService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[authmodels.User](userCollection),
		now:                  now,
	}, nil
}

// MonthKey trả về khóa tháng dạng "YYYY-MM" của một thời điểm
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// DayKey trả về khóa ngày dạng "YYYY-MM-DD" của một thời điểm
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// NewOrderDay tạo entry OrderDay cho một thời điểm
func NewOrderDay(t time.Time) rewardmodels.OrderDay {
	return rewardmodels.OrderDay{
		DayKey: DayKey(t),
		Date:   t.UnixMilli(),
		Month:  int(t.Month()),
		Year:   t.Year(),
	}
}

// PruneOrderDays trả về các entry thuộc tháng monthKey, loại bỏ mọi entry tháng khác
func PruneOrderDays(days []rewardmodels.OrderDay, monthKey string) []rewardmodels.OrderDay {
	pruned := make([]rewardmodels.OrderDay, 0, len(days))
	for _, d := range days {
		if len(d.DayKey) >= len(monthKey) && d.DayKey[:len(monthKey)] == monthKey {
			pruned = append(pruned, d)
		}
	}
	return pruned
}

// UniqueDayCount đếm số ngày khác nhau trong danh sách entry (dedupe theo dayKey)
func UniqueDayCount(days []rewardmodels.OrderDay) int {
	seen := make(map[string]struct{}, len(days))
	for _, d := range days {
		seen[d.DayKey] = struct{}{}
	}
	return len(seen)
}

// HasDay kiểm tra danh sách entry đã chứa dayKey chưa
func HasDay(days []rewardmodels.OrderDay, dayKey string) bool {
	for _, d := range days {
		if d.DayKey == dayKey {
			return true
		}
	}
	return false
}

// IsRollover xác định lastRewardMonth đã thuộc về tháng cũ hay chưa
func IsRollover(lastRewardMonth, currentMonthKey string) bool {
	return lastRewardMonth != "" && lastRewardMonth != currentMonthKey
}

// DaysRemaining trả về số ngày còn thiếu để đạt ngưỡng thưởng
func DaysRemaining(uniqueDays int) int {
	remaining := rewardmodels.EligibilityThreshold - uniqueDays
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ShouldPromoteEligible là bản thuần của điều kiện chuyển eligible trong RecordOrder
// (filter promotionFilter). Zero value của RewardState cũng được tính đúng: user mới
// provision chưa từng có subdocument reward thì hai cờ coi như chưa bật
func ShouldPromoteEligible(state rewardmodels.RewardState) bool {
	return !state.Eligible && !state.Used &&
		UniqueDayCount(state.OrderDays) >= rewardmodels.EligibilityThreshold
}

// ApplyClaim là bản thuần của transition trong ClaimFreeProduct: trả về trạng thái
// sau claim và cờ cho biết có claim đang chờ hay không. Không có claim đang chờ
// (eligible false và chưa chọn sản phẩm) thì trạng thái giữ nguyên, claimHistory
// chỉ tăng đúng một entry cho mỗi claim thành công
func ApplyClaim(state rewardmodels.RewardState, claim rewardmodels.RewardClaim) (rewardmodels.RewardState, bool) {
	if !state.Eligible && state.SelectedProductID == nil {
		return state, false
	}

	state.Eligible = false
	state.Used = true
	state.SelectedProductID = nil

	history := make([]rewardmodels.RewardClaim, 0, len(state.ClaimHistory)+1)
	history = append(history, state.ClaimHistory...)
	state.ClaimHistory = append(history, claim)
	return state, true
}

// NormalizeState áp dụng prune, rollover và self-heal lên một bản copy của trạng thái.
// Trả về trạng thái mới và cờ cho biết có thay đổi so với đầu vào hay không.
//
// Thứ tự xử lý giống đường ghi:
//  1. Prune orderDays về tháng hiện tại
//  2. Rollover: lastRewardMonth thuộc tháng cũ thì clear eligible/used/selectedProductId/lastRewardMonth
//  3. Self-heal: eligible = true nhưng số ngày dưới ngưỡng và chưa used thì clear eligible/selectedProductId
func NormalizeState(state rewardmodels.RewardState, now time.Time) (rewardmodels.RewardState, bool) {
	monthKey := MonthKey(now)
	changed := false

	pruned := PruneOrderDays(state.OrderDays, monthKey)
	if len(pruned) != len(state.OrderDays) {
		state.OrderDays = pruned
		changed = true
	}

	if IsRollover(state.LastRewardMonth, monthKey) {
		state.Eligible = false
		state.Used = false
		state.SelectedProductID = nil
		state.LastRewardMonth = ""
		changed = true
	}

	if state.Eligible && !state.Used && UniqueDayCount(state.OrderDays) < rewardmodels.EligibilityThreshold {
		state.Eligible = false
		state.SelectedProductID = nil
		changed = true
	}

	return state, changed
}
