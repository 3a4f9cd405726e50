// Package rewardsvc - Test các hàm thuần của engine thưởng tháng (không cần MongoDB).
package rewardsvc

import (
	"testing"
	"time"

	rewardmodels "la_patisserie/internal/api/rewards/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// dayInMonth tạo thời điểm giữa trưa ngày thứ day của tháng 11/2025.
func dayInMonth(day int) time.Time {
	return time.Date(2025, time.November, day, 12, 0, 0, 0, time.UTC)
}

func TestMonthKey_DayKey_Format(t *testing.T) {
	ts := time.Date(2025, time.November, 3, 23, 59, 0, 0, time.UTC)
	if got := MonthKey(ts); got != "2025-11" {
		t.Errorf("MonthKey sai: muốn 2025-11, nhận %s", got)
	}
	if got := DayKey(ts); got != "2025-11-03" {
		t.Errorf("DayKey sai: muốn 2025-11-03, nhận %s", got)
	}
}

func TestNewOrderDay(t *testing.T) {
	ts := dayInMonth(7)
	d := NewOrderDay(ts)
	if d.DayKey != "2025-11-07" {
		t.Errorf("DayKey sai: %s", d.DayKey)
	}
	if d.Month != 11 || d.Year != 2025 {
		t.Errorf("Month/Year sai: %d/%d", d.Month, d.Year)
	}
	if d.Date != ts.UnixMilli() {
		t.Errorf("Date phải là UnixMilli của thời điểm đặt hàng")
	}
}

func TestUniqueDayCount_DedupeSameDay(t *testing.T) {
	// Hai đơn cùng ngày chỉ tính một ngày
	days := []rewardmodels.OrderDay{
		NewOrderDay(dayInMonth(1)),
		NewOrderDay(dayInMonth(1)),
		NewOrderDay(dayInMonth(2)),
	}
	if got := UniqueDayCount(days); got != 2 {
		t.Errorf("UniqueDayCount sai: muốn 2, nhận %d", got)
	}
}

func TestHasDay(t *testing.T) {
	days := []rewardmodels.OrderDay{NewOrderDay(dayInMonth(5))}
	if !HasDay(days, "2025-11-05") {
		t.Error("HasDay phải tìm thấy 2025-11-05")
	}
	if HasDay(days, "2025-11-06") {
		t.Error("HasDay không được tìm thấy 2025-11-06")
	}
}

func TestDaysRemaining(t *testing.T) {
	cases := []struct {
		uniqueDays int
		want       int
	}{
		{0, 10},
		{5, 5},
		{10, 0},
		{12, 0}, // không âm khi vượt ngưỡng
	}
	for _, c := range cases {
		if got := DaysRemaining(c.uniqueDays); got != c.want {
			t.Errorf("DaysRemaining(%d) sai: muốn %d, nhận %d", c.uniqueDays, c.want, got)
		}
	}
}

func TestPruneOrderDays_KeepsCurrentMonthOnly(t *testing.T) {
	days := []rewardmodels.OrderDay{
		NewOrderDay(time.Date(2025, time.October, 28, 9, 0, 0, 0, time.UTC)),
		NewOrderDay(dayInMonth(1)),
		NewOrderDay(dayInMonth(2)),
		NewOrderDay(time.Date(2024, time.November, 2, 9, 0, 0, 0, time.UTC)), // cùng tháng, khác năm
	}
	pruned := PruneOrderDays(days, "2025-11")
	if len(pruned) != 2 {
		t.Fatalf("PruneOrderDays sai: muốn giữ 2 entry, nhận %d", len(pruned))
	}
	for _, d := range pruned {
		if d.DayKey[:7] != "2025-11" {
			t.Errorf("Entry tháng khác không được giữ lại: %s", d.DayKey)
		}
	}
}

func TestIsRollover(t *testing.T) {
	if IsRollover("", "2025-11") {
		t.Error("lastRewardMonth rỗng không phải rollover")
	}
	if IsRollover("2025-11", "2025-11") {
		t.Error("Cùng tháng không phải rollover")
	}
	if !IsRollover("2025-10", "2025-11") {
		t.Error("Tháng trước phải là rollover")
	}
}

func TestShouldPromoteEligible_FreshUserReachingThreshold(t *testing.T) {
	// User mới provision qua đăng nhập Firebase: subdocument reward chưa tồn tại,
	// trạng thái đọc lên là zero value. Đủ 10 ngày thì vẫn phải được chuyển eligible
	var state rewardmodels.RewardState
	for i := 1; i <= 10; i++ {
		state.OrderDays = append(state.OrderDays, NewOrderDay(dayInMonth(i)))
	}
	if !ShouldPromoteEligible(state) {
		t.Error("User chưa có subdocument reward nhưng đủ 10 ngày phải được chuyển eligible")
	}
}

func TestShouldPromoteEligible(t *testing.T) {
	tenDays := func() []rewardmodels.OrderDay {
		var days []rewardmodels.OrderDay
		for i := 1; i <= 10; i++ {
			days = append(days, NewOrderDay(dayInMonth(i)))
		}
		return days
	}

	cases := []struct {
		name  string
		state rewardmodels.RewardState
		want  bool
	}{
		{"đủ ngưỡng, cờ chưa bật", rewardmodels.RewardState{OrderDays: tenDays()}, true},
		{"thiếu ngày", rewardmodels.RewardState{OrderDays: tenDays()[:9]}, false},
		{"đã eligible", rewardmodels.RewardState{OrderDays: tenDays(), Eligible: true}, false},
		{"đã used trong tháng", rewardmodels.RewardState{OrderDays: tenDays(), Used: true}, false},
	}
	for _, c := range cases {
		if got := ShouldPromoteEligible(c.state); got != c.want {
			t.Errorf("ShouldPromoteEligible (%s) sai: muốn %v, nhận %v", c.name, c.want, got)
		}
	}
}

func TestApplyClaim_SecondClaimSameMonthIsNoOp(t *testing.T) {
	// Claim hai lần trong cùng tháng: lần hai là no-op, claimHistory chỉ tăng đúng 1
	productID := primitive.NewObjectID()
	var state rewardmodels.RewardState
	for i := 1; i <= 10; i++ {
		state.OrderDays = append(state.OrderDays, NewOrderDay(dayInMonth(i)))
	}
	state.Eligible = true
	state.SelectedProductID = &productID

	claim := rewardmodels.RewardClaim{ProductID: productID, ProductName: "Croissant bơ", Month: "2025-11"}

	after, claimed := ApplyClaim(state, claim)
	if !claimed {
		t.Fatal("Claim đầu tiên phải thành công")
	}
	if after.Eligible || !after.Used {
		t.Errorf("Claim phải clear eligible và set used, nhận eligible=%v used=%v", after.Eligible, after.Used)
	}
	if after.SelectedProductID != nil {
		t.Error("Claim phải clear selectedProductId")
	}
	if len(after.ClaimHistory) != 1 {
		t.Fatalf("ClaimHistory phải có đúng 1 entry sau claim đầu, nhận %d", len(after.ClaimHistory))
	}

	again, claimed := ApplyClaim(after, claim)
	if claimed {
		t.Error("Claim lần hai trong cùng tháng phải là no-op")
	}
	if len(again.ClaimHistory) != 1 {
		t.Errorf("ClaimHistory không được tăng khi claim lần hai, nhận %d entry", len(again.ClaimHistory))
	}
	if len(after.OrderDays) != 10 {
		t.Errorf("Claim không được đụng vào orderDays, còn %d entry", len(after.OrderDays))
	}
}

func TestApplyClaim_NoPendingClaim(t *testing.T) {
	// Chưa eligible và chưa chọn sản phẩm: không có claim đang chờ
	state := rewardmodels.RewardState{
		OrderDays: []rewardmodels.OrderDay{NewOrderDay(dayInMonth(3))},
	}
	after, claimed := ApplyClaim(state, rewardmodels.RewardClaim{Month: "2025-11"})
	if claimed {
		t.Error("Không có claim đang chờ thì không được claim")
	}
	if len(after.ClaimHistory) != 0 {
		t.Errorf("ClaimHistory phải giữ nguyên rỗng, nhận %d entry", len(after.ClaimHistory))
	}
}

func TestNormalizeState_NoChangeForCleanState(t *testing.T) {
	now := dayInMonth(15)
	state := rewardmodels.RewardState{
		OrderDays: []rewardmodels.OrderDay{NewOrderDay(dayInMonth(1))},
	}
	got, changed := NormalizeState(state, now)
	if changed {
		t.Error("Trạng thái sạch không được đánh dấu changed")
	}
	if len(got.OrderDays) != 1 {
		t.Errorf("OrderDays không được thay đổi, nhận %d entry", len(got.OrderDays))
	}
}

func TestNormalizeState_RolloverClearsFlagsKeepsClaimHistory(t *testing.T) {
	// User đã dùng thưởng tháng 10, sang tháng 11 cờ phải được clear
	// nhưng lịch sử claim giữ nguyên
	now := dayInMonth(1)
	productID := primitive.NewObjectID()
	state := rewardmodels.RewardState{
		OrderDays:         []rewardmodels.OrderDay{NewOrderDay(time.Date(2025, time.October, 20, 9, 0, 0, 0, time.UTC))},
		Eligible:          false,
		Used:              true,
		LastRewardMonth:   "2025-10",
		SelectedProductID: &productID,
		ClaimHistory: []rewardmodels.RewardClaim{
			{ProductID: productID, ProductName: "Bánh mì hoa cúc", Month: "2025-10"},
		},
	}

	got, changed := NormalizeState(state, now)
	if !changed {
		t.Fatal("Rollover phải được đánh dấu changed")
	}
	if got.Eligible || got.Used {
		t.Errorf("Rollover phải clear eligible/used, nhận eligible=%v used=%v", got.Eligible, got.Used)
	}
	if got.LastRewardMonth != "" {
		t.Errorf("Rollover phải clear lastRewardMonth, nhận %q", got.LastRewardMonth)
	}
	if got.SelectedProductID != nil {
		t.Error("Rollover phải clear selectedProductId")
	}
	if len(got.OrderDays) != 0 {
		t.Errorf("OrderDays tháng cũ phải bị prune, còn %d entry", len(got.OrderDays))
	}
	if len(got.ClaimHistory) != 1 {
		t.Errorf("ClaimHistory phải được giữ nguyên qua rollover, còn %d entry", len(got.ClaimHistory))
	}
}

func TestNormalizeState_SelfHealClearsPhantomEligible(t *testing.T) {
	// eligible = true nhưng chưa đủ ngày và chưa used: trạng thái hỏng phải tự sửa
	now := dayInMonth(15)
	productID := primitive.NewObjectID()
	state := rewardmodels.RewardState{
		OrderDays: []rewardmodels.OrderDay{
			NewOrderDay(dayInMonth(1)),
			NewOrderDay(dayInMonth(2)),
		},
		Eligible:          true,
		Used:              false,
		LastRewardMonth:   "2025-11",
		SelectedProductID: &productID,
	}

	got, changed := NormalizeState(state, now)
	if !changed {
		t.Fatal("Self-heal phải được đánh dấu changed")
	}
	if got.Eligible {
		t.Error("Self-heal phải clear eligible khi chưa đủ ngày")
	}
	if got.SelectedProductID != nil {
		t.Error("Self-heal phải clear selectedProductId")
	}
	if got.Used {
		t.Error("Self-heal không được đụng vào used")
	}
}

func TestNormalizeState_UsedStateNotSelfHealed(t *testing.T) {
	// used = true trong cùng tháng: không phải trạng thái hỏng, giữ nguyên
	now := dayInMonth(20)
	state := rewardmodels.RewardState{
		OrderDays:       []rewardmodels.OrderDay{NewOrderDay(dayInMonth(19))},
		Eligible:        false,
		Used:            true,
		LastRewardMonth: "2025-11",
	}
	got, changed := NormalizeState(state, now)
	if changed {
		t.Error("Trạng thái đã used trong tháng không được thay đổi")
	}
	if !got.Used {
		t.Error("used phải giữ nguyên")
	}
}

func TestNormalizeState_TenUniqueDaysStaysEligible(t *testing.T) {
	// Đủ 10 ngày khác nhau trong tháng: eligible hợp lệ, không bị self-heal
	now := dayInMonth(15)
	var days []rewardmodels.OrderDay
	for i := 1; i <= 10; i++ {
		days = append(days, NewOrderDay(dayInMonth(i)))
	}
	state := rewardmodels.RewardState{
		OrderDays:       days,
		Eligible:        true,
		LastRewardMonth: "2025-11",
	}
	got, changed := NormalizeState(state, now)
	if changed {
		t.Error("Trạng thái đủ điều kiện hợp lệ không được thay đổi")
	}
	if !got.Eligible {
		t.Error("eligible phải giữ nguyên khi đủ 10 ngày")
	}
}
