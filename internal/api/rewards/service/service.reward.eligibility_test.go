// Package rewardsvc - Test trạng thái mặc định khi không đọc được dữ liệu user.
package rewardsvc

import (
	"testing"

	rewardmodels "la_patisserie/internal/api/rewards/models"
)

func TestIneligibleDefault(t *testing.T) {
	// Đọc trạng thái thất bại phải trả về mặc định "chưa đủ điều kiện",
	// không bao giờ trả lỗi cho caller
	status := ineligibleDefault()
	if status == nil {
		t.Fatal("ineligibleDefault trả về nil")
	}
	if status.Eligible {
		t.Error("Mặc định phải là eligible = false")
	}
	if status.UniqueDaysCount != 0 {
		t.Errorf("Mặc định uniqueDaysCount phải là 0, nhận %d", status.UniqueDaysCount)
	}
	if status.DaysRemaining != rewardmodels.EligibilityThreshold {
		t.Errorf("Mặc định daysRemaining phải là %d, nhận %d", rewardmodels.EligibilityThreshold, status.DaysRemaining)
	}
	if status.Used {
		t.Error("Mặc định phải là used = false")
	}
}
