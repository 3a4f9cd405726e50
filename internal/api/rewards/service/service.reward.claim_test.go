// Package rewardsvc - Test lọc lịch sử claim theo tháng.
package rewardsvc

import (
	"testing"

	rewardmodels "la_patisserie/internal/api/rewards/models"
)

func TestFilterClaimsByMonth(t *testing.T) {
	claims := []rewardmodels.RewardClaim{
		{ProductName: "Bánh mì hoa cúc", Month: "2025-10"},
		{ProductName: "Croissant bơ", Month: "2025-11"},
		{ProductName: "Tarte chanh", Month: "2025-11"},
	}

	all := FilterClaimsByMonth(claims, "")
	if len(all) != 3 {
		t.Errorf("Month rỗng phải giữ tất cả, nhận %d entry", len(all))
	}

	nov := FilterClaimsByMonth(claims, "2025-11")
	if len(nov) != 2 {
		t.Fatalf("Lọc 2025-11 phải còn 2 entry, nhận %d", len(nov))
	}
	for _, c := range nov {
		if c.Month != "2025-11" {
			t.Errorf("Entry tháng khác lọt qua filter: %s", c.Month)
		}
	}

	none := FilterClaimsByMonth(claims, "2026-01")
	if len(none) != 0 {
		t.Errorf("Tháng không có claim phải trả về rỗng, nhận %d entry", len(none))
	}
}
