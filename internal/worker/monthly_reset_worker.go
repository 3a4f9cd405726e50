package worker

import (
	"context"
	"time"

	rewardsvc "la_patisserie/internal/api/rewards/service"
	"la_patisserie/internal/logger"
)

// MonthlyResetWorker worker reset trạng thái thưởng sang tháng mới: quét toàn bộ user,
// clear cờ eligible/used và dọn các ngày đặt hàng không thuộc tháng hiện tại.
// Thao tác idempotent nên worker chạy hàng ngày an toàn, user đang giữa tháng không bị reset nhầm.
type MonthlyResetWorker struct {
	rewardService *rewardsvc.RewardService
	interval      time.Duration // Khoảng thời gian giữa các lần chạy
}

// NewMonthlyResetWorker tạo mới MonthlyResetWorker.
// Tham số:
//   - interval: Khoảng thời gian giữa các lần chạy (mặc định: 24 giờ)
func NewMonthlyResetWorker(interval time.Duration) (*MonthlyResetWorker, error) {
	rewardService, err := rewardsvc.NewRewardService()
	if err != nil {
		return nil, err
	}
	if interval < time.Hour {
		interval = 24 * time.Hour
	}
	return &MonthlyResetWorker{
		rewardService: rewardService,
		interval:      interval,
	}, nil
}

// Start chạy worker trong vòng lặp: chạy ngay một lần lúc khởi động (bù cho trường hợp
// server restart qua mốc đầu tháng), sau đó lặp lại mỗi interval.
func (w *MonthlyResetWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval": w.interval.String(),
	}).Info("🔄 [REWARD_RESET] Starting Monthly Reset Worker...")

	w.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Info("🔄 [REWARD_RESET] Monthly Reset Worker stopped")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

// runOnce thực hiện một lượt reset và dọn lịch sử claim, nuốt panic để không làm chết vòng lặp.
func (w *MonthlyResetWorker) runOnce(ctx context.Context) {
	log := logger.GetAppLogger()

	defer func() {
		if r := recover(); r != nil {
			log.WithFields(map[string]interface{}{
				"panic": r,
			}).Error("🔄 [REWARD_RESET] Panic khi reset tháng mới, sẽ tiếp tục ở lần chạy tiếp theo")
		}
	}()

	result, err := w.rewardService.ResetAllUsersForNewMonth(ctx)
	if err != nil {
		log.WithError(err).Error("🔄 [REWARD_RESET] Lỗi reset trạng thái thưởng sang tháng mới")
		return
	}
	if result.UsersReset > 0 || result.UsersCleaned > 0 {
		log.WithFields(map[string]interface{}{
			"usersReset":   result.UsersReset,
			"usersCleaned": result.UsersCleaned,
		}).Info("🔄 [REWARD_RESET] Đã reset trạng thái thưởng tháng mới")
	}
}
