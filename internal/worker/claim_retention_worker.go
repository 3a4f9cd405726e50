package worker

import (
	"context"
	"time"

	rewardsvc "la_patisserie/internal/api/rewards/service"
	"la_patisserie/internal/logger"
)

// ClaimRetentionWorker worker dọn lịch sử claim theo chính sách retention:
// xóa các bản ghi claim thuộc các tháng trước, giữ nguyên claim của tháng hiện tại.
// Chạy độc lập với worker reset tháng để hai chính sách không ràng buộc lịch của nhau.
type ClaimRetentionWorker struct {
	rewardService *rewardsvc.RewardService
	interval      time.Duration // Khoảng thời gian giữa các lần chạy
}

// NewClaimRetentionWorker tạo mới ClaimRetentionWorker.
// Tham số:
//   - interval: Khoảng thời gian giữa các lần chạy (mặc định: 24 giờ)
func NewClaimRetentionWorker(interval time.Duration) (*ClaimRetentionWorker, error) {
	rewardService, err := rewardsvc.NewRewardService()
	if err != nil {
		return nil, err
	}
	if interval < time.Hour {
		interval = 24 * time.Hour
	}
	return &ClaimRetentionWorker{
		rewardService: rewardService,
		interval:      interval,
	}, nil
}

// Start chạy worker trong vòng lặp: chạy ngay một lần lúc khởi động (bù cho trường hợp
// server restart qua mốc đầu tháng), sau đó lặp lại mỗi interval.
func (w *ClaimRetentionWorker) Start(ctx context.Context) {
	log := logger.GetAppLogger()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	log.WithFields(map[string]interface{}{
		"interval": w.interval.String(),
	}).Info("🧹 [CLAIM_RETENTION] Starting Claim Retention Worker...")

	w.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			log.Info("🧹 [CLAIM_RETENTION] Claim Retention Worker stopped")
			return
		case <-ticker.C:
			w.runOnce(ctx)
		}
	}
}

// runOnce thực hiện một lượt dọn lịch sử claim, nuốt panic để không làm chết vòng lặp.
func (w *ClaimRetentionWorker) runOnce(ctx context.Context) {
	log := logger.GetAppLogger()

	defer func() {
		if r := recover(); r != nil {
			log.WithFields(map[string]interface{}{
				"panic": r,
			}).Error("🧹 [CLAIM_RETENTION] Panic khi dọn lịch sử claim, sẽ tiếp tục ở lần chạy tiếp theo")
		}
	}()

	pruned, err := w.rewardService.PruneClaimHistory(ctx)
	if err != nil {
		log.WithError(err).Error("🧹 [CLAIM_RETENTION] Lỗi dọn lịch sử claim cũ")
		return
	}
	if pruned > 0 {
		log.WithFields(map[string]interface{}{
			"usersPruned": pruned,
		}).Info("🧹 [CLAIM_RETENTION] Đã dọn lịch sử claim cũ")
	}
}
