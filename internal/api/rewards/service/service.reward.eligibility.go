package rewardsvc

import (
	"context"

	rewarddto "la_patisserie/internal/api/rewards/dto"
	rewardmodels "la_patisserie/internal/api/rewards/models"
	"la_patisserie/internal/common"
	"la_patisserie/internal/logger"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ineligibleDefault là trạng thái mặc định khi không load được user.
// Đường đọc không trả lỗi cho client, user không tồn tại được coi là chưa đủ điều kiện
func ineligibleDefault() *rewarddto.RewardStatus {
	return &rewarddto.RewardStatus{
		Eligible:        false,
		UniqueDaysCount: 0,
		DaysRemaining:   rewardmodels.EligibilityThreshold,
	}
}

// CheckEligibility trả về trạng thái thưởng hiện tại của user, chỉ đọc, không ghi.
// Prune và self-heal được áp dụng trên bản copy in-memory để không trả trạng thái
// cũ giữa hai lần đặt hàng. Load lỗi thì trả về mặc định chưa đủ điều kiện
func (s *RewardService) CheckEligibility(ctx context.Context, userID primitive.ObjectID) *rewarddto.RewardStatus {
	user, err := s.FindOneById(ctx, userID)
	if err != nil {
		logger.GetAppLogger().WithFields(logrus.Fields{
			"user_id": userID.Hex(),
		}).WithError(err).Debug("CheckEligibility: không load được user, trả về mặc định")
		return ineligibleDefault()
	}

	state, _ := NormalizeState(user.Reward, s.now())

	uniqueDays := UniqueDayCount(state.OrderDays)
	status := &rewarddto.RewardStatus{
		Eligible:        state.Eligible,
		UniqueDaysCount: uniqueDays,
		DaysRemaining:   DaysRemaining(uniqueDays),
		Used:            state.Used,
	}
	if state.SelectedProductID != nil {
		status.SelectedProductID = state.SelectedProductID.Hex()
	}
	return status
}

// SelectFreeProduct chọn sản phẩm miễn phí cho claim đang chờ.
// Chỉ thành công khi user đang eligible và chưa used, đảm bảo tối đa một pending claim
func (s *RewardService) SelectFreeProduct(ctx context.Context, userID primitive.ObjectID, productID primitive.ObjectID) (*rewarddto.RewardStatus, error) {
	now := s.now()
	if err := s.normalizeStoredState(ctx, userID, MonthKey(now)); err != nil {
		return nil, err
	}

	// used dùng $ne true để khớp cả document chưa từng materialize cờ này
	result, err := s.Collection().UpdateOne(ctx,
		bson.M{
			"_id":             userID,
			"reward.eligible": true,
			"reward.used":     bson.M{"$ne": true},
		},
		bson.M{"$set": bson.M{
			"reward.selectedProductId": productID,
			"updatedAt":                now.UnixMilli(),
		}},
	)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}

	if result.MatchedCount == 0 {
		// Phân biệt user không tồn tại với user chưa đủ điều kiện
		exists, existsErr := s.DocumentExists(ctx, bson.M{"_id": userID})
		if existsErr != nil {
			return nil, existsErr
		}
		if !exists {
			return nil, common.ErrNotFound
		}
		return nil, common.NewError(
			common.ErrCodeBusinessState,
			"Chưa đủ điều kiện nhận thưởng trong tháng này",
			common.StatusBadRequest,
			nil,
		)
	}

	return s.CheckEligibility(ctx, userID), nil
}
