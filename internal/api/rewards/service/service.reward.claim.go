package rewardsvc

import (
	"context"

	rewardmodels "la_patisserie/internal/api/rewards/models"
	"la_patisserie/internal/common"
	"la_patisserie/internal/logger"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ClaimFreeProduct ghi nhận user đã dùng thưởng của tháng hiện tại.
//
// Toàn bộ transition nằm trong một update duy nhất: clear eligible và
// selectedProductId, set used, append bản ghi claim vào claimHistory.
// orderDays giữ nguyên, cờ used chặn việc eligible lần hai trong tháng.
//
// Idempotent: gọi lần hai trong cùng tháng không khớp filter (eligible đã false,
// selectedProductId đã bị unset) nên là no-op, không trả lỗi. Retry bước claim
// khi đặt hàng không làm hỏng đơn
func (s *RewardService) ClaimFreeProduct(ctx context.Context, userID primitive.ObjectID, productID primitive.ObjectID, productName string, orderReference string) error {
	now := s.now()
	monthKey := MonthKey(now)

	claim := rewardmodels.RewardClaim{
		ProductID:      productID,
		ProductName:    productName,
		ClaimedAt:      now.UnixMilli(),
		Month:          monthKey,
		OrderReference: orderReference,
	}

	result, err := s.Collection().UpdateOne(ctx,
		bson.M{
			"_id": userID,
			"$or": bson.A{
				bson.M{"reward.eligible": true},
				bson.M{"reward.selectedProductId": bson.M{"$exists": true, "$ne": nil}},
			},
		},
		bson.M{
			"$set": bson.M{
				"reward.eligible": false,
				"reward.used":     true,
				"updatedAt":       now.UnixMilli(),
			},
			"$unset": bson.M{"reward.selectedProductId": ""},
			"$push":  bson.M{"reward.claimHistory": claim},
		},
	)
	if err != nil {
		return common.ConvertMongoError(err)
	}

	if result.MatchedCount == 0 {
		exists, existsErr := s.DocumentExists(ctx, bson.M{"_id": userID})
		if existsErr != nil {
			return existsErr
		}
		if !exists {
			return common.ErrNotFound
		}
		// User tồn tại nhưng không có claim đang chờ: no-op
		logger.GetAppLogger().WithFields(logrus.Fields{
			"user_id": userID.Hex(),
			"month":   monthKey,
		}).Debug("ClaimFreeProduct: không có claim đang chờ, bỏ qua")
		return nil
	}

	logger.GetAppLogger().WithFields(logrus.Fields{
		"user_id":         userID.Hex(),
		"product_id":      productID.Hex(),
		"month":           monthKey,
		"order_reference": orderReference,
	}).Info("🎁 Đã ghi nhận claim sản phẩm miễn phí")

	return nil
}

// ClaimHistoryForUser trả về lịch sử claim của một user, entry mới nhất trước.
// month khác rỗng ("YYYY-MM") thì chỉ trả về claim của tháng đó
func (s *RewardService) ClaimHistoryForUser(ctx context.Context, userID primitive.ObjectID, month string) ([]rewardmodels.RewardClaim, error) {
	user, err := s.FindOneById(ctx, userID)
	if err != nil {
		return nil, err
	}

	history := FilterClaimsByMonth(user.Reward.ClaimHistory, month)
	claims := make([]rewardmodels.RewardClaim, len(history))
	for i, c := range history {
		claims[len(claims)-1-i] = c
	}
	return claims, nil
}

// FilterClaimsByMonth giữ lại các claim thuộc month, month rỗng giữ tất cả
func FilterClaimsByMonth(claims []rewardmodels.RewardClaim, month string) []rewardmodels.RewardClaim {
	if month == "" {
		return claims
	}
	filtered := make([]rewardmodels.RewardClaim, 0, len(claims))
	for _, c := range claims {
		if c.Month == month {
			filtered = append(filtered, c)
		}
	}
	return filtered
}
