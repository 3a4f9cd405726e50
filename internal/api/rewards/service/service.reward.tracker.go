package rewardsvc

import (
	"context"
	"time"

	rewarddto "la_patisserie/internal/api/rewards/dto"
	rewardmodels "la_patisserie/internal/api/rewards/models"
	"la_patisserie/internal/common"
	"la_patisserie/internal/logger"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RecordOrder ghi nhận user có đơn hàng trong ngày hiện tại và tính lại điều kiện thưởng.
//
// Mọi bước ghi đều là conditional update trên document user, hai đơn hàng đặt
// cùng lúc không thể tạo hai entry cho cùng một ngày hay kích hoạt eligible hai lần:
//  1. Prune các entry orderDays không thuộc tháng hiện tại ($pull theo dayKey)
//  2. Rollover: lastRewardMonth thuộc tháng cũ thì clear cờ của tháng cũ
//  3. Self-heal: eligible nhưng số ngày dưới ngưỡng thì clear eligible
//  4. Thêm entry ngày hôm nay nếu chưa có (filter dayKey $ne + $push)
//  5. Chuyển eligible = true khi đủ ngưỡng, chỉ khi cờ đang là false và chưa used
func (s *RewardService) RecordOrder(ctx context.Context, userID primitive.ObjectID) (*rewarddto.RewardProgress, error) {
	now := s.now()
	monthKey := MonthKey(now)
	dayKey := DayKey(now)

	// Load để phân biệt NotFoundError với "điều kiện update không khớp"
	if _, err := s.FindOneById(ctx, userID); err != nil {
		return nil, err
	}

	if err := s.normalizeStoredState(ctx, userID, monthKey); err != nil {
		return nil, err
	}

	// Thêm entry ngày hôm nay nếu chưa có. Filter dayKey $ne làm bước này atomic:
	// hai request cùng ngày thì chỉ một request push được entry
	coll := s.Collection()
	day := NewOrderDay(now)
	_, err := coll.UpdateOne(ctx,
		bson.M{"_id": userID, "reward.orderDays.dayKey": bson.M{"$ne": dayKey}},
		bson.M{
			"$push": bson.M{"reward.orderDays": day},
			"$set":  bson.M{"updatedAt": now.UnixMilli()},
		},
	)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}

	// Chuyển eligible khi đủ ngưỡng. Điều kiện hai cờ trong filter đảm bảo
	// transition chỉ xảy ra một lần mỗi tháng
	_, err = coll.UpdateOne(ctx,
		promotionFilter(userID),
		bson.M{"$set": bson.M{
			"reward.eligible":        true,
			"reward.used":            false,
			"reward.lastRewardMonth": monthKey,
			"updatedAt":              now.UnixMilli(),
		}},
	)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}

	// Đọc lại trạng thái sau khi ghi để trả về tiến độ
	user, err := s.FindOneById(ctx, userID)
	if err != nil {
		return nil, err
	}

	uniqueDays := UniqueDayCount(user.Reward.OrderDays)
	progress := &rewarddto.RewardProgress{
		UniqueDays:    uniqueDays,
		Eligible:      user.Reward.Eligible,
		DaysRemaining: DaysRemaining(uniqueDays),
	}

	logger.GetAppLogger().WithFields(logrus.Fields{
		"user_id":     userID.Hex(),
		"day_key":     dayKey,
		"unique_days": uniqueDays,
		"eligible":    progress.Eligible,
	}).Debug("🧾 Đã ghi nhận ngày đặt hàng")

	return progress, nil
}

// promotionFilter là điều kiện chuyển eligible khi đủ ngưỡng, bản thuần là
// ShouldPromoteEligible. Hai cờ dùng $ne true thay vì so sánh bằng false:
// user mới provision qua đăng nhập Firebase chưa có subdocument reward,
// và equality trên false không khớp field còn thiếu
func promotionFilter(userID primitive.ObjectID) bson.M {
	return bson.M{
		"_id":             userID,
		"reward.eligible": bson.M{"$ne": true},
		"reward.used":     bson.M{"$ne": true},
		"$expr": bson.M{"$gte": bson.A{
			bson.M{"$size": bson.M{"$ifNull": bson.A{"$reward.orderDays", bson.A{}}}},
			rewardmodels.EligibilityThreshold,
		}},
	}
}

// normalizeStoredState áp dụng prune, rollover và self-heal trực tiếp trên document.
// Mỗi bước là một conditional update riêng, không khớp điều kiện thì không làm gì (idempotent)
func (s *RewardService) normalizeStoredState(ctx context.Context, userID primitive.ObjectID, monthKey string) error {
	coll := s.Collection()
	nowMs := s.now().UnixMilli()

	// Prune entry không thuộc tháng hiện tại. dayKey luôn bắt đầu bằng monthKey
	// nên chỉ cần một điều kiện regex thay vì so sánh cặp (month, year)
	_, err := coll.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{
			"$pull": bson.M{"reward.orderDays": bson.M{
				"dayKey": bson.M{"$not": primitive.Regex{Pattern: "^" + monthKey}},
			}},
			"$set": bson.M{"updatedAt": nowMs},
		},
	)
	if err != nil {
		return common.ConvertMongoError(err)
	}

	// Rollover: lastRewardMonth đã thuộc tháng cũ
	_, err = coll.UpdateOne(ctx,
		bson.M{
			"_id": userID,
			"reward.lastRewardMonth": bson.M{
				"$exists": true,
				"$nin":    bson.A{monthKey, ""},
			},
		},
		bson.M{
			"$set": bson.M{
				"reward.eligible": false,
				"reward.used":     false,
				"updatedAt":       nowMs,
			},
			"$unset": bson.M{
				"reward.selectedProductId": "",
				"reward.lastRewardMonth":   "",
			},
		},
	)
	if err != nil {
		return common.ConvertMongoError(err)
	}

	// Self-heal: eligible nhưng số ngày (sau prune) dưới ngưỡng và chưa used
	_, err = coll.UpdateOne(ctx,
		bson.M{
			"_id":             userID,
			"reward.eligible": true,
			"reward.used":     false,
			"$expr": bson.M{"$lt": bson.A{
				bson.M{"$size": bson.M{"$ifNull": bson.A{"$reward.orderDays", bson.A{}}}},
				rewardmodels.EligibilityThreshold,
			}},
		},
		bson.M{
			"$set":   bson.M{"reward.eligible": false, "updatedAt": nowMs},
			"$unset": bson.M{"reward.selectedProductId": ""},
		},
	)
	if err != nil {
		return common.ConvertMongoError(err)
	}

	return nil
}

// Now trả về thời điểm hiện tại theo đồng hồ của service
func (s *RewardService) Now() time.Time {
	return s.now()
}
