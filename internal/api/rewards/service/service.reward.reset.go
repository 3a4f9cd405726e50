package rewardsvc

import (
	"context"

	rewarddto "la_patisserie/internal/api/rewards/dto"
	"la_patisserie/internal/common"
	"la_patisserie/internal/logger"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ResetAllUsersForNewMonth clear trạng thái thưởng của tháng cũ cho toàn bộ user.
//
// Batch này tồn tại để bắt các user không đặt đơn nào trong tháng mới (và do đó
// không bao giờ đi qua rollover inline của RecordOrder). An toàn khi chạy nhiều
// lần trong ngày: cả hai update đều có điều kiện, tháng hiện tại không bị đụng tới.
// claimHistory không bị xóa, retention là job riêng (PruneClaimHistory)
func (s *RewardService) ResetAllUsersForNewMonth(ctx context.Context) (*rewarddto.ResetResult, error) {
	now := s.now()
	monthKey := MonthKey(now)
	coll := s.Collection()

	// Clear cờ eligible/used/selectedProductId/lastRewardMonth của user còn kẹt tháng cũ
	resetResult, err := coll.UpdateMany(ctx,
		bson.M{"reward.lastRewardMonth": bson.M{
			"$exists": true,
			"$nin":    bson.A{monthKey, ""},
		}},
		bson.M{
			"$set": bson.M{
				"reward.eligible": false,
				"reward.used":     false,
				"updatedAt":       now.UnixMilli(),
			},
			"$unset": bson.M{
				"reward.selectedProductId": "",
				"reward.lastRewardMonth":   "",
			},
		},
	)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}

	// Prune orderDays còn chứa entry tháng cũ
	cleanResult, err := coll.UpdateMany(ctx,
		bson.M{"reward.orderDays": bson.M{"$elemMatch": bson.M{
			"dayKey": bson.M{"$not": primitive.Regex{Pattern: "^" + monthKey}},
		}}},
		bson.M{
			"$pull": bson.M{"reward.orderDays": bson.M{
				"dayKey": bson.M{"$not": primitive.Regex{Pattern: "^" + monthKey}},
			}},
			"$set": bson.M{"updatedAt": now.UnixMilli()},
		},
	)
	if err != nil {
		return nil, common.ConvertMongoError(err)
	}

	result := &rewarddto.ResetResult{
		UsersReset:   resetResult.ModifiedCount,
		UsersCleaned: cleanResult.ModifiedCount,
	}

	logger.GetAppLogger().WithFields(logrus.Fields{
		"month":         monthKey,
		"users_reset":   result.UsersReset,
		"users_cleaned": result.UsersCleaned,
	}).Info("🔄 Đã reset trạng thái thưởng đầu tháng")

	return result, nil
}

// PruneClaimHistory xóa các bản ghi claim của những tháng trước tháng hiện tại.
// Đây là job retention riêng, không chạy trong rollover
func (s *RewardService) PruneClaimHistory(ctx context.Context) (int64, error) {
	now := s.now()
	monthKey := MonthKey(now)

	// Khóa tháng "YYYY-MM" so sánh chuỗi đúng theo thứ tự thời gian
	result, err := s.Collection().UpdateMany(ctx,
		bson.M{"reward.claimHistory": bson.M{"$elemMatch": bson.M{
			"month": bson.M{"$lt": monthKey},
		}}},
		bson.M{
			"$pull": bson.M{"reward.claimHistory": bson.M{
				"month": bson.M{"$lt": monthKey},
			}},
			"$set": bson.M{"updatedAt": now.UnixMilli()},
		},
	)
	if err != nil {
		return 0, common.ConvertMongoError(err)
	}

	logger.GetAppLogger().WithFields(logrus.Fields{
		"month":        monthKey,
		"users_pruned": result.ModifiedCount,
	}).Info("🧹 Đã dọn lịch sử claim các tháng cũ")

	return result.ModifiedCount, nil
}

// StatusSummary thống kê số user theo trạng thái thưởng trong tháng hiện tại (admin).
// Phải chịu được trạng thái chưa self-heal, số liệu là eventually-consistent
func (s *RewardService) StatusSummary(ctx context.Context) (*rewarddto.RewardSummary, error) {
	pipeline := []bson.M{
		{"$project": bson.M{
			"status": bson.M{"$switch": bson.M{
				"branches": bson.A{
					bson.M{"case": bson.M{"$eq": bson.A{"$reward.used", true}}, "then": "used"},
					bson.M{"case": bson.M{"$eq": bson.A{"$reward.eligible", true}}, "then": "eligible"},
					bson.M{"case": bson.M{"$gt": bson.A{
						bson.M{"$size": bson.M{"$ifNull": bson.A{"$reward.orderDays", bson.A{}}}},
						0,
					}}, "then": "inProgress"},
				},
				"default": "noOrders",
			}},
		}},
		{"$group": bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}},
	}

	rows, err := s.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}

	summary := &rewarddto.RewardSummary{}
	for _, row := range rows {
		count := int64(0)
		switch v := row["count"].(type) {
		case int32:
			count = int64(v)
		case int64:
			count = v
		}
		switch row["_id"] {
		case "eligible":
			summary.Eligible = count
		case "used":
			summary.Used = count
		case "inProgress":
			summary.InProgress = count
		case "noOrders":
			summary.NoOrders = count
		}
		summary.TotalUsers += count
	}

	return summary, nil
}
