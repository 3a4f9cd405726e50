// Package rewardsvc - Test điều kiện update của đường ghi nhận ngày đặt hàng.
package rewardsvc

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestPromotionFilter_MatchesMissingRewardFlags(t *testing.T) {
	// User provision qua Firebase chỉ có các field scalar, không có subdocument reward.
	// Equality trên false không khớp field còn thiếu trong MongoDB nên hai cờ phải
	// dùng dạng $ne true, nếu không transition không bao giờ xảy ra cho user mới
	filter := promotionFilter(primitive.NewObjectID())

	wantFlag := bson.M{"$ne": true}
	if got := filter["reward.eligible"]; !reflect.DeepEqual(got, wantFlag) {
		t.Errorf("Điều kiện reward.eligible phải là %v để khớp field còn thiếu, nhận %v", wantFlag, got)
	}
	if got := filter["reward.used"]; !reflect.DeepEqual(got, wantFlag) {
		t.Errorf("Điều kiện reward.used phải là %v để khớp field còn thiếu, nhận %v", wantFlag, got)
	}
}

func TestPromotionFilter_ThresholdToleratesMissingOrderDays(t *testing.T) {
	// $size trên field còn thiếu là lỗi aggregation, điều kiện ngưỡng phải bọc $ifNull
	filter := promotionFilter(primitive.NewObjectID())

	expr, ok := filter["$expr"].(bson.M)
	if !ok {
		t.Fatal("Filter phải có điều kiện $expr cho ngưỡng số ngày")
	}
	args, ok := expr["$gte"].(bson.A)
	if !ok || len(args) != 2 {
		t.Fatal("Điều kiện ngưỡng phải là $gte với 2 toán hạng")
	}
	sizeOf, ok := args[0].(bson.M)
	if !ok {
		t.Fatal("Toán hạng đầu phải là $size")
	}
	inner, ok := sizeOf["$size"].(bson.M)
	if !ok {
		t.Fatal("$size phải nhận một biểu thức, không phải đường dẫn field trực tiếp")
	}
	if _, ok := inner["$ifNull"]; !ok {
		t.Error("$size phải bọc $ifNull để chịu được orderDays còn thiếu")
	}
}
