// Package dto - input/output cho domain orders.
package dto

import orderm "la_patisserie/internal/api/orders/models"

// OrderItemInput là một dòng sản phẩm khách chọn khi đặt hàng.
// Giá không nhận từ client, service tự chốt theo catalog
type OrderItemInput struct {
	ProductID string `json:"productId" validate:"required,object_id"`
	Quantity  int64  `json:"quantity" validate:"required,gt=0,lte=100"`
}

// PlaceOrderInput là dữ liệu đặt hàng.
// FreeProductID (tùy chọn) là sản phẩm miễn phí muốn nhận kèm đơn,
// chỉ hợp lệ khi user đã đủ điều kiện thưởng tháng.
type PlaceOrderInput struct {
	Items         []OrderItemInput `json:"items" validate:"required,min=1,max=50,dive"`
	FreeProductID string           `json:"freeProductId,omitempty" validate:"omitempty,object_id"`
	Note          string           `json:"note,omitempty" validate:"omitempty,max=500,no_xss"`
}

// PlaceOrderResult là kết quả đặt hàng trả về cho client.
// RewardProgress cho biết tiến độ thưởng tháng sau đơn này (nil nếu ghi nhận thất bại,
// đơn hàng vẫn thành công)
type PlaceOrderResult struct {
	Order          *orderm.Order   `json:"order"`
	RewardProgress *RewardSnapshot `json:"rewardProgress,omitempty"`
}

// RewardSnapshot là ảnh chụp tiến độ thưởng đính kèm kết quả đặt hàng.
type RewardSnapshot struct {
	UniqueDays    int  `json:"uniqueDays"`
	Eligible      bool `json:"eligible"`
	DaysRemaining int  `json:"daysRemaining"`
}
