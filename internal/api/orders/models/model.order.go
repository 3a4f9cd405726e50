// Package models - model đơn hàng.
package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// OrderItem là một dòng sản phẩm trong đơn hàng.
// UnitPrice được chốt tại thời điểm đặt hàng, không đọc lại từ catalog.
type OrderItem struct {
	ProductID   primitive.ObjectID `json:"productId" bson:"productId"`
	ProductName string             `json:"productName" bson:"productName"`
	UnitPrice   int64              `json:"unitPrice" bson:"unitPrice"`
	Quantity    int64              `json:"quantity" bson:"quantity"`
	LineTotal   int64              `json:"lineTotal" bson:"lineTotal"`
}

// OrderFreeProduct là sản phẩm miễn phí được nhận kèm đơn hàng (giá 0).
type OrderFreeProduct struct {
	ProductID   primitive.ObjectID `json:"productId" bson:"productId"`
	ProductName string             `json:"productName" bson:"productName"`
}

// Order đại diện cho một đơn hàng của khách.
type Order struct {
	ID          primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Code        string             `json:"code" bson:"code" index:"unique"`
	UserID      primitive.ObjectID `json:"userId" bson:"userId" index:"compound:user_created"`
	Items       []OrderItem        `json:"items" bson:"items"`
	FreeProduct *OrderFreeProduct  `json:"freeProduct,omitempty" bson:"freeProduct,omitempty"`
	Subtotal    int64              `json:"subtotal" bson:"subtotal"`
	Total       int64              `json:"total" bson:"total"`
	Note        string             `json:"note,omitempty" bson:"note,omitempty"`
	CreatedAt   int64              `json:"createdAt" bson:"createdAt" index:"compound:user_created"`
	UpdatedAt   int64              `json:"updatedAt" bson:"updatedAt"`
}
