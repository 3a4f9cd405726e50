// Package dto - input/output cho domain catalog.
package dto

// ProductCreateInput là dữ liệu tạo sản phẩm mới.
type ProductCreateInput struct {
	Name              string `json:"name" bson:"name" validate:"required,max=200,no_xss"`
	Slug              string `json:"slug" bson:"slug" validate:"required,max=200,lowercase"`
	Description       string `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=2000,no_xss"`
	Category          string `json:"category" bson:"category" validate:"required,oneof=cake pastry bread drink other"`
	Price             int64  `json:"price" bson:"price" validate:"required,gt=0"`
	ImageURL          string `json:"imageUrl,omitempty" bson:"imageUrl,omitempty" validate:"omitempty,url"`
	EligibleForReward bool   `json:"eligibleForReward" bson:"eligibleForReward"`
	Available         bool   `json:"available" bson:"available"`
}

// ProductUpdateInput là dữ liệu cập nhật sản phẩm, mọi field đều tùy chọn.
type ProductUpdateInput struct {
	Name              *string `json:"name,omitempty" bson:"name,omitempty" validate:"omitempty,max=200,no_xss"`
	Description       *string `json:"description,omitempty" bson:"description,omitempty" validate:"omitempty,max=2000,no_xss"`
	Category          *string `json:"category,omitempty" bson:"category,omitempty" validate:"omitempty,oneof=cake pastry bread drink other"`
	Price             *int64  `json:"price,omitempty" bson:"price,omitempty" validate:"omitempty,gt=0"`
	ImageURL          *string `json:"imageUrl,omitempty" bson:"imageUrl,omitempty" validate:"omitempty,url"`
	EligibleForReward *bool   `json:"eligibleForReward,omitempty" bson:"eligibleForReward,omitempty"`
	Available         *bool   `json:"available,omitempty" bson:"available,omitempty"`
}
