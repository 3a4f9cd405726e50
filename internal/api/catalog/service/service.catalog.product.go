// Package catalogsvc - service sản phẩm.
package catalogsvc

import (
	"context"
	"fmt"

	basesvc "la_patisserie/internal/api/base/service"
	models "la_patisserie/internal/api/catalog/models"
	"la_patisserie/internal/common"
	"la_patisserie/internal/global"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductService là cấu trúc chứa các phương thức liên quan đến sản phẩm
type ProductService struct {
	*basesvc.BaseServiceMongoImpl[models.Product]
}

// NewProductService tạo mới ProductService
func NewProductService() (*ProductService, error) {
	productCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Products)
	if !exist {
		return nil, fmt.Errorf("failed to get products collection: %v", common.ErrNotFound)
	}

	return &ProductService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[models.Product](productCollection),
	}, nil
}

// FindRewardCatalog trả về danh sách sản phẩm đang bán và được phép chọn làm quà thưởng.
func (s *ProductService) FindRewardCatalog(ctx context.Context) ([]models.Product, error) {
	return s.Find(ctx, bson.M{"eligibleForReward": true, "available": true}, nil)
}

// ValidateRewardProduct kiểm tra sản phẩm tồn tại và hợp lệ để chọn làm quà thưởng.
func (s *ProductService) ValidateRewardProduct(ctx context.Context, productID primitive.ObjectID) (*models.Product, error) {
	product, err := s.FindOneById(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !product.EligibleForReward || !product.Available {
		return nil, common.NewError(common.ErrCodeBusinessState, "Sản phẩm không nằm trong danh mục quà thưởng", common.StatusBadRequest, nil)
	}
	return &product, nil
}
