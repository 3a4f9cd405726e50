// Package ordersvc - service đặt hàng, nối catalog với engine thưởng tháng.
package ordersvc

import (
	"context"
	"fmt"
	"strings"

	basemodels "la_patisserie/internal/api/base/models"
	basesvc "la_patisserie/internal/api/base/service"
	catalogsvc "la_patisserie/internal/api/catalog/service"
	"la_patisserie/internal/common"
	"la_patisserie/internal/global"
	"la_patisserie/internal/logger"

	orderdto "la_patisserie/internal/api/orders/dto"
	orderm "la_patisserie/internal/api/orders/models"
	rewardsvc "la_patisserie/internal/api/rewards/service"

	"github.com/sirupsen/logrus"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// OrderService là cấu trúc chứa các phương thức liên quan đến đơn hàng
type OrderService struct {
	*basesvc.BaseServiceMongoImpl[orderm.Order]
	ProductService *catalogsvc.ProductService
	RewardService  *rewardsvc.RewardService
}

// NewOrderService tạo mới OrderService
func NewOrderService() (*OrderService, error) {
	orderCollection, exist := global.RegistryCollections.Get(global.MongoDB_ColNames.Orders)
	if !exist {
		return nil, fmt.Errorf("failed to get orders collection: %v", common.ErrNotFound)
	}

	productService, err := catalogsvc.NewProductService()
	if err != nil {
		return nil, fmt.Errorf("tạo ProductService: %w", err)
	}

	rewardService, err := rewardsvc.NewRewardService()
	if err != nil {
		return nil, fmt.Errorf("tạo RewardService: %w", err)
	}

	return &OrderService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[orderm.Order](orderCollection),
		ProductService:       productService,
		RewardService:        rewardService,
	}, nil
}

// buildOrderCode sinh mã đơn hàng ngắn, dễ đọc từ ObjectID.
func buildOrderCode(id primitive.ObjectID) string {
	return "LP-" + strings.ToUpper(id.Hex()[16:])
}

// PlaceOrder đặt đơn hàng mới cho user.
// Giá từng dòng được chốt theo catalog tại thời điểm đặt. Sau khi lưu đơn,
// ngày đặt được ghi nhận vào tiến độ thưởng tháng (best-effort, lỗi ghi nhận
// không làm hỏng đơn hàng).
func (s *OrderService) PlaceOrder(ctx context.Context, userID primitive.ObjectID, input *orderdto.PlaceOrderInput) (*orderdto.PlaceOrderResult, error) {
	order := orderm.Order{
		ID:     primitive.NewObjectID(),
		UserID: userID,
		Note:   input.Note,
	}
	order.Code = buildOrderCode(order.ID)

	var subtotal int64
	for _, item := range input.Items {
		productID, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			return nil, common.ErrInvalidInput
		}

		product, err := s.ProductService.FindOneById(ctx, productID)
		if err != nil {
			return nil, common.NewError(common.ErrCodeBusinessState,
				fmt.Sprintf("Sản phẩm %s không tồn tại", item.ProductID), common.StatusBadRequest, err)
		}
		if !product.Available {
			return nil, common.NewError(common.ErrCodeBusinessState,
				fmt.Sprintf("Sản phẩm %s hiện không bán", product.Name), common.StatusBadRequest, nil)
		}

		lineTotal := product.Price * item.Quantity
		order.Items = append(order.Items, orderm.OrderItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.Price,
			Quantity:    item.Quantity,
			LineTotal:   lineTotal,
		})
		subtotal += lineTotal
	}
	order.Subtotal = subtotal
	order.Total = subtotal

	// Sản phẩm miễn phí: claim TRƯỚC khi lưu đơn để không phát quà hai lần
	// khi cùng lúc có hai đơn kèm quà của cùng một user
	if input.FreeProductID != "" {
		freeProductID, err := primitive.ObjectIDFromHex(input.FreeProductID)
		if err != nil {
			return nil, common.ErrInvalidInput
		}

		freeProduct, err := s.ProductService.ValidateRewardProduct(ctx, freeProductID)
		if err != nil {
			return nil, err
		}

		status := s.RewardService.CheckEligibility(ctx, userID)
		if !status.Eligible {
			return nil, common.NewError(common.ErrCodeBusinessState,
				"Chưa đủ điều kiện nhận sản phẩm miễn phí trong tháng này", common.StatusBadRequest, nil)
		}

		if err := s.RewardService.ClaimFreeProduct(ctx, userID, freeProduct.ID, freeProduct.Name, order.Code); err != nil {
			return nil, err
		}

		order.FreeProduct = &orderm.OrderFreeProduct{
			ProductID:   freeProduct.ID,
			ProductName: freeProduct.Name,
		}
	}

	inserted, err := s.InsertOne(ctx, order)
	if err != nil {
		logger.GetErrorLogger().WithFields(logrus.Fields{
			"user_id":    userID.Hex(),
			"order_code": order.Code,
			"error":      err.Error(),
		}).Error("⚠️ PlaceOrder: Lưu đơn hàng thất bại sau khi claim quà")
		return nil, err
	}

	result := &orderdto.PlaceOrderResult{Order: &inserted}

	// Ghi nhận ngày đặt hàng vào tiến độ thưởng, lỗi chỉ log
	progress, err := s.RewardService.RecordOrder(ctx, userID)
	if err != nil {
		logger.GetErrorLogger().WithFields(logrus.Fields{
			"user_id":    userID.Hex(),
			"order_code": inserted.Code,
			"error":      err.Error(),
		}).Warn("⚠️ PlaceOrder: Ghi nhận tiến độ thưởng thất bại, đơn hàng vẫn hợp lệ")
	} else {
		result.RewardProgress = &orderdto.RewardSnapshot{
			UniqueDays:    progress.UniqueDays,
			Eligible:      progress.Eligible,
			DaysRemaining: progress.DaysRemaining,
		}
	}

	return result, nil
}

// FindOrdersForUser trả về đơn hàng của một user, mới nhất trước.
func (s *OrderService) FindOrdersForUser(ctx context.Context, userID primitive.ObjectID, page, limit int64) (*basemodels.PaginateResult[orderm.Order], error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	return s.FindWithPagination(ctx, bson.M{"userId": userID}, page, limit, opts)
}
