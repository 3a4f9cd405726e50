// Package orderhdl - Handler HTTP cho domain orders.
package orderhdl

import (
	"fmt"
	"strconv"

	basehdl "la_patisserie/internal/api/base/handler"
	"la_patisserie/internal/api/middleware"
	orderdto "la_patisserie/internal/api/orders/dto"
	ordersvc "la_patisserie/internal/api/orders/service"
	"la_patisserie/internal/common"
	"la_patisserie/internal/global"
	"la_patisserie/internal/logger"

	"github.com/gofiber/fiber/v3"
)

// OrderHandler xử lý API đặt hàng và tra cứu đơn hàng.
type OrderHandler struct {
	OrderService *ordersvc.OrderService
}

// NewOrderHandler tạo OrderHandler mới.
func NewOrderHandler() (*OrderHandler, error) {
	svc, err := ordersvc.NewOrderService()
	if err != nil {
		return nil, fmt.Errorf("tạo OrderService: %w", err)
	}
	return &OrderHandler{OrderService: svc}, nil
}

// HandlePlaceOrder xử lý POST /orders — đặt đơn hàng mới cho user hiện tại.
func (h *OrderHandler) HandlePlaceOrder(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		user, err := middleware.UserFromContext(c)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		var input orderdto.PlaceOrderInput
		if err := c.Bind().Body(&input); err != nil {
			basehdl.HandleResponse(c, nil, common.ErrInvalidFormat)
			return nil
		}
		if err := global.Validate.Struct(&input); err != nil {
			basehdl.HandleResponse(c, nil, common.NewError(common.ErrCodeValidationInput, common.MsgValidationError, common.StatusBadRequest, err))
			return nil
		}

		result, err := h.OrderService.PlaceOrder(c.Context(), user.ID, &input)
		if err == nil {
			details := map[string]interface{}{
				"order_code": result.Order.Code,
				"total":      result.Order.Total,
			}
			if result.Order.FreeProduct != nil {
				details["free_product_id"] = result.Order.FreeProduct.ProductID.Hex()
			}
			logger.LogAction("order_place", c, details)
		}
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}

// HandleGetMyOrders xử lý GET /orders/me, đơn hàng của user hiện tại, có phân trang.
func (h *OrderHandler) HandleGetMyOrders(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		user, err := middleware.UserFromContext(c)
		if err != nil {
			basehdl.HandleResponse(c, nil, err)
			return nil
		}

		page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
		limit, _ := strconv.ParseInt(c.Query("limit", "20"), 10, 64)
		if page < 1 {
			page = 1
		}
		if limit < 1 || limit > 100 {
			limit = 20
		}

		result, err := h.OrderService.FindOrdersForUser(c.Context(), user.ID, page, limit)
		basehdl.HandleResponse(c, result, err)
		return nil
	})
}
