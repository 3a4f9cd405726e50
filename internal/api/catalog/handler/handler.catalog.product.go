// Package cataloghdl - Handler HTTP cho domain catalog.
package cataloghdl

import (
	"fmt"

	basehdl "la_patisserie/internal/api/base/handler"
	catalogdto "la_patisserie/internal/api/catalog/dto"
	catalogmodels "la_patisserie/internal/api/catalog/models"
	catalogsvc "la_patisserie/internal/api/catalog/service"

	"github.com/gofiber/fiber/v3"
)

// ProductHandler xử lý các API quản lý sản phẩm.
// CRUD cơ bản kế thừa từ BaseHandler, bổ sung endpoint danh mục quà thưởng.
type ProductHandler struct {
	*basehdl.BaseHandler[catalogmodels.Product, catalogdto.ProductCreateInput, catalogdto.ProductUpdateInput]
	ProductService *catalogsvc.ProductService
}

// NewProductHandler tạo ProductHandler mới.
func NewProductHandler() (*ProductHandler, error) {
	svc, err := catalogsvc.NewProductService()
	if err != nil {
		return nil, fmt.Errorf("tạo ProductService: %w", err)
	}

	return &ProductHandler{
		BaseHandler:    basehdl.NewBaseHandler[catalogmodels.Product, catalogdto.ProductCreateInput, catalogdto.ProductUpdateInput](svc),
		ProductService: svc,
	}, nil
}

// HandleGetRewardCatalog xử lý GET /products/reward-catalog.
// Trả về các sản phẩm đang bán và được phép chọn làm quà thưởng tháng.
func (h *ProductHandler) HandleGetRewardCatalog(c fiber.Ctx) error {
	return basehdl.SafeHandlerWrapper(c, func() error {
		products, err := h.ProductService.FindRewardCatalog(c.Context())
		basehdl.HandleResponse(c, products, err)
		return nil
	})
}
