package service

import (
	"time"

	"github.com/ecofinds/internal/constants"
	"github.com/ecofinds/internal/logger"
	"github.com/ecofinds/internal/metrics"
	"github.com/ecofinds/internal/models"
	"github.com/ecofinds/internal/repository"
)

// CartLine 购物车行（用于响应），商品价格为实时价格
type CartLine struct {
	ProductID uint            `json:"productId"`
	Quantity  int             `json:"quantity"`
	AddedAt   time.Time       `json:"addedAt"`
	Subtotal  models.Money    `json:"subtotal"`
	Product   *models.Product `json:"product"`
}

// CartView 购物车视图
type CartView struct {
	Items      []CartLine   `json:"cart"`
	TotalItems int          `json:"totalItems"`
	TotalPrice models.Money `json:"totalPrice"`
}

// AddCartItemInput 加购输入
type AddCartItemInput struct {
	ProductID uint `json:"productId" validate:"required"`
	Quantity  *int `json:"quantity" validate:"omitempty,gte=1"` // 缺省为 1
}

// UpdateCartItemInput 修改数量输入
type UpdateCartItemInput struct {
	Quantity int `json:"quantity" validate:"gte=1"`
}

// CartService 购物车服务
type CartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	metrics     *metrics.BusinessMetrics
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository, businessMetrics *metrics.BusinessMetrics) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		metrics:     businessMetrics,
	}
}

// View 获取购物车，跳过已删除、已下架或不可售的商品，不修改存储
func (s *CartService) View(userID uint) (*CartView, error) {
	items, err := s.cartRepo.ListByUser(userID)
	if err != nil {
		return nil, err
	}
	view := &CartView{
		Items:      make([]CartLine, 0, len(items)),
		TotalPrice: models.ZeroMoney(),
	}
	for _, item := range items {
		if !item.Product.IsPurchasable() {
			continue
		}
		subtotal := item.Product.Price.MulInt(item.Quantity)
		view.Items = append(view.Items, CartLine{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			AddedAt:   item.AddedAt,
			Subtotal:  subtotal,
			Product:   item.Product,
		})
		view.TotalItems += item.Quantity
		view.TotalPrice = view.TotalPrice.Add(subtotal)
	}
	return view, nil
}

// Add 加入购物车，已存在的行累加数量，返回是否新建了行
func (s *CartService) Add(userID uint, input AddCartItemInput) (bool, error) {
	if err := validateStruct(input); err != nil {
		s.metrics.CartAdd("rejected")
		return false, err
	}
	quantity := 1
	if input.Quantity != nil {
		quantity = *input.Quantity
	}

	product, err := s.productRepo.GetByID(input.ProductID)
	if err != nil {
		return false, err
	}
	if product == nil || !product.IsActive {
		s.metrics.CartAdd("rejected")
		return false, ErrProductNotFound
	}
	if product.Availability != constants.AvailabilityAvailable {
		s.metrics.CartAdd("rejected")
		return false, ErrProductUnavailable
	}
	if product.IsOwnedBy(userID) {
		s.metrics.CartAdd("rejected")
		return false, ErrSelfReference
	}

	created, err := s.cartRepo.AddQuantity(userID, product.ID, quantity, time.Now())
	if err != nil {
		return false, err
	}
	if created {
		s.metrics.CartAdd("added")
	} else {
		s.metrics.CartAdd("merged")
	}
	logger.Debugw("cart_item_added",
		"user_id", userID,
		"product_id", product.ID,
		"quantity", quantity,
		"created", created,
	)
	return created, nil
}

// UpdateQuantity 将购物车行数量设置为指定值
func (s *CartService) UpdateQuantity(userID, productID uint, input UpdateCartItemInput) error {
	if err := validateStruct(input); err != nil {
		return err
	}
	affected, err := s.cartRepo.SetQuantity(userID, productID, input.Quantity)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}
	return nil
}

// Remove 移除购物车行，不存在时视为成功
func (s *CartService) Remove(userID, productID uint) error {
	return s.cartRepo.DeleteByUserAndProduct(userID, productID)
}

// PruneStale 清理购物车中已失效的行（商品已删除、已下架或已售出）
func (s *CartService) PruneStale() (int64, error) {
	removed, err := s.cartRepo.DeleteStale()
	if err != nil {
		return 0, err
	}
	if removed > 0 {
		logger.Infow("cart_stale_lines_pruned", "removed", removed)
	}
	return removed, nil
}
