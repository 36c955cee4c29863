package service

import (
	"context"
	"errors"
	"time"

	"github.com/ecofinds/internal/cache"
	"github.com/ecofinds/internal/constants"
	"github.com/ecofinds/internal/logger"
	"github.com/ecofinds/internal/metrics"
	"github.com/ecofinds/internal/models"
	"github.com/ecofinds/internal/queue"
	"github.com/ecofinds/internal/repository"

	"gorm.io/gorm"
)

// Receipt 结算回执
type Receipt struct {
	PurchasedItems int                     `json:"purchasedItems"`
	TotalAmount    models.Money            `json:"totalAmount"`
	Records        []models.PurchaseRecord `json:"records"`
}

// CheckoutService 结算服务：购物车 -> 购买记录，整单成功或整单拒绝
type CheckoutService struct {
	productRepo  repository.ProductRepository
	cartRepo     repository.CartRepository
	purchaseRepo repository.PurchaseRepository
	queueClient  *queue.Client
	metrics      *metrics.BusinessMetrics
}

// NewCheckoutService 创建结算服务
func NewCheckoutService(
	productRepo repository.ProductRepository,
	cartRepo repository.CartRepository,
	purchaseRepo repository.PurchaseRepository,
	queueClient *queue.Client,
	businessMetrics *metrics.BusinessMetrics,
) *CheckoutService {
	return &CheckoutService{
		productRepo:  productRepo,
		cartRepo:     cartRepo,
		purchaseRepo: purchaseRepo,
		queueClient:  queueClient,
		metrics:      businessMetrics,
	}
}

// Checkout 在单个事务内完成校验、条件售出、写购买记录与清空购物车
func (s *CheckoutService) Checkout(userID uint) (*Receipt, error) {
	var receipt *Receipt
	err := s.productRepo.Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		productRepo := s.productRepo.WithTx(tx)
		purchaseRepo := s.purchaseRepo.WithTx(tx)

		items, err := cartRepo.ListByUser(userID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrEmptyCart
		}

		unavailable := make([]UnavailableItem, 0)
		for _, item := range items {
			if reason := unavailableReason(item.Product); reason != "" {
				unavailable = append(unavailable, newUnavailableItem(item, reason))
			}
		}
		if len(unavailable) > 0 {
			return &ItemsUnavailableError{Items: unavailable}
		}

		purchasedAt := time.Now()
		records := make([]models.PurchaseRecord, 0, len(items))
		total := models.ZeroMoney()
		for _, item := range items {
			record := models.PurchaseRecord{
				UserID:      userID,
				ProductID:   item.ProductID,
				Title:       item.Product.Title,
				Quantity:    item.Quantity,
				Price:       item.Product.Price,
				PurchasedAt: purchasedAt,
			}
			records = append(records, record)
			total = total.Add(record.Subtotal())
		}

		// 条件写失败说明商品已被其他买家抢先售出，整单回滚
		for _, item := range items {
			affected, err := productRepo.MarkSoldIfAvailable(item.ProductID)
			if err != nil {
				return err
			}
			if affected == 0 {
				unavailable = append(unavailable, newUnavailableItem(item, UnavailableReasonSold))
			}
		}
		if len(unavailable) > 0 {
			return &ItemsUnavailableError{Items: unavailable}
		}

		if err := purchaseRepo.CreateBatch(records); err != nil {
			return err
		}
		if err := cartRepo.ClearByUser(userID); err != nil {
			return err
		}

		receipt = &Receipt{
			PurchasedItems: len(records),
			TotalAmount:    total,
			Records:        records,
		}
		return nil
	})
	if err != nil {
		s.recordRejection(userID, err)
		return nil, err
	}

	s.metrics.CheckoutCompleted(receipt.TotalAmount.InexactFloat64(), receipt.PurchasedItems)
	logger.Infow("checkout_completed",
		"user_id", userID,
		"items", receipt.PurchasedItems,
		"total_amount", receipt.TotalAmount.String(),
	)
	s.afterCommit(userID, receipt)
	return receipt, nil
}

func (s *CheckoutService) recordRejection(userID uint, err error) {
	switch {
	case errors.Is(err, ErrEmptyCart):
		s.metrics.CheckoutRejected("empty_cart")
	case errors.Is(err, ErrItemsUnavailable):
		s.metrics.CheckoutRejected("items_unavailable")
		logger.Infow("checkout_rejected_items_unavailable", "user_id", userID, "error", err)
	default:
		s.metrics.CheckoutRejected("error")
		logger.Errorw("checkout_failed", "user_id", userID, "error", err)
	}
}

// afterCommit 提交后的收尾工作（缓存清理），失败不影响结算结果
func (s *CheckoutService) afterCommit(userID uint, receipt *Receipt) {
	productIDs := make([]uint, 0, len(receipt.Records))
	for _, record := range receipt.Records {
		productIDs = append(productIDs, record.ProductID)
	}

	if s.queueClient.Enabled() {
		payload := queue.PurchaseCompletedPayload{
			UserID:      userID,
			ProductIDs:  productIDs,
			TotalAmount: receipt.TotalAmount.String(),
		}
		if len(receipt.Records) > 0 {
			payload.PurchasedAt = receipt.Records[0].PurchasedAt
		}
		err := s.queueClient.EnqueuePurchaseCompleted(payload)
		if err == nil {
			return
		}
		logger.Warnw("checkout_enqueue_completed_failed", "user_id", userID, "error", err)
	}
	if err := cache.InvalidateProducts(context.Background(), productIDs...); err != nil {
		logger.Warnw("checkout_cache_invalidate_failed", "user_id", userID, "error", err)
	}
}

func unavailableReason(product *models.Product) string {
	switch {
	case product == nil || product.ID == 0:
		return UnavailableReasonMissing
	case !product.IsActive:
		return UnavailableReasonInactive
	case product.Availability == constants.AvailabilitySold:
		return UnavailableReasonSold
	case product.Availability != constants.AvailabilityAvailable:
		return UnavailableReasonReserved
	default:
		return ""
	}
}

func newUnavailableItem(item models.CartItem, reason string) UnavailableItem {
	unavailable := UnavailableItem{ProductID: item.ProductID, Reason: reason}
	if item.Product != nil {
		unavailable.Title = item.Product.Title
	}
	return unavailable
}
