package service

import (
	"strings"
	"time"

	"github.com/ecofinds/internal/config"
	"github.com/ecofinds/internal/constants"
	"github.com/ecofinds/internal/models"
	"github.com/ecofinds/internal/repository"
)

// UserProfile 个人资料及统计
type UserProfile struct {
	User          *models.User `json:"user"`
	CartItemCount int64        `json:"cartItemCount"`
	PurchaseCount int64        `json:"purchaseCount"`
	ListingCount  int64        `json:"listingCount"`
}

// UpdateProfileInput 更新个人资料，nil 字段保持不变
type UpdateProfileInput struct {
	Username  *string `json:"username" validate:"omitempty,min=3,max=30,username"`
	FirstName *string `json:"firstName" validate:"omitempty,max=50"`
	LastName  *string `json:"lastName" validate:"omitempty,max=50"`
	Bio       *string `json:"bio" validate:"omitempty,max=500"`
	Avatar    *string `json:"avatar" validate:"omitempty,max=500"`
}

// PurchaseHistoryPage 购买记录分页结果
type PurchaseHistoryPage struct {
	Purchases  []models.PurchaseRecord `json:"purchases"`
	Pagination Pagination              `json:"pagination"`
}

// UserService 用户资料服务
type UserService struct {
	cfg          *config.Config
	userRepo     repository.UserRepository
	cartRepo     repository.CartRepository
	purchaseRepo repository.PurchaseRepository
	productRepo  repository.ProductRepository
}

// NewUserService 创建用户资料服务
func NewUserService(cfg *config.Config, userRepo repository.UserRepository, cartRepo repository.CartRepository, purchaseRepo repository.PurchaseRepository, productRepo repository.ProductRepository) *UserService {
	return &UserService{
		cfg:          cfg,
		userRepo:     userRepo,
		cartRepo:     cartRepo,
		purchaseRepo: purchaseRepo,
		productRepo:  productRepo,
	}
}

// GetProfile 获取个人资料
func (s *UserService) GetProfile(userID uint) (*UserProfile, error) {
	user, err := s.getUser(userID)
	if err != nil {
		return nil, err
	}
	cartCount, err := s.cartRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}
	purchaseCount, err := s.purchaseRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}
	_, listingCount, err := s.productRepo.List(repository.ProductListFilter{
		SellerID:   userID,
		OnlyActive: true,
		Page:       1,
		PageSize:   1,
	})
	if err != nil {
		return nil, err
	}
	return &UserProfile{
		User:          user,
		CartItemCount: cartCount,
		PurchaseCount: purchaseCount,
		ListingCount:  listingCount,
	}, nil
}

// UpdateProfile 更新个人资料
func (s *UserService) UpdateProfile(userID uint, input UpdateProfileInput) (*models.User, error) {
	input.Username = trimPtr(input.Username)
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	user, err := s.getUser(userID)
	if err != nil {
		return nil, err
	}

	if input.Username != nil && *input.Username != user.Username {
		exist, err := s.userRepo.GetByUsername(*input.Username)
		if err != nil {
			return nil, err
		}
		if exist != nil && exist.ID != user.ID {
			return nil, ErrUsernameTaken
		}
		user.Username = *input.Username
	}
	if input.FirstName != nil {
		user.FirstName = strings.TrimSpace(*input.FirstName)
	}
	if input.LastName != nil {
		user.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Bio != nil {
		user.Bio = strings.TrimSpace(*input.Bio)
	}
	if input.Avatar != nil {
		user.Avatar = strings.TrimSpace(*input.Avatar)
	}
	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// PurchaseHistory 购买记录，新的在前；价格始终为下单时的快照
func (s *UserService) PurchaseHistory(userID uint, page, pageSize int) (*PurchaseHistoryPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = s.historyPageSize()
	}
	if pageSize > constants.MaxProductPageSize {
		pageSize = constants.MaxProductPageSize
	}
	records, total, err := s.purchaseRepo.ListByUser(repository.PurchaseListFilter{
		UserID:   userID,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].Product != nil {
			records[i].Product.Seller = nil
		}
	}
	return &PurchaseHistoryPage{
		Purchases:  records,
		Pagination: buildPagination(page, pageSize, len(records), total),
	}, nil
}

func (s *UserService) getUser(userID uint) (*models.User, error) {
	if userID == 0 {
		return nil, ErrNotFound
	}
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *UserService) historyPageSize() int {
	if s.cfg != nil && s.cfg.Catalog.PurchaseHistoryPageSize > 0 {
		return s.cfg.Catalog.PurchaseHistoryPageSize
	}
	return 20
}

func trimPtr(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	return &trimmed
}
