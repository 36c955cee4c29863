package service

import (
	"context"
	"strings"
	"time"

	"github.com/ecofinds/internal/cache"
	"github.com/ecofinds/internal/config"
	"github.com/ecofinds/internal/constants"
	"github.com/ecofinds/internal/logger"
	"github.com/ecofinds/internal/metrics"
	"github.com/ecofinds/internal/models"
	"github.com/ecofinds/internal/queue"
	"github.com/ecofinds/internal/repository"

	"github.com/shopspring/decimal"
)

// ProductListQuery 商品列表查询参数
type ProductListQuery struct {
	Category     string
	Search       string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	Condition    string
	Availability string
	Page         int
	Limit        int
	SortBy       string
	SortOrder    string
}

// Pagination 列表分页信息
type Pagination struct {
	CurrentPage   int   `json:"currentPage"`
	TotalPages    int   `json:"totalPages"`
	TotalProducts int64 `json:"totalProducts"`
	HasNext       bool  `json:"hasNext"`
	HasPrev       bool  `json:"hasPrev"`
}

// ProductImageInput 商品图片输入
type ProductImageInput struct {
	URL string `json:"url" validate:"required,max=500"`
	Alt string `json:"alt" validate:"max=200"`
}

// LocationInput 所在地输入
type LocationInput struct {
	City    string `json:"city" validate:"max=100"`
	State   string `json:"state" validate:"max=100"`
	Country string `json:"country" validate:"max=100"`
}

// CreateProductInput 发布商品输入
type CreateProductInput struct {
	Title       string              `json:"title" validate:"required,max=100"`
	Description string              `json:"description" validate:"required,max=1000"`
	Category    string              `json:"category" validate:"required,category"`
	Price       *models.Money       `json:"price" validate:"required"`
	Condition   string              `json:"condition" validate:"omitempty,condition"`
	Images      []ProductImageInput `json:"images" validate:"omitempty,max=10,dive"`
	Tags        []string            `json:"tags" validate:"omitempty,max=20,dive,max=30"`
	Location    *LocationInput      `json:"location"`
}

// UpdateProductInput 编辑商品输入，nil 字段保持不变
type UpdateProductInput struct {
	Title        *string              `json:"title" validate:"omitempty,min=1,max=100"`
	Description  *string              `json:"description" validate:"omitempty,min=1,max=1000"`
	Category     *string              `json:"category" validate:"omitempty,category"`
	Price        *models.Money        `json:"price"`
	Condition    *string              `json:"condition" validate:"omitempty,condition"`
	Availability *string              `json:"availability" validate:"omitempty,availability"`
	Images       *[]ProductImageInput `json:"images" validate:"omitempty,max=10,dive"`
	Tags         *[]string            `json:"tags" validate:"omitempty,max=20,dive,max=30"`
	Location     *LocationInput       `json:"location"`
}

// ProductService 商品服务
type ProductService struct {
	cfg         *config.Config
	productRepo repository.ProductRepository
	queueClient *queue.Client
	metrics     *metrics.BusinessMetrics
}

// NewProductService 创建商品服务
func NewProductService(cfg *config.Config, productRepo repository.ProductRepository, queueClient *queue.Client, businessMetrics *metrics.BusinessMetrics) *ProductService {
	return &ProductService{
		cfg:         cfg,
		productRepo: productRepo,
		queueClient: queueClient,
		metrics:     businessMetrics,
	}
}

// Categories 固定分类列表
func (s *ProductService) Categories() []string {
	categories := make([]string, len(constants.ProductCategories))
	copy(categories, constants.ProductCategories)
	return categories
}

// ListPublic 公开商品列表，仅返回上架商品，售卖状态默认 Available
func (s *ProductService) ListPublic(query ProductListQuery) ([]models.Product, Pagination, error) {
	page, limit := s.normalizePage(query.Page, query.Limit)
	availability := strings.TrimSpace(query.Availability)
	if availability == "" {
		availability = constants.AvailabilityAvailable
	}

	products, total, err := s.productRepo.List(repository.ProductListFilter{
		Page:         page,
		PageSize:     limit,
		Category:     query.Category,
		Search:       query.Search,
		MinPrice:     query.MinPrice,
		MaxPrice:     query.MaxPrice,
		Condition:    query.Condition,
		Availability: availability,
		OnlyActive:   true,
		WithSeller:   true,
		SortBy:       query.SortBy,
		SortOrder:    query.SortOrder,
	})
	if err != nil {
		return nil, Pagination{}, err
	}
	sanitizeSellers(products)
	return products, buildPagination(page, limit, len(products), total), nil
}

// ListBySeller 某个卖家的上架商品
func (s *ProductService) ListBySeller(sellerID uint) ([]models.Product, error) {
	if sellerID == 0 {
		return []models.Product{}, nil
	}
	products, _, err := s.productRepo.List(repository.ProductListFilter{
		SellerID:   sellerID,
		OnlyActive: true,
		WithSeller: true,
	})
	if err != nil {
		return nil, err
	}
	sanitizeSellers(products)
	return products, nil
}

// ListMine 当前用户发布的全部商品（含已售与已下架）
func (s *ProductService) ListMine(userID uint) ([]models.Product, error) {
	products, _, err := s.productRepo.List(repository.ProductListFilter{SellerID: userID})
	if err != nil {
		return nil, err
	}
	return products, nil
}

// ListForModeration 审核用列表，包含所有状态
func (s *ProductService) ListForModeration(query ProductListQuery, includeInactive bool) ([]models.Product, Pagination, error) {
	page, limit := s.normalizePage(query.Page, query.Limit)
	products, total, err := s.productRepo.List(repository.ProductListFilter{
		Page:         page,
		PageSize:     limit,
		Category:     query.Category,
		Search:       query.Search,
		Condition:    query.Condition,
		Availability: query.Availability,
		OnlyActive:   !includeInactive,
		WithSeller:   true,
		SortBy:       query.SortBy,
		SortOrder:    query.SortOrder,
	})
	if err != nil {
		return nil, Pagination{}, err
	}
	return products, buildPagination(page, limit, len(products), total), nil
}

// GetDetail 商品详情，已删除或已下架视为不存在；浏览计数尽力而为
func (s *ProductService) GetDetail(productID uint) (*models.Product, error) {
	product, err := s.loadDetail(productID)
	if err != nil {
		return nil, err
	}
	s.recordView(productID)
	return product, nil
}

func (s *ProductService) loadDetail(productID uint) (*models.Product, error) {
	ctx := context.Background()
	var cached models.Product
	hit, err := cache.GetProductDetail(ctx, productID, &cached)
	if err != nil {
		logger.Warnw("product_cache_get_failed", "product_id", productID, "error", err)
	}
	if hit && cached.IsActive {
		return &cached, nil
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}
	product.Seller = product.Seller.PublicProfile()
	if err := cache.SetProductDetail(ctx, productID, product, s.productCacheTTL()); err != nil {
		logger.Warnw("product_cache_set_failed", "product_id", productID, "error", err)
	}
	return product, nil
}

func (s *ProductService) recordView(productID uint) {
	s.metrics.ProductViewed()
	if s.queueClient.Enabled() {
		err := s.queueClient.EnqueueProductView(queue.ProductViewPayload{ProductID: productID})
		if err == nil {
			return
		}
		logger.Warnw("product_view_enqueue_failed", "product_id", productID, "error", err)
	}
	if err := s.IncrementViews(productID); err != nil {
		logger.Warnw("product_view_increment_failed", "product_id", productID, "error", err)
	}
}

// IncrementViews 浏览数 +1，供同步路径与异步任务共用
func (s *ProductService) IncrementViews(productID uint) error {
	return s.productRepo.IncrementViews(productID)
}

// Create 发布商品，卖家为当前用户
func (s *ProductService) Create(sellerID uint, input CreateProductInput) (*models.Product, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	if input.Price.IsNegative() {
		return nil, newFieldError("price", "price must be a positive number")
	}

	condition := strings.TrimSpace(input.Condition)
	if condition == "" {
		condition = constants.ConditionGood
	}
	product := &models.Product{
		SellerID:     sellerID,
		Title:        strings.TrimSpace(input.Title),
		Description:  strings.TrimSpace(input.Description),
		Category:     input.Category,
		Price:        models.NewMoneyFromDecimal(input.Price.Decimal),
		Condition:    condition,
		Availability: constants.AvailabilityAvailable,
		Images:       s.buildImages(input.Images),
		Tags:         normalizeTags(input.Tags),
		Location:     buildLocation(input.Location),
		IsActive:     true,
	}
	if err := s.productRepo.Create(product); err != nil {
		return nil, err
	}
	s.metrics.ProductListed()
	logger.Infow("product_created", "product_id", product.ID, "seller_id", sellerID)
	return product, nil
}

// Update 编辑自己发布的商品
func (s *ProductService) Update(userID, productID uint, input UpdateProductInput) (*models.Product, error) {
	if err := validateStruct(input); err != nil {
		return nil, err
	}
	if input.Price != nil && input.Price.IsNegative() {
		return nil, newFieldError("price", "price must be a positive number")
	}

	product, err := s.ownedProduct(userID, productID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if input.Title != nil {
		fields["title"] = strings.TrimSpace(*input.Title)
	}
	if input.Description != nil {
		fields["description"] = strings.TrimSpace(*input.Description)
	}
	if input.Category != nil {
		fields["category"] = *input.Category
	}
	if input.Price != nil {
		fields["price"] = models.NewMoneyFromDecimal(input.Price.Decimal)
	}
	if input.Condition != nil {
		fields["condition"] = *input.Condition
	}
	expectedAvailability := ""
	if input.Availability != nil && *input.Availability != product.Availability {
		fields["availability"] = *input.Availability
		expectedAvailability = product.Availability
	}
	if input.Images != nil {
		fields["images"] = s.buildImages(*input.Images)
	}
	if input.Tags != nil {
		fields["tags"] = normalizeTags(*input.Tags)
	}
	if input.Location != nil {
		fields["location"] = buildLocation(input.Location)
	}
	if len(fields) == 0 {
		return product, nil
	}
	fields["updated_at"] = time.Now()

	affected, err := s.productRepo.UpdateFields(product.ID, fields, expectedAvailability)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		logger.Warnw("product_update_conflict", "product_id", product.ID, "expected_availability", expectedAvailability)
		return nil, ErrProductConflict
	}
	s.invalidate(product.ID)

	updated, err := s.productRepo.GetByID(product.ID)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrProductNotFound
	}
	return updated, nil
}

// Delete 下架自己发布的商品（软删除）
func (s *ProductService) Delete(userID, productID uint) error {
	if _, err := s.ownedProduct(userID, productID); err != nil {
		return err
	}
	return s.Deactivate(productID)
}

// Deactivate 下架任意商品，供审核使用
func (s *ProductService) Deactivate(productID uint) error {
	affected, err := s.productRepo.Deactivate(productID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrProductNotFound
	}
	s.invalidate(productID)
	logger.Infow("product_deactivated", "product_id", productID)
	return nil
}

func (s *ProductService) ownedProduct(userID, productID uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductNotFound
	}
	if !product.IsOwnedBy(userID) {
		return nil, ErrForbidden
	}
	product.Seller = nil
	return product, nil
}

func (s *ProductService) invalidate(productID uint) {
	if err := cache.InvalidateProducts(context.Background(), productID); err != nil {
		logger.Warnw("product_cache_invalidate_failed", "product_id", productID, "error", err)
	}
}

func (s *ProductService) normalizePage(page, limit int) (int, int) {
	defaultSize := constants.DefaultProductPageSize
	maxSize := constants.MaxProductPageSize
	if s.cfg != nil {
		if s.cfg.Catalog.DefaultPageSize > 0 {
			defaultSize = s.cfg.Catalog.DefaultPageSize
		}
		if s.cfg.Catalog.MaxPageSize > 0 {
			maxSize = s.cfg.Catalog.MaxPageSize
		}
	}
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = defaultSize
	}
	if limit > maxSize {
		limit = maxSize
	}
	return page, limit
}

func (s *ProductService) productCacheTTL() time.Duration {
	if s.cfg == nil || s.cfg.Catalog.ProductCacheTTLSeconds <= 0 {
		return 0
	}
	return time.Duration(s.cfg.Catalog.ProductCacheTTLSeconds) * time.Second
}

func (s *ProductService) placeholderImage() string {
	if s.cfg != nil && strings.TrimSpace(s.cfg.Catalog.PlaceholderImage) != "" {
		return strings.TrimSpace(s.cfg.Catalog.PlaceholderImage)
	}
	return constants.DefaultProductImageURL
}

func (s *ProductService) buildImages(inputs []ProductImageInput) models.ProductImages {
	images := make(models.ProductImages, 0, len(inputs))
	for _, input := range inputs {
		url := strings.TrimSpace(input.URL)
		if url == "" {
			continue
		}
		alt := strings.TrimSpace(input.Alt)
		if alt == "" {
			alt = "Product image"
		}
		images = append(images, models.ProductImage{URL: url, Alt: alt})
	}
	if len(images) == 0 {
		images = append(images, models.ProductImage{URL: s.placeholderImage(), Alt: "Product image"})
	}
	return images
}

// normalizeTags 去空白、转小写并去重，保持原有顺序
func normalizeTags(tags []string) models.StringArray {
	result := make(models.StringArray, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		normalized := strings.ToLower(strings.TrimSpace(tag))
		if normalized == "" {
			continue
		}
		if _, ok := seen[normalized]; ok {
			continue
		}
		seen[normalized] = struct{}{}
		result = append(result, normalized)
	}
	return result
}

func buildLocation(input *LocationInput) models.Location {
	if input == nil {
		return models.Location{}
	}
	return models.Location{
		City:    strings.TrimSpace(input.City),
		State:   strings.TrimSpace(input.State),
		Country: strings.TrimSpace(input.Country),
	}
}

func sanitizeSellers(products []models.Product) {
	for i := range products {
		products[i].Seller = products[i].Seller.PublicProfile()
	}
}

func buildPagination(page, limit, returned int, total int64) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Pagination{
		CurrentPage:   page,
		TotalPages:    totalPages,
		TotalProducts: total,
		HasNext:       int64((page-1)*limit+returned) < total,
		HasPrev:       page > 1,
	}
}
