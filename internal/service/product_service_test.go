package service

import (
	"errors"
	"testing"

	"github.com/ecofinds/internal/constants"
	"github.com/ecofinds/internal/models"
	"github.com/ecofinds/internal/repository"
)

// interleavingProductRepo 在卖家读取商品之后插入一次其他操作（例如买家结账）
type interleavingProductRepo struct {
	repository.ProductRepository
	afterRead func()
}

func (r *interleavingProductRepo) GetByID(id uint) (*models.Product, error) {
	product, err := r.ProductRepository.GetByID(id)
	if r.afterRead != nil {
		hook := r.afterRead
		r.afterRead = nil
		hook()
	}
	return product, err
}

func TestProductCreateAppliesDefaults(t *testing.T) {
	env := newTestEnv(t)
	seller := env.createUser(t, "seller")
	price := models.MustMoney("19.90")

	product, err := env.productService().Create(seller.ID, CreateProductInput{
		Title:       "  Vintage Jacket ",
		Description: "Warm and light",
		Category:    constants.CategoryClothing,
		Price:       &price,
		Tags:        []string{" Winter", "winter", "", "LEATHER"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if product.SellerID != seller.ID {
		t.Fatalf("expected seller %d, got %d", seller.ID, product.SellerID)
	}
	if product.Title != "Vintage Jacket" {
		t.Fatalf("expected trimmed title, got %q", product.Title)
	}
	if product.Condition != constants.ConditionGood {
		t.Fatalf("expected default condition Good, got %s", product.Condition)
	}
	if product.Availability != constants.AvailabilityAvailable || !product.IsActive {
		t.Fatalf("new listing must be available and active: %+v", product)
	}
	if len(product.Tags) != 2 || product.Tags[0] != "winter" || product.Tags[1] != "leather" {
		t.Fatalf("unexpected tags: %v", product.Tags)
	}
	if len(product.Images) != 1 || product.Images[0].URL != "/placeholder-image.jpg" || product.Images[0].Alt != "Product image" {
		t.Fatalf("expected placeholder image, got %+v", product.Images)
	}
}

func TestProductCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	seller := env.createUser(t, "seller")
	negative := models.MustMoney("-1")

	_, err := env.productService().Create(seller.ID, CreateProductInput{
		Title:    "",
		Category: "Weapons",
		Price:    nil,
	})
	vErr, ok := AsValidationError(err)
	if !ok {
		t.Fatalf("expected validation error, got %v", err)
	}
	fields := map[string]bool{}
	for _, f := range vErr.Fields {
		fields[f.Field] = true
	}
	for _, want := range []string{"title", "description", "category", "price"} {
		if !fields[want] {
			t.Fatalf("expected field error for %s, got %+v", want, vErr.Fields)
		}
	}

	_, err = env.productService().Create(seller.ID, CreateProductInput{
		Title:       "Thing",
		Description: "Thing",
		Category:    constants.CategoryOther,
		Price:       &negative,
	})
	if _, ok := AsValidationError(err); !ok {
		t.Fatalf("expected validation error for negative price, got %v", err)
	}
}

func TestProductUpdateOwnership(t *testing.T) {
	env := newTestEnv(t)
	seller := env.createUser(t, "seller")
	other := env.createUser(t, "other")
	product := env.createProduct(t, seller.ID, "Table", "30.00")
	svc := env.productService()

	title := "Oak Table"
	if _, err := svc.Update(other.ID, product.ID, UpdateProductInput{Title: &title}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	reserved := constants.AvailabilityReserved
	newPrice := models.MustMoney("25.00")
	updated, err := svc.Update(seller.ID, product.ID, UpdateProductInput{
		Title:        &title,
		Price:        &newPrice,
		Availability: &reserved,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Title != title || updated.Price.String() != "25.00" || updated.Availability != reserved {
		t.Fatalf("unexpected update result: %+v", updated)
	}
	stored := env.reloadProduct(t, product.ID)
	if stored.Title != title || stored.Availability != reserved {
		t.Fatalf("update not persisted: %+v", stored)
	}

	bogus := "Lost"
	if _, err := svc.Update(seller.ID, product.ID, UpdateProductInput{Availability: &bogus}); err == nil {
		t.Fatalf("expected validation error for bogus availability")
	}
}

func TestProductDeleteIsSoftAndHidesDetail(t *testing.T) {
	env := newTestEnv(t)
	seller := env.createUser(t, "seller")
	other := env.createUser(t, "other")
	product := env.createProduct(t, seller.ID, "Shelf", "15.00")
	svc := env.productService()

	if err := svc.Delete(other.ID, product.ID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if err := svc.Delete(seller.ID, product.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if stored := env.reloadProduct(t, product.ID); stored.IsActive {
		t.Fatalf("expected product to be deactivated")
	}
	if _, err := svc.GetDetail(product.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if err := svc.Deactivate(product.ID); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("second deactivate should report not found, got %v", err)
	}
}

func TestProductDetailIncrementsViews(t *testing.T) {
	env := newTestEnv(t)
	seller := env.createUser(t, "seller")
	product := env.createProduct(t, seller.ID, "Lamp", "9.00")
	svc := env.productService()

	detail, err := svc.GetDetail(product.ID)
	if err != nil {
		t.Fatalf("detail failed: %v", err)
	}
	if detail.Seller == nil || detail.Seller.Username != "seller" {
		t.Fatalf("expected seller profile, got %+v", detail.Seller)
	}
	if detail.Seller.Email != "" {
		t.Fatalf("public seller profile must not expose email")
	}
	if _, err := svc.GetDetail(product.ID); err != nil {
		t.Fatalf("second detail failed: %v", err)
	}
	if views := env.reloadProduct(t, product.ID).Views; views != 2 {
		t.Fatalf("expected 2 views, got %d", views)
	}
}

func TestProductListPublicDefaultsAndPagination(t *testing.T) {
	env := newTestEnv(t)
	seller := env.createUser(t, "seller")
	for _, title := range []string{"A", "B", "C"} {
		env.createProduct(t, seller.ID, title, "5.00")
	}
	sold := env.createProduct(t, seller.ID, "Sold", "5.00")
	env.setProductColumn(t, sold.ID, "availability", constants.AvailabilitySold)
	hidden := env.createProduct(t, seller.ID, "Hidden", "5.00")
	env.setProductColumn(t, hidden.ID, "is_active", false)
	svc := env.productService()

	products, pagination, err := svc.ListPublic(ProductListQuery{Page: 1, Limit: 2})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products on page 1, got %d", len(products))
	}
	if pagination.TotalProducts != 3 || pagination.TotalPages != 2 || !pagination.HasNext || pagination.HasPrev {
		t.Fatalf("unexpected pagination: %+v", pagination)
	}

	products, pagination, err = svc.ListPublic(ProductListQuery{Page: 2, Limit: 2})
	if err != nil {
		t.Fatalf("list page 2 failed: %v", err)
	}
	if len(products) != 1 || pagination.HasNext || !pagination.HasPrev {
		t.Fatalf("unexpected page 2: %d products, %+v", len(products), pagination)
	}

	soldOnly, _, err := svc.ListPublic(ProductListQuery{Availability: constants.AvailabilitySold})
	if err != nil {
		t.Fatalf("list sold failed: %v", err)
	}
	if len(soldOnly) != 1 || soldOnly[0].ID != sold.ID {
		t.Fatalf("expected only the sold listing, got %+v", soldOnly)
	}

	mine, err := svc.ListMine(seller.ID)
	if err != nil {
		t.Fatalf("list mine failed: %v", err)
	}
	if len(mine) != 5 {
		t.Fatalf("expected all 5 listings for the owner, got %d", len(mine))
	}
}

func TestNormalizePageClampsLimit(t *testing.T) {
	env := newTestEnv(t)
	svc := env.productService()

	cases := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{0, 0, 1, 12},
		{-3, 5, 1, 5},
		{2, 1000, 2, 100},
	}
	for _, tc := range cases {
		page, limit := svc.normalizePage(tc.page, tc.limit)
		if page != tc.wantPage || limit != tc.wantLimit {
			t.Fatalf("normalizePage(%d,%d) = %d,%d want %d,%d", tc.page, tc.limit, page, limit, tc.wantPage, tc.wantLimit)
		}
	}
}

func TestProductUpdateKeepsConcurrentSale(t *testing.T) {
	env := newTestEnv(t)
	seller := env.createUser(t, "seller")
	alice := env.createUser(t, "alice")
	bob := env.createUser(t, "bob")
	product := env.createProduct(t, seller.ID, "Camera", "80.00")
	cart := env.cartService()
	checkout := env.checkoutService()

	for _, buyer := range []uint{alice.ID, bob.ID} {
		if _, err := cart.Add(buyer, AddCartItemInput{ProductID: product.ID}); err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}

	var saleErr error
	repo := &interleavingProductRepo{
		ProductRepository: env.productRepo,
		afterRead: func() {
			_, saleErr = checkout.Checkout(alice.ID)
		},
	}
	svc := NewProductService(env.cfg, repo, nil, nil)

	description := "Lens cap included"
	updated, err := svc.Update(seller.ID, product.ID, UpdateProductInput{Description: &description})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if saleErr != nil {
		t.Fatalf("interleaved checkout failed: %v", saleErr)
	}
	if updated.Availability != constants.AvailabilitySold {
		t.Fatalf("edit must return the sold state, got %s", updated.Availability)
	}
	stored := env.reloadProduct(t, product.ID)
	if stored.Availability != constants.AvailabilitySold || stored.Description != description {
		t.Fatalf("edit must keep the sale and apply the description: %+v", stored)
	}

	_, err = checkout.Checkout(bob.ID)
	if _, ok := AsItemsUnavailableError(err); !ok {
		t.Fatalf("expected items unavailable for second buyer, got %v", err)
	}
	if rows := env.purchaseRows(t, bob.ID); len(rows) != 0 {
		t.Fatalf("second buyer must not get records, got %d", len(rows))
	}
}

func TestProductUpdateAvailabilityConflictsWithSale(t *testing.T) {
	env := newTestEnv(t)
	seller := env.createUser(t, "seller")
	buyer := env.createUser(t, "buyer")
	product := env.createProduct(t, seller.ID, "Desk", "40.00")

	if _, err := env.cartService().Add(buyer.ID, AddCartItemInput{ProductID: product.ID}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	var saleErr error
	repo := &interleavingProductRepo{
		ProductRepository: env.productRepo,
		afterRead: func() {
			_, saleErr = env.checkoutService().Checkout(buyer.ID)
		},
	}
	svc := NewProductService(env.cfg, repo, nil, nil)

	reserved := constants.AvailabilityReserved
	title := "Standing Desk"
	if _, err := svc.Update(seller.ID, product.ID, UpdateProductInput{Title: &title, Availability: &reserved}); !errors.Is(err, ErrProductConflict) {
		t.Fatalf("expected ErrProductConflict, got %v", err)
	}
	if saleErr != nil {
		t.Fatalf("interleaved checkout failed: %v", saleErr)
	}
	stored := env.reloadProduct(t, product.ID)
	if stored.Availability != constants.AvailabilitySold || stored.Title != "Desk" {
		t.Fatalf("conflicting edit must not touch the row: %+v", stored)
	}
	if rows := env.purchaseRows(t, buyer.ID); len(rows) != 1 {
		t.Fatalf("sale must stand, got %d records", len(rows))
	}
}
