package service

import (
	"errors"
	"testing"
)

func TestUserProfileCounts(t *testing.T) {
	env := newTestEnv(t)
	seller := env.createUser(t, "seller")
	buyer := env.createUser(t, "buyer")
	first := env.createProduct(t, seller.ID, "First", "3.00")
	second := env.createProduct(t, seller.ID, "Second", "4.00")
	cart := env.cartService()

	if _, err := cart.Add(buyer.ID, AddCartItemInput{ProductID: first.ID, Quantity: quantity(1)}); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if _, err := env.checkoutService().Checkout(buyer.ID); err != nil {
		t.Fatalf("checkout failed: %v", err)
	}
	if _, err := cart.Add(buyer.ID, AddCartItemInput{ProductID: second.ID, Quantity: quantity(2)}); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	svc := NewUserService(env.cfg, env.userRepo, env.cartRepo, env.purchaseRepo, env.productRepo)
	profile, err := svc.GetProfile(buyer.ID)
	if err != nil {
		t.Fatalf("get profile failed: %v", err)
	}
	if profile.CartItemCount != 1 || profile.PurchaseCount != 1 || profile.ListingCount != 0 {
		t.Fatalf("unexpected buyer profile counts: %+v", profile)
	}

	sellerProfile, err := svc.GetProfile(seller.ID)
	if err != nil {
		t.Fatalf("get seller profile failed: %v", err)
	}
	if sellerProfile.ListingCount != 2 {
		t.Fatalf("expected 2 listings, got %d", sellerProfile.ListingCount)
	}

	if _, err := svc.GetProfile(9999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUserUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	user := env.createUser(t, "original")
	env.createUser(t, "occupied")
	svc := NewUserService(env.cfg, env.userRepo, env.cartRepo, env.purchaseRepo, env.productRepo)

	taken := "occupied"
	if _, err := svc.UpdateProfile(user.ID, UpdateProfileInput{Username: &taken}); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	username := " renamed "
	bio := "Loves thrifting"
	updated, err := svc.UpdateProfile(user.ID, UpdateProfileInput{Username: &username, Bio: &bio})
	if err != nil {
		t.Fatalf("update profile failed: %v", err)
	}
	if updated.Username != "renamed" || updated.Bio != bio {
		t.Fatalf("unexpected profile: %+v", updated)
	}

	short := "ab"
	if _, err := svc.UpdateProfile(user.ID, UpdateProfileInput{Username: &short}); err == nil {
		t.Fatalf("expected validation error for short username")
	}
}

func TestPurchaseHistoryNewestFirst(t *testing.T) {
	env := newTestEnv(t)
	seller := env.createUser(t, "seller")
	buyer := env.createUser(t, "buyer")
	older := env.createProduct(t, seller.ID, "Older", "5.00")
	newer := env.createProduct(t, seller.ID, "Newer", "6.00")
	cart := env.cartService()
	checkout := env.checkoutService()

	for _, id := range []uint{older.ID, newer.ID} {
		if _, err := cart.Add(buyer.ID, AddCartItemInput{ProductID: id, Quantity: quantity(1)}); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if _, err := checkout.Checkout(buyer.ID); err != nil {
			t.Fatalf("checkout failed: %v", err)
		}
	}

	svc := NewUserService(env.cfg, env.userRepo, env.cartRepo, env.purchaseRepo, env.productRepo)
	page, err := svc.PurchaseHistory(buyer.ID, 1, 0)
	if err != nil {
		t.Fatalf("purchase history failed: %v", err)
	}
	if len(page.Purchases) != 2 || page.Pagination.TotalProducts != 2 {
		t.Fatalf("expected 2 purchases, got %d", len(page.Purchases))
	}
	if page.Purchases[0].ProductID != newer.ID {
		t.Fatalf("expected newest purchase first, got product %d", page.Purchases[0].ProductID)
	}
	if page.Purchases[0].Product == nil || page.Purchases[0].Product.Title != "Newer" {
		t.Fatalf("expected product summary attached")
	}
}
