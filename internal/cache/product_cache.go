package cache

import (
	"context"
	"fmt"
	"time"
)

func productDetailKey(productID uint) string {
	return fmt.Sprintf("product:detail:%d", productID)
}

// GetProductDetail 读取商品详情缓存
func GetProductDetail(ctx context.Context, productID uint, dest interface{}) (bool, error) {
	if productID == 0 {
		return false, nil
	}
	return GetJSON(ctx, productDetailKey(productID), dest)
}

// SetProductDetail 写入商品详情缓存
func SetProductDetail(ctx context.Context, productID uint, value interface{}, ttl time.Duration) error {
	if productID == 0 || ttl <= 0 {
		return nil
	}
	return SetJSON(ctx, productDetailKey(productID), value, ttl)
}

// InvalidateProducts 商品变更（编辑、下架、售出）后清理详情缓存
func InvalidateProducts(ctx context.Context, productIDs ...uint) error {
	keys := make([]string, 0, len(productIDs))
	for _, id := range productIDs {
		if id == 0 {
			continue
		}
		keys = append(keys, productDetailKey(id))
	}
	return Del(ctx, keys...)
}
