package repository

import (
	"context"

	"app/internal/domain/model"

	"github.com/shopspring/decimal"
)

type CartItemRepository interface {
	// 同一商品は数量加算＋priceを現在の商品価格へ更新
	UpsertByCartAndProduct(ctx context.Context, cartID string, product model.Product, addQty int64) error
	// 指定カート内の明細だけを対象にする（他ユーザーのカートの明細はErrNotFound）
	FindInCart(ctx context.Context, cartItemID string, cartID string) (model.CartItem, error)
	UpdateQuantityAndPrice(ctx context.Context, cartItemID string, qty int64, price decimal.Decimal) error
	DeleteByID(ctx context.Context, cartItemID string) error
}
