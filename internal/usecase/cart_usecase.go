package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// CartUsecase は /cart の業務ロジックです。
// すべての更新系は、最後にDBから読み直したカート（明細＋商品つき）を返します。
type CartUsecase struct {
	cartRepo     repo.CartRepository
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	cartItemRepo repo.CartItemRepository,
	productRepo repo.ProductRepository,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:     cartRepo,
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
	}
}

type AddCartInput struct {
	ProductID string
	Quantity  int64
}

type UpdateCartItemInput struct {
	Quantity int64
}

// GetCart はカート取得（無ければ作って空を返す）。
func (u *CartUsecase) GetCart(ctx context.Context, userID string) (model.Cart, error) {
	if userID == "" {
		return model.Cart{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return model.Cart{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return cart, nil
}

// AddToCart はカートに追加（同一商品は数量加算＋価格を今の商品価格へ更新）。
// 商品は存在チェックのみ（is_activeや在庫はここでは見ない）。
func (u *CartUsecase) AddToCart(ctx context.Context, userID string, in AddCartInput) (model.Cart, error) {
	if userID == "" {
		return model.Cart{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID == "" {
		return model.Cart{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Quantity < 1 {
		return model.Cart{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	// カート取得（無ければ作成）
	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return model.Cart{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// 商品チェック（存在のみ）
	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if err == repo.ErrNotFound {
		return model.Cart{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Cart{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	// Upsert（同一商品は加算、priceは今の商品価格）
	if err := u.cartItemRepo.UpsertByCartAndProduct(ctx, cart.ID, p, in.Quantity); err != nil {
		return model.Cart{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.reload(ctx, userID)
}

// 数量変更（所有チェックつき）。数量は置き換え、priceは今の商品価格に同期。
func (u *CartUsecase) UpdateCartItem(ctx context.Context, userID string, cartItemID string, in UpdateCartItemInput) (model.Cart, error) {
	if userID == "" {
		return model.Cart{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID == "" {
		return model.Cart{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Quantity < 1 {
		return model.Cart{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return model.Cart{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//自分のカートの中だけを探す（他人の明細IDは存在しない扱い）
	item, err := u.cartItemRepo.FindInCart(ctx, cartItemID, cart.ID)
	if err == repo.ErrNotFound {
		return model.Cart{}, NewHTTPError(http.StatusNotFound, "item not in cart")
	}
	if err != nil {
		return model.Cart{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//priceを今の商品価格へ同期
	p, err := u.productRepo.FindByID(ctx, item.ProductID)
	if err == repo.ErrNotFound {
		return model.Cart{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Cart{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.cartItemRepo.UpdateQuantityAndPrice(ctx, item.ID, in.Quantity, p.Price); err != nil {
		if err == repo.ErrNotFound {
			return model.Cart{}, NewHTTPError(http.StatusNotFound, "item not in cart")
		}
		return model.Cart{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.reload(ctx, userID)
}

// 明細削除（所有チェックつき）
func (u *CartUsecase) RemoveFromCart(ctx context.Context, userID string, cartItemID string) (model.Cart, error) {
	if userID == "" {
		return model.Cart{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if cartItemID == "" {
		return model.Cart{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return model.Cart{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	item, err := u.cartItemRepo.FindInCart(ctx, cartItemID, cart.ID)
	if err == repo.ErrNotFound {
		return model.Cart{}, NewHTTPError(http.StatusNotFound, "item not in cart")
	}
	if err != nil {
		return model.Cart{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.cartItemRepo.DeleteByID(ctx, item.ID); err != nil {
		if err == repo.ErrNotFound {
			return model.Cart{}, NewHTTPError(http.StatusNotFound, "item not in cart")
		}
		return model.Cart{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.reload(ctx, userID)
}

// 全明細を削除して空カートを返す。既に空でも成功（冪等）。
func (u *CartUsecase) ClearCart(ctx context.Context, userID string) (model.Cart, error) {
	if userID == "" {
		return model.Cart{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return model.Cart{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.cartRepo.Clear(ctx, cart.ID); err != nil {
		return model.Cart{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.reload(ctx, userID)
}

// 更新後の読み直し。部分更新されたメモリ上の状態ではなく、必ずDBのjoin済みの姿を返す。
func (u *CartUsecase) reload(ctx context.Context, userID string) (model.Cart, error) {
	cart, err := u.cartRepo.GetOrCreateByUserID(ctx, userID)
	if err != nil {
		return model.Cart{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return cart, nil
}
