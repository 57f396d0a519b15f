package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

// OrderUsecase は注文の作成（チェックアウト）と参照を担当します。
// チェックアウトは「注文作成→明細作成→カートクリア→読み直し」を1トランザクションで行う。
type OrderUsecase struct {
	tx        repo.TransactionManager
	orderRepo repo.OrderRepository
}

func NewOrderUsecase(tx repo.TransactionManager, orderRepo repo.OrderRepository) *OrderUsecase {
	return &OrderUsecase{tx: tx, orderRepo: orderRepo}
}

type CreateOrderInput struct {
	ShippingAddress      string
	DeliveryInstructions string
}

// Create はカートを注文に変換して、カートを空にする。
//
//  1. ユーザー解決（不明なら404）
//  2. カート取得。明細ゼロなら404 "cart is empty"（空カートからの注文は許可しない）
//  3. totalは「今の商品価格×数量」の合計。カート明細のスナップショット価格ではない。
//     カート追加後に商品価格が変わっていれば、チェックアウト時の価格が黙って採用される。
//  4. 注文ヘッダ作成（status=pending、住所未指定ならプロフィールの住所）
//  5. 明細作成（price=今の商品価格、total=price×qty）
//  6. カートをクリア
//  7. join済みの注文を読み直して返す。読めなければ404（4〜6と最終読みの間の不整合）
func (u *OrderUsecase) Create(ctx context.Context, userID string, in CreateOrderInput) (model.Order, error) {
	if userID == "" {
		return model.Order{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var out model.Order

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		//ユーザー解決
		user, err := r.Users().FindByID(ctx, userID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if user == nil {
			return NewHTTPError(http.StatusNotFound, "user not found")
		}

		//カート行をロックして取得（同一ユーザーの二重チェックアウトを直列化）
		//カート未作成＝空とみなす
		cart, err := r.Carts().FindByUserIDForUpdate(ctx, userID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "cart is empty")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(cart.Items) == 0 {
			return NewHTTPError(http.StatusNotFound, "cart is empty")
		}

		//totalと明細。価格はカートのスナップショットではなくjoin済みの商品の現在価格。
		total := decimal.Zero
		orderItems := make([]model.OrderItem, 0, len(cart.Items))

		for _, ci := range cart.Items {
			price := ci.Product.Price
			lineTotal := price.Mul(decimal.NewFromInt(ci.Quantity)).Round(2)

			orderItems = append(orderItems, model.OrderItem{
				ProductID: ci.ProductID,
				Quantity:  ci.Quantity,
				Price:     price,
				Total:     lineTotal,
			})

			total = total.Add(lineTotal)
		}

		//住所未指定ならプロフィールの住所にフォールバック
		shipping := in.ShippingAddress
		if shipping == "" {
			shipping = user.Address
		}

		//注文ヘッダ作成
		orderID, err := r.Orders().Create(ctx, model.Order{
			UserID:               userID,
			Status:               model.OrderStatusPending,
			Total:                total.Round(2),
			ShippingAddress:      shipping,
			DeliveryInstructions: in.DeliveryInstructions,
		})
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//注文明細一括作成
		if err := r.OrderItems().CreateBulk(ctx, orderID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//カートを空にする（カート自体は残る）
		if err := r.Carts().Clear(ctx, cart.ID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//最終の整合性読み。ここで読めないのは4〜6のどこかが壊れている
		created, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "order not found after creation")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = created
		return nil
	})

	if err != nil {
		return model.Order{}, err
	}
	return out, nil
}

// 自分の注文一覧（新しい順・明細＋商品つき）
func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID string) ([]model.Order, error) {
	if userID == "" {
		return []model.Order{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	orders, err := u.orderRepo.ListByUserID(ctx, userID)
	if err != nil {
		return []model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return orders, nil
}

// 自分の注文詳細。他人の注文は「存在しない扱い」にする。
func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, userID string, orderID string) (model.Order, error) {
	if userID == "" {
		return model.Order{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID == "" {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	o, err := u.orderRepo.FindByIDAndUserID(ctx, orderID, userID)
	if err == repo.ErrNotFound {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return o, nil
}

// 管理者用：注文ステータスの更新（pending→processing→shipped→delivered、cancelledへは途中から）
func (u *OrderUsecase) UpdateOrderStatus(ctx context.Context, orderID string, status model.OrderStatus) (model.Order, error) {
	if orderID == "" {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	switch status {
	case model.OrderStatusProcessing, model.OrderStatusShipped, model.OrderStatusDelivered, model.OrderStatusCancelled:
	default:
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	o, err := u.orderRepo.FindByID(ctx, orderID)
	if err == repo.ErrNotFound {
		return model.Order{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if !o.Status.CanTransitionTo(status) {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid status transition")
	}

	if err := u.orderRepo.UpdateStatus(ctx, orderID, status); err != nil {
		if err == repo.ErrNotFound {
			return model.Order{}, NewHTTPError(http.StatusNotFound, "order not found")
		}
		return model.Order{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	o.Status = status
	return o, nil
}
