package repository

import (
	"context"

	"app/internal/domain/model"
)

type CartRepository interface {
	// 無ければ空カートを作成して返す。Items（と各Product）を読み込んだ状態で返す。
	GetOrCreateByUserID(ctx context.Context, userID string) (model.Cart, error)
	FindByUserID(ctx context.Context, userID string) (model.Cart, error)
	// チェックアウト用：カート行をロックして取得
	FindByUserIDForUpdate(ctx context.Context, userID string) (model.Cart, error)
	// 明細を全削除（空カートに対しては何もしない）
	Clear(ctx context.Context, cartID string) error
}
