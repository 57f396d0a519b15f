package repository

import (
	"context"

	"app/internal/domain/model"
)

type OrderRepository interface {
	// 本人の注文のみ。他人のorderIDはErrNotFound（存在しない扱い）
	FindByIDAndUserID(ctx context.Context, orderID string, userID string) (model.Order, error)
	// 新しい順。Items（と各Product）を読み込んだ状態で返す。
	ListByUserID(ctx context.Context, userID string) ([]model.Order, error)
	Create(ctx context.Context, order model.Order) (string, error)
	UpdateStatus(ctx context.Context, orderID string, status model.OrderStatus) error
	FindByID(ctx context.Context, orderID string) (model.Order, error)
}
