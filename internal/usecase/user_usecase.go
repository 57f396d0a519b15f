package usecase

import (
	"context"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// UserUsecase はプロフィールの参照・更新。
type UserUsecase struct {
	userRepo repo.UserRepository
}

func NewUserUsecase(userRepo repo.UserRepository) *UserUsecase {
	return &UserUsecase{userRepo: userRepo}
}

type UpdateProfileInput struct {
	FirstName *string
	LastName  *string
	Address   *string
	Phone     *string
}

// 自分のプロフィール取得
func (u *UserUsecase) GetMe(ctx context.Context, userID string) (model.User, error) {
	if userID == "" {
		return model.User{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil {
		return model.User{}, NewHTTPError(http.StatusNotFound, "user not found")
	}
	return *user, nil
}

// 自分のプロフィール更新（部分更新：nilのフィールドは触らない）
func (u *UserUsecase) UpdateMe(ctx context.Context, userID string, in UpdateProfileInput) (model.User, error) {
	if userID == "" {
		return model.User{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	user, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if user == nil {
		return model.User{}, NewHTTPError(http.StatusNotFound, "user not found")
	}

	if in.FirstName != nil {
		if strings.TrimSpace(*in.FirstName) == "" {
			return model.User{}, NewHTTPError(http.StatusBadRequest, "invalid name")
		}
		user.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		if strings.TrimSpace(*in.LastName) == "" {
			return model.User{}, NewHTTPError(http.StatusBadRequest, "invalid name")
		}
		user.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Address != nil {
		user.Address = strings.TrimSpace(*in.Address)
	}
	if in.Phone != nil {
		user.Phone = strings.TrimSpace(*in.Phone)
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return *user, nil
}
