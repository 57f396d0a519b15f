package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type ProfileUserRepoMock struct{ mock.Mock }

func (m *ProfileUserRepoMock) Create(ctx context.Context, user *model.User) error {
	panic("not used in UserUsecase tests")
}

func (m *ProfileUserRepoMock) FindByID(ctx context.Context, userID string) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *ProfileUserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	panic("not used in UserUsecase tests")
}

func (m *ProfileUserRepoMock) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func strPtr(s string) *string { return &s }

func TestUserUsecase_GetMe_Unauthorized(t *testing.T) {
	uc := usecase.NewUserUsecase(new(ProfileUserRepoMock))

	_, err := uc.GetMe(context.Background(), "")
	assertErrContains(t, err, "unauthorized")
}

func TestUserUsecase_GetMe_NotFound(t *testing.T) {
	uRepo := new(ProfileUserRepoMock)
	uc := usecase.NewUserUsecase(uRepo)

	uRepo.On("FindByID", mock.Anything, "u-ghost").Return((*model.User)(nil), nil)

	_, err := uc.GetMe(context.Background(), "u-ghost")
	assertErrContains(t, err, "user not found")
}

func TestUserUsecase_GetMe_Success(t *testing.T) {
	uRepo := new(ProfileUserRepoMock)
	uc := usecase.NewUserUsecase(uRepo)

	uRepo.On("FindByID", mock.Anything, "u-1").Return(&model.User{ID: "u-1", Email: "jean@example.com"}, nil)

	out, err := uc.GetMe(context.Background(), "u-1")
	assert.NoError(t, err)
	assert.Equal(t, "jean@example.com", out.Email)
}

func TestUserUsecase_UpdateMe_PartialUpdate(t *testing.T) {
	uRepo := new(ProfileUserRepoMock)
	uc := usecase.NewUserUsecase(uRepo)

	uRepo.On("FindByID", mock.Anything, "u-1").Return(&model.User{
		ID: "u-1", FirstName: "Jean", LastName: "Dupont", Address: "old", Phone: "0600000000",
	}, nil)
	uRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		//nilのフィールドは触らない
		return u.Address == "12 rue de Brest" && u.FirstName == "Jean" && u.Phone == "0600000000"
	})).Return(nil)

	out, err := uc.UpdateMe(context.Background(), "u-1", usecase.UpdateProfileInput{
		Address: strPtr(" 12 rue de Brest "),
	})
	assert.NoError(t, err)
	assert.Equal(t, "12 rue de Brest", out.Address)
	assert.Equal(t, "Jean", out.FirstName)

	uRepo.AssertExpectations(t)
}

func TestUserUsecase_UpdateMe_EmptyNameRejected(t *testing.T) {
	uRepo := new(ProfileUserRepoMock)
	uc := usecase.NewUserUsecase(uRepo)

	uRepo.On("FindByID", mock.Anything, "u-1").Return(&model.User{ID: "u-1", FirstName: "Jean", LastName: "Dupont"}, nil)

	_, err := uc.UpdateMe(context.Background(), "u-1", usecase.UpdateProfileInput{
		FirstName: strPtr("   "),
	})
	assertErrContains(t, err, "invalid name")
}
