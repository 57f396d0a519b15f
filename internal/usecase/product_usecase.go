package usecase

import (
	"context"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/shopspring/decimal"
)

type ProductUsecase struct {
	productRepo repo.ProductRepository
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository) *ProductUsecase {
	return &ProductUsecase{productRepo: productRepo}
}

// GET /productsの入力DTO
type ListProductsInput struct {
	Page     int
	Limit    int
	Q        string
	Category string
	Brand    string
	Sort     string
}

type ProductListOutput struct {
	Items []model.Product `json:"items"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}

type SaveProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Category    string
	Brand       string
	Stock       int64
	Images      []string
	IsActive    bool
}

// 公開商品一覧（部分一致検索つき）
func (u *ProductUsecase) ListPublicProducts(ctx context.Context, in ListProductsInput) (ProductListOutput, error) {
	if in.Page <= 0 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit <= 0 || in.Limit > 100 {
		return ProductListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	items, total, err := u.productRepo.ListPublic(ctx, repo.ProductListQuery{
		Page:     in.Page,
		Limit:    in.Limit,
		Q:        strings.TrimSpace(in.Q),
		Category: strings.TrimSpace(in.Category),
		Brand:    strings.TrimSpace(in.Brand),
		Sort:     in.Sort,
	})
	if err != nil {
		return ProductListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ProductListOutput{
		Items: items,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

// 公開商品詳細
func (u *ProductUsecase) GetProduct(ctx context.Context, id string) (model.Product, error) {
	if id == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	p, err := u.productRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//非公開商品は存在しない扱い
	if !p.IsActive {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	return p, nil
}

// 管理者用：商品作成
func (u *ProductUsecase) CreateProduct(ctx context.Context, in SaveProductInput) (model.Product, error) {
	if err := validateSaveProduct(in); err != nil {
		return model.Product{}, err
	}

	created, err := u.productRepo.Create(ctx, model.Product{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price.Round(2),
		Category:    strings.TrimSpace(in.Category),
		Brand:       strings.TrimSpace(in.Brand),
		Stock:       in.Stock,
		Images:      in.Images,
		IsActive:    in.IsActive,
	})
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return created, nil
}

// 管理者用：商品更新
func (u *ProductUsecase) UpdateProduct(ctx context.Context, id string, in SaveProductInput) (model.Product, error) {
	if id == "" {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := validateSaveProduct(in); err != nil {
		return model.Product{}, err
	}

	p, err := u.productRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	p.Price = in.Price.Round(2)
	p.Category = strings.TrimSpace(in.Category)
	p.Brand = strings.TrimSpace(in.Brand)
	p.Stock = in.Stock
	p.Images = in.Images
	p.IsActive = in.IsActive

	if err := u.productRepo.Update(ctx, p); err != nil {
		if err == repo.ErrNotFound {
			return model.Product{}, NewHTTPError(http.StatusNotFound, "product not found")
		}
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

// 管理者用：商品削除（論理削除）
func (u *ProductUsecase) DeleteProduct(ctx context.Context, id string) error {
	if id == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	if err := u.productRepo.SoftDelete(ctx, id); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "product not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func validateSaveProduct(in SaveProductInput) error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid name")
	}
	if in.Price.IsNegative() {
		return NewHTTPError(http.StatusBadRequest, "invalid price")
	}
	if in.Stock < 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid stock")
	}
	return nil
}
