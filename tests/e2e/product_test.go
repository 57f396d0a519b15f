package e2e

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"
)

type ProductDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Category    string   `json:"category"`
	Brand       string   `json:"brand"`
	Stock       int64    `json:"stock"`
	Images      []string `json:"images"`
	IsActive    bool     `json:"is_active"`
}

type ProductListResponse struct {
	Items []ProductDTO `json:"items"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

type ProductSaveRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       string   `json:"price"`
	Category    string   `json:"category"`
	Brand       string   `json:"brand"`
	Stock       int64    `json:"stock"`
	Images      []string `json:"images"`
	IsActive    bool     `json:"is_active"`
}

func mustDecodeProductList(t *testing.T, body []byte) ProductListResponse {
	t.Helper()
	var v ProductListResponse
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json.Unmarshal(ProductListResponse) failed: %v body=%s", err, string(body))
	}
	return v
}

func mustDecodeProduct(t *testing.T, body []byte) ProductDTO {
	t.Helper()
	var v ProductDTO
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json.Unmarshal(ProductDTO) failed: %v body=%s", err, string(body))
	}
	return v
}

// 管理者で商品を1つ作って返す（各テストの事前準備用）
func createProduct(t *testing.T, c *TestClient, ctx context.Context, access string, name string, price string) ProductDTO {
	t.Helper()

	req := ProductSaveRequest{
		Name:        name,
		Description: "e2e",
		Price:       price,
		Category:    "E2E",
		Brand:       "E2E",
		Stock:       10,
		Images:      []string{"e2e.jpg"},
		IsActive:    true,
	}
	b, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("json.Marshal(ProductSaveRequest) failed: %v", err)
	}

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/admin/products", access, b)
	requireStatus(t, resp, http.StatusOK, body)

	return mustDecodeProduct(t, body)
}

func uniqueName(prefix string) string {
	return prefix + "-" + time.Now().Format("20060102-150405.000000000")
}

func Test_Products_PublicList_And_Detail(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()
	access := adminLogin(t, c, ctx)

	name := uniqueName("E2E-Ballon")
	created := createProduct(t, c, ctx, access, name, "29.99")

	//検索で見つかるか（認証なし）
	resp, body := c.doJSON(ctx, t, http.MethodGet, "/products?page=1&limit=20&q="+name, "", nil)
	requireStatus(t, resp, http.StatusOK, body)

	list := mustDecodeProductList(t, body)
	if len(list.Items) != 1 {
		t.Fatalf("want 1 item, got %d: body=%s", len(list.Items), string(body))
	}
	if list.Items[0].ID != created.ID {
		t.Fatalf("id mismatch: %s vs %s", list.Items[0].ID, created.ID)
	}

	//詳細
	resp, body = c.doJSON(ctx, t, http.MethodGet, "/products/"+created.ID, "", nil)
	requireStatus(t, resp, http.StatusOK, body)

	p := mustDecodeProduct(t, body)
	if p.Price != "29.99" {
		t.Fatalf("price=%s want 29.99", p.Price)
	}
}

func Test_Products_AdminOnly(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()

	//一般ユーザーは403
	access, _ := registerAndLogin(t, c, ctx, "")

	req := ProductSaveRequest{Name: uniqueName("E2E-Forbidden"), Price: "1.00", IsActive: true}
	b, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/admin/products", access, b)
	requireStatus(t, resp, http.StatusForbidden, body)

	e := mustDecodeError(t, body)
	if e.Error != "admin only" {
		t.Fatalf("error=%q want %q", e.Error, "admin only")
	}

	//未認証は401
	resp, body = c.doJSON(ctx, t, http.MethodPost, "/admin/products", "", b)
	requireStatus(t, resp, http.StatusUnauthorized, body)
}

func Test_Products_SoftDelete_HidesFromPublic(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()
	access := adminLogin(t, c, ctx)

	created := createProduct(t, c, ctx, access, uniqueName("E2E-Supprime"), "9.99")

	resp, body := c.doJSON(ctx, t, http.MethodDelete, "/admin/products/"+created.ID, access, nil)
	requireStatus(t, resp, http.StatusNoContent, body)

	//削除後は公開側から見えない
	resp, body = c.doJSON(ctx, t, http.MethodGet, "/products/"+created.ID, "", nil)
	requireStatus(t, resp, http.StatusNotFound, body)
}
