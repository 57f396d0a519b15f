package e2e

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
)

type CartItemDTO struct {
	ID        string     `json:"id"`
	CartID    string     `json:"cart_id"`
	ProductID string     `json:"product_id"`
	Product   ProductDTO `json:"product"`
	Quantity  int64      `json:"quantity"`
	Price     string     `json:"price"`
}

type CartResponse struct {
	ID     string        `json:"id"`
	UserID string        `json:"user_id"`
	Items  []CartItemDTO `json:"items"`
}

type AddCartRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int64 `json:"quantity"`
}

func mustDecodeCart(t *testing.T, body []byte) CartResponse {
	t.Helper()
	var v CartResponse
	if err := json.Unmarshal(body, &v); err != nil {
		t.Fatalf("json.Unmarshal(CartResponse) failed: %v body=%s", err, string(body))
	}
	return v
}

func addToCart(t *testing.T, c *TestClient, ctx context.Context, access string, productID string, qty int64) CartResponse {
	t.Helper()

	b, err := json.Marshal(AddCartRequest{ProductID: productID, Quantity: qty})
	if err != nil {
		t.Fatalf("json.Marshal(AddCartRequest) failed: %v", err)
	}

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/cart/items", access, b)
	requireStatus(t, resp, http.StatusOK, body)
	return mustDecodeCart(t, body)
}

func Test_Cart_Flow_Add_Duplicate_Patch_Delete_Clear(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()

	admin := adminLogin(t, c, ctx)
	product := createProduct(t, c, ctx, admin, uniqueName("E2E-CartBallon"), "29.99")

	access, _ := registerAndLogin(t, c, ctx, "")

	//初回GETで空カートが作られる
	resp, body := c.doJSON(ctx, t, http.MethodGet, "/cart", access, nil)
	requireStatus(t, resp, http.StatusOK, body)

	cart := mustDecodeCart(t, body)
	if len(cart.Items) != 0 {
		t.Fatalf("new cart should be empty: body=%s", string(body))
	}

	//追加
	cart = addToCart(t, c, ctx, access, product.ID, 2)
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 2 {
		t.Fatalf("unexpected cart after add: %+v", cart)
	}

	//同一商品の再追加は明細が増えず数量加算
	cart = addToCart(t, c, ctx, access, product.ID, 1)
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 3 {
		t.Fatalf("duplicate add should merge: %+v", cart)
	}

	itemID := cart.Items[0].ID

	//数量の置き換え
	b, err := json.Marshal(UpdateCartItemRequest{Quantity: 5})
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	resp, body = c.doJSON(ctx, t, http.MethodPatch, "/cart/items/"+itemID, access, b)
	requireStatus(t, resp, http.StatusOK, body)

	cart = mustDecodeCart(t, body)
	if cart.Items[0].Quantity != 5 {
		t.Fatalf("quantity=%d want 5", cart.Items[0].Quantity)
	}

	//明細削除
	resp, body = c.doJSON(ctx, t, http.MethodDelete, "/cart/items/"+itemID, access, nil)
	requireStatus(t, resp, http.StatusOK, body)

	cart = mustDecodeCart(t, body)
	if len(cart.Items) != 0 {
		t.Fatalf("cart should be empty after delete: body=%s", string(body))
	}

	//空カートのクリアも成功（冪等）
	resp, body = c.doJSON(ctx, t, http.MethodDelete, "/cart", access, nil)
	requireStatus(t, resp, http.StatusOK, body)
}

func Test_Cart_AddUnknownProduct(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()
	access, _ := registerAndLogin(t, c, ctx, "")

	b, err := json.Marshal(AddCartRequest{ProductID: "00000000-0000-0000-0000-000000000000", Quantity: 1})
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}

	resp, body := c.doJSON(ctx, t, http.MethodPost, "/cart/items", access, b)
	requireStatus(t, resp, http.StatusNotFound, body)

	e := mustDecodeError(t, body)
	if e.Error != "product not found" {
		t.Fatalf("error=%q want %q", e.Error, "product not found")
	}
}

func Test_Cart_ForeignItemIsNotFound(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()

	admin := adminLogin(t, c, ctx)
	product := createProduct(t, c, ctx, admin, uniqueName("E2E-CartForeign"), "9.99")

	ownerAccess, _ := registerAndLogin(t, c, ctx, "")
	cart := addToCart(t, c, ctx, ownerAccess, product.ID, 1)
	itemID := cart.Items[0].ID

	//別ユーザーからは他人の明細IDは存在しない扱い
	otherAccess, _ := registerAndLogin(t, c, ctx, "")

	b, err := json.Marshal(UpdateCartItemRequest{Quantity: 2})
	if err != nil {
		t.Fatalf("json.Marshal failed: %v", err)
	}
	resp, body := c.doJSON(ctx, t, http.MethodPatch, "/cart/items/"+itemID, otherAccess, b)
	requireStatus(t, resp, http.StatusNotFound, body)

	e := mustDecodeError(t, body)
	if e.Error != "item not in cart" {
		t.Fatalf("error=%q want %q", e.Error, "item not in cart")
	}
}

func Test_Cart_RequiresAuth(t *testing.T) {
	c := NewTestClient(t)
	ctx := context.Background()

	resp, body := c.doJSON(ctx, t, http.MethodGet, "/cart", "", nil)
	requireStatus(t, resp, http.StatusUnauthorized, body)
}
