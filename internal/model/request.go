package model

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type CreateProductRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Discount    float64 `json:"discount"`
	Category    string  `json:"category"`
	Brand       string  `json:"brand"`
	Stock       int     `json:"stock"`
	// Image is an optional data URL; the decoded bytes go to the asset store.
	Image string `json:"image"`
}

type AddToCartRequest struct {
	ProductID string `json:"product_id"`
}

type RemoveFromCartRequest struct {
	ProductID string `json:"product_id"`
}

type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type ValidateCouponRequest struct {
	Code string `json:"code"`
}

type CheckoutItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type CreateCheckoutRequest struct {
	Items      []CheckoutItem `json:"items"`
	CouponCode string         `json:"coupon_code"`
}

type CheckoutSuccessRequest struct {
	SessionID string `json:"session_id"`
}
