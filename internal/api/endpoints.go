package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"artecomcarinho/internal/models"
)

// GetProducts, lista o catálogo paginado. Categoria e busca são opcionais.
func (c *Client) GetProducts(ctx context.Context, page int, category, search string) (*models.ProductPage, error) {
	q := url.Values{}
	if page > 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if category != "" {
		q.Set("category", category)
	}
	if search != "" {
		q.Set("search", search)
	}
	path := "/products"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var result models.ProductPage
	if err := c.do(ctx, "GET", path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetProduct, busca um produto pelo ID.
func (c *Client) GetProduct(ctx context.Context, id int) (*models.Product, error) {
	var product models.Product
	if err := c.do(ctx, "GET", fmt.Sprintf("/products/%d", id), nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// SubmitOrder, envia o pedido de checkout. Quem valida estoque e preço é o
// backend; o carrinho local só é limpo se esta chamada der certo.
func (c *Client) SubmitOrder(ctx context.Context, req *models.CheckoutRequest) (*models.CheckoutResponse, error) {
	var resp models.CheckoutResponse
	if err := c.do(ctx, "POST", "/public/orders", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// GetMyOrders, lista os pedidos do usuário autenticado.
func (c *Client) GetMyOrders(ctx context.Context) ([]models.OrderSummary, error) {
	var orders []models.OrderSummary
	if err := c.do(ctx, "GET", "/orders/my", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// OrdersForToken, lista os pedidos do dono do token informado, sem mexer no
// token global do cliente. Usado pelo poller de situação de pedidos.
func (c *Client) OrdersForToken(ctx context.Context, token string) ([]models.OrderSummary, error) {
	return c.WithToken(token).GetMyOrders(ctx)
}

// GetOrder, busca um pedido do usuário autenticado.
func (c *Client) GetOrder(ctx context.Context, id int) (*models.OrderDetail, error) {
	var order models.OrderDetail
	if err := c.do(ctx, "GET", fmt.Sprintf("/orders/%d", id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// GetPublicOrder, busca um pedido pela rota pública de acompanhamento.
func (c *Client) GetPublicOrder(ctx context.Context, id int) (*models.OrderDetail, error) {
	var order models.OrderDetail
	if err := c.do(ctx, "GET", fmt.Sprintf("/public/orders/%d", id), nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// AuthResponse, resposta dos endpoints de credencial do backend.
type AuthResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Login, autentica no backend. O token do CAPTCHA vai junto; o backend é
// quem valida.
func (c *Client) Login(ctx context.Context, email, password, captchaToken string) (*AuthResponse, error) {
	body := map[string]string{
		"email":        email,
		"password":     password,
		"captchaToken": captchaToken,
	}
	var resp AuthResponse
	if err := c.do(ctx, "POST", "/auth/login", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register, cria a conta no backend e já devolve a sessão autenticada.
func (c *Client) Register(ctx context.Context, name, email, password string) (*AuthResponse, error) {
	body := map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}
	var resp AuthResponse
	if err := c.do(ctx, "POST", "/auth/register", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ForgotPassword, dispara o e-mail de recuperação de senha.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	return c.do(ctx, "POST", "/auth/forgot-password", map[string]string{"email": email}, nil)
}

// ResetPassword, troca a senha usando o token recebido por e-mail.
func (c *Client) ResetPassword(ctx context.Context, token, password string) error {
	body := map[string]string{"token": token, "password": password}
	return c.do(ctx, "POST", "/auth/reset-password", body, nil)
}

// Me, busca o perfil do usuário do token atual. Usado também no callback do
// login social para transformar o token da query em sessão.
func (c *Client) Me(ctx context.Context) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := c.do(ctx, "GET", "/users/me", nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile, atualiza os dados do usuário.
func (c *Client) UpdateProfile(ctx context.Context, id int, form *models.ProfileForm) error {
	body := map[string]string{
		"name":  form.Name,
		"email": form.Email,
		"phone": form.Phone,
	}
	return c.do(ctx, "PUT", fmt.Sprintf("/users/%d", id), body, nil)
}
