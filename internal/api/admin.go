package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"artecomcarinho/internal/models"
)

// CreateProduct, cadastra um produto (painel administrativo).
func (c *Client) CreateProduct(ctx context.Context, product *models.Product) (*models.Product, error) {
	var created models.Product
	if err := c.do(ctx, "POST", "/products", product, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProduct, atualiza um produto existente.
func (c *Client) UpdateProduct(ctx context.Context, product *models.Product) error {
	return c.do(ctx, "PUT", fmt.Sprintf("/products/%d", product.ID), product, nil)
}

// DeleteProduct, remove um produto do catálogo.
func (c *Client) DeleteProduct(ctx context.Context, id int) error {
	return c.do(ctx, "DELETE", fmt.Sprintf("/products/%d", id), nil, nil)
}

// GetAllOrders, lista todos os pedidos, com filtro opcional de situação.
func (c *Client) GetAllOrders(ctx context.Context, status string) ([]models.OrderSummary, error) {
	path := "/orders"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var orders []models.OrderSummary
	if err := c.do(ctx, "GET", path, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateOrderStatus, muda a situação de um pedido. As regras de transição
// são do backend; aqui só repassamos.
func (c *Client) UpdateOrderStatus(ctx context.Context, id int, status, adminNotes string) error {
	body := map[string]string{"status": status}
	if adminNotes != "" {
		body["adminNotes"] = adminNotes
	}
	return c.do(ctx, "PUT", fmt.Sprintf("/orders/%d/status", id), body, nil)
}

// CancelOrder, cancela um pedido. O backend pode recusar (por exemplo,
// pedido já entregue) e a recusa volta como erro de regra de negócio.
func (c *Client) CancelOrder(ctx context.Context, id int) error {
	return c.do(ctx, "POST", fmt.Sprintf("/orders/%d/cancel", id), nil, nil)
}

// GetProductionBoard, busca o kanban de produção.
func (c *Client) GetProductionBoard(ctx context.Context) (*models.ProductionBoard, error) {
	var board models.ProductionBoard
	if err := c.do(ctx, "GET", "/production/board", nil, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

// AdvanceProduction, move um pedido para a próxima etapa de produção.
func (c *Client) AdvanceProduction(ctx context.Context, orderID int) error {
	return c.do(ctx, "POST", fmt.Sprintf("/production/orders/%d/next", orderID), nil, nil)
}

// RevertProduction, volta um pedido para a etapa anterior de produção.
func (c *Client) RevertProduction(ctx context.Context, orderID int) error {
	return c.do(ctx, "POST", fmt.Sprintf("/production/orders/%d/prev", orderID), nil, nil)
}

// GetCustomers, lista clientes para o painel, com busca opcional.
func (c *Client) GetCustomers(ctx context.Context, search string) ([]models.CustomerSummary, error) {
	path := "/customers/admin"
	if search != "" {
		path += "?search=" + url.QueryEscape(search)
	}
	var customers []models.CustomerSummary
	if err := c.do(ctx, "GET", path, nil, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// GetOrderStats, busca os agregados de pedidos para o painel e relatórios.
func (c *Client) GetOrderStats(ctx context.Context, period string) (*models.OrderStats, error) {
	path := "/orders/stats/summary"
	if period != "" {
		path += "?period=" + url.QueryEscape(period)
	}
	var stats models.OrderStats
	if err := c.do(ctx, "GET", path, nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetTopProducts, busca os produtos mais vendidos.
func (c *Client) GetTopProducts(ctx context.Context, limit int) ([]models.TopProduct, error) {
	path := "/products/stats/top"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var top []models.TopProduct
	if err := c.do(ctx, "GET", path, nil, &top); err != nil {
		return nil, err
	}
	return top, nil
}
