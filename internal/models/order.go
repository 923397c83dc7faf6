package models

// Situações de pedido conhecidas pelo front. O backend é dono da máquina de
// estados; aqui os valores servem apenas para exibição e para a lista de
// transições que geram notificação.
const (
	StatusPending      = "PENDENTE"
	StatusConfirmed    = "CONFIRMADO"
	StatusInProduction = "EM_PRODUCAO"
	StatusReady        = "PRONTO"
	StatusShipped      = "ENVIADO"
	StatusDelivered    = "ENTREGUE"
	StatusCancelled    = "CANCELADO"
)

// StatusLabel, traduz a situação do pedido para exibição. Situações
// desconhecidas voltam como chegaram, sem erro.
func StatusLabel(status string) string {
	switch status {
	case StatusPending:
		return "Aguardando confirmação"
	case StatusConfirmed:
		return "Confirmado"
	case StatusInProduction:
		return "Em produção"
	case StatusReady:
		return "Pronto para envio"
	case StatusShipped:
		return "Enviado"
	case StatusDelivered:
		return "Entregue"
	case StatusCancelled:
		return "Cancelado"
	}
	return status
}

// OrderSummary, resumo de pedido como o backend devolve em GET /orders/my.
type OrderSummary struct {
	ID          int     `json:"id"`
	OrderNumber string  `json:"orderNumber"`
	Status      string  `json:"status"`
	TotalAmount float64 `json:"totalAmount"`
	OrderDate   string  `json:"orderDate"`
}

// OrderItem, item de um pedido já fechado.
type OrderItem struct {
	ProductID          int     `json:"productId"`
	Name               string  `json:"name"`
	Price              float64 `json:"price"`
	Quantity           int     `json:"quantity"`
	Size               string  `json:"size,omitempty"`
	Color              string  `json:"color,omitempty"`
	CustomizationNotes string  `json:"customizationNotes,omitempty"`
}

// OrderDetail, pedido completo como o backend devolve em GET /orders/{id}.
type OrderDetail struct {
	OrderSummary
	CustomerName  string      `json:"customerName"`
	Email         string      `json:"email"`
	Phone         string      `json:"phone"`
	Address       string      `json:"address"`
	Items         []OrderItem `json:"items"`
	PaymentMethod string      `json:"paymentMethod"`
	Notes         string      `json:"notes,omitempty"`
	AdminNotes    string      `json:"adminNotes,omitempty"`
}

// CheckoutCustomer, bloco de contato enviado no fechamento do pedido.
type CheckoutCustomer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// CheckoutItem, item enviado em POST /public/orders.
type CheckoutItem struct {
	ProductID          int    `json:"productId"`
	Quantity           int    `json:"quantity"`
	Size               string `json:"size,omitempty"`
	Color              string `json:"color,omitempty"`
	CustomizationNotes string `json:"customizationNotes,omitempty"`
}

// CheckoutRequest, corpo de POST /public/orders.
type CheckoutRequest struct {
	Customer      CheckoutCustomer `json:"customer"`
	Items         []CheckoutItem   `json:"items"`
	Notes         string           `json:"notes,omitempty"`
	PaymentMethod string           `json:"paymentMethod"`
}

// CheckoutResponse, resposta do backend com o número do pedido criado.
type CheckoutResponse struct {
	ID          int    `json:"id"`
	OrderNumber string `json:"orderNumber"`
}

// OrderForm, dados do formulário de checkout.
type OrderForm struct {
	CustomerName  string `form:"customerName" binding:"required"`
	Email         string `form:"email" binding:"required,email"`
	Phone         string `form:"phone" binding:"required"`
	Address       string `form:"address" binding:"required"`
	PaymentMethod string `form:"paymentMethod"`
	Notes         string `form:"notes"`
}

// OrderStats, agregados usados no painel e nos relatórios.
type OrderStats struct {
	TotalOrders  int            `json:"totalOrders"`
	TotalRevenue float64        `json:"totalRevenue"`
	ByStatus     map[string]int `json:"byStatus"`
}
