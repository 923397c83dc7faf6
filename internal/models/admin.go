package models

// ProductionColumn, coluna do kanban de produção devolvida pelo backend em
// GET /production/board. A ordem das colunas vem do backend.
type ProductionColumn struct {
	Stage  string         `json:"stage"`
	Label  string         `json:"label"`
	Orders []OrderSummary `json:"orders"`
}

// ProductionBoard, quadro de produção completo.
type ProductionBoard struct {
	Columns []ProductionColumn `json:"columns"`
}

// CustomerSummary, linha da listagem administrativa de clientes.
type CustomerSummary struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone,omitempty"`
	TotalOrders int     `json:"totalOrders"`
	TotalSpent  float64 `json:"totalSpent"`
}

// Notification, aviso de mudança de situação de pedido mostrado ao cliente.
type Notification struct {
	OrderID   int    `json:"order_id"`
	Status    string `json:"status"`
	Message   string `json:"message"`
	CreatedAt int64  `json:"created_at"`
}
