package models

import (
	"time"
)

// Tipos de bordado aceitos pelo formulário de personalização.
const (
	EmbroideryName           = "name"
	EmbroideryNameAndDrawing = "name_and_drawing"
	EmbroideryDrawing        = "drawing"
	EmbroideryNone           = "none"
)

// CartItem, representa um item do carrinho. A identidade do item é a tripla
// (ProductID, SelectedSize, SelectedColor); os campos de personalização do
// bordado não fazem parte da chave e podem ser alterados depois de adicionar.
type CartItem struct {
	ProductID     int     `json:"product_id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	Image         string  `json:"image,omitempty"`
	Quantity      int     `json:"quantity"`
	SelectedSize  string  `json:"selected_size,omitempty"`
	SelectedColor string  `json:"selected_color,omitempty"`

	// Personalização do bordado
	EmbroideryType    string `json:"embroidery_type,omitempty"` // name, name_and_drawing, drawing, none
	CustomText        string `json:"custom_text,omitempty"`
	DesignDescription string `json:"design_description,omitempty"`
	EmbroideryColor   string `json:"embroidery_color,omitempty"`
	Gender            string `json:"gender,omitempty"` // girl, boy, unisex
}

// Matches, verifica se o item corresponde à chave (produto, tamanho, cor).
func (ci *CartItem) Matches(productID int, size, color string) bool {
	return ci.ProductID == productID && ci.SelectedSize == size && ci.SelectedColor == color
}

// Subtotal, retorna o valor do item (quantidade x preço).
func (ci *CartItem) Subtotal() float64 {
	return float64(ci.Quantity) * ci.Price
}

// Customization, carrega alterações parciais dos campos de bordado. Campos
// nil são ignorados na atualização.
type Customization struct {
	EmbroideryType    *string `json:"embroidery_type,omitempty"`
	CustomText        *string `json:"custom_text,omitempty"`
	DesignDescription *string `json:"design_description,omitempty"`
	EmbroideryColor   *string `json:"embroidery_color,omitempty"`
	Gender            *string `json:"gender,omitempty"`
}

// Cart, representa o carrinho de uma sessão de navegador.
type Cart struct {
	SessionID string     `json:"session_id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TotalItems, soma as quantidades de todos os itens. Sempre recalculado,
// nunca armazenado, para não ficar defasado.
func (c *Cart) TotalItems() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// TotalPrice, soma quantidade x preço de todos os itens.
func (c *Cart) TotalPrice() float64 {
	total := 0.0
	for _, item := range c.Items {
		total += item.Subtotal()
	}
	return total
}
