package models

// Product, representa um produto do catálogo. Os dados são do backend; o
// front nunca altera preço ou estoque localmente.
type Product struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	ImageURL    string   `json:"imageUrl"`
	Category    string   `json:"category"`
	Stock       int      `json:"stock"`
	Sizes       []string `json:"sizes,omitempty"`
	Colors      []string `json:"colors,omitempty"`
	Active      bool     `json:"active"`
}

// ProductPage, envelope de paginação do backend (campo "content").
type ProductPage struct {
	Content       []Product `json:"content"`
	TotalPages    int       `json:"totalPages"`
	TotalElements int       `json:"totalElements"`
	Number        int       `json:"number"`
	Size          int       `json:"size"`
}

// ProductForm, dados do formulário de produto do painel administrativo.
type ProductForm struct {
	Name        string  `form:"name" binding:"required"`
	Description string  `form:"description" binding:"required"`
	Price       float64 `form:"price" binding:"required"`
	Category    string  `form:"category" binding:"required"`
	Stock       int     `form:"stock"`
	Sizes       string  `form:"sizes"`
	Colors      string  `form:"colors"`
	ImageURL    string  `form:"imageUrl"`
	Active      bool    `form:"active"`
}

// TopProduct, item do relatório de produtos mais vendidos.
type TopProduct struct {
	ProductID    int    `json:"productId"`
	Name         string `json:"name"`
	QuantitySold int    `json:"quantitySold"`
}
