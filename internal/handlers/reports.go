package handlers

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"artecomcarinho/internal/api"

	"github.com/gin-gonic/gin"
)

// ReportsPage, mostra as opções de relatório do painel.
func (h *Handler) ReportsPage(c *gin.Context) {
	c.HTML(http.StatusOK, "admin_reports.html", h.baseData(c, "Relatórios"))
}

// ExportOrdersCSV, baixa os pedidos do período em CSV.
func (h *Handler) ExportOrdersCSV(c *gin.Context) {
	orders, err := h.userAPI(c).GetAllOrders(c.Request.Context(), c.Query("status"))
	if err != nil {
		log.Printf("ExportOrdersCSV - falha ao listar pedidos: %v", err)
		c.String(http.StatusBadGateway, api.UserMessage(err))
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="pedidos.csv"`)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"Pedido", "Numero", "Situacao", "Total", "Data"})
	for _, order := range orders {
		_ = w.Write([]string{
			strconv.Itoa(order.ID),
			order.OrderNumber,
			order.Status,
			fmt.Sprintf("%.2f", order.TotalAmount),
			order.OrderDate,
		})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Printf("ExportOrdersCSV - erro ao escrever CSV: %v", err)
	}
}

// ExportTopProductsCSV, baixa o relatório de mais vendidos em CSV.
func (h *Handler) ExportTopProductsCSV(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	top, err := h.userAPI(c).GetTopProducts(c.Request.Context(), limit)
	if err != nil {
		log.Printf("ExportTopProductsCSV - falha ao buscar mais vendidos: %v", err)
		c.String(http.StatusBadGateway, api.UserMessage(err))
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="mais_vendidos.csv"`)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"Produto", "Nome", "Quantidade Vendida"})
	for _, p := range top {
		_ = w.Write([]string{strconv.Itoa(p.ProductID), p.Name, strconv.Itoa(p.QuantitySold)})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		log.Printf("ExportTopProductsCSV - erro ao escrever CSV: %v", err)
	}
}
