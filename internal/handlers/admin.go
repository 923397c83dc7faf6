package handlers

import (
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"artecomcarinho/internal/api"
	"artecomcarinho/internal/models"

	"github.com/gin-gonic/gin"
)

// AdminPage, painel inicial com os agregados de pedidos e os produtos mais
// vendidos.
func (h *Handler) AdminPage(c *gin.Context) {
	data := h.baseData(c, "Painel do Ateliê")
	userAPI := h.userAPI(c)

	stats, err := userAPI.GetOrderStats(c.Request.Context(), c.DefaultQuery("period", "month"))
	if err != nil {
		log.Printf("AdminPage - falha ao buscar agregados: %v", err)
		data["loadError"] = api.UserMessage(err)
		c.HTML(http.StatusOK, "admin.html", data)
		return
	}
	data["stats"] = stats

	top, err := userAPI.GetTopProducts(c.Request.Context(), 5)
	if err != nil {
		log.Printf("AdminPage - falha ao buscar mais vendidos: %v", err)
	} else {
		data["topProducts"] = top
	}

	c.HTML(http.StatusOK, "admin.html", data)
}

// AdminProductsPage, lista o catálogo para gestão.
func (h *Handler) AdminProductsPage(c *gin.Context) {
	data := h.baseData(c, "Produtos - Painel")

	page, err := h.userAPI(c).GetProducts(c.Request.Context(), 0, "", c.Query("search"))
	if err != nil {
		log.Printf("AdminProductsPage - falha ao listar produtos: %v", err)
		data["loadError"] = api.UserMessage(err)
		c.HTML(http.StatusOK, "admin_products.html", data)
		return
	}

	data["products"] = page.Content
	c.HTML(http.StatusOK, "admin_products.html", data)
}

// productFromForm, monta o produto a partir do formulário do painel. Se
// vier arquivo de imagem, sobe para o serviço de upload antes.
func (h *Handler) productFromForm(c *gin.Context, form *models.ProductForm) (*models.Product, error) {
	imageURL := form.ImageURL
	if file, header, err := c.Request.FormFile("imageFile"); err == nil {
		defer file.Close()
		uploaded, err := h.uploader.Upload(c.Request.Context(), header.Filename, file)
		if err != nil {
			return nil, err
		}
		imageURL = uploaded
	}

	return &models.Product{
		Name:        form.Name,
		Description: form.Description,
		Price:       form.Price,
		Category:    form.Category,
		Stock:       form.Stock,
		ImageURL:    imageURL,
		Sizes:       splitList(form.Sizes),
		Colors:      splitList(form.Colors),
		Active:      form.Active,
	}, nil
}

// AddProduct, cadastra um produto novo.
func (h *Handler) AddProduct(c *gin.Context) {
	var form models.ProductForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderAdminProductsError(c, "Preencha os campos obrigatórios do produto.")
		return
	}

	product, err := h.productFromForm(c, &form)
	if err != nil {
		log.Printf("AddProduct - falha no upload da imagem: %v", err)
		h.renderAdminProductsError(c, api.UserMessage(err))
		return
	}

	if _, err := h.userAPI(c).CreateProduct(c.Request.Context(), product); err != nil {
		log.Printf("AddProduct - falha ao cadastrar %q: %v", form.Name, err)
		h.renderAdminProductsError(c, api.UserMessage(err))
		return
	}

	c.Redirect(http.StatusSeeOther, "/admin/products")
}

// UpdateProduct, atualiza um produto existente.
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.PostForm("id"))
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/admin/products")
		return
	}

	var form models.ProductForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderAdminProductsError(c, "Preencha os campos obrigatórios do produto.")
		return
	}

	product, err := h.productFromForm(c, &form)
	if err != nil {
		log.Printf("UpdateProduct - falha no upload da imagem: %v", err)
		h.renderAdminProductsError(c, api.UserMessage(err))
		return
	}
	product.ID = id

	if err := h.userAPI(c).UpdateProduct(c.Request.Context(), product); err != nil {
		log.Printf("UpdateProduct - falha ao atualizar produto %d: %v", id, err)
		h.renderAdminProductsError(c, api.UserMessage(err))
		return
	}

	c.Redirect(http.StatusSeeOther, "/admin/products")
}

// DeleteProduct, remove um produto do catálogo.
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id inválido"})
		return
	}

	if err := h.userAPI(c).DeleteProduct(c.Request.Context(), id); err != nil {
		log.Printf("DeleteProduct - falha ao remover produto %d: %v", id, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": api.UserMessage(err)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) renderAdminProductsError(c *gin.Context, message string) {
	data := h.baseData(c, "Produtos - Painel")
	data["error"] = message
	if page, err := h.userAPI(c).GetProducts(c.Request.Context(), 0, "", ""); err == nil {
		data["products"] = page.Content
	}
	c.HTML(http.StatusOK, "admin_products.html", data)
}

// AdminOrdersPage, lista os pedidos com filtro de situação.
func (h *Handler) AdminOrdersPage(c *gin.Context) {
	status := c.Query("status")
	data := h.baseData(c, "Pedidos - Painel")
	data["statusFilter"] = status

	orders, err := h.userAPI(c).GetAllOrders(c.Request.Context(), status)
	if err != nil {
		log.Printf("AdminOrdersPage - falha ao listar pedidos: %v", err)
		data["loadError"] = api.UserMessage(err)
		c.HTML(http.StatusOK, "admin_orders.html", data)
		return
	}

	data["orders"] = orders
	c.HTML(http.StatusOK, "admin_orders.html", data)
}

// AdminOrderDetailPage, mostra um pedido no painel.
func (h *Handler) AdminOrderDetailPage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/admin/orders")
		return
	}

	order, err := h.userAPI(c).GetOrder(c.Request.Context(), id)
	if err != nil {
		log.Printf("AdminOrderDetailPage - falha ao buscar pedido %d: %v", id, err)
		c.Redirect(http.StatusSeeOther, "/admin/orders")
		return
	}

	data := h.baseData(c, "Pedido "+order.OrderNumber)
	data["order"] = order
	c.HTML(http.StatusOK, "admin_order_detail.html", data)
}

// AdminUpdateOrderStatus, muda a situação de um pedido. A validação da
// transição é do backend; recusa volta como mensagem.
func (h *Handler) AdminUpdateOrderStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/admin/orders")
		return
	}

	status := c.PostForm("status")
	adminNotes := c.PostForm("adminNotes")

	if err := h.userAPI(c).UpdateOrderStatus(c.Request.Context(), id, status, adminNotes); err != nil {
		log.Printf("AdminUpdateOrderStatus - falha no pedido %d -> %s: %v", id, status, err)
		order, loadErr := h.userAPI(c).GetOrder(c.Request.Context(), id)
		data := h.baseData(c, "Pedido")
		data["error"] = api.UserMessage(err)
		if loadErr == nil {
			data["order"] = order
		}
		c.HTML(http.StatusOK, "admin_order_detail.html", data)
		return
	}

	c.Redirect(http.StatusSeeOther, "/admin/orders/"+strconv.Itoa(id))
}

// AdminCancelOrder, cancela um pedido pelo painel.
func (h *Handler) AdminCancelOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/admin/orders")
		return
	}

	if err := h.userAPI(c).CancelOrder(c.Request.Context(), id); err != nil {
		log.Printf("AdminCancelOrder - falha ao cancelar pedido %d: %v", id, err)
		order, loadErr := h.userAPI(c).GetOrder(c.Request.Context(), id)
		data := h.baseData(c, "Pedido")
		data["error"] = api.UserMessage(err)
		if loadErr == nil {
			data["order"] = order
		}
		c.HTML(http.StatusOK, "admin_order_detail.html", data)
		return
	}

	c.Redirect(http.StatusSeeOther, "/admin/orders")
}

// ProductionBoardPage, mostra o kanban de produção como o backend devolve.
// A ordem das colunas e as regras de movimento são do backend.
func (h *Handler) ProductionBoardPage(c *gin.Context) {
	data := h.baseData(c, "Produção")

	board, err := h.userAPI(c).GetProductionBoard(c.Request.Context())
	if err != nil {
		log.Printf("ProductionBoardPage - falha ao buscar quadro: %v", err)
		data["loadError"] = api.UserMessage(err)
		c.HTML(http.StatusOK, "admin_production.html", data)
		return
	}

	data["board"] = board
	c.HTML(http.StatusOK, "admin_production.html", data)
}

// ProductionNext, avança um pedido de etapa e volta para o quadro.
func (h *Handler) ProductionNext(c *gin.Context) {
	h.moveProduction(c, true)
}

// ProductionPrev, volta um pedido de etapa e volta para o quadro.
func (h *Handler) ProductionPrev(c *gin.Context) {
	h.moveProduction(c, false)
}

func (h *Handler) moveProduction(c *gin.Context, forward bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/admin/production")
		return
	}

	if forward {
		err = h.userAPI(c).AdvanceProduction(c.Request.Context(), id)
	} else {
		err = h.userAPI(c).RevertProduction(c.Request.Context(), id)
	}
	if err != nil {
		log.Printf("moveProduction - falha ao mover pedido %d: %v", id, err)
		data := h.baseData(c, "Produção")
		data["error"] = api.UserMessage(err)
		if board, loadErr := h.userAPI(c).GetProductionBoard(c.Request.Context()); loadErr == nil {
			data["board"] = board
		}
		c.HTML(http.StatusOK, "admin_production.html", data)
		return
	}

	c.Redirect(http.StatusSeeOther, "/admin/production")
}

// StockPage, lista os produtos ordenados por estoque, menores primeiro,
// para enxergar o que precisa de reposição.
func (h *Handler) StockPage(c *gin.Context) {
	data := h.baseData(c, "Estoque")

	page, err := h.userAPI(c).GetProducts(c.Request.Context(), 0, "", "")
	if err != nil {
		log.Printf("StockPage - falha ao listar produtos: %v", err)
		data["loadError"] = api.UserMessage(err)
		c.HTML(http.StatusOK, "admin_stock.html", data)
		return
	}

	products := page.Content
	sort.Slice(products, func(i, j int) bool { return products[i].Stock < products[j].Stock })
	data["products"] = products
	c.HTML(http.StatusOK, "admin_stock.html", data)
}

// CustomersPage, lista os clientes com busca.
func (h *Handler) CustomersPage(c *gin.Context) {
	search := c.Query("search")
	data := h.baseData(c, "Clientes")
	data["search"] = search

	customers, err := h.userAPI(c).GetCustomers(c.Request.Context(), search)
	if err != nil {
		log.Printf("CustomersPage - falha ao listar clientes: %v", err)
		data["loadError"] = api.UserMessage(err)
		c.HTML(http.StatusOK, "admin_customers.html", data)
		return
	}

	data["customers"] = customers
	c.HTML(http.StatusOK, "admin_customers.html", data)
}

// splitList, quebra uma lista separada por vírgula ("P, M, G") em fatia.
func splitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
