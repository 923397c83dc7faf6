package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"artecomcarinho/internal/api"
	"artecomcarinho/internal/models"

	"github.com/gin-gonic/gin"
)

// HomePage, renderiza a vitrine com os destaques do catálogo.
func (h *Handler) HomePage(c *gin.Context) {
	data := h.baseData(c, "Arte com Carinho - Enxoval bordado à mão")

	page, err := h.api.GetProducts(c.Request.Context(), 0, "", "")
	if err != nil {
		log.Printf("HomePage - falha ao buscar destaques: %v", err)
		data["loadError"] = api.UserMessage(err)
	} else {
		featured := page.Content
		if len(featured) > 6 {
			featured = featured[:6]
		}
		data["featured"] = featured
	}

	c.HTML(http.StatusOK, "home.html", data)
}

// ProductsPage, lista o catálogo com paginação, categoria e busca.
func (h *Handler) ProductsPage(c *gin.Context) {
	pageNum, _ := strconv.Atoi(c.Query("page"))
	category := c.Query("category")
	search := c.Query("search")

	data := h.baseData(c, "Produtos")
	data["category"] = category
	data["search"] = search

	page, err := h.api.GetProducts(c.Request.Context(), pageNum, category, search)
	if err != nil {
		log.Printf("ProductsPage - falha ao buscar catálogo: %v", err)
		data["loadError"] = api.UserMessage(err)
		c.HTML(http.StatusOK, "products.html", data)
		return
	}

	data["products"] = page.Content
	data["page"] = page.Number
	data["totalPages"] = page.TotalPages
	c.HTML(http.StatusOK, "products.html", data)
}

// ProductDetailPage, mostra um produto com as opções de tamanho, cor e
// personalização do bordado.
func (h *Handler) ProductDetailPage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/products")
		return
	}

	product, err := h.api.GetProduct(c.Request.Context(), id)
	if err != nil {
		if api.IsNotFound(err) {
			c.Redirect(http.StatusSeeOther, "/products")
			return
		}
		data := h.baseData(c, "Produto")
		data["loadError"] = api.UserMessage(err)
		c.HTML(http.StatusOK, "product_detail.html", data)
		return
	}

	data := h.baseData(c, product.Name)
	data["product"] = product
	c.HTML(http.StatusOK, "product_detail.html", data)
}

// CartPage, mostra o carrinho com os controles de quantidade e o formulário
// de personalização de cada item.
func (h *Handler) CartPage(c *gin.Context) {
	cart := h.cart.GetCart(h.sessionID(c))

	data := h.baseData(c, "Meu Carrinho")
	data["cart"] = cart
	data["totalItems"] = cart.TotalItems()
	data["totalPrice"] = cart.TotalPrice()
	c.HTML(http.StatusOK, "cart.html", data)
}

// AddToCart, adiciona um produto ao carrinho. Nome, preço e imagem vêm do
// backend na hora, para o carrinho não guardar preço digitado pelo cliente.
func (h *Handler) AddToCart(c *gin.Context) {
	productID, err := strconv.Atoi(c.PostForm("productId"))
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/products")
		return
	}
	quantity, err := strconv.Atoi(c.PostForm("quantity"))
	if err != nil || quantity <= 0 {
		quantity = 1
	}

	product, err := h.api.GetProduct(c.Request.Context(), productID)
	if err != nil {
		log.Printf("AddToCart - falha ao buscar produto %d: %v", productID, err)
		c.Redirect(http.StatusSeeOther, "/products")
		return
	}

	item := models.CartItem{
		ProductID:      product.ID,
		Name:           product.Name,
		Price:          product.Price,
		Image:          product.ImageURL,
		Quantity:       quantity,
		SelectedSize:   c.PostForm("size"),
		SelectedColor:  c.PostForm("color"),
		EmbroideryType: c.DefaultPostForm("embroideryType", models.EmbroideryNone),
		CustomText:     c.PostForm("customText"),
		Gender:         c.PostForm("gender"),
	}

	if err := h.cart.AddItem(h.sessionID(c), item); err != nil {
		log.Printf("AddToCart - erro ao adicionar produto %d: %v", productID, err)
	}
	c.Redirect(http.StatusSeeOther, "/cart")
}

// UpdateCartItem, muda a quantidade de uma linha. Quantidade zero remove.
func (h *Handler) UpdateCartItem(c *gin.Context) {
	productID, err := strconv.Atoi(c.PostForm("productId"))
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/cart")
		return
	}
	quantity, err := strconv.Atoi(c.PostForm("quantity"))
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/cart")
		return
	}

	if err := h.cart.UpdateQuantity(h.sessionID(c), productID, quantity, c.PostForm("size"), c.PostForm("color")); err != nil {
		log.Printf("UpdateCartItem - erro ao atualizar produto %d: %v", productID, err)
	}
	c.Redirect(http.StatusSeeOther, "/cart")
}

// CustomizeCartItem, grava os campos de bordado de uma linha do carrinho.
func (h *Handler) CustomizeCartItem(c *gin.Context) {
	productID, err := strconv.Atoi(c.PostForm("productId"))
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/cart")
		return
	}

	fields := models.Customization{}
	if v, ok := c.GetPostForm("embroideryType"); ok {
		fields.EmbroideryType = &v
	}
	if v, ok := c.GetPostForm("customText"); ok {
		fields.CustomText = &v
	}
	if v, ok := c.GetPostForm("designDescription"); ok {
		fields.DesignDescription = &v
	}
	if v, ok := c.GetPostForm("embroideryColor"); ok {
		fields.EmbroideryColor = &v
	}
	if v, ok := c.GetPostForm("gender"); ok {
		fields.Gender = &v
	}

	if err := h.cart.UpdateCustomization(h.sessionID(c), productID, c.PostForm("size"), c.PostForm("color"), fields); err != nil {
		log.Printf("CustomizeCartItem - erro ao personalizar produto %d: %v", productID, err)
	}
	c.Redirect(http.StatusSeeOther, "/cart")
}

// RemoveFromCart, tira uma linha do carrinho.
func (h *Handler) RemoveFromCart(c *gin.Context) {
	productID, err := strconv.Atoi(c.PostForm("productId"))
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/cart")
		return
	}

	if err := h.cart.RemoveItem(h.sessionID(c), productID, c.PostForm("size"), c.PostForm("color")); err != nil {
		log.Printf("RemoveFromCart - erro ao remover produto %d: %v", productID, err)
	}
	c.Redirect(http.StatusSeeOther, "/cart")
}

// GetCartCount, retorna o total de unidades para o selo do cabeçalho.
func (h *Handler) GetCartCount(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"count": h.cart.Count(h.sessionID(c))})
}

// CheckoutPage, mostra o formulário de fechamento do pedido.
func (h *Handler) CheckoutPage(c *gin.Context) {
	cart := h.cart.GetCart(h.sessionID(c))
	if len(cart.Items) == 0 {
		c.Redirect(http.StatusSeeOther, "/cart")
		return
	}

	data := h.baseData(c, "Finalizar Pedido")
	data["cart"] = cart
	data["totalPrice"] = cart.TotalPrice()
	if session := h.currentSession(c); session != nil {
		data["form"] = models.OrderForm{CustomerName: session.Name, Email: session.Email}
	}
	c.HTML(http.StatusOK, "checkout.html", data)
}

// HandleCheckout, envia o pedido ao backend. Sucesso limpa o carrinho e vai
// para a confirmação; falha preserva o carrinho e o formulário preenchido
// para o cliente tentar de novo.
func (h *Handler) HandleCheckout(c *gin.Context) {
	sessionID := h.sessionID(c)
	cart := h.cart.GetCart(sessionID)
	if len(cart.Items) == 0 {
		c.Redirect(http.StatusSeeOther, "/cart")
		return
	}

	var form models.OrderForm
	if err := c.ShouldBind(&form); err != nil {
		data := h.baseData(c, "Finalizar Pedido")
		data["cart"] = cart
		data["totalPrice"] = cart.TotalPrice()
		data["form"] = form
		data["error"] = "Preencha todos os campos obrigatórios."
		c.HTML(http.StatusBadRequest, "checkout.html", data)
		return
	}

	req := &models.CheckoutRequest{
		Customer: models.CheckoutCustomer{
			Name:    form.CustomerName,
			Email:   form.Email,
			Phone:   form.Phone,
			Address: form.Address,
		},
		Notes:         form.Notes,
		PaymentMethod: form.PaymentMethod,
	}
	for _, item := range cart.Items {
		req.Items = append(req.Items, models.CheckoutItem{
			ProductID:          item.ProductID,
			Quantity:           item.Quantity,
			Size:               item.SelectedSize,
			Color:              item.SelectedColor,
			CustomizationNotes: customizationNotes(item),
		})
	}

	resp, err := h.userAPI(c).SubmitOrder(c.Request.Context(), req)
	if err != nil {
		log.Printf("HandleCheckout - falha no pedido da sessão %s: %v", sessionID, err)
		data := h.baseData(c, "Finalizar Pedido")
		data["cart"] = cart
		data["totalPrice"] = cart.TotalPrice()
		data["form"] = form
		data["error"] = api.UserMessage(err)
		data["fieldErrors"] = api.FieldErrors(err)
		c.HTML(http.StatusOK, "checkout.html", data)
		return
	}

	// Só aqui o carrinho é limpo, nunca antes da resposta do backend.
	if err := h.cart.ClearCart(sessionID); err != nil {
		log.Printf("HandleCheckout - pedido %s criado mas carrinho não limpou: %v", resp.OrderNumber, err)
	}

	log.Printf("HandleCheckout - pedido %s criado para %s", resp.OrderNumber, form.Email)
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/order-success?number=%s&id=%d", resp.OrderNumber, resp.ID))
}

// OrderSuccessPage, confirma o pedido com o número para acompanhamento.
func (h *Handler) OrderSuccessPage(c *gin.Context) {
	data := h.baseData(c, "Pedido Recebido")
	data["orderNumber"] = c.Query("number")
	data["orderID"] = c.Query("id")
	c.HTML(http.StatusOK, "order_success.html", data)
}

// AboutPage, conta a história do ateliê.
func (h *Handler) AboutPage(c *gin.Context) {
	c.HTML(http.StatusOK, "about.html", h.baseData(c, "Sobre o Ateliê"))
}

// ContactPage, mostra o formulário de contato.
func (h *Handler) ContactPage(c *gin.Context) {
	c.HTML(http.StatusOK, "contact.html", h.baseData(c, "Fale Conosco"))
}

// HandleContact, envia a mensagem de contato por e-mail.
func (h *Handler) HandleContact(c *gin.Context) {
	var form models.ContactForm
	if err := c.ShouldBind(&form); err != nil {
		data := h.baseData(c, "Fale Conosco")
		data["error"] = "Preencha nome, e-mail e mensagem."
		data["form"] = form
		c.HTML(http.StatusBadRequest, "contact.html", data)
		return
	}

	if err := h.email.SendContactMessage(form.Name, form.Email, form.Message); err != nil {
		log.Printf("HandleContact - falha ao enviar mensagem de %s: %v", form.Email, err)
		data := h.baseData(c, "Fale Conosco")
		data["error"] = "Não conseguimos enviar sua mensagem agora. Tente novamente."
		data["form"] = form
		c.HTML(http.StatusOK, "contact.html", data)
		return
	}

	data := h.baseData(c, "Fale Conosco")
	data["success"] = "Mensagem enviada! Respondemos em até um dia útil."
	c.HTML(http.StatusOK, "contact.html", data)
}

// customizationNotes, resume a personalização de um item para o campo de
// observações do pedido, que é texto livre no backend.
func customizationNotes(item models.CartItem) string {
	if item.EmbroideryType == "" || item.EmbroideryType == models.EmbroideryNone {
		return ""
	}

	var parts []string
	switch item.EmbroideryType {
	case models.EmbroideryName:
		parts = append(parts, "Bordado de nome")
	case models.EmbroideryDrawing:
		parts = append(parts, "Bordado de desenho")
	case models.EmbroideryNameAndDrawing:
		parts = append(parts, "Bordado de nome e desenho")
	default:
		parts = append(parts, "Bordado: "+item.EmbroideryType)
	}
	if item.CustomText != "" {
		parts = append(parts, fmt.Sprintf("nome: %q", item.CustomText))
	}
	if item.DesignDescription != "" {
		parts = append(parts, "desenho: "+item.DesignDescription)
	}
	if item.EmbroideryColor != "" {
		parts = append(parts, "cor da linha: "+item.EmbroideryColor)
	}
	switch item.Gender {
	case "girl":
		parts = append(parts, "para menina")
	case "boy":
		parts = append(parts, "para menino")
	case "unisex":
		parts = append(parts, "unissex")
	}
	return strings.Join(parts, ", ")
}
