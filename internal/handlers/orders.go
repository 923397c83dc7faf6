package handlers

import (
	"log"
	"net/http"
	"strconv"

	"artecomcarinho/internal/api"

	"github.com/gin-gonic/gin"
)

// OrdersPage, lista os pedidos do usuário logado.
func (h *Handler) OrdersPage(c *gin.Context) {
	data := h.baseData(c, "Meus Pedidos")

	orders, err := h.userAPI(c).GetMyOrders(c.Request.Context())
	if err != nil {
		log.Printf("OrdersPage - falha ao listar pedidos: %v", err)
		if api.IsAuth(err) {
			h.UserLogout(c)
			return
		}
		data["loadError"] = api.UserMessage(err)
		c.HTML(http.StatusOK, "orders.html", data)
		return
	}

	data["orders"] = orders
	c.HTML(http.StatusOK, "orders.html", data)
}

// OrderDetailPage, mostra um pedido do usuário logado.
func (h *Handler) OrderDetailPage(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/orders")
		return
	}

	order, err := h.userAPI(c).GetOrder(c.Request.Context(), id)
	if err != nil {
		log.Printf("OrderDetailPage - falha ao buscar pedido %d: %v", id, err)
		if api.IsNotFound(err) {
			c.Redirect(http.StatusSeeOther, "/orders")
			return
		}
		data := h.baseData(c, "Pedido")
		data["loadError"] = api.UserMessage(err)
		c.HTML(http.StatusOK, "order_detail.html", data)
		return
	}

	data := h.baseData(c, "Pedido "+order.OrderNumber)
	data["order"] = order
	c.HTML(http.StatusOK, "order_detail.html", data)
}

// CancelOrder, pede o cancelamento ao backend. Recusas de regra de negócio
// (pedido já entregue, por exemplo) voltam como mensagem na própria página.
func (h *Handler) CancelOrder(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/orders")
		return
	}

	if err := h.userAPI(c).CancelOrder(c.Request.Context(), id); err != nil {
		log.Printf("CancelOrder - falha ao cancelar pedido %d: %v", id, err)
		order, loadErr := h.userAPI(c).GetOrder(c.Request.Context(), id)
		data := h.baseData(c, "Pedido")
		data["error"] = api.UserMessage(err)
		if loadErr == nil {
			data["order"] = order
		}
		c.HTML(http.StatusOK, "order_detail.html", data)
		return
	}

	c.Redirect(http.StatusSeeOther, "/orders")
}

// OrderTrackingPage, página pública de acompanhamento de pedido.
func (h *Handler) OrderTrackingPage(c *gin.Context) {
	c.HTML(http.StatusOK, "order_tracking.html", h.baseData(c, "Acompanhar Pedido"))
}

// TrackOrder, busca um pedido pela rota pública usando o número informado.
func (h *Handler) TrackOrder(c *gin.Context) {
	idStr := c.PostForm("orderId")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		data := h.baseData(c, "Acompanhar Pedido")
		data["error"] = "Informe o número do pedido que veio na confirmação."
		c.HTML(http.StatusBadRequest, "order_tracking.html", data)
		return
	}

	order, err := h.api.GetPublicOrder(c.Request.Context(), id)
	if err != nil {
		log.Printf("TrackOrder - falha ao buscar pedido %d: %v", id, err)
		data := h.baseData(c, "Acompanhar Pedido")
		if api.IsNotFound(err) {
			data["error"] = "Não encontramos um pedido com esse número."
		} else {
			data["error"] = api.UserMessage(err)
		}
		c.HTML(http.StatusOK, "order_tracking.html", data)
		return
	}

	data := h.baseData(c, "Acompanhar Pedido")
	data["order"] = order
	c.HTML(http.StatusOK, "order_tracking.html", data)
}
