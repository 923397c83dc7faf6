package services

import (
	"sync"

	"artecomcarinho/internal/models"
)

// NotificationHub, guarda em memória os avisos pendentes de cada sessão.
// A página busca e a fila esvazia na leitura, o que faz as notificações
// serem exibidas uma única vez.
type NotificationHub struct {
	mu     sync.Mutex
	queues map[string][]models.Notification
}

// NewNotificationHub, cria o hub vazio.
func NewNotificationHub() *NotificationHub {
	return &NotificationHub{queues: map[string][]models.Notification{}}
}

// Push, enfileira um aviso para a sessão.
func (h *NotificationHub) Push(sessionID string, n models.Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.queues[sessionID] = append(h.queues[sessionID], n)
}

// Drain, retorna os avisos pendentes e limpa a fila da sessão.
func (h *NotificationHub) Drain(sessionID string) []models.Notification {
	h.mu.Lock()
	defer h.mu.Unlock()
	pending := h.queues[sessionID]
	delete(h.queues, sessionID)
	return pending
}

// Drop, descarta a fila da sessão sem entregar. Usado no logout e na
// expiração por inatividade.
func (h *NotificationHub) Drop(sessionID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.queues, sessionID)
}
