package services

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"artecomcarinho/internal/models"
)

// OrderSource, busca os pedidos do usuário dono do token. Implementado pelo
// cliente da API.
type OrderSource interface {
	OrdersForToken(ctx context.Context, token string) ([]models.OrderSummary, error)
}

// Situações que geram aviso ao cliente quando um pedido muda para elas.
// Demais mudanças (confirmação, entrega etc.) aparecem na página de pedidos
// sem alarde.
var notifiableStatuses = map[string]bool{
	models.StatusInProduction: true,
	models.StatusShipped:      true,
}

// StatusPoller, observa os pedidos de cada sessão autenticada em intervalos
// fixos e compara com a foto anterior. Só mudança de situação em um pedido
// já visto gera aviso; a primeira busca nunca notifica, senão todo login
// viraria uma enxurrada de avisos antigos.
type StatusPoller struct {
	source   OrderSource
	hub      *NotificationHub
	interval time.Duration

	mu       sync.Mutex
	watchers map[string]context.CancelFunc
	previous map[string]map[int]string // sessão -> pedido -> situação
}

// NewStatusPoller, cria o poller parado.
func NewStatusPoller(source OrderSource, hub *NotificationHub, interval time.Duration) *StatusPoller {
	return &StatusPoller{
		source:   source,
		hub:      hub,
		interval: interval,
		watchers: map[string]context.CancelFunc{},
		previous: map[string]map[int]string{},
	}
}

// Enable, começa a observar os pedidos da sessão. Chamado no login; chamar
// de novo para a mesma sessão não cria segundo observador.
func (p *StatusPoller) Enable(sessionID, token string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, running := p.watchers[sessionID]; running {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	p.watchers[sessionID] = cancel

	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.pollOnce(ctx, sessionID, token)
			}
		}
	}()
	log.Printf("StatusPoller.Enable - observando pedidos da sessão %s", sessionID)
}

// Disable, para de observar a sessão e descarta a foto anterior e os avisos
// não entregues. Um login seguinte recomeça do zero.
func (p *StatusPoller) Disable(sessionID string) {
	p.mu.Lock()
	cancel, running := p.watchers[sessionID]
	delete(p.watchers, sessionID)
	delete(p.previous, sessionID)
	p.mu.Unlock()

	if running {
		cancel()
		p.hub.Drop(sessionID)
		log.Printf("StatusPoller.Disable - sessão %s fora da observação", sessionID)
	}
}

// Stop, desliga todos os observadores. Usado no shutdown.
func (p *StatusPoller) Stop() {
	p.mu.Lock()
	watchers := p.watchers
	p.watchers = map[string]context.CancelFunc{}
	p.previous = map[string]map[int]string{}
	p.mu.Unlock()

	for _, cancel := range watchers {
		cancel()
	}
}

// pollOnce, faz uma rodada: busca os pedidos e compara com a foto anterior.
// Falha de rede só pula a rodada; a foto anterior fica guardada e a próxima
// rodada tenta de novo, sem avisar o usuário.
func (p *StatusPoller) pollOnce(ctx context.Context, sessionID, token string) {
	orders, err := p.source.OrdersForToken(ctx, token)
	if err != nil {
		log.Printf("StatusPoller.pollOnce - falha ao buscar pedidos da sessão %s: %v", sessionID, err)
		return
	}

	current := make(map[int]string, len(orders))
	for _, order := range orders {
		current[order.ID] = order.Status
	}

	p.mu.Lock()
	prev, seen := p.previous[sessionID]
	p.previous[sessionID] = current
	p.mu.Unlock()

	if !seen {
		// Primeira foto: só serve de base para a próxima comparação.
		return
	}

	for id, status := range current {
		prevStatus, existed := prev[id]
		if !existed || prevStatus == status || !notifiableStatuses[status] {
			continue
		}
		p.hub.Push(sessionID, models.Notification{
			OrderID:   id,
			Status:    status,
			Message:   notificationMessage(id, status),
			CreatedAt: time.Now().UnixMilli(),
		})
		log.Printf("StatusPoller.pollOnce - pedido %d da sessão %s mudou %s -> %s", id, sessionID, prevStatus, status)
	}
}

// notificationMessage, monta o texto do aviso para a situação nova.
func notificationMessage(orderID int, status string) string {
	switch status {
	case models.StatusInProduction:
		return fmt.Sprintf("Seu pedido #%d entrou em produção! Já estamos bordando com carinho.", orderID)
	case models.StatusShipped:
		return fmt.Sprintf("Seu pedido #%d foi enviado! Em breve chega até você.", orderID)
	}
	return fmt.Sprintf("Seu pedido #%d agora está: %s", orderID, models.StatusLabel(status))
}
