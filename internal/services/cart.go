package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"artecomcarinho/internal/models"
	"artecomcarinho/internal/store"
)

// CartService, gerencia o carrinho de compras de cada sessão de navegador.
// A identidade de um item é a tripla (produto, tamanho, cor): adicionar a
// mesma tripla soma quantidades em vez de criar outra linha.
type CartService struct {
	store store.Store
}

// NewCartService, cria um novo CartService.
func NewCartService(st store.Store) *CartService {
	return &CartService{store: st}
}

// GetCart, retorna o carrinho da sessão, criando um vazio se não existir.
func (cs *CartService) GetCart(sessionID string) *models.Cart {
	cart, err := cs.store.GetCart(sessionID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Printf("CartService.GetCart - erro ao ler carrinho %s: %v", sessionID, err)
		}
		return &models.Cart{
			SessionID: sessionID,
			Items:     []models.CartItem{},
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}
	}
	return cart
}

// AddItem, adiciona um item ao carrinho. Se já existir linha com o mesmo
// produto, tamanho e cor, a quantidade é somada; os campos de personalização
// da linha existente ficam como estavam.
func (cs *CartService) AddItem(sessionID string, item models.CartItem) error {
	if item.Quantity <= 0 {
		return fmt.Errorf("quantidade inválida: %d", item.Quantity)
	}

	cart := cs.GetCart(sessionID)

	for i := range cart.Items {
		if cart.Items[i].Matches(item.ProductID, item.SelectedSize, item.SelectedColor) {
			cart.Items[i].Quantity += item.Quantity
			log.Printf("CartService.AddItem - produto %d (%s/%s) já no carrinho, quantidade agora %d",
				item.ProductID, item.SelectedSize, item.SelectedColor, cart.Items[i].Quantity)
			return cs.store.SaveCart(cart)
		}
	}

	cart.Items = append(cart.Items, item)
	log.Printf("CartService.AddItem - novo item: produto %d (%s/%s) x%d",
		item.ProductID, item.SelectedSize, item.SelectedColor, item.Quantity)
	return cs.store.SaveCart(cart)
}

// UpdateQuantity, muda a quantidade de uma linha. Quantidade zero ou
// negativa remove a linha (política documentada, não é erro). Linha
// inexistente é ignorada em silêncio e nunca cria item novo.
func (cs *CartService) UpdateQuantity(sessionID string, productID, quantity int, size, color string) error {
	cart := cs.GetCart(sessionID)

	for i := range cart.Items {
		if cart.Items[i].Matches(productID, size, color) {
			if quantity <= 0 {
				cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
				log.Printf("CartService.UpdateQuantity - produto %d removido (quantidade %d)", productID, quantity)
			} else {
				cart.Items[i].Quantity = quantity
			}
			return cs.store.SaveCart(cart)
		}
	}

	log.Printf("CartService.UpdateQuantity - produto %d (%s/%s) não está no carrinho, ignorando", productID, size, color)
	return nil
}

// UpdateCustomization, altera os campos de bordado de uma linha sem tocar
// na chave nem na quantidade. Campos nil ficam como estão.
func (cs *CartService) UpdateCustomization(sessionID string, productID int, size, color string, fields models.Customization) error {
	cart := cs.GetCart(sessionID)

	for i := range cart.Items {
		if !cart.Items[i].Matches(productID, size, color) {
			continue
		}
		item := &cart.Items[i]
		if fields.EmbroideryType != nil {
			item.EmbroideryType = *fields.EmbroideryType
		}
		if fields.CustomText != nil {
			item.CustomText = *fields.CustomText
		}
		if fields.DesignDescription != nil {
			item.DesignDescription = *fields.DesignDescription
		}
		if fields.EmbroideryColor != nil {
			item.EmbroideryColor = *fields.EmbroideryColor
		}
		if fields.Gender != nil {
			item.Gender = *fields.Gender
		}
		return cs.store.SaveCart(cart)
	}

	log.Printf("CartService.UpdateCustomization - produto %d (%s/%s) não está no carrinho, ignorando", productID, size, color)
	return nil
}

// RemoveItem, remove uma linha do carrinho. Linha inexistente é ignorada.
func (cs *CartService) RemoveItem(sessionID string, productID int, size, color string) error {
	cart := cs.GetCart(sessionID)

	for i := range cart.Items {
		if cart.Items[i].Matches(productID, size, color) {
			cart.Items = append(cart.Items[:i], cart.Items[i+1:]...)
			return cs.store.SaveCart(cart)
		}
	}
	return nil
}

// ClearCart, esvazia o carrinho. Chamado uma única vez, depois que o
// checkout deu certo no backend; checkout com falha preserva o carrinho.
func (cs *CartService) ClearCart(sessionID string) error {
	if err := cs.store.DeleteCart(sessionID); err != nil && !errors.Is(err, store.ErrNotFound) {
		log.Printf("CartService.ClearCart - erro ao limpar carrinho %s: %v", sessionID, err)
		return err
	}
	return nil
}

// Migrate, move o carrinho de um ID de sessão para outro. Usado no login,
// quando o cookie é trocado e o carrinho anônimo precisa seguir o usuário.
func (cs *CartService) Migrate(oldSessionID, newSessionID string) error {
	cart, err := cs.store.GetCart(oldSessionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}
	cart.SessionID = newSessionID
	if err := cs.store.SaveCart(cart); err != nil {
		return err
	}
	return cs.store.DeleteCart(oldSessionID)
}

// Count, retorna o total de unidades no carrinho (para o selo do cabeçalho).
func (cs *CartService) Count(sessionID string) int {
	return cs.GetCart(sessionID).TotalItems()
}
