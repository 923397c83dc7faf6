package services

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artecomcarinho/internal/models"
	"artecomcarinho/internal/store"
)

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	st, err := store.NewJSONStore(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, err)
	return st
}

func fralda(qty int, size, color string) models.CartItem {
	return models.CartItem{
		ProductID:     10,
		Name:          "Fralda de boca bordada",
		Price:         35.90,
		Quantity:      qty,
		SelectedSize:  size,
		SelectedColor: color,
	}
}

func TestAddItemMergesSameVariant(t *testing.T) {
	cs := NewCartService(newTestStore(t))

	require.NoError(t, cs.AddItem("s1", fralda(1, "M", "Rosa")))
	require.NoError(t, cs.AddItem("s1", fralda(2, "M", "Rosa")))

	cart := cs.GetCart("s1")
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)
}

func TestAddItemKeepsDistinctVariantsSeparate(t *testing.T) {
	cs := NewCartService(newTestStore(t))

	require.NoError(t, cs.AddItem("s1", fralda(1, "M", "Rosa")))
	require.NoError(t, cs.AddItem("s1", fralda(1, "P", "Rosa")))
	require.NoError(t, cs.AddItem("s1", fralda(1, "M", "Azul")))

	cart := cs.GetCart("s1")
	assert.Len(t, cart.Items, 3)
}

func TestAddItemSumOverManyAdds(t *testing.T) {
	cs := NewCartService(newTestStore(t))

	total := 0
	for _, qty := range []int{1, 2, 5, 1} {
		require.NoError(t, cs.AddItem("s1", fralda(qty, "G", "Amarelo")))
		total += qty
	}

	cart := cs.GetCart("s1")
	require.Len(t, cart.Items, 1)
	assert.Equal(t, total, cart.Items[0].Quantity)
	assert.Equal(t, total, cart.TotalItems())
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	cs := NewCartService(newTestStore(t))

	assert.Error(t, cs.AddItem("s1", fralda(0, "M", "Rosa")))
	assert.Error(t, cs.AddItem("s1", fralda(-2, "M", "Rosa")))
	assert.Empty(t, cs.GetCart("s1").Items)
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	cs := NewCartService(newTestStore(t))
	require.NoError(t, cs.AddItem("s1", fralda(2, "M", "Rosa")))

	require.NoError(t, cs.UpdateQuantity("s1", 10, 0, "M", "Rosa"))
	assert.Empty(t, cs.GetCart("s1").Items)
}

func TestUpdateQuantityUnknownKeyIsNoOp(t *testing.T) {
	cs := NewCartService(newTestStore(t))
	require.NoError(t, cs.AddItem("s1", fralda(2, "M", "Rosa")))

	// Produto que não está no carrinho: nada acontece e nada é criado.
	require.NoError(t, cs.UpdateQuantity("s1", 99, 5, "M", "Rosa"))
	// Mesma id, variante diferente: também não mexe em nada.
	require.NoError(t, cs.UpdateQuantity("s1", 10, 5, "G", "Rosa"))

	cart := cs.GetCart("s1")
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestUpdateQuantitySetsNewValue(t *testing.T) {
	cs := NewCartService(newTestStore(t))
	require.NoError(t, cs.AddItem("s1", fralda(2, "M", "Rosa")))

	require.NoError(t, cs.UpdateQuantity("s1", 10, 7, "M", "Rosa"))
	assert.Equal(t, 7, cs.GetCart("s1").Items[0].Quantity)
}

func TestUpdateCustomizationOnlyTouchesGivenFields(t *testing.T) {
	cs := NewCartService(newTestStore(t))
	item := fralda(1, "M", "Rosa")
	item.EmbroideryType = models.EmbroideryName
	item.CustomText = "Alice"
	require.NoError(t, cs.AddItem("s1", item))

	cor := "Rosa bebê"
	require.NoError(t, cs.UpdateCustomization("s1", 10, "M", "Rosa", models.Customization{
		EmbroideryColor: &cor,
	}))

	got := cs.GetCart("s1").Items[0]
	assert.Equal(t, "Alice", got.CustomText)
	assert.Equal(t, models.EmbroideryName, got.EmbroideryType)
	assert.Equal(t, "Rosa bebê", got.EmbroideryColor)
	assert.Equal(t, 1, got.Quantity)
}

func TestUpdateCustomizationUnknownKeyIsNoOp(t *testing.T) {
	cs := NewCartService(newTestStore(t))
	texto := "Miguel"
	require.NoError(t, cs.UpdateCustomization("s1", 10, "M", "Rosa", models.Customization{CustomText: &texto}))
	assert.Empty(t, cs.GetCart("s1").Items)
}

func TestRemoveItemMatchesExactVariant(t *testing.T) {
	cs := NewCartService(newTestStore(t))
	require.NoError(t, cs.AddItem("s1", fralda(1, "M", "Rosa")))
	require.NoError(t, cs.AddItem("s1", fralda(1, "P", "Rosa")))

	require.NoError(t, cs.RemoveItem("s1", 10, "M", "Rosa"))

	cart := cs.GetCart("s1")
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "P", cart.Items[0].SelectedSize)
}

func TestClearCartZeroesTotals(t *testing.T) {
	cs := NewCartService(newTestStore(t))
	require.NoError(t, cs.AddItem("s1", fralda(3, "M", "Rosa")))

	require.NoError(t, cs.ClearCart("s1"))

	cart := cs.GetCart("s1")
	assert.Zero(t, cart.TotalItems())
	assert.Zero(t, cart.TotalPrice())
	assert.Empty(t, cart.Items)
}

func TestTotalsAreDerivedFromLines(t *testing.T) {
	cs := NewCartService(newTestStore(t))
	require.NoError(t, cs.AddItem("s1", fralda(2, "M", "Rosa")))

	toalha := models.CartItem{ProductID: 20, Name: "Toalha de banho", Price: 89.50, Quantity: 1}
	require.NoError(t, cs.AddItem("s1", toalha))

	cart := cs.GetCart("s1")
	assert.Equal(t, 3, cart.TotalItems())
	assert.InDelta(t, 2*35.90+89.50, cart.TotalPrice(), 0.001)
}

func TestCartsAreIsolatedBySession(t *testing.T) {
	cs := NewCartService(newTestStore(t))
	require.NoError(t, cs.AddItem("s1", fralda(1, "M", "Rosa")))

	assert.Empty(t, cs.GetCart("s2").Items)
	assert.Equal(t, 1, cs.Count("s1"))
	assert.Zero(t, cs.Count("s2"))
}

func TestMigrateMovesCartToNewSession(t *testing.T) {
	cs := NewCartService(newTestStore(t))
	require.NoError(t, cs.AddItem("anon", fralda(2, "M", "Rosa")))

	require.NoError(t, cs.Migrate("anon", "logged"))

	assert.Empty(t, cs.GetCart("anon").Items)
	cart := cs.GetCart("logged")
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}
