package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artecomcarinho/internal/models"
)

func newStore(t *testing.T, path string) *JSONStore {
	t.Helper()
	st, err := NewJSONStore(path)
	require.NoError(t, err)
	return st
}

func TestCartNotFound(t *testing.T) {
	st := newStore(t, filepath.Join(t.TempDir(), "data.json"))

	_, err := st.GetCart("nada")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCartRoundTrip(t *testing.T) {
	st := newStore(t, filepath.Join(t.TempDir(), "data.json"))

	cart := &models.Cart{
		SessionID: "s1",
		Items: []models.CartItem{
			{ProductID: 10, Name: "Fralda de boca", Price: 35.9, Quantity: 2, SelectedSize: "M", SelectedColor: "Rosa", EmbroideryType: models.EmbroideryName, CustomText: "Alice"},
		},
		CreatedAt: time.Now(),
	}
	require.NoError(t, st.SaveCart(cart))

	got, err := st.GetCart("s1")
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Alice", got.Items[0].CustomText)
	assert.Equal(t, "Rosa", got.Items[0].SelectedColor)
}

func TestCartSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	st := newStore(t, path)
	require.NoError(t, st.SaveCart(&models.Cart{
		SessionID: "s1",
		Items:     []models.CartItem{{ProductID: 10, Quantity: 1}},
	}))

	reopened := newStore(t, path)
	got, err := reopened.GetCart("s1")
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)
}

func TestDeleteCart(t *testing.T) {
	st := newStore(t, filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, st.SaveCart(&models.Cart{SessionID: "s1"}))

	require.NoError(t, st.DeleteCart("s1"))
	_, err := st.GetCart("s1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetCartReturnsCopy(t *testing.T) {
	st := newStore(t, filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, st.SaveCart(&models.Cart{
		SessionID: "s1",
		Items:     []models.CartItem{{ProductID: 10, Quantity: 1}},
	}))

	got, err := st.GetCart("s1")
	require.NoError(t, err)
	got.Items[0].Quantity = 99

	again, err := st.GetCart("s1")
	require.NoError(t, err)
	assert.Equal(t, 1, again.Items[0].Quantity)
}

func TestSessionRoundTripAndDelete(t *testing.T) {
	st := newStore(t, filepath.Join(t.TempDir(), "data.json"))

	session := &models.AuthSession{Token: "tok", Name: "Maria", Role: models.RoleCustomer, LastActivity: 123}
	require.NoError(t, st.SaveSession("s1", session))

	got, err := st.GetSession("s1")
	require.NoError(t, err)
	assert.Equal(t, "tok", got.Token)

	require.NoError(t, st.DeleteSession("s1"))
	_, err = st.GetSession("s1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAllSessionsListsEveryone(t *testing.T) {
	st := newStore(t, filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, st.SaveSession("a", &models.AuthSession{Token: "t1"}))
	require.NoError(t, st.SaveSession("b", &models.AuthSession{Token: "t2"}))

	sessions, err := st.AllSessions()
	require.NoError(t, err)
	assert.Len(t, sessions, 2)
	assert.Equal(t, "t1", sessions["a"].Token)
}

func TestLoadToleratesEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte{}, 0644))

	st := newStore(t, path)
	_, err := st.GetCart("s1")
	assert.ErrorIs(t, err, ErrNotFound)
}
