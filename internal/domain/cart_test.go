package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexOf(t *testing.T) {
	cart := Cart{{ID: 3}, {ID: 1}, {ID: 7}}

	assert.Equal(t, 0, cart.IndexOf(3))
	assert.Equal(t, 2, cart.IndexOf(7))
	assert.Equal(t, -1, cart.IndexOf(99))
}

func TestFind(t *testing.T) {
	cart := Cart{{ID: 1, Amount: 4}}

	product, ok := cart.Find(1)
	assert.True(t, ok)
	assert.Equal(t, 4, product.Amount)

	_, ok = cart.Find(2)
	assert.False(t, ok)
}

func TestClone_IsIndependent(t *testing.T) {
	cart := Cart{{ID: 1, Amount: 1}}
	clone := cart.Clone()
	clone[0].Amount = 9

	assert.Equal(t, 1, cart[0].Amount)
}

func TestProduct_SnapshotFieldNames(t *testing.T) {
	payload, err := json.Marshal(Product{ID: 1, Name: "Canvas Low-Top", Price: 139.90, ImageURL: "u", Amount: 2})
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(payload, &fields))
	for _, key := range []string{"id", "name", "price", "imageUrl", "amount"} {
		assert.Contains(t, fields, key)
	}
}
