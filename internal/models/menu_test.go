package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMenuItemWireShape(t *testing.T) {
	item := MenuItem{Name: "Fries", Description: "Crispy golden french fries", Price: 2.99, Quantity: 100}
	item.ID = 7

	data, err := json.Marshal(item)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	// ORM bookkeeping stays off the wire.
	assert.Equal(t, map[string]interface{}{
		"name":        "Fries",
		"description": "Crispy golden french fries",
		"price":       2.99,
		"quantity":    float64(100),
	}, decoded)
}
