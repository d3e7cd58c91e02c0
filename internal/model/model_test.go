package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterialAlerts(t *testing.T) {
	tests := []struct {
		name     string
		material Material
		want     Alerts
	}{
		{"unset thresholds", Material{Quantity: 0}, Alerts{}},
		{"above both", Material{Quantity: 10, AlertRequisitionQty: 5, AlertStockQty: 2}, Alerts{}},
		{"requisition reached", Material{Quantity: 5, AlertRequisitionQty: 5, AlertStockQty: 2}, Alerts{Requisition: true}},
		{"both reached", Material{Quantity: 1, AlertRequisitionQty: 5, AlertStockQty: 2}, Alerts{Requisition: true, Stock: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.material.Alerts())
		})
	}
}

func TestUserPasswordAndActivity(t *testing.T) {
	u := User{Username: "ana"}
	require.NoError(t, u.SetPassword("s3cret"))
	assert.NotEqual(t, "s3cret", u.Password)
	assert.True(t, u.CheckPassword("s3cret"))
	assert.False(t, u.CheckPassword("wrong"))

	assert.False(t, u.IsActive())
	u.Approved = true
	assert.True(t, u.IsActive())
}

func TestUserJSONHidesSecrets(t *testing.T) {
	u := User{Username: "ana", Password: "hash", TokenVersion: "v"}
	raw, err := json.Marshal(u)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "hash")
	assert.NotContains(t, string(raw), "token_version")
}
