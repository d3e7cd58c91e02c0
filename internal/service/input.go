package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	pkgerrors "go-inventory-qr/pkg/errors"
)

// FieldValue is a form field as submitted. JSON bodies may carry it as a
// string, a number, a boolean or null.
type FieldValue string

func (v *FieldValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*v = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FieldValue(s)
	default:
		*v = FieldValue(data)
	}
	return nil
}

func (v FieldValue) blank() bool {
	return strings.TrimSpace(string(v)) == ""
}

// truthy follows HTML checkbox conventions.
func (v FieldValue) truthy() bool {
	switch strings.ToLower(strings.TrimSpace(string(v))) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

// nonNegativeInt parses a quantity field.
func (v FieldValue) nonNegativeInt(field string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(string(v)))
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s must be a whole number", field))
	}
	if n < 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s cannot be negative", field))
	}
	return n, nil
}

// id parses a reference field. ok is false for blank or malformed values.
func (v FieldValue) id() (uint, bool) {
	n, err := strconv.ParseUint(strings.TrimSpace(string(v)), 10, 0)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// MaterialInput is a material form submission.
type MaterialInput struct {
	Name                FieldValue `json:"name" form:"name" validate:"max=100"`
	Description         FieldValue `json:"description" form:"description" validate:"max=200"`
	Quantity            FieldValue `json:"quantity" form:"quantity"`
	AlertRequisitionQty FieldValue `json:"alert_requisition_qty" form:"alert_requisition_qty"`
	AlertStockQty       FieldValue `json:"alert_stock_qty" form:"alert_stock_qty"`
	CategoryID          FieldValue `json:"category_id" form:"category_id"`
	// Zero resets the quantity to 0 on update, ignoring Quantity.
	Zero FieldValue `json:"zero" form:"zero"`
}

// ZeroRequested reports whether the reset-to-zero box was ticked.
func (in MaterialInput) ZeroRequested() bool {
	return in.Zero.truthy()
}
