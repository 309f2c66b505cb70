package validate_test

import (
	"testing"

	"github.com/ardanlabs/toychain/foundation/validate"
)

func Test_Check(t *testing.T) {
	type tx struct {
		From string `json:"from" validate:"required"`
		Kind string `json:"transactionType" validate:"omitempty,oneof=domestic international"`
	}

	if err := validate.Check(tx{From: "A"}); err != nil {
		t.Fatalf("Should accept a valid value: %s", err)
	}

	err := validate.Check(tx{Kind: "galactic"})
	fields := validate.GetFieldErrors(err)
	if fields == nil {
		t.Fatalf("Should return field errors, got %v", err)
	}

	m := fields.Fields()
	if _, exists := m["from"]; !exists {
		t.Fatalf("Should name the field by its json tag, got %v", m)
	}
	if _, exists := m["transactionType"]; !exists {
		t.Fatalf("Should reject an unknown kind, got %v", m)
	}
}
