package validator

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	validator := New()

	require.NotNil(t, validator)
	require.NotNil(t, validator.Errors)
	require.Equal(t, 0, len(validator.Errors))
}

func TestValidator_AddError(t *testing.T) {
	validator := New()
	validator.AddError("question", "Question is required")
	validator.AddError("question", "second message is dropped")
	if len(validator.Errors) != 1 {
		t.Error("validator.Errors should contain one entry")
	}
	if validator.Errors["question"] != "Question is required" {
		t.Error("validator.Errors[question] should keep the first message")
	}
}

func TestValidator_Check(t *testing.T) {
	validator := New()
	validator.Check(false, "amount", "Amount must be positive")
	validator.Check(true, "outcome_id", "never recorded")
	if len(validator.Errors) != 1 {
		t.Error("validator.Errors should contain one entry")
	}
	if validator.Errors["amount"] != "Amount must be positive" {
		t.Error("validator.Errors[amount] should contain the correct error message")
	}
}

func TestValidator_Valid(t *testing.T) {
	validator := New()
	if !validator.Valid() {
		t.Error("validator.Valid() should return true")
	}
	validator.Errors["question"] = "Question is required"
	if validator.Valid() {
		t.Error("validator.Valid() should return false")
	}
}
