package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
		wantErr  bool
	}{
		{name: "international", raw: "+79148556840", expected: "+79148556840"},
		{name: "national with eight", raw: "8 914 855-68-40", expected: "+79148556840"},
		{name: "too short", raw: "+7914", wantErr: true},
		{name: "not a number", raw: "call me", wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			phone, err := NormalizePhone(testCase.raw, "RU")
			if testCase.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expected, phone)
		})
	}
}

func TestCheckLines(t *testing.T) {
	one, zero, seven, huge := 1, 0, 7, 3000000000

	errs := &ValidationError{}
	ids := checkLines(errs, &[]OrderLinePayload{
		{Product: &seven, Quantity: &one},
		{Product: &seven, Quantity: &zero},
		{Quantity: &one},
		{Product: &seven, Quantity: &huge},
	})

	assert.Equal(t, []int{7}, ids)
	assert.Equal(t, []FieldError{
		{Field: "products[1].quantity", Message: "Ensure this value is greater than or equal to 1."},
		{Field: "products[2].product", Message: msgRequired},
		{Field: "products[3].quantity", Message: "Ensure this value is less than or equal to 2147483647."},
	}, errs.Fields)
	assert.True(t, errors.Is(errs, ErrValidation))
	assert.Equal(t, "products[1].quantity: Ensure this value is greater than or equal to 1.; products[2].product: This field is required.; products[3].quantity: Ensure this value is less than or equal to 2147483647.", errs.Error())
}

func TestCheckText(t *testing.T) {
	blank := "   "
	long := "Очень длинное имя, которое точно не помещается в пятьдесят символов поля"
	name := "  Иван "

	errs := &ValidationError{}
	assert.Equal(t, "", checkText(errs, "firstname", nil, 50))
	assert.Equal(t, "", checkText(errs, "lastname", &blank, 50))
	assert.Equal(t, "", checkText(errs, "address", &long, 50))
	assert.Equal(t, "Иван", checkText(errs, "firstname", &name, 50))

	require.Len(t, errs.Fields, 3)
	assert.Equal(t, msgRequired, errs.Fields[0].Message)
	assert.Equal(t, msgBlank, errs.Fields[1].Message)
	assert.Equal(t, "Ensure this field has no more than 50 characters.", errs.Fields[2].Message)
}
