package validation_test

import (
	"testing"

	"catalog/internal/validation"

	"github.com/stretchr/testify/assert"
)

func messages(issues []validation.Issue) []string {
	out := make([]string, 0, len(issues))
	for _, issue := range issues {
		out = append(out, issue.Msg)
	}
	return out
}

func TestCreateProductRules(t *testing.T) {
	tests := []struct {
		name string
		body map[string]interface{}
		want []string
	}{
		{
			name: "empty body",
			body: map[string]interface{}{},
			want: []string{
				validation.MsgNameEmpty,
				validation.MsgPriceNotNumeric,
				validation.MsgPriceEmpty,
				validation.MsgPriceInvalid,
			},
		},
		{
			name: "zero price",
			body: map[string]interface{}{"name": "Monitor Curvo", "price": 0.0},
			want: []string{validation.MsgPriceInvalid},
		},
		{
			name: "negative price",
			body: map[string]interface{}{"name": "Monitor Curvo", "price": -10.0},
			want: []string{validation.MsgPriceInvalid},
		},
		{
			name: "text price",
			body: map[string]interface{}{"name": "Monitor Curvo", "price": "Hola"},
			want: []string{validation.MsgPriceNotNumeric, validation.MsgPriceInvalid},
		},
		{
			name: "numeric string price",
			body: map[string]interface{}{"name": "Monitor Curvo", "price": "300"},
			want: []string{},
		},
		{
			name: "valid",
			body: map[string]interface{}{"name": "Mouse - Testing", "price": 50.0},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := validation.Run(tt.body, validation.CreateProductRules())
			assert.Equal(t, tt.want, messages(issues))
		})
	}
}

func TestUpdateProductRules(t *testing.T) {
	issues := validation.Run(map[string]interface{}{}, validation.UpdateProductRules())
	assert.Len(t, issues, 5)
	assert.Equal(t, validation.MsgAvailabilityNotValid, issues[4].Msg)

	issues = validation.Run(map[string]interface{}{
		"name": "Monitor Curvo 34 Pulgadas", "price": 0.0, "availability": true,
	}, validation.UpdateProductRules())
	assert.Equal(t, []string{validation.MsgPriceInvalid}, messages(issues))

	issues = validation.Run(map[string]interface{}{
		"name": "Monitor", "price": 300.0, "availability": "maybe",
	}, validation.UpdateProductRules())
	assert.Equal(t, []string{validation.MsgAvailabilityNotValid}, messages(issues))

	issues = validation.Run(map[string]interface{}{
		"name": "Monitor", "price": 300.0, "availability": false,
	}, validation.UpdateProductRules())
	assert.Empty(t, issues)
}

func TestIssueShape(t *testing.T) {
	issues := validation.Run(map[string]interface{}{"name": "Monitor", "price": "Hola"}, validation.CreateProductRules())
	assert.Equal(t, validation.Issue{
		Type:     "field",
		Value:    "Hola",
		Msg:      validation.MsgPriceNotNumeric,
		Path:     "price",
		Location: "body",
	}, issues[0])

	issues = validation.Run(map[string]interface{}{}, validation.CreateProductRules())
	assert.Nil(t, issues[0].Value, "missing fields carry no value")
}

func TestConversions(t *testing.T) {
	assert.Equal(t, "", validation.String(nil))
	assert.Equal(t, "50", validation.String(50.0))
	assert.Equal(t, "0.5", validation.String(0.5))
	assert.Equal(t, "true", validation.String(true))

	assert.Equal(t, 300.0, validation.Float("300"))
	assert.Equal(t, 49.99, validation.Float(49.99))

	assert.True(t, validation.Bool(true))
	assert.True(t, validation.Bool("1"))
	assert.False(t, validation.Bool(false))
	assert.False(t, validation.Bool("0"))
}
