package validation

const (
	MsgNameEmpty            = "El nombre de Producto no puede ir vacio"
	MsgPriceNotNumeric      = "Valor no válido"
	MsgPriceEmpty           = "El Precio del producto no puede ir vacio"
	MsgPriceInvalid         = "Precio no valido"
	MsgAvailabilityNotValid = "Valor para disponibilidad no válido"
)

func productRules() []Rule {
	return []Rule{
		Field("name", "required", MsgNameEmpty),
		Field("price", "numeric", MsgPriceNotNumeric),
		Field("price", "required", MsgPriceEmpty),
		Field("price", "positive", MsgPriceInvalid),
	}
}

// CreateProductRules validates POST /products bodies.
func CreateProductRules() []Rule {
	return productRules()
}

// UpdateProductRules validates PUT /products/:id bodies.
func UpdateProductRules() []Rule {
	return append(productRules(),
		Field("availability", "oneof=true false 1 0", MsgAvailabilityNotValid),
	)
}
