package game

import "github.com/pixil98/go-essentials/internal/snbt"

func requireFloat(c snbt.Compound, name string) (float64, error) {
	t, ok := c.Get(name)
	if !ok {
		return 0, &MissingFieldError{Field: name}
	}
	return toFloat(name, t)
}

func optionalFloat(c snbt.Compound, name string) (float64, error) {
	t, ok := c.Get(name)
	if !ok {
		return 0, nil
	}
	return toFloat(name, t)
}

func toFloat(name string, t snbt.Tag) (float64, error) {
	f, ok := snbt.AsFloat64(t)
	if !ok {
		return 0, &FieldTypeError{Field: name, Want: "number"}
	}
	return f, nil
}

func optionalInt(c snbt.Compound, name string, def int) (int, error) {
	t, ok := c.Get(name)
	if !ok {
		return def, nil
	}
	n, ok := snbt.AsInt(t)
	if !ok {
		return 0, &FieldTypeError{Field: name, Want: "integer"}
	}
	return n, nil
}

func requireString(c snbt.Compound, name string) (string, error) {
	t, ok := c.Get(name)
	if !ok {
		return "", &MissingFieldError{Field: name}
	}
	s, ok := t.(snbt.String)
	if !ok {
		return "", &FieldTypeError{Field: name, Want: "string"}
	}
	return string(s), nil
}

func requireCompound(c snbt.Compound, name string) (snbt.Compound, error) {
	t, ok := c.Get(name)
	if !ok {
		return nil, &MissingFieldError{Field: name}
	}
	sub, ok := t.(snbt.Compound)
	if !ok {
		return nil, &FieldTypeError{Field: name, Want: "compound"}
	}
	return sub, nil
}
