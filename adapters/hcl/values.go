package hcl

import (
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/shopspring/decimal"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"parking-fee/internal/errors"
)

// Price table expressions are literals: no variables or functions are in scope.
func attrValue(attr *hcl.Attribute, want cty.Type) (cty.Value, error) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, errors.Parsing("cannot evaluate "+attr.Name, diags)
	}
	if !val.IsWhollyKnown() || val.IsNull() {
		return cty.NilVal, errors.Newf(errors.TypeParsing, "%s must be set (%s)", attr.Name, attr.Range)
	}

	converted, err := convert.Convert(val, want)
	if err != nil {
		return cty.NilVal, errors.Wrapf(errors.TypeParsing, err, "%s must be a %s (%s)",
			attr.Name, want.FriendlyName(), attr.Range)
	}
	return converted, nil
}

func stringAttr(attr *hcl.Attribute) (string, error) {
	val, err := attrValue(attr, cty.String)
	if err != nil {
		return "", err
	}
	return val.AsString(), nil
}

// amountAttr reads a monetary value. Both 5.5 and "5.50" are accepted.
func amountAttr(attr *hcl.Attribute) (decimal.Decimal, error) {
	val, err := attrValue(attr, cty.Number)
	if err != nil {
		return decimal.Zero, err
	}
	amount, err := decimal.NewFromString(val.AsBigFloat().Text('f', -1))
	if err != nil {
		return decimal.Zero, errors.Wrapf(errors.TypeParsing, err, "%s is not a valid amount (%s)", attr.Name, attr.Range)
	}
	return amount, nil
}

func isTableFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".hcl", ".json":
		return true
	}
	return false
}
