package handlers

import (
	"context"
	"fmt"
	"reflect"
	"strings"

	"github.com/specialistvlad/nodegraph/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// DecodeParams populates the fields of the struct pointed to by target from
// params. Fields are matched by their `param` tag, or by field name when the
// tag is absent. Missing and null parameters leave the field untouched.
func DecodeParams(ctx context.Context, params map[string]cty.Value, target any) error {
	logger := ctxlog.FromContext(ctx)

	structVal := reflect.ValueOf(target)
	if structVal.Kind() != reflect.Ptr || structVal.IsNil() || structVal.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("decode target must be a non-nil pointer to a struct, got %T", target)
	}
	structVal = structVal.Elem()
	structType := structVal.Type()

	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		fieldVal := structVal.Field(i)
		if !fieldVal.CanSet() {
			continue
		}

		name := field.Name
		if tag := field.Tag.Get("param"); tag != "" {
			name = strings.Split(tag, ",")[0]
		}
		val, ok := params[name]
		if !ok || val.IsNull() {
			continue
		}
		if err := decode(val, fieldVal.Addr().Interface()); err != nil {
			return fmt.Errorf("parameter '%s': %w", name, err)
		}
		logger.Debug("Decoded operator parameter.", "name", name, "type", val.Type().FriendlyName())
	}
	return nil
}

// decode converts val to the cty type implied by the Go target and stores it.
func decode(val cty.Value, goVal any) error {
	impliedType, err := gocty.ImpliedType(reflect.ValueOf(goVal).Elem().Interface())
	if err != nil {
		return gocty.FromCtyValue(val, goVal)
	}
	converted, err := convert.Convert(val, impliedType)
	if err != nil {
		return fmt.Errorf("cannot convert %s to %s: %w", val.Type().FriendlyName(), impliedType.FriendlyName(), err)
	}
	return gocty.FromCtyValue(converted, goVal)
}
