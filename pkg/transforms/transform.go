package transforms

import (
	"fmt"
	"reflect"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// TransformDefinition overrides fields of matching records. A record matches
// when every Match field equals the given string and the optional When
// expression evaluates to true against the record.
type TransformDefinition struct {
	Type  string
	Match map[string]string
	When  string
	Data  map[string]interface{}

	program *vm.Program
}

func (t *TransformDefinition) Compile() error {
	if t.When == "" {
		t.program = nil
		return nil
	}

	program, err := expr.Compile(t.When, expr.AsBool())
	if err != nil {
		return fmt.Errorf("transform condition %q: %w", t.When, err)
	}
	t.program = program

	return nil
}

func (t *TransformDefinition) Transform(inputValue reflect.Value) error {
	if !inputValue.IsValid() || inputValue.Kind() != reflect.Struct {
		return nil
	}

	if t.Type != "" && t.Type != inputValue.Type().String() {
		return nil
	}

	for key, value := range t.Match {
		field := inputValue.FieldByName(key)
		if !field.IsValid() || fmt.Sprint(field.Interface()) != value {
			return nil
		}
	}

	if t.program != nil {
		output, err := expr.Run(t.program, inputValue.Interface())
		if err != nil {
			return fmt.Errorf("transform condition %q: %w", t.When, err)
		}

		if matched, _ := output.(bool); !matched {
			return nil
		}
	}

	for key, value := range t.Data {
		field := inputValue.FieldByName(key)
		if !field.IsValid() || !field.CanSet() {
			return fmt.Errorf("transform field %s does not exist on %s", key, inputValue.Type())
		}

		if err := setField(field, value); err != nil {
			return fmt.Errorf("transform field %s: %w", key, err)
		}
	}

	return nil
}

func setField(field reflect.Value, value interface{}) error {
	if field.Kind() == reflect.String {
		field.SetString(fmt.Sprint(value))
		return nil
	}

	newValue := reflect.ValueOf(value)
	if !newValue.IsValid() || !newValue.Type().ConvertibleTo(field.Type()) {
		return fmt.Errorf("cannot use %v as %s", value, field.Type())
	}

	field.Set(newValue.Convert(field.Type()))

	return nil
}

type Set []*TransformDefinition

func (s Set) Compile() error {
	for _, definition := range s {
		if err := definition.Compile(); err != nil {
			return err
		}
	}

	return nil
}

// Transform applies every definition in order to a pointer to a record or to
// a slice of record pointers
func (s Set) Transform(input interface{}) error {
	if len(s) == 0 {
		return nil
	}

	inputValueOf := reflect.ValueOf(input)

	if inputValueOf.Kind() == reflect.Slice {
		for i := 0; i < inputValueOf.Len(); i++ {
			if err := s.transformValue(inputValueOf.Index(i)); err != nil {
				return err
			}
		}

		return nil
	}

	return s.transformValue(inputValueOf)
}

func (s Set) transformValue(inputValueOf reflect.Value) error {
	if inputValueOf.Kind() != reflect.Pointer || inputValueOf.IsNil() {
		return nil
	}

	inputValue := inputValueOf.Elem()

	for _, transformDef := range s {
		if err := transformDef.Transform(inputValue); err != nil {
			return err
		}
	}

	return nil
}
