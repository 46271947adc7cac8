package sdeyaml

import (
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"strings"
)

// Decoder reads and decodes one document from an input stream.
type Decoder struct {
	r io.Reader
}

// NewDecoder returns a new decoder that reads from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: r}
}

// Decode reads the document from the input stream and stores the result in
// the value pointed to by v.
func (dec *Decoder) Decode(v any) error {
	out, err := Load(dec.r)
	if err != nil {
		return err
	}
	return setValue(v, out)
}

// Unmarshal parses data and stores the result in the value pointed to by v.
// If v is nil or not a pointer, it returns an error.
//
// Document values map onto Go values as follows:
//   - integers become int64, floats float64, true/false bool
//   - plain and quoted strings become string
//   - sequences become []any, mappings map[string]any
//   - an open key with nothing below it becomes nil
//
// Struct fields are matched by name or by an `sde` tag:
//
//	TypeID int64 `sde:"typeID"`
//	Skip   int   `sde:"-"`
//
// To keep mapping entry order, unmarshal into a *Value instead.
func Unmarshal(data []byte, v any) error {
	out, err := Parse(data)
	if err != nil {
		return err
	}
	return setValue(v, out)
}

// setValue assigns a parsed tree to the user-provided destination.
func setValue(dst any, src *Value) error {
	if dst == nil {
		return errors.New("cannot unmarshal into a nil value")
	}

	val := reflect.ValueOf(dst)
	if val.Kind() != reflect.Ptr {
		return errors.New("destination is not a pointer")
	}
	if val.IsNil() {
		return errors.New("destination pointer is nil")
	}

	return setValueReflect(val.Elem(), src)
}

// setValueReflect recursively sets dst from the parsed value using reflection.
func setValueReflect(dst reflect.Value, src *Value) error {
	// A *Value destination receives the tree itself, order intact.
	if dst.Type() == reflect.TypeOf((*Value)(nil)) {
		dst.Set(reflect.ValueOf(src))
		return nil
	}

	// An interface destination receives the plain-Go conversion.
	if dst.Kind() == reflect.Interface && dst.NumMethod() == 0 {
		out := src.Interface()
		if out == nil {
			dst.Set(reflect.Zero(dst.Type()))
		} else {
			dst.Set(reflect.ValueOf(out))
		}
		return nil
	}

	if src.Kind() == KindNull {
		dst.Set(reflect.Zero(dst.Type()))
		return nil
	}

	switch dst.Kind() {
	case reflect.Struct:
		return setStruct(dst, src)
	case reflect.Slice:
		return setSlice(dst, src)
	case reflect.Map:
		return setMap(dst, src)
	case reflect.Ptr:
		return setPtr(dst, src)
	case reflect.String:
		return setString(dst, src)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return setInt(dst, src)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return setUint(dst, src)
	case reflect.Float32, reflect.Float64:
		return setFloat(dst, src)
	case reflect.Bool:
		return setBool(dst, src)
	default:
		return fmt.Errorf("cannot unmarshal %s into %s", src.Kind(), dst.Type())
	}
}

// setStruct unmarshals a mapping into a struct.
func setStruct(dst reflect.Value, src *Value) error {
	if src.Kind() != KindMapping {
		return fmt.Errorf("cannot unmarshal %s into struct", src.Kind())
	}

	structType := dst.Type()
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		fieldValue := dst.Field(i)

		// Skip unexported fields.
		if !fieldValue.CanSet() {
			continue
		}

		fieldName := getFieldName(field)
		if fieldName == "-" {
			continue
		}

		if srcValue, exists := src.Get(fieldName); exists {
			if err := setValueReflect(fieldValue, srcValue); err != nil {
				return fmt.Errorf("error setting field %s: %w", field.Name, err)
			}
		}
	}

	return nil
}

// getFieldName returns the mapping key for a struct field, honoring the
// `sde` tag. Anything after a comma in the tag is ignored.
func getFieldName(field reflect.StructField) string {
	tag := field.Tag.Get("sde")
	if tag == "" {
		return field.Name
	}
	if idx := strings.IndexByte(tag, ','); idx >= 0 {
		tag = tag[:idx]
	}
	if tag == "" {
		return field.Name
	}
	return tag
}

// setSlice unmarshals a sequence into a slice.
func setSlice(dst reflect.Value, src *Value) error {
	if src.Kind() != KindSequence {
		return fmt.Errorf("cannot unmarshal %s into slice", src.Kind())
	}

	n := src.Len()
	newSlice := reflect.MakeSlice(dst.Type(), n, n)
	for i := 0; i < n; i++ {
		if err := setValueReflect(newSlice.Index(i), src.Index(i)); err != nil {
			return fmt.Errorf("error setting slice element %d: %w", i, err)
		}
	}

	dst.Set(newSlice)
	return nil
}

// setMap unmarshals a mapping into a map.
func setMap(dst reflect.Value, src *Value) error {
	if src.Kind() != KindMapping {
		return fmt.Errorf("cannot unmarshal %s into map", src.Kind())
	}

	mapType := dst.Type()
	if mapType.Key().Kind() != reflect.String {
		return fmt.Errorf("maps with non-string keys are not supported")
	}

	valueType := mapType.Elem()
	newMap := reflect.MakeMapWithSize(mapType, src.Len())
	for _, entry := range src.Entries() {
		valueValue := reflect.New(valueType).Elem()
		if err := setValueReflect(valueValue, entry.Value); err != nil {
			return fmt.Errorf("error setting map value for key %s: %w", entry.Key, err)
		}
		newMap.SetMapIndex(reflect.ValueOf(entry.Key), valueValue)
	}

	dst.Set(newMap)
	return nil
}

// setPtr unmarshals into a pointer, allocating as needed.
func setPtr(dst reflect.Value, src *Value) error {
	newPtr := reflect.New(dst.Type().Elem())
	if err := setValueReflect(newPtr.Elem(), src); err != nil {
		return err
	}
	dst.Set(newPtr)
	return nil
}

func setString(dst reflect.Value, src *Value) error {
	if src.Kind() != KindString {
		return fmt.Errorf("cannot unmarshal %s into string", src.Kind())
	}
	dst.SetString(src.Str())
	return nil
}

func setInt(dst reflect.Value, src *Value) error {
	switch src.Kind() {
	case KindInt:
		v := src.Int()
		if dst.OverflowInt(v) {
			return fmt.Errorf("value %d overflows %s", v, dst.Type())
		}
		dst.SetInt(v)
		return nil
	case KindFloat:
		v := src.Float()
		if v != math.Trunc(v) {
			return fmt.Errorf("cannot unmarshal float %g into integer type", v)
		}
		intVal := int64(v)
		if dst.OverflowInt(intVal) {
			return fmt.Errorf("value %g overflows %s", v, dst.Type())
		}
		dst.SetInt(intVal)
		return nil
	default:
		return fmt.Errorf("cannot unmarshal %s into integer", src.Kind())
	}
}

func setUint(dst reflect.Value, src *Value) error {
	switch src.Kind() {
	case KindInt:
		v := src.Int()
		if v < 0 {
			return fmt.Errorf("cannot unmarshal negative value %d into unsigned integer", v)
		}
		uintVal := uint64(v)
		if dst.OverflowUint(uintVal) {
			return fmt.Errorf("value %d overflows %s", v, dst.Type())
		}
		dst.SetUint(uintVal)
		return nil
	case KindFloat:
		v := src.Float()
		if v < 0 {
			return fmt.Errorf("cannot unmarshal negative value %g into unsigned integer", v)
		}
		if v != math.Trunc(v) {
			return fmt.Errorf("cannot unmarshal float %g into integer type", v)
		}
		uintVal := uint64(v)
		if dst.OverflowUint(uintVal) {
			return fmt.Errorf("value %g overflows %s", v, dst.Type())
		}
		dst.SetUint(uintVal)
		return nil
	default:
		return fmt.Errorf("cannot unmarshal %s into unsigned integer", src.Kind())
	}
}

func setFloat(dst reflect.Value, src *Value) error {
	switch src.Kind() {
	case KindInt, KindFloat:
		v := src.Float()
		if dst.OverflowFloat(v) {
			return fmt.Errorf("value %g overflows %s", v, dst.Type())
		}
		dst.SetFloat(v)
		return nil
	default:
		return fmt.Errorf("cannot unmarshal %s into float", src.Kind())
	}
}

func setBool(dst reflect.Value, src *Value) error {
	if src.Kind() != KindBool {
		return fmt.Errorf("cannot unmarshal %s into bool", src.Kind())
	}
	dst.SetBool(src.Bool())
	return nil
}
