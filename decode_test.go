package sdeyaml

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnmarshalAny(t *testing.T) {
	f := func(name, input string, expected any) {
		t.Helper()
		t.Run(name, func(t *testing.T) {
			t.Helper()
			var result any
			if err := Unmarshal([]byte(input), &result); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(result, expected) {
				t.Errorf("expected %+v, got %+v", expected, result)
			}
		})
	}

	f("integer", "num: 42", map[string]any{"num": int64(42)})
	f("float", "num: 3.25", map[string]any{"num": 3.25})
	f("booleans", "t: true\nf: false", map[string]any{"t": true, "f": false})
	f("string", "str: hello", map[string]any{"str": "hello"})
	f("quoted_string", `str: "hello"`, map[string]any{"str": "hello"})
	f("open_key", "k:", map[string]any{"k": nil})
	f("flow_sequence", "list: [1, 2, 3]", map[string]any{"list": []any{int64(1), int64(2), int64(3)}})
	f("block_sequence", "list:\n  - 1\n  - 2", map[string]any{"list": []any{int64(1), int64(2)}})
	f("root_sequence", "- 1\n- 2", []any{int64(1), int64(2)})
	f("empty_document", "", map[string]any{})
}

func TestUnmarshalStruct(t *testing.T) {
	type Material struct {
		Quantity int64 `sde:"quantity"`
		TypeID   int64 `sde:"typeID"`
	}
	type Activity struct {
		Time      int64      `sde:"time"`
		Materials []Material `sde:"materials"`
	}
	type Blueprint struct {
		BlueprintTypeID    int64               `sde:"blueprintTypeID"`
		MaxProductionLimit int                 `sde:"maxProductionLimit"`
		Activities         map[string]Activity `sde:"activities"`
		Ignored            string              `sde:"-"`
		Untagged           string
	}

	input := strings.Join([]string{
		"blueprintTypeID: 682",
		"maxProductionLimit: 300",
		"Untagged: kept",
		"activities:",
		"    manufacturing:",
		"        time: 600",
		"        materials:",
		"        -   quantity: 86",
		"            typeID: 38",
		"        -   quantity: 46",
		"            typeID: 39",
		"",
	}, "\n")

	var bp Blueprint
	require.NoError(t, Unmarshal([]byte(input), &bp))

	assert.Equal(t, int64(682), bp.BlueprintTypeID)
	assert.Equal(t, 300, bp.MaxProductionLimit)
	assert.Equal(t, "kept", bp.Untagged)
	assert.Empty(t, bp.Ignored)

	mfg, ok := bp.Activities["manufacturing"]
	require.True(t, ok)
	assert.Equal(t, int64(600), mfg.Time)
	require.Len(t, mfg.Materials, 2)
	assert.Equal(t, Material{Quantity: 86, TypeID: 38}, mfg.Materials[0])
	assert.Equal(t, Material{Quantity: 46, TypeID: 39}, mfg.Materials[1])
}

func TestUnmarshalTagVariants(t *testing.T) {
	type tagged struct {
		Renamed  string `sde:"other_name"`
		WithOpts string `sde:"opt_name,omitempty"`
		EmptyTag string `sde:","`
	}

	input := "other_name: a\nopt_name: b\nEmptyTag: c\n"
	var out tagged
	require.NoError(t, Unmarshal([]byte(input), &out))
	assert.Equal(t, tagged{Renamed: "a", WithOpts: "b", EmptyTag: "c"}, out)
}

func TestUnmarshalScalarTargets(t *testing.T) {
	type target struct {
		I   int     `sde:"i"`
		I8  int8    `sde:"i8"`
		U   uint    `sde:"u"`
		F32 float32 `sde:"f32"`
		F   float64 `sde:"f"`
		FI  float64 `sde:"fi"` // Int widened into a float field.
		IF  int     `sde:"if"` // Whole-valued float into an int field.
		B   bool    `sde:"b"`
		S   string  `sde:"s"`
		P   *int64  `sde:"p"`
	}

	input := "i: -3\ni8: 100\nu: 7\nf32: 1.5\nf: 2.5\nfi: 4\nif: 6.0\nb: true\ns: text\np: 9\n"
	var out target
	require.NoError(t, Unmarshal([]byte(input), &out))

	assert.Equal(t, -3, out.I)
	assert.Equal(t, int8(100), out.I8)
	assert.Equal(t, uint(7), out.U)
	assert.Equal(t, float32(1.5), out.F32)
	assert.Equal(t, 2.5, out.F)
	assert.Equal(t, 4.0, out.FI)
	assert.Equal(t, 6, out.IF)
	assert.True(t, out.B)
	assert.Equal(t, "text", out.S)
	require.NotNil(t, out.P)
	assert.Equal(t, int64(9), *out.P)
}

func TestUnmarshalMismatches(t *testing.T) {
	f := func(name, input string, dst any) {
		t.Helper()
		t.Run(name, func(t *testing.T) {
			t.Helper()
			if err := Unmarshal([]byte(input), dst); err == nil {
				t.Error("expected error but got none")
			}
		})
	}

	f("string_into_int", "v: text", &struct {
		V int `sde:"v"`
	}{})
	f("fractional_into_int", "v: 1.5", &struct {
		V int `sde:"v"`
	}{})
	f("negative_into_uint", "v: -1", &struct {
		V uint `sde:"v"`
	}{})
	f("int_overflow", "v: 300", &struct {
		V int8 `sde:"v"`
	}{})
	f("mapping_into_slice", "v:\n  a: 1", &struct {
		V []int `sde:"v"`
	}{})
	f("sequence_into_struct", "v:\n  - 1", &struct {
		V struct{} `sde:"v"`
	}{})
	f("int_into_bool", "v: 1", &struct {
		V bool `sde:"v"`
	}{})
	f("int_into_string", "v: 1", &struct {
		V string `sde:"v"`
	}{})
	f("non_string_map_keys", "v:\n  a: 1", &struct {
		V map[int]int `sde:"v"`
	}{})
}

func TestUnmarshalIntoValue(t *testing.T) {
	var v *Value
	require.NoError(t, Unmarshal([]byte("b: 1\na: 2\n"), &v))
	require.Equal(t, KindMapping, v.Kind())

	// Entry order survives, unlike a plain map destination.
	assert.Equal(t, "b", v.Entries()[0].Key)
	assert.Equal(t, "a", v.Entries()[1].Key)
}

func TestUnmarshalDestinationErrors(t *testing.T) {
	t.Run("nil destination", func(t *testing.T) {
		err := Unmarshal([]byte("a: 1"), nil)
		if err == nil || !strings.Contains(err.Error(), "nil value") {
			t.Errorf("expected nil value error, got %v", err)
		}
	})

	t.Run("non-pointer destination", func(t *testing.T) {
		err := Unmarshal([]byte("a: 1"), map[string]any{})
		if err == nil || !strings.Contains(err.Error(), "not a pointer") {
			t.Errorf("expected non-pointer error, got %v", err)
		}
	})

	t.Run("nil pointer destination", func(t *testing.T) {
		var m *map[string]any
		err := Unmarshal([]byte("a: 1"), m)
		if err == nil || !strings.Contains(err.Error(), "pointer is nil") {
			t.Errorf("expected nil pointer error, got %v", err)
		}
	})
}

func TestDecoderReaders(t *testing.T) {
	data := "count: 42\nactive: true"
	want := map[string]any{"count": int64(42), "active": true}

	f := func(name string, reader func() any) {
		t.Helper()
		t.Run(name, func(t *testing.T) {
			t.Helper()
			dec := NewDecoder(reader().(interface{ Read([]byte) (int, error) }))
			var result any
			if err := dec.Decode(&result); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !reflect.DeepEqual(result, want) {
				t.Errorf("expected %+v, got %+v", want, result)
			}
		})
	}

	f("strings.Reader", func() any { return strings.NewReader(data) })
	f("bytes.Buffer", func() any {
		var buf bytes.Buffer
		buf.WriteString(data)
		return &buf
	})
	f("bytes.Reader", func() any { return bytes.NewReader([]byte(data)) })
}

func TestDecoderReaderError(t *testing.T) {
	wantErr := errors.New("reader error")
	dec := NewDecoder(&failingReader{err: wantErr})

	var result any
	if err := dec.Decode(&result); !errors.Is(err, wantErr) {
		t.Errorf("expected %v, got %v", wantErr, err)
	}
}
