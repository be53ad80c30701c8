package literal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestEqual(t *testing.T) {
	testCases := []struct {
		name string
		a, b cty.Value
		want bool
	}{
		{name: "same number", a: cty.NumberFloatVal(440), b: cty.NumberIntVal(440), want: true},
		{name: "different number", a: cty.NumberFloatVal(440), b: cty.NumberFloatVal(220), want: false},
		{name: "number vs string", a: cty.NumberIntVal(1), b: cty.StringVal("1"), want: false},
		{name: "both nil", a: cty.NilVal, b: cty.NilVal, want: true},
		{name: "nil vs value", a: cty.NilVal, b: cty.False, want: false},
		{name: "lists", a: cty.ListVal([]cty.Value{cty.True}), b: cty.ListVal([]cty.Value{cty.True}), want: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Equal(tc.a, tc.b))
			assert.Equal(t, tc.want, Equal(tc.b, tc.a))
		})
	}
}

func TestZero(t *testing.T) {
	assert.True(t, Equal(cty.Zero, Zero(cty.Number)))
	assert.True(t, Equal(cty.False, Zero(cty.Bool)))
	assert.True(t, Equal(cty.StringVal(""), Zero(cty.String)))
	assert.True(t, Equal(cty.ListValEmpty(cty.Number), Zero(cty.List(cty.Number))))
	assert.Equal(t, cty.NilType, Zero(cty.NilType).Type())

	obj := Zero(cty.Object(map[string]cty.Type{"gain": cty.Number, "name": cty.String}))
	assert.True(t, Equal(cty.Zero, obj.GetAttr("gain")))
	assert.True(t, Equal(cty.StringVal(""), obj.GetAttr("name")))
}

func TestCoerce(t *testing.T) {
	v, err := Coerce(cty.StringVal("220"), cty.Number)
	require.NoError(t, err)
	assert.True(t, Equal(cty.NumberIntVal(220), v))

	_, err = Coerce(cty.StringVal("loud"), cty.Number)
	require.Error(t, err)

	_, err = Coerce(cty.True, cty.NilType)
	require.Error(t, err)

	_, err = Coerce(cty.NilVal, cty.Number)
	require.Error(t, err)
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "440", Format(cty.NumberFloatVal(440.0)))
	assert.Equal(t, "0.5", Format(cty.NumberFloatVal(0.5)))
	assert.Equal(t, "true", Format(cty.True))
	assert.Equal(t, "saw", Format(cty.StringVal("saw")))
	assert.Equal(t, "[1, 2]", Format(cty.ListVal([]cty.Value{cty.NumberIntVal(1), cty.NumberIntVal(2)})))
	assert.Equal(t, "", Format(cty.NilVal))
	assert.Equal(t, "null", Format(cty.NullVal(cty.Number)))
}

func TestBuiltin(t *testing.T) {
	byName := map[string]DataType{}
	for _, dt := range Builtin() {
		byName[dt.Name] = dt
	}

	require.Contains(t, byName, "float")
	require.Contains(t, byName, "float[]")
	require.Contains(t, byName, "audio")
	assert.NotContains(t, byName, "audio[]")

	assert.False(t, byName["audio"].HasLiteral())
	assert.True(t, Equal(cty.Zero, byName["float"].CanonicalDefault()))
	assert.True(t, byName["float[]"].Literal.Equals(cty.List(cty.Number)))

	elem, isArray := ElementName("float[]")
	assert.True(t, isArray)
	assert.Equal(t, "float", elem)
}
