package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_Scalars(t *testing.T) {
	tests := []struct {
		name     string
		value    JSONValue
		expected Kind
	}{
		{"null", nil, Null},
		{"bool", true, Bool},
		{"string", "hello", String},
		{"integer number", json.Number("42"), Int},
		{"float number", json.Number("3.5"), Float},
		{"float-looking integer", json.Number("1e2"), Float},
		{"go int", 7, Int},
		{"go float", 0.25, Float},
		{"opaque atomic", struct{}{}, Other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.value))
		})
	}
}

func TestClassify_Containers(t *testing.T) {
	assert.Equal(t, Mapping, Classify(NewOrderedObject()))
	assert.Equal(t, Mapping, Classify(JSONObject{"a": 1}))
	assert.Equal(t, Sequence, Classify(JSONArray{1, 2}))
	assert.Equal(t, StreamKind, Classify(Stream(func(yield func(JSONValue) bool) {})))
}

func TestLabelFor_KnownScalars(t *testing.T) {
	assert.Equal(t, "NoneType", LabelFor(nil))
	assert.Equal(t, "bool", LabelFor(false))
	assert.Equal(t, "str", LabelFor("x"))
	assert.Equal(t, "int", LabelFor(json.Number("0")))
	assert.Equal(t, "float", LabelFor(json.Number("0.5")))
}

func TestLabelFor_OpaqueAtomic(t *testing.T) {
	type custom struct{}
	assert.Equal(t, "models.custom", LabelFor(custom{}))
}

func TestNumericValue(t *testing.T) {
	v, ok := NumericValue(json.Number("42"))
	require.True(t, ok)
	assert.Equal(t, 42.0, v)

	v, ok = NumericValue(json.Number("0.0"))
	require.True(t, ok)
	assert.Equal(t, 0.0, v)

	_, ok = NumericValue("not a number")
	assert.False(t, ok)

	_, ok = NumericValue(true)
	assert.False(t, ok, "booleans are not numbers")
}

func TestOrderedObject_PreservesInsertionOrder(t *testing.T) {
	obj := NewOrderedObject()
	obj.Set("zebra", 1)
	obj.Set("apple", 2)
	obj.Set("mango", 3)

	assert.Equal(t, []string{"zebra", "apple", "mango"}, obj.Keys())
	assert.Equal(t, 3, obj.Len())

	v, ok := obj.Get("apple")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestOrderedObject_ResetKeepsPosition(t *testing.T) {
	obj := NewOrderedObject()
	obj.Set("a", 1)
	obj.Set("b", 2)
	obj.Set("a", 99)

	assert.Equal(t, []string{"a", "b"}, obj.Keys())
	v, _ := obj.Get("a")
	assert.Equal(t, 99, v)
}

func TestEntries_PlainMapSorted(t *testing.T) {
	keys, get := Entries(JSONObject{"b": 2, "a": 1, "c": 3})
	assert.Equal(t, []string{"a", "b", "c"}, keys)
	assert.Equal(t, 2, get("b"))
}

func TestEntries_OrderedObjectDocumentOrder(t *testing.T) {
	obj := NewOrderedObject()
	obj.Set("b", 2)
	obj.Set("a", 1)

	keys, get := Entries(obj)
	assert.Equal(t, []string{"b", "a"}, keys)
	assert.Equal(t, 1, get("a"))
}

func TestSegment_Equality(t *testing.T) {
	assert.True(t, KeySeg("a").Equal(KeySeg("a")))
	assert.False(t, KeySeg("a").Equal(KeySeg("b")))
	assert.True(t, IndexSeg(3).Equal(IndexSeg(3)))
	assert.False(t, IndexSeg(0).Equal(IndexSeg(1)), "indices keep their identity before collapsing")
	assert.False(t, KeySeg("0").Equal(IndexSeg(0)), "keys and indices never compare equal")
	assert.True(t, LabelSeg("int").Equal(NumberSeg("int", 5)), "numeric carrier is ignored")
}

func TestSegment_Ordering(t *testing.T) {
	assert.True(t, IndexSeg(0).Less(IndexSeg(2)))
	assert.True(t, KeySeg("a").Less(KeySeg("b")))
	assert.True(t, KeySeg("z").Less(IndexSeg(0)), "kinds order before contents")
}

func TestPath_LessIsLexicographic(t *testing.T) {
	a := Path{KeySeg("a"), LabelSeg("int")}
	b := Path{KeySeg("b"), LabelSeg("int")}
	prefix := Path{KeySeg("a")}

	assert.True(t, a.Less(b))
	assert.False(t, b.Less(a))
	assert.True(t, prefix.Less(a), "a strict prefix sorts first")
	assert.False(t, a.Less(a))
}

func TestPath_KeyIsInjective(t *testing.T) {
	// These would collide under naive separator-joined encodings.
	a := Path{KeySeg("a/b"), LabelSeg("int")}
	b := Path{KeySeg("a"), KeySeg("b"), LabelSeg("int")}
	c := Path{KeySeg("0"), LabelSeg("int")}
	d := Path{IndexSeg(0), LabelSeg("int")}

	assert.NotEqual(t, a.Key(), b.Key())
	assert.NotEqual(t, c.Key(), d.Key())
	assert.Equal(t, d.Key(), Path{IndexSeg(0), NumberSeg("int", 1)}.Key())
}

func TestPath_ChildDoesNotAliasSiblings(t *testing.T) {
	prefix := make(Path, 0, 4)
	prefix = append(prefix, KeySeg("root"))

	a := prefix.Child(KeySeg("a"))
	b := prefix.Child(KeySeg("b"))

	assert.Equal(t, "a", a[1].Key)
	assert.Equal(t, "b", b[1].Key)
}

func TestShapeMap_MarshalJSONPreservesOrder(t *testing.T) {
	m := NewShapeMap()
	m.Set("zebra", "int")
	m.Set("apple", "str")

	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"zebra":"int","apple":"str"}`, string(out))
}

func TestShapeMap_MarshalJSONNested(t *testing.T) {
	inner := NewShapeMap()
	inner.Set("id", "int")
	m := NewShapeMap()
	m.Set("items", []ShapeNode{inner})

	out, err := json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"items":[{"id":"int"}]}`, string(out))
}

func TestShapeEqual(t *testing.T) {
	a := NewShapeMap()
	a.Set("x", "int")
	a.Set("y", []ShapeNode{"str"})

	b := NewShapeMap()
	b.Set("x", "int")
	b.Set("y", []ShapeNode{"str"})

	c := NewShapeMap()
	c.Set("y", []ShapeNode{"str"})
	c.Set("x", "int")

	assert.True(t, ShapeEqual(a, b))
	assert.False(t, ShapeEqual(a, c), "key order is part of the shape")
	assert.True(t, ShapeEqual("int", "int"))
	assert.False(t, ShapeEqual("int", "str"))
	assert.False(t, ShapeEqual(a, "int"))
}
