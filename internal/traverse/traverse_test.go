package traverse

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"schema-tools/internal/jsontree"
)

func collectPaths(root jsontree.Value, opts Options) []string {
	var paths []string

	Walk(root, func(n Node) {
		paths = append(paths, n.Path)
	}, opts)

	return paths
}

func TestStepString(t *testing.T) {
	tests := []struct {
		step Step
		want string
	}{
		{Key("properties"), ".properties"},
		{Key("$ref"), ".$ref"},
		{Key("_x9"), "._x9"},
		{Key("meta:enum"), `["meta:enum"]`},
		{Key("a.b"), `["a.b"]`},
		{Key("0"), `["0"]`},
		{Key(""), `[""]`},
		{Key(`q"uote`), `["q\"uote"]`},
		{Elem(0), "[0]"},
		{Elem(12), "[12]"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.step.String())
		})
	}
}

func TestParsePathRoundTrip(t *testing.T) {
	cases := [][]Step{
		nil,
		{Key("a")},
		{Key("$defs"), Key("Foo"), Key("properties")},
		{Key("allOf"), Elem(0), Key("$ref")},
		{Key("0"), Elem(0)},
		{Key("a.b"), Key("[x]"), Key(`back\slash`), Key("a]b")},
		{Key("meta:enum"), Key("x-y"), Elem(3), Elem(4)},
	}

	for _, steps := range cases {
		path := FormatPath(steps)
		t.Run(path, func(t *testing.T) {
			got, err := ParsePath(path)
			require.NoError(t, err)

			if len(steps) == 0 {
				assert.Empty(t, got)
				return
			}

			assert.Equal(t, steps, got)
		})
	}
}

func TestParsePathErrors(t *testing.T) {
	for _, p := range []string{"", "x", "$.", "$.1a", "$[", "$[-1]", "$[x]", `$["open`, "$a"} {
		t.Run(p, func(t *testing.T) {
			_, err := ParsePath(p)
			assert.Error(t, err)
		})
	}
}

func TestWalkVisitsEveryNodeInOrder(t *testing.T) {
	root, err := jsontree.Decode([]byte(`{"type":"object","properties":{"a.b":{"enum":["x",1]}},"n":null}`))
	require.NoError(t, err)

	got := collectPaths(root, Options{})
	want := []string{
		"$",
		"$.type",
		"$.properties",
		`$.properties["a.b"]`,
		`$.properties["a.b"].enum`,
		`$.properties["a.b"].enum[0]`,
		`$.properties["a.b"].enum[1]`,
		"$.n",
	}
	assert.Equal(t, want, got)
}

func TestWalkNodeDetails(t *testing.T) {
	root, err := jsontree.Decode([]byte(`{"a":[true]}`))
	require.NoError(t, err)

	var nodes []Node
	Walk(root, func(n Node) { nodes = append(nodes, n) }, Options{})
	require.Len(t, nodes, 3)

	assert.True(t, nodes[0].IsRoot())
	_, ok := nodes[0].Key()
	assert.False(t, ok)

	key, ok := nodes[1].Key()
	assert.True(t, ok)
	assert.Equal(t, "a", key)
	assert.Equal(t, 1, nodes[1].Depth)

	_, ok = nodes[2].Key()
	assert.False(t, ok)
	assert.Equal(t, Elem(0), nodes[2].Step)
	assert.Equal(t, jsontree.Bool(true), nodes[2].Value)
	assert.Equal(t, 2, nodes[2].Depth)
}

func TestWalkSharedSubtreeVisitedPerPath(t *testing.T) {
	shared := jsontree.NewObject().Set("type", jsontree.String("string"))
	root := jsontree.NewObject().
		Set("a", shared).
		Set("b", jsontree.NewArray(shared))

	var cycles []string

	got := collectPaths(root, Options{OnCycle: func(path string, _ Step, _ jsontree.Value) {
		cycles = append(cycles, path)
	}})

	assert.Equal(t, []string{"$", "$.a", "$.a.type", "$.b", "$.b[0]", "$.b[0].type"}, got, spew.Sdump(got))
	assert.Empty(t, cycles)
}

func TestWalkTrueCycleTerminates(t *testing.T) {
	loop := jsontree.NewObject().Set("x", jsontree.Number("1"))
	loop.Set("self", loop)

	arr := jsontree.NewArray(jsontree.String("v"))
	arr.Items = append(arr.Items, arr)

	root := jsontree.NewObject().Set("a", loop).Set("b", loop).Set("list", arr)

	type cycle struct {
		path   string
		step   Step
		parent jsontree.Value
	}

	var cycles []cycle

	got := collectPaths(root, Options{OnCycle: func(path string, step Step, parent jsontree.Value) {
		cycles = append(cycles, cycle{path, step, parent})
	}})

	assert.Equal(t, []string{"$", "$.a", "$.a.x", "$.b", "$.b.x", "$.list", "$.list[0]"}, got)
	require.Len(t, cycles, 3, spew.Sdump(cycles))
	assert.Equal(t, "$.a.self", cycles[0].path)
	assert.Equal(t, Key("self"), cycles[0].step)
	assert.Same(t, loop, cycles[0].parent)
	assert.Equal(t, "$.b.self", cycles[1].path)
	assert.Equal(t, "$.list[1]", cycles[2].path)
}

func TestWalkDepthLimit(t *testing.T) {
	root, err := jsontree.Decode([]byte(`{"a":{"b":{"c":1}},"d":2}`))
	require.NoError(t, err)

	var limited []string

	got := collectPaths(root, Options{
		MaxDepth: 1,
		OnDepthLimit: func(path string, depth int) {
			assert.Equal(t, 1, depth)
			limited = append(limited, path)
		},
	})

	assert.Equal(t, []string{"$", "$.a", "$.d"}, got)
	assert.Equal(t, []string{"$.a"}, limited)
}

func TestWalkDangerousKeys(t *testing.T) {
	root, err := jsontree.Decode([]byte(`{"properties":{"__proto__":{"x":1},"constructor":2,"safe":3}}`))
	require.NoError(t, err)

	var flagged []string

	got := collectPaths(root, Options{OnDangerousKey: func(path, key string) {
		flagged = append(flagged, key+"@"+path)
	}})

	assert.Equal(t, []string{
		"__proto__@$.properties.__proto__",
		"constructor@$.properties.constructor",
	}, flagged)
	// coverage is unchanged
	assert.Contains(t, got, "$.properties.__proto__.x")
	assert.True(t, IsDangerousKey("prototype"))
	assert.False(t, IsDangerousKey("proto"))
}

func TestWalkScalarAndNilRoot(t *testing.T) {
	assert.Equal(t, []string{"$"}, collectPaths(jsontree.String("x"), Options{}))

	var kinds []jsontree.Kind

	Walk(nil, func(n Node) { kinds = append(kinds, n.Value.Kind()) }, Options{})
	assert.Equal(t, []jsontree.Kind{jsontree.KindNull}, kinds)
}
