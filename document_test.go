package restmapper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser(t *testing.T) {
	p := NewParser()
	assert.False(t, p.Loaded())

	_, err := p.Find("a")
	assert.ErrorIs(t, err, ErrNotLoaded)

	require.NoError(t, p.Load(`{"b":1,"a":null,"c":{},"d":[],"e":[0],"f":""}`))
	assert.True(t, p.Loaded())
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, p.Keys())

	assert.True(t, p.Exists("a"))
	assert.False(t, p.Exists("z"))

	tests := []struct {
		key   string
		empty bool
	}{
		{"a", true},
		{"b", false},
		{"c", true},
		{"d", true},
		{"e", false},
		{"f", false},
		{"z", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.empty, p.Empty(tt.key), tt.key)
	}

	_, err = p.Find("z")
	assert.ErrorIs(t, err, ErrFieldNotFound)
}

func TestParserRejectsNonObject(t *testing.T) {
	for _, text := range []string{`null`, `[]`, `1`, `true`, `"a"`, ``} {
		p := NewParser()
		err := p.Load(text)
		assert.ErrorIs(t, err, ErrInvalidDocument, text)
		assert.False(t, p.Loaded(), text)
	}

	p := NewParser()
	require.NoError(t, p.Load(` {} `))
	assert.True(t, p.Loaded())
	assert.Empty(t, p.Keys())
}

func TestNode(t *testing.T) {
	p := NewParser()
	require.NoError(t, p.Load(`{"s":"abc","n":12,"q":"42","f":4.0,"x":4.5,"z":null,"o":{"k":"v"}}`))

	find := func(key string) Node {
		node, err := p.Find(key)
		require.NoError(t, err)
		return node
	}

	t.Run("ToString", func(t *testing.T) {
		s, err := find("s").ToString()
		require.NoError(t, err)
		assert.Equal(t, "abc", s)

		s, err = find("n").ToString()
		require.NoError(t, err)
		assert.Equal(t, "12", s)
	})

	t.Run("ToInt", func(t *testing.T) {
		for key, want := range map[string]int64{"n": 12, "q": 42, "f": 4} {
			v, err := find(key).ToInt()
			require.NoError(t, err, key)
			assert.Equal(t, want, v, key)
		}

		_, err := find("x").ToInt()
		assert.ErrorIs(t, err, ErrInvalidValue)

		_, err = find("s").ToInt()
		assert.ErrorIs(t, err, ErrInvalidValue)
	})

	t.Run("IsNull", func(t *testing.T) {
		assert.True(t, find("z").IsNull())
		assert.False(t, find("s").IsNull())
	})

	t.Run("Decode", func(t *testing.T) {
		var m map[string]string
		require.NoError(t, find("o").Decode(&m))
		assert.Equal(t, map[string]string{"k": "v"}, m)

		var n int
		assert.ErrorIs(t, find("s").Decode(&n), ErrInvalidValue)
	})

	t.Run("Dump", func(t *testing.T) {
		assert.Equal(t, `{"k":"v"}`, find("o").Dump())
		assert.Equal(t, "o", find("o").Key())
	})
}

func TestEmitter(t *testing.T) {
	e := NewEmitter()
	e.MapOpen()
	e.Key("a")
	e.Int(1)
	e.Key("b")
	e.MapOpen()
	e.Key("c")
	e.Null()
	e.Key("d")
	e.String("x<y")
	e.MapClose()
	e.Key("e")
	e.Raw(`[1,2]`)
	e.Key("f")
	e.Value(map[string]int{"z": 1, "y": 2})
	e.MapClose()

	text, err := e.Dump()
	require.NoError(t, err)
	assert.Equal(t, `{"a":1,"b":{"c":null,"d":"x<y"},"e":[1,2],"f":{"y":2,"z":1}}`, text)
}

func TestEmitterScalar(t *testing.T) {
	e := NewEmitter()
	e.Value(3.25)

	text, err := e.Dump()
	require.NoError(t, err)
	assert.Equal(t, `3.25`, text)
}

func TestEmitterError(t *testing.T) {
	e := NewEmitter()
	e.Value(make(chan int))

	_, err := e.Dump()
	assert.ErrorIs(t, err, ErrInvalidValue)
}
