package restmapper

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postJSON = `{
	"id": 1,
	"title": "hello",
	"author": {
		"id": 7,
		"name": "bob",
		"age": 30,
		"active": true,
		"token": "6ba7b810-9dad-11d1-80b4-00c04fd430c8",
		"created_at": "2013-03-23T14:36:12Z"
	},
	"comments": [
		{"id": 1, "body": "first"},
		{"id": 2, "body": "second"}
	]
}`

func TestRelationHydrate(t *testing.T) {
	post := &testPost{}
	require.NoError(t, FromJSON(post, postJSON, Options{}))

	author := post.Author.Get()
	require.NotNil(t, author, spew.Sdump(post))
	assert.Equal(t, int64(7), author.ID.Get())
	assert.Equal(t, "bob", author.Name.Get())
	assert.Equal(t, 30, author.Age.Get())

	require.Equal(t, 2, post.Comments.Len(), spew.Sdump(post.Comments.Items()))
	assert.Equal(t, int64(2), post.Comments.At(1).ID.Get())
	assert.Equal(t, "first", post.Comments.At(0).Body.Get())
	assert.True(t, post.Author.IsDirty())
	assert.True(t, post.Comments.IsDirty())
}

func TestRelationHydrateMissingPrimaryKey(t *testing.T) {
	post := &testPost{}
	err := FromJSON(post, `{"id":1,"title":"t","author":{"name":"bob"},"comments":[]}`, Options{})
	assert.ErrorIs(t, err, ErrFieldNotFound)

	post = &testPost{}
	err = FromJSON(post, `{"id":1,"title":"t","author":{"name":"bob"},"comments":[]}`, Options{IgnoreMissingFields: true})
	require.NoError(t, err)
	assert.True(t, post.Author.Get().ID.IsNull())
	assert.Equal(t, "bob", post.Author.Get().Name.Get())
}

func TestRelationHydrateEmpty(t *testing.T) {
	post := &testPost{}
	require.NoError(t, FromJSON(post, `{"id":1,"title":"t","author":null,"comments":[]}`, Options{}))
	assert.True(t, post.Author.IsNull())
	assert.False(t, post.Author.IsDirty())
	assert.Equal(t, 0, post.Comments.Len())
	assert.False(t, post.Comments.IsDirty())

	// 关系字段缺失不报错
	post = &testPost{}
	require.NoError(t, FromJSON(post, `{"id":1,"title":"t"}`, Options{}))
	assert.True(t, post.Author.IsNull())
}

func TestRelationHydrateInvalid(t *testing.T) {
	post := &testPost{}
	err := FromJSON(post, `{"id":1,"title":"t","comments":{"id":1}}`, Options{})
	assert.ErrorIs(t, err, ErrInvalidValue)

	err = FromJSON(post, `{"id":1,"title":"t","author":[1]}`, Options{})
	assert.ErrorIs(t, err, ErrInvalidDocument)
}

func TestRelationSerialize(t *testing.T) {
	post := &testPost{}
	post.Title.Set("hello")

	author := post.Author.Build()
	author.ID.SetValue(7, false)
	author.Name.Set("bob")

	comment := post.Comments.Build()
	comment.Body.Set("first")

	text, err := ToJSON(post, Options{})
	require.NoError(t, err)
	assert.Equal(t, `{"title":"hello","author":{"id":7,"name":"bob"},"comments":[{"body":"first"}]}`, text)
	assert.False(t, IsDirty(post), spew.Sdump(post))
	assert.False(t, author.Name.IsDirty())
}

func TestRelationSerializeNestedDirtyOnly(t *testing.T) {
	post := &testPost{}
	require.NoError(t, FromJSON(post, postJSON, Options{}))
	Clean(post)
	assert.False(t, IsDirty(post))

	post.Comments.At(1).Body.Set("changed")
	assert.True(t, post.Comments.IsDirty())
	assert.False(t, post.Author.IsDirty())

	text, err := ToJSON(post, Options{IncludePrimaryKey: true})
	require.NoError(t, err)
	assert.Equal(t, `{"id":1,"comments":[{"id":1},{"id":2,"body":"changed"}]}`, text)
}

func TestRelationSerializeNull(t *testing.T) {
	post := &testPost{}
	post.Author.Set(&testUser{})
	post.Author.Clear()
	post.Comments.Touch()

	text, err := ToJSON(post, Options{})
	require.NoError(t, err)
	assert.Equal(t, `{"author":null,"comments":[]}`, text)
}

func TestHasOneFromJSON(t *testing.T) {
	var rel HasOne[testComment, *testComment]
	require.NoError(t, rel.FromJSON(`{"id":3,"body":"x"}`, Options{}))
	first := rel.Get()
	require.NotNil(t, first)

	require.NoError(t, rel.FromJSON(`{"id":3,"body":"y"}`, Options{}))
	assert.Same(t, first, rel.Get())
	assert.Equal(t, "y", rel.Get().Body.Get())

	require.NoError(t, rel.FromJSON(` null `, Options{}))
	assert.True(t, rel.IsNull())
	assert.True(t, rel.IsDirty())
}

func TestHasOneFromJSONFailureKeepsItem(t *testing.T) {
	var rel HasOne[testComment, *testComment]
	require.NoError(t, rel.FromJSON(`{"id":3,"body":"x"}`, Options{}))
	item := rel.Get()
	rel.Clean()

	// id 先于 body 读取，body 类型错误
	err := rel.FromJSON(`{"id":4,"body":5}`, Options{})
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Same(t, item, rel.Get())
	assert.Equal(t, int64(3), item.ID.Get())
	assert.Equal(t, "x", item.Body.Get())
	assert.False(t, rel.IsDirty(), spew.Sdump(item))

	var empty HasOne[testComment, *testComment]
	assert.ErrorIs(t, empty.FromJSON(`{"id":"abc","body":"x"}`, Options{}), ErrInvalidValue)
	assert.True(t, empty.IsNull())
	assert.False(t, empty.IsDirty())
}

func TestHasMany(t *testing.T) {
	var rel HasMany[testComment, *testComment]
	assert.False(t, rel.IsDirty())

	text, err := rel.ToJSON(Options{})
	require.NoError(t, err)
	assert.Equal(t, `[]`, text)

	a := &testComment{}
	a.Body.SetValue("a", false)
	b := &testComment{}
	b.Body.SetValue("b", false)
	rel.Set([]*testComment{a})
	rel.Append(b)
	assert.Equal(t, 2, rel.Len())
	assert.True(t, rel.IsDirty())

	rel.Clean()
	assert.False(t, rel.IsDirty())

	text, err = rel.ToJSON(Options{IgnoreDirtyFlag: true})
	require.NoError(t, err)
	assert.Equal(t, `[{"body":"a"},{"body":"b"}]`, text)

	require.NoError(t, rel.FromJSON(`null`, Options{}))
	assert.Equal(t, 0, rel.Len())

	rel.Append(a)
	rel.Clear()
	assert.Nil(t, rel.Items())
	assert.True(t, rel.IsDirty())
}
