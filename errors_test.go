package restmapper

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldNotFound(t *testing.T) {
	m, err := NewMapperFrom(`{"a":1}`, Options{})
	require.NoError(t, err)

	var f Field[int]
	err = m.Get("missing", &f)

	key, ok := FieldNotFound(err)
	assert.True(t, ok)
	assert.Equal(t, "missing", key)
	assert.Equal(t, "missing: field not found", err.Error())

	key, ok = FieldNotFound(errors.WithMessage(err, "load user"))
	assert.True(t, ok)
	assert.Equal(t, "missing", key)

	key, ok = FieldNotFound(errors.Wrap(ErrFieldNotFound, "bare"))
	assert.True(t, ok)
	assert.Empty(t, key)

	_, ok = FieldNotFound(invalidValue("a", nil))
	assert.False(t, ok)

	_, ok = FieldNotFound(nil)
	assert.False(t, ok)
}

func TestFieldError(t *testing.T) {
	err := invalidValue("age", errors.New("not a number"))

	var fe *FieldError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "age", fe.Key)
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Equal(t, "age: not a number: invalid field value", err.Error())
	assert.Equal(t, "age: invalid field value", invalidValue("age", nil).Error())
}
