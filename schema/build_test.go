package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/recordcheck/recorderrors"
)

func TestNew(t *testing.T) {
	name := &FieldSpec{Types: []Type{TypeString}, Pattern: "[a-z]+"}
	s, err := New("people", &FieldSpec{
		Properties: []Property{
			{Name: "name", Spec: name},
			{Name: "aliases", Spec: &FieldSpec{Types: []Type{TypeArray}, Items: name}},
		},
		Required: []string{"name"},
	})
	require.NoError(t, err)
	assert.Equal(t, "people", s.Name())
	assert.Equal(t, []Type{TypeObject}, s.Root().Types)
	assert.True(t, s.Root().IsRequired("name"))

	got, ok := s.Root().Property("name")
	require.True(t, ok)
	assert.True(t, got.MatchPattern("abc"))
	assert.False(t, got.MatchPattern("abc1"))
}

func TestNew_Errors(t *testing.T) {
	loop := &FieldSpec{Types: []Type{TypeArray}}
	loop.Items = loop
	_, err := New("loop", &FieldSpec{Properties: []Property{{Name: "x", Spec: loop}}})
	assert.ErrorIs(t, err, recorderrors.ErrCircularReference)

	_, err = New("bad", &FieldSpec{Properties: []Property{{Name: "x", Spec: &FieldSpec{Types: []Type{"text"}}}}})
	assert.ErrorIs(t, err, recorderrors.ErrInvalidSchema)

	_, err = New("bad", &FieldSpec{Properties: []Property{{Name: "x", Spec: &FieldSpec{Pattern: "[a-"}}}})
	assert.ErrorIs(t, err, recorderrors.ErrInvalidSchema)

	_, err = New("scalar", &FieldSpec{Types: []Type{TypeString}})
	assert.ErrorIs(t, err, recorderrors.ErrInvalidSchema)
}
