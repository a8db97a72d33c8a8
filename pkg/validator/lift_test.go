package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/validkit/pkg/validator"
)

func intPtr(v int) *int { return &v }

func TestOptional(t *testing.T) {
	t.Parallel()
	v := validator.Optional(validator.Rules(validator.Maximum(10)))

	assert.Nil(t, v(nil))
	assert.Nil(t, v(intPtr(10)))
	assert.Equal(t, []string{"the number must be `<= 10`."}, v(intPtr(11)).Messages())
}

func TestEach(t *testing.T) {
	t.Parallel()
	inRange := validator.Rules(validator.Range(validator.Inclusive(0), validator.Inclusive(10)))

	t.Run("sequence of optionals", func(t *testing.T) {
		v := validator.Each(validator.Optional(inRange))
		assert.Nil(t, v([]*int{intPtr(4), intPtr(8), nil}))
	})

	t.Run("failures are keyed by index", func(t *testing.T) {
		issues := validator.Each(inRange)([]int{1, 11, 5, -1})
		require.Len(t, issues, 1)
		require.True(t, issues[0].IsNested())

		tree := issues[0].Tree
		assert.Equal(t, validator.ShapeArray, tree.Shape())
		assert.Equal(t, []int{1, 3}, tree.Indices())
		assert.Equal(t, []string{"`11` must be in `0 <= value <= 10`, but not."}, tree.Item(1).Messages())
		assert.Equal(t, []string{"`-1` must be in `0 <= value <= 10`, but not."}, tree.Item(3).Messages())
	})

	t.Run("empty and nil sequences pass", func(t *testing.T) {
		assert.Nil(t, validator.Each(inRange)(nil))
		assert.Nil(t, validator.Each(inRange)([]int{}))
	})

	t.Run("fixed size arrays", func(t *testing.T) {
		arr := [3]int{1, 2, 30}
		issues := validator.Each(inRange)(arr[:])
		require.Len(t, issues, 1)
		assert.Equal(t, []int{2}, issues[0].Tree.Indices())
	})
}

func TestNestedSequences(t *testing.T) {
	t.Parallel()
	v := validator.Each(validator.Each(validator.Rules(
		validator.Range(validator.Inclusive(0), validator.Inclusive(20)),
	)))

	t.Run("valid", func(t *testing.T) {
		assert.Nil(t, v([][]int{{4, 8}, {12, 16}}))
	})

	t.Run("inner failure nests array in array", func(t *testing.T) {
		issues := v([][]int{{4, 8}, {12, 25}})
		require.Len(t, issues, 1)

		outer := issues[0].Tree
		require.NotNil(t, outer)
		assert.Equal(t, validator.ShapeArray, outer.Shape())
		assert.Equal(t, []int{1}, outer.Indices())

		inner := outer.Item(1)
		require.Len(t, inner, 1)
		require.True(t, inner[0].IsNested())
		assert.Equal(t, validator.ShapeArray, inner[0].Tree.Shape())
		assert.Equal(t, []string{"`25` must be in `0 <= value <= 20`, but not."}, inner[0].Tree.Item(1).Messages())

		assert.Equal(t, map[int]any{
			1: []any{map[int]any{
				1: []any{"`25` must be in `0 <= value <= 20`, but not."},
			}},
		}, outer.Value())
	})
}

func TestLiftingComposes(t *testing.T) {
	t.Parallel()
	base := validator.Rules(validator.Minimum(0))
	values := []*int{intPtr(1), nil, intPtr(-2)}

	lifted := validator.Each(validator.Optional(base))(values)
	require.Len(t, lifted, 1)

	manual := validator.NewArrayErrors()
	for i, v := range values {
		if v != nil {
			manual.Add(i, base(*v)...)
		}
	}
	assert.Equal(t, manual.Tree().Value(), lifted[0].Tree.Value())

	t.Run("optional of a sequence", func(t *testing.T) {
		v := validator.Optional(validator.Each(base))
		assert.Nil(t, v(nil))
		items := []int{3, -1}
		issues := v(&items)
		require.Len(t, issues, 1)
		assert.Equal(t, []int{1}, issues[0].Tree.Indices())
	})
}

func TestAll(t *testing.T) {
	t.Parallel()
	v := validator.All(
		validator.Rules(validator.UniqueItems[int]()),
		validator.Each(validator.Rules(validator.Maximum(5))),
	)

	issues := v([]int{1, 9, 9})
	require.Len(t, issues, 2)
	assert.Equal(t, "the items must be unique.", issues[0].Message)
	require.True(t, issues[1].IsNested())
	assert.Equal(t, []int{1, 2}, issues[1].Tree.Indices())

	assert.Nil(t, v([]int{1, 2}))
}

type point struct {
	X, Y int
}

func (p point) Validate() error {
	errs := validator.NewObjectErrors()
	errs.Add("x", validator.Check(p.X, validator.Minimum(0))...)
	errs.Add("y", validator.Check(p.Y, validator.Minimum(0))...)
	return errs.Err()
}

func TestNested(t *testing.T) {
	t.Parallel()
	v := validator.Each(validator.Nested[point]())

	assert.Nil(t, v([]point{{1, 2}, {0, 0}}))

	issues := v([]point{{1, 2}, {-1, 5}})
	require.Len(t, issues, 1)
	assert.Equal(t, map[int]any{
		1: []any{map[string]any{"x": []any{"the number must be `>= 0`."}}},
	}, issues[0].Tree.Value())

	t.Run("optional pointer to a nested value", func(t *testing.T) {
		pv := validator.Optional(validator.Nested[point]())
		assert.Nil(t, pv(nil))
		assert.NotNil(t, pv(&point{X: -1}))
	})
}
