package validator_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/validkit/pkg/validator"
)

var (
	quantityRules = validator.Rules(validator.Minimum(1), validator.Maximum(100))
	pricesRules   = validator.All(
		validator.Rules(validator.MinItems[float64](1), validator.UniqueItems[float64]()),
		validator.Each(validator.Rules(validator.ExclusiveMinimum(0.0), validator.MultipleOf(0.01))),
	)
	couponRules = validator.Optional(validator.Rules(
		validator.Pattern[string](validator.MustPattern(`^[A-Z0-9]{8}$`)),
	))
	totalRule = validator.Custom(func(prices []float64) error {
		var sum float64
		for _, p := range prices {
			sum += p
		}
		if sum > 1000 {
			return errors.New("the total must not exceed 1000.")
		}
		return nil
	})
)

type order struct {
	Quantity int
	Prices   []float64
	Coupon   *string
	Shipping *point
}

func (o order) Validate() error {
	errs := validator.NewObjectErrors()
	errs.Add("quantity", quantityRules(o.Quantity)...)
	errs.Add("prices", pricesRules(o.Prices)...)
	errs.Add("prices", totalRule.Validate(o.Prices)...)
	errs.Add("coupon", couponRules(o.Coupon)...)
	errs.Add("shipping", validator.Optional(validator.Nested[point]())(o.Shipping)...)
	return errs.Err()
}

func TestOrderValidation(t *testing.T) {
	t.Parallel()
	coupon := "SUMMER24"

	t.Run("valid order", func(t *testing.T) {
		o := order{Quantity: 3, Prices: []float64{9.99, 0.3}, Coupon: &coupon, Shipping: &point{1, 1}}
		assert.NoError(t, o.Validate())
	})

	t.Run("collects every failure", func(t *testing.T) {
		bad := "summer"
		o := order{
			Quantity: 0,
			Prices:   []float64{999.999, 999.999, -1},
			Coupon:   &bad,
			Shipping: &point{X: -1, Y: 0},
		}

		err := o.Validate()
		require.Error(t, err)
		tree, ok := validator.AsTree(err)
		require.True(t, ok)

		assert.Equal(t, []string{"quantity", "prices", "coupon", "shipping"}, tree.Fields())
		assert.Equal(t, map[string]any{
			"quantity": []any{"the number must be `>= 1`."},
			"prices": []any{
				"the items must be unique.",
				map[int]any{
					0: []any{"the value must be multiple of `0.01`."},
					1: []any{"the value must be multiple of `0.01`."},
					2: []any{"the number must be `> 0`."},
				},
				"the total must not exceed 1000.",
			},
			"coupon":   []any{`the value must match the pattern of "^[A-Z0-9]{8}$".`},
			"shipping": []any{map[string]any{"x": []any{"the number must be `>= 0`."}}},
		}, tree.Value())
	})
}

// shape is an enum-like sum type: each variant validates its own payload.
type shape interface {
	Validate() error
	isShape()
}

type circle struct{ Radius float64 }

func (circle) isShape() {}

func (c circle) Validate() error {
	errs := validator.NewObjectErrors()
	errs.Add("radius", validator.Check(c.Radius, validator.ExclusiveMinimum(0.0))...)
	return errs.Err()
}

// side is a single-field new-type, so its errors are flat leaves.
type side float64

func (s side) Validate() error {
	return validator.NewType(validator.Check(float64(s), validator.ExclusiveMinimum(0.0))...)
}

type rect struct{ W, H side }

func (rect) isShape() {}

// rect has two unnamed positions, so its errors are keyed by index.
func (r rect) Validate() error {
	errs := validator.NewArrayErrors()
	errs.AddError(0, r.W.Validate())
	errs.AddError(1, r.H.Validate())
	return errs.Err()
}

type drawing struct {
	Shapes []shape
}

func (d drawing) Validate() error {
	errs := validator.NewObjectErrors()
	errs.Add("shapes", validator.Each(validator.Nested[shape]())(d.Shapes)...)
	return errs.Err()
}

func TestEnumVariants(t *testing.T) {
	t.Parallel()
	assert.NoError(t, drawing{Shapes: []shape{circle{1}, rect{2, 3}, nil}}.Validate())

	err := drawing{Shapes: []shape{circle{1}, circle{0}, rect{2, -3}}}.Validate()
	tree, ok := validator.AsTree(err)
	require.True(t, ok)

	assert.Equal(t, map[string]any{
		"shapes": []any{map[int]any{
			1: []any{map[string]any{"radius": []any{"the number must be `> 0`."}}},
			2: []any{map[int]any{1: []any{"the number must be `> 0`."}}},
		}},
	}, tree.Value())
}

func TestValidatorsAreShareable(t *testing.T) {
	t.Parallel()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(q int) {
			defer wg.Done()
			err := order{Quantity: q, Prices: []float64{1}}.Validate()
			if q >= 1 && q <= 100 {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		}(i)
	}
	wg.Wait()
}
