package kernel_test

import (
	"testing"

	"ordering/internal/core/domain/model/kernel"
	"ordering/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("accepts non-negative amounts", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.NewFromInt(10))

		require.NoError(t, err)
		assert.Equal(t, "10", m.String())
	})

	t.Run("accepts zero", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.Zero)

		require.NoError(t, err)
		assert.True(t, m.IsEqual(kernel.ZeroMoney()))
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		_, err := kernel.NewMoney(decimal.NewFromInt(-1))

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	t.Run("add sums amounts", func(t *testing.T) {
		a, _ := kernel.NewMoneyFromFloat(10.5)
		b, _ := kernel.NewMoneyFromFloat(0.25)

		assert.Equal(t, "10.75", a.Add(b).String())
	})

	t.Run("multiply applies quantity", func(t *testing.T) {
		unit, _ := kernel.NewMoneyFromFloat(9.99)

		assert.Equal(t, "29.97", unit.MultiplyBy(3).String())
	})

	t.Run("no drift across repeated operations", func(t *testing.T) {
		// 0.1 added ten times must be exactly 1 with fixed-point amounts.
		step, _ := kernel.NewMoneyFromFloat(0.1)
		sum := kernel.ZeroMoney()
		for i := 0; i < 10; i++ {
			sum = sum.Add(step)
		}

		one, _ := kernel.NewMoneyFromFloat(1)
		assert.True(t, sum.IsEqual(one))
	})

	t.Run("comparison", func(t *testing.T) {
		small, _ := kernel.NewMoneyFromFloat(1)
		big, _ := kernel.NewMoneyFromFloat(2)

		assert.True(t, big.GreaterThan(small))
		assert.False(t, small.GreaterThan(big))
		assert.False(t, small.GreaterThan(small))
	})
}
