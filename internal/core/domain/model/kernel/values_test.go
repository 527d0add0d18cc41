package kernel_test

import (
	"math"
	"testing"

	"moving/internal/core/domain/model/kernel"
	"moving/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney(t *testing.T) {
	t.Run("should reject negative amounts", func(t *testing.T) {
		_, err := kernel.NewMoney(-1)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should add and multiply", func(t *testing.T) {
		m, err := kernel.NewMoney(1500)
		require.NoError(t, err)

		product, err := m.Mul(3)
		require.NoError(t, err)
		assert.Equal(t, kernel.Money(4500), product)

		sum, err := m.Add(m)
		require.NoError(t, err)
		assert.Equal(t, kernel.Money(3000), sum)

		zero, err := m.Mul(-2)
		require.NoError(t, err)
		assert.Equal(t, kernel.Money(0), zero)
	})

	t.Run("should refuse a product that does not fit", func(t *testing.T) {
		_, err := kernel.Money(100_000).Mul(math.MaxInt64 / 100_000 * 2)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		_, err = kernel.Money(400_000).Mul(math.MaxInt64 / 400_000 * 3)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should multiply up to the largest amount", func(t *testing.T) {
		product, err := kernel.Money(2).Mul(math.MaxInt64 / 2)
		require.NoError(t, err)
		assert.Equal(t, kernel.Money(math.MaxInt64-1), product)
	})

	t.Run("should refuse a sum that does not fit", func(t *testing.T) {
		_, err := kernel.Money(math.MaxInt64 - 10).Add(11)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		_, err = kernel.Money(math.MinInt64 + 10).Add(-11)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should sum a list", func(t *testing.T) {
		total, err := kernel.Sum(10, 20, 30)
		require.NoError(t, err)
		assert.Equal(t, kernel.Money(60), total)

		total, err = kernel.Sum()
		require.NoError(t, err)
		assert.Equal(t, kernel.Money(0), total)

		_, err = kernel.Sum(math.MaxInt64, 1)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}

func TestSelection(t *testing.T) {
	t.Run("should accept quantities up to the limit", func(t *testing.T) {
		s, err := kernel.NewSelection(7, kernel.MaxSelectionQuantity)
		require.NoError(t, err)
		assert.Equal(t, int64(kernel.MaxSelectionQuantity), s.Quantity)
	})

	t.Run("should reject quantities above the limit", func(t *testing.T) {
		_, err := kernel.NewSelection(7, kernel.MaxSelectionQuantity+1)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		err = kernel.Selection{ID: 7, Quantity: math.MaxInt64 / 400_000}.Validate()
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("should reject non-positive ids and quantities", func(t *testing.T) {
		_, err := kernel.NewSelection(0, 1)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = kernel.NewSelection(3, 0)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		require.Error(t, kernel.Selection{ID: 0, Quantity: 1}.Validate())
	})
}

func TestPhone(t *testing.T) {
	t.Run("should accept national mobile numbers", func(t *testing.T) {
		p, err := kernel.NewPhone(" 09121234567 ")

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.Equal(t, "09121234567", p.String())
	})

	for _, bad := range []string{"9121234567", "0912123456", "091212345678", "08121234567", "0912123456a"} {
		t.Run("should reject "+bad, func(t *testing.T) {
			_, err := kernel.NewPhone(bad)
			require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		})
	}

	t.Run("should require a value", func(t *testing.T) {
		_, err := kernel.NewPhone("")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("should fail validation for zero value", func(t *testing.T) {
		var p kernel.Phone
		require.Error(t, p.Validate())
	})
}

func TestTrackingCode(t *testing.T) {
	t.Run("should generate well formed unique codes", func(t *testing.T) {
		a := kernel.NewTrackingCode()
		b := kernel.NewTrackingCode()

		require.NoError(t, a.Validate())
		assert.Len(t, a.String(), 13)
		assert.NotEqual(t, a, b)
	})

	t.Run("should parse lower case input", func(t *testing.T) {
		code, err := kernel.ParseTrackingCode("mv-0123456789")

		require.NoError(t, err)
		assert.Equal(t, kernel.TrackingCode("MV-0123456789"), code)
	})

	t.Run("should reject garbage", func(t *testing.T) {
		_, err := kernel.ParseTrackingCode("XX-1")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestRoleAndActor(t *testing.T) {
	t.Run("should parse known roles", func(t *testing.T) {
		for _, r := range []kernel.Role{kernel.RoleCustomer, kernel.RoleDriver, kernel.RoleAdmin} {
			parsed, err := kernel.ParseRole(r.String())
			require.NoError(t, err)
			assert.Equal(t, r, parsed)
		}
	})

	t.Run("should reject unknown role", func(t *testing.T) {
		_, err := kernel.ParseRole("unknown")
		require.Error(t, err)
	})

	t.Run("should identify actor", func(t *testing.T) {
		id := kernel.NewUUID()
		other := kernel.NewUUID()
		actor, err := kernel.NewActor(id, kernel.RoleAdmin)

		require.NoError(t, err)
		assert.True(t, actor.IsAdmin())
		assert.True(t, actor.Is(&id))
		assert.False(t, actor.Is(&other))
		assert.False(t, actor.Is(nil))
	})

	t.Run("should reject actor without id", func(t *testing.T) {
		_, err := kernel.NewActor(kernel.UUID{}, kernel.RoleCustomer)
		require.Error(t, err)
	})
}

func TestServiceType(t *testing.T) {
	t.Run("should parse and format", func(t *testing.T) {
		st, err := kernel.ParseServiceType("packing_supplies")

		require.NoError(t, err)
		assert.Equal(t, kernel.ServicePackingSupplies, st)
		assert.False(t, st.NeedsOrigin())
		assert.True(t, kernel.ServiceMoving.NeedsOrigin())
	})

	t.Run("should reject unknown", func(t *testing.T) {
		require.Error(t, kernel.ServiceUnknown.Validate())
	})
}
