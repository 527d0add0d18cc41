package order_test

import (
	"testing"

	"moving/internal/core/domain/model/order"
	"moving/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStatuses = []order.Status{
	order.PendingPayment,
	order.PendingAdminApproval,
	order.InProgress,
	order.Completed,
	order.Cancelled,
}

var allActions = []order.Action{
	order.ActionConfirmPayment,
	order.ActionApprove,
	order.ActionComplete,
	order.ActionCancel,
}

func TestStatus(t *testing.T) {
	t.Run("should round trip through string", func(t *testing.T) {
		for _, s := range allStatuses {
			parsed, err := order.ParseStatus(s.String())
			require.NoError(t, err)
			assert.Equal(t, s, parsed)
			require.NoError(t, s.Validate())
		}
	})

	t.Run("should reject Unknown status", func(t *testing.T) {
		err := order.Unknown.Validate()

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, "Unknown", order.Status(42).String())
	})

	t.Run("should mark only Completed and Cancelled as terminal", func(t *testing.T) {
		for _, s := range allStatuses {
			assert.Equal(t, s == order.Completed || s == order.Cancelled, s.IsTerminal(), s.String())
		}
	})
}

func TestNext(t *testing.T) {
	allowed := map[order.Status]map[order.Action]order.Status{
		order.PendingPayment: {
			order.ActionConfirmPayment: order.PendingAdminApproval,
			order.ActionCancel:         order.Cancelled,
		},
		order.PendingAdminApproval: {
			order.ActionApprove: order.InProgress,
			order.ActionCancel:  order.Cancelled,
		},
		order.InProgress: {
			order.ActionComplete: order.Completed,
			order.ActionCancel:   order.Cancelled,
		},
	}

	for _, from := range allStatuses {
		for _, action := range allActions {
			want, ok := allowed[from][action]
			t.Run("should evaluate "+from.String()+" "+action.String(), func(t *testing.T) {
				got, err := order.Next(from, action)
				if ok {
					require.NoError(t, err)
					assert.Equal(t, want, got)
					return
				}
				require.ErrorIs(t, err, order.ErrInvalidTransition)
				assert.Equal(t, order.Unknown, got)
			})
		}
	}
}

func TestParseAction(t *testing.T) {
	t.Run("should parse every action", func(t *testing.T) {
		for _, a := range allActions {
			parsed, err := order.ParseAction(a.String())
			require.NoError(t, err)
			assert.Equal(t, a, parsed)
		}
	})

	t.Run("should reject unknown action", func(t *testing.T) {
		_, err := order.ParseAction("teleport")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
