package payment

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/venuehq/backend/internal/domain/shared"
	"github.com/venuehq/backend/internal/domain/shared/valueobject"
)

func newTestPlan(t *testing.T, total float64, count int) *InstallmentPlan {
	t.Helper()
	plan, err := NewInstallmentPlan(uuid.New(), "ORD-1001", valueobject.NewMoneyUSDFromFloat(total), count, 30)
	require.NoError(t, err)
	return plan
}

func TestNewInstallmentPlan(t *testing.T) {
	t.Run("splits an even total into equal installments", func(t *testing.T) {
		plan := newTestPlan(t, 300, 3)

		require.Len(t, plan.Installments, 3)
		for _, inst := range plan.Installments {
			assert.Equal(t, "100.00", inst.Amount.StringFixed(2))
			assert.Equal(t, InstallmentPending, inst.Status)
		}
	})

	t.Run("earlier installments absorb remainder cents", func(t *testing.T) {
		plan := newTestPlan(t, 100, 3)

		require.Len(t, plan.Installments, 3)
		assert.Equal(t, "33.34", plan.Installments[0].Amount.StringFixed(2))
		assert.Equal(t, "33.33", plan.Installments[1].Amount.StringFixed(2))
		assert.Equal(t, "33.33", plan.Installments[2].Amount.StringFixed(2))
	})

	t.Run("installment amounts sum to the plan total", func(t *testing.T) {
		plan := newTestPlan(t, 99.99, 4)

		assert.Equal(t, plan.Total.StringFixed(2), plan.outstanding().StringFixed(2))
	})

	t.Run("spaces due dates by the interval", func(t *testing.T) {
		plan := newTestPlan(t, 300, 3)

		first := plan.Installments[0].DueAt
		assert.Equal(t, first.AddDate(0, 0, 30), plan.Installments[1].DueAt)
		assert.Equal(t, first.AddDate(0, 0, 60), plan.Installments[2].DueAt)
	})

	t.Run("rejects fewer than two installments", func(t *testing.T) {
		_, err := NewInstallmentPlan(uuid.New(), "ORD-1", valueobject.NewMoneyUSDFromFloat(50), 1, 30)

		require.Error(t, err)
	})

	t.Run("rejects a non-positive total", func(t *testing.T) {
		_, err := NewInstallmentPlan(uuid.New(), "ORD-1", valueobject.ZeroUSD(), 3, 30)

		require.Error(t, err)
	})

	t.Run("emits a plan created event", func(t *testing.T) {
		plan := newTestPlan(t, 300, 3)

		events := plan.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypePlanCreated, events[0].EventType())
	})
}

func TestInstallmentPlan_PayInstallment(t *testing.T) {
	t.Run("pays installments in order", func(t *testing.T) {
		plan := newTestPlan(t, 300, 3)

		require.NoError(t, plan.PayInstallment(1))
		require.NoError(t, plan.PayInstallment(2))

		assert.Equal(t, InstallmentPaid, plan.Installments[0].Status)
		assert.Equal(t, InstallmentPaid, plan.Installments[1].Status)
		assert.Equal(t, "100.00", plan.Outstanding().Amount().StringFixed(2))
		assert.Equal(t, PlanStatusActive, plan.Status)
	})

	t.Run("rejects out of order payments", func(t *testing.T) {
		plan := newTestPlan(t, 300, 3)

		err := plan.PayInstallment(2)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "OUT_OF_ORDER", domainErr.Code)
	})

	t.Run("settles the plan on the final payment", func(t *testing.T) {
		plan := newTestPlan(t, 300, 3)
		plan.ClearDomainEvents()

		require.NoError(t, plan.PayInstallment(1))
		require.NoError(t, plan.PayInstallment(2))
		require.NoError(t, plan.PayInstallment(3))

		assert.Equal(t, PlanStatusSettled, plan.Status)
		assert.True(t, plan.Outstanding().IsZero())
		events := plan.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypePlanSettled, events[0].EventType())
	})

	t.Run("rejects paying the same installment twice", func(t *testing.T) {
		plan := newTestPlan(t, 300, 3)
		require.NoError(t, plan.PayInstallment(1))

		require.Error(t, plan.PayInstallment(1))
	})

	t.Run("rejects unknown sequence", func(t *testing.T) {
		plan := newTestPlan(t, 300, 3)
		require.NoError(t, plan.PayInstallment(1))
		require.NoError(t, plan.PayInstallment(2))
		require.NoError(t, plan.PayInstallment(3))

		require.ErrorIs(t, plan.PayInstallment(4), shared.ErrInvalidState)
	})
}

func TestInstallmentPlan_Cancel(t *testing.T) {
	t.Run("cancels an untouched plan", func(t *testing.T) {
		plan := newTestPlan(t, 300, 3)

		require.NoError(t, plan.Cancel())

		assert.Equal(t, PlanStatusCancelled, plan.Status)
	})

	t.Run("refuses once a payment has landed", func(t *testing.T) {
		plan := newTestPlan(t, 300, 3)
		require.NoError(t, plan.PayInstallment(1))

		require.Error(t, plan.Cancel())
	})
}
