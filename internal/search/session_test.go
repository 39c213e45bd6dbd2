package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dadopl/poc-flight-search/internal/inventory"
	"github.com/dadopl/poc-flight-search/pkg/money"
)

func validCriteria() Criteria {
	return Criteria{
		DepartureIATA:  "WAW",
		ArrivalIATA:    "JFK",
		DepartureDate:  "2026-10-01",
		PassengerCount: 2,
		CabinClass:     inventory.CabinEconomy,
	}
}

func newTestSession() *Session {
	return NewSession("sess-1", validCriteria(), Filters{}, time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC))
}

func TestSession_Lifecycle(t *testing.T) {
	s := newTestSession()
	assert.Equal(t, StatusPending, s.Status)

	require.NoError(t, s.Start())
	assert.Equal(t, StatusProcessing, s.Status)

	require.NoError(t, s.Complete(7))
	assert.Equal(t, StatusCompleted, s.Status)
	require.NotNil(t, s.ResultCount)
	assert.Equal(t, 7, *s.ResultCount)
}

func TestSession_StartTwiceFails(t *testing.T) {
	s := newTestSession()
	require.NoError(t, s.Start())

	err := s.Start()
	var stateErr *InvalidStateError
	require.ErrorAs(t, err, &stateErr)
	assert.Equal(t, StatusProcessing, stateErr.Current)
}

func TestSession_CompleteBeforeStartFails(t *testing.T) {
	s := newTestSession()
	assert.Error(t, s.Complete(0))
}

func TestSession_CompleteWithZeroResultsAllowed(t *testing.T) {
	s := newTestSession()
	require.NoError(t, s.Start())
	require.NoError(t, s.Complete(0))
	assert.Equal(t, 0, *s.ResultCount)
}

func TestSession_CompleteNegativeCountFails(t *testing.T) {
	s := newTestSession()
	require.NoError(t, s.Start())
	assert.Error(t, s.Complete(-1))
	assert.Equal(t, StatusProcessing, s.Status)
}

func TestSession_FailRules(t *testing.T) {
	s := newTestSession()

	// not started yet
	assert.Error(t, s.Fail("boom"))

	require.NoError(t, s.Start())
	assert.Error(t, s.Fail("   "))

	require.NoError(t, s.Fail("upstream timeout"))
	assert.Equal(t, StatusFailed, s.Status)
	assert.Equal(t, "upstream timeout", s.FailureReason)

	// terminal states reject everything
	assert.Error(t, s.Start())
	assert.Error(t, s.Complete(1))
	assert.Error(t, s.Fail("again"))
}

func TestSession_FailAfterCompleteFails(t *testing.T) {
	s := newTestSession()
	require.NoError(t, s.Start())
	require.NoError(t, s.Complete(3))

	assert.Error(t, s.Fail("too late"))
	assert.Equal(t, StatusCompleted, s.Status)
}

func TestCriteria_Normalize(t *testing.T) {
	today := time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC)

	t.Run("lowercases become canonical", func(t *testing.T) {
		c := validCriteria()
		c.DepartureIATA = "waw"
		c.CabinClass = "economy"

		normalized, err := c.Normalize(today)
		require.NoError(t, err)
		assert.Equal(t, "WAW", normalized.DepartureIATA)
		assert.Equal(t, inventory.CabinEconomy, normalized.CabinClass)
	})

	t.Run("same day is allowed", func(t *testing.T) {
		c := validCriteria()
		c.DepartureDate = "2026-09-01"
		_, err := c.Normalize(today)
		assert.NoError(t, err)
	})

	t.Run("past date rejected", func(t *testing.T) {
		c := validCriteria()
		c.DepartureDate = "2026-08-31"
		_, err := c.Normalize(today)
		assert.Error(t, err)
	})

	t.Run("same airports rejected", func(t *testing.T) {
		c := validCriteria()
		c.ArrivalIATA = "WAW"
		_, err := c.Normalize(today)
		assert.Error(t, err)
	})

	t.Run("passenger bounds", func(t *testing.T) {
		c := validCriteria()
		c.PassengerCount = 0
		_, err := c.Normalize(today)
		assert.Error(t, err)

		c.PassengerCount = 10
		_, err = c.Normalize(today)
		assert.Error(t, err)

		c.PassengerCount = 9
		_, err = c.Normalize(today)
		assert.NoError(t, err)
	})

	t.Run("bad cabin rejected", func(t *testing.T) {
		c := validCriteria()
		c.CabinClass = "PREMIUM"
		_, err := c.Normalize(today)
		assert.Error(t, err)
	})
}

func TestFilters_Validate(t *testing.T) {
	assert.NoError(t, Filters{}.Validate())

	minutes := 0
	assert.Error(t, Filters{MaxDurationMinutes: &minutes}.Validate())

	minutes = 90
	assert.NoError(t, Filters{MaxDurationMinutes: &minutes}.Validate())

	bad := money.Money{Amount: 100, Currency: "GBP"}
	assert.Error(t, Filters{MaxPrice: &bad}.Validate())
}
