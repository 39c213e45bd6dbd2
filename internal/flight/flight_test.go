package flight

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testDeparture = time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC)
	testArrival   = time.Date(2026, 10, 1, 17, 0, 0, 0, time.UTC)
)

func newTestFlight(t *testing.T) *Flight {
	t.Helper()
	f, err := Schedule("fl-1", "LO123", "ap-waw", "ap-jfk",
		testDeparture, testArrival, Aircraft{Model: "B787", TotalSeats: 200})
	require.NoError(t, err)
	return f
}

func TestSchedule_Validation(t *testing.T) {
	aircraft := Aircraft{Model: "B787", TotalSeats: 200}

	t.Run("normalizes flight number", func(t *testing.T) {
		f, err := Schedule("fl-1", "  lo123 ", "ap-waw", "ap-jfk", testDeparture, testArrival, aircraft)
		require.NoError(t, err)
		assert.Equal(t, "LO123", f.FlightNumber)
		assert.Equal(t, StatusScheduled, f.Status)
	})

	t.Run("rejects malformed flight numbers", func(t *testing.T) {
		for _, number := range []string{"", "L123", "LOT123", "LO12345", "LO", "12AB"} {
			_, err := Schedule("fl-1", number, "ap-waw", "ap-jfk", testDeparture, testArrival, aircraft)
			assert.Error(t, err, "number %q", number)
		}
	})

	t.Run("rejects same airports", func(t *testing.T) {
		_, err := Schedule("fl-1", "LO123", "ap-waw", "ap-waw", testDeparture, testArrival, aircraft)
		assert.Error(t, err)
	})

	t.Run("rejects arrival not after departure", func(t *testing.T) {
		_, err := Schedule("fl-1", "LO123", "ap-waw", "ap-jfk", testDeparture, testDeparture, aircraft)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive seats", func(t *testing.T) {
		_, err := Schedule("fl-1", "LO123", "ap-waw", "ap-jfk", testDeparture, testArrival, Aircraft{Model: "B787"})
		assert.Error(t, err)
	})
}

func TestFlight_HappyPathToArrived(t *testing.T) {
	f := newTestFlight(t)

	require.NoError(t, f.Board())
	assert.Equal(t, StatusBoarding, f.Status)

	require.NoError(t, f.Depart())
	assert.Equal(t, StatusDeparted, f.Status)

	require.NoError(t, f.Arrive())
	assert.Equal(t, StatusArrived, f.Status)
}

func TestFlight_DelayedCanBoardOrCancel(t *testing.T) {
	f := newTestFlight(t)
	newDeparture := testDeparture.Add(2 * time.Hour)

	require.NoError(t, f.Delay(newDeparture))
	assert.Equal(t, StatusDelayed, f.Status)
	assert.Equal(t, newDeparture, f.DepartureTime)

	require.NoError(t, f.Board())
	assert.Equal(t, StatusBoarding, f.Status)

	g := newTestFlight(t)
	require.NoError(t, g.Delay(newDeparture))
	require.NoError(t, g.Cancel("crew shortage"))
	assert.Equal(t, StatusCancelled, g.Status)
}

func TestFlight_DelayRequiresDepartureBeforeArrival(t *testing.T) {
	f := newTestFlight(t)

	assert.Error(t, f.Delay(testArrival))
	assert.Error(t, f.Delay(testArrival.Add(time.Hour)))
	assert.Equal(t, StatusScheduled, f.Status, "rejected delay must not change status")
	assert.Equal(t, testDeparture, f.DepartureTime)
}

func TestFlight_RejectedTransitions(t *testing.T) {
	t.Run("scheduled cannot depart or arrive", func(t *testing.T) {
		f := newTestFlight(t)
		assertTransitionError(t, f.Depart(), StatusScheduled, StatusDeparted)
		assertTransitionError(t, f.Arrive(), StatusScheduled, StatusArrived)
	})

	t.Run("boarding cannot delay", func(t *testing.T) {
		f := newTestFlight(t)
		require.NoError(t, f.Board())
		assertTransitionError(t, f.Delay(testDeparture.Add(time.Hour)), StatusBoarding, StatusDelayed)
	})

	t.Run("departed cannot cancel", func(t *testing.T) {
		f := newTestFlight(t)
		require.NoError(t, f.Board())
		require.NoError(t, f.Depart())
		assertTransitionError(t, f.Cancel("too late"), StatusDeparted, StatusCancelled)
	})

	t.Run("arrived is terminal", func(t *testing.T) {
		f := newTestFlight(t)
		require.NoError(t, f.Board())
		require.NoError(t, f.Depart())
		require.NoError(t, f.Arrive())

		assertTransitionError(t, f.Board(), StatusArrived, StatusBoarding)
		assertTransitionError(t, f.Depart(), StatusArrived, StatusDeparted)
		assertTransitionError(t, f.Cancel("already landed"), StatusArrived, StatusCancelled)
	})

	t.Run("cancelled is terminal", func(t *testing.T) {
		f := newTestFlight(t)
		require.NoError(t, f.Cancel("weather"))

		assertTransitionError(t, f.Board(), StatusCancelled, StatusBoarding)
		assertTransitionError(t, f.Delay(testDeparture.Add(time.Hour)), StatusCancelled, StatusDelayed)
		assertTransitionError(t, f.Cancel("again"), StatusCancelled, StatusCancelled)
	})
}

func TestFlight_CancelRequiresReason(t *testing.T) {
	f := newTestFlight(t)
	assert.Error(t, f.Cancel("  "))
	assert.Equal(t, StatusScheduled, f.Status)
}

func assertTransitionError(t *testing.T, err error, from, to Status) {
	t.Helper()
	var transitionErr *InvalidTransitionError
	require.ErrorAs(t, err, &transitionErr)
	assert.Equal(t, from, transitionErr.From)
	assert.Equal(t, to, transitionErr.To)
}
