package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dadopl/poc-flight-search/internal/inventory"
	"github.com/dadopl/poc-flight-search/pkg/money"
)

func testFare(t *testing.T, baseAmount int64) *FareSchedule {
	t.Helper()
	base, err := money.New(baseAmount, "PLN")
	require.NoError(t, err)

	fare, err := NewFareSchedule("fare-1", "FL-1", inventory.CabinEconomy, base, nil,
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return fare
}

var (
	purchase = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
)

func departureIn(days int) time.Time {
	return purchase.Add(time.Duration(days) * 24 * time.Hour)
}

func TestEarlyBird_Boundary(t *testing.T) {
	policy := EarlyBirdPolicy{}
	price, _ := money.New(1000, "PLN")

	// exactly 30 days is not early bird
	in := Input{CurrentPrice: price, PurchaseTime: purchase, DepartureTime: departureIn(30)}
	got, err := policy.Apply(in)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), got.Amount)
	assert.Empty(t, policy.Describe(in))

	in.DepartureTime = departureIn(31)
	got, err = policy.Apply(in)
	require.NoError(t, err)
	assert.Equal(t, int64(850), got.Amount)
	assert.NotEmpty(t, policy.Describe(in))
}

func TestLastMinute_Boundary(t *testing.T) {
	policy := LastMinutePolicy{}
	price, _ := money.New(1000, "PLN")

	// exactly 7 days is not last minute
	in := Input{CurrentPrice: price, PurchaseTime: purchase, DepartureTime: departureIn(7)}
	got, err := policy.Apply(in)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), got.Amount)

	in.DepartureTime = departureIn(6)
	got, err = policy.Apply(in)
	require.NoError(t, err)
	assert.Equal(t, int64(1300), got.Amount)
}

func TestLastMinute_PurchaseAfterDepartureDoesNotInvert(t *testing.T) {
	policy := LastMinutePolicy{}
	price, _ := money.New(1000, "PLN")

	// 20 days after departure: distance is 20 days, not -20
	in := Input{CurrentPrice: price, PurchaseTime: departureIn(20), DepartureTime: purchase}
	got, err := policy.Apply(in)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), got.Amount)
}

func TestOccupancy_Boundary(t *testing.T) {
	policy := OccupancyPolicy{}
	price, _ := money.New(1000, "PLN")

	// exactly 20% is not low availability
	in := Input{CurrentPrice: price, AvailableSeats: 20, TotalSeats: 100}
	got, err := policy.Apply(in)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), got.Amount)

	in.AvailableSeats = 19
	got, err = policy.Apply(in)
	require.NoError(t, err)
	assert.Equal(t, int64(1200), got.Amount)
}

func TestOccupancy_ZeroTotalSeatsNeverTriggers(t *testing.T) {
	policy := OccupancyPolicy{}
	price, _ := money.New(1000, "PLN")

	in := Input{CurrentPrice: price, AvailableSeats: 0, TotalSeats: 0}
	got, err := policy.Apply(in)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), got.Amount)
	assert.Empty(t, policy.Describe(in))
}

func TestGroupDiscount_Threshold(t *testing.T) {
	policy := GroupDiscountPolicy{}
	price, _ := money.New(1000, "PLN")

	in := Input{CurrentPrice: price, PassengerCount: 4}
	got, err := policy.Apply(in)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), got.Amount)

	in.PassengerCount = 5
	got, err = policy.Apply(in)
	require.NoError(t, err)
	assert.Equal(t, int64(900), got.Amount)
}

func TestCalculator_ChainOrderIsPreserved(t *testing.T) {
	fare := testFare(t, 1001)

	// Early bird and group discount both trigger; the group discount must see
	// the already-discounted price, not the base fare.
	calc := NewCalculator([]Policy{EarlyBirdPolicy{}, GroupDiscountPolicy{}})
	result, err := calc.Calculate(fare, purchase, departureIn(40), 5, 100, 100)
	require.NoError(t, err)

	// round(1001*0.85)=851, round(851*0.90)=766
	assert.Equal(t, int64(766), result.FinalPrice.Amount)
	require.Len(t, result.AppliedRules, 2)
	assert.Contains(t, result.AppliedRules[0], "Early bird")
	assert.Contains(t, result.AppliedRules[1], "Group discount")

	// a reversed chain rounds through different intermediates
	fare2 := testFare(t, 995)
	forward := NewCalculator([]Policy{EarlyBirdPolicy{}, GroupDiscountPolicy{}})
	reversed := NewCalculator([]Policy{GroupDiscountPolicy{}, EarlyBirdPolicy{}})

	f, err := forward.Calculate(fare2, purchase, departureIn(40), 5, 100, 100)
	require.NoError(t, err)
	r, err := reversed.Calculate(fare2, purchase, departureIn(40), 5, 100, 100)
	require.NoError(t, err)

	// round(995*0.85)=846, round(846*0.90)=761
	assert.Equal(t, int64(761), f.FinalPrice.Amount)
	// round(995*0.90)=896, round(896*0.85)=762
	assert.Equal(t, int64(762), r.FinalPrice.Amount)
	assert.NotEqual(t, f.FinalPrice.Amount, r.FinalPrice.Amount)
}

func TestCalculator_NoPolicyTriggers(t *testing.T) {
	fare := testFare(t, 500)

	calc := NewCalculator(DefaultPolicies())
	result, err := calc.Calculate(fare, purchase, departureIn(15), 1, 80, 100)
	require.NoError(t, err)

	assert.Equal(t, int64(500), result.FinalPrice.Amount)
	assert.Empty(t, result.AppliedRules)
}

func TestCalculator_FullChainCompounds(t *testing.T) {
	fare := testFare(t, 1000)

	// last minute (x1.30), high occupancy (x1.20), group (x0.90)
	calc := NewCalculator(DefaultPolicies())
	result, err := calc.Calculate(fare, purchase, departureIn(2), 5, 10, 100)
	require.NoError(t, err)

	// 1000 -> 1300 -> 1560 -> 1404
	assert.Equal(t, int64(1404), result.FinalPrice.Amount)
	assert.Len(t, result.AppliedRules, 3)
}
