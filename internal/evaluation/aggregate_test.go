package evaluation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func TestAggregate(t *testing.T) {
	t.Run("empty input yields zero stats", func(t *testing.T) {
		st := Aggregate(nil)
		assert.Equal(t, 0, st.TotalEvaluations)
		assert.Zero(t, st.AvgOverallRating)
		assert.Zero(t, st.MinOverallRating)
		assert.Zero(t, st.MaxOverallRating)
	})

	t.Run("overall stats and histogram", func(t *testing.T) {
		evals := []Evaluation{
			{OverallRating: 5},
			{OverallRating: 5},
			{OverallRating: 3},
			{OverallRating: 1, NoShow: true},
			{OverallRating: 4},
		}
		st := Aggregate(evals)

		assert.Equal(t, 5, st.TotalEvaluations)
		assert.Equal(t, 1, st.TotalNoShow)
		assert.Equal(t, 1, st.MinOverallRating)
		assert.Equal(t, 5, st.MaxOverallRating)
		assert.InDelta(t, 3.6, st.AvgOverallRating, 1e-9)

		assert.Equal(t, 1, st.OneStars)
		assert.Equal(t, 0, st.TwoStars)
		assert.Equal(t, 1, st.ThreeStars)
		assert.Equal(t, 1, st.FourStars)
		assert.Equal(t, 2, st.FiveStars)
	})

	t.Run("dimension averages skip nulls", func(t *testing.T) {
		evals := []Evaluation{
			{OverallRating: 4, Professionalism: intp(4), Completeness: intp(2)},
			{OverallRating: 5, Professionalism: intp(2)},
			{OverallRating: 3, Efficiency: intp(3)},
		}
		st := Aggregate(evals)

		require.Equal(t, 3, st.TotalEvaluations)
		assert.InDelta(t, 3.0, st.AvgProfessionalism, 1e-9) // (4+2)/2
		assert.InDelta(t, 2.0, st.AvgCompleteness, 1e-9)    // 2/1
		assert.InDelta(t, 3.0, st.AvgEfficiency, 1e-9)      // 3/1
	})

	t.Run("all dimensions null leaves averages at zero", func(t *testing.T) {
		st := Aggregate([]Evaluation{{OverallRating: 2}})
		assert.Zero(t, st.AvgProfessionalism)
		assert.Zero(t, st.AvgCompleteness)
		assert.Zero(t, st.AvgEfficiency)
	})
}
