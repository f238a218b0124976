package evaluation

// Stats summarizes a cleaner's evaluations.
type Stats struct {
	AvgProfessionalism float64 `json:"avg_professionalism"`
	AvgCompleteness    float64 `json:"avg_completeness"`
	AvgEfficiency      float64 `json:"avg_efficiency"`
	AvgOverallRating   float64 `json:"avg_overall_rating"`
	MaxOverallRating   int     `json:"max_overall_rating"`
	MinOverallRating   int     `json:"min_overall_rating"`
	OneStars           int     `json:"one_stars"`
	TwoStars           int     `json:"two_stars"`
	ThreeStars         int     `json:"three_stars"`
	FourStars          int     `json:"four_stars"`
	FiveStars          int     `json:"five_stars"`
	TotalEvaluations   int     `json:"total_evaluations"`
	TotalNoShow        int     `json:"total_no_show"`
}

// Aggregate reduces evaluations to stats. Per-dimension averages skip
// null ratings; the histogram counts overall ratings only.
func Aggregate(evals []Evaluation) Stats {
	st := Stats{TotalEvaluations: len(evals)}
	if len(evals) == 0 {
		return st
	}

	var (
		sumOverall int
		dimSum     [3]int
		dimCount   [3]int
	)
	st.MinOverallRating = evals[0].OverallRating
	st.MaxOverallRating = evals[0].OverallRating

	for _, e := range evals {
		sumOverall += e.OverallRating
		if e.OverallRating < st.MinOverallRating {
			st.MinOverallRating = e.OverallRating
		}
		if e.OverallRating > st.MaxOverallRating {
			st.MaxOverallRating = e.OverallRating
		}
		switch e.OverallRating {
		case 1:
			st.OneStars++
		case 2:
			st.TwoStars++
		case 3:
			st.ThreeStars++
		case 4:
			st.FourStars++
		case 5:
			st.FiveStars++
		}
		if e.NoShow {
			st.TotalNoShow++
		}

		for i, r := range []*int{e.Professionalism, e.Completeness, e.Efficiency} {
			if r != nil {
				dimSum[i] += *r
				dimCount[i]++
			}
		}
	}

	st.AvgOverallRating = float64(sumOverall) / float64(len(evals))
	if dimCount[0] > 0 {
		st.AvgProfessionalism = float64(dimSum[0]) / float64(dimCount[0])
	}
	if dimCount[1] > 0 {
		st.AvgCompleteness = float64(dimSum[1]) / float64(dimCount[1])
	}
	if dimCount[2] > 0 {
		st.AvgEfficiency = float64(dimSum[2]) / float64(dimCount[2])
	}
	return st
}
