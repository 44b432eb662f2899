// README: Candidate scoring (dispersion statistics) and top-K selection.
package meeting

import (
	"math"
	"sort"

	"midway/internal/config"
	"midway/internal/types"
)

// scoreCandidates derives fairness statistics for every destination from the
// aggregated duration vectors. A destination any participant cannot reach is
// dropped entirely: partial fairness over a subset of participants is never
// reported. Output order does not necessarily match input order.
func scoreCandidates(destinations []types.Point, durations map[string][]float64, participantNames []string) []CandidatePoint {
	var results []CandidatePoint

	for i, dest := range destinations {
		times := make([]float64, 0, len(participantNames))
		for _, name := range participantNames {
			if vec, ok := durations[name]; ok && i < len(vec) {
				times = append(times, vec[i])
			}
		}

		reachable := true
		for _, t := range times {
			if math.IsInf(t, 1) {
				reachable = false
				break
			}
		}
		if !reachable || len(times) == 0 {
			continue
		}

		var total float64
		maxTime := times[0]
		for _, t := range times {
			total += t
			if t > maxTime {
				maxTime = t
			}
		}
		mean := total / float64(len(times))

		var variance float64
		for _, t := range times {
			variance += (t - mean) * (t - mean)
		}
		variance /= float64(len(times))

		// Coefficient of variation; zero mean means zero spread too.
		cov := 0.0
		if mean > 0 {
			cov = math.Sqrt(variance) / mean
		}

		results = append(results, CandidatePoint{
			Location:    dest,
			TravelTimes: times,
			TotalTime:   total,
			MeanTime:    mean,
			MaxTime:     maxTime,
			Variance:    variance,
			CoV:         cov,
		})
	}
	return results
}

// selectTop normalizes each metric by its maximum across the candidate set,
// combines them with the configured weights, and returns the k best. The
// weights encode the product decision that fairness (low dispersion) matters
// most, then absolute efficiency, then worst-case individual burden. Ties
// keep encounter order (stable sort). Empty input returns empty output.
func selectTop(candidates []CandidatePoint, k int, w config.ScoringConfig) []CandidatePoint {
	if len(candidates) == 0 {
		return nil
	}

	var maxVariance, maxTotal, maxMax float64
	for _, c := range candidates {
		maxVariance = math.Max(maxVariance, c.Variance)
		maxTotal = math.Max(maxTotal, c.TotalTime)
		maxMax = math.Max(maxMax, c.MaxTime)
	}

	scored := make([]CandidatePoint, len(candidates))
	copy(scored, candidates)
	for i := range scored {
		normVariance := safeDiv(scored[i].Variance, maxVariance)
		normTotal := safeDiv(scored[i].TotalTime, maxTotal)
		normMax := safeDiv(scored[i].MaxTime, maxMax)

		scored[i].Combined = w.VarianceWeight*(1-normVariance) +
			w.TotalTimeWeight*(1-normTotal) +
			w.MaxTimeWeight*(1-normMax)
	}

	sort.SliceStable(scored, func(a, b int) bool {
		return scored[a].Combined > scored[b].Combined
	})

	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k]
}

func safeDiv(v, max float64) float64 {
	if max > 0 {
		return v / max
	}
	return 0
}
