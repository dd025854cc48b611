// internal/solver/score.go
//
// Scorers for ranking candidates.
//   - Frequency: common letters in common positions, with a heavy penalty
//     for repeated letters (they test nothing new).
//   - Likelihood: each candidate's share of the familiarity statistic summed
//     over all candidates, an estimate of "probability this is the answer".
//
// Ties in either ranking break lexicographically so results are
// deterministic regardless of input order.

package solver

import (
	"math"
	"sort"

	"github.com/robalobadob/wordle/apps/solver/internal/words"
)

// Ranked is a word with its score.
type Ranked struct {
	Word  string  `json:"word"`
	Score float64 `json:"score"`
}

// FrequencyScore sums the positional frequency of each letter of w and
// divides by 10 for every repeated letter occurrence.
func FrequencyScore(w string, f words.Frequencies) float64 {
	var (
		score   float64
		seen    [26]bool
		repeats int
	)
	for i := 0; i < len(w); i++ {
		c := w[i]
		if c >= 'a' && c <= 'z' {
			if seen[c-'a'] {
				repeats++
			}
			seen[c-'a'] = true
		}
		score += float64(f.At(c, i+1))
	}
	return score / math.Pow10(repeats)
}

// RankByFrequency returns cands sorted by FrequencyScore, best first.
func RankByFrequency(cands []string, f words.Frequencies) []string {
	ranked := make([]Ranked, len(cands))
	for i, w := range cands {
		ranked[i] = Ranked{Word: w, Score: FrequencyScore(w, f)}
	}
	sortRanked(ranked)
	out := make([]string, len(ranked))
	for i, r := range ranked {
		out[i] = r.Word
	}
	return out
}

// LikelihoodScores returns, in the order of cands, each word's statistic
// divided by the sum over all cands. If the sum is 0 every score is 0.
func LikelihoodScores(cands []string, s words.Stats) []float64 {
	out := make([]float64, len(cands))
	var total float64
	for i, w := range cands {
		out[i] = s.Get(w)
		total += out[i]
	}
	if total == 0 {
		for i := range out {
			out[i] = 0
		}
		return out
	}
	for i := range out {
		out[i] /= total
	}
	return out
}

// RankByLikelihood pairs cands with their likelihood and sorts best first.
func RankByLikelihood(cands []string, s words.Stats) []Ranked {
	scores := LikelihoodScores(cands, s)
	out := make([]Ranked, len(cands))
	for i, w := range cands {
		out[i] = Ranked{Word: w, Score: scores[i]}
	}
	sortRanked(out)
	return out
}

// BestGuess returns the most likely candidate when its score reaches
// threshold. ok is false when there are no candidates or none is confident.
func BestGuess(cands []string, s words.Stats, threshold float64) (best Ranked, ok bool) {
	ranked := RankByLikelihood(cands, s)
	if len(ranked) == 0 {
		return Ranked{}, false
	}
	if ranked[0].Score < threshold {
		return Ranked{}, false
	}
	return ranked[0], true
}

func sortRanked(r []Ranked) {
	sort.Slice(r, func(i, j int) bool {
		if r[i].Score != r[j].Score {
			return r[i].Score > r[j].Score
		}
		return r[i].Word < r[j].Word
	})
}
