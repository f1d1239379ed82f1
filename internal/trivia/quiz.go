package trivia

import "math/rand/v2"

// pickQuestion draws one candidate uniformly at random, or reports the
// round complete when no candidates remain. The index is always drawn
// from the filtered candidate set itself, never from a larger set that
// is filtered afterwards, so it can never fall out of range.
func pickQuestion(candidates []Question, intN func(int) int) QuizResult {
	if len(candidates) == 0 {
		return QuizResult{Done: true}
	}
	q := candidates[intN(len(candidates))]
	return QuizResult{Question: &q}
}

func defaultIntN(n int) int {
	return rand.IntN(n)
}
