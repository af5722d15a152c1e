package vector

import "math"

// Cosine returns the cosine similarity of a and b, accumulated in float64.
// The result is NaN when the vectors are empty, differ in length, or either
// has zero magnitude.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return math.NaN()
	}

	var dot, na2, nb2 float64
	for i := range a {
		va := float64(a[i])
		vb := float64(b[i])

		dot += va * vb
		na2 += va * va
		nb2 += vb * vb
	}

	if na2 == 0 || nb2 == 0 {
		return math.NaN()
	}

	score := dot / (math.Sqrt(na2) * math.Sqrt(nb2))

	// rounding can push parallel vectors just past the unit interval
	if score > 1 {
		score = 1
	} else if score < -1 {
		score = -1
	}

	return score
}

// Scores returns the cosine similarity of q against every vector, in order.
func Scores(q []float32, vectors [][]float32) []float64 {
	scores := make([]float64, len(vectors))
	for i, v := range vectors {
		scores[i] = Cosine(q, v)
	}

	return scores
}

// Nearest performs an exact linear scan and returns the index and score of the
// vector most similar to q. NaN scores are skipped and ties keep the lowest
// index. ok is false when no vector is comparable with q.
func Nearest(q []float32, vectors [][]float32) (index int, score float64, ok bool) {
	index = -1
	score = math.NaN()

	for i, v := range vectors {
		s := Cosine(q, v)
		if math.IsNaN(s) {
			continue
		}

		if !ok || s > score {
			index = i
			score = s
			ok = true
		}
	}

	return index, score, ok
}
