package match

// boundedLevenshtein computes the edit distance between a and b, giving
// up once the distance provably exceeds maxDist. It returns maxDist+1
// as a "too far" sentinel in that case, which keeps the fuzzy scan from
// paying full quadratic cost on hopeless candidates.
//
// Classic two-row dynamic programming: insertion, deletion and
// substitution each cost 1.
func boundedLevenshtein(a, b string, maxDist int) int {
	if a == b {
		return 0
	}
	la, lb := len(a), len(b)
	if la == 0 {
		return clampDist(lb, maxDist)
	}
	if lb == 0 {
		return clampDist(la, maxDist)
	}
	if abs(la-lb) > maxDist {
		return maxDist + 1
	}

	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}

	for i := 1; i <= la; i++ {
		curr[0] = i
		rowMin := curr[0]
		for j := 1; j <= lb; j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			d := prev[j-1] + cost
			if del := prev[j] + 1; del < d {
				d = del
			}
			if ins := curr[j-1] + 1; ins < d {
				d = ins
			}
			curr[j] = d
			if d < rowMin {
				rowMin = d
			}
		}
		if rowMin > maxDist {
			return maxDist + 1
		}
		prev, curr = curr, prev
	}

	return clampDist(prev[lb], maxDist)
}

func clampDist(d, maxDist int) int {
	if d > maxDist {
		return maxDist + 1
	}
	return d
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
