package solver

// MinimalPrefix returns the smallest k in [0, n] for which exists(k) is
// false, given that exists is non-increasing in k and exists(n) is false.
// exists(n) itself is never evaluated.
func MinimalPrefix(n int, exists func(k int) (bool, error)) (int, error) {
	lo, hi := 0, n
	for lo < hi {
		mid := lo + (hi-lo)/2
		ok, err := exists(mid)
		if err != nil {
			return 0, err
		}
		if ok {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo, nil
}
