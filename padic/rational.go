package padic

// gcd returns the non-negative greatest common divisor of a and b.
func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// lcm returns the least common multiple of a and b.
func lcm(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	g := gcd(a, b)
	return a / g * b
}

// valuation returns the p-adic valuation v_p(num) - v_p(denom): the exponent
// of p in num minus the exponent of p in denom. num and denom must be
// non-zero.
func valuation(p, num, denom int64) int64 {
	return highestPowerOf(p, num) - highestPowerOf(p, denom)
}

func highestPowerOf(p, x int64) int64 {
	if x < 0 {
		x = -x
	}
	var i int64
	for x != 0 && x%p == 0 {
		i++
		x /= p
	}
	return i
}
