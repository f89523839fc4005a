// Copyright (c) 2017 Temple3x (temple3x@gmail.com)
//
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.
//
// Copyright ©2016 The Gonum Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cyclic

const (
	errNegInput = "combination: negative input"
	badSetSize  = "combination: n < k"
)

// Binomial returns the binomial coefficient of (n, k).
//
// n and k must be non-negative with n >= k, otherwise Binomial will panic.
// The result must fit in int, which holds for every n used here.
func Binomial(n, k int) int {
	if n < 0 || k < 0 {
		panic(errNegInput)
	}
	if n < k {
		panic(badSetSize)
	}
	if k > n-k {
		k = n - k
	}
	b := 1
	for i := 1; i <= k; i++ {
		// b*(n-k+i) is always divisible by i here.
		b = b * (n - k + i) / i
	}
	return b
}

// patternCnt returns the number of non-zero error patterns of weight <= t
// over n bits.
func patternCnt(n, t int) int {
	cnt := 0
	for w := 1; w <= t; w++ {
		cnt += Binomial(n, w)
	}
	return cnt
}
