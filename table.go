package cyclic

import "math/bits"

// patternTbl maps a syndrome to the error pattern of least weight
// producing it, 0 if no pattern of weight <= T does.
//
// Built in init, read only afterwards.
var patternTbl [1 << (N - K)]uint32

func init() {
	genPatternTbl(&patternTbl, Generator)
}

// genPatternTbl fills tbl with every error pattern of weight 1 and then
// of weight 2. The first pattern seen for a syndrome wins, so a lighter
// pattern is never replaced by a heavier one.
//
// It returns the number of patterns recorded.
func genPatternTbl(tbl *[1 << (N - K)]uint32, g uint32) int {
	cnt := 0
	add := func(pat uint32) {
		s := PolyRem(uint64(pat), g)
		if s != 0 && tbl[s] == 0 {
			tbl[s] = pat
			cnt++
		}
	}

	for i := 0; i < N; i++ {
		add(1 << uint(i))
	}
	for i := 0; i < N; i++ {
		for j := i + 1; j < N; j++ {
			add(1<<uint(i) | 1<<uint(j))
		}
	}
	return cnt
}

// ErrorPattern returns the correctable error pattern for syndrome s,
// ok is false if s is not produced by any pattern of weight <= T.
// The zero syndrome has the empty pattern.
func ErrorPattern(s uint8) (pat uint32, ok bool) {
	if s == 0 {
		return 0, true
	}
	pat = patternTbl[s]
	return pat, pat != 0
}

func weight(w uint32) int {
	return bits.OnesCount32(w)
}
