package compare

import (
	"github.com/veridex/crosscheck/internal/token"
)

// Match is one maximal common token run between two sequences: Length
// tokens starting at StartA in the first sequence and StartB in the second.
// Within one comparison, matches never overlap on either side.
type Match struct {
	StartA int
	StartB int
	Length int
}

// EndA returns the exclusive end index on the A side.
func (m Match) EndA() int { return m.StartA + m.Length }

// EndB returns the exclusive end index on the B side.
func (m Match) EndB() int { return m.StartB + m.Length }

// Tiling implements Greedy String Tiling over token types: repeatedly take
// the longest common unmarked run, mark it on both sides, and stop once no
// remaining run reaches minLength. Ties on length resolve to the lowest
// start index in a, then in b; the ascending scan below makes that
// structural rather than incidental.
//
// markedA and markedB are the coverage masks for the two sides. Callers may
// pre-mark indices (basecode regions) to keep them out of every match; nil
// means nothing is pre-marked. The masks are mutated in place and end up
// covering all returned matches. They are local to one comparison job and
// never shared.
func Tiling(a, b []token.Type, minLength int, markedA, markedB []bool) []Match {
	if minLength < 1 {
		minLength = 1
	}
	if markedA == nil {
		markedA = make([]bool, len(a))
	}
	if markedB == nil {
		markedB = make([]bool, len(b))
	}

	var matches []Match
	for {
		var best Match
		for i := 0; i+minLength <= len(a); i++ {
			if markedA[i] {
				continue
			}
			// No run starting here can beat the current best.
			if i+best.Length >= len(a) && best.Length > 0 {
				break
			}
			for j := 0; j+minLength <= len(b); j++ {
				if markedB[j] {
					continue
				}
				length := 0
				for i+length < len(a) && j+length < len(b) {
					if markedA[i+length] || markedB[j+length] || a[i+length] != b[j+length] {
						break
					}
					length++
				}
				if length > best.Length {
					best = Match{StartA: i, StartB: j, Length: length}
				}
			}
		}
		if best.Length < minLength {
			break
		}
		for k := 0; k < best.Length; k++ {
			markedA[best.StartA+k] = true
			markedB[best.StartB+k] = true
		}
		matches = append(matches, best)
	}
	return matches
}

// BaseCodeMask marks the regions of seq that the basecode also contains.
// Pair tiling receives a copy of this mask so boilerplate distributed to
// every participant can never inflate similarity.
func BaseCodeMask(seq, base token.Sequence, minLength int) []bool {
	marked := make([]bool, seq.Len())
	Tiling(seq.Types(), base.Types(), minLength, marked, make([]bool, base.Len()))
	return marked
}
