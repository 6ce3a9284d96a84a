package krpcgen

import (
	"io"
)

// Spanned pairs a matched value with the byte Range it occupied in
// the source.
type Spanned[T any] struct {
	Value T
	Range Range
}

// Engine is the generic longest-match tokenizer: given an ordered
// list of rules and a skip predicate, it repeatedly runs every rule's
// matcher over the same input in lockstep, picking the longest result
// among those that reach Matched and breaking ties by rule order.
type Engine[T any] struct {
	input   []rune
	offsets []int // offsets[i] is the byte offset of input[i]; offsets[len(input)] is the total byte length
	cursor  int
	rules   []MatchRule[T]
	skip    func(rune) bool
}

// NewEngine builds an Engine over src, skipping runes for which skip
// reports true before every tokenization attempt (pass nil to skip
// nothing).
func NewEngine[T any](src []byte, skip func(rune) bool, rules []MatchRule[T]) *Engine[T] {
	runes := []rune(string(src))
	offsets := make([]int, len(runes)+1)
	b := 0
	for i, r := range runes {
		offsets[i] = b
		b += runeLen(r)
	}
	offsets[len(runes)] = b
	return &Engine[T]{input: runes, offsets: offsets, rules: rules, skip: skip}
}

// NewEngineFromReader reads r fully before tokenizing; krpcgen
// specifications are small, so there is no benefit to true streaming.
func NewEngineFromReader[T any](r io.Reader, skip func(rune) bool, rules []MatchRule[T]) (*Engine[T], error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return NewEngine(data, skip, rules), nil
}

func runeLen(r rune) int {
	switch {
	case r < 0x80:
		return 1
	case r < 0x800:
		return 2
	case r < 0x10000:
		return 3
	default:
		return 4
	}
}

func (e *Engine[T]) next() rune {
	if e.cursor >= len(e.input) {
		return runeEOF
	}
	ch := e.input[e.cursor]
	e.cursor++
	return ch
}

func (e *Engine[T]) rewind() {
	if e.cursor > 0 {
		e.cursor--
	}
}

func (e *Engine[T]) byteOffset(runeIdx int) int {
	if runeIdx < 0 {
		runeIdx = 0
	}
	if runeIdx > len(e.offsets)-1 {
		runeIdx = len(e.offsets) - 1
	}
	return e.offsets[runeIdx]
}

// AtEOF reports whether every remaining rune has been consumed.
func (e *Engine[T]) AtEOF() bool { return e.cursor >= len(e.input) }

// Next runs one tokenization attempt: it skips leading runes accepted
// by the skip predicate, then feeds every rule's matcher the same
// rune stream until only matched and rejected matchers remain,
// picking the longest match (ties broken by rule order).
func (e *Engine[T]) Next() (Spanned[T], error) {
	for {
		ch := e.next()
		if ch == runeEOF {
			return Spanned[T]{}, io.EOF
		}
		if e.skip != nil && e.skip(ch) {
			continue
		}
		e.rewind()
		break
	}

	startRune := e.cursor
	start := e.byteOffset(startRune)

	n := len(e.rules)
	matchers := make([]Matcher[T], n)
	alive := make([]bool, n)
	matchedAt := make([]int, n) // rune cursor right after the Feed call that matched
	matchedConsumed := make([]bool, n)
	matchedWasEOF := make([]bool, n)
	for i := range matchedAt {
		matchedAt[i] = -1
	}
	for i, r := range e.rules {
		matchers[i] = r()
		alive[i] = true
	}

	active := n
	matchedCount := 0
	sawEOF := false
	ambiguous := false

	for active > 0 {
		ch := e.next()
		isEOF := ch == runeEOF
		if isEOF {
			sawEOF = true
		}
		for i := 0; i < n; i++ {
			if !alive[i] {
				continue
			}
			switch matchers[i].Feed(ch) {
			case Matching:
				// still alive
			case Matched:
				alive[i] = false
				active--
				matchedCount++
				matchedAt[i] = e.cursor
				matchedConsumed[i] = matchers[i].Consumed()
				matchedWasEOF[i] = isEOF
			case Rejected:
				alive[i] = false
				active--
				if am, ok := any(matchers[i]).(ambiguousMatcher); ok && am.AmbiguityErr() != nil {
					ambiguous = true
				}
			}
		}
		if isEOF {
			active = 0
			break
		}
	}

	if matchedCount == 0 {
		e.cursor = startRune
		if ambiguous {
			return Spanned[T]{}, errAmbiguousGrammar
		}
		if sawEOF {
			return Spanned[T]{}, &LexError{Kind: LexUnexpectedEOF, Range: Range{start, start}}
		}
		return Spanned[T]{}, &LexError{Kind: LexUnknownToken, Range: Range{start, e.byteOffset(startRune + 1)}}
	}

	winner := -1
	winnerLen := -1
	for i := 0; i < n; i++ {
		if matchedAt[i] == -1 {
			continue
		}
		length := matcherTextLen(matchers[i])
		if length > winnerLen {
			winnerLen = length
			winner = i
		}
	}

	endRune := matchedAt[winner]
	if !matchedWasEOF[winner] && !matchedConsumed[winner] {
		endRune--
	}
	e.cursor = endRune

	value := matchers[winner].Produce()
	rg := Range{Start: start, End: e.byteOffset(endRune)}
	return Spanned[T]{Value: value, Range: rg}, nil
}

// matcherTextLen recovers the rune length of whatever text the
// matcher accumulated, used to break ties between rules that matched
// at different stream positions. Concrete matchers that carry a text
// payload implement textLen(); matchers that don't (a Group wrapping
// non-textual matchers, say) fall back to 0 and lose every tie, which
// is never exercised by the RPCL rule set.
func matcherTextLen[T any](m Matcher[T]) int {
	if tl, ok := any(m).(interface{ textLen() int }); ok {
		return tl.textLen()
	}
	return 0
}

func (m *charSequenceMatcher[T]) textLen() int { return len(m.literal) }
func (m *allowedCharMatcher[T]) textLen() int  { return len(m.buf) }
func (m *integerMatcher[T]) textLen() int      { return len(m.buf) }
func (m *sequenceMatcher[T]) textLen() int     { return len(m.buf) }
func (m *groupMatcher[T]) textLen() int {
	if m.matchedIdx < 0 {
		return 0
	}
	return matcherTextLen(m.subs[m.matchedIdx])
}
func (m *commentMatcher[T]) textLen() int { return len(m.buf) }
