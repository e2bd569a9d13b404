// Package content issues the text-generation requests behind every
// document: concept explanations, problem sets, reviews, hints and
// worksheets.
package content

// Kind is a category of generated text.
type Kind string

const (
	KindExplanation Kind = "explanation"
	KindProblems    Kind = "problems"
	KindReview      Kind = "review"
	KindHints       Kind = "hints"
	KindWorksheet   Kind = "worksheet"
)

// kindOrder is the fixed order used to break ties in request plans and to
// read outputs back for assembly.
var kindOrder = []Kind{KindExplanation, KindProblems, KindReview, KindHints, KindWorksheet}

// AllKinds returns every kind in assembly order.
func AllKinds() []Kind {
	return append([]Kind(nil), kindOrder...)
}

func (k Kind) rank() int {
	for i, o := range kindOrder {
		if o == k {
			return i
		}
	}
	return len(kindOrder)
}

// Purpose is the label attached to LLM request events.
func (k Kind) Purpose() string {
	if k == KindExplanation {
		return "concept"
	}
	return string(k)
}

// contextLabel heads this kind's output when it is passed to a later
// request.
func (k Kind) contextLabel() string {
	switch k {
	case KindExplanation:
		return "Concept explanation"
	case KindProblems:
		return "Problem set"
	case KindReview:
		return "Problem review"
	case KindHints:
		return "Hints"
	case KindWorksheet:
		return "Worksheet"
	}
	return string(k)
}

// Outputs holds raw generated text by kind.
type Outputs map[Kind]string

// Get returns the text for k, or "" if it was not generated.
func (o Outputs) Get(k Kind) string {
	return o[k]
}

// Has reports whether k produced non-empty text.
func (o Outputs) Has(k Kind) bool {
	return o[k] != ""
}

// Kinds lists the generated kinds in assembly order.
func (o Outputs) Kinds() []Kind {
	var out []Kind
	for _, k := range kindOrder {
		if _, ok := o[k]; ok {
			out = append(out, k)
		}
	}
	return out
}
