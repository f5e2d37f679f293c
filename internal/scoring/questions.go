package scoring

import (
	"slices"

	"github.com/jonathan/readiness-check/internal/types"
)

// Question is the single multiple-choice quiz item shown for a role.
type Question struct {
	Role     types.Role `json:"role"`
	Question string     `json:"question"`
	Options  []string   `json:"options"`
	answer   string
}

var questionBank = map[types.Role]Question{
	types.RoleFrontend: {
		Role:     types.RoleFrontend,
		Question: "What is the primary purpose of React's useEffect hook?",
		Options:  []string{"State management", "Side effects", "Routing", "Styling"},
		answer:   "Side effects",
	},
	types.RoleBackend: {
		Role:     types.RoleBackend,
		Question: "Which of these is NOT a standard HTTP method?",
		Options:  []string{"GET", "POST", "FETCH", "DELETE"},
		answer:   "FETCH",
	},
	types.RoleFullstack: {
		Role:     types.RoleFullstack,
		Question: "What does ACID stand for in databases?",
		Options: []string{
			"Atomicity Consistency Isolation Durability",
			"Access Control Identity Data",
			"Auto Config Input Data",
			"Async Callback Interface Definition",
		},
		answer: "Atomicity Consistency Isolation Durability",
	},
	types.RoleMobile: {
		Role:     types.RoleMobile,
		Question: "Which component is used for scrollable lists in React Native?",
		Options:  []string{"View", "ScrollView", "FlatList", "Div"},
		answer:   "FlatList",
	},
}

// QuestionFor returns the quiz item for a role. The returned value owns its Options slice.
func QuestionFor(role types.Role) (Question, bool) {
	q, ok := questionBank[role]
	if !ok {
		return Question{}, false
	}
	q.Options = slices.Clone(q.Options)
	return q, true
}

// Questions returns the quiz item of every role in display order.
func Questions() []Question {
	out := make([]Question, 0, len(types.Roles))
	for _, role := range types.Roles {
		if q, ok := QuestionFor(role); ok {
			out = append(out, q)
		}
	}
	return out
}

// AnswerFor returns the correct answer for a role.
func AnswerFor(role types.Role) (string, bool) {
	q, ok := questionBank[role]
	return q.answer, ok
}

// IsCorrect compares an answer with the role's key. Matching is exact and case-sensitive.
func IsCorrect(role types.Role, answer string) bool {
	want, ok := AnswerFor(role)
	return ok && answer == want
}
