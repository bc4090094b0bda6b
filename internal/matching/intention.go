package matching

// Known relationship intentions.
const (
	IntentionMeet = "meet"
	IntentionDate = "date"
	IntentionSex  = "sex"
)

// Policy decides whether two stated intentions can match. The default rule is
// deliberately strict: intentions match only when equal. Product owns this
// rule; swap the implementation behind profile.IntentionMatcher to change it.
type Policy struct{}

func NewPolicy() Policy { return Policy{} }

func (Policy) Compatible(a, b string) bool {
	return a != "" && a == b
}
