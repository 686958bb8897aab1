package mode

// Mode is the compound clause that combines keyword search operators.
type Mode string

// Search mode constants.
const (
	Must    Mode = "must"
	Should  Mode = "should"
	MustNot Mode = "mustNot"
	// Filter matches without contributing to the relevance score.
	Filter Mode = "filter"
)

// IsValid checks if the mode is one of the supported values.
func (m Mode) IsValid() bool {
	return m == Must || m == Should || m == MustNot || m == Filter
}
