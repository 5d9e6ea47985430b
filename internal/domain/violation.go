package domain

// ViolationKind is the stable message id attached to every finding.
type ViolationKind string

const (
	KindAddDirective    ViolationKind = "addDirective"
	KindExpectedBlank   ViolationKind = "expectedBlank"
	KindUnexpectedBlank ViolationKind = "unexpectedBlank"
)

// Rule names as they appear in configuration and reports.
const (
	RuleRequireDirective = "require-directive"
	RuleBlankLine        = "blank-line-after-directive"
)

// Edit is a computed but unapplied replacement of Span with Text.
type Edit struct {
	Span Span   `json:"span"`
	Text string `json:"text"`
}

// Violation is a single finding produced by a rule for one file.
type Violation struct {
	Rule    string        `json:"rule"`
	Kind    ViolationKind `json:"kind"`
	Message string        `json:"message"`
	Offset  int           `json:"offset"`
	Line    int           `json:"line"`
	Column  int           `json:"column"`
	Edit    *Edit         `json:"edit,omitempty"`
}

// Fixable reports whether the violation carries an edit.
func (v Violation) Fixable() bool { return v.Edit != nil }

// NewViolation builds a violation located at offset within f.
func NewViolation(f *SourceFile, rule string, kind ViolationKind, offset int, message string, edit *Edit) *Violation {
	line, col := f.Position(offset)
	return &Violation{
		Rule:    rule,
		Kind:    kind,
		Message: message,
		Offset:  offset,
		Line:    line,
		Column:  col,
		Edit:    edit,
	}
}

// Rule is a single file-level check. Check returns nil when the file passes.
type Rule interface {
	Name() string
	Check(f *SourceFile) *Violation
}
