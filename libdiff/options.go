package libdiff

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidOptions reports an unusable option set, e.g. an ignore pattern
// that does not compile. It aborts only the comparison it was passed to.
var ErrInvalidOptions = errors.New("invalid diff options")

// DefaultCommentPatterns strips line and block comments of the common
// C-family and script languages.
var DefaultCommentPatterns = []string{
	`//.*$`,
	`#.*$`,
	`/\*.*?\*/`,
}

// DefaultContext is the hunk context padding used by DefaultOptions.
const DefaultContext = 3

// Options control how lines are normalized before comparison and how the
// resulting script is grouped for display. The zero value compares lines
// byte-exactly with no context padding.
type Options struct {
	// IgnoreCase folds lines to lower case before comparison.
	IgnoreCase bool
	// IgnoreWhitespace trims each line and collapses interior whitespace
	// runs to a single space before comparison.
	IgnoreWhitespace bool
	// IgnoreBlankLines keeps blank-only insertions and deletions out of
	// hunks and stats; the raw edit script still accounts for them.
	IgnoreBlankLines bool
	// IgnoreComments strips text matching CommentPatterns before
	// comparison; the stripped lines are retained for display.
	IgnoreComments bool
	// CommentPatterns are the comment regexes for IgnoreComments.
	// Empty selects DefaultCommentPatterns.
	CommentPatterns []string
	// IgnorePatterns mask matching substrings on every line before
	// comparison.
	IgnorePatterns []string
	// Context is the number of equal lines padding each hunk.
	Context int
	// LinearSpaceLimit overrides the sequence-length product above which
	// the linear-space search is used. Zero keeps the default.
	LinearSpaceLimit int
}

// DefaultOptions returns the options used when Diff is passed nil.
func DefaultOptions() *Options {
	return &Options{Context: DefaultContext}
}

// normalizer holds the compiled form of an option set.
type normalizer struct {
	opts     Options
	comments []*regexp.Regexp
	masks    []*regexp.Regexp
}

func (o *Options) compile() (*normalizer, error) {
	nz := &normalizer{opts: *o}
	if o.IgnoreComments {
		pats := o.CommentPatterns
		if len(pats) == 0 {
			pats = DefaultCommentPatterns
		}
		for _, p := range pats {
			re, err := regexp.Compile(p)
			if err != nil {
				return nil, fmt.Errorf("%w: comment pattern %q: %v", ErrInvalidOptions, p, err)
			}
			nz.comments = append(nz.comments, re)
		}
	}
	for _, p := range o.IgnorePatterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("%w: ignore pattern %q: %v", ErrInvalidOptions, p, err)
		}
		nz.masks = append(nz.masks, re)
	}
	return nz, nil
}

// normalize maps a line's text to its comparison token.
func (nz *normalizer) normalize(text string) string {
	for _, re := range nz.masks {
		text = re.ReplaceAllString(text, "")
	}
	for _, re := range nz.comments {
		text = re.ReplaceAllString(text, "")
	}
	if nz.opts.IgnoreWhitespace {
		text = strings.Join(strings.Fields(text), " ")
	}
	if nz.opts.IgnoreCase {
		text = strings.ToLower(text)
	}
	return text
}

func blank(text string) bool {
	return strings.TrimSpace(text) == ""
}
