// Package limits holds the task content limits. Lengths are user-visible
// characters (grapheme clusters).
package limits

const (
	// MaxTitleLength is the longest accepted task title.
	MaxTitleLength = 100
	// MaxCommentLength is the longest accepted task comment.
	MaxCommentLength = 500
)
