package posts

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Terminal operation failures. The manager never recovers from these; the
// HTTP adapter maps each one to a fixed status and error body.
var (
	ErrNotFound         = errors.New("post not found")
	ErrCommentNotFound  = errors.New("comment does not exist")
	ErrUnauthorized     = errors.New("user not authorized")
	ErrAlreadyLiked     = errors.New("user already liked this post")
	ErrNotLiked         = errors.New("post not yet liked")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// ValidationError carries the field to message map produced by the
// validation gate, returned to the client verbatim.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for field := range e.Fields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}
