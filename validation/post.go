package validation

import (
	"strings"
)

const textRequiredMessage = "Text field is required."

// ValidatePostInput checks the body of a post or comment creation request.
// It never fails; callers must not attempt the mutation when ok is false and
// should return the error map to the client verbatim.
func ValidatePostInput(text string) (map[string]string, bool) {
	errs := map[string]string{}

	if strings.TrimSpace(text) == "" {
		errs["text"] = textRequiredMessage
	}

	return errs, len(errs) == 0
}
