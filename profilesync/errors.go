package profilesync

import (
	"fmt"
	"sort"
	"strings"
)

// NonFieldKey is the reserved backend key for errors not attached to any
// input; its messages surface as general notices, never as field errors.
const NonFieldKey = "non_field_errors"

// ValidationError is the structured failure shape the profile-update
// collaborator rejects with on an HTTP 400-equivalent: backend field keys
// mapped to one or more messages.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "profile update rejected"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprintf("profile update rejected: invalid fields %s", strings.Join(keys, ", "))
}

// Reconcile maps a server validation failure back onto frontend field
// names. Unmapped backend keys keep their name verbatim so no error is
// silently dropped; multi-message arrays are joined into one display
// string; non-field messages come back separately for a general notice.
func Reconcile(role Role, verr *ValidationError) (ErrorMap, []string, error) {
	schema, err := schemaFor(role)
	if err != nil {
		return nil, nil, err
	}

	errs := ErrorMap{}
	var notices []string
	for key, messages := range verr.Fields {
		msg := strings.Join(messages, "; ")
		if msg == "" {
			continue
		}
		if key == NonFieldKey {
			notices = append(notices, msg)
			continue
		}
		errs[schema.ToFrontend(key)] = msg
	}
	return errs, notices, nil
}
