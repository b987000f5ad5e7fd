// Package sql screens caller-supplied values before they reach rendered
// SQL fragments. Requested table names and context strings come from
// outside the engine (ultimately from LLM output or end users) and end
// up interpolated into join predicates, so they get an injection check
// first.
package sql

import (
	"fmt"

	libinjection "github.com/corazawaf/libinjection-go"

	"github.com/querygraph-inc/querygraph-engine/pkg/apperrors"
)

// InjectionCheckResult describes a value that failed the injection check.
type InjectionCheckResult struct {
	IsSQLi      bool   // True if a SQL injection pattern was detected
	Fingerprint string // libinjection fingerprint of the detected pattern
	ParamName   string // Name of the parameter that failed the check
	ParamValue  string // The value that was checked
}

// CheckValue runs libinjection over a single caller-supplied value.
// Returns nil when the value is clean.
func CheckValue(paramName, value string) *InjectionCheckResult {
	isSQLi, fingerprint := libinjection.IsSQLi(value)
	if !isSQLi {
		return nil
	}
	return &InjectionCheckResult{
		IsSQLi:      true,
		Fingerprint: string(fingerprint),
		ParamName:   paramName,
		ParamValue:  value,
	}
}

// ScreenResolutionInput validates requested table names and the context
// string. The first dirty value aborts with ErrUnsafeIdentifier; clean
// input returns nil.
func ScreenResolutionInput(tables []string, context string) error {
	for _, table := range tables {
		if result := CheckValue("table", table); result != nil {
			return fmt.Errorf("%w: table name %q (fingerprint %s)",
				apperrors.ErrUnsafeIdentifier, result.ParamValue, result.Fingerprint)
		}
	}
	if context != "" {
		if result := CheckValue("context", context); result != nil {
			return fmt.Errorf("%w: context %q (fingerprint %s)",
				apperrors.ErrUnsafeIdentifier, result.ParamValue, result.Fingerprint)
		}
	}
	return nil
}
