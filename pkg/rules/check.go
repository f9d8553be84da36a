package rules

import (
	"github.com/pkg/errors"
	"github.com/rogpeppe/go-internal/lockedfile"
)

// Check validates a raw rules document against the schema, then lints its
// rules. When discovered is not nil every rule must also name an installed
// skill. A document that cannot be parsed yields a single error finding.
func Check(data []byte, discovered map[string]bool) (Findings, error) {
	validator, err := NewValidator()
	if err != nil {
		return nil, err
	}

	var findings Findings
	if err := validator.Validate(data); err != nil {
		findings = append(findings, Finding{Severity: SeverityError, Message: err.Error()})
	}

	rules, err := Parse(data)
	if err != nil {
		if len(findings) == 0 {
			findings = append(findings, Finding{Severity: SeverityError, Message: err.Error()})
		}
		return findings, nil
	}

	findings = append(findings, Lint(rules)...)
	if discovered != nil {
		findings = append(findings, CheckSkills(rules, discovered)...)
	}
	return findings, nil
}

// CheckFile runs Check on the document at path
func CheckFile(path string, discovered map[string]bool) (Findings, error) {
	data, err := lockedfile.Read(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read rules file %s", path)
	}
	return Check(data, discovered)
}
