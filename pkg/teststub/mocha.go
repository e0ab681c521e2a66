package teststub

import (
	"fmt"

	"github.com/yaklabco/lintfilter/pkg/lint"
)

// mochaTemplate is the passing form of the Mocha suite/spec pair.
const mochaTemplate = `describe('Lint | %s', function() {
  it('should pass lint', function() {
    // lint passed
  });
});
`

// mochaFailTemplate throws a chai AssertionError carrying the message
// block. The stack is stripped so the stub stays deterministic text; a
// retained stack would embed machine-specific paths.
const mochaFailTemplate = `describe('Lint | %s', function() {
  it('should pass lint', function() {
    var error = new chai.AssertionError('%s');
    error.stack = undefined;
    throw error;
  });
});
`

func renderMocha(relPath string, report *lint.Report) string {
	if passed(report) {
		return fmt.Sprintf(mochaTemplate, escape(relPath))
	}
	return fmt.Sprintf(mochaFailTemplate,
		escape(relPath),
		escape(assertionText(relPath, report)),
	)
}
