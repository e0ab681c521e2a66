package teststub

import (
	"fmt"

	"github.com/yaklabco/lintfilter/pkg/lint"
)

// qunitTemplate is a single-assertion QUnit test: one module per file, one
// test asserting the file passed lint.
const qunitTemplate = `QUnit.module('Lint | %s');
QUnit.test('should pass lint', function(assert) {
  assert.expect(1);
  assert.ok(%t, '%s');
});
`

func renderQUnit(relPath string, report *lint.Report) string {
	return fmt.Sprintf(qunitTemplate,
		escape(relPath),
		passed(report),
		escape(assertionText(relPath, report)),
	)
}
