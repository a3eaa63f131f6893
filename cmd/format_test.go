package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/etnz/arthik"
	"github.com/etnz/arthik/controller"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const view = `# Accounts

| Account | Balance |
|---|---:|
| Bank Account | $1,500.00 |
`

func TestRender(t *testing.T) {
	md, err := render(view, formatMarkdown, false)
	require.NoError(t, err)
	assert.Equal(t, view, md)

	html, err := render(view, formatHTML, false)
	require.NoError(t, err)
	assert.Contains(t, html, "<h1>Accounts</h1>")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, "<td>Bank Account</td>")

	term, err := render(view, formatTerm, true)
	require.NoError(t, err)
	assert.Contains(t, term, "Bank Account")

	_, err = render(view, "pdf", false)
	assert.ErrorContains(t, err, `unknown format "pdf"`)
}

func TestPrinterConfirm(t *testing.T) {
	for _, tc := range []struct {
		input string
		yes   bool
		want  bool
	}{
		{"y\n", false, true},
		{"YES\n", false, true},
		{"n\n", false, false},
		{"\n", false, false},
		{"", false, false},
		{"", true, true},
	} {
		var errOut bytes.Buffer
		p := newPrinter(strings.NewReader(tc.input), &bytes.Buffer{}, &errOut, tc.yes)
		assert.Equal(t, tc.want, p.Confirm("Delete?"), "input %q, yes %v", tc.input, tc.yes)
		if !tc.yes {
			assert.Equal(t, "Delete? [y/N] ", errOut.String())
		}
	}
}

func TestPrinterPrint(t *testing.T) {
	old := *format
	t.Cleanup(func() { *format = old })
	*format = formatMarkdown

	var out, errOut bytes.Buffer
	p := newPrinter(strings.NewReader("hunter2\n"), &out, &errOut, false)

	assert.Equal(t, 1, int(p.print(arthik.TabLedger, false)))
	assert.Contains(t, errOut.String(), "nothing to show for ledger")

	p.Show(arthik.TabAccounts, view)
	assert.Equal(t, 0, int(p.print(arthik.TabAccounts, false)))
	assert.Equal(t, view, out.String())

	errOut.Reset()
	p.Notify(controller.Notice{Level: controller.Success, Message: "Saved"})
	p.Notify(controller.Notice{Level: controller.Failure, Message: "Broken"})
	assert.Equal(t, "✅ Saved\nError: Broken\n", errOut.String())

	errOut.Reset()
	assert.Equal(t, "hunter2", p.ask("Password: "))
	assert.Equal(t, "Password: ", errOut.String())
}
