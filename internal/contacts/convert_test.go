package contacts

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobhunt-contacts/internal/config"
	"jobhunt-contacts/internal/csvout"
	"jobhunt-contacts/internal/logging"
	"jobhunt-contacts/internal/markdown"
)

const wantHeader = "email,companyName,hrName,position,industry,companyType,location,companyWebsite\n"

func newTestConverter(t *testing.T, report *bytes.Buffer) *Converter {
	t.Helper()
	if report == nil {
		return New(config.Defaults(), logging.NewTest(t), io.Discard)
	}
	return New(config.Defaults(), logging.NewTest(t), report)
}

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestConvert_Example(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "emails.md", "Contact: hr@abc-tech.com or careers@xyz.io, also jobs@foo.com")
	out := filepath.Join(dir, "contacts.csv")

	var report bytes.Buffer
	res, err := newTestConverter(t, &report).Convert(context.Background(), in, out)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Unique())

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, wantHeader+
		`hr@abc-tech.com,Abc Tech,HR Manager,Software Developer,Information Technology,Technology Company,"Jaipur, Rajasthan",https://abc-tech.com`+"\n"+
		`careers@xyz.io,Xyz,Recruitment Team,Software Developer,Information Technology,Technology Company,"Jaipur, Rajasthan",https://xyz.io`+"\n"+
		`jobs@foo.com,Foo,Hiring Manager,Software Developer,Information Technology,Technology Company,"Jaipur, Rajasthan",https://foo.com`+"\n",
		string(b))

	assert.Equal(t, "✓ Converted 3 unique emails to CSV\n✓ Output file: "+out+"\n", report.String())
}

func TestConvert_NoEmailsWritesHeaderOnly(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "empty.md", "# Nothing here\n\nJust text, no addresses.\n")
	out := filepath.Join(dir, "contacts.csv")

	var report bytes.Buffer
	res, err := newTestConverter(t, &report).Convert(context.Background(), in, out)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Unique())
	assert.Empty(t, res.Tiers)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, wantHeader, string(b))
	assert.Contains(t, report.String(), "✓ Converted 0 unique emails to CSV")
}

func TestConvert_RepeatedEmailOneRow(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "dup.md", "a@b.com\n- a@b.com\n**a@b.com**\nA@b.com\n")
	out := filepath.Join(dir, "contacts.csv")

	res, err := newTestConverter(t, nil).Convert(context.Background(), in, out)
	require.NoError(t, err)

	rows, err := csvout.ReadFile(out)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "a@b.com", rows[0].Email)
	assert.Equal(t, "A@b.com", rows[1].Email)
	assert.Equal(t, res.Records, rows)
}

func TestConvert_RowsFollowFirstOccurrence(t *testing.T) {
	text := "z@z.com y@y.com z@z.com x@x.com y@y.com w@w.com"
	dir := t.TempDir()
	in := writeInput(t, dir, "order.md", text)
	out := filepath.Join(dir, "contacts.csv")

	_, err := newTestConverter(t, nil).Convert(context.Background(), in, out)
	require.NoError(t, err)

	rows, err := csvout.ReadFile(out)
	require.NoError(t, err)

	var got []string
	for _, r := range rows {
		got = append(got, r.Email)
	}
	assert.Equal(t, Unique(ExtractEmails(text)), got)
	assert.Equal(t, []string{"z@z.com", "y@y.com", "x@x.com", "w@w.com"}, got)
}

func TestConvert_Idempotent(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "emails.md", "hr@a.com, \"quoted\" careers@b-c.org\nhr@a.com\n")
	out := filepath.Join(dir, "contacts.csv")
	c := newTestConverter(t, nil)

	_, err := c.Convert(context.Background(), in, out)
	require.NoError(t, err)
	first, err := os.ReadFile(out)
	require.NoError(t, err)

	require.NoError(t, os.Remove(out))

	_, err = c.Convert(context.Background(), in, out)
	require.NoError(t, err)
	second, err := os.ReadFile(out)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestConvert_MissingInput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "missing.md")
	out := filepath.Join(dir, "contacts.csv")

	_, err := newTestConverter(t, nil).Convert(context.Background(), in, out)

	var inErr *InputError
	require.True(t, errors.As(err, &inErr), "got %T: %v", err, err)
	assert.Equal(t, in, inErr.Path)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestConvert_UndecodableInput(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "latin1.md", "caf\xe9 hr@a.com")

	_, err := newTestConverter(t, nil).Convert(context.Background(), in, filepath.Join(dir, "out.csv"))

	var inErr *InputError
	require.True(t, errors.As(err, &inErr))
	assert.True(t, strings.Contains(err.Error(), "UTF-8"))
}

func TestConvert_MissingOutputDirectory(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "emails.md", "hr@a.com")
	out := filepath.Join(dir, "no-such-dir", "contacts.csv")

	var report bytes.Buffer
	_, err := newTestConverter(t, &report).Convert(context.Background(), in, out)

	var outErr *OutputError
	require.True(t, errors.As(err, &outErr), "got %T: %v", err, err)
	assert.Equal(t, out, outErr.Path)
	assert.Empty(t, report.String())
}

func TestConvert_CanceledContext(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "emails.md", "hr@a.com")
	out := filepath.Join(dir, "contacts.csv")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestConverter(t, nil).Convert(ctx, in, out)
	assert.ErrorIs(t, err, context.Canceled)
	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestConvert_TierReport(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "tiers.md", `# Jaipur IT HR Emails

## Tier-1: Large National IT Companies
- Infosys: hr@infosys.com
- TCS: careers@tcs.com

## Tier-4: Web Design & Development Companies
- hr@webby.in
- hr@infosys.com
`)
	out := filepath.Join(dir, "contacts.csv")

	res, err := newTestConverter(t, nil).Convert(context.Background(), in, out)
	require.NoError(t, err)

	assert.Equal(t, []markdown.TierCount{
		{Label: "Large Enterprise", Count: 2},
		{Label: "Web/App Development", Count: 1},
	}, res.Tiers)

	// tiers never leak into the CSV
	for _, r := range res.Records {
		assert.Equal(t, "Technology Company", r.CompanyType)
	}
}

func TestConvert_HTMLInput(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, "list.html", `<html><body>
<table><tr><td>hr@abc.com</td><td>careers@xyz.io</td></tr></table>
<a href="mailto:jobs@foo.com">Apply</a>
</body></html>`)
	out := filepath.Join(dir, "contacts.csv")

	res, err := newTestConverter(t, nil).Convert(context.Background(), in, out)
	require.NoError(t, err)

	var got []string
	for _, r := range res.Records {
		got = append(got, r.Email)
	}
	assert.Equal(t, []string{"hr@abc.com", "careers@xyz.io", "jobs@foo.com"}, got)
	assert.Empty(t, res.Tiers)
}

func TestConvertText_CustomDefaults(t *testing.T) {
	cfg := config.Defaults()
	cfg.Defaults.Location = "Pune, Maharashtra"
	cfg.HRNames.Rules = []config.Rule{{Label: "Talent", Any: []string{"talent"}}}
	cfg.HRNames.Fallback = "Team"

	c := New(cfg, nil, nil)
	got := c.ConvertText("talent@a.com hr@b.com")

	require.Len(t, got, 2)
	assert.Equal(t, "Talent", got[0].HRName)
	assert.Equal(t, "Team", got[1].HRName)
	assert.Equal(t, "Pune, Maharashtra", got[1].Location)
}
