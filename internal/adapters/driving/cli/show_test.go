package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/guidedex/internal/core/domain"
)

func TestShowCmd_Use(t *testing.T) {
	assert.Equal(t, "show [id-or-path]", showCmd.Use)
}

func TestShowCmd_HasFlags(t *testing.T) {
	require.NotNil(t, showCmd.Flags().Lookup("json"), "json flag should exist")
	require.NotNil(t, showCmd.Flags().Lookup("raw"), "raw flag should exist")
}

func TestShowCmd_ByID(t *testing.T) {
	query := &mockQueryService{document: sampleDocument()}
	cleanup := setupTestServices(query, &mockSource{})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"show", "error-handling"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, []string{"Get:error-handling"}, query.calls)
	assert.Contains(t, buf.String(), "Document: error-handling")
	assert.Contains(t, buf.String(), "Title:     Error Handling")
	assert.Contains(t, buf.String(), "Tags:      errors, go")
	assert.Contains(t, buf.String(), "# Error Handling")
}

func TestShowCmd_FallsBackToPath(t *testing.T) {
	query := &mockQueryService{
		document: sampleDocument(),
		getErr:   domain.ErrNotFound,
	}
	cleanup := setupTestServices(query, &mockSource{})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"show", "guidelines/error-handling.md"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, []string{
		"Get:guidelines/error-handling.md",
		"GetByPath:guidelines/error-handling.md",
	}, query.calls)
	assert.Contains(t, buf.String(), "Error Handling")
}

func TestShowCmd_NotFound(t *testing.T) {
	query := &mockQueryService{
		getErr: domain.ErrNotFound,
		err:    domain.ErrNotFound,
	}
	cleanup := setupTestServices(query, &mockSource{})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"show", "gone"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestShowCmd_JSONOutput(t *testing.T) {
	query := &mockQueryService{document: sampleDocument()}
	cleanup := setupTestServices(query, &mockSource{})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"show", "--json", "error-handling"})
	defer func() {
		rootCmd.SetArgs(nil)
		showJSON = false
	}()

	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, buf.String(), `"ID": "error-handling"`)
	assert.Contains(t, buf.String(), `"ParseWarning": false`)
}

func TestShowCmd_Raw(t *testing.T) {
	rawBody := "---\ntype: coding-guideline\n---\n# Error Handling\n"
	source := &mockSource{raw: domain.RawDocument{
		Path:    "guidelines/error-handling.md",
		Content: []byte(rawBody),
	}}
	query := &mockQueryService{}
	cleanup := setupTestServices(query, source)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"show", "--raw", "guidelines/error-handling.md"})
	defer func() {
		rootCmd.SetArgs(nil)
		showRaw = false
	}()

	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, rawBody, buf.String())
	assert.Empty(t, query.calls, "raw mode must bypass the catalogue")
}

func TestShowCmd_RawFetchFailure(t *testing.T) {
	source := &mockSource{err: domain.ErrNotFound}
	query := &mockQueryService{}
	cleanup := setupTestServices(query, source)
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"show", "--raw", "gone.md"})
	defer func() {
		rootCmd.SetArgs(nil)
		showRaw = false
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Contains(t, err.Error(), "fetch failed")
}
