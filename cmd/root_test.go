package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/JakeFAU/sha256digest/internal/config"
	"github.com/JakeFAU/sha256digest/internal/digest"
)

const (
	abcDigest   = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	emptyDigest = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
)

func execute(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRunNoArgsPrintsUsage(t *testing.T) {
	code, stdout, stderr := execute(t)
	require.Equal(t, exitUsage, code)
	require.Empty(t, stdout)
	require.Equal(t, "Usage: "+programName()+" <input> [... input]\n", stderr)
}

func TestRunPrintsOneDigestPerArgument(t *testing.T) {
	code, stdout, _ := execute(t, "abc", "", "abc")
	require.Equal(t, exitOK, code)
	require.Equal(t, abcDigest+"\n"+emptyDigest+"\n"+abcDigest+"\n", stdout)
}

func TestRunHashesDashArgumentsAfterSeparator(t *testing.T) {
	code, stdout, _ := execute(t, "--", "-abc")
	require.Equal(t, exitOK, code)
	require.Len(t, strings.TrimSpace(stdout), 64)
}

func TestRunHashesReservedNamesAfterSeparator(t *testing.T) {
	code, stdout, stderr := execute(t, "--", "__complete", "__completeNoDesc")
	require.Equal(t, exitOK, code, stderr)

	require.Equal(t,
		"d20c5cdbda08b17496624a8b71d4031664e88b3b426ef13b795a68ab81636496\n"+
			"14b040512f09d2619f5ba8c727e963ed86633867c845cc7109147d65429c22ba\n",
		stdout)
}

func TestRunJSONOutput(t *testing.T) {
	code, stdout, _ := execute(t, "-o", "json", "abc", "")
	require.Equal(t, exitOK, code)

	var results []digest.Result
	require.NoError(t, json.Unmarshal([]byte(stdout), &results))
	require.Equal(t, []digest.Result{
		{Label: "abc", Digest: abcDigest, Size: 3},
		{Label: "", Digest: emptyDigest, Size: 0},
	}, results)
}

func TestRunTableOutput(t *testing.T) {
	code, stdout, _ := execute(t, "--output", "table", "abc")
	require.Equal(t, exitOK, code)
	require.Contains(t, stdout, abcDigest)
	require.Contains(t, stdout, "abc")
}

func TestRunFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "msg.txt")
	require.NoError(t, os.WriteFile(path, []byte("abc"), 0o600))

	code, stdout, _ := execute(t, "-f", "-c", "1", path)
	require.Equal(t, exitOK, code)
	require.Equal(t, abcDigest+"\n", stdout)
}

func TestRunMissingFileFails(t *testing.T) {
	code, stdout, stderr := execute(t, "--files", filepath.Join(t.TempDir(), "missing"))
	require.Equal(t, exitError, code)
	require.Empty(t, stdout)
	require.Contains(t, stderr, "read ")
}

func TestRunRejectsUnknownFormat(t *testing.T) {
	code, _, stderr := execute(t, "-o", "xml", "abc")
	require.Equal(t, exitError, code)
	require.Contains(t, stderr, "digest.output")
}

func TestRunConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("digest:\n  output: json\n"), 0o600))

	code, stdout, _ := execute(t, "--config", path, "abc")
	require.Equal(t, exitOK, code)
	require.Contains(t, stdout, `"digest": "`+abcDigest+`"`)
}

func TestRunAppFactoryError(t *testing.T) {
	orig := newApp
	t.Cleanup(func() { newApp = orig })
	newApp = func(config.Config) (App, error) {
		return nil, errors.New("boom")
	}

	code, _, stderr := execute(t, "abc")
	require.Equal(t, exitError, code)
	require.Contains(t, stderr, "boom")
}

func TestResolveAppMissing(t *testing.T) {
	_, err := resolveApp(context.Background())
	require.Error(t, err)
}
