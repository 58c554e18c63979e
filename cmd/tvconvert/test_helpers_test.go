package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tvconvert/internal/testsupport"
)

const probePayload = `{
  "streams": [
    {"index": 0, "codec_type": "video", "codec_name": "h264"},
    {"index": 1, "codec_type": "audio", "codec_name": "ac3", "channels": 6, "tags": {"language": "eng"}},
    {"index": 2, "codec_type": "audio", "codec_name": "aac", "channels": 2, "tags": {"language": "jpn"}},
    {"index": 3, "codec_type": "subtitle", "codec_name": "subrip", "tags": {"language": "eng"}}
  ],
  "format": {"duration": "60.000000"}
}`

type cliTestEnv struct {
	baseDir    string
	stubDir    string
	configPath string
	outputDir  string
	logDir     string
	inputs     []string
}

// setupCLITestEnv writes ffprobe and ffmpeg stubs, one input file per name,
// and a config pointing at all of them.
func setupCLITestEnv(t *testing.T, stub testsupport.FFmpegStub, names ...string) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("TVCONVERT_FFMPEG", "")
	t.Setenv("TVCONVERT_FFPROBE", "")

	env := &cliTestEnv{
		baseDir:    base,
		stubDir:    filepath.Join(base, "bin"),
		configPath: filepath.Join(base, "tvconvert.toml"),
		outputDir:  filepath.Join(base, "out"),
		logDir:     filepath.Join(base, "logs"),
	}
	ffprobeBin := testsupport.WriteFFprobeStub(t, env.stubDir, probePayload)
	ffmpegBin := testsupport.WriteFFmpegStub(t, env.stubDir, stub)

	for _, name := range names {
		path := filepath.Join(base, "in", name)
		testsupport.WriteFile(t, path, 8)
		env.inputs = append(env.inputs, path)
	}
	writeTestConfig(t, env.configPath, env, ffmpegBin, ffprobeBin)
	return env
}

func runCLI(t *testing.T, args []string, configPath, stdin string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, env *cliTestEnv, ffmpegBin, ffprobeBin string) {
	t.Helper()
	quoted := make([]string, 0, len(env.inputs))
	for _, input := range env.inputs {
		quoted = append(quoted, fmt.Sprintf("%q", input))
	}
	content := fmt.Sprintf(
		"inputs = [%s]\n\n[paths]\nffmpeg_binary = %q\nffprobe_binary = %q\noutput_dir = %q\nlog_dir = %q\n",
		strings.Join(quoted, ", "),
		ffmpegBin,
		ffprobeBin,
		env.outputDir,
		env.logDir,
	)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
