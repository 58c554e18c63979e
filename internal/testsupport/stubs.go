package testsupport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteFFprobeStub writes an ffprobe stand-in that prints payload for any
// input and returns its path.
func WriteFFprobeStub(t testing.TB, dir, payload string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	payloadPath := filepath.Join(dir, "ffprobe.json")
	if err := os.WriteFile(payloadPath, []byte(payload), 0o644); err != nil {
		t.Fatalf("write ffprobe payload: %v", err)
	}
	script := fmt.Sprintf("#!/bin/sh\ncat %s\n", shellQuote(payloadPath))
	return writeScript(t, filepath.Join(dir, "ffprobe"), script)
}

// FFmpegStub configures the ffmpeg stand-in written by WriteFFmpegStub.
type FFmpegStub struct {
	// FailWhen makes the stub fail for any invocation with an argument
	// containing this substring. Empty means every invocation fails when
	// ExitCode is non-zero.
	FailWhen string
	ExitCode int
	Stderr   string
	// Warning is written to stderr by invocations that succeed.
	Warning string
}

// CallsFile returns the file the ffmpeg stub in dir appends its arguments to,
// one invocation per line.
func CallsFile(dir string) string {
	return filepath.Join(dir, "ffmpeg.calls")
}

// WriteFFmpegStub writes an ffmpeg stand-in and returns its path. On success
// it prints three progress blocks (the first with N/A sentinels) and creates
// every output path it was given. An output path is an argument that neither
// starts with '-' nor follows a flag.
func WriteFFmpegStub(t testing.TB, dir string, stub FFmpegStub) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}

	var b strings.Builder
	b.WriteString("#!/bin/sh\n")
	fmt.Fprintf(&b, "printf '%%s\\n' \"$*\" >> %s\n", shellQuote(CallsFile(dir)))
	b.WriteString("fail=0\n")
	if stub.ExitCode != 0 {
		if stub.FailWhen == "" {
			b.WriteString("fail=1\n")
		} else {
			fmt.Fprintf(&b, "for arg in \"$@\"; do\n  case \"$arg\" in *%s*) fail=1 ;; esac\ndone\n", shellQuote(stub.FailWhen))
		}
	}
	b.WriteString("if [ \"$fail\" = 1 ]; then\n")
	fmt.Fprintf(&b, "  printf '%%s\\n' %s >&2\n", shellQuote(stub.Stderr))
	fmt.Fprintf(&b, "  exit %d\n", stub.ExitCode)
	b.WriteString("fi\n")
	if stub.Warning != "" {
		fmt.Fprintf(&b, "printf '%%s\\n' %s >&2\n", shellQuote(stub.Warning))
	}
	b.WriteString("printf 'out_time_us=N/A\\nspeed=N/A\\nprogress=continue\\n'\n")
	b.WriteString("printf 'out_time_us=30000000\\nspeed=2.00x\\nprogress=continue\\n'\n")
	b.WriteString("printf 'out_time_us=60000000\\nspeed=2.00x\\nprogress=end\\n'\n")
	b.WriteString(`prev=-
for arg in "$@"; do
  case "$arg" in
    -*) ;;
    *)
      case "$prev" in
        -*) ;;
        *) mkdir -p "$(dirname "$arg")" && : > "$arg" ;;
      esac
      ;;
  esac
  prev="$arg"
done
exit 0
`)
	return writeScript(t, filepath.Join(dir, "ffmpeg"), b.String())
}

func writeScript(t testing.TB, path, script string) string {
	t.Helper()
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub %s: %v", path, err)
	}
	return path
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}
