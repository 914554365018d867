package console

import (
	"strings"
	"testing"
)

func TestShellFromPasswdReader(t *testing.T) {
	data := strings.Join([]string{
		"root:x:0:0:root:/root:/bin/bash",
		"# comment",
		"user:x:1000:1000:User:/home/user:/bin/zsh",
		"",
	}, "\n")
	shell, err := shellFromPasswdReader(strings.NewReader(data), "1000")
	if err != nil {
		t.Fatalf("shellFromPasswdReader: %v", err)
	}
	if shell != "/bin/zsh" {
		t.Fatalf("shell = %q, want /bin/zsh", shell)
	}
}

func TestShellFromPasswdReaderUnknownUID(t *testing.T) {
	if _, err := shellFromPasswdReader(strings.NewReader("root:x:0:0:root:/root:/bin/bash\n"), "1000"); err == nil {
		t.Fatalf("expected error for unknown uid")
	}
}

func TestResolveShellOverrideWins(t *testing.T) {
	if got := ResolveShell("/bin/dash"); got != "/bin/dash" {
		t.Fatalf("ResolveShell = %q", got)
	}
}
