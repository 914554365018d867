package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/user"
	"strings"

	"pkt.systems/phosphor/internal/config"
)

// ResolveShell picks the shell for a new session: explicit override,
// then the user's passwd entry, then $SHELL, then the built-in
// default.
func ResolveShell(override string) string {
	if override != "" {
		return override
	}
	if u, err := user.Current(); err == nil && u != nil && u.Uid != "" {
		if shell, err := shellFromPasswd(u.Uid); err == nil && shell != "" {
			return shell
		}
	}
	if shell := os.Getenv("SHELL"); shell != "" {
		return shell
	}
	return config.DefaultShell
}

func shellFromPasswd(uid string) (string, error) {
	f, err := os.Open("/etc/passwd")
	if err != nil {
		return "", err
	}
	defer func() {
		_ = f.Close()
	}()
	return shellFromPasswdReader(f, uid)
}

func shellFromPasswdReader(r io.Reader, uid string) (string, error) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		parts := strings.Split(line, ":")
		if len(parts) < 7 {
			continue
		}
		if parts[2] == uid {
			return parts[6], nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", fmt.Errorf("user not found in /etc/passwd")
}
