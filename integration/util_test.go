package integration_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"
)

func commandContext(ctx context.Context, env []string, stdin string, arg ...string) (cmd *exec.Cmd, stdout, stderr *bytes.Buffer) {
	cmd = exec.CommandContext(ctx, BIN, arg...)
	cmd.Env = env
	cmd.Stdin = strings.NewReader(stdin)

	var outBuf, errBuf bytes.Buffer

	cmd.Stdout = io.MultiWriter(&outBuf, os.Stdout)
	cmd.Stderr = io.MultiWriter(&errBuf, os.Stderr)

	return cmd, &outBuf, &errBuf
}

func answers(input ...string) string {
	return strings.Join(input, "\n") + "\n"
}

func baseEnv() []string {
	return []string{"HOME=" + os.Getenv("HOME")}
}
