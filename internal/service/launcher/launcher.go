package launcher

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"

	"github.com/oshokin/spigot-launcher/internal/config"
	"github.com/oshokin/spigot-launcher/internal/logger"
	"github.com/oshokin/spigot-launcher/internal/service/common"
)

// ErrLaunchFailed is returned when the java process cannot be started.
var ErrLaunchFailed = errors.New("failed to start the server process")

const (
	// defaultJavaExecutable is resolved through PATH.
	defaultJavaExecutable = "java"

	// signalledExitCode is reported when the server was terminated by a signal.
	signalledExitCode = 1

	// pausePrompt is printed before waiting for Enter.
	pausePrompt = "\nPress Enter to close the program."
)

// Options describe a single server launch.
type Options struct {
	// Artifact is the jar name relative to Dir.
	Artifact string
	// JavaPath is config.DefaultJavaPath or a directory holding the java launcher.
	JavaPath string
	// Xms is the initial heap in megabytes.
	Xms int
	// Xmx is the maximum heap in megabytes.
	Xmx int
	// Dir is the working directory of the server.
	Dir string
	// Stdin, Stdout and Stderr default to the launcher's own streams.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// JavaExecutable resolves the java launcher for the configured path.
func JavaExecutable(javaPath string) string {
	if javaPath == "" || javaPath == config.DefaultJavaPath {
		return defaultJavaExecutable
	}

	return filepath.Join(javaPath, common.ExecutableName(defaultJavaExecutable))
}

// Arguments builds the JVM command line. Heap sizes are in megabytes and
// precede -jar so the JVM consumes them instead of the server.
func Arguments(artifact string, xms, xmx int) []string {
	return []string{
		"-Xms" + strconv.Itoa(xms) + "M",
		"-Xmx" + strconv.Itoa(xmx) + "M",
		"-jar", artifact,
	}
}

// Command prepares the server process without starting it.
func Command(opts *Options) *exec.Cmd {
	//nolint:gosec,noctx // The server owns its shutdown; the launcher only waits for it.
	cmd := exec.Command(JavaExecutable(opts.JavaPath), Arguments(opts.Artifact, opts.Xms, opts.Xmx)...)
	cmd.Dir = opts.Dir
	cmd.Stdin = opts.Stdin
	cmd.Stdout = opts.Stdout
	cmd.Stderr = opts.Stderr

	if cmd.Stdin == nil {
		cmd.Stdin = os.Stdin
	}

	if cmd.Stdout == nil {
		cmd.Stdout = os.Stdout
	}

	if cmd.Stderr == nil {
		cmd.Stderr = os.Stderr
	}

	return cmd
}

// Launch starts the server, blocks until it exits and returns its exit code.
func Launch(ctx context.Context, opts *Options) (int, error) {
	cmd := Command(opts)

	logger.InfoKV(ctx, "Starting Minecraft server", "command", cmd.String(), "dir", opts.Dir)

	err := cmd.Run()
	if err == nil {
		logger.Info(ctx, "Server process exited")
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()

		logger.WarnKV(ctx, "Server process exited with an error", "exit_code", code, "state", exitErr.String())

		// Killed by a signal.
		if code < 0 {
			code = signalledExitCode
		}

		return code, nil
	}

	return 0, fmt.Errorf("%w: %w", ErrLaunchFailed, err)
}

// Pause prints a prompt and waits for one line of input.
func Pause(ctx context.Context, in io.Reader, out io.Writer) error {
	if _, err := fmt.Fprintln(out, pausePrompt); err != nil {
		return err
	}

	logger.Debug(ctx, "Waiting for Enter before closing")

	if _, err := bufio.NewReader(in).ReadString('\n'); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read confirmation: %w", err)
	}

	return nil
}
