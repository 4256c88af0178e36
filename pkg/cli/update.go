package cli

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/blang/semver"
	"github.com/rhysd/go-github-selfupdate/selfupdate"
)

// Repo is the GitHub repository releases are fetched from.
const Repo = "Fepozopo/glitchlab"

// Version is the running version, set at build time with
// -ldflags "-X github.com/Fepozopo/glitchlab/pkg/cli.Version=1.2.3".
var Version = "0.1.0"

// UpdateCmd replaces the running binary with the latest GitHub release.
type UpdateCmd struct {
	Yes   bool `short:"y" help:"Install without asking for confirmation."`
	Check bool `help:"Only report whether a newer release exists."`
}

func (c *UpdateCmd) Run() error {
	return CheckForUpdates(os.Stdin, os.Stdout, c.Yes, c.Check)
}

// needsUpdate reports whether latest is newer than current. An unparsable
// current version (a dev build) always counts as outdated.
func needsUpdate(current string, latest semver.Version) bool {
	cur, err := semver.ParseTolerant(current)
	if err != nil {
		slog.Warn("could not parse current version", "version", current, "error", err)
		return true
	}
	return latest.GT(cur)
}

// CheckForUpdates looks up the latest release and, after confirmation on in,
// installs it over the current executable.
func CheckForUpdates(in io.Reader, out io.Writer, assumeYes, checkOnly bool) error {
	fmt.Fprintf(out, "Current version: %s\n", Version)

	latest, found, err := selfupdate.DetectLatest(Repo)
	if err != nil {
		return fmt.Errorf("update check failed: %w", err)
	}
	if !found || latest == nil {
		fmt.Fprintf(out, "No releases found for %s.\n", Repo)
		return nil
	}
	fmt.Fprintf(out, "Latest version: %s\n", latest.Version)

	if !needsUpdate(Version, latest.Version) {
		fmt.Fprintf(out, "You are already running the latest version.\n")
		return nil
	}
	if checkOnly {
		fmt.Fprintf(out, "A new version (%s) is available: %s\n", latest.Version, latest.URL)
		return nil
	}
	if latest.AssetURL == "" {
		fmt.Fprintf(out, "A new version (%s) is available but there is no downloadable asset for this platform.\n", latest.Version)
		return nil
	}

	if !assumeYes {
		fmt.Fprintf(out, "A new version (%s) is available. Update now? (y/N): ", latest.Version)
		answer, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("failed reading input: %w", err)
		}
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			fmt.Fprintln(out, "Update cancelled.")
			return nil
		}
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("could not locate executable: %w", err)
	}
	slog.Info("updating", "from", Version, "to", latest.Version.String(), "asset", latest.AssetURL)
	if err := selfupdate.UpdateTo(latest.AssetURL, exe); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	fmt.Fprintf(out, "Updated to version %s.\n", latest.Version)
	return nil
}
