//go:build stave

package main

import (
	"cmp"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const (
	binaryName = "srcexcerpt"
	binaryPath = "bin/" + binaryName
	mainPkg    = "./cmd/" + binaryName
)

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":   Build,
	"t":   Test.Default,
	"l":   Lint.Default,
	"c":   Check,
	"i":   Install,
	"fmt": Lint.Fmt,
}

// Namespace types group related targets.
type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
)

// Build compiles the srcexcerpt binary with version info.
// Skips recompilation when source files have not changed.
func Build() error {
	rebuild, err := target.Dir(binaryPath, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binaryPath + " is up to date")
		return nil
	}
	fmt.Println("Building " + binaryName + "...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binaryPath, mainPkg)
}

// Check runs format, lint, and test sequentially.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean removes build artifacts.
func Clean() error {
	fmt.Println("Cleaning build artifacts...")
	for _, path := range []string{"bin", "coverage.out", "coverage.html"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Install installs srcexcerpt to $GOBIN or $GOPATH/bin.
func Install() error {
	fmt.Println("Installing " + binaryName + "...")
	return sh.RunV("go", "install", "-ldflags", ldflags(), mainPkg)
}

// Smoke builds the binary and runs it over its own entry point.
func Smoke() error {
	st.Deps(Build)
	fmt.Println("Running smoke test...")
	if err := sh.RunV(binaryPath, "version"); err != nil {
		return err
	}
	if err := sh.RunV(binaryPath, "lines", "--ext", ".go", "cmd"); err != nil {
		return err
	}
	return sh.RunV(binaryPath, "excerpt", "--caret", "cmd/"+binaryName+"/main.go", "point:1:4", "line:2")
}

// Coverage generates a test coverage report.
func Coverage() error {
	st.Deps(Test.Default)
	fmt.Println("Generating coverage report...")
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

// Default runs all tests using gotestsum with race detection and coverage.
func (Test) Default() error {
	fmt.Println("Running tests...")
	return gotestsum("pkgname-and-test-fails")
}

// Verbose runs all tests with standard-verbose output.
func (Test) Verbose() error {
	fmt.Println("Running tests (verbose)...")
	return gotestsum("standard-verbose")
}

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	fmt.Println("Running linters...")
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI runs golangci-lint without auto-fix.
func (Lint) CI() error {
	fmt.Println("Running linters (CI mode)...")
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	fmt.Println("Formatting code...")
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck verifies code formatting without modifying files.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt check failed: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s\nRun 'stave lint:fmt' to fix", out)
	}
	fmt.Println("✓ Code formatting OK")
	return nil
}

// Vet runs go vet.
func (Lint) Vet() error {
	fmt.Println("Running go vet...")
	return sh.RunV("go", "vet", "./...")
}

// Gate runs all CI checks.
func (CI) Gate() error {
	fmt.Println("Running CI gate checks...")
	st.SerialDeps(
		Lint.FmtCheck,
		Lint.Vet,
		Lint.CI,
		Build,
		Test.Default,
		CI.ModTidy,
		CI.Cross,
	)
	fmt.Println("\n✓ All CI gate checks passed!")
	return nil
}

// ModTidy checks that go.mod and go.sum are tidy.
func (CI) ModTidy() error {
	fmt.Println("Checking go.mod/go.sum are tidy...")
	before, err := readModFiles()
	if err != nil {
		return err
	}
	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}
	after, err := readModFiles()
	if err != nil {
		return err
	}
	if before != after {
		return errors.New("go.mod or go.sum changed after 'go mod tidy' - please commit the changes")
	}
	fmt.Println("✓ go.mod/go.sum are tidy")
	return nil
}

// Cross builds for the release platforms.
func (CI) Cross() error {
	fmt.Println("Cross-compiling for release platforms...")
	platforms := []string{
		"linux/amd64", "linux/arm64",
		"darwin/amd64", "darwin/arm64",
		"windows/amd64", "windows/arm64",
		"freebsd/amd64",
	}
	for _, platform := range platforms {
		goos, goarch, _ := strings.Cut(platform, "/")
		fmt.Printf("  Building %s...\n", platform)
		env := map[string]string{
			"GOOS":        goos,
			"GOARCH":      goarch,
			"CGO_ENABLED": "0",
		}
		if err := sh.RunWith(env, "go", "build", "-o", os.DevNull, mainPkg); err != nil {
			return fmt.Errorf("build failed for %s: %w", platform, err)
		}
	}
	fmt.Println("✓ All platforms build successfully")
	return nil
}

// Default runs Go benchmarks.
func (Bench) Default() error {
	fmt.Println("Running benchmarks...")
	return sh.RunV("go",
		"tool", "gotestsum",
		"-f", "pkgname-and-test-fails",
		"--",
		"-run=^$", "-bench=.", "-benchmem",
		"./...",
	)
}

// gotestsum runs the test suite with the given output format.
func gotestsum(format string) error {
	nCores := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	return sh.RunV("go",
		"tool", "gotestsum",
		"-f", format,
		"--",
		"-v", "-race",
		"-p", nCores,
		"-parallel", nCores,
		"./...",
		"-coverprofile=coverage.out",
		"-covermode=atomic",
	)
}

// readModFiles returns go.mod and go.sum concatenated.
func readModFiles() (string, error) {
	var builder strings.Builder
	for _, name := range []string{"go.mod", "go.sum"} {
		data, err := os.ReadFile(filepath.Clean(name))
		if err != nil {
			return "", fmt.Errorf("read %s: %w", name, err)
		}
		builder.Write(data)
	}
	return builder.String(), nil
}

// gitOutput runs a git command and returns trimmed stdout, or empty on error.
func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags returns the linker flags for version injection.
func ldflags() string {
	version := cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf(
		"-X main.version=%s -X main.commit=%s -X main.date=%s",
		version, commit, date,
	)
}
