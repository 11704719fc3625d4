//go:build mage

package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	binPath = binDir + "/marquee"
	pkgPath = "github.com/dkoosis/marquee"
)

// Default target - build the binary
var Default = Build

// Build builds the marquee binary
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binPath, "./cmd/marquee")
}

// Clean removes build artifacts
func Clean() error {
	return sh.Rm(binDir)
}

// QA runs formatting, vet, tests and the build
func QA() {
	mg.SerialDeps(Lint.Format, Lint.Vet, Test.Race, Build)
}

// Lint namespace for linting commands
type Lint mg.Namespace

// All runs all linters
func (Lint) All() {
	mg.SerialDeps(Lint.Format, Lint.Vet, Lint.Golangci)
}

// Format checks code formatting
func (Lint) Format() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return err
	}
	if out != "" {
		return fmt.Errorf("files need gofmt:\n%s", out)
	}
	return nil
}

// Vet runs go vet
func (Lint) Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Golangci runs golangci-lint
func (Lint) Golangci() error {
	err := sh.RunV("golangci-lint", "run", "--timeout=5m", "./...")
	if isCommandNotFound(err) {
		fmt.Println("golangci-lint not found (install: go install github.com/golangci/golangci-lint/cmd/golangci-lint@latest)")
		return nil
	}
	return err
}

// Test namespace for testing commands
type Test mg.Namespace

// All runs all tests
func (Test) All() error {
	return sh.RunV("go", "test", "./...")
}

// Coverage runs tests with coverage
func (Test) Coverage() error {
	if err := sh.RunV("go", "test", "-coverprofile=coverage.out", "./..."); err != nil {
		return err
	}
	return sh.RunV("go", "tool", "cover", "-func=coverage.out")
}

// Race runs tests with race detector
func (Test) Race() error {
	return sh.RunV("go", "test", "-race", "./...")
}

func ldflags() string {
	commit, _ := sh.Output("git", "rev-parse", "--short", "HEAD")
	if commit == "" {
		commit = "unknown"
	}
	date, _ := sh.Output("date", "-u", "+%Y-%m-%dT%H:%M:%SZ")
	return fmt.Sprintf("-X %[1]s/internal/version.CommitHash=%[2]s -X %[1]s/internal/version.BuildDate=%[3]s",
		pkgPath, commit, date)
}

// isCommandNotFound reports a missing executable. sh wraps the exec error
// with %v, so the message is checked as well.
func isCommandNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, exec.ErrNotFound) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "executable file not found") ||
		strings.Contains(msg, "no such file or directory")
}
