//go:build mage

// Package main provides build targets for the bookstore GraphQL service.
//
// Usage:
//
//	mage build            Compile the api binary to bin/
//	mage run              Build and start the server with in-memory stores
//	mage test:unit        Run unit tests
//	mage test:integration Run testcontainers-backed tests (needs Docker)
//	mage test:all         Run both
//	mage lint             Run golangci-lint
//	mage clean            Remove build artifacts
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binLint    = "golangci-lint"
	binaryName = "bookstore"
	binaryDir  = "bin"
	cmdDir     = "./cmd/api"
)

// Build compiles the api binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Run starts the server against in-memory stores.
func Run() error {
	mg.Deps(Build)
	return sh.RunWithV(
		map[string]string{"APP_ENV": "development"},
		filepath.Join(binaryDir, binaryName), "serve", "--db-driver", "memory", "--doc-driver", "memory",
	)
}

// Test groups test targets (unit, integration, all).
type Test mg.Namespace

// Unit runs the in-process tests (memory and SQLite stores).
func (Test) Unit() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Integration runs the Postgres and MongoDB tests in containers.
func (Test) Integration() error {
	return sh.RunV(binGo, "test", "-tags", "integration", "-run", "Integration", "./...")
}

// All runs unit and integration tests.
func (Test) All() {
	mg.SerialDeps(Test.Unit, Test.Integration)
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV(binLint, "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}
