// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Reference roll: 3.25in core, 10in roll, 0.015in material.
var (
	smokeArgs = []string{"3.25", "10", "0.015"}
	smokeWant = "4703.75in"
)

// Build compiles the rlcalc binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}

// Smoke builds rlcalc and checks its answer for the reference roll.
func Smoke() error {
	mg.Deps(Build)
	bin := filepath.Join(binaryDir, binaryName)
	env := map[string]string{"RLCALC_CONFIG_DIR": os.TempDir()}
	out, err := sh.OutputWith(env, bin, smokeArgs...)
	if err != nil {
		return err
	}
	if got := strings.TrimSpace(out); got != smokeWant {
		return fmt.Errorf("smoke: %s %s = %q, want %q", bin, strings.Join(smokeArgs, " "), got, smokeWant)
	}
	fmt.Println("smoke:", smokeWant)
	return nil
}
