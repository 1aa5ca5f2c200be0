// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

//go:build mage

// Package main provides build targets for the rlcalc project using Mage.
//
// Usage:
//
//	mage build             Compile rlcalc binary to bin/
//	mage test:all          Run all tests (unit + integration)
//	mage test:unit         Run only unit tests (exclude integration)
//	mage test:integration  Run only integration tests (builds first)
//	mage smoke             Run the built binary on the reference roll
//	mage lint              Run golangci-lint
//	mage clean             Remove build artifacts
//	mage install           Install rlcalc to GOPATH/bin
//	mage stats             Print Go LOC and documentation word counts
package main

const (
	binGo      = "go"
	binaryName = "rlcalc"
	binaryDir  = "bin"
	cmdDir     = "./cmd/rlcalc"
)
