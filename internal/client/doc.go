// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It opens the vault with the master password collected by the terminal UI,
// hands the unlocked entries to the main loop and closes the vault on exit.
package client
