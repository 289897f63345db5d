// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

//go:build !unix && !windows

package memo

func isBusy(err error) bool { return false }

func isNameTooLong(err error) bool { return false }
