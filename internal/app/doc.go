// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app is the command surface the front-ends drive.
//
// An App binds the slot registry to the settings file, the recent-file
// history and the on-disk change watcher. Every method runs on the
// caller's control loop and returns plain result values; confirmations are
// the caller re-issuing a request with an override flag.
//
// # Usage
//
//	a, err := app.New(opts)
//	if err != nil {
//	    return err
//	}
//	defer a.Close()
//
//	res := a.Save(ctx, 0, "note", text, false)
//	if res.Code == memo.FileExists && confirm(res.Code.Message()) {
//	    res = a.Save(ctx, 0, "note", text, true)
//	}
package app
