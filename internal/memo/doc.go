// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package memo implements the memo slots and the registry that owns them.
//
// A Slot is one memo page with its own save path, encoding, dirty and lock
// flags. Its Load and Save methods implement the data-loss guards: pending
// content, already-open files, oversized files, overwrite confirmation and
// encoding round-tripping with BOM handling. The Manager holds a fixed
// number of slots, enforces that no two slots hold the same file, and fans
// settings changes out to every slot.
//
// # Result Codes
//
// Operations never block for user input. When a confirmation is needed they
// return a Code (ContentPending, FileTooLarge, FileExists) and the caller
// re-issues the same request with Overwrite or IgnoreSizeCheck set.
//
// # Usage
//
//	store := config.NewStore()
//	mgr := memo.NewManager(memo.DefaultSlotCount, store)
//
//	res := mgr.Save(0, "note", "hello", memo.SaveOptions{})
//	if res.Code == memo.FileExists {
//	    res = mgr.Save(0, "note", "hello", memo.SaveOptions{Overwrite: true})
//	}
package memo
