// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package components provides the reusable pieces of the simplememo editor.

Each component is a small value with a View method (and a HandleKey method
when it takes input) so the editor model can embed it without giving up
control of the update loop.

# Components

Tabs (tabs.go) - One tab per memo page with unsaved and lock markers.
StatusBar (statusbar.go) - File name, encoding, save count and key hints.
Notice (notice.go) - Short-lived status message cleared by a tick.
Confirm (confirm.go) - Yes/no dialog used to re-issue a request with an override.
Picker (picker.go) - Single choice list, used for encodings.
Help (help.go) - Markdown key reference rendered with glamour.
*/
package components
