// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/peterh/liner"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jeranaias/simplememo/internal/app"
	"github.com/jeranaias/simplememo/internal/charset"
	"github.com/jeranaias/simplememo/internal/config"
	"github.com/jeranaias/simplememo/internal/memo"
	"github.com/jeranaias/simplememo/internal/util"
	"github.com/jeranaias/simplememo/internal/watch"
)

// ShellHistoryFile is the input history file under the data directory.
const ShellHistoryFile = "shell_history"

func newShellCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Edit memo pages from a line-oriented shell",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			opts, err := g.options(cmd)
			if err != nil {
				return err
			}
			logs := setupLogging(opts, true)
			defer logs.Close()

			a, err := app.New(opts)
			if err != nil {
				return fmt.Errorf("start: %w", err)
			}
			defer func() {
				err = errors.Join(err, a.Close())
			}()

			input := NewShellInput(filepath.Join(opts.Home, ShellHistoryFile))
			defer input.Close()

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return NewShell(ctx, a, input, cmd.OutOrStdout()).Run()
		},
	}
}

// =============================================================================
// INPUT HISTORY
// =============================================================================

// LineReader reads one line of input. liner.State satisfies it.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

// ShellInput provides input history and line editing for the shell.
type ShellInput struct {
	line        *liner.State
	historyFile string
}

// NewShellInput creates a line editor and loads its history.
func NewShellInput(historyFile string) *ShellInput {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	in := &ShellInput{line: line, historyFile: historyFile}
	in.LoadHistory()
	return in
}

// LoadHistory loads command history from file.
func (in *ShellInput) LoadHistory() {
	if f, err := os.Open(in.historyFile); err == nil {
		in.line.ReadHistory(f)
		f.Close()
	}
}

// Prompt reads a line with the given prompt.
func (in *ShellInput) Prompt(prompt string) (string, error) {
	return in.line.Prompt(prompt)
}

// AppendHistory records a non-empty line.
func (in *ShellInput) AppendHistory(item string) {
	if strings.TrimSpace(item) != "" {
		in.line.AppendHistory(item)
	}
}

// SaveHistory persists command history, readable only by the owner.
func (in *ShellInput) SaveHistory() {
	if err := os.MkdirAll(filepath.Dir(in.historyFile), 0755); err != nil {
		return
	}
	f, err := os.OpenFile(in.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return
	}
	defer f.Close()
	in.line.WriteHistory(f)
}

// Close saves history and restores the terminal.
func (in *ShellInput) Close() {
	in.SaveHistory()
	in.line.Close()
}

// =============================================================================
// SHELL
// =============================================================================

// Shell drives the memo pages from typed commands. Page text lives in the
// shell; the pages themselves keep file state.
type Shell struct {
	ctx   context.Context
	app   *app.App
	in    LineReader
	out   io.Writer
	texts []string
	names []string
	quit  bool
}

type shellCommand struct {
	usage string
	help  string
	run   func(s *Shell, args []string) error
}

var shellCommands map[string]shellCommand

func init() {
	shellCommands = map[string]shellCommand{
		"help":     {"help", "Show this list", (*Shell).cmdHelp},
		"pages":    {"pages", "List pages", (*Shell).cmdPages},
		"focus":    {"focus N", "Switch to page N", (*Shell).cmdFocus},
		"show":     {"show", "Print the page text", (*Shell).cmdShow},
		"edit":     {"edit", "Replace the page text; end with a line holding a single .", (*Shell).cmdEdit},
		"append":   {"append TEXT", "Append one line to the page", (*Shell).cmdAppend},
		"name":     {"name NAME", "Set the file name used by save", (*Shell).cmdName},
		"save":     {"save [NAME]", "Save the page", (*Shell).cmdSave},
		"open":     {"open PATH", "Open a file into the page", (*Shell).cmdOpen},
		"reload":   {"reload ENCODING", "Re-read the page's file in ENCODING", (*Shell).cmdReload},
		"encoding": {"encoding [ENCODING]", "Show or set the page encoding", (*Shell).cmdEncoding},
		"lock":     {"lock", "Lock or unlock the page", (*Shell).cmdLock},
		"clear":    {"clear", "Clear the page", (*Shell).cmdClear},
		"settings": {"settings", "Print the settings", (*Shell).cmdSettings},
		"set":      {"set KEY VALUE", "Change one setting", (*Shell).cmdSet},
		"fontsize": {"fontsize N", "Change the font size", (*Shell).cmdFontSize},
		"recent":   {"recent [N]", "List recently used files", (*Shell).cmdRecent},
		"detect":   {"detect PATH", "Guess a file's encoding", (*Shell).cmdDetect},
		"quit":     {"quit", "Leave the shell", (*Shell).cmdQuit},
	}
	shellCommands["exit"] = shellCommands["quit"]
}

// NewShell creates a shell over a. Last files are restored first when the
// settings ask for it.
func NewShell(ctx context.Context, a *app.App, in LineReader, out io.Writer) *Shell {
	n := len(a.Slots())
	s := &Shell{
		ctx:   ctx,
		app:   a,
		in:    in,
		out:   out,
		texts: make([]string, n),
		names: make([]string, n),
	}
	for _, res := range a.RestoreLastFiles(ctx) {
		if res.Code == memo.OK {
			s.setPage(res.Slot, res.Text)
			fmt.Fprintf(out, "restored %s into page %d\n", res.Path, int(res.Slot)+1)
		}
	}
	return s
}

// Run reads and executes commands until quit or end of input.
func (s *Shell) Run() error {
	fmt.Fprintln(s.out, TitleStyle.Render("simplememo shell")+DimStyle.Render(" - type help for commands"))
	for !s.quit {
		line, err := s.in.Prompt(s.prompt())
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				continue
			}
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(s.out)
				return nil
			}
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		s.in.AppendHistory(line)
		if err := s.Exec(line); err != nil {
			fmt.Fprintln(s.out, ErrorStyle.Render("error: ")+err.Error())
		}
		s.afterCommand()
	}
	return nil
}

// Exec runs one command line.
func (s *Shell) Exec(line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	cmd, ok := shellCommands[strings.ToLower(fields[0])]
	if !ok {
		return fmt.Errorf("unknown command %q (try help)", fields[0])
	}
	return cmd.run(s, fields[1:])
}

// Quit reports whether the shell has been asked to exit.
func (s *Shell) Quit() bool {
	return s.quit
}

// Text returns the text of page id.
func (s *Shell) Text(id memo.SlotID) string {
	return s.texts[id]
}

func (s *Shell) prompt() string {
	id := s.app.Manager().Focused()
	info, _ := s.app.Manager().SlotInfo(id)
	mark := ""
	if info.Locked {
		mark += "[L]"
	}
	if info.Unsaved {
		mark += "*"
	}
	return PromptStyle.Render(fmt.Sprintf("memo[%d]%s> ", int(id)+1, mark))
}

// afterCommand runs autosave when it is due and reports file changes.
func (s *Shell) afterCommand() {
	if s.app.AutoSaveDue() {
		texts := make(map[memo.SlotID]string, len(s.texts))
		for i, t := range s.texts {
			texts[memo.SlotID(i)] = t
		}
		for _, res := range s.app.AutoSave(s.ctx, texts) {
			if res.Code == memo.OK {
				fmt.Fprintf(s.out, "%s page %d -> %s\n", DimStyle.Render("autosaved"), int(res.Slot)+1, res.Path)
			}
		}
	}

	ch := s.app.Changes()
	if ch == nil {
		return
	}
	for {
		select {
		case c, ok := <-ch:
			if !ok {
				return
			}
			s.reportChange(c)
		default:
			return
		}
	}
}

func (s *Shell) reportChange(c watch.Change) {
	id, ok := s.app.SlotForPath(c.Path)
	if !ok {
		return
	}
	what := "changed on disk (reload to re-read it)"
	if c.Op == watch.Removed {
		what = "was removed from disk"
	}
	fmt.Fprintf(s.out, "%s %s on page %d %s\n", WarningStyle.Render("note:"), filepath.Base(c.Path), int(id)+1, what)
}

func (s *Shell) focused() memo.SlotID {
	return s.app.Manager().Focused()
}

func (s *Shell) info() memo.Info {
	info, _ := s.app.Manager().SlotInfo(s.focused())
	return info
}

func (s *Shell) setPage(id memo.SlotID, text string) {
	s.texts[id] = text
	info, _ := s.app.Manager().SlotInfo(id)
	s.names[id] = info.SaveName()
}

// confirm asks a yes/no question. Anything but y or yes is no.
func (s *Shell) confirm(question string) bool {
	answer, err := s.in.Prompt(WarningStyle.Render(question) + " [y/N]: ")
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// codeErr turns a non-OK code into the error printed by Run.
func codeErr(code memo.Code) error {
	if code == memo.OK {
		return nil
	}
	return errors.New(code.Message())
}

// =============================================================================
// COMMANDS
// =============================================================================

func (s *Shell) cmdHelp(args []string) error {
	names := make([]string, 0, len(shellCommands))
	for name := range shellCommands {
		if name != "exit" {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		c := shellCommands[name]
		fmt.Fprintf(s.out, "  %s %s\n", util.PadWidth(c.usage, 22), DimStyle.Render(c.help))
	}
	return nil
}

func (s *Shell) cmdPages(args []string) error {
	focused := s.focused()
	for _, info := range s.app.Slots() {
		cursor := " "
		if info.ID == focused {
			cursor = ">"
		}
		name := info.Filename()
		if name == "" {
			name = "untitled"
		}
		var flags []string
		if info.Unsaved {
			flags = append(flags, "unsaved")
		}
		if info.Locked {
			flags = append(flags, "locked")
		}
		if info.SaveCount > 0 {
			flags = append(flags, fmt.Sprintf("saved x%d", info.SaveCount))
		}
		fmt.Fprintf(s.out, "%s %d %s %-12s %s\n", cursor, int(info.ID)+1,
			util.PadWidth(util.TruncateWidth(name, 24), 24), info.Encoding, DimStyle.Render(strings.Join(flags, ", ")))
	}
	return nil
}

func (s *Shell) cmdFocus(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: focus N")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("page number not valid: %q", args[0])
	}
	return codeErr(s.app.Focus(memo.SlotID(n - 1)))
}

func (s *Shell) cmdShow(args []string) error {
	text := s.texts[s.focused()]
	if text == "" {
		fmt.Fprintln(s.out, DimStyle.Render("(empty)"))
		return nil
	}
	fmt.Fprintln(s.out, text)
	return nil
}

// edited stores new text for the focused page and records the edit.
func (s *Shell) edited(text string) error {
	id := s.focused()
	if s.info().Locked {
		return codeErr(memo.Locked)
	}
	if text == s.texts[id] {
		return nil
	}
	s.texts[id] = text
	return codeErr(s.app.MarkUnsaved(id))
}

func (s *Shell) cmdEdit(args []string) error {
	if s.info().Locked {
		return codeErr(memo.Locked)
	}
	var lines []string
	for {
		line, err := s.in.Prompt(DimStyle.Render("... "))
		if err != nil {
			return fmt.Errorf("edit aborted: %w", err)
		}
		if line == "." {
			break
		}
		lines = append(lines, line)
	}
	return s.edited(strings.Join(lines, "\n"))
}

func (s *Shell) cmdAppend(args []string) error {
	text := s.texts[s.focused()]
	if text != "" {
		text += "\n"
	}
	return s.edited(text + strings.Join(args, " "))
}

func (s *Shell) cmdName(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: name NAME")
	}
	s.names[s.focused()] = strings.Join(args, " ")
	return nil
}

func (s *Shell) cmdSave(args []string) error {
	id := s.focused()
	if len(args) > 0 {
		s.names[id] = strings.Join(args, " ")
	}
	res := s.app.Save(s.ctx, id, s.names[id], s.texts[id], false)
	if res.Code == memo.FileExists {
		if !s.confirm(res.Code.Message()) {
			return nil
		}
		res = s.app.Save(s.ctx, id, s.names[id], s.texts[id], true)
	}
	if res.Code != memo.OK {
		return codeErr(res.Code)
	}
	s.names[id] = s.info().SaveName()
	fmt.Fprintf(s.out, "%s %s (%d)\n", SuccessStyle.Render("saved"), res.Path, res.SaveCount)
	return nil
}

func (s *Shell) cmdOpen(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: open PATH")
	}
	path := strings.Join(args, " ")
	id := s.focused()
	var opts memo.LoadOptions
	for {
		res := s.app.Load(s.ctx, id, path, opts)
		switch res.Code {
		case memo.OK:
			s.setPage(id, res.Text)
			fmt.Fprintf(s.out, "%s %s (%s, %s)\n", SuccessStyle.Render("opened"), res.Path, humanize.IBytes(uint64(res.Size)), res.Encoding)
			return nil
		case memo.ContentPending:
			if !s.confirm(res.Code.Message()) {
				return nil
			}
			opts.Overwrite = true
		case memo.FileTooLarge:
			if !s.confirm(fmt.Sprintf("%s is %s. Open it anyway?", filepath.Base(path), util.HumanSize(res.Size))) {
				return nil
			}
			opts.IgnoreSizeCheck = true
		case memo.AlreadyOpen:
			if abs, err := filepath.Abs(path); err == nil {
				if holder, ok := s.app.SlotForPath(abs); ok {
					return fmt.Errorf("%s (page %d)", res.Code.Message(), int(holder)+1)
				}
			}
			return codeErr(res.Code)
		default:
			return codeErr(res.Code)
		}
	}
}

func (s *Shell) cmdReload(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: reload ENCODING")
	}
	id := s.focused()
	res := s.app.Reload(s.ctx, id, charset.Name(strings.ToUpper(args[0])))
	if res.Code != memo.OK {
		return codeErr(res.Code)
	}
	s.setPage(id, res.Text)
	fmt.Fprintf(s.out, "%s %s as %s\n", SuccessStyle.Render("reloaded"), res.Path, res.Encoding)
	return nil
}

func (s *Shell) cmdEncoding(args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(s.out, s.app.LocalSettings().Encoding)
		return nil
	}
	name := charset.Name(strings.ToUpper(args[0]))
	return codeErr(s.app.ApplyLocalSettings(memo.LocalSettings{Slot: s.focused(), Encoding: name}))
}

func (s *Shell) cmdLock(args []string) error {
	on, code := s.app.ToggleLock(s.focused())
	if code != memo.OK {
		return codeErr(code)
	}
	if on {
		fmt.Fprintln(s.out, "page locked")
	} else {
		fmt.Fprintln(s.out, "page unlocked")
	}
	return nil
}

func (s *Shell) cmdClear(args []string) error {
	id := s.focused()
	info := s.info()
	if info.Locked {
		return codeErr(memo.Locked)
	}
	if info.Unsaved && !s.confirm("This page has unsaved changes. Clear it anyway?") {
		return nil
	}
	if code := s.app.ClearSlot(id); code != memo.OK {
		return codeErr(code)
	}
	s.texts[id] = ""
	s.names[id] = ""
	return nil
}

func (s *Shell) cmdSettings(args []string) error {
	return writeSettings(s.out, s.app.GlobalSettings(), "json")
}

// parseSetting converts a typed value to the kind the key expects.
func parseSetting(key, raw string) (any, error) {
	f, ok := config.Lookup(key)
	if !ok {
		return nil, fmt.Errorf("unknown setting %q", key)
	}
	switch f.Kind {
	case config.KindBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%s needs true or false", key)
		}
		return v, nil
	case config.KindNumber:
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%s needs a number", key)
		}
		return v, nil
	}
	return raw, nil
}

func (s *Shell) cmdSet(args []string) error {
	if len(args) < 2 {
		return errors.New("usage: set KEY VALUE")
	}
	v, err := parseSetting(args[0], strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	if code := s.app.ApplyGlobalSettings(map[string]any{args[0]: v}); code != memo.OK {
		return codeErr(code)
	}
	logrus.WithField("key", args[0]).Debug("setting changed from shell")
	return nil
}

func (s *Shell) cmdFontSize(args []string) error {
	if len(args) != 1 {
		return errors.New("usage: fontsize N")
	}
	v, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return codeErr(memo.InvalidFontSize)
	}
	return codeErr(s.app.SetFontSize(v))
}

func (s *Shell) cmdRecent(args []string) error {
	limit := 10
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			return fmt.Errorf("count not valid: %q", args[0])
		}
		limit = n
	}
	entries, err := s.app.Recent(s.ctx, limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(s.out, DimStyle.Render("(no history)"))
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(s.out, "%s %-5s %-12s %s\n", util.PadWidth(humanize.Time(e.At), 16), e.Action, e.Encoding, e.Path)
	}
	return nil
}

func (s *Shell) cmdDetect(args []string) error {
	if len(args) == 0 {
		return errors.New("usage: detect PATH")
	}
	d, err := detectFile(strings.Join(args, " "))
	if err != nil {
		return err
	}
	if !d.Detected {
		fmt.Fprintln(s.out, "unknown")
		return nil
	}
	fmt.Fprintf(s.out, "%s (%s)\n", d.Encoding, d.Label)
	return nil
}

func (s *Shell) cmdQuit(args []string) error {
	unsaved := s.app.UnsavedSlots()
	if len(unsaved) > 0 && !s.app.GlobalSettings().NoCloseDialog {
		nums := make([]string, len(unsaved))
		for i, id := range unsaved {
			nums[i] = strconv.Itoa(int(id) + 1)
		}
		if !s.confirm(fmt.Sprintf("Page %s has unsaved changes. Quit anyway?", strings.Join(nums, ", "))) {
			return nil
		}
	}
	s.quit = true
	return nil
}
