package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// LogEntry is one decoded JSON log line.
type LogEntry map[string]interface{}

type styles struct {
	time  lipgloss.Style
	key   lipgloss.Style
	gap   lipgloss.Style
	level map[string]lipgloss.Style
	other lipgloss.Style
	notes lipgloss.Style
}

func newStyles(w io.Writer, color bool) styles {
	profile := termenv.Ascii
	if color {
		profile = termenv.ANSI
	}
	r := lipgloss.NewRenderer(w, termenv.WithProfile(profile))
	r.SetColorProfile(profile)

	return styles{
		time: r.NewStyle().Foreground(lipgloss.Color("5")),
		key:  r.NewStyle().Foreground(lipgloss.Color("6")),
		gap:  r.NewStyle().Foreground(lipgloss.Color("5")),
		level: map[string]lipgloss.Style{
			"DEBUG": r.NewStyle().Foreground(lipgloss.Color("4")),
			"INFO":  r.NewStyle().Foreground(lipgloss.Color("2")),
			"WARN":  r.NewStyle().Foreground(lipgloss.Color("3")),
			"ERROR": r.NewStyle().Foreground(lipgloss.Color("1")),
		},
		other: r.NewStyle().Foreground(lipgloss.Color("7")),
		notes: r.NewStyle().Foreground(lipgloss.Color("3")),
	}
}

// viewer prints new lines of the *.log files in a directory.
type viewer struct {
	out     io.Writer
	dir     string
	filter  string
	styles  styles
	offsets map[string]int64
}

func newViewer(out io.Writer, dir, filter string, color bool) *viewer {
	return &viewer{
		out:     out,
		dir:     dir,
		filter:  strings.ToLower(filter),
		styles:  newStyles(out, color),
		offsets: make(map[string]int64),
	}
}

func formatTimestamp(timestamp string) string {
	t, err := time.Parse(time.RFC3339Nano, timestamp)
	if err != nil {
		return timestamp
	}
	return t.Format("06-01-02 15:04:05.000000")
}

// format renders an entry as "time level msg" followed by its other
// fields, one per indented line, in key order.
func (v *viewer) format(entry LogEntry) string {
	timestamp, _ := entry["time"].(string)
	level, _ := entry["level"].(string)
	msg, _ := entry["msg"].(string)

	level = strings.ToUpper(level)
	levelStyle, ok := v.styles.level[level]
	if !ok {
		levelStyle = v.styles.other
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s %s",
		v.styles.time.Render(formatTimestamp(timestamp)),
		levelStyle.Render(fmt.Sprintf("%-5s", level)),
		msg)

	keys := make([]string, 0, len(entry))
	for key := range entry {
		if key != "time" && key != "level" && key != "msg" {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(&b, "\n    %s %v", v.styles.key.Render(key+":"), entry[key])
	}
	return b.String()
}

// scan prints entries appended since the previous scan and returns how
// many were printed.
func (v *viewer) scan() (int, error) {
	files, err := filepath.Glob(filepath.Join(v.dir, "*.log"))
	if err != nil {
		return 0, fmt.Errorf("failed to list log files: %w", err)
	}

	printed := 0
	for _, path := range files {
		n, err := v.scanFile(path)
		printed += n
		if err != nil {
			fmt.Fprintln(v.out, v.styles.level["ERROR"].Render(err.Error()))
		}
	}
	return printed, nil
}

func (v *viewer) scanFile(path string) (int, error) {
	file, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", filepath.Base(path), err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return 0, fmt.Errorf("failed to stat %s: %w", filepath.Base(path), err)
	}
	offset := v.offsets[path]
	if stat.Size() < offset {
		fmt.Fprintln(v.out, v.styles.notes.Render(filepath.Base(path)+" has been truncated, starting from beginning"))
		offset = 0
	}
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return 0, fmt.Errorf("failed to seek in %s: %w", filepath.Base(path), err)
	}

	printed := 0
	reader := bufio.NewReader(file)
	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			// A partial last line is read again on the next scan.
			break
		}
		offset += int64(len(line))

		var entry LogEntry
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			continue
		}
		formatted := v.format(entry)
		if v.filter != "" && !strings.Contains(strings.ToLower(formatted), v.filter) {
			continue
		}
		fmt.Fprintln(v.out, formatted)
		printed++
	}

	v.offsets[path] = offset
	return printed, nil
}

// gap prints the separator shown between bursts of entries.
func (v *viewer) gap() {
	fmt.Fprintln(v.out, v.styles.gap.Render("◆"))
}
