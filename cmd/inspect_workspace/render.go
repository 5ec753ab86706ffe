package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"time"

	"re-ad-be/internal/entity"
	"re-ad-be/pkg/annotation"
	"re-ad-be/pkg/events"

	"github.com/fatih/color"
)

// readColor turns a "#rrggbb" read color into a terminal color. Anything
// else falls back to the default foreground.
func readColor(hex string) *color.Color {
	h := strings.TrimPrefix(hex, "#")
	if len(h) != 6 {
		return color.New(color.Reset)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.New(color.Reset)
	}
	return color.RGB(int(v>>16&0xff), int(v>>8&0xff), int(v&0xff))
}

func printSummaryLine(w io.Writer, ws *entity.Workspace) {
	saved := ws.CreatedAt
	if ws.UpdatedAt != nil {
		saved = *ws.UpdatedAt
	}
	paper := "-"
	if ws.Paper != nil {
		paper = ws.Paper.Name
	}
	state := ""
	if ws.IsDeleted {
		state = color.RedString(" [deleted]")
	}
	fmt.Fprintf(w, "%s  user=%s  reads=%d highlights=%d edges=%d  paper=%s%s\n",
		saved.Format(time.RFC3339),
		ws.UserId,
		len(ws.Snapshot.Reads),
		len(ws.Snapshot.Highlights),
		len(ws.Snapshot.Edges),
		paper,
		state,
	)
}

func printWorkspace(w io.Writer, ws *entity.Workspace) {
	snap := ws.Snapshot

	color.New(color.Bold).Fprintf(w, "Workspace %s (user %s)\n", ws.Id, ws.UserId)
	if ws.Paper != nil {
		fmt.Fprintf(w, "Paper: %s (%d bytes)\n", ws.Paper.Name, ws.Paper.Size)
	}

	displayed := make(map[string]bool, len(snap.DisplayedReads))
	for _, id := range snap.DisplayedReads {
		displayed[id] = true
	}

	byRead := make(map[string][]annotation.Highlight)
	for _, h := range snap.Highlights {
		byRead[h.ReadRecordID] = append(byRead[h.ReadRecordID], h)
	}

	fmt.Fprintln(w, "\nReads:")
	for _, r := range snap.Reads {
		marker := " "
		if r.ID == snap.CurrentReadID {
			marker = "*"
		}
		visibility := "hidden"
		if displayed[r.ID] {
			visibility = "shown"
		}
		readColor(r.Color).Fprintf(w, "%s %s  %s [%s]\n", marker, r.ID, r.Title, visibility)

		for _, h := range byRead[r.ID] {
			fmt.Fprintf(w, "    %-12s %-5s %s\n", h.ID, h.Type, truncate(h.Label, 60))
		}
	}

	fmt.Fprintf(w, "\nGraph: %d nodes, %d edges\n", len(snap.Nodes), len(snap.Edges))
	for _, e := range snap.Edges {
		fmt.Fprintf(w, "    %s -> %s (%s)\n", e.Source, e.Target, e.Type)
	}
	if snap.SelectedHighlightID != "" {
		fmt.Fprintf(w, "\nSelected: %s\n", snap.SelectedHighlightID)
	}
}

func printEvent(w io.Writer, event events.Event) {
	ts := color.New(color.FgHiBlack).Sprint(event.Timestamp().Format("15:04:05.000"))
	kind := color.New(color.FgGreen, color.Bold).Sprint(event.EventType())

	keys := make([]string, 0, len(event.Payload()))
	for k := range event.Payload() {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, event.Payload()[k]))
	}
	fmt.Fprintf(w, "%s %s %s\n", ts, kind, strings.Join(parts, " "))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
