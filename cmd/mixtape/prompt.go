package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"mixtape/internal/interact"
	"mixtape/internal/library"
	"mixtape/internal/match"
)

// terminalPrompter renders choice lists to out and reads selections from
// in, one line per prompt.
type terminalPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newTerminalPrompter(in io.Reader, out io.Writer) *terminalPrompter {
	return &terminalPrompter{in: bufio.NewReader(in), out: out}
}

func (p *terminalPrompter) ChooseCandidate(query match.Query, candidates []match.ScoredCandidate) (interact.Choice, error) {
	fmt.Fprintf(p.out, "\nChoices for %q:\n", query.Artist+" - "+query.Title)
	if len(candidates) > 0 {
		rows := make([][]string, 0, len(candidates))
		for i, c := range candidates {
			note := ""
			if c.PenaltyApplied {
				note = fmt.Sprintf("live, was %.1f", c.OriginalScore)
			} else if c.Track.IsLive {
				note = "live"
			}
			rows = append(rows, []string{
				strconv.Itoa(i + 1),
				c.Track.Artist,
				c.Track.DisplayTitle(),
				c.Track.Album,
				fmt.Sprintf("%.1f", c.AdjustedScore),
				note,
			})
		}
		fmt.Fprintln(p.out, renderTable(
			[]string{"#", "Artist", "Title", "Album", "Score", "Note"},
			rows,
			[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft, alignRight, alignLeft},
		))
	}
	return p.readChoice(len(candidates), "number = pick, s = skip, r = random, a = browse albums", map[string]interact.Action{
		"s": interact.ActionSkip,
		"r": interact.ActionRandom,
		"a": interact.ActionBrowseAlbums,
	})
}

func (p *terminalPrompter) ChooseAlbum(query match.Query, albums []interact.Album) (interact.Choice, error) {
	fmt.Fprintf(p.out, "\nAlbums with tracks by %q:\n", query.Artist)
	rows := make([][]string, 0, len(albums))
	for i, album := range albums {
		name := album.Name
		if name == "" {
			name = "(no album tag)"
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			name,
			strconv.Itoa(len(album.Tracks)),
		})
	}
	fmt.Fprintln(p.out, renderTable(
		[]string{"#", "Album", "Tracks"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight},
	))
	return p.readChoice(len(albums), "number = open album, s = skip, r = random, b = back", map[string]interact.Action{
		"s": interact.ActionSkip,
		"r": interact.ActionRandom,
		"b": interact.ActionBack,
	})
}

func (p *terminalPrompter) ChooseTrack(query match.Query, album interact.Album) (interact.Choice, error) {
	name := album.Name
	if name == "" {
		name = "(no album tag)"
	}
	fmt.Fprintf(p.out, "\nTracks on %q:\n", name)
	rows := make([][]string, 0, len(album.Tracks))
	for i, track := range album.Tracks {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			track.DisplayTitle(),
			formatDuration(track.DurationSecs),
		})
	}
	fmt.Fprintln(p.out, renderTable(
		[]string{"#", "Title", "Length"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight},
	))
	return p.readChoice(len(album.Tracks), "number = pick, s = skip, b = back to albums", map[string]interact.Action{
		"s": interact.ActionSkip,
		"b": interact.ActionBack,
	})
}

// readChoice loops until the input names a known action or a number in
// [1, max].
func (p *terminalPrompter) readChoice(max int, usage string, actions map[string]interact.Action) (interact.Choice, error) {
	for {
		fmt.Fprintf(p.out, "> (%s): ", usage)
		line, err := p.in.ReadString('\n')
		if err != nil && line == "" {
			return interact.Choice{}, fmt.Errorf("read choice: %w", err)
		}
		input := strings.ToLower(strings.TrimSpace(line))
		if action, ok := actions[input]; ok {
			return interact.Choice{Action: action}, nil
		}
		if n, convErr := strconv.Atoi(input); convErr == nil && n >= 1 && n <= max {
			return interact.Choice{Action: interact.ActionPick, Index: n - 1}, nil
		}
		fmt.Fprintln(p.out, "Invalid choice.")
		if err != nil {
			return interact.Choice{}, fmt.Errorf("read choice: %w", err)
		}
	}
}

func formatDuration(secs int) string {
	if secs == library.DurationUnknown {
		return "?"
	}
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}
