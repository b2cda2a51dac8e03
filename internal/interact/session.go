package interact

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"strconv"

	"mixtape/internal/library"
	"mixtape/internal/match"
)

// Action is what the user asked for at a prompt.
type Action int

const (
	// ActionPick selects the entry at Choice.Index.
	ActionPick Action = iota
	// ActionSkip abandons the query.
	ActionSkip
	// ActionRandom picks a random track from the artist candidates, or
	// from the whole library when there are none.
	ActionRandom
	// ActionBrowseAlbums switches from the candidate list to album
	// browsing.
	ActionBrowseAlbums
	// ActionBack returns to the previous list.
	ActionBack
)

// Choice is one prompt response. Index is only meaningful for ActionPick.
type Choice struct {
	Action Action
	Index  int
}

// Album groups an artist's candidate tracks under one album title.
type Album struct {
	Name   string
	Tracks []library.Track
}

// Prompter collects one choice per prompt. Implementations render the
// lists however they like; the session validates indices and re-prompts
// on invalid input.
type Prompter interface {
	// ChooseCandidate presents scored candidates for a query. The
	// candidate slice may be empty (no direct matches), in which case
	// only skip and random are sensible.
	ChooseCandidate(query match.Query, candidates []match.ScoredCandidate) (Choice, error)

	// ChooseAlbum presents the albums available for the query's artist.
	ChooseAlbum(query match.Query, albums []Album) (Choice, error)

	// ChooseTrack presents the tracks of one album.
	ChooseTrack(query match.Query, album Album) (Choice, error)
}

type state int

const (
	stateChoosingCandidate state = iota
	stateChoosingAlbum
	stateChoosingTrackInAlbum
)

// Session drives prompt rounds for ambiguous outcomes. It holds the full
// library index so a random pick still works when a query produced no
// artist candidates.
type Session struct {
	prompter Prompter
	index    []library.Track
	rng      *rand.Rand
	logger   *slog.Logger
}

// NewSession constructs a session. rng may be nil to use a default
// source.
func NewSession(prompter Prompter, index []library.Track, rng *rand.Rand, logger *slog.Logger) (*Session, error) {
	if prompter == nil {
		return nil, fmt.Errorf("session requires a prompter")
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{prompter: prompter, index: index, rng: rng, logger: logger}, nil
}

// Resolve walks the choice state machine for one ambiguous outcome and
// returns the chosen track, or nil for a skip. Prompter errors abort the
// session; the caller decides whether that means skip.
func (s *Session) Resolve(query match.Query, outcome match.Outcome) (*library.Track, error) {
	if outcome.Decision.Final() {
		return nil, fmt.Errorf("outcome %q needs no interaction", outcome.Decision)
	}

	current := stateChoosingCandidate
	if outcome.Decision == match.DecisionAlbumSelectionPossible {
		current = stateChoosingAlbum
	}

	albums := groupAlbums(outcome.ArtistCandidates)
	var album Album

	for {
		switch current {
		case stateChoosingCandidate:
			choice, err := s.prompter.ChooseCandidate(query, outcome.Candidates)
			if err != nil {
				return nil, err
			}
			switch choice.Action {
			case ActionPick:
				if choice.Index < 0 || choice.Index >= len(outcome.Candidates) {
					continue
				}
				track := outcome.Candidates[choice.Index].Track
				return &track, nil
			case ActionSkip, ActionBack:
				return nil, nil
			case ActionRandom:
				return s.randomPick(outcome.ArtistCandidates), nil
			case ActionBrowseAlbums:
				if len(albums) == 0 {
					continue
				}
				current = stateChoosingAlbum
			}

		case stateChoosingAlbum:
			choice, err := s.prompter.ChooseAlbum(query, albums)
			if err != nil {
				return nil, err
			}
			switch choice.Action {
			case ActionPick:
				if choice.Index < 0 || choice.Index >= len(albums) {
					continue
				}
				album = albums[choice.Index]
				current = stateChoosingTrackInAlbum
			case ActionSkip:
				return nil, nil
			case ActionRandom:
				return s.randomPick(outcome.ArtistCandidates), nil
			case ActionBack:
				if len(outcome.Candidates) > 0 {
					current = stateChoosingCandidate
				} else {
					return nil, nil
				}
			}

		case stateChoosingTrackInAlbum:
			choice, err := s.prompter.ChooseTrack(query, album)
			if err != nil {
				return nil, err
			}
			switch choice.Action {
			case ActionPick:
				if choice.Index < 0 || choice.Index >= len(album.Tracks) {
					continue
				}
				track := album.Tracks[choice.Index]
				return &track, nil
			case ActionSkip:
				return nil, nil
			case ActionBack:
				current = stateChoosingAlbum
			case ActionRandom:
				return s.randomPick(album.Tracks), nil
			}
		}
	}
}

// randomPick draws from pool, falling back to the whole library when the
// pool is empty. Returns nil only when the library itself is empty.
func (s *Session) randomPick(pool []library.Track) *library.Track {
	if len(pool) == 0 {
		pool = s.index
	}
	if len(pool) == 0 {
		return nil
	}
	track := pool[s.rng.Intn(len(pool))]
	s.logger.Debug("random pick", "path", track.Path)
	return &track
}

// groupAlbums buckets tracks by album title and orders each album's
// tracks by the leading number in the filename when present, then by
// name. Tracks with no album tag gather under an empty-name album listed
// last.
func groupAlbums(tracks []library.Track) []Album {
	buckets := make(map[string][]library.Track)
	for _, track := range tracks {
		buckets[track.Album] = append(buckets[track.Album], track)
	}

	names := make([]string, 0, len(buckets))
	for name := range buckets {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if (names[i] == "") != (names[j] == "") {
			return names[j] == ""
		}
		return names[i] < names[j]
	})

	albums := make([]Album, 0, len(names))
	for _, name := range names {
		bucket := buckets[name]
		sort.Slice(bucket, func(i, j int) bool {
			ni, iOK := leadingNumber(library.FilenameStem(bucket[i].Path))
			nj, jOK := leadingNumber(library.FilenameStem(bucket[j].Path))
			if iOK && jOK && ni != nj {
				return ni < nj
			}
			if iOK != jOK {
				return iOK
			}
			return bucket[i].Path < bucket[j].Path
		})
		albums = append(albums, Album{Name: name, Tracks: bucket})
	}
	return albums
}

func leadingNumber(s string) (int, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
