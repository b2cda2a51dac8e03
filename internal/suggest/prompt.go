package suggest

import "fmt"

// playlistSystemPrompt instructs the model to answer with the playlist
// JSON schema and nothing else.
const playlistSystemPrompt = `You are a playlist assistant. Given a description of a playlist,
respond with JSON only, in exactly this shape:

{"playlist": [{"artist": "Artist Name", "title": "Track Title"}, ...]}

Rules:
- Every entry must name a real, released track by a real artist.
- Do not invent artists or tracks.
- Do not include commentary, markdown, or any text outside the JSON object.`

func buildUserPrompt(description string, count int) string {
	if count <= 0 {
		count = 20
	}
	return fmt.Sprintf("Create a playlist of %d tracks: %s", count, description)
}
