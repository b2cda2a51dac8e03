// Package suggest turns a free-form prompt into an "Artist - Title"
// list using an OpenRouter-compatible chat completion API. Responses are
// requested as JSON and parsed tolerantly, since models wrap payloads in
// code fences or prose more often than they should.
package suggest
