package playlist

import (
	"testing"
	"time"
)

var testNow = time.Date(2026, time.March, 7, 9, 5, 2, 0, time.UTC)

func TestFormatOutputName(t *testing.T) {
	cases := []struct {
		name     string
		template string
		basename string
		want     string
	}{
		{
			name:     "default template",
			template: "{basename:cp}_{YYYY}-{MM}-{DD}.m3u",
			basename: "road_trip.mix",
			want:     "Road Trip Mix_2026-03-07.m3u",
		},
		{
			name:     "dash separators lowercase",
			template: "{basename:ls}.m3u",
			basename: "My Summer_Hits",
			want:     "my-summer-hits.m3u",
		},
		{
			name:     "underscore separator uppercase",
			template: "{basename:u_}.m3u",
			basename: "chill out",
			want:     "CHILL_OUT.m3u",
		},
		{
			name:     "plain basename untouched",
			template: "{basename}.m3u",
			basename: "AsIs",
			want:     "AsIs.m3u",
		},
		{
			name:     "time tokens",
			template: "{basename}_{YY}{MM}{DD}-{hh}{mm}{ss}.m3u",
			basename: "mix",
			want:     "mix_260307-090502.m3u",
		},
		{
			name:     "missing extension defaults",
			template: "{basename}",
			basename: "mix",
			want:     "mix.m3u",
		},
		{
			name:     "invalid characters sanitized",
			template: "{basename}.m3u",
			basename: `a/b:c*d`,
			want:     "a_b_c_d.m3u",
		},
		{
			name:     "empty template falls back",
			template: "",
			basename: "Road Trip!",
			want:     "Road_Trip_2026-03-07.m3u",
		},
		{
			name:     "unusable stem falls back",
			template: "???.m3u",
			basename: "mix",
			want:     "mix_2026-03-07.m3u",
		},
		{
			name:     "empty basename falls back to playlist",
			template: "",
			basename: "",
			want:     "playlist_2026-03-07.m3u",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FormatOutputName(tc.template, tc.basename, testNow)
			if got != tc.want {
				t.Fatalf("FormatOutputName(%q, %q) = %q, want %q",
					tc.template, tc.basename, got, tc.want)
			}
		})
	}
}
