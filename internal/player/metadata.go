package player

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dhowden/tag"
)

// CueInfo describes a cue file for display.
type CueInfo struct {
	Path     string
	Title    string
	Duration time.Duration
}

// ReadCueInfo reads the cue's title from its tags, falling back to the file
// name, and decodes the header to measure its length.
func ReadCueInfo(path string) (*CueInfo, error) {
	info := &CueInfo{Path: path, Title: titleFromName(path)}

	if f, err := os.Open(path); err == nil {
		if m, err := tag.ReadFrom(f); err == nil && m.Title() != "" {
			info.Title = m.Title()
		}
		f.Close()
	}

	streamer, format, err := Decode(path)
	if err != nil {
		return nil, err
	}
	defer streamer.Close()
	info.Duration = format.SampleRate.D(streamer.Len())

	return info, nil
}

func titleFromName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
