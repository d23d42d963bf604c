package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/melodeck/melodeck/filesystem"
	"github.com/melodeck/melodeck/log"
	"github.com/melodeck/melodeck/playback"
	"github.com/melodeck/melodeck/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

// newTrack builds the track for target from the command's flags.
func newTrack(cmd *cobra.Command, target string) (playback.Track, error) {
	track := playback.Track{
		URL:    strings.TrimSpace(target),
		Name:   lo.Must(cmd.Flags().GetString("name")),
		Artist: lo.Must(cmd.Flags().GetString("artist")),
		Poster: lo.Must(cmd.Flags().GetString("poster")),
	}

	if track.Name == "" {
		track.Name = util.FileStem(track.URL)
	}

	lyrics, err := readLyrics(lo.Must(cmd.Flags().GetString("lrc")), track.URL)
	if err != nil {
		return playback.Track{}, err
	}
	track.Lyrics = lyrics

	return track, nil
}

// readLyrics reads path, or a .lrc file sharing the track's name when path is empty.
// A missing sibling file is not an error.
func readLyrics(path, track string) (string, error) {
	explicit := path != ""
	if !explicit {
		if strings.Contains(track, "://") {
			return "", nil
		}
		path = strings.TrimSuffix(track, filepath.Ext(track)) + ".lrc"
	}

	data, found, err := filesystem.ReadOptional(path)
	switch {
	case err != nil:
		return "", fmt.Errorf("read lyrics: %w", err)
	case !found && explicit:
		return "", fmt.Errorf("read lyrics: %s does not exist", path)
	case !found:
		return "", nil
	}

	log.Infof("lyrics from %s", path)
	return string(data), nil
}
