// Package audio is the local-file media backend: it decodes wav and mp3 files, plays them through
// beep and exposes their live samples as spectral frames.
package audio

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/melodeck/melodeck/constant"
	"github.com/melodeck/melodeck/filesystem"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported audio format")
	ErrUnsupportedSource = errors.New("only local files can be played")
	ErrNotLoaded         = errors.New("no media loaded")
)

// Decode opens path through the active filesystem and decodes it by extension.
func Decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := filesystem.API().Open(path)
	if err != nil {
		return nil, beep.Format{}, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case constant.ExtMP3:
		return mp3.Decode(f)
	case constant.ExtWAV:
		defer f.Close()
		return decodeWAV(f)
	default:
		_ = f.Close()
		return nil, beep.Format{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

func decodeWAV(f io.ReadSeeker) (beep.StreamSeekCloser, beep.Format, error) {
	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, beep.Format{}, fmt.Errorf("%w: invalid wav file", ErrUnsupportedFormat)
	}

	buffer, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("decode wav: %w", err)
	}

	channels := int(decoder.NumChans)
	depth := int(decoder.BitDepth)
	if channels < 1 || depth < 8 {
		return nil, beep.Format{}, fmt.Errorf("%w: %d channels at %d bits", ErrUnsupportedFormat, channels, depth)
	}

	format := beep.Format{
		SampleRate:  beep.SampleRate(decoder.SampleRate),
		NumChannels: channels,
		Precision:   depth / 8,
	}

	return newPCM(buffer.Data, channels, depth), format, nil
}

// localPath turns a file URL or plain path into a filesystem path.
func localPath(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrNotLoaded
	}

	if !strings.Contains(raw, "://") {
		return filepath.Clean(raw), nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme != "file" {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedSource, u.Scheme)
	}
	return filepath.FromSlash(u.Path), nil
}
