// Package transcode normalizes submitted audio into the canonical speech
// profile via the ffmpeg and ffprobe binaries.
package transcode

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNoAudioStream indicates the probed input carries no audio stream.
var ErrNoAudioStream = errors.New("input contains no audio stream")

// Canonical output profile: mono, low-bitrate mp3 tuned for speech.
const (
	codecName = "libmp3lame"
	bitrate   = "12k"
	channels  = "1"
)

// FFmpeg shells out to ffmpeg/ffprobe for probing and transcoding.
type FFmpeg struct {
	ffmpegBin  string
	ffprobeBin string
}

// NewFFmpeg builds a transcoder around the given binaries. Empty arguments
// fall back to PATH lookup of the standard names.
func NewFFmpeg(ffmpegBin, ffprobeBin string) *FFmpeg {
	if ffmpegBin == "" {
		ffmpegBin = "ffmpeg"
	}
	if ffprobeBin == "" {
		ffprobeBin = "ffprobe"
	}
	return &FFmpeg{ffmpegBin: ffmpegBin, ffprobeBin: ffprobeBin}
}

// Transcode probes the input for an audio stream and rewrites it into the
// canonical profile at outputPath.
func (f *FFmpeg) Transcode(ctx context.Context, inputPath, outputPath string) error {
	if err := f.probe(ctx, inputPath); err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, f.ffmpegBin, transcodeArgs(inputPath, outputPath)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg transcode failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

type probeOutput struct {
	Streams []struct {
		CodecType string `json:"codec_type"`
	} `json:"streams"`
}

// probe verifies the input holds at least one audio stream.
func (f *FFmpeg) probe(ctx context.Context, inputPath string) error {
	cmd := exec.CommandContext(ctx, f.ffprobeBin, probeArgs(inputPath)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffprobe failed: %w: %s", err, strings.TrimSpace(stderr.String()))
	}

	var probed probeOutput
	if err := json.Unmarshal(stdout.Bytes(), &probed); err != nil {
		return fmt.Errorf("parse ffprobe output: %w", err)
	}
	for _, stream := range probed.Streams {
		if stream.CodecType == "audio" {
			return nil
		}
	}
	return ErrNoAudioStream
}

func probeArgs(inputPath string) []string {
	return []string{
		"-v", "error",
		"-show_entries", "stream=codec_type",
		"-of", "json",
		inputPath,
	}
}

func transcodeArgs(inputPath, outputPath string) []string {
	return []string{
		"-nostdin",
		"-hide_banner",
		"-loglevel", "error",
		"-y",
		"-i", inputPath,
		"-ac", channels,
		"-codec:a", codecName,
		"-b:a", bitrate,
		outputPath,
	}
}
