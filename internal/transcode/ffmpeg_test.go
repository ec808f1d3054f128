package transcode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscodeArgsCanonicalProfile(t *testing.T) {
	args := transcodeArgs("/tmp/job/in.oga", "/tmp/job/out.mp3")

	assert.Contains(t, args, "-nostdin")
	assert.Equal(t, "/tmp/job/out.mp3", args[len(args)-1])

	// Mono, speech codec, fixed low bitrate.
	requireFlagValue(t, args, "-ac", "1")
	requireFlagValue(t, args, "-codec:a", "libmp3lame")
	requireFlagValue(t, args, "-b:a", "12k")
	requireFlagValue(t, args, "-i", "/tmp/job/in.oga")
}

func TestProbeArgsRequestJSONStreamEntries(t *testing.T) {
	args := probeArgs("/tmp/job/in.oga")

	requireFlagValue(t, args, "-show_entries", "stream=codec_type")
	requireFlagValue(t, args, "-of", "json")
	assert.Equal(t, "/tmp/job/in.oga", args[len(args)-1])
}

func TestNewFFmpegDefaultsBinaries(t *testing.T) {
	f := NewFFmpeg("", "")
	assert.Equal(t, "ffmpeg", f.ffmpegBin)
	assert.Equal(t, "ffprobe", f.ffprobeBin)

	f = NewFFmpeg("/opt/ffmpeg/bin/ffmpeg", "/opt/ffmpeg/bin/ffprobe")
	assert.Equal(t, "/opt/ffmpeg/bin/ffmpeg", f.ffmpegBin)
}

func requireFlagValue(t *testing.T, args []string, flag, want string) {
	t.Helper()
	for i, arg := range args {
		if arg == flag {
			require.Less(t, i+1, len(args), "flag %s has no value", flag)
			require.Equal(t, want, args[i+1])
			return
		}
	}
	t.Fatalf("flag %s not present in %v", flag, args)
}
