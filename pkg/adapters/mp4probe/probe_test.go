package mp4probe

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Eyevinn/mp4ff/av1"
	"github.com/Eyevinn/mp4ff/mp4"
)

// buildFragmented writes a single-fragment MP4 with frames dummy samples at fps.
func buildFragmented(t *testing.T, frames int, fps uint32, width, height uint16) []byte {
	t.Helper()

	timescale := fps * 1000
	init := mp4.CreateEmptyInit()
	init.AddEmptyTrack(timescale, "video", "en")
	trak := init.Moov.Trak

	av1C := &mp4.Av1CBox{CodecConfRec: av1.CodecConfRec{
		Version:            1,
		SeqLevelIdx0:       8,
		ChromaSubsamplingX: 1,
		ChromaSubsamplingY: 1,
	}}
	trak.Mdia.Minf.Stbl.Stsd.AddChild(mp4.CreateVisualSampleEntryBox("av01", width, height, av1C))
	trak.Tkhd.Width = mp4.Fixed32(uint32(width) << 16)
	trak.Tkhd.Height = mp4.Fixed32(uint32(height) << 16)

	frag, err := mp4.CreateFragment(1, trak.Tkhd.TrackID)
	if err != nil {
		t.Fatalf("create fragment: %v", err)
	}
	dur := timescale / fps
	for i := 0; i < frames; i++ {
		data := []byte{0x12, 0x00, byte(i)}
		frag.AddFullSample(mp4.FullSample{
			Sample:     mp4.Sample{Flags: mp4.SyncSampleFlags, Size: uint32(len(data)), Dur: dur},
			DecodeTime: uint64(i) * uint64(dur),
			Data:       data,
		})
	}

	var buf bytes.Buffer
	if err := mp4.NewFtyp("isom", 0x200, []string{"isom", "iso2", "av01", "mp41"}).Encode(&buf); err != nil {
		t.Fatalf("encode ftyp: %v", err)
	}
	if err := init.Moov.Encode(&buf); err != nil {
		t.Fatalf("encode moov: %v", err)
	}
	if err := frag.Encode(&buf); err != nil {
		t.Fatalf("encode fragment: %v", err)
	}
	return buf.Bytes()
}

func TestProbeBytes_Fragmented(t *testing.T) {
	data := buildFragmented(t, 100, 25, 320, 240)

	info, err := ProbeBytes(data)
	if err != nil {
		t.Fatalf("ProbeBytes failed: %v", err)
	}

	if info.Codec != "av1" {
		t.Errorf("Codec = %q, want av1", info.Codec)
	}
	if info.Width != 320 || info.Height != 240 {
		t.Errorf("size = %dx%d, want 320x240", info.Width, info.Height)
	}
	if info.FrameCount != 100 {
		t.Errorf("FrameCount = %d, want 100", info.FrameCount)
	}
	if math.Abs(info.FPS-25) > 0.001 {
		t.Errorf("FPS = %v, want 25", info.FPS)
	}
	if info.Duration != 4*time.Second {
		t.Errorf("Duration = %v, want 4s", info.Duration)
	}
	if !info.Fragmented {
		t.Error("expected Fragmented")
	}
}

func TestProbeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.mp4")
	if err := os.WriteFile(path, buildFragmented(t, 30, 30, 64, 48), 0644); err != nil {
		t.Fatal(err)
	}

	info, err := ProbeFile(path)
	if err != nil {
		t.Fatalf("ProbeFile failed: %v", err)
	}
	if info.FrameCount != 30 || math.Abs(info.FPS-30) > 0.001 {
		t.Errorf("info = %+v", info)
	}
}

func TestProbeFile_Missing(t *testing.T) {
	if _, err := ProbeFile(filepath.Join(t.TempDir(), "missing.mp4")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestProbeBytes_Garbage(t *testing.T) {
	if _, err := ProbeBytes([]byte("definitely not an mp4 container")); err == nil {
		t.Error("expected error for garbage input")
	}
}

func TestProbeBytes_NoVideoTrack(t *testing.T) {
	init := mp4.CreateEmptyInit()
	init.AddEmptyTrack(48000, "audio", "en")

	var buf bytes.Buffer
	if err := mp4.NewFtyp("isom", 0x200, []string{"isom"}).Encode(&buf); err != nil {
		t.Fatal(err)
	}
	if err := init.Moov.Encode(&buf); err != nil {
		t.Fatal(err)
	}

	_, err := ProbeBytes(buf.Bytes())
	if !errors.Is(err, ErrNoVideoTrack) {
		t.Errorf("expected ErrNoVideoTrack, got %v", err)
	}
}

func TestCodecName(t *testing.T) {
	tests := map[string]string{
		"avc1": "h264", "avc3": "h264", "hvc1": "h265", "hev1": "h265", "av01": "av1", "vp09": "vp9", "mp4v": "mp4v",
	}
	for in, want := range tests {
		if got := codecName(in); got != want {
			t.Errorf("codecName(%q) = %q, want %q", in, got, want)
		}
	}
}
