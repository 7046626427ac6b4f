package capture

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"os/exec"
	"time"
)

// ffmpegSource shells out to ffmpeg to decode a network stream into raw
// BGR24 frames, used when the native/MJPEG readers can't open a stream
// directly. Grounded on ffmpeg_pipe.py's FFmpegPipe.
type ffmpegSource struct {
	cmd     *exec.Cmd
	stdout  *bufio.Reader
	width   int
	height  int
	frameSz int
}

const (
	ffmpegDefaultWidth  = 1280
	ffmpegDefaultHeight = 720
)

func newFFmpegSource(src string) (Source, error) {
	w, h := ffmpegDefaultWidth, ffmpegDefaultHeight
	cmd := exec.Command("ffmpeg",
		"-hide_banner", "-loglevel", "error",
		"-i", src,
		"-f", "rawvideo",
		"-pix_fmt", "bgr24",
		"-vf", fmt.Sprintf("scale=%d:%d", w, h),
		"-",
	)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("capture: ffmpeg stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("capture: ffmpeg start: %w", err)
	}
	return &ffmpegSource{
		cmd:     cmd,
		stdout:  bufio.NewReaderSize(stdout, 1<<20),
		width:   w,
		height:  h,
		frameSz: w * h * 3,
	}, nil
}

func (s *ffmpegSource) Read() (RawFrame, bool, error) {
	raw := make([]byte, s.frameSz)
	if _, err := io.ReadFull(s.stdout, raw); err != nil {
		return RawFrame{}, false, nil
	}

	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	for y := 0; y < s.height; y++ {
		for x := 0; x < s.width; x++ {
			i := (y*s.width + x) * 3
			b, g, r := raw[i], raw[i+1], raw[i+2]
			img.Set(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return RawFrame{Image: img, Timestamp: time.Now()}, true, nil
}

func (s *ffmpegSource) Opened() bool {
	return s.cmd.ProcessState == nil
}

func (s *ffmpegSource) Release() {
	if s.cmd.Process != nil && s.cmd.ProcessState == nil {
		_ = s.cmd.Process.Kill()
	}
	_ = s.cmd.Wait()
}
