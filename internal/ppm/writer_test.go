package ppm

import (
	"bytes"
	"errors"
	"image/color"
	"testing"
)

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Grid{{1, 2, 3}, {4, 5, 6}}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	want := "P3\n1 2\n255\n1 2 3\n4 5 6\n"
	if buf.String() != want {
		t.Errorf("Write output:\ngot  %q\nwant %q", buf.String(), want)
	}
}

func TestWrite_WideRow(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Grid{{0, 10, 255, 128, 64, 32}}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	want := "P3\n2 1\n255\n0 10 255 128 64 32\n"
	if buf.String() != want {
		t.Errorf("Write output:\ngot  %q\nwant %q", buf.String(), want)
	}
}

func TestWrite_NullSink(t *testing.T) {
	err := Write(nil, Grid{{1, 2, 3}})
	if !errors.Is(err, ErrNullSink) {
		t.Errorf("Write(nil): got %v, want ErrNullSink", err)
	}

	var buf *bytes.Buffer
	if err := Write(buf, Grid{{1, 2, 3}}); !errors.Is(err, ErrNullSink) {
		t.Errorf("Write((*bytes.Buffer)(nil)): got %v, want ErrNullSink", err)
	}
}

func TestWrite_RejectsBadGrids(t *testing.T) {
	tests := []struct {
		name    string
		grid    Grid
		wantErr error
	}{
		{"nil grid", nil, ErrNullGrid},
		{"invalid shape", Grid{{1, 2, 3, 4}}, ErrInvalidShape},
		{"jagged", Grid{{1, 2, 3}, {4, 5}}, ErrJaggedShape},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := Write(&buf, tt.grid)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("got %v, want %v", err, tt.wantErr)
			}
			if buf.Len() != 0 {
				t.Errorf("rejected grid produced output %q", buf.String())
			}
		})
	}
}

type errWriter struct{ err error }

func (w errWriter) Write([]byte) (int, error) { return 0, w.err }

func TestWrite_SinkErrorSurfaces(t *testing.T) {
	boom := errors.New("sink closed")
	err := Write(errWriter{boom}, Grid{{1, 2, 3}})
	if !errors.Is(err, boom) {
		t.Errorf("Write: got %v, want %v", err, boom)
	}
}

func TestGrid_Image(t *testing.T) {
	g := Grid{{255, 0, 0, 0, 255, 0}, {0, 0, 255, 10, 20, 30}}
	img := g.Image()

	b := img.Bounds()
	if b.Dx() != 2 || b.Dy() != 2 {
		t.Fatalf("bounds: got %dx%d, want 2x2", b.Dx(), b.Dy())
	}

	got := img.NRGBAAt(1, 1)
	want := color.NRGBA{10, 20, 30, 255}
	if got != want {
		t.Errorf("NRGBAAt(1,1): got %v, want %v", got, want)
	}

	if back := FromImage(img); !back.Equal(g) {
		t.Errorf("FromImage(Image()): got %v, want %v", back, g)
	}
}

func TestGrid_ImageClamps(t *testing.T) {
	img := Grid{{-5, 300, 100}}.Image()
	got := img.NRGBAAt(0, 0)
	if got.R != 0 || got.G != 255 || got.B != 100 {
		t.Errorf("clamped pixel: got %v, want {0 255 100 255}", got)
	}
}
