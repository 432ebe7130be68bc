package render

import (
	"context"
	"image"
	"log/slog"
	"math/rand/v2"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/echoflaresat/raytrace/colors"
	"github.com/echoflaresat/raytrace/objects"
	"github.com/echoflaresat/raytrace/vectors"
)

// Tracer resolves a camera ray into a result. *scene.Scene implements it.
type Tracer interface {
	Render(ray vectors.Ray, depth int, rng *rand.Rand) objects.Result
}

// Buffer is a row-major grid of linear colours.
type Buffer struct {
	Width  int
	Height int
	Pix    []colors.Color4
}

func NewBuffer(width, height int) *Buffer {
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]colors.Color4, width*height),
	}
}

func (b *Buffer) At(x, y int) colors.Color4 {
	return b.Pix[y*b.Width+x]
}

func (b *Buffer) Set(x, y int, c colors.Color4) {
	b.Pix[y*b.Width+x] = c
}

// Image clamps every colour to [0,1] and converts the buffer to 8-bit NRGBA.
func (b *Buffer) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			img.SetNRGBA(x, y, b.At(x, y).ToNRGBA())
		}
	}
	return img
}

// CreateBuffer renders every pixel using all available CPUs.
func (c Camera) CreateBuffer(t Tracer) *Buffer {
	buf, _ := c.CreateBufferContext(context.Background(), t, runtime.GOMAXPROCS(0))
	return buf
}

// CreateBufferContext renders the image one row per task on at most workers
// goroutines. Every pixel draws from its own generator seeded by (Seed, pixel
// index), so the output does not depend on the worker count. Cancelling ctx
// stops scheduling rows and returns ctx's error.
func (c Camera) CreateBufferContext(ctx context.Context, t Tracer, workers int) (*Buffer, error) {
	if workers < 1 {
		workers = 1
	}
	buf := NewBuffer(c.Width, c.Height)
	p := newProgress(c.Height)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for y := 0; y < c.Height; y++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			c.renderRow(t, buf, y)
			p.rowDone()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return buf, nil
}

func (c Camera) renderRow(t Tracer, buf *Buffer, y int) {
	for x := 0; x < c.Width; x++ {
		idx := uint64(y*c.Width + x)
		rng := rand.New(rand.NewPCG(c.Seed, idx))
		res := t.Render(c.ComputeRay(x, y), 0, rng)
		buf.Set(x, y, res.Colour)
	}
}

// progress logs completed rows at 10% milestones.
type progress struct {
	mu        sync.Mutex
	total     int
	done      int
	milestone int
}

func newProgress(total int) *progress {
	return &progress{total: total}
}

func (p *progress) rowDone() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
	pct := p.done * 100 / p.total
	for pct >= p.milestone && p.milestone <= 100 {
		slog.Debug("render progress", "percent", p.milestone, "rows", p.done, "total", p.total)
		p.milestone += 10
	}
}
