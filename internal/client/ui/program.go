package ui

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/dmitrijs2005/bookshelf/internal/logging"
)

// Program runs a Model: it serializes messages, starts tasks and re-renders.
type Program struct {
	model  Model
	out    io.Writer
	logger logging.Logger

	msgs chan Msg
	done chan struct{}
	once sync.Once
	wg   sync.WaitGroup

	lastFrame []byte
}

type ProgramOption func(*Program)

func WithLogger(l logging.Logger) ProgramOption {
	return func(p *Program) { p.logger = l }
}

// NewProgram returns a Program that renders m to out.
func NewProgram(m Model, out io.Writer, opts ...ProgramOption) *Program {
	p := &Program{
		model:  m,
		out:    out,
		logger: logging.Discard(),
		msgs:   make(chan Msg, 16),
		done:   make(chan struct{}),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// Send delivers msg to the model. It is safe from any goroutine and returns
// false once the Program has stopped.
func (p *Program) Send(msg Msg) bool {
	select {
	case <-p.done:
		return false
	default:
	}
	select {
	case p.msgs <- msg:
		return true
	case <-p.done:
		return false
	}
}

// Run processes messages until a QuitMsg arrives or ctx is canceled. The
// initial message, if any, is delivered first. Tasks still running on exit
// are canceled and waited for.
func (p *Program) Run(ctx context.Context, initial Msg) error {
	taskCtx, cancel := context.WithCancel(ctx)
	defer func() {
		cancel()
		p.once.Do(func() { close(p.done) })
		p.wg.Wait()
	}()

	if initial != nil {
		if quit := p.handle(taskCtx, initial); quit {
			return nil
		}
	}
	p.render()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg := <-p.msgs:
			if quit := p.handle(taskCtx, msg); quit {
				return nil
			}
			p.render()
		}
	}
}

func (p *Program) handle(ctx context.Context, msg Msg) (quit bool) {
	switch v := msg.(type) {
	case nil:
	case QuitMsg:
		return true
	case BatchMsg:
		for _, c := range v {
			p.start(ctx, c)
		}
	default:
		p.start(ctx, p.model.Update(msg))
	}
	return false
}

func (p *Program) start(ctx context.Context, c Cmd) {
	if c == nil {
		return
	}
	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		msg := c(ctx)
		if msg == nil {
			return
		}
		if !p.Send(msg) {
			p.logger.Debug(ctx, "dropping message after shutdown")
		}
	}()
}

// render writes the model's screen when it differs from the last one.
func (p *Program) render() {
	var buf bytes.Buffer
	p.model.Render(&buf)
	if bytes.Equal(buf.Bytes(), p.lastFrame) {
		return
	}
	p.lastFrame = append(p.lastFrame[:0], buf.Bytes()...)
	_, _ = p.out.Write(buf.Bytes())
}
