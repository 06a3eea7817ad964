// Package ui is a small message loop for the terminal screens. A Model
// receives messages (user input, results of finished tasks) in Update and
// may return a Cmd: a task the Program runs in its own goroutine, whose
// result message is fed back into Update. The Program is the only goroutine
// that calls Update and Render, so models need no locking.
package ui

import (
	"context"
	"io"
)

// Msg is anything a model reacts to.
type Msg any

// Cmd is an asynchronous task. It returns the message to deliver when done,
// or nil for none.
type Cmd func(ctx context.Context) Msg

// Model is a screen: its state, its transitions and its text rendering.
type Model interface {
	Update(msg Msg) Cmd
	Render(w io.Writer)
}

// QuitMsg stops the Program.
type QuitMsg struct{}

// Quit is a Cmd that stops the Program.
func Quit(context.Context) Msg { return QuitMsg{} }

// BatchMsg carries several commands to run concurrently.
type BatchMsg []Cmd

// Batch combines cmds, skipping nil ones.
func Batch(cmds ...Cmd) Cmd {
	var valid []Cmd
	for _, c := range cmds {
		if c != nil {
			valid = append(valid, c)
		}
	}
	switch len(valid) {
	case 0:
		return nil
	case 1:
		return valid[0]
	}
	return func(context.Context) Msg { return BatchMsg(valid) }
}

// Emit returns a Cmd that delivers msg.
func Emit(msg Msg) Cmd {
	return func(context.Context) Msg { return msg }
}

// Drain feeds msg to m and then runs every resulting Cmd synchronously, in
// order, until none is left. It is the single-threaded counterpart of
// Program, used for scripted runs. It stops at QuitMsg.
func Drain(ctx context.Context, m Model, msg Msg) {
	queue := []Msg{msg}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		var cmds []Cmd
		switch v := next.(type) {
		case nil:
			continue
		case QuitMsg:
			return
		case BatchMsg:
			cmds = v
		default:
			if c := m.Update(next); c != nil {
				cmds = []Cmd{c}
			}
		}
		for _, c := range cmds {
			queue = append(queue, c(ctx))
		}
	}
}
