package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/bookshelf/internal/client/controllers"
	"github.com/dmitrijs2005/bookshelf/internal/client/ui"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// sender is what the REPL needs from the message loop. *ui.Program satisfies
// it; tests can provide a lightweight stub.
type sender interface {
	Send(msg ui.Msg) bool
}

// runREPL reads commands from reader and turns them into messages for s.
//
// It reads a line, parses the first token as the command and sends the
// matching messages. Commands that need more input (login, save) prompt for
// it first. Unknown commands are reported back to the user. The loop exits on
// EOF, when the user types "exit" or "quit", or when s stops accepting
// messages.
//
// Prompt & Commands
//
//	help              show available commands
//	login             authenticate (prompts for email and password)
//	dismiss           close the login alert
//	books             show saved books
//	refresh           reload saved books
//	remove <bookId>   remove a saved book
//	save              save a book (prompts for its fields)
//	bookmarks         list locally bookmarked ids
//	logout            log out
//	exit | quit       leave the program
func runREPL(s sender, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		printlnFn(fmt.Sprintf("bookshelf%s> ", statusFn()))
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			s.Send(ui.QuitMsg{})
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		var msgs []ui.Msg
		switch cmd {
		case "help":
			msgs = []ui.Msg{HelpMsg{}}

		case "login":
			m, err := promptLogin(reader, w)
			if err != nil {
				printlnFn("error:", err)
				continue
			}
			msgs = m

		case "dismiss":
			msgs = []ui.Msg{controllers.DismissAlertMsg{}}

		case "books", "l", "list":
			msgs = []ui.Msg{ShowBooksMsg{}}

		case "refresh":
			msgs = []ui.Msg{controllers.RefreshMsg{}}

		case "remove", "delete":
			if len(args) != 1 {
				printlnFn("Usage: remove <bookId>")
				continue
			}
			msgs = []ui.Msg{controllers.DeleteBookMsg{BookID: args[0]}}

		case "save":
			in, err := promptBook(reader, w)
			if err != nil {
				printlnFn("error:", err)
				continue
			}
			msgs = []ui.Msg{controllers.SaveBookMsg{Book: in}}

		case "bookmarks":
			msgs = []ui.Msg{BookmarksMsg{}}

		case "logout":
			msgs = []ui.Msg{LogoutMsg{}}

		case "exit", "quit":
			printlnFn("Bye!")
			s.Send(ui.QuitMsg{})
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		for _, m := range msgs {
			if !s.Send(m) {
				return
			}
		}
	}
}
