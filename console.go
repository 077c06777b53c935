package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"

	"github.com/edjones079/chess-ai-engine/board"
	"github.com/edjones079/chess-ai-engine/movegen"
)

func main() {
	log.SetHandler(cli.New(os.Stderr))
	consoleLoop(os.Stdin, os.Stdout, movegen.NewGenerator(nil))
}

// consoleLoop reads one command per line from in until "quit" or EOF.
func consoleLoop(in io.Reader, out io.Writer, gen *movegen.Generator) {
	scanner := bufio.NewScanner(in)
	game := board.NewGame(gen, board.StartPosition())
	for scanner.Scan() {
		line := scanner.Text()
		tokens := strings.Fields(line)
		if len(tokens) == 0 { // ignore blank lines
			continue
		}
		switch strings.ToLower(tokens[0]) {
		case "quit":
			return
		case "position":
			if g := setPosition(out, gen, tokens[1:]); g != nil {
				game = g
			}
		case "moves":
			moves := game.Moves()
			names := make([]string, len(moves))
			for i, m := range moves {
				names[i] = m.String()
			}
			fmt.Fprintln(out, strings.Join(names, " "))
			fmt.Fprintln(out, "count", len(moves))
		case "from":
			if len(tokens) < 2 {
				fmt.Fprintln(out, "info string Malformed from command")
				continue
			}
			sq, err := movegen.ParseSquare(tokens[1])
			if err != nil {
				fmt.Fprintln(out, "info string", err)
				continue
			}
			if !game.CanMoveFrom(sq) {
				fmt.Fprintln(out, "none")
				continue
			}
			var targets []string
			for _, t := range game.Highlights().Squares() {
				targets = append(targets, t.String())
			}
			fmt.Fprintln(out, strings.Join(targets, " "))
		case "move":
			if len(tokens) < 2 {
				fmt.Fprintln(out, "info string Malformed move command")
				continue
			}
			m, captured, err := game.PlayString(tokens[1])
			if err != nil {
				fmt.Fprintln(out, "info string", err)
				continue
			}
			if captured != board.NoPiece {
				fmt.Fprintf(out, "%s captures %s\n", m, captured)
			} else {
				fmt.Fprintln(out, m)
			}
		case "d":
			fmt.Fprint(out, game.Board())
			fmt.Fprintln(out, "Fen:", game.Board().ToFEN())
			fmt.Fprintf(out, "Hash: %016x\n", game.Board().Hash())
		case "state":
			fmt.Fprintln(out, game.Board().StateString())
		case "fen":
			fmt.Fprintln(out, game.Board().ToFEN())
		default:
			fmt.Fprintln(out, "info string Unknown command:", line)
		}
	}
}

// setPosition handles "startpos [moves ...]" and "fen <fields> [moves ...]".
func setPosition(out io.Writer, gen *movegen.Generator, args []string) *board.Game {
	if len(args) == 0 {
		fmt.Fprintln(out, "info string Malformed position command")
		return nil
	}
	var b *board.Board
	rest := args[1:]
	switch strings.ToLower(args[0]) {
	case "startpos":
		b = board.StartPosition()
	case "fen":
		end := len(rest)
		for i, tok := range rest {
			if strings.ToLower(tok) == "moves" {
				end = i
				break
			}
		}
		var err error
		if b, err = board.ParseFEN(strings.Join(rest[:end], " ")); err != nil {
			fmt.Fprintln(out, "info string", err)
			return nil
		}
		rest = rest[end:]
	default:
		fmt.Fprintln(out, "info string Unknown position type:", args[0])
		return nil
	}

	game := board.NewGame(gen, b)
	if len(rest) == 0 || strings.ToLower(rest[0]) != "moves" {
		return game
	}
	for _, mv := range rest[1:] {
		if _, _, err := game.PlayString(mv); err != nil {
			fmt.Fprintln(out, "info string Move", mv, "not played:", err)
		}
	}
	return game
}
