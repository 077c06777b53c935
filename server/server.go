// Package server exposes move generation and stored games over HTTP.
package server

import (
	"bytes"
	"context"
	stderrors "errors"
	"net/http"
	"path"
	"sync"

	"github.com/apex/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	uuid "github.com/satori/go.uuid"

	"github.com/edjones079/chess-ai-engine/board"
	"github.com/edjones079/chess-ai-engine/compat"
	"github.com/edjones079/chess-ai-engine/internal/errors"
	"github.com/edjones079/chess-ai-engine/movegen"
	"github.com/edjones079/chess-ai-engine/render"
	"github.com/edjones079/chess-ai-engine/store"
)

// Server wires the generator and a store into an echo handler.
type Server struct {
	cfg   Config
	gen   *movegen.Generator
	store store.Store
	echo  *echo.Echo

	// mu serialises load-play-save on stored games.
	mu sync.Mutex
}

// New builds the generator described by cfg and the HTTP routes.
func New(cfg Config, st store.Store) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	tables := movegen.NewTables()
	var opts []movegen.Option
	if cfg.UseMagics {
		m, err := movegen.BuildMagics(tables, cfg.MagicSeed)
		if err != nil {
			return nil, err
		}
		opts = append(opts, movegen.WithMagics(m))
	}
	s := &Server{cfg: cfg, gen: movegen.NewGenerator(tables, opts...), store: st}
	s.echo = s.routes()
	return s, nil
}

// Handler returns the echo instance serving the API.
func (s *Server) Handler() *echo.Echo { return s.echo }

// Start listens on cfg.Addr until Shutdown is called.
func (s *Server) Start() error {
	s.echo.Use(middleware.Logger())
	log.WithFields(log.Fields{"addr": s.cfg.Addr, "magics": s.gen.UsesMagics()}).Info("server: listening")
	return s.echo.Start(s.cfg.Addr)
}

// Shutdown stops the listener, waiting at most cfg.ShutdownTimeout for
// in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ShutdownTimeout)
	defer cancel()
	return s.echo.Shutdown(ctx)
}

type moveResponse struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Piece string `json:"piece"`
}

type movesResponse struct {
	Href  string
	FEN   string
	Side  string
	Moves []moveResponse
	Count int
}

type gameDocument struct {
	ID    uuid.UUID
	FEN   string
	State string
	Side  string
	Plies int
	Moves []moveResponse
}

type gameResponse struct {
	Href string
	Game gameDocument
}

type gamesResponse struct {
	Href  string
	Games []gameDocument
}

type targetsResponse struct {
	Href    string
	From    string
	Movable bool
	Targets []string
}

type createRequest struct {
	FEN string `json:"fen"`
}

type playRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
	Move string `json:"move"`
}

func movesOf(moves []movegen.Move) []moveResponse {
	out := make([]moveResponse, len(moves))
	for i, m := range moves {
		out[i] = moveResponse{From: m.From.String(), To: m.To.String(), Piece: m.Piece.String()}
	}
	return out
}

func documentOf(g *board.Game) gameDocument {
	b := g.Board()
	return gameDocument{
		ID:    g.ID,
		FEN:   b.ToFEN(),
		State: b.StateString(),
		Side:  b.SideToMove().String(),
		Plies: g.Plies(),
		Moves: movesOf(g.Moves()),
	}
}

func gameHref(id uuid.UUID) string { return path.Join("/games", id.String()) }

func errToHTTP(err error) error {
	switch {
	case stderrors.Is(err, errors.ErrGameNotFound):
		return echo.ErrNotFound
	case stderrors.Is(err, errors.ErrInvalidFEN),
		stderrors.Is(err, errors.ErrInvalidState),
		stderrors.Is(err, errors.ErrInvalidSquare),
		stderrors.Is(err, errors.ErrInvalidSide),
		stderrors.Is(err, errors.ErrIllegalMove),
		stderrors.Is(err, errors.ErrWrongSide):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return err
}

func requestID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.FromString(c.Param("id"))
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return id, nil
}

func (s *Server) loadGame(c echo.Context) (*board.Game, error) {
	id, err := requestID(c)
	if err != nil {
		return nil, err
	}
	snap, err := s.store.Get(c.Request().Context(), id)
	if err != nil {
		return nil, errToHTTP(err)
	}
	g, err := board.RestoreGame(s.gen, snap)
	if err != nil {
		return nil, errToHTTP(err)
	}
	return g, nil
}

func (s *Server) routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.GET("/moves", s.getMoves)
	e.GET("/games", s.listGames)
	e.POST("/games", s.createGame)
	e.GET("/games/:id", s.getGame)
	e.PUT("/games/:id", s.playMove)
	e.GET("/games/:id/moves", s.getTargets)
	e.GET("/games/:id/board.svg", s.getBoardSVG)

	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.Secure())

	return e
}

func (s *Server) getMoves(c echo.Context) error {
	fen := c.QueryParam("fen")
	if fen == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "missing fen query parameter")
	}
	probe, side, err := compat.FromFEN(fen)
	if err != nil {
		return errToHTTP(err)
	}
	if override := c.QueryParam("side"); override != "" {
		if side, err = movegen.ParseSide(override); err != nil {
			return errToHTTP(err)
		}
	}
	moves := s.gen.GenerateAllMoves(probe, side)
	return c.JSON(http.StatusOK, movesResponse{
		Href:  c.Request().URL.String(),
		FEN:   fen,
		Side:  side.String(),
		Moves: movesOf(moves),
		Count: len(moves),
	})
}

func (s *Server) listGames(c echo.Context) error {
	snaps, err := s.store.List(c.Request().Context())
	if err != nil {
		return errToHTTP(err)
	}
	docs := make([]gameDocument, 0, len(snaps))
	for _, snap := range snaps {
		g, err := board.RestoreGame(s.gen, snap)
		if err != nil {
			return errToHTTP(err)
		}
		docs = append(docs, documentOf(g))
	}
	return c.JSON(http.StatusOK, gamesResponse{Href: "/games", Games: docs})
}

func (s *Server) createGame(c echo.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	b := board.StartPosition()
	if req.FEN != "" {
		var err error
		if b, err = board.ParseFEN(req.FEN); err != nil {
			return errToHTTP(err)
		}
	}
	g := board.NewGame(s.gen, b)
	if err := s.store.Create(c.Request().Context(), g.Snapshot()); err != nil {
		return errToHTTP(err)
	}
	log.WithField("game", g.ID.String()).Info("server: game created")
	return c.JSON(http.StatusCreated, gameResponse{Href: gameHref(g.ID), Game: documentOf(g)})
}

func (s *Server) getGame(c echo.Context) error {
	g, err := s.loadGame(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, gameResponse{Href: gameHref(g.ID), Game: documentOf(g)})
}

func (s *Server) playMove(c echo.Context) error {
	var req playRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if req.Move == "" {
		req.Move = req.From + req.To
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	g, err := s.loadGame(c)
	if err != nil {
		return err
	}
	if _, _, err := g.PlayString(req.Move); err != nil {
		return errToHTTP(err)
	}
	if err := s.store.Update(c.Request().Context(), g.Snapshot()); err != nil {
		return errToHTTP(err)
	}
	return c.JSON(http.StatusOK, gameResponse{Href: gameHref(g.ID), Game: documentOf(g)})
}

func parseFrom(c echo.Context) (movegen.Square, bool, error) {
	from := c.QueryParam("from")
	if from == "" {
		return movegen.NoSquare, false, nil
	}
	sq, err := movegen.ParseSquare(from)
	if err != nil {
		return movegen.NoSquare, false, errToHTTP(err)
	}
	return sq, true, nil
}

func (s *Server) getTargets(c echo.Context) error {
	g, err := s.loadGame(c)
	if err != nil {
		return err
	}
	from, ok, err := parseFrom(c)
	if err != nil {
		return err
	}
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, "missing from query parameter")
	}
	movable := g.CanMoveFrom(from)
	targets := make([]string, 0)
	for _, sq := range g.Highlights().Squares() {
		targets = append(targets, sq.String())
	}
	return c.JSON(http.StatusOK, targetsResponse{
		Href:    path.Join(gameHref(g.ID), "moves"),
		From:    from.String(),
		Movable: movable,
		Targets: targets,
	})
}

func (s *Server) getBoardSVG(c echo.Context) error {
	g, err := s.loadGame(c)
	if err != nil {
		return err
	}
	from, ok, err := parseFrom(c)
	if err != nil {
		return err
	}
	if ok {
		g.CanMoveFrom(from)
	}
	var buf bytes.Buffer
	render.SVG(&buf, g.Board(), g.Highlights(), render.DefaultOptions())
	return c.Blob(http.StatusOK, "image/svg+xml", buf.Bytes())
}
