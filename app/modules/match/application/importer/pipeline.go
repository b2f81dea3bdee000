package importer

import (
	"context"
	"errors"

	"github.com/Black-And-White-Club/league-admin/app/modules/match/application/parsers"
)

// Stage names a step of an import run.
type Stage string

const (
	StageParsing    Stage = "parsing"
	StageValidating Stage = "validating"
	StageResolving  Stage = "resolving"
	StageMapping    Stage = "mapping"
	StageWriting    Stage = "writing"
	StageDone       Stage = "done"
)

// State is a pipeline state. A non-nil Err marks the Failed state reached
// from Stage.
type State struct {
	Stage Stage
	Err   error
}

// Failed reports whether the state is terminal due to an error.
func (s State) Failed() bool { return s.Err != nil }

// Observer receives every state the pipeline enters.
type Observer func(ctx context.Context, state State)

// MatchWriter persists a fully mapped batch as a single operation.
type MatchWriter interface {
	CreateMatches(ctx context.Context, leagueID string, matches []Match) (int, error)
}

// Request is one import invocation. Teams and Venues are read-only
// snapshots fetched by the caller.
type Request struct {
	FileName    string
	Data        []byte
	LeagueID    string
	Competition string
	Teams       []TeamRef
	Venues      []VenueRef
}

// Result is the outcome of a successful run.
type Result struct {
	Created int
	Matches []Match
}

// Pipeline runs Parsing → Validating → Resolving → Mapping → Writing.
// The writer is only called once every earlier stage has succeeded.
type Pipeline struct {
	parsers  parsers.ParserFactory
	writer   MatchWriter
	mapper   *Mapper
	observer Observer
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithObserver registers a state observer.
func WithObserver(o Observer) Option {
	return func(p *Pipeline) { p.observer = o }
}

// WithMapper replaces the default mapper.
func WithMapper(m *Mapper) Option {
	return func(p *Pipeline) { p.mapper = m }
}

// NewPipeline creates a pipeline writing through writer.
func NewPipeline(factory parsers.ParserFactory, writer MatchWriter, opts ...Option) *Pipeline {
	p := &Pipeline{
		parsers: factory,
		writer:  writer,
		mapper:  NewMapper(nil, nil),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run executes one import. Errors are *StageError values wrapping the typed
// import error of the failing stage.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	p.enter(ctx, StageParsing)
	sheet, err := p.parse(req)
	if err != nil {
		return nil, p.fail(ctx, StageParsing, err)
	}

	p.enter(ctx, StageValidating)
	rows, err := Validate(sheet)
	if err != nil {
		return nil, p.fail(ctx, StageValidating, err)
	}

	p.enter(ctx, StageResolving)
	resolved, err := NewResolver(req.Teams, req.Venues).Resolve(rows)
	if err != nil {
		return nil, p.fail(ctx, StageResolving, err)
	}

	p.enter(ctx, StageMapping)
	matches, err := p.mapper.Map(resolved, Batch{LeagueID: req.LeagueID, Competition: req.Competition})
	if err != nil {
		return nil, p.fail(ctx, StageMapping, err)
	}

	p.enter(ctx, StageWriting)
	created, err := p.writer.CreateMatches(ctx, req.LeagueID, matches)
	if err != nil {
		var we *WriteError
		if !errors.As(err, &we) {
			err = &WriteError{Err: err}
		}
		return nil, p.fail(ctx, StageWriting, err)
	}

	p.enter(ctx, StageDone)
	return &Result{Created: created, Matches: matches}, nil
}

func (p *Pipeline) parse(req Request) (*parsers.Sheet, error) {
	parser, err := p.parsers.GetParser(req.FileName)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	sheet, err := parser.Parse(req.Data)
	if err != nil {
		if errors.Is(err, parsers.ErrEmptyFile) {
			return nil, EmptyFileError{}
		}
		return nil, &ParseError{Err: err}
	}
	return sheet, nil
}

func (p *Pipeline) enter(ctx context.Context, stage Stage) {
	if p.observer != nil {
		p.observer(ctx, State{Stage: stage})
	}
}

func (p *Pipeline) fail(ctx context.Context, stage Stage, err error) error {
	if p.observer != nil {
		p.observer(ctx, State{Stage: stage, Err: err})
	}
	return &StageError{Stage: stage, Err: err}
}
