package script

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"

	"github.com/archivist/substance/internal/document"
)

// DefaultTimeout bounds a single Run when no explicit timeout is set.
const DefaultTimeout = 5 * time.Second

// Engine executes Lua scripts against one document. Each Run opens a
// transaction, exposes it to the script through the doc table and
// commits on success; a failed script discards every staged change.
//
// The underlying Lua state is not goroutine-safe, so neither is the
// engine. Callers serialize Run themselves.
type Engine struct {
	doc     *document.Document
	L       *lua.LState
	timeout time.Duration
	log     zerolog.Logger

	tx     *document.Transaction
	closed bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithTimeout bounds each Run; a script still executing at the deadline
// is interrupted and its transaction discarded. Zero disables the
// bound.
func WithTimeout(d time.Duration) Option {
	return func(e *Engine) { e.timeout = d }
}

// WithLogger routes engine logging to the given logger.
func WithLogger(log zerolog.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// New creates an engine bound to a document.
func New(doc *document.Document, opts ...Option) (*Engine, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", document.ErrInvalidArgument)
	}
	e := &Engine{
		doc:     doc,
		timeout: DefaultTimeout,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	openLibraries(L)
	removeLoaders(L)
	e.L = L
	e.register()
	return e, nil
}

// openLibraries opens the safe subset of the Lua standard library.
// io, os, debug and package stay closed.
func openLibraries(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// removeLoaders strips the functions that load code from files or
// strings.
func removeLoaders(L *lua.LState) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
}

// Run executes a script inside a single transaction. On success the
// transaction commits and the resulting change event is returned; a
// script error, panic or timeout discards the staged changes and the
// document is left untouched.
func (e *Engine) Run(code string) (*document.ChangeEvent, error) {
	if e.closed {
		return nil, ErrEngineClosed
	}
	tx, err := e.doc.Begin()
	if err != nil {
		return nil, err
	}
	e.tx = tx
	defer func() { e.tx = nil }()

	if err := e.exec(code); err != nil {
		tx.Discard()
		e.log.Debug().Err(err).Msg("script failed")
		return nil, err
	}
	change, err := tx.Commit()
	if err != nil {
		return nil, err
	}
	e.log.Debug().Uint64("seq", change.Seq).Int("ops", len(change.Ops)).Msg("script committed")
	return change, nil
}

// exec runs the code with panic recovery and the configured deadline.
func (e *Engine) exec(code string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()
	if e.timeout <= 0 {
		return e.L.DoString(code)
	}
	ctx, cancel := context.WithTimeout(context.Background(), e.timeout)
	defer cancel()
	e.L.SetContext(ctx)
	defer e.L.RemoveContext()
	if err := e.L.DoString(code); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w after %s", ErrTimeout, e.timeout)
		}
		return err
	}
	return nil
}

// Document returns the bound document.
func (e *Engine) Document() *document.Document { return e.doc }

// IsClosed reports whether the engine has been closed.
func (e *Engine) IsClosed() bool { return e.closed }

// Close releases the Lua state. Further Runs return ErrEngineClosed.
func (e *Engine) Close() error {
	if e.closed {
		return nil
	}
	e.L.Close()
	e.closed = true
	return nil
}
