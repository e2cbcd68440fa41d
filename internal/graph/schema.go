package graph

import (
	"context"
	_ "embed"
	"fmt"
	"runtime/debug"

	"github.com/graph-gophers/graphql-go"
	"github.com/rs/zerolog/log"
)

//go:embed schema.graphql
var SchemaSDL string

// Options tunes query execution limits.
type Options struct {
	MaxDepth       int
	MaxParallelism int
}

// NewSchema binds the SDL to the resolver tree. Binding fails fast when a
// schema field has no matching resolver method.
func NewSchema(r *Resolver, opts Options) (*graphql.Schema, error) {
	schemaOpts := []graphql.SchemaOpt{
		graphql.Logger(panicLogger{}),
	}
	if opts.MaxDepth > 0 {
		schemaOpts = append(schemaOpts, graphql.MaxDepth(opts.MaxDepth))
	}
	if opts.MaxParallelism > 0 {
		schemaOpts = append(schemaOpts, graphql.MaxParallelism(opts.MaxParallelism))
	}

	schema, err := graphql.ParseSchema(SchemaSDL, r, schemaOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse graphql schema: %w", err)
	}
	return schema, nil
}

// panicLogger reports resolver panics recovered by the engine.
type panicLogger struct{}

func (panicLogger) LogPanic(_ context.Context, value interface{}) {
	log.Error().
		Interface("panic", value).
		Bytes("stack", debug.Stack()).
		Msg("GraphQL resolver panic")
}
