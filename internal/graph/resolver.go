// Package graph binds the GraphQL schema to the domain services. Resolvers
// translate arguments into service requests and wrap models for output;
// they hold no state of their own.
package graph

import (
	"time"

	authorService "bookstore-graphql/internal/domains/author/service"
	bookService "bookstore-graphql/internal/domains/book/service"
	reviewService "bookstore-graphql/internal/domains/review/service"
	"bookstore-graphql/internal/infrastructure/metrics"
	"bookstore-graphql/internal/shared/apperror"

	"github.com/rs/zerolog/log"
)

const codeOK = "OK"

// Resolver is the root of the resolver tree. It serves both Query and
// Mutation fields.
type Resolver struct {
	authors authorService.ServiceInterface
	books   bookService.ServiceInterface
	reviews reviewService.ServiceInterface
	metrics *metrics.Metrics
}

func NewResolver(
	authors authorService.ServiceInterface,
	books bookService.ServiceInterface,
	reviews reviewService.ServiceInterface,
	m *metrics.Metrics,
) *Resolver {
	return &Resolver{
		authors: authors,
		books:   books,
		reviews: reviews,
		metrics: m,
	}
}

// track is deferred by every resolver that can fail. It tags *err with an
// apperror kind so the engine renders extensions.code, logs the cause and
// records the call.
func (r *Resolver) track(field string, start time.Time, err *error) {
	code := codeOK
	if *err != nil {
		appErr := apperror.Wrap(field, *err)
		*err = appErr
		code = string(appErr.Kind)

		event := log.Warn()
		if appErr.Kind == apperror.KindStoreFailure {
			event = log.Error()
		}
		event.
			Err(appErr.Err).
			Str("field", field).
			Str("op", appErr.Op).
			Str("kind", code).
			Msg(appErr.Error())
	}

	if r.metrics != nil {
		r.metrics.ObserveResolver(field, code, time.Since(start))
	}
}
