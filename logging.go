package simstore

import (
	"context"

	"go.uber.org/zap"
)

func LoggingMiddleware(log *zap.Logger) ServiceMiddleware {
	log = log.With(
		zap.String("service", "simstore"),
	)

	return func(next Service) Service {
		log.Info("service initialized")

		return &loggingMiddleware{
			log:  log,
			next: next,
		}
	}
}

type loggingMiddleware struct {
	log  *zap.Logger
	next Service
}

func (mw *loggingMiddleware) Close() error {
	log := mw.log.With(
		zap.String("action", "close"),
	)

	err := mw.next.Close()
	if err != nil {
		log.Error(err.Error())
		return err
	}

	log.Info("service closed")
	return nil
}

func (mw *loggingMiddleware) Put(ctx context.Context, owner string, items []string) error {
	log := mw.log.With(
		zap.String("action", "put"),
		zap.String("user_name", owner),
		zap.Int("count", len(items)),
	)

	err := mw.next.Put(ctx, owner, items)
	if err != nil {
		log.Error(err.Error())
		return err
	}

	log.Info("strings stored")
	return nil
}

func (mw *loggingMiddleware) Query(ctx context.Context, owner string, text string) (*Match, error) {
	log := mw.log.With(
		zap.String("action", "query"),
		zap.String("user_name", owner),
		zap.String("query", text),
	)

	match, err := mw.next.Query(ctx, owner, text)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}

	log.Info("most similar string found",
		zap.Int("index", match.Index),
		zap.Float64("score", match.Score),
	)

	return match, nil
}
