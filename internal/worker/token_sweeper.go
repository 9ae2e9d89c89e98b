package worker

// token_sweeper.go
// Background goroutine that periodically deletes expired session tokens so
// the tokens table does not grow without bound.

import (
	"context"
	"time"

	"github.com/Joan074/SellPoint/internal/repository"

	"github.com/rs/zerolog/log"
)

const sweepInterval = 1 * time.Hour

// StartTokenSweeper launches a goroutine that ticks every hour and removes
// tokens whose expiration is in the past. Respects ctx for graceful shutdown.
func StartTokenSweeper(ctx context.Context, tokenRepo repository.TokenRepository) {
	go func() {
		ticker := time.NewTicker(sweepInterval)
		defer ticker.Stop()

		log.Info().Msg("token_sweeper: started")

		for {
			select {
			case <-ctx.Done():
				log.Info().Msg("token_sweeper: shutting down")
				return
			case <-ticker.C:
				deleted, err := tokenRepo.EliminarExpirados(ctx, time.Now())
				if err != nil {
					log.Error().Err(err).Msg("token_sweeper: failed to delete expired tokens")
					continue
				}
				if deleted > 0 {
					log.Info().Int64("deleted", deleted).Msg("token_sweeper: expired tokens removed")
				}
			}
		}
	}()
}
