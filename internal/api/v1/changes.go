package v1

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/gosuda/boardlive/internal/relay"
	redisstore "github.com/gosuda/boardlive/internal/store/redis"
)

// notifyChange publishes a refresh-board frame on the board's change channel.
// The mutation has already committed by the time this runs, so a publish
// failure is logged and otherwise ignored; participants reconcile on the next
// change notification.
func notifyChange(ctx context.Context, pub ChangePublisher, boardID uuid.UUID, message, userName string) {
	frame, err := relay.EncodeRefreshBoard(message, userName)
	if err != nil {
		log.Error().Err(err).Msg("failed to encode refresh frame")
		return
	}
	if err := pub.Publish(ctx, redisstore.BoardChannel(boardID), frame); err != nil {
		log.Warn().Err(err).Str("board_id", boardID.String()).Msg("failed to publish board change")
	}
}
