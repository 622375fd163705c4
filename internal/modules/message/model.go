// README: Message model for rider/driver conversations.
package message

import (
	"time"

	"carpool/internal/types"
)

type Message struct {
	ID          types.ID  `json:"id"`
	SenderPhone string    `json:"sender_phone"`
	SenderName  string    `json:"sender_name"`
	PeerPhone   string    `json:"peer_phone"`
	Body        string    `json:"body"`
	CreatedAt   time.Time `json:"created_at"`
}
