package pages

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
)

// Client is the slice of the host REST surface the paginator needs. disgo's
// rest.Rest satisfies it directly.
type Client interface {
	CreateMessage(channelID snowflake.ID, messageCreate discord.MessageCreate, opts ...rest.RequestOpt) (*discord.Message, error)
	UpdateMessage(channelID snowflake.ID, messageID snowflake.ID, messageUpdate discord.MessageUpdate, opts ...rest.RequestOpt) (*discord.Message, error)
	CreateInteractionResponse(interactionID snowflake.ID, interactionToken string, interactionResponse discord.InteractionResponse, opts ...rest.RequestOpt) error
	UpdateInteractionResponse(applicationID snowflake.ID, interactionToken string, messageUpdate discord.MessageUpdate, opts ...rest.RequestOpt) (*discord.Message, error)
	GetInteractionResponse(applicationID snowflake.ID, interactionToken string, opts ...rest.RequestOpt) (*discord.Message, error)
}

var _ Client = (rest.Rest)(nil)

// Interaction carries the fields of a component interaction the paginator
// needs to respond through the webhook edit route.
type Interaction struct {
	ID            snowflake.ID
	ApplicationID snowflake.ID
	Token         string
	User          discord.User
}

// messageRef is the handle to the rendered message, established after the
// first successful send/edit/respond.
type messageRef struct {
	channelID snowflake.ID
	messageID snowflake.ID
}
