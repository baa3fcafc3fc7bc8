package pages

import (
	"sync"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"github.com/pkg/errors"
)

// fakeClient records transport calls instead of hitting Discord.
type fakeClient struct {
	mu sync.Mutex

	created         []discord.MessageCreate
	updated         []discord.MessageUpdate
	responses       []discord.InteractionResponse
	webhookUpdates  []discord.MessageUpdate
	failUpdates     bool
	failResponses   bool
	nextMessageID   snowflake.ID
	lastChannelID   snowflake.ID
	lastMessageID   snowflake.ID
	ephemeralLast   bool
	responseMessage *discord.Message
}

var errFakeTransport = errors.New("message no longer exists")

func newFakeClient() *fakeClient {
	return &fakeClient{nextMessageID: 1000}
}

func (f *fakeClient) message(channelID snowflake.ID) *discord.Message {
	f.nextMessageID++
	return &discord.Message{ID: f.nextMessageID, ChannelID: channelID}
}

func (f *fakeClient) CreateMessage(channelID snowflake.ID, messageCreate discord.MessageCreate, _ ...rest.RequestOpt) (*discord.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, messageCreate)
	f.lastChannelID = channelID
	msg := f.message(channelID)
	f.lastMessageID = msg.ID
	return msg, nil
}

func (f *fakeClient) UpdateMessage(channelID snowflake.ID, messageID snowflake.ID, messageUpdate discord.MessageUpdate, _ ...rest.RequestOpt) (*discord.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpdates {
		return nil, errFakeTransport
	}
	f.updated = append(f.updated, messageUpdate)
	f.lastChannelID = channelID
	f.lastMessageID = messageID
	return &discord.Message{ID: messageID, ChannelID: channelID}, nil
}

func (f *fakeClient) CreateInteractionResponse(_ snowflake.ID, _ string, interactionResponse discord.InteractionResponse, _ ...rest.RequestOpt) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failResponses {
		return errFakeTransport
	}
	f.responses = append(f.responses, interactionResponse)
	if data, ok := interactionResponse.Data.(discord.MessageCreate); ok {
		f.ephemeralLast = data.Flags.Has(discord.MessageFlagEphemeral)
	}
	return nil
}

func (f *fakeClient) UpdateInteractionResponse(_ snowflake.ID, _ string, messageUpdate discord.MessageUpdate, _ ...rest.RequestOpt) (*discord.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpdates {
		return nil, errFakeTransport
	}
	f.webhookUpdates = append(f.webhookUpdates, messageUpdate)
	msg := f.message(f.lastChannelID)
	f.lastMessageID = msg.ID
	return msg, nil
}

func (f *fakeClient) GetInteractionResponse(_ snowflake.ID, _ string, _ ...rest.RequestOpt) (*discord.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.responseMessage != nil {
		return f.responseMessage, nil
	}
	return f.message(f.lastChannelID), nil
}

func (f *fakeClient) updateCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.updated) + len(f.webhookUpdates)
}

func (f *fakeClient) lastUpdate() discord.MessageUpdate {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.webhookUpdates) > 0 {
		return f.webhookUpdates[len(f.webhookUpdates)-1]
	}
	return f.updated[len(f.updated)-1]
}
