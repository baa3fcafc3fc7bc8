package pages

import (
	"context"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
	"github.com/rs/zerolog"
)

var _ bot.EventListener = (*Manager)(nil)

// DefaultManagerConfig returns the configuration a Manager starts from
// before ManagerConfigOpt(s) are applied.
func DefaultManagerConfig() *ManagerConfig {
	return &ManagerConfig{
		CustomIDPrefix:  "pages",
		CleanupInterval: 30 * time.Second,
		Logger:          zerolog.Nop(),
	}
}

type ManagerConfig struct {
	// CustomIDPrefix is the first segment of every component custom ID the
	// manager routes.
	CustomIDPrefix string
	// NoPermissionMessage, when set, is sent as an ephemeral reply to users
	// failing the author check. Empty means rejected interactions are
	// ignored silently.
	NoPermissionMessage string
	// CleanupInterval is how often stopped paginators are dropped from the
	// registry.
	CleanupInterval time.Duration
	Logger          zerolog.Logger
}

type ManagerConfigOpt func(config *ManagerConfig)

// Apply applies the given ManagerConfigOpt(s) to the ManagerConfig.
func (c *ManagerConfig) Apply(opts []ManagerConfigOpt) {
	for _, opt := range opts {
		opt(c)
	}
}

func WithManagerCustomIDPrefix(prefix string) ManagerConfigOpt {
	return func(config *ManagerConfig) {
		config.CustomIDPrefix = prefix
	}
}

func WithNoPermissionMessage(message string) ManagerConfigOpt {
	return func(config *ManagerConfig) {
		config.NoPermissionMessage = message
	}
}

func WithCleanupInterval(interval time.Duration) ManagerConfigOpt {
	return func(config *ManagerConfig) {
		config.CleanupInterval = interval
	}
}

func WithManagerLogger(logger zerolog.Logger) ManagerConfigOpt {
	return func(config *ManagerConfig) {
		config.Logger = logger
	}
}

// Manager routes component interaction events to the paginators it knows
// about. Register it as an event listener on the bot client.
type Manager struct {
	config ManagerConfig
	log    zerolog.Logger

	mu         sync.Mutex
	paginators map[string]*Paginator
}

func NewManager(opts ...ManagerConfigOpt) *Manager {
	config := DefaultManagerConfig()
	config.Apply(opts)
	manager := &Manager{
		config:     *config,
		paginators: map[string]*Paginator{},
	}
	manager.log = config.Logger.With().Str("component", "paginator_manager").Logger()
	manager.startCleanup()
	return manager
}

func (m *Manager) startCleanup() {
	if m.config.CleanupInterval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(m.config.CleanupInterval)
		defer ticker.Stop()
		for range ticker.C {
			m.cleanup()
		}
	}()
}

func (m *Manager) cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, p := range m.paginators {
		if p.Stopped() {
			delete(m.paginators, id)
		}
	}
}

// Add registers a paginator for interaction routing and aligns its custom ID
// prefix with the manager's.
func (m *Manager) Add(paginator *Paginator) {
	paginator.mu.Lock()
	paginator.config.CustomIDPrefix = m.config.CustomIDPrefix
	paginator.mu.Unlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.paginators[paginator.ID()] = paginator
}

// Remove drops a paginator from the routing registry.
func (m *Manager) Remove(paginatorID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.paginators, paginatorID)
}

func (m *Manager) get(paginatorID string) *Paginator {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.paginators[paginatorID]
}

func (m *Manager) OnEvent(event bot.Event) {
	e, ok := event.(*events.ComponentInteractionCreate)
	if !ok {
		return
	}
	customID := e.Data.CustomID()
	if !strings.HasPrefix(customID, m.config.CustomIDPrefix+":") {
		return
	}
	parts := strings.Split(customID, ":")
	if len(parts) < 3 {
		return
	}
	paginatorID, action := parts[1], parts[2]
	var buttonID string
	if len(parts) > 3 {
		buttonID = parts[3]
	}

	paginator := m.get(paginatorID)
	if paginator == nil {
		return
	}

	user := e.User()
	if !paginator.interactionCheck(user.ID) {
		if m.config.NoPermissionMessage == "" {
			return
		}
		err := e.CreateMessage(discord.NewMessageCreateBuilder().
			SetContent(m.config.NoPermissionMessage).
			SetEphemeral(true).
			Build())
		if err != nil {
			m.log.Error().Err(err).Msg("failed to send no-permission message")
		}
		return
	}

	itx := &Interaction{
		ID:            e.ID(),
		ApplicationID: e.ApplicationID(),
		Token:         e.Token(),
		User:          user,
	}
	ctx := context.Background()

	if action == actionMenu {
		m.handleMenu(ctx, e, paginator, itx)
		return
	}
	if err := paginator.handleAction(ctx, action, buttonID, itx); err != nil {
		m.log.Error().Err(err).
			Str("paginator_id", paginatorID).
			Str("action", action).
			Msg("failed to handle paginator interaction")
	}
}

func (m *Manager) handleMenu(ctx context.Context, e *events.ComponentInteractionCreate, paginator *Paginator, itx *Interaction) {
	data := e.StringSelectMenuInteractionData()
	if len(data.Values) == 0 {
		return
	}
	index, err := strconv.Atoi(data.Values[0])
	if err != nil {
		return
	}
	if err = paginator.selectGroup(ctx, index, itx); err != nil {
		m.log.Error().Err(err).
			Str("paginator_id", paginator.ID()).
			Int("group_index", index).
			Msg("failed to switch page group")
	}
}
