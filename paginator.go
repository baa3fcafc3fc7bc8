package pages

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/json"
	"github.com/disgoorg/snowflake/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/sasha-s/go-csync"
)

// paginatorIDs disambiguates paginators created within the same snowflake
// millisecond.
var paginatorIDs atomic.Uint64

// newPaginatorID returns a process-unique paginator identifier.
func newPaginatorID() string {
	return fmt.Sprintf("%s-%d", snowflake.New(time.Now()), paginatorIDs.Add(1))
}

// Custom ID actions. The full custom ID is "prefix:paginatorID:action" with
// an extra ":buttonID" segment for custom buttons.
const (
	actionFirst     = "first"
	actionPrev      = "prev"
	actionIndicator = "indicator"
	actionNext      = "next"
	actionLast      = "last"
	actionCustom    = "custom"
	actionMenu      = "menu"
)

// Paginator owns the state of one paginated message: the active page list,
// the button registry, the optional page groups and the message handle. All
// navigation runs under a per-instance critical section so that a page
// mutation, the button recomputation and the host push are atomic relative
// to concurrent interactions.
type Paginator struct {
	client Client
	config Config
	id     string
	log    zerolog.Logger

	mu          csync.Mutex
	pages       []*Page
	groups      []PageGroup
	currentPage int
	pageCount   int
	buttons     []*Button
	message     *messageRef
	stopped     bool
	timer       *time.Timer
}

// New creates a Paginator from raw page content. If every element of pages
// is a PageGroup the paginator runs in multi-group mode and starts on the
// default group (or the first, if none is flagged).
func New(client Client, pageContent []any, opts ...ConfigOpt) (*Paginator, error) {
	config := DefaultConfig()
	config.Apply(opts)

	p := &Paginator{
		client: client,
		config: *config,
		id:     newPaginatorID(),
	}
	p.log = config.Logger.With().Str("component", "paginator").Str("paginator_id", p.id).Logger()

	pages, groups, err := resolvePages(pageContent, config.ShowMenu)
	if err != nil {
		return nil, err
	}
	p.pages = pages
	p.groups = groups
	p.pageCount = max(len(pages)-1, 0)
	p.installButtons()
	return p, nil
}

// resolvePages classifies and normalizes raw page content. In multi-group
// mode the active page list is the content of the default group; the group
// list is retained only when the menu is shown.
func resolvePages(raw []any, showMenu bool) ([]*Page, []PageGroup, error) {
	if len(raw) == 0 {
		return nil, nil, ErrNoPages
	}
	groups, defaultIndex, allGroups, err := classifyGroups(raw)
	if err != nil {
		return nil, nil, err
	}
	if !allGroups {
		pages, err := normalizePages(raw)
		if err != nil {
			return nil, nil, err
		}
		return pages, nil, nil
	}
	pages, err := groups[defaultIndex].Content()
	if err != nil {
		return nil, nil, err
	}
	if len(pages) == 0 {
		return nil, nil, ErrNoPages
	}
	if !showMenu {
		groups = nil
	}
	return pages, groups, nil
}

func (p *Paginator) installButtons() {
	switch {
	case p.config.UseDefaultButtons:
		p.buttons = nil
		for _, b := range defaultButtons(p.config.DefaultButtonRow) {
			p.addButtonLocked(b)
		}
	case p.config.CustomButtons != nil:
		p.buttons = nil
		for _, b := range p.config.CustomButtons {
			p.addButtonLocked(b)
		}
	}
}

// ID returns the identifier used in the paginator's component custom IDs.
func (p *Paginator) ID() string {
	return p.id
}

// CurrentPage returns the zero-indexed current page number.
func (p *Paginator) CurrentPage() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.currentPage
}

// PageCount returns the zero-indexed highest page number.
func (p *Paginator) PageCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pageCount
}

// Stopped reports whether the paginator reached its terminal state and no
// longer accepts interactions.
func (p *Paginator) Stopped() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stopped
}

// AddButton registers a button, replacing any existing button with the same
// type (or the same ID, for custom buttons).
func (p *Paginator) AddButton(button *Button) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.addButtonLocked(button)
}

func (p *Paginator) addButtonLocked(button *Button) {
	button.baseLabel = button.Label
	key := button.key()
	for i, existing := range p.buttons {
		if existing.key() == key {
			p.buttons[i] = button
			return
		}
	}
	p.buttons = append(p.buttons, button)
}

// RemoveButton removes and returns the button with the given type. It fails
// with ErrButtonNotFound if no such button was ever added.
func (p *Paginator) RemoveButton(buttonType ButtonType) (*Button, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, b := range p.buttons {
		if b.Type == buttonType {
			p.buttons = append(p.buttons[:i], p.buttons[i+1:]...)
			return b, nil
		}
	}
	return nil, errors.Wrapf(ErrButtonNotFound, "button_type %s", buttonType)
}

// AddMenu enables the page-group selector menu on subsequent renders.
func (p *Paginator) AddMenu() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.config.ShowMenu = true
}

// interactionCheck gates every interaction before navigation runs. It
// passes unconditionally when the author check is disabled.
func (p *Paginator) interactionCheck(principal snowflake.ID) bool {
	if !p.config.AuthorCheck {
		return true
	}
	for _, id := range p.config.Users {
		if id == principal {
			return true
		}
	}
	return false
}

// Payload is the render payload of the current page: everything the host
// message API needs for a send or edit.
type Payload struct {
	Content    string
	Embeds     []discord.Embed
	Files      []*discord.File
	Components []discord.ContainerComponent
}

// MessageCreate converts the payload for the send route.
func (pl Payload) MessageCreate() discord.MessageCreate {
	return discord.MessageCreate{
		Content:    pl.Content,
		Embeds:     pl.Embeds,
		Files:      pl.Files,
		Components: pl.Components,
	}
}

// MessageUpdate converts the payload for the edit route. Previous
// attachments are always cleared since attachment payloads are single-use.
func (pl Payload) MessageUpdate() discord.MessageUpdate {
	return discord.MessageUpdate{
		Content:     json.Ptr(pl.Content),
		Embeds:      &pl.Embeds,
		Files:       pl.Files,
		Components:  &pl.Components,
		Attachments: json.Ptr([]discord.AttachmentUpdate{}),
	}
}

// Payload returns the current render payload so callers can splice it into
// their own send call.
func (p *Paginator) Payload() Payload {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.payloadLocked(false)
}

func (p *Paginator) payloadLocked(refreshFiles bool) Payload {
	p.updateButtons()
	page := p.pages[p.currentPage]
	files := page.Files
	if refreshFiles {
		files = page.refreshFiles()
	}
	return Payload{
		Content:    page.Content,
		Embeds:     page.Embeds,
		Files:      files,
		Components: p.componentsLocked(page),
	}
}

// componentsLocked assembles the interactive items in fixed order: standard
// buttons bucketed by row, then the group menu, then custom view items. Row
// collisions between custom items and standard rows are the caller's
// responsibility.
func (p *Paginator) componentsLocked(page *Page) []discord.ContainerComponent {
	rendered := p.renderedButtons()

	rowNumbers := make([]int, 0, len(rendered))
	rows := map[int][]discord.InteractiveComponent{}
	for _, b := range rendered {
		if _, ok := rows[b.Row]; !ok {
			rowNumbers = append(rowNumbers, b.Row)
		}
		rows[b.Row] = append(rows[b.Row], b.component(p.buttonCustomID(b)))
	}
	sort.Ints(rowNumbers)

	components := make([]discord.ContainerComponent, 0, len(rowNumbers)+2)
	for _, row := range rowNumbers {
		components = append(components, discord.NewActionRow(rows[row]...))
	}
	if p.config.ShowMenu && len(p.groups) > 0 {
		components = append(components, discord.NewActionRow(p.menuComponent()))
	}
	components = append(components, p.customViewLocked(page)...)
	return components
}

// customViewLocked returns the custom view for this render: the page's own
// components when it carries any, otherwise the paginator-wide custom view.
func (p *Paginator) customViewLocked(page *Page) []discord.ContainerComponent {
	if len(page.Components) > 0 {
		return page.Components
	}
	return p.config.CustomView
}

func (p *Paginator) buttonCustomID(b *Button) string {
	if b.Type == ButtonTypeCustom {
		return p.formatCustomID(actionCustom, b.ID)
	}
	return p.formatCustomID(b.Type.String(), "")
}

func (p *Paginator) formatCustomID(action string, suffix string) string {
	customID := p.config.CustomIDPrefix + ":" + p.id + ":" + action
	if suffix != "" {
		customID += ":" + suffix
	}
	return customID
}

// Send sends the paginator to a channel and stores the message handle.
func (p *Paginator) Send(ctx context.Context, channelID snowflake.ID) (*discord.Message, error) {
	if err := p.mu.CLock(ctx); err != nil {
		return nil, err
	}
	defer p.mu.Unlock()

	payload := p.payloadLocked(true)
	msg, err := p.client.CreateMessage(channelID, payload.MessageCreate(), rest.WithCtx(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "failed to send paginator message")
	}
	p.pages[p.currentPage].markFilesUsed()
	p.message = &messageRef{channelID: msg.ChannelID, messageID: msg.ID}
	p.armTimeoutLocked()
	return msg, nil
}

// Edit replaces an existing message with the paginator and stores the
// message handle.
func (p *Paginator) Edit(ctx context.Context, channelID snowflake.ID, messageID snowflake.ID) (*discord.Message, error) {
	if err := p.mu.CLock(ctx); err != nil {
		return nil, err
	}
	defer p.mu.Unlock()

	payload := p.payloadLocked(true)
	msg, err := p.client.UpdateMessage(channelID, messageID, payload.MessageUpdate(), rest.WithCtx(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "failed to edit paginator message")
	}
	p.pages[p.currentPage].markFilesUsed()
	p.message = &messageRef{channelID: channelID, messageID: messageID}
	p.armTimeoutLocked()
	return msg, nil
}

// Respond sends the paginator as an interaction response. Ephemeral
// paginators must have a timeout below 15 minutes.
func (p *Paginator) Respond(ctx context.Context, itx *Interaction, ephemeral bool) (*discord.Message, error) {
	if err := p.mu.CLock(ctx); err != nil {
		return nil, err
	}
	defer p.mu.Unlock()

	if ephemeral && (p.config.Timeout <= 0 || p.config.Timeout >= 15*time.Minute) {
		return nil, ErrEphemeralTimeout
	}

	payload := p.payloadLocked(true)
	messageCreate := payload.MessageCreate()
	if ephemeral {
		messageCreate.Flags = discord.MessageFlagEphemeral
	}
	err := p.client.CreateInteractionResponse(itx.ID, itx.Token, discord.InteractionResponse{
		Type: discord.InteractionResponseTypeCreateMessage,
		Data: messageCreate,
	}, rest.WithCtx(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "failed to respond with paginator")
	}
	p.pages[p.currentPage].markFilesUsed()

	msg, err := p.client.GetInteractionResponse(itx.ApplicationID, itx.Token, rest.WithCtx(ctx))
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch paginator response message")
	}
	p.message = &messageRef{channelID: msg.ChannelID, messageID: msg.ID}
	p.armTimeoutLocked()
	return msg, nil
}

// GotoPage navigates to the given zero-indexed page, clamped into
// [0, PageCount], and pushes the new render state to the host. Navigation on
// a stopped paginator is a no-op.
func (p *Paginator) GotoPage(ctx context.Context, pageNumber int, itx *Interaction) error {
	if err := p.mu.CLock(ctx); err != nil {
		return err
	}
	defer p.mu.Unlock()
	if p.stopped {
		return nil
	}
	return p.gotoPageLocked(ctx, pageNumber, itx)
}

func (p *Paginator) gotoPageLocked(ctx context.Context, pageNumber int, itx *Interaction) error {
	if p.message == nil {
		return ErrNoMessage
	}
	p.currentPage = min(max(pageNumber, 0), p.pageCount)

	payload := p.payloadLocked(true)
	page := p.pages[p.currentPage]

	if itx != nil {
		// Deferring first forces the webhook edit route, which is required
		// for attachment uploads on an interaction edit.
		err := p.client.CreateInteractionResponse(itx.ID, itx.Token, discord.InteractionResponse{
			Type: discord.InteractionResponseTypeDeferredUpdateMessage,
		}, rest.WithCtx(ctx))
		if err != nil {
			return errors.Wrap(err, "failed to defer interaction response")
		}
		msg, err := p.client.UpdateInteractionResponse(itx.ApplicationID, itx.Token, payload.MessageUpdate(), rest.WithCtx(ctx))
		if err != nil {
			return errors.Wrap(err, "failed to update paginator message")
		}
		if msg != nil {
			p.message = &messageRef{channelID: msg.ChannelID, messageID: msg.ID}
		}
	} else {
		if _, err := p.client.UpdateMessage(p.message.channelID, p.message.messageID, payload.MessageUpdate(), rest.WithCtx(ctx)); err != nil {
			return errors.Wrap(err, "failed to update paginator message")
		}
	}
	page.markFilesUsed()

	if p.config.TriggerOnDisplay && page.OnDisplay != nil {
		return page.OnDisplay(ctx, itx)
	}
	return nil
}

// Update replaces the paginator's configuration in place while preserving
// the session, then re-renders at the given page (clamped to 0 when it
// exceeds the page count). pageContent replaces the page list when non-nil;
// options not passed leave their settings untouched. Validation failures
// abort with no mutation.
func (p *Paginator) Update(ctx context.Context, itx *Interaction, pageNumber int, pageContent []any, opts ...ConfigOpt) error {
	if err := p.mu.CLock(ctx); err != nil {
		return err
	}
	defer p.mu.Unlock()

	staged := p.config
	staged.Apply(opts)

	pages, groups := p.pages, p.groups
	if pageContent != nil {
		var err error
		pages, groups, err = resolvePages(pageContent, staged.ShowMenu)
		if err != nil {
			return err
		}
	}

	p.config = staged
	p.pages = pages
	p.groups = groups
	p.pageCount = max(len(pages)-1, 0)
	if pageNumber < 0 || pageNumber > p.pageCount {
		pageNumber = 0
	}
	p.currentPage = pageNumber
	p.installButtons()

	if p.message == nil {
		return nil
	}
	return p.gotoPageLocked(ctx, p.currentPage, itx)
}

// Disable stops the paginator and re-renders with all items disabled,
// optionally sparing custom-view items and optionally replacing the page
// content.
func (p *Paginator) Disable(ctx context.Context, includeCustom bool, pageContent any) error {
	return p.finishRender(ctx, includeCustom, pageContent, true)
}

// Cancel stops the paginator and re-renders with its items removed instead
// of disabled.
func (p *Paginator) Cancel(ctx context.Context, includeCustom bool, pageContent any) error {
	return p.finishRender(ctx, includeCustom, pageContent, false)
}

// finishRender is the shared terminal render of Disable and Cancel: keep
// items disabled or drop them, then edit the message one last time.
func (p *Paginator) finishRender(ctx context.Context, includeCustom bool, pageContent any, keepItems bool) error {
	if err := p.mu.CLock(ctx); err != nil {
		return err
	}
	defer p.mu.Unlock()

	if p.message == nil {
		return ErrNoMessage
	}
	p.stopped = true
	p.stopTimeoutLocked()

	components := p.terminalComponentsLocked(includeCustom, keepItems)

	update := discord.MessageUpdate{Components: &components}
	if pageContent != nil {
		page, err := NormalizePage(pageContent)
		if err != nil {
			return err
		}
		update.Content = json.Ptr(page.Content)
		update.Embeds = &page.Embeds
	}
	if _, err := p.client.UpdateMessage(p.message.channelID, p.message.messageID, update, rest.WithCtx(ctx)); err != nil {
		return errors.Wrap(err, "failed to finalize paginator message")
	}
	return nil
}

func (p *Paginator) terminalComponentsLocked(includeCustom bool, keepItems bool) []discord.ContainerComponent {
	page := p.pages[p.currentPage]

	var standard []discord.ContainerComponent
	if keepItems {
		all := p.componentsLocked(page)
		custom := p.customViewLocked(page)
		standard = disableComponents(all[:len(all)-len(custom)])
	}

	custom := p.customViewLocked(page)
	switch {
	case !keepItems && includeCustom:
		custom = nil
	case keepItems && includeCustom:
		custom = disableComponents(custom)
	}
	return append(standard, custom...)
}

// disableComponents returns a copy of the components with every button and
// select menu marked disabled. Unknown interactive components pass through
// unchanged.
func disableComponents(components []discord.ContainerComponent) []discord.ContainerComponent {
	out := make([]discord.ContainerComponent, 0, len(components))
	for _, component := range components {
		row, ok := component.(discord.ActionRowComponent)
		if !ok {
			out = append(out, component)
			continue
		}
		disabledRow := make(discord.ActionRowComponent, 0, len(row))
		for _, item := range row {
			switch c := item.(type) {
			case discord.ButtonComponent:
				c.Disabled = true
				disabledRow = append(disabledRow, c)
			case discord.StringSelectMenuComponent:
				c.Disabled = true
				disabledRow = append(disabledRow, c)
			default:
				disabledRow = append(disabledRow, item)
			}
		}
		out = append(out, disabledRow)
	}
	return out
}

// handleAction runs one interaction against the navigation critical
// section. The manager has already routed the custom ID and passed the
// author check.
func (p *Paginator) handleAction(ctx context.Context, action string, buttonID string, itx *Interaction) error {
	if action == actionMenu {
		return nil
	}
	if err := p.mu.CLock(ctx); err != nil {
		return err
	}

	if p.stopped {
		p.mu.Unlock()
		return nil
	}
	p.resetTimeoutLocked()

	var onClick ButtonCallback
	switch action {
	case actionFirst:
		defer p.mu.Unlock()
		return p.gotoPageLocked(ctx, 0, itx)
	case actionPrev:
		defer p.mu.Unlock()
		target := p.currentPage - 1
		if target < 0 {
			if !p.config.LoopPages {
				target = 0
			} else {
				target = p.pageCount
			}
		}
		return p.gotoPageLocked(ctx, target, itx)
	case actionNext:
		defer p.mu.Unlock()
		target := p.currentPage + 1
		if target > p.pageCount {
			if !p.config.LoopPages {
				target = p.pageCount
			} else {
				target = 0
			}
		}
		return p.gotoPageLocked(ctx, target, itx)
	case actionLast:
		defer p.mu.Unlock()
		return p.gotoPageLocked(ctx, p.pageCount, itx)
	case actionCustom:
		for _, b := range p.buttons {
			if b.Type == ButtonTypeCustom && b.ID == buttonID {
				onClick = b.OnClick
				break
			}
		}
	}
	p.mu.Unlock()

	// Custom button callbacks run outside the critical section so they can
	// navigate or update the paginator themselves. The callback owns the
	// interaction response; without one the click is acknowledged silently.
	if onClick != nil {
		return onClick(ctx, p, itx)
	}
	if itx != nil {
		err := p.client.CreateInteractionResponse(itx.ID, itx.Token, discord.InteractionResponse{
			Type: discord.InteractionResponseTypeDeferredUpdateMessage,
		}, rest.WithCtx(ctx))
		if err != nil {
			return errors.Wrap(err, "failed to acknowledge interaction")
		}
	}
	return nil
}

func (p *Paginator) armTimeoutLocked() {
	if p.config.Timeout <= 0 {
		return
	}
	if p.timer != nil {
		p.timer.Stop()
	}
	p.timer = time.AfterFunc(p.config.Timeout, p.onTimeout)
}

func (p *Paginator) resetTimeoutLocked() {
	if p.timer != nil && p.config.Timeout > 0 {
		p.timer.Reset(p.config.Timeout)
	}
}

func (p *Paginator) stopTimeoutLocked() {
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

// onTimeout fires after the configured inactivity duration. The paginator
// becomes terminal either way; the final disabling edit is best effort since
// the message may already be gone.
func (p *Paginator) onTimeout() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return
	}
	p.stopped = true
	p.timer = nil

	if !p.config.DisableOnTimeout || p.message == nil {
		return
	}

	page := p.pages[p.currentPage]
	components := disableComponents(p.componentsLocked(page))
	update := discord.MessageUpdate{
		Components:  &components,
		Files:       page.refreshFiles(),
		Attachments: json.Ptr([]discord.AttachmentUpdate{}),
	}
	if _, err := p.client.UpdateMessage(p.message.channelID, p.message.messageID, update); err != nil {
		p.log.Warn().Err(err).Msg("failed to disable paginator on timeout")
		return
	}
	page.markFilesUsed()
}
