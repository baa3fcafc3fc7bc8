package pages

import (
	"context"
	"strconv"

	"github.com/disgoorg/disgo/discord"
)

// menuComponent builds the page-group select menu. The option value is the
// group index; selection is delegated back to the paginator by the manager.
// Callers must hold the paginator lock.
func (p *Paginator) menuComponent() discord.StringSelectMenuComponent {
	options := make([]discord.StringSelectMenuOption, 0, len(p.groups))
	for i, group := range p.groups {
		options = append(options, discord.StringSelectMenuOption{
			Label:       group.Name,
			Value:       strconv.Itoa(i),
			Description: group.Description,
			Emoji:       group.Emoji,
		})
	}
	return discord.StringSelectMenuComponent{
		CustomID:    p.formatCustomID(actionMenu, ""),
		Placeholder: p.config.MenuPlaceholder,
		Options:     options,
	}
}

// selectGroup switches the active page list to the group at the given index
// and re-renders at page 0. Out-of-range indices are ignored.
func (p *Paginator) selectGroup(ctx context.Context, index int, itx *Interaction) error {
	if err := p.mu.CLock(ctx); err != nil {
		return err
	}
	defer p.mu.Unlock()

	if p.stopped || index < 0 || index >= len(p.groups) {
		return nil
	}
	pages, err := p.groups[index].Content()
	if err != nil {
		return err
	}
	if len(pages) == 0 {
		// An empty group cannot be displayed; keep the current page list.
		return nil
	}
	p.resetTimeoutLocked()
	p.pages = pages
	p.pageCount = max(len(pages)-1, 0)
	return p.gotoPageLocked(ctx, 0, itx)
}
