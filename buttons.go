package pages

import (
	"context"
	"fmt"

	"github.com/disgoorg/disgo/discord"
)

// ButtonType identifies the navigation role of a paginator button.
type ButtonType int

const (
	ButtonTypeFirst ButtonType = iota + 1
	ButtonTypePrev
	ButtonTypePageIndicator
	ButtonTypeNext
	ButtonTypeLast
	ButtonTypeCustom
)

func (t ButtonType) String() string {
	switch t {
	case ButtonTypeFirst:
		return "first"
	case ButtonTypePrev:
		return "prev"
	case ButtonTypePageIndicator:
		return "indicator"
	case ButtonTypeNext:
		return "next"
	case ButtonTypeLast:
		return "last"
	case ButtonTypeCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// ButtonCallback is invoked when a custom button is clicked, before the
// paginator re-renders. It may mutate the paginator.
type ButtonCallback func(ctx context.Context, p *Paginator, itx *Interaction) error

// Button describes one paginator button. The paginator mutates Hidden,
// Disabled and Label on every render cycle; callers configure the rest at
// registration time.
type Button struct {
	Type  ButtonType
	Label string
	// LoopLabel replaces Label on the prev/next buttons while page looping
	// would wrap around.
	LoopLabel string
	Style     discord.ButtonStyle
	Emoji     *discord.ComponentEmoji
	Row       int
	Hidden    bool
	Disabled  bool
	// ID distinguishes multiple custom buttons from each other. Ignored for
	// the standard types.
	ID      string
	OnClick ButtonCallback

	// baseLabel preserves the registered label so loop-label swaps can be
	// undone.
	baseLabel string
}

func (b *Button) key() buttonKey {
	k := buttonKey{buttonType: b.Type}
	if b.Type == ButtonTypeCustom {
		k.id = b.ID
	}
	return k
}

// buttonKey keys the registry: unique per standard type, per-ID for custom
// buttons.
type buttonKey struct {
	buttonType ButtonType
	id         string
}

// buttonStyles is the fixed style table for the default button set.
var buttonStyles = map[ButtonType]struct {
	label     string
	loopLabel string
	style     discord.ButtonStyle
}{
	ButtonTypeFirst:         {label: "<<", style: discord.ButtonStylePrimary},
	ButtonTypePrev:          {label: "<", loopLabel: "↪", style: discord.ButtonStyleDanger},
	ButtonTypePageIndicator: {style: discord.ButtonStyleSecondary},
	ButtonTypeNext:          {label: ">", loopLabel: "↩", style: discord.ButtonStyleSuccess},
	ButtonTypeLast:          {label: ">>", style: discord.ButtonStylePrimary},
}

// defaultButtons returns the fixed five-button set on the given row.
func defaultButtons(row int) []*Button {
	types := []ButtonType{
		ButtonTypeFirst,
		ButtonTypePrev,
		ButtonTypePageIndicator,
		ButtonTypeNext,
		ButtonTypeLast,
	}
	buttons := make([]*Button, 0, len(types))
	for _, t := range types {
		s := buttonStyles[t]
		buttons = append(buttons, &Button{
			Type:      t,
			Label:     s.label,
			LoopLabel: s.loopLabel,
			Style:     s.style,
			Row:       row,
			Disabled:  t == ButtonTypePageIndicator,
		})
	}
	return buttons
}

// updateButtons recomputes the derived visibility state of every registered
// button from the current page, the page count and the loop setting. Called
// once per render; callers must hold the paginator lock.
func (p *Paginator) updateButtons() {
	for _, b := range p.buttons {
		switch b.Type {
		case ButtonTypeFirst:
			b.Hidden = p.currentPage <= 1

		case ButtonTypeLast:
			b.Hidden = p.currentPage >= p.pageCount-1

		case ButtonTypeNext:
			if p.currentPage == p.pageCount {
				if p.config.LoopPages {
					b.Hidden = false
					b.Label = b.LoopLabel
				} else {
					b.Hidden = true
					b.Label = b.baseLabel
				}
			} else if p.currentPage < p.pageCount {
				b.Hidden = false
				b.Label = b.baseLabel
			}

		case ButtonTypePrev:
			if p.currentPage <= 0 {
				if p.config.LoopPages {
					b.Hidden = false
					b.Label = b.LoopLabel
				} else {
					b.Hidden = true
					b.Label = b.baseLabel
				}
			} else {
				b.Hidden = false
				b.Label = b.baseLabel
			}

		case ButtonTypePageIndicator:
			if p.config.ShowIndicator {
				b.Label = fmt.Sprintf("%d/%d", p.currentPage+1, p.pageCount+1)
			}
		}
	}
}

// renderedButtons returns the buttons to include in the outgoing item list,
// applying the show-disabled rule. The indicator is included only when the
// indicator is enabled, regardless of its own flags.
func (p *Paginator) renderedButtons() []*Button {
	rendered := make([]*Button, 0, len(p.buttons))
	for _, b := range p.buttons {
		if b.Type == ButtonTypePageIndicator {
			if p.config.ShowIndicator {
				rendered = append(rendered, b)
			}
			continue
		}
		if b.Hidden {
			if p.config.ShowDisabled {
				b.Disabled = true
				rendered = append(rendered, b)
			}
			continue
		}
		b.Disabled = false
		rendered = append(rendered, b)
	}
	return rendered
}

func (b *Button) component(customID string) discord.ButtonComponent {
	return discord.ButtonComponent{
		Style:    b.Style,
		Label:    b.Label,
		Emoji:    b.Emoji,
		CustomID: customID,
		Disabled: b.Disabled,
	}
}
