package pages

import (
	"context"
	"io"

	"github.com/disgoorg/disgo/discord"
)

// PageCallback is invoked after a page has been rendered, if the paginator
// was configured with trigger on display. The interaction is nil when the
// render was not driven by a component interaction. Errors are returned to
// the caller of the navigation, never swallowed by the paginator.
type PageCallback func(ctx context.Context, itx *Interaction) error

// Page is one unit of displayable content.
type Page struct {
	Content string
	Embeds  []discord.Embed
	Files   []*discord.File
	// Components replace the paginator's own custom view while this page is
	// displayed.
	Components []discord.ContainerComponent
	OnDisplay  PageCallback

	// filesUsed marks the attachment readers as consumed by a previous
	// render. Attachment payloads are single-use per message edit.
	filesUsed bool
}

// refreshFiles rewinds every seekable attachment reader so the files can be
// uploaded again on the next render. Non-seekable readers that were already
// consumed are dropped from the page.
func (p *Page) refreshFiles() []*discord.File {
	if !p.filesUsed {
		return p.Files
	}
	fresh := p.Files[:0]
	for _, f := range p.Files {
		if seeker, ok := f.Reader.(io.Seeker); ok {
			if _, err := seeker.Seek(0, io.SeekStart); err == nil {
				fresh = append(fresh, f)
			}
			continue
		}
	}
	p.Files = fresh
	return p.Files
}

func (p *Page) markFilesUsed() {
	if len(p.Files) > 0 {
		p.filesUsed = true
	}
}

// PageGroup is a named, orderable collection of page content, switchable via
// the paginator's group menu.
type PageGroup struct {
	Name        string
	Description string
	Emoji       *discord.ComponentEmoji
	// Default marks this group as the one shown when the paginator is first
	// sent. At most one group per set may be the default.
	Default bool
	// Pages holds raw page content; each item is normalized with
	// NormalizePage when the group becomes active.
	Pages []any
}

// Content returns the normalized pages of the group, preserving order.
func (g PageGroup) Content() ([]*Page, error) {
	pages := make([]*Page, 0, len(g.Pages))
	for _, raw := range g.Pages {
		page, err := NormalizePage(raw)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, nil
}

// NormalizePage converts raw page content into a *Page. Supported inputs are
// *Page, Page, string, discord.Embed, []discord.Embed, *discord.File,
// []*discord.File and []any holding only embeds or only files. A list mixing
// embeds and files fails with ErrMixedPageContent, anything else with
// ErrInvalidPageContent.
func NormalizePage(v any) (*Page, error) {
	switch content := v.(type) {
	case *Page:
		return content, nil
	case Page:
		return &content, nil
	case string:
		return &Page{Content: content}, nil
	case discord.Embed:
		return &Page{Embeds: []discord.Embed{content}}, nil
	case []discord.Embed:
		return &Page{Embeds: content}, nil
	case *discord.File:
		return &Page{Files: []*discord.File{content}}, nil
	case []*discord.File:
		return &Page{Files: content}, nil
	case []any:
		return normalizeSlice(content)
	default:
		return nil, ErrInvalidPageContent
	}
}

func normalizeSlice(items []any) (*Page, error) {
	var (
		embeds []discord.Embed
		files  []*discord.File
	)
	for _, item := range items {
		switch it := item.(type) {
		case discord.Embed:
			embeds = append(embeds, it)
		case *discord.File:
			files = append(files, it)
		default:
			return nil, ErrInvalidPageContent
		}
	}
	if len(embeds) > 0 && len(files) > 0 {
		return nil, ErrMixedPageContent
	}
	return &Page{Embeds: embeds, Files: files}, nil
}

// normalizePages converts a raw page list into canonical form.
func normalizePages(raw []any) ([]*Page, error) {
	pages := make([]*Page, 0, len(raw))
	for _, item := range raw {
		page, err := NormalizePage(item)
		if err != nil {
			return nil, err
		}
		pages = append(pages, page)
	}
	return pages, nil
}

// classifyGroups reports whether every element of raw is a PageGroup and, if
// so, returns the groups and the index of the default group. More than one
// default fails with ErrOnlyOneDefaultGroup.
func classifyGroups(raw []any) (groups []PageGroup, defaultIndex int, ok bool, err error) {
	groups = make([]PageGroup, 0, len(raw))
	defaultIndex = -1
	for i, item := range raw {
		var group PageGroup
		switch g := item.(type) {
		case PageGroup:
			group = g
		case *PageGroup:
			group = *g
		default:
			return nil, 0, false, nil
		}
		if group.Default {
			if defaultIndex != -1 {
				return nil, 0, false, ErrOnlyOneDefaultGroup
			}
			defaultIndex = i
		}
		groups = append(groups, group)
	}
	if defaultIndex == -1 {
		defaultIndex = 0
	}
	return groups, defaultIndex, len(groups) > 0, nil
}
