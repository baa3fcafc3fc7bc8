package pages

import "github.com/pkg/errors"

var (
	// ErrOnlyOneDefaultGroup is returned when more than one PageGroup in a
	// single set is flagged as the default.
	ErrOnlyOneDefaultGroup = errors.New("only one page group can be set as the default")

	// ErrMixedPageContent is returned when a page content list mixes embeds
	// and files.
	ErrMixedPageContent = errors.New("All list items must be embeds or files.")

	// ErrInvalidPageContent is returned when page content is not a Page,
	// string, embed, list of embeds, file, or list of files.
	ErrInvalidPageContent = errors.New("page content must be a Page, string, embed, list of embeds, file, or list of files")

	// ErrButtonNotFound is returned when removing a button type that was
	// never added to the paginator.
	ErrButtonNotFound = errors.New("no button with the given type was found in this paginator")

	// ErrNoMessage is returned when an operation requires a sent message but
	// the paginator has not been sent yet.
	ErrNoMessage = errors.New("paginator has no message; send, edit or respond first")

	// ErrNoPages is returned when a paginator is constructed or updated with
	// an empty page list.
	ErrNoPages = errors.New("paginator needs at least one page")

	// ErrEphemeralTimeout is returned when an ephemeral response is requested
	// with no timeout or a timeout of 15 minutes or longer.
	ErrEphemeralTimeout = errors.New("paginator responses cannot be ephemeral if the paginator timeout is 15 minutes or greater")
)
