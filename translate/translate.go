// Package translate renders diagnostic text through a locale-aware
// message catalog. Every user-visible string in the runtime is an en-US
// Sprintf key passed through From.
package translate

import (
	"log"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/message"
)

var printer *message.Printer

func init() {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("a68: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	printer = message.NewPrinter(message.MatchLanguage(locales...))
}

// From renders an en-US Sprintf format in the detected locale.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
