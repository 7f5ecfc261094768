package format

import (
	"testing"
)

// FuzzCompile feeds arbitrary text to the format compiler; whatever
// comes back must be a well formed tree or an error, never a panic.
func FuzzCompile(f *testing.F) {
	for _, seed := range []string{
		"$3zd$",
		"$+d.2de+2d$",
		`$c("yes","no")$`,
		"$2r6d$",
		"$l,3(2x d),p$",
		"$n(k)d,f(inner)$",
		"$%8.2f$",
		`$"say ""hi"""$`,
		"$5a2s,b$",
	} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, text string) {
		form, err := Compile(text)
		if err != nil {
			return
		}
		if form.Count < len(form.Pictures) {
			t.Fatalf("picture ordinals misnumbered: %v pictures, count %v",
				len(form.Pictures), form.Count)
		}
		for _, pic := range form.Pictures {
			if pic.Span < 1 {
				t.Fatalf("picture span %v", pic.Span)
			}
		}
	})
}
