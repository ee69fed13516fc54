package rotext_test

import (
	"fmt"

	rotext "github.com/umajho/rotext-lite"
)

// Example exercises the full pipeline end to end, the way scandown's own
// Example test exercises its block scanner: feed it representative inputs
// and show the rendered HTML.
func Example() {
	for _, input := range []string{
		"hello",
		"---",
		"= hi =",
		"== hi ==",
	} {
		out, err := rotext.ParseAndRenderToHTML([]byte(input))
		if err != nil {
			fmt.Printf("%q -> error: %v\n", input, err)
			continue
		}
		fmt.Printf("%q -> %q\n", input, out)
	}

	// Output:
	// "hello" -> "<p>hello</p>"
	// "---" -> "<hr>"
	// "= hi =" -> "<h1 id=\"hi\">hi</h1>"
	// "== hi ==" -> "<h2 id=\"hi\">hi</h2>"
}
