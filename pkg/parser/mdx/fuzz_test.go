package mdx_test

import (
	"context"
	"errors"
	"testing"

	"github.com/yaklabco/mdxlint/pkg/components"
	"github.com/yaklabco/mdxlint/pkg/mdast"
	"github.com/yaklabco/mdxlint/pkg/parser/mdx"
)

// FuzzParse checks that any input either parses into a fully tokenized tree
// the component checks can walk, or fails with a SyntaxError.
func FuzzParse(f *testing.F) {
	seeds := []string{
		"",
		"# Heading",
		"<Steps>\n<Step>\nOne\n</Step>\n</Steps>\n",
		"<Steps>\n  <Note>stray</Note>\n</Steps>\n",
		"<Tabs>\n<TabsBar>\n<TabsBarItem id=\"a\" />\n</TabsBar>\n<TabsPages>\n<TabsPageItem id={'a'}>\nA\n</TabsPageItem>\n</TabsPages>\n</Tabs>\n",
		"import { Steps } from './steps'\nexport const meta = {}\n\n<Steps />\n",
		"Text with <Badge>inline</Badge> tag.",
		"```mdx\n<Steps>\n```\n",
		"`<Steps>` in a code span",
		"<Card title=\"x\" {...props} disabled>\nbody\n</Card>",
		"<A.B>\n</A.B>\n",
		"<Steps>\n<Step>\n",
		"</Steps>\n",
		"<Steps>\r\n<Step>\r\nOne\r\n</Step>\r\n</Steps>\r\n",
		"{/* comment */}\n<Step id={`x`} />",
	}

	for _, seed := range seeds {
		f.Add([]byte(seed))
	}

	parser := mdx.New(mdx.FlavorGFM)

	f.Fuzz(func(t *testing.T, data []byte) {
		snap, err := parser.Parse(context.Background(), "fuzz.mdx", data)
		if err != nil {
			var syntaxErr *mdx.SyntaxError
			if !errors.As(err, &syntaxErr) {
				t.Fatalf("unexpected error type %T: %v", err, err)
			}
			return
		}

		if !mdast.ValidateTokens(snap.Tokens, len(snap.Content)) {
			t.Fatalf("tokens do not cover input of length %d", len(data))
		}

		if _, err := components.ValidateSteps(snap.Root); err != nil {
			t.Fatalf("ValidateSteps: %v", err)
		}
		if _, err := components.ValidateTabs(snap.Root); err != nil {
			t.Fatalf("ValidateTabs: %v", err)
		}
	})
}
