package extract

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genMessageLine generates a plausible commit message line that cannot be
// mistaken for a marker or a fence.
func genMessageLine() gopter.Gen {
	return gen.Identifier().Map(func(s string) string {
		return "feat: " + s
	})
}

// genMessageLines generates one to five message lines.
func genMessageLines() gopter.Gen {
	return gen.SliceOfN(3, genMessageLine()).SuchThat(func(lines []string) bool {
		return len(lines) > 0
	})
}

// genChatter generates conversational filler the backends tend to emit
// around the message block.
func genChatter() gopter.Gen {
	return gen.OneConstOf(
		"Here is the commit message:",
		"Sure, I analyzed the diff.",
		"Let me know if you want changes.",
		"",
	)
}

func TestProperty_MarkerBlockRoundTrip(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("marker block content comes back verbatim", prop.ForAll(
		func(lines []string, before, after string) bool {
			raw := before + "\n" +
				HeaderMarker + "\n" +
				strings.Join(lines, "\n") + "\n" +
				FooterMarker + "\n" +
				after

			got, err := Message(raw)
			return err == nil && got == strings.Join(lines, "\n")
		},
		genMessageLines(),
		genChatter(),
		genChatter(),
	))

	properties.Property("context echo before END DIFF never leaks", prop.ForAll(
		func(lines []string, echoed string) bool {
			// A marker block inside the echoed context must be ignored.
			raw := HeaderMarker + "\n" +
				echoed + "\n" +
				FooterMarker + "\n" +
				EndDiffMarker + "\n" +
				HeaderMarker + "\n" +
				strings.Join(lines, "\n") + "\n" +
				FooterMarker + "\n"

			got, err := Message(raw)
			return err == nil && got == strings.Join(lines, "\n")
		},
		genMessageLines(),
		gen.Identifier(),
	))

	properties.Property("marker block wins over a fenced block", prop.ForAll(
		func(lines []string, fenced string) bool {
			raw := "```\n" + fenced + "\n```\n" +
				HeaderMarker + "\n" +
				strings.Join(lines, "\n") + "\n" +
				FooterMarker + "\n"

			got, err := Message(raw)
			return err == nil && got == strings.Join(lines, "\n")
		},
		genMessageLines(),
		gen.Identifier(),
	))

	properties.Property("fenced block serves as fallback", prop.ForAll(
		func(lines []string, opener string) bool {
			raw := "Some preamble.\n" +
				opener + "\n" +
				strings.Join(lines, "\n") + "\n" +
				"```\n"

			got, err := Message(raw)
			return err == nil && got == strings.Join(lines, "\n")
		},
		genMessageLines(),
		gen.OneConstOf("```", "```text", "```yaml"),
	))

	properties.Property("output without any block always fails", prop.ForAll(
		func(lines []string) bool {
			_, err := Message(strings.Join(lines, "\n"))
			return err != nil
		},
		genMessageLines(),
	))

	properties.TestingRun(t)
}
