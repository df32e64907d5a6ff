package sectlink

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"testing"
)

const scenarioHTML = `<section id="id1" name="Intro" type="overview" links={[]}>
# Intro

Welcome text.

</section>
<section id="id2" name="Details" type="deep" links={["id1"]}>
# Details

More text.

</section>`

func linkedRegistry(t *testing.T, src string) *Registry {
	t.Helper()
	doc, err := Parse("text", src)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if _, err := Link(doc.Registry); err != nil {
		t.Fatalf("Link() error = %v", err)
	}
	return doc.Registry
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		src  string
		opts RenderOptions
		want string
	}{
		{
			name: "Two sections",
			src:  scenarioDoc,
			want: scenarioHTML,
		},
		{
			name: "Empty registry",
			src:  "just a preamble",
			want: "",
		},
		{
			name: "Empty content",
			src:  "# A\ntype=t\nlinks=[\"A\"]",
			want: "<section id=\"id1\" name=\"A\" type=\"t\" links={[\"id1\"]}>\n# A\n\n\n\n</section>",
		},
		{
			name: "Duplicates render once",
			src:  "# A\ntype=t\nlinks=[]\none\n# A\ntype=u\nlinks=[]\ntwo",
			want: "<section id=\"id1\" name=\"A\" type=\"t\" links={[]}>\n# A\n\none\n\n</section>",
		},
		{
			name: "Attributes verbatim by default",
			src:  "# Say \"hi\" & <go>\ntype=a\"b\nlinks=[]\nx",
			want: "<section id=\"id1\" name=\"Say \"hi\" & <go>\" type=\"a\"b\" links={[]}>\n# Say \"hi\" & <go>\n\nx\n\n</section>",
		},
		{
			name: "Escaped attributes",
			src:  "# Say \"hi\" & <go>\ntype=a\"b\nlinks=[]\n<b>x</b>",
			opts: RenderOptions{Escape: true},
			want: "<section id=\"id1\" name=\"Say &quot;hi&quot; &amp; &lt;go&gt;\" type=\"a&quot;b\" links={[]}>\n# Say \"hi\" & <go>\n\n<b>x</b>\n\n</section>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Render(linkedRegistry(t, tt.src), tt.opts)
			if got != tt.want {
				t.Errorf("Render() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderUnlinked(t *testing.T) {
	doc, err := Parse("text", scenarioDoc)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	got := Render(doc.Registry, RenderOptions{})
	if !strings.Contains(got, `type="deep" links={[]}>`) {
		t.Errorf("Render() of an unlinked registry = %q", got)
	}
}

var (
	reSectionID    = regexp.MustCompile(`<section id="id(\d+)"`)
	reSectionLinks = regexp.MustCompile(`links=\{(\[.*?\])\}>`)
)

func TestRenderRoundTrip(t *testing.T) {
	src := "# A\ntype=t\nlinks=[\"B\", \"C\"]\na\n" +
		"# B\ntype=t\nlinks=[\"A\"]\nb\n" +
		"# C\ntype=t\nlinks=[\"C\", \"B\", \"A\"]\nc"
	reg := linkedRegistry(t, src)

	out := Render(reg, RenderOptions{})

	ids := reSectionID.FindAllStringSubmatch(out, -1)
	links := reSectionLinks.FindAllStringSubmatch(out, -1)
	if len(ids) != reg.Len() || len(links) != reg.Len() {
		t.Fatalf("found %d ids and %d links, want %d", len(ids), len(links), reg.Len())
	}

	for i, entry := range reg.Entries() {
		id, _ := strconv.Atoi(ids[i][1])
		if id != entry.ID {
			t.Errorf("block %d has id %d, want %d", i, id, entry.ID)
		}

		var linkIDs []string
		if err := json.Unmarshal([]byte(links[i][1]), &linkIDs); err != nil {
			t.Fatalf("links of block %d: %v", i, err)
		}
		if strings.Join(linkIDs, ",") != strings.Join(entry.LinkIDs, ",") {
			t.Errorf("block %d links = %v, want %v", i, linkIDs, entry.LinkIDs)
		}
	}
}

func TestByteRenderer(t *testing.T) {
	br := &ByteRenderer{}
	br.Render("a", []byte("b"), byte('c'), 'ñ', 42)
	br.Renderln()
	br.Renderln("end")

	if got := br.String(); got != "abcñ42\nend\n" {
		t.Errorf("String() = %q", got)
	}
}
