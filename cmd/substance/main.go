// Command substance is a debugging CLI for the document engine. It resolves
// isolated-region states for a selection surface and demonstrates the copy
// engine on a small in-memory article.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/podviaznikov/substance/internal/logger"
	"github.com/podviaznikov/substance/pkg/clipboard"
	"github.com/podviaznikov/substance/pkg/document"
	"github.com/podviaznikov/substance/pkg/selection"
	"github.com/podviaznikov/substance/pkg/surface"
)

const version = "0.1.0"

// CLI defines the command-line interface.
var CLI struct {
	LogLevel string `name:"log-level" default:"warn" help:"Log level (debug, info, warn, error)"`
	Pretty   bool   `help:"Pretty-print log output"`

	Resolve  ResolveCmd  `cmd:"" help:"Resolve region states for a selection surface"`
	CopyDemo CopyDemoCmd `cmd:"" name:"copy-demo" help:"Run the copy engine over a demo article"`
	Version  VersionCmd  `cmd:"" help:"Print version information"`
}

// ResolveCmd computes the display state of every region for a selection
// owned by the given surface path.
type ResolveCmd struct {
	Surface string   `arg:"" help:"Surface path owning the selection, e.g. body/sn2/sn2.title"`
	Regions []string `arg:"" help:"Known region paths"`
}

func (c *ResolveCmd) Run(log *logger.Logger) error {
	resolver := surface.NewResolver(surface.Config{Logger: log.Surface()})
	sel := selection.NewProperty([]string{"demo", "content"}, 0, 0, c.Surface)

	states := resolver.Resolve(sel, c.Regions)
	paths := make([]string, 0, len(states))
	for p := range states {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		fmt.Printf("%-30s %s\n", p, states[p])
	}
	return nil
}

// CopyDemoCmd builds a small article, copies a selection out of it, and
// prints the resulting snippet as JSON.
type CopyDemoCmd struct {
	Mode  string `default:"container" enum:"property,node,container" help:"Selection kind to copy"`
	Start int    `default:"4" help:"Start offset for property/container selections"`
	End   int    `default:"9" help:"End offset for property/container selections"`
}

func (c *CopyDemoCmd) Run(log *logger.Logger) error {
	doc := demoArticle(log)
	engine := clipboard.NewEngine(clipboard.Config{Logger: log.Clipboard()})

	var sel selection.Selection
	switch c.Mode {
	case "property":
		sel = selection.NewProperty([]string{"p1", "content"}, c.Start, c.End, "body")
	case "node":
		sel = selection.NewNode("body", "fig1", selection.WholeNode, "body")
	case "container":
		sel = selection.NewContainer("body",
			[]string{"p1", "content"}, c.Start,
			[]string{"p2", "content"}, c.End, "body")
	}

	snippet, err := engine.Copy(doc, sel)
	if err != nil {
		return err
	}
	if snippet == nil {
		fmt.Println("nothing copied")
		return nil
	}
	return dumpJSON(snippet)
}

// VersionCmd prints version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Printf("substance %s\n", version)
	return nil
}

func demoArticle(log *logger.Logger) *document.Document {
	schema := document.NewSchema(
		document.NodeType{Name: "paragraph", Properties: []document.Property{
			{Name: "content", Type: document.TypeText},
		}},
		document.NodeType{Name: "figure", Properties: []document.Property{
			{Name: "image", Type: document.TypeFile},
			{Name: "caption", Type: document.TypeText},
		}},
		document.NodeType{Name: "file", Properties: []document.Property{
			{Name: "url", Type: document.TypeString},
		}},
	)

	doc := document.New(schema, document.Config{Logger: log.Document()})
	mustCreate(doc, &document.Node{ID: "body", Type: "container", Props: map[string]any{"nodes": []string{}}})
	mustCreate(doc, &document.Node{ID: "p1", Type: "paragraph", Props: map[string]any{"content": "The quick brown fox"}})
	mustCreate(doc, &document.Node{ID: "p2", Type: "paragraph", Props: map[string]any{"content": "jumps over the lazy dog"}})
	mustCreate(doc, &document.Node{ID: "img1", Type: "file", Props: map[string]any{"url": "fox.png"}})
	mustCreate(doc, &document.Node{ID: "fig1", Type: "figure", Props: map[string]any{"image": "img1", "caption": "A fox"}})
	for _, id := range []string{"p1", "fig1", "p2"} {
		if err := doc.AppendChild("body", id); err != nil {
			panic(err)
		}
	}
	if _, err := doc.AddAnnotation(&document.Annotation{
		ID:    "strong1",
		Type:  "strong",
		Start: selection.Coordinate{Path: []string{"p1", "content"}, Offset: 4},
		End:   selection.Coordinate{Path: []string{"p1", "content"}, Offset: 9},
	}); err != nil {
		panic(err)
	}
	return doc
}

func mustCreate(doc *document.Document, n *document.Node) {
	if _, err := doc.CreateNode(n); err != nil {
		panic(err)
	}
}

type nodeDump struct {
	ID    string         `json:"id"`
	Type  string         `json:"type"`
	Props map[string]any `json:"props"`
}

type annoDump struct {
	ID    string   `json:"id"`
	Type  string   `json:"type"`
	Path  []string `json:"path"`
	Start int      `json:"start"`
	End   int      `json:"end"`
}

func dumpJSON(doc *document.Document) error {
	out := struct {
		Nodes       []nodeDump `json:"nodes"`
		Annotations []annoDump `json:"annotations"`
	}{}
	for _, n := range doc.Nodes() {
		out.Nodes = append(out.Nodes, nodeDump{ID: n.ID, Type: n.Type, Props: n.Props})
	}
	for _, a := range doc.Annotations().All() {
		out.Annotations = append(out.Annotations, annoDump{
			ID:    a.ID,
			Type:  a.Type,
			Path:  a.Path(),
			Start: a.StartOffset(),
			End:   a.EndOffset(),
		})
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("substance"),
		kong.Description("Structured-document selection, annotation and region tooling"),
		kong.UsageOnError(),
	)

	log := logger.New(logger.Config{
		Level:  strings.ToLower(CLI.LogLevel),
		Pretty: CLI.Pretty,
	})

	if err := ctx.Run(log); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
