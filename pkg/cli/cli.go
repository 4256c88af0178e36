// Package cli is the glitchlab command line: it decodes image files, runs
// glitch transforms over them and writes the results.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/alecthomas/kong"

	"github.com/Fepozopo/glitchlab/pkg/glitch"
)

// Globals are flags shared by every command.
type Globals struct {
	LogLevel       string `help:"Log level (debug, info, warn, error)." enum:"debug,info,warn,error" default:"info" env:"GLITCHLAB_LOG_LEVEL"`
	Workers        int    `help:"Concurrent workers for batch and gallery; 0 uses every CPU." default:"0" env:"GLITCHLAB_WORKERS"`
	PreviewBackend string `help:"Terminal image protocol for --preview." enum:"auto,kitty,inline" default:"auto" env:"GLITCHLAB_PREVIEW_BACKEND"`
}

// CLI is the root of the command tree.
type CLI struct {
	Globals

	List    ListCmd          `cmd:"" help:"List the available transforms."`
	Show    ShowCmd          `cmd:"" help:"Describe a transform and its parameters."`
	Apply   ApplyCmd         `cmd:"" help:"Apply one transform to an image."`
	Batch   BatchCmd         `cmd:"" help:"Apply one transform to every image in a folder."`
	Gallery GalleryCmd       `cmd:"" help:"Apply every transform with default parameters to one image."`
	Update  UpdateCmd        `cmd:"" help:"Update glitchlab to the latest release."`
	Version kong.VersionFlag `help:"Print version and exit."`
}

// ListCmd prints the catalog.
type ListCmd struct {
	Category string `short:"c" help:"Only list this category (pixel-format, memory-layout, coordinates)."`
}

func (c *ListCmd) Validate(kctx *kong.Context) error {
	if c.Category == "" {
		return nil
	}
	for _, cat := range glitch.Categories {
		if string(cat) == c.Category {
			return nil
		}
	}
	return fmt.Errorf("unknown category %q", c.Category)
}

func (c *ListCmd) Run() error {
	return writeList(os.Stdout, glitch.Default, glitch.Category(c.Category))
}

func writeList(out io.Writer, r *glitch.Registry, category glitch.Category) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY")
	categories := glitch.Categories
	if category != "" {
		categories = []glitch.Category{category}
	}
	for _, cat := range categories {
		for _, t := range r.ListByCategory(cat) {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", t.ID, t.Name, t.Category)
		}
	}
	return tw.Flush()
}

// ShowCmd prints the documentation of one transform.
type ShowCmd struct {
	ID string `arg:"" help:"Transform id."`
}

func (c *ShowCmd) Run() error {
	t, err := glitch.Default.Lookup(c.ID)
	if err != nil {
		return err
	}
	return writeShow(os.Stdout, t)
}

func writeShow(out io.Writer, t *glitch.Transform) error {
	_, err := fmt.Fprintf(out, "%s (%s)\nCategory: %s\n\n%s\n\nTechnical details:\n%s\n\nBuggy:\n%s\n\nFixed:\n%s\n",
		t.Name, t.ID, t.Category, GenerateTooltip(t), t.TechnicalDetails,
		indent(t.BuggyExample), indent(t.FixedExample))
	return err
}

func indent(code string) string {
	return "    " + strings.ReplaceAll(code, "\n", "\n    ")
}
