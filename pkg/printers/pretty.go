// Package printers renders committed jump lists and operation results for
// the CLI.
package printers

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/jump/pkg/result"
	"tableflip.dev/jump/pkg/store"
)

type PrettyPrint struct {
	ShowDescriptions bool
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(color.Output, "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(color.Output, title)
}

// TitleWithCount prints a category heading with its destination count.
func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold)
	c := color.New(color.Faint)

	_, _ = t.Fprint(color.Output, title)
	_, _ = c.Fprintf(color.Output, " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(color.Output, " destination")
	default:
		_, _ = c.Fprintln(color.Output, " destinations")
	}
}

// List renders a full committed jump list.
func (pp *PrettyPrint) List(l *store.List) {
	pp.Title(l.AppID)
	if !l.Committed.IsZero() {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprintf(color.Output, "committed %s\n", l.Committed.Format(time.RFC1123))
	}
	pp.NewLine()

	for _, c := range l.Categories {
		switch c.Type {
		case "tasks":
			pp.TitleWithCount("Tasks", len(c.Items))
			pp.Destinations(c.Items...)
		case "custom":
			pp.TitleWithCount(c.Name, len(c.Items))
			pp.Destinations(c.Items...)
		case "frequent":
			pp.Managed("Frequent")
		case "recent":
			pp.Managed("Recent")
		}
	}
}

// Managed marks an OS-managed category whose contents the platform derives.
func (pp *PrettyPrint) Managed(name string) {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprintf(color.Output, "%s - managed by the OS\n\n", name)
}

// Destinations renders the entries of one category.
func (pp *PrettyPrint) Destinations(destinations ...store.Destination) {
	if len(destinations) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(color.Output, " none\n\n")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	for _, d := range destinations {
		switch {
		case d.Separator:
			tbl.AddRow("──", "", "")
		case d.Kind == store.KindFile:
			tbl.AddRow("⁃", d.Path, "")
		default:
			target := d.Path
			if d.Arguments != "" {
				target = fmt.Sprintf("%s %s", d.Path, d.Arguments)
			}
			if pp.ShowDescriptions && d.Description != "" {
				tbl.AddRow("●", d.Title, target, d.Description)
			} else {
				tbl.AddRow("●", d.Title, target)
			}
		}
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	pp.NewLine()
}

// Recent renders the recent-documents history feeding the OS-managed
// categories.
func (pp *PrettyPrint) Recent(docs []store.RecentDocument) {
	if len(docs) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(color.Output, " none\n\n")
		return
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Path"), bold.Sprint("Opens"), bold.Sprint("Last"))
	for _, d := range docs {
		tbl.AddRow(d.Path, fmt.Sprintf("%d", d.Count), d.Last.Format(time.RFC1123))
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
	pp.NewLine()
}

// Result renders the single code a set-jump-list call resolved to.
func (pp *PrettyPrint) Result(code result.Code) {
	if code.Ok() {
		g := color.New(color.FgGreen)
		_, _ = g.Fprintln(color.Output, code.String())
		return
	}
	r := color.New(color.FgRed)
	_, _ = r.Fprintln(color.Output, code.String())
}
