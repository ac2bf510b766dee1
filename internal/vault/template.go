package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aviaryhq/cortex/internal/dates"
	"github.com/aviaryhq/cortex/internal/note"
)

// TemplateVars are the placeholder values substituted into a template.
type TemplateVars struct {
	Name        string
	Parent      string
	ParentTitle string
	Date        string
}

// RenderTemplate substitutes {name}, {parent}, {parent_title}, and {date}
// placeholders in a template body.
func RenderTemplate(content string, vars TemplateVars) string {
	r := strings.NewReplacer(
		"{name}", vars.Name,
		"{parent}", vars.Parent,
		"{parent_title}", vars.ParentTitle,
		"{date}", vars.Date,
	)
	return r.Replace(content)
}

// LoadTemplate returns the template body for a note type, preferring a
// user template in templates/<type>.md and falling back to the built-in
// default.
func (v *Vault) LoadTemplate(typ string) (string, error) {
	path := filepath.Join(v.Root, TemplateDir, typ+".md")
	data, err := os.ReadFile(path)
	if err == nil {
		return string(data), nil
	}
	if !os.IsNotExist(err) {
		return "", fmt.Errorf("template %s: %w", typ, err)
	}
	tmpl, ok := defaultTemplates[typ]
	if !ok {
		return "", fmt.Errorf("no template for type %q", typ)
	}
	return tmpl, nil
}

// Create makes a new note of the given type from its template. The file
// must not already exist.
func (v *Vault) Create(typ, id string, now time.Time) (*note.Note, error) {
	if err := note.ValidateID(id); err != nil {
		return nil, err
	}
	if v.Exists(id) {
		return nil, fmt.Errorf("%w: %s", ErrAlreadyExists, id)
	}

	tmpl, err := v.LoadTemplate(typ)
	if err != nil {
		return nil, err
	}

	parent := note.ParentOf(id)
	parentTitle := ""
	if parent != "" {
		if pn, err := v.Load(parent); err == nil {
			parentTitle = pn.Title()
		} else {
			parentTitle = note.FormatTitle(parent)
		}
	}

	content := RenderTemplate(tmpl, TemplateVars{
		Name:        note.FormatTitle(id),
		Parent:      parent,
		ParentTitle: parentTitle,
		Date:        dates.Today(now),
	})

	if err := v.WriteRaw(note.PathFor(id), content); err != nil {
		return nil, fmt.Errorf("create %s: %w", id, err)
	}
	return v.Load(id)
}

var defaultTemplates = map[string]string{
	"project": `---
created: {date}
modified: {date}
type: project
status: todo
tags:
---
# {name}

## Description

## Tasks

## Notes
`,
	"task": `---
created: {date}
modified: {date}
type: task
status: todo
parent: {parent}
tags:
---
# {name}

Part of [{parent_title}]({parent}).

## Description

## Notes
`,
	"note": `---
created: {date}
modified: {date}
type: note
tags:
---
# {name}

`,
}
