package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Output formats accepted by List
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// ListParams contains parameters for the List command
type ListParams struct {
	// Output is text (default), json or yaml
	Output string
	// Format is a text/template rendered once per project; sprig functions
	// are available
	Format string
}

// listItem is the value a --format template is executed with
type listItem struct {
	Name   string
	Path   string
	Exists bool
}

// List prints every registered project in registry order
func List(d *Deps, params ListParams) error {
	output := strings.ToLower(params.Output)
	if output == "" {
		output = OutputText
	}
	if params.Format != "" && output != OutputText {
		return fmt.Errorf("--format cannot be combined with --output %s", output)
	}

	reg, err := d.Store.Load()
	if err != nil {
		return err
	}

	switch output {
	case OutputJSON:
		data, err := json.MarshalIndent(reg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode projects: %w", err)
		}
		_, err = fmt.Fprintln(d.Out, string(data))
		return err
	case OutputYAML:
		data, err := yaml.Marshal(reg)
		if err != nil {
			return fmt.Errorf("failed to encode projects: %w", err)
		}
		_, err = d.Out.Write(data)
		return err
	case OutputText:
	default:
		return fmt.Errorf("unsupported output %q (expected text, json or yaml)", params.Output)
	}

	if params.Format != "" {
		tmpl, err := template.New("ls").Funcs(sprig.TxtFuncMap()).Parse(params.Format)
		if err != nil {
			return fmt.Errorf("invalid --format template: %w", err)
		}
		for _, e := range reg.Entries() {
			_, statErr := os.Stat(e.Path)
			item := listItem{Name: e.Name, Path: e.Path, Exists: statErr == nil}
			if err := tmpl.Execute(d.Out, item); err != nil {
				return fmt.Errorf("failed to render %s: %w", e.Name, err)
			}
			if _, err := fmt.Fprintln(d.Out); err != nil {
				return err
			}
		}
		return nil
	}

	nameStyle := lipgloss.NewRenderer(d.Out).NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	for _, e := range reg.Entries() {
		if _, err := fmt.Fprintf(d.Out, "%s: %s\n", nameStyle.Render(e.Name), e.Path); err != nil {
			return err
		}
	}
	return nil
}
