package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"tcreator/internal/element"
	"tcreator/internal/scaffold"
	"tcreator/internal/template"
	"tcreator/internal/workspace"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func modsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "mods",
		Short: "List the mods in the mod location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runMods()
		},
	}
}

func listCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list <mod>",
		Short: "List the elements of a mod",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, _ := cmd.Flags().GetString("kind")
			return a.runList(args[0], kind)
		},
	}
	cmd.Flags().String("kind", "", "Only list elements of this kind")
	return cmd
}

func showCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <mod> <name>",
		Short: "Print the properties extracted from an element's source",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, _ := cmd.Flags().GetString("kind")
			return a.runShow(args[0], args[1], kind)
		},
	}
	cmd.Flags().String("kind", "", "Kind to look in when names collide")
	return cmd
}

func createCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create <mod> <kind> <name>",
		Short: "Create a new element source from the kind's template",
		Long: `Builds the kind's form with default values, applies --set overrides,
renders Templates/<kind>.txt and writes <mod>/<Kind>s/<name>.cs.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			sets, _ := cmd.Flags().GetStringArray("set")
			force, _ := cmd.Flags().GetBool("force")
			return a.runCreate(args[0], args[1], args[2], sets, force)
		},
	}
	cmd.Flags().StringArray("set", nil, "Placeholder value as KEY=VALUE (repeatable)")
	cmd.Flags().Bool("force", false, "Overwrite an existing source file")
	return cmd
}

func editCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <mod> <name>",
		Short: "Rewrite an element source from its template, pre-filled with its current values",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, _ := cmd.Flags().GetString("kind")
			sets, _ := cmd.Flags().GetStringArray("set")
			return a.runEdit(args[0], args[1], kind, sets)
		},
	}
	cmd.Flags().String("kind", "", "Kind to look in when names collide")
	cmd.Flags().StringArray("set", nil, "Placeholder value as KEY=VALUE (repeatable)")
	return cmd
}

func templatesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List templates and the placeholders they contain",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTemplates()
		},
	}
}

func exportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <mod>",
		Short: "Export a mod's elements and properties as TSV or JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			output, _ := cmd.Flags().GetString("output")
			return a.runExport(args[0], format, output)
		},
	}
	cmd.Flags().String("format", "tsv", "Export format: tsv or json")
	cmd.Flags().String("output", "-", "Output file, - for stdout")
	return cmd
}

func watchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <mod>",
		Short: "Re-scan a mod whenever its sources change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runWatch(args[0])
		},
	}
}

func (a *app) runMods() error {
	root, err := a.modRoot()
	if err != nil {
		return err
	}
	for _, mod := range workspace.ListMods(root) {
		fmt.Fprintln(a.out, a.painter.Accent(mod))
	}
	return nil
}

func (a *app) runList(mod, kindName string) error {
	ws, err := a.open(mod)
	if err != nil {
		return err
	}

	elements := ws.Elements
	if kindName != "" {
		kind, err := element.ParseKind(kindName)
		if err != nil {
			return err
		}
		elements = ws.OfKind(kind)
	}

	a.printElements(elements)
	return nil
}

func (a *app) printElements(elements []element.Element) {
	for _, el := range elements {
		fmt.Fprintf(a.out, "%s %s\n", a.painter.Secondary(fmt.Sprintf("%-10s", el.Kind)), a.painter.Accent(el.Name))
	}
}

func (a *app) runShow(mod, name, kindName string) error {
	ws, err := a.open(mod)
	if err != nil {
		return err
	}
	el, err := findElement(ws, name, kindName)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s %s\n", a.painter.Secondary(el.Kind.String()), a.painter.Highlight(el.Name))
	for _, key := range el.Properties.Keys() {
		value, ok := el.Properties.Get(key)
		if !ok {
			value = "null"
		}
		fmt.Fprintf(a.out, "%s = %s\n", key, value)
	}
	if el.PlacesTile != "" {
		fmt.Fprintf(a.out, "places tile: %s\n", el.PlacesTile)
	}
	if el.Dust != "" {
		fmt.Fprintf(a.out, "dust: %s\n", el.Dust)
	}
	return nil
}

func findElement(ws *workspace.Workspace, name, kindName string) (element.Element, error) {
	if kindName == "" {
		return ws.Find(name)
	}
	kind, err := element.ParseKind(kindName)
	if err != nil {
		return element.Element{}, err
	}
	return ws.Find(name, kind)
}

func (a *app) runCreate(mod, kindName, name string, sets []string, force bool) error {
	if err := a.scaffolder.Validate(scaffold.Request{Mod: mod, Kind: strings.ToLower(kindName), Name: name}); err != nil {
		return err
	}
	kind, err := element.ParseKind(kindName)
	if err != nil {
		return err
	}
	overrides, err := parseSets(sets)
	if err != nil {
		return err
	}

	ws, err := a.open(mod)
	if err != nil {
		return err
	}

	target := scaffold.TargetPath(ws.Path(), kind, name)
	if _, err := os.Stat(target); err == nil && !force {
		return fmt.Errorf("%s already exists, use edit or --force", target)
	}

	form := scaffold.NewForm(kind, name, nil)
	for k, v := range overrides {
		if err := form.Set(k, v); err != nil {
			return err
		}
	}
	return a.save(ws, form)
}

func (a *app) runEdit(mod, name, kindName string, sets []string) error {
	overrides, err := parseSets(sets)
	if err != nil {
		return err
	}

	ws, err := a.open(mod)
	if err != nil {
		return err
	}
	el, err := findElement(ws, name, kindName)
	if err != nil {
		return err
	}

	form := scaffold.NewForm(el.Kind, el.Name, el.Properties)
	for k, v := range overrides {
		if err := form.Set(k, v); err != nil {
			return err
		}
	}
	return a.save(ws, form)
}

// save renders the form and refreshes the workspace. Write failures are
// reported without stopping the process.
func (a *app) save(ws *workspace.Workspace, form *scaffold.Form) error {
	target, err := a.scaffolder.Save(ws.Path(), form)
	if err != nil {
		if errors.Is(err, scaffold.ErrTemplateMissing) {
			return fmt.Errorf("no template for %s: %w", form.Kind, err)
		}
		return err
	}
	fmt.Fprintf(a.out, "Created file: %s\n", target)

	refreshed, err := a.loader.Open(ws.Root, ws.Mod)
	if err != nil {
		log.Warn().Err(err).Str("mod", ws.Mod).Msg("Refresh after save failed")
		return nil
	}
	log.Info().Str("mod", refreshed.Mod).Int("elements", len(refreshed.Elements)).Msg("Workspace refreshed")
	return nil
}

func (a *app) runTemplates() error {
	names := a.scaffolder.Templates()
	if len(names) == 0 {
		log.Warn().Str("dir", a.cfg.TemplateDir).Msg("No templates found")
		return nil
	}
	for _, name := range names {
		path := filepath.Join(a.cfg.TemplateDir, name+scaffold.TemplateExtension)
		data, err := os.ReadFile(path)
		if err != nil {
			log.Warn().Err(err).Str("file", path).Msg("Error reading template")
			continue
		}
		fmt.Fprintf(a.out, "%s: %s\n", a.painter.Accent(name), strings.Join(template.Placeholders(string(data)), " "))
	}
	return nil
}

func (a *app) runExport(mod, format, output string) error {
	var export func(io.Writer, *workspace.Workspace) error
	switch format {
	case "json":
		export = workspace.ExportJSON
	case "tsv":
		export = workspace.ExportTSV
	default:
		return fmt.Errorf("unknown export format %q", format)
	}

	ws, err := a.open(mod)
	if err != nil {
		return err
	}

	if output == "-" {
		if err := export(a.out, ws); err != nil {
			return err
		}
	} else {
		// The output file is only touched once encoding has succeeded.
		var buf bytes.Buffer
		if err := export(&buf, ws); err != nil {
			return err
		}
		if err := os.WriteFile(output, buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("write export file: %w", err)
		}
	}

	log.Info().Str("mod", mod).Str("format", format).Str("output", output).Int("elements", len(ws.Elements)).Msg("Exported workspace")
	return nil
}

func (a *app) runWatch(mod string) error {
	root, err := a.modRoot()
	if err != nil {
		return err
	}

	ctx, cancel := setupContext()
	defer cancel()

	log.Info().Str("mod", mod).Msg("Watching for changes, Ctrl-C to stop")
	return a.loader.Watch(ctx, root, mod, func(ws *workspace.Workspace) {
		fmt.Fprintf(a.out, "-- %s: %d elements\n", a.painter.Highlight(ws.Mod), len(ws.Elements))
		a.printElements(ws.Elements)
	})
}
