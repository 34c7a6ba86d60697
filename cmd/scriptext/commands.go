package scriptext

import (
	"fmt"

	"github.com/arthur-debert/scriptext/internal/version"
	"github.com/arthur-debert/scriptext/pkg/commands"
	"github.com/arthur-debert/scriptext/pkg/commands/rewrite"
	"github.com/arthur-debert/scriptext/pkg/config"
	"github.com/arthur-debert/scriptext/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newRewriteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rewrite [files...]",
		Short:   MsgRewriteShort,
		Long:    MsgRewriteLong,
		Example: MsgRewriteExample,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			root, _ := cmd.Flags().GetString("root")
			assetsDir, _ := cmd.Flags().GetString("assets")
			outDir, _ := cmd.Flags().GetString("out")
			dryRun, _ := cmd.Flags().GetBool("dry-run")

			renderer, err := newRenderer(cmd)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			files := args
			if len(files) == 0 {
				files, err = rewrite.FindHTML(nil, root)
				if err != nil {
					return err
				}
				if len(files) == 0 {
					return renderer.RenderMessage(MsgNoFiles)
				}
			}

			log.Info().
				Str("root", root).
				Int("files", len(files)).
				Bool("dry_run", dryRun).
				Msg("Rewriting files")

			reports, err := commands.Rewrite(commands.RewriteOptions{
				Root:      root,
				Files:     files,
				AssetsDir: assetsDir,
				OutDir:    outDir,
				DryRun:    dryRun,
				Config:    cfg,
			})
			// Files done before a failure are still reported
			if len(reports) > 0 {
				if renderErr := renderer.RenderReports(reports); renderErr != nil && err == nil {
					err = renderErr
				}
			}
			return err
		},
	}

	cmd.Flags().String("assets", "", MsgFlagAssets)
	cmd.Flags().StringP("out", "o", "", MsgFlagOut)
	cmd.Flags().BoolP("dry-run", "n", false, MsgFlagDryRun)

	return cmd
}

func newExplainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "explain <src>",
		Short:   MsgExplainShort,
		Long:    MsgExplainLong,
		Example: MsgExplainExample,
		GroupID: "core",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			htmlPath, _ := cmd.Flags().GetString("html-path")

			renderer, err := newRenderer(cmd)
			if err != nil {
				return err
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			result, err := commands.Explain(commands.ExplainOptions{
				Src:      args[0],
				HTMLPath: htmlPath,
				Config:   cfg,
			})
			if err != nil {
				return err
			}
			return renderer.RenderEntry(result.OutputFile, result.Entry)
		},
	}

	cmd.Flags().String("html-path", "index.html", MsgFlagHTMLPath)

	return cmd
}

func newGenConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "genconfig [toml|yaml]",
		Short:     MsgGenConfigShort,
		Long:      MsgGenConfigLong,
		GroupID:   "core",
		ValidArgs: []string{config.FormatTOML, config.FormatYAML},
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			write, _ := cmd.Flags().GetString("write")
			format := config.FormatTOML
			if len(args) == 1 {
				format = args[0]
			}

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}

			result, err := commands.GenConfig(commands.GenConfigOptions{
				Config: cfg,
				Format: format,
				Path:   write,
			})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			switch {
			case write == "":
				_, err = fmt.Fprint(out, result.Content)
			case result.FileWritten != "":
				_, err = fmt.Fprintf(out, MsgConfigWritten, result.FileWritten)
			default:
				_, err = fmt.Fprintf(out, MsgConfigExists, write)
			}
			return err
		},
	}

	cmd.Flags().StringP("write", "w", "", MsgFlagWrite)

	return cmd
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		Long:    MsgTopicsLong,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Find the help command and execute it with "topics" argument
			if helpCmd, _, err := cmd.Root().Find([]string{"help"}); err == nil && helpCmd.RunE != nil {
				helpCmd.SetOut(cmd.OutOrStdout())
				return helpCmd.RunE(helpCmd, []string{"topics"})
			}
			return fmt.Errorf("help command not found")
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
			return err
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// loadConfig merges defaults, the config file and the environment. The
// config file is looked up in --root unless --config names one.
func loadConfig(cmd *cobra.Command) (*config.File, error) {
	path, _ := cmd.Flags().GetString("config")
	root, _ := cmd.Flags().GetString("root")

	f, err := config.Load(config.LoadOptions{Path: path, Dir: root})
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}
	log.Debug().Str("path", config.Find(config.LoadOptions{Path: path, Dir: root})).Msg("Configuration loaded")
	return f, nil
}

// newRenderer resolves --format, detecting the terminal for auto.
func newRenderer(cmd *cobra.Command) (ui.Renderer, error) {
	name, _ := cmd.Flags().GetString("format")
	format, err := ui.ParseFormat(name)
	if err != nil {
		return nil, fmt.Errorf(MsgErrFormat, err)
	}
	out := cmd.OutOrStdout()
	if format == ui.FormatAuto {
		format = ui.DetectFormat(out)
	}
	return ui.NewRenderer(format, out), nil
}
