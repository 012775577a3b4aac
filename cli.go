package orgdir

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

type CLIConfig struct {
	Separator    string
	RemovePrefix bool
	Verbose      bool
	Yes          bool
	Reverse      bool
	ExportTree   bool
	Output       string
	Clipboard    bool
	ShowHidden   bool
	MaxDepth     int
	Lang         string
	LogLevel     string
	LogFormat    string
	Completion   string
}

var cliCfg = &CLIConfig{}

var rootCmd = &cobra.Command{
	Use:   "orgdir [directory]",
	Short: "Organize files into subdirectories based on filename prefixes.",
	Long: `Group the files of a directory into subdirectories named after the prefix
before the first separator occurrence, reverse a previous grouping, or export
a textual tree of the directory. Without a directory argument the interactive
interface starts.

Example: orgdir ~/Downloads -s - -r`,
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cliCfg.Completion != "" {
			return handleCompletion(cmd)
		}

		settings, err := LoadSettings()
		if err != nil {
			return fmt.Errorf("could not load settings: %w", err)
		}
		if !cmd.Flags().Changed("separator") && settings.Separator != "" {
			cliCfg.Separator = settings.Separator
		}
		if cliCfg.LogLevel != "" {
			settings.Logging.Level = cliCfg.LogLevel
		}
		if cliCfg.LogFormat != "" {
			settings.Logging.Format = cliCfg.LogFormat
		}
		SetupLogging(settings.Logging)

		loc := NewLocaleStore(settings.GetLocalesDir(), settings.Language)
		if cliCfg.Lang != "" {
			loc.SetLanguage(cliCfg.Lang)
		}

		if len(args) == 0 {
			ui := NewTUI(loc, cliCfg.Separator)
			return ui.Run()
		}
		return runCLI(args[0], loc)
	},
}

func runCLI(directory string, loc *LocaleStore) error {
	appCfg := &Config{
		Directory:    directory,
		Separator:    cliCfg.Separator,
		RemovePrefix: cliCfg.RemovePrefix,
		Reverse:      cliCfg.Reverse,
		ExportTree:   cliCfg.ExportTree,
		Output:       cliCfg.Output,
		Clipboard:    cliCfg.Clipboard,
		ShowHidden:   cliCfg.ShowHidden,
		MaxDepth:     cliCfg.MaxDepth,
	}

	app, err := NewApp(appCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	if !cliCfg.Yes && !cliCfg.ExportTree {
		organizer := NewOrganizer(cliCfg.Separator)
		app.SetConfirmCallback(func(plan *Plan, categories map[string][]string, files int) bool {
			if plan != nil {
				fmt.Print(FormatPlan(organizer, plan, cliCfg.RemovePrefix, cliCfg.Verbose, loc))
				return promptYes(loc.Get("proceed_organize", nil))
			}
			fmt.Print(FormatReverseScan(categories, files, loc))
			return promptYes(loc.Get("proceed_reverse", nil))
		})
	}

	if cliCfg.ExportTree {
		fmt.Println(loc.Get("generating_tree", map[string]string{"dir": directory}))
	}

	summary, err := app.Execute()
	if err != nil {
		return localizeError(err, directory, loc)
	}

	if cliCfg.ExportTree && cliCfg.Clipboard {
		fmt.Println(loc.Get("tree_copied", nil))
	}
	fmt.Print(FormatSummary(summary, cliCfg.Reverse, loc))

	// Partial failures are warnings; a batch where nothing moved is not.
	if !summary.Cancelled && summary.Moved == 0 && len(summary.Errors) > 0 {
		return errors.New(loc.Get("error_all_moves_failed", nil))
	}
	return nil
}

// localizeError maps engine sentinels to the user-facing message for them.
func localizeError(err error, directory string, loc *LocaleStore) error {
	switch {
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrNotDirectory):
		return errors.New(loc.Get("error_invalid_directory", map[string]string{"dir": directory}))
	case errors.Is(err, ErrNoFiles):
		return errors.New(loc.Get("error_no_files", nil))
	case errors.Is(err, ErrNoSubdirs):
		return errors.New(loc.Get("error_no_subdirs_to_reverse", nil))
	case errors.Is(err, ErrNoSubdirFiles):
		return errors.New(loc.Get("error_no_files_to_move_in_subdirs", nil))
	}
	return err
}

func promptYes(prompt string) bool {
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	return strings.ToLower(strings.TrimSpace(line)) == "y"
}

func handleCompletion(cmd *cobra.Command) error {
	switch cliCfg.Completion {
	case "bash":
		return cmd.Root().GenBashCompletion(os.Stdout)
	case "zsh":
		return cmd.Root().GenZshCompletion(os.Stdout)
	case "fish":
		return cmd.Root().GenFishCompletion(os.Stdout, true)
	case "powershell":
		return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
	default:
		return fmt.Errorf("unsupported shell for completion: %s", cliCfg.Completion)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&cliCfg.Separator, "separator", "s", "-", "Character that separates prefix from filename")
	rootCmd.Flags().BoolVarP(&cliCfg.RemovePrefix, "remove-prefix", "r", false, "Remove the prefix when organizing, restore it when reversing")
	rootCmd.Flags().BoolVarP(&cliCfg.Verbose, "verbose", "v", false, "Show detailed information about the operations")
	rootCmd.Flags().BoolVarP(&cliCfg.Yes, "yes", "y", false, "Skip confirmation prompts")
	rootCmd.Flags().BoolVar(&cliCfg.Reverse, "reverse", false, "Move files back out of their subdirectories")
	rootCmd.Flags().BoolVar(&cliCfg.ExportTree, "export-tree", false, "Export a directory tree instead of organizing")
	rootCmd.Flags().StringVar(&cliCfg.Output, "output", "", "Output file for the directory tree export")
	rootCmd.Flags().BoolVar(&cliCfg.Clipboard, "clipboard", false, "Copy the directory tree to the clipboard")
	rootCmd.Flags().BoolVar(&cliCfg.ShowHidden, "show-hidden", false, "Include hidden files and directories in the tree")
	rootCmd.Flags().IntVar(&cliCfg.MaxDepth, "max-depth", -1, "Maximum tree depth, -1 for unlimited")
	rootCmd.Flags().StringVar(&cliCfg.Lang, "lang", "", "Override the interface language")
	rootCmd.Flags().StringVar(&cliCfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&cliCfg.LogFormat, "log-format", "", "Log format (text, json)")
	rootCmd.Flags().StringVar(&cliCfg.Completion, "completion", "", "Generate completion script")

	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})
}

func Execute() error {
	return rootCmd.Execute()
}
