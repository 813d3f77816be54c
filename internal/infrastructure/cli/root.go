package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/doeshing/animeprompt/internal/app"
	"github.com/doeshing/animeprompt/internal/domain"
	"github.com/doeshing/animeprompt/internal/infrastructure/cli/commands"
)

// Options holds CLI-level configuration.
type Options struct {
	Verbose bool
}

// errNoArguments is returned when animeprompt is invoked with nothing to do.
var errNoArguments = errors.New("no arguments provided, please specify a prompt")

// NewRootCmd wires the cobra root command. The container is built on first
// use so that argument errors surface before any file is touched.
func NewRootCmd(opts Options) *cobra.Command {
	lazy := &app.Lazy{Verbose: opts.Verbose}
	return newRootCmd(lazy)
}

func newRootCmd(lazy *app.Lazy) *cobra.Command {
	var (
		prompt  string
		apiKey  string
		model   string
		copyOut bool
		timeout time.Duration
	)

	root := &cobra.Command{
		Use:   "animeprompt [keyword]",
		Short: "Turn a keyword into an anime image-generation prompt",
		Long: "animeprompt sends a keyword to a text-generation model together with a fixed\n" +
			"anime art-direction instruction and your recent keywords, then prints a\n" +
			"detailed positive prompt and a stock negative prompt.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !cmd.Flags().Changed("prompt") {
				fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
				return errNoArguments
			}

			raw := prompt
			if !cmd.Flags().Changed("prompt") {
				raw = strings.Join(args, " ")
			}
			keyword, err := domain.NormalizeKeyword(raw)
			if err != nil {
				fmt.Fprint(cmd.ErrOrStderr(), cmd.UsageString())
				return err
			}

			container, err := lazy.Get(cmd.Context())
			if err != nil {
				return err
			}
			defer lazy.Close()

			out := cmd.OutOrStdout()
			label := model
			if label == "" {
				label = container.Config.Preferences.DefaultModel
			}
			stop := func() {}
			resp, err := container.GenerateService.Run(cmd.Context(), domain.GenerateRequest{
				Prompt:          keyword,
				APIKey:          apiKey,
				ModelOverride:   model,
				CopyToClipboard: copyOut,
				Timeout:         timeout,
				OnStart: func(keyword string) {
					fmt.Fprintf(out, "Generating prompt for: %q\n", keyword)
					stop = startSpinner(cmd.ErrOrStderr(), "waiting for "+label)
				},
			})
			stop()
			if err != nil {
				return err
			}

			RenderResponse(out, resp)
			if resp.Copied {
				fmt.Fprintln(cmd.ErrOrStderr(), "Prompt copied to clipboard.")
			}
			if resp.CopyError != "" {
				fmt.Fprintf(cmd.ErrOrStderr(), "warning: prompt not copied: %s\n", resp.CopyError)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := root.Flags()
	flags.StringVarP(&prompt, "prompt", "p", "", "Keyword to expand (alternative to the positional argument)")
	flags.StringVarP(&apiKey, "key", "k", "", "API key, cached for later runs")
	flags.StringVarP(&model, "model", "m", "", "Override model name (default from config)")
	flags.BoolVarP(&copyOut, "copy", "c", false, "Copy the generated prompt to the clipboard")
	flags.DurationVar(&timeout, "timeout", 0, "Override request timeout (default from config)")
	root.PersistentFlags().BoolVar(&lazy.Verbose, "debug", lazy.Verbose, "Enable verbose logging")

	root.AddCommand(
		commands.NewHistoryCommand(lazy),
		commands.NewKeyCommand(lazy),
		commands.NewConfigCommand(lazy),
		commands.NewModelsCommand(lazy),
		commands.NewDoctorCommand(lazy),
		commands.NewVersionCommand(),
	)
	return root
}
