package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/minicodemonkey/sfxgen/internal/cmd"
	"github.com/spf13/cobra"
)

var (
	baseDir string
	seed    uint64
	workers int
	banner  string
)

var rootCmd = &cobra.Command{
	Use:   "sfxgen",
	Short: "Synthesize the paranormal sound effects and embed them as data URLs",
	Long: `sfxgen renders the UFO-Elvis, Cryptid-Rumble and Radio-Static effects,
packs each into a mono 16-bit WAV file and writes them as chunked base64
data URL constants plus a JSON manifest. Running it without a subcommand
regenerates everything.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runGenerate,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Regenerate the source module and manifest",
	Args:  cobra.NoArgs,
	RunE:  runGenerate,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the generated module and manifest without rewriting them",
	Args:  cobra.NoArgs,
	RunE: func(c *cobra.Command, args []string) error {
		return cmd.RunCheck(cmd.CheckOptions{Common: common(c)})
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the effects and the size of each generated asset",
	Args:  cobra.NoArgs,
	RunE: func(c *cobra.Command, args []string) error {
		plain, _ := c.Flags().GetBool("plain")
		return cmd.RunList(cmd.ListOptions{Common: common(c), Plain: plain})
	},
}

var showCmd = &cobra.Command{
	Use:   "show <effect-id>",
	Short: "Print the generated declaration for one effect",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		full, _ := c.Flags().GetBool("full")
		plain, _ := c.Flags().GetBool("plain")
		return cmd.RunShow(cmd.ShowOptions{Common: common(c), ID: args[0], Full: full, Plain: plain})
	},
}

var playCmd = &cobra.Command{
	Use:   "play <effect-id>",
	Short: "Play an effect on the default audio device",
	Args:  cobra.ExactArgs(1),
	RunE: func(c *cobra.Command, args []string) error {
		fromModule, _ := c.Flags().GetBool("from-module")
		return cmd.RunPlay(c.Context(), cmd.PlayOptions{
			Common:     common(c),
			ID:         args[0],
			Seed:       seed,
			FromModule: fromModule,
		})
	},
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate whenever .sfxgen.yaml changes",
	Args:  cobra.NoArgs,
	RunE: func(c *cobra.Command, args []string) error {
		return cmd.RunWatch(c.Context(), cmd.WatchOptions{Common: common(c), Command: banner})
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a .sfxgen.yaml with default settings",
	Args:  cobra.NoArgs,
	RunE: func(c *cobra.Command, args []string) error {
		force, _ := c.Flags().GetBool("force")
		return cmd.RunInit(cmd.InitOptions{Common: common(c), Force: force})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&baseDir, "dir", "C", "", "project root (default: current directory)")

	for _, c := range []*cobra.Command{rootCmd, generateCmd} {
		c.Flags().Uint64Var(&seed, "seed", 0, "noise seed (default: from config, 0 = random)")
		c.Flags().IntVar(&workers, "workers", 0, "effects rendered concurrently (default: from config)")
		c.Flags().StringVar(&banner, "banner-command", "", "regenerate command named in the generated banner")
	}
	playCmd.Flags().Uint64Var(&seed, "seed", 0, "noise seed for the rendered preview")
	playCmd.Flags().Bool("from-module", false, "play the asset embedded in the generated module")
	watchCmd.Flags().StringVar(&banner, "banner-command", "", "regenerate command named in the generated banner")
	listCmd.Flags().Bool("plain", false, "print raw markdown")
	showCmd.Flags().Bool("full", false, "print every chunk")
	showCmd.Flags().Bool("plain", false, "disable syntax highlighting")
	initCmd.Flags().Bool("force", false, "overwrite an existing config")

	rootCmd.AddCommand(generateCmd, checkCmd, listCmd, showCmd, playCmd, watchCmd, initCmd)
}

func common(c *cobra.Command) cmd.Common {
	return cmd.Common{BaseDir: baseDir, Out: c.OutOrStdout()}
}

func runGenerate(c *cobra.Command, args []string) error {
	return cmd.RunGenerate(c.Context(), cmd.GenerateOptions{
		Common:  common(c),
		Seed:    seed,
		Workers: workers,
		Command: banner,
	})
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
