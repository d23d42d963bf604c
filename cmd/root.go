// Package cmd implements the command-line interface for melodeck.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/melodeck/melodeck/color"
	"github.com/melodeck/melodeck/constant"
	"github.com/melodeck/melodeck/headless"
	"github.com/melodeck/melodeck/icon"
	"github.com/melodeck/melodeck/key"
	"github.com/melodeck/melodeck/log"
	"github.com/melodeck/melodeck/recent"
	"github.com/melodeck/melodeck/session"
	"github.com/melodeck/melodeck/style"
	"github.com/melodeck/melodeck/tui"
	"github.com/melodeck/melodeck/util"
	"github.com/melodeck/melodeck/version"
	"github.com/melodeck/melodeck/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.Flags().StringP("backend", "b", "", "Media backend to play with (beep or mpv)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("backend", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return session.Backends(), cobra.ShellCompDirectiveNoFileComp
	}))
	lo.Must0(viper.BindPFlag(key.PlayerBackend, rootCmd.Flags().Lookup("backend")))

	rootCmd.Flags().BoolP("repeat", "r", false, "Restart the track whenever it ends")
	lo.Must0(viper.BindPFlag(key.PlayerRepeat, rootCmd.Flags().Lookup("repeat")))

	rootCmd.Flags().StringP("lrc", "l", "", "Synchronized lyrics file; defaults to a .lrc file next to the track")
	rootCmd.Flags().StringP("name", "n", "", "Track name; defaults to the file name")
	rootCmd.Flags().StringP("artist", "a", "", "Track artist")
	rootCmd.Flags().StringP("poster", "p", "", "Cover image or URL, opened with the o key")
	rootCmd.Flags().Bool("paused", false, "Load the track without starting it")
	rootCmd.Flags().Bool("no-visual", false, "Hide the peak meter")
	rootCmd.Flags().Bool("no-lyrics", false, "Hide lyrics")
	rootCmd.Flags().Bool("plain", false, "Play without the terminal UI, printing lyric lines as they come")

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	// Initialize cleanup of localized temporary files on application startup.
	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// rootCmd defines the entry point for the melodeck application.
var rootCmd = &cobra.Command{
	Use:   constant.Melodeck + " [track]",
	Short: "A terminal music player with synchronized lyrics and a peak meter",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - A terminal music player with synchronized lyrics and a peak meter"),
	Args: cobra.MaximumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return recent.SuggestMany(toComplete), cobra.ShellCompDirectiveDefault
	},
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		if len(args) == 0 {
			handleErr(cmd.Help())
			return
		}

		track, err := newTrack(cmd, args[0])
		handleErr(err)

		backend := viper.GetString(key.PlayerBackend)
		CheckDependencies(backend)

		var (
			repeat = viper.GetBool(key.PlayerRepeat)
			paused = lo.Must(cmd.Flags().GetBool("paused"))
			visual = viper.GetBool(key.VisualEnable) && !lo.Must(cmd.Flags().GetBool("no-visual"))
			lyrics = viper.GetBool(key.LyricsEnable) && !lo.Must(cmd.Flags().GetBool("no-lyrics"))
		)

		if lo.Must(cmd.Flags().GetBool("plain")) {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			if err := recent.Remember(track.URL, 1); err != nil {
				log.Warnf("remember %s: %v", track.URL, err)
			}

			handleErr(headless.Run(ctx, &headless.Options{
				Track:  track,
				Lyrics: lyrics,
				Session: session.Options{
					Backend: backend,
					Repeat:  repeat,
					Playing: session.InitialIntent(paused),
				},
			}))
			return
		}

		handleErr(tui.Run(&tui.Options{
			Track:   track,
			Backend: backend,
			Repeat:  repeat,
			Paused:  paused,
			Visual:  visual,
			Lyrics:  lyrics,
		}))
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
