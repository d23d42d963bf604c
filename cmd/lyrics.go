package cmd

import (
	"encoding/json"
	"io"
	"os"
	"reflect"

	"github.com/invopop/jsonschema"
	"github.com/melodeck/melodeck/filesystem"
	"github.com/melodeck/melodeck/inline"
	"github.com/melodeck/melodeck/key"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(lyricsCmd)

	lyricsCmd.Flags().StringP("at", "t", "", "Print only the line active at this offset (seconds, mm:ss or hh:mm:ss)")
	lyricsCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	lyricsCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")
	lyricsCmd.Flags().String("placeholder", "", "Text printed for an empty line")
	lo.Must0(viper.BindPFlag(key.LyricsPlaceholder, lyricsCmd.Flags().Lookup("placeholder")))
}

// lyricsCmd resolves synchronized lyrics without playing anything.
var lyricsCmd = &cobra.Command{
	Use:   "lyrics [file]",
	Short: "Print synchronized lyrics, or the line active at a given time",
	Long: `Parse an LRC file (or standard input when no file is given) and print its lines.

With --at only the line active at that offset is printed; an empty line prints the placeholder.
Lines are active from their timestamp until the next one starts.`,
	Args:    cobra.MaximumNArgs(1),
	Example: "  melodeck lyrics song.lrc --at 1:23.5",
	Run: func(cmd *cobra.Command, args []string) {
		var (
			source = "stdin"
			data   []byte
			err    error
		)

		if len(args) == 1 {
			source = args[0]
			data, err = afero.ReadFile(filesystem.API(), source)
		} else {
			data, err = io.ReadAll(cmd.InOrStdin())
		}
		handleErr(err)

		at := mo.None[float64]()
		if value := lo.Must(cmd.Flags().GetString("at")); value != "" {
			seconds, err := inline.ParseAt(value)
			handleErr(err)
			at = mo.Some(seconds)
		}

		var writer io.Writer = os.Stdout
		if output := lo.Must(cmd.Flags().GetString("output")); output != "" {
			file, err := filesystem.API().Create(output)
			handleErr(err)
			defer file.Close()
			writer = file
		}

		handleErr(inline.Run(&inline.Options{
			Out:         writer,
			Source:      source,
			Lyrics:      string(data),
			At:          at,
			Json:        lo.Must(cmd.Flags().GetBool("json")),
			Placeholder: viper.GetString(key.LyricsPlaceholder),
		}))
	},
}

func init() {
	lyricsCmd.AddCommand(lyricsSchemaCmd)
}

// lyricsSchemaCmd generates the JSON schema of the lyrics output.
var lyricsSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON schema of the structured lyrics output",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			return t.Name()
		}

		handleErr(json.NewEncoder(os.Stdout).Encode(reflector.Reflect(&inline.Output{})))
	},
}
