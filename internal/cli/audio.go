package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/robalobadob/pinyin-game/internal/audio"
	"github.com/robalobadob/pinyin-game/internal/pinyin"
)

var audioCmd = &cobra.Command{
	Use:   "audio",
	Short: "Manage per-entry audio assets",
}

var audioSynthCmd = &cobra.Command{
	Use:   "synth",
	Short: "Synthesise <fileKey>.mp3 for catalog entries",
	Long: `Synthesise one MP3 per catalog entry with Google Cloud Text-to-Speech
and write it as <fileKey>.mp3, the name the game page looks up.
Existing files are kept unless --overwrite is set.

Credentials are read from GOOGLE_APPLICATION_CREDENTIALS.

Example:
  pinyin-game audio synth --out ./public/audio
  pinyin-game audio synth --out ./public/audio --only v --only ve`,
	Args: cobra.NoArgs,
	RunE: runAudioSynth,
}

func init() {
	f := audioSynthCmd.Flags()
	f.String("out", "", "output directory (default ASSETS_DIR)")
	f.StringSlice("only", nil, "only these fileKeys")
	f.Bool("overwrite", false, "regenerate existing files")
	f.Int("workers", 4, "concurrent synthesis requests")
	f.String("voice", "", "Text-to-Speech voice name (default TTS_VOICE)")

	audioCmd.AddCommand(audioSynthCmd)
	rootCmd.AddCommand(audioCmd)
}

// selectEntries returns the entries named by keys, or all of them.
func selectEntries(cat *pinyin.Catalog, keys []string) ([]pinyin.Entry, error) {
	if len(keys) == 0 {
		return cat.All(), nil
	}
	out := make([]pinyin.Entry, 0, len(keys))
	for _, k := range keys {
		e, ok := cat.Lookup(k)
		if !ok {
			return nil, fmt.Errorf("unknown fileKey %q", k)
		}
		out = append(out, e)
	}
	return out, nil
}

func runAudioSynth(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	flags := cmd.Flags()

	dir, _ := flags.GetString("out")
	if dir == "" {
		dir = cfg.AssetsDir
	}
	if dir == "" {
		return fmt.Errorf("no output directory: set --out or ASSETS_DIR")
	}

	cat, err := loadCatalog(ctx)
	if err != nil {
		return err
	}
	only, _ := flags.GetStringSlice("only")
	entries, err := selectEntries(cat, only)
	if err != nil {
		return err
	}

	voice, _ := flags.GetString("voice")
	if voice == "" {
		voice = cfg.TTSVoice
	}
	synth, err := audio.NewGCP(ctx, voice)
	if err != nil {
		return fmt.Errorf("text-to-speech client: %w", err)
	}
	defer synth.Close()

	overwrite, _ := flags.GetBool("overwrite")
	workers, _ := flags.GetInt("workers")
	gen := &audio.Generator{Synth: synth, Dir: dir, Overwrite: overwrite, Workers: workers}
	res, err := gen.Generate(ctx, entries)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d files, skipped %d existing, into %s\n", len(res.Written), len(res.Skipped), dir)
	return nil
}
